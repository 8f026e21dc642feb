package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/auth"
)

// Routes groups the handlers mounted by RegisterRoutes
type Routes struct {
	Health    *HealthHandler
	Dashboard *DashboardHandler
	Rollup    *RollupHandler
	Export    *ExportHandler
	JWT       *auth.JWTService
}

// RegisterRoutes mounts the public health check and the authenticated /api group
func RegisterRoutes(app *fiber.App, r Routes) {
	// Health check
	app.Get("/health", r.Health.GetHealth)

	api := app.Group("/api", auth.AuthMiddleware(r.JWT))

	// Dashboard routes
	api.Get("/dashboard", r.Dashboard.GetDashboard)
	api.Post("/dashboard/filter", r.Dashboard.FilterDashboard)
	api.Post("/dashboard/summary", r.Dashboard.SummaryDashboard)
	api.Post("/dashboard/export", r.Export.ExportDashboard)

	// Admin routes
	admin := api.Group("/admin", auth.RequireRole(auth.RoleAdmin))
	admin.Post("/rollup", r.Rollup.RebuildSummary)
}
