package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/models"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Full dashboard
// @Description Raw records and all aggregates for the caller's scope, without user filters
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} analytics.Result
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	scope, ok := auth.ScopeFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Unauthorized"})
	}

	result, err := h.dashboardService.Full(c.UserContext(), scope)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// FilterDashboard godoc
// @Summary Filtered dashboard
// @Description Raw records (newest first) and aggregates restricted to the given filters
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param filter body models.DashboardFilterRequest true "Filters"
// @Success 200 {object} analytics.Result
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Router /api/dashboard/filter [post]
func (h *DashboardHandler) FilterDashboard(c *fiber.Ctx) error {
	scope, ok := auth.ScopeFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Unauthorized"})
	}

	filter, err := h.parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.dashboardService.Filtered(c.UserContext(), scope, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// SummaryDashboard godoc
// @Summary Summary dashboard
// @Description Aggregates from the pre-counted rollup table; latest report date only unless from/to is given. Pincode filters are rejected
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param filter body models.DashboardFilterRequest false "Filters"
// @Success 200 {object} analytics.Result
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/dashboard/summary [post]
func (h *DashboardHandler) SummaryDashboard(c *fiber.Ctx) error {
	scope, ok := auth.ScopeFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Unauthorized"})
	}

	filter, err := h.parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.dashboardService.Rollup(c.UserContext(), scope, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// parseFilter reads an optional JSON filter body; an empty body means no filters
func (h *DashboardHandler) parseFilter(c *fiber.Ctx) (analytics.FilterRequest, error) {
	var req models.DashboardFilterRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return analytics.FilterRequest{}, fmt.Errorf("%w: invalid request body", analytics.ErrInvalidFilter)
		}
	}
	return req.ToFilter(h.dashboardService.Now())
}
