package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/handlers"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/repositories"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/services"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/pinsight-be/cmd/pinsight-api/docs"
)

// @title Pinsight API
// @version 1.0
// @description Product availability analytics across quick-commerce platforms, cities and pincodes
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// Init database
	dsn := cfg.DatabaseURL
	if cfg.DatabaseDriver == "sqlite" {
		dsn = cfg.SQLitePath
	}
	gormLevel := logger.Warn
	if cfg.Env == "production" {
		gormLevel = logger.Error
	}
	db, err := database.Open(cfg.DatabaseDriver, dsn, gormLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Postgres schemas come from cmd/migrate; local sqlite files are created in place
	if cfg.DatabaseDriver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate sqlite database")
		}
	}

	// Init repositories
	observationRepo := repositories.NewObservationRepo(db.GORM)
	summaryRepo := repositories.NewSummaryRepo(db.GORM)

	// Init services
	dashboardService := services.NewDashboardService(observationRepo, summaryRepo, services.DashboardOptions{
		BatchSize:         cfg.StreamBatchSize,
		MaxProjectionRows: cfg.MaxProjectionRows,
		QueryTimeout:      cfg.QueryTimeout,
	})
	rollupService := services.NewRollupService(observationRepo, summaryRepo, cfg.StreamBatchSize, cfg.RollupBatchSize)

	// Nightly rollup rebuild
	sched := scheduler.NewScheduler()
	if cfg.RollupSchedule != "" {
		err := sched.Add("rollup", cfg.RollupSchedule, func(ctx context.Context) error {
			_, err := rollupService.Build(ctx)
			return err
		})
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.RollupSchedule).Msg("Invalid ROLLUP_SCHEDULE")
		}
	} else {
		utils.LogWarn("⚠️ Scheduled rollup disabled; run cmd/rollup or POST /api/admin/rollup", map[string]interface{}{
			"env": "ROLLUP_SCHEDULE",
		})
	}
	sched.Start()

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Pinsight API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.QueryTimeout + 30*time.Second,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(utils.RequestLogger())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	handlers.RegisterRoutes(app, handlers.Routes{
		Health:    handlers.NewHealthHandler(db.DB),
		Dashboard: dashboardHandler,
		Rollup:    handlers.NewRollupHandler(rollupService),
		Export:    handlers.NewExportHandler(dashboardHandler, export.NewExcelExporter()),
		JWT:       auth.NewJWTService(cfg.JWTSecret),
	})

	// Start server
	go func() {
		utils.LogInfo("✅ pinsight-api running", map[string]interface{}{
			"port":    cfg.Port,
			"driver":  cfg.DatabaseDriver,
			"swagger": "http://localhost:" + cfg.Port + "/swagger/",
		})
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("🛑 Shutting down pinsight-api...")
	sched.Stop()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		utils.LogError("Graceful shutdown failed", err, nil)
	}
	log.Info().Msg("👋 Goodbye!")
}
