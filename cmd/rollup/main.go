package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/repositories"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/services"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/utils"
)

// rollup rebuilds products_summary once and exits; use it from an external cron
// when the API's built-in schedule is disabled.
func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 30*time.Minute, "Abort the build after this long")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)

	dsn := cfg.DatabaseURL
	if cfg.DatabaseDriver == "sqlite" {
		dsn = cfg.SQLitePath
	}
	db, err := database.Open(cfg.DatabaseDriver, dsn, logger.Warn)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.DatabaseDriver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate sqlite database")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rollupService := services.NewRollupService(
		repositories.NewObservationRepo(db.GORM),
		repositories.NewSummaryRepo(db.GORM),
		cfg.StreamBatchSize,
		cfg.RollupBatchSize,
	)

	report, err := rollupService.Build(ctx)
	if err != nil {
		log.Error().Err(err).Msg("❌ Rollup build failed")
		db.Close()
		os.Exit(1)
	}

	log.Info().
		Str("build_id", report.BuildID).
		Int("groups", report.Groups).
		Dur("took", report.Duration).
		Msg("✅ Rollup build completed")
}
