package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/models"
)

// DB wraps both GORM and sql.DB
type DB struct {
	*sql.DB
	GORM *gorm.DB
}

// Open connects to the configured store.
// driver is "postgres" (dsn = DATABASE_URL) or "sqlite" (dsn = file path or ":memory:").
func Open(driver, dsn string, logLevel logger.LogLevel) (*DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is empty")
		}
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if driver == "sqlite" {
		// One connection: in-memory databases are per-connection and writes serialize anyway
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("driver", driver).Msg("✅ Database connected (GORM)")
	return &DB{DB: sqlDB, GORM: gormDB}, nil
}

// AutoMigrate creates the tables for local sqlite runs and tests.
// Postgres schemas are managed by cmd/migrate.
func (db *DB) AutoMigrate() error {
	return db.GORM.AutoMigrate(&models.Observation{}, &models.Summary{})
}

func (db *DB) Close() error {
	log.Info().Msg("🔌 Closing database connection...")
	return db.DB.Close()
}
