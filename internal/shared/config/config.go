package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DatabaseDriver string // postgres | sqlite
	DatabaseURL    string
	SQLitePath     string
	Port           string
	Env            string
	LogLevel       string
	JWTSecret      string

	RollupSchedule  string // cron with seconds; empty disables the scheduled rebuild
	RollupBatchSize int
	StreamBatchSize int

	MaxProjectionRows int
	QueryTimeout      time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     getEnv("SQLITE_PATH", "pinsight.db"),
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		JWTSecret:      os.Getenv("JWT_SECRET"),

		RollupBatchSize:   getInt("ROLLUP_BATCH_SIZE", 500),
		StreamBatchSize:   getInt("STREAM_BATCH_SIZE", 1000),
		MaxProjectionRows: getInt("MAX_PROJECTION_ROWS", 200000),
		QueryTimeout:      getDuration("QUERY_TIMEOUT", 60*time.Second),
	}

	// An explicitly empty ROLLUP_SCHEDULE disables the job
	if schedule, ok := os.LookupEnv("ROLLUP_SCHEDULE"); ok {
		cfg.RollupSchedule = schedule
	} else {
		cfg.RollupSchedule = "0 30 2 * * *"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Warn().Str("key", key).Str("value", raw).Int("default", fallback).Msg("invalid integer, using default")
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		log.Warn().Str("key", key).Str("value", raw).Dur("default", fallback).Msg("invalid duration, using default")
		return fallback
	}
	return v
}
