package main

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/utils"
)

func main() {
	var set string
	var command string

	flag.StringVar(&set, "set", "pinsight", "Migration set under migrations/")
	flag.StringVar(&command, "cmd", "up", "Migration command (up, down, steps, version, force)")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)

	if cfg.DatabaseDriver != "postgres" {
		log.Fatal().Str("driver", cfg.DatabaseDriver).Msg("❌ Migrations target Postgres; sqlite databases are auto-migrated by the API")
	}

	migrationPath := fmt.Sprintf("file://migrations/%s", set)
	log.Info().
		Str("set", set).
		Str("path", migrationPath).
		Str("database", maskDatabaseURL(cfg.DatabaseURL)).
		Msg("🔄 Running migrations")

	m, err := migrate.New(migrationPath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create migrate instance")
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("❌ Migration UP failed")
		}
		log.Info().Msg("✅ Migrations UP completed")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("❌ Migration DOWN failed")
		}
		log.Info().Msg("✅ Migrations DOWN completed")

	case "steps":
		n, err := intArg()
		if err != nil {
			log.Fatal().Err(err).Msg("❌ steps needs a signed step count, e.g. -cmd steps -- -1")
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Int("steps", n).Msg("❌ Migration steps failed")
		}
		log.Info().Int("steps", n).Msg("✅ Migration steps applied")

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("❌ Failed to get version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("📌 Current version")

	case "force":
		v, err := intArg()
		if err != nil {
			log.Fatal().Err(err).Msg("❌ force needs a version number")
		}
		if err := m.Force(v); err != nil {
			log.Fatal().Err(err).Msg("❌ Force failed")
		}
		log.Info().Int("version", v).Msg("✅ Forced version")

	default:
		log.Fatal().Str("cmd", command).Msg("❌ Unknown command (use: up, down, steps, version, force)")
	}
}

func intArg() (int, error) {
	if flag.NArg() < 1 {
		return 0, errors.New("missing argument")
	}
	return strconv.Atoi(flag.Arg(0))
}

// maskDatabaseURL hides the password in a database URL for logging
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return "***"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.Redacted()
}
