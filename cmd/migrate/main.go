package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"marketplace-backend/internal/config"
	"marketplace-backend/internal/infrastructure/database"
	"marketplace-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		log.Info().Str("storage", cfg.Storage.Driver).Msg("Nothing to migrate; indexes are created at API startup")
		return
	}

	db, err := sql.Open("postgres", cfg.LoadDatabaseConfig().DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database unreachable")
	}

	applied, err := database.RunMigrations(ctx, db, database.Migrations())
	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Int("applied", applied).Msg("Migrations complete")
}
