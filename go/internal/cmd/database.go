package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/openrally/courtside/go/internal/dbconfig"
	"github.com/rs/zerolog/log"
)

func setupDatabase() (*sql.DB, dbconfig.Config, error) {
	cfg := dbconfig.NewConfigFromEnv()

	database, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, cfg, fmt.Errorf("failed to ping database: %w", err)
	}

	database.SetMaxOpenConns(getEnvAsInt("DB_MAX_OPEN_CONNS", 25))
	database.SetMaxIdleConns(getEnvAsInt("DB_MAX_IDLE_CONNS", 5))

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("connected to database")
	return database, cfg, nil
}
