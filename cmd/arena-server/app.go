package main

import (
	"time"

	"github.com/ericogr/arena-battles/internal/api"
	"github.com/ericogr/arena-battles/internal/config"
	"github.com/ericogr/arena-battles/internal/engine"
	"github.com/ericogr/arena-battles/internal/logging"
	"github.com/ericogr/arena-battles/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Invalid arena configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(driver, dsn string) storage.Repository {
	db, err := storage.OpenDB(driver, dsn)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"driver": driver})
	}
	return storage.NewGormRepository(db)
}

func createTokenIssuerOrExit(secret string, ttl time.Duration) *api.TokenIssuer {
	tokens, err := api.NewTokenIssuer(secret, ttl)
	if err != nil {
		logging.Fatal("Failed to initialize token issuer", err, nil)
	}
	return tokens
}

func createDiceOrExit() engine.Dice {
	dice, err := engine.NewRandomDice()
	if err != nil {
		logging.Fatal("Failed to seed dice", err, nil)
	}
	return dice
}
