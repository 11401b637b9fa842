package main

import (
	"os"

	"github.com/ericogr/arena-battles/internal/api"
	"github.com/ericogr/arena-battles/internal/catalog"
	"github.com/ericogr/arena-battles/internal/constants"
	"github.com/ericogr/arena-battles/internal/logging"
	"github.com/ericogr/arena-battles/internal/service"
	"github.com/ericogr/arena-battles/internal/version"

	"github.com/gin-gonic/gin"
)

func main() {
	// Configuration file is optional. Path may be provided via ARENA_CONFIG
	// or defaults to ./arena_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)
	logging.SetLevel(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	repo := createRepositoryOrExit(cfg.DBDriver, cfg.DBDSN)
	tokens := createTokenIssuerOrExit(cfg.JWTSecret, cfg.JWTExpiresIn)
	dice := createDiceOrExit()

	resolver := service.NewResolver(repo, dice, service.WithTransactions(cfg.BattleTransactions))
	history := service.NewHistoryReader(repo)

	router := api.NewRouter(api.Handlers{
		Tokens:     tokens,
		Auth:       api.NewAuthHandler(repo, tokens),
		Users:      api.NewUserHandler(repo),
		Characters: api.NewCharacterHandler(repo),
		Battles:    api.NewBattleHandler(resolver, history),
		Products:   api.NewProductHandler(catalog.New(cfg.ProductsPath)),
	})

	logging.Info("Server starting", logging.Fields{
		constants.LogFieldAddr: cfg.ServerAddress,
		"version":              version.Version,
		"db_driver":            cfg.DBDriver,
		"battle_transactions":  cfg.BattleTransactions,
	})
	if err := runServer(cfg.ServerAddress, router); err != nil {
		logging.Fatal("Server stopped with error", err, nil)
	}
	logging.Info("Server stopped", nil)
}
