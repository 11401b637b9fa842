package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ericogr/arena-battles/internal/constants"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Driver string `json:"driver"`
		DSN    string `json:"dsn"`
	} `json:"database"`
	Auth *struct {
		JWTSecret    string `json:"jwt_secret"`
		JWTExpiresIn string `json:"jwt_expires_in"`
	} `json:"auth"`
	Battle *struct {
		Transactions *bool `json:"transactions"`
	} `json:"battle"`
	ProductsPath string `json:"products_path"`
	LogLevel     string `json:"log_level"`
}

// LoadedConfig is the effective configuration: defaults, then the JSON
// file, then environment variables.
type LoadedConfig struct {
	ServerAddress string `env:"ARENA_ADDR"`
	DBDriver      string `env:"ARENA_DB_DRIVER"`
	DBDSN         string `env:"ARENA_DB_DSN"`

	// JWTSecret may stay empty; the server then signs with a random
	// per-process secret.
	JWTSecret          string        `env:"JWT_SECRET"`
	JWTExpiresIn       time.Duration `env:"JWT_EXPIRES_IN"`
	ProductsPath       string        `env:"PRODUCTS_PATH"`
	LogLevel           string        `env:"LOG_LEVEL"`
	BattleTransactions bool          `env:"ARENA_BATTLE_TX"`
}

func defaults() LoadedConfig {
	return LoadedConfig{
		ServerAddress:      constants.DefaultAddr,
		DBDriver:           constants.DefaultDBDriver,
		DBDSN:              constants.DefaultDBDSN,
		JWTExpiresIn:       time.Hour,
		ProductsPath:       constants.DefaultProductsPath,
		LogLevel:           "info",
		BattleTransactions: true,
	}
}

// LoadConfig reads the optional configuration file at path and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := defaults()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := applyFile(&cfg, path, b); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported %s %q (use sqlite or postgres)", constants.EnvDBDriver, cfg.DBDriver)
	}
	if strings.TrimSpace(cfg.DBDSN) == "" {
		return nil, fmt.Errorf("%s must not be empty", constants.EnvDBDSN)
	}
	if cfg.JWTExpiresIn <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s", constants.EnvJWTExpiresIn, cfg.JWTExpiresIn)
	}
	return &cfg, nil
}

func applyFile(cfg *LoadedConfig, path string, b []byte) error {
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil {
		if rc.Database.Driver != "" {
			cfg.DBDriver = rc.Database.Driver
		}
		if rc.Database.DSN != "" {
			cfg.DBDSN = rc.Database.DSN
		}
	}
	if rc.Auth != nil {
		if rc.Auth.JWTSecret != "" {
			cfg.JWTSecret = rc.Auth.JWTSecret
		}
		if rc.Auth.JWTExpiresIn != "" {
			d, err := time.ParseDuration(rc.Auth.JWTExpiresIn)
			if err != nil {
				return fmt.Errorf("config file %s: invalid auth.jwt_expires_in: %w", path, err)
			}
			cfg.JWTExpiresIn = d
		}
	}
	if rc.Battle != nil && rc.Battle.Transactions != nil {
		cfg.BattleTransactions = *rc.Battle.Transactions
	}
	if p := strings.TrimSpace(rc.ProductsPath); p != "" {
		cfg.ProductsPath = p
	}
	if l := strings.TrimSpace(rc.LogLevel); l != "" {
		cfg.LogLevel = l
	}
	return nil
}
