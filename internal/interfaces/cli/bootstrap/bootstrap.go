// Package bootstrap prepares the process for a CLI command: configuration,
// logging, business timezone and the database connection.
package bootstrap

import (
	"fmt"

	"github.com/parkline/parkline/internal/infrastructure/config"
	"github.com/parkline/parkline/internal/infrastructure/database"
	"github.com/parkline/parkline/internal/shared/biztime"
	"github.com/parkline/parkline/internal/shared/logger"
)

// Options are the flags every command shares.
type Options struct {
	Env        string
	ConfigPath string
}

// Setup loads configuration and opens the database. Callers must defer
// database.Close().
func Setup(opts Options) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(opts.ConfigPath, MapEnvToGinMode(opts.Env))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	// Initialize business timezone for date boundary calculations
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}

// MapEnvToGinMode maps an environment name to a gin mode. An empty env
// keeps the configured mode.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "":
		return ""
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
