// Package bootstrap loads configuration, logging and the database for CLI commands.
package bootstrap

import (
	"fmt"

	"github.com/estatery/estatery/internal/infrastructure/config"
	"github.com/estatery/estatery/internal/infrastructure/database"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/constants"
	"github.com/estatery/estatery/internal/shared/logger"
)

// Init loads config for env, initializes the logger and business timezone,
// and opens the process database. Callers defer database.Close.
func Init(env string) (*config.Config, logger.Interface, error) {
	mode := GinMode(env)

	cfg, err := config.Load(mode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return "release"
	case constants.EnvTest, "testing":
		return "test"
	default:
		return "debug"
	}
}
