// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ordersift/ordersift/internal/config"
	"github.com/ordersift/ordersift/internal/logger"
)

// CommandDeps holds common dependencies for all commands.
// Use this instead of context.Value for type-safe dependency injection.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// NewCommandDeps builds the dependencies every command needs: the loaded
// configuration and a logger configured from it.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	deps := &CommandDeps{Logger: log, Config: cfg}
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	return deps, nil
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}
