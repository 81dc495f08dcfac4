package common

import "errors"

// Common errors for command dependency construction.
var (
	// ErrLoggerRequired is returned when a command is built without a logger.
	ErrLoggerRequired = errors.New("logger is required")
	// ErrConfigRequired is returned when a command is built without config.
	ErrConfigRequired = errors.New("config is required")
)
