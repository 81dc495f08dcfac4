// Package logger provides logging functionality for the application.
package logger

// Default configuration values.
const (
	// DefaultLevel is the default logging level.
	DefaultLevel = InfoLevel
	// DefaultEncoding is the default log encoding format.
	DefaultEncoding = "console"
)

// Default output paths.
var (
	// DefaultOutputPaths is the default list of paths to write log output to.
	DefaultOutputPaths = []string{"stderr"}
)
