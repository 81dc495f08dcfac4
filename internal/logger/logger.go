// Package logger provides logging functionality for the application.
package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface defines the logger interface.
type Interface interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Fatal(msg string, fields ...any)
	With(fields ...any) Interface
	// Structured logging helpers
	WithSource(source string) Interface
	WithRun(runID string) Interface
	WithComponent(component string) Interface
	WithError(err error) Interface
}

// Logger implements the Interface.
type Logger struct {
	zapLogger *zap.Logger
}

// logLevels maps string levels to zapcore.Level
var logLevels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

// Common field keys
var fieldKeys = struct {
	Source    string
	RunID     string
	Component string
	Error     string
}{
	Source:    "source",
	RunID:     "run_id",
	Component: "component",
	Error:     "error",
}

// New creates a new logger instance.
func New(config *Config) (Interface, error) {
	// Set default values
	if config.Level == "" {
		config.Level = DefaultLevel
	}
	if config.Encoding == "" {
		config.Encoding = DefaultEncoding
	}
	if len(config.OutputPaths) == 0 {
		config.OutputPaths = DefaultOutputPaths
	}

	// Create encoder config
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if config.Development {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
		}
		encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
		encoderConfig.ConsoleSeparator = " | "
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}

	// Create encoder
	var encoder zapcore.Encoder
	if config.Encoding == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	// Logs go to stderr so the rendered table on stdout stays clean.
	core := zapcore.NewCore(
		encoder,
		zapcore.AddSync(os.Stderr),
		getLogLevel(string(config.Level)),
	)

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}
	if config.Development {
		opts = append(opts, zap.Development())
	}

	return &Logger{zapLogger: zap.New(core, opts...)}, nil
}

// getLogLevel converts a string level to zapcore.Level
func getLogLevel(level string) zapcore.Level {
	lvl, exists := logLevels[strings.ToLower(level)]
	if !exists {
		return zapcore.InfoLevel
	}
	return lvl
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...any) {
	l.zapLogger.Debug(msg, toZapFields(fields)...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...any) {
	l.zapLogger.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...any) {
	l.zapLogger.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...any) {
	l.zapLogger.Error(msg, toZapFields(fields)...)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, fields ...any) {
	l.zapLogger.Fatal(msg, toZapFields(fields)...)
}

// With creates a new logger with the given fields.
func (l *Logger) With(fields ...any) Interface {
	return &Logger{
		zapLogger: l.zapLogger.With(toZapFields(fields)...),
	}
}

// WithSource adds a scrape source name to the logger.
func (l *Logger) WithSource(source string) Interface {
	return l.With(fieldKeys.Source, source)
}

// WithRun adds a pipeline run ID to the logger.
func (l *Logger) WithRun(runID string) Interface {
	return l.With(fieldKeys.RunID, runID)
}

// WithComponent adds a component name to the logger.
func (l *Logger) WithComponent(component string) Interface {
	return l.With(fieldKeys.Component, component)
}

// WithError adds an error to the logger.
func (l *Logger) WithError(err error) Interface {
	return l.With(fieldKeys.Error, err)
}

// toZapFields converts a list of any fields to zap.Field.
func toZapFields(fields []any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	zapFields := make([]zap.Field, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		switch field := fields[i].(type) {
		case zap.Field:
			zapFields = append(zapFields, field)
		case string:
			// A string is a key; it must be followed by a value.
			if i+1 >= len(fields) {
				zapFields = append(zapFields, zap.NamedError("logger", ErrInvalidFields))
				continue
			}
			zapFields = append(zapFields, zap.Any(field, fields[i+1]))
			i++
		default:
			zapFields = append(zapFields, zap.Any(fmt.Sprintf("field_%d", i), field))
		}
	}

	return zapFields
}
