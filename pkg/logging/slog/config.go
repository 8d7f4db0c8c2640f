package slog

import (
	"log/slog"
	"strings"
)

// Config represents configuration for the process [Logger]
type Config struct {
	// Level represents the minimum level written to the log file.
	Level string

	// File is the path of an optional JSON log file. Empty disables it.
	File string

	// Handlers are additional handlers receiving every record, usually the console.
	Handlers []slog.Handler

	// GlobalDefault indicates whether the logger should be set as the default globally.
	GlobalDefault bool
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		Level:         "info",
		GlobalDefault: true,
	}
}

// NewConfig returns configuration with provided options based on defaults.
func NewConfig(options ...Option) Config {
	cfg := NewDefaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	return cfg
}

// ParseLevel parses a level name, defaulting to info for unknown names.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Option configures the Logger.
type Option func(m *Config)

// WithLevel sets the log file level.
func WithLevel(level string) Option {
	return func(m *Config) { m.Level = level }
}

// WithFile enables the JSON log file at path.
func WithFile(path string) Option {
	return func(m *Config) { m.File = path }
}

// WithHandler adds a handler to the fan-out.
func WithHandler(handler slog.Handler) Option {
	return func(m *Config) { m.Handlers = append(m.Handlers, handler) }
}

// WithGlobalDefault toggles replacing slog's default logger.
func WithGlobalDefault(enabled bool) Option {
	return func(m *Config) { m.GlobalDefault = enabled }
}
