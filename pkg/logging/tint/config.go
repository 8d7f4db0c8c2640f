// Package tint provides the colored console handler.
package tint

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Config represents configuration for the console handler
type Config struct {
	Writer     io.Writer
	Level      slog.Leveler
	TimeFormat string
	NoColor    bool
	AddSource  bool
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		Writer:     os.Stderr,
		Level:      slog.LevelInfo,
		TimeFormat: time.TimeOnly,
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

// TintOptions returns tint.Options with config values applied.
func (c *Config) TintOptions() *tint.Options {
	return &tint.Options{
		AddSource:  c.AddSource,
		Level:      c.Level,
		TimeFormat: c.TimeFormat,
		NoColor:    c.NoColor,
	}
}

// NewHandler creates a new tint handler with config values applied.
func (c *Config) NewHandler() slog.Handler {
	return tint.NewHandler(c.Writer, c.TintOptions())
}

// NewHandler creates a tint handler from options.
func NewHandler(options ...Option) slog.Handler {
	cfg := NewConfig(options...)
	return cfg.NewHandler()
}

// Option configures the console handler.
type Option func(m *Config)

// WithWriter sets the output writer.
func WithWriter(writer io.Writer) Option {
	return func(m *Config) { m.Writer = writer }
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Leveler) Option {
	return func(m *Config) { m.Level = level }
}

// WithTimeFormat sets the timestamp layout.
func WithTimeFormat(format string) Option {
	return func(m *Config) { m.TimeFormat = format }
}

// WithColor toggles ANSI colors.
func WithColor(enabled bool) Option {
	return func(m *Config) { m.NoColor = !enabled }
}

// WithSource adds the caller location to every line.
func WithSource(enabled bool) Option {
	return func(m *Config) { m.AddSource = enabled }
}
