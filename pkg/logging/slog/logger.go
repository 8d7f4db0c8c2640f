// Package slog assembles the process logger from the console handler and an
// optional JSON log file.
package slog

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	slogmulti "github.com/samber/slog-multi"
)

// Logger is a slog.Logger that owns its log file.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New builds a logger fanning out to the configured handlers and, when a file
// is configured, to a JSON handler appending to it.
func New(cfg Config) (*Logger, error) {
	handlers := make([]slog.Handler, 0, len(cfg.Handlers)+1)
	handlers = append(handlers, cfg.Handlers...)

	var file *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, oops.With("path", cfg.File).Wrapf(err, "failed to create log directory")
		}

		f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, oops.With("path", cfg.File).Wrapf(err, "failed to open log file")
		}

		file = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: ParseLevel(cfg.Level),
		}))
	}

	logger := slog.New(slogmulti.Fanout(handlers...))

	if cfg.GlobalDefault {
		slog.SetDefault(logger)
	}

	return &Logger{
		Logger: logger,
		file:   file,
	}, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file = nil

	return oops.Wrapf(err, "failed to close log file")
}
