// Package lang renders user-facing messages from the language document.
package lang

import (
	"context"
	"log/slog"
	"strings"
)

// Keys of the console messages in the language document.
const (
	KeyOnEnable     = "console.on-enable"
	KeyOnDisable    = "console.on-disable"
	KeyLoadModule   = "console.load-module"
	KeyUnloadModule = "console.unload-module"
)

// Placeholder tokens understood by the console messages.
const (
	TokenModule  = "{module}"
	TokenVersion = "{version}"
)

// Placeholders maps literal tokens to their replacement.
type Placeholders map[string]string

// Module returns placeholders binding {module} to name.
func Module(name string) Placeholders {
	return Placeholders{TokenModule: name}
}

// Version returns placeholders binding {version} to version.
func Version(version string) Placeholders {
	return Placeholders{TokenVersion: version}
}

// Source resolves dotted keys to message templates.
type Source interface {
	String(path string) (string, bool)
}

// Emitter writes templated messages to a logger.
type Emitter struct {
	source Source
	logger *slog.Logger
}

// NewEmitter creates an emitter reading templates from source.
func NewEmitter(source Source, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Emitter{
		source: source,
		logger: logger,
	}
}

// Format resolves path and substitutes every placeholder literally.
// It returns false when the template is absent or blank.
func (e *Emitter) Format(path string, placeholders Placeholders) (string, bool) {
	raw, ok := e.source.String(path)
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}

	for token, value := range placeholders {
		raw = strings.ReplaceAll(raw, token, value)
	}

	return raw, true
}

// Log writes the formatted message at path at info level. Absent or blank
// templates are skipped, which lets operators silence a line by blanking it.
func (e *Emitter) Log(ctx context.Context, path string, placeholders Placeholders) {
	message, ok := e.Format(path, placeholders)
	if !ok {
		return
	}

	e.logger.InfoContext(ctx, message)
}
