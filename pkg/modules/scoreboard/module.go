// Package scoreboard provides the sidebar scoreboard module.
package scoreboard

import (
	"context"
	"log/slog"

	"github.com/Vilsol/slox"
	"github.com/Vilsol/veluxcore/pkg/config"
	"github.com/Vilsol/veluxcore/pkg/velux"
	"github.com/samber/oops"
)

// Name is the module name; modules/scoreboard.yml holds its configuration.
const Name = "Scoreboard"

var _ velux.Module = (*Module)(nil)

func init() {
	velux.Register(Name, func() velux.Module { return NewModule() })
}

// Module keeps the scoreboard configuration while loaded.
type Module struct {
	document *config.Document
	config   *Config
}

// NewModule creates an unloaded scoreboard module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return Name
}

// Load decodes and stores the module configuration.
func (m *Module) Load(ctx context.Context, doc *config.Document) error {
	cfg, err := config.Decode[Config](doc, "")
	if err != nil {
		return oops.Wrapf(err, "failed to decode scoreboard config")
	}

	m.document = doc
	m.config = cfg

	slox.Debug(ctx, "scoreboard configured",
		slog.String("title", cfg.Title),
		slog.Int("lines", len(cfg.Lines)),
		slog.Duration("update_interval", cfg.UpdateInterval),
	)

	return nil
}

// Unload drops the stored configuration.
func (m *Module) Unload(_ context.Context) error {
	m.document = nil
	m.config = nil
	return nil
}

// Config returns the decoded configuration, or nil when not loaded.
func (m *Module) Config() *Config {
	return m.config
}

// Document returns the raw configuration document, or nil when not loaded.
func (m *Module) Document() *config.Document {
	return m.document
}
