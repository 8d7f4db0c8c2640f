package velux

import (
	"io/fs"
	"log/slog"

	"github.com/Vilsol/veluxcore/pkg/config"
	"github.com/Vilsol/veluxcore/pkg/resources"
)

// Config represents configuration for [Plugin].
type Config struct {
	// DataDir is the directory holding config.yml, lang.yml and modules/.
	DataDir string

	// Version is bound to {version} in the enable message.
	Version string

	// Resources holds the embedded defaults.
	Resources fs.FS

	// Catalogue lists the modules that may be loaded.
	Catalogue *Catalogue

	// Logger is the log sink for all lifecycle output.
	Logger *slog.Logger
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		DataDir:   config.DefaultDataDir(),
		Version:   ResolveVersion(),
		Resources: resources.FS,
		Catalogue: DefaultCatalogue(),
		Logger:    slog.Default(),
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

// Option configures the Plugin.
type Option func(cfg *Config)

// WithDataDir sets the data directory.
func WithDataDir(dir string) Option {
	return func(cfg *Config) { cfg.DataDir = dir }
}

// WithVersion overrides the reported version.
func WithVersion(version string) Option {
	return func(cfg *Config) { cfg.Version = version }
}

// WithResources sets the embedded defaults.
func WithResources(resources fs.FS) Option {
	return func(cfg *Config) { cfg.Resources = resources }
}

// WithCatalogue replaces the default catalogue.
func WithCatalogue(catalogue *Catalogue) Option {
	return func(cfg *Config) { cfg.Catalogue = catalogue }
}

// WithLogger sets the log sink.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) { cfg.Logger = logger }
}
