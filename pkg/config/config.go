// Package config provides the configuration layer of veluxcore using koanf.
// It materializes YAML documents in the plugin data directory from embedded
// defaults and loads the host settings from files, environment variables and
// CLI flags.
package config

const (
	defaultEnvPrefix  = "VELUX_"
	defaultConfigName = "config"
	defaultDataDir    = "plugins/VeluxCore"
)

// Config holds the options used to load [Settings].
type Config struct {
	// EnvPrefix specifies the prefix for environment variables used to override settings.
	EnvPrefix string

	// DataDir specifies the directory searched for the settings file.
	DataDir string

	// ConfigName specifies the base name of the settings file without its file extension.
	ConfigName string

	// Args contains the command-line arguments to be parsed for settings overrides.
	Args []string
}

// Option manipulates Config.
type Option func(cfg *Config)

// NewDefaultConfig returns default configuration.
func NewDefaultConfig() Config {
	return Config{
		EnvPrefix:  defaultEnvPrefix,
		DataDir:    defaultDataDir,
		ConfigName: defaultConfigName,
		Args:       nil,
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

// DefaultDataDir returns the data directory used when none is configured.
func DefaultDataDir() string {
	return defaultDataDir
}

// WithEnvPrefix sets the environment variable prefix (default: "VELUX_").
func WithEnvPrefix(prefix string) Option {
	return func(cfg *Config) {
		cfg.EnvPrefix = prefix
	}
}

// WithDataDir sets the directory searched for the settings file.
func WithDataDir(dir string) Option {
	return func(cfg *Config) {
		cfg.DataDir = dir
	}
}

// WithConfigName sets the base settings file name without extension (default: "config").
func WithConfigName(name string) Option {
	return func(cfg *Config) {
		cfg.ConfigName = name
	}
}

// WithArgs sets CLI arguments to parse for settings overrides.
func WithArgs(args []string) Option {
	return func(cfg *Config) {
		cfg.Args = args
	}
}
