package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

var validLevels = map[string]struct{}{
	"debug":   {},
	"info":    {},
	"warn":    {},
	"warning": {},
	"error":   {},
}

// Settings is the host configuration read from the settings file.
type Settings struct {
	Logging LoggingSettings `koanf:"logging"`
}

// LoggingSettings configures the process logger.
type LoggingSettings struct {
	// Level is the minimum level written to the console and the log file.
	Level string `koanf:"level"`

	// Color enables ANSI colors on the console.
	Color bool `koanf:"color"`

	// File is an optional log file path relative to the data directory.
	File string `koanf:"file"`
}

// Validate checks the logging level.
func (s *Settings) Validate() error {
	if _, ok := validLevels[strings.ToLower(s.Logging.Level)]; !ok {
		return oops.With("level", s.Logging.Level).Errorf("unknown logging level")
	}
	return nil
}

func defaultSettings() map[string]any {
	return map[string]any{
		"logging.level": "info",
		"logging.color": true,
		"logging.file":  "",
	}
}

type configFile struct {
	path   string
	parser koanf.Parser
}

type formatDef struct {
	ext    string
	parser koanf.Parser
}

func getSupportedFormats() []formatDef {
	return []formatDef{
		{".yml", yaml.Parser()},
		{".yaml", yaml.Parser()},
		{".json", json.Parser()},
		{".toml", toml.Parser()},
	}
}

func discoverConfigFiles(cfg Config) []configFile {
	var files []configFile

	for _, format := range getSupportedFormats() {
		path := filepath.Join(cfg.DataDir, cfg.ConfigName+format.ext)
		if _, err := os.Stat(path); err == nil {
			files = append(files, configFile{
				path:   path,
				parser: format.parser,
			})
		}
	}

	return files
}

// LoadSettings loads [Settings] with the precedence defaults < files < env < flags.
func LoadSettings(options ...Option) (*Settings, error) {
	cfg := NewConfig(options...)
	k := koanf.New(delimiter)

	if err := k.Load(confmap.Provider(defaultSettings(), delimiter), nil); err != nil {
		return nil, oops.Wrapf(err, "failed to load default settings")
	}

	for _, cf := range discoverConfigFiles(cfg) {
		if err := k.Load(file.Provider(cf.path), cf.parser); err != nil {
			return nil, oops.Wrapf(err, "failed to load settings file: %s", cf.path)
		}
	}

	if err := loadEnvVars(k, cfg.EnvPrefix); err != nil {
		return nil, err
	}

	if err := loadCLIFlags(k, cfg.Args); err != nil {
		return nil, err
	}

	return unmarshalAndValidate[Settings](k, "")
}

func loadEnvVars(k *koanf.Koanf, prefix string) error {
	err := k.Load(env.Provider(prefix, delimiter, func(s string) string {
		// VELUX_LOGGING_LEVEL -> logging.level
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, prefix), "_", "."))
	}), nil)
	if err != nil {
		return oops.Wrapf(err, "failed to load env vars")
	}
	return nil
}

func loadCLIFlags(k *koanf.Koanf, args []string) error {
	if args == nil {
		return nil
	}

	flagSet := pflag.NewFlagSet("settings", pflag.ContinueOnError)
	flagSet.ParseErrorsWhitelist.UnknownFlags = true

	// Pre-populate flags from existing koanf keys so posflag can override them
	for _, key := range k.Keys() {
		switch v := k.Get(key).(type) {
		case string:
			flagSet.String(key, v, "")
		case int:
			flagSet.Int(key, v, "")
		case int64:
			flagSet.Int64(key, v, "")
		case float64:
			flagSet.Float64(key, v, "")
		case bool:
			flagSet.Bool(key, v, "")
		default:
			flagSet.String(key, "", "")
		}
	}

	if err := flagSet.Parse(args); err != nil {
		return oops.Wrapf(err, "failed to parse CLI flags")
	}

	if err := k.Load(posflag.Provider(flagSet, delimiter, k), nil); err != nil {
		return oops.Wrapf(err, "failed to load CLI flags into koanf")
	}
	return nil
}
