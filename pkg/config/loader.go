package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Loader materializes configuration documents inside a data directory, seeding
// missing files from a set of embedded defaults.
type Loader struct {
	dataDir  string
	defaults fs.FS
	logger   *slog.Logger
}

// NewLoader creates a loader for dataDir. defaults may be nil.
func NewLoader(dataDir string, defaults fs.FS, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		dataDir:  dataDir,
		defaults: defaults,
		logger:   logger,
	}
}

// DataDir returns the directory the loader operates in.
func (l *Loader) DataDir() string {
	return l.dataDir
}

// Init bootstraps the data directory: the settings file is seeded from the
// defaults and the modules directory is created. Failing to create the modules
// directory is logged and does not abort the bootstrap.
func (l *Loader) Init() error {
	if err := l.ensure(SettingsFile, SettingsFile); err != nil {
		return oops.Wrapf(err, "failed to bootstrap %s", SettingsFile)
	}

	modulesDir := l.path(ModulesDir)
	if err := os.MkdirAll(modulesDir, dirMode); err != nil {
		l.logger.Error("failed to create modules folder",
			slog.String("path", modulesDir),
			slog.Any("error", err),
		)
	}

	return nil
}

// LoadLang loads the language document.
func (l *Loader) LoadLang() (*Document, error) {
	return l.EnsureAndLoad(LangFile, LangFile)
}

// LoadModuleConfig loads the configuration document of the named module.
func (l *Loader) LoadModuleConfig(name string) (*Document, error) {
	fileName := ModuleFile(name)
	return l.EnsureAndLoad(fileName, fileName)
}

// EnsureAndLoad copies the embedded resource to fileName if no such file exists
// yet, then loads the on-disk file with the embedded resource as its defaults.
// An existing file is never overwritten.
func (l *Loader) EnsureAndLoad(fileName, resourcePath string) (*Document, error) {
	if err := l.ensure(fileName, resourcePath); err != nil {
		return nil, err
	}

	primary, err := l.loadFile(fileName)
	if err != nil {
		return nil, err
	}

	defaults, err := l.loadResource(resourcePath)
	if err != nil {
		return nil, err
	}

	return NewDocument(primary, defaults), nil
}

func (l *Loader) path(fileName string) string {
	return filepath.Join(l.dataDir, filepath.FromSlash(fileName))
}

func (l *Loader) ensure(fileName, resourcePath string) error {
	target := l.path(fileName)

	if _, err := os.Stat(target); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return oops.With("path", target).Wrapf(err, "failed to stat file")
	}

	data, err := l.readResource(resourcePath)
	if err != nil {
		return err
	}

	if data == nil {
		l.logger.Debug("no embedded default, skipping file creation", slog.String("resource", resourcePath))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return oops.With("path", target).Wrapf(err, "failed to create parent directory")
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return oops.With("path", target).Wrapf(err, "failed to create file")
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return oops.With("path", target).Wrapf(err, "failed to write default contents")
	}

	if err := f.Close(); err != nil {
		return oops.With("path", target).Wrapf(err, "failed to close file")
	}

	l.logger.Debug("created file from embedded default", slog.String("path", target))

	return nil
}

func (l *Loader) loadFile(fileName string) (*koanf.Koanf, error) {
	target := l.path(fileName)
	k := koanf.New(delimiter)

	if _, err := os.Stat(target); errors.Is(err, fs.ErrNotExist) {
		return k, nil
	}

	if err := k.Load(file.Provider(target), yaml.Parser()); err != nil {
		return nil, oops.With("path", target).Wrapf(err, "failed to load file")
	}

	return k, nil
}

// readResource returns nil data without an error when the resource is absent.
func (l *Loader) readResource(resourcePath string) ([]byte, error) {
	if l.defaults == nil {
		return nil, nil
	}

	data, err := fs.ReadFile(l.defaults, resourcePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.With("resource", resourcePath).Wrapf(err, "failed to read embedded resource")
	}

	return data, nil
}

func (l *Loader) loadResource(resourcePath string) (*koanf.Koanf, error) {
	data, err := l.readResource(resourcePath)
	if err != nil || data == nil {
		return nil, err
	}

	values, err := yaml.Parser().Unmarshal(data)
	if err != nil {
		return nil, oops.With("resource", resourcePath).Wrapf(err, "failed to parse embedded resource")
	}

	k := koanf.New(delimiter)
	if err := k.Load(confmap.Provider(values, ""), nil); err != nil {
		return nil, oops.With("resource", resourcePath).Wrapf(err, "failed to load embedded resource")
	}

	return k, nil
}
