package velux

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Vilsol/veluxcore/pkg/config"
	"github.com/Vilsol/veluxcore/pkg/lang"
	"github.com/samber/oops"
	"github.com/sourcegraph/conc/panics"
)

// ErrAlreadyLoaded is returned when modules are loaded twice without an unload in between.
var ErrAlreadyLoaded = errors.New("modules already loaded")

// ConfigLoader provides module configuration documents.
type ConfigLoader interface {
	LoadModuleConfig(name string) (*config.Document, error)
}

// Messenger emits language messages.
type Messenger interface {
	Log(ctx context.Context, path string, placeholders lang.Placeholders)
}

// Registry instantiates catalogued modules, activates the enabled ones and
// retains them for deactivation. It is not safe for concurrent use.
type Registry struct {
	catalogue *Catalogue
	loader    ConfigLoader
	messages  Messenger
	logger    *slog.Logger
	modules   []Module
}

// NewRegistry creates a registry over catalogue.
func NewRegistry(catalogue *Catalogue, loader ConfigLoader, messages Messenger, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		catalogue: catalogue,
		loader:    loader,
		messages:  messages,
		logger:    logger,
	}
}

// LoadModules walks the catalogue in order and loads every module whose
// configuration has enabled set to true. The flag is read once here and never
// re-checked. A module whose configuration cannot be read or whose Load fails
// is logged and skipped; the joined errors of skipped modules are returned.
func (r *Registry) LoadModules(ctx context.Context) error {
	if len(r.modules) > 0 {
		return ErrAlreadyLoaded
	}

	var errs []error

	for _, entry := range r.catalogue.Entries() {
		if err := r.loadModule(ctx, entry); err != nil {
			r.logger.ErrorContext(ctx, "failed loading module",
				slog.String("module", entry.Name),
				slog.Any("error", err),
			)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (r *Registry) loadModule(ctx context.Context, entry Entry) error {
	module := entry.New()
	if module == nil {
		return oops.With("module", entry.Name).Errorf("module constructor returned nil")
	}

	name := module.Name()
	if !strings.EqualFold(name, entry.Name) {
		return oops.
			With("module", entry.Name).
			With("name", name).
			Errorf("module name does not match its catalogue entry")
	}

	doc, err := r.loader.LoadModuleConfig(name)
	if err != nil {
		return oops.With("module", name).Wrapf(err, "failed loading module configuration")
	}

	if !doc.Bool(EnabledKey) {
		return nil
	}

	if err := guard(func() error { return module.Load(ctx, doc) }); err != nil {
		return oops.With("module", name).Wrapf(err, "module load hook failed")
	}

	r.modules = append(r.modules, module)
	r.messages.Log(ctx, lang.KeyLoadModule, lang.Module(name))

	return nil
}

// UnloadModules unloads every loaded module in load order and clears the
// registry. A failing module is logged instead of announced and does not stop
// the remaining ones from unloading.
func (r *Registry) UnloadModules(ctx context.Context) error {
	var errs []error

	for _, module := range r.modules {
		name := module.Name()

		if err := guard(func() error { return module.Unload(ctx) }); err != nil {
			r.logger.ErrorContext(ctx, "failed unloading module",
				slog.String("module", name),
				slog.Any("error", err),
			)
			errs = append(errs, oops.With("module", name).Wrapf(err, "module unload hook failed"))
			continue
		}

		r.messages.Log(ctx, lang.KeyUnloadModule, lang.Module(name))
	}

	r.modules = nil

	return errors.Join(errs...)
}

// Modules returns the loaded modules in load order.
func (r *Registry) Modules() []Module {
	out := make([]Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// guard runs fn and converts a panic into an error.
func guard(fn func() error) error {
	var err error
	if recovered := panics.Try(func() { err = fn() }); recovered != nil {
		return recovered.AsError()
	}
	return err
}
