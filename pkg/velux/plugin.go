package velux

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vilsol/slox"
	"github.com/Vilsol/veluxcore/pkg/config"
	"github.com/Vilsol/veluxcore/pkg/lang"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// ErrAlreadyEnabled is returned by OnEnable when the plugin is already enabled.
var ErrAlreadyEnabled = errors.New("plugin already enabled")

// Plugin is the entry point driven by the host: OnEnable bootstraps the data
// directory and loads modules, OnDisable unloads them.
type Plugin struct {
	config   Config
	injector do.Injector
}

// NewPlugin creates a plugin with the given options.
func NewPlugin(options ...Option) *Plugin {
	return &Plugin{
		config: NewConfig(options...),
	}
}

// OnEnable bootstraps the data directory, loads the language document and
// loads every enabled module. Failing to read the settings or language files
// is fatal; a failing module is logged and skipped.
func (p *Plugin) OnEnable(ctx context.Context) error {
	if p.injector != nil {
		return ErrAlreadyEnabled
	}

	injector := do.New()
	ctx = WithInjector(ctx, injector)
	ctx = slox.Into(ctx, p.config.Logger)

	do.ProvideValue(injector, p.config.Logger)
	do.ProvideValue(injector, p.config.Catalogue)
	Provide(ctx, p.provideLoader)
	Provide(ctx, provideEmitter)
	Provide(ctx, provideRegistry)

	loader, err := Invoke[*config.Loader](ctx)
	if err != nil {
		return oops.Wrapf(err, "failed to create config loader")
	}

	if err := loader.Init(); err != nil {
		p.config.Logger.ErrorContext(ctx, "failed bootstrapping data directory", slog.Any("error", err))
		return oops.With("data_dir", loader.DataDir()).Wrapf(err, "failed bootstrapping data directory")
	}

	registry, err := Invoke[*Registry](ctx)
	if err != nil {
		p.config.Logger.ErrorContext(ctx, "failed creating module registry", slog.Any("error", err))
		return oops.Wrapf(err, "failed to create module registry")
	}

	if err := registry.LoadModules(ctx); err != nil {
		p.config.Logger.WarnContext(ctx, "some modules were skipped", slog.Int("loaded", len(registry.Modules())))
	}

	p.injector = injector

	emitter := do.MustInvoke[*lang.Emitter](injector)
	emitter.Log(ctx, lang.KeyOnEnable, lang.Version(p.config.Version))

	return nil
}

// OnDisable unloads all loaded modules in load order. It is a no-op when the
// plugin is not enabled. The returned error joins the failures of individual
// modules, each of which has already been logged.
func (p *Plugin) OnDisable(ctx context.Context) error {
	if p.injector == nil {
		return nil
	}

	injector := p.injector
	p.injector = nil

	ctx = WithInjector(ctx, injector)
	ctx = slox.Into(ctx, p.config.Logger)

	registry := do.MustInvoke[*Registry](injector)
	err := registry.UnloadModules(ctx)

	emitter := do.MustInvoke[*lang.Emitter](injector)
	emitter.Log(ctx, lang.KeyOnDisable, nil)

	return err
}

// Modules returns the currently loaded modules.
func (p *Plugin) Modules() []Module {
	if p.injector == nil {
		return nil
	}
	return do.MustInvoke[*Registry](p.injector).Modules()
}

// Run enables the plugin, waits for an interrupt or for ctx to be cancelled
// and disables it again.
func (p *Plugin) Run(ctx context.Context) error {
	ctx = slox.Into(ctx, p.config.Logger)

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.OnEnable(shutdownCtx); err != nil {
		return err
	}

	<-shutdownCtx.Done()
	p.config.Logger.InfoContext(ctx, "shutdown signal received")

	stop()

	return p.OnDisable(context.WithoutCancel(ctx))
}

func (p *Plugin) provideLoader(i do.Injector) (*config.Loader, error) {
	logger, err := do.Invoke[*slog.Logger](i)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to retrieve logger")
	}

	return config.NewLoader(p.config.DataDir, p.config.Resources, logger), nil
}

func provideEmitter(i do.Injector) (*lang.Emitter, error) {
	loader, err := do.Invoke[*config.Loader](i)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to retrieve config loader")
	}

	doc, err := loader.LoadLang()
	if err != nil {
		return nil, oops.Wrapf(err, "failed to load language document")
	}

	return lang.NewEmitter(doc, do.MustInvoke[*slog.Logger](i)), nil
}

func provideRegistry(i do.Injector) (*Registry, error) {
	loader, err := do.Invoke[*config.Loader](i)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to retrieve config loader")
	}

	emitter, err := do.Invoke[*lang.Emitter](i)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to retrieve message emitter")
	}

	return NewRegistry(
		do.MustInvoke[*Catalogue](i),
		loader,
		emitter,
		do.MustInvoke[*slog.Logger](i),
	), nil
}
