package velux_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/veluxcore/pkg/modules/scoreboard"
	"github.com/Vilsol/veluxcore/pkg/resources"
	"github.com/Vilsol/veluxcore/pkg/velux"
)

func pluginResources(enabled string) fstest.MapFS {
	return fstest.MapFS{
		"config.yml": {Data: []byte("logging:\n  level: info\n")},
		"lang.yml": {Data: []byte(
			"console:\n" +
				"  on-enable: \"Enabled v{version}\"\n" +
				"  on-disable: \"Disabled\"\n" +
				"  load-module: \"Module {module} loaded.\"\n" +
				"  unload-module: \"Module {module} unloaded.\"\n",
		)},
		"modules/scoreboard.yml": {Data: []byte("enabled: " + enabled + "\n")},
	}
}

func newPlugin(t *testing.T, dir string, fsys fstest.MapFS, modules ...*fakeModule) (*velux.Plugin, *recordingHandler) {
	t.Helper()

	entries := make([]velux.Entry, 0, len(modules))
	for _, m := range modules {
		entries = append(entries, entry(m))
	}

	logger, handler := newLogger(t)

	return velux.NewPlugin(
		velux.WithDataDir(dir),
		velux.WithVersion("1.0.0"),
		velux.WithResources(fsys),
		velux.WithCatalogue(velux.NewCatalogue(entries...)),
		velux.WithLogger(logger),
	), handler
}

func TestPlugin_EnableDisableEnabledModule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j := &journal{}
	board := &fakeModule{name: "Scoreboard", journal: j}
	plugin, handler := newPlugin(t, dir, pluginResources("true"), board)

	testza.AssertNil(t, plugin.OnEnable(context.Background()))
	testza.AssertEqual(t, 1, len(plugin.Modules()))
	testza.AssertEqual(t, 1, handler.count(slog.LevelInfo, "Module Scoreboard loaded."))
	testza.AssertEqual(t, 1, handler.count(slog.LevelInfo, "Enabled v1.0.0"))

	for _, name := range []string{"config.yml", "lang.yml", filepath.Join("modules", "scoreboard.yml")} {
		_, err := os.Stat(filepath.Join(dir, name))
		testza.AssertNil(t, err, name)
	}

	testza.AssertNil(t, plugin.OnDisable(context.Background()))
	testza.AssertEqual(t, 0, len(plugin.Modules()))
	testza.AssertEqual(t, []string{"load:Scoreboard", "unload:Scoreboard"}, j.calls)
	testza.AssertEqual(t, 1, handler.count(slog.LevelInfo, "Module Scoreboard unloaded."))
	testza.AssertEqual(t, 1, handler.count(slog.LevelInfo, "Disabled"))
}

func TestPlugin_EnableDisabledModule(t *testing.T) {
	t.Parallel()

	j := &journal{}
	board := &fakeModule{name: "Scoreboard", journal: j}
	plugin, handler := newPlugin(t, t.TempDir(), pluginResources("false"), board)

	testza.AssertNil(t, plugin.OnEnable(context.Background()))
	testza.AssertEqual(t, 0, len(plugin.Modules()))
	testza.AssertEqual(t, []string{"Enabled v1.0.0"}, handler.messages(slog.LevelInfo))

	testza.AssertNil(t, plugin.OnDisable(context.Background()))
	testza.AssertEqual(t, 0, len(j.calls))
}

func TestPlugin_OnDiskFileWinsOverEmbedded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testza.AssertNil(t, os.MkdirAll(filepath.Join(dir, "modules"), 0o755))
	testza.AssertNil(t, os.WriteFile(filepath.Join(dir, "modules", "scoreboard.yml"), []byte("enabled: false\n"), 0o644))

	j := &journal{}
	plugin, _ := newPlugin(t, dir, pluginResources("true"), &fakeModule{name: "Scoreboard", journal: j})

	testza.AssertNil(t, plugin.OnEnable(context.Background()))
	testza.AssertEqual(t, 0, len(plugin.Modules()))
	testza.AssertNil(t, plugin.OnDisable(context.Background()))
}

func TestPlugin_BlankLanguageLinesAreSilent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testza.AssertNil(t, os.WriteFile(filepath.Join(dir, "lang.yml"), []byte(
		"console:\n  on-enable: \"\"\n  load-module: \"   \"\n",
	), 0o644))

	plugin, handler := newPlugin(t, dir, pluginResources("true"), &fakeModule{name: "Scoreboard", journal: &journal{}})

	testza.AssertNil(t, plugin.OnEnable(context.Background()))
	testza.AssertEqual(t, 1, len(plugin.Modules()))
	testza.AssertEqual(t, 0, len(handler.messages(slog.LevelInfo)))

	testza.AssertNil(t, plugin.OnDisable(context.Background()))
	testza.AssertEqual(t, []string{"Module Scoreboard unloaded.", "Disabled"}, handler.messages(slog.LevelInfo))
}

func TestPlugin_EnableTwiceIsRejected(t *testing.T) {
	t.Parallel()

	plugin, _ := newPlugin(t, t.TempDir(), pluginResources("true"), &fakeModule{name: "Scoreboard", journal: &journal{}})

	testza.AssertNil(t, plugin.OnEnable(context.Background()))
	testza.AssertTrue(t, errors.Is(plugin.OnEnable(context.Background()), velux.ErrAlreadyEnabled))
	testza.AssertNil(t, plugin.OnDisable(context.Background()))
}

func TestPlugin_DisableWithoutEnableIsNoop(t *testing.T) {
	t.Parallel()

	plugin, handler := newPlugin(t, t.TempDir(), pluginResources("true"))

	testza.AssertNil(t, plugin.OnDisable(context.Background()))
	testza.AssertEqual(t, 0, len(handler.records))
}

func TestPlugin_UnreadableLanguageIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testza.AssertNil(t, os.WriteFile(filepath.Join(dir, "lang.yml"), []byte("console: [broken"), 0o644))

	j := &journal{}
	plugin, handler := newPlugin(t, dir, pluginResources("true"), &fakeModule{name: "Scoreboard", journal: j})

	testza.AssertNotNil(t, plugin.OnEnable(context.Background()))
	testza.AssertEqual(t, 1, handler.count(slog.LevelError, "failed creating module registry"))
	testza.AssertEqual(t, 0, len(j.calls))
	testza.AssertEqual(t, 0, len(plugin.Modules()))
}

func TestPlugin_RunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	j := &journal{}
	plugin, handler := newPlugin(t, t.TempDir(), pluginResources("true"), &fakeModule{name: "Scoreboard", journal: j})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	testza.AssertNil(t, plugin.Run(ctx))
	testza.AssertEqual(t, []string{"load:Scoreboard", "unload:Scoreboard"}, j.calls)
	testza.AssertEqual(t, 1, handler.count(slog.LevelInfo, "shutdown signal received"))
	testza.AssertEqual(t, 1, handler.count(slog.LevelInfo, "Disabled"))
}

func TestPlugin_EmbeddedResourcesWithScoreboard(t *testing.T) {
	t.Parallel()

	logger, handler := newLogger(t)
	plugin := velux.NewPlugin(
		velux.WithDataDir(t.TempDir()),
		velux.WithVersion("2.0.0"),
		velux.WithResources(resources.FS),
		velux.WithCatalogue(velux.NewCatalogue(velux.Entry{
			Name: scoreboard.Name,
			New:  func() velux.Module { return scoreboard.NewModule() },
		})),
		velux.WithLogger(logger),
	)

	testza.AssertNil(t, plugin.OnEnable(context.Background()))

	modules := plugin.Modules()
	testza.AssertEqual(t, 1, len(modules))

	board, ok := modules[0].(*scoreboard.Module)
	testza.AssertTrue(t, ok)
	testza.AssertNotNil(t, board.Config())
	testza.AssertEqual(t, 1, handler.count(slog.LevelInfo, "Loaded module Scoreboard."))
	testza.AssertEqual(t, 1, handler.count(slog.LevelInfo, "VeluxCore v2.0.0 has been enabled."))

	testza.AssertNil(t, plugin.OnDisable(context.Background()))
	testza.AssertNil(t, board.Config())
	testza.AssertEqual(t, 1, handler.count(slog.LevelInfo, "Unloaded module Scoreboard."))
}
