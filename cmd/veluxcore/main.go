// veluxcore runs the plugin outside a game server: it enables the plugin,
// waits for SIGINT or SIGTERM and disables it again.
//
// Flags:
//
//	--data-dir=plugins/VeluxCore   data directory holding config.yml, lang.yml and modules/
//	--logging.level=debug          any settings key can be overridden as a flag
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Vilsol/veluxcore/pkg/config"
	vslog "github.com/Vilsol/veluxcore/pkg/logging/slog"
	"github.com/Vilsol/veluxcore/pkg/logging/tint"
	_ "github.com/Vilsol/veluxcore/pkg/modules/scoreboard"
	"github.com/Vilsol/veluxcore/pkg/velux"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("veluxcore", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	dataDir := flags.String("data-dir", config.DefaultDataDir(), "plugin data directory")

	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	settings, err := config.LoadSettings(
		config.WithDataDir(*dataDir),
		config.WithArgs(args),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	level := vslog.ParseLevel(settings.Logging.Level)

	options := []vslog.Option{
		vslog.WithLevel(settings.Logging.Level),
		vslog.WithHandler(tint.NewHandler(
			tint.WithLevel(level),
			tint.WithColor(settings.Logging.Color),
		)),
	}
	if settings.Logging.File != "" {
		options = append(options, vslog.WithFile(filepath.Join(*dataDir, settings.Logging.File)))
	}

	logger, err := vslog.New(vslog.NewConfig(options...))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = logger.Close() }()

	plugin := velux.NewPlugin(
		velux.WithDataDir(*dataDir),
		velux.WithLogger(logger.Logger),
	)

	if err := plugin.Run(context.Background()); err != nil {
		logger.Error("plugin stopped with errors", slog.Any("error", err))
		return 1
	}

	return 0
}
