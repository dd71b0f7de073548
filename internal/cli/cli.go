// Package cli provides the command-line interface for skillkit.
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/hwskills/skillkit/internal/config"
	"github.com/hwskills/skillkit/internal/logging"
	"github.com/hwskills/skillkit/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "skillkit",
		Usage:   "Install hardware design skills and the tooling they depend on",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			// A broken config file must not take --help down with it.
			// Commands that need config reload it and report the error.
			cfg, err := config.Load()
			if err != nil {
				cfg = config.Default()
			}
			configureColors(cmd, cfg)
			return ctx, configureLogging(cmd, cfg)
		},
		Commands: []*cli.Command{
			versionCommand(),
			configCommand(),
			listCommand(),
			validateCommand(),
			installCommand(),
			depsCommand(),
			schematicCommand(),
		},
	}
	return app.Run(ctx, args)
}

// configureColors sets up color output. The --no-color flag and the
// config file can each disable colors; neither can re-enable them.
func configureColors(cmd *cli.Command, cfg *config.Config) {
	if cmd.Bool("no-color") || !cfg.Output.Color {
		ui.DisableColors()
	}
}

// configureLogging sets up the logging level from CLI flags and config.
// Flags win: --debug beats any verbose setting.
func configureLogging(cmd *cli.Command, cfg *config.Config) error {
	opts := logging.DefaultOptions()

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") || cfg.Output.Verbose {
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}
