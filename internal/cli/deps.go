package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hwskills/skillkit/internal/bootstrap"
	"github.com/hwskills/skillkit/internal/config"
)

func depsCommand() *cli.Command {
	return &cli.Command{
		Name:      "deps",
		Usage:     "Install the external tooling the skills depend on",
		UsageText: "skillkit deps [options]",
		Description: `Bootstrap KiCad, Python helper packages, and symbol libraries.

   With no selection flags everything is installed. A missing package
   manager only skips the KiCad step; a missing pip or git fails the
   step that needs it.

   Examples:
     skillkit deps
     skillkit deps --kicad --dry-run
     skillkit deps --libs --manifest libs.toml`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "kicad",
				Usage: "Install KiCad via the OS package manager",
			},
			&cli.BoolFlag{
				Name:  "python",
				Usage: "Install Python helper packages via pip",
			},
			&cli.BoolFlag{
				Name:  "libs",
				Usage: "Clone KiCad symbol and footprint libraries",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Install everything (the default when no selection flag is given)",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "TOML manifest of libraries to clone",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Print the commands without executing them",
			},
		},
		Action: runDeps,
	}
}

func runDeps(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := bootstrap.Options{
		DryRun:    cmd.Bool("dry-run"),
		Pip:       cfg.Bootstrap.Pip,
		Packages:  cfg.Bootstrap.Packages,
		SymbolDir: cfg.Bootstrap.SymbolDir,
	}

	// No selection flags means install everything.
	all := cmd.Bool("all") ||
		(!cmd.Bool("kicad") && !cmd.Bool("python") && !cmd.Bool("libs"))

	if all || cmd.Bool("kicad") {
		if err := bootstrap.InstallKiCad(ctx, opts); err != nil {
			return err
		}
	}

	if all || cmd.Bool("python") {
		if err := bootstrap.InstallPythonPackages(ctx, opts); err != nil {
			return err
		}
	}

	if all || cmd.Bool("libs") {
		manifestPath := cmd.String("manifest")
		if manifestPath == "" {
			manifestPath = cfg.Bootstrap.Manifest
		}

		manifest := bootstrap.DefaultManifest()
		if manifestPath != "" {
			manifest, err = bootstrap.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
		}
		if err := bootstrap.CloneLibraries(ctx, manifest, opts); err != nil {
			return err
		}
	}

	return nil
}
