package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hwskills/skillkit/internal/config"
	"github.com/hwskills/skillkit/internal/schematic"
	"github.com/hwskills/skillkit/internal/ui"
)

func schematicCommand() *cli.Command {
	return &cli.Command{
		Name:      "schematic",
		Usage:     "Generate a KiCad schematic from a YAML definition",
		UsageText: "skillkit schematic [options] <definition.yaml>",
		Description: `Generate a .kicad_sch file, a Markdown connection table, and an
   SVG render from a declarative YAML definition.

   Examples:
     skillkit schematic board.yaml
     skillkit schematic --output-dir hw --no-svg board.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Directory for generated files",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Output schematic filename (derived from the title when empty)",
			},
			&cli.BoolFlag{
				Name:  "no-svg",
				Usage: "Skip the SVG render",
			},
			&cli.BoolFlag{
				Name:  "no-doc",
				Usage: "Skip the Markdown connection table",
			},
		},
		Action: runSchematic,
	}
}

func runSchematic(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("schematic requires exactly 1 argument: <definition.yaml>")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	def, err := schematic.Load(cmd.Args().First())
	if err != nil {
		return err
	}

	outputDir := cmd.String("output-dir")
	if outputDir == "" {
		outputDir = cfg.Schematic.OutputDir
	}

	out, err := schematic.Generate(ctx, def, schematic.Options{
		Filename:  cmd.String("name"),
		OutputDir: outputDir,
		RenderSVG: cfg.Schematic.RenderSVG && !cmd.Bool("no-svg"),
		WriteDoc:  !cmd.Bool("no-doc"),
	})
	if err != nil {
		return err
	}

	report := func(what, path string) {
		if path != "" {
			fmt.Println(ui.StatusSuccess(what + ": " + path))
		}
	}
	report("schematic", out.SchematicPath)
	report("connection table", out.DocPath)
	report("render", out.SVGPath)
	return nil
}
