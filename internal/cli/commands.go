package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/hwskills/skillkit/corpus"
	"github.com/hwskills/skillkit/internal/config"
	"github.com/hwskills/skillkit/internal/model"
	"github.com/hwskills/skillkit/internal/skills"
	"github.com/hwskills/skillkit/internal/ui"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Display version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Printf("skillkit %s\n", Version)
			fmt.Printf("  commit: %s\n", Commit)
			fmt.Printf("  built:  %s\n", BuildDate)
			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Display current configuration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a config file with the current defaults",
				Action: func(_ context.Context, _ *cli.Command) error {
					if config.Exists() {
						return fmt.Errorf("config file already exists at %s", config.FilePath())
					}
					if err := config.Default().Save(); err != nil {
						return err
					}
					fmt.Println(ui.StatusSuccess("wrote " + config.FilePath()))
					return nil
				},
			},
			{
				Name:  "path",
				Usage: "Print the config file path",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Println(config.FilePath())
					return nil
				},
			},
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Println(ui.Bold("Install"))
			fmt.Printf("  target: %s\n", cfg.Install.Target)
			fmt.Printf("  source: %s\n", orEmbedded(cfg.Install.Source))
			fmt.Printf("  mode:   %s\n", cfg.Install.Mode)
			fmt.Println(ui.Bold("Schematic"))
			fmt.Printf("  output_dir: %s\n", cfg.Schematic.OutputDir)
			fmt.Printf("  render_svg: %t\n", cfg.Schematic.RenderSVG)
			fmt.Println(ui.Bold("Output"))
			fmt.Printf("  color:   %t\n", cfg.Output.Color)
			fmt.Printf("  verbose: %t\n", cfg.Output.Verbose)
			if cfg.Bootstrap.Manifest != "" {
				fmt.Println(ui.Bold("Bootstrap"))
				fmt.Printf("  manifest: %s\n", cfg.Bootstrap.Manifest)
			}
			fmt.Println()
			fmt.Println(ui.Dim("config file: " + config.FilePath()))
			return nil
		},
	}
}

func orEmbedded(source string) string {
	if source == "" {
		return "(embedded corpus)"
	}
	return source
}

// loadSkills parses the skill set from a directory on disk, or from the
// embedded corpus when source is empty.
func loadSkills(source string) ([]model.Skill, error) {
	if source == "" {
		return skills.New(corpus.Files, corpus.Dir).Parse()
	}
	parser, err := skills.FromDir(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse()
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List available skills",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Skills directory (defaults to the embedded corpus)",
			},
			&cli.BoolFlag{
				Name:  "templates",
				Usage: "Include template files in the listing",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			skillSet, err := loadSkills(cmd.String("source"))
			if err != nil {
				return err
			}

			shown := 0
			for _, s := range skillSet {
				if s.Template && !cmd.Bool("templates") {
					continue
				}
				name := ui.Bold(s.Name)
				if s.Template {
					name += ui.Dim(" (template)")
				}
				fmt.Println(name)
				if s.Description != "" {
					fmt.Println("  " + ui.Dim(s.Description))
				}
				if len(s.Tools) > 0 {
					fmt.Println("  " + ui.Dim("tools: "+strings.Join(s.Tools, ", ")))
				}
				shown++
			}
			fmt.Printf("\n%d skill(s)\n", shown)
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate skill documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Skills directory (defaults to the embedded corpus)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			skillSet, err := loadSkills(cmd.String("source"))
			if err != nil {
				return err
			}

			failures := 0
			for _, s := range skillSet {
				problems := validateSkill(s)
				if len(problems) == 0 {
					fmt.Println(ui.StatusSuccess(s.Name))
					continue
				}
				failures++
				fmt.Println(ui.StatusError(s.Name))
				for _, p := range problems {
					fmt.Println("    " + p)
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d skill(s) failed validation", failures, len(skillSet))
			}
			fmt.Printf("\n%d skill(s) valid\n", len(skillSet))
			return nil
		},
	}
}

// validateSkill checks one skill document: frontmatter completeness,
// name shape, and Markdown structure (at least one heading).
func validateSkill(s model.Skill) []string {
	var problems []string

	if err := skills.ValidateName(s.Name); err != nil {
		problems = append(problems, err.Error())
	}
	if s.Description == "" {
		problems = append(problems, "missing description in frontmatter")
	}
	if strings.TrimSpace(s.Content) == "" {
		problems = append(problems, "document body is empty")
	} else if !hasHeading(s.Content) {
		problems = append(problems, "document body has no Markdown heading")
	}

	sort.Strings(problems)
	return problems
}

// hasHeading parses the Markdown body and reports whether any heading
// exists at the top level.
func hasHeading(content string) bool {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader([]byte(content)))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if _, ok := n.(*ast.Heading); ok {
			return true
		}
	}
	return false
}
