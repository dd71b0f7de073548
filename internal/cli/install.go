package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hwskills/skillkit/internal/config"
	"github.com/hwskills/skillkit/internal/installer"
	"github.com/hwskills/skillkit/internal/model"
	"github.com/hwskills/skillkit/internal/progress"
	"github.com/hwskills/skillkit/internal/ui"
	"github.com/hwskills/skillkit/internal/ui/tui"
)

func installCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install skills into a project",
		UsageText: "skillkit install [options] [skill names...]",
		Description: `Install skill documents into a project's skills directory.

   Skills from a source directory are symlinked so edits propagate;
   skills from the embedded corpus are copied. Names starting with "_"
   are templates and are never installed.

   Examples:
     skillkit install
     skillkit install --target other/.claude/skills kicad-schematics
     skillkit install --source ./skills --watch`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "Directory to install into",
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Skills directory (defaults to the embedded corpus)",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy files instead of symlinking",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Preview changes without modifying files",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Replace existing regular files in the target",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Pick skills to install in a terminal UI",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Watch the source directory and reinstall on changes",
			},
		},
		Action: runInstall,
	}
}

func runInstall(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	source := cmd.String("source")
	if source == "" {
		source = cfg.Install.Source
	}
	target := cmd.String("target")
	if target == "" {
		target = cfg.Install.Target
	}

	mode := model.LinkMode(cfg.Install.Mode)
	if cmd.Bool("copy") {
		mode = model.LinkCopy
	}

	opts := installer.Options{
		TargetDir: target,
		Mode:      mode,
		DryRun:    cmd.Bool("dry-run"),
		Force:     cmd.Bool("force"),
		Names:     cmd.Args().Slice(),
	}

	if cmd.Bool("watch") {
		if source == "" {
			return fmt.Errorf("--watch requires --source: the embedded corpus does not change")
		}
		if cmd.Bool("interactive") {
			return fmt.Errorf("--watch and --interactive cannot be combined")
		}
		return watchInstall(ctx, source, opts)
	}

	skillSet, err := loadSkills(source)
	if err != nil {
		return err
	}

	if cmd.Bool("interactive") {
		picked, err := tui.RunPicker(skillSet)
		if err != nil {
			return fmt.Errorf("skill picker: %w", err)
		}
		if picked.Action != tui.PickerActionInstall || len(picked.Skills) == 0 {
			fmt.Println("Nothing selected.")
			return nil
		}
		skillSet = picked.Skills
	}

	return installOnce(skillSet, opts)
}

// installOnce runs a single install pass with a progress bar and prints
// the summary.
func installOnce(skillSet []model.Skill, opts installer.Options) error {
	bar := progress.Simple(int64(len(skillSet)), "Installing skills")
	opts.Observer = func(r installer.SkillResult) {
		_ = bar.Add(1)
	}

	result, err := installer.New().Install(skillSet, opts)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	fmt.Print(result.Summary())
	if !result.Success() {
		return fmt.Errorf("%d skill(s) failed to install", len(result.Failed()))
	}
	return nil
}

// watchInstall installs once, then reinstalls whenever the source
// directory changes.
func watchInstall(ctx context.Context, source string, opts installer.Options) error {
	reinstall := func() error {
		skillSet, err := loadSkills(source)
		if err != nil {
			return err
		}
		result, err := installer.New().Install(skillSet, opts)
		if err != nil {
			return err
		}
		fmt.Println(ui.StatusSuccess(fmt.Sprintf("reinstalled %d skill(s)", result.Installed())))
		return nil
	}

	if err := reinstall(); err != nil {
		return err
	}

	fmt.Println(ui.Dim("watching " + source + " (ctrl+c to stop)"))
	return installer.Watch(ctx, source, installer.DefaultDebounce, reinstall)
}
