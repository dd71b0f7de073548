// Package bootstrap installs the external tooling the skill corpus
// depends on: KiCad via the OS package manager, Python helper packages
// via pip, and symbol libraries via git clone.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/hwskills/skillkit/internal/logging"
	"github.com/hwskills/skillkit/internal/ui"
	"github.com/hwskills/skillkit/internal/util"
)

// DefaultPythonPackages are the pip packages the corpus helpers need.
var DefaultPythonPackages = []string{"kicad-sch-api"}

// Options configures bootstrap behavior.
type Options struct {
	// DryRun prints the commands without executing them.
	DryRun bool

	// GOOS overrides OS detection. Defaults to runtime.GOOS.
	GOOS string

	// Pip overrides the pip executable. Detected (pip3, then pip) when empty.
	Pip string

	// Packages overrides the Python packages to install.
	Packages []string

	// SymbolDir, when set, names the directory KiCad should read the
	// cloned symbol libraries from.
	SymbolDir string

	// Runner executes external commands. Defaults to NewRunner(nil, nil).
	Runner Runner

	// Out receives user-facing status output. Defaults to os.Stdout.
	Out io.Writer
}

func (o *Options) defaults() {
	if o.GOOS == "" {
		o.GOOS = runtime.GOOS
	}
	if o.Runner == nil {
		o.Runner = NewRunner(nil, nil)
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if len(o.Packages) == 0 {
		o.Packages = DefaultPythonPackages
	}
}

// InstallKiCad installs KiCad via the detected OS package manager. An
// unsupported OS or missing package manager produces a warning, not an
// error: the rest of a bootstrap run should proceed.
func InstallKiCad(ctx context.Context, opts Options) error {
	opts.defaults()

	mgr, ok := DetectManager(opts.GOOS, opts.Runner.LookPath)
	if !ok {
		logging.Warn("no supported package manager found",
			logging.Operation("kicad"),
		)
		fmt.Fprintln(opts.Out, ui.StatusWarning(
			fmt.Sprintf("no supported package manager found for %s; install KiCad manually from https://www.kicad.org/download/", opts.GOOS)))
		return nil
	}

	cmd := mgr.KiCadInstallCommand()
	if opts.DryRun {
		fmt.Fprintf(opts.Out, "would run: %s\n", joinCommand(cmd))
		return nil
	}

	fmt.Fprintln(opts.Out, ui.Info("Installing KiCad via "+string(mgr)+"..."))
	if err := opts.Runner.Run(ctx, cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf("install kicad: %w", err)
	}
	fmt.Fprintln(opts.Out, ui.StatusSuccess("KiCad installed"))
	return nil
}

// InstallPythonPackages installs the corpus helper packages with pip.
// A missing pip is a hard error: the helpers cannot work without it.
func InstallPythonPackages(ctx context.Context, opts Options) error {
	opts.defaults()

	pip := opts.Pip
	if pip == "" {
		for _, candidate := range []string{"pip3", "pip"} {
			if _, err := opts.Runner.LookPath(candidate); err == nil {
				pip = candidate
				break
			}
		}
	}
	if pip == "" {
		return fmt.Errorf("pip not found on PATH; install Python 3 first")
	}

	args := append([]string{"install", "--user"}, opts.Packages...)
	if opts.DryRun {
		fmt.Fprintf(opts.Out, "would run: %s %s\n", pip, joinArgs(args))
		return nil
	}

	if err := opts.Runner.Run(ctx, pip, args...); err != nil {
		return fmt.Errorf("install python packages: %w", err)
	}
	fmt.Fprintln(opts.Out, ui.StatusSuccess(fmt.Sprintf("installed %d Python package(s)", len(opts.Packages))))
	return nil
}

// CloneLibraries clones every library in the manifest that is not
// already present. Existing destinations are skipped, making reruns
// idempotent.
func CloneLibraries(ctx context.Context, manifest *Manifest, opts Options) error {
	opts.defaults()

	if _, err := opts.Runner.LookPath("git"); err != nil {
		return fmt.Errorf("git not found on PATH: %w", err)
	}

	cloned := 0
	for _, lib := range manifest.Libraries {
		dest := util.ExpandPath(lib.Dest, "")

		if _, err := os.Stat(dest); err == nil {
			logging.Debug("library already present",
				logging.Path(dest),
			)
			fmt.Fprintln(opts.Out, ui.StatusSkipped(lib.Name+" already cloned"))
			continue
		}

		args := []string{"clone", "--depth", "1"}
		if lib.Ref != "" {
			args = append(args, "--branch", lib.Ref)
		}
		args = append(args, lib.Repo, dest)

		if opts.DryRun {
			fmt.Fprintf(opts.Out, "would run: git %s\n", joinArgs(args))
			continue
		}

		fmt.Fprintln(opts.Out, ui.Info(fmt.Sprintf("Cloning %s...", lib.Name)))
		if err := opts.Runner.Run(ctx, "git", args...); err != nil {
			return fmt.Errorf("clone %s: %w", lib.Name, err)
		}
		cloned++
	}

	if cloned > 0 {
		fmt.Fprintln(opts.Out, ui.StatusSuccess(fmt.Sprintf("cloned %d library(ies)", cloned)))
		if opts.SymbolDir != "" {
			fmt.Fprintf(opts.Out, "Point KiCad at the symbols: export KICAD_SYMBOL_DIR=%s\n",
				util.ExpandPath(opts.SymbolDir, ""))
		} else {
			fmt.Fprintln(opts.Out, "Set KICAD_SYMBOL_DIR to the symbols checkout if KiCad does not pick it up automatically.")
		}
	}
	return nil
}

func joinCommand(cmd []string) string {
	return strings.Join(cmd, " ")
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
