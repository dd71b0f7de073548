// Package installer mirrors skill documents into a target directory via
// symlinks or copies. Installs are idempotent: existing links are removed
// and recreated, and templates are never installed.
package installer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hwskills/skillkit/internal/logging"
	"github.com/hwskills/skillkit/internal/model"
	"github.com/hwskills/skillkit/internal/util"
)

// Options configures an install run.
type Options struct {
	// TargetDir is the directory skills are installed into. Created if
	// missing.
	TargetDir string

	// Mode selects symlink or copy installation. Embedded skills are
	// always copied regardless of mode.
	Mode model.LinkMode

	// DryRun reports what would happen without touching the filesystem.
	DryRun bool

	// Force replaces existing regular files at target paths. Without it
	// only skillkit's own symlinks are replaced.
	Force bool

	// Names restricts the install to the named skills. Empty means all.
	Names []string

	// Observer, when set, is called after each skill is processed.
	Observer func(SkillResult)
}

// DefaultOptions returns the default install options.
func DefaultOptions() Options {
	return Options{
		TargetDir: util.DefaultTargetPath(),
		Mode:      model.LinkSymlink,
	}
}

// Installer installs skills into a target directory.
type Installer struct{}

// New creates a new Installer.
func New() *Installer {
	return &Installer{}
}

// Install mirrors the given skills into the target directory. Template
// skills are skipped. The returned Result describes every processed
// skill; an error is returned only when the run as a whole cannot
// proceed (e.g. the target directory cannot be created).
func (i *Installer) Install(skillSet []model.Skill, opts Options) (*Result, error) {
	defer logging.Timer("install")()

	if opts.TargetDir == "" {
		opts.TargetDir = util.DefaultTargetPath()
	}
	if opts.Mode == "" {
		opts.Mode = model.LinkSymlink
	}

	target, err := filepath.Abs(opts.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("resolve target directory %q: %w", opts.TargetDir, err)
	}

	result := &Result{
		Target: target,
		Mode:   opts.Mode,
		DryRun: opts.DryRun,
		Skills: make([]SkillResult, 0, len(skillSet)),
	}

	logging.Debug("starting install",
		logging.Target(target),
		logging.Operation("install"),
		slog.String("mode", string(opts.Mode)),
		slog.Bool("dry_run", opts.DryRun),
		logging.Count(len(skillSet)),
	)

	if !opts.DryRun {
		if err := os.MkdirAll(target, 0o750); err != nil {
			return nil, fmt.Errorf("create target directory %q: %w", target, err)
		}
	}

	var selected map[string]bool
	if len(opts.Names) > 0 {
		selected = make(map[string]bool, len(opts.Names))
		for _, n := range opts.Names {
			selected[n] = true
		}
	}

	for _, skill := range skillSet {
		if selected != nil && !selected[skill.Name] {
			continue
		}
		sr := i.installOne(skill, target, opts)
		result.Skills = append(result.Skills, sr)
		if opts.Observer != nil {
			opts.Observer(sr)
		}
	}

	logging.Debug("install completed",
		logging.Target(target),
		logging.Count(result.Installed()),
	)

	return result, nil
}

// installOne processes a single skill.
func (i *Installer) installOne(skill model.Skill, target string, opts Options) SkillResult {
	sr := SkillResult{
		Skill:      skill,
		TargetPath: filepath.Join(target, skill.FileName()),
	}

	if skill.Template {
		sr.Action = ActionSkipped
		sr.Message = "template"
		return sr
	}

	replaced, err := clearExisting(sr.TargetPath, opts)
	if err != nil {
		sr.Action = ActionSkipped
		sr.Message = err.Error()
		return sr
	}

	mode := opts.Mode
	if skill.Embedded() && mode == model.LinkSymlink {
		// The embedded corpus has no disk presence to link against.
		mode = model.LinkCopy
		sr.Message = "embedded skill, installed by copy"
	}

	if !opts.DryRun {
		switch mode {
		case model.LinkCopy:
			if err := writeCopy(skill, sr.TargetPath); err != nil {
				sr.Action = ActionFailed
				sr.Error = err
				return sr
			}
		default:
			if err := os.Symlink(skill.AbsPath, sr.TargetPath); err != nil {
				sr.Action = ActionFailed
				sr.Error = fmt.Errorf("create symlink %q: %w", sr.TargetPath, err)
				return sr
			}
		}
	}

	switch {
	case replaced:
		sr.Action = ActionReplaced
	case mode == model.LinkCopy:
		sr.Action = ActionCopied
	default:
		sr.Action = ActionLinked
	}

	logging.Debug("installed skill",
		logging.Skill(skill.Name),
		logging.Path(sr.TargetPath),
		slog.String("action", string(sr.Action)),
	)

	return sr
}

// clearExisting removes a previous install at path, returning whether an
// entry was (or would be) replaced. Regular files and directories are
// only removed with Force; uses Lstat so symlinks are removed as entries
// rather than followed.
func clearExisting(path string, opts Options) (bool, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", path, err)
	}

	if info.Mode()&os.ModeSymlink == 0 && !opts.Force {
		return false, fmt.Errorf("existing %s at %q, use --force to replace",
			describeEntry(info), path)
	}

	if opts.DryRun {
		return true, nil
	}

	if info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return false, fmt.Errorf("remove directory %q: %w", path, err)
		}
	} else if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("remove %q: %w", path, err)
	}

	return true, nil
}

func describeEntry(info os.FileInfo) string {
	if info.IsDir() {
		return "directory"
	}
	return "file"
}

// writeCopy materializes a skill as a regular file, preferring the
// original source file when one exists on disk.
func writeCopy(skill model.Skill, dst string) error {
	if skill.AbsPath != "" {
		return copyFile(skill.AbsPath, dst)
	}
	// #nosec G306 - skill files should be readable
	if err := os.WriteFile(dst, skill.Raw, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", dst, err)
	}
	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source %q: %w", src, err)
	}

	// #nosec G304 - src is a corpus path chosen by the user
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source %q: %w", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	// #nosec G302 G304 - preserving source permissions, dst is the install target
	dstFile, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("create destination %q: %w", dst, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copy content to %q: %w", dst, err)
	}

	return nil
}
