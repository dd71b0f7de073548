package installer

import (
	"fmt"
	"strings"

	"github.com/hwskills/skillkit/internal/model"
)

// Action represents the action taken on a skill during install.
type Action string

const (
	// ActionLinked indicates a new symlink was created in the target.
	ActionLinked Action = "linked"

	// ActionCopied indicates the skill was written as a regular file.
	ActionCopied Action = "copied"

	// ActionReplaced indicates an existing target entry was removed and
	// recreated.
	ActionReplaced Action = "replaced"

	// ActionSkipped indicates the skill was not installed (template,
	// or an existing regular file without --force).
	ActionSkipped Action = "skipped"

	// ActionFailed indicates an error occurred installing the skill.
	ActionFailed Action = "failed"
)

// SkillResult represents the outcome of installing a single skill.
type SkillResult struct {
	// Skill is the skill that was processed.
	Skill model.Skill

	// Action is the action that was taken.
	Action Action

	// TargetPath is the path where the skill was installed.
	TargetPath string

	// Error contains any error that occurred during processing.
	Error error

	// Message provides additional context about the action.
	Message string
}

// Success returns true if the skill was successfully processed.
func (sr *SkillResult) Success() bool {
	return sr.Action != ActionFailed
}

// Result contains the complete outcome of an install run.
type Result struct {
	// Target is the resolved target directory.
	Target string

	// Mode is the link mode that was requested.
	Mode model.LinkMode

	// DryRun indicates no changes were made.
	DryRun bool

	// Skills contains the result for each processed skill.
	Skills []SkillResult
}

// Linked returns skills installed as new symlinks.
func (r *Result) Linked() []SkillResult { return r.filterByAction(ActionLinked) }

// Copied returns skills installed as file copies.
func (r *Result) Copied() []SkillResult { return r.filterByAction(ActionCopied) }

// Replaced returns skills whose existing target entry was recreated.
func (r *Result) Replaced() []SkillResult { return r.filterByAction(ActionReplaced) }

// Skipped returns skills that were not installed.
func (r *Result) Skipped() []SkillResult { return r.filterByAction(ActionSkipped) }

// Failed returns skills that failed to install.
func (r *Result) Failed() []SkillResult { return r.filterByAction(ActionFailed) }

func (r *Result) filterByAction(action Action) []SkillResult {
	var filtered []SkillResult
	for _, sr := range r.Skills {
		if sr.Action == action {
			filtered = append(filtered, sr)
		}
	}
	return filtered
}

// Installed returns the number of skills present in the target after the
// run: new links, copies, and replacements.
func (r *Result) Installed() int {
	return len(r.Linked()) + len(r.Copied()) + len(r.Replaced())
}

// Success returns true if no skill failed to install.
func (r *Result) Success() bool {
	return len(r.Failed()) == 0
}

// Summary returns a human-readable summary of the install run.
func (r *Result) Summary() string {
	var sb strings.Builder

	if r.DryRun {
		sb.WriteString("Dry run - no changes made\n")
	}

	sb.WriteString(fmt.Sprintf("Installed %d skill(s) into %s\n", r.Installed(), r.Target))
	sb.WriteString(fmt.Sprintf("  Linked:   %d\n", len(r.Linked())))
	sb.WriteString(fmt.Sprintf("  Copied:   %d\n", len(r.Copied())))
	sb.WriteString(fmt.Sprintf("  Replaced: %d\n", len(r.Replaced())))
	sb.WriteString(fmt.Sprintf("  Skipped:  %d\n", len(r.Skipped())))
	sb.WriteString(fmt.Sprintf("  Failed:   %d\n", len(r.Failed())))

	if !r.Success() {
		sb.WriteString("\nErrors:\n")
		for _, f := range r.Failed() {
			sb.WriteString(fmt.Sprintf("  - %s: %v\n", f.Skill.Name, f.Error))
		}
	}

	return sb.String()
}
