package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/hwskills/skillkit/internal/logging"
)

// Runner abstracts external command execution so installs can be tested
// without touching the system.
type Runner interface {
	// Run executes a command, streaming its output.
	Run(ctx context.Context, name string, args ...string) error
	// LookPath reports where a binary resolves on PATH.
	LookPath(name string) (string, error)
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct {
	out io.Writer
	err io.Writer
}

// NewRunner returns a Runner that executes commands with output wired to
// the given writers (stdout/stderr when nil).
func NewRunner(out, errw io.Writer) Runner {
	if out == nil {
		out = os.Stdout
	}
	if errw == nil {
		errw = os.Stderr
	}
	return &execRunner{out: out, err: errw}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) error {
	logging.Debug("running command",
		logging.Command(name+" "+strings.Join(args, " ")),
	)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.out
	cmd.Stderr = r.err
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (r *execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
