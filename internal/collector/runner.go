package collector

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/maxbolgarin/errm"
)

// Runner executes git subcommands and returns their standard output
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecRunner runs the git binary found in PATH inside a working directory
type ExecRunner struct {
	dir string
}

// NewExecRunner creates a runner bound to the repository directory
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{dir: dir}
}

func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := "git " + strings.Join(args, " ")
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg += ": " + s
		}
		return "", errm.Wrap(err, msg)
	}

	return stdout.String(), nil
}
