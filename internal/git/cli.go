package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner runs a git subcommand in dir. It returns the trimmed
// standard output, or the diagnostics git printed when the command fails.
type CommandRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs the git binary found in PATH.
type ExecRunner struct{}

// Run executes git with args in dir.
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	// ssh and credential helpers print warnings on stderr even on success.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = strings.TrimSpace(stdout.String())
		}
		return diag, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunnerFunc adapts a function to CommandRunner.
type RunnerFunc func(ctx context.Context, dir string, args ...string) (string, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir string, args ...string) (string, error) {
	return f(ctx, dir, args...)
}

// parseLsRemote returns the SHA of the first line of git ls-remote output.
func parseLsRemote(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	sha, _, _ := strings.Cut(line, "\t")
	return strings.TrimSpace(sha)
}
