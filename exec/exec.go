// Package exec runs the external programs docsmith delegates to.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/fwojciec/docsmith"
)

// Ensure Runner implements docsmith.Runner at compile time.
var _ docsmith.Runner = (*Runner)(nil)

// Runner implements docsmith.Runner with os/exec.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a Runner that streams program output to stdout and stderr.
func NewRunner(stdout, stderr io.Writer) *Runner {
	return &Runner{Stdout: stdout, Stderr: stderr}
}

// Run executes name in dir and waits for it to exit.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return commandError(name, cmd.Run(), nil)
}

// Output executes name in dir and returns its standard output.
func (r *Runner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", commandError(name, err, stderr.Bytes())
	}
	return strings.TrimSpace(string(out)), nil
}

// commandError converts an os/exec failure into a docsmith error. The first
// line of captured stderr, if any, is included in the message.
func commandError(name string, err error, stderr []byte) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return docsmith.Errorf(docsmith.ENOTFOUND, "%s not found in PATH", name)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if line, _, _ := strings.Cut(strings.TrimSpace(string(stderr)), "\n"); line != "" {
			return docsmith.Errorf(docsmith.EINTERNAL, "%s exited with status %d: %s", name, exitErr.ExitCode(), line)
		}
		return docsmith.Errorf(docsmith.EINTERNAL, "%s exited with status %d", name, exitErr.ExitCode())
	}
	return docsmith.Errorf(docsmith.EINTERNAL, "%s: %v", name, err)
}
