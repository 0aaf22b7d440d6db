// SPDX-License-Identifier: MPL-2.0

package gitsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type (
	// Runner executes git in a working directory. Checkout attempts branch on
	// the returned error only; stderr is captured into the error rather than
	// leaking to the terminal.
	Runner interface {
		// Run executes git with args in dir, discarding stdout.
		Run(ctx context.Context, dir string, args ...string) error
		// Output executes git with args in dir and returns trimmed stdout.
		Output(ctx context.Context, dir string, args ...string) (string, error)
	}

	// GitError carries the exit status and captured stderr of a failed git
	// invocation.
	GitError struct {
		Args     []string
		ExitCode int
		Stderr   string
		cause    error
	}

	gitRunner struct {
		gitPath string
	}
)

// NewRunner creates a Runner that invokes the git binary from PATH.
func NewRunner() Runner {
	return &gitRunner{gitPath: "git"}
}

// Error implements the error interface for GitError.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *GitError) Unwrap() error { return e.cause }

// Run executes git with args in dir, discarding stdout.
func (r *gitRunner) Run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, r.gitPath, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return wrapGitError(err, args, stderr.String())
	}
	return nil
}

// Output executes git with args in dir and returns trimmed stdout.
func (r *gitRunner) Output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.gitPath, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", wrapGitError(err, args, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

func wrapGitError(err error, args []string, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &GitError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr),
			cause:    err,
		}
	}
	return fmt.Errorf("failed to run git %s: %w", strings.Join(args, " "), err)
}
