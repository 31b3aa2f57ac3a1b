package git

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	deployerrors "gitdeploy.dev/gitdeploy/internal/errors"
)

// CommandRunner handles execution of external commands and filesystem
// changes relative to a working directory.
type CommandRunner struct {
	workingDir string
	timeout    time.Duration
	stdout     io.Writer
	stderr     io.Writer
}

// NewCommandRunner creates a new CommandRunner whose child processes share
// the caller's stdout and stderr.
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{
		workingDir: workingDir,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// SetTimeout bounds each command. Zero disables the limit.
func (r *CommandRunner) SetTimeout(timeout time.Duration) {
	r.timeout = timeout
}

// SetOutput redirects child process output. A nil writer discards it.
func (r *CommandRunner) SetOutput(stdout, stderr io.Writer) {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	r.stdout = stdout
	r.stderr = stderr
}

// GetWorkingDir returns the directory commands run in.
func (r *CommandRunner) GetWorkingDir() string {
	return r.workingDir
}

// Run executes cmd and waits for it to exit. Stderr is streamed to the
// configured writer and also captured so a failure can report it.
func (r *CommandRunner) Run(ctx context.Context, cmd Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); !ok && r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if r.workingDir != "" {
		c.Dir = r.workingDir
	}
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stderr bytes.Buffer
	c.Stdout = r.stdout
	c.Stderr = io.MultiWriter(r.stderr, &stderr)

	err := c.Run()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	if ctx.Err() == context.DeadlineExceeded {
		err = ctx.Err()
	}
	return deployerrors.NewCommandError(cmd.Name, cmd.Args, stderr.String(), exitCode, err)
}

// RemoveAll recursively deletes path, resolved against the working directory.
func (r *CommandRunner) RemoveAll(path string) error {
	return os.RemoveAll(r.resolve(path))
}

// resolve joins relative paths onto the working directory.
func (r *CommandRunner) resolve(path string) string {
	if r.workingDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workingDir, path)
}
