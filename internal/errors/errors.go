// Package errors provides sentinel errors and custom error types for gitdeploy.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per deployment step
var (
	// ErrUsage indicates the tool was invoked on an invalid target
	ErrUsage = errors.New("usage error")

	// ErrClone indicates the bare clone step failed
	ErrClone = errors.New("clone failed")

	// ErrTransfer indicates the remote copy step failed
	ErrTransfer = errors.New("transfer failed")

	// ErrCleanup indicates removing the local bare clone failed
	ErrCleanup = errors.New("cleanup failed")

	// ErrPush indicates registering the remote or pushing to it failed
	ErrPush = errors.New("push failed")
)

// Step identifies a stage of the deployment pipeline.
type Step string

// Pipeline steps in execution order.
const (
	StepGuard    Step = "guard"
	StepClone    Step = "clone"
	StepTransfer Step = "transfer"
	StepCleanup  Step = "cleanup"
	StepPush     Step = "push"
)

// sentinel returns the sentinel error matching the step.
func (s Step) sentinel() error {
	switch s {
	case StepGuard:
		return ErrUsage
	case StepClone:
		return ErrClone
	case StepTransfer:
		return ErrTransfer
	case StepCleanup:
		return ErrCleanup
	case StepPush:
		return ErrPush
	}
	return nil
}

// message is the operator-facing summary printed for a failed step.
func (s Step) message() string {
	switch s {
	case StepGuard:
		return "use this tool from the parent directory"
	case StepClone:
		return "failed to clone repository"
	case StepTransfer:
		return "failed to copy repository to server"
	case StepCleanup:
		return "failed to remove local repository"
	case StepPush:
		return "failed to add remote or push to server"
	}
	return string(s) + " failed"
}

// StepError represents the failure of a single pipeline step
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Step.message(), e.Err)
	}
	return e.Step.message()
}

// Is returns true if the target is the sentinel error for this step
func (e *StepError) Is(target error) bool {
	return target == e.Step.sentinel()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError creates a new StepError
func NewStepError(step Step, err error) *StepError {
	return &StepError{Step: step, Err: err}
}

// NewUsageError creates the error returned when the project is the current directory
func NewUsageError(project string) *StepError {
	return &StepError{
		Step: StepGuard,
		Err:  fmt.Errorf("project %q refers to the current directory", project),
	}
}

// CommandError represents an error from an external command execution
type CommandError struct {
	Command  string
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	msg := e.Command
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	} else if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if line := lastLine(e.Stderr); line != "" {
		msg += ": " + line
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, stderr string, exitCode int, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Args:     args,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

// lastLine returns the last non-empty line of s, trimmed.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
