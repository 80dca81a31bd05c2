// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrCommandFailed is the sentinel error matched by every CommandError.
var ErrCommandFailed = errors.New("command failed")

// CommandError is returned when an external command cannot be started or exits
// with a non-zero status.
//
// Command is empty for failures coming from Run: the announce line already
// told the user what was executed. Eval failures carry the rendered command
// line because their output is consumed programmatically.
type CommandError struct {
	Command string
	Err     error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Command == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Unwrap returns the underlying execution failure.
func (e *CommandError) Unwrap() error { return e.Err }

// Is reports whether target is ErrCommandFailed.
func (e *CommandError) Is(target error) bool { return target == ErrCommandFailed }

// ExitCode returns the process exit code, or -1 when the command did not run
// to completion (not found, killed by a signal, ...).
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
