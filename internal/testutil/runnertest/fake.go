// SPDX-License-Identifier: MPL-2.0

package runnertest

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/lintd/taskops/internal/runner"
)

const (
	// ModeRun marks a call made through Runner.Run.
	ModeRun Mode = "run"
	// ModeEval marks a call made through Runner.Eval.
	ModeEval Mode = "eval"
)

// ErrScripted is the default failure returned by Fail.
var ErrScripted = errors.New("exit status 1")

type (
	// Mode tells which Runner method received a call.
	Mode string

	// Call is one recorded invocation.
	Call struct {
		Mode       Mode
		Invocation runner.Invocation
	}

	response struct {
		output string
		err    error
	}

	// Fake is a runner.Runner answering from a script keyed by the rendered
	// command line. Unscripted commands succeed with empty output.
	Fake struct {
		mu        sync.Mutex
		calls     []Call
		responses map[string]response
	}
)

var _ runner.Runner = (*Fake)(nil)

// New creates an empty Fake.
func New() *Fake {
	return &Fake{responses: make(map[string]response)}
}

// Respond scripts line to succeed with output.
func (f *Fake) Respond(line, output string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[line] = response{output: output}
	return f
}

// Fail scripts line to fail with ErrScripted.
func (f *Fake) Fail(line string) *Fake {
	return f.FailWith(line, ErrScripted)
}

// FailWith scripts line to fail with err.
func (f *Fake) FailWith(line string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[line] = response{err: err}
	return f
}

// Run records inv and returns its scripted failure, if any.
func (f *Fake) Run(_ context.Context, inv runner.Invocation) error {
	resp := f.record(ModeRun, inv)
	if resp.err != nil {
		return &runner.CommandError{Err: resp.err}
	}
	return nil
}

// Eval records inv and returns its scripted output or failure.
func (f *Fake) Eval(_ context.Context, inv runner.Invocation) (string, error) {
	resp := f.record(ModeEval, inv)
	if resp.err != nil {
		return "", &runner.CommandError{Command: inv.String(), Err: resp.err}
	}
	return resp.output, nil
}

// Calls returns the recorded calls in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Lines returns the rendered command line of every recorded call in order.
func (f *Fake) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.calls))
	for i, call := range f.calls {
		lines[i] = call.Invocation.String()
	}
	return lines
}

// Ran reports whether a call with exactly the rendered line was recorded.
func (f *Fake) Ran(line string) bool {
	return slices.Contains(f.Lines(), line)
}

// RanPrefix reports whether any recorded command line starts with prefix.
func (f *Fake) RanPrefix(prefix string) bool {
	return slices.ContainsFunc(f.Lines(), func(line string) bool {
		return strings.HasPrefix(line, prefix)
	})
}

func (f *Fake) record(mode Mode, inv runner.Invocation) response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Mode: mode, Invocation: inv})
	return f.responses[inv.String()]
}
