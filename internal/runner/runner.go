// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
)

type (
	// Runner executes Invocations.
	Runner interface {
		// Run announces and executes inv, streaming its combined output.
		Run(ctx context.Context, inv Invocation) error
		// Eval announces and executes inv and returns its trimmed stdout.
		Eval(ctx context.Context, inv Invocation) (string, error)
	}

	// Announcer prints the rendered command line before execution.
	Announcer func(line string)

	// Option configures a ProcessRunner.
	Option func(*ProcessRunner)

	// ProcessRunner runs Invocations as child processes of the current process.
	ProcessRunner struct {
		dir      string
		stdout   io.Writer
		stderr   io.Writer
		announce Announcer
		logger   *log.Logger
	}
)

var _ Runner = (*ProcessRunner)(nil)

// WithDir sets the working directory of every command.
func WithDir(dir string) Option {
	return func(r *ProcessRunner) {
		r.dir = dir
	}
}

// WithStdout sets where announce lines and Run output are written.
// Default is os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(r *ProcessRunner) {
		r.stdout = w
	}
}

// WithStderr sets where the stderr of Eval commands is written.
// Default is os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(r *ProcessRunner) {
		r.stderr = w
	}
}

// WithAnnouncer replaces the default "$ <command>" announce line.
// A nil Announcer silences announcements.
func WithAnnouncer(a Announcer) Option {
	return func(r *ProcessRunner) {
		if a == nil {
			a = func(string) {}
		}
		r.announce = a
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *ProcessRunner) {
		r.logger = l
	}
}

// New creates a ProcessRunner.
func New(opts ...Option) *ProcessRunner {
	r := &ProcessRunner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.announce == nil {
		out := r.stdout
		r.announce = func(line string) {
			fmt.Fprintf(out, "$ %s\n", line)
		}
	}
	return r
}

// Run announces inv and executes it with stdout and stderr both written to the
// runner's output. A failure is returned as a *CommandError without the
// command line.
func (r *ProcessRunner) Run(ctx context.Context, inv Invocation) error {
	r.announce(inv.String())

	cmd := r.command(ctx, inv)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stdout

	if err := r.exec(cmd, inv); err != nil {
		return &CommandError{Err: err}
	}
	return nil
}

// Eval announces inv, executes it and returns its stdout with trailing
// whitespace removed. Stderr goes to the runner's error output. A failure is
// returned as a *CommandError carrying the rendered command line.
func (r *ProcessRunner) Eval(ctx context.Context, inv Invocation) (string, error) {
	line := inv.String()
	r.announce(line)

	var stdout bytes.Buffer
	cmd := r.command(ctx, inv)
	cmd.Stdout = &stdout
	cmd.Stderr = r.stderr

	if err := r.exec(cmd, inv); err != nil {
		return "", &CommandError{Command: line, Err: err}
	}
	return strings.TrimRightFunc(stdout.String(), unicode.IsSpace), nil
}

func (r *ProcessRunner) command(ctx context.Context, inv Invocation) *exec.Cmd {
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Dir = r.dir
	if env := inv.environ(); len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd
}

func (r *ProcessRunner) exec(cmd *exec.Cmd, inv Invocation) error {
	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("command finished",
		"program", inv.Program,
		"duration", time.Since(start).Round(time.Millisecond),
		"exit", cmd.ProcessState.ExitCode(),
	)
	return err
}
