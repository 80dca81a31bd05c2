// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping: test uses POSIX sh")
	}
}

func newTestRunner(stdout, stderr io.Writer, opts ...Option) *ProcessRunner {
	base := []Option{
		WithStdout(stdout),
		WithStderr(stderr),
		WithLogger(log.New(io.Discard)),
	}
	return New(append(base, opts...)...)
}

func TestInvocation_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inv      Invocation
		expected string
	}{
		{
			name:     "plain words",
			inv:      Command("cargo", "publish", "--dry-run", "-p", "alpha"),
			expected: "cargo publish --dry-run -p alpha",
		},
		{
			name:     "argument with spaces is quoted",
			inv:      Command("git", "commit", "-am", ":bookmark: bump to v1.2.3"),
			expected: "git commit -am ':bookmark: bump to v1.2.3'",
		},
		{
			name:     "empty argument stays visible",
			inv:      Command("echo", ""),
			expected: "echo ''",
		},
		{
			name: "env overrides are sorted and prefixed",
			inv: Command("cargo", "test").
				WithEnv("RUSTFLAGS", "-Cinstrument-coverage").
				WithEnv("CARGO_INCREMENTAL", "0"),
			expected: "CARGO_INCREMENTAL=0 RUSTFLAGS=-Cinstrument-coverage cargo test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.inv.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInvocation_WithEnvDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := Command("cargo", "test").WithEnv("A", "1")
	derived := base.WithEnv("B", "2")

	if _, ok := base.Env["B"]; ok {
		t.Error("WithEnv mutated the receiver's environment")
	}
	if derived.Env["A"] != "1" || derived.Env["B"] != "2" {
		t.Errorf("derived env = %v, want A=1 and B=2", derived.Env)
	}
}

func TestProcessRunner_EvalTrimsTrailingWhitespace(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	var stdout bytes.Buffer
	r := newTestRunner(&stdout, io.Discard)

	got, err := r.Eval(context.Background(), Command("sh", "-c", `printf '  main\n\n '`))
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if got != "  main" {
		t.Errorf("Eval() = %q, want %q", got, "  main")
	}
	if !strings.Contains(stdout.String(), "$ sh -c") {
		t.Errorf("Eval() should announce the command, stdout = %q", stdout.String())
	}
}

func TestProcessRunner_EvalFailureCarriesCommand(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	r := newTestRunner(io.Discard, io.Discard)

	_, err := r.Eval(context.Background(), Command("sh", "-c", "exit 3"))
	if err == nil {
		t.Fatal("Eval() expected error")
	}
	if !errors.Is(err, ErrCommandFailed) {
		t.Errorf("error should match ErrCommandFailed, got %v", err)
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error should be *CommandError, got %T", err)
	}
	if cmdErr.Command != "sh -c 'exit 3'" {
		t.Errorf("Command = %q, want %q", cmdErr.Command, "sh -c 'exit 3'")
	}
	if cmdErr.ExitCode() != 3 {
		t.Errorf("ExitCode() = %d, want 3", cmdErr.ExitCode())
	}
	if !strings.HasPrefix(err.Error(), "sh -c 'exit 3': ") {
		t.Errorf("Error() = %q, should start with the command line", err.Error())
	}
}

func TestProcessRunner_RunCombinesOutput(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)

	if err := r.Run(context.Background(), Command("sh", "-c", "echo to-out; echo to-err 1>&2")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"$ sh -c", "to-out", "to-err"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got %q", want, out)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("Run() should not write to the error output, got %q", stderr.String())
	}
}

func TestProcessRunner_RunFailureIsBare(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	r := newTestRunner(io.Discard, io.Discard)

	err := r.Run(context.Background(), Command("sh", "-c", "exit 1"))
	if err == nil {
		t.Fatal("Run() expected error")
	}
	if !errors.Is(err, ErrCommandFailed) {
		t.Errorf("error should match ErrCommandFailed, got %v", err)
	}
	if strings.Contains(err.Error(), "sh -c") {
		t.Errorf("Run() error should not repeat the command line, got %q", err.Error())
	}
}

func TestProcessRunner_MissingProgram(t *testing.T) {
	t.Parallel()

	r := newTestRunner(io.Discard, io.Discard)

	err := r.Run(context.Background(), Command("taskops-test-no-such-program"))
	if err == nil {
		t.Fatal("Run() expected error for a missing program")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error should be *CommandError, got %T", err)
	}
	if cmdErr.ExitCode() != -1 {
		t.Errorf("ExitCode() = %d, want -1", cmdErr.ExitCode())
	}
}

func TestProcessRunner_EnvAndDir(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(io.Discard, io.Discard, WithDir(dir))

	inv := Command("sh", "-c", `printf '%s ' "$TASKOPS_TEST_VALUE"; ls`).WithEnv("TASKOPS_TEST_VALUE", "hello")
	got, err := r.Eval(context.Background(), inv)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if got != "hello marker" {
		t.Errorf("Eval() = %q, want %q", got, "hello marker")
	}
}

func TestProcessRunner_SilentAnnouncer(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	var stdout bytes.Buffer
	r := newTestRunner(&stdout, io.Discard, WithAnnouncer(nil))

	got, err := r.Eval(context.Background(), Command("sh", "-c", "echo quiet"))
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if got != "quiet" {
		t.Errorf("Eval() = %q, want %q", got, "quiet")
	}
	if stdout.Len() != 0 {
		t.Errorf("nil announcer should print nothing, got %q", stdout.String())
	}
}
