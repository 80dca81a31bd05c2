// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/lintd/taskops/internal/config"
	"github.com/lintd/taskops/internal/git"
	"github.com/lintd/taskops/internal/issue"
	"github.com/lintd/taskops/internal/manifest"
	"github.com/lintd/taskops/internal/release"
	"github.com/lintd/taskops/internal/runner"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	commandErr := &runner.CommandError{Command: "cargo test", Err: errors.New("exit status 101")}

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{
			name: "dirty tree inside aborted bump",
			err:  &release.AbortedError{Operation: "bump", Step: "check working tree", Err: &git.DirtyTreeError{Status: " M a"}},
			want: issue.DirtyTreeId,
		},
		{
			name: "wrong branch",
			err:  &release.AbortedError{Operation: "publish", Err: &git.WrongBranchError{Branch: "dev", Allowed: []string{"main"}}},
			want: issue.WrongBranchId,
		},
		{
			name: "manifest parse",
			err:  &manifest.ManifestParseError{Path: "Cargo.toml", Err: errors.New("bad toml")},
			want: issue.ManifestParseErrorId,
		},
		{
			name: "manifest mismatch",
			err:  &manifest.ManifestMismatchError{Path: "a/Cargo.toml", Requested: "a", Declared: "b"},
			want: issue.ManifestMismatchId,
		},
		{
			name: "empty plan",
			err:  &release.EmptyPlanError{ToolPackage: "xtask"},
			want: issue.EmptyPlanId,
		},
		{
			name: "command failed",
			err:  commandErr,
			want: issue.CommandFailedId,
		},
		{
			name: "missing program",
			err:  &runner.CommandError{Err: &exec.Error{Name: "gh", Err: exec.ErrNotFound}},
			want: issue.ToolNotFoundId,
		},
		{
			name: "partial publish wins over the command failure",
			err:  &release.AbortedError{Operation: "publish", Published: []string{"alpha"}, Err: commandErr},
			want: issue.PublishAbortedId,
		},
		{
			name: "failure before any publish",
			err:  &release.AbortedError{Operation: "publish", Err: commandErr},
			want: issue.CommandFailedId,
		},
		{
			name: "configuration file",
			err:  issue.NewErrorContext().WithOperation("load configuration").Wrap(errors.New("bad")).BuildError(),
			want: issue.ConfigLoadFailedId,
		},
		{
			name: "invalid configuration",
			err:  fmt.Errorf("validate: %w", &config.InvalidConfigError{}),
			want: issue.ConfigLoadFailedId,
		},
		{
			name: "unknown error",
			err:  errors.New("something else"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, styled := classifyError(tt.err, false)
			if got != tt.want {
				t.Errorf("classifyError() id = %d, want %d", got, tt.want)
			}
			if !strings.Contains(styled, "Error:") || !strings.Contains(styled, tt.err.Error()) {
				t.Errorf("styled message = %q", styled)
			}
		})
	}
}

func TestFormatErrorForDisplay_VerboseChain(t *testing.T) {
	t.Parallel()

	inner := errors.New("exit status 1")
	err := fmt.Errorf("publish: %w", &runner.CommandError{Command: "cargo publish -p a", Err: inner})

	if got := formatErrorForDisplay(err, false); got != err.Error() {
		t.Errorf("non-verbose output = %q, want %q", got, err.Error())
	}

	got := formatErrorForDisplay(err, true)
	for _, want := range []string{"Error chain:", "1. cargo publish -p a: exit status 1", "2. exit status 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("verbose output should contain %q, got:\n%s", want, got)
		}
	}
}

func TestWithManifestContext(t *testing.T) {
	t.Parallel()

	parseErr := &release.AbortedError{
		Operation: "bump",
		Step:      "read package version",
		Err:       &manifest.ManifestParseError{Path: "/ws/Cargo.toml", Err: errors.New("bad toml")},
	}
	mismatchErr := &manifest.ManifestMismatchError{Path: "/ws/alpha/Cargo.toml", Requested: "alpha", Declared: "renamed"}

	tests := []struct {
		name       string
		err        error
		operation  string
		resource   string
		suggestion string
		sentinel   error
		id         issue.Id
	}{
		{
			name:       "parse error",
			err:        parseErr,
			operation:  "read workspace manifest",
			resource:   "/ws/Cargo.toml",
			suggestion: "pass -C <dir>",
			sentinel:   manifest.ErrManifestParse,
			id:         issue.ManifestParseErrorId,
		},
		{
			name:       "mismatch",
			err:        mismatchErr,
			operation:  "match package manifest",
			resource:   "/ws/alpha/Cargo.toml",
			suggestion: `Rename the package to "alpha"`,
			sentinel:   manifest.ErrManifestMismatch,
			id:         issue.ManifestMismatchId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := withManifestContext(tt.err)

			var ae *issue.ActionableError
			if !errors.As(got, &ae) {
				t.Fatalf("withManifestContext() = %T, want *issue.ActionableError", got)
			}
			if ae.Operation != tt.operation || ae.Resource != tt.resource {
				t.Errorf("operation/resource = %q/%q, want %q/%q", ae.Operation, ae.Resource, tt.operation, tt.resource)
			}
			if !strings.Contains(ae.Format(false), tt.suggestion) {
				t.Errorf("Format() missing suggestion %q:\n%s", tt.suggestion, ae.Format(false))
			}
			if !errors.Is(got, tt.sentinel) || !errors.Is(got, tt.err) {
				t.Errorf("wrapped error lost its chain: %v", got)
			}
			if id, _ := classifyError(got, false); id != tt.id {
				t.Errorf("classifyError() id = %d, want %d", id, tt.id)
			}
		})
	}
}

func TestWithManifestContext_LeavesOtherErrors(t *testing.T) {
	t.Parallel()

	configErr := issue.NewErrorContext().
		WithOperation("load configuration").
		Wrap(&manifest.ManifestParseError{Path: "x", Err: errors.New("y")}).
		BuildError()
	plain := errors.New("something else")

	for _, err := range []error{configErr, plain} {
		if got := withManifestContext(err); got != err {
			t.Errorf("withManifestContext(%v) = %v, want it unchanged", err, got)
		}
	}
}
