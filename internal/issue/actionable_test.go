// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "read workspace manifest"},
			expected: "failed to read workspace manifest",
		},
		{
			name:     "with resource",
			err:      &ActionableError{Operation: "read workspace manifest", Resource: "Cargo.toml"},
			expected: "failed to read workspace manifest: Cargo.toml",
		},
		{
			name:     "with cause and no resource",
			err:      &ActionableError{Operation: "load configuration", Cause: errors.New("boom")},
			expected: "failed to load configuration: boom",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "read workspace manifest",
				Resource:  "Cargo.toml",
				Cause:     errors.New("no such file"),
			},
			expected: "failed to read workspace manifest: Cargo.toml: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	cause := &ActionableError{Operation: "decode Cargo.toml", Cause: errors.New("line 3: expected '='")}
	err := &ActionableError{
		Operation:   "read workspace manifest",
		Resource:    "Cargo.toml",
		Suggestions: []string{"Run taskops from the workspace root", "Check the TOML syntax"},
		Cause:       cause,
	}

	tests := []struct {
		name     string
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:    "suggestions as bullets",
			verbose: false,
			contains: []string{
				"failed to read workspace manifest: Cargo.toml",
				"\n\n  • Run taskops from the workspace root",
				"\n  • Check the TOML syntax",
			},
			excludes: []string{"Error chain:"},
		},
		{
			name:    "verbose lists the cause chain",
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to decode Cargo.toml: line 3: expected '='",
				"2. line 3: expected '='",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_BuildError(t *testing.T) {
	t.Parallel()

	cause := errors.New("parse error")
	err := NewErrorContext().
		WithOperation("load configuration").
		WithResource("taskops.cue").
		WithSuggestion("Check the CUE syntax").
		WithSuggestions("Run 'taskops config show'", "Remove unknown keys").
		Wrap(cause).
		BuildError()

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("BuildError() = %T, want *ActionableError", err)
	}
	if ae.Operation != "load configuration" || ae.Resource != "taskops.cue" {
		t.Errorf("operation/resource = %q/%q", ae.Operation, ae.Resource)
	}
	if len(ae.Suggestions) != 3 || ae.Suggestions[2] != "Remove unknown keys" {
		t.Errorf("Suggestions = %v", ae.Suggestions)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestErrorContext_BuildErrorRequiresOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("Cargo.toml").BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want nil without an operation", err)
	}
}
