// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintd/taskops/internal/issue"

	"github.com/charmbracelet/log"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic message: %s", msg)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.DirtyTreeId, "styled")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q, want %q", svcErr.Error(), "underlying error")
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
	if svcErr.IssueID != issue.DirtyTreeId {
		t.Errorf("IssueID = %d, want %d", svcErr.IssueID, issue.DirtyTreeId)
	}
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	t.Run("styled message only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderServiceError(&buf, log.New(io.Discard), "dark", newServiceError(errors.New("x"), 0, "styled message\n"))
		if buf.String() != "styled message\n" {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("with issue card", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderServiceError(&buf, log.New(io.Discard), "dark", newServiceError(errors.New("x"), issue.EmptyPlanId, "styled\n"))
		if buf.Len() <= len("styled\n") {
			t.Errorf("issue card should follow the styled message, got %q", buf.String())
		}
	})

	t.Run("card failure is logged", func(t *testing.T) {
		t.Parallel()

		var buf, logs bytes.Buffer
		missing := filepath.Join(t.TempDir(), "missing-style.json")
		renderServiceError(&buf, log.New(&logs), missing, newServiceError(errors.New("x"), issue.EmptyPlanId, "styled\n"))
		if buf.String() != "styled\n" {
			t.Errorf("output = %q, want only the styled message", buf.String())
		}
		if !strings.Contains(logs.String(), "failed to render issue catalog entry") {
			t.Errorf("logger output = %q", logs.String())
		}
	})

	t.Run("nil is a no-op", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderServiceError(&buf, log.New(io.Discard), "dark", nil)
		if buf.Len() != 0 {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q", bare.Error())
	}

	cause := errors.New("cause")
	wrapped := &ExitError{Code: 1, Err: cause}
	if wrapped.Error() != "cause" || !errors.Is(wrapped, cause) {
		t.Errorf("wrapped ExitError = %v", wrapped)
	}
}
