// SPDX-License-Identifier: MPL-2.0

package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDirtyTree is the sentinel error wrapped by DirtyTreeError.
	ErrDirtyTree = errors.New("working directory dirty")
	// ErrWrongBranch is the sentinel error wrapped by WrongBranchError.
	ErrWrongBranch = errors.New("not on a release branch")
)

type (
	// DirtyTreeError is returned when the working tree has uncommitted changes.
	// Status holds the status query output listing them.
	DirtyTreeError struct {
		Status string
	}

	// WrongBranchError is returned when the current branch is not a release branch.
	WrongBranchError struct {
		Branch  string
		Allowed []string
	}
)

// Error implements the error interface.
func (e *DirtyTreeError) Error() string {
	return "working directory dirty.\n" + e.Status
}

// Unwrap returns ErrDirtyTree for errors.Is() compatibility.
func (e *DirtyTreeError) Unwrap() error { return ErrDirtyTree }

// Error implements the error interface.
func (e *WrongBranchError) Error() string {
	return fmt.Sprintf("not on a release branch: %q (expected one of %s)", e.Branch, strings.Join(e.Allowed, ", "))
}

// Unwrap returns ErrWrongBranch for errors.Is() compatibility.
func (e *WrongBranchError) Unwrap() error { return ErrWrongBranch }
