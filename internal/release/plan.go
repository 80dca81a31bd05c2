// SPDX-License-Identifier: MPL-2.0

package release

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyPlan is the sentinel error wrapped by EmptyPlanError.
var ErrEmptyPlan = errors.New("empty release plan")

type (
	// Plan is the ordered list of packages covered by one release run.
	// It is fixed when the run starts and never modified afterwards.
	Plan struct {
		packages []string
	}

	// EmptyPlanError is returned when the workspace has no package to release.
	EmptyPlanError struct {
		ToolPackage string
	}
)

// NewPlan creates a Plan from workspace members already stripped of the tool
// package. An empty member list yields *EmptyPlanError.
func NewPlan(members []string, toolPackage string) (Plan, error) {
	if len(members) == 0 {
		return Plan{}, &EmptyPlanError{ToolPackage: toolPackage}
	}
	return Plan{packages: slices.Clone(members)}, nil
}

// Packages returns the packages in release order.
func (p Plan) Packages() []string { return slices.Clone(p.packages) }

// Len returns the number of packages.
func (p Plan) Len() int { return len(p.packages) }

// First returns the first package in release order.
func (p Plan) First() string { return p.packages[0] }

// Last returns the last package in release order.
func (p Plan) Last() string { return p.packages[len(p.packages)-1] }

// Error implements the error interface.
func (e *EmptyPlanError) Error() string {
	return fmt.Sprintf("workspace has no releasable packages besides %q", e.ToolPackage)
}

// Unwrap returns ErrEmptyPlan for errors.Is() compatibility.
func (e *EmptyPlanError) Unwrap() error { return ErrEmptyPlan }
