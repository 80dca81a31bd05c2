// SPDX-License-Identifier: MPL-2.0

package release

import (
	"fmt"
	"strings"
)

// Stage is a checkpoint of a release run. Publish moves through every stage in
// declaration order; Bump only reaches StagePreconditionsChecked and StageDone.
type Stage int

const (
	StageIdle Stage = iota
	StagePreconditionsChecked
	StagePushed
	StageDryRunValidated
	StagePublished
	StageReleased
	StageNextVersionBumped
	StageDone
)

var stageNames = [...]string{
	StageIdle:                 "idle",
	StagePreconditionsChecked: "preconditions-checked",
	StagePushed:               "pushed",
	StageDryRunValidated:      "dry-run-validated",
	StagePublished:            "published",
	StageReleased:             "released",
	StageNextVersionBumped:    "next-version-bumped",
	StageDone:                 "done",
}

// String returns the stage name.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// AbortedError reports the step at which a bump or publish stopped.
type AbortedError struct {
	// Operation is "bump" or "publish".
	Operation string
	// Stage is the last stage reached before the failure.
	Stage Stage
	// Step describes the failing step.
	Step string
	// Published lists packages already published when the failure happened.
	Published []string
	// Err is the failure.
	Err error
}

// Error implements the error interface.
func (e *AbortedError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "%s aborted at %s (after stage %s)", e.Operation, e.Step, e.Stage)
	if len(e.Published) > 0 {
		fmt.Fprintf(&msg, " with %s already published", strings.Join(e.Published, ", "))
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	return msg.String()
}

// Unwrap returns the failure.
func (e *AbortedError) Unwrap() error { return e.Err }
