// SPDX-License-Identifier: MPL-2.0

package release

import "context"

const (
	// CapabilityAbsent means the auxiliary packaging metadata is not in use.
	CapabilityAbsent Capability = iota
	// CapabilityPresent means the auxiliary packaging metadata exists and must
	// follow the workspace version.
	CapabilityPresent
)

// Capability is the outcome of probing for an optional ecosystem.
type Capability int

// String returns "present" or "absent".
func (c Capability) String() string {
	if c == CapabilityPresent {
		return "present"
	}
	return "absent"
}

// detectAuxiliary probes the auxiliary packaging metadata. Any probe failure,
// including a missing npm binary, means CapabilityAbsent.
func (o *Orchestrator) detectAuxiliary(ctx context.Context) Capability {
	if !o.auxiliary {
		return CapabilityAbsent
	}
	if _, err := o.runner.Eval(ctx, o.tools.ProbeAuxiliary()); err != nil {
		o.logger.Debug("auxiliary packaging metadata not detected", "reason", err)
		return CapabilityAbsent
	}
	return CapabilityPresent
}
