// SPDX-License-Identifier: MPL-2.0

// Package release orchestrates version bumps and multi-package publishes.
//
// Both operations are strict linear sequences of external commands. The first
// failing step aborts the sequence and is reported as an *AbortedError naming
// the step and the last stage reached; nothing is retried and nothing already
// done is undone.
//
// Publish validates every package with a dry run before publishing any of
// them, then publishes them in workspace order. A failure in the second pass
// leaves the earlier packages published: registries offer no transaction
// spanning several packages. AbortedError.Published lists what went out.
package release
