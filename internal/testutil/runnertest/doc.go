// SPDX-License-Identifier: MPL-2.0

// Package runnertest provides a scripted runner.Runner that records every
// invocation instead of starting processes.
package runnertest
