// SPDX-License-Identifier: MPL-2.0

// Package runner executes external commands for taskops.
//
// Two modes are provided. Run announces the command, streams its combined
// stdout/stderr to the runner's output and returns the bare execution failure.
// Eval announces the command, captures its stdout with trailing whitespace
// trimmed, and attaches the rendered command line to any failure so the caller
// can tell which query failed.
//
// There is no timeout or retry: a command that never exits blocks the caller.
package runner
