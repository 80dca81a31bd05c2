// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for taskops.
//
// The command tree is built by newRootCommand around an App, the composition
// root that owns configuration loading, the command runner and output streams.
// Execute runs the tree with fang and maps failures to process exit codes.
// Embedding binaries extend the dist and rule commands by passing their own
// Addon to Execute.
package cmd
