// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include directory and file operations (MustChdir, MustMkdirAll,
// MustWriteFile) and workspace fixtures (WriteWorkspace, WritePackage) that lay
// out Cargo-style manifests in a temporary directory.
package testutil
