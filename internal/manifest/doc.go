// SPDX-License-Identifier: MPL-2.0

// Package manifest reads workspace and package manifests (Cargo.toml style TOML
// files) to find which packages a release covers and what version they declare.
//
// Only workspace.members, workspace.package.version, package.name and
// package.version are consumed. Versions are returned verbatim and never parsed.
package manifest
