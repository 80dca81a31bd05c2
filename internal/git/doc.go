// SPDX-License-Identifier: MPL-2.0

// Package git checks the release preconditions of a repository and builds the
// git invocations issued during a release. All git access goes through a
// runner.Runner; the package never shells out on its own.
package git
