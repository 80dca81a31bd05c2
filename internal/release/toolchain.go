// SPDX-License-Identifier: MPL-2.0

package release

import (
	"github.com/lintd/taskops/internal/manifest"
	"github.com/lintd/taskops/internal/runner"
)

const (
	// DefaultTagPrefix prefixes the version in release tags.
	DefaultTagPrefix = "v"
	// DefaultCommitMarker starts every version bump commit message.
	DefaultCommitMarker = ":bookmark:"
)

// Toolchain names the external programs a release drives and builds their
// invocations.
type Toolchain struct {
	Cargo        string
	Gh           string
	Npm          string
	ToolPackage  string
	TagPrefix    string
	CommitMarker string
}

// DefaultToolchain returns the toolchain resolving every program from PATH.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Cargo:        "cargo",
		Gh:           "gh",
		Npm:          "npm",
		ToolPackage:  manifest.DefaultToolPackage,
		TagPrefix:    DefaultTagPrefix,
		CommitMarker: DefaultCommitMarker,
	}
}

// SetVersion bumps every workspace package except the tool package by
// increment. The increment is passed through for cargo-set-version to validate.
func (t Toolchain) SetVersion(increment string) runner.Invocation {
	return runner.Command(t.Cargo, "set-version", "--workspace", "--bump", increment, "--exclude", t.ToolPackage)
}

// PublishDryRun validates that pkg can be published without uploading it.
func (t Toolchain) PublishDryRun(pkg string) runner.Invocation {
	return runner.Command(t.Cargo, "publish", "--dry-run", "-p", pkg)
}

// Publish uploads pkg to the registry.
func (t Toolchain) Publish(pkg string) runner.Invocation {
	return runner.Command(t.Cargo, "publish", "-p", pkg)
}

// Tag returns the release tag for version.
func (t Toolchain) Tag(version string) string {
	return t.TagPrefix + version
}

// CreateRelease creates the hosted release for version with generated notes.
func (t Toolchain) CreateRelease(version string) runner.Invocation {
	tag := t.Tag(version)
	return runner.Command(t.Gh, "release", "create", tag, "--title", tag, "--generate-notes")
}

// ProbeAuxiliary succeeds only when the npm package metadata is readable.
func (t Toolchain) ProbeAuxiliary() runner.Invocation {
	return runner.Command(t.Npm, "pkg", "get", "version")
}

// UpdateAuxiliary writes version into the npm package metadata.
func (t Toolchain) UpdateAuxiliary(version string) runner.Invocation {
	return runner.Command(t.Npm, "version", version, "--no-git-tag-version", "--allow-same-version")
}

// CommitMessage returns the message of the version bump commit.
func (t Toolchain) CommitMessage(version string) string {
	return t.CommitMarker + " bump to " + t.Tag(version)
}
