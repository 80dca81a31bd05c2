// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultManifestFile is the manifest file name of the workspace and of each package.
	DefaultManifestFile = "Cargo.toml"
	// DefaultToolPackage is the workspace member that hosts the release tooling
	// itself; it is never part of a release.
	DefaultToolPackage = "xtask"
)

type (
	// Resolver reads the manifests of a workspace rooted at Root.
	Resolver struct {
		// Root is the workspace directory holding the workspace manifest.
		Root string
		// ManifestFile is the manifest file name (default Cargo.toml).
		ManifestFile string
		// ToolPackage is excluded from the member list (default xtask).
		ToolPackage string
	}

	workspaceDocument struct {
		Workspace *struct {
			Members *[]string `toml:"members"`
			Package struct {
				Version *string `toml:"version"`
			} `toml:"package"`
		} `toml:"workspace"`
	}

	packageDocument struct {
		Package *struct {
			Name    *string `toml:"name"`
			Version any     `toml:"version"`
		} `toml:"package"`
	}
)

// NewResolver creates a Resolver for the workspace at root using the default
// manifest file name and tool package.
func NewResolver(root string) *Resolver {
	return &Resolver{
		Root:         root,
		ManifestFile: DefaultManifestFile,
		ToolPackage:  DefaultToolPackage,
	}
}

// WorkspacePath returns the path of the workspace manifest.
func (r *Resolver) WorkspacePath() string {
	return filepath.Join(r.Root, r.manifestFile())
}

// PackagePath returns the path of the manifest of pkg.
func (r *Resolver) PackagePath(pkg string) string {
	return filepath.Join(r.Root, pkg, r.manifestFile())
}

// WorkspaceMembers returns the declared workspace members in manifest order,
// without the tool package.
func (r *Resolver) WorkspaceMembers() ([]string, error) {
	path := r.WorkspacePath()
	doc, err := r.readWorkspace(path)
	if err != nil {
		return nil, err
	}
	if doc.Workspace == nil || doc.Workspace.Members == nil {
		return nil, &ManifestParseError{Path: path, Err: missingFieldError("workspace.members")}
	}

	members := make([]string, 0, len(*doc.Workspace.Members))
	for _, member := range *doc.Workspace.Members {
		if member == r.ToolPackage {
			continue
		}
		members = append(members, member)
	}
	return members, nil
}

// PackageVersion returns the version declared by the manifest of pkg.
//
// The manifest must declare package.name equal to pkg. A version of the form
// `version.workspace = true` resolves to workspace.package.version of the
// workspace manifest.
func (r *Resolver) PackageVersion(pkg string) (string, error) {
	path := r.PackagePath(pkg)

	var doc packageDocument
	if err := decodeFile(path, &doc); err != nil {
		return "", err
	}
	if doc.Package == nil || doc.Package.Name == nil {
		return "", &ManifestParseError{Path: path, Err: missingFieldError("package.name")}
	}
	if *doc.Package.Name != pkg {
		return "", &ManifestMismatchError{Path: path, Requested: pkg, Declared: *doc.Package.Name}
	}

	switch version := doc.Package.Version.(type) {
	case string:
		return version, nil
	case map[string]any:
		if inherit, _ := version["workspace"].(bool); inherit {
			return r.workspaceVersion()
		}
		return "", &ManifestParseError{Path: path, Err: errors.New("package.version table must set workspace = true")}
	case nil:
		return "", &ManifestParseError{Path: path, Err: missingFieldError("package.version")}
	default:
		return "", &ManifestParseError{Path: path, Err: fmt.Errorf("package.version must be a string, got %T", version)}
	}
}

func (r *Resolver) workspaceVersion() (string, error) {
	path := r.WorkspacePath()
	doc, err := r.readWorkspace(path)
	if err != nil {
		return "", err
	}
	if doc.Workspace == nil || doc.Workspace.Package.Version == nil {
		return "", &ManifestParseError{Path: path, Err: missingFieldError("workspace.package.version")}
	}
	return *doc.Workspace.Package.Version, nil
}

func (r *Resolver) readWorkspace(path string) (*workspaceDocument, error) {
	var doc workspaceDocument
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *Resolver) manifestFile() string {
	if r.ManifestFile == "" {
		return DefaultManifestFile
	}
	return r.ManifestFile
}

// decodeFile reads and decodes the TOML document at path into v. Failures are
// returned as *ManifestParseError.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ManifestParseError{Path: path, Err: err}
	}

	if err := toml.Unmarshal(data, v); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			err = fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return &ManifestParseError{Path: path, Err: err}
	}
	return nil
}
