// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidToolPackage is returned when the tool package name is blank.
	ErrInvalidToolPackage = errors.New("invalid tool package")
	// ErrInvalidReleaseConfig is the sentinel error wrapped by InvalidReleaseConfigError.
	ErrInvalidReleaseConfig = errors.New("invalid release config")
	// ErrInvalidToolsConfig is the sentinel error wrapped by InvalidToolsConfigError.
	ErrInvalidToolsConfig = errors.New("invalid tools config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config is the resolved taskops configuration.
	Config struct {
		Workspace WorkspaceConfig `json:"workspace" mapstructure:"workspace" yaml:"workspace"`
		Release   ReleaseConfig   `json:"release"   mapstructure:"release"   yaml:"release"`
		Auxiliary AuxiliaryConfig `json:"auxiliary" mapstructure:"auxiliary" yaml:"auxiliary"`
		Tools     ToolsConfig     `json:"tools"     mapstructure:"tools"     yaml:"tools"`
		UI        UIConfig        `json:"ui"        mapstructure:"ui"        yaml:"ui"`
	}

	// WorkspaceConfig locates manifests inside the workspace.
	WorkspaceConfig struct {
		ManifestFile string `json:"manifest_file" mapstructure:"manifest_file" yaml:"manifest_file"`
		ToolPackage  string `json:"tool_package"  mapstructure:"tool_package"  yaml:"tool_package"`
	}

	// ReleaseConfig controls where and how releases are cut.
	ReleaseConfig struct {
		Branches     []string `json:"branches"      mapstructure:"branches"      yaml:"branches"`
		CommitMarker string   `json:"commit_marker" mapstructure:"commit_marker" yaml:"commit_marker"`
		TagPrefix    string   `json:"tag_prefix"    mapstructure:"tag_prefix"    yaml:"tag_prefix"`
	}

	// AuxiliaryConfig toggles the npm manifest step of a bump.
	AuxiliaryConfig struct {
		Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`
	}

	// ToolsConfig names the external programs taskops drives.
	ToolsConfig struct {
		Cargo string `json:"cargo" mapstructure:"cargo" yaml:"cargo"`
		Git   string `json:"git"   mapstructure:"git"   yaml:"git"`
		Gh    string `json:"gh"    mapstructure:"gh"    yaml:"gh"`
		Npm   string `json:"npm"   mapstructure:"npm"   yaml:"npm"`
		Grcov string `json:"grcov" mapstructure:"grcov" yaml:"grcov"`
	}

	// UIConfig holds output preferences.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose" yaml:"verbose"`
	}

	// InvalidReleaseConfigError is returned when ReleaseConfig has invalid fields.
	// It wraps ErrInvalidReleaseConfig for errors.Is() compatibility.
	InvalidReleaseConfigError struct {
		Reason string
	}

	// InvalidToolsConfigError is returned when a tool program name is blank.
	// It wraps ErrInvalidToolsConfig for errors.Is() compatibility.
	InvalidToolsConfigError struct {
		Tool string
	}

	// InvalidConfigError collects every field error found by Config.IsValid.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			ManifestFile: "Cargo.toml",
			ToolPackage:  "xtask",
		},
		Release: ReleaseConfig{
			Branches:     []string{"main", "master"},
			CommitMarker: ":bookmark:",
			TagPrefix:    "v",
		},
		Auxiliary: AuxiliaryConfig{
			Enabled: true,
		},
		Tools: ToolsConfig{
			Cargo: "cargo",
			Git:   "git",
			Gh:    "gh",
			Npm:   "npm",
			Grcov: "grcov",
		},
	}
}

// IsValid returns whether the WorkspaceConfig names a manifest file and a tool package.
func (c WorkspaceConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.ManifestFile) == "" {
		errs = append(errs, errors.New("workspace.manifest_file must not be empty"))
	}
	if strings.TrimSpace(c.ToolPackage) == "" {
		errs = append(errs, fmt.Errorf("workspace.tool_package: %w", ErrInvalidToolPackage))
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the ReleaseConfig allows at least one named branch.
func (c ReleaseConfig) IsValid() (bool, []error) {
	if len(c.Branches) == 0 {
		return false, []error{&InvalidReleaseConfigError{Reason: "branches must list at least one branch"}}
	}
	for i, b := range c.Branches {
		if strings.TrimSpace(b) == "" {
			return false, []error{&InvalidReleaseConfigError{Reason: fmt.Sprintf("branches[%d] is empty", i)}}
		}
	}
	if strings.TrimSpace(c.CommitMarker) == "" {
		return false, []error{&InvalidReleaseConfigError{Reason: "commit_marker must not be empty"}}
	}
	return true, nil
}

// Error implements the error interface for InvalidReleaseConfigError.
func (e *InvalidReleaseConfigError) Error() string {
	return "invalid release config: " + e.Reason
}

// Unwrap returns ErrInvalidReleaseConfig for errors.Is() compatibility.
func (e *InvalidReleaseConfigError) Unwrap() error { return ErrInvalidReleaseConfig }

// IsValid returns whether every tool has a program name.
func (c ToolsConfig) IsValid() (bool, []error) {
	var errs []error
	for _, tool := range []struct{ name, value string }{
		{"cargo", c.Cargo},
		{"git", c.Git},
		{"gh", c.Gh},
		{"npm", c.Npm},
		{"grcov", c.Grcov},
	} {
		if strings.TrimSpace(tool.value) == "" {
			errs = append(errs, &InvalidToolsConfigError{Tool: tool.name})
		}
	}
	return len(errs) == 0, errs
}

// Error implements the error interface for InvalidToolsConfigError.
func (e *InvalidToolsConfigError) Error() string {
	return fmt.Sprintf("invalid tools config: tools.%s must not be empty", e.Tool)
}

// Unwrap returns ErrInvalidToolsConfig for errors.Is() compatibility.
func (e *InvalidToolsConfigError) Unwrap() error { return ErrInvalidToolsConfig }

// IsValid returns whether the Config has valid fields.
// Auxiliary and UI hold only bool fields and need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Workspace.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Release.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Tools.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
