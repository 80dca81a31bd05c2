// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestParse is the sentinel error matched by ManifestParseError.
	ErrManifestParse = errors.New("manifest parse error")
	// ErrManifestMismatch is the sentinel error matched by ManifestMismatchError.
	ErrManifestMismatch = errors.New("manifest mismatch")
)

type (
	// ManifestParseError is returned when a manifest is missing, unreadable,
	// not valid TOML, or lacks a required field.
	ManifestParseError struct {
		Path string
		Err  error
	}

	// ManifestMismatchError is returned when a package manifest declares a name
	// other than the package it was looked up for.
	ManifestMismatchError struct {
		Path      string
		Requested string
		Declared  string
	}
)

// Error implements the error interface.
func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("parse manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying read or decode failure.
func (e *ManifestParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrManifestParse.
func (e *ManifestParseError) Is(target error) bool { return target == ErrManifestParse }

// Error implements the error interface.
func (e *ManifestMismatchError) Error() string {
	return fmt.Sprintf("manifest %s declares package %q, expected %q", e.Path, e.Declared, e.Requested)
}

// Unwrap returns ErrManifestMismatch for errors.Is() compatibility.
func (e *ManifestMismatchError) Unwrap() error { return ErrManifestMismatch }

// missingFieldError reports a required key absent from a manifest.
func missingFieldError(key string) error {
	return fmt.Errorf("missing required field %q", key)
}
