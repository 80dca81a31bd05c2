// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema and
// formats CUE errors with JSON-path style field locations.
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	values, err := cueutil.DecodeMap(schema, data, "#Config", "taskops.cue")
//	if err != nil {
//	    return err // e.g. "taskops.cue: release.branches: incompatible list lengths"
//	}
package cueutil
