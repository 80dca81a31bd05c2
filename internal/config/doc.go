// SPDX-License-Identifier: MPL-2.0

// Package config handles taskops configuration using Viper with CUE as the file format.
//
// Settings are layered: built-in defaults, then one CUE file, then TASKOPS_*
// environment variables. The CUE file is the first of --config, taskops.cue in
// the workspace root, or config.cue in the user configuration directory
// ($XDG_CONFIG_HOME/taskops on Linux, ~/Library/Application Support/taskops on
// macOS, %APPDATA%\taskops on Windows).
//
// Files are validated against an embedded CUE schema (config_schema.cue) before
// they are merged, so unknown keys and wrongly typed values are reported with
// their field path.
package config
