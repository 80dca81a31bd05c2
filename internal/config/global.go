// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform lookup in ConfigDir when set.
var configDirOverride string

// Reset clears the config directory override.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride pins ConfigDir to dir, bypassing APPDATA, XDG_CONFIG_HOME
// and the home directory lookup. Tests use it to isolate the user config file.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
