// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lintd/taskops/internal/issue"
	"github.com/lintd/taskops/pkg/cueutil"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application name.
	AppName = "taskops"
	// EnvPrefix prefixes environment overrides, e.g. TASKOPS_RELEASE_TAG_PREFIX.
	EnvPrefix = "TASKOPS"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// WorkspaceFileName is the name of the workspace config file (without extension).
	WorkspaceFileName = "taskops"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the taskops configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ResolvePath returns the config file that Load would read, or "" when none
// exists and only defaults and environment overrides apply.
func ResolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'taskops config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	workspacePath := filepath.Join(opts.WorkspaceDir, WorkspaceFileName+"."+ConfigFileExt)
	if fileExists(workspacePath) {
		return workspacePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	userPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(userPath) {
		return userPath, nil
	}

	return "", nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath, err := ResolvePath(opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'taskops config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Unset empty TASKOPS_* environment variables").
			WithSuggestion("Remove blank values from the configuration file").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("workspace.manifest_file", defaults.Workspace.ManifestFile)
	v.SetDefault("workspace.tool_package", defaults.Workspace.ToolPackage)
	v.SetDefault("release.branches", defaults.Release.Branches)
	v.SetDefault("release.commit_marker", defaults.Release.CommitMarker)
	v.SetDefault("release.tag_prefix", defaults.Release.TagPrefix)
	v.SetDefault("auxiliary.enabled", defaults.Auxiliary.Enabled)
	v.SetDefault("tools.cargo", defaults.Tools.Cargo)
	v.SetDefault("tools.git", defaults.Tools.Git)
	v.SetDefault("tools.gh", defaults.Tools.Gh)
	v.SetDefault("tools.npm", defaults.Tools.Npm)
	v.SetDefault("tools.grcov", defaults.Tools.Grcov)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against #Config and merges its
// contents into Viper, on top of defaults and below environment overrides.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, data, "#Config", path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// taskops configuration\n\n")

	sb.WriteString("workspace: {\n")
	sb.WriteString(fmt.Sprintf("\tmanifest_file: %q\n", cfg.Workspace.ManifestFile))
	sb.WriteString(fmt.Sprintf("\ttool_package: %q\n", cfg.Workspace.ToolPackage))
	sb.WriteString("}\n")

	sb.WriteString("\nrelease: {\n")
	quoted := make([]string, 0, len(cfg.Release.Branches))
	for _, b := range cfg.Release.Branches {
		quoted = append(quoted, fmt.Sprintf("%q", b))
	}
	sb.WriteString(fmt.Sprintf("\tbranches: [%s]\n", strings.Join(quoted, ", ")))
	sb.WriteString(fmt.Sprintf("\tcommit_marker: %q\n", cfg.Release.CommitMarker))
	sb.WriteString(fmt.Sprintf("\ttag_prefix: %q\n", cfg.Release.TagPrefix))
	sb.WriteString("}\n")

	sb.WriteString("\nauxiliary: {\n")
	sb.WriteString(fmt.Sprintf("\tenabled: %v\n", cfg.Auxiliary.Enabled))
	sb.WriteString("}\n")

	sb.WriteString("\ntools: {\n")
	sb.WriteString(fmt.Sprintf("\tcargo: %q\n", cfg.Tools.Cargo))
	sb.WriteString(fmt.Sprintf("\tgit: %q\n", cfg.Tools.Git))
	sb.WriteString(fmt.Sprintf("\tgh: %q\n", cfg.Tools.Gh))
	sb.WriteString(fmt.Sprintf("\tnpm: %q\n", cfg.Tools.Npm))
	sb.WriteString(fmt.Sprintf("\tgrcov: %q\n", cfg.Tools.Grcov))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateYAML renders the configuration as YAML, using the same keys as the CUE form.
func GenerateYAML(cfg *Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal configuration: %w", err)
	}
	return string(data), nil
}
