// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lintd/taskops/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `taskops config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect taskops configuration",
		Long: `Inspect taskops configuration.

The first existing file is used:
  - the file given with --config
  - taskops.cue in the workspace root
  - config.cue in the user configuration directory
    (Linux: ~/.config/taskops, macOS: ~/Library/Application Support/taskops,
    Windows: %APPDATA%\taskops)

Any key can be overridden with a TASKOPS_ environment variable, for example
TASKOPS_RELEASE_TAG_PREFIX or TASKOPS_TOOLS_CARGO.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showConfig(cmd.Context(), app, app.stdout); err != nil {
				return app.fail(cmd, err, app.flags.verbose)
			}
			return nil
		},
	})

	var dumpFormat string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dumpConfig(cmd.Context(), app, dumpFormat); err != nil {
				return app.fail(cmd, err, app.flags.verbose)
			}
			return nil
		},
	}
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "cue", "output format (cue, yaml)")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func dumpConfig(ctx context.Context, app *App, format string) error {
	s, err := app.open(ctx, true)
	if err != nil {
		return err
	}

	switch format {
	case "cue":
		fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
	case "yaml":
		out, err := config.GenerateYAML(s.cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(app.stdout, out)
	default:
		return fmt.Errorf("unsupported format %q (want cue or yaml)", format)
	}
	return nil
}

func showConfig(ctx context.Context, app *App, w io.Writer) error {
	s, err := app.open(ctx, true)
	if err != nil {
		return err
	}
	cfg := s.cfg

	source, err := config.ResolvePath(config.LoadOptions{
		ConfigFilePath: app.flags.configFile,
		WorkspaceDir:   s.workspace,
	})
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	value := func(v any) string { return valueStyle.Render(fmt.Sprintf("%v", v)) }

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Workspace"), s.workspace)
	if source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("workspace"))
	fmt.Fprintf(w, "  manifest_file: %s\n", value(cfg.Workspace.ManifestFile))
	fmt.Fprintf(w, "  tool_package: %s\n", value(cfg.Workspace.ToolPackage))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("release"))
	fmt.Fprintf(w, "  branches: %s\n", value(strings.Join(cfg.Release.Branches, ", ")))
	fmt.Fprintf(w, "  commit_marker: %s\n", value(cfg.Release.CommitMarker))
	if cfg.Release.TagPrefix != "" {
		fmt.Fprintf(w, "  tag_prefix: %s\n", value(cfg.Release.TagPrefix))
	} else {
		fmt.Fprintf(w, "  tag_prefix: %s\n", SubtitleStyle.Render("(none)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("auxiliary"))
	fmt.Fprintf(w, "  enabled: %s\n", value(cfg.Auxiliary.Enabled))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("tools"))
	fmt.Fprintf(w, "  cargo: %s\n", value(cfg.Tools.Cargo))
	fmt.Fprintf(w, "  git: %s\n", value(cfg.Tools.Git))
	fmt.Fprintf(w, "  gh: %s\n", value(cfg.Tools.Gh))
	fmt.Fprintf(w, "  npm: %s\n", value(cfg.Tools.Npm))
	fmt.Fprintf(w, "  grcov: %s\n", value(cfg.Tools.Grcov))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", value(cfg.UI.Verbose))

	return nil
}
