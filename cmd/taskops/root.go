// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskops",
		Short: "Release and maintenance tasks for Cargo workspaces",
		Long: TitleStyle.Render("taskops") + SubtitleStyle.Render(" - Release and maintenance tasks for Cargo workspaces") + `

taskops bumps, publishes and releases every package of a Cargo workspace
in one guarded sequence, and runs the everyday CI, documentation and
coverage chores of the repository.

` + SubtitleStyle.Render("Examples:") + `
  taskops bump              Bump every package to the next patch version
  taskops bump minor        Bump every package to the next minor version
  taskops publish           Dry-run, publish, tag and release the workspace
  taskops ci                Run fmt, clippy and the test suite
  taskops coverage --dev    Build an HTML coverage report
  taskops config show       Show current configuration
  taskops issues 1          Explain a failure by its help card id`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.flags.configFile, "config", "", "config file (default is <workspace>/taskops.cue, then $XDG_CONFIG_HOME/taskops/config.cue)")
	flags.StringVarP(&app.flags.workspace, "workspace", "C", "", "workspace root (default is the current directory)")

	rootCmd.AddCommand(newBumpCommand(app))
	rootCmd.AddCommand(newPublishCommand(app))
	rootCmd.AddCommand(newCICommand(app))
	rootCmd.AddCommand(newDocsCommand(app))
	rootCmd.AddCommand(newCoverageCommand(app))
	rootCmd.AddCommand(newDistCommand(app))
	rootCmd.AddCommand(newRuleCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newIssuesCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs taskops with addon serving the dist and rule commands; a nil
// addon selects DefaultAddon. This is called by main.main().
func Execute(addon Addon) {
	app := NewApp(Dependencies{Addon: addon})

	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// handleError leaves errors already rendered by a command alone and hands
// everything else (usage errors, unknown commands) to fang.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
