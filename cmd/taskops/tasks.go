// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/lintd/taskops/internal/tasks"

	"github.com/spf13/cobra"
)

// runTask opens a session and runs fn, rendering any failure.
func runTask(app *App, cmd *cobra.Command, quiet bool, fn func(context.Context, *session) error) error {
	s, err := app.open(cmd.Context(), quiet)
	if err != nil {
		return app.fail(cmd, err, app.flags.verbose)
	}
	if err := fn(cmd.Context(), s); err != nil {
		return app.fail(cmd, err, s.verbose)
	}
	return nil
}

func newCICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ci",
		Short: "Run the formatting check, clippy and the test suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(app, cmd, false, func(ctx context.Context, s *session) error {
				return tasks.CI(ctx, s.runner, s.tools())
			})
		},
	}
}

func newDocsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Rebuild the API documentation on every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(app, cmd, false, func(ctx context.Context, s *session) error {
				return tasks.Docs(ctx, s.runner, s.tools())
			})
		},
	}
}

func newCoverageCommand(app *App) *cobra.Command {
	var dev, neo bool

	coverageCmd := &cobra.Command{
		Use:   "coverage",
		Short: "Run the tests with coverage instrumentation",
		Long: `Run the test suite with coverage instrumentation and aggregate the raw
profiles with grcov into coverage/tests.lcov.

With --dev an HTML report is written to coverage/html instead. With --neo a
coveralls JSON report is printed to stdout for editor integrations, and no
command lines are announced; --neo takes precedence over --dev.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if neo {
				return runTask(app, cmd, true, func(ctx context.Context, s *session) error {
					return tasks.NeoCoverage(ctx, s.runner, s.tools(), s.workspace)
				})
			}
			return runTask(app, cmd, false, func(ctx context.Context, s *session) error {
				return tasks.Coverage(ctx, s.runner, s.tools(), s.workspace, app.stdout, dev)
			})
		},
	}

	coverageCmd.Flags().BoolVarP(&dev, "dev", "d", false, "write an HTML report to coverage/html")
	coverageCmd.Flags().BoolVar(&neo, "neo", false, "print a coveralls JSON report for editor integrations")

	return coverageCmd
}
