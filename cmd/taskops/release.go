// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/lintd/taskops/internal/release"

	"github.com/spf13/cobra"
)

func newBumpCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bump [increment]",
		Short: "Bump every workspace package and commit the new version",
		Long: `Bump every workspace package except the tool package by the given
increment (default "patch") with cargo set-version, update the npm package
manifest when one is present, and commit the result.

The working tree must be clean.`,
		Example: `  taskops bump
  taskops bump minor`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			increment := release.NextIncrement
			if len(args) == 1 {
				increment = args[0]
			}

			s, err := app.open(cmd.Context(), false)
			if err != nil {
				return app.fail(cmd, err, app.flags.verbose)
			}
			if err := s.orchestrator().Bump(cmd.Context(), increment); err != nil {
				return app.fail(cmd, err, s.verbose)
			}

			fmt.Fprintln(app.stdout, SuccessStyle.Render("✓ Bumped workspace ("+increment+")"))
			return nil
		},
	}
}

func newPublishCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish every workspace package and create the release",
		Long: `Publish the workspace from a clean release branch:

  1. push the release branch
  2. dry-run publish every package, stopping at the first failure
  3. publish every package in workspace member order
  4. create the GitHub release tagged with the first package's version
  5. fetch the new tag
  6. bump to the next patch version
  7. push the bump commit

A failure after step 3 has started leaves earlier packages published.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context(), false)
			if err != nil {
				return app.fail(cmd, err, app.flags.verbose)
			}
			if err := s.orchestrator().Publish(cmd.Context()); err != nil {
				return app.fail(cmd, err, s.verbose)
			}

			fmt.Fprintln(app.stdout, SuccessStyle.Render("✓ Published workspace"))
			return nil
		},
	}
}
