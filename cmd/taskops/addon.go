// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// DefaultRuleTarget is the rule target used when none is given.
const DefaultRuleTarget = "default"

type (
	// Addon supplies project-specific distribution and rule generation.
	// Binaries embedding taskops pass their own implementation to Execute.
	Addon interface {
		// Dist builds the distributable artifacts of the project.
		Dist(ctx context.Context) error
		// Rule generates the rule named target with the given options.
		Rule(ctx context.Context, target string, options []string) error
	}

	// DefaultAddon is the Addon of a project that has not provided one.
	// It only reports that nothing was produced.
	DefaultAddon struct {
		Out io.Writer
	}
)

// Dist implements Addon.
func (a DefaultAddon) Dist(context.Context) error {
	fmt.Fprintln(a.Out, WarningStyle.Render("Warning: Empty dist receipt."))
	return nil
}

// Rule implements Addon.
func (a DefaultAddon) Rule(_ context.Context, target string, options []string) error {
	fmt.Fprintln(a.Out, WarningStyle.Render(fmt.Sprintf(
		"Warning: Empty receipt for target %s, options: %s", target, formatOptions(options))))
	return nil
}

// formatOptions renders options as a bracketed list of quoted strings.
func formatOptions(options []string) string {
	quoted := make([]string, 0, len(options))
	for _, opt := range options {
		quoted = append(quoted, strconv.Quote(opt))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func newDistCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dist",
		Short: "Build distributable artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Addon.Dist(cmd.Context()); err != nil {
				return app.fail(cmd, err, app.flags.verbose)
			}
			return nil
		},
	}
}

func newRuleCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rule [target] [options...]",
		Short: "Generate a rule",
		Long: `Generate a rule through the project's addon. The target defaults to
"default"; remaining arguments are passed through as options. Options that
start with a dash must follow "--".`,
		Example: `  taskops rule
  taskops rule no-unused-vars -- --fix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := DefaultRuleTarget
			var options []string
			if len(args) > 0 {
				target = args[0]
				options = args[1:]
			}
			if err := app.Addon.Rule(cmd.Context(), target, options); err != nil {
				return app.fail(cmd, err, app.flags.verbose)
			}
			return nil
		},
	}
}
