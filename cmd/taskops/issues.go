// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lintd/taskops/internal/issue"

	"github.com/spf13/cobra"
)

// issueStyle lets glamour pick a terminal style, or plain text when stdout
// is not a terminal.
const issueStyle = "auto"

func newIssuesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "issues [id]",
		Short: "List the failure help cards, or show one",
		Long: `List every failure taskops can explain with its numeric id, or render the
help card for one id. The same card is printed after a failing command.`,
		Example: `  taskops issues
  taskops issues 1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listIssues(app.stdout)
				return nil
			}
			if err := showIssue(app.stdout, args[0]); err != nil {
				return app.fail(cmd, err, app.flags.verbose)
			}
			return nil
		},
	}
}

func listIssues(w io.Writer) {
	fmt.Fprintln(w, TitleStyle.Render("Known issues"))
	fmt.Fprintln(w)
	for _, entry := range issue.Values() {
		fmt.Fprintf(w, "  %s  %s\n", CmdStyle.Render(fmt.Sprintf("%2d", entry.Id())), entry.Title())
	}
}

func showIssue(w io.Writer, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid issue id %q: %w", arg, err)
	}
	entry := issue.Get(issue.Id(n))
	if entry == nil {
		return fmt.Errorf("unknown issue id %d (run 'taskops issues' for the list)", n)
	}
	rendered, err := entry.Render(issueStyle)
	if err != nil {
		return fmt.Errorf("render issue %d: %w", n, err)
	}
	fmt.Fprint(w, rendered)
	return nil
}
