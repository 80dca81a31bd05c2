// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lintd/taskops/internal/config"
	"github.com/lintd/taskops/internal/git"
	"github.com/lintd/taskops/internal/issue"
	"github.com/lintd/taskops/internal/manifest"
	"github.com/lintd/taskops/internal/release"
	"github.com/lintd/taskops/internal/runner"

	"github.com/spf13/cobra"
)

// classifyError maps task failures to issue catalog IDs and returns a styled
// message for CLI rendering. A zero ID means no help card applies.
func classifyError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	var aborted *release.AbortedError
	var ae *issue.ActionableError

	switch {
	case errors.As(err, &aborted) && len(aborted.Published) > 0:
		issueID = issue.PublishAbortedId
	case errors.Is(err, exec.ErrNotFound):
		issueID = issue.ToolNotFoundId
	case errors.Is(err, git.ErrDirtyTree):
		issueID = issue.DirtyTreeId
	case errors.Is(err, git.ErrWrongBranch):
		issueID = issue.WrongBranchId
	case errors.Is(err, manifest.ErrManifestMismatch):
		issueID = issue.ManifestMismatchId
	case errors.Is(err, manifest.ErrManifestParse):
		issueID = issue.ManifestParseErrorId
	case errors.Is(err, release.ErrEmptyPlan):
		issueID = issue.EmptyPlanId
	case errors.Is(err, config.ErrInvalidConfig),
		errors.As(err, &ae) && strings.HasSuffix(ae.Operation, " configuration"):
		issueID = issue.ConfigLoadFailedId
	case errors.Is(err, runner.ErrCommandFailed):
		issueID = issue.CommandFailedId
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	if !verboseMode {
		return err.Error()
	}

	var msg strings.Builder
	msg.WriteString(err.Error())
	msg.WriteString("\n\nError chain:")
	depth := 1
	for e := errors.Unwrap(err); e != nil; e = errors.Unwrap(e) {
		fmt.Fprintf(&msg, "\n  %d. %s", depth, VerboseStyle.Render(e.Error()))
		depth++
	}
	return msg.String()
}

// fail renders err with its help card on stderr and returns the ExitError
// that makes the process exit with status 1.
func (a *App) fail(cmd *cobra.Command, err error, verbose bool) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err = withManifestContext(err)
	issueID, styled := classifyError(err, verbose)
	renderServiceError(a.stderr, a.logger, a.cardStyle, newServiceError(err, issueID, styled))
	return &ExitError{Code: 1, Err: err}
}

// withManifestContext wraps manifest failures in an ActionableError naming the
// manifest file and how to repair it. Other errors are returned unchanged.
func withManifestContext(err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}

	var parseErr *manifest.ManifestParseError
	var mismatchErr *manifest.ManifestMismatchError
	switch {
	case errors.As(err, &mismatchErr):
		return issue.NewErrorContext().
			WithOperation("match package manifest").
			WithResource(mismatchErr.Path).
			WithSuggestions(
				fmt.Sprintf("Rename the package to %q or fix the workspace member path", mismatchErr.Requested),
				"Keep each workspace member directory named after its package",
			).
			Wrap(err).
			BuildError()
	case errors.As(err, &parseErr):
		return issue.NewErrorContext().
			WithOperation("read workspace manifest").
			WithResource(parseErr.Path).
			WithSuggestions(
				"Run taskops from the workspace root or pass -C <dir>",
				"Check that the manifest is valid TOML with workspace.members or package.name and package.version",
			).
			Wrap(err).
			BuildError()
	}
	return err
}
