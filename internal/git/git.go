// SPDX-License-Identifier: MPL-2.0

package git

import (
	"context"
	"fmt"
	"slices"

	"github.com/lintd/taskops/internal/runner"
)

// DefaultProgram is the git executable name.
const DefaultProgram = "git"

// DefaultReleaseBranches are the main-line branch names a release may start from.
var DefaultReleaseBranches = []string{"main", "master"}

// Git checks release preconditions and builds git invocations.
type Git struct {
	// Program is the git executable (default "git").
	Program string
	// ReleaseBranches lists the branches CheckReleaseBranch accepts.
	ReleaseBranches []string

	runner runner.Runner
}

// New creates a Git that evaluates its queries through r.
func New(r runner.Runner) *Git {
	return &Git{
		Program:         DefaultProgram,
		ReleaseBranches: slices.Clone(DefaultReleaseBranches),
		runner:          r,
	}
}

// CheckCleanTree fails with *DirtyTreeError when the status query reports any
// uncommitted change.
func (g *Git) CheckCleanTree(ctx context.Context) error {
	status, err := g.runner.Eval(ctx, g.command("status", "--porcelain"))
	if err != nil {
		return fmt.Errorf("query working tree status: %w", err)
	}
	if status != "" {
		return &DirtyTreeError{Status: status}
	}
	return nil
}

// CheckReleaseBranch fails with *WrongBranchError unless the current branch is
// one of ReleaseBranches. A detached HEAD reports the branch "HEAD".
func (g *Git) CheckReleaseBranch(ctx context.Context) error {
	branch, err := g.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(g.ReleaseBranches, branch) {
		return &WrongBranchError{Branch: branch, Allowed: slices.Clone(g.ReleaseBranches)}
	}
	return nil
}

// CurrentBranch returns the name of the checked-out branch.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := g.runner.Eval(ctx, g.command("rev-parse", "--abbrev-ref", "HEAD"))
	if err != nil {
		return "", fmt.Errorf("query current branch: %w", err)
	}
	return branch, nil
}

// Push returns the invocation pushing the current branch.
func (g *Git) Push() runner.Invocation {
	return g.command("push")
}

// FetchTags returns the invocation fetching tags from the remote.
func (g *Git) FetchTags() runner.Invocation {
	return g.command("fetch", "--tags")
}

// CommitAll returns the invocation committing every tracked change with message.
func (g *Git) CommitAll(message string) runner.Invocation {
	return g.command("commit", "-am", message)
}

func (g *Git) command(args ...string) runner.Invocation {
	program := g.Program
	if program == "" {
		program = DefaultProgram
	}
	return runner.Command(program, args...)
}
