// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lintd/taskops/internal/runner"
)

// NextIncrement is the increment applied after a publish to move the workspace
// onto the next development version.
const NextIncrement = "patch"

type (
	// Repository checks release preconditions and builds the version-control
	// invocations of a release.
	Repository interface {
		CheckCleanTree(ctx context.Context) error
		CheckReleaseBranch(ctx context.Context) error
		Push() runner.Invocation
		FetchTags() runner.Invocation
		CommitAll(message string) runner.Invocation
	}

	// Manifests resolves workspace members and package versions.
	Manifests interface {
		WorkspaceMembers() ([]string, error)
		PackageVersion(pkg string) (string, error)
	}

	// Option configures an Orchestrator.
	Option func(*Orchestrator)

	// Orchestrator sequences the commands of a version bump or a publish.
	Orchestrator struct {
		runner    runner.Runner
		repo      Repository
		manifests Manifests
		tools     Toolchain
		auxiliary bool
		logger    *log.Logger
	}

	// progress tracks one operation through its stages.
	progress struct {
		operation string
		stage     Stage
		published []string
		logger    *log.Logger
	}
)

// WithToolchain replaces DefaultToolchain.
func WithToolchain(t Toolchain) Option {
	return func(o *Orchestrator) {
		o.tools = t
	}
}

// WithAuxiliary enables or disables the auxiliary packaging metadata update.
// Enabled by default.
func WithAuxiliary(enabled bool) Option {
	return func(o *Orchestrator) {
		o.auxiliary = enabled
	}
}

// WithLogger sets the logger used for stage transitions.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// New creates an Orchestrator issuing commands through r.
func New(r runner.Runner, repo Repository, manifests Manifests, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		runner:    r,
		repo:      repo,
		manifests: manifests,
		tools:     DefaultToolchain(),
		auxiliary: true,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Bump bumps every workspace package by increment and commits the result.
//
// The working tree must be clean. The new version is read back from the last
// workspace member. When auxiliary packaging metadata is detected it is moved
// to the same version before the commit.
func (o *Orchestrator) Bump(ctx context.Context, increment string) error {
	p := o.start("bump")

	if err := o.repo.CheckCleanTree(ctx); err != nil {
		return p.abort("check working tree", err)
	}
	p.reach(StagePreconditionsChecked)

	if err := o.runner.Run(ctx, o.tools.SetVersion(increment)); err != nil {
		return p.abort("bump versions", err)
	}

	plan, err := o.plan()
	if err != nil {
		return p.abort("resolve workspace members", err)
	}
	pkg := plan.Last()
	version, err := o.manifests.PackageVersion(pkg)
	if err != nil {
		return p.abort("resolve version of "+pkg, err)
	}

	if o.detectAuxiliary(ctx) == CapabilityPresent {
		if err := o.runner.Run(ctx, o.tools.UpdateAuxiliary(version)); err != nil {
			return p.abort("update auxiliary packaging metadata", err)
		}
	}

	if err := o.runner.Run(ctx, o.repo.CommitAll(o.tools.CommitMessage(version))); err != nil {
		return p.abort("commit version bump", err)
	}
	p.reach(StageDone)
	return nil
}

// Publish releases every workspace package.
//
// Sequence: clean tree and release branch checks, push, dry run of every
// package, publish of every package, hosted release tagged with the first
// package's version, tag fetch, patch bump, push.
func (o *Orchestrator) Publish(ctx context.Context) error {
	p := o.start("publish")

	if err := o.repo.CheckCleanTree(ctx); err != nil {
		return p.abort("check working tree", err)
	}
	if err := o.repo.CheckReleaseBranch(ctx); err != nil {
		return p.abort("check release branch", err)
	}
	p.reach(StagePreconditionsChecked)

	if err := o.runner.Run(ctx, o.repo.Push()); err != nil {
		return p.abort("push", err)
	}
	p.reach(StagePushed)

	plan, err := o.plan()
	if err != nil {
		return p.abort("resolve workspace members", err)
	}

	for _, pkg := range plan.Packages() {
		if err := o.runner.Run(ctx, o.tools.PublishDryRun(pkg)); err != nil {
			return p.abort("dry-run publish of "+pkg, err)
		}
	}
	p.reach(StageDryRunValidated)

	for _, pkg := range plan.Packages() {
		if err := o.runner.Run(ctx, o.tools.Publish(pkg)); err != nil {
			return p.abort("publish of "+pkg, err)
		}
		p.published = append(p.published, pkg)
	}
	p.reach(StagePublished)

	pkg := plan.First()
	version, err := o.manifests.PackageVersion(pkg)
	if err != nil {
		return p.abort("resolve version of "+pkg, err)
	}
	if err := o.runner.Run(ctx, o.tools.CreateRelease(version)); err != nil {
		return p.abort("create release "+o.tools.Tag(version), err)
	}
	p.reach(StageReleased)

	if err := o.runner.Run(ctx, o.repo.FetchTags()); err != nil {
		return p.abort("fetch tags", err)
	}
	if err := o.Bump(ctx, NextIncrement); err != nil {
		return p.abort("bump to next version", err)
	}
	p.reach(StageNextVersionBumped)

	if err := o.runner.Run(ctx, o.repo.Push()); err != nil {
		return p.abort("push next version", err)
	}
	p.reach(StageDone)
	return nil
}

func (o *Orchestrator) plan() (Plan, error) {
	members, err := o.manifests.WorkspaceMembers()
	if err != nil {
		return Plan{}, err
	}
	return NewPlan(members, o.tools.ToolPackage)
}

func (o *Orchestrator) start(operation string) *progress {
	return &progress{
		operation: operation,
		stage:     StageIdle,
		logger:    o.logger.With("operation", operation),
	}
}

func (p *progress) reach(stage Stage) {
	p.stage = stage
	p.logger.Debug("stage reached", "stage", stage)
}

func (p *progress) abort(step string, err error) error {
	if len(p.published) > 0 {
		p.logger.Warn("aborting after a partial publish", "published", p.published, "step", step)
	}
	return &AbortedError{
		Operation: p.operation,
		Stage:     p.stage,
		Step:      step,
		Published: slices.Clone(p.published),
		Err:       err,
	}
}
