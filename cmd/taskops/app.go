// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lintd/taskops/internal/config"
	"github.com/lintd/taskops/internal/git"
	"github.com/lintd/taskops/internal/manifest"
	"github.com/lintd/taskops/internal/release"
	"github.com/lintd/taskops/internal/runner"
	"github.com/lintd/taskops/internal/tasks"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference and open a session through it.
	App struct {
		Config    ConfigProvider
		Addon     Addon
		NewRunner RunnerFactory
		stdout    io.Writer
		stderr    io.Writer
		flags     *rootFlags
		// logger writes to stderr; open raises it to debug for --verbose.
		logger    *log.Logger
		// cardStyle is the glamour style used for issue help cards.
		cardStyle string
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		Addon     Addon
		NewRunner RunnerFactory
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// RunnerOptions describes the runner a command needs.
	RunnerOptions struct {
		// Dir is the workspace root commands run in.
		Dir string
		// Quiet suppresses announce lines, for commands whose stdout is data.
		Quiet  bool
		Logger *log.Logger
		Stdout io.Writer
		Stderr io.Writer
	}

	// RunnerFactory creates the runner used by one command.
	RunnerFactory func(opts RunnerOptions) runner.Runner

	// rootFlags holds the persistent flags shared by every command.
	rootFlags struct {
		verbose    bool
		configFile string
		workspace  string
	}

	// session is the per-command state derived from flags and configuration.
	session struct {
		cfg       *config.Config
		workspace string
		verbose   bool
		logger    *log.Logger
		runner    runner.Runner
		app       *App
	}
)

// NewApp creates an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		Addon:     deps.Addon,
		NewRunner: deps.NewRunner,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		flags:     &rootFlags{},
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.NewRunner == nil {
		app.NewRunner = newProcessRunner
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.Addon == nil {
		app.Addon = DefaultAddon{Out: app.stdout}
	}
	app.logger = log.NewWithOptions(app.stderr, log.Options{Prefix: "taskops"})
	app.cardStyle = "dark"
	return app
}

// newProcessRunner is the production RunnerFactory. Announce lines are styled
// and written to the command's stdout.
func newProcessRunner(opts RunnerOptions) runner.Runner {
	announcer := func(line string) {
		fmt.Fprintln(opts.Stdout, CmdStyle.Render("$ "+line))
	}
	if opts.Quiet {
		announcer = nil
	}
	return runner.New(
		runner.WithDir(opts.Dir),
		runner.WithStdout(opts.Stdout),
		runner.WithStderr(opts.Stderr),
		runner.WithAnnouncer(announcer),
		runner.WithLogger(opts.Logger),
	)
}

// open resolves the workspace, loads configuration, sets the log level and
// builds the runner for one command invocation.
func (a *App) open(ctx context.Context, quiet bool) (*session, error) {
	workspace, err := a.workspaceDir()
	if err != nil {
		return nil, err
	}

	cfg, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: a.flags.configFile,
		WorkspaceDir:   workspace,
	})
	if err != nil {
		return nil, err
	}

	verbose := a.flags.verbose || cfg.UI.Verbose
	if verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	return &session{
		cfg:       cfg,
		workspace: workspace,
		verbose:   verbose,
		logger:    a.logger,
		runner: a.NewRunner(RunnerOptions{
			Dir:    workspace,
			Quiet:  quiet,
			Logger: a.logger,
			Stdout: a.stdout,
			Stderr: a.stderr,
		}),
		app: a,
	}, nil
}

func (a *App) workspaceDir() (string, error) {
	if a.flags.workspace != "" {
		dir, err := filepath.Abs(a.flags.workspace)
		if err != nil {
			return "", fmt.Errorf("resolve workspace %s: %w", a.flags.workspace, err)
		}
		return dir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}

func (s *session) orchestrator() *release.Orchestrator {
	repo := git.New(s.runner)
	repo.Program = s.cfg.Tools.Git
	repo.ReleaseBranches = s.cfg.Release.Branches

	manifests := &manifest.Resolver{
		Root:         s.workspace,
		ManifestFile: s.cfg.Workspace.ManifestFile,
		ToolPackage:  s.cfg.Workspace.ToolPackage,
	}

	return release.New(s.runner, repo, manifests,
		release.WithToolchain(release.Toolchain{
			Cargo:        s.cfg.Tools.Cargo,
			Gh:           s.cfg.Tools.Gh,
			Npm:          s.cfg.Tools.Npm,
			ToolPackage:  s.cfg.Workspace.ToolPackage,
			TagPrefix:    s.cfg.Release.TagPrefix,
			CommitMarker: s.cfg.Release.CommitMarker,
		}),
		release.WithAuxiliary(s.cfg.Auxiliary.Enabled),
		release.WithLogger(s.logger),
	)
}

func (s *session) tools() tasks.Tools {
	return tasks.Tools{
		Cargo:       s.cfg.Tools.Cargo,
		Grcov:       s.cfg.Tools.Grcov,
		ToolPackage: s.cfg.Workspace.ToolPackage,
	}
}
