// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lintd/taskops/internal/runner"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
)

const (
	// CoverageDir receives coverage reports.
	CoverageDir = "coverage"
	// ProfrawPattern matches the raw profiles left by instrumented test runs.
	ProfrawPattern = "**/*.profraw"
)

// Tools names the external programs the tasks run.
type Tools struct {
	Cargo       string
	Grcov       string
	ToolPackage string
}

// DefaultTools resolves every program from PATH.
func DefaultTools() Tools {
	return Tools{Cargo: "cargo", Grcov: "grcov", ToolPackage: "xtask"}
}

// CI runs the formatting check, clippy with warnings denied, and the test suite.
func CI(ctx context.Context, r runner.Runner, t Tools) error {
	steps := []runner.Invocation{
		runner.Command(t.Cargo, "fmt", "--all", "--", "--check"),
		runner.Command(t.Cargo, "clippy", "--", "-D", "warnings"),
		runner.Command(t.Cargo, "test"),
	}
	for _, step := range steps {
		if err := r.Run(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

// Docs rebuilds the documentation whenever sources change.
func Docs(ctx context.Context, r runner.Runner, t Tools) error {
	return r.Run(ctx, runner.Command(t.Cargo, "watch", "-s", t.Cargo+" doc --no-deps"))
}

// Coverage runs the instrumented test suite and writes an lcov report to
// coverage/tests.lcov, or an HTML report to coverage/html when dev is set.
// Raw profiles are removed afterwards.
func Coverage(ctx context.Context, r runner.Runner, t Tools, root string, out io.Writer, dev bool) error {
	dir := filepath.Join(root, CoverageDir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("reset %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	if err := r.Run(ctx, instrumentedTest(t)); err != nil {
		return err
	}

	format, output := "lcov", filepath.Join(CoverageDir, "tests.lcov")
	if dev {
		format, output = "html", filepath.Join(CoverageDir, "html")
	}
	if err := r.Run(ctx, grcov(t, format, "-o", output)); err != nil {
		return err
	}

	if _, err := CleanProfiles(root); err != nil {
		return err
	}
	if dev {
		fmt.Fprintf(out, "open %s\n", filepath.Join(output, "index.html"))
	}
	return nil
}

// NeoCoverage runs the instrumented tests with their output captured and
// prints a coveralls JSON report to the runner's stdout, for editor plugins.
// quiet must not announce commands or the report would be corrupted.
func NeoCoverage(ctx context.Context, quiet runner.Runner, t Tools, root string) error {
	if _, err := quiet.Eval(ctx, instrumentedTest(t)); err != nil {
		return fmt.Errorf("failed cargo test: %w", err)
	}
	if err := quiet.Run(ctx, grcov(t, "coveralls", "--token", "NO_TOKEN")); err != nil {
		return err
	}
	_, err := CleanProfiles(root)
	return err
}

// CleanProfiles removes every *.profraw file below root and returns the
// removed paths relative to root. A file that cannot be removed does not stop
// the sweep; every failure is reported in the returned error.
func CleanProfiles(root string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), ProfrawPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", ProfrawPattern, err)
	}
	removed := make([]string, 0, len(matches))
	for _, match := range matches {
		if rmErr := os.Remove(filepath.Join(root, filepath.FromSlash(match))); rmErr != nil {
			err = multierr.Append(err, fmt.Errorf("remove %s: %w", match, rmErr))
			continue
		}
		removed = append(removed, match)
	}
	return removed, err
}

func instrumentedTest(t Tools) runner.Invocation {
	return runner.Command(t.Cargo, "test").
		WithEnv("CARGO_INCREMENTAL", "0").
		WithEnv("RUSTFLAGS", "-Cinstrument-coverage").
		WithEnv("LLVM_PROFILE_FILE", "cargo-test-%p-%m.profraw")
}

func grcov(t Tools, format string, extra ...string) runner.Invocation {
	args := []string{
		".",
		"--binary-path", "./target/debug/deps",
		"-s", ".",
		"-t", format,
		"--branch",
		"--ignore-not-existing",
		"--ignore", "../*",
		"--ignore", "/*",
		"--ignore", t.ToolPackage + "/*",
		"--ignore", "*/src/tests/*",
	}
	return runner.Command(t.Grcov, append(args, extra...)...)
}
