// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	DirtyTreeId Id = iota + 1
	WrongBranchId
	ManifestParseErrorId
	ManifestMismatchId
	EmptyPlanId
	CommandFailedId
	ToolNotFoundId
	PublishAbortedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reference documentation for the failing step
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Title returns the text of the card's first markdown heading.
func (i *Issue) Title() string {
	for line := range strings.Lines(string(i.mdMsg)) {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSuffix(title, "!")
		}
	}
	return ""
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	var extraMd strings.Builder
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			extraMd.WriteString("- " + string(link) + "\n")
		}
		for _, link := range i.extLinks {
			extraMd.WriteString("- " + string(link) + "\n")
		}
	}
	return render(string(i.mdMsg)+extraMd.String(), stylePath)
}

var (
	render = glamour.Render

	dirtyTreeIssue = &Issue{
		id: DirtyTreeId,
		mdMsg: `
# Working directory is not clean!
Releases are cut from committed state only, so nothing was changed.

## Things you can try to fix and retry
- Review the pending changes:
~~~
$ git status
~~~
- Commit them, or stash them for later:
~~~
$ git stash
~~~`,
		docLinks: []HttpLink{"https://git-scm.com/docs/git-status"},
	}

	wrongBranchIssue = &Issue{
		id: WrongBranchId,
		mdMsg: `
# Not on a release branch!
Publishing only runs from a configured release branch (` + "`main` or `master`" + ` by default).

## Things you can try to fix and retry
- Switch to the release branch and update it:
~~~
$ git switch main && git pull
~~~
- Allow another branch in ` + "`taskops.cue`" + `:
~~~
release: branches: ["main", "release"]
~~~`,
		docLinks: []HttpLink{"https://git-scm.com/docs/git-switch"},
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to read a manifest!
A workspace or member manifest is missing, is not valid TOML, or lacks a field taskops needs.

## Things you can try to fix and retry
- The workspace manifest must declare ` + "`[workspace] members`" + `.
- Every member manifest must declare ` + "`[package] name`" + ` and ` + "`version`" + ` (or ` + "`version.workspace = true`" + `).
- Check the manifest with cargo itself:
~~~
$ cargo metadata --no-deps --format-version 1
~~~`,
		docLinks: []HttpLink{"https://doc.rust-lang.org/cargo/reference/workspaces.html"},
	}

	manifestMismatchIssue = &Issue{
		id: ManifestMismatchId,
		mdMsg: `
# Package name does not match its directory!
Workspace members are looked up by directory, and the manifest found there declares a different package name.

## Things you can try to fix and retry
- Rename the member directory to match ` + "`package.name`" + `.
- Or rename the package so both agree.`,
		docLinks: []HttpLink{"https://doc.rust-lang.org/cargo/reference/manifest.html#the-name-field"},
	}

	emptyPlanIssue = &Issue{
		id: EmptyPlanId,
		mdMsg: `
# Nothing to publish!
After removing the tool package, the workspace has no members left.

## Things you can try to fix and retry
- List the packages to release in ` + "`[workspace] members`" + `.
- Check ` + "`workspace.tool_package`" + ` in your configuration.`,
		docLinks: []HttpLink{"https://doc.rust-lang.org/cargo/reference/workspaces.html#the-members-and-exclude-fields"},
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# An external command failed!
The command shown above exited with an error and the task stopped there.

## Things you can try to fix and retry
- Read the command output above; it is printed unmodified.
- Run the same command by hand to reproduce it.
- Re-run with ` + "`--verbose`" + ` to see the full error chain.`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Required tool not found!
taskops drives cargo, git, gh, npm and grcov, and one of them is not on your PATH.

## Things you can try to fix and retry
- Install the cargo subcommands used by releases and coverage:
~~~
$ cargo install cargo-edit cargo-watch grcov
~~~
- Point taskops at a custom location in ` + "`taskops.cue`" + `:
~~~
tools: cargo: "/opt/rust/bin/cargo"
~~~`,
		extLinks: []HttpLink{
			"https://github.com/killercup/cargo-edit",
			"https://cli.github.com",
		},
	}

	publishAbortedIssue = &Issue{
		id: PublishAbortedId,
		mdMsg: `
# Publish stopped after some packages were released!
Registry uploads cannot be undone, so the packages listed above stay published.

## Things you can try to fix and retry
- Fix the failing package and publish it by hand:
~~~
$ cargo publish -p <package>
~~~
- Then tag and create the release manually, or bump and publish again.`,
		docLinks: []HttpLink{"https://doc.rust-lang.org/cargo/commands/cargo-publish.html"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!
A taskops configuration file could not be read or does not match the schema.

## Things you can try to fix and retry
- Print the effective configuration:
~~~
$ taskops config show
~~~
- Compare your file with the defaults and remove unknown keys.`,
		docLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	}

	issues = map[Id]*Issue{
		dirtyTreeIssue.Id():          dirtyTreeIssue,
		wrongBranchIssue.Id():        wrongBranchIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		manifestMismatchIssue.Id():   manifestMismatchIssue,
		emptyPlanIssue.Id():          emptyPlanIssue,
		commandFailedIssue.Id():      commandFailedIssue,
		toolNotFoundIssue.Id():       toolNotFoundIssue,
		publishAbortedIssue.Id():     publishAbortedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	values := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		values = append(values, issues[id])
	}
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
