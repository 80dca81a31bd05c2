// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	DirtyTreeId,
	WrongBranchId,
	ManifestParseErrorId,
	ManifestMismatchId,
	EmptyPlanId,
	CommandFailedId,
	ToolNotFoundId,
	PublishAbortedId,
	ConfigLoadFailedId,
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if DirtyTreeId != 1 {
		t.Errorf("DirtyTreeId = %d, want 1", DirtyTreeId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{DirtyTreeId, false, "not clean"},
		{WrongBranchId, false, "release branch"},
		{ManifestParseErrorId, false, "manifest"},
		{ManifestMismatchId, false, "does not match"},
		{EmptyPlanId, false, "Nothing to publish"},
		{CommandFailedId, false, "external command"},
		{ToolNotFoundId, false, "PATH"},
		{PublishAbortedId, false, "stay published"},
		{ConfigLoadFailedId, false, "taskops config show"},
		{Id(0), true, ""},
		{Id(999), true, ""},
	}

	for _, tt := range tests {
		issue := Get(tt.id)
		if tt.wantNil {
			if issue != nil {
				t.Errorf("Get(%d) = %v, want nil", tt.id, issue)
			}
			continue
		}
		if issue == nil {
			t.Fatalf("Get(%d) returned nil", tt.id)
		}
		if issue.Id() != tt.id {
			t.Errorf("issue.Id() = %d, want %d", issue.Id(), tt.id)
		}
		if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
			t.Errorf("Get(%d) message should contain %q", tt.id, tt.contains)
		}
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(allIds) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(allIds))
	}
	for i, issue := range values {
		if issue.Id() != allIds[i] {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), allIds[i])
		}
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	issue := Get(ToolNotFoundId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ToolNotFound should carry external links")
	}
	links[0] = "changed"
	if issue.ExtLinks()[0] == "changed" {
		t.Error("ExtLinks() should return a copy")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(DirtyTreeId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "## See also\n- https://git-scm.com/docs/git-status") {
		t.Errorf("Render() should list doc links, got:\n%s", rendered)
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(CommandFailedId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() should not add a links section when there are none")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, issue := range Values() {
		if issue.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", issue.Id())
		}
		rendered, err := issue.Render("notty")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if rendered == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}

func TestIssue_Title(t *testing.T) {
	tests := []struct {
		id   Id
		want string
	}{
		{DirtyTreeId, "Working directory is not clean"},
		{EmptyPlanId, "Nothing to publish"},
		{ConfigLoadFailedId, "Failed to load configuration"},
	}

	for _, tt := range tests {
		if got := Get(tt.id).Title(); got != tt.want {
			t.Errorf("Get(%d).Title() = %q, want %q", tt.id, got, tt.want)
		}
	}
	for _, issue := range Values() {
		if issue.Title() == "" {
			t.Errorf("Issue %d has no heading", issue.Id())
		}
	}
}
