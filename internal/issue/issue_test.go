// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	// Verify all IDs are unique and sequential
	ids := []Id{
		MissingTokenId,
		ConfigFileReadErrorId,
		InvalidEnvPatternId,
		DockerNotFoundId,
		ImagePullFailedId,
		RenovateRunFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if MissingTokenId != 1 {
		t.Errorf("MissingTokenId = %d, want 1", MissingTokenId)
	}
}

func TestGet_ReturnsCatalogueEntry(t *testing.T) {
	for _, id := range []Id{MissingTokenId, ConfigFileReadErrorId, InvalidEnvPatternId, DockerNotFoundId, ImagePullFailedId, RenovateRunFailedId} {
		issue := Get(id)
		if issue == nil {
			t.Fatalf("Get(%d) returned nil", id)
		}
		if issue.Id() != id {
			t.Errorf("issue.Id() = %d, want %d", issue.Id(), id)
		}
		if issue.MarkdownMsg() == "" {
			t.Errorf("issue %d has empty markdown message", id)
		}
	}
}

func TestGet_UnknownIdReturnsNil(t *testing.T) {
	if got := Get(Id(9999)); got != nil {
		t.Errorf("Get(9999) = %v, want nil", got)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(MissingTokenId)
	if issue == nil {
		t.Fatal("Get(MissingTokenId) returned nil")
	}

	if !strings.Contains(string(issue.MarkdownMsg()), "RENOVATE_TOKEN") {
		t.Error("MarkdownMsg() should mention RENOVATE_TOKEN")
	}
}

func TestValues_CoversAllIssues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Errorf("Values() returned %d issues, want %d", len(values), len(issues))
	}
}

func TestIssue_Render(t *testing.T) {
	original := render
	defer func() { render = original }()

	var rendered string
	render = func(in, stylePath string) (string, error) {
		rendered = in
		return in, nil
	}

	out, err := Get(DockerNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if out != rendered {
		t.Errorf("Render() = %q, want the rendered markdown", out)
	}
	if !strings.Contains(rendered, "Docker not found") {
		t.Error("rendered markdown should contain the issue title")
	}
}

func TestIssue_RenderError(t *testing.T) {
	original := render
	defer func() { render = original }()

	render = func(in, stylePath string) (string, error) {
		return "", errors.New("render failed")
	}

	if _, err := Get(DockerNotFoundId).Render("dark"); err == nil {
		t.Error("Render() should propagate renderer errors")
	}
}
