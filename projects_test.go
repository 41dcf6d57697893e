package portfolio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const projectsYAML = `projects:
  - name: older
    summary: an older project
    url: https://example.com/older
    stack: [go, htmx]
    year: 2022
  - name: newer
    summary: a newer project
    repo: https://github.com/example/newer
    stack: [go]
    year: 2025
`

func writeProjectsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjects(t *testing.T) {
	got, err := LoadProjects(writeProjectsFile(t, projectsYAML))
	if err != nil {
		t.Fatalf("LoadProjects failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadProjects count = %d, want 2", len(got))
	}
	if got[0].Name != "newer" {
		t.Errorf("first project = %q, want the newest", got[0].Name)
	}
	if got[1].URL != "https://example.com/older" {
		t.Errorf("URL = %q, want preserved", got[1].URL)
	}
	if len(got[0].Stack) != 1 || got[0].Stack[0] != "go" {
		t.Errorf("Stack = %v, want [go]", got[0].Stack)
	}
}

func TestLoadProjectsMissingFile(t *testing.T) {
	got, err := LoadProjects(filepath.Join(t.TempDir(), "projects.yaml"))
	if err != nil {
		t.Fatalf("missing projects file should not be an error, got %v", err)
	}
	if got != nil {
		t.Errorf("LoadProjects on missing file = %v, want nil", got)
	}
}

func TestLoadProjectsRejectsNamelessEntry(t *testing.T) {
	_, err := LoadProjects(writeProjectsFile(t, "projects:\n  - summary: no name\n    year: 2024\n"))
	if err == nil || !strings.Contains(err.Error(), "no name") {
		t.Errorf("expected nameless project error, got %v", err)
	}
}

func TestLoadProjectsBadYAML(t *testing.T) {
	_, err := LoadProjects(writeProjectsFile(t, "projects: [\n"))
	if err == nil {
		t.Error("expected parse error for malformed YAML")
	}
}
