package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSkill(t *testing.T, root, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
		t.Fatal(err)
	}
	if content == "" {
		return
	}
	if err := os.WriteFile(filepath.Join(root, dir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLintTreeCleanRepo(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "git-rebase", "---\nname: git-rebase\ndescription: Rebase help\n---\nBody.\n")
	writeSkill(t, root, "pdf-tools", "---\nname: pdf-tools\ndescription: PDF manipulation\n---\n")

	problems, checked, err := lintTree(root)
	if err != nil {
		t.Fatalf("lintTree: %v", err)
	}
	if checked != 2 {
		t.Errorf("checked = %d, want 2", checked)
	}
	if len(problems) != 0 {
		t.Errorf("problems = %v, want none", problems)
	}
}

func TestLintTreeFindsProblems(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "no-manifest", "")
	writeSkill(t, root, "bad-yaml", "name: foo\n")
	writeSkill(t, root, "wrong-name", "---\nname: Other_Name\ndescription: d\n---\n")
	writeSkill(t, root, ".github", "")

	problems, checked, err := lintTree(root)
	if err != nil {
		t.Fatalf("lintTree: %v", err)
	}
	if checked != 3 {
		t.Errorf("checked = %d, want 3 (dot directories skipped)", checked)
	}

	joined := strings.Join(problems, "\n")
	for _, want := range []string{
		"no-manifest: missing SKILL.md",
		"bad-yaml: manifest must start with a '---' frontmatter delimiter",
		"must match skill folder name",
		"hyphen-case",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("problems missing %q in:\n%s", want, joined)
		}
	}
}

func TestLintTreeSortedOutput(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "zeta", "")
	writeSkill(t, root, "alpha", "")

	problems, _, err := lintTree(root)
	if err != nil {
		t.Fatalf("lintTree: %v", err)
	}
	if len(problems) != 2 || !strings.HasPrefix(problems[0], "alpha:") {
		t.Errorf("problems not sorted: %v", problems)
	}
}

func TestReadCheckEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_REPOSITORY", "org/skills")
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")

	env, err := readCheckEnv()
	if err != nil {
		t.Fatalf("readCheckEnv: %v", err)
	}
	if env.owner != "org" || env.repo != "skills" {
		t.Errorf("slug parsed as %s/%s", env.owner, env.repo)
	}
}

func TestReadCheckEnvMissing(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"no token", "GITHUB_TOKEN"},
		{"no repository", "GITHUB_REPOSITORY"},
		{"no event path", "GITHUB_EVENT_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", "tok")
			t.Setenv("GITHUB_REPOSITORY", "org/skills")
			t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
			t.Setenv(tt.unset, "")

			if _, err := readCheckEnv(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadCheckEnvBadSlug(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_REPOSITORY", "not-a-slug")
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")

	if _, err := readCheckEnv(); err == nil {
		t.Error("expected error for slug without a slash")
	}
}
