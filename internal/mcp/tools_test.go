package mcp

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	runGit(t, dir, "init")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

func stage(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(p), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	runGit(t, root, append([]string{"add", "--"}, paths...)...)
}

func TestHandleScopes_ExplicitFiles(t *testing.T) {
	t.Setenv("MONOSCOPE_CONFIG_HOME", t.TempDir())
	handler := handleScopes(&workspace{dir: t.TempDir()})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ScopesInput{
		Files: []string{"web/projects/app1/src/index.js", "web/shared/a.js", "README.md"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"app1", "root", "shared"}, out.Scopes); diff != "" {
		t.Errorf("Scopes mismatch (-want +got):\n%s", diff)
	}
	if out.GitDir != "" {
		t.Errorf("GitDir = %q, want empty when files are given", out.GitDir)
	}
	if len(out.Matches) != 3 {
		t.Errorf("Matches = %v, want 3", out.Matches)
	}
}

func TestHandleScopes_StagedFiles(t *testing.T) {
	t.Setenv("MONOSCOPE_CONFIG_HOME", t.TempDir())
	root := initRepo(t)
	stage(t, root, "packages/core/src/x.js", "packages/utils/y.js")
	handler := handleScopes(&workspace{dir: root})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ScopesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"core", "utils"}, out.Scopes); diff != "" {
		t.Errorf("Scopes mismatch (-want +got):\n%s", diff)
	}
	if out.GitDir != filepath.Join(root, ".git") {
		t.Errorf("GitDir = %q", out.GitDir)
	}
}

func TestHandleScopes_RepoConfig(t *testing.T) {
	t.Setenv("MONOSCOPE_CONFIG_HOME", t.TempDir())
	root := initRepo(t)
	cfg := "rules:\n  - match: '^apps/([^/]+)/'\n    scope: 'app-$1'\n"
	if err := os.WriteFile(filepath.Join(root, ".monoscope.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	handler := handleScopes(&workspace{dir: root})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ScopesInput{
		Files: []string{"apps/admin/main.go", "README.md"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"app-admin"}, out.Scopes); diff != "" {
		t.Errorf("Scopes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"README.md"}, out.Unmatched); diff != "" {
		t.Errorf("Unmatched mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleScopes_NoScope(t *testing.T) {
	t.Setenv("MONOSCOPE_CONFIG_HOME", t.TempDir())
	handler := handleScopes(&workspace{dir: t.TempDir()})

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ScopesInput{Files: []string{"docs/a"}})
	if err == nil {
		t.Error("expected error when no scope matches")
	}
}

func TestHandleGitDir(t *testing.T) {
	root := initRepo(t)
	sub := filepath.Join(root, "web", "projects")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	handler := handleGitDir(&workspace{dir: root})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, GitDirInput{Dir: sub})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := GitDirOutput{GitDir: filepath.Join(root, ".git"), WorkTree: root}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleGitDir_Pointer(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "store", "modules", "sub")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	wt := filepath.Join(root, "sub")
	if err := os.MkdirAll(wt, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(wt, ".git"), []byte("gitdir: ../store/modules/sub\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, out, err := handleGitDir(&workspace{dir: wt})(context.Background(), &mcp.CallToolRequest{}, GitDirInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := GitDirOutput{GitDir: target, WorkTree: wt, Pointer: true}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestNewServer(t *testing.T) {
	if NewServer("1.0.0", t.TempDir(), "") == nil {
		t.Fatal("NewServer() returned nil")
	}
}
