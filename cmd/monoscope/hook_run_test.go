package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/monoscope/internal/output"
)

func TestHookRun_PrepareCommitMsg(t *testing.T) {
	dir := initRepo(t)
	stageFiles(t, dir, "web/projects/app1/src/index.js", "web/shared/a.js", "README.md")

	runInDir(t, dir, func() {
		stdout, stderr, err := execute(t, "", "hook", "run", "prepare-commit-msg", ".git/COMMIT_EDITMSG", "message")
		if err != nil {
			t.Fatalf("hook run error = %v", err)
		}
		if stdout != "" {
			t.Errorf("hook should not write to stdout: %q", stdout)
		}

		lines := strings.Split(strings.TrimSpace(stderr), "\n")
		if len(lines) < 3 {
			t.Fatalf("expected at least 3 log lines, got %q", stderr)
		}
		for _, line := range lines {
			if !strings.HasPrefix(line, output.LogPrefix) {
				t.Errorf("log line missing prefix: %q", line)
			}
		}
		if lines[0] != output.LogPrefix+"start" {
			t.Errorf("first line = %q, want start", lines[0])
		}
		if lines[len(lines)-1] != output.LogPrefix+"done" {
			t.Errorf("last line = %q, want done", lines[len(lines)-1])
		}
		if !strings.Contains(stderr, "scopes: app1, root, shared") {
			t.Errorf("missing scopes line: %q", stderr)
		}
	})
}

func TestHookRun_NeverFails(t *testing.T) {
	t.Run("outside a repository", func(t *testing.T) {
		t.Setenv("MONOSCOPE_CONFIG_HOME", t.TempDir())
		runInDir(t, t.TempDir(), func() {
			_, stderr, err := execute(t, "", "hook", "run", "prepare-commit-msg", "msg")
			if err != nil {
				t.Fatalf("hook run should not fail: %v", err)
			}
			if !strings.Contains(stderr, output.LogPrefix+"can't find .git") {
				t.Errorf("expected git dir error in log: %q", stderr)
			}
			if !strings.HasSuffix(strings.TrimSpace(stderr), output.LogPrefix+"done") {
				t.Errorf("expected done as last line: %q", stderr)
			}
		})
	})

	t.Run("nothing staged", func(t *testing.T) {
		dir := initRepo(t)
		runInDir(t, dir, func() {
			_, stderr, err := execute(t, "", "hook", "run", "prepare-commit-msg", "msg")
			if err != nil {
				t.Fatalf("hook run should not fail: %v", err)
			}
			if !strings.Contains(stderr, "no staged files") {
				t.Errorf("expected no scope message: %q", stderr)
			}
			if strings.Count(stderr, "rules must not be correctly set") != 1 {
				t.Errorf("error should be logged exactly once: %q", stderr)
			}
		})
	})

	t.Run("unknown hook", func(t *testing.T) {
		_, stderr, err := execute(t, "", "hook", "run", "pre-push")
		if err != nil || stderr != "" {
			t.Errorf("unknown hook should be a silent no-op, err=%v stderr=%q", err, stderr)
		}
	})
}

func TestHookRun_Ticket(t *testing.T) {
	dir := initRepo(t)
	stageFiles(t, dir, "README.md")
	runGit(t, dir, "commit", "-m", "initial")
	runGit(t, dir, "checkout", "-b", "feature/ABC-123-login")
	stageFiles(t, dir, "packages/core/src/x.js")

	msgFile := filepath.Join(dir, ".git", "COMMIT_EDITMSG")
	if err := os.WriteFile(msgFile, []byte("add login\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	runInDir(t, dir, func() {
		_, stderr, err := execute(t, "", "hook", "run", "prepare-commit-msg", "--ticket", msgFile)
		if err != nil {
			t.Fatalf("hook run error = %v", err)
		}
		if !strings.Contains(stderr, "the ticket ID is: ABC-123") {
			t.Errorf("missing ticket log: %q", stderr)
		}
	})

	data, err := os.ReadFile(msgFile)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "[ABC-123]\nadd login\n"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestHookRun_TicketFromConfigAndEnv(t *testing.T) {
	dir := initRepo(t)
	stageFiles(t, dir, "README.md")
	runGit(t, dir, "commit", "-m", "initial")
	runGit(t, dir, "checkout", "-b", "ops-42-fix")
	stageFiles(t, dir, "packages/utils/y.js")

	cfg := "ticket:\n  enabled: true\n  pattern: 'ops-\\d+'\n"
	if err := os.WriteFile(filepath.Join(dir, ".monoscope.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	msgFile := filepath.Join(dir, ".git", "COMMIT_EDITMSG")
	if err := os.WriteFile(msgFile, []byte("fix\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HUSKY_GIT_PARAMS", msgFile)

	runInDir(t, dir, func() {
		if _, _, err := execute(t, "", "hook", "run", "prepare-commit-msg"); err != nil {
			t.Fatalf("hook run error = %v", err)
		}
	})

	data, err := os.ReadFile(msgFile)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "[ops-42]\nfix\n"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestHookRun_TicketWithoutParams(t *testing.T) {
	dir := initRepo(t)
	stageFiles(t, dir, "README.md")
	runGit(t, dir, "commit", "-m", "initial")
	runGit(t, dir, "checkout", "-b", "ABC-7-docs")
	stageFiles(t, dir, "packages/core/src/x.js")
	t.Setenv("HUSKY_GIT_PARAMS", "")
	t.Setenv("GIT_PARAMS", "")

	runInDir(t, dir, func() {
		_, stderr, err := execute(t, "", "hook", "run", "prepare-commit-msg")
		if err != nil {
			t.Fatalf("hook run error = %v", err)
		}
		if strings.Contains(stderr, "hook parameters missing") {
			t.Errorf("scope-only run should not mention hook params: %q", stderr)
		}

		_, stderr, err = execute(t, "", "hook", "run", "prepare-commit-msg", "--ticket")
		if err != nil {
			t.Fatalf("hook run --ticket error = %v", err)
		}
		if !strings.Contains(stderr, "hook parameters missing: is a supported Husky version installed?") {
			t.Errorf("missing hook params message: %q", stderr)
		}
	})
}

func TestHookRun_JSON(t *testing.T) {
	dir := initRepo(t)
	stageFiles(t, dir, "packages/core/src/x.js", "packages/utils/y.js")

	runInDir(t, dir, func() {
		stdout, stderr, err := execute(t, "", "hook", "run", "prepare-commit-msg", "--json", "msg")
		if err != nil {
			t.Fatalf("hook run error = %v", err)
		}
		if stderr != "" {
			t.Errorf("JSON mode should not log: %q", stderr)
		}

		var result struct {
			GitDir string   `json:"git_dir"`
			Scopes []string `json:"scopes"`
		}
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if strings.Join(result.Scopes, ",") != "core,utils" {
			t.Errorf("scopes = %v", result.Scopes)
		}
		if filepath.Base(result.GitDir) != ".git" {
			t.Errorf("git_dir = %q", result.GitDir)
		}
	})
}

func TestHookRun_JSONError(t *testing.T) {
	dir := initRepo(t)

	runInDir(t, dir, func() {
		stdout, _, err := execute(t, "", "hook", "run", "prepare-commit-msg", "--json", "msg")
		if err != nil {
			t.Fatalf("hook run error = %v", err)
		}
		var result map[string]any
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if result["kind"] != "no_scope" {
			t.Errorf("kind = %v, want no_scope", result["kind"])
		}
	})
}
