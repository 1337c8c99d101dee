package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestTicketCommand(t *testing.T) {
	msgFile := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	if err := os.WriteFile(msgFile, []byte("subject\n\nbody\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "", "ticket", "--json", "ABC-123", msgFile)
	if err != nil {
		t.Fatalf("ticket error = %v", err)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if result["written"] != true {
		t.Errorf("written = %v, want true", result["written"])
	}

	// Second run leaves the file alone.
	if _, _, err := execute(t, "", "ticket", "ABC-123", msgFile); err != nil {
		t.Fatalf("ticket error = %v", err)
	}
	data, err := os.ReadFile(msgFile)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "[ABC-123]\nsubject\n\nbody\n"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestTicketCommand_FromEnv(t *testing.T) {
	msgFile := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	if err := os.WriteFile(msgFile, []byte("subject\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HUSKY_GIT_PARAMS", "")
	t.Setenv("GIT_PARAMS", msgFile+" message")

	if _, _, err := execute(t, "", "ticket", "XY-1"); err != nil {
		t.Fatalf("ticket error = %v", err)
	}
	data, err := os.ReadFile(msgFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[XY-1]\nsubject\n" {
		t.Errorf("message = %q", data)
	}
}

func TestTicketCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantKind string
	}{
		{
			name:     "no params",
			args:     []string{"ticket", "--json", "ABC-1"},
			wantKind: "missing_hook_params",
		},
		{
			name:     "missing file",
			args:     []string{"ticket", "--json", "ABC-1", filepath.Join(t.TempDir(), "missing")},
			wantKind: "message_io",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HUSKY_GIT_PARAMS", "")
			t.Setenv("GIT_PARAMS", "")

			stdout, _, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			var result map[string]any
			if err := json.Unmarshal([]byte(stdout), &result); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, stdout)
			}
			if result["kind"] != tt.wantKind {
				t.Errorf("kind = %v, want %s", result["kind"], tt.wantKind)
			}
		})
	}
}
