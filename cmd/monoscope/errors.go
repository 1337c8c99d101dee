package main

import (
	"errors"

	"github.com/gorewood/monoscope/internal/commitmsg"
	"github.com/gorewood/monoscope/internal/git"
	"github.com/gorewood/monoscope/internal/output"
	"github.com/gorewood/monoscope/internal/scope"
)

// errorKinds maps each pipeline sentinel to its JSON kind name.
var errorKinds = []struct {
	sentinel error
	kind     string
}{
	{git.ErrGitDirNotFound, "git_dir_not_found"},
	{git.ErrGitDirUnreadable, "git_dir_unreadable"},
	{commitmsg.ErrNoHookParams, "missing_hook_params"},
	{git.ErrCommandFailed, "git_command_failed"},
	{scope.ErrNoScope, "no_scope"},
	{commitmsg.ErrMessageIO, "message_io"},
}

// errorKind names the pipeline failure behind err, or "" for errors that
// are not one of the known kinds.
func errorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return ""
}

// errorPayload builds the JSON error object: {"error", "code"} plus
// "kind" when the error is a known pipeline failure.
func errorPayload(err error) map[string]any {
	payload := map[string]any{
		"error": output.Describe(err),
		"code":  output.GetExitCode(err),
	}
	if kind := errorKind(err); kind != "" {
		payload["kind"] = kind
	}
	return payload
}

// reportError prints err through the printer and returns it. JSON output
// carries the error kind.
func reportError(printer *output.Printer, err error) error {
	if printer.IsJSON() {
		_ = printer.WriteJSON(errorPayload(err))
		return err
	}
	printer.Error(err)
	return err
}
