package output

import (
	"encoding/json"
	"errors"
)

// Process exit codes.
//
// The prepare-commit-msg hook always exits with ExitSuccess so a failed
// scope lookup never blocks a commit; the other codes apply to the
// interactive commands.
const (
	ExitSuccess     = 0
	ExitUserError   = 1 // bad args, missing hook params, bad config
	ExitSystemError = 2 // git failed, .git not found, I/O error
	ExitConflict    = 3 // hook already installed
)

// ExitError is an error that carries an exit code for the CLI. Message is
// the short description shown to users; Cause keeps the underlying error
// (often wrapping a package sentinel) reachable through errors.Is.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewUserErrorWithCause creates a user error wrapping an underlying cause.
// Use for: missing hook parameters, invalid rules in the config file.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message, Cause: cause}
}

// NewSystemError creates an error for system failures (exit code 2).
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
// Use for: git failures, an unreadable .git entry or message file.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewConflictError creates an error for conflict situations (exit code 3).
// Use for: a foreign hook already sits where ours would be installed.
func NewConflictError(message string) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message}
}

// GetExitCode returns the code carried by the first ExitError in err's
// chain: ExitSuccess for nil, ExitUserError when there is none.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr := asExitError(err); exitErr != nil {
		return exitErr.Code
	}
	return ExitUserError
}

// Describe returns the message of err followed by its cause, so the root
// problem (a path, a git diagnostic) shows up in one log line.
func Describe(err error) string {
	exitErr := asExitError(err)
	if exitErr == nil {
		return err.Error()
	}
	if exitErr.Cause == nil {
		return exitErr.Message
	}
	return exitErr.Message + ": " + exitErr.Cause.Error()
}

// ErrorJSON returns {"error": message, "code": code} as JSON bytes.
func ErrorJSON(message string, code int) []byte {
	data, _ := json.Marshal(map[string]any{"error": message, "code": code})
	return data
}

// errorMessage is the short message of err: the ExitError message when
// there is one, err.Error() otherwise.
func errorMessage(err error) string {
	if exitErr := asExitError(err); exitErr != nil {
		return exitErr.Message
	}
	return err.Error()
}

func asExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return nil
}
