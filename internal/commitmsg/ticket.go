package commitmsg

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gorewood/monoscope/internal/output"
)

// DefaultTicketPattern matches issue keys such as ABC-123.
const DefaultTicketPattern = `[A-Z][A-Z0-9]+-\d+`

// ErrMessageIO means the commit message file could not be read or written.
var ErrMessageIO = errors.New("commit message file I/O failed")

// TicketFromBranch returns the first match of pattern in branch.
// "feature/ABC-123-login" yields "ABC-123".
func TicketFromBranch(branch string, pattern *regexp.Regexp) (string, bool) {
	if pattern == nil || branch == "" || branch == "HEAD" {
		return "", false
	}
	ticket := pattern.FindString(branch)
	return ticket, ticket != ""
}

// Prepend returns message with "[ticket]" on its own first line, or message
// unchanged when it already mentions ticket anywhere.
func Prepend(message, ticket string) (string, bool) {
	if strings.Contains(message, ticket) {
		return message, false
	}
	return "[" + ticket + "]\n" + message, true
}

// WriteTicket prepends ticket to the message file at path unless the
// message already contains it. The file is only rewritten when it changes,
// and keeps its permissions.
func WriteTicket(path, ticket string) (bool, error) {
	if ticket == "" {
		return false, output.NewUserError("ticket must not be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, messageIOError("unable to read the file", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false, messageIOError("unable to read the file", path, err)
	}

	updated, changed := Prepend(string(content), ticket)
	if !changed {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, messageIOError("unable to write the file", path, err)
	}
	return true, nil
}

func messageIOError(action, path string, cause error) error {
	return output.NewSystemErrorWithCause(fmt.Sprintf("%s %q", action, path),
		fmt.Errorf("%w: %w", ErrMessageIO, cause))
}
