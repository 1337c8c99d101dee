package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gorewood/monoscope/internal/output"
)

// ErrCommandFailed is the cause of every error returned for a git
// invocation that exited non-zero or, in strict mode, wrote diagnostics.
var ErrCommandFailed = errors.New("git reported an error")

// Run executes a git command with the given arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext executes a git command with the given context and arguments.
// Output on stderr is ignored when git exits zero.
func RunContext(ctx context.Context, args ...string) (string, error) {
	return run(ctx, false, args)
}

// RunStrictContext is like RunContext but also fails when git exits zero
// and still writes to stderr (warnings about a broken index, bad config
// values, and the like).
func RunStrictContext(ctx context.Context, args ...string) (string, error) {
	return run(ctx, true, args)
}

func run(ctx context.Context, strict bool, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	errMsg := func() string { return strings.TrimSpace(stderr.String()) }

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemErrorWithCause("git not found: ensure git is installed and in PATH", err)
		}

		msg := errMsg()
		if msg == "" {
			msg = err.Error()
		}
		return "", output.NewSystemErrorWithCause(describeArgs(args)+" failed", fmt.Errorf("%w: %s", ErrCommandFailed, msg))
	}

	if msg := errMsg(); strict && msg != "" {
		return "", output.NewSystemErrorWithCause(describeArgs(args)+" wrote to stderr", fmt.Errorf("%w: %s", ErrCommandFailed, msg))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// describeArgs names a git invocation by its subcommand, skipping global
// options such as --git-dir and -c.
func describeArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-c" || arg == "-C" {
			i++
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		return "git " + arg
	}
	return "git"
}

// CurrentBranch returns the name of the branch checked out in the
// repository owned by gitDir. A detached HEAD yields "HEAD".
func CurrentBranch(ctx context.Context, gitDir string) (string, error) {
	branch, err := RunContext(ctx, "--git-dir="+gitDir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return branch, nil
}
