// Package commitmsg reads hook parameters and edits the commit message file.
package commitmsg

import (
	"errors"
	"strings"

	"github.com/gorewood/monoscope/internal/output"
)

// Environment variables that carry the arguments git passed to the hook.
// Husky 1.x and later use HuskyParamsEnv; older versions use LegacyParamsEnv.
const (
	HuskyParamsEnv  = "HUSKY_GIT_PARAMS"
	LegacyParamsEnv = "GIT_PARAMS"
)

// ErrNoHookParams means the hook arguments are not available.
var ErrNoHookParams = errors.New("neither " + HuskyParamsEnv + " nor " + LegacyParamsEnv + " are set")

// Params holds the arguments git passed to the hook, in order. For
// prepare-commit-msg they are the message file, the message source and
// a commit SHA; only the first is always present.
type Params struct {
	Args []string
}

// ParamsFromEnv reads hook arguments from HUSKY_GIT_PARAMS, falling back
// to GIT_PARAMS. Arguments are whitespace separated, so a path containing
// spaces cannot be passed this way.
func ParamsFromEnv(getenv func(string) string) (Params, error) {
	raw := getenv(HuskyParamsEnv)
	if raw == "" {
		raw = getenv(LegacyParamsEnv)
	}
	if strings.TrimSpace(raw) == "" {
		return Params{}, output.NewUserErrorWithCause(
			"hook parameters missing: is a supported Husky version installed?", ErrNoHookParams)
	}
	return Params{Args: strings.Fields(raw)}, nil
}

// ParamsFromArgs uses the positional arguments of a hook invocation when
// present and otherwise falls back to the environment.
func ParamsFromArgs(args []string, getenv func(string) string) (Params, error) {
	if len(args) > 0 {
		return Params{Args: append([]string(nil), args...)}, nil
	}
	return ParamsFromEnv(getenv)
}

// Arg returns the argument at index, or "" when absent.
func (p Params) Arg(index int) string {
	if index < 0 || index >= len(p.Args) {
		return ""
	}
	return p.Args[index]
}

// MessageFile returns the path of the commit message file (argument 0).
func (p Params) MessageFile() (string, error) {
	path := p.Arg(0)
	if path == "" {
		return "", output.NewUserErrorWithCause("commit message file not given", ErrNoHookParams)
	}
	return path, nil
}

// Source returns the message source git reported ("message", "template",
// "merge", "squash", "commit"), or "" for a plain commit.
func (p Params) Source() string {
	return p.Arg(1)
}
