// Package hook runs the prepare-commit-msg pipeline: resolve the Git
// metadata directory, list staged files, derive scopes and optionally tag
// the commit message with a ticket.
package hook

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gorewood/monoscope/internal/commitmsg"
	"github.com/gorewood/monoscope/internal/config"
	"github.com/gorewood/monoscope/internal/git"
	"github.com/gorewood/monoscope/internal/output"
	"github.com/gorewood/monoscope/internal/scope"
)

// Logger receives one line per pipeline step.
type Logger interface {
	Log(format string, args ...any)
}

// GitOps is the subset of git access the pipeline needs.
type GitOps interface {
	FindGitDir(startDir string) (string, error)
	StagedFiles(ctx context.Context, gitDir string) (string, error)
	CurrentBranch(ctx context.Context, gitDir string) (string, error)
}

// ExecGit implements GitOps with the git package.
type ExecGit struct{}

// FindGitDir implements GitOps.
func (ExecGit) FindGitDir(startDir string) (string, error) {
	return git.FindGitDir(startDir)
}

// StagedFiles implements GitOps.
func (ExecGit) StagedFiles(ctx context.Context, gitDir string) (string, error) {
	return git.StagedFiles(ctx, gitDir)
}

// CurrentBranch implements GitOps.
func (ExecGit) CurrentBranch(ctx context.Context, gitDir string) (string, error) {
	return git.CurrentBranch(ctx, gitDir)
}

// Runner holds everything one hook invocation needs. Params and Config are
// resolved at the program boundary and passed in.
type Runner struct {
	Config *config.Config
	Params commitmsg.Params
	// ParamsErr is the error from resolving Params. It is returned only
	// when the ticket step needs the commit message file.
	ParamsErr error
	Git       GitOps
	Logger    Logger
	// Ticket forces the ticket step on regardless of Config.
	Ticket bool
}

// Result describes what a run found and did.
type Result struct {
	GitDir        string   `json:"git_dir"`
	Files         []string `json:"files"`
	Scopes        []string `json:"scopes"`
	Ticket        string   `json:"ticket,omitempty"`
	TicketWritten bool     `json:"ticket_written"`
}

// Run executes the pipeline from startDir. The first failing step aborts
// the run and its error is returned as is.
func (r *Runner) Run(ctx context.Context, startDir string) (*Result, error) {
	cfg := r.Config
	if cfg == nil {
		cfg = config.Default()
	}
	gitOps := r.Git
	if gitOps == nil {
		gitOps = ExecGit{}
	}

	rules, err := cfg.ScopeRules()
	if err != nil {
		return nil, output.NewUserErrorWithCause("invalid scope rules", err)
	}

	gitDir, err := gitOps.FindGitDir(startDir)
	if err != nil {
		return nil, err
	}
	r.log("git dir: %s", gitDir)
	result := &Result{GitDir: gitDir}

	files, err := gitOps.StagedFiles(ctx, gitDir)
	if err != nil {
		return result, err
	}
	report, err := scope.Explain(files, rules, scope.WithIgnore(cfg.Ignore))
	for _, m := range report.Matches {
		result.Files = append(result.Files, m.Path)
	}
	if err != nil {
		return result, output.NewUserErrorWithCause(noScopeMessage(report), err)
	}
	result.Scopes = report.Scopes.Sorted()
	r.log("scopes: %s", strings.Join(result.Scopes, ", "))

	if !r.Ticket && !cfg.Ticket.Enabled {
		return result, nil
	}

	pattern, err := cfg.TicketPattern()
	if err != nil {
		return result, output.NewUserErrorWithCause("invalid ticket pattern", err)
	}
	if err := r.writeTicket(ctx, gitOps, gitDir, pattern, result); err != nil {
		return result, err
	}
	return result, nil
}

func (r *Runner) writeTicket(ctx context.Context, gitOps GitOps, gitDir string, pattern *regexp.Regexp, result *Result) error {
	branch, err := gitOps.CurrentBranch(ctx, gitDir)
	if err != nil {
		return err
	}
	ticket, ok := commitmsg.TicketFromBranch(branch, pattern)
	if !ok {
		r.log("no ticket in branch %q", branch)
		return nil
	}
	result.Ticket = ticket
	r.log("the ticket ID is: %s", ticket)

	if r.ParamsErr != nil {
		return r.ParamsErr
	}
	path, err := r.Params.MessageFile()
	if err != nil {
		return err
	}
	written, err := commitmsg.WriteTicket(path, ticket)
	if err != nil {
		return err
	}
	result.TicketWritten = written
	return nil
}

func noScopeMessage(report *scope.Report) string {
	if len(report.Unmatched) == 0 && len(report.Ignored) == 0 {
		return "no staged files"
	}
	return fmt.Sprintf("no scope for %d staged file(s), %d ignored", len(report.Unmatched), len(report.Ignored))
}

func (r *Runner) log(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Log(format, args...)
	}
}
