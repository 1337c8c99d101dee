package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/monoscope/internal/git"
	"github.com/gorewood/monoscope/internal/output"
	"github.com/gorewood/monoscope/internal/scope"
)

// scopesResult is the JSON shape of the scopes command.
type scopesResult struct {
	GitDir    string        `json:"git_dir,omitempty"`
	Scopes    []string      `json:"scopes"`
	Matches   []scope.Match `json:"matches"`
	Unmatched []string      `json:"unmatched,omitempty"`
	Ignored   []string      `json:"ignored,omitempty"`
}

// newScopesCmd creates the scopes command.
func newScopesCmd() *cobra.Command {
	var filesFrom string
	var explain bool

	cmd := &cobra.Command{
		Use:   "scopes [path...]",
		Short: "Print the scopes of the staged files",
		Long: `Print the distinct scopes of the staged files, one per line, sorted.

Paths given as arguments, or read from a file with --files-from
("-" for stdin), are classified instead of the staged files.

Examples:
  monoscope scopes                          # Scopes of the staged files
  monoscope scopes web/projects/app1/a.js   # Scope of one path
  git diff --name-only main | monoscope scopes --files-from -
  monoscope scopes --explain                # Show the rule used per path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScopes(cmd, args, filesFrom, explain)
		},
	}

	cmd.Flags().StringVar(&filesFrom, "files-from", "", "Read paths from a file, one per line (- for stdin)")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show the scope and rule for each path")

	return cmd
}

// runScopes executes the scopes command.
func runScopes(cmd *cobra.Command, args []string, filesFrom string, explain bool) error {
	printer := newPrinter(cmd)

	cwd, err := os.Getwd()
	if err != nil {
		return reportError(printer, output.NewSystemErrorWithCause("failed to read working directory", err))
	}

	dotGit, findErr := git.FindDotGit(cwd)
	if findErr != nil {
		dotGit = ""
	}
	cfg, err := loadConfig(cmd, dotGit)
	if err != nil {
		return reportError(printer, err)
	}
	rules, err := cfg.ScopeRules()
	if err != nil {
		return reportError(printer, output.NewUserErrorWithCause("invalid scope rules", err))
	}

	result := &scopesResult{}
	files, err := scopesInput(cmd, args, filesFrom)
	if err != nil {
		return reportError(printer, err)
	}
	if files == "" && len(args) == 0 && filesFrom == "" {
		if findErr != nil {
			return reportError(printer, findErr)
		}
		if result.GitDir, err = git.ResolveGitDir(dotGit); err != nil {
			return reportError(printer, err)
		}
		if files, err = git.StagedFiles(cmd.Context(), result.GitDir); err != nil {
			return reportError(printer, err)
		}
	}

	report, err := scope.Explain(files, rules, scope.WithIgnore(cfg.Ignore))
	if err != nil {
		return reportError(printer, output.NewUserErrorWithCause("no scope found", err))
	}
	result.Scopes = report.Scopes.Sorted()
	result.Matches = report.Matches
	result.Unmatched = report.Unmatched
	result.Ignored = report.Ignored

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	if explain {
		printScopesExplain(printer, result)
		return nil
	}
	for _, s := range result.Scopes {
		printer.Println(s)
	}
	return nil
}

// scopesInput returns the newline separated paths given on the command
// line or through --files-from. Empty means "use the staged files".
func scopesInput(cmd *cobra.Command, args []string, filesFrom string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, "\n"), nil
	}
	switch filesFrom {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", output.NewSystemErrorWithCause("failed to read paths from stdin", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(filesFrom)
		if err != nil {
			return "", output.NewUserErrorWithCause("failed to read paths from "+filesFrom, err)
		}
		return string(data), nil
	}
}

// printScopesExplain outputs the per-path decisions in human-readable format.
func printScopesExplain(printer *output.Printer, result *scopesResult) {
	printer.Section("Paths")
	for _, m := range result.Matches {
		printer.KeyValue(m.Path, m.Scope+" ("+m.Rule+")")
	}
	for _, path := range result.Unmatched {
		printer.KeyValue(path, "no match")
	}
	for _, path := range result.Ignored {
		printer.KeyValue(path, "ignored")
	}

	printer.Section("Scopes")
	printer.Println(printer.Scopes(result.Scopes))
}
