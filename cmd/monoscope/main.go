// Package main provides the entry point for the monoscope CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/monoscope/internal/config"
	"github.com/gorewood/monoscope/internal/git"
	"github.com/gorewood/monoscope/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// stringFlag reads a persistent string flag from the command hierarchy.
func stringFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// useColor resolves --color against TTY detection on w.
func useColor(cmd *cobra.Command, w io.Writer) bool {
	return output.ResolveColorMode(stringFlag(cmd, "color"), output.IsTTY(w))
}

// newPrinter builds the printer for a command: results on stdout, errors
// and log lines on stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())
}

// loadConfig loads configuration for the working tree that holds dotGit.
func loadConfig(cmd *cobra.Command, dotGit string) (*config.Config, error) {
	workTree := ""
	if dotGit != "" {
		workTree = git.WorkTree(dotGit)
	}
	return config.LoadForWorkTree(stringFlag(cmd, "config"), workTree)
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the monoscope CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monoscope",
		Short: "Derive monorepo commit scopes from staged files",
		Long: `Monoscope - derive monorepo commit scopes from staged files.

Monoscope runs as a git prepare-commit-msg hook:
  - Finds the repository's .git directory (submodules and worktrees included)
  - Lists the staged files
  - Maps each path to a scope (project or package) with ordered rules
  - Optionally tags the commit message with the ticket from the branch name

Rules, ignore globs and the ticket step are configured in .monoscope.yaml.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if mode := stringFlag(cmd, "color"); !slices.Contains(output.ColorModes, mode) {
				return output.NewUserError(fmt.Sprintf("invalid --color %q: want one of %s",
					mode, strings.Join(output.ColorModes, ", ")))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'monoscope --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Colorize output: "+strings.Join(output.ColorModes, ", "))
	cmd.PersistentFlags().String("config", "", "Config file (default: .monoscope.yaml in the working tree)")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newScopesCmd(), "core")
	addGroupedCommand(cmd, newGitDirCmd(), "core")
	addGroupedCommand(cmd, newTicketCmd(), "core")

	addGroupedCommand(cmd, newServeCmd(), "agent")

	addGroupedCommand(cmd, newHooksCmd(), "admin")

	// Hidden internal commands
	cmd.AddCommand(newHookCmd())
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
