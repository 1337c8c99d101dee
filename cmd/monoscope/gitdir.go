package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/monoscope/internal/git"
	"github.com/gorewood/monoscope/internal/output"
)

// newGitDirCmd creates the gitdir command.
func newGitDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gitdir",
		Short: "Print the Git metadata directory",
		Long: `Print the absolute path of the Git metadata directory for the current
working tree. A .git pointer file (submodule or linked worktree) is
followed to the directory it names.`,
		Args: cobra.NoArgs,
		RunE: runGitDir,
	}
}

// runGitDir executes the gitdir command.
func runGitDir(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	cwd, err := os.Getwd()
	if err != nil {
		return reportError(printer, output.NewSystemErrorWithCause("failed to read working directory", err))
	}
	dotGit, err := git.FindDotGit(cwd)
	if err != nil {
		return reportError(printer, err)
	}
	gitDir, err := git.ResolveGitDir(dotGit)
	if err != nil {
		return reportError(printer, err)
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"git_dir":   gitDir,
			"work_tree": git.WorkTree(dotGit),
			"pointer":   gitDir != dotGit,
		})
	}
	printer.Println(gitDir)
	return nil
}
