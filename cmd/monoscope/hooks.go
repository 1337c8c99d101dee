package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/monoscope/internal/git"
	"github.com/gorewood/monoscope/internal/output"
	"github.com/gorewood/monoscope/internal/setup"
)

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the monoscope git hook",
		Long: `Manage the prepare-commit-msg hook that runs monoscope on every commit.

The hook reports the scopes of the staged files and never blocks the
commit. It is written to the directory git runs hooks from: core.hooksPath
when set (Husky's .husky), otherwise the hooks directory of the resolved
metadata directory, so submodules and linked worktrees are handled.

Subcommands:
  install    Install the prepare-commit-msg hook
  uninstall  Remove the hook, restoring any backup
  list       Show the hook status

Examples:
  monoscope hooks list              # Show hook status
  monoscope hooks install           # Install prepare-commit-msg hook
  monoscope hooks install --chain   # Install and preserve existing hook
  monoscope hooks uninstall         # Remove hook, restore backup`,
	}

	cmd.AddCommand(newHooksListCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

// resolveHookPath finds the prepare-commit-msg hook path git uses for the
// repository containing the working directory.
func resolveHookPath(cmd *cobra.Command) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to read working directory", err)
	}
	dotGit, err := git.FindDotGit(cwd)
	if err != nil {
		return "", err
	}
	gitDir, err := git.ResolveGitDir(dotGit)
	if err != nil {
		return "", err
	}
	return setup.ResolveHookPath(cmd.Context(), git.WorkTree(dotGit), gitDir), nil
}

// newHooksListCmd creates the hooks list subcommand.
func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show status of the git hook",
		Long:  `Show whether the monoscope prepare-commit-msg hook is installed.`,
		Args:  cobra.NoArgs,
		RunE:  runHooksList,
	}
}

// runHooksList executes the hooks list command.
func runHooksList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	hookPath, err := resolveHookPath(cmd)
	if err != nil {
		return reportError(printer, err)
	}
	status := setup.CheckHookStatus(hookPath)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"prepare_commit_msg": map[string]any{
				"path":      hookPath,
				"installed": status.Installed,
				"chained":   status.Chained,
				"foreign":   status.Foreign,
			},
		})
	}

	printer.Section("Git Hooks")
	printer.KeyValue(setup.HookName, describeHookStatus(status))
	printer.KeyValue("Path", hookPath)
	if status.Foreign {
		printer.Warn("another %s hook is installed; 'monoscope hooks install --chain' keeps it", setup.HookName)
	}
	return nil
}

// describeHookStatus renders a hook status for humans.
func describeHookStatus(status setup.HookStatus) string {
	switch {
	case status.Installed && status.Chained:
		return "installed (chained)"
	case status.Installed:
		return "installed"
	case status.Foreign:
		return "not installed (another hook is present)"
	default:
		return "not installed"
	}
}

// newHooksInstallCmd creates the hooks install subcommand.
func newHooksInstallCmd() *cobra.Command {
	var chain bool
	var force bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the prepare-commit-msg hook",
		Long: `Install the monoscope prepare-commit-msg hook.

Use --chain to preserve an existing hook (it runs first).
Use --force to overwrite an existing hook without backup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, chain, force, dryRun)
		},
	}

	cmd.Flags().BoolVar(&chain, "chain", false, "Preserve existing hook, run it first")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing hook without backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksInstall executes the hooks install command.
func runHooksInstall(cmd *cobra.Command, chain, force, dryRun bool) error {
	printer := newPrinter(cmd)

	hookPath, err := resolveHookPath(cmd)
	if err != nil {
		return reportError(printer, err)
	}
	status := setup.CheckHookStatus(hookPath)

	if dryRun {
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":          "dry_run",
				"hook":            setup.HookName,
				"path":            hookPath,
				"exists":          status.Installed || status.Foreign,
				"would_chain":     status.Chained || (chain && status.Foreign && !force),
				"would_overwrite": force && status.Foreign,
			})
		}
		printer.Section("Dry Run")
		printer.KeyValue("Hook", setup.HookName)
		printer.KeyValue("Path", hookPath)
		printer.KeyValue("Action", setup.DescribeInstallAction(status, chain, force))
		return nil
	}

	chained, err := setup.InstallHook(hookPath, chain, force)
	if err != nil {
		return reportError(printer, err)
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":  "ok",
			"hook":    setup.HookName,
			"path":    hookPath,
			"chained": chained,
		})
	}
	if status.Foreign && force {
		printer.Warn("overwrote the existing %s hook", setup.HookName)
	}
	msg := "Installed " + setup.HookName + " hook"
	if chained {
		msg += " (existing hook backed up and chained)"
	}
	return printer.Success(map[string]any{"message": msg})
}

// newHooksUninstallCmd creates the hooks uninstall subcommand.
func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the prepare-commit-msg hook",
		Long:  `Remove the monoscope hook and restore any backup.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksUninstall executes the hooks uninstall command.
func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
	printer := newPrinter(cmd)

	hookPath, err := resolveHookPath(cmd)
	if err != nil {
		return reportError(printer, err)
	}

	if dryRun {
		installed := setup.CheckHookStatus(hookPath).Installed
		hasBackup := setup.HookExists(hookPath + setup.BackupSuffix)
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":        "dry_run",
				"hook":          setup.HookName,
				"installed":     installed,
				"has_backup":    hasBackup,
				"would_restore": installed && hasBackup,
			})
		}
		printer.Section("Dry Run")
		printer.KeyValue("Hook", setup.HookName)
		printer.KeyValue("Path", hookPath)
		printer.KeyValue("Action", setup.DescribeUninstallAction(installed, hasBackup))
		return nil
	}

	removed, restored, err := setup.UninstallHook(hookPath)
	if err != nil {
		return reportError(printer, err)
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":   "ok",
			"hook":     setup.HookName,
			"removed":  removed,
			"restored": restored,
		})
	}
	if !removed {
		return printer.Success(map[string]any{"message": "No monoscope hook installed"})
	}
	msg := "Removed " + setup.HookName + " hook"
	if restored {
		msg += " and restored original"
	}
	return printer.Success(map[string]any{"message": msg})
}
