package setup

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/monoscope/internal/git"
	"github.com/gorewood/monoscope/internal/output"
)

// HookName is the git hook monoscope runs from.
const HookName = "prepare-commit-msg"

// hookMarker identifies scripts written by monoscope.
const hookMarker = "monoscope hook run " + HookName

// BackupSuffix is appended to a foreign hook moved aside by --chain.
const BackupSuffix = ".backup"

// HookStatus represents the status of a single git hook.
type HookStatus struct {
	Installed bool `json:"installed"`
	Chained   bool `json:"chained"`
	Foreign   bool `json:"foreign"`
}

// HooksDir returns the default hooks directory for a resolved metadata
// directory, ignoring core.hooksPath.
// Submodules keep hooks in their own metadata directory; linked worktrees
// share the hooks of the main repository, named by their commondir file.
func HooksDir(gitDir string) string {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return filepath.Join(gitDir, "hooks")
	}
	common := strings.TrimSpace(string(data))
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Join(filepath.Clean(common), "hooks")
}

// HookPath returns the path of the prepare-commit-msg hook.
func HookPath(gitDir string) string {
	return filepath.Join(HooksDir(gitDir), HookName)
}

// ResolveHooksDir returns the directory git actually runs hooks from for
// the working tree at workTree. It asks git, so core.hooksPath (set by
// Husky to .husky or .husky/_) is honored. A relative answer is relative
// to workTree. When git cannot answer, HooksDir(gitDir) is used.
func ResolveHooksDir(ctx context.Context, workTree, gitDir string) string {
	if workTree != "" {
		dir, err := git.RunContext(ctx, "-C", workTree, "rev-parse", "--git-path", "hooks")
		if err == nil && dir != "" {
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(workTree, dir)
			}
			return filepath.Clean(dir)
		}
	}
	return HooksDir(gitDir)
}

// ResolveHookPath returns the path of the prepare-commit-msg hook inside
// ResolveHooksDir.
func ResolveHookPath(ctx context.Context, workTree, gitDir string) string {
	return filepath.Join(ResolveHooksDir(ctx, workTree, gitDir), HookName)
}

// HookExists checks if a hook file exists at the given path.
func HookExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckHookStatus reports whether the hook at hookPath is ours, whether it
// chains to a backup, or whether some other tool owns it.
func CheckHookStatus(hookPath string) HookStatus {
	status := HookStatus{}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		return status
	}

	contentStr := string(content)
	if strings.Contains(contentStr, hookMarker) {
		status.Installed = true
		status.Chained = strings.Contains(contentStr, BackupSuffix)
		return status
	}
	status.Foreign = true
	return status
}

// GenerateHook returns the prepare-commit-msg script. With withChain the
// script first runs the backed-up original hook and stops if it fails.
func GenerateHook(withChain bool) string {
	script := `#!/bin/sh
# monoscope prepare-commit-msg hook
# Reports the monorepo scopes of the staged files (never blocks the commit)
`

	if withChain {
		script += `
# Chain to original hook if it exists
backup="$(dirname "$0")/` + HookName + BackupSuffix + `"
if [ -x "$backup" ]; then
  "$backup" "$@" || exit $?
fi
`
	}

	script += `
if command -v monoscope >/dev/null 2>&1; then
  ` + hookMarker + ` "$@"
fi
`
	return script
}

// BackupExistingHook moves an existing hook to a .backup location.
func BackupExistingHook(hookPath string) error {
	if err := os.Rename(hookPath, hookPath+BackupSuffix); err != nil {
		return output.NewSystemErrorWithCause("failed to backup existing hook", err)
	}
	return nil
}

// InstallHook writes the hook script to hookPath. An existing foreign hook
// is a conflict unless chain (back it up and call it first) or force
// (overwrite it) is set. Reinstalling over our own hook always succeeds.
// Returns whether the written hook chains to a backup.
func InstallHook(hookPath string, chain, force bool) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to create hooks directory", err)
	}

	status := CheckHookStatus(hookPath)
	chained := status.Chained

	if status.Foreign && !force {
		if !chain {
			return false, output.NewConflictError("hook already exists; use --chain to preserve or --force to overwrite")
		}
		if err := BackupExistingHook(hookPath); err != nil {
			return false, err
		}
		chained = true
	}

	// #nosec G306 -- hook needs execute permission
	if err := os.WriteFile(hookPath, []byte(GenerateHook(chained)), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to write hook", err)
	}
	return chained, nil
}

// UninstallHook removes our hook and restores a backup if one exists.
// Returns removed=false when no monoscope hook was installed.
func UninstallHook(hookPath string) (removed, restored bool, err error) {
	if !CheckHookStatus(hookPath).Installed {
		return false, false, nil
	}

	if err := os.Remove(hookPath); err != nil {
		return false, false, output.NewSystemErrorWithCause("failed to remove hook", err)
	}

	backupPath := hookPath + BackupSuffix
	if !HookExists(backupPath) {
		return true, false, nil
	}
	if err := os.Rename(backupPath, hookPath); err != nil {
		return true, false, output.NewSystemErrorWithCause("failed to restore backup", err)
	}
	return true, true, nil
}

// DescribeInstallAction returns a human-readable description of what the
// install operation would do given the current state.
func DescribeInstallAction(status HookStatus, chain, force bool) string {
	switch {
	case status.Installed:
		return "would reinstall"
	case !status.Foreign:
		return "would install"
	case force:
		return "would overwrite existing hook"
	case chain:
		return "would backup and chain existing hook"
	default:
		return "would fail (hook exists, use --chain or --force)"
	}
}

// DescribeUninstallAction returns a human-readable description of what the
// uninstall operation would do given the current state.
func DescribeUninstallAction(installed, hasBackup bool) string {
	switch {
	case !installed:
		return "no monoscope hook installed"
	case hasBackup:
		return "would remove and restore backup"
	default:
		return "would remove"
	}
}
