// Package git locates Git metadata and runs the few git commands the hook
// needs.
//
// # Locating the metadata directory
//
// FindGitDir walks up from a start directory to the nearest .git entry.
// A .git directory is used as is; a .git file (submodule or linked worktree)
// is a pointer of the form "gitdir: <path>" that is followed:
//
//	gitDir, err := git.FindGitDir(cwd)
//	// /repo/.git, or /repo/.git/modules/sub for a submodule
//
// # Running git
//
// Commands shell out to the git executable. StagedFiles runs in strict mode,
// where anything git writes to stderr is treated as a failure:
//
//	files, err := git.StagedFiles(ctx, gitDir)
//
// # Error Handling
//
// Errors are *output.ExitError values with exit code 2. Their causes wrap
// ErrGitDirNotFound, ErrGitDirUnreadable or ErrCommandFailed, so callers can
// tell the failure kinds apart with errors.Is.
package git
