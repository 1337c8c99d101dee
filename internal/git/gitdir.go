package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/monoscope/internal/output"
)

// DotGit is the name of the entry that marks a working tree.
const DotGit = ".git"

var (
	// ErrGitDirNotFound means no .git entry exists in the start directory
	// or any of its ancestors.
	ErrGitDirNotFound = errors.New("can't find .git")

	// ErrGitDirUnreadable means a .git entry exists but cannot be stat'd,
	// or is a pointer file that cannot be read or parsed.
	ErrGitDirUnreadable = errors.New("can't resolve .git")
)

// FindGitDir returns the absolute path of the metadata directory for the
// working tree containing startDir.
func FindGitDir(startDir string) (string, error) {
	entry, err := FindDotGit(startDir)
	if err != nil {
		return "", err
	}
	return ResolveGitDir(entry)
}

// FindDotGit walks startDir and its ancestors and returns the absolute path
// of the nearest entry named .git, which may be a directory or a pointer
// file.
func FindDotGit(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", output.NewSystemErrorWithCause("can't find .git, skipping git hooks",
			fmt.Errorf("%w: %w", ErrGitDirNotFound, err))
	}

	for {
		candidate := filepath.Join(dir, DotGit)
		if _, err := os.Lstat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", output.NewSystemErrorWithCause("can't find .git, skipping git hooks",
				fmt.Errorf("%w in %s or any parent directory", ErrGitDirNotFound, startDir))
		}
		dir = parent
	}
}

// ResolveGitDir turns a .git entry into the real metadata directory.
//
// A directory is returned as is. A regular file is a submodule or worktree
// pointer of the form "gitdir: <path>"; the path is resolved relative to the
// directory holding the pointer.
func ResolveGitDir(gitDirOrFile string) (string, error) {
	abs, err := filepath.Abs(gitDirOrFile)
	if err != nil {
		return "", unreadable(gitDirOrFile, err)
	}

	info, err := os.Lstat(abs)
	if err != nil {
		return "", unreadable(abs, err)
	}

	if !info.Mode().IsRegular() {
		return abs, nil
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return "", unreadable(abs, err)
	}

	target, err := ParseGitDirPointer(string(content))
	if err != nil {
		return "", unreadable(abs, err)
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(abs), target)
	}
	return filepath.Clean(target), nil
}

// ParseGitDirPointer extracts the target from pointer file content such as
// "gitdir: ../.git/modules/sub". Only the first colon separates the key,
// so Windows drive letters survive ("gitdir: C:/repo/.git" yields
// "C:/repo/.git").
func ParseGitDirPointer(content string) (string, error) {
	_, target, found := strings.Cut(content, ":")
	if !found {
		return "", errors.New("pointer file has no \"gitdir:\" line")
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return "", errors.New("pointer file has an empty gitdir")
	}
	return target, nil
}

// WorkTree returns the directory that holds the given .git entry.
func WorkTree(dotGit string) string {
	return filepath.Dir(dotGit)
}

func unreadable(path string, cause error) error {
	return output.NewSystemErrorWithCause("can't resolve .git directory at "+path,
		fmt.Errorf("%w: %w", ErrGitDirUnreadable, cause))
}
