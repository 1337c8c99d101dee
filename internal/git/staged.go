package git

import (
	"context"
)

// StagedFiles lists the paths staged for commit in the repository owned by
// gitDir, one per line, relative to the top of the working tree.
//
// Any stderr output from git counts as a failure; the hook would rather
// report nothing than scopes computed from a partial listing.
func StagedFiles(ctx context.Context, gitDir string) (string, error) {
	return RunStrictContext(ctx,
		"--git-dir="+gitDir,
		"-c", "core.quotePath=false",
		"diff", "--cached", "--name-only",
	)
}
