package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/monoscope/internal/config"
	"github.com/gorewood/monoscope/internal/git"
	"github.com/gorewood/monoscope/internal/output"
	"github.com/gorewood/monoscope/internal/scope"
)

type workspace struct {
	dir        string
	configPath string
}

func (w *workspace) startDir(override string) string {
	if override != "" {
		return override
	}
	return w.dir
}

// --- git_dir tool ---

// GitDirInput is the input for the git_dir tool.
type GitDirInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"directory to resolve from (default: server working directory)"`
}

// GitDirOutput is the output for the git_dir tool.
type GitDirOutput struct {
	GitDir   string `json:"git_dir"   jsonschema:"absolute path of the Git metadata directory"`
	WorkTree string `json:"work_tree" jsonschema:"directory holding the .git entry"`
	Pointer  bool   `json:"pointer"   jsonschema:"true when .git is a pointer file (submodule or worktree)"`
}

func handleGitDir(ws *workspace) mcp.ToolHandlerFor[GitDirInput, GitDirOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GitDirInput) (*mcp.CallToolResult, GitDirOutput, error) {
		dotGit, err := git.FindDotGit(ws.startDir(input.Dir))
		if err != nil {
			return nil, GitDirOutput{}, errors.New(output.Describe(err))
		}
		gitDir, err := git.ResolveGitDir(dotGit)
		if err != nil {
			return nil, GitDirOutput{}, errors.New(output.Describe(err))
		}
		return nil, GitDirOutput{
			GitDir:   gitDir,
			WorkTree: git.WorkTree(dotGit),
			Pointer:  gitDir != dotGit,
		}, nil
	}
}

// --- scopes tool ---

// ScopesInput is the input for the scopes tool.
type ScopesInput struct {
	Dir   string   `json:"dir,omitempty"   jsonschema:"directory inside the repository (default: server working directory)"`
	Files []string `json:"files,omitempty" jsonschema:"repository-relative paths to classify instead of the staged files"`
}

// ScopesOutput is the output for the scopes tool.
type ScopesOutput struct {
	GitDir    string        `json:"git_dir,omitempty"   jsonschema:"Git metadata directory the staged files were read from"`
	Scopes    []string      `json:"scopes"              jsonschema:"sorted, distinct scopes"`
	Matches   []scope.Match `json:"matches"             jsonschema:"scope and deciding rule per path"`
	Unmatched []string      `json:"unmatched,omitempty" jsonschema:"paths no rule matched"`
	Ignored   []string      `json:"ignored,omitempty"   jsonschema:"paths skipped by ignore globs"`
}

func handleScopes(ws *workspace) mcp.ToolHandlerFor[ScopesInput, ScopesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ScopesInput) (*mcp.CallToolResult, ScopesOutput, error) {
		out := ScopesOutput{}

		workTree := ""
		dotGit, findErr := git.FindDotGit(ws.startDir(input.Dir))
		if findErr == nil {
			workTree = git.WorkTree(dotGit)
		}

		cfg, err := config.LoadForWorkTree(ws.configPath, workTree)
		if err != nil {
			return nil, out, fmt.Errorf("loading config: %s", output.Describe(err))
		}
		rules, err := cfg.ScopeRules()
		if err != nil {
			return nil, out, fmt.Errorf("loading rules: %w", err)
		}

		files := strings.Join(input.Files, "\n")
		if len(input.Files) == 0 {
			if findErr != nil {
				return nil, out, errors.New(output.Describe(findErr))
			}
			gitDir, err := git.ResolveGitDir(dotGit)
			if err != nil {
				return nil, out, errors.New(output.Describe(err))
			}
			out.GitDir = gitDir
			if files, err = git.StagedFiles(ctx, gitDir); err != nil {
				return nil, out, errors.New(output.Describe(err))
			}
		}

		report, err := scope.Explain(files, rules, scope.WithIgnore(cfg.Ignore))
		if err != nil {
			return nil, out, err
		}
		out.Scopes = report.Scopes.Sorted()
		out.Matches = report.Matches
		out.Unmatched = report.Unmatched
		out.Ignored = report.Ignored
		return nil, out, nil
	}
}
