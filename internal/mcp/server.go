// Package mcp provides a Model Context Protocol server for monoscope.
// It lets MCP-capable agents ask which monorepo scopes a change touches
// before writing a commit message.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all monoscope tools registered.
// Tools resolve repositories relative to dir unless a call names another.
func NewServer(version, dir, configPath string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "monoscope",
		Version: version,
	}, nil)
	registerTools(server, &workspace{dir: dir, configPath: configPath})
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

func registerTools(server *mcp.Server, ws *workspace) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_dir",
		Description: "Resolve the Git metadata directory for a directory, following submodule and worktree .git pointer files.",
		Annotations: readOnlyAnnotations(),
	}, handleGitDir(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "scopes",
		Description: "List the monorepo scopes (project or package names) touched by the staged files, or by the given paths. Use the result as the scope of a commit message.",
		Annotations: readOnlyAnnotations(),
	}, handleScopes(ws))
}
