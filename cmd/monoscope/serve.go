package main

import (
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	monoscopemcp "github.com/gorewood/monoscope/internal/mcp"
	"github.com/gorewood/monoscope/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run monoscope as a Model Context Protocol (MCP) server over stdio.

Agents can ask which scopes a change touches before writing a commit
message. Tools resolve from the server's working directory unless the
call passes "dir".

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "monoscope": {
        "command": "monoscope",
        "args": ["serve"]
      }
    }
  }

Available tools: git_dir, scopes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return output.NewSystemErrorWithCause("failed to read working directory", err)
			}
			server := monoscopemcp.NewServer(buildVersion(), cwd, stringFlag(cmd, "config"))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
