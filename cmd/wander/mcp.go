// ABOUTME: MCP serve command
// ABOUTME: Starts the MCP server for AI agent integration

package main

import (
	"github.com/harper/wander/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Long: `Serve wander's geodesy and navigation tools over MCP on stdio.

Tools: distance, bearing, in_view, project, navigate, directions_url, search_places
Resources: wander://places`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		server, err := mcp.NewServer(c, cfg.FieldOfView)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(commandContext(cmd))
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
