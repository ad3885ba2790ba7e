package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/roadmap-content/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve list, status and backfill as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return mcpserver.Serve(a, version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
