package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/schedview/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the schedule, teacher roster and week parity as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := newLoader(cfg)
		if err != nil {
			return err
		}

		t := loadTables(cmd.Context(), cfg, l, cfg.Language)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "schedview MCP server started on stdio (source=%s, days=%d, teachers=%d)\n",
			l.Source(), t.DayNames.Len(), len(t.Teachers))

		srv := mcpserver.NewServer(t, newRenderer(cfg), cfg.Language)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
