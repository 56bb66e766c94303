package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codeviz/internal/diagrams"
	mcpserver "github.com/ziadkadry99/codeviz/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing diagram rendering and code analysis tools to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir, err := diagrams.ParseDirection(cfg.Direction)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "codeviz MCP server started on stdio (backend=%s)\n", cfg.BackendURL)

		srv := mcpserver.NewServer(newClientFromConfig(cfg), mcpserver.Options{
			Direction:     dir,
			DefaultBranch: cfg.DefaultBranch,
			MaxNodes:      cfg.MaxNodes,
			Include:       cfg.Include,
			Exclude:       cfg.Exclude,
		})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
