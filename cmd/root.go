package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codeviz/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "codeviz",
	Short: "Code structure diagrams from an analysis backend",
	Long: `codeviz sends folders, local directories, GitHub repositories and
plain-text descriptions to a code analysis backend and turns the returned
graph into Mermaid flowcharts. It serves an interactive dashboard, renders
diagrams on the command line and exposes the same tools to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
