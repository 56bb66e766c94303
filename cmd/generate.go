package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codeviz/internal/diagrams"
	"github.com/ziadkadry99/codeviz/internal/progress"
)

var generateCmd = &cobra.Command{
	Use:   "generate TEXT...",
	Short: "Turn a plain-text description into a Mermaid flowchart",
	Long:  `Sends a description of a process to the backend's text-to-diagram service and prints the cleaned flowchart markup.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newClientFromConfig(cfg)
	reporter := progress.NewReporter()

	reporter.Start("Generating diagram")
	code, err := client.Generate(context.Background(), strings.Join(args, " "))
	if err != nil {
		reporter.Fail(err)
		cmd.SilenceErrors = true
		return err
	}
	reporter.Done("")

	fmt.Fprintln(cmd.OutOrStdout(), diagrams.CleanGenerated(code))
	return nil
}
