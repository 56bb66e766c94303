package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ziadkadry99/codeviz/internal/graph"
	"github.com/ziadkadry99/codeviz/internal/interpret"
	"github.com/ziadkadry99/codeviz/internal/progress"
)

const defaultTermWidth = 80

var interpretCmd = &cobra.Command{
	Use:   "interpret [graph.json|-]",
	Short: "Describe an analyzed graph in plain language",
	Long: `Summarizes a graph (as printed by "codeviz analyze --json") and asks the
backend to explain the codebase structure, then renders the answer as
terminal markdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInterpret,
}

func init() {
	rootCmd.AddCommand(interpretCmd)
}

func runInterpret(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	g, err := readGraph(path)
	if err != nil {
		return err
	}
	if g.Empty() {
		return fmt.Errorf("the graph has no nodes; analyze some code first")
	}

	client := newClientFromConfig(cfg)
	reporter := progress.NewReporter()

	reporter.Start("Generating interpretation")
	reply, err := client.Generate(context.Background(), graph.Describe(g))
	if err != nil {
		reporter.Fail(err)
		cmd.SilenceErrors = true
		return err
	}
	reporter.Done("")

	out, err := interpret.NewFormatter().Terminal(reply, terminalWidth())
	if err != nil {
		return fmt.Errorf("rendering interpretation: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}
