package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codeviz/internal/diagrams"
	"github.com/ziadkadry99/codeviz/internal/watcher"
)

var renderCmd = &cobra.Command{
	Use:   "render [graph.json|-]",
	Short: "Render a graph JSON file as Mermaid markup",
	Long: `Reads a graph in the backend's JSON format (nodes and edges) from a file or
stdin and prints the Mermaid flowchart markup the dashboard would render.
With --watch the file is re-rendered every time it changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("direction", "", "flowchart direction: TD, TB, BT, LR or RL (default from config)")
	renderCmd.Flags().Bool("watch", false, "re-render whenever the file changes")
	renderCmd.Flags().Bool("copy", false, "copy the markup to the clipboard")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dirFlag, _ := cmd.Flags().GetString("direction")
	if dirFlag == "" {
		dirFlag = cfg.Direction
	}
	dir, err := diagrams.ParseDirection(dirFlag)
	if err != nil {
		return err
	}
	watch, _ := cmd.Flags().GetBool("watch")
	copyOut, _ := cmd.Flags().GetBool("copy")

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	render := func() error {
		g, err := readGraph(path)
		if err != nil {
			return err
		}
		markup := diagrams.RenderWithOptions(g, diagrams.Options{Direction: dir})
		fmt.Fprintln(cmd.OutOrStdout(), markup)
		if copyOut {
			if err := clipboard.WriteAll(markup); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Fprintln(os.Stderr, "Copied to clipboard.")
		}
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	if path == "-" {
		return errors.New("--watch needs a file argument")
	}

	w, err := watcher.New(path, func() {
		fmt.Fprintf(os.Stderr, "\n%s changed, re-rendering\n", path)
		if err := render(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", path)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
