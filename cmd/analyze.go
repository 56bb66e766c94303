package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codeviz/internal/backend"
	"github.com/ziadkadry99/codeviz/internal/config"
	"github.com/ziadkadry99/codeviz/internal/diagrams"
	"github.com/ziadkadry99/codeviz/internal/graph"
	"github.com/ziadkadry99/codeviz/internal/progress"
	"github.com/ziadkadry99/codeviz/internal/walker"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze code through the backend and print the diagram",
	Long: `Sends one input to the analysis backend and prints the resulting graph as
Mermaid markup. Exactly one of --dir, --folder or --github is required:

  --dir     sends the path; the backend reads the directory itself
  --folder  lists the files locally and sends them like a browser upload
  --github  analyzes a GitHub repository (see --branch and the filter flags)`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("dir", "", "directory path for the backend to analyze")
	f.String("folder", "", "local folder to list and upload")
	f.String("github", "", "GitHub repository URL")
	f.String("branch", "", "branch to analyze (default from config)")
	f.StringSlice("node-types", nil, "node types to keep (e.g. file,function)")
	f.StringSlice("edge-types", nil, "edge types to keep (e.g. contains,imports)")
	f.String("search", "", "only keep nodes matching this term")
	f.Int("max-nodes", -1, "maximum number of nodes, 0 for no limit (default from config)")
	f.Bool("json", false, "print the raw graph JSON instead of markup")
	analyzeCmd.MarkFlagsMutuallyExclusive("dir", "folder", "github")
	analyzeCmd.MarkFlagsOneRequired("dir", "folder", "github")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := diagrams.ParseDirection(cfg.Direction)
	if err != nil {
		return err
	}

	client := newClientFromConfig(cfg)
	ctx := context.Background()
	reporter := progress.NewReporter()

	var g *graph.Graph
	switch {
	case cmd.Flags().Changed("github"):
		req := gitHubRequestFromFlags(cmd, cfg)
		reporter.Start(fmt.Sprintf("Analyzing %s (%s)", req.RepoURL, req.Branch))
		g, err = client.AnalyzeGitHub(ctx, req)
	case cmd.Flags().Changed("folder"):
		folder, _ := cmd.Flags().GetString("folder")
		files, werr := walker.CollectFolder(walker.Config{RootDir: folder, Include: cfg.Include, Exclude: cfg.Exclude})
		if werr != nil {
			return werr
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Uploading %d file path(s)\n", len(files))
		}
		reporter.Start(fmt.Sprintf("Analyzing %d files", len(files)))
		g, err = client.Analyze(ctx, backend.AnalyzeRequest{Folder: files})
	default:
		path, _ := cmd.Flags().GetString("dir")
		reporter.Start("Analyzing " + path)
		g, err = client.Analyze(ctx, backend.AnalyzeRequest{Directory: path})
	}
	if err != nil {
		err = analysisError(err)
		reporter.Fail(err)
		cmd.SilenceErrors = true
		return err
	}

	stats := graph.ComputeStats(g)
	reporter.Done(fmt.Sprintf("Found %d node(s) and %d edge(s)", stats.TotalNodes, stats.TotalEdges))

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}
	fmt.Fprintln(cmd.OutOrStdout(), diagrams.RenderWithOptions(g, diagrams.Options{Direction: dir}))
	return nil
}

func gitHubRequestFromFlags(cmd *cobra.Command, cfg *config.Config) backend.GitHubRequest {
	f := cmd.Flags()
	repoURL, _ := f.GetString("github")
	branch, _ := f.GetString("branch")
	if branch == "" {
		branch = cfg.DefaultBranch
	}
	nodeTypes, _ := f.GetStringSlice("node-types")
	edgeTypes, _ := f.GetStringSlice("edge-types")
	search, _ := f.GetString("search")
	maxNodes, _ := f.GetInt("max-nodes")
	if maxNodes < 0 {
		maxNodes = cfg.MaxNodes
	}
	return backend.GitHubRequest{
		RepoURL:    repoURL,
		Branch:     branch,
		NodeTypes:  nodeTypes,
		EdgeTypes:  edgeTypes,
		SearchTerm: search,
		MaxNodes:   maxNodes,
	}
}

// analysisError keeps backend-reported messages verbatim and prefixes
// transport or decoding failures.
func analysisError(err error) error {
	var apiErr *backend.APIError
	var vErr *backend.ValidationError
	if errors.As(err, &apiErr) || errors.As(err, &vErr) {
		return err
	}
	return fmt.Errorf("analyzing code: %w", err)
}
