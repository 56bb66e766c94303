package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/codeviz/internal/backend"
	"github.com/ziadkadry99/codeviz/internal/diagrams"
	"github.com/ziadkadry99/codeviz/internal/graph"
	"github.com/ziadkadry99/codeviz/internal/walker"
)

// handleRenderGraph renders a graph supplied by the caller without calling
// the backend.
func (s *Server) handleRenderGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("graph_json")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: graph_json"), nil
	}

	var g graph.Graph
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid graph JSON: %v", err)), nil
	}

	dir, err := s.direction(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(diagrams.RenderWithOptions(&g, diagrams.Options{Direction: dir})), nil
}

// handleAnalyzeDirectory sends a local directory to the backend, either as a
// path or as an upload-style file listing.
func (s *Server) handleAnalyzeDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := request.RequireString("directory")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: directory"), nil
	}

	req := backend.AnalyzeRequest{Directory: dir}
	if request.GetBool("upload", false) {
		files, err := walker.CollectFolder(walker.Config{RootDir: dir, Include: s.opts.Include, Exclude: s.opts.Exclude})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing %s: %v", dir, err)), nil
		}
		req = backend.AnalyzeRequest{Folder: files}
	}

	g, err := s.backend.Analyze(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(toolMessage(err, "Error analyzing code")), nil
	}
	return mcp.NewToolResultText(s.formatAnalysis(g)), nil
}

// handleAnalyzeGitHub sends a repository URL and its filters to the backend.
func (s *Server) handleAnalyzeGitHub(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoURL, err := request.RequireString("repo_url")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: repo_url"), nil
	}

	req := backend.GitHubRequest{
		RepoURL:    repoURL,
		Branch:     request.GetString("branch", s.opts.DefaultBranch),
		NodeTypes:  splitList(request.GetString("node_types", "")),
		EdgeTypes:  splitList(request.GetString("edge_types", "")),
		SearchTerm: request.GetString("search_term", ""),
		MaxNodes:   request.GetInt("max_nodes", s.opts.MaxNodes),
	}

	g, err := s.backend.AnalyzeGitHub(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(toolMessage(err, "Error analyzing repository")), nil
	}
	return mcp.NewToolResultText(s.formatAnalysis(g)), nil
}

// handleGenerateDiagram asks the backend to turn free text into a flowchart.
func (s *Server) handleGenerateDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	code, err := s.backend.Generate(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(toolMessage(err, "Error generating diagram")), nil
	}
	return mcp.NewToolResultText(diagrams.CleanGenerated(code)), nil
}

func (s *Server) direction(request mcp.CallToolRequest) (diagrams.Direction, error) {
	raw := request.GetString("direction", "")
	if raw == "" {
		return s.opts.Direction, nil
	}
	return diagrams.ParseDirection(raw)
}

// formatAnalysis renders an analyzed graph together with a short summary
// of what it contains.
func (s *Server) formatAnalysis(g *graph.Graph) string {
	stats := graph.ComputeStats(g)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyzed %d node(s) and %d edge(s).\n", stats.TotalNodes, stats.TotalEdges))
	for _, tc := range stats.NodeTypes {
		sb.WriteString(fmt.Sprintf("- %d %s\n", tc.Count, tc.Type))
	}
	for _, tc := range stats.EdgeTypes {
		sb.WriteString(fmt.Sprintf("- %d %s relationship(s)\n", tc.Count, tc.Type))
	}
	sb.WriteString("\n```mermaid\n")
	sb.WriteString(diagrams.RenderWithOptions(g, diagrams.Options{Direction: s.opts.Direction}))
	sb.WriteString("\n```\n")
	return sb.String()
}

// toolMessage shows backend and validation messages verbatim and prefixes
// anything else.
func toolMessage(err error, prefix string) string {
	var apiErr *backend.APIError
	var vErr *backend.ValidationError
	if errors.As(err, &apiErr) || errors.As(err, &vErr) {
		return err.Error()
	}
	return prefix + ": " + err.Error()
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
