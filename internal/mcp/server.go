package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/codeviz/internal/backend"
	"github.com/ziadkadry99/codeviz/internal/diagrams"
	"github.com/ziadkadry99/codeviz/internal/graph"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Backend is the analysis service the tools call.
type Backend interface {
	Analyze(ctx context.Context, req backend.AnalyzeRequest) (*graph.Graph, error)
	AnalyzeGitHub(ctx context.Context, req backend.GitHubRequest) (*graph.Graph, error)
	Generate(ctx context.Context, text string) (string, error)
}

// Options carries the configured defaults for tool calls.
type Options struct {
	Direction     diagrams.Direction
	DefaultBranch string
	MaxNodes      int
	Include       []string
	Exclude       []string
}

// Server wraps an MCP server that exposes the diagram tools.
type Server struct {
	backend Backend
	opts    Options
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server backed by b.
func NewServer(b Backend, opts Options) *Server {
	s := &Server{
		backend: b,
		opts:    opts,
	}

	s.mcp = server.NewMCPServer(
		"codeviz",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(renderGraphTool, s.handleRenderGraph)
	s.mcp.AddTool(analyzeDirectoryTool, s.handleAnalyzeDirectory)
	s.mcp.AddTool(analyzeGitHubTool, s.handleAnalyzeGitHub)
	s.mcp.AddTool(generateDiagramTool, s.handleGenerateDiagram)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
