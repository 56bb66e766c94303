package mcp

import "github.com/mark3labs/mcp-go/mcp"

// renderGraphTool defines the render_graph MCP tool.
var renderGraphTool = mcp.NewTool("render_graph",
	mcp.WithDescription("Render a code graph (JSON with nodes and edges) as Mermaid flowchart markup."),
	mcp.WithString("graph_json",
		mcp.Required(),
		mcp.Description(`Graph as JSON: {"nodes":[{"id","display_id","name","type"}],"edges":[{"source","target","type"}]}`),
	),
	mcp.WithString("direction",
		mcp.Description("Flowchart direction (default TD)"),
		mcp.Enum("TD", "TB", "BT", "LR", "RL"),
	),
)

// analyzeDirectoryTool defines the analyze_directory MCP tool.
var analyzeDirectoryTool = mcp.NewTool("analyze_directory",
	mcp.WithDescription("Analyze a codebase through the backend and return its structure as a Mermaid diagram."),
	mcp.WithString("directory",
		mcp.Required(),
		mcp.Description("Path to the directory to analyze"),
	),
	mcp.WithBoolean("upload",
		mcp.Description("List the files locally and send them as a folder upload instead of sending the path (default false)"),
	),
)

// analyzeGitHubTool defines the analyze_github MCP tool.
var analyzeGitHubTool = mcp.NewTool("analyze_github",
	mcp.WithDescription("Analyze a GitHub repository through the backend and return its structure as a Mermaid diagram."),
	mcp.WithString("repo_url",
		mcp.Required(),
		mcp.Description("GitHub repository URL"),
	),
	mcp.WithString("branch",
		mcp.Description("Branch to analyze (default main)"),
	),
	mcp.WithString("node_types",
		mcp.Description("Comma-separated node types to keep, e.g. file,function"),
	),
	mcp.WithString("edge_types",
		mcp.Description("Comma-separated edge types to keep, e.g. contains,imports"),
	),
	mcp.WithString("search_term",
		mcp.Description("Only keep nodes matching this term"),
	),
	mcp.WithNumber("max_nodes",
		mcp.Description("Maximum number of nodes (0 means no limit)"),
	),
)

// generateDiagramTool defines the generate_diagram MCP tool.
var generateDiagramTool = mcp.NewTool("generate_diagram",
	mcp.WithDescription("Turn a plain-text process description into a Mermaid flowchart."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Description of the process or flow"),
	),
)
