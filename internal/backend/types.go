package backend

import (
	"errors"

	"github.com/ziadkadry99/codeviz/internal/graph"
)

// Endpoint paths of the analysis backend.
const (
	PathAnalyze       = "/analyze"
	PathAnalyzeGitHub = "/analyze_github"
	PathGenerate      = "/generate"
)

// DefaultBranch is used when a GitHub request names no branch.
const DefaultBranch = "main"

var (
	// ErrTransport wraps network failures talking to the backend.
	ErrTransport = errors.New("backend request failed")
	// ErrMalformed wraps responses that are not the expected JSON.
	ErrMalformed = errors.New("malformed backend response")
)

// AnalyzeRequest is the /analyze body. Exactly one of Folder or Directory
// is sent.
type AnalyzeRequest struct {
	Folder    []string `json:"folder,omitempty"`
	Directory string   `json:"directory,omitempty"`
}

// GitHubRequest is the /analyze_github body.
type GitHubRequest struct {
	RepoURL    string   `json:"repo_url"`
	Branch     string   `json:"branch"`
	NodeTypes  []string `json:"node_types"`
	EdgeTypes  []string `json:"edge_types"`
	SearchTerm string   `json:"search_term"`
	MaxNodes   int      `json:"max_nodes"`
}

type generateRequest struct {
	Text string `json:"text"`
}

// response covers every field any endpoint may return.
type response struct {
	Nodes     []graph.Node `json:"nodes"`
	Edges     []graph.Edge `json:"edges"`
	GraphCode string       `json:"graph_code"`
	Error     string       `json:"error"`
}

// APIError is an application error reported by the backend in the "error"
// field. Its message is shown to the user verbatim.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// ValidationError is raised before any request is sent when required input
// is missing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
