package dashboard

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/codeviz/internal/backend"
	"github.com/ziadkadry99/codeviz/internal/diagrams"
	"github.com/ziadkadry99/codeviz/internal/graph"
	"github.com/ziadkadry99/codeviz/internal/interpret"
	"github.com/ziadkadry99/codeviz/internal/session"
	"github.com/ziadkadry99/codeviz/internal/viewport"
)

// Containers the page renders diagrams into.
const (
	CodeDiagram = "code-diagram"
	TextDiagram = "text-diagram"
)

// Backend is the analysis service the dashboard forwards requests to.
type Backend interface {
	Analyze(ctx context.Context, req backend.AnalyzeRequest) (*graph.Graph, error)
	AnalyzeGitHub(ctx context.Context, req backend.GitHubRequest) (*graph.Graph, error)
	Generate(ctx context.Context, text string) (string, error)
}

// Options carries the configured defaults applied to user requests.
type Options struct {
	Direction     diagrams.Direction
	DefaultBranch string
	MaxNodes      int
}

// Dashboard is the top-level UI controller. It owns the session state and
// the view state of every diagram on the page.
type Dashboard struct {
	backend   Backend
	state     *session.State
	views     *viewport.Registry
	formatter *interpret.Formatter
	events    *hub
	opts      Options
}

// New creates a new Dashboard.
func New(b Backend, state *session.State, opts Options) *Dashboard {
	return &Dashboard{
		backend:   b,
		state:     state,
		views:     viewport.NewRegistry(),
		formatter: interpret.NewFormatter(),
		events:    newHub(),
		opts:      opts,
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/api/state", d.handleState)
	r.Get("/api/graph", d.handleGraph)
	r.Post("/api/analyze", d.handleAnalyze)
	r.Post("/api/analyze_github", d.handleAnalyzeGitHub)
	r.Post("/api/generate", d.handleGenerate)
	r.Post("/api/interpret", d.handleInterpret)
	r.Post("/api/diagrams/{id}/{action}", d.handleDiagramAction)
	r.Get("/ws/events", d.handleEvents)
}
