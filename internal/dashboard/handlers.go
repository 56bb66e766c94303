package dashboard

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/codeviz/internal/backend"
	"github.com/ziadkadry99/codeviz/internal/diagrams"
	"github.com/ziadkadry99/codeviz/internal/graph"
	"github.com/ziadkadry99/codeviz/internal/session"
	"github.com/ziadkadry99/codeviz/internal/viewport"
)

// diagramResponse describes a freshly rendered diagram.
type diagramResponse struct {
	DiagramID string             `json:"diagram_id"`
	Container string             `json:"container"`
	Markup    string             `json:"markup"`
	Scale     float64            `json:"scale"`
	Transform string             `json:"transform"`
	Controls  []viewport.Control `json:"controls"`
}

// analysisResponse is returned by both analysis endpoints.
type analysisResponse struct {
	diagramResponse
	Nodes []graph.Node `json:"nodes"`
	Stats graph.Stats  `json:"stats"`
}

// graphResponse is the JSON response for the current graph endpoint.
type graphResponse struct {
	Graph *graph.Graph `json:"graph"`
	Nodes []graph.Node `json:"nodes"`
	Stats graph.Stats  `json:"stats"`
}

// stateResponse is the JSON response for the session state endpoint.
type stateResponse struct {
	Loading  bool `json:"loading"`
	InFlight int  `json:"in_flight"`
	HasGraph bool `json:"has_graph"`
}

type generateRequest struct {
	Text string `json:"text"`
}

type interpretResponse struct {
	HTML string `json:"html"`
}

// diagramActionRequest carries the outcome of the page's own fullscreen
// attempt: the state it asked the browser for and the browser's error, if
// any. It is empty for the zoom actions.
type diagramActionRequest struct {
	Fullscreen *bool  `json:"fullscreen"`
	HostError  string `json:"host_error"`
}

type diagramActionResponse struct {
	ID         string  `json:"id"`
	Scale      float64 `json:"scale"`
	Transform  string  `json:"transform"`
	Fullscreen bool    `json:"fullscreen"`
	Message    string  `json:"message,omitempty"`
}

func (d *Dashboard) handleState(w http.ResponseWriter, r *http.Request) {
	_, ok := d.state.Current()
	writeJSON(w, http.StatusOK, stateResponse{
		Loading:  d.state.Loading(),
		InFlight: d.state.InFlight(),
		HasGraph: ok,
	})
}

func (d *Dashboard) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, ok := d.state.Current()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no graph has been analyzed yet"})
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{
		Graph: g,
		Nodes: graph.SortedNodes(g.Nodes),
		Stats: graph.ComputeStats(g),
	})
}

func (d *Dashboard) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req backend.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err, "")
		return
	}

	ticket := d.begin(session.KindAnalyze)
	g, err := d.backend.Analyze(r.Context(), req)
	d.finishAnalysis(w, ticket, g, err, "Error analyzing code")
}

func (d *Dashboard) handleAnalyzeGitHub(w http.ResponseWriter, r *http.Request) {
	var req backend.GitHubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Branch == "" {
		req.Branch = d.opts.DefaultBranch
	}
	if req.MaxNodes == 0 {
		req.MaxNodes = d.opts.MaxNodes
	}
	if err := req.Validate(); err != nil {
		writeError(w, err, "")
		return
	}

	ticket := d.begin(session.KindAnalyzeGitHub)
	g, err := d.backend.AnalyzeGitHub(r.Context(), req)
	d.finishAnalysis(w, ticket, g, err, "Error analyzing repository")
}

// finishAnalysis adopts a successful analysis as the current graph and
// renders it, or reports the failure with the graph left untouched.
func (d *Dashboard) finishAnalysis(w http.ResponseWriter, ticket session.Ticket, g *graph.Graph, err error, prefix string) {
	if err != nil {
		d.state.Finish(ticket)
		d.fail(ticket, err, prefix)
		writeError(w, err, prefix)
		return
	}

	if err := d.state.Adopt(ticket, g); err != nil {
		if errors.Is(err, session.ErrStale) {
			log.Printf("dashboard: discarding stale %s response #%d", ticket.Kind, ticket.Seq)
			d.events.broadcast(event{Type: eventIdle, Kind: ticket.Kind, Loading: d.state.Loading()})
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeError(w, err, prefix)
		return
	}

	resp := analysisResponse{
		diagramResponse: d.attach(CodeDiagram, diagrams.RenderWithOptions(g, diagrams.Options{Direction: d.opts.Direction})),
		Nodes:           graph.SortedNodes(g.Nodes),
		Stats:           graph.ComputeStats(g),
	}
	d.events.broadcast(event{
		Type:      eventGraph,
		Kind:      ticket.Kind,
		DiagramID: resp.DiagramID,
		Loading:   d.state.Loading(),
	})
	writeJSON(w, http.StatusOK, resp)
}

func (d *Dashboard) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := backend.ValidateText(req.Text); err != nil {
		writeError(w, err, "")
		return
	}

	ticket := d.begin(session.KindGenerate)
	code, err := d.backend.Generate(r.Context(), req.Text)
	d.state.Finish(ticket)
	if err != nil {
		d.fail(ticket, err, "Error generating diagram")
		writeError(w, err, "Error generating diagram")
		return
	}

	resp := d.attach(TextDiagram, diagrams.CleanGenerated(code))
	d.events.broadcast(event{Type: eventIdle, Kind: ticket.Kind, DiagramID: resp.DiagramID, Loading: d.state.Loading()})
	writeJSON(w, http.StatusOK, resp)
}

func (d *Dashboard) handleInterpret(w http.ResponseWriter, r *http.Request) {
	g, ok := d.state.Current()
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Please analyze code first"})
		return
	}

	ticket := d.begin(session.KindInterpret)
	reply, err := d.backend.Generate(r.Context(), graph.Describe(g))
	d.state.Finish(ticket)
	if err != nil {
		d.fail(ticket, err, "Error generating interpretation")
		writeError(w, err, "Error generating interpretation")
		return
	}

	html, err := d.formatter.HTML(reply)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	d.events.broadcast(event{Type: eventIdle, Kind: ticket.Kind, Loading: d.state.Loading()})
	writeJSON(w, http.StatusOK, interpretResponse{HTML: html})
}

func (d *Dashboard) handleDiagramAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	action, err := viewport.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req diagramActionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	var (
		st  viewport.State
		msg string
		p   = pagePresenter{hostError: req.HostError}
	)
	if action == viewport.ActionFullscreen && req.Fullscreen != nil {
		st, msg, err = d.views.SetFullscreen(r.Context(), id, *req.Fullscreen, p)
	} else {
		st, msg, err = d.views.Apply(r.Context(), id, action, p)
	}
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, diagramActionResponse{
		ID:         st.ID,
		Scale:      st.Scale,
		Transform:  st.Transform(),
		Fullscreen: st.Fullscreen,
		Message:    msg,
	})
}

// attach registers a new diagram for container and builds its response.
func (d *Dashboard) attach(container, markup string) diagramResponse {
	st := d.views.Attach(container)
	return diagramResponse{
		DiagramID: st.ID,
		Container: container,
		Markup:    markup,
		Scale:     st.Scale,
		Transform: st.Transform(),
		Controls:  viewport.Controls(),
	}
}

func (d *Dashboard) begin(kind session.Kind) session.Ticket {
	t := d.state.Begin(kind)
	d.events.broadcast(event{Type: eventLoading, Kind: kind, Loading: true})
	return t
}

func (d *Dashboard) fail(t session.Ticket, err error, prefix string) {
	log.Printf("dashboard: %s #%d failed: %v", t.Kind, t.Seq, err)
	d.events.broadcast(event{Type: eventError, Kind: t.Kind, Message: userMessage(err, prefix), Loading: d.state.Loading()})
}

// userMessage is the text shown to the user for a failed request. Messages
// reported by the backend and validation messages are shown verbatim.
func userMessage(err error, prefix string) string {
	var apiErr *backend.APIError
	var vErr *backend.ValidationError
	switch {
	case errors.As(err, &apiErr), errors.As(err, &vErr), prefix == "":
		return err.Error()
	default:
		return prefix + ": " + err.Error()
	}
}

func writeError(w http.ResponseWriter, err error, prefix string) {
	status := http.StatusBadGateway
	var vErr *backend.ValidationError
	if errors.As(err, &vErr) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": userMessage(err, prefix)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
