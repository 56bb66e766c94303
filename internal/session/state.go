// Package session holds the dashboard's application state: the current
// graph and the requests in flight that may replace it.
package session

import (
	"errors"
	"sync"

	"github.com/ziadkadry99/codeviz/internal/graph"
)

// ErrStale is returned by Adopt when a newer request has already replaced
// the current graph. The stale graph is discarded.
var ErrStale = errors.New("a newer analysis has already been applied")

// Kind identifies the user action a request was issued for.
type Kind string

const (
	KindAnalyze       Kind = "analyze"
	KindAnalyzeGitHub Kind = "analyze_github"
	KindGenerate      Kind = "generate"
	KindInterpret     Kind = "interpret"
)

// Ticket identifies one in-flight request. Sequence numbers increase in the
// order requests are issued.
type Ticket struct {
	Seq  uint64
	Kind Kind
}

// State is owned by the dashboard controller and passed to whatever needs to
// read or replace the current graph.
type State struct {
	mu       sync.Mutex
	nextSeq  uint64
	adopted  uint64
	inflight map[uint64]Kind
	current  *graph.Graph
}

// New creates an empty State with no current graph.
func New() *State {
	return &State{inflight: make(map[uint64]Kind)}
}

// Begin registers a new request and marks the session as loading.
func (s *State) Begin(kind Kind) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	s.inflight[s.nextSeq] = kind
	return Ticket{Seq: s.nextSeq, Kind: kind}
}

// Adopt replaces the current graph with g, unless a request issued after t
// has already been adopted. Either way t is no longer in flight.
func (s *State) Adopt(t Ticket, g *graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inflight, t.Seq)
	if t.Seq < s.adopted {
		return ErrStale
	}
	s.adopted = t.Seq
	s.current = g
	return nil
}

// Finish ends a request that does not carry a graph, or one that failed.
// The current graph is left unchanged.
func (s *State) Finish(t Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, t.Seq)
}

// Current returns the most recently adopted graph.
func (s *State) Current() (*graph.Graph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

// Loading reports whether any request is in flight.
func (s *State) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight) > 0
}

// InFlight returns the number of requests not yet finished.
func (s *State) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}
