package viewport

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a diagram ID has no view state.
var ErrNotFound = errors.New("diagram not found")

// Registry holds the view state of every diagram currently on screen,
// one per container.
type Registry struct {
	mu          sync.Mutex
	byID        map[string]*State
	byContainer map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:        make(map[string]*State),
		byContainer: make(map[string]string),
	}
}

// Attach registers a freshly rendered diagram in the given container and
// returns a snapshot of its initial state. Any previous diagram in the same
// container is forgotten.
func (r *Registry) Attach(container string) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byContainer[container]; ok {
		delete(r.byID, old)
	}
	st := NewState(uuid.NewString(), container)
	r.byID[st.ID] = st
	r.byContainer[container] = st.ID
	return *st
}

// Get returns a snapshot of the state for id.
func (r *Registry) Get(id string) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.byID[id]
	if !ok {
		return State{}, ErrNotFound
	}
	return *st, nil
}

// Apply runs a control action against the diagram id and returns the new
// state along with any user-facing message.
func (r *Registry) Apply(ctx context.Context, id string, a Action, p Presenter) (State, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.byID[id]
	if !ok {
		return State{}, "", ErrNotFound
	}
	msg := st.Apply(ctx, a, p)
	return *st, msg, nil
}

// SetFullscreen records the fullscreen state the host was asked for on
// diagram id, subject to the presenter's outcome.
func (r *Registry) SetFullscreen(ctx context.Context, id string, on bool, p Presenter) (State, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.byID[id]
	if !ok {
		return State{}, "", ErrNotFound
	}
	msg := st.SetFullscreen(ctx, p, on)
	return *st, msg, nil
}

// Len returns the number of tracked diagrams.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
