// Package viewport tracks the per-diagram zoom and fullscreen state behind
// the dashboard's diagram controls.
package viewport

import (
	"context"
	"fmt"
	"strconv"
)

// Zoom factors applied by the zoom controls. They are not exact inverses,
// so alternating zoom in and out drifts away from 1.0.
const (
	ZoomInFactor  = 1.2
	ZoomOutFactor = 0.8
	InitialScale  = 1.0
)

// Action names a diagram control.
type Action string

const (
	ActionZoomIn     Action = "zoom_in"
	ActionZoomOut    Action = "zoom_out"
	ActionReset      Action = "reset"
	ActionFullscreen Action = "fullscreen"
)

// Control is a button rendered next to a diagram.
type Control struct {
	Action Action `json:"action"`
	Label  string `json:"label"`
}

// Controls returns the affordances attached to every rendered diagram.
func Controls() []Control {
	return []Control{
		{Action: ActionZoomIn, Label: "+"},
		{Action: ActionZoomOut, Label: "-"},
		{Action: ActionReset, Label: "Reset"},
		{Action: ActionFullscreen, Label: "Full"},
	}
}

// ParseAction validates a control name.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionZoomIn, ActionZoomOut, ActionReset, ActionFullscreen:
		return a, nil
	default:
		return "", fmt.Errorf("unknown diagram action %q", s)
	}
}

// Presenter is the host capability that shows a container fullscreen.
type Presenter interface {
	EnterFullscreen(ctx context.Context, container string) error
	ExitFullscreen(ctx context.Context, container string) error
}

// State is the view state of one rendered diagram. Scale is the source of
// truth; the CSS transform is derived from it.
type State struct {
	ID         string  `json:"id"`
	Container  string  `json:"container"`
	Scale      float64 `json:"scale"`
	Fullscreen bool    `json:"fullscreen"`
}

// NewState returns the state of a freshly rendered diagram.
func NewState(id, container string) *State {
	return &State{ID: id, Container: container, Scale: InitialScale}
}

// ZoomIn enlarges the diagram. There is no upper bound.
func (s *State) ZoomIn() { s.Scale *= ZoomInFactor }

// ZoomOut shrinks the diagram. There is no lower bound.
func (s *State) ZoomOut() { s.Scale *= ZoomOutFactor }

// Reset restores the initial scale.
func (s *State) Reset() { s.Scale = InitialScale }

// Transform is the CSS transform applied to the diagram element.
func (s *State) Transform() string {
	return "scale(" + strconv.FormatFloat(s.Scale, 'g', -1, 64) + ")"
}

// ToggleFullscreen asks the presenter to enter or leave fullscreen,
// whichever is the opposite of the recorded state.
func (s *State) ToggleFullscreen(ctx context.Context, p Presenter) (message string) {
	return s.SetFullscreen(ctx, p, !s.Fullscreen)
}

// SetFullscreen asks the presenter to enter (on) or leave fullscreen. The
// recorded state follows the presenter's outcome rather than the previous
// value, so a host that left fullscreen on its own (Esc) stays in sync.
// When the presenter fails the state is left as it was and a message for
// the user is returned instead of an error.
func (s *State) SetFullscreen(ctx context.Context, p Presenter, on bool) (message string) {
	if p == nil {
		return "Error attempting to enable fullscreen: fullscreen is not supported"
	}
	if !on {
		if err := p.ExitFullscreen(ctx, s.Container); err != nil {
			return fmt.Sprintf("Error attempting to exit fullscreen: %v", err)
		}
		s.Fullscreen = false
		return ""
	}
	if err := p.EnterFullscreen(ctx, s.Container); err != nil {
		return fmt.Sprintf("Error attempting to enable fullscreen: %v", err)
	}
	s.Fullscreen = true
	return ""
}

// Apply performs a control action on the state.
func (s *State) Apply(ctx context.Context, a Action, p Presenter) (message string) {
	switch a {
	case ActionZoomIn:
		s.ZoomIn()
	case ActionZoomOut:
		s.ZoomOut()
	case ActionReset:
		s.Reset()
	case ActionFullscreen:
		return s.ToggleFullscreen(ctx, p)
	}
	return ""
}
