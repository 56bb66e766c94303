package dashboard

import (
	"context"
	"errors"
)

// pagePresenter reports the outcome of the fullscreen request the page made
// itself; browsers only allow fullscreen from inside a click handler.
type pagePresenter struct {
	hostError string
}

func (p pagePresenter) EnterFullscreen(_ context.Context, _ string) error {
	if p.hostError != "" {
		return errors.New(p.hostError)
	}
	return nil
}

func (p pagePresenter) ExitFullscreen(_ context.Context, _ string) error {
	if p.hostError != "" {
		return errors.New(p.hostError)
	}
	return nil
}
