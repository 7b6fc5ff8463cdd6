package model

import (
	"fmt"

	"github.com/mj1618/desktop-launcher/internal/platform"
)

// Window is one toplevel window belonging to an Item.
type Window struct {
	ID    uint64
	Name  string
	State OpenState

	handle platform.Handle
}

// WindowView is the serialisable projection of a Window.
type WindowView struct {
	ID    uint64    `yaml:"id"    json:"id"`
	Name  string    `yaml:"name"  json:"name"`
	State OpenState `yaml:"state" json:"state"`
}

// NewWindow builds a Window from a handle's current info.
func NewWindow(handle platform.Handle) (*Window, error) {
	info, ok := handle.Info()
	if !ok {
		return nil, fmt.Errorf("new window: %w", ErrMissingInfo)
	}
	return &Window{
		ID:     info.ID,
		Name:   info.Title,
		State:  OpenStateFromInfo(info),
		handle: handle,
	}, nil
}

// Handle returns the compositor handle backing the window.
func (w *Window) Handle() platform.Handle { return w.handle }

// Focus requests that the compositor focus the window on seat.
func (w *Window) Focus(seat platform.Seat) {
	w.handle.Focus(seat)
}

func (w *Window) SetName(name string) { w.Name = name }

func (w *Window) SetState(state OpenState) { w.State = state }

func (w *Window) View() WindowView {
	return WindowView{ID: w.ID, Name: w.Name, State: w.State}
}
