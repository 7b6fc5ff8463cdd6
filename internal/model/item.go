package model

import (
	"fmt"

	"github.com/mj1618/desktop-launcher/internal/platform"
)

// Item groups the windows of one application.
//
// State always equals MergeStates over the states of all windows; every
// mutating method recomputes it before returning.
type Item struct {
	AppID    string
	Favorite bool

	name    string
	state   OpenState
	windows WindowMap
}

// ItemView is the read projection used to build and refresh a bar button.
type ItemView struct {
	AppID       string       `yaml:"app_id"           json:"app_id"`
	Name        string       `yaml:"name"             json:"name"`
	Favorite    bool         `yaml:"favorite"         json:"favorite"`
	State       OpenState    `yaml:"state"            json:"state"`
	WindowCount int          `yaml:"window_count"     json:"window_count"`
	Windows     []WindowView `yaml:"windows,omitempty" json:"windows,omitempty"`
}

// NewItem creates an item with no windows. Without windows the aggregate
// state is Closed whatever state is passed.
func NewItem(appID string, state OpenState, favorite bool) *Item {
	item := &Item{
		AppID:    appID,
		Favorite: favorite,
		state:    state,
	}
	item.recalculateOpenState()
	return item
}

// NewItemFromHandle creates a non-favorite item holding the handle's window.
func NewItemFromHandle(handle platform.Handle) (*Item, error) {
	info, ok := handle.Info()
	if !ok {
		return nil, fmt.Errorf("new item: %w", ErrMissingInfo)
	}
	item := NewItem(info.AppID, Closed, false)
	if _, err := item.MergeToplevel(handle); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *Item) Name() string { return i.name }

func (i *Item) State() OpenState { return i.state }

// Window returns the window with id.
func (i *Item) Window(id uint64) (*Window, bool) { return i.windows.Get(id) }

// Windows returns the windows in discovery order.
func (i *Item) Windows() []*Window { return i.windows.All() }

func (i *Item) WindowCount() int { return i.windows.Len() }

func (i *Item) IsEmpty() bool { return i.windows.Len() == 0 }

// FirstWindow returns the earliest discovered window, or nil.
func (i *Item) FirstWindow() *Window { return i.windows.First() }

// FocusedWindow returns the focused window, or nil.
func (i *Item) FocusedWindow() *Window {
	for _, w := range i.windows.All() {
		if w.State.IsFocused() {
			return w
		}
	}
	return nil
}

// MergeToplevel adds the handle's window to the item, replacing any window
// with the same id. The item takes the window's title as its name only when
// it had no windows before.
func (i *Item) MergeToplevel(handle platform.Handle) (*Window, error) {
	window, err := NewWindow(handle)
	if err != nil {
		return nil, fmt.Errorf("merge toplevel: %w", err)
	}

	if i.windows.Len() == 0 {
		i.name = window.Name
	}
	i.windows.Set(window)

	i.recalculateOpenState()
	return window, nil
}

// UnmergeToplevel removes the handle's window. Pending handles and unknown
// ids are ignored.
func (i *Item) UnmergeToplevel(handle platform.Handle) {
	info, ok := handle.Info()
	if !ok {
		return
	}
	i.windows.Delete(info.ID)
	i.recalculateOpenState()
}

// SetWindowName renames a window. The item name follows the window while
// it is focused.
func (i *Item) SetWindowName(windowID uint64, name string) {
	window, ok := i.windows.Get(windowID)
	if !ok {
		return
	}
	if window.State.IsFocused() {
		i.name = name
	}
	window.SetName(name)
}

// SetWindowFocused changes only the focus bit of a window's state.
// A window gaining focus also lends the item its name.
func (i *Item) SetWindowFocused(windowID uint64, focused bool) {
	window, ok := i.windows.Get(windowID)
	if !ok {
		return
	}
	window.SetState(window.State.WithFocus(focused))
	if window.State.IsFocused() {
		i.name = window.Name
	}
	i.recalculateOpenState()
}

func (i *Item) recalculateOpenState() {
	states := make([]OpenState, 0, i.windows.Len())
	for _, w := range i.windows.All() {
		states = append(states, w.State)
	}
	i.state = MergeStates(states...)
}

// View returns a copy of the item's presentation-facing state.
func (i *Item) View() ItemView {
	windows := i.windows.All()
	views := make([]WindowView, 0, len(windows))
	for _, w := range windows {
		views = append(views, w.View())
	}
	return ItemView{
		AppID:       i.AppID,
		Name:        i.name,
		Favorite:    i.Favorite,
		State:       i.state,
		WindowCount: len(windows),
		Windows:     views,
	}
}
