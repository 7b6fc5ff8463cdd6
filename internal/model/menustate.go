package model

import "sync"

// HoverAction is what a bar button does when the pointer enters it.
type HoverAction int

const (
	HidePopup HoverAction = iota
	ShowPopup
)

// MenuState caches an item's window count for hover handling.
// It is written when an update for the item is delivered and read from
// pointer callbacks; the lock is never held across a blocking call.
type MenuState struct {
	mu         sync.RWMutex
	numWindows int
}

func NewMenuState(numWindows int) *MenuState {
	return &MenuState{numWindows: numWindows}
}

func (m *MenuState) SetWindowCount(n int) {
	m.mu.Lock()
	m.numWindows = n
	m.mu.Unlock()
}

func (m *MenuState) WindowCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.numWindows
}

// HoverDecision opens the window-selection popup only for items with more
// than one window.
func (m *MenuState) HoverDecision() HoverAction {
	if m.WindowCount() > 1 {
		return ShowPopup
	}
	return HidePopup
}
