package platform

import "sync"

// FocusFunc issues a focus request for a toplevel to the compositor.
type FocusFunc func(t *Toplevel, seat Seat)

// Toplevel is the Handle implementation shared by the backends.
// It starts out pending and becomes resolved once Resolve is called.
type Toplevel struct {
	key   string
	focus FocusFunc

	mu   sync.RWMutex
	info *ToplevelInfo
}

// NewToplevel creates a pending handle. key is the backend-native window
// reference (e.g. a Hyprland window address).
func NewToplevel(key string, focus FocusFunc) *Toplevel {
	return &Toplevel{key: key, focus: focus}
}

// NewResolvedToplevel creates a handle whose info is already known.
func NewResolvedToplevel(key string, info ToplevelInfo, focus FocusFunc) *Toplevel {
	t := NewToplevel(key, focus)
	t.Resolve(info)
	return t
}

// Key returns the backend-native window reference.
func (t *Toplevel) Key() string { return t.key }

// Resolve stores the descriptive info, replacing any previous value.
func (t *Toplevel) Resolve(info ToplevelInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.info = &info
}

// Update mutates resolved info in place. It reports false if the handle is
// still pending.
func (t *Toplevel) Update(fn func(info *ToplevelInfo)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.info == nil {
		return false
	}
	fn(t.info)
	return true
}

// Pending reports whether the compositor has not yet sent info.
func (t *Toplevel) Pending() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.info == nil
}

func (t *Toplevel) Info() (ToplevelInfo, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.info == nil {
		return ToplevelInfo{}, false
	}
	return *t.info, true
}

func (t *Toplevel) Focus(seat Seat) {
	if t.focus != nil {
		t.focus(t, seat)
	}
}
