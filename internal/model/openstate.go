package model

import (
	"fmt"

	"github.com/mj1618/desktop-launcher/internal/platform"
)

// OpenState is the open/focus status of a window or an item.
// Values are ordered by importance: Closed < Open < Focused.
type OpenState uint8

const (
	Closed OpenState = iota
	Open
	Focused
)

// OpenStateFromInfo derives a state from protocol-reported flags.
// A focused flag on a window that is not open is ignored.
func OpenStateFromInfo(info platform.ToplevelInfo) OpenState {
	switch {
	case !info.Open:
		return Closed
	case info.Focused:
		return Focused
	default:
		return Open
	}
}

// MergeStates returns the most important of states, or Closed if there are none.
func MergeStates(states ...OpenState) OpenState {
	merged := Closed
	for _, s := range states {
		if s > merged {
			merged = s
		}
	}
	return merged
}

// WithFocus applies a focus-only change: the open/closed bit is kept and
// only the focus bit is replaced. A closed state stays closed.
func (s OpenState) WithFocus(focused bool) OpenState {
	if s == Closed {
		return Closed
	}
	if focused {
		return Focused
	}
	return Open
}

// IsOpen reports whether at least one window is open.
func (s OpenState) IsOpen() bool { return s != Closed }

// IsFocused reports whether the state is open and focused.
func (s OpenState) IsFocused() bool { return s == Focused }

func (s OpenState) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Focused:
		return "focused"
	default:
		return fmt.Sprintf("OpenState(%d)", uint8(s))
	}
}

// MarshalText encodes the state as closed, open or focused.
func (s OpenState) MarshalText() ([]byte, error) {
	if s > Focused {
		return nil, fmt.Errorf("invalid open state %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses closed, open or focused.
func (s *OpenState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "closed":
		*s = Closed
	case "open":
		*s = Open
	case "focused":
		*s = Focused
	default:
		return fmt.Errorf("unknown open state %q (expected closed, open, or focused)", text)
	}
	return nil
}
