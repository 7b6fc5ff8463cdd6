package platform

import (
	"fmt"
	"strings"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// ParseMouseButton converts a string flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// Bounds represents a screen rectangle, used as popup geometry.
type Bounds struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Contains reports whether the point lies inside b.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Seat identifies the input seat a focus request is issued for.
type Seat struct {
	Name string
}

// DefaultSeat is used when no seat is configured.
var DefaultSeat = Seat{Name: "seat0"}

// ToplevelInfo is the descriptive state the compositor reports for a window.
type ToplevelInfo struct {
	ID      uint64 `yaml:"id"      json:"id"`
	Title   string `yaml:"title"   json:"title"`
	AppID   string `yaml:"app_id"  json:"app_id"`
	Open    bool   `yaml:"open"    json:"open"`
	Focused bool   `yaml:"focused" json:"focused"`
}

// ToplevelEvent is one compositor window-management event.
// The set of implementations is closed: ToplevelNew, ToplevelUpdate,
// ToplevelClose and ToplevelsSynced.
type ToplevelEvent interface {
	toplevelEvent()
}

// ToplevelNew announces a window. Its handle may still be pending.
type ToplevelNew struct{ Handle Handle }

// ToplevelUpdate reports changed info (title, focus, late resolution).
type ToplevelUpdate struct{ Handle Handle }

// ToplevelClose reports that the window is gone.
type ToplevelClose struct{ Handle Handle }

// ToplevelsSynced marks the end of the initial window list.
type ToplevelsSynced struct{}

func (ToplevelNew) toplevelEvent()     {}
func (ToplevelUpdate) toplevelEvent()  {}
func (ToplevelClose) toplevelEvent()   {}
func (ToplevelsSynced) toplevelEvent() {}
