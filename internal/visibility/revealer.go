package visibility

import (
	"fmt"
	"strings"
	"time"
)

// TransitionType is the configured reveal animation, independent of the
// bar orientation.
type TransitionType int

const (
	TransitionNone TransitionType = iota
	TransitionCrossfade
	TransitionSlideStart
	TransitionSlideEnd
)

var transitionNames = map[TransitionType]string{
	TransitionNone:       "none",
	TransitionCrossfade:  "crossfade",
	TransitionSlideStart: "slide_start",
	TransitionSlideEnd:   "slide_end",
}

func (t TransitionType) String() string { return transitionNames[t] }

// ParseTransitionType reads a config value. Empty means slide_start.
func ParseTransitionType(s string) (TransitionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TransitionSlideStart, nil
	}
	for t, name := range transitionNames {
		if name == s {
			return t, nil
		}
	}
	return TransitionNone, fmt.Errorf("unknown transition type %q (expected none, crossfade, slide_start or slide_end)", s)
}

// Orientation is the bar layout direction.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ParseOrientation reads a config value. Empty means horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("unknown orientation %q", s)
	}
}

// RevealerTransition is the concrete animation a Revealer plays.
type RevealerTransition int

const (
	RevealNone RevealerTransition = iota
	RevealCrossfade
	RevealSlideLeft
	RevealSlideRight
	RevealSlideUp
	RevealSlideDown
)

// ForOrientation resolves the slide direction for the bar layout.
func (t TransitionType) ForOrientation(o Orientation) RevealerTransition {
	switch {
	case t == TransitionSlideStart && o == Horizontal:
		return RevealSlideLeft
	case t == TransitionSlideStart && o == Vertical:
		return RevealSlideUp
	case t == TransitionSlideEnd && o == Horizontal:
		return RevealSlideRight
	case t == TransitionSlideEnd && o == Vertical:
		return RevealSlideDown
	case t == TransitionCrossfade:
		return RevealCrossfade
	default:
		return RevealNone
	}
}

// DefaultTransitionDuration is used when no duration is configured.
const DefaultTransitionDuration = 250 * time.Millisecond

// Revealer animates a child between hidden and revealed. It is driven by
// the presentation loop and is not safe for concurrent use.
type Revealer struct {
	transition RevealerTransition
	duration   time.Duration

	reveal   bool
	progress float64
	revealed bool

	onChildRevealed []func()
}

func NewRevealer(transition RevealerTransition, duration time.Duration) *Revealer {
	return &Revealer{transition: transition, duration: duration}
}

func (r *Revealer) Transition() RevealerTransition { return r.transition }

// SetRevealChild sets the animation target. Without an animation, or when
// the child is already at the target, it completes immediately.
func (r *Revealer) SetRevealChild(reveal bool) {
	r.reveal = reveal
	if r.transition == RevealNone || r.duration <= 0 || !r.Animating() {
		r.finish()
	}
}

// RevealsChild reports the current target.
func (r *Revealer) RevealsChild() bool { return r.reveal }

// ChildRevealed reports whether the last completed animation revealed
// the child.
func (r *Revealer) ChildRevealed() bool { return r.revealed }

// Progress is 0 when the child is hidden and 1 when fully shown.
func (r *Revealer) Progress() float64 { return r.progress }

// Animating reports whether the target has not been reached yet.
func (r *Revealer) Animating() bool {
	return r.progress != r.target()
}

// Advance moves the animation forward by dt.
func (r *Revealer) Advance(dt time.Duration) {
	if !r.Animating() {
		return
	}
	step := float64(dt) / float64(r.duration)
	if r.reveal {
		r.progress += step
	} else {
		r.progress -= step
	}
	if (r.reveal && r.progress >= 1) || (!r.reveal && r.progress <= 0) {
		r.finish()
	}
}

// ConnectChildRevealedNotify registers fn to run each time the target is
// reached.
func (r *Revealer) ConnectChildRevealedNotify(fn func()) {
	r.onChildRevealed = append(r.onChildRevealed, fn)
}

func (r *Revealer) target() float64 {
	if r.reveal {
		return 1
	}
	return 0
}

func (r *Revealer) finish() {
	r.progress = r.target()
	r.revealed = r.reveal
	for _, fn := range r.onChildRevealed {
		fn()
	}
}
