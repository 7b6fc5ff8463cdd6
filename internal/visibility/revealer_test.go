package visibility

import (
	"testing"
	"time"
)

func TestParseTransitionType(t *testing.T) {
	tests := []struct {
		in   string
		want TransitionType
	}{
		{"", TransitionSlideStart},
		{"none", TransitionNone},
		{"Crossfade", TransitionCrossfade},
		{"slide_end", TransitionSlideEnd},
	}
	for _, tt := range tests {
		got, err := ParseTransitionType(tt.in)
		if err != nil {
			t.Fatalf("ParseTransitionType(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTransitionType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseTransitionType("wobble"); err == nil {
		t.Error("expected error for unknown transition")
	}
}

func TestForOrientation(t *testing.T) {
	tests := []struct {
		t    TransitionType
		o    Orientation
		want RevealerTransition
	}{
		{TransitionSlideStart, Horizontal, RevealSlideLeft},
		{TransitionSlideStart, Vertical, RevealSlideUp},
		{TransitionSlideEnd, Horizontal, RevealSlideRight},
		{TransitionSlideEnd, Vertical, RevealSlideDown},
		{TransitionCrossfade, Vertical, RevealCrossfade},
		{TransitionNone, Horizontal, RevealNone},
	}
	for _, tt := range tests {
		if got := tt.t.ForOrientation(tt.o); got != tt.want {
			t.Errorf("%v.ForOrientation(%v) = %v, want %v", tt.t, tt.o, got, tt.want)
		}
	}
}

func TestRevealer_Animates(t *testing.T) {
	r := NewRevealer(RevealSlideLeft, 100*time.Millisecond)
	notified := 0
	r.ConnectChildRevealedNotify(func() { notified++ })

	r.SetRevealChild(true)
	if !r.Animating() || r.ChildRevealed() {
		t.Fatal("reveal should start an animation")
	}
	r.Advance(50 * time.Millisecond)
	if p := r.Progress(); p < 0.49 || p > 0.51 {
		t.Errorf("progress after half = %v", p)
	}
	r.Advance(60 * time.Millisecond)
	if r.Animating() || !r.ChildRevealed() || r.Progress() != 1 {
		t.Errorf("animation should be complete: progress=%v", r.Progress())
	}
	if notified != 1 {
		t.Errorf("notified %d times, want 1", notified)
	}
	r.Advance(time.Second)
	if notified != 1 {
		t.Errorf("idle Advance should not notify")
	}
}

func TestRevealer_NoTransitionIsInstant(t *testing.T) {
	r := NewRevealer(RevealNone, time.Second)
	r.SetRevealChild(true)
	if r.Animating() || !r.ChildRevealed() {
		t.Error("RevealNone should reveal immediately")
	}
}

func TestShowIf_HideWaitsForAnimation(t *testing.T) {
	c := &Container{}
	r := NewRevealer(RevealCrossfade, 100*time.Millisecond)
	s := InstallShowIf(c, r, Conditional)
	if c.Visible() {
		t.Fatal("conditional container should start hidden")
	}

	s.Apply(true)
	if !c.Visible() {
		t.Fatal("true should show the container immediately")
	}
	r.Advance(200 * time.Millisecond)

	s.Apply(false)
	if !c.Visible() {
		t.Fatal("container hidden before the hide animation finished")
	}
	r.Advance(50 * time.Millisecond)
	if !c.Visible() {
		t.Fatal("container hidden mid-animation")
	}
	r.Advance(50 * time.Millisecond)
	if c.Visible() {
		t.Error("container should hide once the animation completes")
	}
}

func TestShowIf_QuickSuccessionEndsVisible(t *testing.T) {
	c := &Container{}
	r := NewRevealer(RevealSlideUp, 100*time.Millisecond)
	s := InstallShowIf(c, r, Conditional)

	s.Apply(true)
	r.Advance(30 * time.Millisecond)
	s.Apply(false)
	r.Advance(10 * time.Millisecond)
	s.Apply(true)
	for i := 0; i < 20; i++ {
		r.Advance(10 * time.Millisecond)
	}

	if !c.Visible() || !r.ChildRevealed() || !r.RevealsChild() {
		t.Errorf("visible=%v revealed=%v target=%v", c.Visible(), r.ChildRevealed(), r.RevealsChild())
	}
}

func TestShowIf_TrueFalseBeforeAnimating(t *testing.T) {
	c := &Container{}
	r := NewRevealer(RevealSlideLeft, 100*time.Millisecond)
	s := InstallShowIf(c, r, Conditional)

	s.Apply(true)
	s.Apply(false)
	if c.Visible() {
		t.Error("container should hide when the child never started revealing")
	}
}

func TestShowIf_Unconditional(t *testing.T) {
	c := &Container{}
	r := NewRevealer(RevealSlideLeft, 100*time.Millisecond)
	InstallShowIf(c, r, Unconditional)
	if !c.Visible() || !r.ChildRevealed() {
		t.Error("unconditional element should be visible and revealed")
	}
}
