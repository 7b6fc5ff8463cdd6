package script

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		mode     Mode
		interval time.Duration
		cmd      string
	}{
		{"pgrep foot", Poll, DefaultInterval, "pgrep foot"},
		{"poll:1000:pgrep foot", Poll, time.Second, "pgrep foot"},
		{"oneshot:notify-send hi", Oneshot, DefaultInterval, "notify-send hi"},
		{"250ms:test -f /tmp/x", Poll, 250 * time.Millisecond, "test -f /tmp/x"},
		{"echo a:b", Poll, DefaultInterval, "echo a:b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sc, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if sc.Mode != tt.mode || sc.Interval != tt.interval || sc.Cmd != tt.cmd {
				t.Errorf("Parse(%q) = %+v", tt.in, sc)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "poll:", "poll:500:"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
}

func TestOnce(t *testing.T) {
	ctx := context.Background()

	ok, err := Script{Cmd: "true"}.Once(ctx)
	if err != nil || !ok {
		t.Errorf("true: ok=%v err=%v", ok, err)
	}
	ok, err = Script{Cmd: "exit 3"}.Once(ctx)
	if err != nil || ok {
		t.Errorf("exit 3: ok=%v err=%v", ok, err)
	}
}

func TestOnce_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Script{Cmd: "sleep 5"}.Once(ctx)
	if !errors.Is(err, ErrPredicateFailed) {
		t.Errorf("expected ErrPredicateFailed, got %v", err)
	}
}

func TestOutput(t *testing.T) {
	out, err := Script{Cmd: "echo '  hello '"}.Output(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello" {
		t.Errorf("Output = %q", out)
	}
}

func TestPeriod(t *testing.T) {
	if got := (Script{Mode: Oneshot, Interval: time.Second}).Period(); got != 0 {
		t.Errorf("oneshot Period = %v", got)
	}
	if got := (Script{Interval: time.Second}).Period(); got != time.Second {
		t.Errorf("poll Period = %v", got)
	}
}
