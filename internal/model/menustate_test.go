package model

import (
	"sync"
	"testing"
)

func TestMenuState_HoverDecision(t *testing.T) {
	tests := []struct {
		windows int
		want    HoverAction
	}{
		{0, HidePopup},
		{1, HidePopup},
		{2, ShowPopup},
		{5, ShowPopup},
	}
	for _, tt := range tests {
		m := NewMenuState(tt.windows)
		if got := m.HoverDecision(); got != tt.want {
			t.Errorf("windows=%d: got %v, want %v", tt.windows, got, tt.want)
		}
	}
}

func TestMenuState_ConcurrentAccess(t *testing.T) {
	m := NewMenuState(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			m.SetWindowCount(n)
		}(i)
		go func() {
			defer wg.Done()
			_ = m.HoverDecision()
		}()
	}
	wg.Wait()
	if n := m.WindowCount(); n < 0 || n > 7 {
		t.Errorf("unexpected count %d", n)
	}
}
