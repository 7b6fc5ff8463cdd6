package platform

import "testing"

func TestToplevel_PendingUntilResolved(t *testing.T) {
	tl := NewToplevel("abc", nil)
	if _, ok := tl.Info(); ok {
		t.Fatal("new toplevel should be pending")
	}
	if tl.Update(func(info *ToplevelInfo) { info.Title = "x" }) {
		t.Error("Update on pending toplevel should report false")
	}

	tl.Resolve(ToplevelInfo{ID: 7, Title: "Terminal", AppID: "foot", Open: true})
	info, ok := tl.Info()
	if !ok {
		t.Fatal("resolved toplevel should have info")
	}
	if info.ID != 7 || info.AppID != "foot" {
		t.Errorf("got %+v", info)
	}
	if tl.Pending() {
		t.Error("Pending() should be false after Resolve")
	}
}

func TestToplevel_UpdateMutatesInfo(t *testing.T) {
	tl := NewResolvedToplevel("abc", ToplevelInfo{ID: 1, Title: "a", Open: true}, nil)
	if !tl.Update(func(info *ToplevelInfo) { info.Focused = true }) {
		t.Fatal("Update should succeed on resolved toplevel")
	}
	info, _ := tl.Info()
	if !info.Focused {
		t.Error("expected focused after update")
	}
}

func TestToplevel_FocusCallsBackend(t *testing.T) {
	var gotKey string
	var gotSeat Seat
	tl := NewToplevel("0xdead", func(t *Toplevel, seat Seat) {
		gotKey = t.Key()
		gotSeat = seat
	})
	tl.Focus(Seat{Name: "seat1"})
	if gotKey != "0xdead" || gotSeat.Name != "seat1" {
		t.Errorf("focus callback got key=%q seat=%+v", gotKey, gotSeat)
	}

	// nil focus func is a no-op
	NewToplevel("x", nil).Focus(DefaultSeat)
}
