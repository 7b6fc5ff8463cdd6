package hyprland

import (
	"strings"

	"github.com/mj1618/desktop-launcher/internal/platform"
)

// tracker turns Hyprland client lists and socket events into toplevel
// events. It owns the handles and is used from one goroutine.
type tracker struct {
	focus   platform.FocusFunc
	windows map[uint64]*platform.Toplevel
	active  uint64
}

func newTracker(focus platform.FocusFunc) *tracker {
	return &tracker{focus: focus, windows: make(map[uint64]*platform.Toplevel)}
}

// seed announces the windows that existed before we subscribed.
func (t *tracker) seed(clients []ClientInfo) []platform.ToplevelEvent {
	var events []platform.ToplevelEvent
	for _, cl := range clients {
		id, err := ParseAddress(cl.Address)
		if err != nil {
			continue
		}
		focused := cl.FocusHistoryID == 0
		if focused {
			t.active = id
		}
		h := platform.NewToplevel(FormatAddress(id), t.focus)
		if cl.Class != "" {
			h.Resolve(infoFor(id, cl.Class, cl.Title, focused))
		}
		t.windows[id] = h
		events = append(events, platform.ToplevelNew{Handle: h})
	}
	return append(events, platform.ToplevelsSynced{})
}

// handle applies one socket event. refresh asks the caller to fetch the
// client list and pass it to resolve, because a window is still pending.
func (t *tracker) handle(ev Event) (events []platform.ToplevelEvent, refresh bool) {
	switch ev.Name {
	case "openwindow":
		// ADDR,WORKSPACE,CLASS,TITLE
		parts := strings.SplitN(ev.Data, ",", 4)
		if len(parts) < 4 {
			return nil, false
		}
		id, err := ParseAddress(parts[0])
		if err != nil {
			return nil, false
		}
		if _, exists := t.windows[id]; exists {
			return nil, false
		}
		h := platform.NewToplevel(FormatAddress(id), t.focus)
		if parts[2] != "" {
			h.Resolve(infoFor(id, parts[2], parts[3], id == t.active))
		} else {
			refresh = true
		}
		t.windows[id] = h
		return []platform.ToplevelEvent{platform.ToplevelNew{Handle: h}}, refresh

	case "closewindow":
		id, err := ParseAddress(ev.Data)
		if err != nil {
			return nil, false
		}
		h, ok := t.windows[id]
		if !ok {
			return nil, false
		}
		delete(t.windows, id)
		if t.active == id {
			t.active = 0
		}
		return []platform.ToplevelEvent{platform.ToplevelClose{Handle: h}}, false

	case "activewindowv2":
		var next uint64
		if id, err := ParseAddress(ev.Data); err == nil {
			next = id
		}
		if next == t.active {
			return nil, false
		}
		if h, ok := t.windows[t.active]; ok {
			if h.Update(func(info *platform.ToplevelInfo) { info.Focused = false }) {
				events = append(events, platform.ToplevelUpdate{Handle: h})
			}
		}
		t.active = next
		if h, ok := t.windows[next]; ok {
			if h.Update(func(info *platform.ToplevelInfo) { info.Focused = true }) {
				events = append(events, platform.ToplevelUpdate{Handle: h})
			} else {
				refresh = true
			}
		}
		return events, refresh

	case "windowtitlev2":
		// ADDR,TITLE
		addr, title, ok := strings.Cut(ev.Data, ",")
		if !ok {
			return nil, false
		}
		id, err := ParseAddress(addr)
		if err != nil {
			return nil, false
		}
		h, ok := t.windows[id]
		if !ok {
			return nil, false
		}
		changed := false
		resolved := h.Update(func(info *platform.ToplevelInfo) {
			changed = info.Title != title
			info.Title = title
		})
		if !resolved {
			return nil, true
		}
		if changed {
			events = append(events, platform.ToplevelUpdate{Handle: h})
		}
		return events, false
	}
	return nil, false
}

// resolve fills in pending handles from a fresh client list.
func (t *tracker) resolve(clients []ClientInfo) []platform.ToplevelEvent {
	var events []platform.ToplevelEvent
	for _, cl := range clients {
		if cl.Class == "" {
			continue
		}
		id, err := ParseAddress(cl.Address)
		if err != nil {
			continue
		}
		h, ok := t.windows[id]
		if !ok || !h.Pending() {
			continue
		}
		h.Resolve(infoFor(id, cl.Class, cl.Title, id == t.active))
		events = append(events, platform.ToplevelUpdate{Handle: h})
	}
	return events
}

func infoFor(id uint64, class, title string, focused bool) platform.ToplevelInfo {
	return platform.ToplevelInfo{ID: id, AppID: class, Title: title, Open: true, Focused: focused}
}
