package scripted

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/mj1618/desktop-launcher/internal/pipe"
	"github.com/mj1618/desktop-launcher/internal/platform"
)

// Compositor replays a Script and implements both ToplevelSource and
// AppLauncher.
type Compositor struct {
	script *Script
	logger *slog.Logger

	mu      sync.Mutex
	q       *pipe.Queue[platform.ToplevelEvent]
	windows map[uint64]*platform.Toplevel
	active  uint64
	nextID  uint64
	synced  bool
}

func New(script *Script, logger *slog.Logger) *Compositor {
	if script == nil {
		script = &Script{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Compositor{
		script:  script,
		logger:  logger,
		windows: make(map[uint64]*platform.Toplevel),
		nextID:  1000,
	}
	for _, st := range script.Steps {
		if st.ID >= c.nextID {
			c.nextID = st.ID + 1
		}
	}
	return c
}

// Subscribe starts the replay. The channel stays open after the last step
// so that focus and launch reactions keep flowing, and closes when ctx is
// done.
func (c *Compositor) Subscribe(ctx context.Context) (<-chan platform.ToplevelEvent, error) {
	c.mu.Lock()
	if c.q != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("scripted compositor already subscribed")
	}
	q := pipe.NewQueue[platform.ToplevelEvent]()
	c.q = q
	c.mu.Unlock()

	go func() {
		defer q.Close()
		c.play(ctx)
		<-ctx.Done()
	}()
	return q.Out(), nil
}

func (c *Compositor) play(ctx context.Context) {
	for _, st := range c.script.Steps {
		if st.Delay > 0 {
			t := time.NewTimer(st.Delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		}
		c.mu.Lock()
		c.apply(st)
		c.mu.Unlock()
	}
	c.mu.Lock()
	if !c.synced {
		c.apply(Step{Kind: KindSync})
	}
	c.mu.Unlock()
}

// apply runs one step. c.mu must be held.
func (c *Compositor) apply(st Step) {
	switch st.Kind {
	case KindSync:
		c.synced = true
		c.emit(platform.ToplevelsSynced{})

	case KindOpen:
		if _, exists := c.windows[st.ID]; exists {
			c.logger.Warn("scripted window already open", "id", st.ID)
			return
		}
		h := platform.NewToplevel(strconv.FormatUint(st.ID, 10), c.focus)
		if !st.Pending {
			h.Resolve(platform.ToplevelInfo{ID: st.ID, AppID: st.AppID, Title: st.Title, Open: true})
		}
		c.windows[st.ID] = h
		c.emit(platform.ToplevelNew{Handle: h})
		if st.Focused {
			c.setActive(st.ID)
		}

	case KindResolve:
		h, ok := c.windows[st.ID]
		if !ok {
			return
		}
		h.Resolve(platform.ToplevelInfo{ID: st.ID, AppID: st.AppID, Title: st.Title, Open: true, Focused: c.active == st.ID})
		c.emit(platform.ToplevelUpdate{Handle: h})

	case KindTitle:
		h, ok := c.windows[st.ID]
		if !ok {
			return
		}
		if h.Update(func(info *platform.ToplevelInfo) { info.Title = st.Title }) {
			c.emit(platform.ToplevelUpdate{Handle: h})
		}

	case KindFocus:
		c.setActive(st.ID)

	case KindClose:
		h, ok := c.windows[st.ID]
		if !ok {
			return
		}
		delete(c.windows, st.ID)
		if c.active == st.ID {
			c.active = 0
		}
		c.emit(platform.ToplevelClose{Handle: h})
	}
}

// setActive moves focus to id. c.mu must be held.
func (c *Compositor) setActive(id uint64) {
	if c.active == id {
		return
	}
	if h, ok := c.windows[c.active]; ok {
		if h.Update(func(info *platform.ToplevelInfo) { info.Focused = false }) {
			c.emit(platform.ToplevelUpdate{Handle: h})
		}
	}
	c.active = id
	if h, ok := c.windows[id]; ok {
		if h.Update(func(info *platform.ToplevelInfo) { info.Focused = true }) {
			c.emit(platform.ToplevelUpdate{Handle: h})
		}
	}
}

func (c *Compositor) emit(ev platform.ToplevelEvent) {
	if c.q == nil {
		return
	}
	if err := c.q.Send(ev); err != nil {
		c.logger.Debug("scripted event dropped", "type", fmt.Sprintf("%T", ev), "error", err)
	}
}

func (c *Compositor) focus(t *platform.Toplevel, seat platform.Seat) {
	info, ok := t.Info()
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, open := c.windows[info.ID]; !open {
		return
	}
	c.logger.Debug("scripted focus", "id", info.ID, "seat", seat.Name)
	c.setActive(info.ID)
}

// Launch opens a new focused window for appID.
func (c *Compositor) Launch(_ context.Context, appID string) error {
	if appID == "" {
		return fmt.Errorf("launch: empty app id")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.q == nil {
		return fmt.Errorf("launch %s: compositor not running", appID)
	}
	id := c.nextID
	c.nextID++
	title := c.script.Titles[appID]
	if title == "" {
		title = appID
	}
	c.apply(Step{Kind: KindOpen, ID: id, AppID: appID, Title: title, Focused: true})
	return nil
}
