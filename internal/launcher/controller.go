// Package launcher aggregates compositor toplevels into per-application
// items and exchanges updates and intents with the presentation loop.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mj1618/desktop-launcher/internal/model"
	"github.com/mj1618/desktop-launcher/internal/pipe"
	"github.com/mj1618/desktop-launcher/internal/platform"
)

// Options configures a Controller.
type Options struct {
	// Favorites are pinned app ids shown even without windows.
	Favorites []string
	Seat      platform.Seat
	Logger    *slog.Logger
}

// Controller owns the item set. Only the goroutine running Run mutates it;
// Snapshot and Item may be called from any goroutine.
type Controller struct {
	source   platform.ToplevelSource
	launcher platform.AppLauncher
	updates  pipe.Sender[Update]
	seat     platform.Seat
	logger   *slog.Logger

	mu    sync.RWMutex
	items map[string]*model.Item
	order []string

	// handles announced before their info arrived
	pending map[platform.Handle]struct{}
	// window id -> app id
	owners map[uint64]string

	ready     chan struct{}
	readyOnce sync.Once
}

// NewController creates a controller with the favorites pre-created.
func NewController(source platform.ToplevelSource, launcher platform.AppLauncher, updates pipe.Sender[Update], opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seat := opts.Seat
	if seat.Name == "" {
		seat = platform.DefaultSeat
	}
	c := &Controller{
		source:   source,
		launcher: launcher,
		updates:  updates,
		seat:     seat,
		logger:   logger,
		items:    make(map[string]*model.Item),
		pending:  make(map[platform.Handle]struct{}),
		owners:   make(map[uint64]string),
		ready:    make(chan struct{}),
	}
	for _, appID := range opts.Favorites {
		if _, ok := c.items[appID]; ok {
			continue
		}
		c.items[appID] = model.NewItem(appID, model.Closed, true)
		c.order = append(c.order, appID)
	}
	return c
}

// Ready is closed once the compositor's initial window list is processed.
func (c *Controller) Ready() <-chan struct{} { return c.ready }

// Run subscribes to the toplevel source and processes events and intents
// until ctx is done or one of the channels closes. A nil intents channel
// disables intent handling.
func (c *Controller) Run(ctx context.Context, intents <-chan Intent) error {
	events, err := c.source.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe toplevels: %w", err)
	}

	c.mu.RLock()
	initial := make([]Update, 0, len(c.order))
	for _, appID := range c.order {
		initial = append(initial, AddItem{Item: c.items[appID].View()})
	}
	c.mu.RUnlock()
	for _, u := range initial {
		if err := c.send(u); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("toplevel events: %w", pipe.ErrChannelClosed)
			}
			if err := c.HandleEvent(ev); err != nil {
				if errors.Is(err, pipe.ErrChannelClosed) {
					c.logger.Debug("update receiver gone, stopping controller")
					return err
				}
				if errors.Is(err, model.ErrMissingInfo) {
					c.logger.Debug("toplevel pending, waiting for info", "error", err)
					continue
				}
				c.logger.Warn("toplevel event failed", "error", err)
			}
		case intent, ok := <-intents:
			if !ok {
				c.logger.Debug("intent channel closed, stopping controller")
				return nil
			}
			c.HandleIntent(ctx, intent)
		}
	}
}

// HandleEvent applies one compositor event to the item set and emits the
// matching updates. ErrMissingInfo means the handle was parked until the
// compositor sends its info.
func (c *Controller) HandleEvent(ev platform.ToplevelEvent) error {
	switch ev := ev.(type) {
	case platform.ToplevelNew:
		return c.addToplevel(ev.Handle)
	case platform.ToplevelUpdate:
		if _, ok := c.pending[ev.Handle]; ok {
			return c.addToplevel(ev.Handle)
		}
		return c.updateToplevel(ev.Handle)
	case platform.ToplevelClose:
		delete(c.pending, ev.Handle)
		return c.removeToplevel(ev.Handle)
	case platform.ToplevelsSynced:
		c.readyOnce.Do(func() { close(c.ready) })
		return nil
	default:
		return fmt.Errorf("unknown toplevel event %T", ev)
	}
}

func (c *Controller) addToplevel(handle platform.Handle) error {
	info, ok := handle.Info()
	if !ok {
		c.pending[handle] = struct{}{}
		return fmt.Errorf("new toplevel: %w", model.ErrMissingInfo)
	}
	delete(c.pending, handle)

	c.mu.Lock()
	var update Update
	if item, exists := c.items[info.AppID]; exists {
		window, err := item.MergeToplevel(handle)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		c.owners[window.ID] = info.AppID
		update = AddWindow{Item: item.View(), WindowID: window.ID}
	} else {
		item, err := model.NewItemFromHandle(handle)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		c.items[info.AppID] = item
		c.order = append(c.order, info.AppID)
		c.owners[info.ID] = info.AppID
		update = AddItem{Item: item.View()}
	}
	c.mu.Unlock()

	c.logger.Debug("toplevel added", "id", info.ID, "app_id", info.AppID, "title", info.Title)
	return c.send(update)
}

func (c *Controller) updateToplevel(handle platform.Handle) error {
	info, ok := handle.Info()
	if !ok {
		return fmt.Errorf("update toplevel: %w", model.ErrMissingInfo)
	}

	appID, known := c.owners[info.ID]
	if !known {
		return c.addToplevel(handle)
	}
	if appID != info.AppID {
		// the window moved to another application id
		if err := c.removeToplevel(handle); err != nil {
			return err
		}
		return c.addToplevel(handle)
	}

	var updates []Update
	c.mu.Lock()
	item := c.items[appID]
	window, ok := item.Window(info.ID)
	if !ok {
		c.mu.Unlock()
		return c.addToplevel(handle)
	}
	if window.Name != info.Title {
		item.SetWindowName(info.ID, info.Title)
		updates = append(updates, Title{Item: item.View(), WindowID: info.ID, Title: info.Title})
	}
	if window.State.IsFocused() != info.Focused {
		item.SetWindowFocused(info.ID, info.Focused)
		updates = append(updates, Focus{Item: item.View(), WindowID: info.ID, Focused: info.Focused})
	}
	c.mu.Unlock()

	for _, u := range updates {
		if err := c.send(u); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) removeToplevel(handle platform.Handle) error {
	info, ok := handle.Info()
	if !ok {
		return nil
	}
	appID, known := c.owners[info.ID]
	if !known {
		return nil
	}
	delete(c.owners, info.ID)

	c.mu.Lock()
	item, exists := c.items[appID]
	if !exists {
		c.mu.Unlock()
		return nil
	}
	item.UnmergeToplevel(handle)

	var update Update
	if item.IsEmpty() && !item.Favorite {
		delete(c.items, appID)
		for i, id := range c.order {
			if id == appID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
		update = RemoveItem{AppID: appID}
	} else {
		update = RemoveWindow{Item: item.View(), WindowID: info.ID}
	}
	c.mu.Unlock()

	c.logger.Debug("toplevel removed", "id", info.ID, "app_id", appID)
	return c.send(update)
}

// HandleIntent carries out a user request. Failures are logged; the
// visible effect arrives later as compositor events.
func (c *Controller) HandleIntent(ctx context.Context, intent Intent) {
	switch in := intent.(type) {
	case FocusItem:
		c.mu.RLock()
		var window *model.Window
		if item, ok := c.items[in.AppID]; ok {
			window = item.FirstWindow()
		}
		c.mu.RUnlock()
		if window == nil {
			c.logger.Warn("focus requested for item without windows", "app_id", in.AppID)
			return
		}
		window.Focus(c.seat)
	case FocusWindow:
		c.mu.RLock()
		var window *model.Window
		if item, ok := c.items[in.AppID]; ok {
			window, _ = item.Window(in.WindowID)
		}
		c.mu.RUnlock()
		if window == nil {
			c.logger.Warn("focus requested for unknown window", "app_id", in.AppID, "window_id", in.WindowID)
			return
		}
		window.Focus(c.seat)
	case OpenItem:
		if c.launcher == nil {
			c.logger.Warn("no application launcher configured", "app_id", in.AppID)
			return
		}
		if err := c.launcher.Launch(ctx, in.AppID); err != nil {
			c.logger.Error("launch failed", "app_id", in.AppID, "error", err)
		}
	default:
		c.logger.Warn("unknown intent", "type", fmt.Sprintf("%T", intent))
	}
}

func (c *Controller) send(u Update) error {
	if c.updates == nil {
		return nil
	}
	if err := c.updates.Send(u); err != nil {
		return fmt.Errorf("send update: %w", err)
	}
	return nil
}

// Snapshot returns the current items in discovery order.
func (c *Controller) Snapshot() []model.ItemView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	views := make([]model.ItemView, 0, len(c.order))
	for _, appID := range c.order {
		views = append(views, c.items[appID].View())
	}
	return views
}

// Item returns the current state of one item.
func (c *Controller) Item(appID string) (model.ItemView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[appID]
	if !ok {
		return model.ItemView{}, false
	}
	return item.View(), true
}
