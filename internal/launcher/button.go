package launcher

import (
	"fmt"
	"log/slog"

	"github.com/mj1618/desktop-launcher/internal/model"
	"github.com/mj1618/desktop-launcher/internal/pipe"
	"github.com/mj1618/desktop-launcher/internal/platform"
)

// AppearanceOptions controls how item buttons are labelled.
type AppearanceOptions struct {
	ShowNames bool
}

// ItemButton is the toolkit-independent state behind one bar button.
// It lives on the presentation side; its window count is refreshed by Sync
// on every update delivered for the item.
type ItemButton struct {
	AppID      string
	Persistent bool
	ShowNames  bool

	label   string
	open    bool
	focused bool
	menu    *model.MenuState

	updates pipe.Sender[Update]
	intents pipe.Sender[Intent]
	logger  *slog.Logger
}

// NewItemButton builds a button for item. Hover messages go to updates and
// click intents to intents.
func NewItemButton(item model.ItemView, appearance AppearanceOptions, updates pipe.Sender[Update], intents pipe.Sender[Intent], logger *slog.Logger) *ItemButton {
	if logger == nil {
		logger = slog.Default()
	}
	b := &ItemButton{
		AppID:      item.AppID,
		Persistent: item.Favorite,
		ShowNames:  appearance.ShowNames,
		menu:       model.NewMenuState(item.WindowCount),
		updates:    updates,
		intents:    intents,
		logger:     logger,
	}
	b.Sync(item)
	return b
}

// Sync refreshes the cached label, state classes and window count.
func (b *ItemButton) Sync(item model.ItemView) {
	b.label = item.Name
	b.Persistent = item.Favorite
	b.SetOpen(item.State.IsOpen())
	b.SetFocused(item.State.IsFocused())
	b.menu.SetWindowCount(item.WindowCount)
}

// Label is the text shown on the button.
func (b *ItemButton) Label() string {
	if !b.ShowNames || b.label == "" {
		return b.AppID
	}
	return b.label
}

func (b *ItemButton) IsOpen() bool { return b.open }

func (b *ItemButton) IsFocused() bool { return b.focused }

func (b *ItemButton) WindowCount() int { return b.menu.WindowCount() }

// SetOpen toggles the open class. Closing also clears focus.
func (b *ItemButton) SetOpen(open bool) {
	b.open = open
	if !open {
		b.SetFocused(false)
	}
}

func (b *ItemButton) SetFocused(focused bool) {
	b.focused = focused
}

// Classes returns the style classes for the button's current state.
func (b *ItemButton) Classes() []string {
	classes := []string{"item"}
	if b.Persistent {
		classes = append(classes, "favorite")
	}
	if b.open {
		classes = append(classes, "open")
	}
	if b.focused {
		classes = append(classes, "focused")
	}
	return classes
}

// Click focuses a running application or launches a closed one.
func (b *ItemButton) Click() {
	var intent Intent
	if b.open {
		intent = FocusItem{AppID: b.AppID}
	} else {
		intent = OpenItem{AppID: b.AppID}
	}
	trySend(b.logger, b.intents, intent)
}

// Enter handles the pointer entering the button at geometry. Items with
// several windows open the selection popup; others close it.
func (b *ItemButton) Enter(geometry platform.Bounds) {
	switch b.menu.HoverDecision() {
	case model.ShowPopup:
		b.trySendUpdate(Hover{AppID: b.AppID})
		b.trySendUpdate(OpenPopup{Geometry: geometry})
	case model.HidePopup:
		b.trySendUpdate(ClosePopup{})
	}
}

func (b *ItemButton) trySendUpdate(u Update) {
	trySend(b.logger, b.updates, u)
}

// trySend delivers v without blocking, logging instead of failing.
func trySend[T any](logger *slog.Logger, s pipe.Sender[T], v T) {
	if s == nil {
		return
	}
	if err := s.Send(v); err != nil {
		logger.Error("failed to send message", "type", fmt.Sprintf("%T", v), "error", err)
	}
}
