package launcher

import (
	"github.com/mj1618/desktop-launcher/internal/model"
	"github.com/mj1618/desktop-launcher/internal/platform"
)

// Update is a message for the presentation loop. The set of
// implementations is closed; consumers switch over the concrete types.
type Update interface {
	isUpdate()
}

// AddItem announces a new item.
type AddItem struct{ Item model.ItemView }

// AddWindow reports a window joining an existing item.
type AddWindow struct {
	Item     model.ItemView
	WindowID uint64
}

// RemoveItem reports that an item is gone.
type RemoveItem struct{ AppID string }

// RemoveWindow reports a window leaving an item that is kept.
type RemoveWindow struct {
	Item     model.ItemView
	WindowID uint64
}

// Focus reports a window gaining or losing focus.
type Focus struct {
	Item     model.ItemView
	WindowID uint64
	Focused  bool
}

// Title reports a window title change.
type Title struct {
	Item     model.ItemView
	WindowID uint64
	Title    string
}

// Hover selects the item whose windows the popup lists.
type Hover struct{ AppID string }

// OpenPopup shows the window-selection popup next to the hovered button.
type OpenPopup struct{ Geometry platform.Bounds }

// ClosePopup hides the window-selection popup.
type ClosePopup struct{}

func (AddItem) isUpdate()      {}
func (AddWindow) isUpdate()    {}
func (RemoveItem) isUpdate()   {}
func (RemoveWindow) isUpdate() {}
func (Focus) isUpdate()        {}
func (Title) isUpdate()        {}
func (Hover) isUpdate()        {}
func (OpenPopup) isUpdate()    {}
func (ClosePopup) isUpdate()   {}

// ItemOf returns the item snapshot carried by u, if any.
func ItemOf(u Update) (model.ItemView, bool) {
	switch u := u.(type) {
	case AddItem:
		return u.Item, true
	case AddWindow:
		return u.Item, true
	case RemoveWindow:
		return u.Item, true
	case Focus:
		return u.Item, true
	case Title:
		return u.Item, true
	default:
		return model.ItemView{}, false
	}
}

// Intent is a user request from the presentation loop to the controller.
// The set of implementations is closed.
type Intent interface {
	isIntent()
}

// OpenItem launches a new instance of the application.
type OpenItem struct{ AppID string }

// FocusItem focuses the application's first window.
type FocusItem struct{ AppID string }

// FocusWindow focuses one window picked from the popup.
type FocusWindow struct {
	AppID    string
	WindowID uint64
}

func (OpenItem) isIntent()    {}
func (FocusItem) isIntent()   {}
func (FocusWindow) isIntent() {}
