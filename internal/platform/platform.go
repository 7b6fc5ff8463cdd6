package platform

import "context"

// Handle is a compositor reference to one toplevel window.
type Handle interface {
	// Info returns the latest protocol-reported state of the window.
	// ok is false while the handle is still pending, i.e. the compositor
	// announced the window before sending its descriptive info.
	Info() (info ToplevelInfo, ok bool)

	// Focus asks the compositor to activate the window on the given seat.
	// The result is only observable through a later ToplevelUpdate.
	Focus(seat Seat)
}

// ToplevelSource streams window-management events from the compositor.
type ToplevelSource interface {
	// Subscribe delivers the existing toplevels as ToplevelNew events,
	// followed by ToplevelsSynced, then live changes until ctx is done.
	// The returned channel is closed when the stream ends.
	Subscribe(ctx context.Context) (<-chan ToplevelEvent, error)
}

// Flusher is implemented by sources whose focus requests complete in the
// background. Flush blocks until those requests are done.
type Flusher interface {
	Flush()
}

// AppLauncher starts a new instance of an application.
type AppLauncher interface {
	Launch(ctx context.Context, appID string) error
}
