package hyprland

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mj1618/desktop-launcher/internal/pipe"
	"github.com/mj1618/desktop-launcher/internal/platform"
)

const dispatchTimeout = 2 * time.Second

// Source streams toplevel events from Hyprland.
type Source struct {
	client *Client
	logger *slog.Logger

	// in-flight focus dispatches
	inflight sync.WaitGroup
}

func NewSource(client *Client, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{client: client, logger: logger}
}

// Subscribe connects to the event socket, announces the current windows
// and then follows socket events until ctx is done or Hyprland goes away.
func (s *Source) Subscribe(ctx context.Context) (<-chan platform.ToplevelEvent, error) {
	conn, scanner, err := s.client.Events(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.client.Clients(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}

	q := pipe.NewQueue[platform.ToplevelEvent]()
	tr := newTracker(s.focus)
	s.forward(q, tr.seed(clients))

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	go func() {
		defer q.Close()
		defer close(done)
		defer conn.Close()
		for scanner.Scan() {
			ev, ok := ParseEvent(scanner.Text())
			if !ok {
				continue
			}
			events, refresh := tr.handle(ev)
			if !s.forward(q, events) {
				return
			}
			if !refresh {
				continue
			}
			clients, err := s.client.Clients(ctx)
			if err != nil {
				s.logger.Warn("failed to refresh hyprland clients", "error", err)
				continue
			}
			if !s.forward(q, tr.resolve(clients)) {
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			s.logger.Error("hyprland event socket failed", "error", err)
		}
	}()

	return q.Out(), nil
}

func (s *Source) forward(q *pipe.Queue[platform.ToplevelEvent], events []platform.ToplevelEvent) bool {
	for _, ev := range events {
		if err := q.Send(ev); err != nil {
			return false
		}
	}
	return true
}

// focus asks Hyprland to focus the window and returns without waiting
// for the reply. Failures are logged; the result shows up as an
// activewindowv2 event.
func (s *Source) focus(t *platform.Toplevel, _ platform.Seat) {
	address := t.Key()
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := s.client.Dispatch(ctx, "focuswindow address:"+address); err != nil {
			s.logger.Warn("focus request failed", "address", address, "error", err)
		}
	}()
}

// Flush waits for focus requests that are still being dispatched.
func (s *Source) Flush() {
	s.inflight.Wait()
}
