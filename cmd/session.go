package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mj1618/desktop-launcher/internal/launcher"
	"github.com/mj1618/desktop-launcher/internal/pipe"
	"github.com/mj1618/desktop-launcher/internal/platform"
)

// session is a running controller attached to the configured backend.
type session struct {
	provider   *platform.Provider
	controller *launcher.Controller
	updates    *pipe.Queue[launcher.Update]
	intents    *pipe.Queue[launcher.Intent]

	cancel context.CancelFunc
	done   chan error
}

// startSession connects to the backend and runs the controller until
// the returned session is closed or ctx is done.
func startSession(ctx context.Context) (*session, error) {
	provider, err := platform.NewProvider(cfg.Backend, platform.Options{
		ScriptFile:    cfg.ScriptFile,
		LaunchCommand: cfg.Launcher.LaunchCommand,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	updates := pipe.NewQueue[launcher.Update]()
	intents := pipe.NewQueue[launcher.Intent]()
	controller := launcher.NewController(provider.Toplevels, provider.Launcher, updates, launcher.Options{
		Favorites: cfg.Launcher.Favorites,
		Seat:      platform.Seat{Name: cfg.Seat},
		Logger:    logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	s := &session{
		provider:   provider,
		controller: controller,
		updates:    updates,
		intents:    intents,
		cancel:     cancel,
		done:       make(chan error, 1),
	}
	go func() {
		s.done <- controller.Run(ctx, intents.Out())
	}()
	return s, nil
}

// waitReady blocks until the backend has reported its initial windows.
func (s *session) waitReady(ctx context.Context, timeout time.Duration) error {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-s.controller.Ready():
		return nil
	case err := <-s.done:
		s.done <- err
		if err == nil {
			err = errors.New("controller stopped")
		}
		return fmt.Errorf("%s backend: %w", s.provider.Name, err)
	case <-t.C:
		return fmt.Errorf("%s backend did not report its windows within %s", s.provider.Name, timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done delivers the controller result once it stops.
func (s *session) Done() <-chan error { return s.done }

// Close stops the controller. Focus requests still on their way to the
// compositor are allowed to finish first.
func (s *session) Close() {
	if f, ok := s.provider.Toplevels.(platform.Flusher); ok {
		f.Flush()
	}
	s.cancel()
	s.intents.Close()
	s.updates.Close()
}
