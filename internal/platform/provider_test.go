package platform

import (
	"context"
	"errors"
	"testing"
)

type nopSource struct{}

func (nopSource) Subscribe(ctx context.Context) (<-chan ToplevelEvent, error) {
	ch := make(chan ToplevelEvent)
	close(ch)
	return ch, nil
}

func TestNewProvider_Registered(t *testing.T) {
	Register("test-nop", func(opts Options) (*Provider, error) {
		return &Provider{Name: "test-nop", Toplevels: nopSource{}}, nil
	})

	p, err := NewProvider("test-nop", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test-nop" {
		t.Errorf("name: got %q, want %q", p.Name, "test-nop")
	}

	found := false
	for _, name := range Backends() {
		if name == "test-nop" {
			found = true
		}
	}
	if !found {
		t.Error("test-nop missing from Backends()")
	}
}

func TestNewProvider_UnknownBackend(t *testing.T) {
	_, err := NewProvider("no-such-backend", Options{})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}
