package pipe

import (
	"errors"
	"testing"
	"time"
)

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for value")
	}
	panic("unreachable")
}

func TestQueue_PreservesOrder(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	for i := 0; i < 1000; i++ {
		if err := q.Send(i); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 1000; i++ {
		if got := recv(t, q.Out()); got != i {
			t.Fatalf("value %d: got %d", i, got)
		}
	}
}

func TestQueue_SendNeverBlocksWithoutReceiver(t *testing.T) {
	q := NewQueue[string]()
	defer q.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			q.Send("x")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Send blocked with no receiver")
	}
	// one value may already be held by the delivery goroutine
	if n := q.Len(); n < 9999 {
		t.Errorf("expected buffered values, got %d", n)
	}
}

func TestQueue_CloseFailsSendAndClosesOut(t *testing.T) {
	q := NewQueue[int]()
	q.Send(1)
	q.Close()
	q.Close()

	if err := q.Send(2); !errors.Is(err, ErrChannelClosed) {
		t.Errorf("Send after Close: got %v, want ErrChannelClosed", err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-q.Out():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("Out was not closed")
		}
	}
}

func TestLatest_KeepsOnlyNewest(t *testing.T) {
	l := NewLatest[bool]()
	l.Send(true)
	l.Send(false)
	l.Send(true)

	if got := recv(t, l.Out()); got != true {
		t.Errorf("got %v, want true", got)
	}
	select {
	case v := <-l.Out():
		t.Errorf("expected empty slot, got %v", v)
	default:
	}
}

func TestLatest_Close(t *testing.T) {
	l := NewLatest[int]()
	l.Close()
	l.Close()
	if err := l.Send(1); !errors.Is(err, ErrChannelClosed) {
		t.Errorf("got %v, want ErrChannelClosed", err)
	}
	if _, ok := <-l.Out(); ok {
		t.Error("Out should be closed")
	}
}
