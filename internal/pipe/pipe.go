// Package pipe provides the one-way channels that carry values between the
// compositor-facing goroutines and the presentation loop.
//
// Senders never block: Queue grows its buffer and Latest replaces the
// value nobody has received yet.
package pipe

import (
	"errors"
	"sync"
)

// ErrChannelClosed is returned by Send once the receiving side has gone away.
var ErrChannelClosed = errors.New("channel closed")

// Sender is the sending half of a channel.
type Sender[T any] interface {
	Send(v T) error
}

// Queue is an unbounded FIFO channel. Values are delivered on Out in send order.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool

	out  chan T
	done chan struct{}
}

// NewQueue creates a queue and starts its delivery goroutine.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{
		out:  make(chan T),
		done: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.pump()
	return q
}

// Send appends v without blocking.
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrChannelClosed
	}
	q.items = append(q.items, v)
	q.cond.Signal()
	return nil
}

// Out returns the receive channel. It is closed after Close.
func (q *Queue[T]) Out() <-chan T { return q.out }

// Len returns the number of values buffered and not yet handed to a receiver.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close drops the receiving side. Buffered values are discarded and every
// later Send fails with ErrChannelClosed.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.items = nil
	close(q.done)
	q.cond.Broadcast()
}

func (q *Queue[T]) pump() {
	defer close(q.out)
	for {
		q.mu.Lock()
		for len(q.items) == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.closed {
			q.mu.Unlock()
			return
		}
		v := q.items[0]
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		q.mu.Unlock()

		select {
		case q.out <- v:
		case <-q.done:
			return
		}
	}
}

// Latest is a single-slot channel: an unreceived value is replaced by the
// next Send, so receivers always observe the most recent one.
type Latest[T any] struct {
	mu     sync.Mutex
	ch     chan T
	closed bool
}

// NewLatest creates an empty single-slot channel.
func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{ch: make(chan T, 1)}
}

// Send stores v, dropping the previous value if it was not received yet.
func (l *Latest[T]) Send(v T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrChannelClosed
	}
	select {
	case <-l.ch:
	default:
	}
	l.ch <- v
	return nil
}

// Out returns the receive channel. It is closed after Close.
func (l *Latest[T]) Out() <-chan T { return l.ch }

// Close closes the channel; later sends fail with ErrChannelClosed.
func (l *Latest[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.ch)
	}
}
