package visibility

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestEvaluator_Unconditional(t *testing.T) {
	e := NewEvaluator(nil, nil)
	if e.Mode() != Unconditional {
		t.Fatalf("mode = %v", e.Mode())
	}
	if e.Results() != nil {
		t.Error("unconditional evaluator should have no results channel")
	}
	if err := e.Run(context.Background()); err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestEvaluator_DeliversInOrder(t *testing.T) {
	feed := make(chan bool)
	pred := PredicateFunc{
		Interval: time.Millisecond,
		Fn: func(ctx context.Context) (bool, error) {
			select {
			case v := <-feed:
				return v, nil
			case <-ctx.Done():
				return false, ctx.Err()
			}
		},
	}
	e := NewEvaluator(pred, nil)
	if e.Mode() != Conditional {
		t.Fatalf("mode = %v", e.Mode())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	for _, want := range []bool{true, false, true} {
		feed <- want
		select {
		case got := <-e.Results():
			if got != want {
				t.Errorf("result = %v, want %v", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for result")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestEvaluator_FailureEmitsNothing(t *testing.T) {
	var calls atomic.Int32
	pred := PredicateFunc{
		Interval: time.Millisecond,
		Fn: func(context.Context) (bool, error) {
			if calls.Add(1) == 1 {
				return false, errors.New("no shell")
			}
			return true, nil
		},
	}
	e := NewEvaluator(pred, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx)

	select {
	case v := <-e.Results():
		if !v {
			t.Error("failed evaluation produced a result")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result after recovery")
	}
	if calls.Load() < 2 {
		t.Errorf("calls = %d", calls.Load())
	}
}

func TestEvaluator_CancelStopsRun(t *testing.T) {
	pred := PredicateFunc{
		Fn: func(context.Context) (bool, error) { return true, nil },
	}
	e := NewEvaluator(pred, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	if v := <-e.Results(); !v {
		t.Fatal("expected true")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
	if _, ok := <-e.Results(); ok {
		t.Error("results channel should be closed")
	}
}
