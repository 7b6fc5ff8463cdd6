// Package visibility drives conditional show/hide of a bar element from a
// background predicate, with an animated reveal on the presentation side.
package visibility

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/desktop-launcher/internal/pipe"
)

// ErrPredicateEvaluation wraps failures of the predicate mechanism itself.
var ErrPredicateEvaluation = errors.New("predicate evaluation failed")

// Predicate decides whether an element should be visible.
type Predicate interface {
	Evaluate(ctx context.Context) (bool, error)
	// Period is the delay between evaluations. Zero evaluates once.
	Period() time.Duration
}

// PredicateFunc adapts a function with a fixed period to Predicate.
type PredicateFunc struct {
	Fn       func(ctx context.Context) (bool, error)
	Interval time.Duration
}

func (p PredicateFunc) Evaluate(ctx context.Context) (bool, error) { return p.Fn(ctx) }

func (p PredicateFunc) Period() time.Duration { return p.Interval }

// Mode is the evaluator state.
type Mode int

const (
	// Unconditional elements are always visible. The mode never changes.
	Unconditional Mode = iota
	// Conditional elements follow the predicate results.
	Conditional
)

func (m Mode) String() string {
	if m == Conditional {
		return "conditional"
	}
	return "unconditional"
}

// Evaluator runs a predicate in the background and publishes its results.
type Evaluator struct {
	pred    Predicate
	results *pipe.Latest[bool]
	logger  *slog.Logger
}

// NewEvaluator returns an evaluator for pred. A nil pred yields an
// Unconditional evaluator.
func NewEvaluator(pred Predicate, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Evaluator{pred: pred, logger: logger}
	if pred != nil {
		e.results = pipe.NewLatest[bool]()
	}
	return e
}

func (e *Evaluator) Mode() Mode {
	if e.pred == nil {
		return Unconditional
	}
	return Conditional
}

// Results delivers one value per successful evaluation, in evaluation
// order. An unreceived result is replaced by a newer one. The channel is
// closed when Run returns. It is nil for Unconditional evaluators.
func (e *Evaluator) Results() <-chan bool {
	if e.results == nil {
		return nil
	}
	return e.results.Out()
}

// Run evaluates the predicate until ctx is done. Failed evaluations are
// logged and produce no result.
func (e *Evaluator) Run(ctx context.Context) error {
	if e.pred == nil {
		return nil
	}
	defer e.results.Close()

	period := e.pred.Period()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		ok, err := e.pred.Evaluate(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			e.logger.Warn("visibility predicate failed", "error", fmt.Errorf("%w: %w", ErrPredicateEvaluation, err))
		default:
			if err := e.results.Send(ok); err != nil {
				return fmt.Errorf("send predicate result: %w", err)
			}
		}

		if period <= 0 {
			<-ctx.Done()
			return nil
		}
		timer.Reset(period)
	}
}
