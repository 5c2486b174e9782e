package lambda

import (
	"context"
	"errors"
	"fmt"
)

// ErrTimeLimit is returned when reduction is abandoned before normal form.
var ErrTimeLimit = errors.New("time limit exceeded")

// HasRedex reports whether t contains an application of an abstraction.
func HasRedex(t Term) bool {
	switch t := t.(type) {
	case App:
		if _, ok := t.Fun.(Abs); ok {
			return true
		}
		return HasRedex(t.Fun) || HasRedex(t.Arg)
	case Abs:
		return HasRedex(t.Body)
	default:
		return false
	}
}

// Step contracts the leftmost-outermost redex of t. A term in normal form is
// returned unchanged.
func Step(t Term) Term {
	switch t := t.(type) {
	case App:
		if abs, ok := t.Fun.(Abs); ok {
			return Substitute(abs.Body, t.Arg, abs.Arg)
		}
		if HasRedex(t.Fun) {
			return App{Fun: Step(t.Fun), Arg: t.Arg}
		}
		return App{Fun: t.Fun, Arg: Step(t.Arg)}
	case Abs:
		return Abs{Arg: t.Arg, Body: Step(t.Body)}
	default:
		return t
	}
}

// Stats holds reduction statistics.
type Stats struct {
	Reductions uint64
}

// Reducer drives normal-order reduction and keeps statistics and an optional
// trace. A Reducer is meant for a single evaluation at a time.
type Reducer struct {
	reductions uint64

	traceBuf []TraceEvent
	traceCap int
	traceOn  bool
}

func NewReducer() *Reducer {
	return &Reducer{}
}

func (r *Reducer) GetStats() Stats {
	return Stats{Reductions: r.reductions}
}

// ReduceToNormalForm steps t until no redex remains. The context is checked
// between steps; once it is done the reduction is abandoned and an error
// wrapping both ErrTimeLimit and the context error is returned.
func (r *Reducer) ReduceToNormalForm(ctx context.Context, t Term) (Term, error) {
	for HasRedex(t) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w after %d reductions: %w", ErrTimeLimit, r.reductions, err)
		}
		t = Step(t)
		r.reductions++
		r.recordTrace(t)
	}
	return t, nil
}

// Reduce reduces t to normal form with a fresh Reducer.
func Reduce(ctx context.Context, t Term) (Term, error) {
	return NewReducer().ReduceToNormalForm(ctx, t)
}
