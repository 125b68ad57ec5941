package timewalk

import "go.uber.org/multierr"

// Consumption adapters: the three standard ways to run a composed pipeline
// against a walk. Each binds the stages, walks, and closes the stages,
// folding close errors into the walk result.

// Each runs the walk purely for the terminal function's side effects. The
// function's signal propagates to the walker, so returning Stop terminates
// the walk early.
func Each(w *Walker, scope Scope, fn func(Tuple) Signal, st ...Stage) (Outcome, error) {
	return runPipeline(w, scope, SinkFunc(fn), st...)
}

// Collect realizes the walk into an owned slice of tuples.
func Collect(w *Walker, scope Scope, st ...Stage) ([]Tuple, error) {
	var out []Tuple
	_, err := Each(w, scope, func(t Tuple) Signal {
		out = append(out, t)
		return Continue
	}, st...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Fold accumulates the walk into a single value.
func Fold[T any](w *Walker, scope Scope, seed T, fn func(T, Tuple) T, st ...Stage) (T, error) {
	acc := seed
	_, err := Each(w, scope, func(t Tuple) Signal {
		acc = fn(acc, t)
		return Continue
	}, st...)
	if err != nil {
		var zero T
		return zero, err
	}
	return acc, nil
}

func runPipeline(w *Walker, scope Scope, terminal Sink, st ...Stage) (Outcome, error) {
	if len(st) == 0 {
		return w.Walk(scope, terminal)
	}
	p := NewPipeline(st...)
	if err := p.Bind(terminal); err != nil {
		return Failed, err
	}
	outcome, err := w.Walk(scope, p)
	return outcome, multierr.Append(err, p.Close())
}
