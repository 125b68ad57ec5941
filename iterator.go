package timewalk

import "sync"

// Iterator is the pull-style adapter over a walk: the caller drives
// emission by requesting the next tuple on demand.
//
// It is derived from the push-style walk rather than duplicating traversal
// logic: the walk runs on its own goroutine and parks on an unbuffered
// channel at every emission, handing control back to the caller. This
// trades a goroutine and a channel operation per tuple for the simplicity
// of external iteration; hot paths should prefer Walk or the adapters in
// collect.go.
type Iterator struct {
	ch   chan Tuple
	stop chan struct{}
	done chan struct{}

	cur     Tuple
	valid   bool
	err     error
	outcome Outcome

	closeOnce sync.Once
}

// Iter starts a walk and returns an iterator over its tuples. Stages, if
// given, are composed into a pipeline between the walk and the iterator.
// The iterator must be closed; an abandoned iterator leaks its walking
// goroutine.
func (w *Walker) Iter(scope Scope, st ...Stage) *Iterator {
	it := &Iterator{
		ch:   make(chan Tuple),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(it.ch)
		defer close(it.done)

		yield := SinkFunc(func(t Tuple) Signal {
			// Check for a close first so a racing consumer drain cannot
			// keep the walk alive arbitrarily long after Close.
			select {
			case <-it.stop:
				return Stop
			default:
			}
			select {
			case it.ch <- t:
				return Continue
			case <-it.stop:
				return Stop
			}
		})

		var sink Sink = yield
		var p *Pipeline
		if len(st) > 0 {
			p = NewPipeline(st...)
			if err := p.Bind(yield); err != nil {
				it.err = err
				it.outcome = Failed
				return
			}
			sink = p
		}

		outcome, err := w.Walk(scope, sink)
		if p != nil {
			if cerr := p.Close(); err == nil {
				err = cerr
			}
		}
		it.outcome = outcome
		it.err = err
	}()

	return it
}

// Next advances to the next tuple. It returns false when the walk is
// exhausted, failed, or the iterator was closed.
func (it *Iterator) Next() bool {
	t, ok := <-it.ch
	if !ok {
		it.valid = false
		return false
	}
	it.cur = t
	it.valid = true
	return true
}

// Tuple returns the current tuple. Only valid after Next() returned true.
func (it *Iterator) Tuple() Tuple {
	return it.cur
}

// Err returns the walk error, if any. It only settles once Next has
// returned false or the iterator is closed.
func (it *Iterator) Err() error {
	select {
	case <-it.done:
		return it.err
	default:
		return nil
	}
}

// Outcome reports how the underlying walk ended. Like Err, it settles
// once the walk goroutine has finished.
func (it *Iterator) Outcome() Outcome {
	<-it.done
	return it.outcome
}

// Close signals Stop into the running walk and waits for it to unwind.
// Closing mid-iteration is the pull-side equivalent of a sink returning
// Stop: computation halts, not just consumption.
func (it *Iterator) Close() error {
	it.closeOnce.Do(func() {
		close(it.stop)
		// Unblock a walk parked on the emit channel, then wait it out.
		for range it.ch {
		}
	})
	<-it.done
	return it.err
}
