// Package stages provides the transformation stages composed over a
// timewalk stream: generic combinators plus the windowed music stages
// (grace positioning, voice merging, simultaneity grouping, conflict
// detection). Every stage wraps the sink below it, so pipelines are built
// without the walker knowing about any of them.
package stages

import (
	"github.com/cantabile/timewalk"
)

// Filter creates a stage that only forwards tuples matching the
// predicate.
//
// Example:
//
//	timewalk.Each(w, scope, report,
//	    stages.Filter(func(t timewalk.Tuple) bool {
//	        _, pitched := t.Item.(timewalk.Pitched)
//	        return pitched
//	    }),
//	)
func Filter(predicate func(timewalk.Tuple) bool) timewalk.Stage {
	return timewalk.NewStageFunc(func(t timewalk.Tuple, next timewalk.Sink) timewalk.Signal {
		if predicate(t) {
			return next.Receive(t)
		}
		return timewalk.Continue
	})
}

// Map creates a stage that rewrites each tuple with the provided
// function.
func Map(mapFunc func(timewalk.Tuple) timewalk.Tuple) timewalk.Stage {
	return timewalk.NewStageFunc(func(t timewalk.Tuple, next timewalk.Sink) timewalk.Signal {
		return next.Receive(mapFunc(t))
	})
}

// Peek creates a stage that invokes an action for each tuple without
// modifying it. Useful for debugging and counters.
func Peek(peekFunc func(timewalk.Tuple)) timewalk.Stage {
	return timewalk.NewStageFunc(func(t timewalk.Tuple, next timewalk.Sink) timewalk.Signal {
		peekFunc(t)
		return next.Receive(t)
	})
}

// TakeWhile creates an early-cutoff stage: tuples are forwarded while the
// predicate holds, and the first failing tuple stops the walk outright —
// the walker unwinds without visiting further nodes.
func TakeWhile(predicate func(timewalk.Tuple) bool) timewalk.Stage {
	return timewalk.NewStageFunc(func(t timewalk.Tuple, next timewalk.Sink) timewalk.Signal {
		if !predicate(t) {
			return timewalk.Stop
		}
		return next.Receive(t)
	})
}

// DropMarks creates a stage that removes structural MeasureMark and
// SpanMark tuples, leaving a flat item stream for consumers that asked
// the walker for markers but want none past a certain point.
func DropMarks() timewalk.Stage {
	return Filter(func(t timewalk.Tuple) bool {
		switch t.Item.(type) {
		case *timewalk.MeasureMark, *timewalk.SpanMark:
			return false
		default:
			return true
		}
	})
}
