package stages

import (
	"github.com/cantabile/timewalk"
)

// DefaultGraceDuration is the sounding time one grace note steals,
// expressed in whole-note units (a sixteenth).
var DefaultGraceDuration = timewalk.R(1, 16)

// GracePositionOption configures a GracePosition stage.
type GracePositionOption func(*gracePosition)

// WithGraceDuration overrides the sounding duration of a single grace
// note. Faster tempi typically want a smaller value.
func WithGraceDuration(d timewalk.Rational) GracePositionOption {
	return func(s *gracePosition) {
		s.graceDur = d
	}
}

// GracePosition rewrites grace notes from structural placement to
// temporally accurate placement. A GraceGroup is notated at the position
// of its host item but sounds before it; this stage expands a GraceGroup
// tuple into one tuple per grace note, back-shifted so the group ends
// exactly at the host position. The total shift is clamped to the measure
// start — grace time is never borrowed from the previous measure. All
// other tuples pass through unchanged.
//
// The stage expands leaf GraceGroup tuples, so it belongs on walks that
// did not ask for nested recursion; run it before VoiceMerge so the
// shifted positions take part in merging.
func GracePosition(opts ...GracePositionOption) timewalk.Stage {
	s := &gracePosition{graceDur: DefaultGraceDuration}
	for _, opt := range opts {
		opt(s)
	}
	return timewalk.NewStageFunc(s.receive)
}

type gracePosition struct {
	graceDur timewalk.Rational
}

func (s *gracePosition) receive(t timewalk.Tuple, next timewalk.Sink) timewalk.Signal {
	g, ok := t.Item.(*timewalk.GraceGroup)
	if !ok {
		return next.Receive(t)
	}
	n := int64(len(g.Notes))
	if n == 0 {
		return timewalk.Continue
	}

	span := s.graceDur.MulInt(n)
	if t.Pos.Less(span) {
		span = t.Pos
	}
	per := span.Mul(timewalk.R(1, n))

	start := t.Pos.Sub(span)
	for i, note := range g.Notes {
		out := timewalk.Tuple{
			Item: note,
			Path: t.Path.Append(timewalk.Step{Kind: timewalk.StepNested, Index: i}),
			Pos:  start.Add(per.MulInt(int64(i))),
		}
		if next.Receive(out) == timewalk.Stop {
			return timewalk.Stop
		}
	}
	return timewalk.Continue
}
