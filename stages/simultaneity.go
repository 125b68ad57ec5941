package stages

import (
	"github.com/cantabile/timewalk"
)

// Simultaneity scans a temporally merged stream and tags runs of tuples
// sharing an identical (measure, position) as a simultaneity group:
// each member gets the same group ID and the group size. Singletons pass
// through untouched. This is purely an annotation pass — emission order
// is never changed, and only the current run is ever buffered.
//
// The stage expects its input already merged (see VoiceMerge); on an
// unmerged stream equal positions from different voices are not adjacent
// and will not be grouped.
type Simultaneity struct {
	next timewalk.Sink

	active  bool
	measure int
	pos     timewalk.Rational
	run     []timewalk.Tuple

	nextID int
}

func NewSimultaneity() *Simultaneity {
	return &Simultaneity{nextID: 1}
}

func (s *Simultaneity) Init(next timewalk.Sink) error {
	s.next = next
	return nil
}

func (s *Simultaneity) Receive(t timewalk.Tuple) timewalk.Signal {
	switch t.Item.(type) {
	case *timewalk.MeasureMark, *timewalk.SpanMark:
		// Structural marks never join a group; close the run so order is
		// preserved, then pass the mark along.
		if s.flush() == timewalk.Stop {
			return timewalk.Stop
		}
		return s.next.Receive(t)
	}

	m, _ := t.Path.MeasureIndex()
	if s.active && m == s.measure && t.Pos == s.pos {
		s.run = append(s.run, t)
		return timewalk.Continue
	}

	if s.flush() == timewalk.Stop {
		return timewalk.Stop
	}
	s.active = true
	s.measure = m
	s.pos = t.Pos
	s.run = append(s.run, t)
	return timewalk.Continue
}

func (s *Simultaneity) Flush() timewalk.Signal {
	return s.flush()
}

func (s *Simultaneity) Close() error {
	s.run = nil
	return nil
}

func (s *Simultaneity) flush() timewalk.Signal {
	s.active = false
	if len(s.run) == 0 {
		return timewalk.Continue
	}
	if len(s.run) > 1 {
		g := timewalk.GroupInfo{ID: s.nextID, Size: len(s.run)}
		s.nextID++
		for i := range s.run {
			s.run[i].Group = g
		}
	}
	for _, t := range s.run {
		if s.next.Receive(t) == timewalk.Stop {
			s.run = s.run[:0]
			return timewalk.Stop
		}
	}
	s.run = s.run[:0]
	return timewalk.Continue
}

var _ timewalk.Stage = (*Simultaneity)(nil)
