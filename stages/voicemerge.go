package stages

import (
	"github.com/cantabile/timewalk"
	"golang.org/x/exp/slices"
)

// VoiceMerge merges the voices of a measure into a single temporally
// ordered run: tuples are sorted by position with a stable sort, so ties
// keep their voice order (document structural order). Across-measure
// ordering is untouched — only content within one measure is reordered.
//
// The stage is a two-state machine, Idle and Accumulating over exactly one
// measure. It never holds more than one measure's worth of tuples. With
// measure marks in the stream (Scope option WithMeasureMarks) a
// single-voice measure takes a pass-through path with zero buffering;
// without marks the stage still merges correctly by watching the path's
// measure index, buffering every measure. MeasureMark tuples are consumed,
// not forwarded.
type VoiceMerge struct {
	next timewalk.Sink

	measure int
	passing bool // single-voice fast path, chosen from a mark
	active  bool // Accumulating state; false is Idle

	buf []timewalk.Tuple

	// maxBuffered tracks the high-water mark of the buffer, locked by the
	// buffering-bound tests.
	maxBuffered int
}

func NewVoiceMerge() *VoiceMerge {
	return &VoiceMerge{}
}

func (s *VoiceMerge) Init(next timewalk.Sink) error {
	s.next = next
	return nil
}

func (s *VoiceMerge) Receive(t timewalk.Tuple) timewalk.Signal {
	if mark, ok := t.Item.(*timewalk.MeasureMark); ok {
		if s.flush() == timewalk.Stop {
			return timewalk.Stop
		}
		s.measure = mark.Index
		s.passing = mark.Voices <= 1
		s.active = true
		return timewalk.Continue
	}

	m, ok := t.Path.MeasureIndex()
	if !ok {
		// No measure level in the path; nothing to window over.
		return s.next.Receive(t)
	}

	if !s.active {
		// Markless stream: fall back to buffering this measure.
		s.measure = m
		s.passing = false
		s.active = true
	} else if m != s.measure {
		if s.flush() == timewalk.Stop {
			return timewalk.Stop
		}
		s.measure = m
		s.passing = false
		s.active = true
	}

	if s.passing {
		return s.next.Receive(t)
	}
	s.buf = append(s.buf, t)
	if len(s.buf) > s.maxBuffered {
		s.maxBuffered = len(s.buf)
	}
	return timewalk.Continue
}

// Flush handles end-of-stream: a measure still accumulating is emitted
// sorted rather than silently dropped.
func (s *VoiceMerge) Flush() timewalk.Signal {
	return s.flush()
}

func (s *VoiceMerge) Close() error {
	s.buf = nil
	return nil
}

// flush transitions back to Idle, emitting the buffered measure in
// position order. The buffer keeps its capacity, so steady-state merging
// allocates only when a measure outgrows every one before it.
func (s *VoiceMerge) flush() timewalk.Signal {
	s.active = false
	if len(s.buf) == 0 {
		return timewalk.Continue
	}
	slices.SortStableFunc(s.buf, func(a, b timewalk.Tuple) bool {
		return a.Pos.Less(b.Pos)
	})
	for _, t := range s.buf {
		if s.next.Receive(t) == timewalk.Stop {
			s.buf = s.buf[:0]
			return timewalk.Stop
		}
	}
	s.buf = s.buf[:0]
	return timewalk.Continue
}

var _ timewalk.Stage = (*VoiceMerge)(nil)
