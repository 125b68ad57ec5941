package stages

import (
	"github.com/cantabile/timewalk"
)

// ConflictDetect annotates simultaneity groups with pitch conflicts:
// two group members spelling the same letter and octave with different
// alterations conflict (F4 against F#4 needs a courtesy accidental), and
// two members sounding the same chromatic pitch under different spellings
// conflict as a unison (F#4 against Gb4). Ungrouped tuples pass straight
// through with no buffering.
//
// Groups arrive contiguously from the Simultaneity stage and carry their
// size, so the stage buffers exactly one group and flushes it the moment
// the last member arrives.
type ConflictDetect struct {
	next timewalk.Sink

	groupID int
	group   []timewalk.Tuple
}

func NewConflictDetect() *ConflictDetect {
	return &ConflictDetect{}
}

func (s *ConflictDetect) Init(next timewalk.Sink) error {
	s.next = next
	return nil
}

func (s *ConflictDetect) Receive(t timewalk.Tuple) timewalk.Signal {
	if !t.Group.Grouped() {
		if sig := s.flush(); sig == timewalk.Stop {
			return timewalk.Stop
		}
		return s.next.Receive(t)
	}

	if len(s.group) > 0 && t.Group.ID != s.groupID {
		// A new group before the previous one completed; emit what we
		// have rather than mixing members.
		if sig := s.flush(); sig == timewalk.Stop {
			return timewalk.Stop
		}
	}
	s.groupID = t.Group.ID
	s.group = append(s.group, t)
	if len(s.group) == t.Group.Size {
		return s.flush()
	}
	return timewalk.Continue
}

func (s *ConflictDetect) Flush() timewalk.Signal {
	return s.flush()
}

func (s *ConflictDetect) Close() error {
	s.group = nil
	return nil
}

func (s *ConflictDetect) flush() timewalk.Signal {
	if len(s.group) == 0 {
		return timewalk.Continue
	}
	for i := range s.group {
		s.group[i].Conflict = conflictWithin(s.group, i)
	}
	for _, t := range s.group {
		if s.next.Receive(t) == timewalk.Stop {
			s.group = s.group[:0]
			return timewalk.Stop
		}
	}
	s.group = s.group[:0]
	return timewalk.Continue
}

// conflictWithin compares member i's pitches against every other group
// member. Spelling conflicts outrank unison conflicts when both occur.
func conflictWithin(group []timewalk.Tuple, i int) timewalk.ConflictKind {
	pitched, ok := group[i].Item.(timewalk.Pitched)
	if !ok {
		return timewalk.ConflictNone
	}
	kind := timewalk.ConflictNone
	for j, other := range group {
		if j == i {
			continue
		}
		op, ok := other.Item.(timewalk.Pitched)
		if !ok {
			continue
		}
		for _, a := range pitched.PitchSet() {
			for _, b := range op.PitchSet() {
				switch {
				case a.Step == b.Step && a.Octave == b.Octave && a.Alter != b.Alter:
					return timewalk.ConflictSpelling
				case a.Chromatic() == b.Chromatic() && (a.Step != b.Step || a.Alter != b.Alter):
					kind = timewalk.ConflictUnison
				}
			}
		}
	}
	return kind
}

var _ timewalk.Stage = (*ConflictDetect)(nil)
