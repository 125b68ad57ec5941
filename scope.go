package timewalk

// Scope constrains a walk to a subtree and, optionally, a measure/position
// window. Build one with NewScope; the zero Scope is a full-score walk.
//
// Measure bounds are inclusive on both ends. Position bounds apply only at
// the boundary measures: in the first included measure, items starting
// before the start position are excluded; in the last, items starting
// after the end position are excluded (an item starting exactly at the end
// position is still emitted). Everything in between is taken whole.
type Scope struct {
	root Path

	startMeasure int
	endMeasure   int // -1: unbounded

	hasStartPos bool
	startPos    Rational
	hasEndPos   bool
	endPos      Rational

	includeNested bool
	measureMarks  bool
}

type ScopeOption func(*Scope)

// FromMeasure sets the inclusive first measure index.
func FromMeasure(i int) ScopeOption {
	return func(s *Scope) { s.startMeasure = i }
}

// ToMeasure sets the inclusive last measure index.
func ToMeasure(i int) ScopeOption {
	return func(s *Scope) { s.endMeasure = i }
}

// FromPosition excludes items of the first included measure starting
// before pos.
func FromPosition(pos Rational) ScopeOption {
	return func(s *Scope) {
		s.hasStartPos = true
		s.startPos = pos
	}
}

// ToPosition excludes items of the last included measure starting after
// pos. The bound is inclusive.
func ToPosition(pos Rational) ScopeOption {
	return func(s *Scope) {
		s.hasEndPos = true
		s.endPos = pos
	}
}

// WithNested makes the walker descend into container items (tuplets,
// grace groups): the container emits open/close SpanMark tuples around its
// children, each child gets a Nested path step, and child positions are
// scaled to the container's time base. Without this option containers are
// emitted as single leaf tuples.
func WithNested() ScopeOption {
	return func(s *Scope) { s.includeNested = true }
}

// WithMeasureMarks makes the walker emit a MeasureMark tuple before the
// first item of every measure index. Windowed stages use the mark's voice
// count to avoid buffering single-voice measures.
func WithMeasureMarks() ScopeOption {
	return func(s *Scope) { s.measureMarks = true }
}

// NewScope builds a scope rooted at the given path. An empty (or nil)
// root addresses the whole score.
func NewScope(root Path, opts ...ScopeOption) Scope {
	s := Scope{root: root, endMeasure: -1}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Root returns the scope's subtree root path.
func (s Scope) Root() Path { return s.root }

// validate checks the range invariant. Root resolution has its own
// pre-flight check in the walker.
func (s Scope) validate() error {
	if s.endMeasure >= 0 && s.startMeasure > s.endMeasure {
		return ErrStartAfterEnd
	}
	return nil
}
