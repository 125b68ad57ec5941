package timewalk

// Signal is returned by a sink after every tuple. Stop requests that the
// walker unwind immediately; it is a cooperative cancellation checked
// after each emission, so stopping mid-measure never finishes the measure
// first.
type Signal uint8

const (
	Continue Signal = iota
	Stop
)

// ConflictKind annotates a tuple whose pitches collide with another member
// of its simultaneity group. Set by stages.ConflictDetect.
type ConflictKind uint8

const (
	ConflictNone ConflictKind = iota
	// ConflictSpelling: same letter and octave, different alteration
	// (e.g. F4 against F#4).
	ConflictSpelling
	// ConflictUnison: same sounding pitch, different spelling
	// (e.g. F#4 against Gb4).
	ConflictUnison
)

// GroupInfo tags membership in a simultaneity group. The zero value means
// ungrouped. Set by stages.Simultaneity.
type GroupInfo struct {
	ID   int
	Size int
}

func (g GroupInfo) Grouped() bool { return g.Size > 1 }

// Tuple is the unit of the traversal stream: an item, the path it was
// found at, and its exact position relative to the start of its measure.
// Tuples are plain values constructed per emission; consumers may retain
// them freely.
type Tuple struct {
	Item Item
	Path Path
	Pos  Rational

	// Annotations, zero until a stage fills them in.
	Group    GroupInfo
	Conflict ConflictKind
}

// Sink receives tuples and steers the walk.
type Sink interface {
	Receive(Tuple) Signal
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Tuple) Signal

func (f SinkFunc) Receive(t Tuple) Signal { return f(t) }

// Flusher is implemented by sinks holding windowed state. The walker calls
// Flush once after a completed walk so the last measure is never silently
// dropped.
type Flusher interface {
	Flush() Signal
}
