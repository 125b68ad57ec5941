package timewalk

// Item is a closed sum type over everything that can appear in a voice,
// plus the structural marks the walker may synthesize into the stream.
// Dispatch is by exhaustive type switch; capabilities (has-duration,
// carries-pitches) are expressed as small interfaces implemented per
// variant, never by runtime reflection.
type Item interface {
	Node
	item()
}

// Durated is implemented by items occupying time in their voice.
type Durated interface {
	Duration() Rational
}

// Pitched is implemented by items that sound one or more pitches.
type Pitched interface {
	PitchSet() []Pitch
}

// Pitch is a spelled pitch: a diatonic letter (0=C .. 6=B), a chromatic
// alteration in semitones, and an octave (4 = the octave of middle C).
type Pitch struct {
	Step   int
	Alter  int
	Octave int
}

var stepSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// Chromatic returns the sounding pitch as a chromatic number, letter
// spelling erased. Two pitches with equal Chromatic sound the same.
func (p Pitch) Chromatic() int {
	return p.Octave*12 + stepSemitones[p.Step] + p.Alter
}

var stepNames = [7]string{"C", "D", "E", "F", "G", "A", "B"}

func (p Pitch) String() string {
	s := stepNames[p.Step%7]
	switch {
	case p.Alter > 0:
		for i := 0; i < p.Alter; i++ {
			s += "#"
		}
	case p.Alter < 0:
		for i := 0; i > p.Alter; i-- {
			s += "b"
		}
	}
	return s
}

type Note struct {
	Pitch Pitch
	Dur   Rational
}

type Rest struct {
	Dur Rational
}

type Chord struct {
	Pitches []Pitch
	Dur     Rational
}

// Tuplet plays Actual children's worth of content in the time of Normal,
// e.g. Actual=3, Normal=2 for a triplet. Children may themselves be
// containers.
type Tuplet struct {
	Actual int64
	Normal int64
	Items  []Item
}

// GraceGroup occupies no nominal time; its notes are structurally attached
// just before the item that follows it in the voice. Temporally accurate
// placement is a stage concern (see stages.GracePosition).
type GraceGroup struct {
	Notes []*Note
}

// MeasureMark is synthesized by the walker (Scope option) at the start of
// each measure index, before any item of that measure in any voice. Voices
// is the number of in-scope voices that contain the measure, which lets
// windowed stages choose a zero-buffering path up front.
type MeasureMark struct {
	Index  int
	Voices int
}

// SpanMark brackets the recursive expansion of a container item when the
// walker descends into it. Open marks precede the children, close marks
// follow them.
type SpanMark struct {
	Of   Item
	Open bool
}

func (*Note) item()        {}
func (*Rest) item()        {}
func (*Chord) item()       {}
func (*Tuplet) item()      {}
func (*GraceGroup) item()  {}
func (*MeasureMark) item() {}
func (*SpanMark) item()    {}

func (*Note) node()        {}
func (*Rest) node()        {}
func (*Chord) node()       {}
func (*Tuplet) node()      {}
func (*GraceGroup) node()  {}
func (*MeasureMark) node() {}
func (*SpanMark) node()    {}

func (n *Note) Duration() Rational  { return n.Dur }
func (r *Rest) Duration() Rational  { return r.Dur }
func (c *Chord) Duration() Rational { return c.Dur }

// Duration of a tuplet is its children's total scaled by Normal/Actual.
func (t *Tuplet) Duration() Rational {
	sum := Zero
	for _, it := range t.Items {
		sum = sum.Add(itemDuration(it))
	}
	return sum.Mul(R(t.Normal, t.Actual))
}

// Duration of a grace group is zero by definition.
func (g *GraceGroup) Duration() Rational { return Zero }

func (n *Note) PitchSet() []Pitch  { return []Pitch{n.Pitch} }
func (c *Chord) PitchSet() []Pitch { return c.Pitches }

var (
	_ Durated = (*Note)(nil)
	_ Durated = (*Rest)(nil)
	_ Durated = (*Chord)(nil)
	_ Durated = (*Tuplet)(nil)
	_ Durated = (*GraceGroup)(nil)
	_ Pitched = (*Note)(nil)
	_ Pitched = (*Chord)(nil)
)

// itemDuration is the walking-time duration of any item. Marks take no
// time; they only ever exist in the stream, not in voices.
func itemDuration(it Item) Rational {
	if d, ok := it.(Durated); ok {
		return d.Duration()
	}
	return Zero
}
