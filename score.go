package timewalk

// The document tree is strictly tree-shaped: containers own ordered slices
// of children and no node holds a parent pointer. "Where am I" is always
// answered with an accumulated Path, never by back-navigation.

type Score struct {
	Parts []*Part
}

type Part struct {
	Name        string
	Instruments []*Instrument
}

type Instrument struct {
	Name   string
	Staves []*Staff
}

type Staff struct {
	Measures []*Measure
}

// Measure holds one or more concurrently sounding voices. Its nominal
// duration derives from the time signature; voices are not required to fill
// it exactly (in-progress documents routinely underfill).
type Measure struct {
	TimeSig TimeSignature
	Voices  []*Voice
}

type Voice struct {
	Items []Item
}

// TimeSignature is a plain meter fraction, e.g. 3/4 or 6/8.
type TimeSignature struct {
	Beats int64
	Unit  int64
}

// Duration returns the nominal measure duration in whole-note units.
func (ts TimeSignature) Duration() Rational {
	if ts.Unit == 0 {
		return Zero
	}
	return R(ts.Beats, ts.Unit)
}

// Duration of measure content is nominal, from the time signature. Actual
// voice content may be shorter or longer; callers must not assume
// saturation.
func (m *Measure) Duration() Rational {
	return m.TimeSig.Duration()
}

// Node is the closed set of tree node references a Path can resolve to.
// Exactly *Score, *Part, *Instrument, *Staff, *Measure, *Voice and Item
// implement it.
type Node interface {
	node()
}

func (*Score) node()      {}
func (*Part) node()       {}
func (*Instrument) node() {}
func (*Staff) node()      {}
func (*Measure) node()    {}
func (*Voice) node()      {}
