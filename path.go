package timewalk

import (
	"fmt"
	"strings"
)

// StepKind discriminates one level of a Path.
type StepKind uint8

const (
	StepPart StepKind = iota
	StepInstrument
	StepStaff
	StepMeasure
	StepVoice
	StepItem
	// StepNested addresses a child of a container item (tuplet, grace
	// group). It may repeat for containers inside containers.
	StepNested
)

func (k StepKind) String() string {
	switch k {
	case StepPart:
		return "part"
	case StepInstrument:
		return "instrument"
	case StepStaff:
		return "staff"
	case StepMeasure:
		return "measure"
	case StepVoice:
		return "voice"
	case StepItem:
		return "item"
	case StepNested:
		return "nested"
	default:
		return fmt.Sprintf("stepkind(%d)", uint8(k))
	}
}

type Step struct {
	Kind  StepKind
	Index int
}

// Path is an ordered address into the document tree. Paths are values:
// Append copies, equality is structural, and no Path ever aliases tree
// state.
type Path []Step

// Append returns a new path with s appended. The receiver is not modified,
// and the result shares no backing array with it, so retained paths stay
// stable while the walker extends its own.
func (p Path) Append(s Step) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = s
	return out
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether o is an ancestor-or-self prefix of p.
func (p Path) HasPrefix(o Path) bool {
	if len(o) > len(p) {
		return false
	}
	return p[:len(o)].Equal(o)
}

// indexOf returns the index carried by the first step of the given kind,
// or -1.
func (p Path) indexOf(kind StepKind) int {
	for _, s := range p {
		if s.Kind == kind {
			return s.Index
		}
	}
	return -1
}

// MeasureIndex returns the temporal measure index addressed by the path,
// or false if the path stops above measure level.
func (p Path) MeasureIndex() (int, bool) {
	if i := p.indexOf(StepMeasure); i >= 0 {
		return i, true
	}
	return 0, false
}

// VoiceIndex returns the voice index addressed by the path, or false if
// the path stops above voice level.
func (p Path) VoiceIndex() (int, bool) {
	if i := p.indexOf(StepVoice); i >= 0 {
		return i, true
	}
	return 0, false
}

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p {
		fmt.Fprintf(&b, "/%v:%d", s.Kind, s.Index)
	}
	return b.String()
}

// Resolve walks the tree one step at a time and returns the addressed
// node. It is a pure read: the tree is never modified and nothing is
// cached, so resolving the same path twice against an unmodified tree
// returns the same node.
func Resolve(score *Score, path Path) (Node, error) {
	var cur Node = score
	for i, step := range path {
		next, err := child(cur, step)
		if err != nil {
			return nil, &PathError{Step: i, Kind: step.Kind, Index: step.Index, err: err}
		}
		cur = next
	}
	return cur, nil
}

// child applies a single step to a node. Kind legality is checked before
// bounds, so a wrong kind never reports as out of bounds.
func child(n Node, step Step) (Node, error) {
	switch t := n.(type) {
	case *Score:
		if step.Kind != StepPart {
			return nil, ErrKindMismatch
		}
		if step.Index < 0 || step.Index >= len(t.Parts) {
			return nil, ErrOutOfBounds
		}
		return t.Parts[step.Index], nil
	case *Part:
		if step.Kind != StepInstrument {
			return nil, ErrKindMismatch
		}
		if step.Index < 0 || step.Index >= len(t.Instruments) {
			return nil, ErrOutOfBounds
		}
		return t.Instruments[step.Index], nil
	case *Instrument:
		if step.Kind != StepStaff {
			return nil, ErrKindMismatch
		}
		if step.Index < 0 || step.Index >= len(t.Staves) {
			return nil, ErrOutOfBounds
		}
		return t.Staves[step.Index], nil
	case *Staff:
		if step.Kind != StepMeasure {
			return nil, ErrKindMismatch
		}
		if step.Index < 0 || step.Index >= len(t.Measures) {
			return nil, ErrOutOfBounds
		}
		return t.Measures[step.Index], nil
	case *Measure:
		if step.Kind != StepVoice {
			return nil, ErrKindMismatch
		}
		if step.Index < 0 || step.Index >= len(t.Voices) {
			return nil, ErrOutOfBounds
		}
		return t.Voices[step.Index], nil
	case *Voice:
		if step.Kind != StepItem {
			return nil, ErrKindMismatch
		}
		if step.Index < 0 || step.Index >= len(t.Items) {
			return nil, ErrOutOfBounds
		}
		return t.Items[step.Index], nil
	case Item:
		return itemChild(t, step)
	default:
		return nil, ErrKindMismatch
	}
}

func itemChild(it Item, step Step) (Node, error) {
	if step.Kind != StepNested {
		return nil, ErrKindMismatch
	}
	switch t := it.(type) {
	case *Tuplet:
		if step.Index < 0 || step.Index >= len(t.Items) {
			return nil, ErrOutOfBounds
		}
		return t.Items[step.Index], nil
	case *GraceGroup:
		if step.Index < 0 || step.Index >= len(t.Notes) {
			return nil, ErrOutOfBounds
		}
		return t.Notes[step.Index], nil
	default:
		// Leaf items have no children at all.
		return nil, ErrKindMismatch
	}
}
