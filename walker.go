package timewalk

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Outcome reports how a walk ended.
type Outcome uint8

const (
	// Completed: every in-scope item was emitted and the sink flushed.
	Completed Outcome = iota
	// StoppedEarly: the sink signalled Stop and the walk unwound.
	StoppedEarly
	// Failed: the scope did not validate; no tuple was emitted.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case StoppedEarly:
		return "stopped-early"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Walker traverses a score measure-major: every in-scope voice's content
// for measure N is emitted before any content of measure N+1, regardless
// of which part or staff it belongs to. Within a measure, emission follows
// document structural order: part, then instrument, then staff, then
// voice, then item index. The tree's natural depth-first order would
// interleave one performer's whole timeline before the next; re-sequencing
// by measure is what makes simultaneity detection downstream possible.
//
// A Walker is read-only over its score and performs no I/O; concurrent
// walks over the same score are safe as long as nothing mutates the tree.
type Walker struct {
	score *Score
	log   logr.Logger

	// onVisit is called once per item node considered, including items
	// filtered out by position bounds. Tests hook it to prove that Stop
	// halts computation, not just emission.
	onVisit func()
}

type Option func(*Walker)

func WithLogger(log logr.Logger) Option {
	return func(w *Walker) {
		w.log = log
	}
}

func NewWalker(score *Score, opts ...Option) *Walker {
	w := &Walker{
		score: score,
		log:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// lane is one staff inside the scope, with the path leading to it. A
// voice-rooted scope narrows a lane to a single voice index.
type lane struct {
	staff     *Staff
	base      Path
	voiceOnly int
}

// Walk drives the push-style traversal: it emits every in-scope tuple to
// the sink in temporal order, checking the returned signal after each
// emission. Scope errors are reported before any emission. If the sink
// implements Flusher, Flush is called once after a completed walk.
func (w *Walker) Walk(scope Scope, sink Sink) (Outcome, error) {
	lanes, lo, hi, err := w.resolveScope(scope)
	if err != nil {
		return Failed, err
	}

	w.log.V(1).Info("walk starting", "root", scope.root.String(), "from", lo, "to", hi, "lanes", len(lanes))

	for m := lo; m <= hi; m++ {
		first := m == lo && scope.hasStartPos
		last := m == hi && scope.hasEndPos

		if scope.measureMarks {
			if sig := w.emitMeasureMark(scope, sink, lanes, m); sig == Stop {
				w.log.V(1).Info("walk stopped early", "measure", m)
				return StoppedEarly, nil
			}
		}

		for _, ln := range lanes {
			if m >= len(ln.staff.Measures) {
				continue
			}
			mPath := ln.base.Append(Step{Kind: StepMeasure, Index: m})
			for v, voice := range ln.staff.Measures[m].Voices {
				if ln.voiceOnly >= 0 && v != ln.voiceOnly {
					continue
				}
				vPath := mPath.Append(Step{Kind: StepVoice, Index: v})
				if sig := w.walkVoice(scope, sink, voice, vPath, first, last); sig == Stop {
					w.log.V(1).Info("walk stopped early", "measure", m, "voice", vPath.String())
					return StoppedEarly, nil
				}
			}
		}
	}

	if f, ok := sink.(Flusher); ok {
		if f.Flush() == Stop {
			return StoppedEarly, nil
		}
	}
	return Completed, nil
}

// walkVoice emits one voice's items for one measure, accumulating each
// item's duration into the position of the next. Position bounds apply
// only at the boundary measures of the scope.
func (w *Walker) walkVoice(scope Scope, sink Sink, voice *Voice, vPath Path, first, last bool) Signal {
	pos := Zero
	for i, it := range voice.Items {
		w.visit()
		itemPos := pos
		pos = pos.Add(itemDuration(it))

		if first && itemPos.Less(scope.startPos) {
			continue
		}
		if last && scope.endPos.Less(itemPos) {
			// Positions are non-decreasing within a voice, so nothing
			// further in this voice can be in range either.
			break
		}

		iPath := vPath.Append(Step{Kind: StepItem, Index: i})
		if sig := w.emitItem(scope, sink, it, iPath, itemPos); sig == Stop {
			return Stop
		}
	}
	return Continue
}

// emitItem emits a single item, descending into containers when the scope
// asks for it. Container children carry Nested path steps; tuplet child
// positions are scaled by Normal/Actual into the enclosing time base, and
// the closing span mark sits at the container's end position (which may
// legitimately equal the measure duration).
func (w *Walker) emitItem(scope Scope, sink Sink, it Item, p Path, pos Rational) Signal {
	if scope.includeNested {
		switch t := it.(type) {
		case *Tuplet:
			if sink.Receive(Tuple{Item: &SpanMark{Of: it, Open: true}, Path: p, Pos: pos}) == Stop {
				return Stop
			}
			scale := R(t.Normal, t.Actual)
			childPos := pos
			for i, ch := range t.Items {
				w.visit()
				cPath := p.Append(Step{Kind: StepNested, Index: i})
				if sig := w.emitItem(scope, sink, ch, cPath, childPos); sig == Stop {
					return Stop
				}
				childPos = childPos.Add(itemDuration(ch).Mul(scale))
			}
			return sink.Receive(Tuple{Item: &SpanMark{Of: it, Open: false}, Path: p, Pos: childPos})
		case *GraceGroup:
			if sink.Receive(Tuple{Item: &SpanMark{Of: it, Open: true}, Path: p, Pos: pos}) == Stop {
				return Stop
			}
			for i, n := range t.Notes {
				w.visit()
				cPath := p.Append(Step{Kind: StepNested, Index: i})
				if sink.Receive(Tuple{Item: n, Path: cPath, Pos: pos}) == Stop {
					return Stop
				}
			}
			return sink.Receive(Tuple{Item: &SpanMark{Of: it, Open: false}, Path: p, Pos: pos})
		}
	}
	return sink.Receive(Tuple{Item: it, Path: p, Pos: pos})
}

// emitMeasureMark emits one MeasureMark per measure index that exists in
// at least one lane, counting the in-scope voices of that index so
// windowed stages can size their behavior up front.
func (w *Walker) emitMeasureMark(scope Scope, sink Sink, lanes []lane, m int) Signal {
	voices := 0
	var markPath Path
	for _, ln := range lanes {
		if m >= len(ln.staff.Measures) {
			continue
		}
		if markPath == nil {
			markPath = ln.base.Append(Step{Kind: StepMeasure, Index: m})
		}
		if ln.voiceOnly >= 0 {
			if ln.voiceOnly < len(ln.staff.Measures[m].Voices) {
				voices++
			}
			continue
		}
		voices += len(ln.staff.Measures[m].Voices)
	}
	if markPath == nil {
		return Continue
	}
	return sink.Receive(Tuple{
		Item: &MeasureMark{Index: m, Voices: voices},
		Path: markPath,
		Pos:  Zero,
	})
}

// resolveScope validates the scope and flattens it into staff lanes plus
// the effective measure range. All failures here happen before any
// emission.
func (w *Walker) resolveScope(scope Scope) ([]lane, int, int, error) {
	if err := scope.validate(); err != nil {
		return nil, 0, 0, err
	}

	node, err := Resolve(w.score, scope.root)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrUnresolvableRoot, err)
	}

	var lanes []lane
	measureOnly := -1
	voiceOnly := -1

	switch t := node.(type) {
	case *Score:
		for pi, part := range t.Parts {
			pPath := Path{}.Append(Step{Kind: StepPart, Index: pi})
			lanes = append(lanes, instrumentLanes(part, pPath)...)
		}
	case *Part:
		lanes = instrumentLanes(t, scope.root)
	case *Instrument:
		lanes = staffLanes(t, scope.root)
	case *Staff:
		lanes = []lane{{staff: t, base: scope.root, voiceOnly: -1}}
	case *Measure:
		measureOnly = scope.root[len(scope.root)-1].Index
		staffNode, _ := Resolve(w.score, scope.root[:len(scope.root)-1])
		lanes = []lane{{staff: staffNode.(*Staff), base: scope.root[:len(scope.root)-1], voiceOnly: -1}}
	case *Voice:
		measureOnly = scope.root[len(scope.root)-2].Index
		voiceOnly = scope.root[len(scope.root)-1].Index
		staffNode, _ := Resolve(w.score, scope.root[:len(scope.root)-2])
		lanes = []lane{{staff: staffNode.(*Staff), base: scope.root[:len(scope.root)-2], voiceOnly: voiceOnly}}
	default:
		return nil, 0, 0, fmt.Errorf("%w: %s addresses an item, not a container", ErrUnresolvableRoot, scope.root)
	}

	maxMeasures := 0
	for _, ln := range lanes {
		if n := len(ln.staff.Measures); n > maxMeasures {
			maxMeasures = n
		}
	}

	lo := scope.startMeasure
	hi := scope.endMeasure
	if hi < 0 {
		hi = maxMeasures - 1
	}
	if measureOnly >= 0 {
		// A measure- or voice-rooted scope narrows the range to that one
		// measure; explicit bounds may still exclude it entirely.
		if lo > measureOnly || hi < measureOnly {
			lo, hi = 0, -1
		} else {
			lo, hi = measureOnly, measureOnly
		}
	}
	return lanes, lo, hi, nil
}

func instrumentLanes(part *Part, base Path) []lane {
	var lanes []lane
	for ii, instr := range part.Instruments {
		iPath := base.Append(Step{Kind: StepInstrument, Index: ii})
		lanes = append(lanes, staffLanes(instr, iPath)...)
	}
	return lanes
}

func staffLanes(instr *Instrument, base Path) []lane {
	var lanes []lane
	for si, staff := range instr.Staves {
		lanes = append(lanes, lane{
			staff:     staff,
			base:      base.Append(Step{Kind: StepStaff, Index: si}),
			voiceOnly: -1,
		})
	}
	return lanes
}

func (w *Walker) visit() {
	if w.onVisit != nil {
		w.onVisit()
	}
}
