package stages

import (
	"github.com/cantabile/timewalk"
)

// Shared builders for the stage tests.

func note(step, alter, octave int, dur timewalk.Rational) *timewalk.Note {
	return &timewalk.Note{
		Pitch: timewalk.Pitch{Step: step, Alter: alter, Octave: octave},
		Dur:   dur,
	}
}

// tup builds a tuple addressed at part 0 / instrument 0 / staff 0.
func tup(measure, voice, item int, pos timewalk.Rational, it timewalk.Item) timewalk.Tuple {
	return timewalk.Tuple{
		Item: it,
		Path: timewalk.Path{
			{Kind: timewalk.StepPart, Index: 0},
			{Kind: timewalk.StepInstrument, Index: 0},
			{Kind: timewalk.StepStaff, Index: 0},
			{Kind: timewalk.StepMeasure, Index: measure},
			{Kind: timewalk.StepVoice, Index: voice},
			{Kind: timewalk.StepItem, Index: item},
		},
		Pos: pos,
	}
}

// twoVoiceScore is one staff, two measures, two voices: voice 0 sounds at
// positions 0 and 1/4, voice 1 at 0 and 1/2, in both measures.
func twoVoiceScore() *timewalk.Score {
	measure := func() *timewalk.Measure {
		return &timewalk.Measure{
			TimeSig: timewalk.TimeSignature{Beats: 4, Unit: 4},
			Voices: []*timewalk.Voice{
				{Items: []timewalk.Item{
					note(0, 0, 4, timewalk.R(1, 4)),
					note(1, 0, 4, timewalk.R(3, 4)),
				}},
				{Items: []timewalk.Item{
					note(2, 0, 4, timewalk.R(1, 2)),
					note(3, 0, 4, timewalk.R(1, 2)),
				}},
			},
		}
	}
	return wrapStaff(&timewalk.Staff{Measures: []*timewalk.Measure{measure(), measure()}})
}

func singleVoiceScore(measures int) *timewalk.Score {
	staff := &timewalk.Staff{}
	for i := 0; i < measures; i++ {
		staff.Measures = append(staff.Measures, &timewalk.Measure{
			TimeSig: timewalk.TimeSignature{Beats: 4, Unit: 4},
			Voices: []*timewalk.Voice{{Items: []timewalk.Item{
				note(0, 0, 4, timewalk.R(1, 2)),
				note(4, 0, 4, timewalk.R(1, 2)),
			}}},
		})
	}
	return wrapStaff(staff)
}

func wrapStaff(staff *timewalk.Staff) *timewalk.Score {
	return &timewalk.Score{Parts: []*timewalk.Part{{
		Instruments: []*timewalk.Instrument{{Staves: []*timewalk.Staff{staff}}},
	}}}
}

// collector is a terminal sink capturing everything it receives.
type collector struct {
	got []timewalk.Tuple
}

func (c *collector) Receive(t timewalk.Tuple) timewalk.Signal {
	c.got = append(c.got, t)
	return timewalk.Continue
}

func positions(ts []timewalk.Tuple) []timewalk.Rational {
	out := make([]timewalk.Rational, len(ts))
	for i, t := range ts {
		out[i] = t.Pos
	}
	return out
}

func voices(ts []timewalk.Tuple) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i], _ = t.Path.VoiceIndex()
	}
	return out
}
