package stages

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/cantabile/timewalk"
)

func TestFilter(t *testing.T) {
	w := timewalk.NewWalker(singleVoiceScore(2))

	t.Run("forwards only matching tuples", func(t *testing.T) {
		got, err := timewalk.Collect(w, timewalk.NewScope(nil),
			Filter(func(tp timewalk.Tuple) bool { return tp.Pos.IsZero() }),
		)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(got))
		for _, tp := range got {
			assert.Equal(t, timewalk.Zero, tp.Pos)
		}
	})

	t.Run("filtering everything still completes", func(t *testing.T) {
		outcome, err := timewalk.Each(w, timewalk.NewScope(nil),
			func(timewalk.Tuple) timewalk.Signal { return timewalk.Continue },
			Filter(func(timewalk.Tuple) bool { return false }),
		)
		assert.NoError(t, err)
		assert.Equal(t, timewalk.Completed, outcome)
	})
}

func TestMap(t *testing.T) {
	w := timewalk.NewWalker(singleVoiceScore(1))

	shift := Map(func(tp timewalk.Tuple) timewalk.Tuple {
		tp.Pos = tp.Pos.Add(timewalk.R(1, 8))
		return tp
	})
	got, err := timewalk.Collect(w, timewalk.NewScope(nil), shift)
	assert.NoError(t, err)
	assert.Equal(t,
		[]timewalk.Rational{timewalk.R(1, 8), timewalk.R(5, 8)},
		positions(got))
}

func TestPeek(t *testing.T) {
	w := timewalk.NewWalker(singleVoiceScore(2))

	n := 0
	got, err := timewalk.Collect(w, timewalk.NewScope(nil),
		Peek(func(timewalk.Tuple) { n++ }),
	)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, len(got))
}

func TestTakeWhile(t *testing.T) {
	t.Run("stops the walk at the first failing tuple", func(t *testing.T) {
		w := timewalk.NewWalker(singleVoiceScore(4))
		var got []timewalk.Tuple
		outcome, err := timewalk.Each(w, timewalk.NewScope(nil),
			func(tp timewalk.Tuple) timewalk.Signal {
				got = append(got, tp)
				return timewalk.Continue
			},
			TakeWhile(func(tp timewalk.Tuple) bool {
				m, _ := tp.Path.MeasureIndex()
				return m < 2
			}),
		)
		assert.NoError(t, err)
		assert.Equal(t, timewalk.StoppedEarly, outcome)
		// Two items per measure, measures 0 and 1 only.
		assert.Equal(t, 4, len(got))
	})

	t.Run("an always-true predicate changes nothing", func(t *testing.T) {
		w := timewalk.NewWalker(singleVoiceScore(2))
		outcome, err := timewalk.Each(w, timewalk.NewScope(nil),
			func(timewalk.Tuple) timewalk.Signal { return timewalk.Continue },
			TakeWhile(func(timewalk.Tuple) bool { return true }),
		)
		assert.NoError(t, err)
		assert.Equal(t, timewalk.Completed, outcome)
	})
}

func TestDropMarks(t *testing.T) {
	measure := &timewalk.Measure{
		TimeSig: timewalk.TimeSignature{Beats: 4, Unit: 4},
		Voices: []*timewalk.Voice{{Items: []timewalk.Item{
			&timewalk.Tuplet{Actual: 3, Normal: 2, Items: []timewalk.Item{
				note(0, 0, 4, timewalk.R(1, 8)),
				note(1, 0, 4, timewalk.R(1, 8)),
				note(2, 0, 4, timewalk.R(1, 8)),
			}},
		}}},
	}
	score := wrapStaff(&timewalk.Staff{Measures: []*timewalk.Measure{measure}})

	w := timewalk.NewWalker(score)
	scope := timewalk.NewScope(nil, timewalk.WithMeasureMarks(), timewalk.WithNested())

	withMarks, err := timewalk.Collect(w, scope)
	assert.NoError(t, err)
	got, err := timewalk.Collect(w, scope, DropMarks())
	assert.NoError(t, err)

	// One measure mark and a span open/close pair go away; the three
	// tuplet notes stay.
	assert.Equal(t, len(withMarks)-3, len(got))
	for _, tp := range got {
		switch tp.Item.(type) {
		case *timewalk.MeasureMark, *timewalk.SpanMark:
			t.Fatalf("mark survived DropMarks at %s", tp.Path)
		}
	}
}
