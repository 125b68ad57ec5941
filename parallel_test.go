package timewalk

import (
	"errors"
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestWalkParts(t *testing.T) {
	t.Run("each part walks its own subtree", func(t *testing.T) {
		w := NewWalker(multiStaffScore())

		var mu sync.Mutex
		byPart := make(map[int][]Tuple)

		outcomes, err := w.WalkParts(NewScope(nil), func(part int) Sink {
			return SinkFunc(func(tp Tuple) Signal {
				mu.Lock()
				byPart[part] = append(byPart[part], tp)
				mu.Unlock()
				return Continue
			})
		})
		assert.NoError(t, err)
		assert.Equal(t, []Outcome{Completed, Completed}, outcomes)
		assert.Equal(t, 6, len(byPart[0]))
		assert.Equal(t, 6, len(byPart[1]))
		for part, tuples := range byPart {
			for _, tp := range tuples {
				assert.Equal(t, part, tp.Path[0].Index)
			}
		}
	})

	t.Run("measure bounds apply per part", func(t *testing.T) {
		w := NewWalker(multiStaffScore())
		counts := make([]int, 2)
		var mu sync.Mutex
		_, err := w.WalkParts(NewScope(nil, ToMeasure(0)), func(part int) Sink {
			return SinkFunc(func(Tuple) Signal {
				mu.Lock()
				counts[part]++
				mu.Unlock()
				return Continue
			})
		})
		assert.NoError(t, err)
		assert.Equal(t, []int{2, 2}, counts)
	})

	t.Run("requires a score-rooted scope", func(t *testing.T) {
		w := NewWalker(multiStaffScore())
		_, err := w.WalkParts(NewScope(Path{{Kind: StepPart, Index: 0}}), func(int) Sink {
			return SinkFunc(func(Tuple) Signal { return Continue })
		})
		assert.True(t, errors.Is(err, ErrUnresolvableRoot))
	})

	t.Run("a stopped part does not fail the call", func(t *testing.T) {
		w := NewWalker(multiStaffScore())
		outcomes, err := w.WalkParts(NewScope(nil), func(part int) Sink {
			return SinkFunc(func(Tuple) Signal {
				if part == 1 {
					return Stop
				}
				return Continue
			})
		})
		assert.NoError(t, err)
		assert.Equal(t, Completed, outcomes[0])
		assert.Equal(t, StoppedEarly, outcomes[1])
	})
}
