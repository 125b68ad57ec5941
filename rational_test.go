package timewalk

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestRational(t *testing.T) {
	t.Run("normalizes to lowest terms", func(t *testing.T) {
		assert.Equal(t, R(1, 2), R(2, 4))
		assert.Equal(t, R(3, 4), R(6, 8))
		assert.Equal(t, Rational{Num: 0, Den: 1}, R(0, 16))
	})

	t.Run("normalizes the sign into the numerator", func(t *testing.T) {
		assert.Equal(t, R(-1, 2), R(1, -2))
		assert.Equal(t, R(1, 2), R(-1, -2))
	})

	t.Run("equal values compare equal with ==", func(t *testing.T) {
		assert.True(t, R(2, 8) == R(1, 4))
	})

	t.Run("arithmetic", func(t *testing.T) {
		assert.Equal(t, R(3, 4), R(1, 4).Add(R(1, 2)))
		assert.Equal(t, R(1, 4), R(3, 4).Sub(R(1, 2)))
		assert.Equal(t, R(1, 12), R(1, 8).Mul(R(2, 3)))
		assert.Equal(t, R(3, 8), R(1, 8).MulInt(3))
	})

	t.Run("comparison", func(t *testing.T) {
		assert.Equal(t, -1, R(1, 4).Cmp(R(1, 2)))
		assert.Equal(t, 0, R(2, 4).Cmp(R(1, 2)))
		assert.Equal(t, 1, R(3, 4).Cmp(R(1, 2)))
		assert.True(t, R(1, 4).Less(R(1, 3)))
		assert.False(t, R(1, 3).Less(R(1, 3)))
	})

	t.Run("string form", func(t *testing.T) {
		assert.Equal(t, "1/4", R(1, 4).String())
		assert.Equal(t, "2", R(4, 2).String())
		assert.Equal(t, "0", Zero.String())
	})

	t.Run("zero denominator panics", func(t *testing.T) {
		assert.Panics(t, func() { R(1, 0) })
	})
}
