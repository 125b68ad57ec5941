package timewalk

import "fmt"

// Rational is an exact rational number used for positions and durations.
// It is always kept normalized (lowest terms, positive denominator), so two
// equal values are also equal with ==, and it can be used as a map key.
type Rational struct {
	Num int64
	Den int64
}

var (
	// Zero is the additive identity, also the start-of-measure position.
	Zero = Rational{0, 1}
	// Whole is the duration of a whole note.
	Whole = Rational{1, 1}
)

// R returns the normalized rational num/den. It panics on a zero
// denominator; durations and positions never have one.
func R(num, den int64) Rational {
	if den == 0 {
		panic("timewalk: rational with zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs(num), den); g > 1 {
		num /= g
		den /= g
	}
	return Rational{Num: num, Den: den}
}

func (r Rational) Add(o Rational) Rational {
	return R(r.Num*o.Den+o.Num*r.Den, r.Den*o.Den)
}

func (r Rational) Sub(o Rational) Rational {
	return R(r.Num*o.Den-o.Num*r.Den, r.Den*o.Den)
}

func (r Rational) Mul(o Rational) Rational {
	return R(r.Num*o.Num, r.Den*o.Den)
}

// MulInt scales r by an integer factor.
func (r Rational) MulInt(n int64) Rational {
	return R(r.Num*n, r.Den)
}

// Cmp returns -1, 0 or +1 depending on whether r is less than, equal to or
// greater than o.
func (r Rational) Cmp(o Rational) int {
	a := r.Num * o.Den
	b := o.Num * r.Den
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (r Rational) Less(o Rational) bool {
	return r.Cmp(o) < 0
}

func (r Rational) IsZero() bool {
	return r.Num == 0
}

func (r Rational) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}
