package geom

import (
	"fmt"
	"math"
	"math/bits"
)

// Rational is an exact fraction, always reduced to lowest terms with a positive
// denominator. There is a single unsigned infinity which we use as a sentinel
// for "nothing found yet". All infinities are equal to each other and greater
// than every finite value, so even a "negative" infinity sorts last.
//
// The zero value is 0.
//
// There is no protection against overflow in Add, Sub and Mul. Callers must
// keep coordinates within MaxCoordinate so that intermediate products fit in 64
// bits. Comparisons are done with 128 bit products and never overflow.
type Rational struct {
	num int64
	den int64 // zero only in the zero value, where it reads as 1
	inf bool
}

var (
	Zero     = Rational{0, 1, false}
	One      = Rational{1, 1, false}
	Infinity = Rational{1, 0, true}
)

// The largest denominator FromFloat will produce, and how close the result has
// to be before it stops refining.
const (
	maxFloatDenominator = 1_000_000
	floatTolerance      = 1e-9
)

// NewRational builds num/den. A zero denominator gives Infinity.
func NewRational(num, den int64) Rational {
	if den == 0 {
		return Infinity
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), den)
	return Rational{num: num / g, den: den / g}
}

// IntRational is n/1.
func IntRational(n int64) Rational {
	return Rational{num: n, den: 1}
}

// FromFloat approximates value with a continued fraction expansion. NaN and
// infinite values map to Infinity.
func FromFloat(value float64) Rational {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Infinity
	}

	sign := int64(1)
	if value < 0 {
		sign = -1
		value = -value
	}

	// Convergents h(n)/k(n) of the expansion
	var n0, d0 int64 = 0, 1
	var n1, d1 int64 = 1, 0

	x := value
	// The expansion should converge long before this, it's only a failsafe
	for iter := 0; iter < 1000; iter++ {
		a := int64(math.Floor(x))
		n2 := a*n1 + n0
		d2 := a*d1 + d0
		if d2 > maxFloatDenominator {
			break
		}
		if math.Abs(float64(n2)/float64(d2)-value) < floatTolerance {
			return NewRational(sign*n2, d2)
		}
		n0, d0 = n1, d1
		n1, d1 = n2, d2

		frac := x - float64(a)
		if frac == 0 {
			break
		}
		x = 1 / frac
	}
	return NewRational(sign*n1, d1)
}

func (r Rational) d() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

// Num and Den return the reduced numerator and denominator. Infinity reports 1/0.
func (r Rational) Num() int64 {
	return r.num
}

func (r Rational) Den() int64 {
	if r.inf {
		return 0
	}
	return r.d()
}

func (r Rational) IsInfinity() bool {
	return r.inf
}

func (r Rational) IsZero() bool {
	return !r.inf && r.num == 0
}

func (r Rational) IsOne() bool {
	return !r.inf && r.num == r.d()
}

// Zero and infinity are neither positive nor negative.
func (r Rational) IsPositive() bool {
	return !r.inf && r.num > 0
}

func (r Rational) IsNegative() bool {
	return !r.inf && r.num < 0
}

func (r Rational) Add(o Rational) Rational {
	if r.inf || o.inf {
		return Infinity
	}
	return NewRational(r.num*o.d()+o.num*r.d(), r.d()*o.d())
}

func (r Rational) Sub(o Rational) Rational {
	if r.inf || o.inf {
		return Infinity
	}
	return NewRational(r.num*o.d()-o.num*r.d(), r.d()*o.d())
}

func (r Rational) Mul(o Rational) Rational {
	if r.inf || o.inf {
		return Infinity
	}
	return NewRational(r.num*o.num, r.d()*o.d())
}

func (r Rational) Neg() Rational {
	if r.inf {
		return r
	}
	return Rational{num: -r.num, den: r.d()}
}

// Cmp returns -1, 0 or 1. Infinity compares equal to itself and above
// everything else.
func (r Rational) Cmp(o Rational) int {
	switch {
	case r.inf && o.inf:
		return 0
	case r.inf:
		return 1
	case o.inf:
		return -1
	}
	return cmpProducts(r.num, o.d(), o.num, r.d())
}

func (r Rational) Less(o Rational) bool      { return r.Cmp(o) < 0 }
func (r Rational) Greater(o Rational) bool   { return r.Cmp(o) > 0 }
func (r Rational) Equal(o Rational) bool     { return r.Cmp(o) == 0 }
func (r Rational) LessEq(o Rational) bool    { return r.Cmp(o) <= 0 }
func (r Rational) GreaterEq(o Rational) bool { return r.Cmp(o) >= 0 }

// Floor is the largest integer not above r. Infinity floors to MaxInt64.
func (r Rational) Floor() int64 {
	if r.inf {
		return math.MaxInt64
	}
	return floorDiv(r.num, r.d())
}

// Float64 is lossy, and is only meant for display and output. Never branch on
// it.
func (r Rational) Float64() float64 {
	if r.inf {
		return math.Inf(1)
	}
	return float64(r.num) / float64(r.d())
}

func (r Rational) String() string {
	if r.inf {
		return "inf"
	}
	if r.d() == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.d())
}

// Compare a*b with c*d without overflowing. b and d must be positive.
func cmpProducts(a, b, c, d int64) int {
	sa, sc := sign64(a), sign64(c)
	if sa != sc {
		if sa < sc {
			return -1
		}
		return 1
	}
	if sa == 0 {
		return 0
	}
	hi1, lo1 := bits.Mul64(uint64(abs64(a)), uint64(b))
	hi2, lo2 := bits.Mul64(uint64(abs64(c)), uint64(d))
	mag := 0
	switch {
	case hi1 < hi2 || (hi1 == hi2 && lo1 < lo2):
		mag = -1
	case hi1 > hi2 || (hi1 == hi2 && lo1 > lo2):
		mag = 1
	}
	// Both negative, so the larger magnitude is the smaller value
	if sa < 0 {
		return -mag
	}
	return mag
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign64(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
