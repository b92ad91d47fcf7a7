package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxCoordinate is the documented bound on input coordinates. Cross products
// and rational comparisons stay inside 64 bit intermediates when every input
// coordinate lies in [-MaxCoordinate, MaxCoordinate]. This is a precondition,
// not something we check.
const MaxCoordinate = 1 << 20

// IntPoint is an input vertex on the integer grid.
type IntPoint struct {
	X, Y int64
}

func (p IntPoint) Sub(o IntPoint) IntPoint {
	return IntPoint{p.X - o.X, p.Y - o.Y}
}

// Less is a lexicographic (x, then y) ordering, used to normalize edges.
func (p IntPoint) Less(o IntPoint) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

func (p IntPoint) Rational() RationalPoint {
	return RationalPoint{IntRational(p.X), IntRational(p.Y)}
}

func (p IntPoint) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{float64(p.X), float64(p.Y)}
}

func (p IntPoint) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// RationalPoint is a point whose coordinates are exact fractions. It shows up
// wherever a predicate has to stay exact across a division: ray intersections
// while bridging holes, centroids, and continuous agent positions in the
// funnel.
type RationalPoint struct {
	X, Y Rational
}

func NewRationalPoint(x, y Rational) RationalPoint {
	return RationalPoint{x, y}
}

// FloatPoint converts a continuous position into exact form. See FromFloat.
func FloatPoint(x, y float64) RationalPoint {
	return RationalPoint{FromFloat(x), FromFloat(y)}
}

func (p RationalPoint) Equal(o RationalPoint) bool {
	return p.X.Equal(o.X) && p.Y.Equal(o.Y)
}

func (p RationalPoint) Add(o RationalPoint) RationalPoint {
	return RationalPoint{p.X.Add(o.X), p.Y.Add(o.Y)}
}

func (p RationalPoint) Sub(o RationalPoint) RationalPoint {
	return RationalPoint{p.X.Sub(o.X), p.Y.Sub(o.Y)}
}

// Vec2 evaluates the point. This loses precision, so only use it for output
// and for distances that never feed back into a geometric decision.
func (p RationalPoint) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{p.X.Float64(), p.Y.Float64()}
}

func (p RationalPoint) String() string {
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}
