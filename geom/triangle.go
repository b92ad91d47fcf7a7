package geom

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is always stored counterclockwise. A degenerate (collinear)
// triangle can be represented, but IsValid reports false for it and nothing in
// the triangulators ever emits one.
type Triangle struct {
	A, B, C IntPoint
}

// NewTriangle swaps B and C if needed so the triangle winds counterclockwise.
func NewTriangle(a, b, c IntPoint) Triangle {
	if SignedArea2(a, b, c) < 0 {
		b, c = c, b
	}
	return Triangle{a, b, c}
}

func (t Triangle) Points() [3]IntPoint {
	return [3]IntPoint{t.A, t.B, t.C}
}

func (t Triangle) IsValid() bool {
	return SignedArea2(t.A, t.B, t.C) != 0
}

// DoubleArea is twice the unsigned area, so it stays an integer.
func (t Triangle) DoubleArea() int64 {
	return abs64(SignedArea2(t.A, t.B, t.C))
}

// ContainsPoint is inclusive: points on an edge are inside.
func (t Triangle) ContainsPoint(p IntPoint) bool {
	return triangleContains(t.A, t.B, t.C, p)
}

func (t Triangle) ContainsRational(p RationalPoint) bool {
	return InTriangle(t.A.Rational(), t.B.Rational(), t.C.Rational(), p)
}

func (t Triangle) Centroid() RationalPoint {
	return RationalPoint{
		NewRational(t.A.X+t.B.X+t.C.X, 3),
		NewRational(t.A.Y+t.B.Y+t.C.Y, 3),
	}
}

func (t Triangle) BoundingBox() BoundingBox {
	return NewBoundingBox(t.A, t.B, t.C)
}

// RandomPoint samples uniformly inside the triangle.
func (t Triangle) RandomPoint(rng *rand.Rand) mgl64.Vec2 {
	u, v := rng.Float64(), rng.Float64()
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	a := t.A.Vec2()
	ab := t.B.Vec2().Sub(a)
	ac := t.C.Vec2().Sub(a)
	return a.Add(ab.Mul(u)).Add(ac.Mul(v))
}

func (t Triangle) String() string {
	return fmt.Sprintf("<%s, %s, %s>", t.A, t.B, t.C)
}
