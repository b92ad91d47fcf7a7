package geom

import "math/big"

// Everything in the package reduces to one predicate: twice the signed area of
// the triangle (a, b, c). It is positive when the points wind counterclockwise,
// i.e. c lies to the left of the directed line a->b, and zero when they are
// collinear.
func SignedArea2(a, b, c IntPoint) int64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// A vertex is convex when its neighbors wind counterclockwise around it.
// Collinear vertices are not convex.
func IsConvex(prev, curr, next IntPoint) bool {
	return SignedArea2(prev, curr, next) > 0
}

// Orient is the sign of the signed area for rational points: 1 for
// counterclockwise, -1 for clockwise, 0 for collinear.
//
// Rational points in a single query can carry unrelated denominators (a
// continuous agent position against a ray intersection, say), so the products
// here can exceed 64 bits even for in-bound coordinates. We evaluate the cross
// product over big.Rat so the answer is always exact.
func Orient(a, b, c RationalPoint) int {
	ax, ay := bigRat(a.X), bigRat(a.Y)
	bx, by := bigRat(b.X), bigRat(b.Y)
	cx, cy := bigRat(c.X), bigRat(c.Y)

	abx := new(big.Rat).Sub(bx, ax)
	aby := new(big.Rat).Sub(by, ay)
	acx := new(big.Rat).Sub(cx, ax)
	acy := new(big.Rat).Sub(cy, ay)

	lhs := new(big.Rat).Mul(abx, acy)
	rhs := new(big.Rat).Mul(aby, acx)
	return lhs.Cmp(rhs)
}

func bigRat(r Rational) *big.Rat {
	return big.NewRat(r.Num(), r.d())
}

// SegmentsIntersect reports whether the closed segments ab and cd share any
// point, including touching endpoints and collinear overlap.
func SegmentsIntersect(a, b, c, d IntPoint) bool {
	d1 := sign64(SignedArea2(c, d, a))
	d2 := sign64(SignedArea2(c, d, b))
	d3 := sign64(SignedArea2(a, b, c))
	d4 := sign64(SignedArea2(a, b, d))
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return d1 == 0 && inSpan(c, d, a) ||
		d2 == 0 && inSpan(c, d, b) ||
		d3 == 0 && inSpan(a, b, c) ||
		d4 == 0 && inSpan(a, b, d)
}

// For p collinear with ab: is p between a and b?
func inSpan(a, b, p IntPoint) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

// Inclusive containment: points on an edge count as inside. The triangle may
// wind either way.
func triangleContains(a, b, c, p IntPoint) bool {
	d1 := SignedArea2(p, a, b)
	d2 := SignedArea2(p, b, c)
	d3 := SignedArea2(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// InTriangle is inclusive containment for rational points.
func InTriangle(a, b, c, p RationalPoint) bool {
	d1 := Orient(p, a, b)
	d2 := Orient(p, b, c)
	d3 := Orient(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// InCone reports whether p lies strictly inside the interior wedge at vertex
// curr of a counterclockwise cycle (prev, curr, next). Reflex wedges are
// handled too.
func InCone(prev, curr, next, p IntPoint) bool {
	if IsConvex(prev, curr, next) {
		return SignedArea2(curr, next, p) > 0 && SignedArea2(prev, curr, p) > 0
	}
	return !(SignedArea2(curr, next, p) <= 0 && SignedArea2(prev, curr, p) <= 0)
}

// InCircle is positive when d lies strictly inside the circumcircle of the
// counterclockwise triangle (a, b, c), zero when the four points are
// cocircular and negative outside.
//
// The determinant has degree four in the coordinates, which is too much for
// int64 even inside MaxCoordinate, so this uses big.Int.
func InCircle(a, b, c, d IntPoint) int {
	adx, ady := big.NewInt(a.X-d.X), big.NewInt(a.Y-d.Y)
	bdx, bdy := big.NewInt(b.X-d.X), big.NewInt(b.Y-d.Y)
	cdx, cdy := big.NewInt(c.X-d.X), big.NewInt(c.Y-d.Y)

	lift := func(x, y *big.Int) *big.Int {
		l := new(big.Int).Mul(x, x)
		return l.Add(l, new(big.Int).Mul(y, y))
	}
	cross := func(x1, y1, x2, y2 *big.Int) *big.Int {
		c := new(big.Int).Mul(x1, y2)
		return c.Sub(c, new(big.Int).Mul(y1, x2))
	}

	det := new(big.Int).Mul(lift(adx, ady), cross(bdx, bdy, cdx, cdy))
	det.Add(det, new(big.Int).Mul(lift(bdx, bdy), cross(cdx, cdy, adx, ady)))
	det.Add(det, new(big.Int).Mul(lift(cdx, cdy), cross(adx, ady, bdx, bdy)))
	return det.Sign()
}
