package geom

import (
	"fmt"
	"strings"
)

type Winding int

const (
	CCW Winding = iota
	CW
)

func (w Winding) String() string {
	if w == CW {
		return "CW"
	}
	return "CCW"
}

// Polygon is an ordered vertex list with a winding tag. Outer boundaries are
// expected to be CCW and holes CW, but the merger works out the real winding
// from the vertices, so a wrong tag only affects what String prints.
type Polygon struct {
	Points  []IntPoint
	Winding Winding
}

// NewPolygon tags the polygon with the winding its vertices actually have.
// Degenerate (zero area) polygons are tagged CCW.
func NewPolygon(points ...IntPoint) Polygon {
	poly := Polygon{Points: points}
	if poly.SignedArea2() < 0 {
		poly.Winding = CW
	}
	return poly
}

func (poly Polygon) Len() int {
	return len(poly.Points)
}

// Often we want to treat the vertex list as a circular buffer
func (poly Polygon) At(i int) IntPoint {
	n := len(poly.Points)
	return poly.Points[(i%n+n)%n]
}

// SignedArea2 is the shoelace sum: twice the signed area, positive for CCW.
func (poly Polygon) SignedArea2() int64 {
	var sum int64
	for i, p := range poly.Points {
		q := poly.At(i + 1)
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum
}

func (poly Polygon) IsCCW() bool {
	return poly.SignedArea2() > 0
}

func (poly Polygon) Reverse() Polygon {
	reversed := Polygon{Points: make([]IntPoint, 0, len(poly.Points))}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		reversed.Points = append(reversed.Points, poly.Points[i])
	}
	reversed.Winding = CCW
	if poly.Winding == CCW {
		reversed.Winding = CW
	}
	return reversed
}

// Edges yields each boundary edge as (vertex i, vertex i+1).
func (poly Polygon) Edges() [][2]IntPoint {
	edges := make([][2]IntPoint, 0, len(poly.Points))
	for i, p := range poly.Points {
		edges = append(edges, [2]IntPoint{p, poly.At(i + 1)})
	}
	return edges
}

func (poly Polygon) BoundingBox() BoundingBox {
	return NewBoundingBox(poly.Points...)
}

// Even-odd point-in-polygon. Exact: the crossing test is done by cross
// multiplication rather than by solving for the intersection x.
func (poly Polygon) ContainsPoint(p IntPoint) bool {
	inside := false
	for i, a := range poly.Points {
		b := poly.At(i + 1)
		// Half-open in y so vertices on the scanline are only counted once
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		// Crossing is to the right of p iff p is on the inner side of the edge
		// relative to its upward direction
		area := SignedArea2(a, b, p)
		if b.Y > a.Y && area > 0 || b.Y < a.Y && area < 0 {
			inside = !inside
		}
	}
	return inside
}

func (poly Polygon) String() string {
	parts := make([]string, len(poly.Points))
	for i, p := range poly.Points {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s[%s]", poly.Winding, strings.Join(parts, ", "))
}
