package geom

import (
	"github.com/pkg/errors"
)

// ErrInvalidGeometry is returned for input the algorithms cannot make sense of:
// holes with one or two vertices, holes outside the boundary, edges shared by
// more than two triangles, degenerate triangles.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Edge is a direction-agnostic segment, usable as a map key. The
// lexicographically smaller endpoint is always A.
type Edge struct {
	A, B IntPoint
}

func NewEdge(a, b IntPoint) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{a, b}
}

func (e Edge) Has(p IntPoint) bool {
	return e.A == p || e.B == p
}
