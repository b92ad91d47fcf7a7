/*
Package cdt provides the default constrained Delaunay primitive used by the
ConstrainedDelaunay triangulation strategy.

It starts from any valid triangulation of the polygon with holes (the ear
clipper's) and applies Lawson's edge flips: every interior edge whose opposite
vertex falls strictly inside the circumcircle of its neighbor is replaced by
the other diagonal of the quad, until no such edge remains. Boundary and hole
edges are constraints and are never flipped, so the result is the constrained
Delaunay triangulation of the input. The in-circle predicate is exact, which
guarantees that flipping terminates.
*/
package cdt

import (
	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/logger"
	"github.com/osuushi/navmesh/triangulate"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Triangulator implements triangulate.DelaunayPrimitive.
type Triangulator struct{}

func New() *Triangulator {
	return &Triangulator{}
}

var _ triangulate.DelaunayPrimitive = (*Triangulator)(nil)

func (*Triangulator) Triangulate(outer geom.Polygon, holes []geom.Polygon) ([][3]geom.IntPoint, error) {
	seed, err := triangulate.EarClipping.Func(nil)(outer, holes)
	if err != nil {
		return nil, err
	}

	var constraints []geom.Edge
	for _, poly := range append([]geom.Polygon{outer}, holes...) {
		if poly.Len() < 3 {
			continue
		}
		for _, e := range poly.Edges() {
			constraints = append(constraints, geom.NewEdge(e[0], e[1]))
		}
	}
	return Legalize(seed, constraints)
}

// Legalize flips non-constraint edges of a triangulation until it is
// constrained Delaunay. Every constraint must already be an edge of some
// triangle.
func Legalize(triangles []geom.Triangle, constraints []geom.Edge) ([][3]geom.IntPoint, error) {
	t, err := newTriangulation(triangles, constraints)
	if err != nil {
		return nil, err
	}
	flips, err := t.legalize()
	if err != nil {
		return nil, err
	}
	logger.Debug("legalized triangulation", zap.Int("triangles", len(t.tris)), zap.Int("flips", flips))
	return t.tris, nil
}

type triangulation struct {
	tris  [][3]geom.IntPoint
	faces map[geom.Edge][]int // the (one or two) triangles on each edge
	fixed map[geom.Edge]bool

	stack  []geom.Edge
	queued map[geom.Edge]bool
}

func newTriangulation(triangles []geom.Triangle, constraints []geom.Edge) (*triangulation, error) {
	t := &triangulation{
		tris:   make([][3]geom.IntPoint, len(triangles)),
		faces:  make(map[geom.Edge][]int),
		fixed:  make(map[geom.Edge]bool),
		queued: make(map[geom.Edge]bool),
	}
	for _, e := range constraints {
		t.fixed[e] = true
	}

	for i, tri := range triangles {
		if !tri.IsValid() {
			return nil, errors.Wrapf(geom.ErrInvalidGeometry, "degenerate triangle %s", tri)
		}
		tri = geom.NewTriangle(tri.A, tri.B, tri.C)
		t.tris[i] = tri.Points()
		for k := 0; k < 3; k++ {
			e := geom.NewEdge(t.tris[i][k], t.tris[i][(k+1)%3])
			t.faces[e] = append(t.faces[e], i)
			if len(t.faces[e]) > 2 {
				return nil, errors.Wrapf(geom.ErrInvalidGeometry, "edge %s-%s is shared by more than two triangles", e.A, e.B)
			}
		}
	}

	for _, e := range constraints {
		if _, ok := t.faces[e]; !ok {
			return nil, errors.WithMessagef(triangulate.ErrTriangulationFailed, "constraint %s-%s is missing from the triangulation", e.A, e.B)
		}
	}

	// Queue in triangle order, so the flip sequence doesn't depend on map order
	for _, tri := range t.tris {
		for k := 0; k < 3; k++ {
			t.push(geom.NewEdge(tri[k], tri[(k+1)%3]))
		}
	}
	return t, nil
}

func (t *triangulation) push(e geom.Edge) {
	if t.fixed[e] || t.queued[e] || len(t.faces[e]) != 2 {
		return
	}
	t.queued[e] = true
	t.stack = append(t.stack, e)
}

func (t *triangulation) legalize() (int, error) {
	// Lawson flipping is quadratic in the worst case. Anything beyond that means
	// the input wasn't a proper triangulation.
	limit := len(t.tris)*len(t.tris) + 16
	flips := 0

	for len(t.stack) > 0 {
		e := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.queued[e] = false

		faces := t.faces[e]
		if len(faces) != 2 || t.fixed[e] {
			continue
		}

		// t1 holds the edge as a->b, t2 as b->a
		a, b := e.A, e.B
		t1, t2 := faces[0], faces[1]
		c, ok := opposite(t.tris[t1], a, b)
		if !ok {
			t1, t2 = t2, t1
			c, ok = opposite(t.tris[t1], a, b)
		}
		d, ok2 := opposite(t.tris[t2], b, a)
		if !ok || !ok2 {
			return flips, errors.WithMessagef(triangulate.ErrTriangulationFailed, "inconsistent orientation around edge %s-%s", a, b)
		}

		if geom.InCircle(a, b, c, d) <= 0 {
			continue
		}
		// d inside the circumcircle of abc implies the quad a,d,b,c is strictly
		// convex, so both new triangles are proper. Check anyway; a bad input
		// shouldn't turn into a corrupt mesh.
		if geom.SignedArea2(a, d, c) <= 0 || geom.SignedArea2(d, b, c) <= 0 {
			continue
		}

		flips++
		if flips > limit {
			return flips, errors.WithMessage(triangulate.ErrTriangulationFailed, "edge flipping did not converge")
		}
		t.flip(t1, t2, a, b, c, d)
	}
	return flips, nil
}

// Replace diagonal a-b of the quad a,d,b,c with c-d.
func (t *triangulation) flip(t1, t2 int, a, b, c, d geom.IntPoint) {
	t.tris[t1] = [3]geom.IntPoint{a, d, c}
	t.tris[t2] = [3]geom.IntPoint{d, b, c}

	delete(t.faces, geom.NewEdge(a, b))
	t.faces[geom.NewEdge(c, d)] = []int{t1, t2}
	replaceFace(t.faces[geom.NewEdge(a, d)], t2, t1)
	replaceFace(t.faces[geom.NewEdge(b, c)], t1, t2)

	for _, e := range [4]geom.Edge{
		geom.NewEdge(a, d),
		geom.NewEdge(d, b),
		geom.NewEdge(b, c),
		geom.NewEdge(c, a),
	} {
		t.push(e)
	}
}

// The vertex opposite the directed edge a->b, if the triangle has it.
func opposite(tri [3]geom.IntPoint, a, b geom.IntPoint) (geom.IntPoint, bool) {
	for k := 0; k < 3; k++ {
		if tri[k] == a && tri[(k+1)%3] == b {
			return tri[(k+2)%3], true
		}
	}
	return geom.IntPoint{}, false
}

func replaceFace(faces []int, from, to int) {
	for i, f := range faces {
		if f == from {
			faces[i] = to
			return
		}
	}
}
