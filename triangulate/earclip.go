package triangulate

import (
	"github.com/osuushi/navmesh/geom"
)

// EarClip triangulates a merged vertex cycle by repeatedly cutting off ears.
// The cycle is consumed.
//
// When several ears are available, the one with the lowest vertex index is
// clipped. Any choice gives a valid triangulation; fixing the rule makes the
// output reproducible.
func EarClip(cycle *Cycle) (triangles []geom.Triangle, err error) {
	defer func() {
		recoveredErr := HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			triangles = nil
			err = recoveredErr
		}
	}()
	return newClipper(cycle).run(), nil
}

// Per-run state. Flags are indexed by cycle index, and nothing here is shared
// between runs.
type clipper struct {
	cycle  *Cycle
	reflex []bool
	ear    []bool
}

func newClipper(cycle *Cycle) *clipper {
	return &clipper{
		cycle:  cycle,
		reflex: make([]bool, cycle.Cap()),
		ear:    make([]bool, cycle.Cap()),
	}
}

func (c *clipper) run() []geom.Triangle {
	if c.cycle.Len() < 3 {
		return nil
	}
	if c.cycle.Len() == 3 {
		return c.appendLast(nil)
	}

	triangles := make([]geom.Triangle, 0, c.cycle.Len()-2)

	for _, i := range c.cycle.Indices() {
		c.reflex[i] = c.cycle.isReflex(i)
	}
	c.computeEars()

	for c.cycle.Len() > 3 {
		tip := c.nextEar()
		if tip < 0 {
			// Neighbor updates only revisit the two vertices next to a clipped
			// ear. A full rescan catches ears that were unblocked further away.
			c.computeEars()
			if tip = c.nextEar(); tip < 0 {
				fatalf("no ear found with %d vertices remaining", c.cycle.Len())
			}
		}
		triangles = append(triangles, c.clip(tip))
	}
	return c.appendLast(triangles)
}

func (c *clipper) computeEars() {
	for _, i := range c.cycle.Indices() {
		c.ear[i] = !c.reflex[i] && c.isEar(i)
	}
}

// The lowest indexed live ear, or -1.
func (c *clipper) nextEar() int {
	for i, isEar := range c.ear {
		if isEar && !c.cycle.Removed(i) {
			return i
		}
	}
	return -1
}

// A convex vertex is an ear when the triangle it makes with its neighbors has
// no reflex vertex inside or on it. Vertices sitting on one of the triangle's
// corners (the duplicates left by hole bridges) don't count.
func (c *clipper) isEar(tip int) bool {
	prev, next := c.cycle.Prev(tip), c.cycle.Next(tip)
	a, b, d := c.cycle.Point(prev), c.cycle.Point(tip), c.cycle.Point(next)
	triangle := geom.Triangle{A: a, B: b, C: d}

	for i := c.cycle.Next(next); i != prev; i = c.cycle.Next(i) {
		if !c.reflex[i] {
			continue
		}
		p := c.cycle.Point(i)
		if p == a || p == b || p == d {
			continue
		}
		if triangle.ContainsPoint(p) {
			return false
		}
	}
	return true
}

func (c *clipper) clip(tip int) geom.Triangle {
	prev, next := c.cycle.Prev(tip), c.cycle.Next(tip)
	triangle := geom.NewTriangle(c.cycle.Point(prev), c.cycle.Point(tip), c.cycle.Point(next))

	c.cycle.Remove(tip)
	c.ear[tip] = false
	c.reflex[tip] = false

	// The neighbors may have flipped between convex and reflex, and may have
	// gained or lost ear status
	for _, i := range [2]int{prev, next} {
		c.reflex[i] = c.cycle.isReflex(i)
		c.ear[i] = !c.reflex[i] && c.isEar(i)
	}
	return triangle
}

// Emit the triangle made by the three remaining vertices, unless it's
// degenerate.
func (c *clipper) appendLast(triangles []geom.Triangle) []geom.Triangle {
	head := c.cycle.Head()
	a := c.cycle.Point(c.cycle.Prev(head))
	b := c.cycle.Point(head)
	d := c.cycle.Point(c.cycle.Next(head))
	triangle := geom.NewTriangle(a, b, d)
	if !triangle.IsValid() {
		return triangles
	}
	return append(triangles, triangle)
}
