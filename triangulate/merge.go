package triangulate

import (
	"sort"

	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/logger"
	"go.uber.org/zap"
)

// Hole bridging, after Eberly's "Triangulation by Ear Clipping". Each hole is
// joined to the cycle built so far with a zero width cut from its rightmost
// vertex M to a vertex that M can see. Walking the cycle then goes out along
// the cut, around the hole, and back, which leaves one simple vertex cycle
// that the ear clipper can consume.
//
// Holes are processed rightmost first (ties broken by input index), which keeps
// the result deterministic and prevents later cuts from crossing earlier ones.

type holeInfo struct {
	// The hole's vertices, clockwise
	points    []geom.IntPoint
	index     int
	maxX      int64
	maxXIndex int
}

// Merge joins the outer polygon and its holes into a single vertex cycle. The
// outer polygon is traversed counterclockwise and holes clockwise, whatever
// order their vertices were given in; the input slices are never modified.
//
// Empty holes are skipped. Holes with one or two vertices or zero area, holes
// that aren't strictly inside the outer polygon, and holes that overlap, touch
// or nest inside each other give an error wrapping geom.ErrInvalidGeometry.
func Merge(outer geom.Polygon, holes []geom.Polygon) (cycle *Cycle, err error) {
	defer func() {
		recoveredErr := HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			cycle = nil
			err = recoveredErr
		}
	}()
	return merge(outer, holes), nil
}

func merge(outer geom.Polygon, holes []geom.Polygon) *Cycle {
	points := outer.Points
	if outer.SignedArea2() < 0 {
		points = outer.Reverse().Points
	}
	cycle := NewCycle(points)

	infos := buildHoleInfo(holes)
	checkHoles(points, infos)
	for _, hole := range infos {
		bridge := findBridgeVertex(cycle, hole)
		logger.Debug("bridging hole",
			zap.Int("hole", hole.index),
			zap.Stringer("from", hole.points[hole.maxXIndex]),
			zap.Stringer("to", cycle.Point(bridge)),
		)
		spliceHole(cycle, bridge, hole)
	}
	return cycle
}

func buildHoleInfo(holes []geom.Polygon) []holeInfo {
	var infos []holeInfo
	for i, hole := range holes {
		switch {
		case hole.Len() == 0:
			continue
		case hole.Len() < 3:
			invalidf("hole %d has %d vertices", i, hole.Len())
		}

		area := hole.SignedArea2()
		if area == 0 {
			invalidf("hole %d has zero area", i)
		}
		points := hole.Points
		if area > 0 {
			points = hole.Reverse().Points
		}

		info := holeInfo{points: points, index: i, maxX: points[0].X}
		for j, p := range points {
			if p.X > info.maxX {
				info.maxX = p.X
				info.maxXIndex = j
			}
		}
		infos = append(infos, info)
	}

	sort.SliceStable(infos, func(a, b int) bool {
		if infos[a].maxX != infos[b].maxX {
			return infos[a].maxX > infos[b].maxX
		}
		return infos[a].index < infos[b].index
	})
	return infos
}

// Holes must lie strictly inside the outer polygon, and must neither touch nor
// contain one another.
func checkHoles(outer []geom.IntPoint, holes []holeInfo) {
	outerPolygon := geom.Polygon{Points: outer}
	for i, hole := range holes {
		if edgesIntersect(outer, hole.points) {
			invalidf("hole %d touches the outer boundary", hole.index)
		}
		// With no edges crossing, one vertex decides the whole hole
		if !outerPolygon.ContainsPoint(hole.points[0]) {
			invalidf("hole %d is not inside the outer polygon", hole.index)
		}

		for _, other := range holes[i+1:] {
			if edgesIntersect(hole.points, other.points) {
				invalidf("holes %d and %d overlap", min(hole.index, other.index), max(hole.index, other.index))
			}
			if (geom.Polygon{Points: hole.points}).ContainsPoint(other.points[0]) {
				invalidf("hole %d is inside hole %d", other.index, hole.index)
			}
			if (geom.Polygon{Points: other.points}).ContainsPoint(hole.points[0]) {
				invalidf("hole %d is inside hole %d", hole.index, other.index)
			}
		}
	}
}

// Does any edge of cycle a share a point with any edge of cycle b?
func edgesIntersect(a, b []geom.IntPoint) bool {
	for i := range a {
		p, q := a[i], a[(i+1)%len(a)]
		for j := range b {
			if geom.SegmentsIntersect(p, q, b[j], b[(j+1)%len(b)]) {
				return true
			}
		}
	}
	return false
}

// Find a vertex of the cycle that is mutually visible with the hole's
// rightmost vertex M, and return its index.
func findBridgeVertex(cycle *Cycle, hole holeInfo) int {
	m := hole.points[hole.maxXIndex]

	ix, edgeStart := findNearestIntersection(cycle, m)

	// A vertex lying exactly on the ray is seen directly, as long as no edge
	// crosses the ray before it. This also covers the ray hitting the end of
	// an edge, and vertices at the end of a horizontal edge along the ray,
	// which the edge test skips.
	if v := nearestVertexOnRay(cycle, m); v >= 0 {
		if edgeStart < 0 || geom.IntRational(cycle.Point(v).X).LessEq(ix) {
			return resolveDuplicate(cycle, v, m)
		}
	}
	if edgeStart < 0 {
		invalidf("hole %d is not inside the outer polygon: no edge to the right of %s", hole.index, m)
	}
	edgeEnd := cycle.Next(edgeStart)
	a, b := cycle.Point(edgeStart), cycle.Point(edgeEnd)

	// The test region is the triangle formed by M, the intersection I, and P, the
	// rightmost endpoint of the hit edge. If no reflex vertex lies in it, P is
	// visible from M.
	p := edgeEnd
	if a.X > b.X {
		p = edgeStart
	}
	intersection := geom.NewRationalPoint(ix, geom.IntRational(m.Y))
	obstructing := obstructingVertices(cycle, m.Rational(), intersection, cycle.Point(p).Rational())
	if len(obstructing) == 0 {
		return resolveDuplicate(cycle, p, m)
	}
	return resolveDuplicate(cycle, minimumAngleVertex(cycle, obstructing, m), m)
}

// Cast a ray from m in the +x direction and find the nearest edge it crosses.
// Returns the intersection x and the index of the vertex starting the edge (-1
// if nothing was hit).
func findNearestIntersection(cycle *Cycle, m geom.IntPoint) (nearestX geom.Rational, edgeStart int) {
	nearestX = geom.Infinity
	edgeStart = -1
	mx := geom.IntRational(m.X)

	for _, i := range cycle.Indices() {
		a := cycle.Point(i)
		b := cycle.Point(cycle.Next(i))
		if !isRayCandidate(m, a, b) {
			continue
		}

		// Everything here stays exact: t = (My - Ay) / (By - Ay) and
		// Ix = Ax + t * (Bx - Ax)
		t := geom.NewRational(m.Y-a.Y, b.Y-a.Y)
		x := geom.IntRational(a.X).Add(t.Mul(geom.IntRational(b.X - a.X)))
		if x.Less(mx) {
			continue
		}
		if x.Less(nearestX) {
			nearestX = x
			edgeStart = i
		}
	}
	return nearestX, edgeStart
}

// The closest cycle vertex strictly to the right of m at the same height, or
// -1.
func nearestVertexOnRay(cycle *Cycle, m geom.IntPoint) int {
	nearest := -1
	for _, i := range cycle.Indices() {
		p := cycle.Point(i)
		if p.Y != m.Y || p.X <= m.X {
			continue
		}
		if nearest < 0 || p.X < cycle.Point(nearest).X {
			nearest = i
		}
	}
	return nearest
}

func isRayCandidate(m, a, b geom.IntPoint) bool {
	if a.Y == b.Y {
		return false // Horizontal
	}
	if min(a.Y, b.Y) > m.Y || max(a.Y, b.Y) <= m.Y {
		return false // Entirely above or below the ray
	}
	// The interior of the cycle is on the left of each edge, so M must be too,
	// otherwise we'd be looking at the edge from outside
	return geom.SignedArea2(a, b, m) > 0
}

func obstructingVertices(cycle *Cycle, m, intersection, p geom.RationalPoint) []int {
	var obstructing []int
	for _, i := range cycle.Indices() {
		if !cycle.isReflex(i) {
			continue
		}
		if geom.InTriangle(m, intersection, p, cycle.Point(i).Rational()) {
			obstructing = append(obstructing, i)
		}
	}
	return obstructing
}

// Of the obstructing vertices, the one making the smallest angle with the ray
// is visible. Everything in the test region has x >= M.x, so comparing
// cos^2 = dx^2 / (dx^2 + dy^2) orders the angles without a square root or a
// division. Equal angles are broken by distance, then by cycle order.
func minimumAngleVertex(cycle *Cycle, candidates []int, m geom.IntPoint) int {
	best := -1
	var bestScore geom.Rational
	var bestDist int64
	for _, i := range candidates {
		d := cycle.Point(i).Sub(m)
		dist := d.X*d.X + d.Y*d.Y
		if dist == 0 {
			continue
		}
		score := geom.NewRational(d.X*d.X, dist)
		if best < 0 || score.Greater(bestScore) || score.Equal(bestScore) && dist < bestDist {
			best, bestScore, bestDist = i, score, dist
		}
	}
	if best < 0 {
		fatalf("no usable bridge vertex for %s", m)
	}
	return best
}

// After earlier bridges, the chosen coordinate can appear more than once in the
// cycle. Only one of the copies has M inside its interior angle, and splicing
// anywhere else would cross the cycle over itself.
func resolveDuplicate(cycle *Cycle, i int, m geom.IntPoint) int {
	p := cycle.Point(i)
	var copies []int
	for _, j := range cycle.Indices() {
		if cycle.Point(j) == p {
			copies = append(copies, j)
		}
	}
	if len(copies) < 2 {
		return i
	}
	for _, j := range copies {
		if geom.InCone(cycle.Point(cycle.Prev(j)), p, cycle.Point(cycle.Next(j)), m) {
			return j
		}
	}
	return i
}

// Splice the hole in after the bridge vertex: M, the rest of the hole, M again,
// then the bridge vertex again to rejoin the outer cycle.
func spliceHole(cycle *Cycle, bridge int, hole holeInfo) {
	n := len(hole.points)
	last := bridge
	// <= so that M is visited twice
	for i := 0; i <= n; i++ {
		last = cycle.InsertAfter(last, hole.points[(hole.maxXIndex+i)%n])
	}
	cycle.InsertAfter(last, cycle.Point(bridge))
}
