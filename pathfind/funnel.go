package pathfind

import (
	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/mesh"
	"github.com/pkg/errors"
)

// Portal is the segment an agent crosses going from one node to the next. Left
// and Right are as seen by the agent facing the direction of travel.
type Portal struct {
	Left, Right geom.RationalPoint
}

// Reports whether p is on the portal, strictly between its endpoints.
func (portal Portal) splits(p geom.RationalPoint) bool {
	if p.Equal(portal.Left) || p.Equal(portal.Right) || geom.Orient(portal.Left, portal.Right, p) != 0 {
		return false
	}
	return between(portal.Left.X, portal.Right.X, p.X) && between(portal.Left.Y, portal.Right.Y, p.Y)
}

func between(a, b, v geom.Rational) bool {
	return (a.LessEq(v) && v.LessEq(b)) || (b.LessEq(v) && v.LessEq(a))
}

// Portals builds the funnel input for a node chain: a zero width portal at src,
// one portal per shared edge, and a zero width portal at dst.
func Portals(m *mesh.NavMesh, path []int, src, dst geom.RationalPoint) ([]Portal, error) {
	portals := make([]Portal, 0, len(path)+1)
	portals = append(portals, Portal{Left: src, Right: src})

	for i := 0; i+1 < len(path); i++ {
		// Node winding is counterclockwise, so walking out of a node across its
		// edge a->b puts a on the right and b on the left
		right, left, ok := m.SharedEdge(path[i], path[i+1])
		if !ok {
			return nil, errors.Errorf("nodes %d and %d are not adjacent", path[i], path[i+1])
		}
		portals = append(portals, Portal{Left: left.Rational(), Right: right.Rational()})
	}

	return append(portals, Portal{Left: dst, Right: dst}), nil
}

// Funnel pulls the string through a portal list, giving the shortest polyline
// from the first portal to the last that stays inside the corridor. The first
// and last portals are expected to be the zero width source and destination
// portals that Portals produces.
//
// This is the "simple stupid funnel" scan: keep an apex and the tightest left
// and right bounds seen so far. A portal endpoint that narrows its side of the
// funnel tightens it, unless it crosses over the other side, in which case the
// other side's point becomes a waypoint and the scan restarts from there. Every
// test is exact.
func Funnel(portals []Portal) []geom.RationalPoint {
	if len(portals) == 0 {
		return nil
	}

	apex := portals[0].Left
	left, right := portals[0].Left, portals[0].Right
	apexIndex, leftIndex, rightIndex := 0, 0, 0

	points := []geom.RationalPoint{apex}
	emit := func(p geom.RationalPoint) {
		if !points[len(points)-1].Equal(p) {
			points = append(points, p)
		}
	}

	for i := 1; i < len(portals); i++ {
		portalLeft, portalRight := portals[i].Left, portals[i].Right

		// From a point inside a portal the funnel would open to a straight
		// angle, so a portal through a fresh apex doesn't narrow anything
		if apex.Equal(left) && apex.Equal(right) && portals[i].splits(apex) {
			continue
		}

		// Update the right side
		if geom.Orient(apex, right, portalRight) >= 0 {
			if apex.Equal(right) || geom.Orient(apex, left, portalRight) < 0 {
				// Tighten the funnel
				right = portalRight
				rightIndex = i
			} else {
				// Right crossed over left: left becomes a corner of the path, and
				// we restart from it
				emit(left)
				apex, apexIndex = left, leftIndex
				left, right = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}

		// Update the left side
		if geom.Orient(apex, left, portalLeft) <= 0 {
			if apex.Equal(left) || geom.Orient(apex, right, portalLeft) > 0 {
				left = portalLeft
				leftIndex = i
			} else {
				emit(right)
				apex, apexIndex = right, rightIndex
				left, right = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}
	}

	emit(portals[len(portals)-1].Left)
	return points
}
