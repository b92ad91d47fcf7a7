package triangulate

import (
	"testing"

	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/fixture"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(coords ...int64) []geom.IntPoint {
	result := make([]geom.IntPoint, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		result = append(result, geom.IntPoint{X: coords[i], Y: coords[i+1]})
	}
	return result
}

func poly(coords ...int64) geom.Polygon {
	return geom.NewPolygon(pts(coords...)...)
}

func expectedCycleLength(plan fixture.Plan) int {
	n := plan.Outer.Len()
	for _, hole := range plan.Holes {
		if hole.Len() > 0 {
			n += hole.Len() + 2
		}
	}
	return n
}

func TestMerge_SquareWithHole(t *testing.T) {
	expected := pts(
		0, 0,
		10, 0,
		10, 10,
		7, 7,
		7, 3,
		3, 3,
		3, 7,
		7, 7,
		10, 10,
		0, 10,
	)

	t.Run("as given", func(t *testing.T) {
		plan := fixture.SquareWithHole()
		cycle, err := Merge(plan.Outer, plan.Holes)
		require.NoError(t, err)
		assert.Equal(t, 10, cycle.Len())
		assert.Equal(t, expected, cycle.Points())
	})

	t.Run("windings reversed", func(t *testing.T) {
		plan := fixture.SquareWithHoleReversed()
		outerBefore := append([]geom.IntPoint(nil), plan.Outer.Points...)

		cycle, err := Merge(plan.Outer, plan.Holes)
		require.NoError(t, err)
		assert.Equal(t, expected, cycle.Points())
		// Only the traversal changes, never the input
		assert.Equal(t, outerBefore, plan.Outer.Points)
	})
}

func TestMerge_CycleLength(t *testing.T) {
	cases := map[string]fixture.Plan{
		"unit square":      fixture.UnitSquare(),
		"star":             fixture.Star(),
		"square with hole": fixture.SquareWithHole(),
		"pillars":          fixture.Pillars(),
		"nested bridges":   fixture.NestedBridges(),
		"detour":           fixture.Detour(),
		"rooms":            fixture.LoadFixture("rooms"),
	}
	for name, plan := range cases {
		t.Run(name, func(t *testing.T) {
			cycle, err := Merge(plan.Outer, plan.Holes)
			require.NoError(t, err)
			assert.Equal(t, expectedCycleLength(plan), cycle.Len())
		})
	}
}

func TestMerge_HoleOrder(t *testing.T) {
	// The rightmost hole is bridged first, straight to the outer wall. The
	// others are then bridged to the hole on their right, since its top left
	// corner sits exactly on their ray.
	plan := fixture.Pillars()
	cycle, err := Merge(plan.Outer, plan.Holes)
	require.NoError(t, err)

	points := cycle.Points()
	next := func(p geom.IntPoint) []geom.IntPoint {
		var result []geom.IntPoint
		for i, q := range points {
			if q == p {
				result = append(result, points[(i+1)%len(points)])
			}
		}
		return result
	}

	assert.Contains(t, next(geom.IntPoint{X: 100, Y: 40}), geom.IntPoint{X: 80, Y: 30})
	assert.Contains(t, next(geom.IntPoint{X: 70, Y: 30}), geom.IntPoint{X: 50, Y: 30})
	assert.Contains(t, next(geom.IntPoint{X: 40, Y: 30}), geom.IntPoint{X: 20, Y: 30})
}

func TestMerge_VertexOnRay(t *testing.T) {
	// The left hole's ray runs along the top edge of the right hole, so the
	// closest visible vertex is the right hole's top left corner
	plan := fixture.NestedBridges()
	cycle, err := Merge(plan.Outer, plan.Holes)
	require.NoError(t, err)

	points := cycle.Points()
	found := false
	for i, p := range points {
		if p == (geom.IntPoint{X: 30, Y: 20}) && points[(i+1)%len(points)] == (geom.IntPoint{X: 20, Y: 20}) {
			found = true
		}
	}
	assert.True(t, found, "expected a bridge from (30, 20) to (20, 20) in %v", points)
}

func TestMerge_ObstructedBridge(t *testing.T) {
	hole := poly(5, 10, 5, 20, 15, 20, 15, 10)

	// M is (15, 20). The ray hits x = 40 on the right wall, and P is its top
	// end. The notch at (25, 9) is reflex, but it is below the ray and outside
	// the test region, so P is visible.
	plan := fixture.Plan{
		Outer: poly(
			0, 0,
			40, 0,
			40, 5,
			25, 9,
			40, 14,
			40, 30,
			0, 30,
		),
		Holes: []geom.Polygon{hole},
	}
	cycle, err := Merge(plan.Outer, plan.Holes)
	require.NoError(t, err)
	assert.Equal(t, geom.IntPoint{X: 40, Y: 30}, bridgeFor(cycle, geom.IntPoint{X: 15, Y: 20}))
	assert.Equal(t, expectedCycleLength(plan), cycle.Len())

	// Now a notch hangs from the ceiling into the triangle (M, I, P) and hides
	// P, so the bridge goes to the notch's tip instead
	plan.Outer = poly(
		0, 0,
		40, 0,
		40, 40,
		32, 40,
		30, 26,
		28, 40,
		0, 40,
	)
	cycle, err = Merge(plan.Outer, plan.Holes)
	require.NoError(t, err)
	assert.Equal(t, geom.IntPoint{X: 30, Y: 26}, bridgeFor(cycle, geom.IntPoint{X: 15, Y: 20}))
}

// The vertex the cycle visits just before the first copy of m.
func bridgeFor(cycle *Cycle, m geom.IntPoint) geom.IntPoint {
	points := cycle.Points()
	for i, p := range points {
		if p == m {
			return points[(i-1+len(points))%len(points)]
		}
	}
	return geom.IntPoint{}
}

func TestMerge_InvalidHoles(t *testing.T) {
	outer := poly(0, 0, 10, 0, 10, 10, 0, 10)

	t.Run("empty hole is skipped", func(t *testing.T) {
		cycle, err := Merge(outer, []geom.Polygon{{}})
		require.NoError(t, err)
		assert.Equal(t, 4, cycle.Len())
	})

	t.Run("two vertex hole", func(t *testing.T) {
		_, err := Merge(outer, []geom.Polygon{poly(2, 2, 3, 3)})
		assert.True(t, errors.Is(err, geom.ErrInvalidGeometry))
	})

	t.Run("zero area hole", func(t *testing.T) {
		_, err := Merge(outer, []geom.Polygon{poly(2, 2, 3, 3, 4, 4)})
		assert.True(t, errors.Is(err, geom.ErrInvalidGeometry))
	})

	t.Run("hole outside the boundary", func(t *testing.T) {
		_, err := Merge(outer, []geom.Polygon{poly(20, 2, 20, 4, 22, 4, 22, 2)})
		assert.True(t, errors.Is(err, geom.ErrInvalidGeometry))
	})

	cases := map[string][]geom.Polygon{
		"overlapping holes": {
			poly(1, 1, 1, 5, 5, 5, 5, 1),
			poly(3, 3, 3, 8, 8, 8, 8, 3),
		},
		"nested holes": {
			poly(1, 1, 1, 9, 9, 9, 9, 1),
			poly(3, 3, 3, 6, 6, 6, 6, 3),
		},
		"nested holes, inner first": {
			poly(3, 3, 3, 6, 6, 6, 6, 3),
			poly(1, 1, 1, 9, 9, 9, 9, 1),
		},
		"holes sharing a corner": {
			poly(1, 1, 1, 4, 4, 4, 4, 1),
			poly(4, 4, 4, 7, 7, 7, 7, 4),
		},
		"holes sharing an edge": {
			poly(1, 1, 1, 4, 4, 4, 4, 1),
			poly(4, 1, 4, 4, 7, 4, 7, 1),
		},
		"hole crossing the boundary": {
			poly(8, 2, 8, 4, 12, 4, 12, 2),
		},
		"hole touching the boundary": {
			poly(5, 0, 4, 2, 6, 2),
		},
		"hole around the outer polygon": {
			poly(-5, -5, -5, 15, 15, 15, 15, -5),
		},
	}
	for name, holes := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Merge(outer, holes)
			assert.True(t, errors.Is(err, geom.ErrInvalidGeometry), "got %v", err)

			// Both strategies see the same error
			_, err = EarClipping.Func(nil)(outer, holes)
			assert.True(t, errors.Is(err, geom.ErrInvalidGeometry), "got %v", err)
		})
	}

	t.Run("holes side by side are fine", func(t *testing.T) {
		holes := []geom.Polygon{
			poly(1, 1, 1, 4, 4, 4, 4, 1),
			poly(5, 1, 5, 4, 8, 4, 8, 1),
		}
		cycle, err := Merge(outer, holes)
		require.NoError(t, err)
		assert.Equal(t, 4+6+6, cycle.Len())
	})
}
