package navmesh

import (
	"testing"

	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/fixture"
	"github.com/osuushi/navmesh/triangulate"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPrimitive struct{}

func (failingPrimitive) Triangulate(geom.Polygon, []geom.Polygon) ([][3]geom.IntPoint, error) {
	return nil, errors.New("constraint edge went missing")
}

// Smoke tests. The internals are already tested.
func TestBuildNavMesh(t *testing.T) {
	square := fixture.UnitSquare()
	m, err := BuildNavMesh(square.Outer, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	assert.NoError(t, m.Validate())

	plan := fixture.SquareWithHole()
	for _, strategy := range []triangulate.Strategy{triangulate.ConstrainedDelaunay, triangulate.EarClipping} {
		t.Run(strategy.String(), func(t *testing.T) {
			m, err := BuildNavMesh(plan.Outer, plan.Holes, 4, WithStrategy(strategy))
			require.NoError(t, err)
			assert.Equal(t, 8, m.Len())
			assert.NoError(t, m.Validate())
		})
	}
}

func TestBuildNavMesh_Errors(t *testing.T) {
	plan := fixture.SquareWithHole()

	_, err := BuildNavMesh(plan.Outer, plan.Holes, 0)
	assert.True(t, errors.Is(err, ErrInvalidCellSize))

	_, err = BuildNavMesh(plan.Outer, plan.Holes, 4, WithDelaunay(failingPrimitive{}))
	assert.True(t, errors.Is(err, ErrTriangulationFailed))

	// The custom primitive is ignored by ear clipping
	_, err = BuildNavMesh(plan.Outer, plan.Holes, 4, WithStrategy(triangulate.EarClipping), WithDelaunay(failingPrimitive{}))
	assert.NoError(t, err)

	outside := geom.NewPolygon(geom.IntPoint{X: 20, Y: 20}, geom.IntPoint{X: 20, Y: 22}, geom.IntPoint{X: 22, Y: 22})
	_, err = BuildNavMesh(plan.Outer, []Polygon{outside}, 4)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	room := fixture.Pillars().Outer
	overlapping := []Polygon{
		geom.NewPolygon(geom.IntPoint{X: 10, Y: 5}, geom.IntPoint{X: 10, Y: 25}, geom.IntPoint{X: 50, Y: 25}, geom.IntPoint{X: 50, Y: 5}),
		geom.NewPolygon(geom.IntPoint{X: 30, Y: 15}, geom.IntPoint{X: 30, Y: 35}, geom.IntPoint{X: 70, Y: 35}, geom.IntPoint{X: 70, Y: 15}),
	}
	nested := []Polygon{
		geom.NewPolygon(geom.IntPoint{X: 10, Y: 5}, geom.IntPoint{X: 10, Y: 35}, geom.IntPoint{X: 50, Y: 35}, geom.IntPoint{X: 50, Y: 5}),
		geom.NewPolygon(geom.IntPoint{X: 20, Y: 10}, geom.IntPoint{X: 20, Y: 20}, geom.IntPoint{X: 30, Y: 20}, geom.IntPoint{X: 30, Y: 10}),
	}
	for _, strategy := range []triangulate.Strategy{triangulate.ConstrainedDelaunay, triangulate.EarClipping} {
		_, err = BuildNavMesh(room, overlapping, 4, WithStrategy(strategy))
		assert.True(t, errors.Is(err, ErrInvalidGeometry), "%s: overlapping holes gave %v", strategy, err)
		_, err = BuildNavMesh(room, nested, 4, WithStrategy(strategy))
		assert.True(t, errors.Is(err, ErrInvalidGeometry), "%s: nested holes gave %v", strategy, err)
	}
}

func TestTriangulate(t *testing.T) {
	triangles, err := Triangulate(geom.NewPolygon(
		geom.IntPoint{X: 1, Y: -1},
		geom.IntPoint{X: 1, Y: 1},
		geom.IntPoint{X: -1, Y: 1},
		geom.IntPoint{X: -1, Y: -1},
	), nil)
	assert.NoError(t, err)
	assert.Len(t, triangles, 2)

	// Fewer than three vertices is nothing to triangulate, not an error
	triangles, err = Triangulate(geom.NewPolygon(geom.IntPoint{}, geom.IntPoint{X: 1}), nil)
	assert.NoError(t, err)
	assert.Empty(t, triangles)
}

func TestPlanPath(t *testing.T) {
	plan := fixture.SquareWithHole()
	m, err := BuildNavMesh(plan.Outer, plan.Holes, 4)
	require.NoError(t, err)

	src, dst := geom.FloatPoint(0.5, 0.5), geom.FloatPoint(1.5, 0.5)
	path, err := PlanPath(m, src, dst)
	require.NoError(t, err)
	assert.Equal(t, []RationalPoint{src, dst}, path)

	path, err = PlanPath(m, geom.FloatPoint(5, 1), geom.FloatPoint(5, 9))
	require.NoError(t, err)
	assert.Len(t, path, 4, "around one side of the hole")

	_, err = PlanPath(m, geom.FloatPoint(5, 5), geom.FloatPoint(1, 1))
	assert.True(t, errors.Is(err, ErrOffMesh))

	assert.NotEmpty(t, LocatePoint(m, geom.FloatPoint(1, 9)))
	assert.Empty(t, LocatePoint(m, geom.FloatPoint(5, 5)))
}
