package fixture

// This contains no actual tests. It is just a helper for checking
// triangulation validity from any package's tests.

import (
	"testing"

	"github.com/osuushi/navmesh/geom"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation of a floor plan is valid. The rules are:
// 1. The set of points in the triangles must equal the set of points in the polygons.
// 2. Every boundary and hole edge is an edge of some triangle.
// 3. Every triangle is counterclockwise with nonzero area.
// 4. The sum of the areas of all triangles is the outer area minus the hole areas.
func AssertValidTriangulation(t *testing.T, plan Plan, triangles []geom.Triangle) {
	t.Helper()

	polygons := append([]geom.Polygon{plan.Outer}, plan.Holes...)

	polyPoints := make(map[geom.IntPoint]struct{})
	for _, poly := range polygons {
		for _, p := range poly.Points {
			polyPoints[p] = struct{}{}
		}
	}
	trianglePoints := make(map[geom.IntPoint]struct{})
	triangleEdges := make(map[geom.Edge]struct{})
	var triangleArea int64
	for _, tri := range triangles {
		require.True(t, geom.SignedArea2(tri.A, tri.B, tri.C) > 0, "triangle %s is not counterclockwise with positive area", tri)
		triangleArea += tri.DoubleArea()
		for i, p := range tri.Points() {
			trianglePoints[p] = struct{}{}
			triangleEdges[geom.NewEdge(p, tri.Points()[(i+1)%3])] = struct{}{}
		}
	}

	require.Equal(t, polyPoints, trianglePoints, "set of points in the triangles must equal the set of points in the polygons")

	for _, poly := range polygons {
		for _, e := range poly.Edges() {
			_, ok := triangleEdges[geom.NewEdge(e[0], e[1])]
			require.True(t, ok, "segment %s-%s of the floor plan is not an edge of any triangle", e[0], e[1])
		}
	}

	require.Equal(t, plan.DoubleArea(), triangleArea, "sum of the areas of all triangles must equal the area of the floor plan")
}
