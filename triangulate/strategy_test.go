package triangulate

import (
	"os"
	"testing"

	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/fixture"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Returns a canned soup, whatever it's asked to triangulate
type stubPrimitive struct {
	soup [][3]geom.IntPoint
	err  error
}

func (s stubPrimitive) Triangulate(geom.Polygon, []geom.Polygon) ([][3]geom.IntPoint, error) {
	return s.soup, s.err
}

func TestParseStrategy(t *testing.T) {
	for name, expected := range map[string]Strategy{
		"delaunay":     ConstrainedDelaunay,
		"CDT":          ConstrainedDelaunay,
		"earclip":      EarClipping,
		"Ear-Clipping": EarClipping,
	} {
		s, err := ParseStrategy(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, s, name)
	}

	_, err := ParseStrategy("monotone")
	assert.EqualError(t, err, `unknown triangulation strategy "monotone"`)

	assert.Equal(t, "delaunay", ConstrainedDelaunay.String())
	assert.Equal(t, "earclip", EarClipping.String())
	assert.Equal(t, ConstrainedDelaunay, Strategy(0), "the zero value is the default strategy")
}

func TestStrategy_EarClipping(t *testing.T) {
	triangulate := EarClipping.Func(nil)

	t.Run("square with hole", func(t *testing.T) {
		plan := fixture.SquareWithHole()
		triangles, err := triangulate(plan.Outer, plan.Holes)
		require.NoError(t, err)
		assert.Len(t, triangles, 8)
		fixture.AssertValidTriangulation(t, plan, triangles)
	})

	t.Run("degenerate outer polygon", func(t *testing.T) {
		triangles, err := triangulate(poly(0, 0, 1, 1), nil)
		assert.NoError(t, err)
		assert.Empty(t, triangles)
	})

	t.Run("invalid hole", func(t *testing.T) {
		plan := fixture.SquareWithHole()
		_, err := triangulate(plan.Outer, []geom.Polygon{poly(2, 2, 3, 3)})
		assert.True(t, errors.Is(err, geom.ErrInvalidGeometry))
		assert.False(t, errors.Is(err, ErrTriangulationFailed))
	})
}

func TestStrategy_ConstrainedDelaunay(t *testing.T) {
	plan := fixture.UnitSquare()

	t.Run("canonicalizes winding", func(t *testing.T) {
		soup := [][3]geom.IntPoint{
			{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}}, // clockwise
			{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, // counterclockwise
		}
		triangles, err := ConstrainedDelaunay.Func(stubPrimitive{soup: soup})(plan.Outer, plan.Holes)
		require.NoError(t, err)
		require.Len(t, triangles, 2)
		for _, tri := range triangles {
			assert.True(t, geom.SignedArea2(tri.A, tri.B, tri.C) > 0, "%s", tri)
		}
		fixture.AssertValidTriangulation(t, plan, triangles)
	})

	t.Run("degenerate triangle from the primitive", func(t *testing.T) {
		soup := [][3]geom.IntPoint{{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}}
		_, err := ConstrainedDelaunay.Func(stubPrimitive{soup: soup})(plan.Outer, plan.Holes)
		assert.True(t, errors.Is(err, ErrTriangulationFailed))
	})

	t.Run("primitive failure is surfaced", func(t *testing.T) {
		_, err := ConstrainedDelaunay.Func(stubPrimitive{err: errors.New("boom")})(plan.Outer, plan.Holes)
		assert.True(t, errors.Is(err, ErrTriangulationFailed))
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("primitive error type survives", func(t *testing.T) {
		cause := &os.PathError{Op: "exec", Path: "triangle", Err: os.ErrNotExist}
		_, err := ConstrainedDelaunay.Func(stubPrimitive{err: cause})(plan.Outer, plan.Holes)
		assert.True(t, errors.Is(err, ErrTriangulationFailed))
		assert.True(t, errors.Is(err, os.ErrNotExist))

		var pathErr *os.PathError
		require.True(t, errors.As(err, &pathErr))
		assert.Equal(t, "triangle", pathErr.Path)
		assert.Equal(t, "triangulation failed: exec triangle: file does not exist", err.Error())
	})

	t.Run("invalid geometry keeps its identity", func(t *testing.T) {
		cause := errors.Wrap(geom.ErrInvalidGeometry, "overlapping holes")
		_, err := ConstrainedDelaunay.Func(stubPrimitive{err: cause})(plan.Outer, plan.Holes)
		assert.True(t, errors.Is(err, geom.ErrInvalidGeometry))
	})

	t.Run("no primitive", func(t *testing.T) {
		_, err := ConstrainedDelaunay.Func(nil)(plan.Outer, plan.Holes)
		assert.True(t, errors.Is(err, ErrTriangulationFailed))
	})

	t.Run("degenerate outer polygon", func(t *testing.T) {
		triangles, err := ConstrainedDelaunay.Func(nil)(geom.Polygon{}, nil)
		assert.NoError(t, err)
		assert.Empty(t, triangles)
	})
}

func TestStrategy_Unknown(t *testing.T) {
	_, err := Strategy(42).Func(nil)(fixture.UnitSquare().Outer, nil)
	assert.Error(t, err)
}
