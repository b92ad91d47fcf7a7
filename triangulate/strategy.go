// Package triangulate turns an outer polygon and its holes into triangles.
//
// Two strategies share one contract (polygon set in, triangle list out). Ear
// clipping is self contained: holes are bridged into a single vertex cycle
// (Merge) and ears are cut off one at a time (EarClip). Constrained Delaunay
// hands the polygons to an injected DelaunayPrimitive and canonicalizes what
// comes back. It gives better shaped triangles for path planning, which is why
// it's the default.
package triangulate

import (
	"strings"

	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrTriangulationFailed means the chosen strategy could not produce a valid
// triangulation. It's fatal for the mesh being built and is never retried.
var ErrTriangulationFailed = errors.New("triangulation failed")

type Strategy int

const (
	ConstrainedDelaunay Strategy = iota
	EarClipping
)

func (s Strategy) String() string {
	switch s {
	case ConstrainedDelaunay:
		return "delaunay"
	case EarClipping:
		return "earclip"
	}
	return "unknown"
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "delaunay", "cdt", "constrained-delaunay":
		return ConstrainedDelaunay, nil
	case "earclip", "ear-clipping", "earclipping":
		return EarClipping, nil
	}
	return 0, errors.Errorf("unknown triangulation strategy %q", name)
}

// Func is the contract every strategy satisfies. Every triangle returned is
// counterclockwise with strictly positive area.
type Func func(outer geom.Polygon, holes []geom.Polygon) ([]geom.Triangle, error)

// DelaunayPrimitive is the external constrained Delaunay triangulator. It
// takes a polygon with holes and returns a triangle soup covering exactly the
// region inside the outer polygon and outside the holes.
type DelaunayPrimitive interface {
	Triangulate(outer geom.Polygon, holes []geom.Polygon) ([][3]geom.IntPoint, error)
}

// Func binds the strategy. The primitive is only consulted by
// ConstrainedDelaunay, and must not be nil for it.
func (s Strategy) Func(primitive DelaunayPrimitive) Func {
	switch s {
	case EarClipping:
		return triangulateEarClipping
	case ConstrainedDelaunay:
		return func(outer geom.Polygon, holes []geom.Polygon) ([]geom.Triangle, error) {
			return triangulateDelaunay(primitive, outer, holes)
		}
	}
	return func(geom.Polygon, []geom.Polygon) ([]geom.Triangle, error) {
		return nil, errors.Errorf("unknown triangulation strategy %d", int(s))
	}
}

func triangulateEarClipping(outer geom.Polygon, holes []geom.Polygon) ([]geom.Triangle, error) {
	// Degenerate input isn't an error, there's just nothing to triangulate
	if outer.Len() < 3 {
		return nil, nil
	}
	cycle, err := Merge(outer, holes)
	if err != nil {
		return nil, failed(err)
	}
	logger.Debug("merged vertex cycle", zap.Int("vertices", cycle.Len()), zap.Int("holes", len(holes)))

	triangles, err := EarClip(cycle)
	if err != nil {
		return nil, failed(err)
	}
	return triangles, nil
}

func triangulateDelaunay(primitive DelaunayPrimitive, outer geom.Polygon, holes []geom.Polygon) ([]geom.Triangle, error) {
	if outer.Len() < 3 {
		return nil, nil
	}
	if primitive == nil {
		return nil, errors.WithMessage(ErrTriangulationFailed, "no constrained Delaunay primitive configured")
	}

	soup, err := primitive.Triangulate(outer, holes)
	if err != nil {
		return nil, failed(err)
	}

	triangles := make([]geom.Triangle, 0, len(soup))
	for _, tri := range soup {
		triangle := geom.NewTriangle(tri[0], tri[1], tri[2])
		if !triangle.IsValid() {
			return nil, errors.WithMessagef(ErrTriangulationFailed, "primitive returned degenerate triangle %s", triangle)
		}
		triangles = append(triangles, triangle)
	}
	return triangles, nil
}

// Invalid geometry keeps its own identity; anything else becomes a
// triangulation failure that still unwraps to the original error.
func failed(err error) error {
	if errors.Is(err, geom.ErrInvalidGeometry) || errors.Is(err, ErrTriangulationFailed) {
		return err
	}
	return &failure{cause: err}
}

type failure struct {
	cause error
}

func (f *failure) Error() string {
	return ErrTriangulationFailed.Error() + ": " + f.cause.Error()
}

func (f *failure) Unwrap() error {
	return f.cause
}

func (f *failure) Is(target error) bool {
	return target == ErrTriangulationFailed
}
