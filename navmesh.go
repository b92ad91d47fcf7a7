// Navigation meshes for 2D floor plans.
//
// This package turns a floor plan (an outer boundary polygon with integer
// coordinates, plus holes for the obstacles) into a mesh of triangles, and
// answers shortest path queries on it. Building is a one-shot step; the mesh
// is read-only afterwards, so any number of agents can plan paths on it at the
// same time.
//
// The subpackages expose each stage on its own: triangulate (hole bridging and
// ear clipping), cdt (constrained Delaunay), mesh (adjacency and point
// location) and pathfind (graph search and the funnel).
package navmesh

import (
	"github.com/osuushi/navmesh/cdt"
	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/logger"
	"github.com/osuushi/navmesh/mesh"
	"github.com/osuushi/navmesh/pathfind"
	"github.com/osuushi/navmesh/triangulate"
	"go.uber.org/zap"
)

type Point = geom.IntPoint
type RationalPoint = geom.RationalPoint
type Polygon = geom.Polygon
type Triangle = geom.Triangle
type NavMesh = mesh.NavMesh

var (
	ErrInvalidGeometry     = geom.ErrInvalidGeometry
	ErrTriangulationFailed = triangulate.ErrTriangulationFailed
	ErrInvalidCellSize     = mesh.ErrInvalidCellSize
	ErrNoPath              = pathfind.ErrNoPath
	ErrOffMesh             = pathfind.ErrOffMesh
)

type buildOptions struct {
	strategy  triangulate.Strategy
	primitive triangulate.DelaunayPrimitive
}

// Option configures BuildNavMesh.
type Option func(*buildOptions)

// WithStrategy picks the triangulation strategy. The default is
// triangulate.ConstrainedDelaunay.
func WithStrategy(strategy triangulate.Strategy) Option {
	return func(o *buildOptions) {
		o.strategy = strategy
	}
}

// WithDelaunay replaces the constrained Delaunay primitive (cdt.New() by
// default).
func WithDelaunay(primitive triangulate.DelaunayPrimitive) Option {
	return func(o *buildOptions) {
		o.primitive = primitive
	}
}

// Triangulate triangulates a floor plan without building a mesh.
//
// The outer polygon should wind counterclockwise and holes clockwise, but
// either winding is accepted. Holes must be simple, must not overlap each
// other, and must lie inside the outer polygon. Coordinates must stay within
// ±2^20.
func Triangulate(outer Polygon, holes []Polygon, opts ...Option) ([]Triangle, error) {
	o := buildOptions{
		strategy:  triangulate.ConstrainedDelaunay,
		primitive: cdt.New(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o.strategy.Func(o.primitive)(outer, holes)
}

// BuildNavMesh triangulates the floor plan and builds the navigation mesh,
// indexing the triangles in a grid with square cells of the given size.
func BuildNavMesh(outer Polygon, holes []Polygon, cellSize int64, opts ...Option) (*NavMesh, error) {
	triangles, err := Triangulate(outer, holes, opts...)
	if err != nil {
		return nil, err
	}
	m, err := mesh.Build(triangles, cellSize)
	if err != nil {
		return nil, err
	}
	logger.Debug("built navmesh",
		zap.Int("holes", len(holes)),
		zap.Int("nodes", m.Len()),
		zap.Int("cells", m.Grid().Len()),
	)
	return m, nil
}

// PlanPath returns the waypoints from src to dst, both included. An
// unreachable destination gives ErrNoPath, and a point outside the mesh gives
// ErrOffMesh.
func PlanPath(m *NavMesh, src, dst RationalPoint) ([]RationalPoint, error) {
	return pathfind.Plan(m, src, dst)
}

// LocatePoint lists the nodes containing p. A point on a shared edge or vertex
// is in more than one node.
func LocatePoint(m *NavMesh, p RationalPoint) []int {
	return m.Locate(p)
}
