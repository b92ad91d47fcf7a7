// Package pathfind answers shortest path queries on a navigation mesh: locate
// the endpoints, search the node graph, then pull the string through the
// corridor of shared edges.
//
// Nothing here mutates the mesh, so concurrent queries are safe.
package pathfind

import (
	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/logger"
	"github.com/osuushi/navmesh/mesh"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoPath is the normal result when the destination can't be reached from
// the source, such as when they are on disconnected parts of the mesh.
var ErrNoPath = errors.New("no path found")

// ErrOffMesh means the source or the destination isn't inside any node.
var ErrOffMesh = errors.New("point is not on the mesh")

// Plan returns the waypoints an agent follows from src to dst: src first, dst
// last, and the corners it has to turn around in between.
func Plan(m *mesh.NavMesh, src, dst geom.RationalPoint) ([]geom.RationalPoint, error) {
	path, err := Corridor(m, src, dst)
	if err != nil {
		return nil, err
	}
	if len(path) == 1 {
		return []geom.RationalPoint{src, dst}, nil
	}

	portals, err := Portals(m, path, src, dst)
	if err != nil {
		return nil, err
	}
	waypoints := Funnel(portals)

	logger.Debug("planned path",
		zap.Int("corridor", len(path)),
		zap.Int("waypoints", len(waypoints)),
		zap.Float64("length", PathLength(waypoints)),
	)
	return waypoints, nil
}

// Corridor locates src and dst and returns the node chain between them. A
// point on a shared edge or vertex is in several nodes. The chain starts at the
// last of the source's nodes it passes through and ends at the first of the
// destination's, so no portal of the chain contains either endpoint. Endpoints
// sharing a node give a one node chain.
func Corridor(m *mesh.NavMesh, src, dst geom.RationalPoint) ([]int, error) {
	srcNodes := m.Locate(src)
	if len(srcNodes) == 0 {
		return nil, errors.Wrapf(ErrOffMesh, "source %s", src)
	}
	dstNodes := m.Locate(dst)
	if len(dstNodes) == 0 {
		return nil, errors.Wrapf(ErrOffMesh, "destination %s", dst)
	}

	// Sharing a node (even on its boundary) means the straight line is walkable
	for _, a := range srcNodes {
		for _, b := range dstNodes {
			if a == b {
				return []int{a}, nil
			}
		}
	}

	path := FindNodePath(m, srcNodes[0], dstNodes[0])
	if path == nil {
		return nil, errors.Wrapf(ErrNoPath, "from node %d to node %d", srcNodes[0], dstNodes[0])
	}

	for i := len(path) - 1; i > 0; i-- {
		if contains(srcNodes, path[i]) {
			path = path[i:]
			break
		}
	}
	for i, node := range path {
		if contains(dstNodes, node) {
			path = path[:i+1]
			break
		}
	}
	return path, nil
}

func contains(nodes []int, node int) bool {
	for _, n := range nodes {
		if n == node {
			return true
		}
	}
	return false
}

// PlanFloat is Plan for continuous positions.
func PlanFloat(m *mesh.NavMesh, srcX, srcY, dstX, dstY float64) ([]geom.RationalPoint, error) {
	return Plan(m, geom.FloatPoint(srcX, srcY), geom.FloatPoint(dstX, dstY))
}

// PathLength is the Euclidean length of a polyline. It's only an estimate, for
// display and logging.
func PathLength(points []geom.RationalPoint) float64 {
	var length float64
	for i := 1; i < len(points); i++ {
		length += points[i].Vec2().Sub(points[i-1].Vec2()).Len()
	}
	return length
}
