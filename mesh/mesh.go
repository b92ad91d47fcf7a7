// Package mesh turns a triangle list into a navigation mesh: one node per
// triangle, mutual adjacency across shared edges, and a uniform grid for point
// location.
//
// A mesh is never modified after Build returns, so any number of goroutines
// may query it at once.
package mesh

import (
	"fmt"
	"strings"

	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NoNeighbor marks a boundary edge.
const NoNeighbor = -1

// Node is one triangle of the walkable surface. Vertices are counterclockwise.
// Edge slot i runs from Vertices[i] to Vertices[(i+1)%3], and Neighbors[i] is
// the node across it, or NoNeighbor.
type Node struct {
	Vertices  [3]geom.IntPoint
	Neighbors [3]int
	Centroid  geom.RationalPoint
}

func newNode(tri geom.Triangle) Node {
	return Node{
		Vertices:  tri.Points(),
		Neighbors: [3]int{NoNeighbor, NoNeighbor, NoNeighbor},
		Centroid:  tri.Centroid(),
	}
}

func (n Node) Triangle() geom.Triangle {
	return geom.Triangle{A: n.Vertices[0], B: n.Vertices[1], C: n.Vertices[2]}
}

// Edge returns the endpoints of edge slot i, in the node's winding order.
func (n Node) Edge(slot int) (geom.IntPoint, geom.IntPoint) {
	return n.Vertices[slot], n.Vertices[(slot+1)%3]
}

// SlotOf is the edge slot that leads to the given neighbor, or -1.
func (n Node) SlotOf(neighbor int) int {
	for slot, other := range n.Neighbors {
		if other == neighbor && neighbor != NoNeighbor {
			return slot
		}
	}
	return -1
}

func (n Node) Contains(p geom.RationalPoint) bool {
	return n.Triangle().ContainsRational(p)
}

type NavMesh struct {
	Nodes []Node
	grid  *Grid
}

// Where an edge was first seen, while building adjacency
type edgeSide struct {
	node, slot int
	a, b       geom.IntPoint
	shared     bool
}

// Build creates one node per triangle, in input order, links nodes that share
// an edge, and indexes them in a grid of the given cell size.
//
// Degenerate triangles, edges claimed by more than two triangles, and two
// triangles on the same side of an edge all give errors wrapping
// geom.ErrInvalidGeometry.
func Build(triangles []geom.Triangle, cellSize int64) (*NavMesh, error) {
	grid, err := NewGrid(cellSize)
	if err != nil {
		return nil, err
	}

	m := &NavMesh{Nodes: make([]Node, len(triangles)), grid: grid}
	edges := make(map[geom.Edge]*edgeSide, len(triangles)*3/2+1)
	interior := 0

	for i, tri := range triangles {
		if !tri.IsValid() {
			return nil, errors.Wrapf(geom.ErrInvalidGeometry, "triangle %d %s is degenerate", i, tri)
		}
		m.Nodes[i] = newNode(geom.NewTriangle(tri.A, tri.B, tri.C))

		for slot := 0; slot < 3; slot++ {
			a, b := m.Nodes[i].Edge(slot)
			key := geom.NewEdge(a, b)
			side, ok := edges[key]
			if !ok {
				edges[key] = &edgeSide{node: i, slot: slot, a: a, b: b}
				continue
			}
			if side.shared {
				return nil, errors.Wrapf(geom.ErrInvalidGeometry, "edge %s-%s is shared by more than two triangles", a, b)
			}
			if side.a == a {
				return nil, errors.Wrapf(geom.ErrInvalidGeometry, "triangles %d and %d overlap along edge %s-%s", side.node, i, a, b)
			}
			side.shared = true
			m.Nodes[side.node].Neighbors[side.slot] = i
			m.Nodes[i].Neighbors[slot] = side.node
			interior++
		}

		grid.Insert(i, m.Nodes[i].Triangle().BoundingBox())
	}

	logger.Debug("built navigation mesh",
		zap.Int("nodes", len(m.Nodes)),
		zap.Int("interiorEdges", interior),
		zap.Int("boundaryEdges", len(edges)-interior),
		zap.Int("cells", grid.Len()),
	)
	return m, nil
}

func (m *NavMesh) Len() int {
	return len(m.Nodes)
}

func (m *NavMesh) Node(i int) Node {
	return m.Nodes[i]
}

func (m *NavMesh) Grid() *Grid {
	return m.grid
}

// Locate returns every node containing p, in ascending index order. A point on
// an edge or vertex shared by several nodes yields all of them; callers that
// want one take the first. Points off the mesh give an empty result.
func (m *NavMesh) Locate(p geom.RationalPoint) []int {
	var result []int
	for _, i := range m.grid.Candidates(p) {
		if m.Nodes[i].Contains(p) {
			result = append(result, i)
		}
	}
	return result
}

// LocateFloat brings a continuous position into exact form, then locates it.
func (m *NavMesh) LocateFloat(x, y float64) []int {
	return m.Locate(geom.FloatPoint(x, y))
}

// SharedEdge returns the edge between two adjacent nodes, oriented the way
// node a winds it. ok is false if they aren't neighbors.
func (m *NavMesh) SharedEdge(a, b int) (start, end geom.IntPoint, ok bool) {
	slot := m.Nodes[a].SlotOf(b)
	if slot < 0 {
		return geom.IntPoint{}, geom.IntPoint{}, false
	}
	start, end = m.Nodes[a].Edge(slot)
	return start, end, true
}

// Validate checks that adjacency is symmetric and that both sides of every
// link name the same segment.
func (m *NavMesh) Validate() error {
	for i, node := range m.Nodes {
		for slot, j := range node.Neighbors {
			if j == NoNeighbor {
				continue
			}
			if j < 0 || j >= len(m.Nodes) {
				return errors.Wrapf(geom.ErrInvalidGeometry, "node %d slot %d links to missing node %d", i, slot, j)
			}
			back := m.Nodes[j].SlotOf(i)
			if back < 0 {
				return errors.Wrapf(geom.ErrInvalidGeometry, "node %d links to %d, but not the other way", i, j)
			}
			a, b := node.Edge(slot)
			c, d := m.Nodes[j].Edge(back)
			if geom.NewEdge(a, b) != geom.NewEdge(c, d) {
				return errors.Wrapf(geom.ErrInvalidGeometry, "nodes %d and %d disagree about their shared edge", i, j)
			}
		}
	}
	return nil
}

func (m *NavMesh) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NavMesh: %d nodes", len(m.Nodes))
	for i, node := range m.Nodes {
		centroid := node.Centroid.Vec2()
		fmt.Fprintf(&b, "\nNode %d: Centroid = (%.1f, %.1f)\tVertices = %s %s %s\tNeighbors: %v",
			i, centroid.X(), centroid.Y(),
			node.Vertices[0], node.Vertices[1], node.Vertices[2],
			node.Neighbors,
		)
	}
	return b.String()
}
