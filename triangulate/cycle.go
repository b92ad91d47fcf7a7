package triangulate

import "github.com/osuushi/navmesh/geom"

// Cycle is a circular doubly linked vertex list stored in an arena. Indices are
// stable for the life of the cycle: removing a vertex unlinks it but never
// moves another, so the clipper can keep per-vertex flags in plain slices.
//
// The same coordinate may appear several times. Bridging a hole visits the
// bridge vertex and the hole's rightmost vertex twice each.
type Cycle struct {
	nodes []cycleNode
	head  int
	size  int
}

type cycleNode struct {
	point      geom.IntPoint
	prev, next int
	removed    bool
}

func NewCycle(points []geom.IntPoint) *Cycle {
	c := &Cycle{head: -1}
	last := -1
	for _, p := range points {
		last = c.InsertAfter(last, p)
	}
	return c
}

func (c *Cycle) Len() int {
	return c.size
}

// Head is the index of the first vertex, or -1 for an empty cycle.
func (c *Cycle) Head() int {
	return c.head
}

// Cap is one past the largest index ever handed out.
func (c *Cycle) Cap() int {
	return len(c.nodes)
}

func (c *Cycle) Point(i int) geom.IntPoint {
	return c.nodes[i].point
}

func (c *Cycle) Next(i int) int {
	return c.nodes[i].next
}

func (c *Cycle) Prev(i int) int {
	return c.nodes[i].prev
}

func (c *Cycle) Removed(i int) bool {
	return c.nodes[i].removed
}

// InsertAfter links a new vertex after index i and returns its index. Passing
// -1 appends to the end (before the head).
func (c *Cycle) InsertAfter(i int, p geom.IntPoint) int {
	idx := len(c.nodes)
	c.nodes = append(c.nodes, cycleNode{point: p, prev: idx, next: idx})
	c.size++

	if c.head < 0 {
		c.head = idx
		return idx
	}
	if i < 0 {
		i = c.nodes[c.head].prev
	}

	next := c.nodes[i].next
	c.nodes[idx].prev = i
	c.nodes[idx].next = next
	c.nodes[i].next = idx
	c.nodes[next].prev = idx
	return idx
}

// Remove unlinks vertex i in O(1).
func (c *Cycle) Remove(i int) {
	node := &c.nodes[i]
	if node.removed {
		return
	}
	node.removed = true
	c.size--
	if c.size == 0 {
		c.head = -1
		return
	}
	c.nodes[node.prev].next = node.next
	c.nodes[node.next].prev = node.prev
	if c.head == i {
		c.head = node.next
	}
}

// Indices lists the live vertices in cycle order, starting from the head.
func (c *Cycle) Indices() []int {
	indices := make([]int, 0, c.size)
	if c.head < 0 {
		return indices
	}
	i := c.head
	for {
		indices = append(indices, i)
		i = c.nodes[i].next
		if i == c.head {
			break
		}
	}
	return indices
}

func (c *Cycle) Points() []geom.IntPoint {
	indices := c.Indices()
	points := make([]geom.IntPoint, len(indices))
	for k, i := range indices {
		points[k] = c.nodes[i].point
	}
	return points
}

// A vertex is reflex when it isn't strictly convex. Collinear vertices count as
// reflex, so they are never clipped as ear tips and they block ears that
// contain them.
func (c *Cycle) isReflex(i int) bool {
	return !geom.IsConvex(c.Point(c.Prev(i)), c.Point(i), c.Point(c.Next(i)))
}
