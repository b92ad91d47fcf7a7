package pathfind

import (
	"container/heap"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/navmesh/mesh"
)

// FindNodePath runs Dijkstra over the node adjacency graph, weighting each hop
// by the distance between the two centroids. It returns the node chain from src
// to dst inclusive, or nil if dst can't be reached.
//
// Equal distances are broken by node index, so the chain is reproducible.
func FindNodePath(m *mesh.NavMesh, src, dst int) []int {
	if src == dst {
		return []int{src}
	}

	centroids := make([]mgl64.Vec2, m.Len())
	for i, node := range m.Nodes {
		centroids[i] = node.Centroid.Vec2()
	}

	dist := make(map[int]float64)
	parent := make(map[int]int)
	visited := make(map[int]bool)

	pq := &searchPQ{}
	heap.Init(pq)
	dist[src] = 0
	heap.Push(pq, searchState{node: src})

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(searchState)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		// Reached destination?
		if cur.node == dst {
			return reconstructPath(parent, src, dst)
		}

		for _, next := range m.Nodes[cur.node].Neighbors {
			if next == mesh.NoNeighbor || visited[next] {
				continue
			}
			d := cur.dist + centroids[cur.node].Sub(centroids[next]).Len()
			if best, ok := dist[next]; ok && d >= best {
				continue
			}
			dist[next] = d
			parent[next] = cur.node
			heap.Push(pq, searchState{node: next, dist: d})
		}
	}

	return nil // no path found
}

func reconstructPath(parent map[int]int, src, dst int) []int {
	path := []int{dst}
	for cur := dst; cur != src; {
		cur = parent[cur]
		path = append(path, cur)
	}
	// Reverse.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type searchState struct {
	node int
	dist float64
}

func (s searchState) less(o searchState) bool {
	if s.dist != o.dist {
		return s.dist < o.dist
	}
	return s.node < o.node
}

// searchPQ is a min-heap of search states.
type searchPQ []searchState

func (pq searchPQ) Len() int { return len(pq) }

func (pq searchPQ) Less(i, j int) bool {
	return pq[i].less(pq[j])
}

func (pq searchPQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *searchPQ) Push(x interface{}) {
	*pq = append(*pq, x.(searchState))
}

func (pq *searchPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
