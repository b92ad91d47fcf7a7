package dbg

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/navmesh/mesh"
)

// NodeName is the readable name of a node index, colored by how much of the
// node is boundary: green for fully interior, yellow for one or two boundary
// edges, red for an isolated node.
func NodeName(m *mesh.NavMesh, i int) string {
	name := Name(i)
	boundary := 0
	for _, n := range m.Node(i).Neighbors {
		if n == mesh.NoNeighbor {
			boundary++
		}
	}
	switch boundary {
	case 0:
		return aurora.Green(name).String()
	case 3:
		return aurora.Red(name).String()
	}
	return aurora.Yellow(name).String()
}

// DescribeNode is a one line colored summary of a node and its neighbors.
func DescribeNode(m *mesh.NavMesh, i int) string {
	node := m.Node(i)
	var neighbors []string
	for _, n := range node.Neighbors {
		if n == mesh.NoNeighbor {
			neighbors = append(neighbors, aurora.Cyan("-").String())
		} else {
			neighbors = append(neighbors, NodeName(m, n))
		}
	}
	return fmt.Sprintf("%d %s %s %s %s -> [%s]",
		i, NodeName(m, i),
		node.Vertices[0], node.Vertices[1], node.Vertices[2],
		strings.Join(neighbors, ", "),
	)
}

// DescribeMesh describes every node, one per line.
func DescribeMesh(m *mesh.NavMesh) string {
	lines := make([]string, m.Len())
	for i := range lines {
		lines[i] = DescribeNode(m, i)
	}
	return strings.Join(lines, "\n")
}

// DescribeCorridor names the nodes of a node chain in order.
func DescribeCorridor(m *mesh.NavMesh, chain []int) string {
	names := make([]string, len(chain))
	for i, node := range chain {
		names[i] = NodeName(m, node)
	}
	return strings.Join(names, " → ")
}

// Dump pretty prints any value, with field names.
func Dump(v interface{}) string {
	return pretty.Sprintf("%# v", v)
}
