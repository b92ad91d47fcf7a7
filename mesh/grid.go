package mesh

import (
	"fmt"
	"sort"
	"strings"

	"github.com/osuushi/navmesh/geom"
	"github.com/pkg/errors"
)

var ErrInvalidCellSize = errors.New("grid cell size must be positive")

// Cell is a grid coordinate: floor(x / cellSize), floor(y / cellSize).
type Cell struct {
	X, Y int64
}

// Grid is a uniform spatial hash from cells to the node indices whose bounding
// box overlaps the cell. Bounding boxes are inclusive, so a triangle touching a
// cell boundary is registered on both sides of it.
type Grid struct {
	cellSize int64
	cells    map[Cell][]int
}

func NewGrid(cellSize int64) (*Grid, error) {
	if cellSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidCellSize, "got %d", cellSize)
	}
	return &Grid{cellSize: cellSize, cells: make(map[Cell][]int)}, nil
}

func (g *Grid) CellSize() int64 {
	return g.cellSize
}

// Insert registers index in every cell the box overlaps. Indices must be
// inserted in ascending order for lookups to come back sorted.
func (g *Grid) Insert(index int, box geom.BoundingBox) {
	if box.Empty() {
		return
	}
	lo := g.cellOfInt(box.Min)
	hi := g.cellOfInt(box.Max)
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			cell := Cell{x, y}
			g.cells[cell] = append(g.cells[cell], index)
		}
	}
}

// CellOf is exact for rational points, so points on a cell boundary always
// land in the same cell.
func (g *Grid) CellOf(p geom.RationalPoint) Cell {
	scale := geom.NewRational(1, g.cellSize)
	return Cell{p.X.Mul(scale).Floor(), p.Y.Mul(scale).Floor()}
}

func (g *Grid) cellOfInt(p geom.IntPoint) Cell {
	return Cell{floorDiv(p.X, g.cellSize), floorDiv(p.Y, g.cellSize)}
}

// Candidates lists the node indices registered in p's cell, in ascending
// order. The slice is shared with the grid and must not be modified.
func (g *Grid) Candidates(p geom.RationalPoint) []int {
	return g.cells[g.CellOf(p)]
}

// Len is the number of non-empty cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Lists the cells in sorted order, one per line.
func (g *Grid) String() string {
	cells := make([]Cell, 0, len(g.cells))
	for cell := range g.cells {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].X != cells[j].X {
			return cells[i].X < cells[j].X
		}
		return cells[i].Y < cells[j].Y
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Grid: cell size %d, %d cells", g.cellSize, len(cells))
	for _, cell := range cells {
		fmt.Fprintf(&b, "\n(%d, %d): %v", cell.X, cell.Y, g.cells[cell])
	}
	return b.String()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
