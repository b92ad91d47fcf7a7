package dbg

import (
	"math"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/mesh"
	"github.com/pkg/errors"
)

// Padding around the mesh, in pixels
const drawPadding = 20

// Drawing renders a mesh, and optionally a path over it, into an image with
// the origin at the bottom left.
type Drawing struct {
	c     *gg.Context
	scale float64
}

// Draw renders every node of the mesh, filled and outlined, with its index at
// its centroid. scale is pixels per mesh unit.
func Draw(m *mesh.NavMesh, scale float64) *Drawing {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, node := range m.Nodes {
		for _, p := range node.Vertices {
			minX = math.Min(minX, float64(p.X))
			minY = math.Min(minY, float64(p.Y))
			maxX = math.Max(maxX, float64(p.X))
			maxY = math.Max(maxY, float64(p.Y))
		}
	}
	if m.Len() == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	// Translate for padding
	c.Translate(drawPadding, drawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	d := &Drawing{c: c, scale: scale}
	for i := range m.Nodes {
		d.drawNode(m, i)
	}
	return d
}

func (d *Drawing) drawNode(m *mesh.NavMesh, i int) {
	c := d.c
	node := m.Node(i)
	c.MoveTo(float64(node.Vertices[0].X), float64(node.Vertices[0].Y))
	for _, p := range node.Vertices[1:] {
		c.LineTo(float64(p.X), float64(p.Y))
	}
	c.ClosePath()
	c.SetRGBA(0.3, 0.2, 1, 0.5)
	c.FillPreserve()
	c.SetRGB(0, 1, 0)
	c.SetLineWidth(1)
	c.Stroke()

	// Boundary edges stand out
	for slot, neighbor := range node.Neighbors {
		if neighbor != mesh.NoNeighbor {
			continue
		}
		a, b := node.Edge(slot)
		c.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
		c.SetRGB(0, 1, 1)
		c.SetLineWidth(3)
		c.Stroke()
	}

	// Text has to be drawn without the flip, so go back to identity with the
	// label position in native coordinates
	centroid := node.Centroid.Vec2()
	x, y := c.TransformPoint(centroid.X(), centroid.Y())
	c.Push()
	c.Identity()
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(strconv.Itoa(i), x, y, 0.5, 0.5)
	c.Pop()
}

// Path draws a polyline over the mesh, with a dot at every waypoint.
func (d *Drawing) Path(points []geom.RationalPoint) *Drawing {
	if len(points) == 0 {
		return d
	}
	c := d.c
	first := points[0].Vec2()
	c.MoveTo(first.X(), first.Y())
	for _, p := range points[1:] {
		v := p.Vec2()
		c.LineTo(v.X(), v.Y())
	}
	c.SetRGB(1, 0.5, 0)
	c.SetLineWidth(2)
	c.Stroke()

	for i, p := range points {
		v := p.Vec2()
		c.DrawCircle(v.X(), v.Y(), 4/d.scale)
		if i == 0 || i == len(points)-1 {
			c.SetRGB(1, 0, 0)
		} else {
			c.SetRGB(1, 1, 0)
		}
		c.Fill()
	}
	return d
}

func (d *Drawing) Width() int {
	return d.c.Width()
}

func (d *Drawing) Height() int {
	return d.c.Height()
}

// SavePNG writes the drawing to a PNG file.
func (d *Drawing) SavePNG(filename string) error {
	return errors.Wrapf(d.c.SavePNG(filename), "saving %s", filename)
}

// Preview saves the drawing and prints it to the terminal (iTerm only).
func (d *Drawing) Preview(filename string) error {
	if err := d.SavePNG(filename); err != nil {
		return err
	}
	// Print to terminal
	imgcat.CatFile(filename, os.Stdout)
	return nil
}
