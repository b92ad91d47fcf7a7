package floorplan

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/osuushi/navmesh/geom"
	"github.com/pkg/errors"
)

// ParseCSV reads newline separated "x,y" vertices, with a blank line ending
// each polygon.
func ParseCSV(r io.Reader) (FloorPlan, error) {
	var polygons []geom.Polygon
	var points []geom.IntPoint

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// If it's empty, and we collected any points, this is the end of the polygon
		if line == "" {
			if len(points) > 0 {
				polygons = append(polygons, geom.NewPolygon(points...))
				points = nil
			}
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return FloorPlan{}, errors.Errorf("line %d: invalid csv vertex %q", lineNumber, line)
		}
		x, err := parseCoordinate(parts[0])
		if err != nil {
			return FloorPlan{}, errors.Wrapf(err, "line %d", lineNumber)
		}
		y, err := parseCoordinate(parts[1])
		if err != nil {
			return FloorPlan{}, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, geom.IntPoint{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return FloorPlan{}, errors.Wrap(err, "reading csv floor plan")
	}

	// Handle trailing polygon if any
	if len(points) > 0 {
		polygons = append(polygons, geom.NewPolygon(points...))
	}
	return New(polygons)
}

func WriteCSV(w io.Writer, plan FloorPlan) error {
	buf := bufio.NewWriter(w)
	for i, poly := range plan.Polygons() {
		if i > 0 {
			fmt.Fprintln(buf)
		}
		for _, p := range poly.Points {
			fmt.Fprintf(buf, "%d,%d\n", p.X, p.Y)
		}
	}
	return errors.Wrap(buf.Flush(), "writing csv floor plan")
}

// WriteTrianglesCSV writes one triangle per row as x0,y0,x1,y1,x2,y2.
func WriteTrianglesCSV(w io.Writer, triangles []geom.Triangle) error {
	buf := bufio.NewWriter(w)
	for _, t := range triangles {
		fmt.Fprintf(buf, "%d,%d,%d,%d,%d,%d\n", t.A.X, t.A.Y, t.B.X, t.B.Y, t.C.X, t.C.Y)
	}
	return errors.Wrap(buf.Flush(), "writing csv triangles")
}
