// Package floorplan reads and writes the stored forms of a floor plan: one
// outer boundary plus zero or more holes, all with integer coordinates.
//
// Three formats are understood, picked by file extension in Load:
//
//	.yaml/.yml  {version: 1, positive: [[x,y],...], negatives: [[[x,y],...],...]}
//	.csv        one "x,y" vertex per line, a blank line between polygons
//	.svg        one <polygon points="..."> per polygon
//
// In every format the first polygon is the outer boundary and the rest are
// holes. Windings are not checked here; the triangulators normalize them.
package floorplan

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/osuushi/navmesh/geom"
	"github.com/pkg/errors"
)

var ErrUnknownFormat = errors.New("unknown floor plan format")

type FloorPlan struct {
	Outer geom.Polygon
	Holes []geom.Polygon
}

// New splits a polygon list the way every stored format does: the first is the
// outer boundary, the rest are holes.
func New(polygons []geom.Polygon) (FloorPlan, error) {
	if len(polygons) == 0 {
		return FloorPlan{}, errors.Wrap(geom.ErrInvalidGeometry, "floor plan has no polygons")
	}
	return FloorPlan{Outer: polygons[0], Holes: polygons[1:]}, nil
}

func (plan FloorPlan) Polygons() []geom.Polygon {
	return append([]geom.Polygon{plan.Outer}, plan.Holes...)
}

// DoubleArea is twice the walkable area: the outer area minus the hole areas.
func (plan FloorPlan) DoubleArea() int64 {
	area := abs(plan.Outer.SignedArea2())
	for _, hole := range plan.Holes {
		area -= abs(hole.SignedArea2())
	}
	return area
}

func (plan FloorPlan) BoundingBox() geom.BoundingBox {
	return plan.Outer.BoundingBox()
}

// Load reads a floor plan from disk, choosing the parser by extension.
func Load(path string) (FloorPlan, error) {
	parse, err := parserFor(path)
	if err != nil {
		return FloorPlan{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return FloorPlan{}, errors.Wrap(err, "opening floor plan")
	}
	defer file.Close()

	plan, err := parse(file)
	if err != nil {
		return FloorPlan{}, errors.Wrapf(err, "parsing %s", path)
	}
	return plan, nil
}

func parserFor(path string) (func(io.Reader) (FloorPlan, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML, nil
	case ".csv":
		return ParseCSV, nil
	case ".svg":
		return ParseSVG, nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", path)
}

// Coordinates must be integral and within geom.MaxCoordinate.
func parseCoordinate(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return checkCoordinate(v)
	}
	// SVG editors like to write "10.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid coordinate %q", s)
	}
	if f != math.Trunc(f) {
		return 0, errors.Errorf("coordinate %q is not an integer", s)
	}
	return checkCoordinate(int64(f))
}

func checkCoordinate(v int64) (int64, error) {
	if v > geom.MaxCoordinate || v < -geom.MaxCoordinate {
		return 0, errors.Errorf("coordinate %d is out of range", v)
	}
	return v, nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
