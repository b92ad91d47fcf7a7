package floorplan

import (
	"io"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/navmesh/geom"
	"github.com/pkg/errors"
)

// ParseSVG reads every <polygon> element in document order. This is not a
// full SVG reader: transforms, paths and other shapes are ignored.
func ParseSVG(r io.Reader) (FloorPlan, error) {
	root, err := svgparser.Parse(r, true)
	if err != nil {
		return FloorPlan{}, errors.Wrap(err, "parsing svg")
	}

	elements := root.FindAll("polygon")
	polygons := make([]geom.Polygon, 0, len(elements))
	for i, el := range elements {
		poly, err := parsePointsAttribute(el.Attributes["points"])
		if err != nil {
			return FloorPlan{}, errors.Wrapf(err, "polygon %d", i)
		}
		polygons = append(polygons, poly)
	}
	return New(polygons)
}

// Accepts "x,y x,y ..." as well as "x y x y ...", which SVG also allows.
func parsePointsAttribute(attr string) (geom.Polygon, error) {
	fields := strings.FieldsFunc(attr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return geom.Polygon{}, errors.Errorf("odd number of coordinates in %q", attr)
	}

	points := make([]geom.IntPoint, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := parseCoordinate(fields[i])
		if err != nil {
			return geom.Polygon{}, err
		}
		y, err := parseCoordinate(fields[i+1])
		if err != nil {
			return geom.Polygon{}, err
		}
		points = append(points, geom.IntPoint{X: x, Y: y})
	}
	return geom.NewPolygon(points...), nil
}
