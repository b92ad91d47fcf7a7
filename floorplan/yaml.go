package floorplan

import (
	"io"

	"github.com/osuushi/navmesh/geom"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const yamlVersion = 1

type yamlFloorPlan struct {
	Version   int          `yaml:"version"`
	Positive  [][2]int64   `yaml:"positive"`
	Negatives [][][2]int64 `yaml:"negatives"`
}

type yamlTriangles struct {
	Version   int           `yaml:"version"`
	Triangles [][3][2]int64 `yaml:"triangles"`
}

func ParseYAML(r io.Reader) (FloorPlan, error) {
	var doc yamlFloorPlan
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return FloorPlan{}, errors.Wrap(err, "decoding yaml floor plan")
	}
	if doc.Version != yamlVersion {
		return FloorPlan{}, errors.Errorf("unsupported floor plan version %d", doc.Version)
	}

	polygons := make([]geom.Polygon, 0, len(doc.Negatives)+1)
	for _, coords := range append([][][2]int64{doc.Positive}, doc.Negatives...) {
		poly, err := polygonFromPairs(coords)
		if err != nil {
			return FloorPlan{}, err
		}
		polygons = append(polygons, poly)
	}
	return New(polygons)
}

func WriteYAML(w io.Writer, plan FloorPlan) error {
	doc := yamlFloorPlan{
		Version:   yamlVersion,
		Positive:  pairsFromPolygon(plan.Outer),
		Negatives: make([][][2]int64, 0, len(plan.Holes)),
	}
	for _, hole := range plan.Holes {
		doc.Negatives = append(doc.Negatives, pairsFromPolygon(hole))
	}
	return encodeYAML(w, doc)
}

// WriteTrianglesYAML writes a triangulation as {version: 1, triangles:
// [[[x,y],[x,y],[x,y]],...]}.
func WriteTrianglesYAML(w io.Writer, triangles []geom.Triangle) error {
	doc := yamlTriangles{Version: yamlVersion, Triangles: make([][3][2]int64, len(triangles))}
	for i, tri := range triangles {
		for k, p := range tri.Points() {
			doc.Triangles[i][k] = [2]int64{p.X, p.Y}
		}
	}
	return encodeYAML(w, doc)
}

func encodeYAML(w io.Writer, doc interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding yaml")
	}
	return errors.Wrap(encoder.Close(), "encoding yaml")
}

func polygonFromPairs(coords [][2]int64) (geom.Polygon, error) {
	points := make([]geom.IntPoint, 0, len(coords))
	for _, xy := range coords {
		x, err := checkCoordinate(xy[0])
		if err != nil {
			return geom.Polygon{}, err
		}
		y, err := checkCoordinate(xy[1])
		if err != nil {
			return geom.Polygon{}, err
		}
		points = append(points, geom.IntPoint{X: x, Y: y})
	}
	return geom.NewPolygon(points...), nil
}

func pairsFromPolygon(poly geom.Polygon) [][2]int64 {
	pairs := make([][2]int64, len(poly.Points))
	for i, p := range poly.Points {
		pairs[i] = [2]int64{p.X, p.Y}
	}
	return pairs
}
