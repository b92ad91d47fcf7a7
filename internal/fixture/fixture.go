// Package fixture holds the floor plans shared by the tests of several
// packages: small ad hoc shapes built in code, and SVG drawings embedded from
// the fixtures/ directory.
package fixture

import (
	"embed"
	"log"

	"github.com/osuushi/navmesh/floorplan"
	"github.com/osuushi/navmesh/geom"
)

type Plan = floorplan.FloorPlan

//go:embed fixtures
var fixtures embed.FS

// LoadFixture parses fixtures/<name>.svg. The first <polygon> is the outer
// boundary and the rest are holes. If anything goes wrong, it exits the test
// binary.
func LoadFixture(name string) Plan {
	file, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer file.Close()

	plan, err := floorplan.ParseSVG(file)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	return plan
}

func points(coords ...int64) []geom.IntPoint {
	if len(coords)%2 != 0 {
		panic("odd number of coordinates")
	}
	result := make([]geom.IntPoint, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		result = append(result, geom.IntPoint{X: coords[i], Y: coords[i+1]})
	}
	return result
}

func polygon(coords ...int64) geom.Polygon {
	return geom.NewPolygon(points(coords...)...)
}

func UnitSquare() Plan {
	return Plan{Outer: polygon(0, 0, 1, 0, 1, 1, 0, 1)}
}

// 10x10 square with a 4x4 hole in the middle, hole wound clockwise.
func SquareWithHole() Plan {
	return Plan{
		Outer: polygon(0, 0, 10, 0, 10, 10, 0, 10),
		Holes: []geom.Polygon{polygon(3, 3, 3, 7, 7, 7, 7, 3)},
	}
}

// Same as SquareWithHole, but every polygon is given in the "wrong" winding.
func SquareWithHoleReversed() Plan {
	plan := SquareWithHole()
	plan.Outer = plan.Outer.Reverse()
	plan.Holes[0] = plan.Holes[0].Reverse()
	return plan
}

func LShape() Plan {
	return Plan{Outer: polygon(0, 0, 20, 0, 20, 10, 10, 10, 10, 20, 0, 20)}
}

// Five pointed star. Every other vertex is reflex.
func Star() Plan {
	return Plan{Outer: polygon(
		50, 0,
		62, 35,
		100, 38,
		70, 60,
		80, 100,
		50, 75,
		20, 100,
		30, 60,
		0, 38,
		38, 35,
	)}
}

// A comb with deep teeth, which forces the funnel to turn at every tooth.
func Comb() Plan {
	return Plan{Outer: polygon(
		0, 0,
		50, 0,
		50, 40,
		40, 40,
		40, 10,
		30, 10,
		30, 40,
		20, 40,
		20, 10,
		10, 10,
		10, 40,
		0, 40,
	)}
}

// A wide room with three pillars in a row, at the same height, so the hole
// ordering tie break matters.
func Pillars() Plan {
	return Plan{
		Outer: polygon(0, 0, 100, 0, 100, 40, 0, 40),
		Holes: []geom.Polygon{
			polygon(10, 10, 10, 30, 20, 30, 20, 10),
			polygon(70, 10, 70, 30, 80, 30, 80, 10),
			polygon(40, 10, 40, 30, 50, 30, 50, 10),
		},
	}
}

// A hole directly to the left of another, so the left hole's ray hits the
// right hole's bridge.
func NestedBridges() Plan {
	return Plan{
		Outer: polygon(0, 0, 60, 0, 60, 30, 0, 30),
		Holes: []geom.Polygon{
			polygon(10, 10, 10, 20, 20, 20, 20, 10),
			polygon(30, 10, 30, 20, 40, 20, 40, 10),
		},
	}
}

// A room split by a thin wall, with narrow gaps at the top and bottom.
func Detour() Plan {
	return Plan{
		Outer: polygon(0, 0, 40, 0, 40, 40, 0, 40),
		Holes: []geom.Polygon{polygon(18, 2, 18, 36, 22, 36, 22, 2)},
	}
}
