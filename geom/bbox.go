package geom

import (
	"math"
	"math/rand"
)

// BoundingBox is the inclusive min/max of a point set. The zero-point box is
// empty: Min is above Max.
type BoundingBox struct {
	Min, Max IntPoint
}

func NewBoundingBox(points ...IntPoint) BoundingBox {
	box := BoundingBox{
		Min: IntPoint{math.MaxInt64, math.MaxInt64},
		Max: IntPoint{math.MinInt64, math.MinInt64},
	}
	for _, p := range points {
		box.Extend(p)
	}
	return box
}

func (b *BoundingBox) Extend(p IntPoint) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
}

func (b BoundingBox) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

func (b BoundingBox) Contains(p IntPoint) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b BoundingBox) Width() int64 {
	return b.Max.X - b.Min.X
}

func (b BoundingBox) Height() int64 {
	return b.Max.Y - b.Min.Y
}

// RandomPoint picks an integer point inside the box, bounds included.
func (b BoundingBox) RandomPoint(rng *rand.Rand) IntPoint {
	return IntPoint{
		X: b.Min.X + rng.Int63n(b.Width()+1),
		Y: b.Min.Y + rng.Int63n(b.Height()+1),
	}
}
