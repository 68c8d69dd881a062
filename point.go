package lattice

import (
	"fmt"
	"math"
)

// Point is a position on the integer grid.
type Point struct {
	X int
	Y int
}

// Pt returns the point (x, y).
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (pt Point) Splat() (int, int) {
	return pt.X, pt.Y
}

func (pt Point) String() string {
	return fmt.Sprintf("(%d, %d)", pt.X, pt.Y)
}

func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

// Transform applies aff to the point and rounds the result back onto the grid.
func (pt Point) Transform(aff Affine) Point {
	x, y := float64(pt.X), float64(pt.Y)
	return Point{
		X: roundHalfAway(aff.N0*x + aff.N2*y + aff.N4),
		Y: roundHalfAway(aff.N1*x + aff.N3*y + aff.N5),
	}
}

// Sub computes p−o.
// To subtract a vector from p, use Translate and negate the vector.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Midpoint returns the midpoint of two points, truncated towards zero.
func (pt Point) Midpoint(o Point) Point {
	return Point{
		X: (pt.X + o.X) / 2,
		Y: (pt.Y + o.Y) / 2,
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(float64(pt.X-o.X), float64(pt.Y-o.Y))
}

// DistanceSquared returns the squared euclidean distance between two points.
// The result is exact.
func (pt Point) DistanceSquared(o Point) int {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// DistanceL1 returns the Manhattan distance between two points.
func (pt Point) DistanceL1(o Point) int {
	return abs(pt.X-o.X) + abs(pt.Y-o.Y)
}

// DistanceLinf returns the Chebyshev distance between two points.
func (pt Point) DistanceLinf(o Point) int {
	return max(abs(pt.X-o.X), abs(pt.Y-o.Y))
}
