package lattice

import (
	"fmt"
	"math"
)

// Vec2 is a displacement on the integer grid.
type Vec2 struct {
	X int
	Y int
}

// Vec returns the vector ⟨x, y⟩.
func Vec(x, y int) Vec2 {
	return Vec2{
		X: x,
		Y: y,
	}
}

// Splat returns the vector's x and y coordinates.
func (v Vec2) Splat() (int, int) {
	return v.X, v.Y
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%d, %d⟩", v.X, v.Y)
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) int {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the cross product of v and o.
//
// For coordinates in the supported range the product fits an int64. Use
// [orientation] when the sign alone matters and the operands are themselves
// differences of coordinates.
func (v Vec2) Cross(o Vec2) int {
	return v.X*o.Y - v.Y*o.X
}

// Hypot returns the magnitude of the vector.
func (v Vec2) Hypot() float64 {
	return math.Hypot(float64(v.X), float64(v.Y))
}

// Hypot2 returns the squared magnitude of the vector.
//
// Unlike [Vec2.Hypot], the result is exact.
func (v Vec2) Hypot2() int {
	return v.Dot(v)
}

// Angle returns the angle in radians between the vector and ⟨1, 0⟩ in the positive y
// direction. This is atan2(y, x).
func (v Vec2) Angle() float64 {
	return math.Atan2(float64(v.Y), float64(v.X))
}

// Add adds two vectors and returns the resulting vector.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{
		X: v.X + o.X,
		Y: v.Y + o.Y,
	}
}

// Sub subtracts two vectors and returns the resulting vector.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{
		X: v.X - o.X,
		Y: v.Y - o.Y,
	}
}

func (v Vec2) Mul(f int) Vec2 {
	return Vec2{
		X: v.X * f,
		Y: v.Y * f,
	}
}

// Negate returns a new vector with the signs of x and y flipped.
func (v Vec2) Negate() Vec2 {
	return Vec2{
		X: -v.X,
		Y: -v.Y,
	}
}

// Transform applies the linear part of aff to the vector. Translation does not
// affect displacements.
func (v Vec2) Transform(aff Affine) Vec2 {
	x, y := float64(v.X), float64(v.Y)
	return Vec2{
		X: roundHalfAway(aff.N0*x + aff.N2*y),
		Y: roundHalfAway(aff.N1*x + aff.N3*y),
	}
}
