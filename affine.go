package lattice

import (
	"math"
)

// Affine is a 2D affine transform. The coefficients N0 to N5 form the matrix
//
//	| N0 N2 N4 |
//	| N1 N3 N5 |
//	| 0  0  1  |
//
// applied to column vectors, so that a.Mul(b) transforms by b first.
//
// Applying a transform to grid points rounds the results back onto the grid,
// half away from zero. Composing transforms before applying them rounds only
// once.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipY mirrors the y axis. It converts between [YUp] and [YDown]
// coordinates.
var FlipY = Affine{1, 0, 0, -1, 0, 0}

// Scale scales by x horizontally and by y vertically.
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate moves by v.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, float64(v.X), float64(v.Y)}
}

// Rotate creates an affine transform representing rotation.
//
// The convention for rotation is that a positive angle rotates a
// positive X direction into positive Y. Thus, in a Y-down coordinate
// system, it is a clockwise rotation, and in Y-up, it is anti-clockwise.
//
// The angle th is expressed in radians. Rotations by multiples of a quarter
// turn map grid points onto grid points exactly.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	// Snap the values that quarter turns should produce, so that those map
	// the grid onto itself.
	sin, cos = snapUnit(sin), snapUnit(cos)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

func snapUnit(f float64) float64 {
	const eps = 1e-12
	switch {
	case math.Abs(f) < eps:
		return 0
	case math.Abs(f-1) < eps:
		return 1
	case math.Abs(f+1) < eps:
		return -1
	default:
		return f
	}
}

// RotateAbout creates an affine transform representing a rotation of th radians
// about center.
//
// See [Rotate] for more info.
func RotateAbout(th float64, center Point) Affine {
	c := center.Sub(Point{})
	return Translate(c.Negate()).ThenRotate(th).ThenTranslate(c)
}

// Skew creates an affine transformation representing a skew.
//
// The x and y parameters represent skew factors for the horizontal and vertical
// directions, respectively.
func Skew(x, y float64) Affine {
	return Affine{1, y, x, 1, 0, 0}
}

// Coefficients returns the coefficients of the transform.
func (aff Affine) Coefficients() [6]float64 {
	return [6]float64{aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5}
}

// Mul returns the transform that applies o first and aff second.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenRotate returns aff followed by a rotation of th, that is
// Rotate(th).Mul(aff).
func (aff Affine) ThenRotate(th float64) Affine {
	return Rotate(th).Mul(aff)
}

// ThenTranslate returns aff followed by a translation of v, that is
// Translate(v).Mul(aff).
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += float64(v.X)
	aff.N5 += float64(v.Y)
	return aff
}

// Translation returns the translation component of the transform, rounded to
// the grid.
func (aff Affine) Translation() Vec2 {
	return Vec2{
		X: roundHalfAway(aff.N4),
		Y: roundHalfAway(aff.N5),
	}
}

// WithTranslation replaces the translation portion of this affine
// transformation.
func (aff Affine) WithTranslation(v Vec2) Affine {
	aff.N4 = float64(v.X)
	aff.N5 = float64(v.Y)
	return aff
}

// TransformRectBoundingBox computes the bounding box of a transformed
// rectangle, with the corners rounded to the grid.
//
// If the transform is axis-aligned, then this bounding box is "tight", in
// other words the returned rectangle is the transformed rectangle.
func (aff Affine) TransformRectBoundingBox(rect Rect) Rect {
	p00 := Pt(rect.minX, rect.minY).Transform(aff)
	p01 := Pt(rect.minX, rect.maxY).Transform(aff)
	p10 := Pt(rect.maxX, rect.minY).Transform(aff)
	p11 := Pt(rect.maxX, rect.maxY).Transform(aff)
	return NewRectFromPoints(p00, p01).Union(NewRectFromPoints(p10, p11))
}
