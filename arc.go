package lattice

import (
	"iter"
	"math"
)

// ellipticalArc is an arc of an ellipse in center parameterization.
type ellipticalArc struct {
	center     fpoint
	radii      fpoint
	startAngle float64
	sweepAngle float64
	xRotation  float64
}

// svgArc converts an arc given in SVG endpoint parameterization to center
// parameterization. Radii that are too small to span from and to are scaled
// up, as SVG requires.
func svgArc(from, to, radii fpoint, xRotation float64, largeArc, sweep bool) ellipticalArc {
	rx, ry := math.Abs(radii.x), math.Abs(radii.y)
	sin, cos := math.Sincos(xRotation)

	hx := 0.5 * (from.x - to.x)
	hy := 0.5 * (from.y - to.y)
	x1 := cos*hx + sin*hy
	y1 := -sin*hx + cos*hy

	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 {
		coef = math.Sqrt(max(0, num/den))
	}
	if largeArc == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	center := fpoint{
		cos*cx1 - sin*cy1 + 0.5*(from.x+to.x),
		sin*cx1 + cos*cy1 + 0.5*(from.y+to.y),
	}

	start := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	end := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx)
	delta := end - start
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}
	return ellipticalArc{
		center:     center,
		radii:      fpoint{rx, ry},
		startAngle: start,
		sweepAngle: delta,
		xRotation:  xRotation,
	}
}

// cubics approximates the arc with cubic Béziers. Each yielded triple holds the
// two control points and the end point of one cubic; the first cubic starts at
// the start point of the arc.
func (a ellipticalArc) cubics(tolerance float64) iter.Seq[[3]fpoint] {
	return func(yield func([3]fpoint) bool) {
		scaledError := max(a.radii.x, a.radii.y) / tolerance
		// Number of subdivisions per ellipse based on error tolerance.
		// Note: this may slightly underestimate the error for quadrants.
		nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
		n := math.Ceil(nError * math.Abs(a.sweepAngle) * (1.0 / (2.0 * math.Pi)))
		if n < 1 {
			return
		}
		angleStep := a.sweepAngle / n
		armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), a.sweepAngle)
		angle0 := a.startAngle
		p0 := sampleEllipse(a.radii, a.xRotation, angle0)

		for range int(n) {
			angle1 := angle0 + angleStep
			t0 := sampleEllipse(a.radii, a.xRotation, angle0+math.Pi/2)
			p3 := sampleEllipse(a.radii, a.xRotation, angle1)
			t1 := sampleEllipse(a.radii, a.xRotation, angle1+math.Pi/2)
			p1 := fpoint{p0.x + t0.x*armLen, p0.y + t0.y*armLen}
			p2 := fpoint{p3.x - t1.x*armLen, p3.y - t1.y*armLen}

			angle0 = angle1
			p0 = p3

			if !yield([3]fpoint{a.offset(p1), a.offset(p2), a.offset(p3)}) {
				break
			}
		}
	}
}

func (a ellipticalArc) offset(v fpoint) fpoint {
	return fpoint{a.center.x + v.x, a.center.y + v.y}
}

// sampleEllipse takes the ellipse radii, how the radii are rotated, and an
// angle, and returns the offset of that point of the ellipse from its center.
func sampleEllipse(radii fpoint, xRotation float64, angle float64) fpoint {
	sin, cos := math.Sincos(angle)
	return rotatePt(fpoint{radii.x * cos, radii.y * sin}, xRotation)
}

// rotatePt rotates pt about the origin by angle radians.
func rotatePt(pt fpoint, angle float64) fpoint {
	sin, cos := math.Sincos(angle)
	return fpoint{
		x: pt.x*cos - pt.y*sin,
		y: pt.x*sin + pt.y*cos,
	}
}
