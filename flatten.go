package lattice

import (
	"iter"
	"math"
)

// maxFlattenDepth bounds the recursion of curve subdivision. 2^16 pieces per
// curve is far beyond anything a sensible tolerance asks for.
const maxFlattenDepth = 16

// fpoint is a point in continuous space. It only exists to evaluate and
// subdivide curves before their points are snapped back onto the grid.
type fpoint struct {
	x, y float64
}

func fpt(p Point) fpoint {
	return fpoint{float64(p.X), float64(p.Y)}
}

func (p fpoint) midpoint(o fpoint) fpoint {
	return fpoint{0.5 * (p.x + o.x), 0.5 * (p.y + o.y)}
}

func (p fpoint) round() Point {
	return Point{roundHalfAway(p.x), roundHalfAway(p.y)}
}

// distanceSquaredToChord returns the squared distance between p and the
// segment a–b.
func (p fpoint) distanceSquaredToChord(a, b fpoint) float64 {
	dx := b.x - a.x
	dy := b.y - a.y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		ex, ey := p.x-a.x, p.y-a.y
		return ex*ex + ey*ey
	}
	t := ((p.x-a.x)*dx + (p.y-a.y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	ex := p.x - (a.x + t*dx)
	ey := p.y - (a.y + t*dy)
	return ex*ex + ey*ey
}

type quadBez struct {
	p0, p1, p2 fpoint
}

func (q quadBez) eval(t float64) fpoint {
	mt := 1.0 - t
	return fpoint{
		mt*mt*q.p0.x + 2*mt*t*q.p1.x + t*t*q.p2.x,
		mt*mt*q.p0.y + 2*mt*t*q.p1.y + t*t*q.p2.y,
	}
}

// subdivide splits the quadratic into halves, using de Casteljau.
func (q quadBez) subdivide() (quadBez, quadBez) {
	pm := q.eval(0.5)
	return quadBez{q.p0, q.p0.midpoint(q.p1), pm},
		quadBez{pm, q.p1.midpoint(q.p2), q.p2}
}

func (q quadBez) flat(tolerance float64) bool {
	return q.p1.distanceSquaredToChord(q.p0, q.p2) <= tolerance*tolerance
}

type cubicBez struct {
	p0, p1, p2, p3 fpoint
}

func (c cubicBez) eval(t float64) fpoint {
	mt := 1.0 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return fpoint{
		a*c.p0.x + b*c.p1.x + d*c.p2.x + e*c.p3.x,
		a*c.p0.y + b*c.p1.y + d*c.p2.y + e*c.p3.y,
	}
}

// subdivide splits the cubic into halves, using de Casteljau.
func (c cubicBez) subdivide() (cubicBez, cubicBez) {
	pm := c.eval(0.5)
	return cubicBez{
			c.p0,
			c.p0.midpoint(c.p1),
			fpoint{(c.p0.x + 2*c.p1.x + c.p2.x) * 0.25, (c.p0.y + 2*c.p1.y + c.p2.y) * 0.25},
			pm,
		},
		cubicBez{
			pm,
			fpoint{(c.p1.x + 2*c.p2.x + c.p3.x) * 0.25, (c.p1.y + 2*c.p2.y + c.p3.y) * 0.25},
			c.p2.midpoint(c.p3),
			c.p3,
		}
}

func (c cubicBez) flat(tolerance float64) bool {
	t2 := tolerance * tolerance
	return c.p1.distanceSquaredToChord(c.p0, c.p3) <= t2 &&
		c.p2.distanceSquaredToChord(c.p0, c.p3) <= t2
}

func flattenQuad(q quadBez, tolerance float64, depth int, emit func(fpoint) bool) bool {
	if depth >= maxFlattenDepth || q.flat(tolerance) {
		return emit(q.p2)
	}
	a, b := q.subdivide()
	return flattenQuad(a, tolerance, depth+1, emit) && flattenQuad(b, tolerance, depth+1, emit)
}

func flattenCubic(c cubicBez, tolerance float64, depth int, emit func(fpoint) bool) bool {
	if depth >= maxFlattenDepth || c.flat(tolerance) {
		return emit(c.p3)
	}
	a, b := c.subdivide()
	return flattenCubic(a, tolerance, depth+1, emit) && flattenCubic(b, tolerance, depth+1, emit)
}

// Flatten flattens a sequence of path elements to a sequence of lines that
// approximate the original curves.
//
// Quadratic and cubic elements are subdivided recursively until every control
// point lies within tolerance of the chord of its piece. The end point of each
// piece is rounded onto the grid; pieces that round to the previous point are
// dropped. The end point of every curve is reproduced exactly. A tolerance of
// zero or less selects [DefaultFlatness].
//
// The output only contains MoveTo, LineTo and ClosePath elements, with From
// filled in.
func Flatten(seq iter.Seq[PathElement], tolerance float64) iter.Seq[PathElement] {
	if tolerance <= 0 {
		tolerance = DefaultFlatness
	}
	return func(yield func(PathElement) bool) {
		for el := range Link(seq) {
			switch el.Kind {
			case QuadToKind, CubicToKind:
				last := el.From
				emit := func(p fpoint) bool {
					pt := p.round()
					if pt == last {
						return true
					}
					ok := yield(PathElement{Kind: LineToKind, From: last, To: pt})
					last = pt
					return ok
				}
				var ok bool
				if el.Kind == QuadToKind {
					ok = flattenQuad(quadBez{fpt(el.From), fpt(el.Ctrl1), fpt(el.To)}, tolerance, 0, emit)
				} else {
					ok = flattenCubic(cubicBez{fpt(el.From), fpt(el.Ctrl1), fpt(el.Ctrl2), fpt(el.To)}, tolerance, 0, emit)
				}
				if !ok {
					return
				}
			default:
				if !yield(el) {
					return
				}
			}
		}
	}
}
