package lattice

import (
	"fmt"
	"iter"
	"math"
)

// circleArm is the distance of the control points of a quarter circle cubic
// from its end points, relative to the radius.
const circleArm = 0.5522847498307933

// Circle is a closed disk with an integer center and radius.
type Circle struct {
	cx, cy int
	r      int

	obs *observers
}

var _ Shape = (*Circle)(nil)

// NewCircle returns the disk with the given center and radius. A negative
// radius returns an error wrapping [ErrInvalidArgument].
func NewCircle(cx, cy, radius int) (Circle, error) {
	if radius < 0 {
		return Circle{}, fmt.Errorf("negative radius %d: %w", radius, ErrInvalidArgument)
	}
	return Circle{cx: cx, cy: cy, r: radius}, nil
}

func (c Circle) Center() Point { return Point{c.cx, c.cy} }
func (c Circle) Radius() int   { return c.r }

func (c Circle) String() string {
	return fmt.Sprintf("Circle(%d, %d, %d)", c.cx, c.cy, c.r)
}

func (c *Circle) set(cx, cy, r int) {
	c.cx, c.cy, c.r = cx, cy, r
	c.obs.notify(c)
}

// Set replaces center and radius. A negative radius returns an error wrapping
// [ErrInvalidArgument] and leaves the circle unchanged.
func (c *Circle) Set(center Point, radius int) error {
	if radius < 0 {
		return fmt.Errorf("negative radius %d: %w", radius, ErrInvalidArgument)
	}
	c.set(center.X, center.Y, radius)
	return nil
}

func (c *Circle) SetCenter(center Point) {
	c.set(center.X, center.Y, c.r)
}

func (c *Circle) SetRadius(radius int) error {
	return c.Set(c.Center(), radius)
}

func (c *Circle) Translate(v Vec2) {
	c.set(c.cx+v.X, c.cy+v.Y, c.r)
}

func (c *Circle) Clear() {
	c.set(0, 0, 0)
}

func (c *Circle) Observe(fn func()) func() {
	return observe(&c.obs, c, fn)
}

func (c Circle) Kind() Kind { return CircleKind }

// IsEmpty reports whether the radius is zero.
func (c Circle) IsEmpty() bool { return c.r == 0 }

func (c Circle) Clone() Shape {
	return &Circle{cx: c.cx, cy: c.cy, r: c.r}
}

func (c Circle) WindingRule() WindingRule { return NonZero }

func (c Circle) BoundingBox() Rect {
	return NewRectFromCorners(c.cx-c.r, c.cy-c.r, c.cx+c.r, c.cy+c.r)
}

func (c Circle) Contains(pt Point) bool {
	return pt.DistanceSquared(c.Center()) <= c.r*c.r
}

func (c Circle) ContainsRect(r Rect) bool {
	return c.Contains(Pt(r.minX, r.minY)) &&
		c.Contains(Pt(r.maxX, r.minY)) &&
		c.Contains(Pt(r.maxX, r.maxY)) &&
		c.Contains(Pt(r.minX, r.maxY))
}

// Quadrant names one of the four closed quadrants around a center, numbered
// counter-clockwise in a y-up frame.
type Quadrant int

const (
	// x ≥ cx, y ≥ cy
	QuadrantI Quadrant = iota + 1
	// x ≤ cx, y ≥ cy
	QuadrantII
	// x ≤ cx, y ≤ cy
	QuadrantIII
	// x ≥ cx, y ≤ cy
	QuadrantIV
)

// ContainsInQuadrant reports whether pt is contained by the circle and lies in
// quadrant q of its center. Points on the axes belong to both adjacent
// quadrants.
func (c Circle) ContainsInQuadrant(q Quadrant, pt Point) bool {
	if !c.Contains(pt) {
		return false
	}
	dx, dy := pt.X-c.cx, pt.Y-c.cy
	switch q {
	case QuadrantI:
		return dx >= 0 && dy >= 0
	case QuadrantII:
		return dx <= 0 && dy >= 0
	case QuadrantIII:
		return dx <= 0 && dy <= 0
	case QuadrantIV:
		return dx >= 0 && dy <= 0
	default:
		return false
	}
}

func (c Circle) Intersects(o Shape) bool {
	return Intersects(&c, o)
}

// snap picks, among the up to four grid points surrounding f that lie in the
// disk, the one nearest to pt, or the farthest if farthest is set. The grid
// point reached by truncating f towards the center is always a candidate.
func (c Circle) snap(f fpoint, pt Point, farthest bool) Point {
	x0, y0 := int(math.Floor(f.x)), int(math.Floor(f.y))
	var best option[Point]
	bestD := 0
	for _, q := range [...]Point{{x0, y0}, {x0 + 1, y0}, {x0, y0 + 1}, {x0 + 1, y0 + 1}} {
		if !c.Contains(q) {
			continue
		}
		d := q.DistanceSquared(pt)
		if !best.isSet || (farthest && d > bestD) || (!farthest && d < bestD) {
			best.set(q)
			bestD = d
		}
	}
	if !best.isSet {
		return c.Center()
	}
	return best.value
}

// onCircle returns the point at distance r from the center in the direction
// of v.
func (c Circle) onCircle(v Vec2) fpoint {
	l := v.Hypot()
	return fpoint{
		float64(c.cx) + float64(c.r)*float64(v.X)/l,
		float64(c.cy) + float64(c.r)*float64(v.Y)/l,
	}
}

// ClosestPointTo returns pt if the disk contains it. Otherwise it returns the
// grid point of the disk nearest to the projection of pt onto the circle.
func (c Circle) ClosestPointTo(pt Point) Point {
	if c.Contains(pt) {
		return pt
	}
	return c.snap(c.onCircle(pt.Sub(c.Center())), pt, false)
}

// FarthestPointTo returns the grid point of the disk nearest to the point of
// the circle diametrically opposite to pt. If pt is the center, the result is
// (cx+r, cy).
func (c Circle) FarthestPointTo(pt Point) Point {
	center := c.Center()
	if pt == center {
		return Pt(c.cx+c.r, c.cy)
	}
	return c.snap(c.onCircle(center.Sub(pt)), pt, true)
}

// Distance returns the distance between pt and the disk, which is zero for
// contained points.
func (c Circle) Distance(pt Point) float64 {
	if c.Contains(pt) {
		return 0
	}
	return max(0, pt.Distance(c.Center())-float64(c.r))
}

func (c Circle) DistanceSquared(pt Point) float64 {
	d := c.Distance(pt)
	return d * d
}

func (c Circle) DistanceL1(pt Point) int {
	return pt.DistanceL1(c.ClosestPointTo(pt))
}

func (c Circle) DistanceLinf(pt Point) int {
	return pt.DistanceLinf(c.ClosestPointTo(pt))
}

// PathElements approximates the circle with four cubic Béziers, starting at
// (cx+r, cy) and running counter-clockwise in a y-up frame. Control points are
// rounded to the grid. Circles of radius zero have no outline.
func (c Circle) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if c.r == 0 {
			return
		}
		x, y, r := c.cx, c.cy, c.r
		k := roundHalfAway(circleArm * float64(r))
		start := Pt(x+r, y)
		if !yield(PathElement{Kind: MoveToKind, From: start, To: start}) {
			return
		}
		quarters := [4][3]Point{
			{{x + r, y + k}, {x + k, y + r}, {x, y + r}},
			{{x - k, y + r}, {x - r, y + k}, {x - r, y}},
			{{x - r, y - k}, {x - k, y - r}, {x, y - r}},
			{{x + k, y - r}, {x + r, y - k}, {x + r, y}},
		}
		from := start
		for _, q := range quarters {
			if !yield(PathElement{Kind: CubicToKind, From: from, Ctrl1: q[0], Ctrl2: q[1], To: q[2]}) {
				return
			}
			from = q[2]
		}
		yield(PathElement{Kind: ClosePathKind, From: start, To: start})
	}
}

// Points returns the outermost grid points of the disk, all eight octants
// starting at (cx+r, cy). See [Circle.Octants].
func (c Circle) Points() iter.Seq[Point] {
	return c.Octants(DefaultContext(), 0, 8)
}

// Octants returns the outermost grid points of the disk in n consecutive
// octants, starting with octant first. Octant 0 starts at (cx+r, cy) and
// octants run counter-clockwise as seen on screen: by increasing angle in a
// y-up context, by decreasing angle in a y-down one.
//
// Every yielded point is contained by the disk. Points shared by adjacent
// octants are yielded once.
func (c Circle) Octants(ctx Context, first, n int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if n <= 0 {
			return
		}
		full := n >= 8
		n = min(n, 8)
		base := c.octantOffsets()
		center := c.Center()
		var last, head option[Point]
		for i := range n {
			o := ((first+i)%8 + 8) % 8
			for j := range base {
				k := j
				if o%2 == 1 {
					k = len(base) - 1 - j
				}
				v := mirrorOctant(o, base[k])
				if ctx.yDown() {
					v.Y = -v.Y
				}
				p := center.Translate(v)
				if last.isSet && last.value == p {
					continue
				}
				if full && head.isSet && head.value == p {
					continue
				}
				if !head.isSet {
					head.set(p)
				}
				last.set(p)
				if !yield(p) {
					return
				}
			}
		}
	}
}

// octantOffsets returns, for the octant between 0 and 45 degrees and in order
// of increasing angle, the offset of the outermost grid point of every row:
// the largest x with x² + y² ≤ r², for y from 0 while y ≤ x.
func (c Circle) octantOffsets() []Vec2 {
	var out []Vec2
	x, y := c.r, 0
	// e tracks x² + y² − r².
	e := 0
	for y <= x {
		for e > 0 {
			e -= 2*x - 1
			x--
		}
		if y > x {
			break
		}
		out = append(out, Vec2{x, y})
		e += 2*y + 1
		y++
	}
	return out
}

func mirrorOctant(o int, v Vec2) Vec2 {
	switch o {
	case 0:
		return Vec2{v.X, v.Y}
	case 1:
		return Vec2{v.Y, v.X}
	case 2:
		return Vec2{-v.Y, v.X}
	case 3:
		return Vec2{-v.X, v.Y}
	case 4:
		return Vec2{-v.X, -v.Y}
	case 5:
		return Vec2{-v.Y, -v.X}
	case 6:
		return Vec2{v.Y, -v.X}
	case 7:
		return Vec2{v.X, -v.Y}
	default:
		panic(fmt.Sprintf("invalid octant %d", o))
	}
}
