package lattice

import (
	"fmt"
	"iter"
	"math"
)

// Rect is an axis-aligned rectangle with closed extents. The zero value is the
// empty rectangle at the origin.
//
// Rect doubles as the bounding box type of all shapes. Values returned by
// BoundingBox carry no observers.
type Rect struct {
	minX, minY int
	maxX, maxY int

	obs *observers
}

var _ Shape = (*Rect)(nil)

// NewRect returns the rectangle with origin (x, y) and the given size.
// Negative sizes extend the rectangle towards negative coordinates.
func NewRect(x, y, width, height int) Rect {
	return NewRectFromCorners(x, y, x+width, y+height)
}

// NewRectFromCorners returns the rectangle spanned by two opposite corners,
// ensuring that width and height are non-negative.
func NewRectFromCorners(x0, y0, x1, y1 int) Rect {
	return Rect{
		minX: min(x0, x1),
		minY: min(y0, y1),
		maxX: max(x0, x1),
		maxY: max(y0, y1),
	}
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1.
func NewRectFromPoints(p0, p1 Point) Rect {
	return NewRectFromCorners(p0.X, p0.Y, p1.X, p1.Y)
}

func (r Rect) MinX() int { return r.minX }
func (r Rect) MinY() int { return r.minY }
func (r Rect) MaxX() int { return r.maxX }
func (r Rect) MaxY() int { return r.maxY }

func (r Rect) Min() Point { return Point{r.minX, r.minY} }
func (r Rect) Max() Point { return Point{r.maxX, r.maxY} }

func (r Rect) Width() int  { return r.maxX - r.minX }
func (r Rect) Height() int { return r.maxY - r.minY }

// Center returns the center of the rectangle, truncated towards zero.
func (r Rect) Center() Point {
	return r.Min().Midpoint(r.Max())
}

func (r Rect) Area() int {
	return r.Width() * r.Height()
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d, %d)-(%d, %d)", r.minX, r.minY, r.maxX, r.maxY)
}

func (r *Rect) set(minX, minY, maxX, maxY int) {
	r.minX = minX
	r.minY = minY
	r.maxX = maxX
	r.maxY = maxY
	r.obs.notify(r)
}

// Set replaces the rectangle with the one at (x, y) of the given size.
func (r *Rect) Set(x, y, width, height int) {
	n := NewRect(x, y, width, height)
	r.set(n.minX, n.minY, n.maxX, n.maxY)
}

// SetFromCorners replaces the rectangle with the one spanned by two opposite
// corners.
func (r *Rect) SetFromCorners(x0, y0, x1, y1 int) {
	n := NewRectFromCorners(x0, y0, x1, y1)
	r.set(n.minX, n.minY, n.maxX, n.maxY)
}

func (r *Rect) Translate(v Vec2) {
	r.set(r.minX+v.X, r.minY+v.Y, r.maxX+v.X, r.maxY+v.Y)
}

func (r *Rect) Clear() {
	r.set(0, 0, 0, 0)
}

func (r *Rect) Observe(fn func()) func() {
	return observe(&r.obs, r, fn)
}

func (r Rect) Kind() Kind { return RectKind }

// IsEmpty reports whether the rectangle has collapsed to a single point.
// Rectangles with a zero width or height but not both are degenerate, not
// empty.
func (r Rect) IsEmpty() bool {
	return r.minX == r.maxX && r.minY == r.maxY
}

func (r Rect) Clone() Shape {
	c := r.BoundingBox()
	return &c
}

func (r Rect) WindingRule() WindingRule { return NonZero }

func (r Rect) BoundingBox() Rect {
	return Rect{minX: r.minX, minY: r.minY, maxX: r.maxX, maxY: r.maxY}
}

func (r Rect) Contains(pt Point) bool {
	return r.contains(pt.X, pt.Y)
}

func (r Rect) contains(x, y int) bool {
	return x >= r.minX && x <= r.maxX && y >= r.minY && y <= r.maxY
}

func (r Rect) ContainsRect(o Rect) bool {
	return o.minX >= r.minX && o.maxX <= r.maxX &&
		o.minY >= r.minY && o.maxY <= r.maxY
}

func (r Rect) Intersects(o Shape) bool {
	return Intersects(&r, o)
}

// overlaps reports whether two closed rectangles share a point. Rectangles
// that only touch along an edge or at a corner overlap.
func (r Rect) overlaps(o Rect) bool {
	return r.minX <= o.maxX && o.minX <= r.maxX &&
		r.minY <= o.maxY && o.minY <= r.maxY
}

// touchesSegment reports whether the closed segment shares a point with the
// closed rectangle.
func (r Rect) touchesSegment(x0, y0, x1, y1 int) bool {
	if r.contains(x0, y0) || r.contains(x1, y1) {
		return true
	}
	if max(x0, x1) < r.minX || min(x0, x1) > r.maxX ||
		max(y0, y1) < r.minY || min(y0, y1) > r.maxY {
		return false
	}
	return segmentsTouch(x0, y0, x1, y1, r.minX, r.minY, r.maxX, r.minY) ||
		segmentsTouch(x0, y0, x1, y1, r.maxX, r.minY, r.maxX, r.maxY) ||
		segmentsTouch(x0, y0, x1, y1, r.maxX, r.maxY, r.minX, r.maxY) ||
		segmentsTouch(x0, y0, x1, y1, r.minX, r.maxY, r.minX, r.minY)
}

// Union returns the smallest rectangle enclosing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		minX: min(r.minX, o.minX),
		minY: min(r.minY, o.minY),
		maxX: max(r.maxX, o.maxX),
		maxY: max(r.maxY, o.maxY),
	}
}

// UnionPoint computes the union with one point.
//
// A succession of UnionPoint operations on a series of points, starting from
// a rectangle at the first point, yields their enclosing rectangle.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		minX: min(r.minX, pt.X),
		minY: min(r.minY, pt.Y),
		maxX: max(r.maxX, pt.X),
		maxY: max(r.maxY, pt.Y),
	}
}

// Intersect returns the intersection of two rectangles. Disjoint rectangles
// yield the zero rectangle.
func (r Rect) Intersect(o Rect) Rect {
	if !r.overlaps(o) {
		return Rect{}
	}
	return Rect{
		minX: max(r.minX, o.minX),
		minY: max(r.minY, o.minY),
		maxX: min(r.maxX, o.maxX),
		maxY: min(r.maxY, o.maxY),
	}
}

// Inflate moves each edge of the rectangle outwards by the given amount.
// Negative amounts move edges inwards. In y-up terms, top moves the max-y edge
// and bottom the min-y edge.
//
// If an axis ends up inverted, it collapses to the midpoint of its inverted
// extents.
func (r Rect) Inflate(left, top, right, bottom int) Rect {
	x0, x1 := r.minX-left, r.maxX+right
	y0, y1 := r.minY-bottom, r.maxY+top
	if x0 > x1 {
		m := floorDiv(x0+x1, 2)
		x0, x1 = m, m
	}
	if y0 > y1 {
		m := floorDiv(y0+y1, 2)
		y0, y1 = m, m
	}
	return Rect{minX: x0, minY: y0, maxX: x1, maxY: y1}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (r Rect) ClosestPointTo(pt Point) Point {
	return Point{
		X: clamp(pt.X, r.minX, r.maxX),
		Y: clamp(pt.Y, r.minY, r.maxY),
	}
}

// FarthestPointTo returns the corner opposite to the quadrant of pt, relative
// to the center of the rectangle. Points on a center line pick the max
// corner.
func (r Rect) FarthestPointTo(pt Point) Point {
	x, y := r.minX, r.minY
	if 2*pt.X <= r.minX+r.maxX {
		x = r.maxX
	}
	if 2*pt.Y <= r.minY+r.maxY {
		y = r.maxY
	}
	return Point{x, y}
}

func (r Rect) Distance(pt Point) float64 {
	return math.Sqrt(r.DistanceSquared(pt))
}

func (r Rect) DistanceSquared(pt Point) float64 {
	return float64(pt.DistanceSquared(r.ClosestPointTo(pt)))
}

func (r Rect) DistanceL1(pt Point) int {
	return pt.DistanceL1(r.ClosestPointTo(pt))
}

func (r Rect) DistanceLinf(pt Point) int {
	return pt.DistanceLinf(r.ClosestPointTo(pt))
}

// PathElements returns the outline of the rectangle as a closed polygon,
// starting at the min corner. Empty rectangles have no outline.
func (r Rect) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if r.IsEmpty() {
			return
		}
		pts := [4]Point{
			{r.minX, r.minY},
			{r.maxX, r.minY},
			{r.maxX, r.maxY},
			{r.minX, r.maxY},
		}
		if !yield(PathElement{Kind: MoveToKind, From: pts[0], To: pts[0]}) {
			return
		}
		for i := 1; i < len(pts); i++ {
			if !yield(PathElement{Kind: LineToKind, From: pts[i-1], To: pts[i]}) {
				return
			}
		}
		yield(PathElement{Kind: ClosePathKind, From: pts[3], To: pts[0]})
	}
}

// Points returns the boundary points of the rectangle, starting with the top
// side in a y-up frame. See [Rect.Sides].
func (r Rect) Points() iter.Seq[Point] {
	return r.Sides(DefaultContext(), SideTop)
}

// Side names one edge of a rectangle. Which edge is on top depends on the
// coordinate system: it is the max-y edge in [YUp] and the min-y edge in
// [YDown].
type Side int

const (
	SideTop Side = iota + 1
	SideRight
	SideBottom
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Sides returns the grid points on the boundary of the rectangle. The sides
// are walked clockwise as seen on screen, top, right, bottom, then left,
// starting at first. Each side yields its start corner and its interior
// points, so every boundary point is yielded exactly once.
//
// Degenerate rectangles, with a width or height of zero, yield nothing.
func (r Rect) Sides(ctx Context, first Side) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if r.minX == r.maxX || r.minY == r.maxY {
			return
		}
		top, bottom := r.maxY, r.minY
		if ctx.yDown() {
			top, bottom = r.minY, r.maxY
		}
		corners := [4]Point{
			{r.minX, top},
			{r.maxX, top},
			{r.maxX, bottom},
			{r.minX, bottom},
		}
		start := ((int(first)-int(SideTop))%4 + 4) % 4
		for i := range 4 {
			s := (start + i) % 4
			a, b := corners[s], corners[(s+1)%4]
			step := Vec2{sign(b.X - a.X), sign(b.Y - a.Y)}
			for p := a; p != b; p = p.Translate(step) {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Outcode is the Cohen–Sutherland region code of a point relative to a
// rectangle.
type Outcode int

const (
	OutLeft Outcode = 1 << iota
	OutRight
	OutBottom
	OutTop
)

func (c Outcode) String() string {
	if c == 0 {
		return "inside"
	}
	s := ""
	for _, b := range [...]struct {
		bit  Outcode
		name string
	}{{OutLeft, "left"}, {OutRight, "right"}, {OutBottom, "bottom"}, {OutTop, "top"}} {
		if c&b.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += b.name
		}
	}
	return s
}

// Outcode computes the region of pt relative to the closed rectangle. Points
// inside or on the boundary have a code of zero.
func (r Rect) Outcode(ctx Context, pt Point) Outcode {
	var code Outcode
	if pt.X < r.minX {
		code |= OutLeft
	} else if pt.X > r.maxX {
		code |= OutRight
	}
	below, above := pt.Y < r.minY, pt.Y > r.maxY
	if ctx.yDown() {
		below, above = above, below
	}
	if below {
		code |= OutBottom
	} else if above {
		code |= OutTop
	}
	return code
}
