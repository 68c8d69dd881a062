package lattice

import (
	"fmt"
	"iter"
	"math"

	"github.com/sirupsen/logrus"
)

// Segment is the closed line segment between two grid points. A segment whose
// end points coincide is a single point.
type Segment struct {
	x1, y1 int
	x2, y2 int

	obs *observers
}

var _ Shape = (*Segment)(nil)

func NewSegment(x1, y1, x2, y2 int) Segment {
	return Segment{x1: x1, y1: y1, x2: x2, y2: y2}
}

func NewSegmentFromPoints(p1, p2 Point) Segment {
	return NewSegment(p1.X, p1.Y, p2.X, p2.Y)
}

func (s Segment) P1() Point { return Point{s.x1, s.y1} }
func (s Segment) P2() Point { return Point{s.x2, s.y2} }

func (s Segment) String() string {
	return fmt.Sprintf("Segment(%d, %d)-(%d, %d)", s.x1, s.y1, s.x2, s.y2)
}

func (s *Segment) set(x1, y1, x2, y2 int) {
	s.x1, s.y1 = x1, y1
	s.x2, s.y2 = x2, y2
	s.obs.notify(s)
}

func (s *Segment) Set(p1, p2 Point) {
	s.set(p1.X, p1.Y, p2.X, p2.Y)
}

func (s *Segment) Translate(v Vec2) {
	s.set(s.x1+v.X, s.y1+v.Y, s.x2+v.X, s.y2+v.Y)
}

func (s *Segment) Clear() {
	s.set(0, 0, 0, 0)
}

func (s *Segment) Observe(fn func()) func() {
	return observe(&s.obs, s, fn)
}

func (s Segment) Kind() Kind { return SegmentKind }

// IsEmpty reports whether both end points coincide.
func (s Segment) IsEmpty() bool {
	return s.x1 == s.x2 && s.y1 == s.y2
}

func (s Segment) Clone() Shape {
	return &Segment{x1: s.x1, y1: s.y1, x2: s.x2, y2: s.y2}
}

func (s Segment) WindingRule() WindingRule { return NonZero }

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return s.P1().Distance(s.P2())
}

func (s Segment) BoundingBox() Rect {
	return NewRectFromCorners(s.x1, s.y1, s.x2, s.y2)
}

// Contains reports whether pt is one of the pixels drawn for the segment. See
// [Segment.Points].
func (s Segment) Contains(pt Point) bool {
	return onPixels(pt.X, pt.Y, s.x1, s.y1, s.x2, s.y2)
}

// ContainsRect reports whether every corner of r is a pixel of the segment.
func (s Segment) ContainsRect(r Rect) bool {
	return s.Contains(Pt(r.minX, r.minY)) &&
		s.Contains(Pt(r.maxX, r.minY)) &&
		s.Contains(Pt(r.maxX, r.maxY)) &&
		s.Contains(Pt(r.minX, r.maxY))
}

func (s Segment) Intersects(o Shape) bool {
	return Intersects(&s, o)
}

// ClosestPointTo projects pt onto the segment and rounds the projection to the
// grid, with halves rounded away from zero. The result need not lie exactly on
// the segment. A point contained in the segment is its own closest point.
func (s Segment) ClosestPointTo(pt Point) Point {
	if s.Contains(pt) {
		return pt
	}
	t := projectOnSegment(pt.X, pt.Y, s.x1, s.y1, s.x2, s.y2)
	switch t {
	case 0:
		return s.P1()
	case 1:
		return s.P2()
	}
	return fpoint{
		float64(s.x1) + t*float64(s.x2-s.x1),
		float64(s.y1) + t*float64(s.y2-s.y1),
	}.round()
}

// FarthestPointTo returns the end point farthest from pt, preferring the first
// end point on ties.
func (s Segment) FarthestPointTo(pt Point) Point {
	if pt.DistanceSquared(s.P2()) > pt.DistanceSquared(s.P1()) {
		return s.P2()
	}
	return s.P1()
}

func (s Segment) Distance(pt Point) float64 {
	return math.Sqrt(s.DistanceSquared(pt))
}

// DistanceSquared returns the squared distance between pt and the exact
// projection onto the segment, or zero if the segment contains pt.
func (s Segment) DistanceSquared(pt Point) float64 {
	if s.Contains(pt) {
		return 0
	}
	return segmentDistanceSquared(pt.X, pt.Y, s.x1, s.y1, s.x2, s.y2)
}

func (s Segment) DistanceL1(pt Point) int {
	return pt.DistanceL1(s.ClosestPointTo(pt))
}

func (s Segment) DistanceLinf(pt Point) int {
	return pt.DistanceLinf(s.ClosestPointTo(pt))
}

// SideOf reports on which side of the directed line through the segment pt
// lies: 1 for the left side as seen on screen, -1 for the right side and 0 if
// the three points are collinear.
func (s Segment) SideOf(ctx Context, pt Point) int {
	o := orientation(s.x1, s.y1, s.x2, s.y2, pt.X, pt.Y)
	if ctx.yDown() {
		return -o
	}
	return o
}

func (s Segment) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		p1, p2 := s.P1(), s.P2()
		_ = yield(PathElement{Kind: MoveToKind, From: p1, To: p1}) &&
			yield(PathElement{Kind: LineToKind, From: p1, To: p2})
	}
}

// Points returns the pixels Bresenham's algorithm draws for the segment,
// walking from the first end point to the second. Both end points are
// included. Reversing the segment may yield a different set of pixels.
func (s Segment) Points() iter.Seq[Point] {
	return newPixelLine(s.x1, s.y1, s.x2, s.y2).pixels(true)
}

// maxClipIterations bounds the clipping loop. Every iteration moves one end
// point onto a boundary line, so a handful suffice.
const maxClipIterations = 8

// Clip clips the segment to the closed rectangle r, using the Cohen–Sutherland
// algorithm on integers. An end point outside of r is moved onto the boundary
// line of the first region bit it has, testing top, bottom, right and left in
// that order; intersections are computed with truncating integer division.
//
// It reports whether any part of the segment lies in r. If none does, the
// segment is left untouched.
func (s *Segment) Clip(ctx Context, r Rect) bool {
	x0, y0, x1, y1 := s.x1, s.y1, s.x2, s.y2
	topY, bottomY := r.maxY, r.minY
	if ctx.yDown() {
		topY, bottomY = r.minY, r.maxY
	}
	c0 := r.Outcode(ctx, Pt(x0, y0))
	c1 := r.Outcode(ctx, Pt(x1, y1))
	for range maxClipIterations {
		if c0|c1 == 0 {
			s.set(x0, y0, x1, y1)
			return true
		}
		if c0&c1 != 0 {
			break
		}
		c := c0
		if c == 0 {
			c = c1
		}
		var x, y int
		switch {
		case c&OutTop != 0:
			y = topY
			x = x0 + (x1-x0)*(y-y0)/(y1-y0)
		case c&OutBottom != 0:
			y = bottomY
			x = x0 + (x1-x0)*(y-y0)/(y1-y0)
		case c&OutRight != 0:
			x = r.maxX
			y = y0 + (y1-y0)*(x-x0)/(x1-x0)
		case c&OutLeft != 0:
			x = r.minX
			y = y0 + (y1-y0)*(x-x0)/(x1-x0)
		}
		if c == c0 {
			x0, y0 = x, y
			c0 = r.Outcode(ctx, Pt(x0, y0))
		} else {
			x1, y1 = x, y
			c1 = r.Outcode(ctx, Pt(x1, y1))
		}
	}
	Logger().WithFields(logrus.Fields{
		"segment": s.String(),
		"rect":    r.String(),
	}).Debug("segment misses clip rectangle")
	return false
}
