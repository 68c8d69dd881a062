package lattice

import (
	"fmt"
	"iter"
	"math"
)

// Shape pair routines are looked up by the kinds of both shapes. Pairs with
// different kinds are registered once and reused with swapped arguments.
type (
	intersectsFunc func(a, b Shape) bool
	closestFunc    func(a, b Shape) Point
	distanceFunc   func(a, b Shape) float64
)

var (
	intersectsTable [numKinds][numKinds]intersectsFunc
	closestTable    [numKinds][numKinds]closestFunc
	distanceTable   [numKinds][numKinds]distanceFunc
)

func registerIntersects(ka, kb Kind, fn intersectsFunc) {
	intersectsTable[ka][kb] = fn
	if ka != kb {
		intersectsTable[kb][ka] = func(a, b Shape) bool { return fn(b, a) }
	}
}

func registerDistance(ka, kb Kind, fn distanceFunc) {
	distanceTable[ka][kb] = fn
	if ka != kb {
		distanceTable[kb][ka] = func(a, b Shape) float64 { return fn(b, a) }
	}
}

var leafKinds = [...]Kind{RectKind, CircleKind, SegmentKind, PathKind}

func isPolygonal(k Kind) bool {
	return k == RectKind || k == SegmentKind || k == PathKind
}

func init() {
	registerIntersects(RectKind, RectKind, func(a, b Shape) bool {
		return a.(*Rect).overlaps(*b.(*Rect))
	})
	registerIntersects(RectKind, CircleKind, func(a, b Shape) bool {
		r, c := a.(*Rect), b.(*Circle)
		return c.Contains(r.ClosestPointTo(c.Center()))
	})
	registerIntersects(RectKind, SegmentKind, func(a, b Shape) bool {
		r, s := a.(*Rect), b.(*Segment)
		return r.touchesSegment(s.x1, s.y1, s.x2, s.y2)
	})
	registerIntersects(RectKind, PathKind, func(a, b Shape) bool {
		return b.(*Path).intersectsShadow(RectShadow(*a.(*Rect)))
	})
	registerIntersects(CircleKind, CircleKind, func(a, b Shape) bool {
		c1, c2 := a.(*Circle), b.(*Circle)
		r := c1.r + c2.r
		return c1.Center().DistanceSquared(c2.Center()) <= r*r
	})
	registerIntersects(CircleKind, SegmentKind, func(a, b Shape) bool {
		c, s := a.(*Circle), b.(*Segment)
		return segmentWithin(c.cx, c.cy, s.x1, s.y1, s.x2, s.y2, c.r*c.r)
	})
	registerIntersects(CircleKind, PathKind, func(a, b Shape) bool {
		return b.(*Path).intersectsShadow(CircleShadow(*a.(*Circle)))
	})
	registerIntersects(SegmentKind, SegmentKind, func(a, b Shape) bool {
		s1, s2 := a.(*Segment), b.(*Segment)
		return segmentsTouch(s1.x1, s1.y1, s1.x2, s1.y2, s2.x1, s2.y1, s2.x2, s2.y2)
	})
	registerIntersects(SegmentKind, PathKind, func(a, b Shape) bool {
		return b.(*Path).intersectsShadow(SegmentShadow(*a.(*Segment)))
	})
	registerIntersects(PathKind, PathKind, func(a, b Shape) bool {
		p1, p2 := a.(*Path), b.(*Path)
		return p1.intersectsShadow(p2.shadow()) || p2.intersectsShadow(p1.shadow())
	})

	for _, ka := range leafKinds {
		for _, kb := range leafKinds {
			switch {
			case kb == CircleKind:
				closestTable[ka][kb] = closestToCircle
			case ka == CircleKind:
				closestTable[ka][kb] = closestOfCircle
			default:
				closestTable[ka][kb] = closestPolygonal
			}
		}
	}

	registerDistance(CircleKind, CircleKind, func(a, b Shape) float64 {
		c1, c2 := a.(*Circle), b.(*Circle)
		d := c1.Center().Distance(c2.Center()) - float64(c1.r) - float64(c2.r)
		return square(max(0, d))
	})
	for _, k := range leafKinds {
		if isPolygonal(k) {
			registerDistance(CircleKind, k, distanceCircle)
			for _, k2 := range leafKinds {
				if isPolygonal(k2) {
					distanceTable[k][k2] = distancePolygonal
				}
			}
		}
	}
}

func square(f float64) float64 { return f * f }

func unhandledPair(a, b Shape) string {
	return fmt.Sprintf("unhandled shape pair %v, %v", a.Kind(), b.Kind())
}

// Intersects reports whether two shapes share at least one point. It is
// symmetric. A multi-shape intersects whatever one of its children intersects.
func Intersects(a, b Shape) bool {
	if m, ok := a.(*MultiShape); ok {
		_, found := m.FirstShapeIntersecting(b)
		return found
	}
	if m, ok := b.(*MultiShape); ok {
		_, found := m.FirstShapeIntersecting(a)
		return found
	}
	fn := intersectsTable[a.Kind()][b.Kind()]
	if fn == nil {
		panic(unhandledPair(a, b))
	}
	return fn(a, b)
}

// ClosestPoint returns a grid point of a that is closest to b.
//
// Against a circle, that is the point of a closest to the center. A circle
// reports its point closest to the point of b that is closest to its center.
// Between polygonal shapes (rectangles, segments and paths), the anchor of one
// shape is returned if the other contains it, and otherwise the closest
// points of all pairs of flattened edges are compared. Multi-shapes pick the
// best child, preferring earlier children on ties.
func ClosestPoint(a, b Shape) Point {
	if m, ok := a.(*MultiShape); ok {
		best := Point{}
		bestD := math.Inf(1)
		for _, c := range m.children {
			if d := DistanceSquared(c, b); d < bestD {
				bestD = d
				best = ClosestPoint(c, b)
			}
		}
		return best
	}
	if m, ok := b.(*MultiShape); ok {
		var best option[Point]
		bestD := math.Inf(1)
		for _, c := range m.children {
			if d := DistanceSquared(a, c); d < bestD {
				bestD = d
				best.set(ClosestPoint(a, c))
			}
		}
		if !best.isSet {
			return a.ClosestPointTo(Point{})
		}
		return best.value
	}
	fn := closestTable[a.Kind()][b.Kind()]
	if fn == nil {
		panic(unhandledPair(a, b))
	}
	return fn(a, b)
}

// DistanceSquared returns the squared euclidean distance between two shapes,
// which is zero if and only if they intersect. Multi-shapes take the smallest distance
// over their children; an empty multi-shape is infinitely far away.
func DistanceSquared(a, b Shape) float64 {
	if m, ok := a.(*MultiShape); ok {
		d := math.Inf(1)
		for _, c := range m.children {
			d = min(d, DistanceSquared(c, b))
		}
		return d
	}
	if m, ok := b.(*MultiShape); ok {
		return DistanceSquared(m, a)
	}
	if Intersects(a, b) {
		return 0
	}
	fn := distanceTable[a.Kind()][b.Kind()]
	if fn == nil {
		panic(unhandledPair(a, b))
	}
	// Disjoint shapes are never at distance zero, even when the gap between
	// them is lost to rounding.
	return max(fn(a, b), math.SmallestNonzeroFloat64)
}

// Distance returns the euclidean distance between two shapes.
func Distance(a, b Shape) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

func closestToCircle(a, b Shape) Point {
	return a.ClosestPointTo(b.(*Circle).Center())
}

func closestOfCircle(a, b Shape) Point {
	c := a.(*Circle)
	return c.ClosestPointTo(b.ClosestPointTo(c.Center()))
}

func distanceCircle(a, b Shape) float64 {
	c := a.(*Circle)
	d := math.Sqrt(b.DistanceSquared(c.Center())) - float64(c.r)
	return square(max(0, d))
}

// anchorOf returns the first point of the outline of a polygonal shape.
func anchorOf(s Shape) (Point, bool) {
	switch s := s.(type) {
	case *Rect:
		return s.Min(), true
	case *Segment:
		return s.P1(), true
	case *Path:
		return s.anchor()
	default:
		panic(fmt.Sprintf("unhandled case %v", s.Kind()))
	}
}

// outline returns the edges of a polygonal shape. Rectangles always have four
// edges, even if they are degenerate.
func outline(s Shape) []edge {
	switch s := s.(type) {
	case *Rect:
		return []edge{
			{s.minX, s.minY, s.maxX, s.minY},
			{s.maxX, s.minY, s.maxX, s.maxY},
			{s.maxX, s.maxY, s.minX, s.maxY},
			{s.minX, s.maxY, s.minX, s.minY},
		}
	case *Segment:
		return []edge{{s.x1, s.y1, s.x2, s.y2}}
	case *Path:
		var out []edge
		for e := range s.edges() {
			out = append(out, e)
		}
		return out
	default:
		panic(fmt.Sprintf("unhandled case %v", s.Kind()))
	}
}

func closestPolygonal(a, b Shape) Point {
	ancB, okB := anchorOf(b)
	if okB && a.Contains(ancB) {
		return ancB
	}
	ancA, okA := anchorOf(a)
	if okA && b.Contains(ancA) {
		return ancA
	}
	ea, eb := outline(a), outline(b)
	if len(ea) == 0 || len(eb) == 0 {
		if okB {
			return a.ClosestPointTo(ancB)
		}
		return ancA
	}
	var best Point
	bestD := math.Inf(1)
	for _, e1 := range ea {
		for _, e2 := range eb {
			if pt, d := closestOnEdge(e1, e2); d < bestD {
				best, bestD = pt, d
				if d == 0 {
					return best
				}
			}
		}
	}
	return best
}

func distancePolygonal(a, b Shape) float64 {
	ea, eb := outline(a), outline(b)
	bestD := math.Inf(1)
	for _, e1 := range ea {
		for _, e2 := range eb {
			_, d := closestOnEdge(e1, e2)
			bestD = min(bestD, d)
		}
	}
	return bestD
}

// closestOnEdge returns the grid point of e1 closest to e2 and the squared
// distance between the two edges. For touching edges the point is their
// rounded intersection.
func closestOnEdge(e1, e2 edge) (Point, float64) {
	if segmentsTouch(e1.x0, e1.y0, e1.x1, e1.y1, e2.x0, e2.y0, e2.x1, e2.y1) {
		return edgeIntersection(e1, e2), 0
	}
	s1 := e1.segment()
	best := Pt(e1.x0, e1.y0)
	bestD := segmentDistanceSquared(e1.x0, e1.y0, e2.x0, e2.y0, e2.x1, e2.y1)
	if d := segmentDistanceSquared(e1.x1, e1.y1, e2.x0, e2.y0, e2.x1, e2.y1); d < bestD {
		best, bestD = Pt(e1.x1, e1.y1), d
	}
	for _, q := range [...]Point{{e2.x0, e2.y0}, {e2.x1, e2.y1}} {
		if d := s1.DistanceSquared(q); d < bestD {
			best, bestD = s1.ClosestPointTo(q), d
		}
	}
	return best, bestD
}

// edgeIntersection returns a common point of two touching edges. Proper
// crossings are rounded to the grid; otherwise an end point that lies on the
// other edge is returned, preferring those of e1.
func edgeIntersection(e1, e2 edge) Point {
	o1 := orientation(e1.x0, e1.y0, e1.x1, e1.y1, e2.x0, e2.y0)
	o2 := orientation(e1.x0, e1.y0, e1.x1, e1.y1, e2.x1, e2.y1)
	o3 := orientation(e2.x0, e2.y0, e2.x1, e2.y1, e1.x0, e1.y0)
	o4 := orientation(e2.x0, e2.y0, e2.x1, e2.y1, e1.x1, e1.y1)
	if o1*o2 < 0 && o3*o4 < 0 {
		d1 := Vec(e1.x1-e1.x0, e1.y1-e1.y0)
		d2 := Vec(e2.x1-e2.x0, e2.y1-e2.y0)
		w := Vec(e2.x0-e1.x0, e2.y0-e1.y0)
		t := float64(w.Cross(d2)) / float64(d1.Cross(d2))
		return fpoint{
			float64(e1.x0) + t*float64(d1.X),
			float64(e1.y0) + t*float64(d1.Y),
		}.round()
	}
	switch {
	case onSegment(e1.x0, e1.y0, e2.x0, e2.y0, e2.x1, e2.y1):
		return Pt(e1.x0, e1.y0)
	case onSegment(e1.x1, e1.y1, e2.x0, e2.y0, e2.x1, e2.y1):
		return Pt(e1.x1, e1.y1)
	case onSegment(e2.x0, e2.y0, e1.x0, e1.y0, e1.x1, e1.y1):
		return Pt(e2.x0, e2.y0)
	default:
		return Pt(e2.x1, e2.y1)
	}
}

// ContainsShape reports whether every point of b lies in a.
//
// Rectangles, circles and segments are convex, so they contain b when they
// contain its bounding box, corners, end points or flattened vertices. A path
// contains b when b lies in its interior without touching its outline, open
// subpaths being closed for the test. A multi-shape contains b when one of its
// children does; b being a multi-shape, every one of its children must be
// contained.
func ContainsShape(a, b Shape) bool {
	if m, ok := b.(*MultiShape); ok {
		if len(m.children) == 0 {
			return false
		}
		for _, c := range m.children {
			if !ContainsShape(a, c) {
				return false
			}
		}
		return true
	}
	switch a := a.(type) {
	case *MultiShape:
		for _, c := range a.children {
			if ContainsShape(c, b) {
				return true
			}
		}
		return false
	case *Rect:
		return a.ContainsRect(b.BoundingBox())
	case *Circle:
		switch b := b.(type) {
		case *Rect:
			return a.ContainsRect(*b)
		case *Circle:
			dr := a.r - b.r
			return dr >= 0 && a.Center().DistanceSquared(b.Center()) <= dr*dr
		default:
			return containsVertices(a, b)
		}
	case *Segment:
		switch b := b.(type) {
		case *Rect:
			return a.ContainsRect(*b)
		case *Circle:
			return b.r == 0 && a.Contains(b.Center())
		default:
			return containsVertices(a, b)
		}
	case *Path:
		var sh Shadow
		switch b := b.(type) {
		case *Rect:
			return a.ContainsRect(*b)
		case *Circle:
			sh = CircleShadow(*b)
		case *Segment:
			sh = SegmentShadow(*b)
		case *Path:
			sh = b.shadow()
		default:
			panic(unhandledPair(a, b))
		}
		n, ok := a.crossings(sh, AutoClose).Count()
		return ok && a.WindingRule().Inside(n)
	default:
		panic(unhandledPair(a, b))
	}
}

// containsVertices reports whether a convex shape contains every vertex of
// the flattened outline of b.
func containsVertices(a, b Shape) bool {
	tolerance := DefaultFlatness
	if p, ok := b.(*Path); ok {
		tolerance = p.Flatness()
	}
	for el := range Flatten(b.PathElements(), tolerance) {
		if !a.Contains(el.To) {
			return false
		}
	}
	return true
}

// EqualShapes reports whether two shapes have the same kind and geometry.
// Paths must have the same elements and winding rule; multi-shapes must have
// pairwise equal children.
func EqualShapes(a, b Shape) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Rect:
		return a.BoundingBox() == b.(*Rect).BoundingBox()
	case *Circle:
		o := b.(*Circle)
		return a.cx == o.cx && a.cy == o.cy && a.r == o.r
	case *Segment:
		o := b.(*Segment)
		return a.x1 == o.x1 && a.y1 == o.y1 && a.x2 == o.x2 && a.y2 == o.y2
	case *Path:
		o := b.(*Path)
		return a.WindingRule() == o.WindingRule() && EqualElements(a.PathElements(), o.PathElements())
	case *MultiShape:
		o := b.(*MultiShape)
		if len(a.children) != len(o.children) {
			return false
		}
		for i := range a.children {
			if !EqualShapes(a.children[i], o.children[i]) {
				return false
			}
		}
		return true
	default:
		return EqualElements(a.PathElements(), b.PathElements())
	}
}

// EqualsElements reports whether the outline of s is the element sequence
// seq.
func EqualsElements(s Shape, seq iter.Seq[PathElement]) bool {
	return EqualElements(s.PathElements(), seq)
}
