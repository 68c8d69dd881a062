package lattice

import (
	"fmt"
	"iter"
)

// WindingRule decides which points enclosed by a self-intersecting outline
// count as inside.
type WindingRule int

const (
	// NonZero treats a point as inside if its crossing count is not zero.
	NonZero WindingRule = iota + 1
	// EvenOdd treats a point as inside if its ray crosses the outline an odd
	// number of times.
	EvenOdd
)

func (r WindingRule) String() string {
	switch r {
	case NonZero:
		return "non-zero"
	case EvenOdd:
		return "even-odd"
	default:
		return fmt.Sprintf("WindingRule(%d)", int(r))
	}
}

// Inside applies the rule to an accumulated crossing count. A full crossing
// of the ray contributes ±2 to the count, so EvenOdd looks at the parity of
// count/2.
func (r WindingRule) Inside(count int) bool {
	if r == EvenOdd {
		return (count/2)%2 != 0
	}
	return count != 0
}

// CrossingResult is either a signed crossing count or the certainty that the
// shadow touches the outline.
type CrossingResult struct {
	count      int
	intersects bool
}

// ShapeIntersects is the result for a shadow that is known to touch the
// outline. It absorbs any further accumulation.
var ShapeIntersects = CrossingResult{intersects: true}

// Crossings returns a plain crossing count.
func Crossings(n int) CrossingResult {
	return CrossingResult{count: n}
}

// IsIntersects reports whether r is [ShapeIntersects].
func (r CrossingResult) IsIntersects() bool { return r.intersects }

// Count returns the crossing count. The second result is false for
// [ShapeIntersects], which has no count.
func (r CrossingResult) Count() (int, bool) {
	if r.intersects {
		return 0, false
	}
	return r.count, true
}

// Inside reports whether r classifies the shadow as touching or enclosed by
// the outline under rule.
func (r CrossingResult) Inside(rule WindingRule) bool {
	return r.intersects || rule.Inside(r.count)
}

func (r CrossingResult) add(o CrossingResult) CrossingResult {
	if r.intersects || o.intersects {
		return ShapeIntersects
	}
	return Crossings(r.count + o.count)
}

func (r CrossingResult) String() string {
	if r.intersects {
		return "Intersects"
	}
	return fmt.Sprintf("Count(%d)", r.count)
}

// CrossingMode selects how [ComputeCrossings] treats subpaths that don't end
// where they started.
type CrossingMode int

const (
	// Standard accumulates the edges exactly as given.
	Standard CrossingMode = iota + 1
	// AutoClose adds the implicit edge back to the anchor of every open
	// subpath.
	AutoClose
	// SimpleIntersectionWhenNotPolygon discards the count of open subpaths
	// and only keeps a certain intersection. An open polyline has no
	// interior, so only touching it matters.
	SimpleIntersectionWhenNotPolygon
)

// A Shadow is the query side of a crossing computation: a point, rectangle,
// segment, circle or path against which the directed edges of an outline are
// tested.
type Shadow interface {
	// Cross adds the contribution of the directed edge (x0, y0)→(x1, y1) to
	// acc.
	Cross(acc CrossingResult, x0, y0, x1, y1 int) CrossingResult
}

// PointCrossings adds the contribution of one directed edge to the crossing
// count of the horizontal ray cast from (px, py) towards positive x.
//
// Edges are the pixels Bresenham's algorithm draws for them. A point that is
// one of those pixels yields [ShapeIntersects]. Otherwise an edge contributes
// when its pixels in the ray's row lie to the right of the point. Each end
// point strictly on one side of the ray line adds 1 towards the edge's
// vertical direction, positive when it goes up: an edge crossing the line
// contributes ±2, an edge with one end point on the line contributes ±1, so
// that consecutive edges passing through a vertex on the ray add up to ±2,
// and edges merely touching the ray line cancel out. Horizontal edges never
// contribute.
func PointCrossings(acc CrossingResult, px, py, x0, y0, x1, y1 int) CrossingResult {
	if acc.intersects {
		return acc
	}
	if onPixels(px, py, x0, y0, x1, y1) {
		return ShapeIntersects
	}
	if y0 == y1 || py < min(y0, y1) || py > max(y0, y1) || px > max(x0, x1) {
		return acc
	}
	if lo, _, ok := newPixelLine(x0, y0, x1, y1).row(py); !ok || lo < px {
		return acc
	}
	return Crossings(acc.count + sign(y1-py) - sign(y0-py))
}

// RectCrossings adds the contribution of one directed edge for a rectangular
// shadow. An edge touching the closed rectangle yields [ShapeIntersects].
// Otherwise every point of the rectangle is classified alike, and the minimum
// corner stands in for all of them.
func RectCrossings(acc CrossingResult, r Rect, x0, y0, x1, y1 int) CrossingResult {
	if acc.intersects {
		return acc
	}
	if r.touchesSegment(x0, y0, x1, y1) {
		return ShapeIntersects
	}
	return PointCrossings(acc, r.minX, r.minY, x0, y0, x1, y1)
}

// SegmentCrossings adds the contribution of one directed edge for a segment
// shadow. Touching segments yield [ShapeIntersects]; otherwise the segment's
// first end point stands in for the whole segment.
func SegmentCrossings(acc CrossingResult, s Segment, x0, y0, x1, y1 int) CrossingResult {
	if acc.intersects {
		return acc
	}
	if segmentsTouch(s.x1, s.y1, s.x2, s.y2, x0, y0, x1, y1) {
		return ShapeIntersects
	}
	return PointCrossings(acc, s.x1, s.y1, x0, y0, x1, y1)
}

// CircleCrossings adds the contribution of one directed edge for a disk
// shadow. An edge passing within the radius of the center yields
// [ShapeIntersects]; otherwise the center stands in for the disk.
func CircleCrossings(acc CrossingResult, c Circle, x0, y0, x1, y1 int) CrossingResult {
	if acc.intersects {
		return acc
	}
	if segmentWithin(c.cx, c.cy, x0, y0, x1, y1, c.r*c.r) {
		return ShapeIntersects
	}
	return PointCrossings(acc, c.cx, c.cy, x0, y0, x1, y1)
}

type pointShadow struct{ p Point }

func (s pointShadow) Cross(acc CrossingResult, x0, y0, x1, y1 int) CrossingResult {
	return PointCrossings(acc, s.p.X, s.p.Y, x0, y0, x1, y1)
}

type rectShadow struct{ r Rect }

func (s rectShadow) Cross(acc CrossingResult, x0, y0, x1, y1 int) CrossingResult {
	return RectCrossings(acc, s.r, x0, y0, x1, y1)
}

type segmentShadow struct{ s Segment }

func (s segmentShadow) Cross(acc CrossingResult, x0, y0, x1, y1 int) CrossingResult {
	return SegmentCrossings(acc, s.s, x0, y0, x1, y1)
}

type circleShadow struct{ c Circle }

func (s circleShadow) Cross(acc CrossingResult, x0, y0, x1, y1 int) CrossingResult {
	return CircleCrossings(acc, s.c, x0, y0, x1, y1)
}

// pathShadow is a flattened path used as a shadow. Each of its edges is
// tested as a segment shadow; when none touches the outline edge, the anchor
// of the path stands in for all of it.
type pathShadow struct {
	edges  []edge
	anchor option[Point]
}

func (s *pathShadow) Cross(acc CrossingResult, x0, y0, x1, y1 int) CrossingResult {
	if acc.intersects || !s.anchor.isSet {
		return acc
	}
	for _, e := range s.edges {
		if segmentsTouch(e.x0, e.y0, e.x1, e.y1, x0, y0, x1, y1) {
			return ShapeIntersects
		}
	}
	a := s.anchor.value
	return PointCrossings(acc, a.X, a.Y, x0, y0, x1, y1)
}

// PointShadow returns a shadow for a single point.
func PointShadow(p Point) Shadow { return pointShadow{p} }

// RectShadow returns a shadow for a closed rectangle.
func RectShadow(r Rect) Shadow { return rectShadow{r} }

// SegmentShadow returns a shadow for a closed segment.
func SegmentShadow(s Segment) Shadow { return segmentShadow{s} }

// CircleShadow returns a shadow for a closed disk.
func CircleShadow(c Circle) Shadow { return circleShadow{c} }

// PathShadow returns a shadow for the outline described by seq. Curves are
// flattened with [DefaultFlatness]. Only drawn edges are part of the shadow;
// open subpaths aren't closed. An outline without edges casts no shadow.
func PathShadow(seq iter.Seq[PathElement]) Shadow {
	return PathShadowContext(Context{}, seq)
}

// PathShadowContext is like [PathShadow] but flattens curves with the
// flatness of ctx.
func PathShadowContext(ctx Context, seq iter.Seq[PathElement]) Shadow {
	s := &pathShadow{}
	for e := range edges(ctx.Flatten(seq), false) {
		if !s.anchor.isSet {
			s.anchor.set(Pt(e.x0, e.y0))
		}
		s.edges = append(s.edges, e)
	}
	return s
}

// PathCrossings adds the contribution of one directed edge for a path shadow.
// See [PathShadow].
func PathCrossings(acc CrossingResult, shadow iter.Seq[PathElement], x0, y0, x1, y1 int) CrossingResult {
	return PathShadow(shadow).Cross(acc, x0, y0, x1, y1)
}

// ComputeCrossings walks the outline described by seq and accumulates the
// contribution of each of its edges against the shadow. Curves are flattened
// with [DefaultFlatness].
//
// Accumulation stops as soon as the result becomes [ShapeIntersects]. The
// treatment of subpaths that end away from their anchor depends on mode.
//
// An error wrapping [ErrInvalidArgument] is returned if the sequence doesn't
// start with a MoveTo.
func ComputeCrossings(seq iter.Seq[PathElement], sh Shadow, mode CrossingMode) (CrossingResult, error) {
	return ComputeCrossingsContext(Context{}, seq, sh, mode)
}

// ComputeCrossingsContext is like [ComputeCrossings] but flattens curves with
// the flatness of ctx.
func ComputeCrossingsContext(ctx Context, seq iter.Seq[PathElement], sh Shadow, mode CrossingMode) (CrossingResult, error) {
	var (
		total, sub CrossingResult
		mov, cur   Point
		first      = true
	)
	// finish folds the current subpath into the total.
	finish := func() {
		if cur != mov {
			switch mode {
			case AutoClose:
				sub = sh.Cross(sub, cur.X, cur.Y, mov.X, mov.Y)
			case SimpleIntersectionWhenNotPolygon:
				if !sub.intersects {
					sub = Crossings(0)
				}
			}
		}
		total = total.add(sub)
		sub = Crossings(0)
	}
	for el := range ctx.Flatten(seq) {
		if first {
			if el.Kind != MoveToKind {
				return CrossingResult{}, fmt.Errorf("path starts with %s instead of MoveTo: %w", el.Kind, ErrInvalidArgument)
			}
			first = false
			mov, cur = el.To, el.To
			continue
		}
		switch el.Kind {
		case MoveToKind:
			finish()
			mov, cur = el.To, el.To
		case LineToKind:
			sub = sh.Cross(sub, cur.X, cur.Y, el.To.X, el.To.Y)
			cur = el.To
		case ClosePathKind:
			if cur != mov {
				sub = sh.Cross(sub, cur.X, cur.Y, mov.X, mov.Y)
			}
			cur = mov
			total = total.add(sub)
			sub = Crossings(0)
		default:
			panic(fmt.Sprintf("unhandled case %v", el.Kind))
		}
		if sub.intersects {
			return ShapeIntersects, nil
		}
	}
	if first {
		return Crossings(0), nil
	}
	finish()
	return total, nil
}

// edge is a directed segment of a flattened outline.
type edge struct {
	x0, y0, x1, y1 int
}

func (e edge) segment() Segment {
	return Segment{x1: e.x0, y1: e.y0, x2: e.x1, y2: e.y1}
}

// edges yields the drawn edges of a flattened sequence. When closeOpen is set,
// the implicit edge back to the anchor of every open subpath is included.
// Elements before the first MoveTo are skipped.
func edges(seq iter.Seq[PathElement], closeOpen bool) iter.Seq[edge] {
	return func(yield func(edge) bool) {
		var mov, cur Point
		started := false
		closeSub := func() bool {
			if closeOpen && started && cur != mov {
				return yield(edge{cur.X, cur.Y, mov.X, mov.Y})
			}
			return true
		}
		for el := range seq {
			switch el.Kind {
			case MoveToKind:
				if !closeSub() {
					return
				}
				started = true
				mov, cur = el.To, el.To
			case LineToKind, QuadToKind, CubicToKind:
				if !started {
					continue
				}
				if !yield(edge{cur.X, cur.Y, el.To.X, el.To.Y}) {
					return
				}
				cur = el.To
			case ClosePathKind:
				if !started {
					continue
				}
				if cur != mov {
					if !yield(edge{cur.X, cur.Y, mov.X, mov.Y}) {
						return
					}
				}
				cur = mov
			}
		}
		closeSub()
	}
}
