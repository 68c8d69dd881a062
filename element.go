package lattice

import (
	"fmt"
	"iter"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic Bézier using the current location and the two points.
	QuadToKind
	// Draw a cubic Bézier using the current location and the three points.
	CubicToKind
	// Close off the subpath, drawing a line back to its anchor.
	ClosePathKind
)

func (k PathElementKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case QuadToKind:
		return "QuadTo"
	case CubicToKind:
		return "CubicTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return "InvalidPathElement"
	}
}

// PathElement is one step of a path.
//
// From is the current point before the element is applied. To is the point
// reached after it; for [ClosePathKind] that is the anchor of the subpath.
// Ctrl1 is used by quadratic and cubic elements, Ctrl2 by cubic elements only.
//
// The constructors [MoveTo], [LineTo], [QuadTo], [CubicTo] and [ClosePath] leave
// From unset. Iterators produced by this package always fill it in.
type PathElement struct {
	Kind  PathElementKind
	From  Point
	Ctrl1 Point
	Ctrl2 Point
	To    Point
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveToKind:
		return fmt.Sprintf("MoveTo(%s)", el.To)
	case LineToKind:
		return fmt.Sprintf("LineTo(%s, %s)", el.From, el.To)
	case QuadToKind:
		return fmt.Sprintf("QuadTo(%s, %s, %s)", el.From, el.Ctrl1, el.To)
	case CubicToKind:
		return fmt.Sprintf("CubicTo(%s, %s, %s, %s)", el.From, el.Ctrl1, el.Ctrl2, el.To)
	case ClosePathKind:
		return fmt.Sprintf("ClosePath(%s, %s)", el.From, el.To)
	default:
		return "InvalidPathElement"
	}
}

// Transform applies aff to every point of the element, rounding to the grid.
func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind, LineToKind, ClosePathKind:
		el.Ctrl1, el.Ctrl2 = Point{}, Point{}
	case QuadToKind:
		el.Ctrl1 = el.Ctrl1.Transform(aff)
		el.Ctrl2 = Point{}
	case CubicToKind:
		el.Ctrl1 = el.Ctrl1.Transform(aff)
		el.Ctrl2 = el.Ctrl2.Transform(aff)
	default:
		return PathElement{}
	}
	el.From = el.From.Transform(aff)
	el.To = el.To.Transform(aff)
	return el
}

// Translate moves every point of the element by v.
func (el PathElement) Translate(v Vec2) PathElement {
	el.From = el.From.Translate(v)
	el.To = el.To.Translate(v)
	switch el.Kind {
	case QuadToKind:
		el.Ctrl1 = el.Ctrl1.Translate(v)
	case CubicToKind:
		el.Ctrl1 = el.Ctrl1.Translate(v)
		el.Ctrl2 = el.Ctrl2.Translate(v)
	}
	return el
}

// IsDrawable reports whether the element draws anything. Moves never do;
// other elements do when they end somewhere other than where they start, or
// when a curve's control points leave the start point.
func (el PathElement) IsDrawable() bool {
	switch el.Kind {
	case LineToKind, ClosePathKind:
		return el.From != el.To
	case QuadToKind:
		return el.From != el.To || el.From != el.Ctrl1
	case CubicToKind:
		return el.From != el.To || el.From != el.Ctrl1 || el.From != el.Ctrl2
	default:
		return false
	}
}

// points returns the control and end points carried by the element, in path
// buffer order.
func (el PathElement) points() []Point {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return []Point{el.To}
	case QuadToKind:
		return []Point{el.Ctrl1, el.To}
	case CubicToKind:
		return []Point{el.Ctrl1, el.Ctrl2, el.To}
	default:
		return nil
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, To: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, To: pt}
}

func QuadTo(ctrl, to Point) PathElement {
	return PathElement{Kind: QuadToKind, Ctrl1: ctrl, To: to}
}

func CubicTo(ctrl1, ctrl2, to Point) PathElement {
	return PathElement{Kind: CubicToKind, Ctrl1: ctrl1, Ctrl2: ctrl2, To: to}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// Link fills in the From field of every element and the To field of
// [ClosePathKind] elements. It is useful when elements were produced by the
// bare constructors.
//
// Elements that precede the first MoveTo are passed through unchanged.
func Link(seq iter.Seq[PathElement]) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		var cur, anchor option[Point]
		for el := range seq {
			switch el.Kind {
			case MoveToKind:
				if cur.isSet {
					el.From = cur.value
				} else {
					el.From = el.To
				}
				anchor.set(el.To)
				cur.set(el.To)
			case LineToKind, QuadToKind, CubicToKind:
				if cur.isSet {
					el.From = cur.value
				}
				cur.set(el.To)
			case ClosePathKind:
				if cur.isSet && anchor.isSet {
					el.From = cur.value
					el.To = anchor.value
					cur.set(anchor.value)
				}
			}
			if !yield(el) {
				return
			}
		}
	}
}

// EqualElements reports whether two element sequences describe the same path,
// element by element. Both sequences are linked first, so elements built with
// the bare constructors compare equal to those yielded by shapes.
func EqualElements(a, b iter.Seq[PathElement]) bool {
	next, stop := iter.Pull(Link(b))
	defer stop()
	for el := range Link(a) {
		o, ok := next()
		if !ok || !sameElement(el, o) {
			return false
		}
	}
	_, ok := next()
	return !ok
}

func sameElement(a, b PathElement) bool {
	if a.Kind != b.Kind || a.To != b.To {
		return false
	}
	switch a.Kind {
	case QuadToKind:
		return a.Ctrl1 == b.Ctrl1
	case CubicToKind:
		return a.Ctrl1 == b.Ctrl1 && a.Ctrl2 == b.Ctrl2
	default:
		return true
	}
}

// TransformElements applies aff to every element of seq.
func TransformElements(seq iter.Seq[PathElement], aff Affine) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for el := range seq {
			if !yield(el.Transform(aff)) {
				return
			}
		}
	}
}
