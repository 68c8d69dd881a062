package lattice

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

// MultiShape is an ordered collection of shapes that acts as one shape: it
// contains, and intersects, whatever one of its children does.
//
// The bounding box is cached. The cache is dropped by structural changes and
// whenever a child reports a mutation, and recomputed on the next call to
// BoundingBox.
type MultiShape struct {
	children []Shape
	cancels  []func()
	box      option[Rect]

	obs *observers
}

var _ Shape = (*MultiShape)(nil)

// NewMultiShape returns a multi-shape holding shapes, in order.
func NewMultiShape(shapes ...Shape) *MultiShape {
	m := &MultiShape{}
	for _, s := range shapes {
		// a fresh multi-shape can't be part of a cycle
		m.insert(len(m.children), s)
	}
	return m
}

// invalidate drops the cached bounding box and passes the notification on to
// the observers of m.
func (m *MultiShape) invalidate() {
	m.box.clear()
	m.obs.notify(m)
}

func (m *MultiShape) subscribe(s Shape) func() {
	return s.Observe(m.invalidate)
}

// reaches reports whether m is s or holds s, directly or through nested
// multi-shapes.
func (m *MultiShape) reaches(s Shape) bool {
	if Shape(m) == s {
		return true
	}
	for _, c := range m.children {
		if cm, ok := c.(*MultiShape); ok && cm.reaches(s) {
			return true
		}
	}
	return false
}

func (m *MultiShape) checkChild(s Shape) error {
	if s == nil {
		return fmt.Errorf("nil shape: %w", ErrInvalidArgument)
	}
	if sm, ok := s.(*MultiShape); ok && sm.reaches(m) {
		return fmt.Errorf("adding the multi-shape would create a cycle: %w", ErrInvalidArgument)
	}
	return nil
}

func (m *MultiShape) insert(i int, s Shape) {
	m.children = slices.Insert(m.children, i, s)
	m.cancels = slices.Insert(m.cancels, i, m.subscribe(s))
	m.invalidate()
}

// Add appends s. It returns an error wrapping [ErrInvalidArgument] if s is
// nil, or if s is m itself or a multi-shape that holds m.
func (m *MultiShape) Add(s Shape) error {
	if err := m.checkChild(s); err != nil {
		return err
	}
	m.insert(len(m.children), s)
	return nil
}

// Insert inserts s at index i. It returns an error wrapping
// [ErrInvalidArgument] if i is out of range, or if s is rejected as by
// [MultiShape.Add].
func (m *MultiShape) Insert(i int, s Shape) error {
	if i < 0 || i > len(m.children) {
		return fmt.Errorf("index %d out of range [0, %d]: %w", i, len(m.children), ErrInvalidArgument)
	}
	if err := m.checkChild(s); err != nil {
		return err
	}
	m.insert(i, s)
	return nil
}

// Remove removes the first occurrence of s and reports whether it was found.
func (m *MultiShape) Remove(s Shape) bool {
	i := slices.Index(m.children, s)
	if i < 0 {
		return false
	}
	m.removeAt(i)
	return true
}

// RemoveAt removes and returns the child at index i. It returns an error
// wrapping [ErrInvalidArgument] if i is out of range.
func (m *MultiShape) RemoveAt(i int) (Shape, error) {
	if i < 0 || i >= len(m.children) {
		return nil, fmt.Errorf("index %d out of range [0, %d): %w", i, len(m.children), ErrInvalidArgument)
	}
	return m.removeAt(i), nil
}

func (m *MultiShape) removeAt(i int) Shape {
	s := m.children[i]
	m.cancels[i]()
	m.children = slices.Delete(m.children, i, i+1)
	m.cancels = slices.Delete(m.cancels, i, i+1)
	m.invalidate()
	return s
}

// Clear removes all children.
func (m *MultiShape) Clear() {
	for _, cancel := range m.cancels {
		cancel()
	}
	m.children = nil
	m.cancels = nil
	m.invalidate()
}

// Len returns the number of children.
func (m *MultiShape) Len() int { return len(m.children) }

// At returns the child at index i.
func (m *MultiShape) At(i int) Shape { return m.children[i] }

// Shapes returns an iterator over the children, in order.
func (m *MultiShape) Shapes() iter.Seq[Shape] {
	return slices.Values(m.children)
}

func (m *MultiShape) Observe(fn func()) func() {
	return observe(&m.obs, m, fn)
}

func (m *MultiShape) Kind() Kind { return MultiShapeKind }

// IsEmpty reports whether no child draws anything.
func (m *MultiShape) IsEmpty() bool {
	for _, s := range m.children {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

func (m *MultiShape) WindingRule() WindingRule { return NonZero }

// Clone returns a multi-shape holding clones of the children.
func (m *MultiShape) Clone() Shape {
	c := &MultiShape{}
	for _, s := range m.children {
		c.insert(len(c.children), s.Clone())
	}
	return c
}

// Translate translates every child.
func (m *MultiShape) Translate(v Vec2) {
	for _, s := range m.children {
		s.Translate(v)
	}
}

// BoundingBox returns the union of the bounding boxes of the children. Paths
// that draw nothing, and multi-shapes holding only such paths, have no
// extent and are skipped. The result is the zero rectangle if no child has an
// extent.
func (m *MultiShape) BoundingBox() Rect {
	if m.box.isSet {
		return m.box.value
	}
	var box option[Rect]
	for _, s := range m.children {
		if !hasExtent(s) {
			continue
		}
		if b := s.BoundingBox(); box.isSet {
			box.set(box.value.Union(b))
		} else {
			box.set(b)
		}
	}
	Logger().WithFields(logrus.Fields{
		"children": len(m.children),
		"box":      box.value.String(),
	}).Debug("recomputed multishape bounding box")
	m.box.set(box.value)
	return m.box.value
}

// hasExtent reports whether the bounding box of s locates it. Rectangles,
// circles and segments always have an extent, even when they degenerate to a
// single point.
func hasExtent(s Shape) bool {
	switch s := s.(type) {
	case *Path:
		return !s.IsEmpty()
	case *MultiShape:
		return slices.ContainsFunc(s.children, hasExtent)
	default:
		return true
	}
}

func (m *MultiShape) Contains(pt Point) bool {
	_, ok := m.FirstShapeContaining(pt)
	return ok
}

// ContainsRect reports whether one of the children contains all of r.
func (m *MultiShape) ContainsRect(r Rect) bool {
	for _, s := range m.children {
		if s.ContainsRect(r) {
			return true
		}
	}
	return false
}

func (m *MultiShape) Intersects(o Shape) bool {
	return Intersects(m, o)
}

// FirstShapeContaining returns the first child that contains pt.
func (m *MultiShape) FirstShapeContaining(pt Point) (Shape, bool) {
	for _, s := range m.children {
		if s.Contains(pt) {
			return s, true
		}
	}
	return nil, false
}

// ShapesContaining returns all children that contain pt, in order.
func (m *MultiShape) ShapesContaining(pt Point) []Shape {
	var out []Shape
	for _, s := range m.children {
		if s.Contains(pt) {
			out = append(out, s)
		}
	}
	return out
}

// FirstShapeIntersecting returns the first child that intersects o.
func (m *MultiShape) FirstShapeIntersecting(o Shape) (Shape, bool) {
	for _, s := range m.children {
		if Intersects(s, o) {
			return s, true
		}
	}
	return nil, false
}

// ShapesIntersecting returns all children that intersect o, in order.
func (m *MultiShape) ShapesIntersecting(o Shape) []Shape {
	var out []Shape
	for _, s := range m.children {
		if Intersects(s, o) {
			out = append(out, s)
		}
	}
	return out
}

// ClosestPointTo returns the closest point to pt over all children. Ties go
// to the earlier child. A multi-shape without children returns pt.
func (m *MultiShape) ClosestPointTo(pt Point) Point {
	best := pt
	bestD := math.Inf(1)
	for _, s := range m.children {
		if d := s.DistanceSquared(pt); d < bestD {
			bestD = d
			best = s.ClosestPointTo(pt)
		}
	}
	return best
}

// FarthestPointTo returns the farthest point from pt over all children. Ties
// go to the earlier child. A multi-shape without children returns pt.
func (m *MultiShape) FarthestPointTo(pt Point) Point {
	best := pt
	bestD := -1
	for _, s := range m.children {
		q := s.FarthestPointTo(pt)
		if d := q.DistanceSquared(pt); d > bestD {
			bestD = d
			best = q
		}
	}
	return best
}

func (m *MultiShape) Distance(pt Point) float64 {
	return math.Sqrt(m.DistanceSquared(pt))
}

// DistanceSquared returns the smallest squared distance to pt over all
// children. A multi-shape without children is infinitely far away.
func (m *MultiShape) DistanceSquared(pt Point) float64 {
	d := math.Inf(1)
	for _, s := range m.children {
		d = min(d, s.DistanceSquared(pt))
	}
	return d
}

func (m *MultiShape) DistanceL1(pt Point) int {
	return pt.DistanceL1(m.ClosestPointTo(pt))
}

func (m *MultiShape) DistanceLinf(pt Point) int {
	return pt.DistanceLinf(m.ClosestPointTo(pt))
}

// PathElements concatenates the elements of all children.
func (m *MultiShape) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for _, s := range m.children {
			for el := range s.PathElements() {
				if !yield(el) {
					return
				}
			}
		}
	}
}

// Points concatenates the points of all children.
func (m *MultiShape) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, s := range m.children {
			for pt := range s.Points() {
				if !yield(pt) {
					return
				}
			}
		}
	}
}
