package lattice

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathReference(t *testing.T) {
	p := referencePath(t)
	if !p.IsPolygon() {
		t.Error("expected a polygon")
	}
	if !p.IsCurved() {
		t.Error("expected a curved path")
	}
	if p.IsPolyline() || p.IsMultiParts() {
		t.Error("unexpected shape predicates")
	}
	diff(t, NewRectFromCorners(0, -5, 7, 3), p.BoundingBox())
	diff(t, NewRectFromCorners(0, -5, 7, 5), p.ControlBox())
	diff(t, "M0,0 L2,2 Q3,0 4,3 C5,-1 6,5 7,-5 Z", p.String())

	// (1, -1) and (4, -3) are pixels of the closing edge
	for _, pt := range []Point{{0, 0}, {2, 2}, {7, -5}, {3, 0}, {1, 0}, {1, -1}, {4, -3}} {
		if !p.Contains(pt) {
			t.Errorf("expected %s to be contained", pt)
		}
	}
	for _, pt := range []Point{{10, 10}, {3, -3}, {2, -2}, {-1, 0}} {
		if p.Contains(pt) {
			t.Errorf("expected %s not to be contained", pt)
		}
	}
}

func TestPathElementsLinked(t *testing.T) {
	p := NewPath(NonZero)
	p.MoveTo(Pt(5, 5))
	require.NoError(t, p.LineTo(Pt(15, 15)))
	p.MoveTo(Pt(10, 10))
	require.NoError(t, p.LineTo(Pt(15, 15)))
	p.ClosePath()

	got := elems(p)
	diff(t, PathElement{Kind: MoveToKind, From: Pt(15, 15), To: Pt(10, 10)}, got[2])
	diff(t, PathElement{Kind: ClosePathKind, From: Pt(15, 15), To: Pt(10, 10)}, got[4])
	diff(t, Pt(10, 10), currentPoint(t, p))
}

func currentPoint(t *testing.T, p *Path) Point {
	t.Helper()
	pt, ok := p.CurrentPoint()
	if !ok {
		t.Fatal("path has no current point")
	}
	return pt
}

func TestPathErrors(t *testing.T) {
	p := NewPath(NonZero)
	require.ErrorIs(t, p.LineTo(Pt(1, 1)), ErrInvalidState)
	require.ErrorIs(t, p.QuadTo(Pt(1, 1), Pt(2, 2)), ErrInvalidState)
	require.ErrorIs(t, p.CubicTo(Pt(1, 1), Pt(2, 2), Pt(3, 3)), ErrInvalidState)
	require.ErrorIs(t, p.ArcTo(Pt(1, 1), Vec(1, 1), 0, false, false), ErrInvalidState)
	require.ErrorIs(t, p.RemoveLast(), ErrInvalidState)
	require.ErrorIs(t, p.SetLastPoint(Pt(1, 1)), ErrInvalidState)
	require.ErrorIs(t, p.Push(PathElement{}), ErrInvalidArgument)
	assert.Equal(t, 0, p.Len())

	_, err := NewPathFromElements(slices.Values([]PathElement{LineTo(Pt(1, 1))}), NonZero)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestPathStructure(t *testing.T) {
	p := NewPath(0)
	assert.Equal(t, NonZero, p.WindingRule())
	p.ClosePath()
	assert.Equal(t, 0, p.Len(), "closing an empty path")

	p.MoveTo(Pt(0, 0))
	p.MoveTo(Pt(1, 1))
	assert.Equal(t, 1, p.Len(), "consecutive moves")
	p.ClosePath()
	assert.Equal(t, 1, p.Len(), "closing after a move")

	require.NoError(t, p.LineTo(Pt(4, 1)))
	p.ClosePath()
	p.ClosePath()
	diff(t, "M1,1 L4,1 Z", p.String())
	diff(t, Pt(1, 1), currentPoint(t, p))

	require.NoError(t, p.LineTo(Pt(1, 5)))
	diff(t, "M1,1 L4,1 Z L1,5", p.String())
	assert.False(t, p.IsPolygon())
	assert.False(t, p.IsMultiParts())

	require.NoError(t, p.RemoveLast())
	require.NoError(t, p.RemoveLast())
	require.NoError(t, p.SetLastPoint(Pt(4, 2)))
	diff(t, "M1,1 L4,2", p.String())
	assert.True(t, p.IsPolyline())
}

func TestPathRemove(t *testing.T) {
	build := func(els ...PathElement) *Path {
		p, err := NewPathFromElements(slices.Values(els), NonZero)
		require.NoError(t, err)
		return p
	}
	tests := []struct {
		name string
		path *Path
		pt   Point
		want string
	}{
		{"first move", build(MoveTo(Pt(0, 0)), LineTo(Pt(1, 1)), LineTo(Pt(2, 2)), ClosePath()), Pt(0, 0), "M1,1 L2,2 Z"},
		{"only line", build(MoveTo(Pt(0, 0)), LineTo(Pt(1, 1)), ClosePath()), Pt(1, 1), "M0,0"},
		{"control point", build(MoveTo(Pt(0, 0)), QuadTo(Pt(3, 0), Pt(4, 3)), LineTo(Pt(5, 5))), Pt(3, 0), "M0,0 L5,5"},
		{"leading cubic", build(MoveTo(Pt(0, 0)), CubicTo(Pt(1, 1), Pt(2, 2), Pt(3, 3))), Pt(0, 0), "M3,3"},
		{"merged moves", build(MoveTo(Pt(0, 0)), LineTo(Pt(1, 1)), MoveTo(Pt(2, 2)), LineTo(Pt(3, 3))), Pt(1, 1), "M2,2 L3,3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.path.Remove(tt.pt) {
				t.Fatalf("%s not found", tt.pt)
			}
			diff(t, tt.want, tt.path.String())
		})
	}

	p := build(MoveTo(Pt(0, 0)), LineTo(Pt(1, 1)))
	assert.False(t, p.Remove(Pt(7, 7)))
	assert.True(t, p.ContainsControlPoint(Pt(1, 1)))
}

func TestPathArcTo(t *testing.T) {
	p := NewPath(NonZero)
	p.MoveTo(Pt(0, 0))
	require.NoError(t, p.ArcTo(Pt(10, 0), Vec(5, 5), 0, false, true))
	els := elems(p)
	last := els[len(els)-1]
	assert.Equal(t, CubicToKind, last.Kind)
	diff(t, Pt(10, 0), last.To)
	assert.True(t, p.IsCurved())

	box := p.BoundingBox()
	assert.Equal(t, 10, box.Width())
	assert.InDelta(t, 5, box.Height(), 1)

	n := p.Len()
	require.NoError(t, p.ArcTo(Pt(10, 0), Vec(5, 5), 0, false, true))
	assert.Equal(t, n, p.Len(), "arc to the current point")

	require.NoError(t, p.ArcTo(Pt(20, 0), Vec(0, 5), 0, false, true))
	assert.Equal(t, LineToKind, elems(p)[p.Len()-1].Kind)
}

func TestPathContainsOpen(t *testing.T) {
	p := NewPath(NonZero)
	p.MoveTo(Pt(0, 0))
	require.NoError(t, p.LineTo(Pt(10, 0)))
	require.NoError(t, p.LineTo(Pt(10, 10)))

	assert.True(t, p.Contains(Pt(5, 0)))
	assert.True(t, p.Contains(Pt(10, 10)))
	assert.False(t, p.Contains(Pt(8, 2)), "open paths have no interior")
	// ContainsRect closes open subpaths
	assert.True(t, p.ContainsRect(NewRect(7, 1, 1, 1)))
}

func TestPathContainsRect(t *testing.T) {
	p := polygon(t, NonZero, Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	assert.True(t, p.ContainsRect(NewRect(2, 2, 3, 3)))
	assert.False(t, p.ContainsRect(NewRect(0, 0, 3, 3)), "touching the outline")
	assert.False(t, p.ContainsRect(NewRect(12, 2, 3, 3)))
}

func TestPathWindingRule(t *testing.T) {
	nz := polygon(t, NonZero, doublyWound...)
	eo := polygon(t, EvenOdd, doublyWound...)
	assert.True(t, nz.Contains(Pt(7, -1)))
	assert.False(t, eo.Contains(Pt(7, -1)))
	assert.True(t, eo.Contains(Pt(2, 0)))

	n := 0
	eo.Observe(func() { n++ })
	eo.SetWindingRule(NonZero)
	assert.True(t, eo.Contains(Pt(7, -1)))
	assert.Equal(t, 1, n)
}

func TestPathDistance(t *testing.T) {
	p := polygon(t, NonZero, Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	assert.Equal(t, 25.0, p.DistanceSquared(Pt(15, 5)))
	assert.Equal(t, 0.0, p.DistanceSquared(Pt(5, 5)))
	diff(t, Pt(10, 5), p.ClosestPointTo(Pt(15, 5)))
	diff(t, Pt(5, 5), p.ClosestPointTo(Pt(5, 5)))
	diff(t, Pt(0, 0), p.FarthestPointTo(Pt(9, 8)))
	assert.Equal(t, 5, p.DistanceL1(Pt(15, 5)))
	assert.Equal(t, 5, p.DistanceLinf(Pt(15, 5)))

	assert.True(t, math.IsInf(NewPath(NonZero).DistanceSquared(Pt(0, 0)), 1))
}

func TestPathLength(t *testing.T) {
	p := NewPath(NonZero)
	p.MoveTo(Pt(0, 0))
	require.NoError(t, p.LineTo(Pt(3, 4)))
	require.NoError(t, p.LineTo(Pt(3, 0)))
	assert.Equal(t, 9.0, p.Length())
	assert.Equal(t, 41, p.LengthSquared())
}

func TestPathTransform(t *testing.T) {
	p := NewPath(NonZero)
	p.MoveTo(Pt(1, 0))
	require.NoError(t, p.LineTo(Pt(2, 0)))
	p.Transform(Rotate(math.Pi / 2))
	diff(t, "M0,1 L0,2", p.String())
	p.Translate(Vec(3, -1))
	diff(t, "M3,0 L3,1", p.String())

	c := p.Clone().(*Path)
	c.Clear()
	assert.Equal(t, 2, p.Len())
	assert.True(t, c.IsEmpty())
}

func TestPathPoints(t *testing.T) {
	tri := polygon(t, NonZero, Pt(0, 0), Pt(4, 0), Pt(0, 4))
	want := []Point{
		{0, 0}, {1, 0}, {2, 0}, {3, 0},
		{4, 0}, {3, 1}, {2, 2}, {1, 3},
		{0, 4}, {0, 3}, {0, 2}, {0, 1},
	}
	diff(t, want, slices.Collect(tri.Points()))

	open := NewPath(NonZero)
	open.MoveTo(Pt(0, 0))
	require.NoError(t, open.LineTo(Pt(2, 0)))
	diff(t, []Point{{0, 0}, {1, 0}, {2, 0}}, slices.Collect(open.Points()))

	ref := referencePath(t)
	for pt := range ref.Points() {
		if !ref.Contains(pt) {
			t.Errorf("%s isn't contained", pt)
		}
	}
}

func TestPathEmpty(t *testing.T) {
	p := NewPath(NonZero)
	assert.True(t, p.IsEmpty())
	p.MoveTo(Pt(3, 3))
	assert.True(t, p.IsEmpty())
	require.NoError(t, p.LineTo(Pt(3, 3)))
	assert.True(t, p.IsEmpty())
	diff(t, Rect{}, p.BoundingBox())
	require.NoError(t, p.LineTo(Pt(4, 3)))
	assert.False(t, p.IsEmpty())
}

func TestPathFlatness(t *testing.T) {
	p := NewPath(NonZero)
	p.MoveTo(Pt(0, 0))
	require.NoError(t, p.QuadTo(Pt(50, 100), Pt(100, 0)))
	p.ClosePath()
	assert.Equal(t, DefaultFlatness, p.Flatness())
	assert.True(t, p.Contains(Pt(50, 25)))
	assert.Equal(t, 50, p.BoundingBox().Height())

	n := 0
	p.Observe(func() { n++ })
	p.SetFlatness(100)
	assert.Equal(t, 1, n)
	assert.Equal(t, 100.0, p.Flatness())
	// the curve collapses onto its chord
	assert.False(t, p.Contains(Pt(50, 25)))
	diff(t, NewRectFromCorners(0, 0, 100, 0), p.BoundingBox())
	assert.Len(t, slices.Collect(p.Points()), 200)
	assert.Equal(t, 100.0, p.Clone().(*Path).Flatness())

	assert.False(t, Intersects(p, rect(45, 30, 10, 5)))
	p.SetFlatness(0)
	assert.True(t, Intersects(p, rect(45, 30, 10, 5)))
}
