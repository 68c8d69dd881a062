package lattice

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleContains(t *testing.T) {
	c := mustCircle(t, 5, 8, 5)
	if !c.Contains(Pt(9, 11)) {
		t.Error("expected (9, 11) to be contained")
	}
	if c.Contains(Pt(9, 12)) {
		t.Error("expected (9, 12) not to be contained")
	}
	if !c.ContainsRect(NewRect(3, 6, 4, 4)) {
		t.Error("expected inscribed rectangle to be contained")
	}
	if c.ContainsRect(NewRect(0, 3, 10, 10)) {
		t.Error("expected bounding box not to be contained")
	}
	diff(t, NewRectFromCorners(0, 3, 10, 13), c.BoundingBox())
}

func TestCircleOutlineWinding(t *testing.T) {
	c := mustCircle(t, 5, 5, 5)
	p, err := NewPathFromElements(c.PathElements(), NonZero)
	require.NoError(t, err)
	if cw, pw := c.Contains(c.Center()), p.Contains(c.Center()); cw != pw {
		t.Errorf("got containment %t and %t, expected them to be equal", cw, pw)
	}
	if !p.IsPolygon() || !p.IsCurved() {
		t.Errorf("unexpected outline %s", p)
	}
}

func TestNewCircleNegativeRadius(t *testing.T) {
	_, err := NewCircle(0, 0, -1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	c := mustCircle(t, 1, 2, 3)
	require.ErrorIs(t, c.SetRadius(-5), ErrInvalidArgument)
	assert.Equal(t, 3, c.Radius())
	require.NoError(t, c.Set(Pt(0, 0), 7))
	diff(t, "Circle(0, 0, 7)", c.String())
}

func TestCircleOutline(t *testing.T) {
	c := mustCircle(t, 0, 0, 10)
	diff(t, "M10,0 C10,6 6,10 0,10 C-6,10 -10,6 -10,0 C-10,-6 -6,-10 0,-10 C6,-10 10,-6 10,0 Z", SVG(c.PathElements()))
	if got := elems(mustCircle(t, 3, 3, 0)); len(got) != 0 {
		t.Errorf("circle of radius zero has outline %v", got)
	}
}

func TestCircleClosestPoint(t *testing.T) {
	c := mustCircle(t, 0, 0, 5)
	diff(t, Pt(2, 1), c.ClosestPointTo(Pt(2, 1)))
	diff(t, Pt(5, 0), c.ClosestPointTo(Pt(10, 0)))
	diff(t, Pt(4, 3), c.ClosestPointTo(Pt(10, 10)))
	assert.Equal(t, 5.0, c.Distance(Pt(10, 0)))
	assert.Equal(t, 25.0, c.DistanceSquared(Pt(10, 0)))
	assert.Equal(t, 5, c.DistanceL1(Pt(10, 0)))
	assert.Equal(t, 0.0, c.Distance(Pt(3, 4)))

	// closest points are always part of the disk
	for x := -12; x <= 12; x += 3 {
		for y := -12; y <= 12; y += 4 {
			if q := c.ClosestPointTo(Pt(x, y)); !c.Contains(q) {
				t.Errorf("closest point %s to %s lies outside", q, Pt(x, y))
			}
		}
	}
}

func TestCircleFarthestPoint(t *testing.T) {
	c := mustCircle(t, 0, 0, 5)
	diff(t, Pt(-5, 0), c.FarthestPointTo(Pt(10, 0)))
	diff(t, Pt(5, 0), c.FarthestPointTo(Pt(0, 0)))
	for x := -12; x <= 12; x += 3 {
		if q := c.FarthestPointTo(Pt(x, 7)); !c.Contains(q) {
			t.Errorf("farthest point %s to %s lies outside", q, Pt(x, 7))
		}
	}
}

func TestCircleQuadrants(t *testing.T) {
	c := mustCircle(t, 0, 0, 5)
	assert.True(t, c.ContainsInQuadrant(QuadrantI, Pt(3, 4)))
	assert.False(t, c.ContainsInQuadrant(QuadrantII, Pt(3, 4)))
	assert.True(t, c.ContainsInQuadrant(QuadrantIII, Pt(-3, -4)))
	assert.True(t, c.ContainsInQuadrant(QuadrantIV, Pt(3, -4)))
	// axes belong to both neighbors
	assert.True(t, c.ContainsInQuadrant(QuadrantI, Pt(0, 5)))
	assert.True(t, c.ContainsInQuadrant(QuadrantII, Pt(0, 5)))
	assert.False(t, c.ContainsInQuadrant(QuadrantI, Pt(4, 4)))
}

func TestCircleOctants(t *testing.T) {
	c := mustCircle(t, 0, 0, 5)
	diff(t, []Point{{5, 0}, {4, 1}, {4, 2}, {4, 3}}, slices.Collect(c.Octants(DefaultContext(), 0, 1)))
	diff(t, []Point{{5, 0}, {4, -1}, {4, -2}, {4, -3}}, slices.Collect(c.Octants(Context{System: YDown}, 0, 1)))
	diff(t, []Point{{3, 4}, {2, 4}, {1, 4}, {0, 5}, {-1, 4}, {-2, 4}, {-3, 4}}, slices.Collect(c.Octants(DefaultContext(), 1, 2)))

	pts := slices.Collect(c.Points())
	if len(pts) != 28 {
		t.Errorf("got %d points, want 28", len(pts))
	}
	seen := map[Point]bool{}
	for _, pt := range pts {
		if seen[pt] {
			t.Errorf("%s yielded twice", pt)
		}
		seen[pt] = true
		if !c.Contains(pt) {
			t.Errorf("%s lies outside", pt)
		}
	}

	other := mustCircle(t, -3, 7, 13)
	for pt := range other.Points() {
		if !other.Contains(pt) {
			t.Errorf("%s lies outside %s", pt, other)
		}
	}
}

func TestCircleObserve(t *testing.T) {
	c := mustCircle(t, 0, 0, 1)
	n := 0
	c.Observe(func() { n++ })
	c.Translate(Vec(1, 1))
	c.SetCenter(Pt(4, 4))
	_ = c.SetRadius(-1)
	_ = c.SetRadius(3)
	c.Clear()
	assert.Equal(t, 4, n)
	assert.True(t, c.IsEmpty())
}

func TestObserveCopies(t *testing.T) {
	c := mustCircle(t, 0, 0, 1)
	s := segment(0, 0, 1, 1)
	n := 0
	c.Observe(func() { n++ })
	s.Observe(func() { n++ })
	m := NewMultiShape(c, s)
	invalidated := 0
	m.Observe(func() { invalidated++ })

	cc, sc := *c, *s
	cc.Translate(Vec(5, 5))
	sc.Translate(Vec(5, 5))
	require.NoError(t, cc.SetRadius(7))
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, invalidated)
	diff(t, NewRectFromCorners(-1, -1, 1, 1), m.BoundingBox())

	c.Translate(Vec(5, 5))
	s.Translate(Vec(5, 5))
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, invalidated)
	diff(t, NewRectFromCorners(4, 4, 6, 6), m.BoundingBox())
}
