package lattice

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// zoo returns one or more shapes of every kind, scattered so that some
// pairs touch, some nest and some are apart.
func zoo(t *testing.T) []Shape {
	open := NewPath(NonZero)
	open.MoveTo(Pt(-10, -10))
	if err := open.LineTo(Pt(-5, -5)); err != nil {
		t.Fatal(err)
	}
	if err := open.LineTo(Pt(-10, 0)); err != nil {
		t.Fatal(err)
	}
	return []Shape{
		rect(0, 0, 10, 10),
		rect(2, 2, 2, 2),
		mustCircle(t, 20, 5, 3),
		mustCircle(t, 5, 5, 1),
		segment(12, 0, 12, 20),
		segment(-7, -7, 3, 3),
		polygon(t, NonZero, Pt(30, 0), Pt(40, 0), Pt(35, 10)),
		polygon(t, EvenOdd, Pt(-2, -2), Pt(16, -2), Pt(16, 12), Pt(-2, 12)),
		open,
		NewMultiShape(mustCircle(t, 50, 50, 2), segment(-20, 5, 0, 5)),
	}
}

func TestIntersectsSymmetric(t *testing.T) {
	shapes := zoo(t)
	for i, a := range shapes {
		for j, b := range shapes {
			t.Run(fmt.Sprintf("%d-%d", i, j), func(t *testing.T) {
				ab, ba := Intersects(a, b), Intersects(b, a)
				if ab != ba {
					t.Fatalf("Intersects(%v, %v) = %t, but reversed %t", a.Kind(), b.Kind(), ab, ba)
				}
				d := DistanceSquared(a, b)
				if (d == 0) != ab {
					t.Errorf("distance %v inconsistent with intersection %t", d, ab)
				}
				assert.InDelta(t, d, DistanceSquared(b, a), 1e-9, "symmetric distance")
			})
		}
	}
}

func TestIntersectsTranslationInvariant(t *testing.T) {
	shapes := zoo(t)
	moved := make([]Shape, len(shapes))
	for i, s := range shapes {
		moved[i] = s.Clone()
		moved[i].Translate(Vec(7, -3))
	}
	for i := range shapes {
		for j := range shapes {
			if got, want := Intersects(moved[i], moved[j]), Intersects(shapes[i], shapes[j]); got != want {
				t.Errorf("%d-%d: got %t after translation, want %t", i, j, got, want)
			}
			assert.InDelta(t, DistanceSquared(shapes[i], shapes[j]), DistanceSquared(moved[i], moved[j]), 1e-9)
		}
	}
}

func TestIntersectsPairs(t *testing.T) {
	r := rect(0, 0, 10, 10)
	f := func(b Shape, want bool) {
		t.Helper()
		if got := Intersects(r, b); got != want {
			t.Errorf("Intersects(%s, %v) = %t, want %t", r, b, got, want)
		}
	}
	f(rect(10, 10, 5, 5), true)
	f(rect(11, 0, 5, 5), false)
	f(mustCircle(t, 13, 5, 3), true)
	f(mustCircle(t, 13, 13, 4), false)
	f(segment(-5, 5, 15, 5), true)
	f(segment(11, -5, 20, 5), false)
	// nested either way
	f(polygon(t, NonZero, Pt(-5, -5), Pt(20, -5), Pt(20, 20), Pt(-5, 20)), true)
	f(polygon(t, NonZero, Pt(2, 2), Pt(5, 2), Pt(3, 4)), true)

	c1, c2 := mustCircle(t, 0, 0, 3), mustCircle(t, 7, 0, 4)
	assert.True(t, Intersects(c1, c2))
	assert.True(t, c1.Intersects(c2))
	c2.Translate(Vec(1, 0))
	assert.False(t, Intersects(c1, c2))
	assert.True(t, Intersects(c1, segment(-10, 3, 10, 3)))
	assert.False(t, Intersects(c1, segment(-10, 4, 10, 4)))

	p1 := polygon(t, NonZero, Pt(0, 0), Pt(10, 0), Pt(5, 10))
	p2 := polygon(t, NonZero, Pt(5, 9), Pt(15, 9), Pt(10, 19))
	assert.True(t, Intersects(p1, p2))
	p2.Translate(Vec(0, 2))
	assert.False(t, Intersects(p1, p2))
}

func TestDistanceDisjointNearMiss(t *testing.T) {
	// The gap between the circle and the segment is far below what float64
	// resolves at this scale.
	c := mustCircle(t, 0, 0, 1048576)
	s := segment(-106102063, 150246720, 68586437, -94153514)
	assert.False(t, Intersects(c, s))
	assert.Greater(t, DistanceSquared(c, s), 0.0)
	assert.Greater(t, DistanceSquared(s, c), 0.0)
	assert.Greater(t, Distance(c, s), 0.0)

	s.Translate(Vec(0, -1))
	assert.True(t, Intersects(c, s))
	assert.Equal(t, 0.0, DistanceSquared(c, s))
}

func TestClosestPoint(t *testing.T) {
	r := rect(0, 0, 10, 10)
	c := mustCircle(t, 20, 5, 3)
	diff(t, Pt(10, 5), ClosestPoint(r, c))
	diff(t, Pt(17, 5), ClosestPoint(c, r))
	assert.Equal(t, 49.0, DistanceSquared(r, c))
	assert.Equal(t, 7.0, Distance(c, r))

	s1, s2 := segment(0, 0, 10, 0), segment(0, 3, 10, 3)
	diff(t, Pt(0, 0), ClosestPoint(s1, s2))
	assert.Equal(t, 9.0, DistanceSquared(s1, s2))

	s3 := segment(4, 5, 12, -3)
	diff(t, Pt(9, 0), ClosestPoint(s1, s3))

	inner := rect(2, 2, 1, 1)
	diff(t, Pt(2, 2), ClosestPoint(r, inner))

	assert.Equal(t, 49.0, DistanceSquared(mustCircle(t, 0, 0, 1), mustCircle(t, 10, 0, 2)))

	m := NewMultiShape(rect(100, 100, 1, 1), segment(20, 0, 20, 10))
	diff(t, Pt(10, 0), ClosestPoint(r, m))
	diff(t, Pt(20, 0), ClosestPoint(m, r))
	assert.Equal(t, 100.0, DistanceSquared(m, r))
}

func TestContainsShape(t *testing.T) {
	r := rect(0, 0, 10, 10)
	assert.True(t, ContainsShape(r, segment(1, 1, 5, 5)))
	assert.True(t, ContainsShape(r, mustCircle(t, 5, 5, 5)))
	assert.False(t, ContainsShape(r, mustCircle(t, 5, 5, 6)))

	c := mustCircle(t, 0, 0, 10)
	assert.True(t, ContainsShape(c, rect(-3, -3, 6, 6)))
	assert.True(t, ContainsShape(c, mustCircle(t, 2, 0, 8)))
	assert.False(t, ContainsShape(c, mustCircle(t, 3, 0, 8)))
	assert.True(t, ContainsShape(c, segment(-5, 0, 5, 0)))
	assert.False(t, ContainsShape(c, segment(-5, 0, 15, 0)))

	s := segment(0, 0, 10, 0)
	assert.True(t, ContainsShape(s, segment(2, 0, 5, 0)))
	assert.True(t, ContainsShape(s, rect(1, 0, 3, 0)))
	assert.False(t, ContainsShape(s, rect(1, 0, 3, 1)))

	p := polygon(t, NonZero, Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	assert.True(t, ContainsShape(p, mustCircle(t, 5, 5, 2)))
	assert.False(t, ContainsShape(p, mustCircle(t, 5, 5, 5)), "touching the outline")
	assert.True(t, ContainsShape(p, polygon(t, NonZero, Pt(2, 2), Pt(5, 2), Pt(3, 4))))
	assert.True(t, ContainsShape(p, segment(1, 1, 9, 9)))

	m := NewMultiShape(rect(1, 1, 1, 1), segment(3, 3, 4, 4))
	assert.True(t, ContainsShape(r, m))
	assert.NoError(t, m.Add(rect(20, 20, 1, 1)))
	assert.False(t, ContainsShape(r, m))
	assert.True(t, ContainsShape(NewMultiShape(rect(100, 100, 1, 1), r), segment(1, 1, 5, 5)))
	assert.False(t, ContainsShape(r, NewMultiShape()))
}

func TestEqualShapes(t *testing.T) {
	assert.True(t, EqualShapes(rect(0, 0, 1, 1), rect(1, 1, -1, -1)))
	assert.False(t, EqualShapes(rect(0, 0, 1, 1), segment(0, 0, 1, 1)))
	c := mustCircle(t, 1, 2, 3)
	assert.True(t, EqualShapes(c, c.Clone()))

	a := polygon(t, NonZero, Pt(0, 0), Pt(1, 0), Pt(0, 1))
	b := polygon(t, EvenOdd, Pt(0, 0), Pt(1, 0), Pt(0, 1))
	assert.False(t, EqualShapes(a, b))
	b.SetWindingRule(NonZero)
	assert.True(t, EqualShapes(a, b))

	assert.True(t, EqualsElements(rect(0, 0, 2, 1), slices.Values([]PathElement{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(2, 0)),
		LineTo(Pt(2, 1)),
		LineTo(Pt(0, 1)),
		ClosePath(),
	})))
}
