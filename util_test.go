package lattice

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// unexported lets cmp look into the package's value types.
var unexported = cmp.AllowUnexported(CrossingResult{}, Rect{}, Circle{}, Segment{}, option[Rect]{})

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	opts = append(opts, unexported)
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// elems collects the elements of a shape's outline.
func elems(s Shape) []PathElement {
	return slices.Collect(s.PathElements())
}

func mustCircle(t *testing.T, cx, cy, r int) *Circle {
	t.Helper()
	c, err := NewCircle(cx, cy, r)
	if err != nil {
		t.Fatal(err)
	}
	return &c
}

func rect(x, y, w, h int) *Rect {
	r := NewRect(x, y, w, h)
	return &r
}

func segment(x1, y1, x2, y2 int) *Segment {
	s := NewSegment(x1, y1, x2, y2)
	return &s
}

// polygon returns a closed path through pts.
func polygon(t *testing.T, rule WindingRule, pts ...Point) *Path {
	t.Helper()
	p := NewPath(rule)
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		if err := p.LineTo(pt); err != nil {
			t.Fatal(err)
		}
	}
	p.ClosePath()
	return p
}

// referencePath returns the path
// M(0,0) L(2,2) Q(3,0 4,3) C(5,-1 6,5 7,-5) Z.
func referencePath(t *testing.T) *Path {
	t.Helper()
	p := NewPath(NonZero)
	p.MoveTo(Pt(0, 0))
	for _, err := range []error{
		p.LineTo(Pt(2, 2)),
		p.QuadTo(Pt(3, 0), Pt(4, 3)),
		p.CubicTo(Pt(5, -1), Pt(6, 5), Pt(7, -5)),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	p.ClosePath()
	return p
}
