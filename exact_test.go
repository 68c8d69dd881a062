package lattice

import (
	"testing"
)

func TestCmpProducts(t *testing.T) {
	const big = 1<<29 - 1
	f := func(a, b, c, d, want int) {
		t.Helper()
		if got := cmpProducts(a, b, c, d); got != want {
			t.Errorf("cmpProducts(%d, %d, %d, %d) = %d, want %d", a, b, c, d, got, want)
		}
	}
	f(2, 3, 1, 6, 0)
	f(2, 3, 1, 5, 1)
	f(-2, 3, 1, 5, -1)
	f(-2, -3, 1, 5, 1)
	f(0, 3, 0, 5, 0)
	f(0, 3, -1, 5, 1)
	// products well beyond 2^53, where a float64 rendition loses the
	// difference.
	f(2*big, 2*big, 2*big+1, 2*big-1, 1)
	f(-2*big, 2*big, -(2*big + 1), 2*big-1, -1)
}

func TestOrientation(t *testing.T) {
	if o := orientation(0, 0, 10, 0, 5, 1); o != 1 {
		t.Errorf("got %d, want 1", o)
	}
	if o := orientation(0, 0, 10, 0, 5, -1); o != -1 {
		t.Errorf("got %d, want -1", o)
	}
	if o := orientation(0, 0, 10, 5, 4, 2); o != 0 {
		t.Errorf("got %d, want 0", o)
	}
}

func TestSegmentsTouch(t *testing.T) {
	f := func(a, b [4]int, want bool) {
		t.Helper()
		got := segmentsTouch(a[0], a[1], a[2], a[3], b[0], b[1], b[2], b[3])
		if got != want {
			t.Errorf("segmentsTouch(%v, %v) = %t, want %t", a, b, got, want)
		}
		// symmetric
		if got := segmentsTouch(b[0], b[1], b[2], b[3], a[0], a[1], a[2], a[3]); got != want {
			t.Errorf("segmentsTouch(%v, %v) = %t, want %t", b, a, got, want)
		}
	}
	// proper crossing
	f([4]int{0, 0, 4, 4}, [4]int{0, 4, 4, 0}, true)
	// touching at an end point
	f([4]int{0, 0, 4, 4}, [4]int{4, 4, 8, 0}, true)
	// T junction
	f([4]int{0, 0, 4, 0}, [4]int{2, 0, 2, 5}, true)
	// collinear overlapping
	f([4]int{0, 0, 4, 0}, [4]int{3, 0, 8, 0}, true)
	// collinear disjoint
	f([4]int{0, 0, 4, 0}, [4]int{5, 0, 8, 0}, false)
	// parallel
	f([4]int{0, 0, 4, 0}, [4]int{0, 1, 4, 1}, false)
	// near miss
	f([4]int{0, 0, 4, 4}, [4]int{3, 0, 5, 2}, false)
	// degenerate point on a segment
	f([4]int{2, 2, 2, 2}, [4]int{0, 0, 4, 4}, true)
}

func TestSegmentWithin(t *testing.T) {
	if !segmentWithin(0, 3, -5, 0, 5, 0, 9) {
		t.Error("distance 3 should be within radius 3")
	}
	if segmentWithin(0, 4, -5, 0, 5, 0, 9) {
		t.Error("distance 4 should not be within radius 3")
	}
	if !segmentWithin(8, 0, -5, 0, 5, 0, 9) {
		t.Error("distance to end point is 3")
	}
}

func TestRoundHalfAway(t *testing.T) {
	for in, want := range map[float64]int{
		0.5:  1,
		-0.5: -1,
		1.49: 1,
		-2.5: -3,
		2.51: 3,
	} {
		if got := roundHalfAway(in); got != want {
			t.Errorf("roundHalfAway(%v) = %d, want %d", in, got, want)
		}
	}
}
