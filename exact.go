package lattice

import (
	"cmp"
	"math"
	"math/bits"
)

// The predicates in this file are exact for coordinates whose magnitude is
// below 2^29. Products of coordinate differences are compared in 128 bits.

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

func uabs(x int) uint64 {
	if x < 0 {
		return uint64(-(x + 1)) + 1
	}
	return uint64(x)
}

// roundHalfAway rounds f to the nearest integer, with halves rounded away from
// zero.
func roundHalfAway(f float64) int {
	return int(math.Round(f))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// cmpProducts returns the sign of a·b − c·d without overflowing.
func cmpProducts(a, b, c, d int) int {
	s1 := sign(a) * sign(b)
	s2 := sign(c) * sign(d)
	if s1 != s2 {
		return cmp.Compare(s1, s2)
	}
	if s1 == 0 {
		return 0
	}
	h1, l1 := bits.Mul64(uabs(a), uabs(b))
	h2, l2 := bits.Mul64(uabs(c), uabs(d))
	var m int
	switch {
	case h1 != h2:
		m = cmp.Compare(h1, h2)
	default:
		m = cmp.Compare(l1, l2)
	}
	if s1 < 0 {
		m = -m
	}
	return m
}

// orientation returns the sign of the cross product (b−a)×(c−a): positive
// when c lies to the left of the directed line a→b in a y-up frame.
func orientation(ax, ay, bx, by, cx, cy int) int {
	return cmpProducts(bx-ax, cy-ay, by-ay, cx-ax)
}

// onSegment reports whether (px, py) lies on the closed segment.
func onSegment(px, py, x0, y0, x1, y1 int) bool {
	if px < min(x0, x1) || px > max(x0, x1) || py < min(y0, y1) || py > max(y0, y1) {
		return false
	}
	return orientation(x0, y0, x1, y1, px, py) == 0
}

// segmentsTouch reports whether two closed segments share at least one point.
func segmentsTouch(ax0, ay0, ax1, ay1, bx0, by0, bx1, by1 int) bool {
	if max(ax0, ax1) < min(bx0, bx1) || max(bx0, bx1) < min(ax0, ax1) ||
		max(ay0, ay1) < min(by0, by1) || max(by0, by1) < min(ay0, ay1) {
		return false
	}
	o1 := orientation(ax0, ay0, ax1, ay1, bx0, by0)
	o2 := orientation(ax0, ay0, ax1, ay1, bx1, by1)
	o3 := orientation(bx0, by0, bx1, by1, ax0, ay0)
	o4 := orientation(bx0, by0, bx1, by1, ax1, ay1)
	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	return onSegment(bx0, by0, ax0, ay0, ax1, ay1) ||
		onSegment(bx1, by1, ax0, ay0, ax1, ay1) ||
		onSegment(ax0, ay0, bx0, by0, bx1, by1) ||
		onSegment(ax1, ay1, bx0, by0, bx1, by1)
}

// segmentWithin reports whether the squared distance between (px, py) and the
// closed segment is at most d2.
func segmentWithin(px, py, x0, y0, x1, y1, d2 int) bool {
	dx := x1 - x0
	dy := y1 - y0
	tnum := (px-x0)*dx + (py-y0)*dy
	len2 := dx*dx + dy*dy
	if len2 == 0 || tnum <= 0 {
		return Pt(px, py).DistanceSquared(Pt(x0, y0)) <= d2
	}
	if tnum >= len2 {
		return Pt(px, py).DistanceSquared(Pt(x1, y1)) <= d2
	}
	cross := (px-x0)*dy - (py-y0)*dx
	return cmpProducts(cross, cross, d2, len2) <= 0
}

// projectOnSegment returns the parameter t ∈ [0, 1] of the point on the segment
// closest to (px, py).
func projectOnSegment(px, py, x0, y0, x1, y1 int) float64 {
	dx := x1 - x0
	dy := y1 - y0
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return 0
	}
	tnum := (px-x0)*dx + (py-y0)*dy
	if tnum <= 0 {
		return 0
	}
	if tnum >= len2 {
		return 1
	}
	return float64(tnum) / float64(len2)
}

// segmentDistanceSquared returns the squared euclidean distance between a point
// and a closed segment.
func segmentDistanceSquared(px, py, x0, y0, x1, y1 int) float64 {
	t := projectOnSegment(px, py, x0, y0, x1, y1)
	switch t {
	case 0:
		return float64(Pt(px, py).DistanceSquared(Pt(x0, y0)))
	case 1:
		return float64(Pt(px, py).DistanceSquared(Pt(x1, y1)))
	}
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	cross := float64(px-x0)*dy - float64(py-y0)*dx
	return cross * cross / (dx*dx + dy*dy)
}
