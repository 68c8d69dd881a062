package lattice

import "iter"

// pixelLine describes the grid points drawn for a segment by Bresenham's
// algorithm. The walk starts at the first end point and advances one unit
// along the major axis per step; the minor coordinate follows the error term.
// Walking a segment in the opposite direction may select different pixels.
//
// Coordinates are stored in major/minor order: for steep lines, x and y are
// swapped.
type pixelLine struct {
	steep        bool
	u0, v0       int
	du, dv       int
	ustep, vstep int
}

func newPixelLine(x0, y0, x1, y1 int) pixelLine {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0, x1, y1 = y0, x0, y1, x1
	}
	l := pixelLine{
		steep: steep,
		u0:    x0,
		v0:    y0,
		du:    abs(x1 - x0),
		dv:    abs(y1 - y0),
		ustep: 1,
		vstep: 1,
	}
	if x1 < x0 {
		l.ustep = -1
	}
	if y1 < y0 {
		l.vstep = -1
	}
	return l
}

// steps returns the number of minor-axis steps taken after k major-axis
// steps. The error term starts at du/2, loses dv per step and gains du
// whenever it drops below zero, so it always stays in [0, du).
func (l pixelLine) steps(k int) int {
	n := k*l.dv - l.du/2
	if n <= 0 {
		return 0
	}
	return (n + l.du - 1) / l.du
}

// firstStep returns the smallest k after which m minor-axis steps have been
// taken. It must only be called for 1 <= m <= dv.
func (l pixelLine) firstStep(m int) int {
	return ((m-1)*l.du+l.du/2)/l.dv + 1
}

func (l pixelLine) point(u, v int) Point {
	if l.steep {
		return Point{v, u}
	}
	return Point{u, v}
}

// at returns the k'th pixel, 0 <= k <= du.
func (l pixelLine) at(k int) Point {
	return l.point(l.u0+l.ustep*k, l.v0+l.vstep*l.steps(k))
}

func (l pixelLine) contains(pt Point) bool {
	u, v := pt.X, pt.Y
	if l.steep {
		u, v = v, u
	}
	k := (u - l.u0) * l.ustep
	if k < 0 || k > l.du {
		return false
	}
	return l.v0+l.vstep*l.steps(k) == v
}

// row returns the range of x coordinates of the pixels in row y. The pixels
// of a row are always contiguous.
func (l pixelLine) row(y int) (lo, hi int, ok bool) {
	if l.steep {
		k := (y - l.u0) * l.ustep
		if k < 0 || k > l.du {
			return 0, 0, false
		}
		x := l.v0 + l.vstep*l.steps(k)
		return x, x, true
	}
	m := (y - l.v0) * l.vstep
	if m < 0 || m > l.dv {
		return 0, 0, false
	}
	k0, k1 := 0, l.du
	if m > 0 {
		k0 = l.firstStep(m)
	}
	if m < l.dv {
		k1 = l.firstStep(m+1) - 1
	}
	a, b := l.u0+l.ustep*k0, l.u0+l.ustep*k1
	return min(a, b), max(a, b), true
}

// pixels yields the pixels in drawing order. The last pixel, which is always
// the second end point, is only yielded if inclusive is set.
func (l pixelLine) pixels(inclusive bool) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		n := l.du
		if inclusive {
			n++
		}
		for k := range n {
			if !yield(l.at(k)) {
				return
			}
		}
	}
}

// onPixels reports whether (px, py) is one of the pixels drawn for the segment
// (x0, y0)→(x1, y1).
func onPixels(px, py, x0, y0, x1, y1 int) bool {
	if px < min(x0, x1) || px > max(x0, x1) || py < min(y0, y1) || py > max(y0, y1) {
		return false
	}
	if x0 == x1 || y0 == y1 {
		return true
	}
	return newPixelLine(x0, y0, x1, y1).contains(Pt(px, py))
}
