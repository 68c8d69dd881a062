package lattice

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// walkLine is the textbook incremental form of Bresenham's algorithm.
func walkLine(x0, y0, x1, y1 int) []Point {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0, x1, y1 = y0, x0, y1, x1
	}
	dx, dy := abs(x1-x0), abs(y1-y0)
	xstep, ystep := -1, -1
	if x0 < x1 {
		xstep = 1
	}
	if y0 < y1 {
		ystep = 1
	}
	var out []Point
	e := dx / 2
	y := y0
	for x := x0; (xstep > 0 && x <= x1) || (xstep < 0 && x1 <= x); x += xstep {
		if steep {
			out = append(out, Pt(y, x))
		} else {
			out = append(out, Pt(x, y))
		}
		e -= dy
		if e < 0 {
			y += ystep
			e += dx
		}
	}
	return out
}

var pixelSegments = [][4]int{
	{0, 0, 10, 5},
	{10, 5, 0, 0},
	{0, 0, 5, 10},
	{5, 10, 0, 0},
	{-7, 4, 14, -2},
	{14, -2, -7, 4},
	{0, 0, 7, 3},
	{0, 0, 3, 7},
	{2, -9, -4, 8},
	{0, 0, 1, 1},
	{0, 0, 9, 1},
	{0, 0, 1, 9},
	{3, 3, 3, 3},
	{-5, 2, 6, 2},
	{4, 6, 4, -6},
	{0, 0, 6, -6},
}

func TestPixelLine(t *testing.T) {
	for _, s := range pixelSegments {
		t.Run(fmt.Sprint(s), func(t *testing.T) {
			want := walkLine(s[0], s[1], s[2], s[3])
			l := newPixelLine(s[0], s[1], s[2], s[3])
			diff(t, want, slices.Collect(l.pixels(true)))
			diff(t, want[:len(want)-1], slices.Collect(l.pixels(false)), cmpopts.EquateEmpty())

			bbox := NewRectFromCorners(s[0], s[1], s[2], s[3])
			for y := bbox.minY - 1; y <= bbox.maxY+1; y++ {
				var row []int
				for x := bbox.minX - 1; x <= bbox.maxX+1; x++ {
					pt := Pt(x, y)
					in := slices.Contains(want, pt)
					if got := onPixels(x, y, s[0], s[1], s[2], s[3]); got != in {
						t.Errorf("onPixels(%s) = %t, want %t", pt, got, in)
					}
					if in {
						row = append(row, x)
					}
				}
				lo, hi, ok := l.row(y)
				if ok != (len(row) > 0) {
					t.Fatalf("row %d: ok = %t with pixels %v", y, ok, row)
				}
				if !ok {
					continue
				}
				if lo != row[0] || hi != row[len(row)-1] || hi-lo+1 != len(row) {
					t.Errorf("row %d: got [%d, %d], pixels %v", y, lo, hi, row)
				}
			}
		})
	}
}
