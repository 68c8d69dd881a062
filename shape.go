package lattice

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Kind identifies the concrete type of a [Shape].
type Kind int

const (
	RectKind Kind = iota + 1
	CircleKind
	SegmentKind
	PathKind
	MultiShapeKind

	numKinds = iota + 1
)

func (k Kind) String() string {
	switch k {
	case RectKind:
		return "rect"
	case CircleKind:
		return "circle"
	case SegmentKind:
		return "segment"
	case PathKind:
		return "path"
	case MultiShapeKind:
		return "multishape"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is the capability set shared by all shapes of this package: *[Rect],
// *[Circle], *[Segment], *[Path] and *[MultiShape].
//
// Containment follows the closed-shape convention: points on the boundary are
// contained. Open paths and segments have no interior and only contain the
// points on them.
type Shape interface {
	Kind() Kind

	// Contains reports whether pt lies inside or on the shape.
	Contains(pt Point) bool
	// ContainsRect reports whether every point of r lies inside or on the
	// shape.
	ContainsRect(r Rect) bool
	// Intersects reports whether the two shapes share at least one point.
	// It is symmetric.
	Intersects(o Shape) bool

	// ClosestPointTo returns a grid point of the shape that is closest to
	// pt, pt itself if the shape contains it.
	ClosestPointTo(pt Point) Point
	// FarthestPointTo returns a grid point of the shape that is farthest
	// from pt.
	FarthestPointTo(pt Point) Point

	Distance(pt Point) float64
	DistanceSquared(pt Point) float64
	// DistanceL1 returns the Manhattan distance between pt and the point
	// returned by ClosestPointTo.
	DistanceL1(pt Point) int
	// DistanceLinf returns the Chebyshev distance between pt and the point
	// returned by ClosestPointTo.
	DistanceLinf(pt Point) int

	// BoundingBox returns the smallest rectangle that encloses the shape.
	BoundingBox() Rect

	// PathElements returns an iterator over path elements that express the
	// outline of the shape. Every call returns a fresh iterator.
	PathElements() iter.Seq[PathElement]
	// Points returns an iterator over grid points on the outline of the
	// shape. Every yielded point is contained by the shape.
	Points() iter.Seq[Point]
	WindingRule() WindingRule

	Translate(v Vec2)
	Clear()
	IsEmpty() bool
	// Clone returns a deep copy of the shape. Observers aren't copied.
	Clone() Shape

	// Observe registers fn to be called synchronously after every mutation
	// of the shape. The returned function unregisters it. Observers belong
	// to the shape's address: mutations of a value copy don't reach them.
	Observe(fn func()) (cancel func())
}

type option[T any] struct {
	isSet bool
	value T
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

func (opt *option[T]) clear() {
	opt.isSet = false
	opt.value = *new(T)
}

func (opt *option[T]) unwrap() T {
	if !opt.isSet {
		panic("option isn't set")
	}
	return opt.value
}

// observers holds the change callbacks of one shape. Shapes allocate it
// lazily on the first call to Observe. A value copy of a shape shares the
// pointer but not the owner: mutating the copy notifies nobody, and observing
// it allocates a list of its own.
type observers struct {
	owner Shape
	next  int
	fns   []observer
}

type observer struct {
	id int
	fn func()
}

func observe(obs **observers, owner Shape, fn func()) func() {
	if *obs == nil || (*obs).owner != owner {
		*obs = &observers{owner: owner}
	}
	o := *obs
	id := o.next
	o.next++
	o.fns = append(o.fns, observer{id, fn})
	return func() {
		for i, ob := range o.fns {
			if ob.id == id {
				o.fns = append(o.fns[:i:i], o.fns[i+1:]...)
				return
			}
		}
	}
}

// notify calls the callbacks if owner registered them.
func (o *observers) notify(owner Shape) {
	if o == nil || o.owner != owner {
		return
	}
	for _, ob := range o.fns {
		ob.fn()
	}
}

// SVG converts a sequence of path elements to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(seq iter.Seq[PathElement]) string {
	sb := &strings.Builder{}
	WriteSVG(sb, seq)
	return sb.String()
}

// WriteSVG converts a sequence of path elements to a string of SVG path
// commands and writes it to w.
//
// The current implementation doesn't take any special care to produce a
// short string (using relative movement).
func WriteSVG(w io.Writer, seq iter.Seq[PathElement]) error {
	var err error
	var buf []byte
	write := func(cmd byte, pts ...Point) {
		if err != nil {
			return
		}
		buf = buf[:0]
		buf = append(buf, cmd)
		for i, pt := range pts {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendInt(buf, int64(pt.X), 10)
			buf = append(buf, ',')
			buf = strconv.AppendInt(buf, int64(pt.Y), 10)
		}
		_, err = w.Write(buf)
	}
	first := true
	for el := range seq {
		if err != nil {
			return err
		}
		if !first {
			_, err = io.WriteString(w, " ")
		}
		first = false
		switch el.Kind {
		case MoveToKind:
			write('M', el.To)
		case LineToKind:
			write('L', el.To)
		case QuadToKind:
			write('Q', el.Ctrl1, el.To)
		case CubicToKind:
			write('C', el.Ctrl1, el.Ctrl2, el.To)
		case ClosePathKind:
			write('Z')
		default:
			panic("unreachable")
		}
	}
	return err
}
