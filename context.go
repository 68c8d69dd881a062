package lattice

import (
	"fmt"
	"iter"
)

// DefaultFlatness is the tolerance used when curves have to be flattened
// internally, for example by containment and intersection queries on paths.
const DefaultFlatness = 0.1

// CoordinateSystem describes the orientation of the y axis.
type CoordinateSystem int

const (
	// YUp is the traditional mathematical orientation: y grows upwards and
	// positive rotations are counter-clockwise.
	YUp CoordinateSystem = iota + 1
	// YDown is the usual orientation of screen coordinates: y grows
	// downwards and positive rotations appear clockwise.
	YDown
)

func (cs CoordinateSystem) String() string {
	switch cs {
	case YUp:
		return "y-up"
	case YDown:
		return "y-down"
	default:
		return fmt.Sprintf("CoordinateSystem(%d)", int(cs))
	}
}

// ParseCoordinateSystem parses the names returned by [CoordinateSystem.String].
func ParseCoordinateSystem(s string) (CoordinateSystem, error) {
	switch s {
	case "y-up", "yup", "up":
		return YUp, nil
	case "y-down", "ydown", "down":
		return YDown, nil
	default:
		return 0, fmt.Errorf("unknown coordinate system %q: %w", s, ErrInvalidArgument)
	}
}

// Context carries the conventions that a query depends on. It is passed
// explicitly to the few operations whose answers depend on the orientation of
// the y axis (side-of-line tests, outcodes, rectangle side names and circle
// octant order) and to the crossing computations that flatten curves. A query
// reads it once at entry. Paths keep their own flatness, see
// [Path.SetFlatness].
//
// The zero value behaves like [DefaultContext].
type Context struct {
	System CoordinateSystem
	// Flatness is the tolerance used to flatten curves. Zero selects
	// [DefaultFlatness].
	Flatness float64
}

// DefaultContext returns a y-up context with the default flatness.
func DefaultContext() Context {
	return Context{System: YUp, Flatness: DefaultFlatness}
}

func (ctx Context) yDown() bool {
	return ctx.System == YDown
}

func (ctx Context) flatness() float64 {
	if ctx.Flatness <= 0 {
		return DefaultFlatness
	}
	return ctx.Flatness
}

// Flatten flattens seq with the flatness of ctx. See [Flatten].
func (ctx Context) Flatten(seq iter.Seq[PathElement]) iter.Seq[PathElement] {
	return Flatten(seq, ctx.flatness())
}
