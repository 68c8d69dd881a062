package lattice

import "errors"

var (
	// ErrInvalidArgument is returned when a caller passes an argument that
	// violates a precondition, such as a negative radius or a path whose
	// first element isn't a MoveTo.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when an operation isn't valid for the
	// current state of the receiver, such as drawing on a path that has no
	// open subpath.
	ErrInvalidState = errors.New("invalid state")
)
