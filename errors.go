package timewalk

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a path step indexes past the child
	// count at its level.
	ErrOutOfBounds = errors.New("timewalk: path index out of bounds")

	// ErrKindMismatch is returned when a path step's kind is not a legal
	// child kind of the node it is applied to.
	ErrKindMismatch = errors.New("timewalk: path step kind mismatch")

	// ErrStartAfterEnd is returned when a scope's start measure exceeds its
	// end measure.
	ErrStartAfterEnd = errors.New("timewalk: scope start measure after end measure")

	// ErrUnresolvableRoot is returned when a scope root path does not
	// resolve to a traversable node.
	ErrUnresolvableRoot = errors.New("timewalk: scope root does not resolve")
)

// PathError reports the failing step of a path resolution. It wraps either
// ErrOutOfBounds or ErrKindMismatch, so errors.Is works on both the
// sentinel and the detailed error.
type PathError struct {
	Step  int
	Kind  StepKind
	Index int
	err   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%v (step %d: %v[%d])", e.err, e.Step, e.Kind, e.Index)
}

func (e *PathError) Unwrap() error { return e.err }
