package tilemap

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds    = errors.New("tile out of bounds")
	ErrNotFound       = errors.New("tile not found")
	ErrInitialization = errors.New("unable to initialize tile grid")
	ErrGridTooLarge   = errors.New("grid too large")
)

// OutOfBoundsError is returned when a coordinate is not below the grid's
// declared size.
type OutOfBoundsError struct {
	X, Y       uint32
	MaxX, MaxY uint32
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("index %d, %d exceeds size %d, %d", e.X, e.Y, e.MaxX, e.MaxY)
}

func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// NotFoundError is returned for an in-bounds slot that holds no descriptor.
// Grids populate every slot with a blank, so seeing this means a bug.
type NotFoundError struct {
	X, Y uint32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tile at %d, %d not found", e.X, e.Y)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ParseError reports a map file that could not be turned into a MapScreen.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse map %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
