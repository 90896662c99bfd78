package state

import "errors"

var (
	// ErrEmptyPath is returned when a freehand or eraser stroke has no points.
	ErrEmptyPath = errors.New("stroke path is empty")
	// ErrUnknownKind is returned for a tool or record kind that is not one of
	// the six stroke variants.
	ErrUnknownKind = errors.New("unknown stroke kind")
	// ErrBadColor is returned for colors that are not hex triplets.
	ErrBadColor = errors.New("invalid color")
)
