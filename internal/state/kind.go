package state

import (
	"fmt"
	"strings"
)

// Kind tags a Stroke variant. It doubles as the tool mode a gesture draws
// with.
type Kind string

const (
	KindFreehand  Kind = "freehand"
	KindEraser    Kind = "eraser"
	KindRectangle Kind = "rectangle"
	KindTriangle  Kind = "triangle"
	KindCircle    Kind = "circle"
	KindLine      Kind = "line"
)

// Kinds lists every variant in toolbar order.
var Kinds = []Kind{KindFreehand, KindEraser, KindRectangle, KindTriangle, KindCircle, KindLine}

// IsPath reports whether strokes of kind k accumulate a point path rather
// than being derived from an anchor and a current point.
func (k Kind) IsPath() bool {
	return k == KindFreehand || k == KindEraser
}

// Valid reports whether k names a known variant.
func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

// ParseKind converts a tool name such as "Circle" into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}
