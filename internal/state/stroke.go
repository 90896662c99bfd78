// Package state holds the drawing model: immutable strokes and the history
// that orders them. Nothing in here touches a raster surface.
package state

import (
	"image/color"
	"math"

	"LocalSketch/internal/geom"
)

// Stroke is one completed drawing operation. The concrete type is one of
// *Freehand, *Eraser, *Rectangle, *Triangle, *Circle or *Line. Strokes are
// write-once: every accessor returns a copy.
type Stroke interface {
	ID() string
	Kind() Kind
	// Bounds is the logical area the stroke may paint, including half its
	// line width on every side.
	Bounds() geom.Rect
	sealed()
}

type base struct {
	id string
}

func (b base) ID() string { return b.id }
func (base) sealed() {}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func copyPath(path []geom.Point) []geom.Point {
	out := make([]geom.Point, len(path))
	copy(out, path)
	return out
}

// Freehand is a pen path.
type Freehand struct {
	base
	path  []geom.Point
	color color.NRGBA
	width float64
}

// NewFreehand builds a pen stroke. The path is copied.
func NewFreehand(path []geom.Point, c color.Color, width float64) (*Freehand, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	return &Freehand{
		base:  base{id: newID()},
		path:  copyPath(path),
		color: toNRGBA(c),
		width: nonNegative(width),
	}, nil
}

func (s *Freehand) Kind() Kind { return KindFreehand }
func (s *Freehand) Path() []geom.Point { return copyPath(s.path) }
func (s *Freehand) Color() color.NRGBA { return s.color }
func (s *Freehand) Width() float64 { return s.width }
func (s *Freehand) Bounds() geom.Rect { return geom.BoundsOf(s.path...).Inset(s.width / 2) }

// Eraser is a path that removes paint underneath it. It has no color.
type Eraser struct {
	base
	path  []geom.Point
	width float64
}

// NewEraser builds an eraser pass. The path is copied.
func NewEraser(path []geom.Point, width float64) (*Eraser, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	return &Eraser{
		base:  base{id: newID()},
		path:  copyPath(path),
		width: nonNegative(width),
	}, nil
}

func (s *Eraser) Kind() Kind { return KindEraser }
func (s *Eraser) Path() []geom.Point { return copyPath(s.path) }
func (s *Eraser) Width() float64 { return s.width }
func (s *Eraser) Bounds() geom.Rect { return geom.BoundsOf(s.path...).Inset(s.width / 2) }

// Rectangle is an outlined rectangle. Width and Height keep the sign of the
// drag that produced them.
type Rectangle struct {
	base
	origin        geom.Point
	width, height float64
	color         color.NRGBA
	strokeWidth   float64
}

// NewRectangle builds a rectangle outline anchored at origin.
func NewRectangle(origin geom.Point, width, height float64, c color.Color, strokeWidth float64) *Rectangle {
	return &Rectangle{
		base:        base{id: newID()},
		origin:      origin,
		width:       width,
		height:      height,
		color:       toNRGBA(c),
		strokeWidth: nonNegative(strokeWidth),
	}
}

func (s *Rectangle) Kind() Kind { return KindRectangle }
func (s *Rectangle) Origin() geom.Point { return s.origin }
func (s *Rectangle) Width() float64 { return s.width }
func (s *Rectangle) Height() float64 { return s.height }
func (s *Rectangle) Color() color.NRGBA { return s.color }
func (s *Rectangle) StrokeWidth() float64 { return s.strokeWidth }

// Rect returns the rectangle as drawn, with a non-negative size.
func (s *Rectangle) Rect() geom.Rect {
	return geom.Rect{X: s.origin.X, Y: s.origin.Y, Width: s.width, Height: s.height}.Normalize()
}

func (s *Rectangle) Bounds() geom.Rect { return s.Rect().Inset(s.strokeWidth / 2) }

// Triangle is an isosceles outline whose apex sits on origin's row, halfway
// between origin and end, and whose base lies on end's row.
type Triangle struct {
	base
	origin, end geom.Point
	color       color.NRGBA
	strokeWidth float64
}

// NewTriangle builds a triangle outline spanning origin to end.
func NewTriangle(origin, end geom.Point, c color.Color, strokeWidth float64) *Triangle {
	return &Triangle{
		base:        base{id: newID()},
		origin:      origin,
		end:         end,
		color:       toNRGBA(c),
		strokeWidth: nonNegative(strokeWidth),
	}
}

func (s *Triangle) Kind() Kind { return KindTriangle }
func (s *Triangle) Origin() geom.Point { return s.origin }
func (s *Triangle) End() geom.Point { return s.end }
func (s *Triangle) Color() color.NRGBA { return s.color }
func (s *Triangle) StrokeWidth() float64 { return s.strokeWidth }

// Vertices returns apex, bottom-left and bottom-right in drawing order.
func (s *Triangle) Vertices() [3]geom.Point {
	return [3]geom.Point{
		{X: (s.origin.X + s.end.X) / 2, Y: s.origin.Y},
		{X: s.origin.X, Y: s.end.Y},
		{X: s.end.X, Y: s.end.Y},
	}
}

func (s *Triangle) Bounds() geom.Rect {
	v := s.Vertices()
	return geom.BoundsOf(v[:]...).Inset(s.strokeWidth / 2)
}

// Circle is a circle outline.
type Circle struct {
	base
	center      geom.Point
	radius      float64
	color       color.NRGBA
	strokeWidth float64
}

// NewCircle builds a circle outline. A negative radius is clamped to zero.
func NewCircle(center geom.Point, radius float64, c color.Color, strokeWidth float64) *Circle {
	return &Circle{
		base:        base{id: newID()},
		center:      center,
		radius:      nonNegative(radius),
		color:       toNRGBA(c),
		strokeWidth: nonNegative(strokeWidth),
	}
}

func (s *Circle) Kind() Kind { return KindCircle }
func (s *Circle) Center() geom.Point { return s.center }
func (s *Circle) Radius() float64 { return s.radius }
func (s *Circle) Color() color.NRGBA { return s.color }
func (s *Circle) StrokeWidth() float64 { return s.strokeWidth }

func (s *Circle) Bounds() geom.Rect {
	r := geom.Rect{X: s.center.X - s.radius, Y: s.center.Y - s.radius, Width: 2 * s.radius, Height: 2 * s.radius}
	return r.Inset(s.strokeWidth / 2)
}

// Line is a straight segment.
type Line struct {
	base
	start, end  geom.Point
	color       color.NRGBA
	strokeWidth float64
}

// NewLine builds a straight segment from start to end.
func NewLine(start, end geom.Point, c color.Color, strokeWidth float64) *Line {
	return &Line{
		base:        base{id: newID()},
		start:       start,
		end:         end,
		color:       toNRGBA(c),
		strokeWidth: nonNegative(strokeWidth),
	}
}

func (s *Line) Kind() Kind { return KindLine }
func (s *Line) Start() geom.Point { return s.start }
func (s *Line) End() geom.Point { return s.end }
func (s *Line) Color() color.NRGBA { return s.color }
func (s *Line) StrokeWidth() float64 { return s.strokeWidth }
func (s *Line) Bounds() geom.Rect { return geom.BoundsOf(s.start, s.end).Inset(s.strokeWidth / 2) }

// ShapeFromDrag builds the shape a drag from anchor to current describes for
// one of the anchor-based kinds. It returns ErrUnknownKind for path kinds.
func ShapeFromDrag(kind Kind, anchor, current geom.Point, c color.Color, width float64) (Stroke, error) {
	switch kind {
	case KindRectangle:
		d := current.Sub(anchor)
		return NewRectangle(anchor, d.X, d.Y, c, width), nil
	case KindTriangle:
		return NewTriangle(anchor, current, c, width), nil
	case KindCircle:
		return NewCircle(anchor, anchor.Distance(current), c, width), nil
	case KindLine:
		return NewLine(anchor, current, c, width), nil
	}
	return nil, ErrUnknownKind
}
