// Package render turns a stroke history into pixels. Every structural change
// (undo, redo, clear, resize, shape preview) goes through Pipeline.Render,
// which repaints the whole canvas from the log.
package render

import (
	"image"
	"image/color"

	"LocalSketch/internal/geom"
)

// BlendMode selects how new paint combines with the pixels already there.
type BlendMode int

const (
	// BlendNormal paints source-over.
	BlendNormal BlendMode = iota
	// BlendDestructive removes existing paint where the source covers it
	// (destination-out).
	BlendDestructive
	// BlendBehind paints only where the canvas is not already opaque
	// (destination-over).
	BlendBehind
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendDestructive:
		return "destructive"
	case BlendBehind:
		return "behind"
	}
	return "unknown"
}

// Canvas is the raster drawing context the pipeline paints on. Coordinates
// are raster pixels.
type Canvas interface {
	Size() (width, height int)
	// ClearRect resets r to fully transparent regardless of blend mode.
	ClearRect(r image.Rectangle)
	FillRect(r geom.Rect, c color.Color)
	StrokePath(p *Path, c color.Color, width float64)
	SetBlendMode(m BlendMode)
	// DrawSurface scales src into the whole canvas.
	DrawSurface(src image.Image)
}

type pathOp int

const (
	opMove pathOp = iota
	opLine
	opCircle
	opClose
)

type pathCmd struct {
	op     pathOp
	pt     geom.Point
	radius float64
}

// Path is a sequence of drawing commands in raster space.
type Path struct {
	cmds []pathCmd
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt geom.Point) *Path {
	p.cmds = append(p.cmds, pathCmd{op: opMove, pt: pt})
	return p
}

// LineTo adds a segment from the current point to pt.
func (p *Path) LineTo(pt geom.Point) *Path {
	p.cmds = append(p.cmds, pathCmd{op: opLine, pt: pt})
	return p
}

// Circle adds a full circle as its own subpath.
func (p *Path) Circle(center geom.Point, radius float64) *Path {
	p.cmds = append(p.cmds, pathCmd{op: opCircle, pt: center, radius: radius})
	return p
}

// Close joins the current subpath back to its start.
func (p *Path) Close() *Path {
	p.cmds = append(p.cmds, pathCmd{op: opClose})
	return p
}

// Len returns the number of commands.
func (p *Path) Len() int { return len(p.cmds) }

// Bounds returns the box covering every point and circle in p.
func (p *Path) Bounds() geom.Rect {
	var (
		r     geom.Rect
		first = true
	)
	for _, c := range p.cmds {
		var b geom.Rect
		switch c.op {
		case opMove, opLine:
			b = geom.Rect{X: c.pt.X, Y: c.pt.Y}
		case opCircle:
			b = geom.Rect{X: c.pt.X - c.radius, Y: c.pt.Y - c.radius, Width: 2 * c.radius, Height: 2 * c.radius}
		default:
			continue
		}
		if first {
			r, first = b, false
			continue
		}
		r = r.Union(b)
	}
	return r
}

// isDot reports whether p is a lone point, which strokes as a round dot.
func (p *Path) isDot() (geom.Point, bool) {
	if len(p.cmds) == 0 {
		return geom.Point{}, false
	}
	start := p.cmds[0]
	if start.op != opMove {
		return geom.Point{}, false
	}
	for _, c := range p.cmds[1:] {
		if c.op == opClose {
			continue
		}
		if c.op != opLine || c.pt != start.pt {
			return geom.Point{}, false
		}
	}
	return start.pt, true
}
