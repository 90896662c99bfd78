package render

import (
	"image"
	"image/color"
	"log/slog"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

// Pipeline replays strokes onto a Canvas. The zero value renders onto a
// transparent background.
type Pipeline struct {
	// Background, when set, is filled behind all strokes after they are
	// painted, so erasers reveal it instead of punching holes. It is fixed
	// for the lifetime of the pipeline.
	background color.Color
	log        *slog.Logger
}

// NewPipeline returns a pipeline with an optional background fill.
func NewPipeline(background color.Color, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{background: background, log: log}
}

// Background returns the fill painted behind strokes, or nil.
func (p *Pipeline) Background() color.Color {
	return p.background
}

// Render clears c and repaints strokes in order, then live on top. The same
// inputs always produce the same pixels; nothing from a previous frame
// survives. c is left in BlendNormal.
func (p *Pipeline) Render(c Canvas, strokes []state.Stroke, t geom.Transform, live state.Stroke) {
	defer c.SetBlendMode(BlendNormal)

	w, h := c.Size()
	c.SetBlendMode(BlendNormal)
	c.ClearRect(image.Rect(0, 0, w, h))

	view := geom.Rect{Width: float64(w), Height: float64(h)}
	for _, s := range strokes {
		paint(c, view, s, t)
	}
	if live != nil {
		paint(c, view, live, t)
	}
	if p.background != nil {
		c.SetBlendMode(BlendBehind)
		c.FillRect(geom.Rect{Width: float64(w), Height: float64(h)}, p.background)
	}
	p.log.Debug("replayed history", "strokes", len(strokes), "live", live != nil, "scale", t.Scale)
}

// PaintSegment paints only the newest segment of a live freehand or eraser
// stroke. It is the cheap path used while a pen gesture is in progress; the
// full Render at gesture end is what the raster must converge to. Other
// kinds are ignored.
func (p *Pipeline) PaintSegment(c Canvas, live state.Stroke, t geom.Transform) {
	var (
		pts   []geom.Point
		col   color.Color = color.Black
		width float64
		mode  = BlendNormal
	)
	switch s := live.(type) {
	case *state.Freehand:
		pts, col, width = s.Path(), s.Color(), s.Width()
	case *state.Eraser:
		pts, width, mode = s.Path(), s.Width(), BlendDestructive
	default:
		return
	}
	defer c.SetBlendMode(BlendNormal)
	c.SetBlendMode(mode)

	n := len(pts)
	path := new(Path).MoveTo(t.Apply(pts[max(n-2, 0)])).LineTo(t.Apply(pts[n-1]))
	c.StrokePath(path, col, width*t.Factor())
}

// paint draws one stroke with the blend mode its kind implies. Strokes
// entirely outside view are skipped.
func paint(c Canvas, view geom.Rect, s state.Stroke, t geom.Transform) {
	path, col, width := outline(s, t)
	if path == nil {
		return
	}
	if !path.Bounds().Inset(width*t.Factor()/2 + 1).Overlaps(view) {
		return
	}
	if s.Kind() == state.KindEraser {
		c.SetBlendMode(BlendDestructive)
	} else {
		c.SetBlendMode(BlendNormal)
	}
	c.StrokePath(path, col, width*t.Factor())
}

// outline converts a stroke into a raster-space path, its color and its
// logical line width.
func outline(s state.Stroke, t geom.Transform) (*Path, color.Color, float64) {
	path := new(Path)
	switch v := s.(type) {
	case *state.Freehand:
		polyline(path, v.Path(), t)
		return path, v.Color(), v.Width()
	case *state.Eraser:
		polyline(path, v.Path(), t)
		return path, color.Black, v.Width()
	case *state.Rectangle:
		r := v.Rect()
		path.MoveTo(t.Apply(geom.Pt(r.X, r.Y))).
			LineTo(t.Apply(geom.Pt(r.X+r.Width, r.Y))).
			LineTo(t.Apply(r.Max())).
			LineTo(t.Apply(geom.Pt(r.X, r.Y+r.Height))).
			Close()
		return path, v.Color(), v.StrokeWidth()
	case *state.Triangle:
		vs := v.Vertices()
		path.MoveTo(t.Apply(vs[0])).LineTo(t.Apply(vs[1])).LineTo(t.Apply(vs[2])).Close()
		return path, v.Color(), v.StrokeWidth()
	case *state.Circle:
		if v.Radius() == 0 {
			// strokes as a dot, like every other zero-size shape
			path.MoveTo(t.Apply(v.Center()))
			return path, v.Color(), v.StrokeWidth()
		}
		path.Circle(t.Apply(v.Center()), v.Radius()*t.Factor())
		return path, v.Color(), v.StrokeWidth()
	case *state.Line:
		path.MoveTo(t.Apply(v.Start())).LineTo(t.Apply(v.End()))
		return path, v.Color(), v.StrokeWidth()
	}
	return nil, nil, 0
}

func polyline(path *Path, pts []geom.Point, t geom.Transform) {
	for i, pt := range pts {
		if i == 0 {
			path.MoveTo(t.Apply(pt))
			continue
		}
		path.LineTo(t.Apply(pt))
	}
}
