package input

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

// ErrInvalidWidth is returned by SetWidth for widths that are not positive.
var ErrInvalidWidth = errors.New("stroke width must be positive")

// Target receives the controller's paint requests. Calls are synchronous and
// made from inside Handle.
type Target interface {
	// PaintSegment paints a two-point slice of a pen or eraser gesture on
	// top of whatever is on the surface.
	PaintSegment(seg state.Stroke)
	// Render replays the history from scratch with live, if non-nil, on top.
	Render(live state.Stroke)
	// Commit appends s to the history and replays it.
	Commit(s state.Stroke)
}

// Settings are the initial tool parameters and zoom limits.
type Settings struct {
	Tool     state.Kind
	Color    color.Color
	Width    float64
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64
}

// DefaultSettings matches the stock toolbar: a 3 unit black pen, zoom
// between 0.5× and 5× in steps of 1.2.
func DefaultSettings() Settings {
	return Settings{
		Tool:     state.KindFreehand,
		Color:    color.Black,
		Width:    3,
		MinZoom:  0.5,
		MaxZoom:  5,
		ZoomStep: 1.2,
	}
}

type mode int

const (
	idle mode = iota
	active
	pinching
)

// gesture holds the parameters frozen when a stroke starts.
type gesture struct {
	kind    state.Kind
	color   color.NRGBA
	width   float64
	anchor  geom.Point
	current geom.Point
	path    []geom.Point
}

// Controller is the per-surface gesture state machine.
type Controller struct {
	target Target
	log    *slog.Logger

	tool  state.Kind
	color color.NRGBA
	width float64

	minZoom, maxZoom, zoomStep float64
	view                       geom.Transform

	mode    mode
	gesture gesture
	pinch   struct {
		dist float64
		mid  geom.Point
	}
}

// NewController returns an idle controller painting through target.
func NewController(target Target, s Settings, log *slog.Logger) (*Controller, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	d := DefaultSettings()
	if s.Tool == "" {
		s.Tool = d.Tool
	}
	if s.Color == nil {
		s.Color = d.Color
	}
	if s.Width == 0 {
		s.Width = d.Width
	}
	if s.MinZoom == 0 && s.MaxZoom == 0 {
		s.MinZoom, s.MaxZoom = d.MinZoom, d.MaxZoom
	}
	if s.ZoomStep <= 1 {
		s.ZoomStep = d.ZoomStep
	}
	if s.MinZoom <= 0 || s.MaxZoom < s.MinZoom {
		return nil, fmt.Errorf("zoom range [%g, %g] is invalid", s.MinZoom, s.MaxZoom)
	}
	c := &Controller{
		target:   target,
		log:      log,
		minZoom:  s.MinZoom,
		maxZoom:  s.MaxZoom,
		zoomStep: s.ZoomStep,
		view:     geom.Identity(),
	}
	if err := c.SetTool(s.Tool); err != nil {
		return nil, err
	}
	if err := c.SetWidth(s.Width); err != nil {
		return nil, err
	}
	c.SetColor(s.Color)
	return c, nil
}

// SetTool selects the variant the next gesture draws.
func (c *Controller) SetTool(k state.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %q", state.ErrUnknownKind, k)
	}
	c.tool = k
	return nil
}

// SetColor sets the pen color for the next gesture. A gesture already in
// progress keeps the color it started with.
func (c *Controller) SetColor(col color.Color) {
	c.color = color.NRGBAModel.Convert(col).(color.NRGBA)
}

// SetWidth sets the line width, in logical units, for the next gesture.
func (c *Controller) SetWidth(w float64) error {
	if !(w > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidWidth, w)
	}
	c.width = w
	return nil
}

func (c *Controller) Tool() state.Kind { return c.tool }
func (c *Controller) Color() color.NRGBA { return c.color }
func (c *Controller) Width() float64 { return c.width }

// Active reports whether a stroke gesture is in progress.
func (c *Controller) Active() bool { return c.mode == active }

// View returns the current viewport transform.
func (c *Controller) View() geom.Transform { return c.view }

// SetPixelRatio records how many raster pixels make up one device unit.
func (c *Controller) SetPixelRatio(r float64) {
	if r > 0 {
		c.view.PixelRatio = r
	}
}

// Live returns the in-progress stroke, or nil when no gesture is active.
func (c *Controller) Live() state.Stroke {
	if c.mode != active {
		return nil
	}
	return c.gesture.stroke()
}

// Handle advances the state machine by one event.
func (c *Controller) Handle(ev Event) {
	switch ev.Phase {
	case PhaseStart:
		if len(ev.Contacts) >= 2 && c.mode != active {
			c.startPinch(ev)
			return
		}
		if c.mode == idle {
			if p, ok := ev.primary(); ok {
				c.begin(c.view.ToLogical(p.X, p.Y))
			}
		}
	case PhaseMove:
		switch {
		case c.mode == active:
			if p, ok := ev.primary(); ok {
				c.extend(c.view.ToLogical(p.X, p.Y), true)
			}
		case len(ev.Contacts) >= 2:
			if c.mode != pinching {
				c.startPinch(ev)
				return
			}
			c.stepPinch(ev)
		}
	case PhaseEnd:
		switch c.mode {
		case active:
			if p, ok := ev.primary(); ok {
				c.extend(c.view.ToLogical(p.X, p.Y), false)
			}
			c.finish()
		case pinching:
			c.mode = idle
		}
	case PhaseCancel:
		switch c.mode {
		case active:
			c.cancel()
		case pinching:
			c.mode = idle
		}
	}
}

func (c *Controller) begin(at geom.Point) {
	c.mode = active
	c.gesture = gesture{
		kind:    c.tool,
		color:   c.color,
		width:   c.width,
		anchor:  at,
		current: at,
	}
	if c.tool.IsPath() {
		c.gesture.path = []geom.Point{at}
	}
	c.log.Debug("gesture started", "tool", c.tool, "x", at.X, "y", at.Y)
}

// extend moves the gesture to p. paint is false for the final position
// carried by an end event, which is followed by a full replay anyway.
func (c *Controller) extend(p geom.Point, paint bool) {
	g := &c.gesture
	if p == g.current {
		return
	}
	prev := g.current
	g.current = p
	if g.kind.IsPath() {
		g.path = append(g.path, p)
		if paint {
			c.target.PaintSegment(g.segment(prev, p))
		}
		return
	}
	if paint {
		c.target.Render(g.stroke())
	}
}

func (c *Controller) finish() {
	s := c.gesture.stroke()
	c.mode = idle
	c.gesture = gesture{}
	if s == nil {
		c.target.Render(nil)
		return
	}
	c.log.Debug("gesture finished", "tool", s.Kind(), "id", s.ID())
	c.target.Commit(s)
}

func (c *Controller) cancel() {
	c.mode = idle
	c.gesture = gesture{}
	c.log.Debug("gesture cancelled")
	c.target.Render(nil)
}

func (g *gesture) stroke() state.Stroke {
	switch g.kind {
	case state.KindFreehand:
		if s, err := state.NewFreehand(g.path, g.color, g.width); err == nil {
			return s
		}
	case state.KindEraser:
		if s, err := state.NewEraser(g.path, g.width); err == nil {
			return s
		}
	default:
		if s, err := state.ShapeFromDrag(g.kind, g.anchor, g.current, g.color, g.width); err == nil {
			return s
		}
	}
	return nil
}

func (g *gesture) segment(from, to geom.Point) state.Stroke {
	pts := []geom.Point{from, to}
	if g.kind == state.KindEraser {
		s, _ := state.NewEraser(pts, g.width)
		return s
	}
	s, _ := state.NewFreehand(pts, g.color, g.width)
	return s
}
