package ui

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/board"
	"LocalSketch/internal/geom"
	"LocalSketch/internal/input"
)

// SketchWidget shows a board's raster and turns mouse input into board
// events. The primary button draws, the secondary button pans and the
// wheel zooms.
type SketchWidget struct {
	widget.BaseWidget
	board  *board.Board
	log    *slog.Logger
	raster *canvas.Raster

	drawing bool
	panning bool
	last    fyne.Position

	// OnChange is called after the board's raster changed.
	OnChange func()
}

var _ fyne.Widget = (*SketchWidget)(nil)
var _ fyne.Draggable = (*SketchWidget)(nil)
var _ fyne.Scrollable = (*SketchWidget)(nil)
var _ desktop.Mouseable = (*SketchWidget)(nil)

func NewSketchWidget(b *board.Board, log *slog.Logger) *SketchWidget {
	s := &SketchWidget{board: b, log: log}
	s.raster = canvas.NewRaster(func(w, h int) image.Image {
		return s.board.Image()
	})
	b.OnChange = func() {
		s.raster.Refresh()
		if s.OnChange != nil {
			s.OnChange()
		}
	}
	s.ExtendBaseWidget(s)
	return s
}

func point(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

func (s *SketchWidget) MouseDown(e *desktop.MouseEvent) {
	switch e.Button {
	case desktop.MouseButtonPrimary:
		s.drawing = true
		s.last = e.Position
		s.board.Handle(input.Pointer(input.PhaseStart, float64(e.Position.X), float64(e.Position.Y)))
	case desktop.MouseButtonSecondary:
		s.panning = true
	}
}

func (s *SketchWidget) MouseUp(e *desktop.MouseEvent) {
	switch {
	case e.Button == desktop.MouseButtonPrimary && s.drawing:
		s.drawing = false
		s.board.Handle(input.Pointer(input.PhaseEnd, float64(e.Position.X), float64(e.Position.Y)))
	case e.Button == desktop.MouseButtonSecondary:
		s.panning = false
	}
}

func (s *SketchWidget) Dragged(e *fyne.DragEvent) {
	switch {
	case s.drawing:
		s.last = e.Position
		s.board.Handle(input.Pointer(input.PhaseMove, float64(e.Position.X), float64(e.Position.Y)))
	case s.panning:
		s.board.Pan(float64(e.Dragged.DX), float64(e.Dragged.DY))
	}
}

// Scrolled zooms one step per wheel notch about the pointer.
func (s *SketchWidget) Scrolled(e *fyne.ScrollEvent) {
	switch {
	case e.Scrolled.DY > 0:
		s.board.ZoomIn(point(e.Position))
	case e.Scrolled.DY < 0:
		s.board.ZoomOut(point(e.Position))
	}
}

// DragEnd finishes the stroke when the button was released somewhere the
// widget got no MouseUp for.
func (s *SketchWidget) DragEnd() {
	s.panning = false
	if s.drawing {
		s.drawing = false
		s.board.Handle(input.Pointer(input.PhaseEnd, float64(s.last.X), float64(s.last.Y)))
	}
}

// Cancel abandons the stroke in progress, if any.
func (s *SketchWidget) Cancel() {
	if s.drawing {
		s.drawing = false
		s.board.Handle(input.Event{Phase: input.PhaseCancel})
	}
}

// ZoomIn zooms one step about the centre of the widget.
func (s *SketchWidget) ZoomIn() { s.board.ZoomIn(s.centre()) }

func (s *SketchWidget) ZoomOut() { s.board.ZoomOut(s.centre()) }

func (s *SketchWidget) ResetView() { s.board.ResetView() }

func (s *SketchWidget) centre() geom.Point {
	size := s.Size()
	return geom.Pt(float64(size.Width)/2, float64(size.Height)/2)
}

func (s *SketchWidget) MouseIn(*desktop.MouseEvent) {}
func (s *SketchWidget) MouseOut() {}
func (s *SketchWidget) MouseMoved(*desktop.MouseEvent) {}

func (s *SketchWidget) CreateRenderer() fyne.WidgetRenderer {
	return &sketchRenderer{
		sketch:     s,
		background: canvas.NewRectangle(color.White),
	}
}

type sketchRenderer struct {
	sketch     *SketchWidget
	background *canvas.Rectangle
}

// Layout resizes the board to the widget, at the window's pixel density.
func (r *sketchRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.sketch.raster.Resize(size)

	s := r.sketch
	if c := fyne.CurrentApp().Driver().CanvasForObject(s); c != nil {
		if err := s.board.SetPixelRatio(float64(c.Scale())); err != nil {
			s.log.Warn("pixel ratio", "err", err)
		}
	}
	w, h := int(math.Ceil(float64(size.Width))), int(math.Ceil(float64(size.Height)))
	if w <= 0 || h <= 0 {
		return
	}
	if err := s.board.Resize(w, h); err != nil {
		s.log.Warn("resize board", "err", err)
	}
}

func (r *sketchRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *sketchRenderer) Refresh() {
	r.sketch.raster.Refresh()
}

func (r *sketchRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.sketch.raster}
}

func (r *sketchRenderer) Destroy() {}
