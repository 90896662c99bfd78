// Package board ties the stroke history, the gesture controller and the
// raster surface together into one drawing instance.
package board

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"sync"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/input"
	"LocalSketch/internal/render"
	"LocalSketch/internal/state"
)

// Config describes a new board. Width and Height are in device units.
type Config struct {
	Width, Height int
	PixelRatio    float64
	Input         input.Settings
	// Background is painted behind the visible surface. Nil leaves it
	// transparent so the host's own background shows through.
	Background color.Color
	// JPEGQuality is passed to the JPEG encoder on export.
	JPEGQuality int
}

// Option customises a Board.
type Option func(*Board)

// WithLogger sets the board's logger. Boards are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// Board is a single drawing surface. It is safe for concurrent use: a host
// may copy the raster from a render thread while events arrive on another.
type Board struct {
	// OnChange is called, without the board lock held, after any change
	// to the raster. Set it before the first event.
	OnChange func()

	mu      sync.Mutex
	changed bool

	width, height int
	jpegQuality   int

	history  *state.History
	ctrl     *input.Controller
	surface  *render.Surface
	pipeline *render.Pipeline
	log      *slog.Logger
}

// New returns an empty board of the configured size.
func New(cfg Config, opts ...Option) (*Board, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("board size %dx%d: dimensions must be positive", cfg.Width, cfg.Height)
	}
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}
	b := &Board{
		width:       cfg.Width,
		height:      cfg.Height,
		jpegQuality: cfg.JPEGQuality,
		history:     state.NewHistory(),
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	ctrl, err := input.NewController(sink{b}, cfg.Input, b.log.With("component", "input"))
	if err != nil {
		return nil, fmt.Errorf("new board: %w", err)
	}
	ctrl.SetPixelRatio(cfg.PixelRatio)
	b.ctrl = ctrl
	b.pipeline = render.NewPipeline(cfg.Background, b.log.With("component", "render"))
	b.surface = render.NewSurface(pixels(cfg.Width, cfg.PixelRatio), pixels(cfg.Height, cfg.PixelRatio))
	b.surface.SetLogger(b.log)
	b.replay(nil)
	b.changed = false
	return b, nil
}

func pixels(n int, ratio float64) int {
	return int(math.Ceil(float64(n) * ratio))
}

// unlock releases the board and reports a raster change if there was one.
func (b *Board) unlock() {
	changed := b.changed
	b.changed = false
	b.mu.Unlock()
	if changed && b.OnChange != nil {
		b.OnChange()
	}
}

func (b *Board) replay(live state.Stroke) {
	b.pipeline.Render(b.surface, b.history.Snapshot(), b.ctrl.View(), live)
	b.changed = true
}

// sink is the controller's view of the board. Its methods run inside Handle
// with the board lock already held.
type sink struct{ b *Board }

func (s sink) PaintSegment(seg state.Stroke) {
	s.b.pipeline.PaintSegment(s.b.surface, seg, s.b.ctrl.View())
	s.b.changed = true
}

func (s sink) Render(live state.Stroke) { s.b.replay(live) }

func (s sink) Commit(st state.Stroke) {
	s.b.history.Append(st)
	s.b.log.Debug("stroke committed", "kind", st.Kind(), "id", st.ID(), "strokes", s.b.history.Len())
	s.b.replay(nil)
}

// Handle feeds one input event to the gesture controller.
func (b *Board) Handle(ev input.Event) {
	b.mu.Lock()
	defer b.unlock()
	b.ctrl.Handle(ev)
}

// SetTool selects the tool used by the next gesture.
func (b *Board) SetTool(k state.Kind) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctrl.SetTool(k)
}

// SetColor selects the colour used by the next gesture.
func (b *Board) SetColor(c color.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ctrl.SetColor(c)
}

// SetWidth selects the stroke width used by the next gesture.
func (b *Board) SetWidth(w float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctrl.SetWidth(w)
}

// Undo removes the most recent stroke. It reports false when there is
// nothing to undo.
func (b *Board) Undo() bool {
	b.mu.Lock()
	defer b.unlock()
	if !b.history.Undo() {
		b.log.Debug("undo: history empty")
		return false
	}
	b.replay(b.ctrl.Live())
	return true
}

// Redo restores the most recently undone stroke.
func (b *Board) Redo() bool {
	b.mu.Lock()
	defer b.unlock()
	if !b.history.Redo() {
		b.log.Debug("redo: nothing to redo")
		return false
	}
	b.replay(b.ctrl.Live())
	return true
}

// Clear drops all strokes, including the redo buffer.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.unlock()
	b.history.Clear()
	b.log.Debug("history cleared")
	b.replay(b.ctrl.Live())
}

// Snapshot returns a copy of the committed strokes in paint order.
func (b *Board) Snapshot() []state.Stroke {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Snapshot()
}

// Resize changes the surface size (device units) and replays the history
// into it, so committed strokes keep their logical coordinates.
func (b *Board) Resize(width, height int) error {
	b.mu.Lock()
	defer b.unlock()
	return b.resize(width, height, b.ctrl.View().PixelRatio)
}

// SetPixelRatio changes the raster density, e.g. when the window moves to
// a screen with a different scale.
func (b *Board) SetPixelRatio(r float64) error {
	if r <= 0 {
		return fmt.Errorf("pixel ratio %g must be positive", r)
	}
	b.mu.Lock()
	defer b.unlock()
	if r == b.ctrl.View().PixelRatio {
		return nil
	}
	b.ctrl.SetPixelRatio(r)
	return b.resize(b.width, b.height, r)
}

func (b *Board) resize(width, height int, ratio float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize board to %dx%d: dimensions must be positive", width, height)
	}
	if err := b.surface.Resize(pixels(width, ratio), pixels(height, ratio)); err != nil {
		return err
	}
	b.width, b.height = width, height
	b.replay(b.ctrl.Live())
	return nil
}

// Size returns the board size in device units.
func (b *Board) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Image returns a copy of the visible raster.
func (b *Board) Image() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Image()
}

// View returns the current viewport transform.
func (b *Board) View() geom.Transform {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctrl.View()
}

// ZoomIn zooms one step about focal, in device units.
func (b *Board) ZoomIn(focal geom.Point) {
	b.mu.Lock()
	defer b.unlock()
	b.ctrl.ZoomIn(focal)
}

// ZoomOut zooms out one step about focal.
func (b *Board) ZoomOut(focal geom.Point) {
	b.mu.Lock()
	defer b.unlock()
	b.ctrl.ZoomOut(focal)
}

// Pan shifts the view by (dx, dy) device units.
func (b *Board) Pan(dx, dy float64) {
	b.mu.Lock()
	defer b.unlock()
	b.ctrl.Pan(dx, dy)
}

// ResetView returns to 1× zoom with no pan.
func (b *Board) ResetView() {
	b.mu.Lock()
	defer b.unlock()
	b.ctrl.ResetView()
}

// Stats summarises the board for status displays.
type Stats struct {
	Strokes int
	Undone  int
	CanUndo bool
	CanRedo bool
	Tool    state.Kind
	Zoom    float64
}

func (b *Board) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		Strokes: b.history.Len(),
		Undone:  len(b.history.Pending()),
		CanUndo: b.history.CanUndo(),
		CanRedo: b.history.CanRedo(),
		Tool:    b.ctrl.Tool(),
		Zoom:    b.ctrl.View().Scale,
	}
}

// Document returns the committed strokes together with the board size.
func (b *Board) Document() state.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return state.Document{Width: b.width, Height: b.height, Strokes: b.history.Snapshot()}
}

// Save writes the committed strokes to w as a drawing document.
func (b *Board) Save(w io.Writer) error {
	return state.WriteDocument(w, b.Document())
}

// Load replaces the history with the document read from r. Any gesture in
// progress is dropped. On error the board is left as it was.
func (b *Board) Load(r io.Reader) error {
	doc, err := state.ReadDocument(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.unlock()
	b.history.Replace(doc.Strokes)
	if b.ctrl.Active() {
		b.ctrl.Handle(input.Event{Phase: input.PhaseCancel})
	} else {
		b.replay(nil)
	}
	b.log.Info("drawing loaded", "strokes", b.history.Len())
	return nil
}
