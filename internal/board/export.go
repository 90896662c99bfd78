package board

import (
	"bytes"
	"image/color"
	"log/slog"

	"LocalSketch/internal/export"
	"LocalSketch/internal/geom"
	"LocalSketch/internal/render"
	"LocalSketch/internal/state"
)

// ExportOptions control how a drawing is written out.
type ExportOptions struct {
	Format export.Format
	// Background fills the image behind the strokes. Nil keeps it
	// transparent, except for JPEG which falls back to white.
	Background  color.Color
	PixelRatio  float64
	JPEGQuality int
	Log         *slog.Logger
}

// Export renders the committed strokes offscreen at 1× zoom and encodes
// them. The visible surface and the history are not touched, so a failed
// export can simply be retried.
func (b *Board) Export(f export.Format, bg color.Color) ([]byte, error) {
	b.mu.Lock()
	doc := state.Document{Width: b.width, Height: b.height, Strokes: b.history.Snapshot()}
	o := ExportOptions{
		Format:      f,
		Background:  bg,
		PixelRatio:  b.ctrl.View().PixelRatio,
		JPEGQuality: b.jpegQuality,
		Log:         b.log,
	}
	b.mu.Unlock()

	data, err := Encode(doc, o)
	if err != nil {
		b.log.Warn("export failed", "format", f, "err", err)
		return nil, err
	}
	b.log.Info("drawing exported", "format", f, "bytes", len(data), "strokes", len(doc.Strokes))
	return data, nil
}

// Encode renders doc without a board, for headless export. Drawings
// without eraser strokes are written to PDF as vector paths.
func Encode(doc state.Document, o ExportOptions) ([]byte, error) {
	if o.Background == nil && o.Format.Opaque() {
		o.Background = color.White
	}
	if o.PixelRatio <= 0 {
		o.PixelRatio = 1
	}
	if o.Format == export.PDF && export.CanVectorize(doc.Strokes) {
		var buf bytes.Buffer
		if err := export.VectorPDF(&buf, doc.Strokes, float64(doc.Width), float64(doc.Height), o.Background); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	s := render.NewSurface(pixels(doc.Width, o.PixelRatio), pixels(doc.Height, o.PixelRatio))
	if o.Log != nil {
		s.SetLogger(o.Log)
	}
	t := geom.Identity()
	t.PixelRatio = o.PixelRatio
	render.NewPipeline(o.Background, o.Log).Render(s, doc.Strokes, t, nil)
	return export.Bytes(s.Image(), o.Format, export.Options{JPEGQuality: o.JPEGQuality})
}
