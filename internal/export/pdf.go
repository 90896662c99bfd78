package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

func newPage(w, h float64) *gofpdf.Fpdf {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	return p
}

// rasterPDF places img on a single page, one point per pixel.
func rasterPDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	p := newPage(float64(b.Dx()), float64(b.Dy()))
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("drawing", opts, &buf)
	p.ImageOptions("drawing", 0, 0, float64(b.Dx()), float64(b.Dy()), false, opts, 0, "")
	return p.Output(w)
}

// CanVectorize reports whether strokes can be written as PDF paths. Eraser
// passes can't: they remove pixels rather than add shapes.
func CanVectorize(strokes []state.Stroke) bool {
	for _, s := range strokes {
		if s.Kind() == state.KindEraser {
			return false
		}
	}
	return true
}

// VectorPDF writes strokes as PDF paths on a width×height point page, one
// point per logical unit. bg may be nil for a transparent page.
func VectorPDF(w io.Writer, strokes []state.Stroke, width, height float64, bg color.Color) error {
	p := newPage(width, height)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	if bg != nil {
		setFill(p, bg)
		p.Rect(0, 0, width, height, "F")
	}
	for _, s := range strokes {
		drawStroke(p, s)
	}
	if err := p.Output(w); err != nil {
		return &Error{Format: PDF, Err: err}
	}
	return nil
}

func setDraw(p *gofpdf.Fpdf, c color.NRGBA) {
	p.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.SetAlpha(float64(c.A)/255, "Normal")
}

func setFill(p *gofpdf.Fpdf, c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	p.SetFillColor(int(n.R), int(n.G), int(n.B))
	p.SetAlpha(float64(n.A)/255, "Normal")
}

func drawStroke(p *gofpdf.Fpdf, s state.Stroke) {
	switch v := s.(type) {
	case *state.Freehand:
		if v.Width() == 0 {
			return
		}
		pts := v.Path()
		if len(pts) == 1 {
			dot(p, pts[0], v.Color(), v.Width())
			return
		}
		setDraw(p, v.Color())
		p.SetLineWidth(v.Width())
		p.MoveTo(pts[0].X, pts[0].Y)
		for _, pt := range pts[1:] {
			p.LineTo(pt.X, pt.Y)
		}
		p.DrawPath("D")
	case *state.Rectangle:
		setDraw(p, v.Color())
		p.SetLineWidth(v.StrokeWidth())
		r := v.Rect()
		if r.Width == 0 && r.Height == 0 {
			dot(p, geom.Pt(r.X, r.Y), v.Color(), v.StrokeWidth())
			return
		}
		p.Rect(r.X, r.Y, r.Width, r.Height, "D")
	case *state.Triangle:
		setDraw(p, v.Color())
		p.SetLineWidth(v.StrokeWidth())
		vs := v.Vertices()
		if v.Origin() == v.End() {
			dot(p, vs[0], v.Color(), v.StrokeWidth())
			return
		}
		p.Polygon([]gofpdf.PointType{
			{X: vs[0].X, Y: vs[0].Y},
			{X: vs[1].X, Y: vs[1].Y},
			{X: vs[2].X, Y: vs[2].Y},
		}, "D")
	case *state.Circle:
		if v.Radius() == 0 {
			dot(p, v.Center(), v.Color(), v.StrokeWidth())
			return
		}
		setDraw(p, v.Color())
		p.SetLineWidth(v.StrokeWidth())
		p.Circle(v.Center().X, v.Center().Y, v.Radius(), "D")
	case *state.Line:
		if v.Start() == v.End() {
			dot(p, v.Start(), v.Color(), v.StrokeWidth())
			return
		}
		setDraw(p, v.Color())
		p.SetLineWidth(v.StrokeWidth())
		p.Line(v.Start().X, v.Start().Y, v.End().X, v.End().Y)
	}
}

// dot is how every zero-size stroke is drawn.
func dot(p *gofpdf.Fpdf, at geom.Point, c color.NRGBA, width float64) {
	if width <= 0 {
		return
	}
	setFill(p, c)
	p.Circle(at.X, at.Y, width/2, "F")
}
