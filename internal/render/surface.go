package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"LocalSketch/internal/geom"
)

// Surface is an in-memory Canvas. Each path is rasterised by gg into a
// scratch layer covering only the path's damage rectangle, then composited
// into the RGBA cache with the current blend mode.
type Surface struct {
	pix  *image.RGBA
	mode BlendMode
	log  *slog.Logger
}

var _ Canvas = (*Surface)(nil)

// NewSurface allocates a transparent surface. Dimensions below one pixel
// are raised to one.
func NewSurface(width, height int) *Surface {
	width, height = max(width, 1), max(height, 1)
	return &Surface{
		pix: image.NewRGBA(image.Rect(0, 0, width, height)),
		log: slog.New(slog.DiscardHandler),
	}
}

// SetLogger routes rasteriser warnings to l.
func (s *Surface) SetLogger(l *slog.Logger) {
	if l != nil {
		s.log = l
	}
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (int, int) {
	b := s.pix.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns a copy of the current pixels.
func (s *Surface) Image() *image.RGBA {
	out := image.NewRGBA(s.pix.Bounds())
	copy(out.Pix, s.pix.Pix)
	return out
}

// RGBAAt returns the premultiplied pixel at (x, y).
func (s *Surface) RGBAAt(x, y int) color.RGBA {
	return s.pix.RGBAAt(x, y)
}

// SetBlendMode sets how subsequent fills and strokes are composited.
func (s *Surface) SetBlendMode(m BlendMode) {
	s.mode = m
}

// ClearRect makes r fully transparent.
func (s *Surface) ClearRect(r image.Rectangle) {
	draw.Draw(s.pix, r.Intersect(s.pix.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

// FillRect composites a solid rectangle.
func (s *Surface) FillRect(r geom.Rect, c color.Color) {
	s.composite(image.NewUniform(c), pixelRect(r), image.Point{})
}

// StrokePath strokes p with round caps and joins. A path that never leaves
// its first point paints a dot of the stroke width.
func (s *Surface) StrokePath(p *Path, c color.Color, width float64) {
	if p == nil || p.Len() == 0 || width <= 0 {
		return
	}
	r := pixelRect(p.Bounds().Inset(width/2 + 1)).Intersect(s.pix.Bounds())
	if r.Empty() {
		return
	}
	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.Translate(-float64(r.Min.X), -float64(r.Min.Y))
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	var err error
	if pt, ok := p.isDot(); ok {
		dc.DrawCircle(pt.X, pt.Y, width/2)
		err = dc.Fill()
	} else {
		for _, cmd := range p.cmds {
			switch cmd.op {
			case opMove:
				dc.MoveTo(cmd.pt.X, cmd.pt.Y)
			case opLine:
				dc.LineTo(cmd.pt.X, cmd.pt.Y)
			case opCircle:
				dc.DrawCircle(cmd.pt.X, cmd.pt.Y, cmd.radius)
			case opClose:
				dc.ClosePath()
			}
		}
		err = dc.Stroke()
	}
	if err != nil {
		s.log.Warn("rasterise path", "err", err)
		return
	}
	s.composite(dc.Image(), r, image.Point{})
}

// DrawSurface scales src over the whole surface.
func (s *Surface) DrawSurface(src image.Image) {
	if src == nil {
		return
	}
	draw.BiLinear.Scale(s.pix, s.pix.Bounds(), src, src.Bounds(), draw.Over, nil)
}

// Resize reallocates the surface and scale-copies the previous pixels into
// it so the host has something to show until the next replay.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize surface to %dx%d: dimensions must be positive", width, height)
	}
	if w, h := s.Size(); w == width && h == height {
		return nil
	}
	prev := s.pix
	s.pix = image.NewRGBA(image.Rect(0, 0, width, height))
	s.DrawSurface(prev)
	return nil
}

// composite blends src into r, with sp the point of src aligned to r.Min.
func (s *Surface) composite(src image.Image, r image.Rectangle, sp image.Point) {
	clipped := r.Intersect(s.pix.Bounds())
	if clipped.Empty() {
		return
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))
	r = clipped
	switch s.mode {
	case BlendDestructive:
		s.eraseUnder(src, r, sp)
	case BlendBehind:
		tmp := image.NewRGBA(r)
		draw.Draw(tmp, r, src, sp, draw.Src)
		draw.Draw(tmp, r, s.pix, r.Min, draw.Over)
		draw.Draw(s.pix, r, tmp, r.Min, draw.Src)
	default:
		draw.Draw(s.pix, r, src, sp, draw.Over)
	}
}

// eraseUnder scales every pixel in r by the inverse of src's coverage
// (destination-out). Neither gg nor x/image/draw offers that operator.
func (s *Surface) eraseUnder(src image.Image, r image.Rectangle, sp image.Point) {
	layer, _ := src.(*image.RGBA)
	d := sp.Sub(r.Min)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			var a uint32
			if layer != nil {
				a = uint32(layer.Pix[layer.PixOffset(x+d.X, y+d.Y)+3])
			} else {
				_, _, _, a16 := src.At(x+d.X, y+d.Y).RGBA()
				a = a16 >> 8
			}
			if a == 0 {
				continue
			}
			keep := 255 - a
			i := s.pix.PixOffset(x, y)
			px := s.pix.Pix[i : i+4 : i+4]
			for j := range px {
				px[j] = uint8((uint32(px[j])*keep + 127) / 255)
			}
		}
	}
}

// pixelRect returns the smallest pixel rectangle covering r.
func pixelRect(r geom.Rect) image.Rectangle {
	r = r.Normalize()
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}
