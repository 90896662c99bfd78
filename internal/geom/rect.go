package geom

import "math"

// Rect is an axis-aligned rectangle. Width and Height may be negative when
// the rectangle comes straight from a drag; Normalize fixes that up.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Normalize returns the same area with a non-negative width and height.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Max returns the corner opposite to (X, Y).
func (r Rect) Max() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Inset grows r by pad on every side (shrinks it for negative pad).
func (r Rect) Inset(pad float64) Rect {
	r = r.Normalize()
	r.X -= pad
	r.Y -= pad
	r.Width += 2 * pad
	r.Height += 2 * pad
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	r, o = r.Normalize(), o.Normalize()
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	x2 := math.Max(r.X+r.Width, o.X+o.Width)
	y2 := math.Max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Overlaps reports whether r and o share any point.
func (r Rect) Overlaps(o Rect) bool {
	r, o = r.Normalize(), o.Normalize()
	return !(r.X+r.Width < o.X || o.X+o.Width < r.X ||
		r.Y+r.Height < o.Y || o.Y+o.Height < r.Y)
}

// BoundsOf returns the bounding box of pts. It is the zero Rect when pts is
// empty.
func BoundsOf(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
