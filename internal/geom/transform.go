package geom

// Transform maps between device space (input events, in device-independent
// units relative to the surface origin), logical canvas space (where strokes
// live) and raster pixels.
//
//	logical = (device - offset) / Scale
//	pixel   = (logical*Scale + offset) * PixelRatio
type Transform struct {
	Scale      float64
	OffsetX    float64
	OffsetY    float64
	PixelRatio float64
}

// Identity is the transform with no zoom, no pan and one pixel per unit.
func Identity() Transform {
	return Transform{Scale: 1, PixelRatio: 1}
}

func (t Transform) scale() float64 {
	if t.Scale <= 0 {
		return 1
	}
	return t.Scale
}

func (t Transform) ratio() float64 {
	if t.PixelRatio <= 0 {
		return 1
	}
	return t.PixelRatio
}

// Factor is the uniform scale from logical units to pixels. Stroke widths
// and radii are multiplied by it at render time.
func (t Transform) Factor() float64 {
	return t.scale() * t.ratio()
}

// ToLogical converts a device position into logical canvas coordinates.
func (t Transform) ToLogical(deviceX, deviceY float64) Point {
	s := t.scale()
	return Point{X: (deviceX - t.OffsetX) / s, Y: (deviceY - t.OffsetY) / s}
}

// ToDevice is the inverse of ToLogical.
func (t Transform) ToDevice(p Point) Point {
	s := t.scale()
	return Point{X: p.X*s + t.OffsetX, Y: p.Y*s + t.OffsetY}
}

// Apply maps a logical point to raster pixel coordinates.
func (t Transform) Apply(p Point) Point {
	return t.ToDevice(p).Scale(t.ratio())
}

// Pan returns t shifted by (dx, dy) device units.
func (t Transform) Pan(dx, dy float64) Transform {
	t.OffsetX += dx
	t.OffsetY += dy
	return t
}

// ZoomAbout multiplies the zoom factor by factor, clamps it to [lo, hi] and
// adjusts the offset so the logical point under focal (device space) stays
// put. A non-positive factor leaves t unchanged.
func (t Transform) ZoomAbout(factor float64, focal Point, lo, hi float64) Transform {
	if factor <= 0 {
		return t
	}
	anchor := t.ToLogical(focal.X, focal.Y)
	t.Scale = Clamp(t.scale()*factor, lo, hi)
	t.OffsetX = focal.X - anchor.X*t.Scale
	t.OffsetY = focal.Y - anchor.Y*t.Scale
	return t
}

// Clamp limits v to [lo, hi]. Bounds that are not positive are ignored.
func Clamp(v, lo, hi float64) float64 {
	if lo > 0 && v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
