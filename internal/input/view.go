package input

import "LocalSketch/internal/geom"

func devicePoint(c Contact) geom.Point { return geom.Pt(c.X, c.Y) }

func (c *Controller) startPinch(ev Event) {
	a, b := devicePoint(ev.Contacts[0]), devicePoint(ev.Contacts[1])
	c.mode = pinching
	c.pinch.dist = a.Distance(b)
	c.pinch.mid = geom.Midpoint(a, b)
}

// stepPinch zooms by the change in finger distance about the midpoint and
// pans by the midpoint's movement.
func (c *Controller) stepPinch(ev Event) {
	a, b := devicePoint(ev.Contacts[0]), devicePoint(ev.Contacts[1])
	dist, mid := a.Distance(b), geom.Midpoint(a, b)
	if c.pinch.dist > 0 && dist > 0 {
		v := c.view.Pan(mid.X-c.pinch.mid.X, mid.Y-c.pinch.mid.Y)
		c.setView(v.ZoomAbout(dist/c.pinch.dist, mid, c.minZoom, c.maxZoom))
	}
	c.pinch.dist, c.pinch.mid = dist, mid
}

// ZoomBy multiplies the zoom factor about focal (device space), clamped to
// the configured range.
func (c *Controller) ZoomBy(factor float64, focal geom.Point) {
	c.setView(c.view.ZoomAbout(factor, focal, c.minZoom, c.maxZoom))
}

// ZoomIn zooms one step about focal.
func (c *Controller) ZoomIn(focal geom.Point) { c.ZoomBy(c.zoomStep, focal) }

// ZoomOut zooms out one step about focal.
func (c *Controller) ZoomOut(focal geom.Point) { c.ZoomBy(1/c.zoomStep, focal) }

// Pan shifts the view by (dx, dy) device units.
func (c *Controller) Pan(dx, dy float64) {
	c.setView(c.view.Pan(dx, dy))
}

// ResetView drops zoom and pan but keeps the pixel ratio.
func (c *Controller) ResetView() {
	v := geom.Identity()
	v.PixelRatio = c.view.PixelRatio
	c.setView(v)
}

func (c *Controller) setView(v geom.Transform) {
	if v == c.view {
		return
	}
	c.view = v
	c.log.Debug("view changed", "scale", v.Scale, "dx", v.OffsetX, "dy", v.OffsetY)
	c.target.Render(c.Live())
}
