package render

import (
	"math"

	"github.com/taigrr/atlas/pkg/math3d"
)

// Canvas is the drawing surface handed to renderers. Renderers work in
// device-independent units; the canvas maps them onto its framebuffer using
// the device pixel ratio.
type Canvas struct {
	Background Color

	fb       *Framebuffer
	width    float64 // device-independent
	height   float64
	dpr      float64
	attached bool
}

// NewCanvas creates an attached canvas of the given device-independent size.
// A non-positive dpr is treated as 1.
func NewCanvas(width, height, dpr float64) *Canvas {
	c := &Canvas{Background: ThemeDark.Background, attached: true}
	c.SetDevicePixelRatio(dpr)
	c.Resize(width, height)
	return c
}

// Resize sets the device-independent size and reallocates the framebuffer
// to match the device pixel ratio.
func (c *Canvas) Resize(width, height float64) {
	c.width, c.height = math.Max(width, 0), math.Max(height, 0)
	w, h := c.pixelSize()
	if c.fb != nil && c.fb.Width == w && c.fb.Height == h {
		return
	}
	c.fb = NewFramebuffer(w, h)
	c.fb.Clear(c.Background)
}

// SetDevicePixelRatio changes the pixel density and resizes the framebuffer.
func (c *Canvas) SetDevicePixelRatio(dpr float64) {
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	c.dpr = dpr
	if c.fb != nil {
		c.Resize(c.width, c.height)
	}
}

func (c *Canvas) pixelSize() (int, int) {
	return int(math.Round(c.width * c.dpr)), int(math.Round(c.height * c.dpr))
}

// DevicePixelRatio returns the device pixels per device-independent unit.
func (c *Canvas) DevicePixelRatio() float64 {
	return c.dpr
}

// Size returns the device-independent size.
func (c *Canvas) Size() (width, height float64) {
	return c.width, c.height
}

// Center returns the viewport center in device-independent units.
func (c *Canvas) Center() math3d.Vec2 {
	return math3d.V2(c.width/2, c.height/2)
}

// Attach marks the surface as available for drawing.
func (c *Canvas) Attach() {
	c.attached = true
}

// Detach marks the surface as unavailable. Frames are skipped until it is
// attached again.
func (c *Canvas) Detach() {
	c.attached = false
}

// Attached reports whether the surface can be drawn on.
func (c *Canvas) Attached() bool {
	return c.attached && c.fb != nil
}

// Framebuffer returns the backing pixels, or nil while detached.
func (c *Canvas) Framebuffer() *Framebuffer {
	if !c.Attached() {
		return nil
	}
	return c.fb
}

// Clear fills the surface with the background color.
func (c *Canvas) Clear() {
	if fb := c.Framebuffer(); fb != nil {
		fb.Clear(c.Background)
	}
}

// FillCircle draws a disc at (x, y) with radius r, all in device-independent
// units, at the given opacity.
func (c *Canvas) FillCircle(x, y, r float64, col Color, alpha float64) {
	fb := c.Framebuffer()
	if fb == nil {
		return
	}
	fb.FillCircle(x*c.dpr, y*c.dpr, r*c.dpr, WithAlpha(col, alpha))
}

// StrokeLine draws a segment between two device-independent points.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col Color, alpha float64) {
	fb := c.Framebuffer()
	if fb == nil {
		return
	}
	if !finite(x0, y0, x1, y1) {
		return
	}
	px := int(math.Max(1, math.Round(width*c.dpr)))
	x0, y0, x1, y1, ok := clipSegment(x0*c.dpr, y0*c.dpr, x1*c.dpr, y1*c.dpr,
		-float64(px), -float64(px), float64(fb.Width+px), float64(fb.Height+px))
	if !ok {
		return
	}
	fb.DrawThickLine(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)),
		px, WithAlpha(col, alpha),
	)
}

// FillRect draws a rectangle in device-independent units.
func (c *Canvas) FillRect(x, y, w, h float64, col Color, alpha float64) {
	fb := c.Framebuffer()
	if fb == nil {
		return
	}
	fb.DrawRect(
		int(math.Round(x*c.dpr)), int(math.Round(y*c.dpr)),
		int(math.Max(1, math.Round(w*c.dpr))), int(math.Max(1, math.Round(h*c.dpr))),
		WithAlpha(col, alpha),
	)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// clipSegment clips a segment to the rectangle [minX, maxX] x [minY, maxY]
// (Liang–Barsky). ok is false when nothing remains.
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
