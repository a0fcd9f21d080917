// Package render provides the CPU-side spatial engine for atlas: camera
// projection, the frame loop, the point-cloud and terrain renderers and the
// pointer interaction that drives them.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/nfnt/resize"
)

// Framebuffer is a 2D array of opaque pixels. Drawing operations blend the
// source color over the existing pixel using the source alpha.
type Framebuffer struct {
	Width  int          // Width in device pixels
	Height int          // Height in device pixels
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// BlendPixel composites c over the pixel at (x, y) using c.A as coverage.
// The stored pixel stays opaque.
func (fb *Framebuffer) BlendPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if c.A == 255 {
		fb.Pixels[i] = c
		return
	}
	if c.A == 0 {
		return
	}
	a := float64(c.A) / 255
	dst := fb.Pixels[i]
	fb.Pixels[i] = color.RGBA{
		R: mix(dst.R, c.R, a),
		G: mix(dst.G, c.G, a),
		B: mix(dst.B, c.B, a),
		A: 255,
	}
}

func mix(dst, src uint8, a float64) uint8 {
	return uint8(math.Round(float64(src)*a + float64(dst)*(1-a)))
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm,
// blending each pixel.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.BlendPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawThickLine draws a line of the given pixel width by stacking parallel
// Bresenham lines along the minor axis.
func (fb *Framebuffer) DrawThickLine(x0, y0, x1, y1, width int, c color.RGBA) {
	if width <= 1 {
		fb.DrawLine(x0, y0, x1, y1, c)
		return
	}
	// Offset perpendicular to the dominant direction.
	horizontal := abs(x1-x0) >= abs(y1-y0)
	for k := -(width - 1) / 2; k <= width/2; k++ {
		if horizontal {
			fb.DrawLine(x0, y0+k, x1, y1+k, c)
		} else {
			fb.DrawLine(x0+k, y0, x1+k, y1, c)
		}
	}
}

// FillCircle draws a filled disc centered at (cx, cy) in pixel space. A disc
// smaller than one pixel still covers the pixel containing its center.
func (fb *Framebuffer) FillCircle(cx, cy, r float64, c color.RGBA) {
	if r <= 0 || math.IsNaN(cx) || math.IsNaN(cy) {
		return
	}
	r2 := r * r
	minX, maxX := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	minY, maxY := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	// Skip discs entirely off-screen.
	if maxX < 0 || maxY < 0 || minX >= fb.Width || minY >= fb.Height {
		return
	}
	covered := false
	for y := max(minY, 0); y <= min(maxY, fb.Height-1); y++ {
		dy := float64(y) + 0.5 - cy
		for x := max(minX, 0); x <= min(maxX, fb.Width-1); x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				fb.BlendPixel(x, y, c)
				covered = true
			}
		}
	}
	if !covered {
		fb.BlendPixel(int(math.Floor(cx)), int(math.Floor(cy)), c)
	}
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.BlendPixel(px, py, c)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// Downsample returns the framebuffer scaled to width x height with bilinear
// filtering. Rendering at a multiple of the output size and downsampling
// gives cheap antialiasing.
func (fb *Framebuffer) Downsample(width, height int) image.Image {
	img := fb.ToImage()
	if width == fb.Width && height == fb.Height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear)
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return savePNG(path, fb.ToImage())
}

// SavePNGScaled downsamples the framebuffer to width x height and saves it.
func (fb *Framebuffer) SavePNGScaled(path string, width, height int) error {
	return savePNG(path, fb.Downsample(width, height))
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
