package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// WithAlpha returns c with its alpha replaced by a in [0, 1].
func WithAlpha(c Color, a float64) Color {
	c.A = uint8(math.Round(clamp(a, 0, 1) * 255))
	return c
}

// ParsePalette parses a list of "#rrggbb" colors.
func ParsePalette(hex ...string) ([]Color, error) {
	palette := make([]Color, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("parse palette color %q: %w", h, err)
		}
		palette = append(palette, fromColorful(c))
	}
	return palette, nil
}

func mustPalette(hex ...string) []Color {
	p, err := ParsePalette(hex...)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultPalette is the cluster palette of the point cloud view:
// red, blue, emerald, amber, violet.
var DefaultPalette = mustPalette("#ef4444", "#3b82f6", "#10b981", "#f59e0b", "#8b5cf6")

// Theme holds the surface background and the saturation/lightness used for
// the terrain elevation gradient.
type Theme struct {
	Name       string
	Background Color
	Saturation float64
	Lightness  float64
}

var (
	ThemeDark  = Theme{Name: "dark", Background: RGB(15, 23, 42), Saturation: 0.9, Lightness: 0.6}
	ThemeLight = Theme{Name: "light", Background: RGB(248, 250, 252), Saturation: 0.8, Lightness: 0.4}
)

// ThemeByName returns the named theme.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case ThemeDark.Name:
		return ThemeDark, true
	case ThemeLight.Name:
		return ThemeLight, true
	}
	return Theme{}, false
}

// Elevation hue endpoints: blue for low ground, orange for peaks.
const (
	hueLow  = 220.0
	hueHigh = 20.0
)

// ElevationColor maps a normalized elevation in [0, 1] onto the blue→orange
// hue gradient of the theme. Values outside the range are clamped.
func (t Theme) ElevationColor(norm float64) Color {
	norm = clamp(norm, 0, 1)
	hue := hueLow - norm*(hueLow-hueHigh)
	return fromColorful(colorful.Hsl(hue, t.Saturation, t.Lightness))
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
