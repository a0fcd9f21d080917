package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/atlas/pkg/dataset"
	"github.com/taigrr/atlas/pkg/math3d"
)

// Terrain view defaults.
const (
	TerrainFocalLength = 400.0
	TerrainDistance    = 600.0
	TerrainIdleYaw     = 0.001 // radians per frame
	TerrainSensitivity = 0.005 // radians per unit of drag
	TerrainClockStep   = 0.02  // animation time per frame
	TerrainLineWidth   = 1.0
)

// TerrainRotation is the initial orientation of the terrain view.
var TerrainRotation = RotationState{Pitch: 0.8, Yaw: 0.6}

// ErrGridSize is returned when the sample count does not form a square grid
// of the declared side.
var ErrGridSize = errors.New("render: grid size mismatch")

// Wave is the animated displacement added to every sample's elevation:
// sin(x*Frequency + t) * cos(z*Frequency + t) * Amplitude.
// The zero Wave is flat.
type Wave struct {
	Frequency float64
	Amplitude float64
}

// DefaultWave is the dashboard's gentle swell.
var DefaultWave = Wave{Frequency: 0.1, Amplitude: 10}

// At returns the displacement at (x, z) and time t.
func (w Wave) At(x, z, t float64) float64 {
	if w.Amplitude == 0 {
		return 0
	}
	return math.Sin(x*w.Frequency+t) * math.Cos(z*w.Frequency+t) * w.Amplitude
}

// TerrainOptions configures a Terrain.
type TerrainOptions struct {
	Wave Wave

	// Elevations are normalised over [ElevationMin, ElevationMax] to pick
	// edge colors.
	ElevationMin float64
	ElevationMax float64

	ClockStep float64 // Clock advance per frame
	Theme     Theme
}

// DefaultTerrainOptions returns the dashboard's terrain settings.
func DefaultTerrainOptions() TerrainOptions {
	return TerrainOptions{
		Wave:         DefaultWave,
		ElevationMin: -50,
		ElevationMax: 50,
		ClockStep:    TerrainClockStep,
		Theme:        ThemeDark,
	}
}

// Edge is one drawable segment of the mesh.
type Edge struct {
	From, To int // Sample indices
	Color    Color
	Alpha    float64
}

// Terrain draws a square height grid as an animated wireframe.
type Terrain struct {
	Camera  *Camera
	IdleYaw float64 // Yaw added per frame while not dragging; 0 disables

	grid       []dataset.HeightSample
	n          int
	opts       TerrainOptions
	clock      float64
	controller *Controller
}

// NewTerrain creates a terrain view over a row-major grid of side n. It
// fails with ErrGridSize unless len(grid) == n*n and n > 0.
func NewTerrain(grid []dataset.HeightSample, n int, opts TerrainOptions, fps int) (*Terrain, error) {
	if n <= 0 || len(grid) != n*n {
		return nil, fmt.Errorf("%w: %d samples for a %dx%d grid", ErrGridSize, len(grid), n, n)
	}
	if opts.ElevationMax <= opts.ElevationMin {
		return nil, fmt.Errorf("terrain: elevation range [%g, %g] is empty", opts.ElevationMin, opts.ElevationMax)
	}
	cam := NewCamera(TerrainFocalLength, TerrainDistance, TerrainRotation)
	return &Terrain{
		Camera:     cam,
		IdleYaw:    TerrainIdleYaw,
		grid:       grid,
		n:          n,
		opts:       opts,
		controller: NewController(cam, TerrainSensitivity, TerrainSensitivity, fps),
	}, nil
}

// Controller returns the controller bound to the view's camera.
func (t *Terrain) Controller() *Controller {
	return t.controller
}

// Side returns the number of samples along one grid edge.
func (t *Terrain) Side() int {
	return t.n
}

// Clock returns the animation time.
func (t *Terrain) Clock() float64 {
	return t.clock
}

// Theme returns the active color theme.
func (t *Terrain) Theme() Theme {
	return t.opts.Theme
}

// SetTheme changes the color theme used for the gradient.
func (t *Terrain) SetTheme(theme Theme) {
	t.opts.Theme = theme
}

// Elevation returns the displaced elevation of sample i at time tm.
func (t *Terrain) Elevation(i int, tm float64) float64 {
	s := t.grid[i]
	return s.Y + t.opts.Wave.At(s.X, s.Z, tm)
}

// Project projects every sample at time tm in index order. It also returns
// the displaced elevation of each sample.
func (t *Terrain) Project(center math3d.Vec2, tm float64) ([]ProjectedPoint, []float64) {
	pr := t.Camera.projector(center)
	projected := make([]ProjectedPoint, len(t.grid))
	elevations := make([]float64, len(t.grid))
	for i, s := range t.grid {
		y := t.Elevation(i, tm)
		elevations[i] = y
		projected[i] = pr.project(math3d.V3(s.X, y, s.Z), i)
	}
	return projected, elevations
}

// Edges returns the segments drawn at time tm: each sample links to its
// right neighbour and the one below, when both endpoints are visible.
func (t *Terrain) Edges(center math3d.Vec2, tm float64) []Edge {
	return t.edges(t.Project(center, tm))
}

func (t *Terrain) edges(projected []ProjectedPoint, elevations []float64) []Edge {
	edges := make([]Edge, 0, 2*t.n*(t.n-1))
	for i := range projected {
		row, col := i/t.n, i%t.n
		if col < t.n-1 {
			edges = t.appendEdge(edges, projected, elevations, i, i+1)
		}
		if row < t.n-1 {
			edges = t.appendEdge(edges, projected, elevations, i, i+t.n)
		}
	}
	return edges
}

func (t *Terrain) appendEdge(edges []Edge, projected []ProjectedPoint, elevations []float64, from, to int) []Edge {
	a, b := projected[from], projected[to]
	if !a.Visible() || !b.Visible() {
		return edges
	}
	mean := (elevations[from] + elevations[to]) / 2
	norm := clamp((mean-t.opts.ElevationMin)/(t.opts.ElevationMax-t.opts.ElevationMin), 0, 1)
	return append(edges, Edge{
		From:  from,
		To:    to,
		Color: t.opts.Theme.ElevationColor(norm),
		Alpha: clamp((a.Scale+b.Scale)/2, 0.1, 1),
	})
}

// Render draws the mesh as it looks at time tm.
func (t *Terrain) Render(c *Canvas, tm float64) {
	projected, elevations := t.Project(c.Center(), tm)
	for _, e := range t.edges(projected, elevations) {
		a, b := projected[e.From], projected[e.To]
		c.StrokeLine(a.ScreenX, a.ScreenY, b.ScreenX, b.ScreenY, TerrainLineWidth, e.Color, e.Alpha)
	}
}

// Frame advances the clock, eases pending zoom and spin, draws the mesh and
// applies idle rotation.
func (t *Terrain) Frame(c *Canvas) {
	t.clock += t.opts.ClockStep
	t.controller.Update()
	t.Render(c, t.clock)
	t.Camera.Idle(t.IdleYaw, t.controller.Dragging())
}

// DrawLegend draws the elevation gradient as a vertical bar with its top-left
// corner at (x, y); high elevations are at the top.
func (t *Terrain) DrawLegend(c *Canvas, x, y, w, h float64) {
	const steps = 32
	step := h / steps
	for i := range steps {
		norm := 1 - (float64(i)+0.5)/steps
		c.FillRect(x, y+float64(i)*step, w, step, t.opts.Theme.ElevationColor(norm), 1)
	}
}

// Scene is a view the loop can drive.
type Scene interface {
	Frame(c *Canvas)
	Controller() *Controller
}

var (
	_ Scene = (*PointCloud)(nil)
	_ Scene = (*Terrain)(nil)
)
