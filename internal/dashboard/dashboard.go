package dashboard

import (
	"fmt"
	"image"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/atlas/internal/config"
	"github.com/taigrr/atlas/pkg/dataset"
	"github.com/taigrr/atlas/pkg/render"
)

// Key nudge strength, radians per frame.
const nudge = 0.03

// targetWidth is the device-independent width a pane is laid out for when
// the config does not fix a pixel ratio.
const targetWidth = 480.0

// Pane is one view of the dashboard together with the loop that drives it
// and its rectangle in host units (cells or window pixels).
type Pane struct {
	Name   string
	Scene  render.Scene
	Loop   *render.Loop
	Bounds image.Rectangle

	// Framebuffer pixels per host unit.
	pxX, pxY float64
	// Ratio set by the last Layout. The canvas picks it up on the next
	// Tick; pointer mapping uses it immediately.
	dpr float64
}

// Canvas returns the pane's drawing surface.
func (p *Pane) Canvas() *render.Canvas {
	return p.Loop.Canvas()
}

// toCanvas maps a host position to device-independent canvas units.
func (p *Pane) toCanvas(x, y int) (float64, float64) {
	dpr := p.dpr
	if dpr <= 0 {
		dpr = 1
	}
	cx := (float64(x-p.Bounds.Min.X) + 0.5) * p.pxX / dpr
	cy := (float64(y-p.Bounds.Min.Y) + 0.5) * p.pxY / dpr
	return cx, cy
}

// Dashboard routes host input to two side-by-side panes and ticks their
// loops. All methods must be called from the host's frame goroutine.
type Dashboard struct {
	Panes   []*Pane
	ShowHUD bool

	cloud   *render.PointCloud
	terrain *render.Terrain
	log     *zap.Logger
	dpr     float64
	theme   render.Theme

	focus    int   // pane receiving keys
	pressed  *Pane // pane holding the pointer
	hover    *Pane
	selected string

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// New builds the point cloud and terrain panes from cfg. The panes have no
// area until Layout is called.
func New(cfg *config.Config, log *zap.Logger) (*Dashboard, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cloud, err := NewPointCloud(cfg, log)
	if err != nil {
		return nil, err
	}
	terr, _, err := NewTerrain(cfg, log)
	if err != nil {
		return nil, err
	}
	theme, _ := render.ThemeByName(cfg.Display.Theme)

	d := &Dashboard{
		ShowHUD: true,
		cloud:   cloud,
		terrain: terr,
		log:     log,
		dpr:     cfg.Display.DPR,
		theme:   theme,
		fpsTime: time.Now(),
	}
	cloud.OnSelect = func(p dataset.Point3D) {
		d.selected = fmt.Sprintf("%s (%.0f, %.0f, %.0f) cluster %d", p.ID, p.X, p.Y, p.Z, p.Cluster)
		log.Info("point selected", zap.String("id", p.ID), zap.Int("cluster", p.Cluster))
	}

	for _, v := range []struct {
		name  string
		scene render.Scene
	}{
		{"Point cloud", cloud},
		{"Terrain", terr},
	} {
		c := render.NewCanvas(0, 0, 1)
		c.Background = theme.Background
		loop := render.NewLoop(c, render.WithLogger(log.Named(v.name)))
		d.Panes = append(d.Panes, &Pane{Name: v.name, Scene: v.scene, Loop: loop, pxX: 1, pxY: 1, dpr: 1})
	}
	return d, nil
}

// PointCloud returns the point cloud view.
func (d *Dashboard) PointCloud() *render.PointCloud {
	return d.cloud
}

// Terrain returns the terrain view.
func (d *Dashboard) Terrain() *render.Terrain {
	return d.terrain
}

// Start starts every pane's loop. Panes are started even before Layout so
// their first frame draws as soon as they have area.
func (d *Dashboard) Start() {
	for _, p := range d.Panes {
		scene := p.Scene
		legend := scene == render.Scene(d.terrain)
		p.Loop.Start(func(c *render.Canvas) {
			scene.Frame(c)
			if legend {
				w, h := c.Size()
				d.terrain.DrawLegend(c, w-16, h*0.25, 6, h*0.5)
			}
		})
	}
}

// Stop stops every pane's loop.
func (d *Dashboard) Stop() {
	for _, p := range d.Panes {
		p.Loop.Stop()
	}
}

// Tick runs one frame of every pane.
func (d *Dashboard) Tick() {
	for _, p := range d.Panes {
		p.Loop.Tick()
	}
	d.fpsFrames++
	if elapsed := time.Since(d.fpsTime); elapsed >= time.Second {
		d.fps = float64(d.fpsFrames) / elapsed.Seconds()
		d.fpsFrames = 0
		d.fpsTime = time.Now()
	}
}

// Layout splits area into two panes side by side. pxX and pxY are the
// framebuffer pixels per host unit (1x2 for half-block terminal cells).
func (d *Dashboard) Layout(area image.Rectangle, pxX, pxY float64) {
	half := area.Min.X + area.Dx()/2
	rects := []image.Rectangle{
		image.Rect(area.Min.X, area.Min.Y, half, area.Max.Y),
		image.Rect(half, area.Min.Y, area.Max.X, area.Max.Y),
	}
	for i, p := range d.Panes {
		p.Bounds = rects[i]
		p.pxX, p.pxY = pxX, pxY
		pw := float64(p.Bounds.Dx()) * pxX
		ph := float64(p.Bounds.Dy()) * pxY
		dpr := d.dpr
		if dpr <= 0 {
			dpr = math.Max(pw/targetWidth, 0.05)
		}
		p.dpr = dpr
		c := p.Canvas()
		p.Loop.Do(func() { c.SetDevicePixelRatio(dpr) })
		p.Loop.Resize(pw/dpr, ph/dpr)
	}
}

func (d *Dashboard) paneAt(x, y int) *Pane {
	pt := image.Pt(x, y)
	for _, p := range d.Panes {
		if pt.In(p.Bounds) {
			return p
		}
	}
	return nil
}

// PointerDown starts a gesture on the pane under (x, y) and focuses it.
func (d *Dashboard) PointerDown(x, y int) {
	p := d.paneAt(x, y)
	if p == nil {
		return
	}
	d.pressed = p
	d.focusPane(p)
	cx, cy := p.toCanvas(x, y)
	ctrl := p.Scene.Controller()
	p.Loop.Do(func() { ctrl.PointerDown(cx, cy) })
}

// PointerMove forwards motion to the pane holding the pointer. Leaving that
// pane ends its gesture.
func (d *Dashboard) PointerMove(x, y int) {
	d.hover = d.paneAt(x, y)
	p := d.pressed
	if p == nil {
		return
	}
	ctrl := p.Scene.Controller()
	if d.hover != p {
		p.Loop.Do(ctrl.PointerLeave)
		d.pressed = nil
		return
	}
	cx, cy := p.toCanvas(x, y)
	p.Loop.Do(func() { ctrl.PointerMove(cx, cy) })
}

// PointerUp ends the gesture in progress.
func (d *Dashboard) PointerUp() {
	p := d.pressed
	if p == nil {
		return
	}
	d.pressed = nil
	p.Loop.Do(p.Scene.Controller().PointerUp)
}

// Wheel zooms the pane under (x, y); positive steps zoom in.
func (d *Dashboard) Wheel(x, y int, steps float64) {
	p := d.paneAt(x, y)
	if p == nil {
		return
	}
	ctrl := p.Scene.Controller()
	p.Loop.Do(func() { ctrl.Wheel(steps) })
}

func (d *Dashboard) focusPane(p *Pane) {
	for i, q := range d.Panes {
		if q == p {
			d.focus = i
		}
	}
}

// Focused returns the pane receiving keyboard input.
func (d *Dashboard) Focused() *Pane {
	return d.Panes[d.focus]
}

// Key handles a key press. It reports false for keys it does not bind.
func (d *Dashboard) Key(key string) bool {
	p := d.Focused()
	ctrl := p.Scene.Controller()
	switch key {
	case "up":
		p.Loop.Do(func() { ctrl.Nudge(-nudge, 0) })
	case "down":
		p.Loop.Do(func() { ctrl.Nudge(nudge, 0) })
	case "left":
		p.Loop.Do(func() { ctrl.Nudge(0, -nudge) })
	case "right":
		p.Loop.Do(func() { ctrl.Nudge(0, nudge) })
	case "+", "=":
		p.Loop.Do(func() { ctrl.Wheel(1) })
	case "-", "_":
		p.Loop.Do(func() { ctrl.Wheel(-1) })
	case "r":
		p.Loop.Do(ctrl.Reset)
	case "tab":
		d.focus = (d.focus + 1) % len(d.Panes)
	case "t":
		d.toggleTheme()
	case "g":
		cloud := d.cloud
		d.Panes[0].Loop.Do(func() { cloud.ShowGuides = !cloud.ShowGuides })
	case "?":
		d.ShowHUD = !d.ShowHUD
	default:
		return false
	}
	return true
}

func (d *Dashboard) toggleTheme() {
	if d.theme.Name == render.ThemeDark.Name {
		d.theme = render.ThemeLight
	} else {
		d.theme = render.ThemeDark
	}
	theme, terr := d.theme, d.terrain
	for _, p := range d.Panes {
		c := p.Canvas()
		p.Loop.Do(func() { c.Background = theme.Background })
	}
	d.Panes[1].Loop.Do(func() { terr.SetTheme(theme) })
	d.log.Debug("theme changed", zap.String("theme", theme.Name))
}

// Theme returns the active theme.
func (d *Dashboard) Theme() render.Theme {
	return d.theme
}

// FPS returns the measured frame rate.
func (d *Dashboard) FPS() float64 {
	return d.fps
}

// Selected describes the last selected point, or "" before any selection.
func (d *Dashboard) Selected() string {
	return d.selected
}

// Status returns the HUD line for pane p.
func (d *Dashboard) Status(p *Pane) string {
	cam := cameraOf(p.Scene)
	marker := " "
	if p == d.Focused() {
		marker = "▸"
	}
	return fmt.Sprintf("%s %s  pitch %.2f yaw %.2f  zoom %.0f%%",
		marker, p.Name, cam.Rotation.Pitch, cam.Rotation.Yaw, 100*cameraZoom(p.Scene))
}

// Footer returns the HUD line shared by both panes.
func (d *Dashboard) Footer() string {
	sel := d.selected
	if sel == "" {
		sel = "click a point"
	}
	return fmt.Sprintf("%.0f FPS  %s  |  %s  |  drag rotate  wheel zoom  tab focus  r reset  t theme  g guides  ? hud  esc quit",
		d.fps, d.theme.Name, sel)
}

func cameraOf(s render.Scene) *render.Camera {
	switch v := s.(type) {
	case *render.PointCloud:
		return v.Camera
	case *render.Terrain:
		return v.Camera
	}
	return nil
}

func cameraZoom(s render.Scene) float64 {
	switch v := s.(type) {
	case *render.PointCloud:
		return render.PointCloudDistance / v.Camera.Distance
	case *render.Terrain:
		return render.TerrainDistance / v.Camera.Distance
	}
	return 1
}
