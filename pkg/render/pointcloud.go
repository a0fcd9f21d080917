package render

import (
	"math"
	"sort"

	"github.com/taigrr/atlas/pkg/dataset"
	"github.com/taigrr/atlas/pkg/math3d"
)

// Point cloud view defaults.
const (
	PointCloudFocalLength = 250.0
	PointCloudDistance    = 400.0
	PointCloudIdleYaw     = 0.002 // radians per frame
	PointCloudSensitivity = 0.01  // radians per unit of drag
	PointCloudBaseRadius  = 4.0
)

// PointCloudRotation is the initial orientation of the point cloud view.
var PointCloudRotation = RotationState{Pitch: 0.5, Yaw: 0.5}

// PointCloud draws a set of points as depth-sorted discs.
type PointCloud struct {
	Camera     *Camera
	Points     []dataset.Point3D
	Palette    []Color
	BaseRadius float64
	IdleYaw    float64 // Yaw added per frame while not dragging; 0 disables

	// ShowGuides draws a bounding cube of side GuideSize and the axes behind
	// the points.
	ShowGuides bool
	GuideSize  float64

	// OnSelect, if set, is called with the point under a click.
	OnSelect func(dataset.Point3D)

	controller *Controller
	drawn      []ProjectedPoint // last frame, back to front
	drawnFrom  []dataset.Point3D
}

// NewPointCloud creates a point cloud view over points with the default
// camera and palette. fps tunes the controller's easing.
func NewPointCloud(points []dataset.Point3D, fps int) *PointCloud {
	cam := NewCamera(PointCloudFocalLength, PointCloudDistance, PointCloudRotation)
	pc := &PointCloud{
		Camera:     cam,
		Points:     points,
		Palette:    DefaultPalette,
		BaseRadius: PointCloudBaseRadius,
		IdleYaw:    PointCloudIdleYaw,
		GuideSize:  dataset.DefaultPointOptions().Spread,
		controller: NewController(cam, PointCloudSensitivity, PointCloudSensitivity, fps),
	}
	pc.controller.OnClick = pc.selectAt
	return pc
}

// Controller returns the controller bound to the view's camera.
func (pc *PointCloud) Controller() *Controller {
	return pc.controller
}

// ClusterColor returns the palette entry for cluster. Negative clusters wrap
// around like positive ones.
func ClusterColor(palette []Color, cluster int) Color {
	if len(palette) == 0 {
		return RGB(255, 255, 255)
	}
	i := cluster % len(palette)
	if i < 0 {
		i += len(palette)
	}
	return palette[i]
}

// Project returns the projection of points around center, ordered farthest
// first. Points with equal depth keep their input order.
func (pc *PointCloud) Project(points []dataset.Point3D, center math3d.Vec2) []ProjectedPoint {
	pr := pc.Camera.projector(center)
	out := make([]ProjectedPoint, len(points))
	for i, p := range points {
		out[i] = pr.project(p.Position(), i)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Depth > out[b].Depth
	})
	return out
}

// Render draws points back to front. Points behind the focal plane are
// skipped.
func (pc *PointCloud) Render(c *Canvas, points []dataset.Point3D) {
	if pc.ShowGuides {
		w := NewWireframe(pc.Camera, c)
		w.DrawCube(math3d.Zero3(), pc.GuideSize, RGB(100, 116, 139), 0.35)
		w.DrawAxes(pc.GuideSize/4, 0.8)
	}
	projected := pc.Project(points, c.Center())
	pc.drawn, pc.drawnFrom = pc.drawn[:0], points
	for _, pp := range projected {
		if !pp.Visible() {
			continue
		}
		col := ClusterColor(pc.Palette, points[pp.Index].Cluster)
		c.FillCircle(pp.ScreenX, pp.ScreenY, pc.radius(pp), col, clamp(pp.Scale, 0.2, 1))
		pc.drawn = append(pc.drawn, pp)
	}
}

func (pc *PointCloud) radius(pp ProjectedPoint) float64 {
	return math.Max(1, pc.BaseRadius*pp.Scale)
}

// Frame advances the view by one frame: eases pending zoom and spin, draws
// the points and applies idle rotation.
func (pc *PointCloud) Frame(c *Canvas) {
	pc.controller.Update()
	pc.Render(c, pc.Points)
	pc.Camera.Idle(pc.IdleYaw, pc.controller.Dragging())
}

// Pick returns the frontmost point drawn in the last frame whose disc
// contains (x, y).
func (pc *PointCloud) Pick(x, y float64) (dataset.Point3D, bool) {
	at := math3d.V2(x, y)
	for i := len(pc.drawn) - 1; i >= 0; i-- {
		pp := pc.drawn[i]
		r := pc.radius(pp)
		if at.Sub(math3d.V2(pp.ScreenX, pp.ScreenY)).LenSq() <= r*r {
			return pc.drawnFrom[pp.Index], true
		}
	}
	return dataset.Point3D{}, false
}

func (pc *PointCloud) selectAt(x, y float64) {
	if pc.OnSelect == nil {
		return
	}
	if p, ok := pc.Pick(x, y); ok {
		pc.OnSelect(p)
	}
}
