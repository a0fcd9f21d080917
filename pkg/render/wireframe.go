package render

import (
	"github.com/taigrr/atlas/pkg/math3d"
)

// Guide colors.
var (
	AxisX = RGB(239, 68, 68)
	AxisY = RGB(16, 185, 129)
	AxisZ = RGB(59, 130, 246)
)

// Wireframe draws 3D line segments through a camera. It is used for the
// reference guides around a view, not for the data itself.
type Wireframe struct {
	canvas *Canvas
	pr     projector
}

// NewWireframe creates a wireframe drawer for one frame of camera on c.
func NewWireframe(camera *Camera, c *Canvas) *Wireframe {
	return &Wireframe{canvas: c, pr: camera.projector(c.Center())}
}

// DrawLine3D draws a segment in world space. Segments with an endpoint
// behind the focal plane are skipped.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color, alpha float64) {
	a, b := w.pr.project(p1, 0), w.pr.project(p2, 0)
	if !a.Visible() || !b.Visible() {
		return
	}
	w.canvas.StrokeLine(a.ScreenX, a.ScreenY, b.ScreenX, b.ScreenY, 1, color, alpha)
}

// DrawCube draws the edges of an axis-aligned cube.
func (w *Wireframe) DrawCube(center math3d.Vec3, size float64, color Color, alpha float64) {
	half := size / 2
	transform := math3d.Translate(center).Mul(math3d.ScaleUniform(half))

	var verts [8]math3d.Vec3
	for i := range verts {
		local := math3d.V3(-1, -1, -1)
		if i&1 != 0 {
			local.X = 1
		}
		if i&2 != 0 {
			local.Y = 1
		}
		if i&4 != 0 {
			local.Z = 1
		}
		verts[i] = transform.MulVec3(local)
	}

	// Vertices differing in exactly one bit share an edge.
	for i := range verts {
		for _, bit := range [3]int{1, 2, 4} {
			if j := i | bit; j != i {
				w.DrawLine3D(verts[i], verts[j], color, alpha)
			}
		}
	}
}

// DrawAxes draws the coordinate axes from the origin.
func (w *Wireframe) DrawAxes(length, alpha float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), AxisX, alpha)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), AxisY, alpha)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), AxisZ, alpha)
}
