package render

import (
	"math"

	"github.com/taigrr/atlas/pkg/math3d"
)

// RotationState is the orientation of one camera, in radians.
type RotationState struct {
	Pitch float64 // Rotation around the horizontal (X) axis
	Yaw   float64 // Rotation around the vertical (Y) axis
}

// Matrix returns the orbit transform: yaw about the vertical axis first,
// then pitch about the horizontal axis.
func (r RotationState) Matrix() math3d.Mat4 {
	return math3d.RotateX(r.Pitch).Mul(math3d.RotateY(-r.Yaw))
}

// ProjectedPoint is a point in screen space. It lives for one frame.
type ProjectedPoint struct {
	ScreenX, ScreenY float64
	Scale            float64 // Perspective scale; <= 0 means behind the focal plane
	Depth            float64 // Rotated z, larger is farther away
	Index            int     // Index of the source point or sample
}

// Visible reports whether the point lies in front of the camera.
func (p ProjectedPoint) Visible() bool {
	return p.Scale > 0 && !math.IsInf(p.Scale, 0)
}

// Project rotates p by rot and applies a perspective divide around center.
// It never mutates its inputs. A non-positive Scale in the result marks a
// point behind the focal plane.
func Project(p math3d.Vec3, rot RotationState, center math3d.Vec2, focalLength, cameraDistance float64) ProjectedPoint {
	return projector{
		m:        rot.Matrix(),
		center:   center,
		focal:    focalLength,
		distance: cameraDistance,
	}.project(p, 0)
}

// projector caches the rotation matrix for a whole frame.
type projector struct {
	m        math3d.Mat4
	center   math3d.Vec2
	focal    float64
	distance float64
}

func (pr projector) project(p math3d.Vec3, index int) ProjectedPoint {
	r := pr.m.MulVec3(p)
	var scale float64
	if denom := pr.focal + r.Z + pr.distance; denom != 0 {
		scale = pr.focal / denom
	}
	return ProjectedPoint{
		ScreenX: r.X*scale + pr.center.X,
		ScreenY: r.Y*scale + pr.center.Y,
		Scale:   scale,
		Depth:   r.Z,
		Index:   index,
	}
}

// Camera owns the rotation of a single renderer together with its
// perspective parameters.
type Camera struct {
	Rotation    RotationState
	FocalLength float64
	Distance    float64 // Distance from the focal plane to the orbit center

	initial         RotationState
	initialDistance float64
}

// NewCamera creates a camera with the given perspective parameters and
// starting orientation.
func NewCamera(focalLength, distance float64, initial RotationState) *Camera {
	return &Camera{
		Rotation:        initial,
		FocalLength:     focalLength,
		Distance:        distance,
		initial:         initial,
		initialDistance: distance,
	}
}

// Project projects p with the camera's current state.
func (c *Camera) Project(p math3d.Vec3, center math3d.Vec2) ProjectedPoint {
	return Project(p, c.Rotation, center, c.FocalLength, c.Distance)
}

func (c *Camera) projector(center math3d.Vec2) projector {
	return projector{
		m:        c.Rotation.Matrix(),
		center:   center,
		focal:    c.FocalLength,
		distance: c.Distance,
	}
}

// Rotate adds the given deltas (radians) to the orientation.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Rotation.Pitch += deltaPitch
	c.Rotation.Yaw += deltaYaw
}

// Idle advances yaw by step unless a drag is in progress.
func (c *Camera) Idle(step float64, dragging bool) {
	if dragging {
		return
	}
	c.Rotation.Yaw += step
}

// Reset restores the starting orientation and distance.
func (c *Camera) Reset() {
	c.Rotation = c.initial
	c.Distance = c.initialDistance
}
