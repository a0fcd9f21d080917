package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/atlas/pkg/math3d"
)

// DragState is the state of a Controller's pointer gesture.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller turns pointer gestures into rotation of its camera.
//
// A drag rotates the camera by the pointer delta times the sensitivities;
// while it is active the renderer's idle rotation is suppressed. The wheel
// and keyboard nudges are eased with harmonica springs, so Update must be
// called once per frame.
type Controller struct {
	SensitivityYaw   float64 // Radians of yaw per unit of horizontal drag
	SensitivityPitch float64 // Radians of pitch per unit of vertical drag

	MinDistance float64
	MaxDistance float64
	ZoomStep    float64 // Fraction of the distance per wheel step

	// OnClick, if set, is called when the pointer is pressed and released
	// without moving.
	OnClick func(x, y float64)

	camera *Camera
	state  DragState
	last   math3d.Vec2
	down   math3d.Vec2
	moved  bool

	zoomSpring     harmonica.Spring
	targetDistance float64
	zoomVel        float64

	spinSpring harmonica.Spring
	pitchVel   float64
	pitchAccel float64
	yawVel     float64
	yawAccel   float64
}

// NewController creates a controller for camera. fps is the frame rate the
// springs are tuned for.
func NewController(camera *Camera, sensitivityYaw, sensitivityPitch float64, fps int) *Controller {
	if fps <= 0 {
		fps = 60
	}
	return &Controller{
		SensitivityYaw:   sensitivityYaw,
		SensitivityPitch: sensitivityPitch,
		MinDistance:      camera.Distance * 0.25,
		MaxDistance:      camera.Distance * 4,
		ZoomStep:         0.1,
		camera:           camera,
		targetDistance:   camera.Distance,
		// Critically damped: eases to the target without overshoot.
		zoomSpring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		spinSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// State returns the current gesture state.
func (c *Controller) State() DragState {
	return c.state
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.state == Dragging
}

// PointerDown starts a drag at (x, y).
func (c *Controller) PointerDown(x, y float64) {
	c.state = Dragging
	c.last = math3d.V2(x, y)
	c.down = c.last
	c.moved = false
}

// PointerMove rotates the camera by the delta from the last recorded
// position. It does nothing unless a drag is in progress.
func (c *Controller) PointerMove(x, y float64) {
	if c.state != Dragging {
		return
	}
	p := math3d.V2(x, y)
	d := p.Sub(c.last)
	if d.X != 0 || d.Y != 0 {
		c.moved = true
	}
	c.camera.Rotate(d.Y*c.SensitivityPitch, d.X*c.SensitivityYaw)
	c.last = p
}

// PointerUp ends the drag. A press without movement is reported as a click.
func (c *Controller) PointerUp() {
	if c.state != Dragging {
		return
	}
	c.state = Idle
	if !c.moved && c.OnClick != nil {
		c.OnClick(c.down.X, c.down.Y)
	}
}

// PointerLeave ends the drag without reporting a click.
func (c *Controller) PointerLeave() {
	c.state = Idle
}

// Wheel retargets the camera distance by steps wheel notches; positive steps
// zoom in.
func (c *Controller) Wheel(steps float64) {
	target := c.targetDistance * math.Pow(1-c.ZoomStep, steps)
	c.targetDistance = math.Max(c.MinDistance, math.Min(c.MaxDistance, target))
}

// Nudge adds angular velocity (radians per frame) that decays smoothly.
func (c *Controller) Nudge(deltaPitch, deltaYaw float64) {
	c.pitchVel += deltaPitch
	c.yawVel += deltaYaw
}

// Reset restores the camera, cancels the gesture and stops all motion.
func (c *Controller) Reset() {
	c.camera.Reset()
	c.state = Idle
	c.targetDistance = c.camera.Distance
	c.zoomVel = 0
	c.pitchVel, c.pitchAccel = 0, 0
	c.yawVel, c.yawAccel = 0, 0
}

// Update advances the zoom and spin springs by one frame. With no pending
// wheel or nudge input it leaves the camera untouched.
func (c *Controller) Update() {
	if c.camera.Distance != c.targetDistance || c.zoomVel != 0 {
		c.camera.Distance, c.zoomVel = c.zoomSpring.Update(c.camera.Distance, c.zoomVel, c.targetDistance)
		if math.Abs(c.camera.Distance-c.targetDistance) < 1e-3 && math.Abs(c.zoomVel) < 1e-3 {
			c.camera.Distance, c.zoomVel = c.targetDistance, 0
		}
	}

	if c.pitchVel != 0 || c.yawVel != 0 || c.pitchAccel != 0 || c.yawAccel != 0 {
		c.camera.Rotate(c.pitchVel, c.yawVel)
		c.pitchVel, c.pitchAccel = settle(c.spinSpring.Update(c.pitchVel, c.pitchAccel, 0))
		c.yawVel, c.yawAccel = settle(c.spinSpring.Update(c.yawVel, c.yawAccel, 0))
	}
}

// settle snaps a decaying spring to rest once it is imperceptible.
func settle(pos, vel float64) (float64, float64) {
	if math.Abs(pos) < 1e-6 && math.Abs(vel) < 1e-6 {
		return 0, 0
	}
	return pos, vel
}
