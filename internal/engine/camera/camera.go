// Package camera provides the free-fly camera used by the terrain viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/heightfield-labs/pkg/math"
)

// Projection defaults.
const (
	FOV  = 45 // degrees
	Near = 5
	Far  = 2000
)

// maxPitchCos keeps the view direction away from the up axis so the right
// vector never degenerates.
const maxPitchCos = 0.995

// FlyCamera moves freely along its own axes and turns on mouse drag.
type FlyCamera struct {
	Position  math.Vec3
	Direction math.Vec3 // unit length

	Speed         float32 // world units per second
	RotationSpeed float32 // drag sensitivity, scaled by 1/100 per pixel-second
}

// NewFlyCamera returns a camera at (-70, 50, 70) looking at the origin.
func NewFlyCamera() *FlyCamera {
	pos := math.Vec3{X: -70, Y: 50, Z: 70}
	return &FlyCamera{
		Position:      pos,
		Direction:     pos.Negate().Normalize(),
		Speed:         30,
		RotationSpeed: 15,
	}
}

// Right returns the unit vector to the camera's right.
func (c *FlyCamera) Right() math.Vec3 {
	return c.Direction.Cross(math.Up).Normalize()
}

// Move translates the camera. Each axis is -1, 0 or 1: forward along the view
// direction, right along Right and up along the world up axis.
func (c *FlyCamera) Move(forward, right, up, dt float32) {
	step := c.Speed * dt
	delta := c.Direction.Scale(forward).
		Add(c.Right().Scale(right)).
		Add(math.Up.Scale(up))
	c.Position = c.Position.Add(delta.Scale(step))
}

// HandleDrag turns the camera by a mouse drag of (dx, dy) pixels: yaw around
// world up, then pitch around the camera's right axis.
func (c *FlyCamera) HandleDrag(dx, dy, dt float32) {
	k := c.RotationSpeed / 100 * dt
	yaw := math.RotateAxis(math.Up, -dx*k)
	pitch := math.RotateAxis(c.Right(), -dy*k)

	dir := pitch.Mul(yaw).TransformDirection(c.Direction).Normalize()
	if math32.Abs(dir.Dot(math.Up)) > maxPitchCos {
		// Apply only the yaw when the pitch would flip over the pole.
		dir = yaw.TransformDirection(c.Direction).Normalize()
	}
	c.Direction = dir
}

// LookAt points the camera at target.
func (c *FlyCamera) LookAt(target math.Vec3) {
	if d := target.Sub(c.Position); d.Length() > 0 {
		c.Direction = d.Normalize()
	}
}

// ViewMatrix returns the world-to-view transform.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Direction), math.Up)
}

// ProjectionMatrix returns the perspective projection for the given aspect
// ratio (width / height).
func (c *FlyCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(FOV), aspect, Near, Far)
}
