package scene

import (
	"github.com/Faultbox/heightfield-labs/internal/engine/shadow"
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

// dragRadiansPerPixel converts horizontal drag distance to light rotation.
const dragRadiansPerPixel = 0.01

// Light is the rotating spot light that casts the terrain shadow.
type Light struct {
	StartPosition math.Vec3
	Color         math.Vec3
	Intensity     float32
	RotationSpeed float32 // radians per second
	ManualOnly    bool

	// Rotation is the current angle about the up axis.
	Rotation float32
	// Dragging pauses the automatic rotation while the user moves the light.
	Dragging bool
}

// DefaultLight returns a white light starting at (40, 40, 0).
func DefaultLight() Light {
	return Light{
		StartPosition: math.Vec3{X: 40, Y: 40, Z: 0},
		Color:         math.Vec3{X: 1, Y: 1, Z: 1},
		Intensity:     10000,
		RotationSpeed: 1,
	}
}

// Update advances the automatic rotation.
func (l *Light) Update(dt float32) {
	if l.ManualOnly || l.Dragging {
		return
	}
	l.Rotation += dt * l.RotationSpeed
}

// Drag rotates the light by a horizontal mouse delta in pixels.
func (l *Light) Drag(dx float32) {
	l.Rotation += dx * dragRadiansPerPixel
}

// Position returns the world-space light position.
func (l *Light) Position() math.Vec3 {
	return shadow.LightPosition(l.StartPosition, l.Rotation)
}

// View returns the light's view matrix, aimed at the origin.
func (l *Light) View() math.Mat4 {
	return shadow.SpotLightView(l.Position())
}
