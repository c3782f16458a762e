package shadow

import (
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

// Spot light frustum used for the shadow pass.
const (
	SpotFOV  = 45 // degrees
	SpotNear = 25
	SpotFar  = 100
)

// SpotLightView looks from pos at the world origin.
func SpotLightView(pos math.Vec3) math.Mat4 {
	return math.LookAt(pos, math.Vec3{}, math.Up)
}

// SpotLightProjection is the square perspective frustum of the spot light.
func SpotLightProjection() math.Mat4 {
	return math.Perspective(math.Radians(SpotFOV), 1, SpotNear, SpotFar)
}

// ShadowMatrix maps view-space positions of the camera with the given view
// matrix to shadow map texture space: xy in [0,1] and z the depth to compare.
func ShadowMatrix(lightProj, lightView, view math.Mat4) math.Mat4 {
	bias := math.Translate(0.5, 0.5, 0.5).Mul(math.Scale(0.5, 0.5, 0.5))
	return bias.Mul(lightProj).Mul(lightView).Mul(view.Inverse())
}

// LightPosition rotates start around the world up axis by angle radians.
func LightPosition(start math.Vec3, angle float32) math.Vec3 {
	return math.RotateY(angle).TransformPoint(start)
}
