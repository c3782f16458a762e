package scene

import (
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

// terrainHeightScale is the vertical model scale applied before the
// height intensity.
const terrainHeightScale = 25

// TerrainParams are the user-facing terrain controls.
type TerrainParams struct {
	HeightIntensity  float32
	DensityIntensity float32
	Size             float32
	Seed             float32
	Wireframe        bool
}

// DefaultTerrain returns the startup terrain controls.
func DefaultTerrain() TerrainParams {
	return TerrainParams{
		HeightIntensity:  50,
		DensityIntensity: 300,
		Size:             100,
		Seed:             100,
	}
}

// ModelMatrix rotates the grid 45 degrees and scales it to world size.
func (p TerrainParams) ModelMatrix() math.Mat4 {
	return math.RotateY(math.Radians(-45)).Mul(math.Scale(p.Size, terrainHeightScale, p.Size))
}

// SeedUniform is the noise offset passed to the shader.
func (p TerrainParams) SeedUniform() math.Vec2 {
	return math.Vec2{X: p.Seed, Y: p.Seed / 2}
}

// ShaderDensity scales the noise frequency with the terrain size.
func (p TerrainParams) ShaderDensity() float32 {
	return p.DensityIntensity * p.Size / 100
}

// ShaderHeight is the height intensity as a fraction.
func (p TerrainParams) ShaderHeight() float32 {
	return p.HeightIntensity / 100
}

// NormalScale is the model-space displacement factor a unit height sample
// gets in the vertex shader; heightmap normals use the same factor.
func (p TerrainParams) NormalScale() float32 {
	return 2 * p.ShaderHeight()
}
