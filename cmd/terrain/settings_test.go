package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/heightfield-labs/internal/config"
	"github.com/Faultbox/heightfield-labs/internal/engine/shadow"
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

func TestSceneConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Shadow.ClampMode = "border-shadowed"
	cfg.Shadow.HardwarePCF = true
	cfg.Shaders.Dir = "shaders"
	cfg.Terrain.Tessellation = 64

	sc, err := sceneConfig(cfg, 800, 600)
	require.NoError(t, err)

	assert.Equal(t, int32(800), sc.Width)
	assert.Equal(t, int32(600), sc.Height)
	assert.Equal(t, 64, sc.Tessellation)
	assert.Equal(t, "shaders", sc.ShaderDir)
	assert.Equal(t, shadow.ClampBorderShadowed, sc.ShadowClamp)
	assert.True(t, sc.HardwarePCF)
	assert.Equal(t, int32(1024), sc.ShadowResolution)
	assert.Equal(t, "001", sc.EnvironmentBase)
}

func TestSceneConfigBadClampMode(t *testing.T) {
	cfg := config.Default()
	cfg.Shadow.ClampMode = "wrap"

	_, err := sceneConfig(cfg, 800, 600)
	assert.Error(t, err)
}

func TestCameraFromConfigLooksAtOrigin(t *testing.T) {
	cam := cameraFromConfig(config.Default().Camera)

	assert.Equal(t, math.Vec3{X: -70, Y: 50, Z: 70}, cam.Position)
	want := cam.Position.Negate().Normalize()
	assert.InDelta(t, want.X, cam.Direction.X, 1e-5)
	assert.InDelta(t, want.Y, cam.Direction.Y, 1e-5)
	assert.InDelta(t, want.Z, cam.Direction.Z, 1e-5)
}

func TestStoreSettingsRoundTrip(t *testing.T) {
	cfg := config.Default()
	terrain := terrainParams(cfg.Terrain)
	terrain.HeightIntensity = 120
	terrain.Seed = 7
	terrain.Wireframe = true
	light := lightFromConfig(cfg.Light)
	light.Color = math.Vec3{X: 1, Y: 0.5, Z: 0.25}
	light.ManualOnly = true
	cam := cameraFromConfig(cfg.Camera)
	cam.Position = math.Vec3{X: 1, Y: 2, Z: 3}

	storeSettings(cfg, terrain, 512, light, cam, 3)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, terrain, terrainParams(cfg.Terrain))
	assert.Equal(t, 512, cfg.Terrain.Tessellation)
	assert.Equal(t, [3]float32{1, 0.5, 0.25}, cfg.Light.Color)
	assert.True(t, lightFromConfig(cfg.Light).ManualOnly)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, float32(3), cfg.Environment.Multiplier)
}

func TestClampMode(t *testing.T) {
	tests := []struct {
		border, shadowed bool
		want             shadow.ClampMode
	}{
		{false, false, shadow.ClampEdge},
		{false, true, shadow.ClampEdge},
		{true, false, shadow.ClampBorderLit},
		{true, true, shadow.ClampBorderShadowed},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, clampMode(tt.border, tt.shadowed))
		})
	}
}

func TestDisplayPath(t *testing.T) {
	assert.Equal(t, "procedural", displayPath("", "procedural"))
	assert.Equal(t, "hill.png", displayPath("/data/maps/hill.png", "procedural"))
}
