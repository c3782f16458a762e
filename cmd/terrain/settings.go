package main

import (
	"fmt"

	"github.com/Faultbox/heightfield-labs/internal/config"
	"github.com/Faultbox/heightfield-labs/internal/engine/camera"
	"github.com/Faultbox/heightfield-labs/internal/engine/scene"
	"github.com/Faultbox/heightfield-labs/internal/engine/shadow"
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

// Slider ranges of the control panel.
const (
	minHeightIntensity  = 10
	maxHeightIntensity  = 1000
	minDensityIntensity = 100
	maxDensityIntensity = 2000
	minTerrainSize      = 10
	maxTerrainSize      = 1000
	minTessellation     = 2
	maxTessellation     = 2048
	maxRotationSpeed    = 50
	minMoveSpeed        = 10
	maxMoveSpeed        = 100
	maxEnvMultiplier    = 10
	maxLightIntensity   = 30000
	minShadowResolution = 128
	maxShadowResolution = 4096
	seedRange           = 1000
)

// sceneConfig builds the scene setup from the loaded config.
func sceneConfig(cfg *config.Config, width, height int32) (scene.Config, error) {
	clamp, err := shadow.ParseClampMode(cfg.Shadow.ClampMode)
	if err != nil {
		return scene.Config{}, fmt.Errorf("shadow config: %w", err)
	}
	sc := scene.DefaultConfig()
	sc.Width = width
	sc.Height = height
	sc.Tessellation = cfg.Terrain.Tessellation
	sc.ShaderDir = cfg.Shaders.Dir
	sc.ShadowResolution = int32(cfg.Shadow.Resolution)
	sc.ShadowClamp = clamp
	sc.HardwarePCF = cfg.Shadow.HardwarePCF
	sc.EnvironmentDir = cfg.Environment.Dir
	sc.EnvironmentBase = cfg.Environment.BaseName
	return sc, nil
}

func terrainParams(c config.TerrainConfig) scene.TerrainParams {
	return scene.TerrainParams{
		HeightIntensity:  c.HeightIntensity,
		DensityIntensity: c.DensityIntensity,
		Size:             c.Size,
		Seed:             c.Seed,
		Wireframe:        c.Wireframe,
	}
}

func lightFromConfig(c config.LightConfig) scene.Light {
	return scene.Light{
		StartPosition: vec3(c.StartPosition),
		Color:         vec3(c.Color),
		Intensity:     c.Intensity,
		RotationSpeed: c.RotationSpeed,
		ManualOnly:    c.ManualOnly,
	}
}

func cameraFromConfig(c config.CameraConfig) *camera.FlyCamera {
	cam := camera.NewFlyCamera()
	cam.Position = vec3(c.Position)
	cam.Speed = c.Speed
	cam.RotationSpeed = c.RotationSpeed
	cam.LookAt(math.Vec3{})
	return cam
}

// storeSettings copies the live panel state back into cfg for saving.
func storeSettings(cfg *config.Config, t scene.TerrainParams, tessellation int, l scene.Light, cam *camera.FlyCamera, envMultiplier float32) {
	cfg.Terrain.HeightIntensity = t.HeightIntensity
	cfg.Terrain.DensityIntensity = t.DensityIntensity
	cfg.Terrain.Size = t.Size
	cfg.Terrain.Seed = t.Seed
	cfg.Terrain.Wireframe = t.Wireframe
	cfg.Terrain.Tessellation = tessellation

	cfg.Light.Color = l.Color.Array()
	cfg.Light.Intensity = l.Intensity
	cfg.Light.ManualOnly = l.ManualOnly

	cfg.Camera.Speed = cam.Speed
	cfg.Camera.RotationSpeed = cam.RotationSpeed
	cfg.Camera.Position = cam.Position.Array()

	cfg.Environment.Multiplier = envMultiplier
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
