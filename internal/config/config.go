// Package config handles configuration loading and management for the
// terrain viewer and the texture lab.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/heightfield-labs/internal/engine/heightfield"
)

// Config holds all settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Terrain     TerrainConfig     `yaml:"terrain"`
	Camera      CameraConfig      `yaml:"camera"`
	Light       LightConfig       `yaml:"light"`
	Shadow      ShadowConfig      `yaml:"shadow"`
	Environment EnvironmentConfig `yaml:"environment"`
	Texlab      TexlabConfig      `yaml:"texlab"`
	Shaders     ShadersConfig     `yaml:"shaders"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TerrainConfig holds the heightfield mesh and shading parameters.
type TerrainConfig struct {
	Tessellation     int     `yaml:"tessellation"`
	Wireframe        bool    `yaml:"wireframe"`
	HeightIntensity  float32 `yaml:"height_intensity"`
	DensityIntensity float32 `yaml:"density_intensity"`
	Size             float32 `yaml:"size"`
	Seed             float32 `yaml:"seed"`
	HeightField      string  `yaml:"heightfield"` // empty = procedural noise
	Diffuse          string  `yaml:"diffuse"`
}

// CameraConfig holds free-fly camera settings.
type CameraConfig struct {
	Speed         float32    `yaml:"speed"`
	RotationSpeed float32    `yaml:"rotation_speed"`
	Position      [3]float32 `yaml:"position"`
}

// LightConfig holds the rotating spot light.
type LightConfig struct {
	Color         [3]float32 `yaml:"color"`
	Intensity     float32    `yaml:"intensity"`
	StartPosition [3]float32 `yaml:"start_position"`
	RotationSpeed float32    `yaml:"rotation_speed"` // radians per second
	ManualOnly    bool       `yaml:"manual_only"`
}

// ShadowConfig holds shadow map settings.
type ShadowConfig struct {
	Resolution    int     `yaml:"resolution"`
	ClampMode     string  `yaml:"clamp_mode"` // edge, border, border-shadowed
	PolygonOffset bool    `yaml:"polygon_offset"`
	OffsetFactor  float32 `yaml:"offset_factor"`
	OffsetUnits   float32 `yaml:"offset_units"`
	HardwarePCF   bool    `yaml:"hardware_pcf"`
}

// EnvironmentConfig locates the HDR environment maps: <dir>/<base>.hdr,
// <base>_irradiance.hdr and <base>_dl_0..7.hdr.
type EnvironmentConfig struct {
	Dir        string  `yaml:"dir"`
	BaseName   string  `yaml:"base_name"`
	Multiplier float32 `yaml:"multiplier"`
}

// TexlabConfig holds the texture lab assets.
type TexlabConfig struct {
	Road       string `yaml:"road"`
	Explosion  string `yaml:"explosion"`
	Anisotropy int    `yaml:"anisotropy"`
}

// ShadersConfig selects where GLSL is read from. An empty dir uses the
// embedded shaders; reloading then has nothing new to pick up.
type ShadersConfig struct {
	Dir string `yaml:"dir"`
}

// ScreenshotsConfig holds the screenshot output directory.
type ScreenshotsConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
		},
		Terrain: TerrainConfig{
			Tessellation:     256,
			HeightIntensity:  50,
			DensityIntensity: 300,
			Size:             100,
			Seed:             100,
		},
		Camera: CameraConfig{
			Speed:         30,
			RotationSpeed: 15,
			Position:      [3]float32{-70, 50, 70},
		},
		Light: LightConfig{
			Color:         [3]float32{1, 1, 1},
			Intensity:     10000,
			StartPosition: [3]float32{40, 40, 0},
			RotationSpeed: 1,
		},
		Shadow: ShadowConfig{
			Resolution:    1024,
			ClampMode:     "edge",
			PolygonOffset: true,
			OffsetFactor:  1,
			OffsetUnits:   1,
		},
		Environment: EnvironmentConfig{
			Dir:        "scenes/envmaps",
			BaseName:   "001",
			Multiplier: 1.5,
		},
		Texlab: TexlabConfig{
			Road:       "scenes/asphalt.jpg",
			Explosion:  "scenes/explosion.png",
			Anisotropy: 1,
		},
		Screenshots: ScreenshotsConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// MaxTessellation is the mesh generator's upper bound.
const MaxTessellation = heightfield.MaxTessellation

// Validate reports settings the applications cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Terrain.Tessellation < 1 || c.Terrain.Tessellation > MaxTessellation {
		errs = append(errs, fmt.Errorf("terrain.tessellation %d must be in 1..%d", c.Terrain.Tessellation, MaxTessellation))
	}
	if c.Terrain.Size <= 0 {
		errs = append(errs, fmt.Errorf("terrain.size %v must be positive", c.Terrain.Size))
	}
	if c.Shadow.Resolution <= 0 {
		errs = append(errs, fmt.Errorf("shadow.resolution %d must be positive", c.Shadow.Resolution))
	}
	switch c.Shadow.ClampMode {
	case "", "edge", "border", "border-lit", "border-shadowed":
	default:
		errs = append(errs, fmt.Errorf("shadow.clamp_mode %q is not edge, border or border-shadowed", c.Shadow.ClampMode))
	}
	if c.Texlab.Anisotropy < 1 || c.Texlab.Anisotropy > 16 {
		errs = append(errs, fmt.Errorf("texlab.anisotropy %d must be in 1..16", c.Texlab.Anisotropy))
	}
	return errors.Join(errs...)
}
