package scene

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
	"github.com/Faultbox/heightfield-labs/internal/engine/texture"
	"github.com/Faultbox/heightfield-labs/internal/logger"
)

// Texture units shared with the heightfield and background shaders.
const (
	HeightUnit      = 0
	DiffuseUnit     = 1
	EnvironmentUnit = 6
	IrradianceUnit  = 7
	ReflectionUnit  = 8
	ShadowUnit      = 10
)

// ReflectionLevels is the number of pre-filtered reflection maps, one per
// mip level from sharp to rough.
const ReflectionLevels = 8

var envSampling = gpu.Sampling{
	MinFilter: gpu.Linear,
	MagFilter: gpu.Linear,
	Wrap:      gpu.Repeat,
}

// EnvironmentFiles lists the equirectangular maps of one environment.
type EnvironmentFiles struct {
	Environment string
	Irradiance  string
	Reflection  []string
}

// EnvironmentPaths returns base.hdr, base_irradiance.hdr and
// base_dl_0.hdr through base_dl_7.hdr inside dir.
func EnvironmentPaths(dir, base string) EnvironmentFiles {
	files := EnvironmentFiles{
		Environment: filepath.Join(dir, base+".hdr"),
		Irradiance:  filepath.Join(dir, base+"_irradiance.hdr"),
		Reflection:  make([]string, ReflectionLevels),
	}
	for i := range files.Reflection {
		files.Reflection[i] = filepath.Join(dir, fmt.Sprintf("%s_dl_%d.hdr", base, i))
	}
	return files
}

// Environment holds the background, irradiance and reflection textures.
// A zero texture means the map could not be loaded.
type Environment struct {
	Map              gpu.Texture
	Irradiance       gpu.Texture
	Reflection       gpu.Texture
	ReflectionLevels int
}

// LoadEnvironment loads every map it can. Missing or broken files are logged
// and leave the corresponding texture unset.
func LoadEnvironment(dev gpu.Device, files EnvironmentFiles) *Environment {
	env := &Environment{
		Map:        loadHDR(dev, files.Environment),
		Irradiance: loadHDR(dev, files.Irradiance),
	}
	env.loadReflection(dev, files.Reflection)
	return env
}

func loadHDR(dev gpu.Device, path string) gpu.Texture {
	img, err := texture.LoadHDR(path)
	if err != nil {
		logger.Warn("environment map not loaded", zap.String("path", path), zap.Error(err))
		return 0
	}
	tex := dev.CreateTexture()
	dev.UploadTexture(tex, img, envSampling)
	return tex
}

// loadReflection uploads the pre-filtered maps as consecutive mip levels and
// stops at the first one that fails.
func (e *Environment) loadReflection(dev gpu.Device, paths []string) {
	for level, path := range paths {
		img, err := texture.LoadHDR(path)
		if err != nil {
			logger.Warn("reflection level not loaded", zap.String("path", path), zap.Int("level", level), zap.Error(err))
			break
		}
		if !e.Reflection.Valid() {
			e.Reflection = dev.CreateTexture()
		}
		dev.UploadTextureLevel(e.Reflection, int32(level), img)
		e.ReflectionLevels++
	}
	if !e.Reflection.Valid() {
		return
	}
	dev.SetSampling(e.Reflection, gpu.Sampling{
		MinFilter: gpu.LinearMipmapLinear,
		MagFilter: gpu.Linear,
		Wrap:      gpu.Repeat,
	})
}

// Bind binds the maps to their texture units.
func (e *Environment) Bind(dev gpu.Device) {
	dev.BindTexture(EnvironmentUnit, e.Map)
	dev.BindTexture(IrradianceUnit, e.Irradiance)
	dev.BindTexture(ReflectionUnit, e.Reflection)
}

// Destroy deletes the loaded textures.
func (e *Environment) Destroy(dev gpu.Device) {
	for _, t := range []*gpu.Texture{&e.Map, &e.Irradiance, &e.Reflection} {
		if t.Valid() {
			dev.DeleteTexture(*t)
			*t = 0
		}
	}
	e.ReflectionLevels = 0
}
