// Package scene renders the heightfield terrain: shadow pass, environment
// background, lit terrain and the light marker, all into an off-screen
// framebuffer the GUI displays.
package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/internal/engine/camera"
	"github.com/Faultbox/heightfield-labs/internal/engine/framebuffer"
	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
	"github.com/Faultbox/heightfield-labs/internal/engine/heightfield"
	"github.com/Faultbox/heightfield-labs/internal/engine/scene/shaders"
	"github.com/Faultbox/heightfield-labs/internal/engine/shader"
	"github.com/Faultbox/heightfield-labs/internal/engine/shadow"
	"github.com/Faultbox/heightfield-labs/internal/logger"
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

// markerRadius is the world-space size of the light marker sphere.
const markerRadius = 1.5

// ErrNoShadowMap is returned by shadow settings when shadows are disabled.
var ErrNoShadowMap = errors.New("shadow map unavailable")

// Config contains scene configuration options.
type Config struct {
	Width  int32
	Height int32

	Tessellation int
	// ShaderDir holds name.vert/name.frag files for hot reload. Empty means
	// the embedded sources.
	ShaderDir string

	ShadowResolution int32
	ShadowClamp      shadow.ClampMode
	HardwarePCF      bool

	EnvironmentDir  string
	EnvironmentBase string

	ClearColor [4]float32
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		Tessellation:     256,
		ShadowResolution: shadow.DefaultResolution,
		EnvironmentDir:   "scenes/envmaps",
		EnvironmentBase:  "001",
		ClearColor:       [4]float32{0.2, 0.2, 0.8, 1},
	}
}

// TerrainScene owns every GPU resource of the terrain viewer.
type TerrainScene struct {
	config Config
	dev    gpu.Device

	framebuffer *framebuffer.Framebuffer
	shadowMap   *shadow.Map

	background *shader.Program
	terrain    *shader.Program
	simple     *shader.Program

	heightField *heightfield.HeightField
	environment *Environment
	quad        *Mesh
	marker      *Mesh

	Terrain TerrainParams
	Light   Light

	EnvironmentMultiplier float32
	PolygonOffset         bool
	OffsetFactor          float32
	OffsetUnits           float32
	ShowLight             bool
}

// New creates the scene, compiles its programs and generates the mesh.
func New(dev gpu.Device, cfg Config) (*TerrainScene, error) {
	s := &TerrainScene{
		config:                cfg,
		dev:                   dev,
		heightField:           heightfield.New(),
		Terrain:               DefaultTerrain(),
		Light:                 DefaultLight(),
		EnvironmentMultiplier: 1.5,
		PolygonOffset:         true,
		OffsetFactor:          1,
		OffsetUnits:           1,
		ShowLight:             true,
	}

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	s.shadowMap, err = shadow.NewMap(cfg.ShadowResolution, cfg.ShadowClamp)
	if err != nil {
		// The scene still renders, only unshadowed.
		logger.Warn("shadow map unavailable", zap.Error(err))
		s.shadowMap = nil
	} else {
		s.shadowMap.SetHardwarePCF(cfg.HardwarePCF)
	}

	if err := s.loadPrograms(); err != nil {
		s.Destroy()
		return nil, err
	}

	if err := s.heightField.GenerateMesh(dev, cfg.Tessellation); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("generating terrain mesh: %w", err)
	}

	s.environment = LoadEnvironment(dev, EnvironmentPaths(cfg.EnvironmentDir, cfg.EnvironmentBase))
	s.quad = NewMesh(dev, FullscreenQuad(), 2, nil, gpu.TriangleStrip)
	positions, indices := Sphere(16, 24)
	s.marker = NewMesh(dev, positions, 3, indices, gpu.Triangles)

	logger.Info("terrain scene ready",
		zap.Int("tessellation", cfg.Tessellation),
		zap.Int("environment_reflection_levels", s.environment.ReflectionLevels),
		zap.Bool("shadows", s.shadowMap != nil))
	return s, nil
}

func (s *TerrainScene) shaderFS() fs.FS {
	if s.config.ShaderDir != "" {
		return os.DirFS(s.config.ShaderDir)
	}
	return shaders.FS
}

func (s *TerrainScene) loadPrograms() error {
	fsys := s.shaderFS()
	var err error
	if s.background, err = shader.LoadProgram(fsys, shaders.Background); err != nil {
		return fmt.Errorf("background shader: %w", err)
	}
	if s.terrain, err = shader.LoadProgram(fsys, shaders.Heightfield); err != nil {
		return fmt.Errorf("heightfield shader: %w", err)
	}
	if s.simple, err = shader.LoadProgram(fsys, shaders.Simple); err != nil {
		return fmt.Errorf("simple shader: %w", err)
	}
	s.bindSamplers()
	return nil
}

// bindSamplers points sampler uniforms at their fixed texture units.
func (s *TerrainScene) bindSamplers() {
	s.background.Use()
	s.background.SetInt("environmentMap", EnvironmentUnit)

	s.terrain.Use()
	s.terrain.SetInt("heightMap", HeightUnit)
	s.terrain.SetInt("diffuseMap", DiffuseUnit)
	s.terrain.SetInt("irradianceMap", IrradianceUnit)
	s.terrain.SetInt("reflectionMap", ReflectionUnit)
	s.terrain.SetInt("shadowMapTex", ShadowUnit)
	gl.UseProgram(0)
}

// ReloadShaders recompiles every program. Programs that fail keep their
// previous version; the result reports whether all succeeded.
func (s *TerrainScene) ReloadShaders() bool {
	fsys := s.shaderFS()
	ok := true
	for _, p := range []*shader.Program{s.background, s.terrain, s.simple} {
		if !p.Reload(fsys) {
			ok = false
		}
	}
	s.bindSamplers()
	return ok
}

// HeightField returns the terrain mesh.
func (s *TerrainScene) HeightField() *heightfield.HeightField {
	return s.heightField
}

// ShadowMap returns the shadow map, or nil when it could not be created.
func (s *TerrainScene) ShadowMap() *shadow.Map {
	return s.shadowMap
}

// SetTessellation regenerates the mesh. On error the previous mesh stays.
func (s *TerrainScene) SetTessellation(t int) error {
	return s.heightField.GenerateMesh(s.dev, t)
}

// LoadHeightField replaces the height texture.
func (s *TerrainScene) LoadHeightField(path string) error {
	return s.heightField.LoadHeightField(s.dev, path)
}

// LoadDiffuseTexture replaces the diffuse texture.
func (s *TerrainScene) LoadDiffuseTexture(path string) error {
	return s.heightField.LoadDiffuseTexture(s.dev, path)
}

// Render renders the scene from cam and returns the colour texture.
func (s *TerrainScene) Render(cam *camera.FlyCamera, dt float32) uint32 {
	return s.RenderWithView(cam.ViewMatrix(), cam.ProjectionMatrix(s.framebuffer.Aspect()), cam.Position, dt)
}

// RenderWithView renders with pre-computed camera matrices.
func (s *TerrainScene) RenderWithView(view, proj math.Mat4, cameraPos math.Vec3, dt float32) uint32 {
	s.Light.Update(dt)
	lightView := s.Light.View()
	lightProj := shadow.SpotLightProjection()

	s.heightField.SetNormalScale(s.dev, s.Terrain.NormalScale())
	s.resetState()
	s.environment.Bind(s.dev)

	if s.shadowMap != nil {
		s.renderShadowPass(lightView, lightProj)
	}

	s.framebuffer.Bind()
	s.framebuffer.Clear(s.config.ClearColor)

	s.drawBackground(view, proj, cameraPos)
	s.drawTerrain(view, proj, lightView, lightProj, s.Terrain.Wireframe)
	if s.ShowLight {
		s.drawLight(view, proj)
	}

	s.framebuffer.Unbind()
	return s.framebuffer.ColorTexture()
}

// resetState restores the raster state the GUI pass may have changed.
func (s *TerrainScene) resetState() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.SCISSOR_TEST)
	s.dev.SetBlending(false)
}

func (s *TerrainScene) renderShadowPass(lightView, lightProj math.Mat4) {
	// The depth texture must not be sampled while it is the render target.
	s.dev.BindTexture(ShadowUnit, 0)

	var factor, units float32
	if s.PolygonOffset {
		factor, units = s.OffsetFactor, s.OffsetUnits
	}
	s.shadowMap.Bind(factor, units)
	s.drawTerrain(lightView, lightProj, lightView, lightProj, false)
	s.shadowMap.Unbind()

	s.shadowMap.BindTexture(ShadowUnit)
}

func (s *TerrainScene) drawBackground(view, proj math.Mat4, cameraPos math.Vec3) {
	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	s.background.Use()
	s.background.SetFloat("environment_multiplier", s.EnvironmentMultiplier)
	s.background.SetMat4("inv_PV", proj.Mul(view).Inverse())
	s.background.SetVec3("camera_pos", cameraPos)
	s.quad.Draw(s.dev)
}

func (s *TerrainScene) drawTerrain(view, proj, lightView, lightProj math.Mat4, wireframe bool) {
	p := s.terrain
	p.Use()
	for name, value := range TerrainUniforms(s.Terrain, view, proj, lightView, lightProj) {
		p.SetMat4(name, value)
	}
	lightPos := s.Light.Position()
	p.SetVec3("point_light_color", s.Light.Color)
	p.SetFloat("point_light_intensity_multiplier", s.Light.Intensity)
	p.SetVec3("viewSpaceLightPosition", view.TransformPoint(lightPos))
	p.SetVec3("viewSpaceLightDir", view.TransformDirection(lightPos.Negate()).Normalize())
	p.SetFloat("environment_multiplier", s.EnvironmentMultiplier)
	p.SetVec2("seed", s.Terrain.SeedUniform())
	p.SetFloat("densityIntensity", s.Terrain.ShaderDensity())
	p.SetFloat("heightIntensity", s.Terrain.ShaderHeight())

	hasHeight, hasDiffuse := s.heightField.BindTextures(s.dev, HeightUnit, DiffuseUnit)
	p.SetBool("hasHeightMap", hasHeight)
	p.SetBool("hasDiffuseMap", hasDiffuse)

	s.heightField.SubmitTriangles(s.dev, wireframe)
}

func (s *TerrainScene) drawLight(view, proj math.Mat4) {
	pos := s.Light.Position()
	model := math.Translate(pos.X, pos.Y, pos.Z).Mul(math.Scale(markerRadius, markerRadius, markerRadius))

	s.simple.Use()
	s.simple.SetMat4("modelViewProjectionMatrix", proj.Mul(view).Mul(model))
	s.simple.SetVec3("material_color", s.Light.Color)
	s.marker.Draw(s.dev)
}

// TerrainUniforms returns the matrix uniforms of the heightfield program.
func TerrainUniforms(t TerrainParams, view, proj, lightView, lightProj math.Mat4) map[string]math.Mat4 {
	model := t.ModelMatrix()
	modelView := view.Mul(model)
	return map[string]math.Mat4{
		"modelViewMatrix":           modelView,
		"normalMatrix":              modelView.NormalMatrix(),
		"viewInverse":               view.Inverse(),
		"modelViewProjectionMatrix": proj.Mul(modelView),
		"lightMatrix":               shadow.ShadowMatrix(lightProj, lightView, view),
	}
}

// Resize resizes the colour target.
func (s *TerrainScene) Resize(width, height int32) {
	s.framebuffer.Resize(width, height)
}

// Size returns the colour target size.
func (s *TerrainScene) Size() (width, height int32) {
	return s.framebuffer.Size()
}

// ColorTexture returns the last rendered frame.
func (s *TerrainScene) ColorTexture() uint32 {
	return s.framebuffer.ColorTexture()
}

// CaptureImage returns the last frame as bottom-up RGBA pixels.
func (s *TerrainScene) CaptureImage() ([]byte, int32, int32) {
	width, height := s.framebuffer.Size()
	return s.framebuffer.ReadPixels(), width, height
}

// Destroy releases every GPU resource.
func (s *TerrainScene) Destroy() {
	for _, p := range []*shader.Program{s.background, s.terrain, s.simple} {
		if p != nil {
			p.Delete()
		}
	}
	if s.heightField != nil {
		s.heightField.Destroy(s.dev)
	}
	if s.environment != nil {
		s.environment.Destroy(s.dev)
	}
	if s.quad != nil {
		s.quad.Destroy(s.dev)
	}
	if s.marker != nil {
		s.marker.Destroy(s.dev)
	}
	if s.shadowMap != nil {
		s.shadowMap.Destroy()
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}

// SetShadowResolution reallocates the shadow map.
func (s *TerrainScene) SetShadowResolution(resolution int32) error {
	if s.shadowMap == nil {
		return ErrNoShadowMap
	}
	s.shadowMap.Resize(resolution)
	return nil
}
