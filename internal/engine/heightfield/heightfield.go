package heightfield

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
	"github.com/Faultbox/heightfield-labs/internal/engine/texture"
	"github.com/Faultbox/heightfield-labs/internal/logger"
)

// State is the lifecycle state of a HeightField.
type State int

const (
	// Uninitialized means no mesh has been generated; submission is a no-op.
	Uninitialized State = iota
	// Ready means the GPU holds a complete mesh that can be drawn.
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "uninitialized"
}

// Sampling used for the two terrain textures.
var (
	heightSampling = gpu.Sampling{
		MinFilter: gpu.Linear,
		MagFilter: gpu.Linear,
		Wrap:      gpu.ClampToEdge,
	}
	diffuseSampling = gpu.Sampling{
		MinFilter: gpu.LinearMipmapLinear,
		MagFilter: gpu.Linear,
		Wrap:      gpu.ClampToEdge,
		Mipmaps:   true,
	}
)

// HeightField owns a tessellated grid on the GPU together with its height and
// diffuse textures. It is not safe for concurrent use; every method must run
// on the goroutine owning the graphics context.
type HeightField struct {
	state        State
	tessellation int
	vertexCount  int
	indexCount   int32

	vao       gpu.VertexArray
	positions gpu.Buffer
	normals   gpu.Buffer
	texCoords gpu.Buffer
	indices   gpu.Buffer

	heightTex   gpu.Texture
	diffuseTex  gpu.Texture
	heightmap   *Heightmap
	heightPath  string
	diffusePath string
	normalScale float32
}

// New returns an uninitialized heightfield.
func New() *HeightField {
	return &HeightField{normalScale: 1}
}

// State returns the current lifecycle state.
func (h *HeightField) State() State { return h.state }

// Ready reports whether a mesh is available for submission.
func (h *HeightField) Ready() bool { return h.state == Ready }

// Tessellation returns the resolution of the current mesh, 0 if none.
func (h *HeightField) Tessellation() int { return h.tessellation }

// IndexCount returns the number of indices submitted per draw, 0 if none.
func (h *HeightField) IndexCount() int { return int(h.indexCount) }

// VertexCount returns the number of vertices in the current mesh, 0 if none.
func (h *HeightField) VertexCount() int { return h.vertexCount }

// HeightFieldPath returns the path of the loaded height texture.
func (h *HeightField) HeightFieldPath() string { return h.heightPath }

// DiffuseTexturePath returns the path of the loaded diffuse texture.
func (h *HeightField) DiffuseTexturePath() string { return h.diffusePath }

// Heightmap returns the CPU copy of the height texture, nil if none is loaded.
func (h *HeightField) Heightmap() *Heightmap { return h.heightmap }

// NormalScale returns the model-space height of a heightmap value of 1 used
// for normals.
func (h *HeightField) NormalScale() float32 { return h.normalScale }

// GenerateMesh builds a grid with tessellation t and replaces the mesh on the
// GPU. An invalid t is rejected before anything is touched, so the current
// mesh stays drawable.
func (h *HeightField) GenerateMesh(dev gpu.Device, t int) error {
	g, err := BuildGrid(t)
	if err != nil {
		return fmt.Errorf("generate mesh: %w", err)
	}
	if h.heightmap != nil {
		ComputeNormals(g, h.heightmap, h.normalScale)
	}

	h.releaseMesh(dev)

	h.vao = dev.CreateVertexArray()
	dev.BindVertexArray(h.vao)

	h.positions = dev.CreateBuffer()
	dev.BufferFloat32(gpu.ArrayBuffer, h.positions, g.Positions)
	dev.VertexAttrib(PositionSlot, 3)

	if g.Normals != nil {
		h.normals = dev.CreateBuffer()
		dev.BufferFloat32(gpu.ArrayBuffer, h.normals, g.Normals)
		dev.VertexAttrib(NormalSlot, 3)
	}

	h.texCoords = dev.CreateBuffer()
	dev.BufferFloat32(gpu.ArrayBuffer, h.texCoords, g.TexCoords)
	dev.VertexAttrib(TexCoordSlot, 2)

	h.indices = dev.CreateBuffer()
	dev.BufferUint32(gpu.ElementArrayBuffer, h.indices, g.Indices)

	dev.BindVertexArray(0)

	h.tessellation = t
	h.vertexCount = g.VertexCount()
	h.indexCount = int32(g.IndexCount())
	h.state = Ready

	logger.Debug("heightfield mesh generated",
		zap.Int("tessellation", t),
		zap.Int("vertices", h.vertexCount),
		zap.Int32("indices", h.indexCount),
		zap.Bool("normals", g.Normals != nil))
	return nil
}

// SetNormalScale changes the height scale used for normals and re-uploads
// them when a mesh and heightmap are present.
func (h *HeightField) SetNormalScale(dev gpu.Device, scale float32) {
	if scale == h.normalScale {
		return
	}
	h.normalScale = scale
	h.refreshNormals(dev)
}

func (h *HeightField) refreshNormals(dev gpu.Device) {
	if h.state != Ready || h.heightmap == nil {
		return
	}
	normals := gridNormals(h.tessellation, h.heightmap, h.normalScale)

	dev.BindVertexArray(h.vao)
	if !h.normals.Valid() {
		h.normals = dev.CreateBuffer()
		dev.BufferFloat32(gpu.ArrayBuffer, h.normals, normals)
		dev.VertexAttrib(NormalSlot, 3)
	} else {
		dev.BufferFloat32(gpu.ArrayBuffer, h.normals, normals)
	}
	dev.BindVertexArray(0)
}

// SubmitTriangles draws the mesh as restart-separated triangle strips. With
// wireframe set the polygon mode is switched to lines for this draw only.
// Before the first GenerateMesh it logs a warning, issues no GPU call and
// returns false.
func (h *HeightField) SubmitTriangles(dev gpu.Device, wireframe bool) bool {
	if h.state != Ready {
		logger.Warn("heightfield draw requested before mesh generation",
			zap.Stringer("state", h.state))
		return false
	}

	dev.SetPrimitiveRestart(true, RestartIndex)
	dev.BindVertexArray(h.vao)
	dev.BindBuffer(gpu.ElementArrayBuffer, h.indices)

	if wireframe {
		dev.SetPolygonMode(gpu.Line)
		defer dev.SetPolygonMode(gpu.Fill)
	}

	dev.DrawElements(gpu.TriangleStrip, h.indexCount)
	return true
}

// LoadHeightField loads a single-channel height texture from path. On failure
// a warning is logged, the error returned and any previously loaded height
// texture is kept.
func (h *HeightField) LoadHeightField(dev gpu.Device, path string) error {
	img, err := texture.LoadGray(path, true)
	if err != nil {
		logger.Warn("failed to load height field", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("load height field: %w", err)
	}
	hm := NewHeightmap(img)
	if hm == nil {
		err := fmt.Errorf("load height field %s: empty image", path)
		logger.Warn("failed to load height field", zap.String("path", path), zap.Error(err))
		return err
	}

	if h.heightTex.Valid() {
		dev.DeleteTexture(h.heightTex)
	}
	h.heightTex = dev.CreateTexture()
	dev.UploadTexture(h.heightTex, img, heightSampling)
	h.heightmap = hm
	h.heightPath = path

	logger.Info("height field loaded",
		zap.String("path", path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height))

	h.refreshNormals(dev)
	return nil
}

// LoadDiffuseTexture loads the terrain colour texture from path with a full
// mip chain. Failure is handled like LoadHeightField.
func (h *HeightField) LoadDiffuseTexture(dev gpu.Device, path string) error {
	img, err := texture.LoadRGB(path, true)
	if err != nil {
		logger.Warn("failed to load diffuse texture", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("load diffuse texture: %w", err)
	}

	if h.diffuseTex.Valid() {
		dev.DeleteTexture(h.diffuseTex)
	}
	h.diffuseTex = dev.CreateTexture()
	dev.UploadTexture(h.diffuseTex, img, diffuseSampling)
	h.diffusePath = path

	logger.Info("diffuse texture loaded",
		zap.String("path", path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height))
	return nil
}

// BindTextures binds the loaded textures to the given units and reports which
// ones were bound.
func (h *HeightField) BindTextures(dev gpu.Device, heightUnit, diffuseUnit uint32) (height, diffuse bool) {
	if h.heightTex.Valid() {
		dev.BindTexture(heightUnit, h.heightTex)
		height = true
	}
	if h.diffuseTex.Valid() {
		dev.BindTexture(diffuseUnit, h.diffuseTex)
		diffuse = true
	}
	return height, diffuse
}

// Destroy releases every GPU object and returns to Uninitialized.
func (h *HeightField) Destroy(dev gpu.Device) {
	h.releaseMesh(dev)
	if h.heightTex.Valid() {
		dev.DeleteTexture(h.heightTex)
		h.heightTex = 0
	}
	if h.diffuseTex.Valid() {
		dev.DeleteTexture(h.diffuseTex)
		h.diffuseTex = 0
	}
	h.heightmap = nil
	h.heightPath = ""
	h.diffusePath = ""
}

func (h *HeightField) releaseMesh(dev gpu.Device) {
	for _, b := range []*gpu.Buffer{&h.positions, &h.normals, &h.texCoords, &h.indices} {
		if b.Valid() {
			dev.DeleteBuffer(*b)
			*b = 0
		}
	}
	if h.vao.Valid() {
		dev.DeleteVertexArray(h.vao)
		h.vao = 0
	}
	h.state = Uninitialized
	h.tessellation = 0
	h.vertexCount = 0
	h.indexCount = 0
}
