package main

import (
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
	"github.com/Faultbox/heightfield-labs/internal/engine/texture"
	"github.com/Faultbox/heightfield-labs/internal/logger"
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

// Attribute slots of texlab.vert.
const (
	positionSlot = 0
	texCoordSlot = 2
)

// QuadData is the geometry of one textured quad.
type QuadData struct {
	Positions []float32 // 4 x vec3
	TexCoords []float32 // 4 x vec2
	Indices   []uint32  // two triangles
	Fallback  math.Vec3 // colour when the texture is missing
}

var quadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

// roadQuad is a long strip receding from the camera with v repeating 15
// times along it, which makes minification artefacts obvious.
func roadQuad() QuadData {
	return QuadData{
		Positions: []float32{
			-10, -5, -10,
			-10, 100, -330,
			10, 100, -330,
			10, -5, -10,
		},
		TexCoords: []float32{
			0, 0,
			0, 15,
			1, 15,
			1, 0,
		},
		Indices:  quadIndices,
		Fallback: math.Vec3{X: 0.3, Y: 0.3, Z: 0.3},
	}
}

// explosionQuad is a small camera-facing quad drawn with alpha blending.
func explosionQuad() QuadData {
	return QuadData{
		Positions: []float32{
			-1, -1, -10,
			-1, 1, -10,
			1, 1, -10,
			1, -1, -10,
		},
		TexCoords: []float32{
			0, 0,
			0, 1,
			1, 1,
			1, 0,
		},
		Indices:  quadIndices,
		Fallback: math.Vec3{X: 1, Y: 0.5, Z: 0},
	}
}

// Quad is a QuadData uploaded to the GPU with its own texture.
type Quad struct {
	vao       gpu.VertexArray
	positions gpu.Buffer
	texCoords gpu.Buffer
	indices   gpu.Buffer
	count     int32

	Texture  gpu.Texture // zero when loading failed
	Fallback math.Vec3
	Blend    bool
}

// NewQuad uploads q and loads its texture from path. A texture that fails to
// load is logged and the quad draws in its fallback colour.
func NewQuad(dev gpu.Device, q QuadData, path string, s gpu.Sampling) *Quad {
	quad := &Quad{count: int32(len(q.Indices)), Fallback: q.Fallback}

	quad.vao = dev.CreateVertexArray()
	dev.BindVertexArray(quad.vao)

	quad.positions = dev.CreateBuffer()
	dev.BufferFloat32(gpu.ArrayBuffer, quad.positions, q.Positions)
	dev.VertexAttrib(positionSlot, 3)

	quad.texCoords = dev.CreateBuffer()
	dev.BufferFloat32(gpu.ArrayBuffer, quad.texCoords, q.TexCoords)
	dev.VertexAttrib(texCoordSlot, 2)

	quad.indices = dev.CreateBuffer()
	dev.BufferUint32(gpu.ElementArrayBuffer, quad.indices, q.Indices)
	dev.BindVertexArray(0)

	img, err := texture.LoadRGBA(path, true)
	if err != nil {
		logger.Warn("texture not loaded, drawing untextured", zap.String("path", path), zap.Error(err))
		return quad
	}
	quad.Texture = dev.CreateTexture()
	dev.UploadTexture(quad.Texture, img, s)
	return quad
}

// Draw binds the texture to unit 0 and draws both triangles.
func (q *Quad) Draw(dev gpu.Device) {
	dev.SetBlending(q.Blend)
	dev.BindTexture(0, q.Texture)
	dev.BindVertexArray(q.vao)
	dev.DrawElements(gpu.Triangles, q.count)
	dev.BindVertexArray(0)
}

// Destroy releases the GPU objects.
func (q *Quad) Destroy(dev gpu.Device) {
	if q.Texture.Valid() {
		dev.DeleteTexture(q.Texture)
		q.Texture = 0
	}
	for _, b := range []*gpu.Buffer{&q.positions, &q.texCoords, &q.indices} {
		if b.Valid() {
			dev.DeleteBuffer(*b)
			*b = 0
		}
	}
	if q.vao.Valid() {
		dev.DeleteVertexArray(q.vao)
		q.vao = 0
	}
}
