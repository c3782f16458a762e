// Package gpu defines the explicit render context that GPU-facing code is
// handed, instead of reaching for ambient OpenGL state.
//
// Handles are distinct uint32 types. The zero handle is "unset"; OpenGL never
// hands out object name 0 for buffers, vertex arrays or textures, so the zero
// value cannot collide with a live object.
package gpu

// Buffer is a GPU buffer object handle.
type Buffer uint32

// Valid reports whether the handle refers to an allocated buffer.
func (b Buffer) Valid() bool { return b != 0 }

// VertexArray is a vertex array object handle.
type VertexArray uint32

// Valid reports whether the handle refers to an allocated vertex array.
func (v VertexArray) Valid() bool { return v != 0 }

// Texture is a texture object handle.
type Texture uint32

// Valid reports whether the handle refers to an allocated texture.
func (t Texture) Valid() bool { return t != 0 }

// BufferTarget selects the binding point of a buffer.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Primitive is the topology used by a draw call.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	Lines
	Points
)

// PolygonMode is the rasterization mode for filled primitives.
type PolygonMode int

const (
	Fill PolygonMode = iota
	Line
)

// Device is the render context. Every method must be called from the
// goroutine that owns the graphics context.
type Device interface {
	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target BufferTarget, b Buffer)
	// BufferFloat32 binds b to target and replaces its contents.
	BufferFloat32(target BufferTarget, b Buffer, data []float32)
	// BufferUint32 binds b to target and replaces its contents.
	BufferUint32(target BufferTarget, b Buffer, data []uint32)

	CreateVertexArray() VertexArray
	DeleteVertexArray(v VertexArray)
	BindVertexArray(v VertexArray)
	// VertexAttrib points slot at the currently bound array buffer as tightly
	// packed float32 tuples of the given size and enables the slot.
	VertexAttrib(slot uint32, components int32)

	SetPrimitiveRestart(enabled bool, index uint32)
	SetPolygonMode(mode PolygonMode)
	// SetBlending toggles source-alpha blending.
	SetBlending(enabled bool)

	// DrawElements draws count uint32 indices from the bound element buffer.
	DrawElements(p Primitive, count int32)
	DrawArrays(p Primitive, first, count int32)

	CreateTexture() Texture
	DeleteTexture(t Texture)
	UploadTexture(t Texture, img Image, s Sampling)
	// UploadTextureLevel replaces one mip level and caps the chain at it, so
	// levels are uploaded in increasing order.
	UploadTextureLevel(t Texture, level int32, img Image)
	SetSampling(t Texture, s Sampling)
	BindTexture(unit uint32, t Texture)
}
