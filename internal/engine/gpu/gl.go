package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GL is the OpenGL 4.1 core Device. gl.Init must have been called on the
// current context before any method is used.
type GL struct{}

// NewGL returns the OpenGL device.
func NewGL() *GL {
	return &GL{}
}

var _ Device = (*GL)(nil)

func (*GL) CreateBuffer() Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	return Buffer(id)
}

func (*GL) DeleteBuffer(b Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (*GL) BindBuffer(target BufferTarget, b Buffer) {
	gl.BindBuffer(glTarget(target), uint32(b))
}

func (*GL) BufferFloat32(target BufferTarget, b Buffer, data []float32) {
	gl.BindBuffer(glTarget(target), uint32(b))
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(glTarget(target), len(data)*4, ptr, gl.STATIC_DRAW)
}

func (*GL) BufferUint32(target BufferTarget, b Buffer, data []uint32) {
	gl.BindBuffer(glTarget(target), uint32(b))
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(glTarget(target), len(data)*4, ptr, gl.STATIC_DRAW)
}

func (*GL) CreateVertexArray() VertexArray {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return VertexArray(id)
}

func (*GL) DeleteVertexArray(v VertexArray) {
	id := uint32(v)
	gl.DeleteVertexArrays(1, &id)
}

func (*GL) BindVertexArray(v VertexArray) {
	gl.BindVertexArray(uint32(v))
}

func (*GL) VertexAttrib(slot uint32, components int32) {
	gl.VertexAttribPointerWithOffset(slot, components, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(slot)
}

func (*GL) SetPrimitiveRestart(enabled bool, index uint32) {
	if !enabled {
		gl.Disable(gl.PRIMITIVE_RESTART)
		return
	}
	gl.Enable(gl.PRIMITIVE_RESTART)
	gl.PrimitiveRestartIndex(index)
}

func (*GL) SetPolygonMode(mode PolygonMode) {
	if mode == Line {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

func (*GL) SetBlending(enabled bool) {
	if !enabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (*GL) DrawElements(p Primitive, count int32) {
	gl.DrawElementsWithOffset(glPrimitive(p), count, gl.UNSIGNED_INT, 0)
}

func (*GL) DrawArrays(p Primitive, first, count int32) {
	gl.DrawArrays(glPrimitive(p), first, count)
}

func (*GL) CreateTexture() Texture {
	var id uint32
	gl.GenTextures(1, &id)
	return Texture(id)
}

func (*GL) DeleteTexture(t Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (d *GL) UploadTexture(t Texture, img Image, s Sampling) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
	texImage(0, img)

	if s.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	d.applySampling(s)
}

func (*GL) UploadTextureLevel(t Texture, level int32, img Image) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
	texImage(level, img)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, level)
}

func texImage(level int32, img Image) {
	internal, format, xtype := glPixelFormat(img.Format)
	var ptr unsafe.Pointer
	switch {
	case img.Format.IsFloat() && len(img.Floats) > 0:
		ptr = unsafe.Pointer(&img.Floats[0])
	case !img.Format.IsFloat() && len(img.Bytes) > 0:
		ptr = unsafe.Pointer(&img.Bytes[0])
	}

	// RGB rows are not 4-byte aligned for odd widths.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, level, internal, int32(img.Width), int32(img.Height), 0, format, xtype, ptr)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
}

func (d *GL) SetSampling(t Texture, s Sampling) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
	d.applySampling(s)
}

func (*GL) applySampling(s Sampling) {
	wrap := int32(gl.CLAMP_TO_EDGE)
	if s.Wrap == Repeat {
		wrap = gl.REPEAT
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(s.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(s.MagFilter))
	if s.Anisotropy > 0 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, s.Anisotropy)
	}
}

func (*GL) BindTexture(unit uint32, t Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func glTarget(t BufferTarget) uint32 {
	if t == ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glPrimitive(p Primitive) uint32 {
	switch p {
	case TriangleStrip:
		return gl.TRIANGLE_STRIP
	case Lines:
		return gl.LINES
	case Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func glFilter(f Filter) int32 {
	switch f {
	case Nearest:
		return gl.NEAREST
	case NearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case NearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case LinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}

// glPixelFormat returns internal format, pixel format and component type.
func glPixelFormat(f PixelFormat) (int32, uint32, uint32) {
	switch f {
	case R32F:
		return gl.R32F, gl.RED, gl.FLOAT
	case RGB8:
		return gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE
	case RGB32F:
		return gl.RGB32F, gl.RGB, gl.FLOAT
	default:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	}
}
