package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
)

// Mesh is a single-attribute helper mesh (fullscreen quad, light marker).
// Positions live in slot 0.
type Mesh struct {
	vao       gpu.VertexArray
	vbo       gpu.Buffer
	ebo       gpu.Buffer
	count     int32
	primitive gpu.Primitive
}

// NewMesh uploads positions with the given tuple size. A nil indices slice
// draws the vertices in order.
func NewMesh(dev gpu.Device, positions []float32, components int32, indices []uint32, p gpu.Primitive) *Mesh {
	m := &Mesh{primitive: p}
	m.vao = dev.CreateVertexArray()
	dev.BindVertexArray(m.vao)

	m.vbo = dev.CreateBuffer()
	dev.BufferFloat32(gpu.ArrayBuffer, m.vbo, positions)
	dev.VertexAttrib(0, components)

	if indices != nil {
		m.ebo = dev.CreateBuffer()
		dev.BufferUint32(gpu.ElementArrayBuffer, m.ebo, indices)
		m.count = int32(len(indices))
	} else {
		m.count = int32(len(positions)) / components
	}
	dev.BindVertexArray(0)
	return m
}

// Draw issues one draw call for the whole mesh.
func (m *Mesh) Draw(dev gpu.Device) {
	dev.BindVertexArray(m.vao)
	if m.ebo.Valid() {
		dev.DrawElements(m.primitive, m.count)
	} else {
		dev.DrawArrays(m.primitive, 0, m.count)
	}
	dev.BindVertexArray(0)
}

// Destroy releases the GPU objects.
func (m *Mesh) Destroy(dev gpu.Device) {
	if m.ebo.Valid() {
		dev.DeleteBuffer(m.ebo)
		m.ebo = 0
	}
	if m.vbo.Valid() {
		dev.DeleteBuffer(m.vbo)
		m.vbo = 0
	}
	if m.vao.Valid() {
		dev.DeleteVertexArray(m.vao)
		m.vao = 0
	}
}

// FullscreenQuad returns the NDC corners of a two-triangle strip.
func FullscreenQuad() []float32 {
	return []float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, 1,
	}
}

// Sphere returns a unit UV sphere with counter-clockwise outward triangles.
func Sphere(stacks, slices int) (positions []float32, indices []uint32) {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	positions = make([]float32, 0, (stacks+1)*(slices+1)*3)
	for i := 0; i <= stacks; i++ {
		phi := math32.Pi * float32(i) / float32(stacks)
		sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)
			positions = append(positions, sinPhi*cosTheta, cosPhi, sinPhi*sinTheta)
		}
	}

	indices = make([]uint32, 0, stacks*slices*6)
	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			c := a + 1
			d := b + 1
			indices = append(indices, a, c, b, c, d, b)
		}
	}
	return positions, indices
}
