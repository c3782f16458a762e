package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
	"github.com/Faultbox/heightfield-labs/internal/engine/gpu/gputest"
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

func vertex(positions []float32, i uint32) math.Vec3 {
	return math.Vec3{X: positions[3*i], Y: positions[3*i+1], Z: positions[3*i+2]}
}

func TestSphere(t *testing.T) {
	positions, indices := Sphere(4, 6)

	require.Len(t, positions, 5*7*3)
	require.Len(t, indices, 4*6*6)

	for i := 0; i < len(positions)/3; i++ {
		assert.InDelta(t, 1, vertex(positions, uint32(i)).Length(), 1e-5)
	}

	// Every non-degenerate triangle faces away from the centre.
	for i := 0; i < len(indices); i += 3 {
		a := vertex(positions, indices[i])
		b := vertex(positions, indices[i+1])
		c := vertex(positions, indices[i+2])
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() < 1e-6 {
			continue
		}
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		assert.Greater(t, n.Dot(centroid), float32(0), "triangle %d faces inward", i/3)
	}
}

func TestSphereClampsResolution(t *testing.T) {
	positions, indices := Sphere(0, 0)
	assert.Len(t, positions, 3*4*3)
	assert.Len(t, indices, 2*3*6)
}

func TestFullscreenQuadCoversNDC(t *testing.T) {
	q := FullscreenQuad()
	require.Len(t, q, 8)
	for i, v := range q {
		assert.Equal(t, float32(1), math32.Abs(v), "component %d", i)
	}
}

func TestMeshIndexed(t *testing.T) {
	dev := gputest.NewRecorder()
	positions, indices := Sphere(3, 4)

	m := NewMesh(dev, positions, 3, indices, gpu.Triangles)
	m.Draw(dev)

	require.Len(t, dev.Draws, 1)
	d := dev.Draws[0]
	assert.True(t, d.Indexed)
	assert.Equal(t, gpu.Triangles, d.Primitive)
	assert.Equal(t, int32(len(indices)), d.Count)
	assert.Equal(t, indices, dev.IndexData[d.ElementBuffer])
	assert.Equal(t, int32(3), dev.Attribs[d.VertexArray][0].Components)

	m.Destroy(dev)
	assert.Zero(t, dev.LiveBuffers())
	assert.Zero(t, dev.LiveVertexArrays())
}

func TestMeshArrays(t *testing.T) {
	dev := gputest.NewRecorder()

	m := NewMesh(dev, FullscreenQuad(), 2, nil, gpu.TriangleStrip)
	m.Draw(dev)

	require.Len(t, dev.Draws, 1)
	assert.False(t, dev.Draws[0].Indexed)
	assert.Equal(t, gpu.TriangleStrip, dev.Draws[0].Primitive)
	assert.Equal(t, int32(4), dev.Draws[0].Count)
	assert.Equal(t, 1, dev.LiveBuffers())

	m.Destroy(dev)
	m.Destroy(dev)
	assert.Zero(t, dev.LiveBuffers())
}
