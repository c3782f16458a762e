package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
	"github.com/Faultbox/heightfield-labs/internal/engine/gpu/gputest"
	"github.com/Faultbox/heightfield-labs/internal/logger"
)

func writeRGBA(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range 16 {
		img.Set(i%4, i/4, color.NRGBA{R: 255, A: uint8(i * 16)})
	}
	path := filepath.Join(t.TempDir(), "explosion.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestQuadData(t *testing.T) {
	for name, q := range map[string]QuadData{"road": roadQuad(), "explosion": explosionQuad()} {
		t.Run(name, func(t *testing.T) {
			assert.Len(t, q.Positions, 12)
			assert.Len(t, q.TexCoords, 8)
			assert.Equal(t, []uint32{0, 1, 3, 1, 2, 3}, q.Indices)
		})
	}
	// The road repeats its texture 15 times along its length.
	assert.Equal(t, float32(15), roadQuad().TexCoords[3])
}

func TestNewQuadWithTexture(t *testing.T) {
	dev := gputest.NewRecorder()
	s := newFilters(4).Sampling()

	q := NewQuad(dev, explosionQuad(), writeRGBA(t), s)
	q.Blend = true

	require.True(t, q.Texture.Valid())
	img := dev.Textures[q.Texture]
	assert.Equal(t, gpu.RGBA8, img.Format)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, s, dev.Samplings[q.Texture])

	q.Draw(dev)
	require.Len(t, dev.Draws, 1)
	d := dev.Draws[0]
	assert.Equal(t, gpu.Triangles, d.Primitive)
	assert.Equal(t, int32(6), d.Count)
	assert.True(t, d.Blending)
	assert.Equal(t, q.Texture, dev.BoundTexture[0])

	attribs := dev.Attribs[d.VertexArray]
	assert.Equal(t, int32(3), attribs[positionSlot].Components)
	assert.Equal(t, int32(2), attribs[texCoordSlot].Components)

	q.Destroy(dev)
	assert.Zero(t, dev.LiveBuffers())
	assert.Zero(t, dev.LiveVertexArrays())
	assert.Zero(t, dev.LiveTextures())
}

func TestNewQuadMissingTexture(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	dev := gputest.NewRecorder()

	q := NewQuad(dev, roadQuad(), filepath.Join(t.TempDir(), "missing.jpg"), newFilters(1).Sampling())

	assert.False(t, q.Texture.Valid())
	assert.Equal(t, 1, logs.FilterMessage("texture not loaded, drawing untextured").Len())

	q.Draw(dev)
	require.Len(t, dev.Draws, 1)
	assert.False(t, dev.Draws[0].Blending)
}
