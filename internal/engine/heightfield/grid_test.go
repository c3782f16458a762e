package heightfield

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGridCounts(t *testing.T) {
	for _, tess := range []int{1, 2, 3, 7, 16, 64} {
		t.Run(fmt.Sprint(tess), func(t *testing.T) {
			g, err := BuildGrid(tess)
			require.NoError(t, err)

			side := tess + 1
			assert.Equal(t, side*side, g.VertexCount())
			assert.Len(t, g.TexCoords, side*side*2)
			assert.Equal(t, tess*(2*side+1), g.IndexCount())

			sentinels := 0
			for _, idx := range g.Indices {
				if idx == RestartIndex {
					sentinels++
					continue
				}
				assert.Less(t, idx, uint32(side*side))
			}
			assert.Equal(t, tess, sentinels)
			assert.Equal(t, RestartIndex, g.Indices[len(g.Indices)-1])
		})
	}
}

func TestBuildGridTwo(t *testing.T) {
	g, err := BuildGrid(2)
	require.NoError(t, err)

	assert.Equal(t, 9, g.VertexCount())
	assert.Equal(t, []uint32{
		0, 3, 1, 4, 2, 5, RestartIndex,
		3, 6, 4, 7, 5, 8, RestartIndex,
	}, g.Indices)
	assert.Equal(t, RestartIndex, g.Indices[6])
	assert.Equal(t, RestartIndex, g.Indices[13])
}

func TestBuildGridOne(t *testing.T) {
	g, err := BuildGrid(1)
	require.NoError(t, err)

	assert.Equal(t, []float32{
		-1, 0, -1,
		1, 0, -1,
		-1, 0, 1,
		1, 0, 1,
	}, g.Positions)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1, 1, 1}, g.TexCoords)
	assert.Equal(t, []uint32{0, 2, 1, 3, RestartIndex}, g.Indices)
}

func TestBuildGridCoverage(t *testing.T) {
	tessellations := []int{1, 2, 3, 5, 7, 41, 47, 55, 61, 82, 100, 255, 1000}
	for _, tess := range tessellations {
		t.Run(fmt.Sprint(tess), func(t *testing.T) {
			g, err := BuildGrid(tess)
			require.NoError(t, err)

			side := tess + 1
			uv := func(x, z int) [2]float32 {
				i := (x + z*side) * 2
				return [2]float32{g.TexCoords[i], g.TexCoords[i+1]}
			}
			xz := func(x, z int) [2]float32 {
				i := (x + z*side) * 3
				return [2]float32{g.Positions[i], g.Positions[i+2]}
			}

			assert.Equal(t, [2]float32{0, 0}, uv(0, 0))
			assert.Equal(t, [2]float32{1, 0}, uv(tess, 0))
			assert.Equal(t, [2]float32{0, 1}, uv(0, tess))
			assert.Equal(t, [2]float32{1, 1}, uv(tess, tess))

			assert.Equal(t, [2]float32{-1, -1}, xz(0, 0))
			assert.Equal(t, [2]float32{1, -1}, xz(tess, 0))
			assert.Equal(t, [2]float32{-1, 1}, xz(0, tess))
			assert.Equal(t, [2]float32{1, 1}, xz(tess, tess))

			for i := 0; i < len(g.Positions); i += 3 {
				x, y, z := g.Positions[i], g.Positions[i+1], g.Positions[i+2]
				require.Zero(t, y)
				require.True(t, x >= -1 && x <= 1 && z >= -1 && z <= 1, "vertex %d at (%v, %v)", i/3, x, z)
			}
		})
	}
}

func TestFarCornerExactForAllTessellations(t *testing.T) {
	for tess := 1; tess <= 300; tess++ {
		g, err := BuildGrid(tess)
		require.NoError(t, err)
		last := g.VertexCount() - 1
		u, v := g.TexCoords[last*2], g.TexCoords[last*2+1]
		x, z := g.Positions[last*3], g.Positions[last*3+2]
		if u != 1 || v != 1 || x != 1 || z != 1 {
			t.Fatalf("t=%d far corner uv=(%v,%v) pos=(%v,%v)", tess, u, v, x, z)
		}
	}
}

func TestMaxTessellationIndexCountFitsInt32(t *testing.T) {
	count := func(tess int64) int64 { return tess * (2*(tess+1) + 1) }

	assert.LessOrEqual(t, count(MaxTessellation), int64(math.MaxInt32))
	assert.Greater(t, count(MaxTessellation+1), int64(math.MaxInt32))
	assert.NoError(t, validateTessellation(MaxTessellation))
	assert.ErrorIs(t, validateTessellation(MaxTessellation+1), ErrInvalidTessellation)
}

func TestBuildGridDeterministic(t *testing.T) {
	a, err := BuildGrid(9)
	require.NoError(t, err)
	b, err := BuildGrid(9)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildGridRejectsInvalid(t *testing.T) {
	for _, tess := range []int{0, -1, -100, MaxTessellation + 1} {
		g, err := BuildGrid(tess)
		assert.ErrorIs(t, err, ErrInvalidTessellation, "tessellation %d", tess)
		assert.Nil(t, g)
	}
}
