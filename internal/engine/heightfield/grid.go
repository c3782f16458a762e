// Package heightfield generates a tessellated terrain grid, uploads it to the
// GPU and submits it as restart-separated triangle strips.
package heightfield

import (
	"errors"
	"fmt"
	"math"
)

// RestartIndex separates the strips of consecutive rows in the index buffer.
const RestartIndex uint32 = math.MaxUint32

// MaxTessellation is the largest t whose index count t·(2t+3) still fits the
// int32 count passed to DrawElements. Vertex indices stay far below
// RestartIndex.
const MaxTessellation = 32767

// Vertex attribute slots shared with the terrain shaders.
const (
	PositionSlot = 0
	NormalSlot   = 1
	TexCoordSlot = 2
)

// ErrInvalidTessellation is returned for a tessellation outside
// [1, MaxTessellation].
var ErrInvalidTessellation = errors.New("invalid tessellation")

// Grid is the CPU side of a tessellated unit heightfield: (t+1)×(t+1)
// vertices spanning [-1,1] on x and z at y=0.
type Grid struct {
	Tessellation int
	Positions    []float32 // xyz per vertex
	TexCoords    []float32 // uv per vertex
	Normals      []float32 // xyz per vertex, nil until ComputeNormals
	Indices      []uint32
}

// VertexCount returns (t+1)².
func (g *Grid) VertexCount() int {
	return len(g.Positions) / 3
}

// IndexCount returns t·(2(t+1)+1).
func (g *Grid) IndexCount() int {
	return len(g.Indices)
}

// validateTessellation reports whether t can be built.
func validateTessellation(t int) error {
	if t < 1 || t > MaxTessellation {
		return fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidTessellation, t, MaxTessellation)
	}
	return nil
}

// BuildGrid builds positions, texture coordinates and strip indices for
// tessellation t.
//
// Vertex (x, z) lives at index x + z·(t+1) with position (2x/t−1, 0, 2z/t−1)
// and texcoord (x/t, z/t). Row z is drawn as one strip of 2(t+1) indices
// alternating between rows z and z+1, followed by RestartIndex.
func BuildGrid(t int) (*Grid, error) {
	if err := validateTessellation(t); err != nil {
		return nil, err
	}

	side := t + 1
	g := &Grid{
		Tessellation: t,
		Positions:    make([]float32, 0, side*side*3),
		TexCoords:    make([]float32, 0, side*side*2),
		Indices:      make([]uint32, 0, t*(2*side+1)),
	}

	ft := float32(t)
	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			fx, fz := float32(x), float32(z)
			g.Positions = append(g.Positions, 2*fx/ft-1, 0, 2*fz/ft-1)
			g.TexCoords = append(g.TexCoords, fx/ft, fz/ft)
		}
	}

	for z := 0; z < t; z++ {
		row := uint32(z * side)
		next := row + uint32(side)
		for x := uint32(0); x < uint32(side); x++ {
			g.Indices = append(g.Indices, row+x, next+x)
		}
		g.Indices = append(g.Indices, RestartIndex)
	}

	return g, nil
}
