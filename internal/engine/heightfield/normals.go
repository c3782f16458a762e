package heightfield

import (
	"github.com/chewxy/math32"
)

// ComputeNormals fills g.Normals from central differences of hm sampled at
// each vertex's texture coordinate, one-sided on the grid border. heightScale is the model-space height of
// a heightmap value of 1. A nil heightmap clears the normals.
func ComputeNormals(g *Grid, hm *Heightmap, heightScale float32) {
	if hm == nil {
		g.Normals = nil
		return
	}
	g.Normals = gridNormals(g.Tessellation, hm, heightScale)
}

// gridNormals computes normals for tessellation t without needing the rest of
// the grid, so normals can be refreshed after the grid is discarded.
func gridNormals(t int, hm *Heightmap, heightScale float32) []float32 {
	side := t + 1
	out := make([]float32, 0, side*side*3)
	du, dv := hm.TexelSize()
	ft := float32(t)

	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			u, v := float32(x)/ft, float32(z)/ft
			dhdu := derivative(u, du, func(s float32) float32 { return hm.Sample(s, v) })
			dhdv := derivative(v, dv, func(s float32) float32 { return hm.Sample(u, s) })

			// Positions span 2 units per unit of uv.
			nx := -dhdu * heightScale / 2
			nz := -dhdv * heightScale / 2
			l := math32.Sqrt(nx*nx + 1 + nz*nz)
			out = append(out, nx/l, 1/l, nz/l)
		}
	}
	return out
}

// derivative differentiates h at s in [0,1] with a stencil of one texel d on
// each side. Bilinear sampling is flat within half a texel of the edge, so the
// stencil is clamped to the outermost texel centres and becomes one-sided on
// the border.
func derivative(s, d float32, h func(float32) float32) float32 {
	lo, hi := max(s-d, d/2), min(s+d, 1-d/2)
	if hi <= lo {
		return 0
	}
	return (h(hi) - h(lo)) / (hi - lo)
}
