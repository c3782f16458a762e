package heightfield

import (
	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
)

// Heightmap is a CPU copy of the loaded height texture. Row 0 is v=0.
type Heightmap struct {
	Width  int
	Height int
	Values []float32
}

// NewHeightmap wraps a single-channel float image.
func NewHeightmap(img gpu.Image) *Heightmap {
	if img.Format != gpu.R32F || img.Width <= 0 || img.Height <= 0 || len(img.Floats) < img.Width*img.Height {
		return nil
	}
	return &Heightmap{Width: img.Width, Height: img.Height, Values: img.Floats}
}

func (h *Heightmap) at(x, y int) float32 {
	x = clampi(x, 0, h.Width-1)
	y = clampi(y, 0, h.Height-1)
	return h.Values[y*h.Width+x]
}

// Sample returns the bilinearly filtered height at texture coordinate (u, v),
// clamping to the edge texels like the GPU sampler does.
func (h *Heightmap) Sample(u, v float32) float32 {
	// Texel centres sit at (i+0.5)/size.
	fx := clampf(u, 0, 1)*float32(h.Width) - 0.5
	fy := clampf(v, 0, 1)*float32(h.Height) - 0.5

	x0 := floor(fx)
	y0 := floor(fy)
	tx := clampf(fx-float32(x0), 0, 1)
	ty := clampf(fy-float32(y0), 0, 1)

	// Lerp along u on both rows, then between rows.
	south := h.at(x0, y0)*(1-tx) + h.at(x0+1, y0)*tx
	north := h.at(x0, y0+1)*(1-tx) + h.at(x0+1, y0+1)*tx
	return south*(1-ty) + north*ty
}

// TexelSize returns the uv extent of one texel.
func (h *Heightmap) TexelSize() (du, dv float32) {
	return 1 / float32(h.Width), 1 / float32(h.Height)
}

func floor(f float32) int {
	i := int(f)
	if f < 0 && float32(i) != f {
		i--
	}
	return i
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
