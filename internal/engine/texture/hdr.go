package texture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
)

// MaxHDRPixels caps the width·height accepted from a Radiance header before
// any pixel memory is allocated.
const MaxHDRPixels = 8192 * 8192

// ErrHDRTooLarge is returned when a header announces more than MaxHDRPixels
// or more scanlines than the stream can hold.
var ErrHDRTooLarge = errors.New("hdr: image too large")

// LoadHDR loads a Radiance RGBE (.hdr) file as float32 RGB, flipped so the
// first row is the bottom of the picture.
func LoadHDR(path string) (gpu.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gpu.Image{}, fmt.Errorf("read %s: %w", path, err)
	}
	img, err := decodeHDR(data)
	if err != nil {
		return gpu.Image{}, fmt.Errorf("%s: %w", path, err)
	}
	flipRows(img.Floats, img.Width*3, img.Height)
	return img, nil
}

// DecodeHDR decodes a Radiance RGBE stream in top-down row order.
func DecodeHDR(r io.Reader) (gpu.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return gpu.Image{}, fmt.Errorf("hdr: read: %w", err)
	}
	return decodeHDR(data)
}

func decodeHDR(data []byte) (gpu.Image, error) {
	cfg, err := rgbe.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return gpu.Image{}, fmt.Errorf("hdr: header: %w", err)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		return gpu.Image{}, errors.New("hdr: empty image")
	}
	// Every scanline takes at least four bytes, even fully run-length encoded.
	if int64(w)*int64(h) > MaxHDRPixels || int64(h)*4 > int64(len(data)) {
		return gpu.Image{}, fmt.Errorf("%w: %dx%d from %d bytes", ErrHDRTooLarge, w, h, len(data))
	}

	m, err := rgbe.Decode(bytes.NewReader(data))
	if err != nil {
		return gpu.Image{}, fmt.Errorf("hdr: decode: %w", err)
	}
	src, ok := m.(hdr.Image)
	if !ok {
		return gpu.Image{}, fmt.Errorf("hdr: decoder returned %T", m)
	}

	b := src.Bounds()
	out := make([]float32, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.HDRAt(x, y).HDRRGBA()
			out = append(out, float32(r), float32(g), float32(bl))
		}
	}
	return gpu.Image{Width: b.Dx(), Height: b.Dy(), Format: gpu.RGB32F, Floats: out}, nil
}
