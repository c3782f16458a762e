// Package texture decodes image files into pixel data ready for GPU upload.
//
// PNG, JPEG, GIF and BMP go through the image registry; TGA and Radiance HDR
// are decoded in this package. Rows are returned top-down unless flip is set,
// in which case the first row is the bottom of the picture, which is the order
// OpenGL expects for texture coordinate v=0.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
)

// Decode reads and decodes the image at path.
func Decode(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return decodeBytes(data, filepath.Ext(path))
}

// decodeBytes decodes data, using ext to pick the TGA decoder since TGA has no
// magic number.
func decodeBytes(data []byte, ext string) (image.Image, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// LoadRGBA loads path as 8-bit RGBA.
func LoadRGBA(path string, flip bool) (gpu.Image, error) {
	img, err := Decode(path)
	if err != nil {
		return gpu.Image{}, err
	}
	return RGBA(img, flip), nil
}

// LoadRGB loads path as 8-bit RGB, dropping alpha.
func LoadRGB(path string, flip bool) (gpu.Image, error) {
	img, err := Decode(path)
	if err != nil {
		return gpu.Image{}, err
	}
	return RGB(img, flip), nil
}

// LoadGray loads path as one float32 channel in [0,1]. 16-bit sources keep
// their precision.
func LoadGray(path string, flip bool) (gpu.Image, error) {
	img, err := Decode(path)
	if err != nil {
		return gpu.Image{}, err
	}
	return Gray(img, flip), nil
}

// RGBA converts img to tightly packed RGBA8 pixels.
func RGBA(img image.Image, flip bool) gpu.Image {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	pix := append([]byte(nil), rgba.Pix...)
	if flip {
		flipRows(pix, b.Dx()*4, b.Dy())
	}
	return gpu.Image{Width: b.Dx(), Height: b.Dy(), Format: gpu.RGBA8, Bytes: pix}
}

// RGB converts img to tightly packed RGB8 pixels.
func RGB(img image.Image, flip bool) gpu.Image {
	src := RGBA(img, flip)
	pix := make([]byte, 0, src.Width*src.Height*3)
	for i := 0; i < len(src.Bytes); i += 4 {
		pix = append(pix, src.Bytes[i], src.Bytes[i+1], src.Bytes[i+2])
	}
	return gpu.Image{Width: src.Width, Height: src.Height, Format: gpu.RGB8, Bytes: pix}
}

// Gray converts img to luminance in [0,1].
func Gray(img image.Image, flip bool) gpu.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		row := y
		if flip {
			row = h - 1 - y
		}
		for x := 0; x < w; x++ {
			g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			out[row*w+x] = float32(g.Y) / 0xffff
		}
	}
	return gpu.Image{Width: w, Height: h, Format: gpu.R32F, Floats: out}
}

func flipRows[T any](pix []T, stride, rows int) {
	tmp := make([]T, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
