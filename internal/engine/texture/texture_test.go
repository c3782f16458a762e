package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
)

func tgaHeader(imageType, bpp, descriptor byte, w, h int) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 1x2, file order bottom row first: blue then red (BGR).
	data := append(tgaHeader(TGATypeUncompressed, 24, 0, 1, 2),
		255, 0, 0,
		0, 0, 255,
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	top := img.At(0, 0).(color.RGBA)
	bottom := img.At(0, 1).(color.RGBA)
	if top != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("top pixel = %v, want red", top)
	}
	if bottom != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("bottom pixel = %v, want blue", bottom)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	data := append(tgaHeader(TGATypeRLE, 32, tgaDescriptorTopToBottom, 3, 1),
		0x82, 10, 20, 30, 40, // run of 3
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	want := color.RGBA{R: 30, G: 20, B: 10, A: 40}
	for x := 0; x < 3; x++ {
		if got := img.At(x, 0).(color.RGBA); got != want {
			t.Errorf("pixel %d = %v, want %v", x, got, want)
		}
	}
}

func TestDecodeTGAGray(t *testing.T) {
	data := append(tgaHeader(TGATypeGray, 8, tgaDescriptorTopToBottom, 2, 1), 0, 200)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	if got := img.At(1, 0).(color.RGBA); got != (color.RGBA{R: 200, G: 200, B: 200, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"colour mapped", func() []byte { h := tgaHeader(TGATypeUncompressed, 24, 0, 1, 1); h[1] = 1; return h }()},
		{"bad type", tgaHeader(1, 24, 0, 1, 1)},
		{"bad depth", tgaHeader(TGATypeUncompressed, 16, 0, 1, 1)},
		{"truncated", append(tgaHeader(TGATypeUncompressed, 24, 0, 2, 2), 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := DecodeTGA(append(tgaHeader(TGATypeRLE, 24, 0, 4, 1), 0x83, 1, 2))
	if !errors.Is(err, ErrTGATruncated) {
		t.Errorf("RLE truncation error = %v, want ErrTGATruncated", err)
	}
}

func gradientImage() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(y * 0x7fff)})
		}
	}
	return img
}

func TestGrayFlip(t *testing.T) {
	img := gradientImage()

	plain := Gray(img, false)
	flipped := Gray(img, true)

	if plain.Format != gpu.R32F || plain.Width != 2 || plain.Height != 3 {
		t.Fatalf("unexpected image header %+v", plain)
	}
	if plain.Floats[0] != 0 {
		t.Errorf("top-left = %v, want 0", plain.Floats[0])
	}
	if flipped.Floats[0] != plain.Floats[4] {
		t.Errorf("flipped first row = %v, want last row %v", flipped.Floats[0], plain.Floats[4])
	}
	if v := plain.Floats[4]; v < 0.99 || v > 1 {
		t.Errorf("bottom row = %v, want ~1", v)
	}
}

func TestRGBDropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 4, G: 5, B: 6, A: 255})

	rgb := RGB(img, true)
	if rgb.Format != gpu.RGB8 {
		t.Fatalf("format = %v", rgb.Format)
	}
	want := []byte{4, 5, 6, 1, 2, 3}
	if !bytes.Equal(rgb.Bytes, want) {
		t.Errorf("pixels = %v, want %v", rgb.Bytes, want)
	}
}

func TestLoadGrayFromPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "height.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gradientImage()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := LoadGray(path, true)
	if err != nil {
		t.Fatalf("LoadGray: %v", err)
	}
	if img.Width != 2 || img.Height != 3 || len(img.Floats) != 6 {
		t.Fatalf("unexpected size %dx%d (%d floats)", img.Width, img.Height, len(img.Floats))
	}
	if img.Floats[5] != 0 {
		t.Errorf("flipped last texel = %v, want 0", img.Floats[5])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadRGBA(filepath.Join(t.TempDir(), "missing.png"), false); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadHDR(filepath.Join(t.TempDir(), "missing.hdr")); err == nil {
		t.Error("expected error for missing hdr")
	}
}

// rleHDR encodes a w x len(rows) Radiance file with adaptive run-length
// scanlines. Every pixel of row y is rows[y] in RGBE.
func rleHDR(w int, rows [][4]byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", len(rows), w)
	for _, px := range rows {
		buf.Write([]byte{2, 2, byte(w >> 8), byte(w)})
		for ch := 0; ch < 4; ch++ {
			for left := w; left > 0; {
				n := min(left, 127)
				buf.Write([]byte{byte(128 + n), px[ch]})
				left -= n
			}
		}
	}
	return buf.Bytes()
}

func near(a, b float32) bool {
	return a-b < 0.01 && b-a < 0.01
}

func TestDecodeHDR(t *testing.T) {
	data := rleHDR(8, [][4]byte{{128, 64, 0, 129}, {0, 0, 0, 0}})

	img, err := DecodeHDR(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeHDR: %v", err)
	}
	if img.Width != 8 || img.Height != 2 || img.Format != gpu.RGB32F || len(img.Floats) != 8*2*3 {
		t.Fatalf("unexpected image %dx%d format %v with %d floats", img.Width, img.Height, img.Format, len(img.Floats))
	}
	for x := 0; x < 8; x++ {
		r, g, b := img.Floats[x*3], img.Floats[x*3+1], img.Floats[x*3+2]
		if !near(r, 1) || !near(g, 0.5) || b != 0 {
			t.Errorf("top pixel %d = (%v, %v, %v), want (1, 0.5, 0)", x, r, g, b)
		}
		if v := img.Floats[(8+x)*3]; v != 0 {
			t.Errorf("bottom pixel %d red = %v, want 0", x, v)
		}
	}
}

func TestLoadHDRFlipsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.hdr")
	if err := os.WriteFile(path, rleHDR(16, [][4]byte{{128, 128, 128, 129}, {0, 0, 0, 0}}), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := LoadHDR(path)
	if err != nil {
		t.Fatalf("LoadHDR: %v", err)
	}
	if img.Floats[0] != 0 {
		t.Errorf("first row should be the bottom of the picture, got %v", img.Floats[0])
	}
	if last := img.Floats[len(img.Floats)-1]; !near(last, 1) {
		t.Errorf("last row should be the top of the picture, got %v", last)
	}
}

func TestDecodeHDRRejectsGarbage(t *testing.T) {
	if _, err := DecodeHDR(bytes.NewReader([]byte("P6\n1 1\n255\n"))); err == nil {
		t.Error("expected error for non-Radiance input")
	}
}

func TestDecodeHDRRejectsOversizedHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"huge dimensions", []byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 100000 +X 100000\n")},
		{"more scanlines than bytes", append([]byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 4096 +X 8\n"),
			rleHDR(8, [][4]byte{{1, 1, 1, 128}})[len("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 1 +X 8\n"):]...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeHDR(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrHDRTooLarge) {
				t.Errorf("DecodeHDR error = %v, want ErrHDRTooLarge", err)
			}
		})
	}
}
