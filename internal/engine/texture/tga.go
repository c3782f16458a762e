package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types understood by DecodeTGA.
const (
	TGATypeUncompressed      = 2
	TGATypeGray              = 3
	TGATypeRLE               = 10
	TGATypeRLEGray           = 11
	tgaHeaderSize            = 18
	tgaDescriptorTopToBottom = 0x20
)

// ErrTGATruncated is returned when pixel data ends before the image is filled.
var ErrTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-colour (24/32 bpp) or
// greyscale (8 bpp) TGA image. The result is always *image.RGBA in top-down
// row order.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&tgaDescriptorTopToBottom != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: colour-mapped images not supported")
	}
	gray := imageType == TGATypeGray || imageType == TGATypeRLEGray
	switch {
	case imageType != TGATypeUncompressed && imageType != TGATypeRLE && !gray:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("tga: unsupported greyscale depth %d", bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	case width == 0 || height == 0:
		return nil, errors.New("tga: empty image")
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	d := &tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		bpp:         bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == TGATypeRLE || imageType == TGATypeRLEGray {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	bpp         int
	topToBottom bool
	pixel       int
}

func (d *tgaDecoder) total() int {
	b := d.img.Bounds()
	return b.Dx() * b.Dy()
}

func (d *tgaDecoder) read() (color.RGBA, error) {
	if d.pos+d.bpp > len(d.src) {
		return color.RGBA{}, ErrTGATruncated
	}
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	if d.bpp == 1 {
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}, nil
	}
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the next pixel in file order, which is bottom-up unless
// the descriptor says otherwise.
func (d *tgaDecoder) put(c color.RGBA) {
	w := d.img.Bounds().Dx()
	x, y := d.pixel%w, d.pixel/w
	if !d.topToBottom {
		y = d.img.Bounds().Dy() - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) decodeRaw() error {
	for d.pixel < d.total() {
		c, err := d.read()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	for d.pixel < d.total() {
		if d.pos >= len(d.src) {
			return ErrTGATruncated
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := d.read()
			if err != nil {
				return err
			}
			for i := 0; i < count && d.pixel < d.total(); i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.pixel < d.total(); i++ {
			c, err := d.read()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
