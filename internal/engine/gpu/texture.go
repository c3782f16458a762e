package gpu

// PixelFormat describes the layout of Image pixel data and the internal
// format the texture is allocated with.
type PixelFormat int

const (
	// R32F is one float32 channel.
	R32F PixelFormat = iota
	// RGB8 is three unsigned byte channels.
	RGB8
	// RGBA8 is four unsigned byte channels.
	RGBA8
	// RGB32F is three float32 channels.
	RGB32F
)

// Channels returns the number of components per pixel.
func (f PixelFormat) Channels() int {
	switch f {
	case R32F:
		return 1
	case RGB8, RGB32F:
		return 3
	default:
		return 4
	}
}

// IsFloat reports whether pixels are stored as float32.
func (f PixelFormat) IsFloat() bool {
	return f == R32F || f == RGB32F
}

// Image is pixel data ready for upload. Exactly one of Bytes or Floats is set,
// matching Format.IsFloat.
type Image struct {
	Width  int
	Height int
	Format PixelFormat
	Bytes  []byte
	Floats []float32
}

// Filter is a texture sampling filter.
type Filter int

const (
	Nearest Filter = iota
	Linear
	NearestMipmapNearest
	NearestMipmapLinear
	LinearMipmapNearest
	LinearMipmapLinear
)

// UsesMipmaps reports whether the filter samples mip levels.
func (f Filter) UsesMipmaps() bool {
	return f >= NearestMipmapNearest
}

func (f Filter) String() string {
	switch f {
	case Nearest:
		return "NEAREST"
	case Linear:
		return "LINEAR"
	case NearestMipmapNearest:
		return "NEAREST_MIPMAP_NEAREST"
	case NearestMipmapLinear:
		return "NEAREST_MIPMAP_LINEAR"
	case LinearMipmapNearest:
		return "LINEAR_MIPMAP_NEAREST"
	case LinearMipmapLinear:
		return "LINEAR_MIPMAP_LINEAR"
	}
	return "UNKNOWN"
}

// Wrap is a texture coordinate wrap mode.
type Wrap int

const (
	ClampToEdge Wrap = iota
	Repeat
)

// Sampling holds texture sampler state.
type Sampling struct {
	MinFilter  Filter
	MagFilter  Filter
	Wrap       Wrap
	Anisotropy float32 // 0 leaves the texture's setting alone, 1 disables
	Mipmaps    bool    // generate the mip chain on upload
}
