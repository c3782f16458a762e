package gpu

import "testing"

func TestPixelFormat(t *testing.T) {
	tests := []struct {
		format   PixelFormat
		channels int
		float    bool
	}{
		{R32F, 1, true},
		{RGB8, 3, false},
		{RGBA8, 4, false},
		{RGB32F, 3, true},
	}
	for _, tt := range tests {
		if got := tt.format.Channels(); got != tt.channels {
			t.Errorf("%d.Channels() = %d, want %d", tt.format, got, tt.channels)
		}
		if got := tt.format.IsFloat(); got != tt.float {
			t.Errorf("%d.IsFloat() = %v, want %v", tt.format, got, tt.float)
		}
	}
}

func TestFilterMipmaps(t *testing.T) {
	tests := []struct {
		filter  Filter
		mipmaps bool
		name    string
	}{
		{Nearest, false, "NEAREST"},
		{Linear, false, "LINEAR"},
		{NearestMipmapNearest, true, "NEAREST_MIPMAP_NEAREST"},
		{NearestMipmapLinear, true, "NEAREST_MIPMAP_LINEAR"},
		{LinearMipmapNearest, true, "LINEAR_MIPMAP_NEAREST"},
		{LinearMipmapLinear, true, "LINEAR_MIPMAP_LINEAR"},
	}
	for _, tt := range tests {
		if got := tt.filter.UsesMipmaps(); got != tt.mipmaps {
			t.Errorf("%s.UsesMipmaps() = %v, want %v", tt.name, got, tt.mipmaps)
		}
		if got := tt.filter.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
}

func TestHandleValid(t *testing.T) {
	if Buffer(0).Valid() || VertexArray(0).Valid() || Texture(0).Valid() {
		t.Error("zero handle must be invalid")
	}
	if !Buffer(1).Valid() || !VertexArray(7).Valid() || !Texture(3).Valid() {
		t.Error("non-zero handle must be valid")
	}
}
