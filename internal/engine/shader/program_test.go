package shader

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestReadSource(t *testing.T) {
	fsys := fstest.MapFS{
		"terrain.vert": {Data: []byte("#version 410 core\nvoid main() {}\n")},
		"terrain.frag": {Data: []byte("#version 410 core\nout vec4 c;\nvoid main() { c = vec4(1); }\n")},
		"broken.vert":  {Data: []byte("void main() {}")},
	}

	src, err := ReadSource(fsys, "terrain")
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if src.Vertex == "" || src.Fragment == "" {
		t.Errorf("empty source: %+v", src)
	}

	tests := []struct {
		name string
	}{
		{"broken"},
		{"missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSource(fsys, tt.name)
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("ReadSource(%q) error = %v, want ErrNotExist", tt.name, err)
			}
		})
	}
}

func TestTrimLog(t *testing.T) {
	if got := trimLog([]byte("0:1(1): error\n\x00")); got != "0:1(1): error" {
		t.Errorf("trimLog = %q", got)
	}
	if n := len(infoLog(0)); n != 1 {
		t.Errorf("infoLog(0) length = %d, want 1", n)
	}
}
