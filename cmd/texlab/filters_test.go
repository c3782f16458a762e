package main

import (
	"strconv"
	"testing"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
)

func TestHandleKeyFilters(t *testing.T) {
	tests := []struct {
		key     imgui.Key
		wantMag gpu.Filter
		wantMin gpu.Filter
		changed bool
	}{
		{imgui.Key1, gpu.Nearest, gpu.LinearMipmapLinear, true},
		{imgui.Key2, gpu.Linear, gpu.LinearMipmapLinear, false},
		{imgui.Key3, gpu.Linear, gpu.Nearest, true},
		{imgui.Key4, gpu.Linear, gpu.Linear, true},
		{imgui.Key5, gpu.Linear, gpu.NearestMipmapNearest, true},
		{imgui.Key6, gpu.Linear, gpu.NearestMipmapLinear, true},
		{imgui.Key7, gpu.Linear, gpu.LinearMipmapNearest, true},
		{imgui.Key8, gpu.Linear, gpu.LinearMipmapLinear, false},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(int(tt.key)), func(t *testing.T) {
			f := newFilters(1)
			prev := f
			if !f.HandleKey(tt.key) {
				t.Fatal("key not handled")
			}
			if got := f.SamplingChanged(prev); got != tt.changed {
				t.Errorf("SamplingChanged = %v, want %v", got, tt.changed)
			}
			if f.Mag != tt.wantMag || f.Min != tt.wantMin {
				t.Errorf("mag/min = %s/%s, want %s/%s", f.Mag, f.Min, tt.wantMag, tt.wantMin)
			}
		})
	}
}

func TestHandleKeyUnbound(t *testing.T) {
	f := newFilters(1)
	prev := f
	if f.HandleKey(imgui.Key9) {
		t.Error("9 is not a shortcut")
	}
	if f != prev {
		t.Errorf("state changed to %+v", f)
	}
}

func TestShortcutKeysAreAllBound(t *testing.T) {
	for _, key := range shortcutKeys {
		f := newFilters(4)
		if !f.HandleKey(key) {
			t.Errorf("shortcut %d is not handled", key)
		}
	}
}

func TestHandleKeyAnisotropy(t *testing.T) {
	f := newFilters(1)
	for _, want := range []float32{2, 4, 8, 16, 16} {
		f.HandleKey(imgui.KeyRightBracket)
		if f.Anisotropy != want {
			t.Fatalf("anisotropy = %v, want %v", f.Anisotropy, want)
		}
	}
	for _, want := range []float32{8, 4, 2, 1, 1} {
		f.HandleKey(imgui.KeyLeftBracket)
		if f.Anisotropy != want {
			t.Fatalf("anisotropy = %v, want %v", f.Anisotropy, want)
		}
	}
}

func TestSetAnisotropyClamps(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 1},
		{-3, 1},
		{5.5, 5.5},
		{16, 16},
		{64, 16},
	}
	for _, tt := range tests {
		if got := newFilters(tt.in).Anisotropy; got != tt.want {
			t.Errorf("newFilters(%v).Anisotropy = %v, want %v", tt.in, got, tt.want)
		}
		var f Filters
		f.SetAnisotropy(tt.in)
		if f.Anisotropy != tt.want {
			t.Errorf("SetAnisotropy(%v) = %v, want %v", tt.in, f.Anisotropy, tt.want)
		}
	}
}

func TestPanelToggle(t *testing.T) {
	f := newFilters(4)
	if !f.ShowPanel {
		t.Fatal("panel starts hidden")
	}
	prev := f
	f.HandleKey(imgui.KeyG)
	if f.ShowPanel {
		t.Error("G did not hide the panel")
	}
	if f.SamplingChanged(prev) {
		t.Error("G must not change sampling")
	}
	f.HandleKey(imgui.KeyG)
	if !f.ShowPanel {
		t.Error("second G did not show the panel")
	}
}

func TestPanStaysInRange(t *testing.T) {
	f := newFilters(1)
	prev := f
	f.PanBy(0.75)
	f.PanBy(0.75)
	if f.Pan != 1 {
		t.Errorf("Pan = %v, want 1", f.Pan)
	}
	f.PanBy(-5)
	if f.Pan != -1 {
		t.Errorf("Pan = %v, want -1", f.Pan)
	}
	f.SetPan(0.25)
	if f.Pan != 0.25 {
		t.Errorf("Pan = %v, want 0.25", f.Pan)
	}
	if f.SamplingChanged(prev) {
		t.Error("panning must not change sampling")
	}
}

func TestFilterLabels(t *testing.T) {
	want := []string{
		"GL_NEAREST",
		"GL_LINEAR",
		"GL_NEAREST_MIPMAP_NEAREST",
		"GL_NEAREST_MIPMAP_LINEAR",
		"GL_LINEAR_MIPMAP_NEAREST",
		"GL_LINEAR_MIPMAP_LINEAR",
	}
	if len(minFilters) != len(want) {
		t.Fatalf("%d minification filters, want %d", len(minFilters), len(want))
	}
	for i, f := range minFilters {
		if got := filterLabel(f); got != want[i] {
			t.Errorf("filterLabel(%d) = %q, want %q", i, got, want[i])
		}
	}
	if len(magFilters) != 2 || filterLabel(magFilters[0]) != "GL_NEAREST" || filterLabel(magFilters[1]) != "GL_LINEAR" {
		t.Errorf("magnification filters = %v", magFilters)
	}
}

func TestSampling(t *testing.T) {
	f := newFilters(8)
	f.HandleKey(imgui.Key1)
	s := f.Sampling()
	want := gpu.Sampling{
		MinFilter:  gpu.LinearMipmapLinear,
		MagFilter:  gpu.Nearest,
		Wrap:       gpu.Repeat,
		Anisotropy: 8,
		Mipmaps:    true,
	}
	if s != want {
		t.Errorf("Sampling() = %+v, want %+v", s, want)
	}
}
