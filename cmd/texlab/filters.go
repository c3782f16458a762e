package main

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
)

const (
	minAnisotropy = 1
	maxAnisotropy = 16
	maxPan        = 1
	panSpeed      = 1 // units per second
)

// Filters is the sampling state of the lab, edited from the panel or the
// keyboard shortcuts.
type Filters struct {
	Mag        gpu.Filter
	Min        gpu.Filter
	Anisotropy float32
	Pan        float32
	ShowPanel  bool
}

// newFilters starts with trilinear filtering.
func newFilters(anisotropy float32) Filters {
	f := Filters{
		Mag:       gpu.Linear,
		Min:       gpu.LinearMipmapLinear,
		ShowPanel: true,
	}
	f.SetAnisotropy(anisotropy)
	return f
}

var (
	magFilters = []gpu.Filter{gpu.Nearest, gpu.Linear}
	minFilters = []gpu.Filter{
		gpu.Nearest,
		gpu.Linear,
		gpu.NearestMipmapNearest,
		gpu.NearestMipmapLinear,
		gpu.LinearMipmapNearest,
		gpu.LinearMipmapLinear,
	}
)

var (
	magFilterKeys = map[imgui.Key]gpu.Filter{
		imgui.Key1: gpu.Nearest,
		imgui.Key2: gpu.Linear,
	}
	minFilterKeys = map[imgui.Key]gpu.Filter{
		imgui.Key3: gpu.Nearest,
		imgui.Key4: gpu.Linear,
		imgui.Key5: gpu.NearestMipmapNearest,
		imgui.Key6: gpu.NearestMipmapLinear,
		imgui.Key7: gpu.LinearMipmapNearest,
		imgui.Key8: gpu.LinearMipmapLinear,
	}
)

// shortcutKeys are polled once per frame, in this order.
var shortcutKeys = []imgui.Key{
	imgui.Key1, imgui.Key2,
	imgui.Key3, imgui.Key4, imgui.Key5, imgui.Key6, imgui.Key7, imgui.Key8,
	imgui.KeyLeftBracket, imgui.KeyRightBracket,
	imgui.KeyG,
}

// HandleKey applies one shortcut and reports whether the key was bound.
func (f *Filters) HandleKey(key imgui.Key) bool {
	if m, ok := magFilterKeys[key]; ok {
		f.Mag = m
		return true
	}
	if m, ok := minFilterKeys[key]; ok {
		f.Min = m
		return true
	}
	switch key {
	case imgui.KeyLeftBracket:
		f.SetAnisotropy(f.Anisotropy / 2)
	case imgui.KeyRightBracket:
		f.SetAnisotropy(f.Anisotropy * 2)
	case imgui.KeyG:
		f.ShowPanel = !f.ShowPanel
	default:
		return false
	}
	return true
}

// SetAnisotropy stores a sample count clamped to [1, 16].
func (f *Filters) SetAnisotropy(a float32) {
	f.Anisotropy = min(max(a, minAnisotropy), maxAnisotropy)
}

// SamplingChanged reports whether the sampler state differs from prev.
// Panning and panel visibility do not touch the textures.
func (f Filters) SamplingChanged(prev Filters) bool {
	return f.Mag != prev.Mag || f.Min != prev.Min || f.Anisotropy != prev.Anisotropy
}

// PanBy moves the camera sideways, staying within [-1, 1].
func (f *Filters) PanBy(d float32) {
	f.SetPan(f.Pan + d)
}

// SetPan places the camera, clamped to [-1, 1].
func (f *Filters) SetPan(p float32) {
	f.Pan = min(max(p, -maxPan), maxPan)
}

// Sampling returns the sampler state for both quads.
func (f Filters) Sampling() gpu.Sampling {
	return gpu.Sampling{
		MinFilter:  f.Min,
		MagFilter:  f.Mag,
		Wrap:       gpu.Repeat,
		Anisotropy: f.Anisotropy,
		Mipmaps:    true,
	}
}
