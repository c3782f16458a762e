package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
	"github.com/Faultbox/heightfield-labs/internal/engine/ui"
)

// filterLabel names a filter the way the GL enum is spelled.
func filterLabel(f gpu.Filter) string {
	return "GL_" + f.String()
}

// renderPanel draws the filter controls over the scene.
func renderPanel(f *Filters) {
	x, y, _, _ := ui.Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(x+10, y+10))
	flags := imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoMove
	if imgui.BeginV("Texture Filtering", nil, flags) {
		radioGroup("mag", "Magnification", magFilters, &f.Mag)
		radioGroup("mini", "Minification", minFilters, &f.Min)

		aniso := f.Anisotropy
		if imgui.SliderFloatV("Anisotropic filtering", &aniso, minAnisotropy, maxAnisotropy,
			"Number of samples: %.0f", imgui.SliderFlagsNone) {
			f.SetAnisotropy(aniso)
		}
		imgui.Dummy(imgui.NewVec2(0, 20))

		pan := f.Pan
		if imgui.SliderFloatV("Camera Panning", &pan, -maxPan, maxPan, "%.3f", imgui.SliderFlagsNone) {
			f.SetPan(pan)
		}

		rate := imgui.CurrentIO().Framerate()
		var ms float32
		if rate > 0 {
			ms = 1000 / rate
		}
		imgui.Text(fmt.Sprintf("Application average %.3f ms/frame (%.1f FPS)", ms, rate))

		imgui.Separator()
		imgui.TextDisabled("1/2 mag  3-8 min  [ ] aniso  arrows pan  G panel")
	}
	imgui.End()
}

// radioGroup shows one radio button per filter under its own ID scope, so
// labels shared between groups stay distinct.
func radioGroup(id, title string, filters []gpu.Filter, current *gpu.Filter) {
	imgui.PushIDStr(id)
	imgui.Text(title)
	for _, f := range filters {
		if imgui.RadioButtonBool(filterLabel(f), *current == f) {
			*current = f
		}
	}
	imgui.PopID()
}
