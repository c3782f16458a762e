package main

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/internal/engine/shadow"
	"github.com/Faultbox/heightfield-labs/internal/engine/ui"
	"github.com/Faultbox/heightfield-labs/internal/logger"
)

// renderPanel draws the control panel docked to the left edge.
func (app *App) renderPanel() {
	x, y, _, h := ui.Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, h))
	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Controls", nil, flags) {
		fps := imgui.CurrentIO().Framerate()
		imgui.Text(fmt.Sprintf("Application average %.3f ms/frame (%.1f FPS)", 1000/fps, fps))
		imgui.TextDisabled("G hides this panel, ESC quits")
		imgui.Separator()

		app.renderTerrainSection()
		app.renderCameraSection()
		app.renderLightSection()
		app.renderShadowSection()

		imgui.Separator()
		if imgui.Button("Reload Shaders") {
			if !app.scene.ReloadShaders() {
				app.notify("Shader reload failed, see log")
			}
		}
		imgui.SameLine()
		if imgui.Button("Screenshot") {
			app.captureScreenshot()
		}
		imgui.SameLine()
		if imgui.Button("Save Settings") {
			app.saveSettings()
		}
	}
	imgui.End()
}

func (app *App) renderTerrainSection() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Terrain", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	t := &app.scene.Terrain
	imgui.Checkbox("Mesh triangles only", &t.Wireframe)
	imgui.SliderFloatV("Mesh height intensity", &t.HeightIntensity, minHeightIntensity, maxHeightIntensity, "%.0f", imgui.SliderFlagsLogarithmic)
	imgui.SliderFloatV("Mesh density intensity", &t.DensityIntensity, minDensityIntensity, maxDensityIntensity, "%.0f", imgui.SliderFlagsLogarithmic)
	imgui.SliderFloatV("Terrain size", &t.Size, minTerrainSize, maxTerrainSize, "%.0f", imgui.SliderFlagsNone)
	if imgui.SliderIntV("Tessellation", &app.tessellation, minTessellation, maxTessellation, "%d", imgui.SliderFlagsNone) {
		if err := app.scene.SetTessellation(int(app.tessellation)); err != nil {
			logger.Warn("tessellation rejected", zap.Int32("tessellation", app.tessellation), zap.Error(err))
		}
	}
	if imgui.Button("Randomize seed") {
		t.Seed = float32(rand.IntN(seedRange))
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("seed %.0f", t.Seed))

	hf := app.scene.HeightField()
	imgui.Spacing()
	if imgui.Button("Open heightfield...") {
		app.openDialog(heightFieldDialog, "Open height texture")
	}
	imgui.SameLine()
	imgui.TextDisabled(displayPath(hf.HeightFieldPath(), "procedural"))
	if imgui.Button("Open diffuse...") {
		app.openDialog(diffuseDialog, "Open diffuse texture")
	}
	imgui.SameLine()
	imgui.TextDisabled(displayPath(hf.DiffuseTexturePath(), "height colours"))
	imgui.Text(fmt.Sprintf("%d vertices, %d indices", hf.VertexCount(), hf.IndexCount()))
}

func (app *App) renderCameraSection() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	imgui.SliderFloatV("Camera rotation speed", &app.camera.RotationSpeed, 0, maxRotationSpeed, "%.0f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Camera movement speed", &app.camera.Speed, minMoveSpeed, maxMoveSpeed, "%.0f", imgui.SliderFlagsNone)
	p := app.camera.Position
	imgui.TextDisabled(fmt.Sprintf("position %.1f %.1f %.1f", p.X, p.Y, p.Z))
}

func (app *App) renderLightSection() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Light", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	l := &app.scene.Light
	imgui.SliderFloatV("Environment multiplier", &app.scene.EnvironmentMultiplier, 0, maxEnvMultiplier, "%.3f", imgui.SliderFlagsNone)
	color := l.Color.Array()
	if imgui.ColorEdit3("Point light color", &color) {
		l.Color = vec3(color)
	}
	imgui.SliderFloatV("Point light intensity multiplier", &l.Intensity, 0, maxLightIntensity, "%.3f", imgui.SliderFlagsLogarithmic)
	imgui.Checkbox("Manual light only (right-click drag to move)", &l.ManualOnly)
	imgui.Checkbox("Show light", &app.scene.ShowLight)
}

func (app *App) renderShadowSection() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Shadow map", imgui.TreeNodeFlagsNone) {
		return
	}
	sm := app.scene.ShadowMap()
	if sm == nil {
		imgui.TextDisabled("Shadow map unavailable")
		return
	}

	res := sm.Resolution
	if imgui.SliderIntV("Resolution", &res, minShadowResolution, maxShadowResolution, "%d", imgui.SliderFlagsNone) {
		if err := app.scene.SetShadowResolution(res); err != nil {
			logger.Warn("shadow resize failed", zap.Error(err))
		}
	}

	border := sm.ClampMode() != shadow.ClampEdge
	shadowed := sm.ClampMode() == shadow.ClampBorderShadowed
	changed := imgui.Checkbox("Clamp to border", &border)
	if border {
		imgui.SameLine()
		changed = imgui.Checkbox("Border in shadow", &shadowed) || changed
	}
	if changed {
		sm.SetClampMode(clampMode(border, shadowed))
		app.cfg.Shadow.ClampMode = sm.ClampMode().String()
	}

	pcf := sm.HardwarePCF()
	if imgui.Checkbox("Hardware PCF", &pcf) {
		sm.SetHardwarePCF(pcf)
		app.cfg.Shadow.HardwarePCF = pcf
	}

	imgui.Checkbox("Polygon offset", &app.scene.PolygonOffset)
	if app.scene.PolygonOffset {
		imgui.SliderFloatV("Factor", &app.scene.OffsetFactor, 0, 10, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Units", &app.scene.OffsetUnits, 0, 100, "%.1f", imgui.SliderFlagsNone)
	}
}

func clampMode(border, shadowed bool) shadow.ClampMode {
	switch {
	case !border:
		return shadow.ClampEdge
	case shadowed:
		return shadow.ClampBorderShadowed
	default:
		return shadow.ClampBorderLit
	}
}

func displayPath(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return filepath.Base(path)
}
