package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/internal/config"
	"github.com/Faultbox/heightfield-labs/internal/engine/camera"
	"github.com/Faultbox/heightfield-labs/internal/engine/debug"
	"github.com/Faultbox/heightfield-labs/internal/engine/renderer"
	"github.com/Faultbox/heightfield-labs/internal/engine/scene"
	"github.com/Faultbox/heightfield-labs/internal/engine/ui"
	"github.com/Faultbox/heightfield-labs/internal/logger"
)

const (
	windowTitle  = "Heightfield Terrain"
	panelWidth   = 360
	notifyPeriod = 2 * time.Second
)

// dialogKind says which texture a file dialog result is for.
type dialogKind int

const (
	heightFieldDialog dialogKind = iota
	diffuseDialog
)

type dialogResult struct {
	kind dialogKind
	path string
}

// App is the terrain viewer state.
type App struct {
	cfg      *config.Config
	backend  *ui.Backend
	renderer *renderer.Renderer
	scene    *scene.TerrainScene
	camera   *camera.FlyCamera
	shots    *debug.Screenshots

	tessellation int32
	showUI       bool
	lastFrame    time.Time
	lastMouse    imgui.Vec2

	// Native dialogs run off the main thread; results are applied in render.
	dialogs chan dialogResult

	notification     string
	notificationTime time.Time
}

// NewApp creates the window, the GL state and the scene.
func NewApp(cfg *config.Config) (*App, error) {
	bg := [4]float32{0.1, 0.1, 0.12, 1}
	backend, err := ui.NewBackend(windowTitle, cfg.Window.Width, cfg.Window.Height, bg)
	if err != nil {
		return nil, err
	}

	r, err := renderer.New(renderer.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		ClearColor: bg,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	sc, err := sceneConfig(cfg, int32(cfg.Window.Width-panelWidth), int32(cfg.Window.Height))
	if err != nil {
		return nil, err
	}
	s, err := scene.New(r.Device(), sc)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	app := &App{
		cfg:          cfg,
		backend:      backend,
		renderer:     r,
		scene:        s,
		camera:       cameraFromConfig(cfg.Camera),
		shots:        debug.NewScreenshots(cfg.Screenshots.Dir, "terrain"),
		tessellation: int32(cfg.Terrain.Tessellation),
		showUI:       true,
		lastFrame:    time.Now(),
		dialogs:      make(chan dialogResult, 4),
	}

	s.Terrain = terrainParams(cfg.Terrain)
	s.Light = lightFromConfig(cfg.Light)
	s.EnvironmentMultiplier = cfg.Environment.Multiplier
	s.PolygonOffset = cfg.Shadow.PolygonOffset
	s.OffsetFactor = cfg.Shadow.OffsetFactor
	s.OffsetUnits = cfg.Shadow.OffsetUnits

	if cfg.Terrain.HeightField != "" {
		app.loadTexture(heightFieldDialog, cfg.Terrain.HeightField)
	}
	if cfg.Terrain.Diffuse != "" {
		app.loadTexture(diffuseDialog, cfg.Terrain.Diffuse)
	}
	return app, nil
}

// Run starts the main loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases GPU resources.
func (app *App) Close() {
	if app.scene != nil {
		app.scene.Destroy()
		app.scene = nil
	}
	if app.renderer != nil {
		app.renderer.Close()
	}
}

// render is called each frame inside the ImGui frame.
func (app *App) render() {
	now := time.Now()
	dt := float32(now.Sub(app.lastFrame).Seconds())
	app.lastFrame = now

	app.applyDialogResults()
	app.handleKeys(dt)

	if app.showUI {
		app.renderPanel()
	}
	app.renderSceneWindow(dt)
	app.renderNotification()
}

func (app *App) handleKeys(dt float32) {
	if ui.IsKeyPressed(imgui.KeyEscape) {
		app.backend.SetShouldClose(true)
	}
	if ui.IsKeyPressed(imgui.KeyF12) {
		app.captureScreenshot()
	}
	io := imgui.CurrentIO()
	if io.WantTextInput() {
		return
	}
	if ui.IsKeyPressed(imgui.KeyG) {
		app.showUI = !app.showUI
	}
	app.camera.Move(
		ui.Axis(imgui.KeyW, imgui.KeyS),
		ui.Axis(imgui.KeyD, imgui.KeyA),
		ui.Axis(imgui.KeyE, imgui.KeyQ),
		dt,
	)
}

// renderSceneWindow renders the terrain to the scene framebuffer and shows
// it in a window filling the space right of the panel.
func (app *App) renderSceneWindow(dt float32) {
	x, y, w, h := ui.Viewport()
	if app.showUI {
		x += panelWidth
		w -= panelWidth
	}
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove |
		imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse |
		imgui.WindowFlagsNoBringToFrontOnFocus
	if imgui.BeginV("##Scene", nil, flags) {
		avail := imgui.ContentRegionAvail()
		scale := imgui.CurrentIO().DisplayFramebufferScale()
		app.scene.Resize(int32(avail.X*scale.X), int32(avail.Y*scale.Y))

		tex := app.scene.Render(app.camera, dt)
		ui.SceneImage(tex, avail.X, avail.Y)
		app.handleMouse(dt)
	}
	imgui.End()
	imgui.PopStyleVar()
}

// handleMouse turns the camera on left drag and moves the light on right
// drag while the scene image is hovered.
func (app *App) handleMouse(dt float32) {
	mouse := imgui.MousePos()
	delta := imgui.NewVec2(mouse.X-app.lastMouse.X, mouse.Y-app.lastMouse.Y)
	app.lastMouse = mouse

	rightDown := imgui.IsMouseDown(imgui.MouseButtonRight)
	app.scene.Light.Dragging = rightDown && imgui.IsItemHovered()
	if !imgui.IsItemHovered() {
		return
	}
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		app.camera.HandleDrag(delta.X, delta.Y, dt)
	} else if rightDown {
		app.scene.Light.Drag(delta.X)
	}
}

// openDialog shows a native file dialog without blocking the frame.
func (app *App) openDialog(kind dialogKind, title string) {
	go func() {
		path, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg", "bmp", "tga", "gif").
			Filter("All Files", "*").
			Title(title).
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		app.dialogs <- dialogResult{kind: kind, path: path}
	}()
}

func (app *App) applyDialogResults() {
	for {
		select {
		case r := <-app.dialogs:
			app.loadTexture(r.kind, r.path)
		default:
			return
		}
	}
}

func (app *App) loadTexture(kind dialogKind, path string) {
	var err error
	switch kind {
	case heightFieldDialog:
		err = app.scene.LoadHeightField(path)
		if err == nil {
			app.cfg.Terrain.HeightField = path
		}
	case diffuseDialog:
		err = app.scene.LoadDiffuseTexture(path)
		if err == nil {
			app.cfg.Terrain.Diffuse = path
		}
	}
	if err != nil {
		app.notify(fmt.Sprintf("Load failed: %s", filepath.Base(path)))
		return
	}
	app.notify(fmt.Sprintf("Loaded %s", filepath.Base(path)))
}

func (app *App) captureScreenshot() {
	pixels, w, h := app.scene.CaptureImage()
	path, err := app.shots.SavePixels(pixels, int(w), int(h))
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		app.notify(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	app.notify(fmt.Sprintf("Saved: %s", filepath.Base(path)))
}

func (app *App) saveSettings() {
	app.cfg.Shadow.PolygonOffset = app.scene.PolygonOffset
	app.cfg.Shadow.OffsetFactor = app.scene.OffsetFactor
	app.cfg.Shadow.OffsetUnits = app.scene.OffsetUnits
	if sm := app.scene.ShadowMap(); sm != nil {
		app.cfg.Shadow.Resolution = int(sm.Resolution)
	}
	storeSettings(app.cfg, app.scene.Terrain, int(app.tessellation), app.scene.Light, app.camera, app.scene.EnvironmentMultiplier)
	path := config.SavePath()
	if err := app.cfg.Save(); err != nil {
		logger.Warn("saving settings failed", zap.String("path", path), zap.Error(err))
		app.notify(fmt.Sprintf("Save failed: %v", err))
		return
	}
	logger.Info("settings saved", zap.String("path", path))
	app.notify("Settings saved")
}

func (app *App) notify(msg string) {
	app.notification = msg
	app.notificationTime = time.Now()
}

func (app *App) renderNotification() {
	if app.notification == "" {
		return
	}
	if time.Since(app.notificationTime) > notifyPeriod {
		app.notification = ""
		return
	}
	x, y, w, _ := ui.Viewport()
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
	imgui.SetNextWindowPos(imgui.NewVec2(x+w-310, y+10))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Notify", nil, flags) {
		imgui.TextColored(imgui.NewVec4(0.2, 1.0, 0.2, 1.0), app.notification)
	}
	imgui.End()
}
