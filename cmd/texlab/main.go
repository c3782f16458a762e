// Texture lab: two textured quads for comparing magnification,
// minification and anisotropic filtering.
//
// The panel mirrors every control as a shortcut: 1/2 magnification, 3-8
// minification, [ and ] anisotropy, left/right pan. G shows or hides the
// panel and ESC quits.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/cmd/texlab/shaders"
	"github.com/Faultbox/heightfield-labs/internal/config"
	"github.com/Faultbox/heightfield-labs/internal/engine/framebuffer"
	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
	"github.com/Faultbox/heightfield-labs/internal/engine/renderer"
	"github.com/Faultbox/heightfield-labs/internal/engine/shader"
	"github.com/Faultbox/heightfield-labs/internal/engine/ui"
	"github.com/Faultbox/heightfield-labs/internal/logger"
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

const (
	windowTitle = "Texture Lab"
	labFOV      = 45
	labNear     = 0.01
	labFar      = 300
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Texture Lab ===")

	lab, err := newLab(cfg)
	if err != nil {
		logger.Error("failed to start texture lab", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer lab.Close()

	lab.Run()
	logger.Info("texture lab closed normally")
}

// Lab owns the quads and the off-screen target they are drawn into.
type Lab struct {
	backend  *ui.Backend
	renderer *renderer.Renderer
	dev      gpu.Device
	target   *framebuffer.Framebuffer
	program  *shader.Program

	road      *Quad
	explosion *Quad
	filters   Filters
	lastFrame time.Time
}

func newLab(cfg *config.Config) (*Lab, error) {
	clear := [4]float32{0.2, 0.2, 0.8, 1}
	backend, err := ui.NewBackend(windowTitle, cfg.Window.Width, cfg.Window.Height, clear)
	if err != nil {
		return nil, err
	}

	r, err := renderer.New(renderer.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		ClearColor: clear,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	target, err := framebuffer.New(int32(cfg.Window.Width), int32(cfg.Window.Height))
	if err != nil {
		r.Close()
		return nil, err
	}

	program, err := shader.LoadProgram(shaders.FS, shaders.Texlab)
	if err != nil {
		target.Destroy()
		r.Close()
		return nil, err
	}

	lab := &Lab{
		backend:   backend,
		renderer:  r,
		dev:       r.Device(),
		target:    target,
		program:   program,
		filters:   newFilters(float32(cfg.Texlab.Anisotropy)),
		lastFrame: time.Now(),
	}
	sampling := lab.filters.Sampling()
	lab.road = NewQuad(lab.dev, roadQuad(), cfg.Texlab.Road, sampling)
	lab.explosion = NewQuad(lab.dev, explosionQuad(), cfg.Texlab.Explosion, sampling)
	lab.explosion.Blend = true

	program.Use()
	program.SetInt("colortexture", 0)
	return lab, nil
}

// Run starts the main loop.
func (l *Lab) Run() {
	l.backend.Run(l.frame)
}

// frame is called each frame inside the ImGui frame.
func (l *Lab) frame() {
	now := time.Now()
	dt := float32(now.Sub(l.lastFrame).Seconds())
	l.lastFrame = now

	prev := l.filters
	l.handleKeys(dt)

	x, y, w, h := ui.Viewport()
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	l.target.Resize(int32(w*scale.X), int32(h*scale.Y))
	l.draw()
	ui.SceneBackground(l.target.ColorTexture(), x, y, w, h)

	if l.filters.ShowPanel {
		renderPanel(&l.filters)
	}
	if l.filters.SamplingChanged(prev) {
		l.applySampling()
	}
}

func (l *Lab) handleKeys(dt float32) {
	if ui.IsKeyPressed(imgui.KeyEscape) {
		l.backend.SetShouldClose(true)
	}
	if imgui.CurrentIO().WantTextInput() {
		return
	}
	for _, key := range shortcutKeys {
		if ui.IsKeyPressed(key) {
			l.filters.HandleKey(key)
		}
	}
	l.filters.PanBy(ui.Axis(imgui.KeyRightArrow, imgui.KeyLeftArrow) * panSpeed * dt)
}

// applySampling pushes the current filters to both quad textures.
func (l *Lab) applySampling() {
	s := l.filters.Sampling()
	for _, q := range []*Quad{l.road, l.explosion} {
		if q.Texture.Valid() {
			l.dev.SetSampling(q.Texture, s)
		}
	}
	logger.Debug("sampling changed",
		zap.Stringer("mag", l.filters.Mag),
		zap.Stringer("min", l.filters.Min),
		zap.Float32("anisotropy", l.filters.Anisotropy))
}

// draw renders both quads into the off-screen target.
func (l *Lab) draw() {
	l.target.Bind()
	l.target.Clear(l.renderer.ClearColor())
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)

	p := l.program
	p.Use()
	p.SetMat4("projectionMatrix", math.Perspective(math.Radians(labFOV), l.target.Aspect(), labNear, labFar))
	p.SetVec3("cameraPosition", math.Vec3{X: l.filters.Pan})

	for _, q := range []*Quad{l.road, l.explosion} {
		p.SetBool("hasTexture", q.Texture.Valid())
		p.SetVec3("fallbackColor", q.Fallback)
		q.Draw(l.dev)
	}
	l.dev.SetBlending(false)
	l.target.Unbind()
}

// Close releases GPU resources.
func (l *Lab) Close() {
	l.road.Destroy(l.dev)
	l.explosion.Destroy(l.dev)
	l.program.Delete()
	l.target.Destroy()
	l.renderer.Close()
}
