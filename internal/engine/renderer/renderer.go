// Package renderer initialises OpenGL and owns per-frame global state.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
	"github.com/Faultbox/heightfield-labs/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Renderer handles GL initialisation and the default viewport.
type Renderer struct {
	config Config
	device *gpu.GL
}

// New initialises OpenGL. It must be called after the GL context is current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)

	r := &Renderer{config: cfg, device: gpu.NewGL()}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Device returns the render context backed by the current GL context.
func (r *Renderer) Device() gpu.Device {
	return r.device
}

// ClearColor returns the configured background colour.
func (r *Renderer) ClearColor() [4]float32 {
	return r.config.ClearColor
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Close logs shutdown. GL objects are owned by their packages.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}
