// Package shadow provides a depth-only shadow map and the spot light
// matrices used to render and sample it.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ClampMode selects how lookups outside the shadow map are resolved.
type ClampMode int

const (
	// ClampEdge repeats the outermost depth texel.
	ClampEdge ClampMode = iota
	// ClampBorderLit treats everything outside the map as lit.
	ClampBorderLit
	// ClampBorderShadowed treats everything outside the map as shadowed.
	ClampBorderShadowed
)

func (m ClampMode) String() string {
	switch m {
	case ClampBorderLit:
		return "border-lit"
	case ClampBorderShadowed:
		return "border-shadowed"
	default:
		return "edge"
	}
}

// ParseClampMode converts a config value to a ClampMode.
func ParseClampMode(s string) (ClampMode, error) {
	switch s {
	case "", "edge":
		return ClampEdge, nil
	case "border", "border-lit":
		return ClampBorderLit, nil
	case "border-shadowed":
		return ClampBorderShadowed, nil
	}
	return ClampEdge, fmt.Errorf("unknown shadow clamp mode %q", s)
}

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 1024

// Map is a square depth texture attached to its own framebuffer, sampled
// with depth comparison (sampler2DShadow).
type Map struct {
	FBO          uint32
	DepthTexture uint32
	Resolution   int32
	clamp        ClampMode
	hardwarePCF  bool
	prevViewport [4]int32
}

// NewMap creates a shadow map. A non-positive resolution uses
// DefaultResolution.
func NewMap(resolution int32, clamp ClampMode) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	sm := &Map{Resolution: resolution, clamp: clamp}

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)

	gl.GenTextures(1, &sm.DepthTexture)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	sm.allocate()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
	sm.applyFilter()
	sm.applyClamp()

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		sm.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return sm, nil
}

func (sm *Map) allocate() {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F, sm.Resolution, sm.Resolution, 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)
}

// applyFilter expects the depth texture to be bound.
func (sm *Map) applyFilter() {
	filter := int32(gl.NEAREST)
	if sm.hardwarePCF {
		filter = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
}

// applyClamp expects the depth texture to be bound.
func (sm *Map) applyClamp() {
	if sm.clamp == ClampEdge {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		return
	}
	border := [4]float32{1, 1, 1, 1}
	if sm.clamp == ClampBorderShadowed {
		border = [4]float32{}
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
}

// Resize reallocates the depth texture when the resolution changes.
func (sm *Map) Resize(resolution int32) {
	if resolution <= 0 || resolution == sm.Resolution {
		return
	}
	sm.Resolution = resolution
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	sm.allocate()
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// SetClampMode changes how out-of-map lookups are resolved.
func (sm *Map) SetClampMode(mode ClampMode) {
	if mode == sm.clamp {
		return
	}
	sm.clamp = mode
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	sm.applyClamp()
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// ClampMode returns the current clamp mode.
func (sm *Map) ClampMode() ClampMode { return sm.clamp }

// SetHardwarePCF switches between linear (2x2 hardware PCF) and nearest
// depth comparison.
func (sm *Map) SetHardwarePCF(enabled bool) {
	if enabled == sm.hardwarePCF {
		return
	}
	sm.hardwarePCF = enabled
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	sm.applyFilter()
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// HardwarePCF reports whether linear comparison filtering is on.
func (sm *Map) HardwarePCF() bool { return sm.hardwarePCF }

// Bind binds the shadow framebuffer for the depth pass and clears it.
// Polygon offset is enabled when factor or units are non-zero.
func (sm *Map) Bind(offsetFactor, offsetUnits float32) {
	gl.GetIntegerv(gl.VIEWPORT, &sm.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.Viewport(0, 0, sm.Resolution, sm.Resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	if offsetFactor != 0 || offsetUnits != 0 {
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		gl.PolygonOffset(offsetFactor, offsetUnits)
	}
}

// Unbind restores the default framebuffer and viewport.
func (sm *Map) Unbind() {
	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(sm.prevViewport[0], sm.prevViewport[1], sm.prevViewport[2], sm.prevViewport[3])
}

// BindTexture binds the depth texture to texture unit GL_TEXTURE0+unit.
func (sm *Map) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
}

// Destroy releases all GPU resources associated with this shadow map.
func (sm *Map) Destroy() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
		sm.FBO = 0
	}
	if sm.DepthTexture != 0 {
		gl.DeleteTextures(1, &sm.DepthTexture)
		sm.DepthTexture = 0
	}
}
