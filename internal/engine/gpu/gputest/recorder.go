// Package gputest provides an in-memory gpu.Device for tests.
package gputest

import (
	"fmt"

	"github.com/Faultbox/heightfield-labs/internal/engine/gpu"
)

// Draw is a recorded draw call together with the state it was issued under.
type Draw struct {
	Primitive      gpu.Primitive
	Count          int32
	Indexed        bool
	VertexArray    gpu.VertexArray
	ElementBuffer  gpu.Buffer
	PolygonMode    gpu.PolygonMode
	RestartEnabled bool
	RestartIndex   uint32
	Blending       bool
}

// Attrib is the state of one vertex attribute slot.
type Attrib struct {
	Buffer     gpu.Buffer
	Components int32
}

// Recorder implements gpu.Device by keeping every object in maps and logging
// the calls made against it.
type Recorder struct {
	Calls []string
	Draws []Draw

	FloatData    map[gpu.Buffer][]float32
	IndexData    map[gpu.Buffer][]uint32
	Attribs      map[gpu.VertexArray]map[uint32]Attrib
	Textures     map[gpu.Texture]gpu.Image
	Levels       map[gpu.Texture]map[int32]gpu.Image
	Samplings    map[gpu.Texture]gpu.Sampling
	BoundTexture map[uint32]gpu.Texture

	PolygonMode    gpu.PolygonMode
	RestartEnabled bool
	RestartIndex   uint32
	Blending       bool

	next         uint32
	liveBuffers  map[gpu.Buffer]bool
	liveArrays   map[gpu.VertexArray]bool
	boundArray   gpu.VertexArray
	boundVertex  gpu.Buffer
	elementByVAO map[gpu.VertexArray]gpu.Buffer
	loneElement  gpu.Buffer
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		FloatData:    make(map[gpu.Buffer][]float32),
		IndexData:    make(map[gpu.Buffer][]uint32),
		Attribs:      make(map[gpu.VertexArray]map[uint32]Attrib),
		Textures:     make(map[gpu.Texture]gpu.Image),
		Levels:       make(map[gpu.Texture]map[int32]gpu.Image),
		Samplings:    make(map[gpu.Texture]gpu.Sampling),
		BoundTexture: make(map[uint32]gpu.Texture),
		liveBuffers:  make(map[gpu.Buffer]bool),
		liveArrays:   make(map[gpu.VertexArray]bool),
		elementByVAO: make(map[gpu.VertexArray]gpu.Buffer),
	}
}

var _ gpu.Device = (*Recorder)(nil)

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) id() uint32 {
	r.next++
	return r.next
}

// LiveBuffers returns the number of buffers created and not yet deleted.
func (r *Recorder) LiveBuffers() int { return len(r.liveBuffers) }

// LiveVertexArrays returns the number of vertex arrays not yet deleted.
func (r *Recorder) LiveVertexArrays() int { return len(r.liveArrays) }

// LiveTextures returns the number of textures not yet deleted.
func (r *Recorder) LiveTextures() int { return len(r.Textures) }

// BufferLive reports whether b was created and not deleted.
func (r *Recorder) BufferLive(b gpu.Buffer) bool { return r.liveBuffers[b] }

func (r *Recorder) CreateBuffer() gpu.Buffer {
	b := gpu.Buffer(r.id())
	r.liveBuffers[b] = true
	r.record("CreateBuffer() = %d", b)
	return b
}

func (r *Recorder) DeleteBuffer(b gpu.Buffer) {
	delete(r.liveBuffers, b)
	delete(r.FloatData, b)
	delete(r.IndexData, b)
	r.record("DeleteBuffer(%d)", b)
}

func (r *Recorder) BindBuffer(target gpu.BufferTarget, b gpu.Buffer) {
	r.bind(target, b)
	r.record("BindBuffer(%d, %d)", target, b)
}

func (r *Recorder) bind(target gpu.BufferTarget, b gpu.Buffer) {
	if target == gpu.ArrayBuffer {
		r.boundVertex = b
		return
	}
	if r.boundArray.Valid() {
		r.elementByVAO[r.boundArray] = b
	} else {
		r.loneElement = b
	}
}

func (r *Recorder) BufferFloat32(target gpu.BufferTarget, b gpu.Buffer, data []float32) {
	r.bind(target, b)
	r.FloatData[b] = append([]float32(nil), data...)
	r.record("BufferFloat32(%d, %d, len=%d)", target, b, len(data))
}

func (r *Recorder) BufferUint32(target gpu.BufferTarget, b gpu.Buffer, data []uint32) {
	r.bind(target, b)
	r.IndexData[b] = append([]uint32(nil), data...)
	r.record("BufferUint32(%d, %d, len=%d)", target, b, len(data))
}

func (r *Recorder) CreateVertexArray() gpu.VertexArray {
	v := gpu.VertexArray(r.id())
	r.liveArrays[v] = true
	r.record("CreateVertexArray() = %d", v)
	return v
}

func (r *Recorder) DeleteVertexArray(v gpu.VertexArray) {
	delete(r.liveArrays, v)
	delete(r.Attribs, v)
	delete(r.elementByVAO, v)
	if r.boundArray == v {
		r.boundArray = 0
	}
	r.record("DeleteVertexArray(%d)", v)
}

func (r *Recorder) BindVertexArray(v gpu.VertexArray) {
	r.boundArray = v
	r.record("BindVertexArray(%d)", v)
}

func (r *Recorder) VertexAttrib(slot uint32, components int32) {
	attribs := r.Attribs[r.boundArray]
	if attribs == nil {
		attribs = make(map[uint32]Attrib)
		r.Attribs[r.boundArray] = attribs
	}
	attribs[slot] = Attrib{Buffer: r.boundVertex, Components: components}
	r.record("VertexAttrib(%d, %d)", slot, components)
}

func (r *Recorder) SetPrimitiveRestart(enabled bool, index uint32) {
	r.RestartEnabled = enabled
	r.RestartIndex = index
	r.record("SetPrimitiveRestart(%t, %d)", enabled, index)
}

func (r *Recorder) SetPolygonMode(mode gpu.PolygonMode) {
	r.PolygonMode = mode
	r.record("SetPolygonMode(%d)", mode)
}

func (r *Recorder) SetBlending(enabled bool) {
	r.Blending = enabled
	r.record("SetBlending(%t)", enabled)
}

func (r *Recorder) DrawElements(p gpu.Primitive, count int32) {
	element := r.loneElement
	if r.boundArray.Valid() {
		element = r.elementByVAO[r.boundArray]
	}
	r.Draws = append(r.Draws, Draw{
		Primitive:      p,
		Count:          count,
		Indexed:        true,
		VertexArray:    r.boundArray,
		ElementBuffer:  element,
		PolygonMode:    r.PolygonMode,
		RestartEnabled: r.RestartEnabled,
		RestartIndex:   r.RestartIndex,
		Blending:       r.Blending,
	})
	r.record("DrawElements(%d, %d)", p, count)
}

func (r *Recorder) DrawArrays(p gpu.Primitive, first, count int32) {
	r.Draws = append(r.Draws, Draw{
		Primitive:   p,
		Count:       count,
		VertexArray: r.boundArray,
		PolygonMode: r.PolygonMode,
	})
	r.record("DrawArrays(%d, %d, %d)", p, first, count)
}

func (r *Recorder) CreateTexture() gpu.Texture {
	t := gpu.Texture(r.id())
	r.Textures[t] = gpu.Image{}
	r.record("CreateTexture() = %d", t)
	return t
}

func (r *Recorder) DeleteTexture(t gpu.Texture) {
	delete(r.Textures, t)
	delete(r.Levels, t)
	delete(r.Samplings, t)
	r.record("DeleteTexture(%d)", t)
}

func (r *Recorder) UploadTexture(t gpu.Texture, img gpu.Image, s gpu.Sampling) {
	r.Textures[t] = img
	r.Samplings[t] = s
	r.record("UploadTexture(%d, %dx%d)", t, img.Width, img.Height)
}

func (r *Recorder) UploadTextureLevel(t gpu.Texture, level int32, img gpu.Image) {
	if r.Levels[t] == nil {
		r.Levels[t] = make(map[int32]gpu.Image)
	}
	r.Levels[t][level] = img
	if level == 0 {
		r.Textures[t] = img
	}
	r.record("UploadTextureLevel(%d, %d, %dx%d)", t, level, img.Width, img.Height)
}

func (r *Recorder) SetSampling(t gpu.Texture, s gpu.Sampling) {
	r.Samplings[t] = s
	r.record("SetSampling(%d)", t)
}

func (r *Recorder) BindTexture(unit uint32, t gpu.Texture) {
	r.BoundTexture[unit] = t
	r.record("BindTexture(%d, %d)", unit, t)
}
