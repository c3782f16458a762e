package shader

import (
	"fmt"
	"io/fs"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/internal/logger"
	"github.com/Faultbox/heightfield-labs/pkg/math"
)

// Source is the GLSL text of one program.
type Source struct {
	Vertex   string
	Fragment string
}

// ReadSource reads name.vert and name.frag from fsys.
func ReadSource(fsys fs.FS, name string) (Source, error) {
	vs, err := fs.ReadFile(fsys, name+".vert")
	if err != nil {
		return Source{}, fmt.Errorf("read %s vertex shader: %w", name, err)
	}
	frag, err := fs.ReadFile(fsys, name+".frag")
	if err != nil {
		return Source{}, fmt.Errorf("read %s fragment shader: %w", name, err)
	}
	return Source{Vertex: string(vs), Fragment: string(frag)}, nil
}

// Program is a linked program with name-keyed uniform setters. Missing
// uniforms are looked up once and then silently ignored, which keeps the
// setters usable while a shader is being edited.
type Program struct {
	Name     string
	ID       uint32
	uniforms map[string]int32
}

// LoadProgram reads and compiles the program called name from fsys.
func LoadProgram(fsys fs.FS, name string) (*Program, error) {
	src, err := ReadSource(fsys, name)
	if err != nil {
		return nil, err
	}
	id, err := CompileProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return &Program{Name: name, ID: id, uniforms: make(map[string]int32)}, nil
}

// Reload recompiles the program from fsys. On failure the error is logged,
// the previous program stays in use and false is returned.
func (p *Program) Reload(fsys fs.FS) bool {
	next, err := LoadProgram(fsys, p.Name)
	if err != nil {
		logger.Warn("shader reload failed, keeping previous program",
			zap.String("program", p.Name), zap.Error(err))
		return false
	}
	gl.DeleteProgram(p.ID)
	p.ID = next.ID
	p.uniforms = next.uniforms
	logger.Info("shader reloaded", zap.String("program", p.Name))
	return true
}

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Delete releases the program object.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Uniform returns the cached location of name, -1 if absent.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.uniforms[name] = loc
	return loc
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

func (p *Program) SetVec2(name string, v math.Vec2) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform2f(loc, v.X, v.Y)
	}
}

func (p *Program) SetFloat(name string, f float32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1f(loc, f)
	}
}

func (p *Program) SetInt(name string, i int32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1i(loc, i)
	}
}

func (p *Program) SetBool(name string, b bool) {
	var i int32
	if b {
		i = 1
	}
	p.SetInt(name, i)
}
