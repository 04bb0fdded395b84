package renderer2d

import (
	"fmt"
	"time"

	"github.com/hubastard/snek/engine/assets"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/profiler"
)

// Shader is a registry entry. File-backed shaders are recompiled in place by
// HotReload, so the *Shader stays valid across reloads while its Program
// changes.
type Shader struct {
	name     string
	path     string
	fromFile bool
	modTime  time.Time
	program  core.Program
}

func (s *Shader) Name() string { return s.name }

// Path is the source file, empty for shaders built from a string.
func (s *Shader) Path() string { return s.path }

func (s *Shader) HotReloadable() bool { return s.fromFile }

// Program returns the backend program; 0 if s is nil or failed to compile.
func (s *Shader) Program() core.Program {
	if s == nil {
		return 0
	}
	return s.program
}

func (s *Shader) Valid() bool { return s.Program().Valid() }

// Shaders returns the registry in creation order.
func (r *Renderer) Shaders() []*Shader { return append([]*Shader(nil), r.shaders...) }

func (r *Renderer) register(s *Shader) {
	if len(r.shaders) >= r.opts.MaxShaders {
		panic(fmt.Errorf("register %q: %w (%d programs)", s.name, ErrShaderRegistryFull, r.opts.MaxShaders))
	}
	r.shaders = append(r.shaders, s)
}

// CreateShader compiles the shader file at path and registers it for hot
// reload. The entry is registered even when compilation fails; it then has
// an invalid program until the file is fixed.
func (r *Renderer) CreateShader(path string) (*Shader, error) {
	s := &Shader{name: path, path: path, fromFile: true}
	r.register(s)

	if mt, err := r.plat.ModTime(path); err == nil {
		s.modTime = mt
	}
	p, err := r.compileFile(path)
	if err != nil {
		r.log.Error("shader compile failed", "path", path, "err", err)
		return s, err
	}
	s.program = p
	r.initTextureUniforms()
	return s, nil
}

// CreateShaderSource compiles src, which uses the same @vertex/@fragment
// layout as shader files. The result is never hot reloaded.
func (r *Renderer) CreateShaderSource(name, src string) (*Shader, error) {
	s := &Shader{name: name}
	r.register(s)

	p, err := r.compile([]byte(src))
	if err != nil {
		r.log.Error("shader compile failed", "shader", name, "err", err)
		return s, fmt.Errorf("shader %q: %w", name, err)
	}
	s.program = p
	r.initTextureUniforms()
	return s, nil
}

func (r *Renderer) compileFile(path string) (core.Program, error) {
	b, err := r.plat.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("shader %q: %w", path, err)
	}
	p, err := r.compile(b)
	if err != nil {
		return 0, fmt.Errorf("shader %q: %w", path, err)
	}
	return p, nil
}

func (r *Renderer) compile(src []byte) (core.Program, error) {
	ss, err := assets.ParseShader(src)
	if err != nil {
		return 0, err
	}
	return r.dev.CreateProgram(ss.Vertex, ss.Fragment)
}

// BindShader makes s the live shader. A nil or invalid shader binds no
// program; quads drawn then produce undefined output.
func (r *Renderer) BindShader(s *Shader) {
	r.Flush()
	r.state.Shader = s
	r.dev.BindProgram(s.Program())
}

// HotReload accumulates dt and, once per HotReloadInterval, recompiles every
// file-backed shader whose modification time changed. A shader whose new
// source fails to compile keeps its previous program. It reports whether any
// program was replaced.
func (r *Renderer) HotReload(dt float32) bool {
	r.reloadTimer += dt
	if r.reloadTimer < r.opts.HotReloadInterval {
		return false
	}
	r.reloadTimer -= r.opts.HotReloadInterval
	defer profiler.Start("hot reload")()

	reloaded := false
	for _, s := range r.shaders {
		if !s.fromFile {
			continue
		}
		mt, err := r.plat.ModTime(s.path)
		if err != nil {
			r.log.Debug("shader stat failed", "path", s.path, "err", err)
			continue
		}
		if mt.Equal(s.modTime) {
			continue
		}
		// Recorded up front so a broken file is not recompiled on every scan.
		s.modTime = mt

		p, err := r.compileFile(s.path)
		if err != nil {
			r.log.Warn("shader reload failed, keeping previous program", "path", s.path, "err", err)
			continue
		}
		if r.state.Shader == s {
			r.Flush()
		}
		old := s.program
		s.program = p
		if old.Valid() {
			r.dev.DeleteProgram(old)
		}
		reloaded = true
		r.log.Info("shader reloaded", "path", s.path, "program", uint32(p))
	}

	if reloaded {
		r.initTextureUniforms()
	}
	return reloaded
}

// Uniform setters act on the live shader and flush first so that queued
// quads keep the values they were appended with. They report whether the
// uniform exists.

func (r *Renderer) SetUniformInt(name string, v int32) bool {
	r.Flush()
	return r.dev.SetUniformInt(r.state.Shader.Program(), name, v)
}

func (r *Renderer) SetUniformFloat(name string, v float32) bool {
	r.Flush()
	return r.dev.SetUniformFloat(r.state.Shader.Program(), name, v)
}

func (r *Renderer) SetUniformVec2(name string, v [2]float32) bool {
	r.Flush()
	return r.dev.SetUniformVec2(r.state.Shader.Program(), name, v)
}

func (r *Renderer) SetUniformVec4(name string, v [4]float32) bool {
	r.Flush()
	return r.dev.SetUniformVec4(r.state.Shader.Program(), name, v)
}

func (r *Renderer) SetUniformMat4(name string, m [16]float32) bool {
	r.Flush()
	return r.dev.SetUniformMat4(r.state.Shader.Program(), name, m)
}
