package glbackend

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/snek/engine/core"
)

type meshGL struct {
	vao, vbo, ibo uint32
}

type framebufferGL struct {
	color, depth uint32
}

// DeviceGL implements core.Device on OpenGL 3.3 core.
type DeviceGL struct {
	log *slog.Logger

	meshes       map[uint32]meshGL
	framebuffers map[uint32]framebufferGL
	uniforms     map[core.Program]map[string]int32
	bound        core.Program
	nextMesh     uint32
}

var _ core.Device = (*DeviceGL)(nil)

// NewDeviceGL loads the GL entry points for the current context. The window
// must have made its context current.
func NewDeviceGL(_ core.Window, _ core.Config) (core.Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	d := &DeviceGL{
		log:          slog.Default().With("component", "gl"),
		meshes:       make(map[uint32]meshGL),
		framebuffers: make(map[uint32]framebufferGL),
		uniforms:     make(map[core.Program]map[string]int32),
	}
	info := d.Info()
	d.log.Info("device ready", "vendor", info.Vendor, "renderer", info.Renderer, "version", info.Version)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return d, nil
}

func (d *DeviceGL) Info() core.DeviceInfo {
	return core.DeviceInfo{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
}

func (d *DeviceGL) Shutdown() {
	for id := range d.meshes {
		d.DeleteMesh(core.Mesh{ID: id})
	}
	for id := range d.framebuffers {
		d.DeleteFramebuffer(core.Framebuffer{ID: id})
	}
}

// --- textures ---

func glFilter(f core.TextureFilter) int32 {
	if f == core.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glWrap(w core.TextureWrap) int32 {
	if w == core.WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (d *DeviceGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return core.Texture{}, fmt.Errorf("create texture: invalid size %dx%d", desc.Width, desc.Height)
	}
	var internal int32
	var format, typ uint32
	bpp := 4
	switch desc.Format {
	case core.TextureRGBA8:
		internal, format, typ = gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	case core.TextureRGB8:
		internal, format, typ = gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE
		bpp = 3
	case core.TextureDepth24Stencil8:
		internal, format, typ = gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8
	default:
		return core.Texture{}, fmt.Errorf("create texture: unknown format %d", desc.Format)
	}

	var ptr unsafe.Pointer
	if desc.Pixels != nil {
		if len(desc.Pixels) < desc.Width*desc.Height*bpp {
			return core.Texture{}, fmt.Errorf("create texture: %d bytes for %dx%d", len(desc.Pixels), desc.Width, desc.Height)
		}
		ptr = gl.Ptr(desc.Pixels)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, typ, ptr)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(desc.WrapV))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return core.Texture{ID: id, Width: desc.Width, Height: desc.Height}, nil
}

func (d *DeviceGL) DeleteTexture(t core.Texture) {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
	}
}

func (d *DeviceGL) BindTexture(t core.Texture, unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// --- programs ---

func (d *DeviceGL) CreateProgram(vertexSrc, fragmentSrc string) (core.Program, error) {
	p, err := makeProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	return core.Program(p), nil
}

func (d *DeviceGL) DeleteProgram(p core.Program) {
	if p == 0 {
		return
	}
	if d.bound == p {
		gl.UseProgram(0)
		d.bound = 0
	}
	delete(d.uniforms, p)
	gl.DeleteProgram(uint32(p))
}

func (d *DeviceGL) BindProgram(p core.Program) {
	d.bound = p
	gl.UseProgram(uint32(p))
}

// location caches uniform lookups per program; -1 means inactive.
func (d *DeviceGL) location(p core.Program, name string) int32 {
	locs, ok := d.uniforms[p]
	if !ok {
		locs = make(map[string]int32)
		d.uniforms[p] = locs
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	locs[name] = loc
	return loc
}

// withProgram runs set with p current. GL 3.3 has no direct state access, so
// a program that is not bound is bound for the call and the previous one
// restored.
func (d *DeviceGL) withProgram(p core.Program, name string, set func(loc int32)) bool {
	if p == 0 {
		return false
	}
	loc := d.location(p, name)
	if loc < 0 {
		return false
	}
	if d.bound != p {
		gl.UseProgram(uint32(p))
		defer gl.UseProgram(uint32(d.bound))
	}
	set(loc)
	return true
}

func (d *DeviceGL) SetUniformInt(p core.Program, name string, v int32) bool {
	return d.withProgram(p, name, func(loc int32) { gl.Uniform1i(loc, v) })
}

func (d *DeviceGL) SetUniformFloat(p core.Program, name string, v float32) bool {
	return d.withProgram(p, name, func(loc int32) { gl.Uniform1f(loc, v) })
}

func (d *DeviceGL) SetUniformVec2(p core.Program, name string, v [2]float32) bool {
	return d.withProgram(p, name, func(loc int32) { gl.Uniform2f(loc, v[0], v[1]) })
}

func (d *DeviceGL) SetUniformVec4(p core.Program, name string, v [4]float32) bool {
	return d.withProgram(p, name, func(loc int32) { gl.Uniform4f(loc, v[0], v[1], v[2], v[3]) })
}

func (d *DeviceGL) SetUniformMat4(p core.Program, name string, m [16]float32) bool {
	return d.withProgram(p, name, func(loc int32) { gl.UniformMatrix4fv(loc, 1, false, &m[0]) })
}

func (d *DeviceGL) SetUniformIntArray(p core.Program, name string, v []int32) bool {
	if len(v) == 0 {
		return false
	}
	// Arrays are looked up by their first element.
	return d.withProgram(p, name, func(loc int32) { gl.Uniform1iv(loc, int32(len(v)), &v[0]) })
}

// --- meshes ---

func (d *DeviceGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.VertexBytes <= 0 || len(desc.Indices) == 0 {
		return core.Mesh{}, fmt.Errorf("create mesh: empty buffers")
	}
	var m meshGL
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, desc.VertexBytes, nil, gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &m.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.STATIC_DRAW)

	stride := int32(desc.Layout.Stride)
	for _, a := range desc.Layout.Attributes {
		loc := uint32(a.Location)
		gl.EnableVertexAttribArray(loc)
		switch a.Type {
		case core.AttribInt32:
			gl.VertexAttribIPointerWithOffset(loc, int32(a.Size), gl.INT, stride, uintptr(a.Offset))
		default:
			gl.VertexAttribPointerWithOffset(loc, int32(a.Size), gl.FLOAT, false, stride, uintptr(a.Offset))
		}
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	d.nextMesh++
	id := d.nextMesh
	d.meshes[id] = m
	return core.Mesh{ID: id, VertexBytes: desc.VertexBytes, IndexCount: len(desc.Indices)}, nil
}

func (d *DeviceGL) UpdateMesh(m core.Mesh, vertices []float32) {
	mg, ok := d.meshes[m.ID]
	if !ok || len(vertices) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, mg.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *DeviceGL) DeleteMesh(m core.Mesh) {
	mg, ok := d.meshes[m.ID]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &mg.vbo)
	gl.DeleteBuffers(1, &mg.ibo)
	gl.DeleteVertexArrays(1, &mg.vao)
	delete(d.meshes, m.ID)
}

func (d *DeviceGL) DrawIndexed(m core.Mesh, indexCount int) {
	mg, ok := d.meshes[m.ID]
	if !ok || indexCount <= 0 {
		return
	}
	gl.BindVertexArray(mg.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// --- framebuffers ---

func (d *DeviceGL) CreateFramebuffer(width, height int) (core.Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return core.Framebuffer{}, fmt.Errorf("create framebuffer: invalid size %dx%d", width, height)
	}
	color, err := d.CreateTexture(core.TextureDesc{
		Width: width, Height: height,
		Format:    core.TextureRGBA8,
		MinFilter: core.FilterLinear, MagFilter: core.FilterLinear,
	})
	if err != nil {
		return core.Framebuffer{}, err
	}
	depth, err := d.CreateTexture(core.TextureDesc{
		Width: width, Height: height,
		Format: core.TextureDepth24Stencil8,
	})
	if err != nil {
		d.DeleteTexture(color)
		return core.Framebuffer{}, err
	}

	var id uint32
	gl.GenFramebuffers(1, &id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, id)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, color.ID, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.TEXTURE_2D, depth.ID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &id)
		d.DeleteTexture(color)
		d.DeleteTexture(depth)
		return core.Framebuffer{}, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	d.framebuffers[id] = framebufferGL{color: color.ID, depth: depth.ID}
	return core.Framebuffer{ID: id, Width: width, Height: height, Color: color, Depth: depth}, nil
}

func (d *DeviceGL) DeleteFramebuffer(fb core.Framebuffer) {
	f, ok := d.framebuffers[fb.ID]
	if !ok {
		return
	}
	gl.DeleteFramebuffers(1, &fb.ID)
	gl.DeleteTextures(1, &f.color)
	gl.DeleteTextures(1, &f.depth)
	delete(d.framebuffers, fb.ID)
}

func (d *DeviceGL) BindFramebuffer(fb core.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.ID)
}

func (d *DeviceGL) SetViewport(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

func (d *DeviceGL) SetScissor(x, y, w, h int) {
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
}

func (d *DeviceGL) DisableScissor() { gl.Disable(gl.SCISSOR_TEST) }

func (d *DeviceGL) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}
