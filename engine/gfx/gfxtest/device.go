// Package gfxtest provides in-memory implementations of the core graphics and
// platform boundaries. Everything is recorded so tests can assert on the exact
// sequence of backend work a renderer produced.
package gfxtest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hubastard/snek/engine/core"
)

// ErrCompile is returned by CreateProgram when FailCompile rejects a source.
var ErrCompile = errors.New("gfxtest: compile failed")

// DrawCall is a snapshot of the backend state at one DrawIndexed.
type DrawCall struct {
	Program     core.Program
	Framebuffer uint32
	Viewport    [4]int
	Textures    map[int]core.Texture // unit -> texture
	Vertices    []float32            // copy of the mesh contents
	IndexCount  int
}

// ProgramState is what the fake knows about a linked program.
type ProgramState struct {
	Vertex, Fragment string
	Uniforms         map[string]any
	Deleted          bool
}

type MeshState struct {
	Desc     core.MeshDesc
	Vertices []float32
	Deleted  bool
}

type ClearCall struct {
	Framebuffer uint32
	Color       [4]float32
}

// Device is a recording core.Device.
type Device struct {
	// FailCompile, when set, decides whether CreateProgram fails.
	FailCompile func(vs, fs string) bool

	Textures     map[uint32]core.TextureDesc
	Programs     map[core.Program]*ProgramState
	Meshes       map[uint32]*MeshState
	Framebuffers map[uint32]core.Framebuffer

	BoundProgram     core.Program
	BoundFramebuffer uint32
	BoundTextures    map[int]core.Texture
	Viewport         [4]int
	Scissor          [4]int
	ScissorEnabled   bool

	Draws  []DrawCall
	Clears []ClearCall
	// Calls is a coarse op log, e.g. "viewport 0 0 100 100" or "bind_program 3".
	Calls []string

	nextID   uint32
	shutdown bool
}

var _ core.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		Textures:      make(map[uint32]core.TextureDesc),
		Programs:      make(map[core.Program]*ProgramState),
		Meshes:        make(map[uint32]*MeshState),
		Framebuffers:  make(map[uint32]core.Framebuffer),
		BoundTextures: make(map[int]core.Texture),
	}
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) logf(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

// ResetLog forgets recorded draws, clears and calls but keeps resources.
func (d *Device) ResetLog() {
	d.Draws = nil
	d.Clears = nil
	d.Calls = nil
}

func (d *Device) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return core.Texture{}, fmt.Errorf("gfxtest: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	id := d.id()
	if desc.Pixels != nil {
		desc.Pixels = slices.Clone(desc.Pixels)
	}
	d.Textures[id] = desc
	return core.Texture{ID: id, Width: desc.Width, Height: desc.Height}, nil
}

func (d *Device) DeleteTexture(t core.Texture) {
	delete(d.Textures, t.ID)
	d.logf("delete_texture %d", t.ID)
}

func (d *Device) BindTexture(t core.Texture, unit int) {
	d.BoundTextures[unit] = t
}

func (d *Device) CreateProgram(vs, fs string) (core.Program, error) {
	if d.FailCompile != nil && d.FailCompile(vs, fs) {
		return 0, ErrCompile
	}
	p := core.Program(d.id())
	d.Programs[p] = &ProgramState{Vertex: vs, Fragment: fs, Uniforms: make(map[string]any)}
	d.logf("create_program %d", p)
	return p, nil
}

func (d *Device) DeleteProgram(p core.Program) {
	if ps, ok := d.Programs[p]; ok {
		ps.Deleted = true
	}
	d.logf("delete_program %d", p)
}

func (d *Device) BindProgram(p core.Program) {
	d.BoundProgram = p
	d.logf("bind_program %d", p)
}

// Live reports whether p was created and not deleted.
func (d *Device) Live(p core.Program) bool {
	ps, ok := d.Programs[p]
	return ok && !ps.Deleted
}

// Uniform returns the last value uploaded to name on p.
func (d *Device) Uniform(p core.Program, name string) (any, bool) {
	ps, ok := d.Programs[p]
	if !ok {
		return nil, false
	}
	v, ok := ps.Uniforms[name]
	return v, ok
}

// setUniform stores v when name occurs in the program source, which is how
// the fake decides that a uniform is active.
func (d *Device) setUniform(p core.Program, name string, v any) bool {
	ps, ok := d.Programs[p]
	if !ok || ps.Deleted {
		return false
	}
	if !strings.Contains(ps.Vertex, name) && !strings.Contains(ps.Fragment, name) {
		return false
	}
	ps.Uniforms[name] = v
	return true
}

func (d *Device) SetUniformInt(p core.Program, name string, v int32) bool {
	return d.setUniform(p, name, v)
}

func (d *Device) SetUniformFloat(p core.Program, name string, v float32) bool {
	return d.setUniform(p, name, v)
}

func (d *Device) SetUniformVec2(p core.Program, name string, v [2]float32) bool {
	return d.setUniform(p, name, v)
}

func (d *Device) SetUniformVec4(p core.Program, name string, v [4]float32) bool {
	return d.setUniform(p, name, v)
}

func (d *Device) SetUniformMat4(p core.Program, name string, m [16]float32) bool {
	return d.setUniform(p, name, m)
}

func (d *Device) SetUniformIntArray(p core.Program, name string, v []int32) bool {
	return d.setUniform(p, name, slices.Clone(v))
}

func (d *Device) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	id := d.id()
	desc.Indices = slices.Clone(desc.Indices)
	d.Meshes[id] = &MeshState{Desc: desc}
	d.logf("create_mesh %d", id)
	return core.Mesh{ID: id, VertexBytes: desc.VertexBytes, IndexCount: len(desc.Indices)}, nil
}

func (d *Device) UpdateMesh(m core.Mesh, vertices []float32) {
	ms, ok := d.Meshes[m.ID]
	if !ok {
		panic(fmt.Sprintf("gfxtest: update of unknown mesh %d", m.ID))
	}
	if len(vertices)*4 > ms.Desc.VertexBytes {
		panic(fmt.Sprintf("gfxtest: mesh %d overflow: %d bytes > %d", m.ID, len(vertices)*4, ms.Desc.VertexBytes))
	}
	ms.Vertices = append(ms.Vertices[:0], vertices...)
}

func (d *Device) DeleteMesh(m core.Mesh) {
	if ms, ok := d.Meshes[m.ID]; ok {
		ms.Deleted = true
	}
	d.logf("delete_mesh %d", m.ID)
}

func (d *Device) DrawIndexed(m core.Mesh, indexCount int) {
	ms, ok := d.Meshes[m.ID]
	if !ok || ms.Deleted {
		panic(fmt.Sprintf("gfxtest: draw with dead mesh %d", m.ID))
	}
	if indexCount > len(ms.Desc.Indices) {
		panic(fmt.Sprintf("gfxtest: draw %d indices, mesh has %d", indexCount, len(ms.Desc.Indices)))
	}
	tex := make(map[int]core.Texture, len(d.BoundTextures))
	for k, v := range d.BoundTextures {
		tex[k] = v
	}
	d.Draws = append(d.Draws, DrawCall{
		Program:     d.BoundProgram,
		Framebuffer: d.BoundFramebuffer,
		Viewport:    d.Viewport,
		Textures:    tex,
		Vertices:    slices.Clone(ms.Vertices),
		IndexCount:  indexCount,
	})
	d.logf("draw %d", indexCount)
}

func (d *Device) CreateFramebuffer(width, height int) (core.Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return core.Framebuffer{}, fmt.Errorf("gfxtest: invalid framebuffer size %dx%d", width, height)
	}
	color, _ := d.CreateTexture(core.TextureDesc{Width: width, Height: height, Format: core.TextureRGBA8})
	depth, _ := d.CreateTexture(core.TextureDesc{Width: width, Height: height, Format: core.TextureDepth24Stencil8})
	fb := core.Framebuffer{ID: d.id(), Width: width, Height: height, Color: color, Depth: depth}
	d.Framebuffers[fb.ID] = fb
	d.logf("create_framebuffer %d %dx%d", fb.ID, width, height)
	return fb, nil
}

func (d *Device) DeleteFramebuffer(fb core.Framebuffer) {
	delete(d.Framebuffers, fb.ID)
	delete(d.Textures, fb.Color.ID)
	delete(d.Textures, fb.Depth.ID)
	d.logf("delete_framebuffer %d", fb.ID)
}

func (d *Device) BindFramebuffer(fb core.Framebuffer) {
	d.BoundFramebuffer = fb.ID
	d.logf("bind_framebuffer %d", fb.ID)
}

func (d *Device) SetViewport(x, y, w, h int) {
	d.Viewport = [4]int{x, y, w, h}
	d.logf("viewport %d %d %d %d", x, y, w, h)
}

func (d *Device) SetScissor(x, y, w, h int) {
	d.Scissor = [4]int{x, y, w, h}
	d.ScissorEnabled = true
	d.logf("scissor %d %d %d %d", x, y, w, h)
}

func (d *Device) DisableScissor() {
	d.ScissorEnabled = false
	d.logf("scissor off")
}

func (d *Device) Clear(r, g, b, a float32) {
	d.Clears = append(d.Clears, ClearCall{Framebuffer: d.BoundFramebuffer, Color: [4]float32{r, g, b, a}})
	d.logf("clear %d", d.BoundFramebuffer)
}

func (d *Device) Info() core.DeviceInfo {
	return core.DeviceInfo{Vendor: "gfxtest", Renderer: "recording", Version: "0"}
}

func (d *Device) Shutdown() { d.shutdown = true }

// IsShutdown reports whether Shutdown was called.
func (d *Device) IsShutdown() bool { return d.shutdown }
