package renderer2d

import (
	"fmt"
	"log/slog"

	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/text"
)

// Options configures a Renderer. Zero fields take the defaults.
type Options struct {
	MaxQuads          int     // quads per batch, default 6000
	MaxTextureSlots   int     // sampler slots per batch, default 16
	MaxShaders        int     // registry capacity, default 4
	StackDepth        int     // render state stack depth, default 16
	HotReloadInterval float32 // seconds between shader mtime scans, default 0.1
	TextureUniform    string  // sampler array uniform, default "u_textures"
	Logger            *slog.Logger
}

func (o *Options) setDefaults() {
	if o.MaxQuads == 0 {
		o.MaxQuads = 6000
	}
	if o.MaxTextureSlots == 0 {
		o.MaxTextureSlots = 16
	}
	if o.MaxShaders <= 0 {
		o.MaxShaders = 4
	}
	if o.StackDepth <= 0 {
		o.StackDepth = 16
	}
	if o.HotReloadInterval <= 0 {
		o.HotReloadInterval = 0.1
	}
	if o.TextureUniform == "" {
		o.TextureUniform = "u_textures"
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Renderer batches quads into as few indexed draws as possible. It owns the
// batch, the render state stack and the shader registry. It is not safe for
// concurrent use; all calls happen on the render thread.
type Renderer struct {
	dev  core.Device
	plat core.Platform
	log  *slog.Logger
	opts Options

	white core.Texture // 1x1 white, substituted for untextured quads

	// batch
	vertices     []Vertex
	indices      []uint32
	textures     []core.Texture
	textureCount int
	quadCount    int
	maxQuads     int
	mesh         core.Mesh
	stats        Statistics

	state State
	stack []State
	clip  *Viewport

	shaders     []*Shader
	reloadTimer float32

	glyphs []text.GlyphQuad
}

// New creates the renderer, its white texture and the initial batch.
func New(dev core.Device, plat core.Platform, opts Options) (*Renderer, error) {
	opts.setDefaults()
	if opts.MaxQuads < 0 || opts.MaxTextureSlots < 0 {
		return nil, fmt.Errorf("%w: %d quads, %d texture slots", ErrInvalidBatchCapacity, opts.MaxQuads, opts.MaxTextureSlots)
	}

	white, err := dev.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: core.FilterNearest, MagFilter: core.FilterNearest,
		WrapU: core.WrapClamp, WrapV: core.WrapClamp,
	})
	if err != nil {
		return nil, fmt.Errorf("create white texture: %w", err)
	}

	r := &Renderer{
		dev:     dev,
		plat:    plat,
		log:     opts.Logger,
		opts:    opts,
		white:   white,
		stack:   make([]State, 0, opts.StackDepth),
		shaders: make([]*Shader, 0, opts.MaxShaders),
	}
	r.state.Scene = IdentityScene()
	r.SetBatchCapacity(opts.MaxQuads, opts.MaxTextureSlots)
	return r, nil
}

// WhiteTexture is the texture untextured quads sample from.
func (r *Renderer) WhiteTexture() core.Texture { return r.white }

func (r *Renderer) Device() core.Device { return r.dev }

// BeginFrame resets the frame statistics.
func (r *Renderer) BeginFrame() { r.stats = Statistics{} }

// Stats returns the statistics accumulated since the last BeginFrame.
func (r *Renderer) Stats() Statistics { return r.stats }

// Shutdown releases every backend resource the renderer created. Render
// targets belong to their creators and are not touched.
func (r *Renderer) Shutdown() {
	for _, s := range r.shaders {
		if s.program.Valid() {
			r.dev.DeleteProgram(s.program)
			s.program = 0
		}
	}
	if r.mesh.Valid() {
		r.dev.DeleteMesh(r.mesh)
		r.mesh = core.Mesh{}
	}
	if r.white.Valid() {
		r.dev.DeleteTexture(r.white)
		r.white = core.Texture{}
	}
}
