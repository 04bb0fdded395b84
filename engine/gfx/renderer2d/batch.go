package renderer2d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/profiler"
)

// SetBatchCapacity flushes, then reallocates the batch for maxQuads quads and
// maxTextureSlots sampler slots. The texture unit uniform is rewritten on
// every registered program since the slot count may have changed.
func (r *Renderer) SetBatchCapacity(maxQuads, maxTextureSlots int) {
	if maxQuads <= 0 || maxTextureSlots <= 0 {
		panic(fmt.Errorf("set batch capacity: %w: %d quads, %d texture slots",
			ErrInvalidBatchCapacity, maxQuads, maxTextureSlots))
	}
	r.Flush()

	r.vertices = make([]Vertex, 0, maxQuads*vertsPerQuad)
	r.indices = quadIndices(maxQuads)
	r.textures = make([]core.Texture, maxTextureSlots)
	r.textureCount = 0
	r.quadCount = 0
	r.maxQuads = maxQuads

	if r.mesh.Valid() {
		r.dev.DeleteMesh(r.mesh)
	}
	mesh, err := r.dev.CreateMesh(core.MeshDesc{
		VertexBytes: maxQuads * vertsPerQuad * vertexSize,
		Indices:     r.indices,
		Layout:      quadVertexLayout,
	})
	if err != nil {
		panic(fmt.Errorf("create batch mesh: %w", err))
	}
	r.mesh = mesh

	r.initTextureUniforms()
}

// BatchCapacity returns the current quad and texture slot limits.
func (r *Renderer) BatchCapacity() (maxQuads, maxTextureSlots int) {
	return r.maxQuads, len(r.textures)
}

func (r *Renderer) QuadCount() int    { return r.quadCount }
func (r *Renderer) TextureCount() int { return r.textureCount }

// TextureSlots returns the occupied part of the slot table.
func (r *Renderer) TextureSlots() []core.Texture {
	return append([]core.Texture(nil), r.textures[:r.textureCount]...)
}

// Indices returns the precomputed index buffer.
func (r *Renderer) Indices() []uint32 { return r.indices }

// AppendQuad adds one quad to the batch. Corners are expected in
// bottom-left, bottom-right, top-right, top-left order. A zero tex draws with
// the white texture, i.e. flat color.
func (r *Renderer) AppendQuad(pos [4]mgl32.Vec3, uv [4]mgl32.Vec2, color mgl32.Vec4, tex core.Texture, tiling mgl32.Vec2) {
	if r.quadCount >= r.maxQuads {
		r.Flush()
	}
	slot := r.textureSlot(tex)
	for i := 0; i < vertsPerQuad; i++ {
		r.vertices = append(r.vertices, Vertex{
			Position: pos[i],
			Color:    color,
			UV:       uv[i],
			TexSlot:  slot,
			Tiling:   tiling,
		})
	}
	r.quadCount++
}

func (r *Renderer) textureSlot(tex core.Texture) float32 {
	if !tex.Valid() {
		tex = r.white
	}
	// already in the table?
	for i := 0; i < r.textureCount; i++ {
		if r.textures[i].ID == tex.ID {
			return float32(i)
		}
	}
	if r.textureCount >= len(r.textures) {
		r.Flush()
		if r.textureCount != 0 {
			panic(fmt.Errorf("%w: %d slots in use after flush", ErrTextureSlotOverflow, r.textureCount))
		}
	}
	r.textures[r.textureCount] = tex
	r.textureCount++
	return float32(r.textureCount - 1)
}

// Flush submits the batch as one indexed draw with the live shader and scene
// transform, then empties it. Flushing an empty batch does nothing.
func (r *Renderer) Flush() {
	if r.quadCount == 0 {
		return
	}
	defer profiler.Start("flush")()

	for i := 0; i < r.textureCount; i++ {
		r.dev.BindTexture(r.textures[i], i)
	}
	if p := r.state.Shader.Program(); p.Valid() {
		r.dev.SetUniformMat4(p, "u_proj", r.state.Scene.Projection)
		r.dev.SetUniformMat4(p, "u_view", r.state.Scene.View)
	}

	r.dev.UpdateMesh(r.mesh, vertexFloatsOf(r.vertices))
	r.dev.DrawIndexed(r.mesh, r.quadCount*indsPerQuad)

	r.stats.DrawCalls++
	r.stats.QuadCount += r.quadCount
	r.stats.TextureBinds += r.textureCount

	r.vertices = r.vertices[:0]
	r.quadCount = 0
	r.textureCount = 0
}

// initTextureUniforms writes 0..slots-1 into the sampler array of every
// program, then restores the live program binding.
func (r *Renderer) initTextureUniforms() {
	units := make([]int32, len(r.textures))
	for i := range units {
		units[i] = int32(i)
	}
	for _, s := range r.shaders {
		if !s.program.Valid() {
			continue
		}
		r.dev.BindProgram(s.program)
		if !r.dev.SetUniformIntArray(s.program, r.opts.TextureUniform, units) {
			r.log.Debug("texture uniform not found", "shader", s.name, "uniform", r.opts.TextureUniform)
		}
	}
	if len(r.shaders) > 0 {
		r.dev.BindProgram(r.state.Shader.Program())
	}
}
