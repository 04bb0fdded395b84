package renderer2d

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/core"
)

// Vertex: pos3 + color4 + uv2 + texSlot1 + tiling2 => 12 floats
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
	UV       mgl32.Vec2
	TexSlot  float32
	Tiling   mgl32.Vec2
}

const (
	vertexFloats = 12
	vertexSize   = vertexFloats * 4
	vertsPerQuad = 4
	indsPerQuad  = 6
)

var quadVertexLayout = core.VertexLayout{
	Stride: vertexSize,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 3, Type: core.AttribFloat32, Offset: 0},      // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 3 * 4},  // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 7 * 4},  // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 9 * 4},  // texSlot
		{Location: 4, Size: 2, Type: core.AttribFloat32, Offset: 10 * 4}, // tiling
	},
}

// quadIndices builds the fixed 0-1-2-2-3-0 pattern for maxQuads quads.
func quadIndices(maxQuads int) []uint32 {
	inds := make([]uint32, maxQuads*indsPerQuad)
	for q := 0; q < maxQuads; q++ {
		base := uint32(q * vertsPerQuad)
		i := q * indsPerQuad
		inds[i+0] = base + 0
		inds[i+1] = base + 1
		inds[i+2] = base + 2
		inds[i+3] = base + 2
		inds[i+4] = base + 3
		inds[i+5] = base + 0
	}
	return inds
}

// vertexFloatsOf views vs as the flat float32 stream the backend uploads.
// Vertex is made of float32 fields only, so it has no padding.
func vertexFloatsOf(vs []Vertex) []float32 {
	if len(vs) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&vs[0])), len(vs)*vertexFloats)
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureBinds int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }
