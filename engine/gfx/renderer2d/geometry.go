package renderer2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/text"
)

var fullUV = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func uvRect(u0, v0, u1, v1 float32) [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}
}

// QuadCorners returns the corners of the axis-aligned quad whose bottom-left
// corner is pos.
func QuadCorners(pos mgl32.Vec3, size mgl32.Vec2) [4]mgl32.Vec3 {
	return [4]mgl32.Vec3{
		pos,
		{pos[0] + size[0], pos[1], pos[2]},
		{pos[0] + size[0], pos[1] + size[1], pos[2]},
		{pos[0], pos[1] + size[1], pos[2]},
	}
}

// RotatedQuadCorners rotates the quad at pos by angle radians about its own
// centre.
func RotatedQuadCorners(pos mgl32.Vec3, size mgl32.Vec2, angle float32) [4]mgl32.Vec3 {
	hw, hh := size[0]*0.5, size[1]*0.5
	cx, cy := pos[0]+hw, pos[1]+hh
	c, s := float32(math.Cos(float64(angle))), float32(math.Sin(float64(angle)))

	offsets := [4]mgl32.Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4]mgl32.Vec3
	for i, o := range offsets {
		out[i] = mgl32.Vec3{
			cx + o[0]*c - o[1]*s,
			cy + o[0]*s + o[1]*c,
			pos[2],
		}
	}
	return out
}

func flipUVs(uv [4]mgl32.Vec2, flipX, flipY bool) [4]mgl32.Vec2 {
	if flipX {
		uv[0], uv[1] = uv[1], uv[0]
		uv[2], uv[3] = uv[3], uv[2]
	}
	if flipY {
		uv[0], uv[3] = uv[3], uv[0]
		uv[1], uv[2] = uv[2], uv[1]
	}
	return uv
}

// Fill is what a quad is painted with: FlatColor, TextureFill or SpriteTile.
type Fill interface{ isFill() }

type FlatColor struct{}

// TextureFill samples the whole texture.
type TextureFill struct {
	Texture core.Texture
}

// SpriteTile samples one cell of a sprite sheet.
type SpriteTile struct {
	Sheet    *SpriteSheet
	Col, Row int
}

func (FlatColor) isFill()   {}
func (TextureFill) isFill() {}
func (SpriteTile) isFill()  {}

// Quad describes one quad. Position is the bottom-left corner before
// rotation; rotation is about the centre. Color is used as given, so a
// textured quad wants colors.White to sample unchanged. A zero Tiling is 1,1
// and a nil Fill is flat color.
type Quad struct {
	Position     mgl32.Vec3
	Size         mgl32.Vec2
	Rotation     float32
	Color        colors.Color
	Fill         Fill
	Tiling       mgl32.Vec2
	FlipX, FlipY bool
}

func (r *Renderer) DrawQuad(q Quad) {
	var pos [4]mgl32.Vec3
	if q.Rotation != 0 {
		pos = RotatedQuadCorners(q.Position, q.Size, q.Rotation)
	} else {
		pos = QuadCorners(q.Position, q.Size)
	}

	uv := fullUV
	var tex core.Texture
	switch f := q.Fill.(type) {
	case nil, FlatColor:
	case TextureFill:
		tex = f.Texture
	case SpriteTile:
		if f.Sheet != nil {
			tex = f.Sheet.Texture
			uv = f.Sheet.UVs(f.Col, f.Row)
		}
	}
	uv = flipUVs(uv, q.FlipX, q.FlipY)

	tiling := q.Tiling
	if tiling == (mgl32.Vec2{}) {
		tiling = mgl32.Vec2{1, 1}
	}
	r.AppendQuad(pos, uv, q.Color, tex, tiling)
}

// DrawRect is a flat colored axis-aligned quad at z=0.
func (r *Renderer) DrawRect(pos, size mgl32.Vec2, color colors.Color) {
	r.AppendQuad(QuadCorners(pos.Vec3(0), size), fullUV, color, core.Texture{}, mgl32.Vec2{1, 1})
}

// DrawQuadOutline draws a frame of the given width inside the rectangle as
// four quads.
func (r *Renderer) DrawQuadOutline(pos mgl32.Vec3, size mgl32.Vec2, width float32, color colors.Color) {
	w, h := size[0], size[1]
	width = min(width, w*0.5, h*0.5)
	if width <= 0 {
		return
	}
	side := h - 2*width
	edges := [4]struct{ off, size mgl32.Vec2 }{
		{mgl32.Vec2{0, 0}, mgl32.Vec2{w, width}},                // bottom
		{mgl32.Vec2{0, h - width}, mgl32.Vec2{w, width}},        // top
		{mgl32.Vec2{0, width}, mgl32.Vec2{width, side}},         // left
		{mgl32.Vec2{w - width, width}, mgl32.Vec2{width, side}}, // right
	}
	for _, e := range edges {
		p := mgl32.Vec3{pos[0] + e.off[0], pos[1] + e.off[1], pos[2]}
		r.AppendQuad(QuadCorners(p, e.size), fullUV, color, core.Texture{}, mgl32.Vec2{1, 1})
	}
}

// DrawText draws s with its first baseline starting at pos. See text.Layout.
func (r *Renderer) DrawText(f *text.Font, s string, pos mgl32.Vec2, lineHeight float32, color colors.Color, breakLines bool) {
	r.glyphs = text.Layout(r.glyphs[:0], f, s, pos, lineHeight, breakLines)
	for _, g := range r.glyphs {
		r.AppendQuad(
			QuadCorners(mgl32.Vec3{g.X, g.Y, 0}, mgl32.Vec2{g.W, g.H}),
			uvRect(g.U0, g.V0, g.U1, g.V1),
			color, f.Texture, mgl32.Vec2{1, 1},
		)
	}
}
