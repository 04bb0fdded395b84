package renderer2d

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/core"
)

// spritePad insets each cell by one texel so neighbours never bleed in.
const spritePad = 1

// SpriteSheet is a texture cut into a grid of equally sized cells. Rows are
// counted from the bottom of the (flipped) texture.
type SpriteSheet struct {
	Texture      core.Texture
	CellW, CellH int
	Cols, Rows   int
}

func NewSpriteSheet(tex core.Texture, cellW, cellH int) *SpriteSheet {
	s := &SpriteSheet{Texture: tex, CellW: cellW, CellH: cellH}
	if cellW > 0 && cellH > 0 {
		s.Cols = tex.Width / cellW
		s.Rows = tex.Height / cellH
	}
	return s
}

// Size is the pixel extent covered by the grid.
func (s *SpriteSheet) Size() (w, h int) { return s.Cols * s.CellW, s.Rows * s.CellH }

// UVs returns the corner UVs of cell (col,row) in bottom-left, bottom-right,
// top-right, top-left order. Out of range indices fall back to 0.
func (s *SpriteSheet) UVs(col, row int) [4]mgl32.Vec2 {
	w, h := s.Size()
	if w == 0 || h == 0 {
		return fullUV
	}
	if col < 0 || col >= s.Cols {
		col = 0
	}
	if row < 0 || row >= s.Rows {
		row = 0
	}
	sw, sh := float32(w), float32(h)
	u0 := float32(col*s.CellW+spritePad) / sw
	v0 := float32(row*s.CellH+spritePad) / sh
	u1 := float32((col+1)*s.CellW-spritePad) / sw
	v1 := float32((row+1)*s.CellH-spritePad) / sh
	return uvRect(u0, v0, u1, v1)
}
