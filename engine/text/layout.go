package text

import "github.com/go-gl/mathgl/mgl32"

// GlyphQuad is one positioned glyph. X, Y is the bottom-left corner in a y-up
// space.
type GlyphQuad struct {
	X, Y, W, H     float32
	U0, V0, U1, V1 float32
}

// Layout appends one quad per visible byte of s to dst. origin is the
// baseline start of the first line; glyphs are scaled so that the font height
// maps to lineHeight. A '\n' starts a new line below when breakLines is set
// and is skipped otherwise.
func Layout(dst []GlyphQuad, f *Font, s string, origin mgl32.Vec2, lineHeight float32, breakLines bool) []GlyphQuad {
	if !f.Valid() {
		return dst
	}
	scale := lineHeight / f.Height
	x, y := origin.X(), origin.Y()
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			if breakLines {
				x = origin.X()
				y -= lineHeight
			}
			continue
		}
		g := f.Glyphs[c]
		if g.HasBitmap() {
			dst = append(dst, GlyphQuad{
				X:  x + g.BearingX*scale,
				Y:  y + (g.BearingY-float32(g.H))*scale,
				W:  float32(g.W) * scale,
				H:  float32(g.H) * scale,
				U0: g.U0, V0: g.V0, U1: g.U1, V1: g.V1,
			})
		}
		x += g.Advance * scale
		if i+1 < len(s) {
			x += f.Kern(c, s[i+1]) * scale
		}
	}
	return dst
}

// Measure returns the advance width of the widest line and the total height
// of s at lineHeight.
func Measure(f *Font, s string, lineHeight float32, breakLines bool) (width, height float32) {
	if !f.Valid() || len(s) == 0 {
		return 0, 0
	}
	scale := lineHeight / f.Height
	var lineW float32
	height = lineHeight
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			if breakLines {
				width = max(width, lineW)
				lineW = 0
				height += lineHeight
			}
			continue
		}
		lineW += f.Glyphs[c].Advance * scale
		if i+1 < len(s) {
			lineW += f.Kern(c, s[i+1]) * scale
		}
	}
	return max(width, lineW), height
}

// Baseline-to-top distance at lineHeight (useful to position text by its top).
func (f *Font) Ascender(lineHeight float32) float32 {
	if !f.Valid() {
		return 0
	}
	return f.Ascent * lineHeight / f.Height
}
