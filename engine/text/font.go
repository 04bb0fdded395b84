package text

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hubastard/snek/engine/core"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// First and last byte rasterised into the atlas. Bytes are mapped to runes as
// Latin-1.
const (
	firstGlyph = 32
	lastGlyph  = 255
)

type Glyph struct {
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	U0, V0   float32 // bottom-left UV in the atlas
	U1, V1   float32 // top-right UV
}

// HasBitmap reports whether the glyph produces a quad.
func (g Glyph) HasBitmap() bool { return g.W > 0 && g.H > 0 }

// Font is a rasterised glyph atlas indexed by byte.
type Font struct {
	Height                   float32 // pixel height the atlas was built for
	Ascent, Descent, LineGap float32
	Glyphs                   [256]Glyph
	Texture                  core.Texture
	AtlasSize                int

	kerning map[[2]byte]float32
}

// Valid reports whether f can be drawn.
func (f *Font) Valid() bool { return f != nil && f.Texture.Valid() && f.Height > 0 }

// Kern returns the horizontal adjustment in pixels between a and b.
func (f *Font) Kern(a, b byte) float32 {
	if f.kerning == nil {
		return 0
	}
	return f.kerning[[2]byte{a, b}]
}

// SetKern overrides the kerning for a pair; 0 removes it.
func (f *Font) SetKern(a, b byte, px float32) {
	if px == 0 {
		delete(f.kerning, [2]byte{a, b})
		return
	}
	if f.kerning == nil {
		f.kerning = make(map[[2]byte]float32)
	}
	f.kerning[[2]byte{a, b}] = px
}

// LoadFont builds a white glyph atlas (alpha coverage) from TrueType/OpenType
// bytes and uploads it as an RGBA texture. The atlas is stored bottom row
// first like every other texture.
func LoadFont(dev core.Device, ttf []byte, heightPx float32) (*Font, error) {
	if heightPx <= 0 {
		return nil, fmt.Errorf("font height %v must be positive", heightPx)
	}
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(heightPx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer face.Close()

	// Metrics in pixels
	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	// Measure all glyph bounds/advances to pack a simple shelf atlas
	type meas struct {
		b      byte
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, lastGlyph-firstGlyph+1)
	for c := firstGlyph; c <= lastGlyph; c++ {
		br, adv, ok := face.GlyphBounds(rune(c))
		if !ok {
			continue
		}
		measure = append(measure, meas{
			b: byte(c),
			w: (br.Max.X - br.Min.X).Ceil(), h: (br.Max.Y - br.Min.Y).Ceil(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Floor()),
			by:  float32(-br.Min.Y.Floor()), // distance from baseline to top
		})
	}

	// Shelf packer (rows). Start with 256^2 and grow until everything fits.
	const padding = 2
	atlasSize := 256
	var pos [256]image.Point
	for {
		x, y, rowH := padding, padding, 0
		fits := true

		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+padding*2 > atlasSize || g.h+padding*2 > atlasSize {
				fits = false
				break
			}
			if x+g.w+padding > atlasSize {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > atlasSize {
				fits = false
				break
			}
			pos[g.b] = image.Pt(x, y)
			x += g.w + padding
			if g.h > rowH {
				rowH = g.h
			}
		}

		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > 4096 {
			return nil, fmt.Errorf("font atlas too large (>%d)", 4096)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.RGBA{}}, image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	f := &Font{
		Height:    heightPx,
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   lineGap,
		AtlasSize: atlasSize,
	}
	size := float32(atlasSize)
	for _, g := range measure {
		glyph := Glyph{Advance: g.adv, BearingX: g.bx, BearingY: g.by, W: g.w, H: g.h}
		if glyph.HasBitmap() {
			p := pos[g.b]
			// Drawer expects the dot on the baseline.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(rune(g.b)))

			// UVs in the vertically flipped atlas.
			glyph.U0 = float32(p.X) / size
			glyph.U1 = float32(p.X+g.w) / size
			glyph.V0 = float32(atlasSize-(p.Y+g.h)) / size
			glyph.V1 = float32(atlasSize-p.Y) / size
		}
		f.Glyphs[g.b] = glyph
	}

	for _, a := range measure {
		for _, b := range measure {
			if dx := face.Kern(rune(a.b), rune(b.b)); dx != 0 {
				f.SetKern(a.b, b.b, float32(dx.Round()))
			}
		}
	}

	tex, err := dev.CreateTexture(core.TextureDesc{
		Width:     atlasSize,
		Height:    atlasSize,
		Format:    core.TextureRGBA8,
		Pixels:    flipRows(dst.Pix, atlasSize*4, atlasSize),
		MinFilter: core.FilterLinear,
		MagFilter: core.FilterLinear,
		WrapU:     core.WrapClamp,
		WrapV:     core.WrapClamp,
	})
	if err != nil {
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}
	f.Texture = tex
	return f, nil
}

func flipRows(pix []byte, stride, rows int) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < rows; y++ {
		copy(out[(rows-1-y)*stride:(rows-y)*stride], pix[y*stride:(y+1)*stride])
	}
	return out
}
