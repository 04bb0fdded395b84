package renderer2d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/text"
)

func approxCorners(a, b [4]mgl32.Vec3) bool {
	for i := range a {
		if !a[i].ApproxEqualThreshold(b[i], 1e-5) {
			return false
		}
	}
	return true
}

func TestQuadCorners(t *testing.T) {
	got := QuadCorners(mgl32.Vec3{1, 2, 0.5}, mgl32.Vec2{3, 4})
	want := [4]mgl32.Vec3{{1, 2, 0.5}, {4, 2, 0.5}, {4, 6, 0.5}, {1, 6, 0.5}}
	if got != want {
		t.Fatalf("corners = %v", got)
	}
}

func TestRotatedQuadCornersRotateAboutCentre(t *testing.T) {
	got := RotatedQuadCorners(mgl32.Vec3{}, mgl32.Vec2{2, 1}, math.Pi/2)
	want := [4]mgl32.Vec3{{1.5, -0.5, 0}, {1.5, 1.5, 0}, {0.5, 1.5, 0}, {0.5, -0.5, 0}}
	if !approxCorners(got, want) {
		t.Fatalf("corners = %v, want %v", got, want)
	}

	zero := RotatedQuadCorners(mgl32.Vec3{5, 5, 0}, mgl32.Vec2{2, 2}, 0)
	if !approxCorners(zero, QuadCorners(mgl32.Vec3{5, 5, 0}, mgl32.Vec2{2, 2})) {
		t.Fatal("zero rotation must match the axis-aligned quad")
	}
}

func TestSpriteSheetUVs(t *testing.T) {
	sheet := NewSpriteSheet(core.Texture{ID: 1, Width: 64, Height: 32}, 16, 16)
	if sheet.Cols != 4 || sheet.Rows != 2 {
		t.Fatalf("grid = %dx%d", sheet.Cols, sheet.Rows)
	}
	uv := sheet.UVs(1, 1)
	want := uvRect(17.0/64, 17.0/32, 31.0/64, 31.0/32)
	if uv != want {
		t.Fatalf("uv = %v, want %v", uv, want)
	}
	if sheet.UVs(9, -1) != sheet.UVs(0, 0) {
		t.Fatal("out of range cells fall back to 0,0")
	}
}

func TestSpriteSheetUsesGridExtent(t *testing.T) {
	// 70px wide texture with 16px cells: the 6px remainder is not part of the sheet.
	sheet := NewSpriteSheet(core.Texture{ID: 1, Width: 70, Height: 16}, 16, 16)
	if w, h := sheet.Size(); w != 64 || h != 16 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if u1 := sheet.UVs(3, 0)[1][0]; u1 != 63.0/64 {
		t.Fatalf("u1 = %v", u1)
	}
}

func TestFlipUVs(t *testing.T) {
	x := flipUVs(fullUV, true, false)
	if x[0] != (mgl32.Vec2{1, 0}) || x[3] != (mgl32.Vec2{1, 1}) {
		t.Fatalf("flipX = %v", x)
	}
	y := flipUVs(fullUV, false, true)
	if y[0] != (mgl32.Vec2{0, 1}) || y[2] != (mgl32.Vec2{1, 0}) {
		t.Fatalf("flipY = %v", y)
	}
	if flipUVs(fullUV, true, true) != [4]mgl32.Vec2{{1, 1}, {0, 1}, {0, 0}, {1, 0}} {
		t.Fatal("flipping both is a half turn")
	}
}

func TestDrawQuadFills(t *testing.T) {
	r, dev, _ := newTestRenderer(t, Options{})
	tex := newTexture(t, dev)
	sheet := NewSpriteSheet(core.Texture{ID: tex.ID, Width: 32, Height: 32}, 16, 16)

	r.DrawQuad(Quad{Size: mgl32.Vec2{1, 1}, Color: colors.White})
	r.DrawQuad(Quad{Size: mgl32.Vec2{1, 1}, Fill: TextureFill{Texture: tex}, Color: colors.Red, Tiling: mgl32.Vec2{4, 2}})
	r.DrawQuad(Quad{Size: mgl32.Vec2{1, 1}, Fill: SpriteTile{Sheet: sheet, Col: 1, Row: 0}, FlipX: true})
	r.DrawQuad(Quad{Position: mgl32.Vec3{0, 0, 0}, Size: mgl32.Vec2{2, 1}, Rotation: math.Pi / 2})
	r.Flush()

	d := dev.Draws[0]
	if v := vertexAt(d, 0); v.Color != colors.White || v.Tiling != (mgl32.Vec2{1, 1}) || v.TexSlot != 0 {
		t.Fatalf("flat quad = %+v", v)
	}
	if v := vertexAt(d, 4); v.Color != colors.Red || v.Tiling != (mgl32.Vec2{4, 2}) || v.TexSlot != 1 {
		t.Fatalf("textured quad = %+v", v)
	}
	sprite := vertexAt(d, 8)
	if sprite.TexSlot != 1 || sprite.UV != (mgl32.Vec2{31.0 / 32, 1.0 / 32}) {
		t.Fatalf("flipped sprite bottom-left = %+v", sprite)
	}
	if p := vertexAt(d, 12).Position; !p.ApproxEqualThreshold(mgl32.Vec3{1.5, -0.5, 0}, 1e-5) {
		t.Fatalf("rotated corner = %v", p)
	}
}

func TestDrawQuadKeepsTransparentBlack(t *testing.T) {
	r, dev, _ := newTestRenderer(t, Options{})
	r.DrawQuad(Quad{Size: mgl32.Vec2{1, 1}, Color: colors.Color{}})
	r.DrawQuad(Quad{Size: mgl32.Vec2{1, 1}})
	r.Flush()

	d := dev.Draws[0]
	for _, i := range []int{0, 4} {
		if v := vertexAt(d, i); v.Color != (colors.Color{}) {
			t.Fatalf("vertex %d color = %v, want transparent black", i, v.Color)
		}
	}
}

func TestDrawQuadOutline(t *testing.T) {
	r, dev, _ := newTestRenderer(t, Options{})
	r.DrawQuadOutline(mgl32.Vec3{10, 10, 0}, mgl32.Vec2{20, 10}, 2, colors.Yellow)
	if r.QuadCount() != 4 {
		t.Fatalf("quads = %d", r.QuadCount())
	}
	r.Flush()
	d := dev.Draws[0]
	// bottom, top, left, right: bottom-left corners
	want := []mgl32.Vec3{{10, 10, 0}, {10, 18, 0}, {10, 12, 0}, {28, 12, 0}}
	for i, w := range want {
		if p := vertexAt(d, i*4).Position; p != w {
			t.Fatalf("edge %d at %v, want %v", i, p, w)
		}
	}
	if tr := vertexAt(d, 3*4+2).Position; tr != (mgl32.Vec3{30, 18, 0}) {
		t.Fatalf("right edge top-right = %v", tr)
	}

	r.DrawQuadOutline(mgl32.Vec3{}, mgl32.Vec2{10, 10}, 0, colors.Yellow)
	if r.QuadCount() != 0 {
		t.Fatal("zero width outline draws nothing")
	}
}

func TestDrawText(t *testing.T) {
	r, dev, _ := newTestRenderer(t, Options{})
	f := &text.Font{Height: 10, Texture: newTexture(t, dev)}
	f.Glyphs['h'] = text.Glyph{Advance: 6, BearingY: 8, W: 5, H: 8, U0: 0.1, V0: 0.2, U1: 0.3, V1: 0.4}
	f.Glyphs['i'] = text.Glyph{Advance: 3, BearingY: 8, W: 2, H: 8}

	r.DrawText(f, "hi\nhi", mgl32.Vec2{0, 20}, 10, colors.Green, true)
	if r.QuadCount() != 4 {
		t.Fatalf("quads = %d", r.QuadCount())
	}
	slots := r.TextureSlots()
	if len(slots) != 1 || slots[0] != f.Texture {
		t.Fatalf("slots = %v", slots)
	}
	r.Flush()
	d := dev.Draws[0]
	if v := vertexAt(d, 0); v.Position != (mgl32.Vec3{0, 20, 0}) || v.UV != (mgl32.Vec2{0.1, 0.2}) || v.Color != colors.Green {
		t.Fatalf("first glyph = %+v", v)
	}
	if v := vertexAt(d, 2); v.UV != (mgl32.Vec2{0.3, 0.4}) {
		t.Fatalf("first glyph top-right uv = %v", v.UV)
	}
	if p := vertexAt(d, 8).Position; p != (mgl32.Vec3{0, 10, 0}) {
		t.Fatalf("second line = %v", p)
	}

	r.DrawText(nil, "hi", mgl32.Vec2{}, 10, colors.Green, false)
	if r.QuadCount() != 0 {
		t.Fatal("nil font draws nothing")
	}
}
