package text

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/core"
)

// testFont is a 10px font where 'a' is a 4x6 bitmap with a 1px bearing and
// 'b' is 2x10 hanging 2px below the baseline.
func testFont() *Font {
	f := &Font{Height: 10, Ascent: 8, Descent: -2, Texture: core.Texture{ID: 7, Width: 64, Height: 64}}
	f.Glyphs['a'] = Glyph{Advance: 5, BearingX: 1, BearingY: 6, W: 4, H: 6, U0: 0, V0: 0, U1: 0.25, V1: 0.5}
	f.Glyphs['b'] = Glyph{Advance: 3, BearingX: 0, BearingY: 8, W: 2, H: 10, U0: 0.5, V0: 0.5, U1: 1, V1: 1}
	f.Glyphs[' '] = Glyph{Advance: 4}
	return f
}

func TestLayoutPositions(t *testing.T) {
	f := testFont()
	got := Layout(nil, f, "a b", mgl32.Vec2{100, 50}, 10, false)
	if len(got) != 2 {
		t.Fatalf("quads = %d, want 2 (space has no bitmap)", len(got))
	}
	a, b := got[0], got[1]
	if a.X != 101 || a.Y != 50 || a.W != 4 || a.H != 6 {
		t.Fatalf("a = %+v", a)
	}
	// 5 for 'a', 4 for ' '
	if b.X != 109 || b.Y != 48 || b.H != 10 {
		t.Fatalf("b = %+v", b)
	}
	if b.U0 != 0.5 || b.V1 != 1 {
		t.Fatalf("b uv = %+v", b)
	}
}

func TestLayoutScaleAndKerning(t *testing.T) {
	f := testFont()
	f.SetKern('a', 'a', -1)
	got := Layout(nil, f, "aa", mgl32.Vec2{}, 20, false)
	if len(got) != 2 {
		t.Fatalf("quads = %d", len(got))
	}
	if got[0].W != 8 || got[0].H != 12 || got[0].X != 2 {
		t.Fatalf("scaled a = %+v", got[0])
	}
	// (advance 5 + kern -1) * 2 + bearing 1*2
	if got[1].X != 10 {
		t.Fatalf("second a x = %v, want 10", got[1].X)
	}
}

func TestLayoutLineBreaks(t *testing.T) {
	f := testFont()

	broken := Layout(nil, f, "a\na", mgl32.Vec2{0, 100}, 10, true)
	if len(broken) != 2 || broken[1].X != 1 || broken[1].Y != 90 {
		t.Fatalf("broken = %+v", broken)
	}

	flat := Layout(nil, f, "a\na", mgl32.Vec2{0, 100}, 10, false)
	if len(flat) != 2 || flat[1].Y != 100 || flat[1].X != 6 {
		t.Fatalf("flat = %+v", flat)
	}
}

func TestLayoutInvalidFont(t *testing.T) {
	if got := Layout(nil, nil, "abc", mgl32.Vec2{}, 10, false); len(got) != 0 {
		t.Fatal("nil font emits nothing")
	}
	if got := Layout(nil, &Font{Height: 10}, "abc", mgl32.Vec2{}, 10, false); len(got) != 0 {
		t.Fatal("font without texture emits nothing")
	}
}

func TestMeasure(t *testing.T) {
	f := testFont()
	w, h := Measure(f, "ab", 10, false)
	if w != 8 || h != 10 {
		t.Fatalf("Measure = %v,%v", w, h)
	}
	w, h = Measure(f, "ab\na", 20, true)
	if w != 16 || h != 40 {
		t.Fatalf("Measure multiline = %v,%v", w, h)
	}
	if w, h := Measure(f, "", 10, true); w != 0 || h != 0 {
		t.Fatalf("empty = %v,%v", w, h)
	}
}
