package text

import (
	"testing"

	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/gfx/gfxtest"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFont(t *testing.T) {
	dev := gfxtest.NewDevice()
	f, err := LoadFont(dev, goregular.TTF, 32)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Valid() {
		t.Fatal("font should be valid")
	}
	desc, ok := dev.Textures[f.Texture.ID]
	if !ok || desc.Format != core.TextureRGBA8 {
		t.Fatalf("atlas texture = %+v", desc)
	}
	if len(desc.Pixels) != f.AtlasSize*f.AtlasSize*4 {
		t.Fatalf("atlas pixels = %d bytes", len(desc.Pixels))
	}

	a := f.Glyphs['A']
	if !a.HasBitmap() || a.Advance <= 0 {
		t.Fatalf("glyph A = %+v", a)
	}
	if a.U0 >= a.U1 || a.V0 >= a.V1 {
		t.Fatalf("glyph A uv = %v,%v %v,%v", a.U0, a.V0, a.U1, a.V1)
	}
	if sp := f.Glyphs[' ']; sp.HasBitmap() || sp.Advance <= 0 {
		t.Fatalf("space = %+v", sp)
	}
	if f.Ascent <= 0 || f.Descent >= 0 {
		t.Fatalf("metrics ascent=%v descent=%v", f.Ascent, f.Descent)
	}
}

func TestLoadFontErrors(t *testing.T) {
	dev := gfxtest.NewDevice()
	if _, err := LoadFont(dev, []byte("nope"), 16); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadFont(dev, goregular.TTF, 0); err == nil {
		t.Fatal("expected height error")
	}
}

func TestKern(t *testing.T) {
	var f Font
	if f.Kern('A', 'V') != 0 {
		t.Fatal("zero font has no kerning")
	}
	f.SetKern('A', 'V', -2)
	if f.Kern('A', 'V') != -2 || f.Kern('V', 'A') != 0 {
		t.Fatal("kerning is ordered")
	}
	f.SetKern('A', 'V', 0)
	if f.Kern('A', 'V') != 0 {
		t.Fatal("zero removes the pair")
	}
}
