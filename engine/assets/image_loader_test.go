package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/gfx/gfxtest"
)

// twoRowPNG encodes a 1x2 image: red on top, blue below.
func twoRowPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	data := twoRowPNG(t)

	w, h, pix, err := DecodePNG(data, false)
	if err != nil {
		t.Fatal(err)
	}
	if w != 1 || h != 2 || len(pix) != 8 {
		t.Fatalf("size = %dx%d, %d bytes", w, h, len(pix))
	}
	if pix[0] != 255 || pix[6] != 255 {
		t.Fatalf("unflipped pixels = %v", pix)
	}

	_, _, flipped, err := DecodePNG(data, true)
	if err != nil {
		t.Fatal(err)
	}
	if flipped[2] != 255 || flipped[4] != 255 {
		t.Fatalf("flipped pixels = %v", flipped)
	}
}

func TestDecodePNGRejectsGarbage(t *testing.T) {
	if _, _, _, err := DecodePNG([]byte("not a png"), true); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadTexture(t *testing.T) {
	files := gfxtest.NewFS()
	files.Write("textures/a.png", string(twoRowPNG(t)), time.Unix(1, 0))
	dev := gfxtest.NewDevice()

	tex, err := LoadTexture(dev, files, "textures/a.png", core.TextureDesc{MinFilter: core.FilterNearest})
	if err != nil {
		t.Fatal(err)
	}
	if !tex.Valid() || tex.Width != 1 || tex.Height != 2 {
		t.Fatalf("tex = %+v", tex)
	}
	desc := dev.Textures[tex.ID]
	if desc.Format != core.TextureRGBA8 || len(desc.Pixels) != 8 {
		t.Fatalf("desc = %+v", desc)
	}

	if _, err := LoadTexture(dev, files, "textures/none.png", core.TextureDesc{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
