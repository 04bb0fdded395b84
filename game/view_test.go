package game

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/gfx/gfxtest"
	"github.com/hubastard/snek/engine/gfx/renderer2d"
)

func newTestView(t *testing.T) (*LevelView, *renderer2d.Renderer, *gfxtest.Device) {
	t.Helper()
	dev := gfxtest.NewDevice()
	r, err := renderer2d.New(dev, gfxtest.NewFS(), renderer2d.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	r.SetViewport(renderer2d.Viewport{W: 640, H: 480})
	tex, err := dev.CreateTexture(core.TextureDesc{Width: 256, Height: 256, Format: core.TextureRGBA8})
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewLevelView(r, renderer2d.NewSpriteSheet(tex, 64, 64), nil)
	if err != nil {
		t.Fatal(err)
	}
	return v, r, dev
}

func framebufferCreates(dev *gfxtest.Device) int {
	n := 0
	for _, c := range dev.Calls {
		if strings.HasPrefix(c, "create_framebuffer") {
			n++
		}
	}
	return n
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{16, 16, 16 * TilePixels, 16 * TilePixels},
		{16, 1, 16 * TilePixels, TilePixels},
		{64, 64, 4096, 4096},
		{64, 32, 4096, 2048},
	}
	for _, tt := range tests {
		w, h := TargetSize(&Level{Width: tt.w, Height: tt.h})
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("TargetSize(%dx%d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestLevelViewResizesOnlyOnChange(t *testing.T) {
	v, _, dev := newTestView(t)
	p, _ := Preset(LevelStandard)
	l := testLevel(p)

	before := framebufferCreates(dev)
	if err := v.Draw(l, 0); err != nil {
		t.Fatal(err)
	}
	if got := framebufferCreates(dev) - before; got != 1 {
		t.Fatalf("first draw created %d framebuffers, want 1", got)
	}
	if w, h := v.Target().Size(); w != 16*TilePixels || h != 16*TilePixels {
		t.Fatalf("target = %dx%d", w, h)
	}

	before = framebufferCreates(dev)
	for range 3 {
		if err := v.Draw(l, 0); err != nil {
			t.Fatal(err)
		}
	}
	if got := framebufferCreates(dev) - before; got != 0 {
		t.Fatalf("same sized level recreated the target %d times", got)
	}

	menu := testLevel(MenuParams)
	if err := v.Draw(menu, 0); err != nil {
		t.Fatal(err)
	}
	if w, h := v.Target().Size(); w != 16*TilePixels || h != TilePixels {
		t.Fatalf("target = %dx%d after switching boards", w, h)
	}
}

func TestLevelViewRestoresState(t *testing.T) {
	v, r, _ := newTestView(t)
	p, _ := Preset(LevelThird)
	before := r.State()
	if err := v.Draw(testLevel(p), 1.5); err != nil {
		t.Fatal(err)
	}
	if r.Depth() != 0 {
		t.Fatalf("depth = %d", r.Depth())
	}
	if r.State() != before {
		t.Fatal("Draw should leave the caller's state as it found it")
	}
}

func TestLevelViewComposites(t *testing.T) {
	v, r, dev := newTestView(t)
	p, _ := Preset(LevelStandard)
	v.Debug = true
	if err := v.Draw(testLevel(p), 0); err != nil {
		t.Fatal(err)
	}
	r.Flush()

	target := v.Target().Framebuffer().ID
	var intoTarget, intoScreen bool
	for _, d := range dev.Draws {
		switch d.Framebuffer {
		case target:
			intoTarget = true
		case 0:
			for _, tex := range d.Textures {
				if tex == v.Target().Texture() {
					intoScreen = true
				}
			}
		}
	}
	if !intoTarget || !intoScreen {
		t.Fatalf("board pass = %v, composite = %v", intoTarget, intoScreen)
	}

	var cleared bool
	for _, c := range dev.Clears {
		if c.Framebuffer == target && c.Color == [4]float32(boardClear) {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("board target should be cleared before drawing")
	}
}

func TestLevelViewNilLevel(t *testing.T) {
	v, r, dev := newTestView(t)
	if err := v.Draw(nil, 0); err != nil {
		t.Fatal(err)
	}
	r.Flush()
	if len(dev.Draws) != 0 {
		t.Fatal("nothing to draw")
	}
}
