package config

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hubastard/snek/engine/gfx/gfxtest"
)

func TestParseOverDefaults(t *testing.T) {
	c, err := Parse([]byte(`
window:
  title: test
  width: 640
renderer:
  max_quads: 100
log_level: debug
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Window.Title != "test" || c.Window.Width != 640 || c.Window.Height != 720 {
		t.Fatalf("window = %+v", c.Window)
	}
	if c.Renderer.MaxQuads != 100 || c.Renderer.MaxTextureSlots != 16 {
		t.Fatalf("renderer = %+v", c.Renderer)
	}
	if l, _ := c.SlogLevel(); l != slog.LevelDebug {
		t.Fatalf("level = %v", l)
	}
	if cc := c.Core(); cc.Width != 640 || cc.Title != "test" {
		t.Fatalf("core config = %+v", cc)
	}
}

func TestParseEmptyIsDefault(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Fatalf("config = %+v", c)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":   "windw:\n  width: 3\n",
		"bad size":      "window:\n  width: 0\n",
		"bad level":     "log_level: loud\n",
		"bad capacity":  "renderer:\n  max_texture_slots: -1\n",
		"not yaml":      "window: [1, 2\n",
		"bad font size": "font_size: 0\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fs := gfxtest.NewFS()
	fs.Write("snek.yaml", "debug: true\n", time.Unix(1, 0))
	c, err := Load(fs, "snek.yaml")
	if err != nil || !c.Debug {
		t.Fatalf("c=%+v err=%v", c, err)
	}
	if _, err := Load(fs, "missing.yaml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	fs := gfxtest.NewFS()
	t0 := time.Unix(100, 0)
	fs.Write("tweaks.yaml", "game_speed: 4\n", t0)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := NewWatcher(fs, "tweaks.yaml", 0.5, DefaultTweaks(), ParseTweaks, log)
	if err != nil {
		t.Fatal(err)
	}
	if w.Value().GameSpeed != 4 || w.Value().ReverseFactor != 0.85 {
		t.Fatalf("value = %+v", w.Value())
	}

	fs.Write("tweaks.yaml", "game_speed: 12\n", t0.Add(time.Second))
	if w.Poll(0.25) {
		t.Fatal("poll before the interval")
	}
	if !w.Poll(0.25) || w.Value().GameSpeed != 12 {
		t.Fatalf("value = %+v", w.Value())
	}
	reads := fs.Reads("tweaks.yaml")
	if w.Poll(1) || fs.Reads("tweaks.yaml") != reads {
		t.Fatal("unchanged file must not be re-read")
	}

	fs.Write("tweaks.yaml", "game_speed: [\n", t0.Add(2*time.Second))
	if w.Poll(1) || w.Value().GameSpeed != 12 {
		t.Fatal("broken file keeps the previous value")
	}
}

func TestWatcherMissingFileUsesDefault(t *testing.T) {
	fs := gfxtest.NewFS()
	w, err := NewWatcher(fs, "tweaks.yaml", 0, DefaultTweaks(), ParseTweaks, nil)
	if err == nil || !strings.Contains(err.Error(), "tweaks.yaml") {
		t.Fatalf("err = %v", err)
	}
	if w.Value() != DefaultTweaks() {
		t.Fatal("default expected")
	}
	fs.Write("tweaks.yaml", "show_grid: true\n", time.Unix(5, 0))
	if !w.Poll(0) || !w.Value().ShowGrid {
		t.Fatal("file appearing later should be picked up")
	}
}
