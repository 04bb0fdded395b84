package ui

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/gfx/gfxtest"
	"github.com/hubastard/snek/engine/gfx/renderer2d"
	"github.com/hubastard/snek/engine/text"
)

const (
	uiW = 200
	uiH = 100
)

func newTestUI(t *testing.T) (*Context, *renderer2d.Renderer, *gfxtest.Device) {
	t.Helper()
	dev := gfxtest.NewDevice()
	r, err := renderer2d.New(dev, gfxtest.NewFS(), renderer2d.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	r.SetViewport(renderer2d.Viewport{W: 800, H: 600})
	c, err := New(r, uiW, uiH)
	if err != nil {
		t.Fatal(err)
	}
	return c, r, dev
}

// moveTo places the cursor at UI coordinates (origin bottom-left).
func moveTo(in *core.Input, x, y float64) {
	in.Handle(core.EventMouseMove{X: x, Y: uiH - y})
}

var (
	buttonPos  = mgl32.Vec2{10, 10}
	buttonSize = mgl32.Vec2{50, 20}
	theme      = &ButtonTheme{
		BorderWidth: 2,
		Background:  StateColors{Up: colors.Gray, Hot: colors.LightGray, Down: colors.DarkGray, Inactive: colors.Black},
	}
)

func TestBeginEndRestoresState(t *testing.T) {
	c, r, dev := newTestUI(t)
	before := r.State()

	c.Begin(nil)
	if r.State().Target != c.Target() {
		t.Fatal("UI target should be bound between Begin and End")
	}
	if got := r.State().Viewport; got != (renderer2d.Viewport{W: uiW, H: uiH}) {
		t.Fatalf("viewport = %+v", got)
	}
	c.Label("", buttonPos, buttonSize, &LabelTheme{Background: colors.Red})
	c.End()

	if r.State() != before || r.Depth() != 0 {
		t.Fatalf("state after End = %+v", r.State())
	}
	last := dev.Draws[len(dev.Draws)-1]
	if last.Framebuffer != c.Target().Framebuffer().ID {
		t.Fatalf("label drawn into fb %d", last.Framebuffer)
	}
	if last.Viewport != [4]int{0, 0, uiW, uiH} {
		t.Fatalf("label drawn with viewport %v", last.Viewport)
	}
}

func TestBeginFrameClearsTarget(t *testing.T) {
	c, _, dev := newTestUI(t)
	c.BeginFrame()
	if len(dev.Clears) != 1 {
		t.Fatalf("clears = %v", dev.Clears)
	}
	cl := dev.Clears[0]
	if cl.Framebuffer != c.Target().Framebuffer().ID || cl.Color[3] != 0 {
		t.Fatalf("clear = %+v", cl)
	}
	if dev.BoundFramebuffer != 0 {
		t.Fatal("screen should be bound again")
	}
}

func TestButtonClick(t *testing.T) {
	c, _, _ := newTestUI(t)
	in := core.NewInput()

	moveTo(in, 20, 15)
	in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: true})
	c.Begin(in)
	if c.Button(1, "go", buttonPos, buttonSize, theme, false) {
		t.Fatal("press alone is not a click")
	}
	if c.Hot() != 1 || c.Active() != 1 {
		t.Fatalf("hot=%d active=%d", c.Hot(), c.Active())
	}
	c.End()

	in.BeginFrame()
	in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: false})
	c.Begin(in)
	if !c.Button(1, "go", buttonPos, buttonSize, theme, false) {
		t.Fatal("release over the button should click")
	}
	c.End()
	if c.Active() != 0 {
		t.Fatal("release clears the active widget")
	}
}

func TestButtonReleaseOutside(t *testing.T) {
	c, _, _ := newTestUI(t)
	in := core.NewInput()

	moveTo(in, 20, 15)
	in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: true})
	c.Begin(in)
	c.Button(1, "go", buttonPos, buttonSize, theme, false)
	c.End()

	in.BeginFrame()
	moveTo(in, 150, 80)
	in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: false})
	c.Begin(in)
	if c.Button(1, "go", buttonPos, buttonSize, theme, false) {
		t.Fatal("release away from the button must not click")
	}
	c.End()
	if c.Active() != 0 {
		t.Fatal("active should be cleared")
	}
}

func TestButtonDragOntoDoesNotClick(t *testing.T) {
	c, _, _ := newTestUI(t)
	in := core.NewInput()

	moveTo(in, 150, 80)
	in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: true})
	c.Begin(in)
	c.Button(1, "go", buttonPos, buttonSize, theme, false)
	c.End()

	in.BeginFrame()
	moveTo(in, 20, 15)
	c.Begin(in)
	c.Button(1, "go", buttonPos, buttonSize, theme, false)
	c.End()

	in.BeginFrame()
	in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: false})
	c.Begin(in)
	if c.Button(1, "go", buttonPos, buttonSize, theme, false) {
		t.Fatal("press started elsewhere")
	}
	c.End()
}

func TestInactiveButton(t *testing.T) {
	c, _, _ := newTestUI(t)
	in := core.NewInput()
	var seen ButtonState = -1
	custom := &ButtonTheme{Style: StyleCustom{Draw: func(_ *renderer2d.Renderer, _ string, s ButtonState, _, _ mgl32.Vec2, _ *ButtonTheme) {
		seen = s
	}}}

	moveTo(in, 20, 15)
	in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: true})
	c.Begin(in)
	c.Button(1, "x", buttonPos, buttonSize, custom, true)
	c.End()
	if seen != ButtonInactive || c.Active() != 0 {
		t.Fatalf("state = %v, active = %d", seen, c.Active())
	}

	c.Begin(in)
	c.Button(2, "x", buttonPos, buttonSize, custom, false)
	c.End()
	if seen != ButtonDown {
		t.Fatalf("state = %v", seen)
	}
}

func TestToggle(t *testing.T) {
	c, _, _ := newTestUI(t)
	in := core.NewInput()
	var on bool
	var seen ButtonState
	custom := &ButtonTheme{Style: StyleCustom{Draw: func(_ *renderer2d.Renderer, _ string, s ButtonState, _, _ mgl32.Vec2, _ *ButtonTheme) {
		seen = s
	}}}

	click := func() bool {
		in.BeginFrame()
		moveTo(in, 20, 15)
		in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: true})
		c.Begin(in)
		c.Toggle(3, "grid", &on, buttonPos, buttonSize, custom)
		c.End()
		in.BeginFrame()
		in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: false})
		c.Begin(in)
		changed := c.Toggle(3, "grid", &on, buttonPos, buttonSize, custom)
		c.End()
		return changed
	}

	if !click() || !on || seen != ButtonDown {
		t.Fatalf("first click: on=%v state=%v", on, seen)
	}
	moveTo(in, 150, 80)
	c.Begin(in)
	c.Toggle(3, "grid", &on, buttonPos, buttonSize, custom)
	c.End()
	if seen != ButtonDown {
		t.Fatal("an enabled toggle is drawn pressed")
	}
	if !click() || on {
		t.Fatal("second click turns it off")
	}
}

func quadColors(d gfxtest.DrawCall) []colors.Color {
	const floatsPerVertex, vertsPerQuad = 12, 4
	var out []colors.Color
	for i := 0; i+floatsPerVertex <= len(d.Vertices); i += floatsPerVertex * vertsPerQuad {
		v := d.Vertices[i:]
		out = append(out, colors.Color{v[3], v[4], v[5], v[6]})
	}
	return out
}

func TestButtonStyles(t *testing.T) {
	shadow := colors.Magenta
	tests := []struct {
		name  string
		style ButtonStyle
		down  bool
		want  []colors.Color
	}{
		{"simple", StyleSimple{}, false, []colors.Color{colors.Gray, {}, {}, {}, {}}},
		{"shadow up", StyleShadow{Offset: 4, Color: shadow}, false, []colors.Color{shadow, colors.Gray}},
		{"shadow down", StyleShadow{Offset: 4, Color: shadow}, true, []colors.Color{colors.DarkGray}},
		{"bevel", StyleBevel{}, false, []colors.Color{colors.Gray, {}, {}, {}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, dev := newTestUI(t)
			th := *theme
			th.Style = tt.style
			in := core.NewInput()
			moveTo(in, 150, 80)
			if tt.down {
				moveTo(in, 20, 15)
				in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: true})
			}
			dev.ResetLog()
			c.Begin(in)
			c.Button(1, "", buttonPos, buttonSize, &th, false)
			c.End()

			if len(dev.Draws) != 1 {
				t.Fatalf("draws = %d", len(dev.Draws))
			}
			got := quadColors(dev.Draws[0])
			if len(got) != len(tt.want) {
				t.Fatalf("quads = %v", got)
			}
			if got[0] != tt.want[0] {
				t.Fatalf("first quad color = %v, want %v", got[0], tt.want[0])
			}
			if len(tt.want) > 1 && tt.want[1] != (colors.Color{}) && got[1] != tt.want[1] {
				t.Fatalf("second quad color = %v, want %v", got[1], tt.want[1])
			}
		})
	}
}

func TestResize(t *testing.T) {
	c, _, _ := newTestUI(t)
	old := c.Target().Texture()
	if err := c.Resize(0, 50); err != nil {
		t.Fatal(err)
	}
	if w, h := c.Size(); w != uiW || h != uiH {
		t.Fatal("zero size must be ignored")
	}
	if err := c.Resize(320, 240); err != nil {
		t.Fatal(err)
	}
	if w, h := c.Target().Size(); w != 320 || h != 240 {
		t.Fatalf("target = %dx%d", w, h)
	}
	if c.Target().Texture() == old {
		t.Fatal("resize recreates the color attachment")
	}
}

func TestButtonLayout(t *testing.T) {
	l := NewButtonLayout(LayoutVertical, mgl32.Vec2{100, 100}, 10, mgl32.Vec2{80, 30}, false)
	l.Offset(3)
	want := []mgl32.Vec2{{100, 20}, {100, 60}, {100, 100}}
	for i, w := range want {
		if got := l.Next(); got != w {
			t.Fatalf("button %d at %v, want %v", i, got, w)
		}
	}

	h := NewButtonLayout(LayoutHorizontal, mgl32.Vec2{0, 0}, 5, mgl32.Vec2{20, 10}, true)
	h.Next()
	if got := h.Next(); got != (mgl32.Vec2{-25, 0}) {
		t.Fatalf("reversed horizontal = %v", got)
	}
	if s := h.Span(3); s != 70 {
		t.Fatalf("span = %v", s)
	}
}

func TestLabelClipsMultilineText(t *testing.T) {
	styles := []struct {
		name  string
		style LabelStyle
	}{
		{"simple", LabelSimple{}},
		{"shadow", LabelShadow{Offset: 2, Color: colors.Black}},
	}
	sizes := []struct {
		name string
		size mgl32.Vec2
		clip bool
	}{
		// Two lines of "aa" measure 12×20.
		{"too short", mgl32.Vec2{30, 15}, true},
		{"fits", mgl32.Vec2{20, 30}, false},
	}
	for _, st := range styles {
		for _, sz := range sizes {
			c, _, dev := newTestUI(t)
			tex, err := dev.CreateTexture(core.TextureDesc{Width: 1, Height: 1})
			if err != nil {
				t.Fatal(err)
			}
			f := &text.Font{Height: 10, Texture: tex}
			f.Glyphs['a'] = text.Glyph{Advance: 6, W: 5, H: 8}
			theme := &LabelTheme{Style: st.style, Font: f, FontHeight: 10, Color: colors.White}

			c.Begin(nil)
			c.Label("aa\naa", mgl32.Vec2{}, sz.size, theme)
			c.End()

			if clipped := dev.Scissor != [4]int{}; clipped != sz.clip {
				t.Fatalf("%s/%s: clipped = %v, want %v", st.name, sz.name, clipped, sz.clip)
			}
			if dev.ScissorEnabled {
				t.Fatalf("%s/%s: clip left enabled", st.name, sz.name)
			}
		}
	}
}
