package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/profiler"
	"github.com/hubastard/snek/engine/scratch"
	"github.com/hubastard/snek/engine/text"
	"github.com/hubastard/snek/engine/ui"
)

const (
	idDebug ui.ID = iota + 100
	idPause
	idTestWin
	idFreeCamera
	idReverseColors
	idGrid
)

const (
	statsHeight   = 14
	statsMargin   = 8
	frameSamples  = 128
	framerateTick = 0.5
)

var debugButton = mgl32.Vec2{156, 32}

// debugLayer shows renderer and runtime statistics and a column of debug
// switches. F1 toggles debug mode; Ctrl+P captures a profile.
type debugLayer struct {
	app     *App
	theme   ui.ButtonTheme
	label   ui.LabelTheme
	text    *scratch.Buffer
	buttons bool

	frames    [frameSamples]float32
	frame     int
	filled    int
	sinceTick float32
	framerate int
}

func newDebugLayer(a *App) *debugLayer {
	return &debugLayer{
		app: a,
		theme: ui.ButtonTheme{
			Style:     ui.StyleShadow{Offset: 3, Color: colors.Color{0.2, 0.2, 0.2, 1}},
			Font:      a.font,
			TextScale: 1,
			Text: ui.StateColors{
				Up:       colors.Black,
				Hot:      colors.Black,
				Down:     colors.Black,
				Inactive: colors.Black,
			},
			Background: ui.StateColors{
				Up:       colors.GrayA(0.55, 1),
				Hot:      colors.GrayA(0.65, 1),
				Down:     colors.GrayA(0.8, 1),
				Inactive: colors.GrayA(0.8, 1),
			},
		},
		label: ui.LabelTheme{
			Font:       a.font,
			FontHeight: statsHeight,
			Color:      colors.White,
			Background: colors.GrayA(0.125, 0.4),
		},
		text: scratch.New(1024),
	}
}

func (l *debugLayer) OnAttach(e *core.Engine) error { return nil }

func (l *debugLayer) OnDetach(e *core.Engine) {}

func (l *debugLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *debugLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch {
	case k.Key == core.KeyF1:
		l.app.debug = !l.app.debug
		l.app.log.Info("debug mode", "on", l.app.debug)
		return true
	case k.Key == core.KeyP && k.Mods&core.ModCtrl != 0:
		path, err := profiler.Capture()
		if err != nil {
			l.app.log.Warn("profile capture failed", "err", err, "enabled", profiler.Enabled)
			return true
		}
		l.app.log.Info("profile captured", "path", path)
		return true
	}
	return false
}

// sample records the frame time and refreshes the averaged framerate every
// framerateTick seconds.
func (l *debugLayer) sample(dt float32) {
	l.frames[l.frame] = dt
	l.frame = (l.frame + 1) % frameSamples
	l.filled = min(l.filled+1, frameSamples)

	if l.sinceTick += dt; l.sinceTick < framerateTick {
		return
	}
	l.sinceTick -= framerateTick
	var sum float32
	for _, t := range l.frames {
		sum += t
	}
	if sum > 0 {
		l.framerate = int(float32(l.filled)/sum + 0.5)
	}
}

func (l *debugLayer) OnRender(e *core.Engine, f core.FrameTime) {
	a := l.app
	dt := float32(f.Delta)
	l.sample(dt)

	showStats := a.debug || a.tweaks.Value().ShowStats
	if !showStats {
		return
	}
	defer profiler.Start("debug")()

	c := a.ui
	c.Begin(e.Input)
	defer c.End()

	l.stats(e, f)
	if a.debug {
		l.switches()
	}
}

func (l *debugLayer) stats(e *core.Engine, f core.FrameTime) {
	a, g := l.app, l.app.game
	st := a.stats
	rt := profiler.ReadStats()
	info := e.Device.Info()

	b := l.text
	b.Reset()
	b.S("game_speed: ").F(float64(a.tweaks.Value().GameSpeed), 4).C('\n')
	b.S("state: ").S(g.State.String()).C('\n')
	b.S("level: ").S(g.Current.String()).C('\n')
	b.S("paused: ").Bool(g.Paused).C('\n')
	b.S("last_frame_draw_calls: ").I(st.DrawCalls).C('\n')
	b.S("last_frame_quads_drawn: ").I(st.QuadCount).C('\n')
	b.S("last_frame_texture_binds: ").I(st.TextureBinds).C('\n')
	b.S("last_frame_time: ").F(f.Delta, 5).C('\n')
	b.S("framerate: ").I(l.framerate).C('\n')
	b.S("heap: ").F(float64(rt.HeapAlloc)/(1<<20), 3).S(" MB\n")
	b.S("mallocs: ").U(rt.Mallocs).C('\n')
	b.S("goroutines: ").I(rt.Goroutines).C('\n')
	b.S("cpus: ").I(rt.CPUs).C('\n')
	b.S("profiler: ").Bool(profiler.Enabled).C('\n')
	b.S("gpu: ").S(info.Renderer)
	s := b.View()

	_, h := a.ui.Size()
	tw, th := text.Measure(a.font, s, statsHeight, true)
	a.ui.Label(s, mgl32.Vec2{statsMargin, float32(h) - th - statsMargin}, mgl32.Vec2{tw + 6, th * 1.05}, &l.label)
}

// switches is the column of debug buttons at the bottom right. Only the
// "debug" button shows until it is clicked.
func (l *debugLayer) switches() {
	a, g, c := l.app, l.app.game, l.app.ui
	w, _ := c.Size()
	layout := ui.NewButtonLayout(ui.LayoutVertical, mgl32.Vec2{float32(w) - debugButton[0] - 10, 10}, 0, debugButton, true)

	if !l.buttons {
		if c.Button(idDebug, "debug", layout.Next(), debugButton, &l.theme, false) {
			l.buttons = true
		}
		return
	}

	layout.Offset(6)
	pause := "pause"
	if g.Paused {
		pause = "unpause"
	}
	if c.Button(idPause, pause, layout.Next(), debugButton, &l.theme, false) {
		g.Paused = !g.Paused
	}
	if c.Button(idTestWin, "test_win", layout.Next(), debugButton, &l.theme, false) {
		g.EndRound(true)
	}
	free := "free"
	if a.world.FreeCamera {
		free = "lock"
	}
	if c.Button(idFreeCamera, free, layout.Next(), debugButton, &l.theme, false) {
		a.world.FreeCamera = !a.world.FreeCamera
	}
	if c.Button(idReverseColors, "...", layout.Next(), debugButton, &l.theme, false) {
		g.ReverseColors = !g.ReverseColors
	}
	c.Toggle(idGrid, "grid", &a.world.view.Debug, layout.Next(), debugButton, &l.theme)
	if c.Button(idDebug, "debug", layout.Next(), debugButton, &l.theme, false) {
		l.buttons = false
	}
}
