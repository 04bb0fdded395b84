package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/profiler"
	"github.com/hubastard/snek/engine/scratch"
	"github.com/hubastard/snek/engine/text"
	"github.com/hubastard/snek/engine/ui"
	"github.com/hubastard/snek/game"
)

const (
	idQuit ui.ID = iota + 1
	idFullscreen
	idStart
	idRestart
	idStandard
	idBig
	idThird
	idWithWalls
	idCustom
	idBack
	idCreate
	idWidth
	idHeight
	idMoveTime
	idLooping
	idNoLooping
	idToMenu
	idReverse
	idPadLeft
	idPadDown
	idPadRight
	idPadUp
)

const (
	titleHeight     = 92
	scoreHeight     = 48
	countdownHeight = 128
	bannerHeight    = 64
	buttonSpace     = 4
	hudButton       = 40
	hudMargin       = 4
	padSide         = 16
	padMargin       = 7
)

var (
	menuButton   = mgl32.Vec2{192, 34}
	editorButton = mgl32.Vec2{160, 34}
	dimWhite     = colors.WithAlpha(colors.White, 0.5)
)

var levelChoices = [...]struct {
	id    ui.ID
	label string
	level game.LevelID
}{
	{idStandard, "standard", game.LevelStandard},
	{idBig, "big", game.LevelBig},
	{idThird, "third", game.LevelThird},
	{idWithWalls, "with walls", game.LevelWithWalls},
}

var moveTimeLabels = [len(game.CustomMoveTimes)]string{"0.05s", "0.10s", "0.20s", "0.50s", "1.00s"}

// menuLayer draws the main menu, the custom level editor and the in-round
// HUD into the UI target.
type menuLayer struct {
	app   *App
	theme ui.ButtonTheme
	pad   ui.ButtonTheme
	text  *scratch.Buffer

	choosingLevel bool
	editing       bool
	fullscreen    bool

	widthIdx  int
	heightIdx int
	timeIdx   int
	looping   bool
}

func newMenuLayer(a *App) *menuLayer {
	bg := ui.StateColors{
		Up:       colors.GrayA(0.55, 0.9),
		Hot:      colors.GrayA(0.65, 0.9),
		Down:     colors.GrayA(0.55, 0.9),
		Inactive: colors.GrayA(0.55, 0.9),
	}
	padBg := ui.StateColors{
		Up:       colors.GrayA(0.5, 1),
		Hot:      colors.GrayA(0.7, 1),
		Down:     colors.GrayA(0.9, 1),
		Inactive: colors.GrayA(0.9, 1),
	}
	return &menuLayer{
		app: a,
		theme: ui.ButtonTheme{
			Style:       ui.StyleBevel{},
			Font:        a.font,
			TextScale:   1,
			BorderWidth: 4,
			Text: ui.StateColors{
				Up:       colors.GrayA(0.1, 1),
				Hot:      colors.GrayA(0.1, 1),
				Down:     colors.GrayA(0.2, 1),
				Inactive: colors.GrayA(0.2, 1),
			},
			Background: bg,
			Border:     bg,
		},
		pad: ui.ButtonTheme{
			Style:       ui.StyleBevel{},
			Font:        a.font,
			TextScale:   1,
			BorderWidth: 3.5,
			Text: ui.StateColors{
				Up:       colors.Black,
				Hot:      colors.Black,
				Down:     colors.Black,
				Inactive: colors.Black,
			},
			Background: padBg,
			Border:     padBg,
		},
		text:      scratch.New(256),
		widthIdx:  1,
		heightIdx: 1,
		timeIdx:   1,
		looping:   true,
	}
}

func (l *menuLayer) OnAttach(e *core.Engine) error { return nil }

func (l *menuLayer) OnDetach(e *core.Engine) {}

func (l *menuLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *menuLayer) OnEvent(e *core.Engine, ev core.Event) bool { return false }

func (l *menuLayer) OnRender(e *core.Engine, f core.FrameTime) {
	g := l.app.game
	if g.Transition.Busy() {
		return
	}
	defer profiler.Start("menu")()
	l.text.Reset()

	c := l.app.ui
	c.Begin(e.Input)
	defer c.End()

	switch g.State {
	case game.StatePlaying:
		l.hud(e, float32(f.Time))
	case game.StateGameOver:
		l.menu(e)
		mark := l.text.Mark()
		l.text.S("GAME OVER\nSCORE: ").I(g.LastScore)
		l.result(l.text.ViewFrom(mark), 24)
	case game.StateWon:
		l.menu(e)
		l.result("WIN!!!", 48)
	default:
		l.menu(e)
	}
}

// pulse swings between 0.5 and 1 once every 2π seconds.
func pulse(time float32) float32 {
	return (float32(math.Cos(float64(time)))+1)*0.25 + 0.5
}

func (l *menuLayer) menu(e *core.Engine) {
	a, g, c, in := l.app, l.app.game, l.app.ui, e.Input
	w, h := c.Size()
	r := a.r

	tw, _ := text.Measure(a.font, "SNAKE", titleHeight, false)
	r.DrawText(a.font, "SNAKE", mgl32.Vec2{float32(w) - tw - 16, float32(h) - a.font.Ascender(titleHeight)}, titleHeight, dimWhite, false)

	if l.editing {
		l.editor()
		return
	}

	start, level := in.Released(core.KeyEnter), a.startWith
	if in.Released(core.KeyEscape) {
		e.Quit()
	}

	layout := ui.NewButtonLayout(ui.LayoutVertical, mgl32.Vec2{10, 10}, buttonSpace, menuButton, false)

	quitPos := layout.Next()
	if c.Button(idQuit, "quit", quitPos, menuButton, &l.theme, in.IsKeyDown(core.KeyEscape)) {
		e.Quit()
	}

	l.fullscreen = e.Window.Fullscreen()
	if c.Toggle(idFullscreen, "fullscreen", &l.fullscreen, layout.Next(), menuButton, &l.theme) {
		e.Window.SetFullscreen(l.fullscreen)
	}

	startPos := layout.Next()
	if g.LastPlayed == game.NoLevel {
		c.Toggle(idStart, "start game", &l.choosingLevel, startPos, menuButton, &l.theme)
	} else if c.Button(idStart, "continue", startPos, menuButton, &l.theme, false) {
		start = true
	}

	if l.choosingLevel {
		levels := ui.NewButtonLayout(ui.LayoutVertical, startPos.Add(mgl32.Vec2{menuButton[0] + buttonSpace, 0}), buttonSpace, menuButton, false)
		for _, choice := range levelChoices {
			if c.Button(choice.id, choice.label, levels.Next(), menuButton, &l.theme, false) {
				start, level = true, choice.level
				l.choosingLevel = false
			}
		}
		if c.Button(idCustom, "custom level", levels.Next(), menuButton, &l.theme, false) {
			l.editing = true
			l.choosingLevel = false
		}
	}

	if g.LastPlayed != game.NoLevel {
		if c.Button(idRestart, "restart", layout.Next(), menuButton, &l.theme, false) {
			g.Restart()
			return
		}
	}

	if !start {
		return
	}
	if !g.Continue() {
		g.Start(level)
	}
	l.choosingLevel = false
}

// editor is the custom level form: size, speed and looping, then create.
func (l *menuLayer) editor() {
	a, g, c := l.app, l.app.game, l.app.ui
	size := editorButton
	layout := ui.NewButtonLayout(ui.LayoutVertical, mgl32.Vec2{10, 10}, buttonSpace, size, false)

	row := ui.NewButtonLayout(ui.LayoutHorizontal, layout.Next(), buttonSpace, size, false)
	if c.Button(idBack, "back", row.Next(), size, &l.theme, false) {
		l.editing = false
	}
	if c.Button(idCreate, "create", row.Next(), size, &l.theme, false) {
		g.SetCustom(game.CustomParams(l.widthIdx, l.heightIdx, l.timeIdx, l.looping))
		g.Start(game.LevelCustom)
		l.editing = false
		a.log.Info("custom level",
			"width", game.CustomSizes[l.widthIdx],
			"height", game.CustomSizes[l.heightIdx],
			"move_time", game.CustomMoveTimes[l.timeIdx],
			"looping", l.looping)
		return
	}

	row = ui.NewButtonLayout(ui.LayoutHorizontal, layout.Next(), buttonSpace, size, false)
	mark := l.text.Mark()
	l.text.I(game.CustomSizes[l.widthIdx])
	if c.Button(idWidth, l.text.ViewFrom(mark), row.Next(), size, &l.theme, false) {
		l.widthIdx = (l.widthIdx + 1) % len(game.CustomSizes)
	}
	mark = l.text.Mark()
	l.text.I(game.CustomSizes[l.heightIdx])
	if c.Button(idHeight, l.text.ViewFrom(mark), row.Next(), size, &l.theme, false) {
		l.heightIdx = (l.heightIdx + 1) % len(game.CustomSizes)
	}

	if c.Button(idMoveTime, moveTimeLabels[l.timeIdx], layout.Next(), size, &l.theme, false) {
		l.timeIdx = (l.timeIdx + 1) % len(game.CustomMoveTimes)
	}

	row = ui.NewButtonLayout(ui.LayoutHorizontal, layout.Next(), buttonSpace, size, false)
	if c.Button(idLooping, "looping", row.Next(), size, &l.theme, l.looping) {
		l.looping = true
	}
	if c.Button(idNoLooping, "no-looping", row.Next(), size, &l.theme, !l.looping) {
		l.looping = false
	}
}

// result is the box left on the menu after a round.
func (l *menuLayer) result(s string, height float32) {
	a, c := l.app, l.app.ui
	_, h := c.Size()
	tw, th := text.Measure(a.font, s, height, true)
	theme := ui.LabelTheme{
		Font:       a.font,
		FontHeight: height,
		Color:      colors.White,
		Background: colors.GrayA(0.6, 0.3),
	}
	c.Label(s, mgl32.Vec2{16, float32(h) - 64}, mgl32.Vec2{tw * 1.05, th * 1.1}, &theme)
}

// banner draws s centred on at, pulsing in size.
func (l *menuLayer) banner(s string, at mgl32.Vec2, height float32) {
	if height <= 0 {
		return
	}
	a, c := l.app, l.app.ui
	tw, th := text.Measure(a.font, s, height, false)
	size := mgl32.Vec2{tw * 1.05, th * 1.2}
	theme := ui.LabelTheme{
		Font:       a.font,
		FontHeight: height,
		Color:      colors.White,
		Background: colors.Black,
	}
	c.Label(s, at.Sub(size.Mul(0.5)), size, &theme)
}

func (l *menuLayer) hud(e *core.Engine, time float32) {
	a, g, c, in := l.app, l.app.game, l.app.ui, e.Input
	w, h := c.Size()
	fw, fh := float32(w), float32(h)
	r := a.r

	level := g.Level()
	if level == nil {
		l.banner("INVALID LEVEL", mgl32.Vec2{fw * 0.5, fh * 0.5}, bannerHeight*pulse(time))
		return
	}

	if g.Ending() {
		s := "GAME OVER"
		if g.Won() {
			s = "WIN !!!"
		}
		l.banner(s, mgl32.Vec2{fw * 0.5, fh * 0.8}, bannerHeight*g.EndProgress()*pulse(time))
	}

	mark := l.text.Mark()
	l.text.S("SCORE: ").I(level.Score)
	score := l.text.ViewFrom(mark)
	sw, _ := text.Measure(a.font, score, scoreHeight, false)
	r.DrawText(a.font, score, mgl32.Vec2{fw - sw - 16, fh - a.font.Ascender(scoreHeight) - 4}, scoreHeight, dimWhite, false)

	if n := g.Countdown(); n > 0 {
		mark = l.text.Mark()
		l.text.C(byte('0' + max(0, min(9, int(math.Round(float64(n)+0.5))))))
		digit := l.text.ViewFrom(mark)
		dw, _ := text.Measure(a.font, digit, countdownHeight, false)
		r.DrawText(a.font, digit, mgl32.Vec2{fw*0.5 - dw*0.5, fh - a.font.Ascender(countdownHeight) - 25}, countdownHeight, colors.White, false)
	}

	btn := mgl32.Vec2{hudButton, hudButton}
	l.pad.TextScale = 1
	if c.Button(idToMenu, "x", mgl32.Vec2{hudMargin, fh - hudButton - hudMargin}, btn, &l.pad, false) {
		g.GotoMenu(true, false)
	}
	c.Toggle(idReverse, "", &g.ReverseColors, mgl32.Vec2{hudMargin + hudButton*1.05, fh - hudButton - hudMargin}, btn, &l.pad)

	l.pad.TextScale = 0.4
	side := mgl32.Vec2{padSide, padSide}
	origin := mgl32.Vec2{padSide + padMargin, padMargin}
	arrows := [...]struct {
		id  ui.ID
		key core.Key
		dir game.Cell
		off mgl32.Vec2
	}{
		{idPadLeft, core.KeyLeft, game.Left, mgl32.Vec2{-padSide, 0}},
		{idPadDown, core.KeyDown, game.Down, mgl32.Vec2{}},
		{idPadRight, core.KeyRight, game.Right, mgl32.Vec2{padSide, 0}},
		{idPadUp, core.KeyUp, game.Up, mgl32.Vec2{0, padSide}},
	}
	for _, ar := range arrows {
		// A held key shows its button pressed.
		if c.Button(ar.id, "", origin.Add(ar.off), side, &l.pad, in.IsKeyDown(ar.key)) {
			a.pad = ar.dir
		}
	}
}
