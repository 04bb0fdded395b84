package main

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/particles"
	"github.com/hubastard/snek/engine/profiler"
	"github.com/hubastard/snek/engine/scene"
	"github.com/hubastard/snek/game"
)

const (
	bgMaxParticles  = 8096
	winMaxParticles = 16384
	winSpawnRate    = 1024

	// Scroll notches are scaled up to match a held zoom key.
	scrollZoom = 20
	zoomSpeed  = 16

	// Pixels per world unit for the free camera.
	freeCameraScale = 32
)

var bounds = colors.WithAlpha(colors.Cyan, 0.4)

// bgParams is the slow drift of dots behind every board.
func bgParams(tex core.Texture) particles.Params {
	return particles.Params{
		Area:         particles.QuadArea{Sides: mgl32.Vec2{160, 160}},
		Textures:     []core.Texture{tex},
		Size:         particles.Between(mgl32.Vec2{0.2, 0.2}, mgl32.Vec2{0.4, 0.4}),
		DesiredSize:  particles.Between(mgl32.Vec2{0.05, 0.05}, mgl32.Vec2{}),
		Rotation:     particles.Fixed[float32](0),
		Direction:    particles.Between[float32](0, 2*math.Pi),
		Color:        particles.Between(colors.White, colors.GrayA(0.9, 1)),
		DesiredColor: particles.Between(colors.WithAlpha(colors.White, 0.2), colors.WithAlpha(colors.White, 0.4)),
		LifeTime:     particles.Between[float32](2, 4),
		FadeIn:       particles.Between[float32](0.2, 0.4),
	}
}

// winParams turns the background into colored confetti blowing downwards.
func winParams(tex core.Texture, rng *rand.Rand) particles.Params {
	p := bgParams(tex)
	p.MoveSpeed = particles.Fixed[float32](2)
	p.Direction = particles.Between[float32](-math.Pi, 0)
	p.Size = particles.Between(mgl32.Vec2{0.2, 0.2}, mgl32.Vec2{0.8, 0.8})
	p.Color = particles.Between(randomColor(rng), randomColor(rng))
	p.DesiredColor = particles.Between(randomColor(rng), randomColor(rng))
	return p
}

func randomColor(rng *rand.Rand) colors.Color {
	return colors.Color{rng.Float32(), rng.Float32(), rng.Float32(), 1}
}

// worldLayer steps the game and draws the board with its particles into the
// scene target.
type worldLayer struct {
	app     *App
	view    *game.LevelView
	tex     core.Texture
	bg      *particles.System
	rng     *rand.Rand
	winning bool

	// FreeCamera detaches the view from the level camera. It is only honoured
	// in debug mode; a level that was never built always uses it.
	FreeCamera bool
	freeCam    *scene.Ortho
	free       *scene.FreeController
}

func newWorldLayer(a *App, view *game.LevelView, tex core.Texture) *worldLayer {
	seed := uint64(time.Now().UnixNano())
	cam := scene.NewOrtho(1, 1)
	cam.SetZoom(freeCameraScale)
	return &worldLayer{
		app:     a,
		view:    view,
		tex:     tex,
		bg:      particles.New(bgMaxParticles, 256, bgParams(tex), seed),
		rng:     rand.New(rand.NewPCG(seed, 2137)),
		freeCam: cam,
		free:    scene.NewFreeController(cam),
	}
}

func (l *worldLayer) OnAttach(e *core.Engine) error { return nil }

func (l *worldLayer) OnDetach(e *core.Engine) {
	l.view.Delete()
}

func (l *worldLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *worldLayer) setSpawnRate(perSecond float32) {
	if !l.winning {
		l.bg.SpawnsPerSecond = perSecond
	}
}

// resetParticles brings back the background drift after a win.
func (l *worldLayer) resetParticles() {
	if !l.winning {
		return
	}
	l.winning = false
	l.bg = particles.New(bgMaxParticles, l.app.tweaks.Value().ParticlesPerSecond, bgParams(l.tex), l.rng.Uint64())
}

func (l *worldLayer) celebrate() {
	l.winning = true
	l.bg = particles.New(winMaxParticles, winSpawnRate, winParams(l.tex, l.rng), l.rng.Uint64())
}

func (l *worldLayer) OnRender(e *core.Engine, f core.FrameTime) {
	defer profiler.Start("world")()
	a, g, in := l.app, l.app.game, e.Input
	dt := float32(f.Delta)

	dir := steering(in)
	if dir.IsZero() {
		dir = a.pad
	}
	a.pad = game.Cell{}

	level := g.MenuLevel()
	if g.State == game.StatePlaying {
		level = g.Level()
		if !g.Ending() && !g.Transition.Busy() && in.Released(core.KeyEscape) {
			g.GotoMenu(true, false)
		}
	}
	if level != nil && !g.Transition.Busy() && (!l.FreeCamera || !a.debug) {
		l.zoom(in, level, dt)
	}

	g.Update(game.Frame{
		Dt:     dt,
		Speed:  a.tweaks.Value().GameSpeed,
		Dir:    dir,
		Aspect: a.aspect(),
	})

	switch {
	case g.State == game.StatePlaying && g.Ending() && g.Won() && !l.winning:
		l.celebrate()
	case g.State == game.StatePlaying && !g.Ending():
		l.resetParticles()
	}

	// Nothing is drawn while the fade heads to opaque.
	if g.Transition.Busy() {
		return
	}

	// The game may have switched boards during Update.
	level = g.MenuLevel()
	if g.State == game.StatePlaying {
		level = g.Level()
	}

	r := a.r
	free := level == nil || (l.FreeCamera && a.debug)
	if free {
		l.freeCam.SetViewport(float32(a.width), float32(a.height))
		l.free.Update(in, dt)
		r.SetCamera(l.freeCam)
	} else {
		r.SetCamera(&level.Camera)
	}

	l.bg.Position = mgl32.Vec2{}
	if level != nil {
		l.bg.Position = mgl32.Vec2{float32(level.Width) * 0.5, float32(level.Height) * 0.5}
	}
	if !g.Paused {
		l.bg.Update(dt)
	}
	l.bg.Draw(r)
	if a.debug {
		l.bg.DrawBounds(r, bounds)
	}

	if err := l.view.Draw(level, float32(f.Time)); err != nil {
		a.log.Error("draw level", "err", err)
	}
	r.Flush()
}

// zoom moves the level camera in and out: Home resets, PageUp/PageDown or
// the scroll wheel zoom.
func (l *worldLayer) zoom(in *core.Input, level *game.Level, dt float32) {
	if in.Pressed(core.KeyHome) {
		level.ResetZoom()
		return
	}
	var d float32
	if in.IsKeyDown(core.KeyPageUp) {
		d--
	}
	if in.IsKeyDown(core.KeyPageDown) {
		d++
	}
	if d == 0 {
		d = -float32(in.Scroll()) * scrollZoom
	}
	if d != 0 {
		level.Zoom(d * dt * zoomSpeed)
	}
}

func (l *worldLayer) OnEvent(e *core.Engine, ev core.Event) bool { return false }

// steering reads this frame's arrow key press, last listed wins.
func steering(in *core.Input) game.Cell {
	var d game.Cell
	if in.Pressed(core.KeyUp) {
		d = game.Up
	}
	if in.Pressed(core.KeyDown) {
		d = game.Down
	}
	if in.Pressed(core.KeyLeft) {
		d = game.Left
	}
	if in.Pressed(core.KeyRight) {
		d = game.Right
	}
	return d
}
