// Package game holds the snake rules: levels, the menu and round state
// machine, and the level view drawn through renderer2d.
package game

import (
	"log/slog"
	"math/rand/v2"
)

type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
	StateWon
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	case StateWon:
		return "won"
	}
	return "unknown"
}

const (
	StartCountdown = 3.0 // seconds before a round starts moving
	GameOverWait   = 2.0 // seconds the board stays up after a round ends

	reverseTarget = 0.85
	reverseSpeed  = 5
	startupFade   = 2
)

type Options struct {
	Seed            uint64
	TransitionSpeed float32 // default 10
	ReverseFactor   float32 // inversion reached with reversed colors, default 0.85
	Logger          *slog.Logger
}

// Frame is the input to one Update.
type Frame struct {
	Dt     float32 // wall clock seconds
	Speed  float32 // game speed multiplier, 0 is 1
	Dir    Cell    // steering for this frame, zero for none
	Aspect float32 // framebuffer aspect for the level camera
}

// Game is the round state machine. It owns the preset levels, the custom
// level and the level running behind the menu.
type Game struct {
	State      State
	Current    LevelID
	LastPlayed LevelID // NoLevel when there is nothing to continue
	LastScore  int
	Paused     bool

	// ReverseColors inverts the scene through the post shader;
	// ReverseFactor eases toward it.
	ReverseColors bool
	ReverseFactor float32

	Transition Transition

	levels     [levelCount]*Level
	custom     *LevelParams
	menu       *Level
	countdown  float32
	ending     bool
	won        bool
	endWait    float32
	restart    bool
	colorsSave bool

	opts Options
	rng  *rand.Rand
	log  *slog.Logger
}

func New(opts Options) *Game {
	if opts.TransitionSpeed <= 0 {
		opts.TransitionSpeed = 10
	}
	if opts.ReverseFactor <= 0 {
		opts.ReverseFactor = reverseTarget
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	g := &Game{
		LastPlayed: NoLevel,
		opts:       opts,
		rng:        rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5eed)),
		log:        opts.Logger,
	}
	g.Reset()
	g.ResetMenu()
	g.Transition = Transition{T: 1}
	g.Transition.Start(startupFade)
	return g
}

// SetOptions updates the tunables that may change while running.
func (g *Game) SetOptions(transitionSpeed, reverseFactor float32) {
	if transitionSpeed > 0 {
		g.opts.TransitionSpeed = transitionSpeed
	}
	if reverseFactor > 0 {
		g.opts.ReverseFactor = reverseFactor
	}
}

// Reset rebuilds every level from its parameters.
func (g *Game) Reset() {
	g.ending = false
	for id := range levelCount {
		if p, ok := Preset(id); ok {
			g.levels[id] = NewLevel(p, g.rng)
		}
	}
	if g.custom != nil {
		g.levels[LevelCustom] = NewLevel(*g.custom, g.rng)
	}
}

// ResetMenu rebuilds the menu board and forgets the last played level.
func (g *Game) ResetMenu() {
	g.menu = NewLevel(MenuParams, g.rng)
	g.LastPlayed = NoLevel
	g.restart = false
}

// SetCustom replaces the custom level.
func (g *Game) SetCustom(p LevelParams) {
	g.custom = &p
	g.levels[LevelCustom] = NewLevel(p, g.rng)
}

// Level returns the current level, nil when it was never built.
func (g *Game) Level() *Level {
	if g.Current < 0 || g.Current >= levelCount {
		return nil
	}
	return g.levels[g.Current]
}

// LevelByID returns a level, nil for an unbuilt custom level.
func (g *Game) LevelByID(id LevelID) *Level {
	if id < 0 || id >= levelCount {
		return nil
	}
	return g.levels[id]
}

func (g *Game) MenuLevel() *Level { return g.menu }

// Countdown returns the seconds left before the round moves.
func (g *Game) Countdown() float32 { return g.countdown }

// Ending reports whether the round is over and waiting to return to the
// menu; Won tells which way it ended.
func (g *Game) Ending() bool { return g.ending }
func (g *Game) Won() bool    { return g.won }

// EndProgress goes from 0 to 1 over the post-round wait.
func (g *Game) EndProgress() float32 {
	if !g.ending {
		return 0
	}
	return 1 - max(g.endWait, 0)/GameOverWait
}

// Start begins a round on id.
func (g *Game) Start(id LevelID) {
	g.State = StatePlaying
	g.ending = false
	g.won = false
	g.Transition.Start(g.opts.TransitionSpeed)
	g.Current = id
	g.countdown = StartCountdown
	g.log.Info("start level", "level", id)
}

// Continue resumes the last level left through the menu.
func (g *Game) Continue() bool {
	if g.LastPlayed == NoLevel {
		return false
	}
	g.Start(g.LastPlayed)
	if g.colorsSave {
		g.ReverseColors = true
		g.colorsSave = false
	}
	return true
}

// Restart rebuilds every board and drops the saved round.
func (g *Game) Restart() {
	g.Reset()
	g.ResetMenu()
	g.Transition.Start(g.opts.TransitionSpeed)
}

// GotoMenu switches to the menu. fromGame remembers the level for Continue
// unless restart is set, in which case the boards are rebuilt on the next
// menu frame.
func (g *Game) GotoMenu(fromGame, restart bool) {
	g.State = StateMenu
	g.menu.ResetZoom()
	g.menu.Camera.Position[2] = g.menu.DefaultCameraZ
	g.Transition.Start(g.opts.TransitionSpeed)

	if fromGame {
		g.restart = restart
		g.LastPlayed = g.Current
		if restart {
			g.LastPlayed = NoLevel
		}
		if g.ReverseColors {
			g.colorsSave = true
		}
		g.ReverseColors = false
	}
}

// EndRound finishes the running round as if the snake had won or died. It
// does nothing outside a round.
func (g *Game) EndRound(won bool) {
	if g.State != StatePlaying || g.ending || g.Level() == nil {
		return
	}
	g.endRound(won)
}

func (g *Game) endRound(won bool) {
	g.ending = true
	g.won = won
	g.endWait = GameOverWait
	l := g.Level()
	g.log.Info("round over", "level", g.Current, "won", won, "score", l.Score, "length", len(l.Snake))
}

// Update runs one frame: state logic while no transition is heading to
// opaque, then the fade and color inversion easing. It returns what the
// current level did this frame.
func (g *Game) Update(f Frame) StepResult {
	var res StepResult
	if !g.Transition.Busy() {
		res = g.update(f)
	}
	g.Transition.Update(f.Dt)

	want := float32(0)
	if g.ReverseColors {
		want = g.opts.ReverseFactor
	}
	g.ReverseFactor = lerp(g.ReverseFactor, want, reverseSpeed*f.Dt)
	return res
}

func (g *Game) update(f Frame) StepResult {
	speed := f.Speed
	if speed == 0 {
		speed = 1
	}
	updateDt := f.Dt * speed

	if g.State != StatePlaying {
		if g.restart {
			g.Reset()
			g.restart = false
		}
		g.menu.UpdateCamera(updateDt, f.Dt, f.Aspect)
		if !g.Paused {
			g.menu.Update(updateDt, Right)
		}
		return StepResult{}
	}

	l := g.Level()
	if l == nil {
		return StepResult{}
	}

	var res StepResult
	g.countdown -= f.Dt
	switch {
	case g.countdown > 0:
		l.UpdateCamera(updateDt, f.Dt, f.Aspect)
	case g.ending:
		g.countdown = 0
		l.UpdateCamera(updateDt, f.Dt, f.Aspect)
	default:
		g.countdown = 0
		l.UpdateCamera(updateDt, f.Dt, f.Aspect)
		if !g.Paused {
			res = l.Update(updateDt, f.Dir)
		}
		if res.Won {
			g.endRound(true)
		} else if res.Died {
			g.endRound(false)
		}
	}

	if g.ending {
		if g.endWait -= f.Dt; g.endWait <= 0 {
			g.LastScore = l.Score
			won := g.won
			g.GotoMenu(true, true)
			g.State = StateGameOver
			if won {
				g.State = StateWon
			}
		}
	}
	return res
}
