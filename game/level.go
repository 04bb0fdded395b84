package game

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/scene"
)

// Cell is an integer tile coordinate, y up.
type Cell struct{ X, Y int }

var (
	Up    = Cell{0, 1}
	Down  = Cell{0, -1}
	Left  = Cell{-1, 0}
	Right = Cell{1, 0}
)

func (c Cell) Add(o Cell) Cell { return Cell{c.X + o.X, c.Y + o.Y} }
func (c Cell) Sub(o Cell) Cell { return Cell{c.X - o.X, c.Y - o.Y} }
func (c Cell) Neg() Cell       { return Cell{-c.X, -c.Y} }
func (c Cell) IsZero() bool    { return c == Cell{} }

func (c Cell) Vec2() mgl32.Vec2 { return mgl32.Vec2{float32(c.X), float32(c.Y)} }

type Tile uint8

const (
	TileNone Tile = iota
	TileWall
	TileApple
)

func (t Tile) String() string {
	switch t {
	case TileNone:
		return "none"
	case TileWall:
		return "wall"
	case TileApple:
		return "apple"
	}
	return "unknown"
}

// Part is one snake segment. LastPos and LastDir describe the previous step
// and are used to interpolate between moves.
type Part struct {
	Pos, LastPos Cell
	Dir, LastDir Cell
	JustSpawned  bool
}

type SnakeInfo struct {
	Head   Cell
	Dir    Cell
	Length int // segments behind the head
}

type LevelParams struct {
	Looping     bool
	InitApple   bool
	Width       int
	Height      int
	CameraZ     float32
	TimePerMove float32 // seconds per step at game speed 1
	Snake       SnakeInfo
	Walls       int // random wall tiles placed before the first apple
}

// maxQueuedDirs bounds how many turns can be buffered between two steps.
const maxQueuedDirs = 3

const (
	cameraMaxOffset = 10
	cameraSpeed     = 1.25
	cameraZoomSpeed = 8
	cameraMinZ      = 4
	cameraMaxZ      = 128
)

// StepResult reports what happened during one Update.
type StepResult struct {
	Moved bool
	Ate   bool
	Died  bool
	Won   bool
}

// Level is one snake board: tiles, the snake, its pending turns and the
// camera looking at it.
type Level struct {
	Width, Height int
	Looping       bool
	Score         int
	MoveTime      float32

	Snake      []Part // head first
	HeadWarped bool
	TailWarped bool

	Camera         scene.Perspective
	DefaultCameraZ float32
	DesiredCameraZ float32

	tiles       []Tile
	queue       [maxQueuedDirs]Cell
	queued      int
	grow        int
	moveCounter float32
	rng         *rand.Rand
}

// NewLevel builds a level from p. rng places walls and apples; nil seeds a
// generator from p's size.
func NewLevel(p LevelParams, rng *rand.Rand) *Level {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(p.Width), uint64(p.Height)))
	}
	l := &Level{
		Width:          p.Width,
		Height:         p.Height,
		Looping:        p.Looping,
		MoveTime:       p.TimePerMove,
		tiles:          make([]Tile, p.Width*p.Height),
		rng:            rng,
		DefaultCameraZ: p.CameraZ,
		DesiredCameraZ: p.CameraZ,
	}
	if p.Snake.Length > 0 {
		l.initSnake(p.Snake)
	}
	for range p.Walls {
		c, ok := l.FreeCell()
		if !ok {
			break
		}
		l.SetTile(c, TileWall)
	}
	if p.InitApple {
		l.PlaceApple()
	}

	l.Camera = scene.Perspective{
		FOV:    mgl32.DegToRad(45),
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    1000,
		Target: scene.FocusPoint{Point: mgl32.Vec3{float32(p.Width) * 0.5, float32(p.Height) * 0.5, 0}},
	}
	l.Camera.Position = mgl32.Vec3{centre(p.Width), centre(p.Height), p.CameraZ}
	return l
}

func centre(n int) float32 {
	if n-1 <= 0 {
		return 0
	}
	return float32(n-1) * 0.5
}

func (l *Level) initSnake(s SnakeInfo) {
	l.Snake = make([]Part, 0, s.Length+1)
	pos := s.Head
	for range s.Length + 1 {
		l.Snake = append(l.Snake, Part{Pos: pos, LastPos: pos.Sub(s.Dir), Dir: s.Dir, LastDir: s.Dir})
		pos = pos.Sub(s.Dir)
	}
	l.queue[0] = s.Dir
	l.queued = 1
}

func (l *Level) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < l.Width && c.Y < l.Height
}

// Tile returns the tile at c; out of bounds is TileNone.
func (l *Level) Tile(c Cell) Tile {
	if !l.InBounds(c) {
		return TileNone
	}
	return l.tiles[c.Y*l.Width+c.X]
}

func (l *Level) SetTile(c Cell, t Tile) {
	if l.InBounds(c) {
		l.tiles[c.Y*l.Width+c.X] = t
	}
}

func (l *Level) Head() *Part {
	if len(l.Snake) == 0 {
		return nil
	}
	return &l.Snake[0]
}

func (l *Level) onSnake(c Cell) bool {
	for i := range l.Snake {
		if l.Snake[i].Pos == c {
			return true
		}
	}
	return false
}

// full reports whether the snake, once grown, leaves no tile for an apple.
func (l *Level) full() bool {
	return len(l.Snake)+l.grow >= l.Width*l.Height
}

// FreeCell picks a random empty tile not covered by the snake.
func (l *Level) FreeCell() (Cell, bool) {
	if l.full() {
		return Cell{}, false
	}
	free := make([]Cell, 0, l.Width*l.Height-len(l.Snake))
	for y := range l.Height {
		for x := range l.Width {
			c := Cell{x, y}
			if l.Tile(c) == TileNone && !l.onSnake(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[l.rng.IntN(len(free))], true
}

// PlaceApple puts an apple on a free tile and reports whether one was found.
func (l *Level) PlaceApple() bool {
	c, ok := l.FreeCell()
	if ok {
		l.SetTile(c, TileApple)
	}
	return ok
}

// Steer queues a turn. Zero, repeated and reversing directions are ignored;
// a full queue has its last entry replaced.
func (l *Level) Steer(dir Cell) {
	if dir.IsZero() || l.queued == 0 {
		return
	}
	last := l.queue[l.queued-1]
	if dir == last || dir == last.Neg() {
		return
	}
	if l.queued == maxQueuedDirs {
		l.queue[l.queued-1] = dir
		return
	}
	l.queue[l.queued] = dir
	l.queued++
}

// Queued returns the pending directions, current first.
func (l *Level) Queued() []Cell { return l.queue[:l.queued] }

// Progress is how far the snake is between two steps, 0..1.
func (l *Level) Progress() float32 {
	if l.MoveTime <= 0 {
		return 1
	}
	return mgl32.Clamp(l.moveCounter/l.MoveTime, 0, 1)
}

// Update advances the move timer by dt (already scaled by game speed) after
// queueing dir, and steps the snake once the timer passes MoveTime.
func (l *Level) Update(dt float32, dir Cell) StepResult {
	if len(l.Snake) == 0 {
		return StepResult{}
	}
	l.Steer(dir)
	l.moveCounter += dt
	if l.moveCounter < l.MoveTime {
		return StepResult{}
	}
	l.moveCounter -= l.MoveTime
	return l.step()
}

func (l *Level) step() StepResult {
	res := StepResult{Moved: true}

	head := &l.Snake[0]
	if l.queued > 1 {
		copy(l.queue[:], l.queue[1:l.queued])
		l.queued--
	}
	head.Dir = l.queue[0]
	head.LastPos = head.Pos
	head.Pos = head.Pos.Add(head.Dir)
	head.LastDir = head.Dir
	l.HeadWarped = false
	if !l.InBounds(head.Pos) {
		if !l.Looping {
			res.Died = true
			return res
		}
		l.HeadWarped = l.warp(head)
	}

	for i := 1; i < len(l.Snake); i++ {
		p := &l.Snake[i]
		p.JustSpawned = false
		p.LastPos = p.Pos
		p.Pos = p.Pos.Add(p.Dir)
		p.LastDir = p.Dir
		p.Dir = l.Snake[i-1].LastDir
		warped := l.warp(p)
		if i == len(l.Snake)-1 {
			l.TailWarped = warped
		}
	}

	for i := 1; i < len(l.Snake); i++ {
		if l.Snake[i].Pos == head.Pos {
			res.Died = true
			return res
		}
	}

	switch l.Tile(head.Pos) {
	case TileWall:
		res.Died = true
		return res
	case TileApple:
		l.SetTile(head.Pos, TileNone)
		l.grow++
		l.Score++
		res.Ate = true
		if l.full() || !l.PlaceApple() {
			res.Won = true
		}
	}

	if l.grow > 0 {
		l.grow--
		tail := l.Snake[len(l.Snake)-1]
		l.Snake = append(l.Snake, Part{Pos: tail.Pos, LastPos: tail.LastPos, JustSpawned: true})
	}
	return res
}

// warp moves p to the opposite border when it left the board, keeping the
// step direction so interpolation still looks like one move.
func (l *Level) warp(p *Part) bool {
	moved := p.Pos
	switch {
	case p.Pos.X < 0:
		p.Pos.X = l.Width - 1
	case p.Pos.X > l.Width-1:
		p.Pos.X = 0
	case p.Pos.Y < 0:
		p.Pos.Y = l.Height - 1
	case p.Pos.Y > l.Height-1:
		p.Pos.Y = 0
	default:
		return false
	}
	p.LastPos = p.Pos.Sub(moved.Sub(p.LastPos))
	return true
}

// DesiredCameraXY is where the camera drifts to: opposite the head, at most
// cameraMaxOffset away from the board centre.
func (l *Level) DesiredCameraXY() mgl32.Vec2 {
	xp, yp := float32(0.5), float32(0.5)
	if h := l.Head(); h != nil {
		xp = float32(h.Pos.X) / float32(l.Width)
		yp = float32(h.Pos.Y) / float32(l.Height)
	}
	xp = xp*2 - 1
	yp = yp*2 - 1

	var out mgl32.Vec2
	if l.Width-1 > 0 {
		out[0] = -xp*cameraMaxOffset + centre(l.Width)
	}
	if l.Height-1 > 0 {
		out[1] = -yp*cameraMaxOffset + centre(l.Height)
	}
	return out
}

// Zoom moves the desired camera height by amount, clamped.
func (l *Level) Zoom(amount float32) {
	l.DesiredCameraZ = mgl32.Clamp(l.DesiredCameraZ+amount, cameraMinZ, cameraMaxZ)
}

func (l *Level) ResetZoom() { l.DesiredCameraZ = l.DefaultCameraZ }

// UpdateCamera eases the camera toward DesiredCameraXY. updateDt is scaled by
// game speed, dt is wall clock.
func (l *Level) UpdateCamera(updateDt, dt, aspect float32) {
	if aspect > 0 {
		l.Camera.Aspect = aspect
	}
	d := l.DesiredCameraXY()
	t := updateDt * cameraSpeed
	l.Camera.Position[0] = lerp(l.Camera.Position[0], d[0], t)
	l.Camera.Position[1] = lerp(l.Camera.Position[1], d[1], t)
	l.Camera.Position[2] = lerp(l.Camera.Position[2], l.DesiredCameraZ, dt*cameraZoomSpeed)
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }
