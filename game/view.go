package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/gfx/renderer2d"
)

const (
	// TilePixels is the offscreen resolution of one board tile.
	TilePixels = 128

	// maxTargetSide caps the offscreen target so big boards stay allocatable.
	maxTargetSide = 4096

	borderLine   = 0.15
	borderMargin = 0.1
)

// Sprite sheet cells, column then row.
var (
	spriteApple  = [2]int{0, 0}
	spriteWall   = [2]int{1, 0}
	spriteHead   = [2]int{3, 3}
	spriteTail   = [2]int{0, 3}
	spriteBody   = [2]int{1, 3}
	spriteNeck   = [2]int{2, 3}
	spriteCorner = [2]int{0, 1}
)

var (
	boardClear = colors.GrayA(0.103, 1)
	snakeTail  = colors.GrayA(0.6, 1)
)

// LevelView draws a Level into its own offscreen target and then composites
// that target into the world as a width×height quad.
type LevelView struct {
	r      *renderer2d.Renderer
	target *renderer2d.RenderTarget
	sheet  *renderer2d.SpriteSheet
	shader *renderer2d.Shader

	// Debug outlines every tile and snake part.
	Debug bool
}

// NewLevelView creates the view with a 1×1 target; the first Draw sizes it.
// shader may be nil to keep whatever shader is bound.
func NewLevelView(r *renderer2d.Renderer, sheet *renderer2d.SpriteSheet, shader *renderer2d.Shader) (*LevelView, error) {
	t, err := r.CreateTarget(1, 1)
	if err != nil {
		return nil, fmt.Errorf("level view: %w", err)
	}
	return &LevelView{r: r, target: t, sheet: sheet, shader: shader}, nil
}

func (v *LevelView) Target() *renderer2d.RenderTarget { return v.target }

func (v *LevelView) Delete() { v.r.DeleteTarget(v.target) }

// TargetSize is the offscreen size used for l.
func TargetSize(l *Level) (w, h int) {
	tile := TilePixels
	if side := max(l.Width, l.Height); side*tile > maxTargetSide {
		tile = max(1, maxTargetSide/side)
	}
	return l.Width * tile, l.Height * tile
}

// Draw renders l. time drives the border pulse of non-looping boards.
func (v *LevelView) Draw(l *Level, time float32) error {
	if l == nil || l.Width <= 0 || l.Height <= 0 {
		return nil
	}
	r := v.r
	w, h := float32(l.Width), float32(l.Height)

	r.Push()
	tw, th := TargetSize(l)
	if cw, ch := v.target.Size(); cw != tw || ch != th {
		if err := r.ResizeTarget(v.target, tw, th); err != nil {
			r.Pop()
			return err
		}
	}
	r.BindTarget(v.target)
	r.SetViewport(v.target.Viewport())
	r.Clear(boardClear)
	if v.shader != nil {
		r.BindShader(v.shader)
	}
	r.SetScene(renderer2d.SceneData{Projection: mgl32.Ortho(0, w, 0, h, -2, 2), View: mgl32.Ident4()})
	v.drawTiles(l)
	v.drawSnake(l)
	r.Flush()
	r.Pop()

	r.DrawQuad(renderer2d.Quad{
		Size:  mgl32.Vec2{w, h},
		Color: colors.White,
		Fill:  renderer2d.TextureFill{Texture: v.target.Texture()},
	})

	border := colors.GrayA(0.6, 1)
	if !l.Looping {
		pulse := (float32(math.Sin(float64(time)*10)) + 1) * 0.5
		border = colors.Lerp(colors.Lerp(colors.WithAlpha(colors.White, 0.6), colors.WithAlpha(colors.Red, 0.6), 0.5),
			colors.WithAlpha(colors.Red, 0.8), pulse)
	}
	off := float32(borderLine + borderMargin)
	r.DrawQuadOutline(mgl32.Vec3{-off, -off, -0.05}, mgl32.Vec2{w + off*2, h + off*2}, borderLine, border)
	return nil
}

func (v *LevelView) sprite(cell [2]int) renderer2d.Fill {
	return renderer2d.SpriteTile{Sheet: v.sheet, Col: cell[0], Row: cell[1]}
}

func (v *LevelView) drawTiles(l *Level) {
	one := mgl32.Vec2{1, 1}
	for y := range l.Height {
		for x := range l.Width {
			c := Cell{x, y}
			pos := c.Vec2()
			if v.Debug {
				v.r.DrawQuadOutline(pos.Vec3(-0.05), one, 0.03, colors.WithAlpha(colors.White, 0.1))
			}
			t := l.Tile(c)
			if t == TileNone {
				continue
			}
			if v.Debug {
				v.r.DrawQuadOutline(pos.Vec3(-0.1), one, 0.075, colors.WithAlpha(colors.Cyan, 0.4))
			}
			q := renderer2d.Quad{Position: pos.Vec3(0), Size: one, Color: colors.White}
			switch t {
			case TileWall:
				q.Fill = v.sprite(spriteWall)
				q.Color = colors.WithAlpha(colors.White, 0.4)
			case TileApple:
				q.Fill = v.sprite(spriteApple)
			}
			v.r.DrawQuad(q)
		}
	}
}

// dirRotation is the sprite rotation for a part travelling along d. The
// sprites face right.
func dirRotation(d Cell) float32 {
	switch d {
	case Down:
		return math.Pi * 0.5
	case Up:
		return math.Pi * 1.5
	case Left:
		return math.Pi
	}
	return 0
}

// cornerRotation orients the corner sprite for a turn from last to cur.
func cornerRotation(last, cur Cell) float32 {
	switch {
	case last == Right && cur == Up:
		return 0
	case last == Right && cur == Down:
		return math.Pi * 1.5
	case last == Left && cur == Up:
		return math.Pi * 0.5
	case last == Left && cur == Down:
		return math.Pi
	case last == Up && cur == Right:
		return math.Pi
	case last == Up && cur == Left:
		return math.Pi * 1.5
	case last == Down && cur == Right:
		return math.Pi * 0.5
	case last == Down && cur == Left:
		return math.Pi * 2
	}
	return 0
}

// wrapped offsets pos by one board size along d, for the copy drawn on the
// far side of a border the part just crossed.
func wrapped(l *Level, pos mgl32.Vec3, d Cell) mgl32.Vec3 {
	pos[0] += float32(d.X * l.Width)
	pos[1] += float32(d.Y * l.Height)
	return pos
}

func (v *LevelView) drawSnake(l *Level) {
	n := len(l.Snake)
	if n == 0 {
		return
	}
	one := mgl32.Vec2{1, 1}
	t := l.Progress()
	for i := range l.Snake {
		p := &l.Snake[i]
		pos := p.LastPos.Vec2().Add(p.Pos.Vec2().Sub(p.LastPos.Vec2()).Mul(t))
		color := colors.Lerp(colors.White, snakeTail, float32(i)/float32(n))

		if v.Debug {
			v.r.DrawQuadOutline(p.Pos.Vec2().Vec3(-0.1), one, 0.075, colors.WithAlpha(colors.Cyan, 0.4))
		}

		switch {
		case i == 0:
			q := renderer2d.Quad{
				Position: pos.Vec3(-0.05),
				Size:     one,
				Color:    color,
				Fill:     v.sprite(spriteHead),
			}
			if p.Dir == Left {
				q.FlipX = true
			} else {
				q.Rotation = dirRotation(p.Dir)
			}
			v.r.DrawQuad(q)
			if l.HeadWarped {
				q.Position = wrapped(l, q.Position, p.Dir)
				v.r.DrawQuad(q)
			}
		case i == n-1:
			q := renderer2d.Quad{
				Position: pos.Vec3(0.1),
				Size:     one,
				Rotation: dirRotation(p.LastDir),
				Color:    color,
				Fill:     v.sprite(spriteTail),
			}
			v.r.DrawQuad(q)
			if l.TailWarped {
				q.Position = wrapped(l, q.Position, p.Dir)
				v.r.DrawQuad(q)
			}
			if !p.JustSpawned {
				v.drawBody(l, i, color, true, false)
			}
		default:
			noRegular := i+1 == n-1 && l.Snake[i+1].JustSpawned
			v.drawBody(l, i, color, false, noRegular)
		}
	}
}

// drawBody draws the tile-aligned body sprite of part i: a corner when it
// turned this step, otherwise a straight or neck piece.
func (v *LevelView) drawBody(l *Level, i int, color colors.Color, noCorner, noRegular bool) {
	p := &l.Snake[i]
	q := renderer2d.Quad{Position: p.Pos.Vec2().Vec3(0), Size: mgl32.Vec2{1, 1}, Color: color}

	if p.LastDir != p.Dir && !noCorner {
		q.Rotation = cornerRotation(p.LastDir, p.Dir)
		q.Fill = v.sprite(spriteCorner)
		v.r.DrawQuad(q)
		return
	}

	sprite := spriteBody
	q.Rotation = dirRotation(p.Dir)
	if i == 1 || noRegular {
		sprite = spriteNeck
	}
	if i == len(l.Snake)-1 {
		sprite = spriteNeck
		q.Rotation += math.Pi
	}
	q.Fill = v.sprite(sprite)
	v.r.DrawQuad(q)
}
