package ui

import "github.com/go-gl/mathgl/mgl32"

type LayoutKind int

const (
	LayoutVertical LayoutKind = iota
	LayoutHorizontal
)

// ButtonLayout hands out positions for a row or column of equally sized
// buttons. Vertical layouts grow upwards unless Reversed.
type ButtonLayout struct {
	Kind       LayoutKind
	Position   mgl32.Vec2
	Reversed   bool
	Space      float32
	ButtonSize mgl32.Vec2
}

func NewButtonLayout(kind LayoutKind, pos mgl32.Vec2, space float32, buttonSize mgl32.Vec2, reversed bool) ButtonLayout {
	return ButtonLayout{Kind: kind, Position: pos, Reversed: reversed, Space: space, ButtonSize: buttonSize}
}

func (l *ButtonLayout) step() mgl32.Vec2 {
	if l.Kind == LayoutHorizontal {
		return mgl32.Vec2{l.ButtonSize[0] + l.Space, 0}
	}
	return mgl32.Vec2{0, l.ButtonSize[1] + l.Space}
}

// Next returns the current position and advances to the following slot.
func (l *ButtonLayout) Next() mgl32.Vec2 {
	p := l.Position
	d := l.step()
	if l.Reversed {
		d = d.Mul(-1)
	}
	l.Position = l.Position.Add(d)
	return p
}

// Offset moves the start back by n-1 slots so that n buttons laid out with
// Next end at the original position. Used to centre or bottom-align groups.
func (l *ButtonLayout) Offset(n int) {
	if n <= 1 {
		return
	}
	d := l.step().Mul(float32(n - 1))
	if !l.Reversed {
		d = d.Mul(-1)
	}
	l.Position = l.Position.Add(d)
}

// Span is the length of n buttons and their gaps along the layout axis.
func (l *ButtonLayout) Span(n int) float32 {
	if n <= 0 {
		return 0
	}
	size, space := l.ButtonSize[1], l.Space
	if l.Kind == LayoutHorizontal {
		size = l.ButtonSize[0]
	}
	return float32(n)*size + float32(n-1)*space
}
