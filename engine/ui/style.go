package ui

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/gfx/renderer2d"
	"github.com/hubastard/snek/engine/text"
)

type ButtonState int

const (
	ButtonUp ButtonState = iota
	ButtonHot
	ButtonDown
	ButtonInactive
)

func (s ButtonState) String() string {
	switch s {
	case ButtonUp:
		return "up"
	case ButtonHot:
		return "hot"
	case ButtonDown:
		return "down"
	case ButtonInactive:
		return "inactive"
	}
	return "unknown"
}

// StateColors holds one color per button state.
type StateColors struct {
	Up, Hot, Down, Inactive colors.Color
}

func (c StateColors) For(s ButtonState) colors.Color {
	switch s {
	case ButtonHot:
		return c.Hot
	case ButtonDown:
		return c.Down
	case ButtonInactive:
		return c.Inactive
	}
	return c.Up
}

// ButtonStyle selects how a button is drawn: StyleSimple, StyleBevel,
// StyleShadow or StyleCustom.
type ButtonStyle interface{ isButtonStyle() }

// StyleSimple is a flat background with an outline.
type StyleSimple struct{}

// StyleBevel fakes a raised button with light and dark borders that swap
// when pressed.
type StyleBevel struct{}

// StyleShadow drops a solid shadow below-right of the button; pressing moves
// the button onto its shadow.
type StyleShadow struct {
	Offset float32
	Color  colors.Color
}

type DrawButtonFunc func(r *renderer2d.Renderer, label string, state ButtonState, pos, size mgl32.Vec2, theme *ButtonTheme)

type StyleCustom struct {
	Draw DrawButtonFunc
}

func (StyleSimple) isButtonStyle() {}
func (StyleBevel) isButtonStyle()  {}
func (StyleShadow) isButtonStyle() {}
func (StyleCustom) isButtonStyle() {}

type ButtonTheme struct {
	Style ButtonStyle // nil is StyleSimple
	Font  *text.Font

	TextScale   float32 // fraction of the default text height; 0 is 1
	BorderWidth float32

	Text       StateColors
	Background StateColors
	Border     StateColors
}

func (t *ButtonTheme) textScale() float32 {
	if t.TextScale <= 0 {
		return 1
	}
	return t.TextScale
}

// LabelStyle selects how a label is drawn: LabelSimple, LabelShadow or
// LabelCustom.
type LabelStyle interface{ isLabelStyle() }

type LabelSimple struct{}

type LabelShadow struct {
	Offset float32
	Color  colors.Color
}

type DrawLabelFunc func(r *renderer2d.Renderer, s string, pos, size mgl32.Vec2, theme *LabelTheme)

type LabelCustom struct {
	Draw DrawLabelFunc
}

func (LabelSimple) isLabelStyle() {}
func (LabelShadow) isLabelStyle() {}
func (LabelCustom) isLabelStyle() {}

type LabelTheme struct {
	Style      LabelStyle // nil is LabelSimple
	Font       *text.Font
	FontHeight float32
	Color      colors.Color
	Background colors.Color
}
