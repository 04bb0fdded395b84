package ui

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Button draws a button and reports whether it was clicked this frame. A
// click is a press and release that both happen over the button. Inactive
// buttons ignore the mouse.
func (c *Context) Button(id ID, label string, pos, size mgl32.Vec2, theme *ButtonTheme, inactive bool) bool {
	state, clicked := ButtonInactive, false
	if !inactive {
		state, clicked = c.interact(id, pos, size)
	}
	drawButton(c.r, label, state, pos, size, theme)
	return clicked
}

// Toggle is a button that flips *value when clicked and stays drawn pressed
// while *value is true. It reports whether *value changed.
func (c *Context) Toggle(id ID, label string, value *bool, pos, size mgl32.Vec2, theme *ButtonTheme) bool {
	state, clicked := c.interact(id, pos, size)
	if clicked {
		*value = !*value
	}
	if *value {
		state = ButtonDown
	}
	drawButton(c.r, label, state, pos, size, theme)
	return clicked
}

// Label draws text top-aligned inside a box.
func (c *Context) Label(text string, pos, size mgl32.Vec2, theme *LabelTheme) {
	drawLabel(c.r, text, pos, size, theme)
}
