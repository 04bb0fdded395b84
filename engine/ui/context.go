// Package ui is an immediate-mode widget layer drawn into its own render
// target. Widgets are plain calls made between Begin and End; the caller
// keeps all state except which widget is hot or active.
package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/gfx/renderer2d"
)

// ID identifies a widget across frames. Zero means none.
type ID uint32

// Cleared color of the UI target: the tint is invisible until something
// draws over it with a non-zero alpha.
var clearColor = colors.Color{0.2, 0.2, 0.2, 0}

type Context struct {
	r      *renderer2d.Renderer
	target *renderer2d.RenderTarget
	width  int
	height int

	hot, active ID
	in          *core.Input
	mouse       mgl32.Vec2
}

// New creates a UI drawing into a w×h target.
func New(r *renderer2d.Renderer, w, h int) (*Context, error) {
	t, err := r.CreateTarget(w, h)
	if err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}
	return &Context{r: r, target: t, width: w, height: h}, nil
}

// Resize follows the window size. Non-positive sizes (a minimised window)
// are ignored.
func (c *Context) Resize(w, h int) error {
	if w <= 0 || h <= 0 || (w == c.width && h == c.height) {
		return nil
	}
	if err := c.r.ResizeTarget(c.target, w, h); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	c.width, c.height = w, h
	return nil
}

func (c *Context) Size() (w, h int) { return c.width, c.height }

// Target holds everything drawn this frame; composite its texture over the
// scene.
func (c *Context) Target() *renderer2d.RenderTarget { return c.target }

func (c *Context) Renderer() *renderer2d.Renderer { return c.r }

// Hot is the widget under the mouse in the current frame.
func (c *Context) Hot() ID { return c.hot }

// Active is the widget the mouse went down on, until the button is released.
func (c *Context) Active() ID { return c.active }

// BeginFrame clears the UI target. Call once per frame before any Begin.
func (c *Context) BeginFrame() {
	c.Begin(nil)
	c.r.Clear(clearColor)
	c.End()
}

// Begin saves the renderer state and redirects drawing into the UI target
// with a pixel projection (origin bottom-left). A nil in draws every widget
// as inactive.
func (c *Context) Begin(in *core.Input) {
	c.r.Push()
	c.r.BindTarget(c.target)
	c.r.SetViewport(c.target.Viewport())
	c.r.SetScene(renderer2d.OrthoScene(float32(c.width), float32(c.height)))

	c.in = in
	c.hot = 0
	if in != nil {
		x, y := in.Mouse()
		c.mouse = mgl32.Vec2{float32(x), float32(c.height) - float32(y)}
	}
}

// End draws what is pending and restores the previous state.
func (c *Context) End() {
	c.r.Flush()
	c.r.Pop()
	c.in = nil
}

// Delete frees the target.
func (c *Context) Delete() {
	c.r.DeleteTarget(c.target)
}

func inside(p, pos, size mgl32.Vec2) bool {
	return p[0] > pos[0] && p[0] < pos[0]+size[0] &&
		p[1] > pos[1] && p[1] < pos[1]+size[1]
}

// interact runs the hot/active logic for a clickable rectangle.
func (c *Context) interact(id ID, pos, size mgl32.Vec2) (state ButtonState, clicked bool) {
	if c.in == nil {
		return ButtonInactive, false
	}
	over := inside(c.mouse, pos, size)
	if over {
		c.hot = id
		if c.in.MousePressed(core.MouseLeft) && c.active == 0 {
			c.active = id
		}
	}

	down := c.active == id
	if down && c.in.MouseReleased(core.MouseLeft) {
		clicked = over
		c.active = 0
	}

	switch {
	case down && over:
		return ButtonDown, clicked
	case over || down:
		return ButtonHot, clicked
	default:
		return ButtonUp, clicked
	}
}
