package renderer2d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/scene"
)

// Viewport is a pixel rectangle with a bottom-left origin.
type Viewport struct {
	X, Y, W, H int
}

// SceneData is the transform uploaded as u_proj and u_view on every flush.
type SceneData struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
}

func IdentityScene() SceneData {
	return SceneData{Projection: mgl32.Ident4(), View: mgl32.Ident4()}
}

// OrthoScene maps 0..w, 0..h to the viewport.
func OrthoScene(w, h float32) SceneData {
	return SceneData{Projection: mgl32.Ortho(0, w, 0, h, -1, 1), View: mgl32.Ident4()}
}

// State is the live render state saved by Push and restored by Pop. Target
// and Shader are borrowed; the stack never owns them.
type State struct {
	Viewport Viewport
	Target   *RenderTarget // nil is the screen
	Scene    SceneData
	Shader   *Shader
}

func (r *Renderer) State() State { return r.state }

// Depth is the number of saved states.
func (r *Renderer) Depth() int { return len(r.stack) }

// Push saves the live state.
func (r *Renderer) Push() {
	if len(r.stack) >= r.opts.StackDepth {
		panic(fmt.Errorf("push: %w (depth %d)", ErrStateStackOverflow, r.opts.StackDepth))
	}
	r.stack = append(r.stack, r.state)
}

// Pop restores the last saved state through the regular bind calls so the
// backend sees every change immediately.
func (r *Renderer) Pop() {
	if len(r.stack) == 0 {
		panic(fmt.Errorf("pop: %w", ErrStateStackUnderflow))
	}
	s := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]

	r.SetViewport(s.Viewport)
	r.BindTarget(s.Target)
	r.SetScene(s.Scene)
	r.BindShader(s.Shader)
}

func (r *Renderer) SetViewport(v Viewport) {
	r.Flush()
	r.state.Viewport = v
	r.dev.SetViewport(v.X, v.Y, v.W, v.H)
}

func (r *Renderer) SetScene(s SceneData) {
	r.Flush()
	r.state.Scene = s
}

// SetCamera sets the scene transform from a camera.
func (r *Renderer) SetCamera(c scene.Camera) {
	r.SetScene(SceneData{Projection: c.Projection(), View: c.View()})
}

// SetClipRect restricts drawing to rect until DisableClipRect. The clip
// rectangle is not part of State.
func (r *Renderer) SetClipRect(rect Viewport) {
	r.Flush()
	r.clip = &rect
	r.dev.SetScissor(rect.X, rect.Y, rect.W, rect.H)
}

func (r *Renderer) DisableClipRect() {
	if r.clip == nil {
		return
	}
	r.Flush()
	r.clip = nil
	r.dev.DisableScissor()
}

// Clear fills the bound target (or the screen) with c.
func (r *Renderer) Clear(c colors.Color) {
	r.Flush()
	r.dev.Clear(c[0], c[1], c[2], c[3])
}
