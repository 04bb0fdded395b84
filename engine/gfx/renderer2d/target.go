package renderer2d

import (
	"fmt"

	"github.com/hubastard/snek/engine/core"
)

// RenderTarget is an offscreen RGBA8 color + depth24/stencil8 surface.
type RenderTarget struct {
	fb core.Framebuffer
}

// Texture is the color attachment. It changes on every resize.
func (t *RenderTarget) Texture() core.Texture { return t.fb.Color }

func (t *RenderTarget) Size() (w, h int) { return t.fb.Width, t.fb.Height }

func (t *RenderTarget) Framebuffer() core.Framebuffer { return t.fb }

// Viewport covers the whole target.
func (t *RenderTarget) Viewport() Viewport { return Viewport{W: t.fb.Width, H: t.fb.Height} }

func (t *RenderTarget) framebuffer() core.Framebuffer {
	if t == nil {
		return core.Framebuffer{}
	}
	return t.fb
}

func (r *Renderer) CreateTarget(w, h int) (*RenderTarget, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("create target: %w: %dx%d", ErrInvalidTargetSize, w, h)
	}
	fb, err := r.dev.CreateFramebuffer(w, h)
	if err != nil {
		return nil, fmt.Errorf("create target %dx%d: %w", w, h, err)
	}
	return &RenderTarget{fb: fb}, nil
}

// ResizeTarget destroys and recreates both attachments at w×h. Contents are
// lost. Pending quads are flushed first since they may sample the old color
// attachment or draw into it.
func (r *Renderer) ResizeTarget(t *RenderTarget, w, h int) error {
	if t == nil {
		return fmt.Errorf("resize target: %w", ErrNilTarget)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize target: %w: %dx%d", ErrInvalidTargetSize, w, h)
	}
	r.Flush()
	fb, err := r.dev.CreateFramebuffer(w, h)
	if err != nil {
		return fmt.Errorf("resize target to %dx%d: %w", w, h, err)
	}
	r.dev.DeleteFramebuffer(t.fb)
	t.fb = fb
	if r.state.Target == t {
		r.dev.BindFramebuffer(fb)
	}
	return nil
}

// DeleteTarget frees t. If t is bound the screen is bound instead.
func (r *Renderer) DeleteTarget(t *RenderTarget) {
	if t == nil || !t.fb.Valid() {
		return
	}
	r.Flush()
	if r.state.Target == t {
		r.BindTarget(nil)
	}
	r.dev.DeleteFramebuffer(t.fb)
	t.fb = core.Framebuffer{}
}

// BindTarget directs draws and clears to t, or to the screen when t is nil.
func (r *Renderer) BindTarget(t *RenderTarget) {
	r.Flush()
	r.state.Target = t
	r.dev.BindFramebuffer(t.framebuffer())
}
