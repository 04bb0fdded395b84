package ui

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/gfx/renderer2d"
	"github.com/hubastard/snek/engine/text"
)

// Share of the button height used by its caption before TextScale.
const captionScale = 0.8

// Inset of captions and labels from the left edge, in pixels.
const textInset = 3

func drawButton(r *renderer2d.Renderer, label string, state ButtonState, pos, size mgl32.Vec2, t *ButtonTheme) {
	switch s := t.Style.(type) {
	case nil, StyleSimple:
		drawButtonSimple(r, label, state, pos, size, t)
	case StyleBevel:
		drawButtonBevel(r, label, state, pos, size, t)
	case StyleShadow:
		drawButtonShadow(r, label, state, pos, size, t, s)
	case StyleCustom:
		if s.Draw != nil {
			s.Draw(r, label, state, pos, size, t)
		}
	}
}

func drawLabel(r *renderer2d.Renderer, s string, pos, size mgl32.Vec2, t *LabelTheme) {
	switch st := t.Style.(type) {
	case nil, LabelSimple:
		drawLabelSimple(r, s, pos, size, t)
	case LabelShadow:
		drawLabelShadow(r, s, pos, size, t, st)
	case LabelCustom:
		if st.Draw != nil {
			st.Draw(r, s, pos, size, t)
		}
	}
}

func clipRect(pos, size mgl32.Vec2) renderer2d.Viewport {
	return renderer2d.Viewport{X: int(pos[0]), Y: int(pos[1]), W: int(size[0]), H: int(size[1])}
}

// drawCaption centres label in the box and draws it with a faint copy at
// shadow. Captions wider than the box are clipped to clip.
func drawCaption(r *renderer2d.Renderer, label string, pos, size mgl32.Vec2, t *ButtonTheme, color colors.Color, shadow mgl32.Vec2, clipPos, clipSize mgl32.Vec2) {
	th := size[1] * captionScale * t.textScale()
	tw, _ := text.Measure(t.Font, label, th, false)
	tp := mgl32.Vec2{
		max(pos[0]+textInset, pos[0]+size[0]*0.5-tw*0.5),
		pos[1] + size[1]*0.5 - th*0.5 + size[1]*t.textScale()*(1-captionScale)*0.5,
	}
	if tw >= size[0] {
		r.SetClipRect(clipRect(clipPos, clipSize))
	}
	r.DrawText(t.Font, label, tp.Add(shadow), th, colors.WithAlpha(color, 0.1), false)
	r.DrawText(t.Font, label, tp, th, color, false)
	r.DisableClipRect()
}

func drawButtonSimple(r *renderer2d.Renderer, label string, state ButtonState, pos, size mgl32.Vec2, t *ButtonTheme) {
	r.DrawRect(pos, size, t.Background.For(state))
	r.DrawQuadOutline(pos.Vec3(0), size, t.BorderWidth, t.Border.For(state))

	bw := t.BorderWidth
	inner := mgl32.Vec2{bw, bw}
	drawCaption(r, label, pos, size, t, t.Text.For(state), mgl32.Vec2{3, -3}, pos.Add(inner), size.Sub(inner.Mul(2)))
}

func drawButtonBevel(r *renderer2d.Renderer, label string, state ButtonState, pos, size mgl32.Vec2, t *ButtonTheme) {
	border := t.Border.For(state)
	light := colors.Lerp(border, colors.Black, 0.2)
	dark := colors.Lerp(border, colors.Black, 0.7)
	if state == ButtonDown || state == ButtonInactive {
		light, dark = dark, light
	}

	bw := t.BorderWidth
	x0, y0 := pos[0], pos[1]
	x1, y1 := pos[0]+size[0], pos[1]+size[1]
	centerPos := pos.Add(mgl32.Vec2{bw, bw})
	centerSize := size.Sub(mgl32.Vec2{2 * bw, 2 * bw})
	r.DrawRect(centerPos, centerSize, t.Background.For(state))

	// left, top, right, bottom
	trapezoids := [4]struct {
		pts   [4]mgl32.Vec2
		color colors.Color
	}{
		{[4]mgl32.Vec2{{x0, y0}, {x0 + bw, y0 + bw}, {x0 + bw, y1 - bw}, {x0, y1}}, light},
		{[4]mgl32.Vec2{{x0, y1}, {x1, y1}, {x1 - bw, y1 - bw}, {x0 + bw, y1 - bw}}, light},
		{[4]mgl32.Vec2{{x1, y0}, {x1 - bw, y0 + bw}, {x1 - bw, y1 - bw}, {x1, y1}}, dark},
		{[4]mgl32.Vec2{{x0, y0}, {x1, y0}, {x1 - bw, y0 + bw}, {x0 + bw, y0 + bw}}, dark},
	}
	for _, tz := range trapezoids {
		var p [4]mgl32.Vec3
		for i, v := range tz.pts {
			p[i] = v.Vec3(0)
		}
		r.AppendQuad(p, [4]mgl32.Vec2{}, tz.color, r.WhiteTexture(), mgl32.Vec2{1, 1})
	}

	f := t.Font
	th := centerSize[1] * captionScale * t.textScale()
	tw, _ := text.Measure(f, label, th, false)
	var baseline float32
	if f.Valid() {
		baseline = -f.Descent * th / f.Height
	}
	tp := mgl32.Vec2{
		max(centerPos[0]+centerSize[0]*0.5-tw*0.5, centerPos[0]),
		centerPos[1] + baseline + centerSize[1]*0.05,
	}
	if tw >= centerSize[0] {
		r.SetClipRect(clipRect(centerPos, centerSize))
	}
	r.DrawText(f, label, tp, th, t.Text.For(state), false)
	r.DisableClipRect()
}

func drawButtonShadow(r *renderer2d.Renderer, label string, state ButtonState, pos, size mgl32.Vec2, t *ButtonTheme, s StyleShadow) {
	offset := mgl32.Vec2{s.Offset, -s.Offset}
	if state == ButtonDown || state == ButtonInactive {
		pos = pos.Add(offset)
	} else {
		r.DrawRect(pos.Add(offset), size, s.Color)
	}
	r.DrawRect(pos, size, t.Background.For(state))
	drawCaption(r, label, pos, size, t, t.Text.For(state), offset, pos, size)
}

func drawLabelSimple(r *renderer2d.Renderer, s string, pos, size mgl32.Vec2, t *LabelTheme) {
	r.DrawRect(pos, size, t.Background)

	tw, th := text.Measure(t.Font, s, t.FontHeight, true)
	tp := mgl32.Vec2{pos[0] + textInset, pos[1] + size[1] - t.FontHeight}
	if tw >= size[0] || th >= size[1] {
		r.SetClipRect(clipRect(pos, size))
	}
	r.DrawText(t.Font, s, tp, t.FontHeight, t.Color, true)
	r.DisableClipRect()
}

func drawLabelShadow(r *renderer2d.Renderer, s string, pos, size mgl32.Vec2, t *LabelTheme, st LabelShadow) {
	offset := mgl32.Vec2{st.Offset, -st.Offset}
	r.DrawRect(pos.Add(offset), size, st.Color)
	r.DrawRect(pos, size, t.Background)

	tw, th := text.Measure(t.Font, s, t.FontHeight, true)
	tp := mgl32.Vec2{pos[0] + textInset, pos[1] + size[1] - t.FontHeight}
	if tw >= size[0] || th >= size[1] {
		r.SetClipRect(clipRect(pos, size))
	}
	r.DrawText(t.Font, s, tp, t.FontHeight, t.Color, true)
	r.DisableClipRect()
}
