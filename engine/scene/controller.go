package scene

import "github.com/hubastard/snek/engine/core"

// FreeController flies an ortho camera: WASD/arrows move, scroll zooms.
type FreeController struct {
	MoveSpeed float32 // world units per second at zoom 1
	ZoomSpeed float32 // zoom factor per scroll notch
	Camera    *Ortho
}

func NewFreeController(cam *Ortho) *FreeController {
	return &FreeController{
		MoveSpeed: 400,
		ZoomSpeed: 1.1,
		Camera:    cam,
	}
}

func (cc *FreeController) Update(in *core.Input, dt float32) {
	speed := cc.MoveSpeed * dt / cc.Camera.zoom()

	if in.IsKeyDown(core.KeyW) || in.IsKeyDown(core.KeyUp) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyDown(core.KeyS) || in.IsKeyDown(core.KeyDown) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyDown(core.KeyA) || in.IsKeyDown(core.KeyLeft) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyDown(core.KeyD) || in.IsKeyDown(core.KeyRight) {
		cc.Camera.Move(speed, 0)
	}

	switch s := in.Scroll(); {
	case s > 0:
		cc.Camera.SetZoom(cc.Camera.zoom() * cc.ZoomSpeed)
	case s < 0:
		cc.Camera.SetZoom(cc.Camera.zoom() / cc.ZoomSpeed)
	}
}
