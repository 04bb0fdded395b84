package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/core"
)

func TestOrthoScreenMapsCornersToNDC(t *testing.T) {
	c := NewOrthoScreen(200, 100)
	vp := c.Projection().Mul4(c.View())

	bl := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	tr := vp.Mul4x1(mgl32.Vec4{200, 100, 0, 1})
	if !bl.ApproxEqual(mgl32.Vec4{-1, -1, 0, 1}) || !tr.ApproxEqual(mgl32.Vec4{1, 1, 0, 1}) {
		t.Fatalf("bl=%v tr=%v", bl, tr)
	}
}

func TestOrthoScreenToWorld(t *testing.T) {
	c := NewOrtho(200, 100)
	c.Move(10, 20)

	// Screen centre is the camera position.
	got := c.ScreenToWorld(100, 50, 200, 100)
	if !got.ApproxEqualThreshold(mgl32.Vec2{10, 20}, 1e-4) {
		t.Fatalf("centre = %v", got)
	}
	// Top-left pixel.
	got = c.ScreenToWorld(0, 0, 200, 100)
	if !got.ApproxEqualThreshold(mgl32.Vec2{-90, 70}, 1e-3) {
		t.Fatalf("top-left = %v", got)
	}

	c.SetZoom(2)
	got = c.ScreenToWorld(0, 0, 200, 100)
	if !got.ApproxEqualThreshold(mgl32.Vec2{-40, 45}, 1e-3) {
		t.Fatalf("zoomed top-left = %v", got)
	}
}

func TestOrthoZoomClamp(t *testing.T) {
	c := NewOrtho(10, 10)
	c.SetZoom(0)
	if c.Zoom != 0.05 {
		t.Fatalf("zoom = %v", c.Zoom)
	}
}

func TestPerspectiveTargets(t *testing.T) {
	focus := &Perspective{
		FOV: mgl32.DegToRad(60), Aspect: 1, Near: 0.1, Far: 100,
		Position: mgl32.Vec3{0, 0, 5},
		Target:   FocusPoint{Point: mgl32.Vec3{}},
	}
	angles := &Perspective{
		FOV: mgl32.DegToRad(60), Aspect: 1, Near: 0.1, Far: 100,
		Position: mgl32.Vec3{0, 0, 5},
		Target:   Angles{},
	}
	if !focus.View().ApproxEqualThreshold(angles.View(), 1e-5) {
		t.Fatalf("looking at the origin from +Z should match yaw 0:\n%v\n%v", focus.View(), angles.View())
	}

	var cam Camera = focus
	if _, ok := cam.(*Perspective); !ok {
		t.Fatal("perspective should be a Camera")
	}
}

func TestAnglesForward(t *testing.T) {
	tests := []struct {
		name string
		a    Angles
		want mgl32.Vec3
	}{
		{"yaw 90", Angles{Yaw: math.Pi / 2}, mgl32.Vec3{1, 0, 0}},
		{"pitch 90", Angles{Pitch: math.Pi / 2}, mgl32.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		// Components that should be zero come out near 4e-8 in float32.
		if f := tt.a.Forward(); f.Sub(tt.want).Len() > 1e-6 {
			t.Fatalf("%s forward = %v, want %v", tt.name, f, tt.want)
		}
	}
}

func TestFreeController(t *testing.T) {
	cam := NewOrtho(100, 100)
	cc := NewFreeController(cam)
	in := core.NewInput()
	in.Handle(core.EventKey{Key: core.KeyD, Down: true})
	in.Handle(core.EventKey{Key: core.KeyUp, Down: true})

	cc.Update(in, 0.5)
	if cam.Position != (mgl32.Vec2{200, 200}) {
		t.Fatalf("position = %v", cam.Position)
	}

	in.Handle(core.EventScroll{Yoff: 1})
	cc.Update(in, 0)
	if cam.Zoom <= 1 {
		t.Fatalf("zoom after scroll up = %v", cam.Zoom)
	}
}
