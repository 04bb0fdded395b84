package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera produces the projection and view matrices for a scene. It is either
// an *Ortho or a *Perspective.
type Camera interface {
	Projection() mgl32.Mat4
	View() mgl32.Mat4
	isCamera()
}

// Ortho is an orthographic camera with position, rotation and zoom.
type Ortho struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
	Position                 mgl32.Vec2
	Rotation                 float32 // radians
	Zoom                     float32 // 1 = no zoom
}

func (*Ortho) isCamera() {}

// NewOrtho centres a width×height view on the origin.
func NewOrtho(width, height float32) *Ortho {
	c := &Ortho{Near: -1, Far: 1, Zoom: 1}
	c.SetViewport(width, height)
	return c
}

// NewOrthoScreen maps 0..width, 0..height with the origin bottom-left.
func NewOrthoScreen(width, height float32) *Ortho {
	return &Ortho{Right: width, Top: height, Near: -1, Far: 1, Zoom: 1}
}

// SetViewport keeps the camera centred and resizes the visible area.
func (c *Ortho) SetViewport(width, height float32) {
	halfW, halfH := width*0.5, height*0.5
	c.Left, c.Right = -halfW, halfW
	c.Bottom, c.Top = -halfH, halfH
}

func (c *Ortho) Move(dx, dy float32) { c.Position = c.Position.Add(mgl32.Vec2{dx, dy}) }
func (c *Ortho) Rotate(d float32)    { c.Rotation += d }

func (c *Ortho) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
}

func (c *Ortho) zoom() float32 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

func (c *Ortho) Projection() mgl32.Mat4 {
	z := c.zoom()
	return mgl32.Ortho(c.Left/z, c.Right/z, c.Bottom/z, c.Top/z, c.Near, c.Far)
}

// View is R(-rot)·T(-pos).
func (c *Ortho) View() mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(-c.Rotation).Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), 0))
}

// ScreenToWorld converts window pixels (origin top-left) to world space.
func (c *Ortho) ScreenToWorld(sx, sy, screenW, screenH float32) mgl32.Vec2 {
	if screenW <= 0 || screenH <= 0 {
		return mgl32.Vec2{}
	}
	ndc := mgl32.Vec4{2*sx/screenW - 1, 1 - 2*sy/screenH, 0, 1}
	inv := c.Projection().Mul4(c.View()).Inv()
	w := inv.Mul4x1(ndc)
	return mgl32.Vec2{w.X() / w.W(), w.Y() / w.W()}
}

// Perspective is a perspective camera looking either along yaw/pitch angles
// or at a fixed point.
type Perspective struct {
	FOV       float32 // vertical, radians
	Aspect    float32
	Near, Far float32
	Position  mgl32.Vec3
	Up        mgl32.Vec3 // zero means +Y
	Target    Target
}

func (*Perspective) isCamera() {}

// Target is where a perspective camera looks: Angles or FocusPoint.
type Target interface{ isTarget() }

// Angles in radians. Yaw 0 looks down -Z.
type Angles struct {
	Yaw, Pitch float32
}

type FocusPoint struct {
	Point mgl32.Vec3
}

func (Angles) isTarget()     {}
func (FocusPoint) isTarget() {}

func (c *Perspective) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

func (c *Perspective) View() mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	var center mgl32.Vec3
	switch t := c.Target.(type) {
	case FocusPoint:
		center = t.Point
	case Angles:
		center = c.Position.Add(t.Forward())
	default:
		center = c.Position.Add(Angles{}.Forward())
	}
	return mgl32.LookAtV(c.Position, center, up)
}

// Forward is the unit view direction.
func (a Angles) Forward() mgl32.Vec3 {
	cp := float32(math.Cos(float64(a.Pitch)))
	return mgl32.Vec3{
		cp * float32(math.Sin(float64(a.Yaw))),
		float32(math.Sin(float64(a.Pitch))),
		-cp * float32(math.Cos(float64(a.Yaw))),
	}
}
