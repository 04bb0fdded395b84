package colors

import "github.com/go-gl/mathgl/mgl32"

// Color is a linear RGBA color. It aliases mgl32.Vec4 so colors flow straight
// into vertex data and shader uniforms.
type Color = mgl32.Vec4

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Orange      = Color{1, 0.55, 0.1, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	LightGray   = Color{0.75, 0.75, 0.75, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{0, 0, 0, 0}
)

func WithAlpha(c Color, a float32) Color {
	c[3] = a
	return c
}

// Lerp blends a toward b by t (unclamped).
func Lerp(a, b Color, t float32) Color {
	return a.Add(b.Sub(a).Mul(t))
}

// RGBA8 builds a color from 0..255 channel values.
func RGBA8(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// Hex parses 0xRRGGBB.
func Hex(v uint32) Color {
	return RGBA8(uint8(v>>16), uint8(v>>8), uint8(v), 255)
}

// GrayA is a neutral gray of brightness v with alpha a.
func GrayA(v, a float32) Color { return Color{v, v, v, a} }
