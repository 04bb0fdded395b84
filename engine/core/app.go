package core

import "time"

// App defines the game/application hooks.
type App interface {
	OnStart(e *Engine) error             // called once after window/device init
	OnUpdate(e *Engine, dt float64)      // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, frame FrameTime) // once per presented frame
	OnEvent(e *Engine, ev Event)         // input/window events
	OnShutdown(e *Engine)                // before exit
}

// FrameTime carries the timing of the frame being rendered.
type FrameTime struct {
	Delta float64 // seconds since the previous frame
	Alpha float64 // interpolation factor between fixed updates [0..1]
	Time  float64 // seconds since start
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Device   Device
	Platform Platform
	Input    *Input
	Layers   LayerStack
	start    time.Time
	quit     bool
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Quit asks the main loop to stop after the current frame.
func (e *Engine) Quit() { e.quit = true }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	RequestClose()
	SetFullscreen(on bool)
	Fullscreen() bool
	Destroy()
}

// Event model. Variants are sealed by the unexported marker method.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
}

func (EventMouseButton) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyW
	KeyA
	KeyS
	KeyD
	KeyP
	KeyR
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyHome
	KeyPageUp
	KeyPageDown

	keyCount
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	mouseButtonCount
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	Fullscreen bool
	TickRate   int // fixed update frequency; 0 means 60Hz
}
