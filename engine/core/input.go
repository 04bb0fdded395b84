package core

// Input tracks key and mouse state. Edge queries (Pressed/Released) compare
// against the snapshot taken by the last BeginFrame.
type Input struct {
	keys, prevKeys     [keyCount]bool
	mouse, prevMouse   [mouseButtonCount]bool
	mouseX, mouseY     float64
	lastMouseX, lastMY float64
	scrollY            float64
}

func NewInput() *Input { return &Input{} }

// BeginFrame snapshots the current state so edges can be detected during the
// following frame.
func (in *Input) BeginFrame() {
	in.prevKeys = in.keys
	in.prevMouse = in.mouse
	in.lastMouseX, in.lastMY = in.mouseX, in.mouseY
	in.scrollY = 0
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		if e.Key > KeyUnknown && e.Key < keyCount {
			in.keys[e.Key] = e.Down
		}
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button >= 0 && e.Button < mouseButtonCount {
			in.mouse[e.Button] = e.Down
		}
	case EventScroll:
		in.scrollY += e.Yoff
	}
}

func (in *Input) IsKeyDown(k Key) bool { return k > KeyUnknown && k < keyCount && in.keys[k] }
func (in *Input) Pressed(k Key) bool   { return in.IsKeyDown(k) && !in.prevKeys[k] }
func (in *Input) Released(k Key) bool {
	return k > KeyUnknown && k < keyCount && !in.keys[k] && in.prevKeys[k]
}

func (in *Input) IsMouseDown(b MouseButton) bool { return b >= 0 && b < mouseButtonCount && in.mouse[b] }
func (in *Input) MousePressed(b MouseButton) bool {
	return in.IsMouseDown(b) && !in.prevMouse[b]
}
func (in *Input) MouseReleased(b MouseButton) bool {
	return b >= 0 && b < mouseButtonCount && !in.mouse[b] && in.prevMouse[b]
}

// Mouse returns the cursor position in window coordinates (origin top-left).
func (in *Input) Mouse() (float64, float64)     { return in.mouseX, in.mouseY }
func (in *Input) LastMouse() (float64, float64) { return in.lastMouseX, in.lastMY }
func (in *Input) Scroll() float64               { return in.scrollY }
