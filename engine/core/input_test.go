package core

import "testing"

func TestInputEdges(t *testing.T) {
	in := NewInput()

	in.BeginFrame()
	in.Handle(EventKey{Key: KeySpace, Down: true})
	if !in.Pressed(KeySpace) || !in.IsKeyDown(KeySpace) {
		t.Fatal("space should be pressed on the frame it went down")
	}

	in.BeginFrame()
	if in.Pressed(KeySpace) {
		t.Fatal("pressed must only fire once")
	}
	in.Handle(EventKey{Key: KeySpace, Down: false})
	if !in.Released(KeySpace) {
		t.Fatal("space should be released")
	}

	in.BeginFrame()
	if in.Released(KeySpace) {
		t.Fatal("released must only fire once")
	}
}

func TestInputMouse(t *testing.T) {
	in := NewInput()
	in.Handle(EventMouseMove{X: 10, Y: 20})
	in.BeginFrame()
	in.Handle(EventMouseMove{X: 15, Y: 25})
	in.Handle(EventMouseButton{Button: MouseLeft, Down: true})

	if x, y := in.Mouse(); x != 15 || y != 25 {
		t.Fatalf("mouse = %v,%v", x, y)
	}
	if x, y := in.LastMouse(); x != 10 || y != 20 {
		t.Fatalf("last mouse = %v,%v", x, y)
	}
	if !in.MousePressed(MouseLeft) || in.MouseReleased(MouseLeft) {
		t.Fatal("left button edge")
	}
}

func TestInputIgnoresUnknownKeys(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyUnknown, Down: true})
	in.Handle(EventKey{Key: Key(1000), Down: true})
	if in.IsKeyDown(KeyUnknown) || in.IsKeyDown(Key(1000)) {
		t.Fatal("out of range keys must be ignored")
	}
}

type recLayer struct {
	name    string
	handled bool
	log     *[]string
}

func (l *recLayer) OnAttach(*Engine) error {
	*l.log = append(*l.log, "attach "+l.name)
	return nil
}

func (l *recLayer) OnDetach(*Engine) {
	*l.log = append(*l.log, "detach "+l.name)
}

func (l *recLayer) OnUpdate(*Engine, float64) {}

func (l *recLayer) OnRender(*Engine, FrameTime) {
	*l.log = append(*l.log, "render "+l.name)
}
func (l *recLayer) OnEvent(*Engine, Event) bool {
	*l.log = append(*l.log, "event "+l.name)
	return l.handled
}

func TestLayerStackOrder(t *testing.T) {
	var log []string
	e := &Engine{}
	var ls LayerStack
	_ = ls.Push(e, &recLayer{name: "world", log: &log})
	_ = ls.Push(e, &recLayer{name: "ui", handled: true, log: &log})

	ls.Render(e, FrameTime{})
	if !ls.Dispatch(e, EventCloseRequested{}) {
		t.Fatal("ui layer should handle the event")
	}
	ls.Clear(e)

	want := []string{
		"attach world", "attach ui",
		"render world", "render ui",
		"event ui",
		"detach ui", "detach world",
	}
	if len(log) != len(want) {
		t.Fatalf("log = %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}
