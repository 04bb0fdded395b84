package main

import (
	"testing"

	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/game"
)

func TestSteering(t *testing.T) {
	in := core.NewInput()
	in.BeginFrame()
	if d := steering(in); !d.IsZero() {
		t.Fatalf("no key: %v", d)
	}

	in.Handle(core.EventKey{Key: core.KeyUp, Down: true})
	if d := steering(in); d != game.Up {
		t.Fatalf("up: %v", d)
	}

	// Held keys do not steer again.
	in.BeginFrame()
	if d := steering(in); !d.IsZero() {
		t.Fatalf("held up: %v", d)
	}

	in.Handle(core.EventKey{Key: core.KeyLeft, Down: true})
	in.Handle(core.EventKey{Key: core.KeyRight, Down: true})
	if d := steering(in); d != game.Right {
		t.Fatalf("left+right: %v", d)
	}
}

func TestPulse(t *testing.T) {
	if p := pulse(0); p != 1 {
		t.Fatalf("pulse(0) = %v", p)
	}
	for _, tm := range []float32{0.5, 1, 2, 3.14159, 5} {
		if p := pulse(tm); p < 0.5 || p > 1 {
			t.Fatalf("pulse(%v) = %v", tm, p)
		}
	}
}

func TestFramerateAverage(t *testing.T) {
	l := &debugLayer{}
	for range 40 {
		l.sample(1.0 / 60)
	}
	if l.framerate != 60 {
		t.Fatalf("framerate after warmup = %d", l.framerate)
	}

	for range 200 {
		l.sample(1.0 / 30)
	}
	if l.framerate != 30 {
		t.Fatalf("framerate = %d", l.framerate)
	}
}

func TestAspect(t *testing.T) {
	a := &App{}
	if a.aspect() != 1 {
		t.Fatal("minimised aspect should be 1")
	}
	a.width, a.height = 1600, 800
	if a.aspect() != 2 {
		t.Fatalf("aspect = %v", a.aspect())
	}
}
