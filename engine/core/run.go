package core

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// Run wires the platform window + device and executes the main loop.
func Run(app App, cfg Config, plat Platform, newWindow func(Config) (Window, error), newDevice func(Window, Config) (Device, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	dev, err := newDevice(win, cfg)
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	defer dev.Shutdown()

	w, h := win.FramebufferSize()
	dev.SetViewport(0, 0, w, h)

	eng := &Engine{Window: win, Device: dev, Platform: plat, Input: NewInput(), start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		app.OnEvent(eng, ev)
	})

	if err := app.OnStart(eng); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	// Fixed-timestep updates, render once per loop iteration.
	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	tick := time.Second / time.Duration(rate)
	var (
		accum   time.Duration
		prev    = time.Now()
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() && !eng.quit {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		accum += frame

		eng.Input.BeginFrame()
		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			app.OnUpdate(eng, tick.Seconds())
			accum -= tick
			steps++
		}
		if steps == maxStep {
			accum = 0
		}

		app.OnRender(eng, FrameTime{
			Delta: frame.Seconds(),
			Alpha: float64(accum) / float64(tick),
			Time:  eng.Uptime().Seconds(),
		})

		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	slog.Info("engine exit", "uptime", eng.Uptime().Round(time.Millisecond))
	return nil
}
