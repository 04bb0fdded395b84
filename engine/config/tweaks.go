package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hubastard/snek/engine/core"
)

// Tweaks are values that can be edited while the game runs. GameSpeed scales
// the simulation clock and ReverseFactor is how far the post shader inverts
// colors while reversed colors are on.
type Tweaks struct {
	GameSpeed          float32 `yaml:"game_speed"`
	ReverseFactor      float32 `yaml:"reverse_factor"`
	TransitionSpeed    float32 `yaml:"transition_speed"`
	ParticlesPerSecond float32 `yaml:"particles_per_second"`
	ShowGrid           bool    `yaml:"show_grid"`
	ShowStats          bool    `yaml:"show_stats"`
}

func DefaultTweaks() Tweaks {
	return Tweaks{
		GameSpeed:          1,
		ReverseFactor:      0.85,
		TransitionSpeed:    10,
		ParticlesPerSecond: 256,
	}
}

// ParseTweaks decodes data over DefaultTweaks.
func ParseTweaks(data []byte) (Tweaks, error) {
	t := DefaultTweaks()
	if err := decodeInto(data, &t); err != nil {
		return Tweaks{}, fmt.Errorf("parse tweaks: %w", err)
	}
	return t, nil
}

// Watcher keeps a value parsed from a file and re-parses it when the file's
// modification time changes. Polls are gated by an interval like shader hot
// reload.
type Watcher[T any] struct {
	plat     core.Platform
	path     string
	parse    func([]byte) (T, error)
	log      *slog.Logger
	interval float32
	timer    float32
	modTime  time.Time
	value    T
}

// NewWatcher loads path once. If that fails def is used and the error
// returned; the watcher still works and picks the file up when it appears.
func NewWatcher[T any](p core.Platform, path string, interval float32, def T, parse func([]byte) (T, error), log *slog.Logger) (*Watcher[T], error) {
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher[T]{plat: p, path: path, parse: parse, log: log, interval: interval, value: def}
	if mt, err := p.ModTime(path); err == nil {
		w.modTime = mt
	}
	v, err := w.read()
	if err != nil {
		return w, err
	}
	w.value = v
	return w, nil
}

func (w *Watcher[T]) read() (T, error) {
	b, err := w.plat.ReadFile(w.path)
	if err != nil {
		var zero T
		return zero, err
	}
	return w.parse(b)
}

func (w *Watcher[T]) Value() T { return w.value }

// Poll reports whether a new value was loaded. A file that fails to parse
// keeps the previous value.
func (w *Watcher[T]) Poll(dt float32) bool {
	w.timer += dt
	if w.timer < w.interval {
		return false
	}
	w.timer = 0

	mt, err := w.plat.ModTime(w.path)
	if err != nil || mt.Equal(w.modTime) {
		return false
	}
	w.modTime = mt
	v, err := w.read()
	if err != nil {
		w.log.Warn("reload failed, keeping previous values", "path", w.path, "err", err)
		return false
	}
	w.value = v
	w.log.Info("reloaded", "path", w.path)
	return true
}
