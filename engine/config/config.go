// Package config loads the game configuration and the hot-reloadable tweak
// file from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hubastard/snek/engine/core"
	"gopkg.in/yaml.v3"
)

type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	TickRate   int    `yaml:"tick_rate"`
}

type Renderer struct {
	MaxQuads        int `yaml:"max_quads"`
	MaxTextureSlots int `yaml:"max_texture_slots"`
}

type Config struct {
	Window   Window   `yaml:"window"`
	Renderer Renderer `yaml:"renderer"`
	Assets   string   `yaml:"assets"`
	Font     string   `yaml:"font"`
	FontSize float32  `yaml:"font_size"`
	LogLevel string   `yaml:"log_level"`
	Debug    bool     `yaml:"debug"`
	Level    string   `yaml:"level"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "snek",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Renderer: Renderer{MaxQuads: 6000, MaxTextureSlots: 16},
		Assets:   "assets",
		Font:     "",
		FontSize: 48,
		LogLevel: "info",
		Level:    "standard",
	}
}

// decodeInto decodes YAML over out, rejecting unknown keys. An empty
// document leaves out untouched.
func decodeInto(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := decodeInto(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func Load(p core.Platform, path string) (Config, error) {
	b, err := p.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(b)
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TickRate < 0 {
		errs = append(errs, fmt.Errorf("tick_rate %d must not be negative", c.Window.TickRate))
	}
	if c.Renderer.MaxQuads <= 0 || c.Renderer.MaxTextureSlots <= 0 {
		errs = append(errs, fmt.Errorf("renderer capacity %d quads / %d slots must be positive",
			c.Renderer.MaxQuads, c.Renderer.MaxTextureSlots))
	}
	if c.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font_size %v must be positive", c.FontSize))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Core converts the window section for core.Run.
func (c Config) Core() core.Config {
	return core.Config{
		Title:      c.Window.Title,
		Width:      c.Window.Width,
		Height:     c.Window.Height,
		VSync:      c.Window.VSync,
		Fullscreen: c.Window.Fullscreen,
		TickRate:   c.Window.TickRate,
	}
}
