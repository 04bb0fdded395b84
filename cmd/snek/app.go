package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/assets"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/config"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/gfx/renderer2d"
	"github.com/hubastard/snek/engine/profiler"
	"github.com/hubastard/snek/engine/text"
	"github.com/hubastard/snek/engine/ui"
	"github.com/hubastard/snek/game"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	spriteCell     = 64
	tweaksInterval = 0.5
)

var (
	sceneClear    = colors.Color{0.1, 0.1, 0.1, 1}
	overlayDark   = colors.GrayA(0.105, 1)
	overlayBright = colors.GrayA(0.695, 1)
)

// App owns everything shared by the layers: the renderer and its targets,
// the shaders, the font, the UI and the game state.
type App struct {
	cfg config.Config
	log *slog.Logger

	r      *renderer2d.Renderer
	scene  *renderer2d.RenderTarget
	basic  *renderer2d.Shader
	post   *renderer2d.Shader
	font   *text.Font
	ui     *ui.Context
	tweaks *config.Watcher[config.Tweaks]

	game      *game.Game
	world     *worldLayer
	startWith game.LevelID
	width     int
	height    int
	stats     renderer2d.Statistics
	debug     bool

	// pad is the on-screen arrow pressed this frame, steered with next frame.
	pad game.Cell
}

func newApp(cfg config.Config, log *slog.Logger) *App {
	return &App{cfg: cfg, log: log, debug: cfg.Debug}
}

func (a *App) OnStart(e *core.Engine) error {
	profiler.Init(1 << 16)

	r, err := renderer2d.New(e.Device, e.Platform, renderer2d.Options{
		MaxQuads:        a.cfg.Renderer.MaxQuads,
		MaxTextureSlots: a.cfg.Renderer.MaxTextureSlots,
		Logger:          a.log,
	})
	if err != nil {
		return err
	}
	a.r = r

	dir := assets.Dir(a.cfg.Assets)
	if a.basic, err = r.CreateShader(dir.Shader("basic.glsl")); err != nil {
		return err
	}
	// Without the post shader the scene is composited uninverted until hot
	// reload picks up a fixed file.
	if a.post, err = r.CreateShader(dir.Shader("framebuffer.glsl")); err != nil {
		a.log.Warn("post shader unavailable", "err", err)
	}

	if a.font, err = a.loadFont(e, dir); err != nil {
		return err
	}

	nearest := core.TextureDesc{
		MinFilter: core.FilterNearest,
		MagFilter: core.FilterNearest,
		WrapU:     core.WrapClamp,
		WrapV:     core.WrapClamp,
	}
	sheetTex, err := assets.LoadTexture(e.Device, e.Platform, dir.Texture("spritesheet.png"), nearest)
	if err != nil {
		return err
	}
	linear := core.TextureDesc{
		MinFilter: core.FilterLinear,
		MagFilter: core.FilterLinear,
		WrapU:     core.WrapClamp,
		WrapV:     core.WrapClamp,
	}
	particleTex, err := assets.LoadTexture(e.Device, e.Platform, dir.Texture("particle.png"), linear)
	if err != nil {
		return err
	}

	a.width, a.height = e.Window.FramebufferSize()
	w, h := max(a.width, 1), max(a.height, 1)
	if a.scene, err = r.CreateTarget(w, h); err != nil {
		return err
	}
	if a.ui, err = ui.New(r, w, h); err != nil {
		return err
	}

	tweaksPath := dir.File("tweaks.yaml")
	a.tweaks, err = config.NewWatcher(e.Platform, tweaksPath, tweaksInterval, config.DefaultTweaks(), config.ParseTweaks, a.log)
	if err != nil {
		a.log.Warn("using default tweaks", "path", tweaksPath, "err", err)
	}
	tw := a.tweaks.Value()

	a.startWith, err = game.ParseLevelID(a.cfg.Level)
	if err != nil {
		a.log.Warn("unknown start level, using standard", "err", err)
		a.startWith = game.LevelStandard
	}
	a.game = game.New(game.Options{
		Seed:            uint64(time.Now().UnixNano()),
		TransitionSpeed: tw.TransitionSpeed,
		ReverseFactor:   tw.ReverseFactor,
		Logger:          a.log,
	})

	view, err := game.NewLevelView(r, renderer2d.NewSpriteSheet(sheetTex, spriteCell, spriteCell), nil)
	if err != nil {
		return err
	}
	a.world = newWorldLayer(a, view, particleTex)
	for _, l := range []core.Layer{a.world, newMenuLayer(a), newDebugLayer(a)} {
		if err := e.Layers.Push(e, l); err != nil {
			return err
		}
	}
	a.applyTweaks()

	info := e.Device.Info()
	a.log.Info("started",
		"vendor", info.Vendor,
		"renderer", info.Renderer,
		"version", info.Version,
		"size", fmt.Sprintf("%dx%d", a.width, a.height))
	return nil
}

// loadFont reads the configured TTF, or the built-in Go font when none is
// set.
func (a *App) loadFont(e *core.Engine, dir assets.Dir) (*text.Font, error) {
	ttf := goregular.TTF
	if a.cfg.Font != "" {
		b, err := e.Platform.ReadFile(dir.Font(a.cfg.Font))
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		ttf = b
	}
	return text.LoadFont(e.Device, ttf, a.cfg.FontSize)
}

func (a *App) applyTweaks() {
	tw := a.tweaks.Value()
	a.game.SetOptions(tw.TransitionSpeed, tw.ReverseFactor)
	a.world.setSpawnRate(tw.ParticlesPerSecond)
	a.world.view.Debug = tw.ShowGrid
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	e.Layers.Update(e, dt)
}

// OnRender draws the layers into the scene target, then composites the
// scene through the post shader, the UI on top and the transition overlay
// last.
func (a *App) OnRender(e *core.Engine, f core.FrameTime) {
	defer profiler.Start("frame")()
	r := a.r
	dt := float32(f.Delta)

	r.BeginFrame()
	r.HotReload(dt)
	if a.tweaks.Poll(dt) {
		a.applyTweaks()
	}
	a.ui.BeginFrame()

	r.BindTarget(a.scene)
	r.SetViewport(a.scene.Viewport())
	r.BindShader(a.basic)
	r.Clear(sceneClear)
	e.Layers.Render(e, f)
	r.Flush()

	w, h := float32(a.width), float32(a.height)
	r.BindTarget(nil)
	r.SetViewport(renderer2d.Viewport{W: a.width, H: a.height})
	r.Clear(colors.Black)
	r.SetScene(renderer2d.OrthoScene(w, h))
	post := a.post
	if !post.Valid() {
		post = a.basic
	}
	r.BindShader(post)
	r.SetUniformFloat("u_reverse_factor", a.game.ReverseFactor)
	r.DrawQuad(renderer2d.Quad{
		Size:  mgl32.Vec2{w, h},
		Color: colors.White,
		Fill:  renderer2d.TextureFill{Texture: a.scene.Texture()},
	})
	r.SetUniformFloat("u_reverse_factor", 0)
	r.DrawQuad(renderer2d.Quad{
		Size:  mgl32.Vec2{w, h},
		Color: colors.White,
		Fill:  renderer2d.TextureFill{Texture: a.ui.Target().Texture()},
	})

	r.BindShader(a.basic)
	r.SetScene(renderer2d.OrthoScene(1, 1))
	overlay := overlayDark
	if a.game.ReverseColors {
		overlay = overlayBright
	}
	overlay[3] = a.game.Transition.T
	r.DrawRect(mgl32.Vec2{}, mgl32.Vec2{1, 1}, overlay)
	r.Flush()

	a.stats = r.Stats()
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if rs, ok := ev.(core.EventResize); ok {
		a.resize(rs.W, rs.H)
	}
	e.Layers.Dispatch(e, ev)
}

// resize follows the framebuffer. A minimised window reports 0×0 and keeps
// the old targets.
func (a *App) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	a.width, a.height = w, h
	if err := a.r.ResizeTarget(a.scene, w, h); err != nil {
		a.log.Error("resize scene target", "err", err)
	}
	if err := a.ui.Resize(w, h); err != nil {
		a.log.Error("resize ui target", "err", err)
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	e.Layers.Clear(e)
	a.ui.Delete()
	a.r.DeleteTarget(a.scene)
	a.r.Shutdown()
}

// aspect is the framebuffer aspect ratio, 1 while minimised.
func (a *App) aspect() float32 {
	if a.width <= 0 || a.height <= 0 {
		return 1
	}
	return float32(a.width) / float32(a.height)
}
