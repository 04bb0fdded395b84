package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hubastard/snek/engine/config"
	"github.com/hubastard/snek/engine/core"
	glbackend "github.com/hubastard/snek/engine/gfx/gl"
	"github.com/hubastard/snek/engine/platform"
)

func main() {
	cfgPath := flag.String("config", "assets/snek.yaml", "configuration file")
	root := flag.String("root", "", "directory relative asset paths are resolved against")
	flag.Parse()

	plat := platform.OS{Root: *root}
	cfg, cfgErr := config.Load(plat, *cfgPath)
	if cfgErr != nil {
		cfg = config.Default()
	}

	level, _ := cfg.SlogLevel()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	if cfgErr != nil {
		log.Warn("using default config", "path", *cfgPath, "err", cfgErr)
	}

	app := newApp(cfg, log)
	if err := core.Run(app, cfg.Core(), plat, platform.NewGLFWWindow, glbackend.NewDeviceGL); err != nil {
		log.Error("snek", "err", err)
		os.Exit(1)
	}
}
