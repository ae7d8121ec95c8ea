// Command gridfx opens a window and animates a 3D grid of points on the GPU.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gekko3d/gridfx"
	"github.com/gekko3d/gridfx/shaders"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config, defaults are used when empty")
	debug := flag.Bool("debug", false, "enable debug logging")
	checkShaders := flag.Bool("check-shaders", false, "compile the embedded shaders offline and exit")
	flag.Parse()

	if *checkShaders {
		if err := shaders.Check(); err != nil {
			log.Fatalf("shader check failed: %v", err)
		}
		log.Printf("✓ %d shaders compiled", len(shaders.Sources))
		os.Exit(0)
	}

	cfg := gridfx.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = gridfx.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	tint, err := gridfx.ColorByName(cfg.Tint)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	background, err := gridfx.ColorByName(cfg.Background)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := gridfx.NewAppBuilder().
		UseStates(gridfx.StateRunning, gridfx.StateExiting).
		UseModule(
			gridfx.LoggingModule{Prefix: "gridfx", Debug: cfg.Debug || *debug},
			gridfx.TimeModule{},
			gridfx.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title),
			gridfx.InputModule{},
			gridfx.RendererModule{ClearColor: background},
			gridfx.ViewportCameraModule{Camera: cfg.NewCamera()},
			gridfx.ConvergeModule{Target: cfg.NewConvergeTarget()},
			gridfx.GridModule{
				Dimensions: cfg.Dimensions,
				Parameters: cfg.Parameters,
				Tint:       tint,
			},
		).
		Build()

	app.Run()
}
