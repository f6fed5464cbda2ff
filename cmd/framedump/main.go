// Frame dump tool - advances the configured seed N generations and renders
// the result to a PNG file through an offscreen raylib surface.
//
// Usage: go run ./cmd/framedump -generations 100 -out gen100.png
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pthm-cable/life/config"
	"github.com/pthm-cable/life/game"
	"github.com/pthm-cable/life/renderer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	generations := flag.Int("generations", 0, "Generations to advance before rendering")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	hud := flag.Bool("hud", false, "Include the status bar")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize raylib with hidden window
	surface, err := renderer.NewRaylib(cfg, renderer.RaylibOptions{Hidden: true, Offscreen: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer surface.Close()

	g, err := game.New(cfg, surface, game.Options{HUD: *hud, Sleep: func(time.Duration) {}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}
	defer g.Close()

	if *generations > 0 {
		g.RunHeadless(*generations)
	}
	// Frame renders the current generation before stepping past it
	g.Frame()

	if err := surface.ExportPNG(*outPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generation %d rendered to: %s (%dx%d)\n",
		*generations, *outPath, cfg.Derived.WindowWidth, cfg.Derived.WindowHeight)
}
