package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pthm-cable/life/config"
	"github.com/pthm-cable/life/game"
	"github.com/pthm-cable/life/renderer"
)

// TerminalLogFile receives slog output while the terminal backend owns the tty.
const TerminalLogFile = "run.log"

func init() {
	// raylib must be driven from the main OS thread
	runtime.LockOSThread()
}

func main() {
	// Set up slog (JSON to stdout for structured logging)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(os.Args[1:]); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// run holds the whole program so deferred cleanups (window, terminal, output
// files) execute before main exits with an error status.
func run(args []string) error {
	// CLI flags
	fs := flag.NewFlagSet("life", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml (empty = use defaults)")
	backend := fs.String("backend", "raylib", "Display backend: raylib, sdl or terminal")
	headless := fs.Bool("headless", false, "Run without graphics or frame delay")
	maxGenerations := fs.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	outputDir := fs.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := fs.Bool("log-stats", false, "Output window stats via slog")
	hud := fs.Bool("hud", false, "Draw the status bar (overrides config when set)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Initialize config before anything else; this also rejects unknown
	// pattern names, so no surface is opened for a bad seed list
	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	opts := game.Options{
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		HUD:            *hud || cfg.Display.HUD,
		MaxGenerations: *maxGenerations,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no window needed
		g, err := game.New(cfg, nil, opts)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}
		defer g.Close()

		slog.Info("starting headless simulation", "max_generations", *maxGenerations)
		g.RunHeadless(*maxGenerations)
		return g.Close()
	}

	var surface game.Surface
	switch *backend {
	case "raylib":
		r, err := renderer.NewRaylib(cfg, renderer.RaylibOptions{})
		if err != nil {
			return fmt.Errorf("opening window: %w", err)
		}
		defer r.Close()
		surface = r
	case "sdl":
		s, err := renderer.NewSDL(cfg)
		if err != nil {
			return fmt.Errorf("opening window: %w", err)
		}
		defer s.Close()
		surface = s
	case "terminal":
		// The terminal owns stdout and stderr while running
		w, closeLog, err := terminalLogWriter(*outputDir)
		if err != nil {
			return err
		}
		defer closeLog()
		prev := slog.Default()
		slog.SetDefault(slog.New(slog.NewJSONHandler(w, nil)))
		defer slog.SetDefault(prev)

		t, err := renderer.NewTerminal(cfg)
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		defer t.Close()
		surface = t
	default:
		return fmt.Errorf("unknown backend %q", *backend)
	}

	g, err := game.New(cfg, surface, opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	g.Run()
	return g.Close()
}

// terminalLogWriter returns where logs go while the terminal backend is
// active: a file in the output directory, or nowhere.
func terminalLogWriter(outputDir string) (io.Writer, func() error, error) {
	if outputDir == "" {
		return io.Discard, func() error { return nil }, nil
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(outputDir, TerminalLogFile))
	if err != nil {
		return nil, nil, fmt.Errorf("creating log file: %w", err)
	}
	return f, f.Close, nil
}
