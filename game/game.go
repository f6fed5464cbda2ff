// Package game runs the render/compute/swap frame loop over two grid buffers.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/life/config"
	"github.com/pthm-cable/life/grid"
	"github.com/pthm-cable/life/systems"
	"github.com/pthm-cable/life/telemetry"
)

// Options configures a Game beyond what the config file holds.
type Options struct {
	LogStats       bool                // Output window stats via slog
	OutputDir      string              // Directory for CSV logs and config snapshot (empty = disabled)
	HUD            bool                // Draw the status overlay if the surface supports it
	MaxGenerations int                 // Stop Run after N generations (0 = unlimited)
	Sleep          func(time.Duration) // Frame delay implementation (nil = time.Sleep)
}

// Game holds the two generation buffers and the loop state.
type Game struct {
	cfg     *config.Config
	surface Surface
	overlay Overlay

	// Ping-pong buffers: current is rendered and read, next is written
	current *grid.Grid
	next    *grid.Grid

	generation int
	last       systems.Census

	sleep          func(time.Duration)
	maxGenerations int
	logStats       bool

	// Telemetry
	collector     *telemetry.Collector
	milestones    *telemetry.MilestoneDetector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
}

// New creates a game for cfg, seeds the configured placements into the
// current buffer and wires telemetry. surface may be nil for headless runs.
func New(cfg *config.Config, surface Surface, opts Options) (*Game, error) {
	g := &Game{
		cfg:            cfg,
		surface:        surface,
		current:        grid.New(cfg.Grid.Width, cfg.Grid.Height),
		next:           grid.New(cfg.Grid.Width, cfg.Grid.Height),
		sleep:          opts.Sleep,
		maxGenerations: opts.MaxGenerations,
		logStats:       opts.LogStats,
	}
	if g.sleep == nil {
		g.sleep = time.Sleep
	}
	if ov, ok := surface.(Overlay); ok && opts.HUD {
		g.overlay = ov
	}

	if err := grid.Seed(g.current, placements(cfg.Seeds)); err != nil {
		return nil, fmt.Errorf("seeding grid: %w", err)
	}
	g.last = systems.Census{Population: g.current.Population()}

	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Grid.Width*cfg.Grid.Height)
	g.milestones = telemetry.NewMilestoneDetector(cfg.Telemetry.MilestoneHistory, cfg.Telemetry.StagnantWindows)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	slog.Info("game initialized",
		"width", cfg.Grid.Width,
		"height", cfg.Grid.Height,
		"seeds", len(cfg.Seeds),
		"population", g.last.Population,
	)
	return g, nil
}

func placements(seeds []config.SeedConfig) []grid.Placement {
	out := make([]grid.Placement, len(seeds))
	for i, s := range seeds {
		out[i] = grid.Placement{Pattern: s.Pattern, X: s.X, Y: s.Y}
	}
	return out
}

// Run loops until the surface asks to close or MaxGenerations is reached.
// The close request is only observed at the top of an iteration.
func (g *Game) Run() {
	for !g.surface.ShouldClose() {
		if g.maxGenerations > 0 && g.generation >= g.maxGenerations {
			slog.Info("max generations reached", "generation", g.generation)
			return
		}
		g.Frame()
	}
}

// Frame runs one iteration: render the current generation, compute the
// next one, swap, then sleep for the frame delay.
func (g *Game) Frame() {
	g.perfCollector.StartGeneration()
	g.perfCollector.StartPhase(telemetry.PhaseRender)
	g.draw()
	g.perfCollector.RecordFrame()

	g.advance()
	g.perfCollector.EndGeneration()

	g.sleep(g.cfg.Derived.FrameDelay)
}

// Step computes and swaps one generation without rendering or delay.
func (g *Game) Step() systems.Census {
	g.perfCollector.StartGeneration()
	census := g.advance()
	g.perfCollector.EndGeneration()
	return census
}

// RunHeadless steps maxGenerations generations (forever if maxGenerations <= 0).
func (g *Game) RunHeadless(maxGenerations int) {
	for maxGenerations <= 0 || g.generation < maxGenerations {
		g.Step()
	}
	slog.Info("max generations reached", "generation", g.generation)
}

// advance writes the next generation, swaps the buffers and feeds telemetry.
func (g *Game) advance() systems.Census {
	g.perfCollector.StartPhase(telemetry.PhaseStep)
	census := systems.NextGeneration(g.current, g.next)
	g.current, g.next = g.next, g.current
	g.generation++
	g.last = census

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(census)
	g.flushTelemetry()
	g.perfCollector.EndPhase()
	return census
}

// Current returns the buffer holding the latest generation.
func (g *Game) Current() *grid.Grid {
	return g.current
}

// Generation returns the number of generations computed so far.
func (g *Game) Generation() int {
	return g.generation
}

// Status returns the summary shown by overlays.
func (g *Game) Status() Status {
	return Status{
		Generation: g.generation,
		Population: g.last.Population,
		Births:     g.last.Births,
		Deaths:     g.last.Deaths,
	}
}

// Close releases output files.
func (g *Game) Close() error {
	return g.outputManager.Close()
}
