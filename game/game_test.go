package game

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/life/config"
	"github.com/pthm-cable/life/grid"
	"github.com/pthm-cable/life/telemetry"
)

// recordingSurface logs every call and stores plotted pixels.
type recordingSurface struct {
	calls      []string
	pixels     map[[2]int]color.RGBA
	closeAfter int // ShouldClose returns true once this many frames ended
	frames     int
	statuses   []Status
}

func newRecordingSurface(closeAfter int) *recordingSurface {
	return &recordingSurface{pixels: make(map[[2]int]color.RGBA), closeAfter: closeAfter}
}

func (s *recordingSurface) BeginFrame() {
	s.calls = append(s.calls, "begin")
	s.pixels = make(map[[2]int]color.RGBA)
}

func (s *recordingSurface) Clear(color.RGBA) { s.calls = append(s.calls, "clear") }

func (s *recordingSurface) PlotPixel(x, y int, c color.RGBA) {
	if n := len(s.calls); n == 0 || s.calls[n-1] != "plot" {
		s.calls = append(s.calls, "plot")
	}
	s.pixels[[2]int{x, y}] = c
}

func (s *recordingSurface) EndFrame() {
	s.calls = append(s.calls, "end")
	s.frames++
}

func (s *recordingSurface) ShouldClose() bool {
	s.calls = append(s.calls, "poll")
	return s.frames >= s.closeAfter
}

// overlaySurface additionally implements Overlay.
type overlaySurface struct {
	*recordingSurface
}

func (s overlaySurface) DrawStatus(st Status) {
	s.calls = append(s.calls, "status")
	s.statuses = append(s.statuses, st)
}

func testConfig(t *testing.T, w, h int, seeds ...config.SeedConfig) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Grid.Width = w
	cfg.Grid.Height = h
	cfg.Seeds = seeds
	return cfg
}

// recordSleep returns a Sleep replacement that appends to calls.
func recordSleep(s *recordingSurface, delays *[]time.Duration) func(time.Duration) {
	return func(d time.Duration) {
		if s != nil {
			s.calls = append(s.calls, "sleep")
		}
		*delays = append(*delays, d)
	}
}

func TestFrameOrder(t *testing.T) {
	cfg := testConfig(t, 10, 10, config.SeedConfig{Pattern: "blinker", X: 3, Y: 3})
	surf := newRecordingSurface(1)
	var delays []time.Duration
	g, err := New(cfg, surf, Options{Sleep: recordSleep(surf, &delays)})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer g.Close()

	g.Frame()

	want := []string{"begin", "clear", "plot", "end", "sleep"}
	if len(surf.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", surf.calls, want)
	}
	for i := range want {
		if surf.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", surf.calls, want)
		}
	}
	if len(delays) != 1 || delays[0] != 100*time.Millisecond {
		t.Errorf("delays = %v, want [100ms]", delays)
	}
	if g.Generation() != 1 {
		t.Errorf("generation = %d, want 1", g.Generation())
	}
}

func TestFramePlotsCellBlocks(t *testing.T) {
	cfg := testConfig(t, 8, 8)
	surf := newRecordingSurface(1)
	g, err := New(cfg, surf, Options{Sleep: func(time.Duration) {}})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	g.Current().Set(2, 3, true)

	g.Frame()

	cs := cfg.Display.CellSize
	if len(surf.pixels) != cs*cs {
		t.Fatalf("plotted %d pixels, want %d", len(surf.pixels), cs*cs)
	}
	for y := 3 * cs; y < 4*cs; y++ {
		for x := 2 * cs; x < 3*cs; x++ {
			c, ok := surf.pixels[[2]int{x, y}]
			if !ok {
				t.Fatalf("pixel (%d,%d) not plotted", x, y)
			}
			if c != cfg.Derived.Alive {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, c, cfg.Derived.Alive)
			}
		}
	}
	// A lone cell dies after rendering
	if g.Current().Population() != 0 {
		t.Errorf("population after frame = %d, want 0", g.Current().Population())
	}
}

func TestFrameRendersBeforeStep(t *testing.T) {
	cfg := testConfig(t, 10, 10)
	surf := newRecordingSurface(1)
	g, err := New(cfg, surf, Options{Sleep: func(time.Duration) {}})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	// Horizontal blinker through (4..6, 5)
	for x := 4; x <= 6; x++ {
		g.Current().Set(x, 5, true)
	}

	g.Frame()

	cs := cfg.Display.CellSize
	if _, ok := surf.pixels[[2]int{4 * cs, 5 * cs}]; !ok {
		t.Error("horizontal phase was not rendered")
	}
	if _, ok := surf.pixels[[2]int{5 * cs, 4 * cs}]; ok {
		t.Error("vertical phase rendered before it was computed")
	}
	if !g.Current().Alive(5, 4) || !g.Current().Alive(5, 6) || g.Current().Alive(4, 5) {
		t.Errorf("current buffer is not the vertical phase:\n%s", g.Current())
	}
}

func TestStepSwapsBuffers(t *testing.T) {
	cfg := testConfig(t, 10, 10, config.SeedConfig{Pattern: "blinker", X: 3, Y: 3})
	g, err := New(cfg, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	first := g.Current()
	start := first.Clone()

	g.Step()
	if g.Current() == first {
		t.Fatal("Step did not swap buffers")
	}
	census := g.Step()
	if g.Current() != first {
		t.Error("second Step did not swap back")
	}
	if !g.Current().Equal(start) {
		t.Errorf("blinker did not return after two steps:\n%s", g.Current())
	}
	if census.Population != 3 || census.Births != 2 || census.Deaths != 2 {
		t.Errorf("census = %+v, want {3 2 2}", census)
	}
}

func TestRunStopsWhenSurfaceCloses(t *testing.T) {
	cfg := testConfig(t, 10, 10, config.SeedConfig{Pattern: "glider", X: 1, Y: 1})
	surf := newRecordingSurface(3)
	var delays []time.Duration
	g, err := New(cfg, surf, Options{Sleep: recordSleep(nil, &delays)})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	g.Run()

	if g.Generation() != 3 {
		t.Errorf("generation = %d, want 3", g.Generation())
	}
	if len(delays) != 3 {
		t.Errorf("slept %d times, want 3", len(delays))
	}
	// Close is polled once per iteration plus the final check
	polls := 0
	for _, c := range surf.calls {
		if c == "poll" {
			polls++
		}
	}
	if polls != 4 {
		t.Errorf("polled %d times, want 4", polls)
	}
	if surf.calls[0] != "poll" {
		t.Errorf("first call = %q, want poll", surf.calls[0])
	}
}

func TestRunMaxGenerations(t *testing.T) {
	cfg := testConfig(t, 10, 10, config.SeedConfig{Pattern: "glider", X: 1, Y: 1})
	surf := newRecordingSurface(1000)
	g, err := New(cfg, surf, Options{Sleep: func(time.Duration) {}, MaxGenerations: 5})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	g.Run()

	if g.Generation() != 5 || surf.frames != 5 {
		t.Errorf("generation = %d, frames = %d; want 5, 5", g.Generation(), surf.frames)
	}
}

func TestRunHeadless(t *testing.T) {
	cfg := testConfig(t, 20, 20, config.SeedConfig{Pattern: "glider", X: 2, Y: 2})
	slept := false
	g, err := New(cfg, nil, Options{Sleep: func(time.Duration) { slept = true }})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	g.RunHeadless(4)

	if slept {
		t.Error("headless run slept")
	}
	if g.Generation() != 4 {
		t.Errorf("generation = %d, want 4", g.Generation())
	}
	want := grid.New(20, 20)
	grid.Stamp(want, grid.Glider, 3, 3)
	if !g.Current().Equal(want) {
		t.Errorf("glider not translated by (1,1):\n%s", g.Current())
	}
}

func TestOverlayDrawnAfterCells(t *testing.T) {
	cfg := testConfig(t, 10, 10, config.SeedConfig{Pattern: "blinker", X: 3, Y: 3})

	tests := []struct {
		name string
		hud  bool
		want []string
	}{
		{"hud enabled", true, []string{"begin", "clear", "plot", "status", "end"}},
		{"hud disabled", false, []string{"begin", "clear", "plot", "end"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surf := overlaySurface{newRecordingSurface(1)}
			g, err := New(cfg, surf, Options{HUD: tt.hud, Sleep: func(time.Duration) {}})
			if err != nil {
				t.Fatal(err)
			}
			defer g.Close()

			g.Frame()

			if len(surf.calls) != len(tt.want) {
				t.Fatalf("calls = %v, want %v", surf.calls, tt.want)
			}
			for i := range tt.want {
				if surf.calls[i] != tt.want[i] {
					t.Fatalf("calls = %v, want %v", surf.calls, tt.want)
				}
			}
			if tt.hud && surf.statuses[0].Population != 3 {
				t.Errorf("status = %+v, want population 3", surf.statuses[0])
			}
		})
	}
}

func TestNewUnknownPattern(t *testing.T) {
	cfg := testConfig(t, 10, 10, config.SeedConfig{Pattern: "spaceship", X: 0, Y: 0})
	_, err := New(cfg, nil, Options{})
	if !errors.Is(err, grid.ErrUnknownPattern) {
		t.Errorf("err = %v, want ErrUnknownPattern", err)
	}
}

func TestDefaultSeedsPopulation(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	g, err := New(cfg, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	want := grid.New(cfg.Grid.Width, cfg.Grid.Height)
	for _, s := range cfg.Seeds {
		p, err := grid.PatternByName(s.Pattern)
		if err != nil {
			t.Fatal(err)
		}
		grid.Stamp(want, p, s.X, s.Y)
	}
	if !g.Current().Equal(want) {
		t.Error("initial grid does not match the configured placements")
	}
}

func TestOutputFiles(t *testing.T) {
	cfg := testConfig(t, 20, 20, config.SeedConfig{Pattern: "blinker", X: 5, Y: 5})
	cfg.Telemetry.StatsWindow = 2
	dir := t.TempDir()

	g, err := New(cfg, nil, Options{OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	g.RunHeadless(6)
	if err := g.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	for _, name := range []string{telemetry.ConfigFile, telemetry.TelemetryFile, telemetry.PerfFile, telemetry.MilestonesFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}
