// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/life/grid"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulator configuration parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Display   DisplayConfig   `yaml:"display"`
	Timing    TimingConfig    `yaml:"timing"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Seeds     []SeedConfig    `yaml:"seeds"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the fixed grid dimensions in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DisplayConfig holds window and color settings.
type DisplayConfig struct {
	CellSize   int    `yaml:"cell_size"`  // Pixels per cell edge
	Title      string `yaml:"title"`
	Background string `yaml:"background"` // Hex color, e.g. "#292b30"
	Alive      string `yaml:"alive"`      // Hex color for live cells
	HUD        bool   `yaml:"hud"`        // Draw the status bar overlay
}

// TimingConfig holds frame pacing.
type TimingConfig struct {
	FrameDelayMS int `yaml:"frame_delay_ms"` // Unconditional sleep after each frame
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow      int `yaml:"stats_window"`      // Generations per window
	MilestoneHistory int `yaml:"milestone_history"` // Windows kept by the milestone detector
	StagnantWindows  int `yaml:"stagnant_windows"`  // Identical windows before flagging stagnation
	PerfWindow       int `yaml:"perf_window"`       // Frames averaged by the perf collector
}

// SeedConfig places one named pattern at an anchor before the first frame.
type SeedConfig struct {
	Pattern string `yaml:"pattern"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WindowWidth  int           // Grid.Width * Display.CellSize
	WindowHeight int           // Grid.Height * Display.CellSize
	Background   color.RGBA    // Parsed Display.Background
	Alive        color.RGBA    // Parsed Display.Alive
	FrameDelay   time.Duration // Timing.FrameDelayMS as a duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the loaded values describe a usable simulator.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid size must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Display.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("display.cell_size must be positive, got %d", c.Display.CellSize))
	}
	if c.Timing.FrameDelayMS < 0 {
		errs = append(errs, fmt.Errorf("timing.frame_delay_ms must not be negative, got %d", c.Timing.FrameDelayMS))
	}
	if c.Telemetry.StatsWindow <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.stats_window must be positive, got %d", c.Telemetry.StatsWindow))
	}
	if c.Telemetry.PerfWindow <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.perf_window must be positive, got %d", c.Telemetry.PerfWindow))
	}
	if c.Telemetry.StagnantWindows < 2 {
		errs = append(errs, fmt.Errorf("telemetry.stagnant_windows must be at least 2, got %d", c.Telemetry.StagnantWindows))
	}
	if c.Telemetry.MilestoneHistory < c.Telemetry.StagnantWindows {
		errs = append(errs, fmt.Errorf("telemetry.milestone_history must be at least stagnant_windows (%d), got %d",
			c.Telemetry.StagnantWindows, c.Telemetry.MilestoneHistory))
	}
	for i, s := range c.Seeds {
		if s.Pattern == "" {
			errs = append(errs, fmt.Errorf("seeds[%d]: missing pattern name", i))
			continue
		}
		if _, err := grid.PatternByName(s.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("seeds[%d]: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	bg, err := ParseHexColor(c.Display.Background)
	if err != nil {
		return fmt.Errorf("display.background: %w", err)
	}
	alive, err := ParseHexColor(c.Display.Alive)
	if err != nil {
		return fmt.Errorf("display.alive: %w", err)
	}

	c.Derived.Background = bg
	c.Derived.Alive = alive
	c.Derived.WindowWidth = c.Grid.Width * c.Display.CellSize
	c.Derived.WindowHeight = c.Grid.Height * c.Display.CellSize
	c.Derived.FrameDelay = time.Duration(c.Timing.FrameDelayMS) * time.Millisecond
	return nil
}

// ParseHexColor parses "#rrggbb" (the leading '#' is optional) into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
