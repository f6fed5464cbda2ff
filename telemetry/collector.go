package telemetry

import "github.com/pthm-cable/life/systems"

// Collector accumulates per-generation censuses and produces WindowStats.
type Collector struct {
	windowSize int
	cells      int // grid area, for density

	// Current window tracking
	windowStart int
	births      int
	deaths      int
	populations []float64
	lastPop     int
}

// NewCollector creates a collector that flushes every windowSize generations
// for a grid of the given area.
func NewCollector(windowSize, cells int) *Collector {
	if windowSize < 1 {
		windowSize = 1
	}
	return &Collector{
		windowSize:  windowSize,
		cells:       cells,
		populations: make([]float64, 0, windowSize),
	}
}

// Record adds the census of one computed generation.
func (c *Collector) Record(census systems.Census) {
	c.births += census.Births
	c.deaths += census.Deaths
	c.populations = append(c.populations, float64(census.Population))
	c.lastPop = census.Population
}

// ShouldFlush returns true if enough generations have passed to flush the window.
func (c *Collector) ShouldFlush(generation int) bool {
	return generation-c.windowStart >= c.windowSize
}

// Flush produces a WindowStats ending at generation and resets counters.
func (c *Collector) Flush(generation int) WindowStats {
	ps := ComputePopulationStats(c.populations)

	var density float64
	if c.cells > 0 {
		density = float64(c.lastPop) / float64(c.cells)
	}

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   generation,

		Population: c.lastPop,
		Births:     c.births,
		Deaths:     c.deaths,

		PopulationMean: ps.Mean,
		PopulationStd:  ps.Std,
		PopulationMin:  ps.Min,
		PopulationMax:  ps.Max,
		PopulationP10:  ps.P10,
		PopulationP50:  ps.P50,
		PopulationP90:  ps.P90,

		Density: density,
	}

	// Reset for next window
	c.windowStart = generation
	c.births = 0
	c.deaths = 0
	c.populations = c.populations[:0]

	return stats
}

// WindowSize returns the number of generations per window.
func (c *Collector) WindowSize() int {
	return c.windowSize
}
