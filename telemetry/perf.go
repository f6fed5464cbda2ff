package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one generation of the loop.
const (
	PhaseRender    = "render"
	PhaseStep      = "step"
	PhaseTelemetry = "telemetry"
)

var phases = []string{PhaseRender, PhaseStep, PhaseTelemetry}

// perfSample holds the phase timings of one generation.
type perfSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector times loop phases over a rolling window of generations.
// The frame delay is never inside a phase, so it only shows up in FPS.
type PerfCollector struct {
	ring  []perfSample
	next  int
	count int

	current    perfSample
	genStart   time.Time
	phase      string
	phaseStart time.Time

	lastFrame time.Time
	frame     time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize generations.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring: make([]perfSample, windowSize),
		now:  time.Now,
	}
}

// StartGeneration begins timing one loop iteration.
func (p *PerfCollector) StartGeneration() {
	p.genStart = p.now()
	p.current = perfSample{phases: make(map[string]time.Duration, len(phases))}
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the named one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
}

// EndPhase closes the running phase without opening another.
func (p *PerfCollector) EndPhase() {
	p.closePhase(p.now())
	p.phase = ""
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase == "" {
		return
	}
	d := now.Sub(p.phaseStart)
	p.current.phases[p.phase] += d
	p.current.total += d
}

// EndGeneration records the iteration into the ring.
func (p *PerfCollector) EndGeneration() {
	p.EndPhase()
	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame marks a presented frame; the interval between calls gives FPS.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgWork time.Duration // summed phase time per generation
	MinWork time.Duration
	MaxWork time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of AvgWork

	GenerationsPerSecond float64 // throughput ignoring the frame delay

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var sum time.Duration
	sums := make(map[string]time.Duration)
	for i := 0; i < p.count; i++ {
		smp := p.ring[i]
		sum += smp.total
		if i == 0 || smp.total < s.MinWork {
			s.MinWork = smp.total
		}
		if smp.total > s.MaxWork {
			s.MaxWork = smp.total
		}
		for name, d := range smp.phases {
			sums[name] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgWork = sum / n
	for name, d := range sums {
		avg := d / n
		s.PhaseAvg[name] = avg
		if s.AvgWork > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgWork) * 100
		}
	}
	if s.AvgWork > 0 {
		s.GenerationsPerSecond = float64(time.Second) / float64(s.AvgWork)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_work_us", s.AvgWork.Microseconds(),
		"max_work_us", s.MaxWork.Microseconds(),
		"generations_per_sec", int(s.GenerationsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", s.FPS)
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd            int     `csv:"window_end"`
	AvgWorkUS            int64   `csv:"avg_work_us"`
	MinWorkUS            int64   `csv:"min_work_us"`
	MaxWorkUS            int64   `csv:"max_work_us"`
	GenerationsPerSecond float64 `csv:"generations_per_sec"`
	FPS                  float64 `csv:"fps"`
	RenderPct            float64 `csv:"render_pct"`
	StepPct              float64 `csv:"step_pct"`
	TelemetryPct         float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:            windowEnd,
		AvgWorkUS:            s.AvgWork.Microseconds(),
		MinWorkUS:            s.MinWork.Microseconds(),
		MaxWorkUS:            s.MaxWork.Microseconds(),
		GenerationsPerSecond: s.GenerationsPerSecond,
		FPS:                  s.FPS,
		RenderPct:            s.PhasePct[PhaseRender],
		StepPct:              s.PhasePct[PhaseStep],
		TelemetryPct:         s.PhasePct[PhaseTelemetry],
	}
}
