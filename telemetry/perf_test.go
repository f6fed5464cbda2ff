package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1000, 0)} }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPerf(window int, clk *fakeClock) *PerfCollector {
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc
}

func TestPerfCollector_PhaseTiming(t *testing.T) {
	clk := newFakeClock()
	pc := newTestPerf(10, clk)

	for i := 0; i < 5; i++ {
		pc.StartGeneration()
		pc.StartPhase(PhaseRender)
		clk.advance(3 * time.Millisecond)
		pc.StartPhase(PhaseStep)
		clk.advance(1 * time.Millisecond)
		pc.EndPhase()
		clk.advance(100 * time.Millisecond) // frame delay, not a phase
		pc.EndGeneration()
	}

	stats := pc.Stats()

	if stats.AvgWork != 4*time.Millisecond {
		t.Errorf("AvgWork = %v, want 4ms", stats.AvgWork)
	}
	if stats.PhaseAvg[PhaseRender] != 3*time.Millisecond {
		t.Errorf("render avg = %v, want 3ms", stats.PhaseAvg[PhaseRender])
	}
	if pct := stats.PhasePct[PhaseStep]; pct != 25 {
		t.Errorf("step pct = %v, want 25", pct)
	}
	if stats.GenerationsPerSecond != 250 {
		t.Errorf("generations/sec = %v, want 250", stats.GenerationsPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	clk := newFakeClock()
	pc := newTestPerf(3, clk)

	// Two slow generations, then three fast ones push the slow ones out
	durations := []time.Duration{50, 50, 2, 2, 2}
	for _, d := range durations {
		pc.StartGeneration()
		pc.StartPhase(PhaseStep)
		clk.advance(d * time.Millisecond)
		pc.EndGeneration()
	}

	stats := pc.Stats()
	if stats.MaxWork != 2*time.Millisecond {
		t.Errorf("MaxWork = %v, want 2ms after window rolled", stats.MaxWork)
	}
	if stats.MinWork != 2*time.Millisecond {
		t.Errorf("MinWork = %v, want 2ms", stats.MinWork)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgWork != 0 {
		t.Error("expected zero avg work for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	clk := newFakeClock()
	pc := newTestPerf(10, clk)

	pc.RecordFrame()
	clk.advance(100 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 100*time.Millisecond {
		t.Errorf("frame duration = %v, want 100ms", stats.FrameDuration)
	}
	if stats.FPS != 10 {
		t.Errorf("FPS = %v, want 10", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgWork:  1500 * time.Microsecond,
		PhasePct: map[string]float64{PhaseRender: 60, PhaseStep: 40},
	}
	row := s.ToCSV(250)
	if row.WindowEnd != 250 || row.AvgWorkUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.RenderPct != 60 || row.StepPct != 40 || row.TelemetryPct != 0 {
		t.Errorf("phase pct = %v/%v/%v", row.RenderPct, row.StepPct, row.TelemetryPct)
	}
}
