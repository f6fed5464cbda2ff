package game

import "log/slog"

// flushTelemetry closes the stats window when due, writes it out and checks
// for milestones.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.generation) {
		return
	}

	stats := g.collector.Flush(g.generation)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, m := range g.milestones.Check(stats) {
		if g.logStats {
			m.LogMilestone()
		}
		if err := g.outputManager.WriteMilestone(m); err != nil {
			slog.Error("failed to write milestone", "error", err)
		}
	}
}
