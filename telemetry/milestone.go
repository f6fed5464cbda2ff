package telemetry

import (
	"fmt"
	"log/slog"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestoneExtinction MilestoneType = "extinction"
	MilestoneStillLife  MilestoneType = "still_life"
	MilestoneStagnation MilestoneType = "stagnation"
)

// Milestone represents an automatically detected moment in the run.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Generation  int           `csv:"generation"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"generation", m.Generation,
		"description", m.Description,
	)
}

// MilestoneDetector detects notable regime changes from window stats.
// Each milestone fires once when its condition starts holding and re-arms
// when the condition stops holding.
type MilestoneDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	stagnantWindows int

	// Latched conditions
	extinct  bool
	still    bool
	stagnant bool
}

// NewMilestoneDetector creates a detector keeping historySize windows that
// flags stagnation after stagnantWindows identical windows.
func NewMilestoneDetector(historySize, stagnantWindows int) *MilestoneDetector {
	if stagnantWindows < 2 {
		stagnantWindows = 2
	}
	if historySize < stagnantWindows {
		historySize = stagnantWindows
	}
	return &MilestoneDetector{
		history:         make([]WindowStats, historySize),
		historySize:     historySize,
		stagnantWindows: stagnantWindows,
	}
}

// Check analyzes the latest stats and returns any triggered milestones.
func (md *MilestoneDetector) Check(stats WindowStats) []Milestone {
	var milestones []Milestone

	md.addToHistory(stats)

	if m := md.checkExtinction(stats); m != nil {
		milestones = append(milestones, *m)
	}
	if m := md.checkStillLife(stats); m != nil {
		milestones = append(milestones, *m)
	}
	if m := md.checkStagnation(stats); m != nil {
		milestones = append(milestones, *m)
	}

	return milestones
}

func (md *MilestoneDetector) addToHistory(stats WindowStats) {
	md.history[md.historyIdx] = stats
	md.historyIdx = (md.historyIdx + 1) % md.historySize
	if md.historyIdx == 0 {
		md.historyFull = true
	}
}

// recent returns the last n windows, newest first. ok is false when fewer
// than n windows have been recorded.
func (md *MilestoneDetector) recent(n int) (out []WindowStats, ok bool) {
	count := md.historyIdx
	if md.historyFull {
		count = md.historySize
	}
	if n > count {
		return nil, false
	}
	out = make([]WindowStats, n)
	for i := 0; i < n; i++ {
		idx := (md.historyIdx - 1 - i + md.historySize) % md.historySize
		out[i] = md.history[idx]
	}
	return out, true
}

func (md *MilestoneDetector) checkExtinction(stats WindowStats) *Milestone {
	dead := stats.Population == 0
	fired := dead && !md.extinct
	md.extinct = dead
	if !fired {
		return nil
	}
	return &Milestone{
		Type:        MilestoneExtinction,
		Generation:  stats.WindowEnd,
		Description: "no live cells remain",
	}
}

func (md *MilestoneDetector) checkStillLife(stats WindowStats) *Milestone {
	still := stats.Population > 0 && stats.Births == 0 && stats.Deaths == 0
	fired := still && !md.still
	md.still = still
	if !fired {
		return nil
	}
	return &Milestone{
		Type:        MilestoneStillLife,
		Generation:  stats.WindowEnd,
		Description: fmt.Sprintf("%d cells unchanged for a full window", stats.Population),
	}
}

// checkStagnation flags a periodic regime: the population distribution is
// identical across the last stagnantWindows windows while cells still change.
func (md *MilestoneDetector) checkStagnation(stats WindowStats) *Milestone {
	stagnant := false
	if windows, ok := md.recent(md.stagnantWindows); ok && stats.Population > 0 {
		stagnant = true
		for _, w := range windows[1:] {
			if w.PopulationMin != stats.PopulationMin ||
				w.PopulationMax != stats.PopulationMax ||
				w.PopulationMean != stats.PopulationMean {
				stagnant = false
				break
			}
		}
		if stats.Births == 0 && stats.Deaths == 0 {
			// Reported as still life instead
			stagnant = false
		}
	}
	fired := stagnant && !md.stagnant
	md.stagnant = stagnant
	if !fired {
		return nil
	}
	return &Milestone{
		Type:       MilestoneStagnation,
		Generation: stats.WindowEnd,
		Description: fmt.Sprintf("population cycling in [%.0f, %.0f] for %d windows",
			stats.PopulationMin, stats.PopulationMax, md.stagnantWindows),
	}
}
