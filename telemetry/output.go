package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/life/config"
)

// Output file names inside the output directory.
const (
	TelemetryFile  = "telemetry.csv"
	PerfFile       = "perf.csv"
	MilestonesFile = "milestones.csv"
	ConfigFile     = "config.yaml"
)

// csvLog appends records to one CSV file, writing the header only once.
type csvLog struct {
	name          string
	f             *os.File
	headerWritten bool
}

func openCSVLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, f: f}, nil
}

// write marshals records (a slice of csv-tagged structs).
func (l *csvLog) write(records any) error {
	var err error
	if !l.headerWritten {
		err = gocsv.Marshal(records, l.f)
	} else {
		err = gocsv.MarshalWithoutHeaders(records, l.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	l.headerWritten = true
	return nil
}

// OutputManager handles run output: CSV logs plus a config snapshot.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir        string
	telemetry  *csvLog
	perf       *csvLog
	milestones *csvLog
	closed     bool
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = openCSVLog(dir, TelemetryFile); err != nil {
		return nil, err
	}
	if om.perf, err = openCSVLog(dir, PerfFile); err != nil {
		om.Close()
		return nil, err
	}
	if om.milestones, err = openCSVLog(dir, MilestonesFile); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the configuration used for the run as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteTelemetry appends a window stats record.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.write([]WindowStats{stats})
}

// WritePerf appends a performance record for the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteMilestone appends a milestone record.
func (om *OutputManager) WriteMilestone(m Milestone) error {
	if om == nil {
		return nil
	}
	return om.milestones.write([]Milestone{m})
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files. Later calls are no-ops.
func (om *OutputManager) Close() error {
	if om == nil || om.closed {
		return nil
	}
	om.closed = true
	var errs []error
	for _, l := range []*csvLog{om.telemetry, om.perf, om.milestones} {
		if l == nil {
			continue
		}
		if err := l.f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", l.name, err))
		}
	}
	return errors.Join(errs...)
}
