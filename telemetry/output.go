package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/flowfish/config"
)

// EventRecord is the flat CSV form of a discrete event.
type EventRecord struct {
	TimeMs  int64   `csv:"time_ms"`
	Type    string  `csv:"type"`
	FishID  string  `csv:"fish"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Heading float64 `csv:"heading"`
	Mode    string  `csv:"mode"`
	Count   int     `csv:"count"`
	Detail  string  `csv:"detail"`
}

// OutputManager handles run output: window stats, discrete events and tick
// timing as CSV, plus the config snapshot. A nil *OutputManager is valid and
// writes nothing.
type OutputManager struct {
	dir   string
	epoch time.Time

	telemetryFile *os.File
	eventsFile    *os.File
	perfFile      *os.File

	// Track if headers have been written
	telemetryHeaderWritten bool
	eventsHeaderWritten    bool
	perfHeaderWritten      bool

	err error // first event write error; Emit cannot return it
}

// NewOutputManager creates the output directory and files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string, epoch time.Time) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, epoch: epoch}
	files := []struct {
		name string
		dst  **os.File
	}{
		{"telemetry.csv", &om.telemetryFile},
		{"events.csv", &om.eventsFile},
		{"perf.csv", &om.perfFile},
	}
	for _, f := range files {
		fh, err := os.Create(filepath.Join(dir, f.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", f.name, err)
		}
		*f.dst = fh
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// writeCSV appends records, writing the header on first use.
func writeCSV[T any](f *os.File, headerWritten *bool, records []T) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeCSV(om.telemetryFile, &om.telemetryHeaderWritten, []WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, simTime float64) error {
	if om == nil {
		return nil
	}
	if err := writeCSV(om.perfFile, &om.perfHeaderWritten, []PerfStatsCSV{stats.ToCSV(simTime)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteEvent writes a discrete event to events.csv. Move events are skipped.
func (om *OutputManager) WriteEvent(e Event) error {
	if om == nil || e.Type == EventMove {
		return nil
	}
	rec := EventRecord{
		TimeMs:  e.Time.Sub(om.epoch).Milliseconds(),
		Type:    e.Type.String(),
		FishID:  string(e.FishID),
		X:       e.Pos.X,
		Y:       e.Pos.Y,
		Heading: e.Heading,
		Count:   e.Count,
		Detail:  e.Detail,
	}
	if e.FishID != "" {
		rec.Mode = e.Mode.String()
	}
	if err := writeCSV(om.eventsFile, &om.eventsHeaderWritten, []EventRecord{rec}); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Emit implements Sink. The first write error is kept for Err.
func (om *OutputManager) Emit(e Event) {
	if err := om.WriteEvent(e); err != nil && om.err == nil {
		om.err = err
	}
}

// Err returns the first event write error.
func (om *OutputManager) Err() error {
	if om == nil {
		return nil
	}
	return om.err
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.telemetryFile, om.eventsFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
