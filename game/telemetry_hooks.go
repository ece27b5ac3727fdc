package game

import (
	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/telemetry"
)

// flushTelemetry closes the stats window when it has elapsed.
func (t *Tank) flushTelemetry() {
	now := t.now()
	if !t.collector.ShouldFlush(now) {
		return
	}

	stats := t.collector.Flush(now, t.sample())
	perfStats := t.perfCollector.Stats()

	if t.statsCallback != nil {
		t.statsCallback(stats)
	}

	if t.logStats {
		stats.LogStats(t.logger)
		perfStats.LogStats(t.logger)
	}

	if t.outputManager != nil {
		if err := t.outputManager.WriteTelemetry(stats); err != nil {
			t.logger.Error("failed to write telemetry", "error", err)
		}
		if err := t.outputManager.WritePerf(perfStats, stats.SimTimeSec); err != nil {
			t.logger.Error("failed to write perf", "error", err)
		}
	}
}

// sample collects the roster distributions for a stats window.
func (t *Tank) sample() telemetry.Sample {
	s := telemetry.Sample{
		Energies: make([]float64, 0, t.roster.Len()),
		Speeds:   make([]float64, 0, t.roster.Len()),
	}
	t.roster.Each(func(f *components.Fish) {
		s.Fish++
		if f.Escaping {
			s.Escaping++
		}
		switch f.State {
		case components.StateResting:
			s.Resting++
		case components.StatePathPlaying:
			s.Playing++
		}
		s.Energies = append(s.Energies, f.Energy)
		s.Speeds = append(s.Speeds, f.Speed)
	})
	return s
}
