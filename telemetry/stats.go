package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartSec float64 `csv:"-"`
	SimTimeSec     float64 `csv:"sim_time"`
	Ticks          int     `csv:"ticks"`

	// Roster at window end
	Fish     int `csv:"fish"`
	Escaping int `csv:"escaping"`
	Resting  int `csv:"resting"`
	Playing  int `csv:"playing"`

	// Events during window
	Spawns          int `csv:"spawns"`
	Despawns        int `csv:"despawns"`
	Clicks          int `csv:"clicks"`
	Escapes         int `csv:"escapes"`
	Startles        int `csv:"startles"`
	ColorChanges    int `csv:"color_changes"`
	SchoolingPulses int `csv:"schooling_pulses"`
	PathsStarted    int `csv:"paths_started"`
	PathsCompleted  int `csv:"paths_completed"`
	PathsDegenerate int `csv:"paths_degenerate"`

	// Path modes started during window
	Patrol    int `csv:"mode_patrol"`
	Foraging  int `csv:"mode_foraging"`
	RestMode  int `csv:"mode_resting"`
	Exploring int `csv:"mode_exploring"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// MeanStd returns the mean and sample standard deviation. The deviation is
// 0 for fewer than two values.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// ComputeEnergyStats calculates mean, std and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}
	mean, std = MeanStd(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ticks", s.Ticks),
		slog.Int("fish", s.Fish),
		slog.Int("escaping", s.Escaping),
		slog.Int("resting", s.Resting),
		slog.Int("playing", s.Playing),
		slog.Int("clicks", s.Clicks),
		slog.Int("escapes", s.Escapes),
		slog.Int("startles", s.Startles),
		slog.Int("schooling_pulses", s.SchoolingPulses),
		slog.Int("paths_started", s.PathsStarted),
		slog.Int("paths_completed", s.PathsCompleted),
		slog.Int("paths_degenerate", s.PathsDegenerate),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("speed_mean", s.SpeedMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats", "window", s)
}
