package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/flowfish/clock"
	"github.com/pthm-cable/flowfish/config"
	"github.com/pthm-cable/flowfish/telemetry"
)

// Options configures a Tank.
type Options struct {
	// Strategy selects the motion model ("pursuit" or "playback"). Required:
	// the two models produce different trajectories and there is no default.
	Strategy string

	// Preset names the behavior constants. Empty uses the strategy's own
	// preset (pursuit: classic, playback: svg).
	Preset string

	// Config defaults to config.Cfg().
	Config *config.Config

	// Rand overrides Seed when set.
	Rand *rand.Rand
	Seed int64

	// Clock defaults to the real clock.
	Clock clock.Clock

	// Width and Height default to the screen config.
	Width, Height float64

	// InitialCount overrides tank.initial_count when positive.
	InitialCount int

	// Sinks receive every event, in order, after the internal collector.
	Sinks []telemetry.Sink

	Logger        *slog.Logger
	OutputDir     string
	LogStats      bool
	StatsCallback func(telemetry.WindowStats)
}
