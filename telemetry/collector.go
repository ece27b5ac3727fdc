package telemetry

import (
	"time"

	"github.com/pthm-cable/flowfish/components"
)

// Sample is the roster state the tank hands to Flush.
type Sample struct {
	Fish     int
	Escaping int
	Resting  int
	Playing  int
	Energies []float64
	Speeds   []float64
}

// Collector accumulates events within time windows and produces WindowStats.
// It is a Sink; move events are ignored.
type Collector struct {
	window time.Duration
	epoch  time.Time

	windowStart time.Time
	ticks       int
	counts      [numEventTypes]int
	startles    int
	modes       map[components.Mode]int
}

// NewCollector creates a collector with windows of the given length,
// measured from epoch.
func NewCollector(window time.Duration, epoch time.Time) *Collector {
	if window <= 0 {
		window = 10 * time.Second
	}
	return &Collector{
		window:      window,
		epoch:       epoch,
		windowStart: epoch,
		modes:       make(map[components.Mode]int),
	}
}

// Emit counts a discrete event.
func (c *Collector) Emit(e Event) {
	if e.Type == EventMove || e.Type >= numEventTypes {
		return
	}
	c.counts[e.Type]++
	switch e.Type {
	case EventEscapeStart:
		if e.Detail == "startle" {
			c.startles++
		}
	case EventPathStart:
		c.modes[e.Mode]++
	}
}

// RecordTick counts one behavior tick.
func (c *Collector) RecordTick() {
	c.ticks++
}

// ShouldFlush reports whether the current window has elapsed at now.
func (c *Collector) ShouldFlush(now time.Time) bool {
	return now.Sub(c.windowStart) >= c.window
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now time.Time, s Sample) WindowStats {
	energyMean, energyStd, p10, p50, p90 := ComputeEnergyStats(s.Energies)
	speedMean, speedStd := MeanStd(s.Speeds)

	stats := WindowStats{
		WindowStartSec: c.windowStart.Sub(c.epoch).Seconds(),
		SimTimeSec:     now.Sub(c.epoch).Seconds(),
		Ticks:          c.ticks,

		Fish:     s.Fish,
		Escaping: s.Escaping,
		Resting:  s.Resting,
		Playing:  s.Playing,

		Spawns:          c.counts[EventSpawn],
		Despawns:        c.counts[EventDespawn],
		Clicks:          c.counts[EventClickReaction],
		Escapes:         c.counts[EventEscapeStart],
		Startles:        c.startles,
		ColorChanges:    c.counts[EventColorChange],
		SchoolingPulses: c.counts[EventSchoolingPulse],
		PathsStarted:    c.counts[EventPathStart],
		PathsCompleted:  c.counts[EventPathComplete],
		PathsDegenerate: c.counts[EventPathDegenerate],

		Patrol:    c.modes[components.ModePatrol],
		Foraging:  c.modes[components.ModeForaging],
		RestMode:  c.modes[components.ModeResting],
		Exploring: c.modes[components.ModeExploring],

		EnergyMean: energyMean,
		EnergyStd:  energyStd,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
	}

	// Reset for next window
	c.windowStart = now
	c.ticks = 0
	c.counts = [numEventTypes]int{}
	c.startles = 0
	clear(c.modes)

	return stats
}

// Window returns the window length.
func (c *Collector) Window() time.Duration {
	return c.window
}
