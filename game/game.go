// Package game runs the fish tank: the roster, the fixed-interval behavior
// tick, reactions to clicks and resizes, and host roster commands.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/flowfish/clock"
	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
	"github.com/pthm-cable/flowfish/systems"
	"github.com/pthm-cable/flowfish/telemetry"
)

// Roster errors. They are returned for inspection and logged; the tank
// state is never changed when one is returned.
var (
	ErrUnknownFish   = errors.New("unknown fish")
	ErrRosterFull    = errors.New("roster is full")
	ErrRosterMinimum = errors.New("roster is at minimum size")
)

// Tank holds the complete simulation state. It is not safe for concurrent
// use: a single goroutine drives Update and every command.
type Tank struct {
	cfg        *config.Config
	preset     config.Preset
	presetName string
	logger     *slog.Logger
	rng        *rand.Rand
	clock      clock.Clock
	timers     *clock.Timers

	roster   *Roster
	strategy MotionStrategy
	bounds   systems.Bounds

	// Telemetry
	bus           *telemetry.Bus
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	escapeTimers map[components.FishID]clock.TimerID
	initialCount int

	// State
	epoch     time.Time
	nextTick  time.Time
	lastFrame time.Time
	ticks     int64
}

// NewTank creates a tank and spawns the initial roster.
func NewTank(opts Options) (*Tank, error) {
	if opts.Strategy == "" {
		return nil, fmt.Errorf("%w: a strategy must be chosen", ErrUnknownStrategy)
	}
	strategy, err := NewStrategy(opts.Strategy)
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	presetName := opts.Preset
	if presetName == "" {
		presetName = strategy.DefaultPreset()
	}
	preset, err := cfg.Preset(presetName)
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("strategy", strategy.Name(), "preset", presetName)

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	}

	now := clk.Now()
	t := &Tank{
		cfg:        cfg,
		preset:     preset,
		presetName: presetName,
		logger:     logger,
		rng:        rng,
		clock:      clk,
		timers:     clock.NewTimers(clk),
		roster:     NewRoster(),
		strategy:   strategy,
		bounds: systems.Bounds{
			Width:  width,
			Height: height,
			Margin: preset.BoundaryMargin,
		},
		collector:     telemetry.NewCollector(time.Duration(cfg.Telemetry.StatsWindow*float64(time.Second)), now),
		perfCollector: telemetry.NewPerfCollector(0),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		escapeTimers:  make(map[components.FishID]clock.TimerID),
		epoch:         now,
		nextTick:      now.Add(cfg.Derived.TickInterval),
		lastFrame:     now,
	}

	t.outputManager, err = telemetry.NewOutputManager(opts.OutputDir, now)
	if err != nil {
		return nil, err
	}
	if err := t.outputManager.WriteConfig(cfg); err != nil {
		t.outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	t.bus = telemetry.NewBus(t.collector)
	if t.outputManager != nil {
		t.bus.Subscribe(t.outputManager)
	}
	for _, s := range opts.Sinks {
		t.bus.Subscribe(s)
	}

	strategy.attach(t)

	initial := cfg.Tank.InitialCount
	if opts.InitialCount > 0 {
		initial = min(opts.InitialCount, cfg.Tank.MaxFish)
	}
	t.initialCount = initial
	t.spawnInitialPopulation(initial)

	logger.Info("tank ready",
		"fish", t.roster.Len(),
		"width", width,
		"height", height,
	)
	return t, nil
}

// Update fires due timers, runs every behavior tick that has come due
// (bounded catch-up), then advances motion by one frame.
func (t *Tank) Update() {
	now := t.clock.Now()
	t.timers.Run(now)

	interval := t.cfg.Derived.TickInterval
	for n := 0; !now.Before(t.nextTick); n++ {
		if n == t.cfg.Tank.MaxCatchUpTicks {
			// Drop the backlog after a long stall instead of spiralling.
			t.nextTick = now.Add(interval)
			break
		}
		t.Tick()
		t.nextTick = t.nextTick.Add(interval)
	}

	t.Frame()
}

// Frame advances motion to the current time.
func (t *Tank) Frame() {
	now := t.clock.Now()
	dt := now.Sub(t.lastFrame)
	t.lastFrame = now
	t.strategy.Frame(now, dt)
	t.perfCollector.RecordFrame()
}

func (t *Tank) now() time.Time {
	return t.clock.Now()
}

func (t *Tank) emit(e telemetry.Event) {
	t.bus.Emit(e)
}

// Subscribe adds an event sink.
func (t *Tank) Subscribe(s telemetry.Sink) {
	t.bus.Subscribe(s)
}

// Count returns the number of fish.
func (t *Tank) Count() int {
	return t.roster.Len()
}

// Fish returns a copy of the fish record for id.
func (t *Tank) Fish(id components.FishID) (components.Fish, bool) {
	f := t.roster.Get(id)
	if f == nil {
		return components.Fish{}, false
	}
	return *f, true
}

// IDs returns fish ids in spawn order.
func (t *Tank) IDs() []components.FishID {
	return t.roster.IDs()
}

// Snapshot returns copies of every fish in spawn order.
func (t *Tank) Snapshot() []components.Fish {
	ids := t.roster.IDs()
	out := make([]components.Fish, 0, len(ids))
	for _, id := range ids {
		if f := t.roster.Get(id); f != nil {
			out = append(out, *f)
		}
	}
	return out
}

// Bounds returns the swimmable area.
func (t *Tank) Bounds() systems.Bounds {
	return t.bounds
}

// Strategy returns the active motion strategy.
func (t *Tank) Strategy() MotionStrategy {
	return t.strategy
}

// Preset returns the active preset and its name.
func (t *Tank) Preset() (string, config.Preset) {
	return t.presetName, t.preset
}

// Ticks returns the number of behavior ticks run.
func (t *Tank) Ticks() int64 {
	return t.ticks
}

// Elapsed returns the time since the tank was created.
func (t *Tank) Elapsed() time.Duration {
	return t.now().Sub(t.epoch)
}

// TankStats summarises the roster.
type TankStats struct {
	Fish          int
	Escaping      int
	Resting       int
	Playing       int
	PendingTimers int
	Ticks         int64
	MeanEnergy    float64
}

// Stats returns a roster summary.
func (t *Tank) Stats() TankStats {
	smp := t.sample()
	s := TankStats{
		Fish:          smp.Fish,
		Escaping:      smp.Escaping,
		Resting:       smp.Resting,
		Playing:       smp.Playing,
		PendingTimers: t.timers.Len(),
		Ticks:         t.ticks,
	}
	s.MeanEnergy, _ = telemetry.MeanStd(smp.Energies)
	return s
}

// Close flushes and closes telemetry output.
func (t *Tank) Close() error {
	if err := t.outputManager.Err(); err != nil {
		t.logger.Error("event output failed", "error", err)
	}
	return t.outputManager.Close()
}

// restDelay samples the pause between paths.
func (t *Tank) restDelay() time.Duration {
	d := t.cfg.Derived
	return d.RestMin + time.Duration(t.rng.Float64()*float64(d.RestMax-d.RestMin))
}

// directionInterval samples the pursuit retarget interval.
func (t *Tank) directionInterval() time.Duration {
	lo, hi := t.preset.DirectionChangeMin(), t.preset.DirectionChangeMax()
	return lo + time.Duration(t.rng.Float64()*float64(hi-lo))
}

// sampleSpeed draws a cruising speed from the preset band.
func (t *Tank) sampleSpeed() float64 {
	p := t.preset
	return p.MinSpeed + t.rng.Float64()*(p.MaxSpeed-p.MinSpeed)
}
