package game

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
	"github.com/pthm-cable/flowfish/telemetry"
)

func near(a, b components.Position) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

// place moves the tank's fish to the given positions and targets, in roster order.
func place(t *testing.T, tank *Tank, pos []components.Position, target components.Position) []components.FishID {
	t.Helper()
	ids := tank.IDs()
	if len(ids) != len(pos) {
		t.Fatalf("tank has %d fish, want %d", len(ids), len(pos))
	}
	for i, id := range ids {
		f := tank.roster.Get(id)
		f.Pos = pos[i]
		f.Target = target
		f.Personality = 0.9
	}
	return ids
}

func TestTickRegeneratesEnergy(t *testing.T) {
	tank, _, _ := newTestTank(t, StrategyPlayback, func(o *Options) { o.InitialCount = 3 })
	regen := tank.cfg.Energy.RegenPerTick

	tests := []struct {
		start, want float64
	}{
		{0.5, 0.5 + regen},
		{1 - regen/2, 1},
		{1, 1},
	}
	ids := tank.IDs()
	for i, tt := range tests {
		tank.roster.Get(ids[i]).Energy = tt.start
	}

	tank.Tick()

	for i, tt := range tests {
		got := tank.roster.Get(ids[i]).Energy
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("energy from %v = %v, want %v", tt.start, got, tt.want)
		}
		if got > 1 {
			t.Errorf("energy from %v overshot to %v", tt.start, got)
		}
	}
}

func TestDegeneratePathRetriedEachTick(t *testing.T) {
	// Every path clamps to a single point when the margins meet.
	tank, clk, rec := newTestTank(t, StrategyPlayback, func(o *Options) {
		o.Width, o.Height = 200, 200
		o.InitialCount = 1
	})
	id := tank.IDs()[0]

	run(tank, clk, 300*time.Millisecond, 20*time.Millisecond)
	if n := rec.Count(telemetry.EventPathDegenerate); n < 2 {
		t.Fatalf("degenerate paths = %d, want at least 2", n)
	}
	if n := rec.Count(telemetry.EventPathStart); n != 0 {
		t.Fatalf("path starts = %d in a collapsed tank", n)
	}

	ticks := tank.Ticks()
	degenerate := rec.Count(telemetry.EventPathDegenerate)
	run(tank, clk, 300*time.Millisecond, 20*time.Millisecond)
	retries := rec.Count(telemetry.EventPathDegenerate) - degenerate
	if want := int(tank.Ticks() - ticks); retries != want || want == 0 {
		t.Errorf("retries = %d over %d ticks, want one per tick", retries, want)
	}

	f, _ := tank.Fish(id)
	if f.State != components.StateIdle || f.Moving {
		t.Errorf("state = %v moving = %v after skipped paths, want idle", f.State, f.Moving)
	}

	tank.Resize(1280, 800)
	if n := rec.Count(telemetry.EventPathStart); n != 1 {
		t.Fatalf("path starts after resize = %d, want 1", n)
	}
	f, _ = tank.Fish(id)
	if f.State != components.StatePathPlaying || !f.Moving {
		t.Errorf("state = %v moving = %v after resize, want playing", f.State, f.Moving)
	}
}

func TestFlockSchoolingPulse(t *testing.T) {
	cfg := *config.Cfg()
	cfg.Flock.SchoolingChance = 1
	tank, _, rec := newTestTank(t, StrategyPlayback, func(o *Options) {
		o.Config = &cfg
		o.InitialCount = 3
	})

	// Pairwise distances 100..141: inside schooling range, outside avoidance.
	pos := []components.Position{{X: 400, Y: 400}, {X: 500, Y: 400}, {X: 400, Y: 500}}
	target := components.Position{X: 1000, Y: 200}
	ids := place(t, tank, pos, target)
	tank.roster.Get(ids[2]).Personality = 0.2

	rec.Reset()
	tank.updateFlock()

	centroid := components.Position{X: 1300.0 / 3, Y: 1300.0 / 3}
	want := target.Lerp(centroid, cfg.Flock.Attraction)
	for _, id := range ids[:2] {
		if got := tank.roster.Get(id).Target; !near(got, want) {
			t.Errorf("target of %s = %v, want %v", id.Short(), got, want)
		}
	}
	if got := tank.roster.Get(ids[2]).Target; got != target {
		t.Errorf("shy fish target moved to %v", got)
	}

	pulses := rec.OfType(telemetry.EventSchoolingPulse)
	if len(pulses) != 2 {
		t.Fatalf("schooling pulses = %d, want 2", len(pulses))
	}
	for i, p := range pulses {
		if p.FishID != ids[i] {
			t.Errorf("pulse %d for %s, want %s", i, p.FishID.Short(), ids[i].Short())
		}
	}
}

func TestFlockAvoidanceIsAdditive(t *testing.T) {
	cfg := *config.Cfg()
	cfg.Flock.SchoolingChance = 0
	tank, _, rec := newTestTank(t, StrategyPlayback, func(o *Options) {
		o.Config = &cfg
		o.InitialCount = 4
	})
	radius := tank.preset.AvoidanceDistance
	strength := cfg.Flock.AvoidanceStrength

	pos := []components.Position{
		{X: 400, Y: 400},
		{X: 430, Y: 400},
		{X: 400, Y: 440},
		{X: 900, Y: 600},
	}
	target := components.Position{X: 640, Y: 400}
	ids := place(t, tank, pos, target)

	// push is the contribution of a neighbour at other on a fish at self.
	push := func(self, other components.Position) components.Position {
		d := self.Dist(other)
		if d >= radius {
			return components.Position{}
		}
		return self.Sub(other).Scale((radius - d) / radius * strength / d)
	}
	want := make([]components.Position, len(pos))
	for i := range pos {
		want[i] = target
		for j := range pos {
			if i != j {
				want[i] = want[i].Add(push(pos[i], pos[j]))
			}
		}
	}

	rec.Reset()
	tank.updateFlock()

	for i, id := range ids {
		if got := tank.roster.Get(id).Target; !near(got, want[i]) {
			t.Errorf("fish %d target = %v, want %v", i, got, want[i])
		}
	}
	// The first fish is pushed by two neighbours at once.
	if a, b := push(pos[0], pos[1]), push(pos[0], pos[2]); a == (components.Position{}) || b == (components.Position{}) {
		t.Fatal("layout does not put two neighbours inside avoidance range")
	}
	if got := tank.roster.Get(ids[3]).Target; got != target {
		t.Errorf("lone fish target moved to %v", got)
	}
	if n := rec.Count(telemetry.EventSchoolingPulse); n != 0 {
		t.Errorf("schooling pulses = %d with schooling disabled", n)
	}
}

func TestPursuitEscapeUsesFullSpeed(t *testing.T) {
	tank, clk, _ := newTestTank(t, StrategyPursuit, func(o *Options) { o.InitialCount = 1 })
	id := tank.IDs()[0]
	f := tank.roster.Get(id)
	f.Pos = tank.Bounds().Center()
	f.Energy = 1

	if err := tank.Click(id); err != nil {
		t.Fatalf("Click: %v", err)
	}
	f = tank.roster.Get(id)
	if f.Energy >= 1 {
		t.Fatalf("energy = %v after escape, want the escape cost charged", f.Energy)
	}
	start := f.Pos

	dt := time.Duration(float64(time.Second) / tank.cfg.Tank.FrameRate)
	tank.strategy.Frame(clk.Now(), dt)

	moved := tank.roster.Get(id).Pos.Dist(start)
	want := tank.preset.ClickEscapeSpeed * dt.Seconds() * tank.cfg.Tank.FrameRate
	if math.Abs(moved-want) > 1e-9 {
		t.Errorf("escape step = %v, want %v", moved, want)
	}
}
