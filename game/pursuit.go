package game

import (
	"math"
	"time"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/systems"
	"github.com/pthm-cable/flowfish/telemetry"
)

const (
	arrivalRadius = 5.0
	// Lower bound on the energy factor of a pursuit step.
	minPursuitEnergy = 0.1
	recenterJitter   = 200.0
)

// ContinuousPursuit steers every fish straight at its target each frame
// and picks a new target on arrival or when its direction timer expires.
// Targets are pushed around by schooling and avoidance between frames.
type ContinuousPursuit struct {
	t       *Tank
	filters map[components.FishID]*systems.HeadingFilter
}

func (c *ContinuousPursuit) Name() string          { return StrategyPursuit }
func (c *ContinuousPursuit) DefaultPreset() string { return "classic" }

func (c *ContinuousPursuit) attach(t *Tank) {
	c.t = t
	c.filters = make(map[components.FishID]*systems.HeadingFilter)
}

// Seek picks a first target and starts chasing.
func (c *ContinuousPursuit) Seek(id components.FishID) {
	t := c.t
	f := t.roster.Get(id)
	if f == nil || !f.Idle() {
		return
	}
	c.setNewTarget(f)
	f.Moving = true
	f.State = components.StatePathPlaying
	f.Mode = components.ModeNone
	t.emit(telemetry.NewFishEvent(telemetry.EventPathStart, t.now(), f, "target"))
}

// setNewTarget chooses a target whose range grows with personality.
func (c *ContinuousPursuit) setNewTarget(f *components.Fish) {
	t := c.t
	b := t.bounds
	switch {
	case f.Personality > 0.7:
		f.Target = components.Position{
			X: b.Margin + t.rng.Float64()*(b.Width-2*b.Margin),
			Y: b.Margin + t.rng.Float64()*(b.Height-2*b.Margin),
		}
	case f.Personality > 0.4:
		f.Target = c.nearby(f.Pos, 200)
	default:
		f.Target = c.nearby(f.Pos, 100)
	}
	f.Target = b.Clamp(f.Target)
}

func (c *ContinuousPursuit) nearby(p components.Position, span float64) components.Position {
	rng := c.t.rng
	return components.Position{
		X: p.X + (rng.Float64()-0.5)*span,
		Y: p.Y + (rng.Float64()-0.5)*span,
	}
}

// Retarget fires the per-fish direction change timer.
func (c *ContinuousPursuit) Retarget(now time.Time, id components.FishID) {
	t := c.t
	f := t.roster.Get(id)
	if f == nil || f.Escaping || !f.Moving {
		return
	}
	if now.Sub(f.LastDirectionChange) <= f.DirectionChangeInterval {
		return
	}
	c.setNewTarget(f)
	f.LastDirectionChange = now
	f.DirectionChangeInterval = t.directionInterval()
}

// Frame moves each chasing fish speed*energy pixels per reference frame.
// Escaping fish dash at full speed.
func (c *ContinuousPursuit) Frame(now time.Time, dt time.Duration) {
	t := c.t
	frames := dt.Seconds() * t.cfg.Tank.FrameRate
	if frames <= 0 {
		return
	}

	for _, id := range t.roster.IDs() {
		f := t.roster.Get(id)
		if f == nil || !f.Moving {
			continue
		}

		delta := f.Target.Sub(f.Pos)
		dist := delta.Len()
		if dist <= arrivalRadius {
			c.setNewTarget(f)
			continue
		}

		step := f.Speed * frames
		if !f.Escaping {
			step *= math.Max(f.Energy, minPursuitEnergy)
		}
		if step > dist {
			step = dist
		}
		move := delta.Scale(step / dist)
		f.Pos = f.Pos.Add(move)
		c.keepInside(f)

		filter := c.filter(id)
		f.Heading, _ = filter.Update(move.X, move.Y)
		f.Facing = filter.Facing
		t.emit(telemetry.NewMoveEvent(now, f))
	}
}

// keepInside clamps a fish that crossed the margin and recentres its
// target on that axis.
func (c *ContinuousPursuit) keepInside(f *components.Fish) {
	t := c.t
	b := t.bounds
	if f.Pos.X < b.Margin || f.Pos.X > b.Width-b.Margin {
		f.Pos.X = b.Clamp(f.Pos).X
		f.Target.X = b.Width/2 + (t.rng.Float64()-0.5)*recenterJitter
	}
	if f.Pos.Y < b.Margin || f.Pos.Y > b.Height-b.Margin {
		f.Pos.Y = b.Clamp(f.Pos).Y
		f.Target.Y = b.Height/2 + (t.rng.Float64()-0.5)*recenterJitter
	}
}

func (c *ContinuousPursuit) filter(id components.FishID) *systems.HeadingFilter {
	f, ok := c.filters[id]
	if !ok {
		f = systems.NewHeadingFilter(c.t.cfg.Heading, 0)
		c.filters[id] = f
	}
	return f
}

// Halt has nothing to cancel: pursuit has no playback or rest.
func (c *ContinuousPursuit) Halt(components.FishID) {}

// Flee chases the escape target at the elevated speed the tank assigned.
func (c *ContinuousPursuit) Flee(id components.FishID, esc systems.Escape) {
	f := c.t.roster.Get(id)
	if f == nil {
		return
	}
	f.Target = esc.Target
	f.Moving = true
	f.State = components.StatePathPlaying
}

// Forget drops the heading filter for id.
func (c *ContinuousPursuit) Forget(id components.FishID) {
	delete(c.filters, id)
}
