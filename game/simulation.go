package game

import (
	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/systems"
	"github.com/pthm-cable/flowfish/telemetry"
)

// Tick runs one behavior tick: energy recovery, flocking, path requests
// for idle fish, direction changes and telemetry.
func (t *Tank) Tick() {
	now := t.now()
	t.perfCollector.StartTick()

	t.perfCollector.StartPhase(telemetry.PhaseEnergy)
	t.updateEnergy()

	t.perfCollector.StartPhase(telemetry.PhaseFlock)
	t.updateFlock()

	// Snapshot after flocking; seeks may not add or remove fish but a
	// stable order keeps rng draws reproducible.
	ids := t.roster.IDs()

	t.perfCollector.StartPhase(telemetry.PhaseSeek)
	for _, id := range ids {
		if f := t.roster.Get(id); f != nil && f.Idle() {
			t.strategy.Seek(id)
		}
	}

	t.perfCollector.StartPhase(telemetry.PhaseRetarget)
	for _, id := range ids {
		t.strategy.Retarget(now, id)
	}

	t.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	t.collector.RecordTick()
	t.flushTelemetry()

	t.perfCollector.EndTick()
	t.ticks++
}

// updateEnergy recovers energy toward full.
func (t *Tank) updateEnergy() {
	regen := t.cfg.Energy.RegenPerTick
	t.roster.Each(func(f *components.Fish) {
		if f.Energy < 1 {
			f.AddEnergy(regen)
		}
	})
}

// updateFlock applies occasional schooling pulls and constant neighbour
// avoidance to every target. Positions are read from a snapshot so the
// result does not depend on iteration order.
func (t *Tank) updateFlock() {
	ids := t.roster.IDs()
	if len(ids) == 0 {
		return
	}

	members := make([]systems.Member, 0, len(ids))
	for _, id := range ids {
		f := t.roster.Get(id)
		members = append(members, systems.Member{
			ID:          id,
			Pos:         f.Pos,
			Target:      f.Target,
			Personality: f.Personality,
			Escaping:    f.Escaping,
		})
	}
	field := systems.NewFlockField(members)

	flock := t.cfg.Flock
	schoolDist := t.preset.SchoolingDistance
	avoidDist := t.preset.AvoidanceDistance
	now := t.now()

	for i, id := range ids {
		f := t.roster.Get(id)
		target := f.Target

		if !f.Escaping && t.rng.Float64() < flock.SchoolingChance {
			if pulled, ok := field.SchoolingTarget(i, schoolDist, flock); ok {
				target = pulled
				f.Target = t.bounds.Clamp(target)
				t.emit(telemetry.NewFishEvent(telemetry.EventSchoolingPulse, now, f, ""))
			}
		}

		offset := field.AvoidanceOffset(i, avoidDist, flock.AvoidanceStrength)
		if offset != (components.Position{}) {
			f.Target = t.bounds.Clamp(target.Add(offset))
		}
	}
}
