package game

import (
	"fmt"
	"time"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/systems"
	"github.com/pthm-cable/flowfish/telemetry"
)

// Escape causes, carried in the escape_start event detail.
const (
	causeClick   = "click"
	causeStartle = "startle"
)

// Click reacts to a click on a fish: it escapes, nearby fish may be
// startled into following after a short random delay, and the clicked
// fish may change colour.
func (t *Tank) Click(id components.FishID) error {
	f := t.roster.Get(id)
	if f == nil {
		t.logger.Debug("click on unknown fish", "fish", id.Short())
		return fmt.Errorf("%w: %s", ErrUnknownFish, id)
	}

	t.emit(telemetry.NewFishEvent(telemetry.EventClickReaction, t.now(), f, ""))
	t.escape(id, causeClick)
	t.startle(id)

	if t.rng.Float64() < t.preset.ColorChangeChance {
		t.changeColor(id)
	}
	return nil
}

// ClickAt clicks the topmost fish under pos, if any.
func (t *Tank) ClickAt(pos components.Position, radius float64) (components.FishID, bool) {
	id, ok := t.FishAt(pos, radius)
	if !ok {
		return "", false
	}
	return id, t.Click(id) == nil
}

// halt cancels autonomous motion without completion callbacks.
func (t *Tank) halt(id components.FishID) {
	t.strategy.Halt(id)
	if f := t.roster.Get(id); f != nil {
		f.Moving = false
		f.State = components.StateIdle
	}
}

// escape sends a fish dashing away. A fish already escaping restarts its
// dash and escape timer.
func (t *Tank) escape(id components.FishID, cause string) {
	if t.roster.Get(id) == nil {
		return
	}
	t.halt(id)

	f := t.roster.Get(id)
	f.Escaping = true
	f.Speed = t.preset.ClickEscapeSpeed
	f.AddEnergy(-t.cfg.Energy.EscapeCost)
	f.Mode = components.ModeEscape

	p := t.preset
	esc := systems.EscapeTrajectory(t.rng, f.Pos, t.bounds, p.EscapeMinDistance, p.EscapeMaxDistance)
	f.Target = esc.Target
	t.emit(telemetry.NewFishEvent(telemetry.EventEscapeStart, t.now(), f, cause))

	t.strategy.Flee(id, esc)

	if timer, ok := t.escapeTimers[id]; ok {
		t.timers.Cancel(timer)
	}
	t.escapeTimers[id] = t.timers.After(p.ClickEscapeDuration(), func() { t.endEscape(id) })

	t.logger.Debug("escape",
		"fish", id.Short(),
		"cause", cause,
		"distance", esc.Distance,
	)
}

// endEscape returns a fish to normal cruising.
func (t *Tank) endEscape(id components.FishID) {
	delete(t.escapeTimers, id)
	f := t.roster.Get(id)
	if f == nil || !f.Escaping {
		return
	}
	f.Escaping = false
	f.Speed = t.sampleSpeed()
	f.Mode = components.ModeNone
	t.emit(telemetry.NewFishEvent(telemetry.EventEscapeEnd, t.now(), f, ""))
}

// startle rolls a scare for every fish within schooling distance of id.
// Scared fish escape after a random delay up to the startle maximum.
func (t *Tank) startle(id components.FishID) {
	ids := t.roster.IDs()
	members := make([]systems.Member, 0, len(ids))
	for _, other := range ids {
		f := t.roster.Get(other)
		members = append(members, systems.Member{ID: other, Pos: f.Pos})
	}
	field := systems.NewFlockField(members)

	i, ok := field.Index(id)
	if !ok {
		return
	}

	p := t.preset
	for _, n := range field.Neighbors(i, p.SchoolingDistance) {
		if t.rng.Float64() >= systems.ScareProbability(n.Distance, p.SchoolingDistance, p.ScareFactor) {
			continue
		}
		neighbor := field.Member(n.Index).ID
		delay := time.Duration(t.rng.Float64() * float64(p.StartleMaxDelay()))
		t.timers.After(delay, func() { t.escape(neighbor, causeStartle) })
	}
}
