package game

import (
	"fmt"
	"time"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/telemetry"
)

// spawnInitialPopulation creates the starting fish.
func (t *Tank) spawnInitialPopulation(n int) {
	for i := 0; i < n; i++ {
		t.spawn()
	}
	t.emit(telemetry.NewCountEvent(t.now(), t.roster.Len()))
}

// spawn adds one fish at a random position inside the margins.
func (t *Tank) spawn() components.FishID {
	b := t.bounds
	now := t.now()
	f := components.Fish{
		ID: components.NewFishID(),
		Pos: components.Position{
			X: b.Margin + t.rng.Float64()*(b.Width-2*b.Margin),
			Y: b.Margin + t.rng.Float64()*(b.Height-2*b.Margin),
		},
		Personality:             t.rng.Float64(),
		Energy:                  1,
		Speed:                   t.sampleSpeed(),
		Facing:                  components.FacingRight,
		State:                   components.StateIdle,
		LastDirectionChange:     now,
		DirectionChangeInterval: t.directionInterval(),
		Color:                   components.RandomScheme(t.rng, t.preset.Palette),
		SpawnedAt:               now,
	}
	f.Pos = b.Clamp(f.Pos)
	f.Target = f.Pos

	t.roster.Add(f)
	t.emit(telemetry.NewFishEvent(telemetry.EventSpawn, now, &f, f.Color.Name))
	return f.ID
}

// despawn removes a fish and every piece of state keyed by it.
func (t *Tank) despawn(id components.FishID) {
	f := t.roster.Get(id)
	if f == nil {
		return
	}
	t.strategy.Forget(id)
	if timer, ok := t.escapeTimers[id]; ok {
		t.timers.Cancel(timer)
		delete(t.escapeTimers, id)
	}
	t.emit(telemetry.NewFishEvent(telemetry.EventDespawn, t.now(), f, ""))
	t.roster.Remove(id)
}

// AddFish adds one fish unless the roster is full.
func (t *Tank) AddFish() (components.FishID, error) {
	if n := t.roster.Len(); n >= t.cfg.Tank.MaxFish {
		t.logger.Warn("add fish rejected", "count", n, "max", t.cfg.Tank.MaxFish)
		return "", fmt.Errorf("%w: %d fish", ErrRosterFull, n)
	}
	id := t.spawn()
	t.emit(telemetry.NewCountEvent(t.now(), t.roster.Len()))
	t.logger.Info("fish added", "fish", id.Short(), "count", t.roster.Len())
	return id, nil
}

// RemoveFish removes the most recently added fish unless the roster is at
// its minimum.
func (t *Tank) RemoveFish() (components.FishID, error) {
	n := t.roster.Len()
	if n <= t.cfg.Tank.MinFish {
		t.logger.Warn("remove fish rejected", "count", n, "min", t.cfg.Tank.MinFish)
		return "", fmt.Errorf("%w: %d fish", ErrRosterMinimum, n)
	}
	id, _ := t.roster.Last()
	t.despawn(id)
	t.emit(telemetry.NewCountEvent(t.now(), t.roster.Len()))
	t.logger.Info("fish removed", "fish", id.Short(), "count", t.roster.Len())
	return id, nil
}

// ResetAll replaces the roster with a fresh initial population. Pending
// timers are dropped.
func (t *Tank) ResetAll() {
	for _, id := range t.roster.IDs() {
		t.despawn(id)
	}
	t.timers.Clear()
	clear(t.escapeTimers)
	t.spawnInitialPopulation(t.initialCount)
	t.logger.Info("tank reset", "count", t.roster.Len())
}

// ChangeAllColors repaints every fish, one after another.
func (t *Tank) ChangeAllColors() {
	stagger := t.cfg.Derived.ColorStagger
	for i, id := range t.roster.IDs() {
		if i == 0 {
			t.changeColor(id)
			continue
		}
		t.timers.After(time.Duration(i)*stagger, func() { t.changeColor(id) })
	}
}

// changeColor picks a new scheme for one fish.
func (t *Tank) changeColor(id components.FishID) {
	f := t.roster.Get(id)
	if f == nil {
		return
	}
	f.Color = components.RandomScheme(t.rng, t.preset.Palette)
	t.emit(telemetry.NewFishEvent(telemetry.EventColorChange, t.now(), f, f.Color.Name))
}

// Resize updates the swimmable area. Fish and targets outside it are
// clamped and every fish not escaping is sent on fresh motion.
func (t *Tank) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		t.logger.Warn("ignoring resize", "width", width, "height", height)
		return
	}
	t.bounds.Width = width
	t.bounds.Height = height

	for _, id := range t.roster.IDs() {
		f := t.roster.Get(id)
		f.Pos = t.bounds.Clamp(f.Pos)
		f.Target = t.bounds.Clamp(f.Target)
		if f.Escaping {
			continue
		}
		t.halt(id)
		t.strategy.Seek(id)
	}
	t.logger.Info("tank resized", "width", width, "height", height)
}
