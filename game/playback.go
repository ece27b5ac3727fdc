package game

import (
	"time"

	"github.com/pthm-cable/flowfish/clock"
	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/systems"
	"github.com/pthm-cable/flowfish/telemetry"
)

// PathPlayback swims procedurally generated paths through the scheduler,
// resting between paths.
//
//	Idle --Seek--> PathPlaying --complete--> Resting --rest timer--> Idle
//
// Escaping preempts PathPlaying and Resting via Halt.
type PathPlayback struct {
	t         *Tank
	generator *systems.PathGenerator
	scheduler *systems.Scheduler
	rest      map[components.FishID]clock.TimerID
}

func (p *PathPlayback) Name() string          { return StrategyPlayback }
func (p *PathPlayback) DefaultPreset() string { return "svg" }

func (p *PathPlayback) attach(t *Tank) {
	p.t = t
	p.generator = systems.NewPathGenerator(t.cfg.Swimming)
	p.scheduler = systems.NewScheduler(t.clock, t.cfg.Heading)
	p.rest = make(map[components.FishID]clock.TimerID)
}

// Scheduler exposes the playback scheduler for inspection.
func (p *PathPlayback) Scheduler() *systems.Scheduler {
	return p.scheduler
}

// Seek generates a path for an idle fish and starts playing it. A
// degenerate path leaves the fish idle so the next tick retries.
func (p *PathPlayback) Seek(id components.FishID) {
	t := p.t
	f := t.roster.Get(id)
	if f == nil || !f.Idle() {
		return
	}

	path, err := p.generator.GeneratePath(t.rng, f.Pos, f.Personality, f.Energy, t.bounds)
	if err == nil {
		err = p.scheduler.Play(id, path.Points, path.Duration, p.onPose, p.onPathComplete)
	}
	if err != nil {
		f.Mode = path.Mode
		t.emit(telemetry.NewFishEvent(telemetry.EventPathDegenerate, t.now(), f, err.Error()))
		t.logger.Debug("path skipped", "fish", id.Short(), "mode", path.Mode.String(), "error", err)
		return
	}

	f.Moving = true
	f.State = components.StatePathPlaying
	f.Mode = path.Mode
	f.Target = path.Points[len(path.Points)-1]
	t.emit(telemetry.NewFishEvent(telemetry.EventPathStart, t.now(), f, ""))
	t.logger.Debug("path started",
		"fish", id.Short(),
		"mode", path.Mode.String(),
		"points", len(path.Points),
		"duration", path.Duration,
	)
}

func (p *PathPlayback) onPose(id components.FishID, pose systems.Pose) {
	t := p.t
	f := t.roster.Get(id)
	if f == nil {
		return
	}
	f.Pos = t.bounds.Clamp(pose.Pos)
	f.Heading = pose.Heading
	f.Facing = pose.Facing
	t.emit(telemetry.NewMoveEvent(t.now(), f))
}

func (p *PathPlayback) onPathComplete(id components.FishID) {
	t := p.t
	f := t.roster.Get(id)
	if f == nil {
		return
	}
	f.AddEnergy(t.cfg.Energy.PathCompleteBonus)
	f.Moving = false
	f.State = components.StateResting
	t.emit(telemetry.NewFishEvent(telemetry.EventPathComplete, t.now(), f, ""))

	p.cancelRest(id)
	p.rest[id] = t.timers.After(t.restDelay(), func() { p.endRest(id) })
}

func (p *PathPlayback) endRest(id components.FishID) {
	delete(p.rest, id)
	f := p.t.roster.Get(id)
	if f == nil || f.State != components.StateResting {
		return
	}
	f.State = components.StateIdle
	if !f.Escaping {
		p.Seek(id)
	}
}

func (p *PathPlayback) cancelRest(id components.FishID) {
	if timer, ok := p.rest[id]; ok {
		p.t.timers.Cancel(timer)
		delete(p.rest, id)
	}
}

// Retarget is a no-op: paths are only requested by idle fish.
func (p *PathPlayback) Retarget(time.Time, components.FishID) {}

// Frame advances every playback.
func (p *PathPlayback) Frame(now time.Time, _ time.Duration) {
	p.scheduler.Advance(now)
}

// Halt stops the playback and any pending rest.
func (p *PathPlayback) Halt(id components.FishID) {
	p.scheduler.Stop(id)
	p.cancelRest(id)
}

// Flee plays the escape dash. A dash that collapses against a corner is
// skipped; the fish still counts as escaping.
func (p *PathPlayback) Flee(id components.FishID, esc systems.Escape) {
	t := p.t
	err := p.scheduler.Play(id, esc.Points, esc.Duration, p.onPose, func(id components.FishID) {
		if f := t.roster.Get(id); f != nil {
			f.Moving = false
			f.State = components.StateIdle
		}
	})
	if err != nil {
		return
	}
	if f := t.roster.Get(id); f != nil {
		f.Moving = true
		f.State = components.StatePathPlaying
	}
}

// Forget drops scheduler and rest state for id.
func (p *PathPlayback) Forget(id components.FishID) {
	p.scheduler.Forget(id)
	p.cancelRest(id)
}
