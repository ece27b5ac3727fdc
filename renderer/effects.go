package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/telemetry"
)

// EffectType identifies a transient visual effect.
type EffectType uint8

const (
	EffectFadeIn EffectType = iota
	EffectPulse
	EffectStreak
	EffectGlow
	EffectFadeOut
)

// Effect lifetimes, seconds.
var effectLife = [...]float64{
	EffectFadeIn:  0.6,
	EffectPulse:   0.5,
	EffectStreak:  0.4,
	EffectGlow:    0.8,
	EffectFadeOut: 1.0,
}

// Effect is one transient visual.
type Effect struct {
	Type    EffectType
	FishID  components.FishID
	Pos     components.Position
	Heading float64
	Ghost   components.Fish // fade-out copy
	Age     float64
}

// Life returns the effect lifetime in seconds.
func (e *Effect) Life() float64 {
	return effectLife[e.Type]
}

// Effects turns tank events into short-lived visuals. It is a
// telemetry.Sink and must be driven from the tank's goroutine.
type Effects struct {
	effects  []Effect
	lastSeen map[components.FishID]components.Fish
}

// NewEffects creates an empty effect list.
func NewEffects() *Effects {
	return &Effects{lastSeen: make(map[components.FishID]components.Fish)}
}

// Emit implements telemetry.Sink.
func (fx *Effects) Emit(e telemetry.Event) {
	var typ EffectType
	switch e.Type {
	case telemetry.EventSpawn:
		typ = EffectFadeIn
	case telemetry.EventClickReaction:
		typ = EffectPulse
	case telemetry.EventEscapeStart:
		typ = EffectStreak
	case telemetry.EventSchoolingPulse:
		typ = EffectGlow
	case telemetry.EventDespawn:
		typ = EffectFadeOut
	default:
		return
	}

	eff := Effect{Type: typ, FishID: e.FishID, Pos: e.Pos, Heading: e.Heading}
	if typ == EffectFadeOut {
		ghost, ok := fx.lastSeen[e.FishID]
		if !ok {
			return
		}
		eff.Ghost = ghost
		delete(fx.lastSeen, e.FishID)
	}
	fx.effects = append(fx.effects, eff)
}

// Observe records the latest fish copies so despawned fish can fade out.
func (fx *Effects) Observe(fish []components.Fish) {
	for _, f := range fish {
		fx.lastSeen[f.ID] = f
	}
}

// Update ages effects by dt seconds and drops expired ones.
func (fx *Effects) Update(dt float64) {
	alive := fx.effects[:0]
	for _, e := range fx.effects {
		e.Age += dt
		if e.Age < e.Life() {
			alive = append(alive, e)
		}
	}
	fx.effects = alive
}

// Len returns the number of live effects.
func (fx *Effects) Len() int {
	return len(fx.effects)
}

// Alpha returns the spawn fade-in opacity for a fish.
func (fx *Effects) Alpha(id components.FishID) float32 {
	for i := range fx.effects {
		e := &fx.effects[i]
		if e.Type == EffectFadeIn && e.FishID == id {
			return float32(e.Age / e.Life())
		}
	}
	return 1
}

// DrawUnder renders effects that sit beneath the fish.
func (fx *Effects) DrawUnder() {
	for i := range fx.effects {
		e := &fx.effects[i]
		ratio := 1 - e.Age/e.Life()
		center := rl.NewVector2(float32(e.Pos.X), float32(e.Pos.Y))

		switch e.Type {
		case EffectGlow:
			rl.DrawCircleV(center, 28, rl.Color{R: 120, G: 220, B: 255, A: uint8(ratio * 60)})
		case EffectStreak:
			// Trailing speed lines behind the escape start.
			sin, cos := math.Sincos(e.Heading * math.Pi / 180)
			for _, off := range []float64{-6, 0, 6} {
				start := rl.NewVector2(center.X+float32(-sin*off), center.Y+float32(cos*off))
				length := 30 * ratio
				end := rl.NewVector2(start.X-float32(cos*length), start.Y-float32(sin*length))
				rl.DrawLineEx(start, end, 2, rl.Color{R: 255, G: 255, B: 255, A: uint8(ratio * 160)})
			}
		}
	}
}

// DrawOver renders effects that sit above the fish.
func (fx *Effects) DrawOver(fr *FishRenderer) {
	for i := range fx.effects {
		e := &fx.effects[i]
		ratio := 1 - e.Age/e.Life()
		center := rl.NewVector2(float32(e.Pos.X), float32(e.Pos.Y))

		switch e.Type {
		case EffectPulse:
			radius := float32(10 + 30*(1-ratio))
			rl.DrawRing(center, radius, radius+3, 0, 360, 32, rl.Color{R: 255, G: 255, B: 255, A: uint8(ratio * 200)})
		case EffectFadeOut:
			fr.DrawGhost(e.Ghost, float32(ratio))
		}
	}
}
