package renderer

import (
	"github.com/pthm-cable/flowfish/components"
)

// TankView draws a roster snapshot plus event effects.
type TankView struct {
	fish    *FishRenderer
	effects *Effects
}

// NewTankView creates a view. Subscribe Effects() to the tank's events.
func NewTankView(seed int64) *TankView {
	return &TankView{
		fish:    NewFishRenderer(seed),
		effects: NewEffects(),
	}
}

// Effects returns the event-driven effect list.
func (v *TankView) Effects() *Effects {
	return v.effects
}

// Draw renders one frame. now is seconds since start; dt is the frame time.
func (v *TankView) Draw(fish []components.Fish, now, dt float64) {
	v.effects.Update(dt)
	v.effects.Observe(fish)

	v.effects.DrawUnder()
	for _, f := range fish {
		v.fish.Draw(f, now, v.effects.Alpha(f.ID))
	}
	v.effects.DrawOver(v.fish)
}
