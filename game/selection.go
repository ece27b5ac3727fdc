package game

import (
	"github.com/pthm-cable/flowfish/components"
)

// FishAt returns the fish nearest pos within radius. Later fish are drawn
// on top, so they win ties.
func (t *Tank) FishAt(pos components.Position, radius float64) (components.FishID, bool) {
	var (
		found   components.FishID
		closest = radius
		hit     bool
	)
	ids := t.roster.IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		f := t.roster.Get(ids[i])
		if f == nil {
			continue
		}
		if d := f.Pos.Dist(pos); d <= radius && (!hit || d < closest) {
			found, closest, hit = ids[i], d, true
		}
	}
	return found, hit
}
