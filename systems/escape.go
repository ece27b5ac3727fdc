package systems

import (
	"math"

	"github.com/pthm-cable/flowfish/components"
)

// Escape burst timing, seconds.
const (
	escapeBurst     = 0.3
	escapeSettleMax = 1.0
	escapeOvershoot = 1.1
)

// Escape is a dash away from a threat.
type Escape struct {
	Dir      components.Position // unit vector
	Distance float64
	Target   components.Position // clamped settle point
	Points   []Waypoint          // start, overshoot, settle
	Duration float64             // seconds, in [0.3, 1.3]
}

// EscapeTrajectory picks a random direction and distance in
// [minDist, maxDist] and builds an overshoot-then-settle dash from from.
func EscapeTrajectory(rng Rand, from components.Position, bounds Bounds, minDist, maxDist float64) Escape {
	angle := rng.Float64() * math.Pi * 2
	dist := uniform(rng, minDist, maxDist)
	dir := components.Position{X: math.Cos(angle), Y: math.Sin(angle)}

	target := bounds.Clamp(from.Add(dir.Scale(dist)))
	overshoot := bounds.Clamp(from.Add(dir.Scale(dist * escapeOvershoot)))

	settle := 0.0
	if maxDist > 0 {
		settle = clamp01(dist/maxDist) * escapeSettleMax
	}

	return Escape{
		Dir:      dir,
		Distance: dist,
		Target:   target,
		Points:   []Waypoint{from, overshoot, target},
		Duration: escapeBurst + settle,
	}
}
