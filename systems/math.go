// Package systems holds the autonomous motion core: procedural path
// generation, playback scheduling, heading smoothing and flocking math.
package systems

import (
	"math"

	"github.com/pthm-cable/flowfish/components"
)

// Waypoint is one point of a generated path.
type Waypoint = components.Position

// Bounds is the swimmable area: [Margin, Width-Margin] x [Margin, Height-Margin].
type Bounds struct {
	Width, Height float64
	Margin        float64
}

// Clamp returns p moved component-wise inside the bounds.
func (b Bounds) Clamp(p components.Position) components.Position {
	return components.Position{
		X: clamp(p.X, b.Margin, b.Width-b.Margin),
		Y: clamp(p.Y, b.Margin, b.Height-b.Margin),
	}
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p components.Position) bool {
	return p.X >= b.Margin && p.X <= b.Width-b.Margin &&
		p.Y >= b.Margin && p.Y <= b.Height-b.Margin
}

// Center returns the middle of the screen.
func (b Bounds) Center() components.Position {
	return components.Position{X: b.Width / 2, Y: b.Height / 2}
}

// clamp keeps the lower bound when the range is inverted, matching
// max(lo, min(v, hi)).
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// normalizeDegrees wraps an angle to [-180, 180].
func normalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a < -180 {
		a += 360
	}
	return a
}

// finite reports whether p has no NaN or Inf component.
func finite(p components.Position) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// uniform returns a value in [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Rand is the random source every draw goes through. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
