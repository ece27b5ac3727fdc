package systems

import (
	"math"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
)

// HeadingFilter smooths raw direction vectors into a displayed heading.
type HeadingFilter struct {
	DeadZone float64 // per-axis magnitude below which updates are ignored
	MinDelta float64 // degrees; smaller changes are dropped
	MaxTurn  float64 // degrees; larger changes are clamped

	Heading float64 // last applied heading, degrees
	Facing  components.Facing
}

// NewHeadingFilter creates a filter starting at heading degrees.
func NewHeadingFilter(cfg config.HeadingConfig, heading float64) *HeadingFilter {
	return &HeadingFilter{
		DeadZone: cfg.DeadZone,
		MinDelta: cfg.MinDelta,
		MaxTurn:  cfg.MaxTurn,
		Heading:  heading,
	}
}

// Update feeds a direction vector and returns the applied heading and
// whether it changed.
func (h *HeadingFilter) Update(dx, dy float64) (float64, bool) {
	if math.Abs(dx) < h.DeadZone && math.Abs(dy) < h.DeadZone {
		return h.Heading, false
	}

	if dx > h.DeadZone {
		h.Facing = components.FacingRight
	} else if dx < -h.DeadZone {
		h.Facing = components.FacingLeft
	}

	target := math.Atan2(dy, dx) * 180 / math.Pi
	diff := normalizeDegrees(target - h.Heading)

	if math.Abs(diff) < h.MinDelta {
		return h.Heading, false
	}
	if math.Abs(diff) > h.MaxTurn {
		diff = math.Copysign(h.MaxTurn, diff)
	}

	h.Heading = normalizeDegrees(h.Heading + diff)
	return h.Heading, true
}

// TurnDelta returns the shortest signed difference b - a in degrees.
func TurnDelta(a, b float64) float64 {
	return normalizeDegrees(b - a)
}
