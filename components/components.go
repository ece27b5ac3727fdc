// Package components defines the records owned by the fish roster.
package components

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// FishID is an opaque, immutable fish identifier.
type FishID string

// NewFishID returns a fresh random identifier.
func NewFishID() FishID {
	return FishID("fish_" + uuid.NewString())
}

// Short returns the last six characters of the id, for logs.
func (id FishID) Short() string {
	s := string(id)
	if len(s) <= 6 {
		return s
	}
	return s[len(s)-6:]
}

// Position is a point in screen space.
type Position struct {
	X, Y float64
}

// Add returns p + o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale returns p * k.
func (p Position) Scale(k float64) Position {
	return Position{X: p.X * k, Y: p.Y * k}
}

// Len returns the vector length.
func (p Position) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between p and o.
func (p Position) Dist(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Lerp interpolates between p and o.
func (p Position) Lerp(o Position, t float64) Position {
	return Position{X: p.X + (o.X-p.X)*t, Y: p.Y + (o.Y-p.Y)*t}
}

// Facing is the horizontal orientation hint used by renderers.
type Facing uint8

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// State is the per-fish behavior state.
type State uint8

const (
	StateIdle        State = iota // waiting for the next tick to seek
	StatePathPlaying              // a playback or pursuit leg is running
	StateResting                  // pausing between paths
)

func (s State) String() string {
	switch s {
	case StatePathPlaying:
		return "path_playing"
	case StateResting:
		return "resting"
	default:
		return "idle"
	}
}

// Fish is the full per-fish record. Escaping is orthogonal to State and
// may preempt StatePathPlaying at any time.
type Fish struct {
	ID          FishID
	Pos         Position
	Target      Position
	Personality float64 // [0,1), fixed at spawn
	Energy      float64 // [0,1]
	Speed       float64
	Heading     float64 // degrees, last applied
	Facing      Facing

	Escaping bool
	Moving   bool
	State    State
	Mode     Mode // mode of the most recent path

	LastDirectionChange     time.Time
	DirectionChangeInterval time.Duration

	Color     ColorScheme
	SpawnedAt time.Time
}

// Idle reports whether the fish may request new motion.
func (f *Fish) Idle() bool {
	return !f.Escaping && !f.Moving && f.State == StateIdle
}

// AddEnergy adds delta and clamps to [0,1].
func (f *Fish) AddEnergy(delta float64) {
	f.Energy += delta
	if f.Energy > 1 {
		f.Energy = 1
	} else if f.Energy < 0 {
		f.Energy = 0
	}
}
