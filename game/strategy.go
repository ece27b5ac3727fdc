package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/systems"
)

// Strategy names accepted by NewStrategy.
const (
	StrategyPursuit  = "pursuit"
	StrategyPlayback = "playback"
)

// ErrUnknownStrategy is returned for an unrecognised strategy name.
var ErrUnknownStrategy = errors.New("unknown motion strategy")

// MotionStrategy moves fish between behavior ticks. The tank owns the
// roster and every state flag outside of motion; a strategy only turns
// "this fish should move" into positions and headings.
type MotionStrategy interface {
	// Name returns the strategy name.
	Name() string
	// DefaultPreset names the preset the strategy was tuned with.
	DefaultPreset() string

	attach(t *Tank)

	// Seek starts autonomous motion for an idle fish.
	Seek(id components.FishID)
	// Retarget runs once per tick for each fish after seeking.
	Retarget(now time.Time, id components.FishID)
	// Frame advances all motion to now.
	Frame(now time.Time, dt time.Duration)
	// Halt cancels autonomous motion and pending rests without completion.
	Halt(id components.FishID)
	// Flee starts an escape dash. The fish is already marked escaping.
	Flee(id components.FishID, esc systems.Escape)
	// Forget drops per-fish state when a fish leaves the roster.
	Forget(id components.FishID)
}

// NewStrategy returns a fresh strategy by name.
func NewStrategy(name string) (MotionStrategy, error) {
	switch name {
	case StrategyPursuit:
		return &ContinuousPursuit{}, nil
	case StrategyPlayback:
		return &PathPlayback{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// StrategyNames lists the accepted strategy names.
func StrategyNames() []string {
	return []string{StrategyPursuit, StrategyPlayback}
}
