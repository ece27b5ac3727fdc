package systems

import (
	"errors"
	"math"
	"time"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
)

// ErrDegeneratePath is returned when a generated path has fewer than two
// distinct usable points. Callers skip playback and retry on a later tick.
var ErrDegeneratePath = errors.New("degenerate path")

// Shape is the geometric family a swimming mode traces.
type Shape uint8

const (
	ShapeFigureEight Shape = iota
	ShapeSpiral
	ShapeRandomCurves
	ShapeGentleDrift
)

// Pattern holds the numeric parameters of one swimming mode.
type Pattern struct {
	Shape           Shape
	CurveIntensity  float64
	TurnRadius      float64
	SpeedMultiplier float64
}

// Path is a generated swimming trajectory.
type Path struct {
	Points   []Waypoint
	Mode     components.Mode
	Duration float64 // seconds
}

// DurationTime returns Duration as a time.Duration.
func (p Path) DurationTime() time.Duration {
	return time.Duration(p.Duration * float64(time.Second))
}

// Mode selection thresholds.
const (
	restingEnergy      = 0.3
	exploringCharacter = 0.8
	patrolCharacter    = 0.5
)

// SelectMode picks the swimming mode from personality and energy. Low energy
// always wins.
func SelectMode(personality, energy float64) components.Mode {
	switch {
	case energy < restingEnergy:
		return components.ModeResting
	case personality > exploringCharacter:
		return components.ModeExploring
	case personality > patrolCharacter:
		return components.ModePatrol
	default:
		return components.ModeForaging
	}
}

// PathGenerator turns position, personality and energy into procedural paths.
type PathGenerator struct {
	patterns    map[components.Mode]Pattern
	baseSpeed   float64
	minDuration float64
}

var modeShapes = map[components.Mode]Shape{
	components.ModePatrol:    ShapeFigureEight,
	components.ModeExploring: ShapeSpiral,
	components.ModeForaging:  ShapeRandomCurves,
	components.ModeResting:   ShapeGentleDrift,
}

// NewPathGenerator builds a generator from the swimming config.
func NewPathGenerator(cfg config.SwimmingConfig) *PathGenerator {
	g := &PathGenerator{
		patterns:    make(map[components.Mode]Pattern, len(modeShapes)),
		baseSpeed:   cfg.BaseSpeed,
		minDuration: cfg.MinDuration,
	}
	for mode, shape := range modeShapes {
		pc := cfg.Patterns[mode.String()]
		g.patterns[mode] = Pattern{
			Shape:           shape,
			CurveIntensity:  pc.CurveIntensity,
			TurnRadius:      pc.TurnRadius,
			SpeedMultiplier: pc.SpeedMultiplier,
		}
	}
	return g
}

// Pattern returns the parameters used for mode.
func (g *PathGenerator) Pattern(mode components.Mode) Pattern {
	return g.patterns[mode]
}

// GeneratePath builds a path from pos. Randomness is only drawn inside the
// chosen shape generator.
func (g *PathGenerator) GeneratePath(rng Rand, pos components.Position, personality, energy float64, bounds Bounds) (Path, error) {
	mode := SelectMode(personality, energy)
	pattern := g.patterns[mode]

	var points []Waypoint
	switch pattern.Shape {
	case ShapeFigureEight:
		points = figureEight(pos, pattern.TurnRadius)
	case ShapeSpiral:
		points = spiral(pos, pattern.TurnRadius)
	case ShapeGentleDrift:
		points = gentleDrift(rng, pos, pattern.TurnRadius)
	default:
		points = randomCurves(rng, pos, pattern.TurnRadius)
	}

	// Clamping may flatten a shape against the edge; that is accepted.
	for i := range points {
		points[i] = bounds.Clamp(points[i])
	}

	if !usable(points) {
		return Path{Mode: mode}, ErrDegeneratePath
	}

	return Path{
		Points:   points,
		Mode:     mode,
		Duration: g.duration(points, pattern.SpeedMultiplier),
	}, nil
}

// duration converts path length into seconds, floored at minDuration.
func (g *PathGenerator) duration(points []Waypoint, speedMultiplier float64) float64 {
	speed := g.baseSpeed * speedMultiplier
	if speed <= 0 {
		return g.minDuration
	}
	return math.Max(g.minDuration, PathLength(points)/speed)
}

// PathLength sums the Euclidean segment lengths.
func PathLength(points []Waypoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Dist(points[i])
	}
	return total
}

// usable requires at least two distinct finite points.
func usable(points []Waypoint) bool {
	if len(points) < 2 {
		return false
	}
	for _, p := range points {
		if !finite(p) {
			return false
		}
	}
	first := points[0]
	for _, p := range points[1:] {
		if p != first {
			return true
		}
	}
	return false
}

// figureEight traces two joined loops above and below the start, 9 samples each.
func figureEight(start components.Position, radius float64) []Waypoint {
	points := make([]Waypoint, 0, 18)
	upper := start.Y - radius*0.6
	lower := start.Y + radius*0.6

	for i := 0; i <= 8; i++ {
		angle := float64(i) / 8 * math.Pi * 2
		points = append(points, Waypoint{
			X: start.X + math.Cos(angle)*radius,
			Y: upper + math.Sin(angle)*radius*0.6,
		})
	}
	for i := 0; i <= 8; i++ {
		angle := math.Pi + float64(i)/8*math.Pi*2
		points = append(points, Waypoint{
			X: start.X + math.Cos(angle)*radius,
			Y: lower + math.Sin(angle)*radius*0.6,
		})
	}
	return points
}

// spiral grows from 30% to 100% of radius over 2.5 turns, y compressed by 0.7.
func spiral(start components.Position, maxRadius float64) []Waypoint {
	const (
		turns = 2.5
		steps = 16
	)
	points := make([]Waypoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		progress := float64(i) / steps
		angle := progress * math.Pi * 2 * turns
		radius := maxRadius * (0.3 + 0.7*progress)
		points = append(points, Waypoint{
			X: start.X + math.Cos(angle)*radius,
			Y: start.Y + math.Sin(angle)*radius*0.7,
		})
	}
	return points
}

// randomCurves is a bounded-turn random walk: 5-8 steps after the start,
// each turning at most 0.4*pi from the previous heading.
func randomCurves(rng Rand, start components.Position, radius float64) []Waypoint {
	n := 6 + rng.Intn(4)
	points := make([]Waypoint, 0, n)
	points = append(points, start)

	cur := start
	angle := rng.Float64() * math.Pi * 2
	for i := 1; i < n; i++ {
		angle += (rng.Float64() - 0.5) * math.Pi * 0.8
		step := radius * (0.5 + rng.Float64()*1.5)
		cur = Waypoint{
			X: cur.X + math.Cos(angle)*step,
			Y: cur.Y + math.Sin(angle)*step,
		}
		points = append(points, cur)
	}
	return points
}

// gentleDrift is a shallow horizontal sine across 2*radius, 13 samples.
func gentleDrift(rng Rand, start components.Position, radius float64) []Waypoint {
	const steps = 12
	waves := 2 + rng.Float64()
	points := make([]Waypoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		progress := float64(i) / steps
		points = append(points, Waypoint{
			X: start.X + progress*radius*2 - radius,
			Y: start.Y + math.Sin(progress*math.Pi*waves)*radius*0.3,
		})
	}
	return points
}
