package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
)

func init() {
	config.MustInit("")
}

func testBounds() Bounds {
	return Bounds{Width: 1280, Height: 800, Margin: 100}
}

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name        string
		personality float64
		energy      float64
		want        components.Mode
	}{
		{"low energy beats explorer", 0.95, 0.2, components.ModeResting},
		{"low energy beats forager", 0.1, 0.29, components.ModeResting},
		{"explorer", 0.9, 0.9, components.ModeExploring},
		{"explorer boundary is patrol", 0.8, 0.9, components.ModePatrol},
		{"patrol", 0.6, 0.5, components.ModePatrol},
		{"patrol boundary is foraging", 0.5, 0.5, components.ModeForaging},
		{"forager", 0.1, 1.0, components.ModeForaging},
		{"energy threshold inclusive", 0.1, 0.3, components.ModeForaging},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectMode(tt.personality, tt.energy); got != tt.want {
				t.Errorf("SelectMode(%v, %v) = %v, want %v", tt.personality, tt.energy, got, tt.want)
			}
		})
	}
}

func TestGeneratePathStaysInBoundsWithMinimumDuration(t *testing.T) {
	gen := NewPathGenerator(config.Cfg().Swimming)
	rng := rand.New(rand.NewSource(7))
	b := testBounds()

	starts := []components.Position{
		{X: 640, Y: 400},
		{X: 100, Y: 100},
		{X: 1180, Y: 700},
		{X: 100, Y: 700},
		{X: 1180, Y: 100},
	}

	for i := 0; i < 500; i++ {
		start := starts[i%len(starts)]
		personality := rng.Float64()
		energy := rng.Float64()

		path, err := gen.GeneratePath(rng, start, personality, energy, b)
		if err != nil {
			// Corner starts can legitimately collapse; everything else must produce a path.
			if !errors.Is(err, ErrDegeneratePath) {
				t.Fatalf("unexpected error: %v", err)
			}
			continue
		}
		if path.Duration < 3.0 {
			t.Errorf("path %d duration %v below 3s", i, path.Duration)
		}
		if want := SelectMode(personality, energy); path.Mode != want {
			t.Errorf("path %d mode %v, want %v", i, path.Mode, want)
		}
		for j, p := range path.Points {
			if p.X < b.Margin || p.X > b.Width-b.Margin || p.Y < b.Margin || p.Y > b.Height-b.Margin {
				t.Fatalf("path %d point %d out of bounds: %+v", i, j, p)
			}
		}
	}
}

func TestGeneratePathShapes(t *testing.T) {
	gen := NewPathGenerator(config.Cfg().Swimming)
	b := Bounds{Width: 4000, Height: 4000, Margin: 0}
	center := components.Position{X: 2000, Y: 2000}

	tests := []struct {
		name        string
		personality float64
		energy      float64
		minPoints   int
		maxPoints   int
	}{
		{"patrol figure eight", 0.6, 0.9, 18, 18},
		{"exploring spiral", 0.9, 0.9, 17, 17},
		{"foraging random curves", 0.2, 0.9, 6, 9},
		{"resting drift", 0.2, 0.1, 13, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(3))
			for i := 0; i < 50; i++ {
				path, err := gen.GeneratePath(rng, center, tt.personality, tt.energy, b)
				if err != nil {
					t.Fatalf("GeneratePath: %v", err)
				}
				if n := len(path.Points); n < tt.minPoints || n > tt.maxPoints {
					t.Fatalf("got %d points, want [%d, %d]", n, tt.minPoints, tt.maxPoints)
				}
			}
		})
	}
}

func TestRandomCurvesBoundedTurning(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	start := components.Position{X: 0, Y: 0}
	radius := 50.0

	for i := 0; i < 200; i++ {
		points := randomCurves(rng, start, radius)
		if points[0] != start {
			t.Fatalf("first point %+v, want start", points[0])
		}
		for j := 1; j < len(points); j++ {
			step := points[j-1].Dist(points[j])
			if step < radius*0.5-1e-9 || step > radius*2+1e-9 {
				t.Fatalf("step %d length %v outside [%v, %v]", j, step, radius*0.5, radius*2)
			}
			if j < 2 {
				continue
			}
			prev := points[j-1].Sub(points[j-2])
			cur := points[j].Sub(points[j-1])
			turn := math.Abs(TurnDelta(
				math.Atan2(prev.Y, prev.X)*180/math.Pi,
				math.Atan2(cur.Y, cur.X)*180/math.Pi,
			))
			if turn > 72+1e-6 {
				t.Fatalf("turn %v degrees exceeds 0.4*pi", turn)
			}
		}
	}
}

func TestGentleDriftSpan(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	start := components.Position{X: 500, Y: 500}
	points := gentleDrift(rng, start, 30)

	if points[0].X != 470 || points[len(points)-1].X != 530 {
		t.Errorf("drift spans [%v, %v], want [470, 530]", points[0].X, points[len(points)-1].X)
	}
	for _, p := range points {
		if math.Abs(p.Y-start.Y) > 30*0.3+1e-9 {
			t.Errorf("drift amplitude %v exceeds 0.3r", math.Abs(p.Y-start.Y))
		}
	}
}

func TestGeneratePathDegenerate(t *testing.T) {
	gen := NewPathGenerator(config.Cfg().Swimming)
	rng := rand.New(rand.NewSource(1))

	// Bounds collapsed to a single point clamp every waypoint together.
	b := Bounds{Width: 200, Height: 200, Margin: 100}
	_, err := gen.GeneratePath(rng, components.Position{X: 100, Y: 100}, 0.6, 0.9, b)
	if !errors.Is(err, ErrDegeneratePath) {
		t.Errorf("expected ErrDegeneratePath, got %v", err)
	}

	nan := components.Position{X: math.NaN(), Y: 400}
	if _, err := gen.GeneratePath(rng, nan, 0.6, 0.9, Bounds{Width: 1280, Height: 800}); !errors.Is(err, ErrDegeneratePath) {
		t.Errorf("NaN start: expected ErrDegeneratePath, got %v", err)
	}
}

func TestPathDuration(t *testing.T) {
	gen := NewPathGenerator(config.Cfg().Swimming)

	short := []Waypoint{{X: 0, Y: 0}, {X: 10, Y: 0}}
	if d := gen.duration(short, 1.0); d != 3 {
		t.Errorf("short path duration = %v, want 3", d)
	}

	long := []Waypoint{{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 400}}
	// 700px at 50*0.6 = 30 px/s
	if d := gen.duration(long, 0.6); math.Abs(d-700.0/30.0) > 1e-9 {
		t.Errorf("long path duration = %v, want %v", d, 700.0/30.0)
	}
}
