package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
)

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{190, -170},
		{-190, 170},
		{360, 0},
		{540, 180},
		{-725, -5},
	}
	for _, tt := range tests {
		if got := normalizeDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHeadingFilter(t *testing.T) {
	tests := []struct {
		name        string
		start       float64
		dx, dy      float64
		wantHeading float64
		wantChanged bool
	}{
		{"dead zone ignored", 0, 0.05, -0.05, 0, false},
		{"small delta dropped", 0, 100, 4, 0, false},
		{"within clamp applied", 0, 100, 100, 45, true},
		{"reversal clamped", 0, -100, 0, 45, true},
		{"shortest path across seam", 170, -100, -10, -174.29, true},
		{"negative clamp", 0, 100, -300, -45, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewHeadingFilter(config.Cfg().Heading, tt.start)
			got, changed := f.Update(tt.dx, tt.dy)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if math.Abs(got-tt.wantHeading) > 0.01 {
				t.Errorf("heading = %.2f, want %.2f", got, tt.wantHeading)
			}
		})
	}
}

func TestHeadingFilterFacing(t *testing.T) {
	f := NewHeadingFilter(config.Cfg().Heading, 0)
	f.Update(-50, 0)
	if f.Facing != components.FacingLeft {
		t.Errorf("facing = %v, want left", f.Facing)
	}
	// Pure vertical motion keeps the last facing.
	f.Update(0, 50)
	if f.Facing != components.FacingLeft {
		t.Errorf("facing flipped on vertical motion")
	}
	f.Update(30, 0)
	if f.Facing != components.FacingRight {
		t.Errorf("facing = %v, want right", f.Facing)
	}
}

func TestHeadingFilterNeverExceedsMaxTurn(t *testing.T) {
	f := NewHeadingFilter(config.Cfg().Heading, 0)
	rng := rand.New(rand.NewSource(42))
	prev := f.Heading
	for i := 0; i < 2000; i++ {
		dx := (rng.Float64() - 0.5) * 200
		dy := (rng.Float64() - 0.5) * 200
		h, _ := f.Update(dx, dy)
		if d := math.Abs(TurnDelta(prev, h)); d > 45+1e-9 {
			t.Fatalf("step %d turned %v degrees", i, d)
		}
		prev = h
	}
}
