package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
)

func TestScareProbabilityMonotonic(t *testing.T) {
	const radius = 160.0
	for _, factor := range []float64{0.7, 0.8} {
		prev := ScareProbability(0, radius, factor)
		if prev != factor {
			t.Errorf("p(0) = %v, want %v", prev, factor)
		}
		for d := 1.0; d < radius; d++ {
			p := ScareProbability(d, radius, factor)
			if p >= prev {
				t.Fatalf("factor %v: p(%v)=%v not below p(%v)=%v", factor, d, p, d-1, prev)
			}
			prev = p
		}
		for _, d := range []float64{radius, radius + 1, 1000} {
			if p := ScareProbability(d, radius, factor); p != 0 {
				t.Errorf("p(%v) = %v, want 0", d, p)
			}
		}
	}
}

func TestSchoolingTarget(t *testing.T) {
	cfg := config.Cfg().Flock
	members := []Member{
		{ID: "a", Pos: components.Position{X: 0, Y: 0}, Target: components.Position{X: 300, Y: 0}, Personality: 0.9},
		{ID: "b", Pos: components.Position{X: 30, Y: 0}},
		{ID: "c", Pos: components.Position{X: 0, Y: 30}},
		{ID: "far", Pos: components.Position{X: 900, Y: 900}},
	}
	field := NewFlockField(members)

	got, ok := field.SchoolingTarget(0, 150, cfg)
	if !ok {
		t.Fatal("expected schooling with two neighbours")
	}
	// Centroid of a, b, c is (10, 10); move 30% of the way from (300, 0).
	want := components.Position{X: 300 + (10-300)*0.3, Y: 10 * 0.3}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("target = %+v, want %+v", got, want)
	}

	members[0].Personality = 0.2
	if _, ok := NewFlockField(members).SchoolingTarget(0, 150, cfg); ok {
		t.Error("shy fish should not school")
	}

	members[0].Personality = 0.9
	if _, ok := NewFlockField(members[:2]).SchoolingTarget(0, 150, cfg); ok {
		t.Error("one neighbour is not a school")
	}
}

func TestAvoidanceOffset(t *testing.T) {
	members := []Member{
		{ID: "a", Pos: components.Position{X: 100, Y: 100}},
		{ID: "b", Pos: components.Position{X: 125, Y: 100}},
		{ID: "c", Pos: components.Position{X: 100, Y: 75}},
		{ID: "same", Pos: components.Position{X: 100, Y: 100}},
	}
	field := NewFlockField(members)

	got := field.AvoidanceOffset(0, 50, 30)
	// Each neighbour at 25px pushes (50-25)/50*30 = 15 away; the coincident one is skipped.
	want := components.Position{X: -15, Y: 15}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("offset = %+v, want %+v", got, want)
	}

	if off := field.AvoidanceOffset(0, 10, 30); off != (components.Position{}) {
		t.Errorf("nobody in range, got %+v", off)
	}
}

func TestNeighborsExcludeSelf(t *testing.T) {
	members := []Member{
		{ID: "a", Pos: components.Position{X: 0, Y: 0}},
		{ID: "b", Pos: components.Position{X: 10, Y: 0}},
		{ID: "c", Pos: components.Position{X: 20, Y: 0}},
	}
	field := NewFlockField(members)
	n := field.Neighbors(0, 20)
	if len(n) != 1 || n[0].Index != 1 {
		t.Errorf("neighbours = %+v, want only b (radius is exclusive)", n)
	}
	if i, ok := field.Index("c"); !ok || i != 2 {
		t.Errorf("Index(c) = %d, %v", i, ok)
	}
}

func TestEscapeTrajectory(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	b := testBounds()
	from := components.Position{X: 640, Y: 400}

	for i := 0; i < 200; i++ {
		esc := EscapeTrajectory(rng, from, b, 250, 600)
		if esc.Distance < 250 || esc.Distance >= 600 {
			t.Fatalf("distance %v outside [250, 600)", esc.Distance)
		}
		if esc.Duration < 0.3 || esc.Duration > 1.3 {
			t.Fatalf("duration %v outside [0.3, 1.3]", esc.Duration)
		}
		if math.Abs(esc.Dir.Len()-1) > 1e-9 {
			t.Fatalf("direction not unit: %+v", esc.Dir)
		}
		if len(esc.Points) != 3 || esc.Points[0] != from {
			t.Fatalf("points = %+v", esc.Points)
		}
		for _, p := range esc.Points {
			if !b.Contains(p) {
				t.Fatalf("escape point %+v out of bounds", p)
			}
		}
	}
}
