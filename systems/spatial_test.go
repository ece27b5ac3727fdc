package systems

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/flowfish/components"
)

func TestSpatialGridCandidates(t *testing.T) {
	g := NewSpatialGrid(500, 500, 50)
	pts := []components.Position{
		{X: 10, Y: 10},
		{X: 60, Y: 10},
		{X: 400, Y: 400},
		{X: 499, Y: 499},
	}
	for i, p := range pts {
		g.Insert(i, p)
	}

	got := g.CandidatesInto(nil, pts[0], 40, 0)
	slices.Sort(got)
	if !slices.Equal(got, []int{1}) {
		t.Errorf("candidates near origin = %v, want [1]", got)
	}

	got = g.CandidatesInto(nil, pts[3], 200, 3)
	if !slices.Contains(got, 2) {
		t.Errorf("candidates near corner = %v, want to include 2", got)
	}

	g.Clear()
	if got := g.CandidatesInto(nil, pts[0], 1000, -1); len(got) != 0 {
		t.Errorf("candidates after Clear = %v", got)
	}
}

func TestFlockNeighborsMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	members := make([]Member, 20)
	for i := range members {
		members[i] = Member{
			ID:  components.FishID(string(rune('a' + i))),
			Pos: components.Position{X: rng.Float64() * 1280, Y: rng.Float64() * 800},
		}
	}
	field := NewFlockField(members)

	for _, radius := range []float64{50, 160, 400} {
		for i := range members {
			var want []int
			for j := range members {
				if j != i && members[i].Pos.Dist(members[j].Pos) < radius {
					want = append(want, j)
				}
			}
			var got []int
			for _, n := range field.Neighbors(i, radius) {
				got = append(got, n.Index)
			}
			if !slices.Equal(got, want) {
				t.Errorf("Neighbors(%d, %v) = %v, want %v", i, radius, got, want)
			}
		}
	}
}
