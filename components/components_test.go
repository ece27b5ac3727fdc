package components

import (
	"math/rand"
	"strings"
	"testing"
)

func TestNewFishIDUnique(t *testing.T) {
	seen := make(map[FishID]bool)
	for i := 0; i < 100; i++ {
		id := NewFishID()
		if !strings.HasPrefix(string(id), "fish_") {
			t.Fatalf("id %q missing prefix", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if got := FishID("fish_abcdef123456").Short(); got != "123456" {
		t.Errorf("Short() = %q, want %q", got, "123456")
	}
	if got := FishID("abc").Short(); got != "abc" {
		t.Errorf("Short() = %q, want %q", got, "abc")
	}
}

func TestFishIdle(t *testing.T) {
	tests := []struct {
		name string
		fish Fish
		want bool
	}{
		{"idle", Fish{State: StateIdle}, true},
		{"escaping", Fish{State: StateIdle, Escaping: true}, false},
		{"moving", Fish{State: StateIdle, Moving: true}, false},
		{"resting", Fish{State: StateResting}, false},
		{"playing", Fish{State: StatePathPlaying}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fish.Idle(); got != tt.want {
				t.Errorf("Idle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddEnergyClamps(t *testing.T) {
	f := Fish{Energy: 0.9}
	f.AddEnergy(0.5)
	if f.Energy != 1 {
		t.Errorf("energy = %v, want 1", f.Energy)
	}
	f.AddEnergy(-1.5)
	if f.Energy != 0 {
		t.Errorf("energy = %v, want 0", f.Energy)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range append(SwimModes, ModeNone, ModeEscape) {
		got, ok := ParseMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseMode("hovering"); ok {
		t.Error("ParseMode accepted unknown name")
	}
	if got := Mode(200).String(); got != "unknown" {
		t.Errorf("Mode(200).String() = %q", got)
	}
}

func TestRandomScheme(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	names := func(palette string) map[string]bool {
		out := make(map[string]bool)
		for _, s := range Palettes[palette] {
			out[s.Name] = true
		}
		return out
	}

	classic := names("classic")
	for i := 0; i < 50; i++ {
		if s := RandomScheme(rng, "classic"); !classic[s.Name] {
			t.Fatalf("scheme %q not in classic palette", s.Name)
		}
	}

	reef := names("reef")
	if s := RandomScheme(rng, "missing"); !reef[s.Name] {
		t.Errorf("unknown palette gave %q, want a reef scheme", s.Name)
	}
}

func TestPositionMath(t *testing.T) {
	a := Position{X: 3, Y: 4}
	if a.Len() != 5 {
		t.Errorf("Len() = %v, want 5", a.Len())
	}
	if d := a.Dist(Position{}); d != 5 {
		t.Errorf("Dist() = %v, want 5", d)
	}
	if got := a.Lerp(Position{X: 13, Y: 4}, 0.5); got != (Position{X: 8, Y: 4}) {
		t.Errorf("Lerp() = %v", got)
	}
	if got := a.Add(a).Sub(a).Scale(2); got != (Position{X: 6, Y: 8}) {
		t.Errorf("Add/Sub/Scale = %v", got)
	}
}
