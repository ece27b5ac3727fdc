package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tank.MaxFish != 20 || cfg.Tank.MinFish != 1 {
		t.Errorf("roster bounds = [%d, %d], want [1, 20]", cfg.Tank.MinFish, cfg.Tank.MaxFish)
	}
	if cfg.Derived.TickInterval != 100*time.Millisecond {
		t.Errorf("tick interval = %v, want 100ms", cfg.Derived.TickInterval)
	}
	if cfg.Swimming.MinDuration != 3 {
		t.Errorf("min duration = %v, want 3", cfg.Swimming.MinDuration)
	}
	if len(cfg.Swimming.Patterns) != 4 {
		t.Errorf("expected 4 swimming patterns, got %d", len(cfg.Swimming.Patterns))
	}
	want := []string{"classic", "svg"}
	if len(cfg.Derived.PresetNames) != len(want) {
		t.Fatalf("preset names = %v, want %v", cfg.Derived.PresetNames, want)
	}
	for i, name := range want {
		if cfg.Derived.PresetNames[i] != name {
			t.Errorf("preset names = %v, want %v", cfg.Derived.PresetNames, want)
		}
	}
}

func TestPresetsKeepBothVariants(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	classic, err := cfg.Preset("classic")
	if err != nil {
		t.Fatal(err)
	}
	svg, err := cfg.Preset("svg")
	if err != nil {
		t.Fatal(err)
	}

	if classic.ScareFactor != 0.7 || svg.ScareFactor != 0.8 {
		t.Errorf("scare factors = %v/%v, want 0.7/0.8", classic.ScareFactor, svg.ScareFactor)
	}
	if classic.EscapeMinDistance != 200 || classic.EscapeMaxDistance != 500 {
		t.Errorf("classic escape range = [%v, %v]", classic.EscapeMinDistance, classic.EscapeMaxDistance)
	}
	if svg.EscapeMinDistance != 250 || svg.EscapeMaxDistance != 600 {
		t.Errorf("svg escape range = [%v, %v]", svg.EscapeMinDistance, svg.EscapeMaxDistance)
	}
	if svg.ClickEscapeDuration() != 3500*time.Millisecond {
		t.Errorf("svg escape duration = %v", svg.ClickEscapeDuration())
	}

	if _, err := cfg.Preset("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tank.yaml")
	data := []byte(`
tank:
  initial_count: 6
presets:
  svg:
    scare_factor: 0.5
  calm:
    min_speed: 0.1
    max_speed: 0.2
    schooling_distance: 100
    avoidance_distance: 20
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tank.InitialCount != 6 {
		t.Errorf("initial count = %d, want 6", cfg.Tank.InitialCount)
	}
	if cfg.Tank.MaxFish != 20 {
		t.Errorf("max fish lost in merge: %d", cfg.Tank.MaxFish)
	}

	svg := cfg.Presets["svg"]
	if svg.ScareFactor != 0.5 {
		t.Errorf("svg scare factor = %v, want 0.5", svg.ScareFactor)
	}
	if svg.EscapeMaxDistance != 600 {
		t.Errorf("partial preset override dropped escape_max_distance: %v", svg.EscapeMaxDistance)
	}
	if _, ok := cfg.Presets["classic"]; !ok {
		t.Error("classic preset dropped by merge")
	}
	if _, ok := cfg.Presets["calm"]; !ok {
		t.Error("new preset not added")
	}
}

func TestValidateRejectsBadRoster(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Tank.InitialCount = 25
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for initial count above max")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if back.Presets["classic"].BoundaryMargin != 80 {
		t.Errorf("classic margin = %v after round trip", back.Presets["classic"].BoundaryMargin)
	}
}
