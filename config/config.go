// Package config provides configuration loading and access for the tank.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tank configuration parameters.
type Config struct {
	Screen    ScreenConfig      `yaml:"screen"`
	Tank      TankConfig        `yaml:"tank"`
	Energy    EnergyConfig      `yaml:"energy"`
	Flock     FlockConfig       `yaml:"flock"`
	Swimming  SwimmingConfig    `yaml:"swimming"`
	Heading   HeadingConfig     `yaml:"heading"`
	Rest      RestConfig        `yaml:"rest"`
	Telemetry TelemetryConfig   `yaml:"telemetry"`
	Presets   map[string]Preset `yaml:"presets"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the overlay window.
type ScreenConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	TargetFPS   int  `yaml:"target_fps"`
	Transparent bool `yaml:"transparent"`
	Undecorated bool `yaml:"undecorated"`
	Topmost     bool `yaml:"topmost"`
}

// TankConfig holds roster and scheduling parameters.
type TankConfig struct {
	InitialCount    int     `yaml:"initial_count"`
	MinFish         int     `yaml:"min_fish"`
	MaxFish         int     `yaml:"max_fish"`
	TickIntervalMs  int     `yaml:"tick_interval_ms"`
	MaxCatchUpTicks int     `yaml:"max_catch_up_ticks"`
	ColorStaggerMs  int     `yaml:"color_stagger_ms"`
	FrameRate       float64 `yaml:"frame_rate"` // reference rate for per-frame pursuit speeds
}

// EnergyConfig holds energy economics.
type EnergyConfig struct {
	RegenPerTick      float64 `yaml:"regen_per_tick"`
	PathCompleteBonus float64 `yaml:"path_complete_bonus"`
	EscapeCost        float64 `yaml:"escape_cost"`
}

// FlockConfig holds schooling and avoidance parameters shared by all presets.
type FlockConfig struct {
	SchoolingChance      float64 `yaml:"schooling_chance"`
	MinNeighbors         int     `yaml:"min_neighbors"`
	PersonalityThreshold float64 `yaml:"personality_threshold"`
	Attraction           float64 `yaml:"attraction"`
	AvoidanceStrength    float64 `yaml:"avoidance_strength"`
}

// PatternConfig describes one swimming mode's shape family.
type PatternConfig struct {
	CurveIntensity  float64 `yaml:"curve_intensity"`
	TurnRadius      float64 `yaml:"turn_radius"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// SwimmingConfig holds procedural path parameters.
type SwimmingConfig struct {
	BaseSpeed   float64                  `yaml:"base_speed"`   // px/s
	MinDuration float64                  `yaml:"min_duration"` // seconds
	Patterns    map[string]PatternConfig `yaml:"patterns"`
}

// HeadingConfig holds heading smoothing parameters.
type HeadingConfig struct {
	DeadZone float64 `yaml:"dead_zone"` // per-axis px below which direction is ignored
	MinDelta float64 `yaml:"min_delta"` // degrees
	MaxTurn  float64 `yaml:"max_turn"`  // degrees per update
}

// RestConfig holds the pause between consecutive paths.
type RestConfig struct {
	MinMs int `yaml:"min_ms"`
	MaxMs int `yaml:"max_ms"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
}

// Preset is one named behavior constant set. The two source variants disagree
// on several constants, so both are kept side by side.
type Preset struct {
	MinSpeed             float64 `yaml:"min_speed"`
	MaxSpeed             float64 `yaml:"max_speed"`
	DirectionChangeMinMs int     `yaml:"direction_change_min_ms"`
	DirectionChangeMaxMs int     `yaml:"direction_change_max_ms"`
	BoundaryMargin       float64 `yaml:"boundary_margin"`
	ClickEscapeSpeed     float64 `yaml:"click_escape_speed"`
	ClickEscapeMs        int     `yaml:"click_escape_ms"`
	SchoolingDistance    float64 `yaml:"schooling_distance"`
	AvoidanceDistance    float64 `yaml:"avoidance_distance"`
	ScareFactor          float64 `yaml:"scare_factor"`
	EscapeMinDistance    float64 `yaml:"escape_min_distance"`
	EscapeMaxDistance    float64 `yaml:"escape_max_distance"`
	StartleMaxDelayMs    int     `yaml:"startle_max_delay_ms"`
	ColorChangeChance    float64 `yaml:"color_change_chance"`
	Palette              string  `yaml:"palette"`
}

// DirectionChangeMin returns the lower bound of the retarget interval.
func (p Preset) DirectionChangeMin() time.Duration {
	return time.Duration(p.DirectionChangeMinMs) * time.Millisecond
}

// DirectionChangeMax returns the upper bound of the retarget interval.
func (p Preset) DirectionChangeMax() time.Duration {
	return time.Duration(p.DirectionChangeMaxMs) * time.Millisecond
}

// ClickEscapeDuration returns how long a fish stays escaping.
func (p Preset) ClickEscapeDuration() time.Duration {
	return time.Duration(p.ClickEscapeMs) * time.Millisecond
}

// StartleMaxDelay returns the upper bound of a neighbour's startle delay.
func (p Preset) StartleMaxDelay() time.Duration {
	return time.Duration(p.StartleMaxDelayMs) * time.Millisecond
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickInterval time.Duration
	RestMin      time.Duration
	RestMax      time.Duration
	ColorStagger time.Duration
	PresetNames  []string // sorted
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Merge overlays YAML data onto cfg. Only fields present in data are
// overwritten; preset and pattern maps merge per key.
func Merge(cfg *Config, data []byte) error {
	// yaml.v3 replaces map values wholesale, so presets are decoded
	// separately on top of copies of the existing entries.
	var overlay struct {
		Presets  map[string]yaml.Node `yaml:"presets"`
		Swimming struct {
			Patterns map[string]yaml.Node `yaml:"patterns"`
		} `yaml:"swimming"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	presets := make(map[string]Preset, len(cfg.Presets))
	for name, p := range cfg.Presets {
		presets[name] = p
	}
	patterns := make(map[string]PatternConfig, len(cfg.Swimming.Patterns))
	for name, p := range cfg.Swimming.Patterns {
		patterns[name] = p
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if len(overlay.Presets) > 0 {
		merged := make(map[string]Preset, len(presets)+len(overlay.Presets))
		for name, p := range presets {
			merged[name] = p
		}
		for name, node := range overlay.Presets {
			p := merged[name]
			if err := node.Decode(&p); err != nil {
				return fmt.Errorf("parsing preset %q: %w", name, err)
			}
			merged[name] = p
		}
		cfg.Presets = merged
	}

	if len(overlay.Swimming.Patterns) > 0 {
		merged := make(map[string]PatternConfig, len(patterns)+len(overlay.Swimming.Patterns))
		for name, p := range patterns {
			merged[name] = p
		}
		for name, node := range overlay.Swimming.Patterns {
			p := merged[name]
			if err := node.Decode(&p); err != nil {
				return fmt.Errorf("parsing pattern %q: %w", name, err)
			}
			merged[name] = p
		}
		cfg.Swimming.Patterns = merged
	}

	return nil
}

// ErrUnknownPreset is returned when a preset name is not configured.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset returns the named preset.
func (c *Config) Preset(name string) (Preset, error) {
	p, ok := c.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Validate checks ranges that the core relies on.
func (c *Config) Validate() error {
	t := c.Tank
	if t.MinFish < 0 || t.MaxFish < t.MinFish {
		return fmt.Errorf("tank: min_fish %d / max_fish %d out of order", t.MinFish, t.MaxFish)
	}
	if t.InitialCount < t.MinFish || t.InitialCount > t.MaxFish {
		return fmt.Errorf("tank: initial_count %d outside [%d, %d]", t.InitialCount, t.MinFish, t.MaxFish)
	}
	if t.TickIntervalMs <= 0 {
		return fmt.Errorf("tank: tick_interval_ms must be positive")
	}
	if c.Swimming.BaseSpeed <= 0 {
		return fmt.Errorf("swimming: base_speed must be positive")
	}
	if c.Rest.MaxMs < c.Rest.MinMs {
		return fmt.Errorf("rest: max_ms %d below min_ms %d", c.Rest.MaxMs, c.Rest.MinMs)
	}
	if len(c.Presets) == 0 {
		return fmt.Errorf("presets: at least one preset is required")
	}
	for name, p := range c.Presets {
		if p.MaxSpeed < p.MinSpeed {
			return fmt.Errorf("preset %q: max_speed below min_speed", name)
		}
		if p.EscapeMaxDistance < p.EscapeMinDistance {
			return fmt.Errorf("preset %q: escape distance range inverted", name)
		}
		if p.SchoolingDistance <= 0 || p.AvoidanceDistance <= 0 {
			return fmt.Errorf("preset %q: schooling and avoidance distances must be positive", name)
		}
		if p.DirectionChangeMaxMs < p.DirectionChangeMinMs {
			return fmt.Errorf("preset %q: direction change range inverted", name)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickInterval = time.Duration(c.Tank.TickIntervalMs) * time.Millisecond
	c.Derived.RestMin = time.Duration(c.Rest.MinMs) * time.Millisecond
	c.Derived.RestMax = time.Duration(c.Rest.MaxMs) * time.Millisecond
	c.Derived.ColorStagger = time.Duration(c.Tank.ColorStaggerMs) * time.Millisecond
	if c.Tank.MaxCatchUpTicks <= 0 {
		c.Tank.MaxCatchUpTicks = 1
	}
	if c.Tank.FrameRate <= 0 {
		c.Tank.FrameRate = 60
	}

	c.Derived.PresetNames = c.Derived.PresetNames[:0]
	for name := range c.Presets {
		c.Derived.PresetNames = append(c.Derived.PresetNames, name)
	}
	sort.Strings(c.Derived.PresetNames)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
