// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Prey         SpeciesConfig      `yaml:"prey"`
	Predator     SpeciesConfig      `yaml:"predator"`
	Plants       PlantsConfig       `yaml:"plants"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Launch       LaunchConfig       `yaml:"launch"`
	Visual       VisualConfig       `yaml:"visual"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Bookmarks    BookmarksConfig    `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation arena dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`  // Arena width (0 = use screen width)
	Height int `yaml:"height"` // Arena height (0 = use screen height)
}

// PhysicsConfig holds the fixed timestep used by headless runs.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// SpeciesConfig holds the behaviour and energy coefficients of one animal species.
type SpeciesConfig struct {
	Speed                 float64 `yaml:"speed"`                  // px/s
	Margin                float64 `yaml:"margin"`                 // bounce margin from each edge
	ThreatRadius          float64 `yaml:"threat_radius"`          // 0 = never flees
	DetectRadius          float64 `yaml:"detect_radius"`          // food (prey) or quarry (predator)
	ReachRadius           float64 `yaml:"reach_radius"`           // feed/attack distance, inclusive
	EnergyGain            float64 `yaml:"energy_gain"`            // per meal
	KillDamage            float64 `yaml:"kill_damage"`            // energy removed from the victim
	ReproductionThreshold float64 `yaml:"reproduction_threshold"` // energy must exceed this
	ReproductionCooldown  float64 `yaml:"reproduction_cooldown"`  // seconds since last birth
	WanderChance          int     `yaml:"wander_chance"`          // percent per tick
	BaseDrain             float64 `yaml:"base_drain"`             // energy per second
	MoveDrain             float64 `yaml:"move_drain"`             // energy per (px/s) per second
}

// PlantsConfig holds plant placement and regrowth parameters.
type PlantsConfig struct {
	Max            int     `yaml:"max"`
	RegrowInterval float64 `yaml:"regrow_interval"`
	SpawnMargin    float64 `yaml:"spawn_margin"`
	RegrowMargin   float64 `yaml:"regrow_margin"`
}

// ReproductionConfig holds the birth trial shared by both species.
// A trial succeeds when rand(Range) > RollAbove.
type ReproductionConfig struct {
	Range     int `yaml:"range"`
	RollAbove int `yaml:"roll_above"`
}

// LaunchConfig is what the setup menu and control panel hand to the simulation.
type LaunchConfig struct {
	Prey        int           `yaml:"prey"`
	Predators   int           `yaml:"predators"`
	Plants      int           `yaml:"plants"`
	RegrowDelay float64       `yaml:"regrow_delay"`
	Type        EcosystemType `yaml:"type"`
}

// VisualConfig holds cosmetic viewer parameters.
type VisualConfig struct {
	DayNightPeriod float64 `yaml:"day_night_period"` // seconds per day or night
	PreySize       float32 `yaml:"prey_size"`
	PredatorSize   float32 `yaml:"predator_size"`
	PlantSize      float32 `yaml:"plant_size"`
	HistoryLength  int     `yaml:"history_length"` // samples kept by the population graph
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PreyCrash       PreyCrashConfig       `yaml:"prey_crash"`
	PredatorSurge   PredatorSurgeConfig   `yaml:"predator_surge"`
	StableEcosystem StableEcosystemConfig `yaml:"stable_ecosystem"`
}

// PreyCrashConfig holds prey crash detection parameters.
type PreyCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// PredatorSurgeConfig holds predator surge detection parameters.
type PredatorSurgeConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	MinFinal   int     `yaml:"min_final"`
}

// StableEcosystemConfig holds stable ecosystem detection parameters.
type StableEcosystemConfig struct {
	MinPrey       int     `yaml:"min_prey"`
	MinPred       int     `yaml:"min_pred"`
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	WorldW32  float32 // Effective arena width as float32
	WorldH32  float32 // Effective arena height as float32
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
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Derived.WorldW32 <= 0 || c.Derived.WorldH32 <= 0 {
		return fmt.Errorf("%w: world dimensions %vx%v", ErrInvalid, c.Derived.WorldW32, c.Derived.WorldH32)
	}
	if c.Physics.DT < 0 {
		return fmt.Errorf("%w: physics.dt %v is negative", ErrInvalid, c.Physics.DT)
	}
	if err := c.Prey.validate(); err != nil {
		return fmt.Errorf("%w: prey: %v", ErrInvalid, err)
	}
	if err := c.Predator.validate(); err != nil {
		return fmt.Errorf("%w: predator: %v", ErrInvalid, err)
	}
	if c.Plants.Max < 0 {
		return fmt.Errorf("%w: plants.max %d is negative", ErrInvalid, c.Plants.Max)
	}
	if c.Plants.RegrowInterval < 0 {
		return fmt.Errorf("%w: plants.regrow_interval %v is negative", ErrInvalid, c.Plants.RegrowInterval)
	}
	if c.Plants.SpawnMargin < 0 || c.Plants.RegrowMargin < 0 {
		return fmt.Errorf("%w: plant margins must be non-negative", ErrInvalid)
	}
	if c.Reproduction.Range <= 0 {
		return fmt.Errorf("%w: reproduction.range must be positive", ErrInvalid)
	}
	if err := c.Launch.Validate(); err != nil {
		return fmt.Errorf("%w: launch: %v", ErrInvalid, err)
	}
	return nil
}

func (s SpeciesConfig) validate() error {
	switch {
	case s.Speed < 0:
		return fmt.Errorf("speed %v is negative", s.Speed)
	case s.Margin < 0:
		return fmt.Errorf("margin %v is negative", s.Margin)
	case s.ThreatRadius < 0, s.DetectRadius < 0, s.ReachRadius < 0:
		return errors.New("radii must be non-negative")
	case s.WanderChance < 0 || s.WanderChance > 100:
		return fmt.Errorf("wander_chance %d outside [0, 100]", s.WanderChance)
	case s.BaseDrain < 0 || s.MoveDrain < 0:
		return errors.New("drains must be non-negative")
	}
	return nil
}

// Validate checks the counts and delay handed over by the launch panels.
func (l LaunchConfig) Validate() error {
	if l.Prey < 0 || l.Predators < 0 || l.Plants < 0 {
		return fmt.Errorf("negative population (prey=%d predators=%d plants=%d)", l.Prey, l.Predators, l.Plants)
	}
	if l.RegrowDelay < 0 {
		return fmt.Errorf("regrow_delay %v is negative", l.RegrowDelay)
	}
	if _, err := ParseEcosystemType(string(l.Type)); err != nil {
		return err
	}
	return nil
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
