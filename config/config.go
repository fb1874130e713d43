// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Clock      ClockConfig      `yaml:"clock"`
	Population PopulationConfig `yaml:"population"`
	Creature   CreatureConfig   `yaml:"creature"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Steering   SteeringConfig   `yaml:"steering"`
	Bush       BushConfig       `yaml:"bush"`
	Lake       LakeConfig       `yaml:"lake"`
	Placement  PlacementConfig  `yaml:"placement"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the world bounds. Positions are clamped to [0,W]x[0,H].
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // 0 = use screen width
	Height float64 `yaml:"height"` // 0 = use screen height
}

// ClockConfig holds the two time domains: simulated ticks and wall-clock pauses.
type ClockConfig struct {
	TicksPerSecond int     `yaml:"ticks_per_second"` // simulated ticks per simulated second
	StepsPerUpdate int     `yaml:"steps_per_update"` // ticks advanced per host update call
	PauseSeconds   float64 `yaml:"pause_seconds"`    // real-time consumption pause
}

// PopulationConfig holds spawn counts and caps.
type PopulationConfig struct {
	InitialCreatures int      `yaml:"initial_creatures"`
	MaxCreatures     int      `yaml:"max_creatures"`
	InitialBushes    int      `yaml:"initial_bushes"`
	MaxBushes        int      `yaml:"max_bushes"`
	Names            []string `yaml:"names"`
}

// CreatureConfig holds default vitals and traits for new creatures.
type CreatureConfig struct {
	Energy   int      `yaml:"energy"`
	Thirst   int      `yaml:"thirst"`
	Hunger   int      `yaml:"hunger"`
	Speed    float64  `yaml:"speed"`
	Size     float64  `yaml:"size"`
	Strength float64  `yaml:"strength"`
	Diets    []string `yaml:"diets"`
}

// BehaviorConfig holds decision thresholds and consumption effects.
type BehaviorConfig struct {
	ThirstThreshold int     `yaml:"thirst_threshold"` // seek water below this
	HungerThreshold int     `yaml:"hunger_threshold"` // seek food below this
	DrinkRestore    int     `yaml:"drink_restore"`
	EatRestore      int     `yaml:"eat_restore"`
	VitalsMax       int     `yaml:"vitals_max"`
	MoveAwayLengths float64 `yaml:"move_away_lengths"` // body lengths to retreat after consuming
	DrainPeriod     int     `yaml:"drain_period"`      // ticks between vitals drains
	DrainAmount     int     `yaml:"drain_amount"`
}

// SteeringConfig holds movement tuning.
type SteeringConfig struct {
	AccelScale          float64 `yaml:"accel_scale"` // random accel = max(MinAccel, speed*AccelScale)
	MinAccel            float64 `yaml:"min_accel"`
	Damping             float64 `yaml:"damping"`
	SeparationRadius    float64 `yaml:"separation_radius"`
	SeparationStrength  float64 `yaml:"separation_strength"`
	DefaultTargetRadius float64 `yaml:"default_target_radius"`
	GridCellSize        float64 `yaml:"grid_cell_size"`
}

// BushConfig holds berry bush parameters.
type BushConfig struct {
	Berries      int     `yaml:"berries"`
	MaxBerries   int     `yaml:"max_berries"`
	RegrowRate   float64 `yaml:"regrow_rate"`
	RegrowPeriod int     `yaml:"regrow_period"` // ticks between regrow passes, 0 = never scheduled
	Radius       float64 `yaml:"radius"`
}

// LakeConfig describes the lake polygon. Every vertex is a water point.
type LakeConfig struct {
	CenterX float64     `yaml:"center_x"`
	CenterY float64     `yaml:"center_y"`
	Points  [][]float64 `yaml:"points"` // [dx, dy] offsets from the center
	Radius  float64     `yaml:"radius"`
}

// PlacementConfig holds noise parameters for initial bush placement.
type PlacementConfig struct {
	NoiseScale float64 `yaml:"noise_scale"` // world units per noise unit
	Threshold  float64 `yaml:"threshold"`   // minimum normalized density to accept a site
	MaxTries   int     `yaml:"max_tries"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // simulated seconds per stats row
	StatsDB     string  `yaml:"stats_db"`     // sqlite file name inside the output dir, empty = disabled
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW       float64       // Effective world width
	WorldH       float64       // Effective world height
	Pause        time.Duration // Clock.PauseSeconds as a duration
	TicksPerStat int           // ticks between stats rows
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Clock.TicksPerSecond <= 0 {
		return fmt.Errorf("clock.ticks_per_second must be positive, got %d", c.Clock.TicksPerSecond)
	}
	if c.Behavior.DrainPeriod <= 0 {
		return fmt.Errorf("behavior.drain_period must be positive, got %d", c.Behavior.DrainPeriod)
	}
	if c.Steering.GridCellSize <= 0 {
		return fmt.Errorf("steering.grid_cell_size must be positive, got %v", c.Steering.GridCellSize)
	}
	if c.Bush.MaxBerries < 0 || c.Bush.Berries > c.Bush.MaxBerries {
		return fmt.Errorf("bush.berries (%d) must be within [0, max_berries=%d]", c.Bush.Berries, c.Bush.MaxBerries)
	}
	if len(c.Population.Names) == 0 {
		return fmt.Errorf("population.names must not be empty")
	}
	for i, p := range c.Lake.Points {
		if len(p) != 2 {
			return fmt.Errorf("lake.points[%d] must have two coordinates, got %d", i, len(p))
		}
	}
	return nil
}

// Recompute refreshes derived values after fields were changed in code,
// e.g. by command-line overrides.
func (c *Config) Recompute() {
	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	c.Derived.WorldW = c.World.Width
	if c.Derived.WorldW == 0 {
		c.Derived.WorldW = float64(c.Screen.Width)
	}
	c.Derived.WorldH = c.World.Height
	if c.Derived.WorldH == 0 {
		c.Derived.WorldH = float64(c.Screen.Height)
	}

	c.Derived.Pause = time.Duration(c.Clock.PauseSeconds * float64(time.Second))

	c.Derived.TicksPerStat = int(c.Telemetry.StatsWindow * float64(c.Clock.TicksPerSecond))
	if c.Derived.TicksPerStat < 1 {
		c.Derived.TicksPerStat = 1
	}
	if c.Clock.StepsPerUpdate < 1 {
		c.Clock.StepsPerUpdate = 1
	}
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
