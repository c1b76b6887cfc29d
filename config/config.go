// Package config provides configuration loading and access for the
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig       `yaml:"screen"`
	Physics    PhysicsConfig      `yaml:"physics"`
	Bounds     BoundsConfig       `yaml:"bounds"`
	Terrain    TerrainConfig      `yaml:"terrain"`
	Behavior   BehaviorConfig     `yaml:"behavior"`
	Lifecycle  LifecycleConfig    `yaml:"lifecycle"`
	Animation  AnimationConfig    `yaml:"animation"`
	Movement   MovementConfig     `yaml:"movement"`
	Population []PopulationEntry  `yaml:"population"`
	Telemetry  TelemetryConfig    `yaml:"telemetry"`
	Server     ServerConfig       `yaml:"server"`
	Sprites    SpritesConfig      `yaml:"sprites"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// BoundsConfig holds the simulated volume in world units.
type BoundsConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
	MinZ float64 `yaml:"min_z"`
	MaxZ float64 `yaml:"max_z"`
}

// TerrainConfig holds heightfield cache and classification parameters.
type TerrainConfig struct {
	GridWidth           int     `yaml:"grid_width"`
	GridHeight          int     `yaml:"grid_height"`
	LavaThreshold       float64 `yaml:"lava_threshold"`        // elevation below which terrain is lava
	WaterAvoidanceDepth float64 `yaml:"water_avoidance_depth"` // water deeper than this is avoided
	WaterLevel          float64 `yaml:"water_level"`           // basin fill level for generated terrain
	NoiseScale          float64 `yaml:"noise_scale"`
	NoiseOctaves        int     `yaml:"noise_octaves"`
	NoiseLacunarity     float64 `yaml:"noise_lacunarity"`
	NoiseGain           float64 `yaml:"noise_gain"`
}

// BehaviorConfig holds AI tuning parameters shared by all agents.
type BehaviorConfig struct {
	HandFleeRadius     float64 `yaml:"hand_flee_radius"`
	PredatorSightRange float64 `yaml:"predator_sight_range"` // 0 = per-species
	FleeCalmTime       float64 `yaml:"flee_calm_time"`
	WanderRadius       float64 `yaml:"wander_radius"`
	HerdRadius         float64 `yaml:"herd_radius"`
	ArrivalRadius      float64 `yaml:"arrival_radius"`
}

// LifecycleConfig holds death and respawn timing.
type LifecycleConfig struct {
	RespawnDelay float64 `yaml:"respawn_delay"`
	FadeRate     float64 `yaml:"fade_rate"`
}

// AnimationConfig holds sprite animation timing.
type AnimationConfig struct {
	FrameRate float64 `yaml:"frame_rate"`
}

// MovementConfig holds movement integration parameters.
type MovementConfig struct {
	SpeedScale         float64 `yaml:"speed_scale"`
	ElevationSmoothing float64 `yaml:"elevation_smoothing"`
}

// PopulationEntry is one species count in the initial spawn table.
type PopulationEntry struct {
	Species string `yaml:"species"`
	Count   int    `yaml:"count"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// ServerConfig holds snapshot streaming parameters.
type ServerConfig struct {
	BroadcastEvery int `yaml:"broadcast_every"`
}

// SpritesConfig holds sprite asset locations.
type SpritesConfig struct {
	Dir string `yaml:"dir"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32 // Physics.DT as float32
	FrameTime32 float32 // seconds per animation frame
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
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
		// Unmarshal into the same struct: only fields present in the
		// file overwrite defaults.
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

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.Bounds.MaxX <= c.Bounds.MinX || c.Bounds.MaxY <= c.Bounds.MinY {
		return fmt.Errorf("config: degenerate planar bounds [%f,%f]x[%f,%f]",
			c.Bounds.MinX, c.Bounds.MaxX, c.Bounds.MinY, c.Bounds.MaxY)
	}
	if c.Bounds.MaxZ <= c.Bounds.MinZ {
		return fmt.Errorf("config: degenerate elevation range [%f,%f]", c.Bounds.MinZ, c.Bounds.MaxZ)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("config: physics.dt must be positive, got %f", c.Physics.DT)
	}
	if c.Animation.FrameRate <= 0 {
		return fmt.Errorf("config: animation.frame_rate must be positive, got %f", c.Animation.FrameRate)
	}
	for _, p := range c.Population {
		if p.Count < 0 {
			return fmt.Errorf("config: negative population count for %q", p.Species)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.FrameTime32 = float32(1.0 / c.Animation.FrameRate)
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
