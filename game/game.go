// Package game owns the simulation state: the ECS world, the agent registry,
// terrain, external threats, and the per-tick update loop.
package game

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
	"github.com/pthm-cable/terrarium/terrain"
)

// ThreatPoint is an external scare source projected into the world plane,
// typically a hand detected over the sandbox or the mouse cursor.
type ThreatPoint struct {
	X, Y float32
}

// params are the tunables read every tick. They start from config and some
// can be adjusted live through the UI.
type params struct {
	handFleeRadius float32
	sightOverride  float32 // 0 means per-species sight range
	fleeCalmTime   float32
	wanderRadius   float32
	herdRadius     float32
	arrivalRadius  float32
	respawnDelay   float32
	fadeRate       float32
	frameTime      float32
	speedScale     float32
	waterAvoid     float32
	smoothing      float32
}

// Options configures a new Game.
type Options struct {
	Config    *config.Config // nil uses embedded defaults
	Seed      int64
	Oracle    terrain.Oracle // nil generates a heightfield from config
	OutputDir string         // empty disables CSV output
	LogStats  bool
}

// Game holds the full simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	agentMapper *ecs.Map7[
		components.Meta,
		components.Position,
		components.Velocity,
		components.Target,
		components.Animation,
		components.Brain,
		components.Life,
	]
	agentFilter *ecs.Filter7[
		components.Meta,
		components.Position,
		components.Velocity,
		components.Target,
		components.Animation,
		components.Brain,
		components.Life,
	]

	metaMap   *ecs.Map1[components.Meta]
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	targetMap *ecs.Map1[components.Target]
	animMap   *ecs.Map1[components.Animation]
	brainMap  *ecs.Map1[components.Brain]
	lifeMap   *ecs.Map1[components.Life]

	// agents lists every entity in spawn order. Slots are permanent; death
	// and respawn reinitialize components in place, so the slice never
	// shrinks and snapshot ordering is stable.
	agents []ecs.Entity
	byID   map[uint32]ecs.Entity
	nextID uint32

	bounds  terrain.Bounds
	oracle  terrain.Oracle
	field   *terrain.Field // nil when an external oracle was injected
	sampler *systems.Sampler

	threats []ThreatPoint

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	p      params
	dt     float32
	tick   int32
	paused bool
}

// New creates a game, generates or adopts terrain, and spawns the initial
// population from the config table.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load("")
		if err != nil {
			return nil, fmt.Errorf("loading defaults: %w", err)
		}
	}

	bounds := terrain.Bounds{
		MinX: float32(cfg.Bounds.MinX), MaxX: float32(cfg.Bounds.MaxX),
		MinY: float32(cfg.Bounds.MinY), MaxY: float32(cfg.Bounds.MaxY),
		MinZ: float32(cfg.Bounds.MinZ), MaxZ: float32(cfg.Bounds.MaxZ),
	}

	world := ecs.NewWorld()
	g := &Game{
		world:  world,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		cfg:    cfg,
		bounds: bounds,
		byID:   make(map[uint32]ecs.Entity),
		dt:     cfg.Derived.DT32,
		agentMapper: ecs.NewMap7[
			components.Meta,
			components.Position,
			components.Velocity,
			components.Target,
			components.Animation,
			components.Brain,
			components.Life,
		](world),
		agentFilter: ecs.NewFilter7[
			components.Meta,
			components.Position,
			components.Velocity,
			components.Target,
			components.Animation,
			components.Brain,
			components.Life,
		](world),
		metaMap:   ecs.NewMap1[components.Meta](world),
		posMap:    ecs.NewMap1[components.Position](world),
		velMap:    ecs.NewMap1[components.Velocity](world),
		targetMap: ecs.NewMap1[components.Target](world),
		animMap:   ecs.NewMap1[components.Animation](world),
		brainMap:  ecs.NewMap1[components.Brain](world),
		lifeMap:   ecs.NewMap1[components.Life](world),
		logStats:  opts.LogStats,
	}

	g.p = params{
		handFleeRadius: float32(cfg.Behavior.HandFleeRadius),
		sightOverride:  float32(cfg.Behavior.PredatorSightRange),
		fleeCalmTime:   float32(cfg.Behavior.FleeCalmTime),
		wanderRadius:   float32(cfg.Behavior.WanderRadius),
		herdRadius:     float32(cfg.Behavior.HerdRadius),
		arrivalRadius:  float32(cfg.Behavior.ArrivalRadius),
		respawnDelay:   float32(cfg.Lifecycle.RespawnDelay),
		fadeRate:       float32(cfg.Lifecycle.FadeRate),
		frameTime:      cfg.Derived.FrameTime32,
		speedScale:     float32(cfg.Movement.SpeedScale),
		waterAvoid:     float32(cfg.Terrain.WaterAvoidanceDepth),
		smoothing:      float32(cfg.Movement.ElevationSmoothing),
	}

	if opts.Oracle != nil {
		g.oracle = opts.Oracle
	} else {
		field := terrain.NewField(bounds, cfg.Terrain.GridWidth, cfg.Terrain.GridHeight,
			float32(cfg.Terrain.LavaThreshold))
		field.Generate(terrain.GenOptions{
			Seed:       opts.Seed,
			Scale:      cfg.Terrain.NoiseScale,
			Octaves:    cfg.Terrain.NoiseOctaves,
			Lacunarity: cfg.Terrain.NoiseLacunarity,
			Gain:       cfg.Terrain.NoiseGain,
			WaterLevel: float32(cfg.Terrain.WaterLevel),
		})
		g.field = field
		g.oracle = field
	}

	g.sampler = &systems.Sampler{
		Bounds:          bounds,
		Oracle:          g.oracle,
		WaterAvoidDepth: g.p.waterAvoid,
		RNG:             g.rng,
	}

	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, g.dt)
	if opts.OutputDir != "" {
		out, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		g.output = out
		if err := cfg.WriteYAML(filepath.Join(opts.OutputDir, "config.yaml")); err != nil {
			return nil, err
		}
	}

	if err := g.spawnInitialPopulation(); err != nil {
		return nil, err
	}

	return g, nil
}

// Close flushes telemetry output.
func (g *Game) Close() error {
	if g.output != nil {
		return g.output.Close()
	}
	return nil
}

// Tick returns the number of completed simulation steps.
func (g *Game) Tick() int32 { return g.tick }

// DT returns the fixed step length in seconds.
func (g *Game) DT() float32 { return g.dt }

// Bounds returns the simulated planar volume.
func (g *Game) Bounds() terrain.Bounds { return g.bounds }

// Field returns the owned heightfield, or nil when an external oracle is in
// use.
func (g *Game) Field() *terrain.Field { return g.field }

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool { return g.paused }

// SetPaused suspends or resumes stepping.
func (g *Game) SetPaused(p bool) { g.paused = p }

// TogglePause flips the pause state.
func (g *Game) TogglePause() { g.paused = !g.paused }

// SetThreats replaces the external threat points for subsequent ticks.
func (g *Game) SetThreats(threats []ThreatPoint) {
	g.threats = g.threats[:0]
	g.threats = append(g.threats, threats...)
}

// RespawnDelay returns the current dead-to-respawn delay in seconds.
func (g *Game) RespawnDelay() float32 { return g.p.respawnDelay }

// SetRespawnDelay adjusts the dead-to-respawn delay. Agents already counting
// down keep their remaining time.
func (g *Game) SetRespawnDelay(sec float32) {
	if sec < 0 {
		sec = 0
	}
	g.p.respawnDelay = sec
}

// SpeedScale returns the global movement speed multiplier.
func (g *Game) SpeedScale() float32 { return g.p.speedScale }

// SetSpeedScale adjusts the global movement speed multiplier.
func (g *Game) SetSpeedScale(scale float32) {
	if scale < 0 {
		scale = 0
	}
	g.p.speedScale = scale
}
