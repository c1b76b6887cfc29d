// Package telemetry aggregates simulation events into fixed time windows
// and writes them to CSV for offline analysis.
package telemetry

import (
	"gonum.org/v1/gonum/stat"
)

// PopulationSample is a point-in-time census taken at window close.
type PopulationSample struct {
	Herbivores int       // alive herbivores
	Predators  int       // alive predators
	Alive      int
	Total      int       // registry size, including dead slots
	Speeds     []float64 // planar speeds of alive agents
}

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowEndTick int32   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Census at window end
	Herbivores int `csv:"herbivores"`
	Predators  int `csv:"predators"`
	Alive      int `csv:"alive"`
	Total      int `csv:"total"`

	// Events during the window
	Kills      int `csv:"kills"`
	Respawns   int `csv:"respawns"`
	FleeEvents int `csv:"flee_events"`

	// Movement distribution at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowTicks int32
	dt          float32
	windowStart int32

	kills      int
	respawns   int
	fleeEvents int
}

// NewCollector creates a stats collector. windowSec is the window length in
// simulation seconds, dt the seconds per tick.
func NewCollector(windowSec float64, dt float32) *Collector {
	ticks := int32(windowSec / float64(dt))
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{windowTicks: ticks, dt: dt}
}

// RecordKill records a predator killing its prey.
func (c *Collector) RecordKill() { c.kills++ }

// RecordRespawn records a dead agent returning to the world.
func (c *Collector) RecordRespawn() { c.respawns++ }

// RecordFlee records an agent entering the fleeing state.
func (c *Collector) RecordFlee() { c.fleeEvents++ }

// WindowClosed reports whether the current window ends at the given tick.
func (c *Collector) WindowClosed(tick int32) bool {
	return tick-c.windowStart >= c.windowTicks
}

// Close finalizes the current window against a population census, resets the
// event counters, and starts the next window at the given tick.
func (c *Collector) Close(tick int32, pop PopulationSample) WindowStats {
	ws := WindowStats{
		WindowEndTick: tick,
		SimTimeSec:    float64(tick) * float64(c.dt),
		Herbivores:    pop.Herbivores,
		Predators:     pop.Predators,
		Alive:         pop.Alive,
		Total:         pop.Total,
		Kills:         c.kills,
		Respawns:      c.respawns,
		FleeEvents:    c.fleeEvents,
	}

	if len(pop.Speeds) > 0 {
		ws.SpeedMean = stat.Mean(pop.Speeds, nil)
	}
	if len(pop.Speeds) > 1 {
		ws.SpeedStd = stat.StdDev(pop.Speeds, nil)
	}

	c.kills = 0
	c.respawns = 0
	c.fleeEvents = 0
	c.windowStart = tick

	return ws
}
