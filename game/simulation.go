package game

import (
	"log/slog"

	"github.com/pthm-cable/terrarium/species"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// Step advances the simulation by one fixed tick: AI decides velocities,
// animation advances (including the death fade), then live agents move.
// Paused games do not step.
func (g *Game) Step() {
	if g.paused {
		return
	}

	for _, e := range g.agents {
		g.updateAI(e, g.dt)

		anim := g.animMap.Get(e)
		brain := g.brainMap.Get(e)
		life := g.lifeMap.Get(e)
		vel := g.velMap.Get(e)
		info := species.Lookup(g.metaMap.Get(e).Species)
		systems.AdvanceAnimation(anim, brain, life, *vel, info, g.dt, g.p.fadeRate, g.p.respawnDelay)

		if life.Alive {
			systems.Integrate(g.posMap.Get(e), *vel, g.bounds, g.oracle, g.p.smoothing, g.dt)
		}
	}

	g.tick++
	g.flushTelemetry()
}

// Run steps the simulation for a fixed number of ticks.
func (g *Game) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		g.Step()
	}
}

// flushTelemetry closes the stats window at its boundary and writes the row.
func (g *Game) flushTelemetry() {
	if !g.collector.WindowClosed(g.tick) {
		return
	}

	pop := g.census()
	ws := g.collector.Close(g.tick, pop)

	if g.output != nil {
		if err := g.output.WriteStats(ws); err != nil {
			slog.Error("writing stats window", "error", err)
		}
	}
	if g.logStats {
		slog.Info("stats window",
			"tick", ws.WindowEndTick,
			"herbivores", ws.Herbivores,
			"predators", ws.Predators,
			"kills", ws.Kills,
			"respawns", ws.Respawns,
			"flee_events", ws.FleeEvents,
			"speed_mean", ws.SpeedMean,
		)
	}
}

// census samples the current population for a stats window.
func (g *Game) census() telemetry.PopulationSample {
	pop := telemetry.PopulationSample{Total: len(g.agents)}

	query := g.agentFilter.Query()
	for query.Next() {
		meta, _, vel, _, _, _, life := query.Get()
		if !life.Alive {
			continue
		}
		pop.Alive++
		if species.IsPredator(meta.Species) {
			pop.Predators++
		} else {
			pop.Herbivores++
		}
		pop.Speeds = append(pop.Speeds, float64(dist(0, 0, vel.X, vel.Y)))
	}
	return pop
}

// AliveCount returns the number of live agents.
func (g *Game) AliveCount() int {
	n := 0
	for _, e := range g.agents {
		if g.lifeMap.Get(e).Alive {
			n++
		}
	}
	return n
}

// HerbivoreCount returns the number of live herbivores.
func (g *Game) HerbivoreCount() int {
	n := 0
	for _, e := range g.agents {
		if g.lifeMap.Get(e).Alive && species.IsHerbivore(g.metaMap.Get(e).Species) {
			n++
		}
	}
	return n
}

// PredatorCount returns the number of live predators.
func (g *Game) PredatorCount() int {
	n := 0
	for _, e := range g.agents {
		if g.lifeMap.Get(e).Alive && species.IsPredator(g.metaMap.Get(e).Species) {
			n++
		}
	}
	return n
}
