package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/species"
)

// spawnInitialPopulation creates agents from the config population table, in
// table order.
func (g *Game) spawnInitialPopulation() error {
	for _, entry := range g.cfg.Population {
		sp, ok := species.FromKey(entry.Species)
		if !ok {
			return fmt.Errorf("unknown species %q in population table", entry.Species)
		}
		for i := 0; i < entry.Count; i++ {
			pos := g.sampler.FindSafePosition()
			g.spawn(sp, pos)
		}
	}
	return nil
}

// SpawnAt creates one agent of the given species at a planar point, with
// elevation read from the terrain. Used by scenario setups.
func (g *Game) SpawnAt(sp species.Species, x, y float32) uint32 {
	pos := components.Position{X: x, Y: y, Z: g.oracle.Sample(x, y).Elevation}
	e := g.spawn(sp, pos)
	return g.metaMap.Get(e).ID
}

// spawn creates an entity with freshly initialized components. Facing and the
// initial idle dwell are randomized so a herd spawned together does not move
// in lockstep.
func (g *Game) spawn(sp species.Species, pos components.Position) ecs.Entity {
	id := g.nextID
	g.nextID++

	meta := components.Meta{ID: id, Species: sp}
	vel := components.Velocity{}
	target := components.Target{X: pos.X, Y: pos.Y, Z: pos.Z}
	anim := components.Animation{
		Action:    species.ActionIdle,
		Facing:    species.Direction(g.rng.Intn(int(species.NumDirections))),
		FrameTime: g.p.frameTime,
	}
	brain := components.Brain{
		State:      components.StateIdle,
		StateTimer: g.rng.Float32() * 2,
		Dwell:      1 + g.rng.Float32()*3,
	}
	life := components.Life{Alive: true, Visible: true, Alpha: 1}

	e := g.agentMapper.NewEntity(&meta, &pos, &vel, &target, &anim, &brain, &life)
	g.agents = append(g.agents, e)
	g.byID[id] = e

	g.logSpawn(id, sp, pos)
	return e
}

// respawn reinitializes a dead agent's slot in place: same entity and
// species, fresh id, safe position, full health. The old id is retired so
// stale predator target references can never resolve to the new life.
func (g *Game) respawn(e ecs.Entity) {
	meta := g.metaMap.Get(e)
	delete(g.byID, meta.ID)

	id := g.nextID
	g.nextID++
	meta.ID = id
	g.byID[id] = e

	pos := g.sampler.FindSafePosition()
	*g.posMap.Get(e) = pos
	*g.velMap.Get(e) = components.Velocity{}
	*g.targetMap.Get(e) = components.Target{X: pos.X, Y: pos.Y, Z: pos.Z}
	*g.animMap.Get(e) = components.Animation{
		Action:    species.ActionIdle,
		Facing:    species.Direction(g.rng.Intn(int(species.NumDirections))),
		FrameTime: g.p.frameTime,
	}
	*g.brainMap.Get(e) = components.Brain{
		State:      components.StateIdle,
		StateTimer: 0,
		Dwell:      1 + g.rng.Float32()*3,
	}
	*g.lifeMap.Get(e) = components.Life{Alive: true, Visible: true, Alpha: 1}

	g.collector.RecordRespawn()
	g.logRespawn(id, meta.Species, pos)
}
