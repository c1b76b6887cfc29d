package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/species"
	"github.com/pthm-cable/terrarium/systems"
)

// Behavior tuning shared by all agents. Times in seconds.
const (
	attackDuration   = 1.0 // wind-up before an attack resolves
	killRangeFactor  = 2.0 // kill check reaches beyond attack trigger range
	patrolRepickTime = 5.0 // predator wander target lifetime
	grazeProbability = 0.3
	avoidanceBlend   = 0.5 // hazard steering strength, in walk speeds
	herdBlend        = 0.4 // pull of the herd centroid on wander targets
)

// updateAI advances one agent's state machine by dt and writes its velocity
// for this tick. Dying agents are driven by the animation system; dead ones
// only count down to respawn.
func (g *Game) updateAI(e ecs.Entity, dt float32) {
	brain := g.brainMap.Get(e)

	if brain.State == components.StateDead {
		brain.RespawnTimer -= dt
		if brain.RespawnTimer <= 0 {
			g.respawn(e)
		}
		return
	}
	if brain.State == components.StateDying {
		return
	}

	brain.StateTimer += dt

	meta := g.metaMap.Get(e)
	info := species.Lookup(meta.Species)
	pos := g.posMap.Get(e)
	vel := g.velMap.Get(e)
	target := g.targetMap.Get(e)
	anim := g.animMap.Get(e)

	var blend bool
	if info.Role == species.RolePredator {
		blend = g.updatePredator(meta, info, pos, vel, target, anim, brain)
	} else {
		blend = g.updateHerbivore(meta, info, pos, vel, target, anim, brain)
	}

	if blend {
		ax, ay := systems.AvoidanceVector(pos.X, pos.Y, g.bounds, g.oracle, g.p.waterAvoid)
		vel.X += ax * info.WalkSpeed * avoidanceBlend * g.p.speedScale
		vel.Y += ay * info.WalkSpeed * avoidanceBlend * g.p.speedScale
	}
}

// updateHerbivore runs the graze/wander/flee state machine. Returns whether
// hazard avoidance should be blended into the velocity afterwards.
func (g *Game) updateHerbivore(meta *components.Meta, info species.Info,
	pos *components.Position, vel *components.Velocity, target *components.Target,
	anim *components.Animation, brain *components.Brain) bool {

	// Fleeing preempts everything. The calm clock restarts every tick the
	// threat stays visible; it only runs down once the threat is gone.
	if tx, ty, found := g.nearestThreat(meta.ID, pos, info.SightRange); found {
		if brain.State != components.StateFleeing {
			brain.State = components.StateFleeing
			g.collector.RecordFlee()
		}
		brain.StateTimer = 0
		fx, fy := systems.FleeVector(g.rng, pos.X, pos.Y, tx, ty)
		vel.X = fx * info.RunSpeed * g.p.speedScale
		vel.Y = fy * info.RunSpeed * g.p.speedScale
		anim.Action = species.ActionRun
		return true
	}
	if brain.State == components.StateFleeing {
		if brain.StateTimer < g.p.fleeCalmTime {
			// Keep running on the last flee heading until calm. Rescaling
			// from the current velocity keeps last tick's avoidance nudge
			// from compounding.
			hx, hy := systems.ChaseVector(pos.X, pos.Y, pos.X+vel.X, pos.Y+vel.Y)
			vel.X = hx * info.RunSpeed * g.p.speedScale
			vel.Y = hy * info.RunSpeed * g.p.speedScale
			anim.Action = species.ActionRun
			return true
		}
		g.startWanderSolo(pos, target, brain)
		anim.Action = species.ActionWalk
	}

	switch brain.State {
	case components.StateIdle:
		vel.X, vel.Y = 0, 0
		anim.Action = species.ActionIdle
		if brain.StateTimer >= brain.Dwell {
			if g.rng.Float32() < grazeProbability {
				brain.State = components.StateGrazing
				brain.StateTimer = 0
				brain.Dwell = 2 + g.rng.Float32()*4
			} else {
				g.startWander(meta, pos, target, brain)
			}
		}

	case components.StateGrazing:
		vel.X, vel.Y = 0, 0
		anim.Action = species.ActionIdle
		if brain.StateTimer >= brain.Dwell {
			g.startWanderSolo(pos, target, brain)
		}

	case components.StateWandering:
		if dist(pos.X, pos.Y, target.X, target.Y) < g.p.arrivalRadius {
			brain.State = components.StateIdle
			brain.StateTimer = 0
			brain.Dwell = 1 + g.rng.Float32()*3
			vel.X, vel.Y = 0, 0
			anim.Action = species.ActionIdle
			break
		}
		cx, cy := systems.ChaseVector(pos.X, pos.Y, target.X, target.Y)
		vel.X = cx * info.WalkSpeed * g.p.speedScale
		vel.Y = cy * info.WalkSpeed * g.p.speedScale
		anim.Action = species.ActionWalk

	default:
		// A herbivore can only hold predator states through a bug; recover.
		brain.State = components.StateIdle
		brain.StateTimer = 0
		brain.Dwell = 1 + g.rng.Float32()*3
	}

	return true
}

// startWander picks a fresh wander target, pulled toward the herd centroid so
// grazers drift together instead of dispersing.
func (g *Game) startWander(meta *components.Meta, pos *components.Position,
	target *components.Target, brain *components.Brain) {

	wt := g.sampler.WanderTarget(*pos, g.p.wanderRadius)
	herd := systems.HerdCentroid(*pos, g.herdMates(meta.ID, meta.Species), g.p.herdRadius)

	target.X = wt.X*(1-herdBlend) + herd.X*herdBlend
	target.Y = wt.Y*(1-herdBlend) + herd.Y*herdBlend
	target.Z = wt.Z

	brain.State = components.StateWandering
	brain.StateTimer = 0
}

// startWanderSolo is startWander without the herd pull: a grazer done eating
// or coming off a flee heads to a plain fresh target; the next idle cycle
// regroups it.
func (g *Game) startWanderSolo(pos *components.Position,
	target *components.Target, brain *components.Brain) {

	wt := g.sampler.WanderTarget(*pos, g.p.wanderRadius)
	target.X, target.Y, target.Z = wt.X, wt.Y, wt.Z
	brain.State = components.StateWandering
	brain.StateTimer = 0
}

// updatePredator runs the patrol/hunt/attack state machine. Returns whether
// hazard avoidance should be blended into the velocity afterwards.
func (g *Game) updatePredator(meta *components.Meta, info species.Info,
	pos *components.Position, vel *components.Velocity, target *components.Target,
	anim *components.Animation, brain *components.Brain) bool {

	// Standing in lava overrides hunting; sprint for open ground.
	if g.oracle.Sample(pos.X, pos.Y).Lava {
		if brain.State != components.StateFleeing {
			brain.State = components.StateFleeing
			brain.StateTimer = 0
			g.collector.RecordFlee()
		}
		cx, cy := systems.ChaseVector(pos.X, pos.Y, g.bounds.CenterX(), g.bounds.CenterY())
		vel.X = cx * info.RunSpeed * g.p.speedScale
		vel.Y = cy * info.RunSpeed * g.p.speedScale
		anim.Action = species.ActionRun
		return false
	}

	if brain.State == components.StateAttacking {
		vel.X, vel.Y = 0, 0
		if brain.StateTimer >= attackDuration {
			g.resolveAttack(meta.ID, info, pos, brain)
			brain.State = components.StateIdle
			brain.StateTimer = 0
		}
		return false
	}

	sight := info.SightRange
	if g.p.sightOverride > 0 {
		sight = g.p.sightOverride
	}

	if prey, preyPos, found := g.nearestPrey(pos, sight); found {
		brain.TargetID = prey
		if dist(pos.X, pos.Y, preyPos.X, preyPos.Y) <= info.AttackRange {
			brain.State = components.StateAttacking
			brain.StateTimer = 0
			vel.X, vel.Y = 0, 0
			anim.Action = species.ActionAttack
			anim.Frame = 0
			anim.Timer = 0
			return false
		}
		brain.State = components.StateHunting
		cx, cy := systems.ChaseVector(pos.X, pos.Y, preyPos.X, preyPos.Y)
		vel.X = cx * info.RunSpeed * g.p.speedScale
		vel.Y = cy * info.RunSpeed * g.p.speedScale
		anim.Action = species.ActionRun
		return true
	}

	// Patrol: wander targets go stale after a few seconds even if unreached.
	if brain.State != components.StateWandering || brain.StateTimer > patrolRepickTime {
		wt := g.sampler.WanderTarget(*pos, g.p.wanderRadius)
		target.X, target.Y, target.Z = wt.X, wt.Y, wt.Z
		brain.State = components.StateWandering
		brain.StateTimer = 0
	}

	if dist(pos.X, pos.Y, target.X, target.Y) < g.p.arrivalRadius {
		vel.X, vel.Y = 0, 0
		anim.Action = species.ActionIdle
		return true
	}
	cx, cy := systems.ChaseVector(pos.X, pos.Y, target.X, target.Y)
	vel.X = cx * info.WalkSpeed * g.p.speedScale
	vel.Y = cy * info.WalkSpeed * g.p.speedScale
	anim.Action = species.ActionWalk
	return true
}

// resolveAttack completes a wound-up attack. The target reference is
// non-owning; the prey may have died, respawned under a new id, or run clear
// since the attack started, so everything is re-checked here.
func (g *Game) resolveAttack(attackerID uint32, info species.Info,
	pos *components.Position, brain *components.Brain) {

	prey, ok := g.byID[brain.TargetID]
	if !ok {
		return
	}
	if !g.lifeMap.Get(prey).Alive {
		return
	}
	preyPos := g.posMap.Get(prey)
	killRange := info.AttackRange * killRangeFactor
	if distSq(pos.X, pos.Y, preyPos.X, preyPos.Y) > killRange*killRange {
		return
	}
	g.kill(prey, attackerID)
}

// kill transitions prey into the dying fade. The slot stays registered; the
// animation system flips it to dead once the fade completes.
func (g *Game) kill(prey ecs.Entity, attackerID uint32) {
	life := g.lifeMap.Get(prey)
	brain := g.brainMap.Get(prey)
	anim := g.animMap.Get(prey)
	meta := g.metaMap.Get(prey)

	life.Alive = false
	brain.State = components.StateDying
	brain.StateTimer = 0
	anim.Action = species.ActionDie
	anim.Frame = 0
	anim.Timer = 0
	*g.velMap.Get(prey) = components.Velocity{}

	g.collector.RecordKill()
	g.logKill(meta.ID, meta.Species, attackerID)
}

// nearestThreat finds the closest thing a herbivore should run from: a live
// predator within its sight range, an external threat point within the hand
// flee radius, or the lava it is currently standing in.
func (g *Game) nearestThreat(selfID uint32, pos *components.Position, sight float32) (tx, ty float32, found bool) {
	best := float32(math.MaxFloat32)

	for _, e := range g.agents {
		m := g.metaMap.Get(e)
		if m.ID == selfID || !species.IsPredator(m.Species) {
			continue
		}
		if !g.lifeMap.Get(e).Alive {
			continue
		}
		pp := g.posMap.Get(e)
		d := distSq(pos.X, pos.Y, pp.X, pp.Y)
		if d < sight*sight && d < best {
			best, tx, ty, found = d, pp.X, pp.Y, true
		}
	}

	r := g.p.handFleeRadius
	for _, t := range g.threats {
		d := distSq(pos.X, pos.Y, t.X, t.Y)
		if d < r*r && d < best {
			best, tx, ty, found = d, t.X, t.Y, true
		}
	}

	// Lava underfoot outranks anything visible. The virtual threat sits
	// mirrored across the bounds center so the flee heading points toward
	// open ground instead of scrambling in place.
	if g.oracle.Sample(pos.X, pos.Y).Lava {
		return 2*pos.X - g.bounds.CenterX(), 2*pos.Y - g.bounds.CenterY(), true
	}

	return tx, ty, found
}

// nearestPrey finds the closest live herbivore within sight.
func (g *Game) nearestPrey(pos *components.Position, sight float32) (id uint32, preyPos components.Position, found bool) {
	best := sight * sight
	for _, e := range g.agents {
		m := g.metaMap.Get(e)
		if !species.IsHerbivore(m.Species) {
			continue
		}
		if !g.lifeMap.Get(e).Alive {
			continue
		}
		pp := g.posMap.Get(e)
		d := distSq(pos.X, pos.Y, pp.X, pp.Y)
		if d < best {
			best, id, preyPos, found = d, m.ID, *pp, true
		}
	}
	return
}

// herdMates collects positions of live same-species agents other than self.
func (g *Game) herdMates(selfID uint32, sp species.Species) []components.Position {
	mates := make([]components.Position, 0, 8)
	for _, e := range g.agents {
		m := g.metaMap.Get(e)
		if m.ID == selfID || m.Species != sp {
			continue
		}
		if !g.lifeMap.Get(e).Alive {
			continue
		}
		mates = append(mates, *g.posMap.Get(e))
	}
	return mates
}

func distSq(x1, y1, x2, y2 float32) float32 {
	dx, dy := x2-x1, y2-y1
	return dx*dx + dy*dy
}

func dist(x1, y1, x2, y2 float32) float32 {
	return float32(math.Sqrt(float64(distSq(x1, y1, x2, y2))))
}
