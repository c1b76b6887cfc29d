package systems

import (
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

// Steering constants, in world units over the default unit-scale bounds.
const (
	// BoundaryMargin is the distance from a planar edge at which boundary
	// repulsion kicks in.
	BoundaryMargin = 0.05
	// HazardProbeDistance is how far the 8 neighbor probes reach.
	HazardProbeDistance = 0.03
	// MinSteerMagnitude is the threshold below which a steering vector is
	// treated as zero.
	MinSteerMagnitude = 1e-3

	// fleeJitter bounds the per-axis random perturbation of flee vectors.
	fleeJitter = 0.3

	lavaRepulsionWeight  = 2.0
	waterRepulsionWeight = 1.0
)

// AvoidanceVector combines boundary repulsion with hazard repulsion sampled
// over the 8 neighboring offsets at the probe distance. Lava neighbors repel
// at twice the weight of deep-water neighbors. The result is normalized when
// non-negligible, otherwise zero.
func AvoidanceVector(x, y float32, b terrain.Bounds, oracle terrain.Oracle, waterAvoidDepth float32) (ax, ay float32) {
	if x < b.MinX+BoundaryMargin {
		ax += 1
	}
	if x > b.MaxX-BoundaryMargin {
		ax -= 1
	}
	if y < b.MinY+BoundaryMargin {
		ay += 1
	}
	if y > b.MaxY-BoundaryMargin {
		ay -= 1
	}

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			s := oracle.Sample(x+float32(dx)*HazardProbeDistance, y+float32(dy)*HazardProbeDistance)
			if s.Lava {
				ax -= float32(dx) * lavaRepulsionWeight
				ay -= float32(dy) * lavaRepulsionWeight
			}
			if s.WaterDepth > waterAvoidDepth {
				ax -= float32(dx) * waterRepulsionWeight
				ay -= float32(dy) * waterRepulsionWeight
			}
		}
	}

	if nx, ny, ok := normalize(ax, ay); ok {
		return nx, ny
	}
	return 0, 0
}

// HerdCentroid returns the mean position of herd mates within the herd
// radius of self. The mates slice must already be filtered to same-species,
// alive, non-self agents. Falls back to the agent's own position when no
// mate is in range, so blending toward the result is always well defined.
func HerdCentroid(self components.Position, mates []components.Position, radius float32) components.Position {
	var cx, cy, cz float32
	count := 0
	rSq := radius * radius
	for _, m := range mates {
		if distanceSq(self.X, self.Y, m.X, m.Y) < rSq {
			cx += m.X
			cy += m.Y
			cz += m.Z
			count++
		}
	}
	if count == 0 {
		return self
	}
	n := float32(count)
	return components.Position{X: cx / n, Y: cy / n, Z: cz / n}
}

// FleeVector returns a unit vector pointing from the threat to the agent,
// perturbed by bounded random jitter so a herd does not flee in lockstep.
func FleeVector(rng *rand.Rand, agentX, agentY, threatX, threatY float32) (fx, fy float32) {
	fx = agentX - threatX
	fy = agentY - threatY
	if nx, ny, ok := normalize(fx, fy); ok {
		fx, fy = nx, ny
	}

	fx += (rng.Float32() - 0.5) * fleeJitter
	fy += (rng.Float32() - 0.5) * fleeJitter

	if nx, ny, ok := normalize(fx, fy); ok {
		return nx, ny
	}
	// Threat exactly on top of the agent and jitter cancelled out; any
	// direction beats standing still.
	return 1, 0
}

// ChaseVector returns a unit vector from the agent toward the target's
// current position. No lookahead: the chase re-aims every tick.
func ChaseVector(agentX, agentY, targetX, targetY float32) (cx, cy float32) {
	if nx, ny, ok := normalize(targetX-agentX, targetY-agentY); ok {
		return nx, ny
	}
	return 0, 0
}
