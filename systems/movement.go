package systems

import (
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

// Integrate applies velocity to the planar position, clamps to bounds, and
// smooths elevation toward the oracle-reported height. The smoothing factor
// is applied once per tick rather than scaled by dt; non-physical, but
// numerically stable and cheap. Invalid oracle samples leave the current
// elevation as the smoothing target, so the agent simply holds its height.
func Integrate(pos *components.Position, vel components.Velocity,
	b terrain.Bounds, oracle terrain.Oracle, smoothing, dt float32) {

	pos.X = b.ClampX(pos.X + vel.X*dt)
	pos.Y = b.ClampY(pos.Y + vel.Y*dt)

	sample := oracle.Sample(pos.X, pos.Y)
	target := pos.Z
	if sample.Valid {
		target = sample.Elevation
	}
	pos.Z += (target - pos.Z) * smoothing
}
