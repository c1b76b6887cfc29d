package systems

import (
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/species"
)

// minFacingSpeed is the velocity magnitude below which the facing direction
// is left unchanged.
const minFacingSpeed = 1e-3

// AdvanceAnimation steps one agent's animation by dt. For normal actions the
// frame index wraps modulo the species frame count. While dying, frames
// advance until the last Die frame, then clamp there while alpha decays at
// fadeRate per second; when alpha reaches zero the agent becomes Dead,
// invisible, and its respawn countdown starts. Facing is recomputed from
// velocity whenever the agent is actually moving.
func AdvanceAnimation(anim *components.Animation, brain *components.Brain, life *components.Life,
	vel components.Velocity, info species.Info, dt, fadeRate, respawnDelay float32) {

	if brain.State == components.StateDead {
		return
	}

	if brain.State == components.StateDying {
		lastFrame := info.Frames[species.ActionDie] - 1
		if anim.Frame < lastFrame {
			anim.Timer += dt
			if anim.Timer >= anim.FrameTime {
				anim.Timer -= anim.FrameTime
				anim.Frame++
				if anim.Frame > lastFrame {
					anim.Frame = lastFrame
				}
			}
			return
		}

		life.Alpha -= fadeRate * dt
		if life.Alpha <= 0 {
			life.Alpha = 0
			life.Visible = false
			brain.State = components.StateDead
			brain.RespawnTimer = respawnDelay
		}
		return
	}

	anim.Timer += dt
	if anim.Timer >= anim.FrameTime {
		anim.Timer -= anim.FrameTime
		anim.Frame++
		if anim.Frame >= info.Frames[anim.Action] {
			anim.Frame = 0
		}
	}

	if magnitude(vel.X, vel.Y) > minFacingSpeed {
		if dir, ok := species.DirectionFromVelocity(vel.X, vel.Y); ok {
			anim.Facing = dir
		}
	}
}
