// Package components defines ECS components for ecosystem agents.
package components

import "github.com/pthm-cable/terrarium/species"

// AIState is an agent's current behavior state.
type AIState uint8

const (
	StateIdle AIState = iota
	StateWandering
	StateGrazing
	StateFleeing
	StateHunting
	StateAttacking
	StateDying
	StateDead
)

var stateNames = [...]string{
	"idle", "wandering", "grazing", "fleeing",
	"hunting", "attacking", "dying", "dead",
}

func (s AIState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Meta is an agent's immutable identity: species and a process-unique,
// monotonically increasing id. Slots are reused on respawn; ids never are.
type Meta struct {
	ID      uint32
	Species species.Species
}

// Position is an agent's world position: planar coordinates plus elevation.
type Position struct {
	X, Y, Z float32
}

// Velocity is the authoritative planar velocity chosen by the AI each tick.
type Velocity struct {
	X, Y float32
}

// Target is where the agent is currently trying to go.
type Target struct {
	X, Y, Z float32
}

// Animation holds per-agent sprite animation state.
type Animation struct {
	Action    species.Action
	Facing    species.Direction
	Frame     int
	Timer     float32 // accumulator toward the next frame
	FrameTime float32 // seconds per frame
}

// Brain holds AI bookkeeping. TargetID is a non-owning reference resolved by
// id lookup with a liveness check at every point of use; the referent may
// die or respawn between ticks.
type Brain struct {
	State        AIState
	TargetID     uint32
	StateTimer   float32 // seconds in current state
	Dwell        float32 // seconds to stay in a timed state, rolled on entry
	RespawnTimer float32 // countdown while dead
}

// Life holds liveness and fade state. Alpha is in [0,1] and decreases
// monotonically only while dying.
type Life struct {
	Alive   bool
	Visible bool
	Alpha   float32
}
