package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

const (
	spawnAttempts  = 100
	wanderAttempts = 20
)

// Sampler finds safe positions inside the bounds by rejection sampling
// against the terrain oracle. It never fails: when every attempt lands on a
// hazard it falls back to the bounds centroid, which guarantees forward
// progress even if the centroid itself is unsafe.
type Sampler struct {
	Bounds          terrain.Bounds
	Oracle          terrain.Oracle
	WaterAvoidDepth float32
	RNG             *rand.Rand
}

// IsSafe reports whether a planar point is inside bounds and free of lava
// and deep water. Invalid oracle samples read as hazard-free; degrading to
// optimism keeps spawning possible before terrain data arrives.
func (s *Sampler) IsSafe(x, y float32) bool {
	if !s.Bounds.Contains(x, y) {
		return false
	}
	sample := s.Oracle.Sample(x, y)
	if sample.Lava {
		return false
	}
	if sample.WaterDepth > s.WaterAvoidDepth {
		return false
	}
	return true
}

// FindSafePosition draws up to 100 uniform random points inside the planar
// bounds and returns the first safe one, with elevation taken from the
// oracle. Falls back to the terrain-queried bounds centroid.
func (s *Sampler) FindSafePosition() components.Position {
	for i := 0; i < spawnAttempts; i++ {
		x := s.Bounds.MinX + s.RNG.Float32()*s.Bounds.Width()
		y := s.Bounds.MinY + s.RNG.Float32()*s.Bounds.Height()
		if s.IsSafe(x, y) {
			return components.Position{X: x, Y: y, Z: s.Oracle.Sample(x, y).Elevation}
		}
	}

	cx, cy := s.Bounds.CenterX(), s.Bounds.CenterY()
	return components.Position{X: cx, Y: cy, Z: s.Oracle.Sample(cx, cy).Elevation}
}

// WanderTarget picks a safe random point within the wander radius of the
// current position, drawing a random angle and distance per attempt. On
// exhaustion it falls back to the bounds centroid at the current elevation.
func (s *Sampler) WanderTarget(from components.Position, radius float32) components.Position {
	for i := 0; i < wanderAttempts; i++ {
		angle := s.RNG.Float64() * 2 * math.Pi
		dist := s.RNG.Float32() * radius

		x := from.X + float32(math.Cos(angle))*dist
		y := from.Y + float32(math.Sin(angle))*dist
		if s.IsSafe(x, y) {
			return components.Position{X: x, Y: y, Z: from.Z}
		}
	}
	return components.Position{X: s.Bounds.CenterX(), Y: s.Bounds.CenterY(), Z: from.Z}
}
