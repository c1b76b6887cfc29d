package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

func newSampler(oracle terrain.Oracle, seed int64) *Sampler {
	return &Sampler{
		Bounds:          unitBounds(),
		Oracle:          oracle,
		WaterAvoidDepth: 0.5,
		RNG:             rand.New(rand.NewSource(seed)),
	}
}

func TestFindSafePositionOnSafeTerrain(t *testing.T) {
	s := newSampler(flatOracle, 1)

	for i := 0; i < 20; i++ {
		p := s.FindSafePosition()
		if !s.Bounds.Contains(p.X, p.Y) {
			t.Fatalf("spawn position (%f, %f) outside bounds", p.X, p.Y)
		}
		if !s.IsSafe(p.X, p.Y) {
			t.Fatalf("spawn position (%f, %f) not safe", p.X, p.Y)
		}
	}
}

func TestFindSafePositionHazardSaturatedFallback(t *testing.T) {
	// Lava everywhere: all 100 attempts fail, the centroid fallback wins.
	lavaWorld := stubOracle{fn: func(x, y float32) terrain.Sample {
		return terrain.Sample{Elevation: -15, Lava: true, Valid: true}
	}}
	s := newSampler(lavaWorld, 2)

	p := s.FindSafePosition()
	if p.X != s.Bounds.CenterX() || p.Y != s.Bounds.CenterY() {
		t.Errorf("fallback = (%f, %f), want bounds centroid (%f, %f)",
			p.X, p.Y, s.Bounds.CenterX(), s.Bounds.CenterY())
	}
	if p.Z != -15 {
		t.Errorf("fallback elevation = %f, want terrain-queried -15", p.Z)
	}
}

func TestSpawnElevationFromOracle(t *testing.T) {
	sloped := stubOracle{fn: func(x, y float32) terrain.Sample {
		return terrain.Sample{Elevation: 10 * x, Valid: true}
	}}
	s := newSampler(sloped, 3)

	p := s.FindSafePosition()
	if want := 10 * p.X; p.Z != want {
		t.Errorf("spawn elevation = %f, want %f", p.Z, want)
	}
}

func TestWanderTargetStaysNearAndSafe(t *testing.T) {
	s := newSampler(flatOracle, 4)
	from := components.Position{X: 0.1, Y: 0.1, Z: 3}

	for i := 0; i < 20; i++ {
		p := s.WanderTarget(from, 0.15)
		if d := distance(from.X, from.Y, p.X, p.Y); d > 0.15+1e-5 {
			t.Fatalf("wander target %f away, radius 0.15", d)
		}
		if !s.IsSafe(p.X, p.Y) {
			t.Fatalf("wander target (%f, %f) not safe", p.X, p.Y)
		}
		if p.Z != from.Z {
			t.Fatalf("wander target changed elevation: %f", p.Z)
		}
	}
}

func TestWanderTargetFallback(t *testing.T) {
	lavaWorld := stubOracle{fn: func(x, y float32) terrain.Sample {
		return terrain.Sample{Lava: true, Valid: true}
	}}
	s := newSampler(lavaWorld, 5)
	from := components.Position{X: 0.3, Y: -0.2, Z: 7}

	p := s.WanderTarget(from, 0.15)
	if p.X != s.Bounds.CenterX() || p.Y != s.Bounds.CenterY() || p.Z != 7 {
		t.Errorf("fallback = %+v, want centroid at current elevation", p)
	}
}

func TestIsSafeInvalidOracleIsOptimistic(t *testing.T) {
	notReady := stubOracle{fn: func(x, y float32) terrain.Sample {
		return terrain.Sample{Elevation: 40} // Valid=false
	}}
	s := newSampler(notReady, 6)

	if !s.IsSafe(0, 0) {
		t.Error("invalid oracle data should not block spawning")
	}
	if s.IsSafe(2, 2) {
		t.Error("out-of-bounds position can never be safe")
	}
}
