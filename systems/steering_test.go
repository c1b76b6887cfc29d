package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

// stubOracle answers terrain queries from a closure, for steering tests.
type stubOracle struct {
	fn func(x, y float32) terrain.Sample
}

func (o stubOracle) Sample(x, y float32) terrain.Sample { return o.fn(x, y) }

// flatOracle is safe ground everywhere at elevation 0.
var flatOracle = stubOracle{fn: func(x, y float32) terrain.Sample {
	return terrain.Sample{Valid: true}
}}

func unitBounds() terrain.Bounds {
	return terrain.Bounds{MinX: -0.5, MaxX: 0.5, MinY: -0.5, MaxY: 0.5, MinZ: -20, MaxZ: 100}
}

func TestAvoidanceBoundaryRepulsion(t *testing.T) {
	b := unitBounds()

	// Hugging the left edge: pushed east.
	ax, ay := AvoidanceVector(b.MinX+0.01, 0, b, flatOracle, 0.5)
	if ax <= 0 {
		t.Errorf("left edge should push +X, got (%f, %f)", ax, ay)
	}

	// Top-right corner: pushed toward the interior on both axes.
	ax, ay = AvoidanceVector(b.MaxX-0.01, b.MaxY-0.01, b, flatOracle, 0.5)
	if ax >= 0 || ay >= 0 {
		t.Errorf("corner should push inward, got (%f, %f)", ax, ay)
	}

	// Center of a safe field: no steering at all.
	ax, ay = AvoidanceVector(0, 0, b, flatOracle, 0.5)
	if ax != 0 || ay != 0 {
		t.Errorf("expected zero avoidance at safe center, got (%f, %f)", ax, ay)
	}
}

func TestAvoidanceHazardRepulsion(t *testing.T) {
	b := unitBounds()

	// Lava strictly east of the agent: repulsion points west.
	lavaEast := stubOracle{fn: func(x, y float32) terrain.Sample {
		return terrain.Sample{Lava: x > 0.01, Valid: true}
	}}
	ax, ay := AvoidanceVector(0, 0, b, lavaEast, 0.5)
	if ax >= 0 {
		t.Errorf("lava to the east should push -X, got (%f, %f)", ax, ay)
	}
	if math.Abs(float64(ay)) > 1e-5 {
		t.Errorf("symmetric hazard row should cancel on Y, got %f", ay)
	}

	// Result is normalized when nonzero.
	if m := magnitude(ax, ay); math.Abs(float64(m-1)) > 1e-5 {
		t.Errorf("avoidance magnitude = %f, want 1", m)
	}

	// Deep water north: repulsion points south, weaker weight than lava.
	waterNorth := stubOracle{fn: func(x, y float32) terrain.Sample {
		s := terrain.Sample{Valid: true}
		if y > 0.01 {
			s.WaterDepth = 1.0
		}
		return s
	}}
	_, ay = AvoidanceVector(0, 0, b, waterNorth, 0.5)
	if ay >= 0 {
		t.Errorf("deep water to the north should push -Y, got %f", ay)
	}
}

func TestHerdCentroid(t *testing.T) {
	self := components.Position{X: 0, Y: 0}

	mates := []components.Position{
		{X: 0.1, Y: 0},
		{X: -0.1, Y: 0.1},
		{X: 5, Y: 5}, // out of herd range
	}
	c := HerdCentroid(self, mates, 0.15)
	if math.Abs(float64(c.X-0)) > 1e-5 || math.Abs(float64(c.Y-0.05)) > 1e-5 {
		t.Errorf("centroid = (%f, %f), want (0, 0.05)", c.X, c.Y)
	}

	// No mates in range: own position.
	c = HerdCentroid(self, []components.Position{{X: 5, Y: 5}}, 0.15)
	if c != self {
		t.Errorf("lonely agent centroid = %+v, want own position", c)
	}
}

func TestFleeVectorPointsAway(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		fx, fy := FleeVector(rng, 0.2, 0, 0, 0) // threat west of agent
		if m := magnitude(fx, fy); math.Abs(float64(m-1)) > 1e-4 {
			t.Fatalf("flee vector magnitude = %f, want 1", m)
		}
		// Jitter is bounded to 0.3 per axis, so the east component
		// always dominates.
		if fx <= 0 {
			t.Fatalf("flee vector points toward threat: (%f, %f)", fx, fy)
		}
	}
}

func TestFleeVectorDegenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Threat on top of the agent still yields a unit direction.
	fx, fy := FleeVector(rng, 0, 0, 0, 0)
	if m := magnitude(fx, fy); math.Abs(float64(m-1)) > 1e-4 {
		t.Errorf("degenerate flee magnitude = %f, want 1", m)
	}
}

func TestChaseVector(t *testing.T) {
	cx, cy := ChaseVector(0, 0, 3, 4)
	if math.Abs(float64(cx-0.6)) > 1e-5 || math.Abs(float64(cy-0.8)) > 1e-5 {
		t.Errorf("chase = (%f, %f), want (0.6, 0.8)", cx, cy)
	}

	// Already on top of the target: no direction.
	cx, cy = ChaseVector(1, 1, 1, 1)
	if cx != 0 || cy != 0 {
		t.Errorf("coincident chase = (%f, %f), want zero", cx, cy)
	}
}
