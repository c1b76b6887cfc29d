package terrain

import (
	"math"
	"testing"
)

func testBounds() Bounds {
	return Bounds{MinX: -0.5, MaxX: 0.5, MinY: -0.4, MaxY: 0.4, MinZ: -20, MaxZ: 100}
}

func approx(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestSampleInvalidFallback(t *testing.T) {
	f := NewField(testBounds(), 4, 4, -10)

	s := f.Sample(0, 0)
	if s.Valid {
		t.Error("sample valid before any grid data")
	}
	if !approx(s.Elevation, testBounds().MidZ(), 1e-5) {
		t.Errorf("fallback elevation = %f, want domain midpoint %f", s.Elevation, testBounds().MidZ())
	}
	if s.Lava || s.WaterDepth != 0 {
		t.Errorf("fallback sample should be hazard-free, got %+v", s)
	}
}

func TestSampleBilinear(t *testing.T) {
	f := NewField(testBounds(), 2, 2, -100)

	// Corner heights 0, 10, 20, 30: the domain center interpolates to 15.
	if err := f.SetGrids([]float32{0, 10, 20, 30}, nil); err != nil {
		t.Fatal(err)
	}

	s := f.Sample(0, 0)
	if !s.Valid {
		t.Fatal("sample invalid after SetGrids")
	}
	if !approx(s.Elevation, 15, 1e-4) {
		t.Errorf("center elevation = %f, want 15", s.Elevation)
	}

	// Exact corners
	if got := f.Sample(-0.5, -0.4).Elevation; !approx(got, 0, 1e-4) {
		t.Errorf("min corner = %f, want 0", got)
	}
	if got := f.Sample(0.5, 0.4).Elevation; !approx(got, 30, 1e-4) {
		t.Errorf("max corner = %f, want 30", got)
	}
}

func TestSampleClampsOutOfBounds(t *testing.T) {
	f := NewField(testBounds(), 2, 2, -100)
	if err := f.SetGrids([]float32{0, 10, 20, 30}, nil); err != nil {
		t.Fatal(err)
	}

	inside := f.Sample(0.5, 0.4)
	outside := f.Sample(5, 5)
	if !approx(inside.Elevation, outside.Elevation, 1e-5) {
		t.Errorf("out-of-bounds sample %f should clamp to edge %f", outside.Elevation, inside.Elevation)
	}
}

func TestLavaAndWaterClassification(t *testing.T) {
	f := NewField(testBounds(), 2, 2, -10)

	heights := []float32{-15, -15, -15, -15}
	if err := f.SetGrids(heights, nil); err != nil {
		t.Fatal(err)
	}
	if s := f.Sample(0, 0); !s.Lava {
		t.Errorf("elevation below threshold should be lava: %+v", s)
	}

	// Raise the floor above the threshold and flood it.
	heights = []float32{-5, -5, -5, -5}
	water := []float32{-3, -3, -3, -3}
	if err := f.SetGrids(heights, water); err != nil {
		t.Fatal(err)
	}
	s := f.Sample(0, 0)
	if s.Lava {
		t.Errorf("elevation above threshold flagged lava: %+v", s)
	}
	if !approx(s.WaterDepth, 2, 1e-4) {
		t.Errorf("water depth = %f, want 2", s.WaterDepth)
	}
}

func TestSetGridsSizeMismatch(t *testing.T) {
	f := NewField(testBounds(), 4, 4, -10)
	if err := f.SetGrids(make([]float32, 3), nil); err == nil {
		t.Error("expected error for wrong height grid size")
	}
	if err := f.SetGrids(make([]float32, 16), make([]float32, 5)); err == nil {
		t.Error("expected error for wrong water grid size")
	}
}

func TestGenerateProducesValidTerrain(t *testing.T) {
	b := testBounds()
	f := NewField(b, 32, 32, -10)
	f.Generate(GenOptions{Seed: 7, WaterLevel: -6})

	if !f.Valid() {
		t.Fatal("field invalid after Generate")
	}

	// Every sample stays inside the elevation range and water only pools
	// below the configured level.
	for _, p := range [][2]float32{{0, 0}, {-0.4, 0.3}, {0.45, -0.35}, {0.1, 0.1}} {
		s := f.Sample(p[0], p[1])
		if s.Elevation < b.MinZ || s.Elevation > b.MaxZ {
			t.Errorf("elevation %f outside [%f, %f]", s.Elevation, b.MinZ, b.MaxZ)
		}
		if s.WaterDepth > 0 && s.Elevation >= -6 {
			t.Errorf("water pooled above water level: %+v", s)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewField(testBounds(), 16, 16, -10)
	b := NewField(testBounds(), 16, 16, -10)
	a.Generate(GenOptions{Seed: 42, WaterLevel: -6})
	b.Generate(GenOptions{Seed: 42, WaterLevel: -6})

	sa := a.Sample(0.12, -0.2)
	sb := b.Sample(0.12, -0.2)
	if sa != sb {
		t.Errorf("same seed produced different samples: %+v vs %+v", sa, sb)
	}
}
