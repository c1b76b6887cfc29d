// Package terrain answers elevation and hazard queries over the sandbox
// heightfield. The simulation core only sees the Oracle interface; the
// grid-backed Field is one implementation, refreshed by whoever owns the
// actual surface data.
package terrain

// Sample is the result of one terrain query.
type Sample struct {
	Elevation  float32 // sand surface height
	WaterDepth float32 // 0 when dry
	Lava       bool    // surface below the lava threshold
	Valid      bool    // false while backing data is not yet available
}

// Oracle answers synchronous terrain queries at a planar position.
// Implementations must never fail: when data is unavailable they return a
// best-effort fallback Sample with Valid=false.
type Oracle interface {
	Sample(x, y float32) Sample
}

// Bounds is the simulated volume: a planar rectangle plus elevation range.
type Bounds struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32
}

// Contains reports whether a planar point lies inside the bounds.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// ClampX clamps a coordinate to the planar X range.
func (b Bounds) ClampX(x float32) float32 {
	if x < b.MinX {
		return b.MinX
	}
	if x > b.MaxX {
		return b.MaxX
	}
	return x
}

// ClampY clamps a coordinate to the planar Y range.
func (b Bounds) ClampY(y float32) float32 {
	if y < b.MinY {
		return b.MinY
	}
	if y > b.MaxY {
		return b.MaxY
	}
	return y
}

// CenterX returns the planar centroid X coordinate.
func (b Bounds) CenterX() float32 { return (b.MinX + b.MaxX) * 0.5 }

// CenterY returns the planar centroid Y coordinate.
func (b Bounds) CenterY() float32 { return (b.MinY + b.MaxY) * 0.5 }

// MidZ returns the elevation midpoint, the standard fallback elevation.
func (b Bounds) MidZ() float32 { return (b.MinZ + b.MaxZ) * 0.5 }

// Width returns the planar X extent.
func (b Bounds) Width() float32 { return b.MaxX - b.MinX }

// Height returns the planar Y extent.
func (b Bounds) Height() float32 { return b.MaxY - b.MinY }
