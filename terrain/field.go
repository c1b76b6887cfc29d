package terrain

import "fmt"

// Field is a CPU-side cached heightfield implementing Oracle. It holds two
// grids sampled over the planar bounds: sand surface heights and water
// surface elevations. Collaborators replace the grids between simulation
// ticks via SetGrids; queries bilinearly interpolate them.
type Field struct {
	bounds Bounds

	gridW, gridH int
	heights      []float32 // sand surface, row-major
	waterSurface []float32 // water surface elevation (>= height where wet)

	lavaThreshold float32
	valid         bool
}

// NewField creates an empty field over the given bounds. Queries return
// fallback samples until the first SetGrids call.
func NewField(bounds Bounds, gridW, gridH int, lavaThreshold float32) *Field {
	if gridW < 2 {
		gridW = 2
	}
	if gridH < 2 {
		gridH = 2
	}
	return &Field{
		bounds:        bounds,
		gridW:         gridW,
		gridH:         gridH,
		heights:       make([]float32, gridW*gridH),
		waterSurface:  make([]float32, gridW*gridH),
		lavaThreshold: lavaThreshold,
	}
}

// SetGrids replaces both cached grids. The slices are copied; callers may
// reuse their buffers. Marks the field valid.
func (f *Field) SetGrids(heights, waterSurface []float32) error {
	n := f.gridW * f.gridH
	if len(heights) != n {
		return fmt.Errorf("terrain: height grid size %d, want %d", len(heights), n)
	}
	if waterSurface != nil && len(waterSurface) != n {
		return fmt.Errorf("terrain: water grid size %d, want %d", len(waterSurface), n)
	}
	copy(f.heights, heights)
	if waterSurface != nil {
		copy(f.waterSurface, waterSurface)
	} else {
		copy(f.waterSurface, heights)
	}
	f.valid = true
	return nil
}

// SetLavaThreshold adjusts the elevation below which terrain reads as lava.
func (f *Field) SetLavaThreshold(threshold float32) { f.lavaThreshold = threshold }

// LavaThreshold returns the current lava elevation threshold.
func (f *Field) LavaThreshold() float32 { return f.lavaThreshold }

// Valid reports whether the field has received data.
func (f *Field) Valid() bool { return f.valid }

// Bounds returns the field's world bounds.
func (f *Field) Bounds() Bounds { return f.bounds }

// GridSize returns the grid dimensions.
func (f *Field) GridSize() (w, h int) { return f.gridW, f.gridH }

// HeightAt returns the raw grid height at a cell, for rendering.
func (f *Field) HeightAt(ix, iy int) float32 { return f.heights[iy*f.gridW+ix] }

// WaterDepthAt returns the raw water depth at a cell, for rendering.
func (f *Field) WaterDepthAt(ix, iy int) float32 {
	i := iy*f.gridW + ix
	d := f.waterSurface[i] - f.heights[i]
	if d < 0 {
		return 0
	}
	return d
}

// Sample implements Oracle. Out-of-bounds positions are clamped to the edge
// of the domain; before the first SetGrids the elevation midpoint is
// returned with Valid=false so callers can degrade gracefully.
func (f *Field) Sample(x, y float32) Sample {
	if !f.valid {
		return Sample{Elevation: f.bounds.MidZ()}
	}

	nx := (f.bounds.ClampX(x) - f.bounds.MinX) / f.bounds.Width()
	ny := (f.bounds.ClampY(y) - f.bounds.MinY) / f.bounds.Height()

	gx := nx * float32(f.gridW-1)
	gy := ny * float32(f.gridH-1)

	elev := f.bilinear(f.heights, gx, gy)
	water := f.bilinear(f.waterSurface, gx, gy)

	depth := water - elev
	if depth < 0 {
		depth = 0
	}

	return Sample{
		Elevation:  elev,
		WaterDepth: depth,
		Lava:       elev < f.lavaThreshold,
		Valid:      true,
	}
}

// bilinear interpolates a grid at fractional cell coordinates.
func (f *Field) bilinear(grid []float32, gx, gy float32) float32 {
	x0 := int(gx)
	y0 := int(gy)
	if x0 > f.gridW-2 {
		x0 = f.gridW - 2
	}
	if y0 > f.gridH-2 {
		y0 = f.gridH - 2
	}
	x1 := x0 + 1
	y1 := y0 + 1
	fx := gx - float32(x0)
	fy := gy - float32(y0)

	v00 := grid[y0*f.gridW+x0]
	v10 := grid[y0*f.gridW+x1]
	v01 := grid[y1*f.gridW+x0]
	v11 := grid[y1*f.gridW+x1]

	v0 := v00*(1-fx) + v10*fx
	v1 := v01*(1-fx) + v11*fx
	return v0*(1-fy) + v1*fy
}
