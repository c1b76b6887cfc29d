package terrain

import opensimplex "github.com/ojrac/opensimplex-go"

// GenOptions controls procedural heightfield generation for standalone runs
// where no external sandbox feeds the field.
type GenOptions struct {
	Seed       int64
	Scale      float64 // base noise frequency across the domain
	Octaves    int     // FBM octave count
	Lacunarity float64 // frequency multiplier per octave
	Gain       float64 // amplitude multiplier per octave
	WaterLevel float32 // basins below this elevation fill with water
}

// Generate fills the field with fractal noise terrain spanning the bounds'
// elevation range, pooling water in basins below opts.WaterLevel. Marks the
// field valid.
func (f *Field) Generate(opts GenOptions) {
	if opts.Scale <= 0 {
		opts.Scale = 2.5
	}
	if opts.Octaves <= 0 {
		opts.Octaves = 4
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = 2.0
	}
	if opts.Gain <= 0 {
		opts.Gain = 0.5
	}

	noise := opensimplex.New(opts.Seed)

	zMin := f.bounds.MinZ
	zRange := f.bounds.MaxZ - f.bounds.MinZ

	for iy := 0; iy < f.gridH; iy++ {
		for ix := 0; ix < f.gridW; ix++ {
			nx := float64(ix) / float64(f.gridW-1) * opts.Scale
			ny := float64(iy) / float64(f.gridH-1) * opts.Scale

			// FBM accumulation
			var sum, amp, norm float64
			freq := 1.0
			amp = 1.0
			for o := 0; o < opts.Octaves; o++ {
				sum += noise.Eval2(nx*freq, ny*freq) * amp
				norm += amp
				amp *= opts.Gain
				freq *= opts.Lacunarity
			}
			v := sum / norm // roughly [-1, 1]

			h := zMin + float32((v+1.0)*0.5)*zRange
			i := iy*f.gridW + ix
			f.heights[i] = h
			if h < opts.WaterLevel {
				f.waterSurface[i] = opts.WaterLevel
			} else {
				f.waterSurface[i] = h
			}
		}
	}

	f.valid = true
}
