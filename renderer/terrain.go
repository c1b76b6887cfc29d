// Package renderer draws the terrain and agents with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/camera"
	"github.com/pthm-cable/terrarium/terrain"
)

// TerrainRenderer rasterizes the heightfield into colored cells.
type TerrainRenderer struct{}

// NewTerrainRenderer creates a terrain renderer.
func NewTerrainRenderer() *TerrainRenderer {
	return &TerrainRenderer{}
}

// Draw renders the heightfield cell grid through the camera. Cells below the
// lava threshold glow red, flooded cells shade blue with depth, and dry sand
// ramps from dark lowland to pale highland.
func (r *TerrainRenderer) Draw(field *terrain.Field, cam *camera.Camera) {
	if field == nil || !field.Valid() {
		rl.ClearBackground(rl.Color{R: 30, G: 26, B: 22, A: 255})
		return
	}

	gridW, gridH := field.GridSize()
	b := field.Bounds()
	cellW := b.Width() / float32(gridW-1)
	cellH := b.Height() / float32(gridH-1)

	for iy := 0; iy < gridH; iy++ {
		for ix := 0; ix < gridW; ix++ {
			wx := b.MinX + float32(ix)*cellW
			wy := b.MinY + float32(iy)*cellH
			if !cam.IsVisible(wx, wy, cellW) {
				continue
			}

			c := cellColor(field, ix, iy, b)

			// Cell corners map to screen; +Y north flips vertically, so the
			// cell's top edge on screen is its north edge in the world.
			sx, sy := cam.WorldToScreen(wx, wy+cellH)
			w := cellW*cam.Zoom + 1
			h := cellH*cam.Zoom + 1
			rl.DrawRectangle(int32(sx), int32(sy), int32(w), int32(h), c)
		}
	}
}

func cellColor(field *terrain.Field, ix, iy int, b terrain.Bounds) rl.Color {
	elev := field.HeightAt(ix, iy)
	depth := field.WaterDepthAt(ix, iy)

	if elev < field.LavaThreshold() {
		// Deeper lava glows hotter.
		heat := clamp01((field.LavaThreshold() - elev) / 10)
		return rl.Color{
			R: 200 + uint8(heat*55),
			G: uint8(60 + heat*60),
			B: 20,
			A: 255,
		}
	}

	if depth > 0 {
		shade := clamp01(depth / 5)
		return rl.Color{
			R: uint8(40 - shade*25),
			G: uint8(90 - shade*50),
			B: uint8(160 - shade*60),
			A: 255,
		}
	}

	// Sand ramp over the elevation span.
	t := clamp01((elev - b.MinZ) / (b.MaxZ - b.MinZ))
	return rl.Color{
		R: uint8(120 + t*110),
		G: uint8(100 + t*100),
		B: uint8(70 + t*80),
		A: 255,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
