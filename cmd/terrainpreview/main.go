// Terrain preview tool - interactive heightfield visualization with sliders.
//
// Usage: go run ./cmd/terrainpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/terrain"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewW     = 512
	previewH     = 384
	panelWidth   = windowWidth - previewW - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	config.MustInit("")
	cfg := config.Cfg()

	bounds := terrain.Bounds{
		MinX: float32(cfg.Bounds.MinX), MaxX: float32(cfg.Bounds.MaxX),
		MinY: float32(cfg.Bounds.MinY), MaxY: float32(cfg.Bounds.MaxY),
		MinZ: float32(cfg.Bounds.MinZ), MaxZ: float32(cfg.Bounds.MaxZ),
	}
	gridW, gridH := cfg.Terrain.GridWidth, cfg.Terrain.GridHeight

	// Slider state kept in float32 so comparisons against the widget values
	// are exact.
	seed := float32(1)
	scale := float32(cfg.Terrain.NoiseScale)
	octaves := cfg.Terrain.NoiseOctaves
	lacunarity := float32(cfg.Terrain.NoiseLacunarity)
	gain := float32(cfg.Terrain.NoiseGain)
	waterLevel := float32(cfg.Terrain.WaterLevel)
	lavaThreshold := float32(cfg.Terrain.LavaThreshold)

	field := terrain.NewField(bounds, gridW, gridH, lavaThreshold)

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			field.SetLavaThreshold(lavaThreshold)
			field.Generate(terrain.GenOptions{
				Seed:       int64(seed),
				Scale:      float64(scale),
				Octaves:    octaves,
				Lacunarity: float64(lacunarity),
				Gain:       float64(gain),
				WaterLevel: waterLevel,
			})
			updateTexture(texture, field)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridW), Height: float32(gridH)},
			rl.Rectangle{X: 10, Y: 10, Width: previewW, Height: previewH},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		drawStats(field, gridW, gridH)

		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, lo, hi string, val, minV, maxV float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				lo, hi, val, minV, maxV,
			)
			rl.DrawText(fmt.Sprintf("%.2f", val), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return next
		}

		if next := slider("Seed", "1", "9999", seed, 1, 9999); next != seed {
			seed = next
			needsRegen = true
		}
		if next := slider("Scale (base noise frequency)", "0.5", "8.0", scale, 0.5, 8.0); next != scale {
			scale = next
			needsRegen = true
		}
		if next := slider("Octaves (FBM detail level)", "1", "6", float32(octaves), 1, 6); int(next) != octaves {
			octaves = int(next)
			needsRegen = true
		}
		if next := slider("Lacunarity (frequency multiplier)", "1.5", "4.0", lacunarity, 1.5, 4.0); next != lacunarity {
			lacunarity = next
			needsRegen = true
		}
		if next := slider("Gain (amplitude falloff)", "0.2", "0.8", gain, 0.2, 0.8); next != gain {
			gain = next
			needsRegen = true
		}
		if next := slider("Water level (basin fill)", "-20", "0", waterLevel, -20, 0); next != waterLevel {
			waterLevel = next
			needsRegen = true
		}
		if next := slider("Lava threshold", "-20", "0", lavaThreshold, -20, 0); next != lavaThreshold {
			lavaThreshold = next
			needsRegen = true
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := fmt.Sprintf(`terrain:
  lava_threshold: %.1f
  water_level: %.1f
  noise_scale: %.1f
  noise_octaves: %d
  noise_lacunarity: %.1f
  noise_gain: %.2f`,
				lavaThreshold, waterLevel, scale, octaves,
				lacunarity, gain)
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// drawStats summarizes the generated field under the preview.
func drawStats(field *terrain.Field, gridW, gridH int) {
	var lavaCells, waterCells int
	var minZ, maxZ float32 = 1e9, -1e9
	for iy := 0; iy < gridH; iy++ {
		for ix := 0; ix < gridW; ix++ {
			h := field.HeightAt(ix, iy)
			if h < minZ {
				minZ = h
			}
			if h > maxZ {
				maxZ = h
			}
			if h < field.LavaThreshold() {
				lavaCells++
			} else if field.WaterDepthAt(ix, iy) > 0 {
				waterCells++
			}
		}
	}
	total := gridW * gridH
	statsY := int32(previewH + 25)
	rl.DrawText(fmt.Sprintf("Elevation: %.1f to %.1f", minZ, maxZ), 15, statsY, 16, rl.DarkGray)
	rl.DrawText(fmt.Sprintf("Lava: %.1f%%  Water: %.1f%%",
		100*float32(lavaCells)/float32(total), 100*float32(waterCells)/float32(total)),
		15, statsY+20, 16, rl.DarkGray)
}

// updateTexture paints the field with the same palette the simulation uses:
// lava, water by depth, sand by elevation.
func updateTexture(texture rl.Texture2D, field *terrain.Field) {
	gridW, gridH := field.GridSize()
	b := field.Bounds()
	pixels := make([]color.RGBA, gridW*gridH)

	for iy := 0; iy < gridH; iy++ {
		for ix := 0; ix < gridW; ix++ {
			elev := field.HeightAt(ix, iy)
			depth := field.WaterDepthAt(ix, iy)

			var r, g, bl uint8
			switch {
			case elev < field.LavaThreshold():
				heat := clamp01((field.LavaThreshold() - elev) / 10)
				r, g, bl = 200+uint8(heat*55), uint8(60+heat*60), 20
			case depth > 0:
				shade := clamp01(depth / 5)
				r, g, bl = uint8(40-shade*25), uint8(90-shade*50), uint8(160-shade*60)
			default:
				t := clamp01((elev - b.MinZ) / (b.MaxZ - b.MinZ))
				r, g, bl = uint8(120+t*110), uint8(100+t*100), uint8(70+t*80)
			}

			// Row 0 of the texture is the top; world +Y (north) should be up.
			py := gridH - 1 - iy
			pixels[py*gridW+ix] = color.RGBA{R: r, G: g, B: bl, A: 255}
		}
	}
	rl.UpdateTexture(texture, pixels)
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
