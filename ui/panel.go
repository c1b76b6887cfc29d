package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/game"
)

// Panel is the live tuning panel: sliders for the lava threshold, respawn
// delay, and global speed scale. Hidden by default; toggled from the main
// input loop.
type Panel struct {
	Visible bool

	x, width float32
}

// NewPanel creates a tuning panel anchored to the right screen edge.
func NewPanel(screenWidth int32) *Panel {
	width := float32(260)
	return &Panel{
		x:     float32(screenWidth) - width - 10,
		width: width,
	}
}

// Resize re-anchors the panel after a window resize.
func (p *Panel) Resize(screenWidth int32) {
	p.x = float32(screenWidth) - p.width - 10
}

// Draw renders the panel and applies slider changes back to the game.
func (p *Panel) Draw(g *game.Game) {
	if !p.Visible {
		return
	}

	y := float32(10)
	rl.DrawRectangle(int32(p.x-10), 0, int32(p.width+20), 220, rl.Fade(rl.Black, 0.6))
	rl.DrawText("Tuning", int32(p.x), int32(y), 20, rl.White)
	y += 35

	if field := g.Field(); field != nil {
		rl.DrawText("Lava threshold (elevation)", int32(p.x), int32(y), 14, rl.Gray)
		y += 18
		cur := field.LavaThreshold()
		next := gui.SliderBar(
			rl.Rectangle{X: p.x, Y: y, Width: p.width - 60, Height: 20},
			"-20", "0",
			cur, -20, 0,
		)
		rl.DrawText(fmt.Sprintf("%.1f", cur), int32(p.x+p.width-50), int32(y+2), 16, rl.White)
		if next != cur {
			field.SetLavaThreshold(next)
		}
		y += 35
	}

	rl.DrawText("Respawn delay (seconds)", int32(p.x), int32(y), 14, rl.Gray)
	y += 18
	delay := g.RespawnDelay()
	nextDelay := gui.SliderBar(
		rl.Rectangle{X: p.x, Y: y, Width: p.width - 60, Height: 20},
		"0", "30",
		delay, 0, 30,
	)
	rl.DrawText(fmt.Sprintf("%.1f", delay), int32(p.x+p.width-50), int32(y+2), 16, rl.White)
	if nextDelay != delay {
		g.SetRespawnDelay(nextDelay)
	}
	y += 35

	rl.DrawText("Speed scale", int32(p.x), int32(y), 14, rl.Gray)
	y += 18
	scale := g.SpeedScale()
	nextScale := gui.SliderBar(
		rl.Rectangle{X: p.x, Y: y, Width: p.width - 60, Height: 20},
		"0", "5",
		scale, 0, 5,
	)
	rl.DrawText(fmt.Sprintf("%.2f", scale), int32(p.x+p.width-50), int32(y+2), 16, rl.White)
	if nextScale != scale {
		g.SetSpeedScale(nextScale)
	}
}
