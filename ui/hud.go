// Package ui draws the heads-up display and the tuning panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Herbivores int
	Predators  int
	Alive      int
	Tick       int32
	FPS        int32
	Paused     bool
	Clients    int // connected websocket viewers, -1 when serving is off
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Herbivores: %d | Predators: %d | Alive: %d", data.Herbivores, data.Predators, data.Alive),
		10, 35, 16, rl.LightGray,
	)

	line := fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS)
	if data.Clients >= 0 {
		line += fmt.Sprintf(" | Viewers: %d", data.Clients)
	}
	rl.DrawText(line, 10, 55, 16, rl.LightGray)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
