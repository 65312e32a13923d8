package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Tick         int64
	SimTime      float64
	FPS          int32
	Paused       bool
	Night        bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD centered at the top of the screen.
func (h *HUD) Draw(data HUDData) {
	phase := "Day"
	if data.Night {
		phase = "Night"
	}
	line := fmt.Sprintf("%s | %s | t=%.0fs | tick %d | %d FPS", data.Title, phase, data.SimTime, data.Tick, data.FPS)
	w := rl.MeasureText(line, 16)
	x := (data.ScreenWidth - w) / 2
	rl.DrawRectangle(x-8, 4, w+16, 24, h.renderer.Theme.PanelBg)
	rl.DrawText(line, x, 8, 16, rl.RayWhite)

	if data.Paused {
		pw := rl.MeasureText("PAUSED", 28)
		rl.DrawText("PAUSED", (data.ScreenWidth-pw)/2, 36, 28, rl.Yellow)
	}
}

// DrawControls renders the overlay key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, overlays *OverlayRegistry) {
	x := int32(10)
	y := screenHeight - 22
	text := "[Space] Pause  [N] Relaunch  [Wheel/RMB/Home] Camera"
	rl.DrawText(text, x, y, 14, rl.Gray)
	x += rl.MeasureText(text, 14) + 16

	for _, desc := range overlays.All() {
		color := rl.Gray
		if overlays.IsEnabled(desc.ID) {
			color = rl.RayWhite
		}
		item := fmt.Sprintf("[%s] %s", desc.KeyLabel, desc.Name)
		rl.DrawText(item, x, y, 14, color)
		x += rl.MeasureText(item, 14) + 12
	}
}
