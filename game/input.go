package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input. Key actions join the panel actions
// gathered during the previous Draw.
func (g *Game) handleInput() {
	if !g.started {
		return
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeySpace:
			g.pending.TogglePause = true
		case rl.KeyN:
			g.pending.Relaunch = true
		case rl.KeyHome:
			g.cam.Reset()
		default:
			if id, on, ok := g.overlays.HandleKeyPress(key); ok {
				slog.Debug("overlay_toggled", "overlay", string(id), "enabled", on)
			}
		}
	}

	g.handleCamera()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		wx, wy := g.cam.ScreenToWorld(mouse.X, mouse.Y)
		g.handleClick(wx, wy)
	}
}

// handleCamera zooms with the mouse wheel and pans with a right drag.
func (g *Game) handleCamera() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		factor := float32(1.1)
		if wheel < 0 {
			factor = 1 / factor
		}
		g.cam.ZoomAt(factor, mouse.X, mouse.Y)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		g.cam.Pan(-d.X, -d.Y)
	}
}
