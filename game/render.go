package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/ecosystem"
	"github.com/pthm-cable/ecosim/telemetry"
	"github.com/pthm-cable/ecosim/ui"
)

// Draw renders the frame. Panel buttons pressed here take effect on the next Update.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	if !g.started {
		g.drawSetup()
		return
	}

	cfg := config.Cfg()
	rl.ClearBackground(g.palette.Background(g.dayNight.Night()))

	rl.BeginMode2D(rl.Camera2D{
		Offset: v2(g.cam.ViewportW/2, g.cam.ViewportH/2),
		Target: v2(g.cam.X, g.cam.Y),
		Zoom:   g.cam.Zoom,
	})
	vis := cfg.Visual
	for _, p := range g.world.Plants() {
		if p.Available && g.cam.IsVisible(p.X, p.Y, vis.PlantSize) {
			drawPlant(p, vis.PlantSize, g.launch.Type, g.palette)
		}
	}
	prey := g.world.Prey()
	preds := g.world.Predators()
	for _, a := range prey {
		drawAnimal(a, vis.PreySize, g.palette.Prey, g.palette.Accent, g.launch.Type)
	}
	for _, a := range preds {
		drawAnimal(a, vis.PredatorSize, g.palette.Predator, g.palette.Accent, g.launch.Type)
	}

	g.drawActiveOverlays(prey, preds)
	sel, hasSel := g.selection()
	if hasSel {
		rl.DrawCircleLines(int32(sel.X), int32(sel.Y), spriteRadius(sel.Kind)+4, rl.Yellow)
	}
	rl.EndMode2D()

	if hasSel {
		g.drawSelectionInfo(sel)
	}

	if g.overlays.IsEnabled(ui.OverlayStatsPanel) {
		g.stats.Draw(g.statsData())
	}
	if g.overlays.IsEnabled(ui.OverlayControlPanel) {
		act := g.controls.Draw(g.paused)
		g.pending.TogglePause = g.pending.TogglePause || act.TogglePause
		g.pending.Relaunch = g.pending.Relaunch || act.Relaunch
		g.pending.Quit = g.pending.Quit || act.Quit
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.uiRenderer.DrawPerfPanel(int32(cfg.Screen.Width)-260, int32(cfg.Screen.Height)-260, 250, g.perfData())
	}

	g.hud.Draw(ui.HUDData{
		Title:        g.palette.Name,
		Tick:         g.world.Tick(),
		SimTime:      g.world.Elapsed(),
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		Night:        g.dayNight.Night(),
		ScreenWidth:  int32(cfg.Screen.Width),
		ScreenHeight: int32(cfg.Screen.Height),
	})
	g.hud.DrawControls(int32(cfg.Screen.Height), g.overlays)
}

// drawSetup shows the setup menu and launches the chosen ecosystem on start.
func (g *Game) drawSetup() {
	start, quit := g.setup.Draw()
	if quit {
		g.quit = true
		return
	}
	if !start {
		return
	}

	l := g.setup.Launch()
	if err := g.Relaunch(l); err != nil {
		slog.Error("launch failed", "error", err)
		return
	}
	g.controls = ui.NewControlPanel(10, 40, 240, l)
	g.started = true
}

// drawActiveOverlays renders all currently enabled world overlays.
func (g *Game) drawActiveOverlays(prey, preds []ecosystem.AnimalView) {
	for _, id := range g.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayEnergyBars:
			g.drawEnergyBars(prey, preds)
		case ui.OverlayDetectRadius:
			drawRadii(prey, g.prey.DetectRadius, g.palette.Plant)
			drawRadii(preds, g.predator.DetectRadius, rl.Red)
		case ui.OverlayThreatRadius:
			drawRadii(prey, g.prey.ThreatRadius, rl.Orange)
		case ui.OverlayVelocity:
			drawVelocities(prey)
			drawVelocities(preds)
		}
	}
}

func (g *Game) drawEnergyBars(prey, preds []ecosystem.AnimalView) {
	vis := config.Cfg().Visual
	bar := func(a ecosystem.AnimalView, size float32) {
		w := size
		x := int32(a.X - w/2)
		y := int32(a.Y - size/2 - 8)
		fill := rl.Green
		if a.Energy < components.MaxEnergy/4 {
			fill = rl.Red
		}
		rl.DrawRectangle(x, y, int32(w), 4, rl.DarkGray)
		rl.DrawRectangle(x, y, int32(w*a.Energy/components.MaxEnergy), 4, fill)
	}
	for _, a := range prey {
		bar(a, vis.PreySize)
	}
	for _, a := range preds {
		bar(a, vis.PredatorSize)
	}
}

func drawRadii(animals []ecosystem.AnimalView, radius float32, color rl.Color) {
	if radius <= 0 {
		return
	}
	c := rl.Fade(color, 0.5)
	for _, a := range animals {
		rl.DrawCircleLines(int32(a.X), int32(a.Y), radius, c)
	}
}

func drawVelocities(animals []ecosystem.AnimalView) {
	for _, a := range animals {
		rl.DrawLineEx(v2(a.X, a.Y), v2(a.X+a.VX*0.5, a.Y+a.VY*0.5), 2, rl.SkyBlue)
	}
}

// drawSelectionInfo shows the selected animal's state next to it, in screen space.
func (g *Game) drawSelectionInfo(a ecosystem.AnimalView) {
	r := (spriteRadius(a.Kind) + 4) * g.cam.Zoom
	sx, sy := g.cam.WorldToScreen(a.X, a.Y)
	x := int32(sx + r + 6)
	y := int32(sy - r)
	g.uiRenderer.DrawPanel(x, y, 200, 96)
	x += 8
	y = g.uiRenderer.DrawSectionHeader(x, y+6, a.Kind.String())
	y = g.uiRenderer.DrawLabelValue(x, y, "Energy", fmt.Sprintf("%.1f", a.Energy))
	y = g.uiRenderer.DrawLabelValue(x, y, "Age", fmt.Sprintf("%.0fs", a.Age))
	g.uiRenderer.DrawLabelValue(x, y, "Velocity", fmt.Sprintf("%.0f, %.0f", a.VX, a.VY))
}

// statsData samples the stats panel values from the world.
func (g *Game) statsData() ui.StatsData {
	return ui.StatsData{
		Prey:       g.world.PreyCount(),
		Predators:  g.world.PredatorCount(),
		Plants:     g.world.PlantCount(),
		Consumed:   g.world.PlantsConsumed(),
		PreyEnergy: meanEnergy(g.world.Energies(components.KindPrey)),
		PredEnergy: meanEnergy(g.world.Energies(components.KindPredator)),
	}
}

func meanEnergy(xs []float64) float32 {
	if len(xs) == 0 {
		return 0
	}
	return float32(stat.Mean(xs, nil))
}

// perfData converts the rolling perf window for the perf panel.
func (g *Game) perfData() ui.PerfData {
	ps := g.perfCollector.Stats()
	d := ui.PerfData{
		AvgTick:     ps.AvgTickDuration,
		MaxTick:     ps.MaxTickDuration,
		TicksPerSec: ps.TicksPerSecond,
	}
	for _, phase := range telemetry.Phases {
		d.Phases = append(d.Phases, ui.PerfLine{Name: g.phases.GetName(phase), Pct: ps.PhasePct[phase]})
	}
	return d
}
