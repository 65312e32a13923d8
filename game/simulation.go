package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/telemetry"
	"github.com/pthm-cable/ecosim/ui"
)

// Update applies the previous frame's controls and advances the simulation by the frame time.
// While paused the world is still updated, with dt = 0.
func (g *Game) Update() {
	g.handleInput()
	if !g.started {
		return
	}
	g.Apply(g.pending)
	g.pending = ui.ControlActions{}
	if g.quit {
		return
	}

	dt := g.dt
	if dt <= 0 {
		dt = rl.GetFrameTime()
	}
	g.advance(dt)

	g.perfCollector.RecordFrame()
	g.stats.Record(g.statsData())
}

// UpdateHeadless advances the simulation by the fixed timestep.
func (g *Game) UpdateHeadless() {
	g.advance(g.dt)
}

// Apply performs control actions. Relaunch uses the control panel's parameters when
// the viewer is running, otherwise the current launch configuration.
func (g *Game) Apply(act ui.ControlActions) {
	if act.TogglePause {
		g.SetPaused(!g.paused)
	}
	if act.Relaunch {
		l := g.launch
		if g.controls != nil {
			l = g.controls.Launch()
			l.Type = g.launch.Type
		}
		if err := g.Relaunch(l); err != nil {
			slog.Error("relaunch failed", "error", err)
		}
	}
	if act.Quit {
		g.quit = true
	}
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	slog.Info("pause_toggled", "paused", paused, "tick", g.world.Tick())
}

// advance runs one update. Paused updates use dt = 0.
func (g *Game) advance(dt float32) {
	if g.paused {
		dt = 0
	}
	g.step(dt)
	g.dayNight.Advance(dt)
}

// step runs one world update plus its telemetry, timed by the perf collector.
func (g *Game) step(dt float32) {
	g.perfCollector.StartTick()
	g.world.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(g.world.LastTick())
	g.logLifecycle()
	g.flushTelemetry()
	g.perfCollector.EndTick()
}
