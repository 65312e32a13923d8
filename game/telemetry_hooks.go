package game

import (
	"log/slog"

	"github.com/pthm-cable/ecosim/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	simTime := g.world.Elapsed()
	if !g.collector.ShouldFlush(simTime) {
		return
	}

	stats := g.collector.Flush(g.world.Tick(), simTime, telemetry.SamplePopulations(g.world))
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// logLifecycle reports populations that just died out.
func (g *Game) logLifecycle() {
	prey, pred := g.world.PreyCount(), g.world.PredatorCount()
	if g.lastPrey > 0 && prey == 0 {
		slog.Warn("extinction", "kind", "prey", "tick", g.world.Tick(), "sim_time", g.world.Elapsed())
	}
	if g.lastPred > 0 && pred == 0 {
		slog.Warn("extinction", "kind", "predator", "tick", g.world.Tick(), "sim_time", g.world.Elapsed())
	}
	g.lastPrey, g.lastPred = prey, pred
}
