package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/ecosim/systems"
)

// tickWith runs one tick spending roughly the given time in each phase.
func tickWith(pc *PerfCollector, phases map[string]time.Duration) {
	pc.StartTick()
	for _, phase := range Phases {
		d, ok := phases[phase]
		if !ok {
			continue
		}
		pc.StartPhase(phase)
		time.Sleep(d)
	}
	pc.EndTick()
}

func TestPerfCollector_PhaseShares(t *testing.T) {
	pc := NewPerfCollector(10)

	for range 5 {
		tickWith(pc, map[string]time.Duration{
			systems.PhasePrey:      50 * time.Microsecond,
			systems.PhasePredators: 2 * time.Millisecond,
		})
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 || stats.TicksPerSecond <= 0 {
		t.Fatalf("expected positive timing, got avg=%v tps=%v", stats.AvgTickDuration, stats.TicksPerSecond)
	}
	if _, ok := stats.PhaseAvg[systems.PhaseCull]; ok {
		t.Error("untimed phase should not appear")
	}

	prey := stats.PhasePct[systems.PhasePrey]
	pred := stats.PhasePct[systems.PhasePredators]
	if pred <= prey {
		t.Errorf("expected predators (%v%%) > prey (%v%%)", pred, prey)
	}
	if prey+pred > 100.0001 {
		t.Errorf("phase shares exceed the tick: %v%%", prey+pred)
	}
}

func TestPerfCollector_UnknownPhaseIgnored(t *testing.T) {
	pc := NewPerfCollector(4)

	pc.StartTick()
	pc.StartPhase("render")
	time.Sleep(100 * time.Microsecond)
	pc.StartPhase(PhaseTelemetry)
	pc.EndTick()

	stats := pc.Stats()
	if _, ok := stats.PhaseAvg["render"]; ok {
		t.Error("unknown phase should not be tracked")
	}
	if stats.AvgTickDuration < 100*time.Microsecond {
		t.Errorf("tick duration should still include the untracked phase, got %v", stats.AvgTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)

	tickWith(pc, map[string]time.Duration{systems.PhasePrey: 5 * time.Millisecond})
	for range 3 {
		tickWith(pc, map[string]time.Duration{systems.PhasePrey: 0})
	}

	// The slow first tick has rolled out of the window.
	if got := pc.Stats().MaxTickDuration; got >= 5*time.Millisecond {
		t.Errorf("expected slow tick to be evicted, max=%v", got)
	}
}

func TestPerfCollector_MinMaxP95(t *testing.T) {
	pc := NewPerfCollector(20)
	for i := range 10 {
		tickWith(pc, map[string]time.Duration{systems.PhasePrey: time.Duration(i) * 200 * time.Microsecond})
	}

	s := pc.Stats()
	if !(s.MinTickDuration <= s.AvgTickDuration && s.AvgTickDuration <= s.P95TickDuration && s.P95TickDuration <= s.MaxTickDuration) {
		t.Errorf("expected min <= avg <= p95 <= max, got %v %v %v %v",
			s.MinTickDuration, s.AvgTickDuration, s.P95TickDuration, s.MaxTickDuration)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Error("expected zero timing for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70], got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		P95TickDuration: 400 * time.Microsecond,
		PhasePct: map[string]float64{
			systems.PhasePrey:         40,
			systems.PhaseReproduction: 5,
			PhaseTelemetry:            1,
		},
	}

	row := s.ToCSV(1200)
	if row.WindowEnd != 1200 || row.AvgTickUS != 250 || row.P95TickUS != 400 {
		t.Errorf("row header fields = %d/%d/%d", row.WindowEnd, row.AvgTickUS, row.P95TickUS)
	}
	if row.PreyPct != 40 || row.ReproductionPct != 5 || row.TelemetryPct != 1 || row.CullPct != 0 {
		t.Errorf("phase pct = %+v", row)
	}
}
