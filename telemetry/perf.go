package telemetry

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/pthm-cable/ecosim/systems"
)

// PhaseTelemetry times window flushing; the other phases come from the ecosystem update.
const PhaseTelemetry = "telemetry"

// Phases lists every timed phase in execution order.
var Phases = []string{
	systems.PhasePrey,
	systems.PhasePredators,
	systems.PhasePlants,
	systems.PhaseTally,
	systems.PhaseCull,
	systems.PhaseReproduction,
	PhaseTelemetry,
}

// phaseIndex maps a phase name to its slot in perfSample.phases.
var phaseIndex = func() map[string]int {
	m := make(map[string]int, len(Phases))
	for i, p := range Phases {
		m[p] = i
	}
	return m
}()

// perfSample is the timing of one tick, phases indexed like Phases.
type perfSample struct {
	tick   time.Duration
	phases []time.Duration
}

// PerfCollector keeps wall-clock timings of the last windowSize ticks.
// It implements ecosystem.PhaseTimer. Phases not listed in Phases are ignored.
type PerfCollector struct {
	ring  []perfSample
	next  int
	count int

	current    []time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into Phases, -1 between phases

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks (60 if < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	ring := make([]perfSample, windowSize)
	for i := range ring {
		ring[i].phases = make([]time.Duration, len(Phases))
	}
	return &PerfCollector{
		ring:    ring,
		current: make([]time.Duration, len(Phases)),
		phase:   -1,
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	clear(p.current)
	p.phase = -1
}

// StartPhase closes the running phase and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	if i, ok := phaseIndex[phase]; ok {
		p.phase = i
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = -1
}

// EndTick closes the last phase and stores the tick in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)

	s := &p.ring[p.next]
	s.tick = now.Sub(p.tickStart)
	copy(s.phases, p.current)

	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the collector window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick, 0..100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes the summary over the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	ticks := make([]float64, 0, p.count)
	sums := make([]time.Duration, len(Phases))
	var total time.Duration
	for _, sample := range p.ring[:p.count] {
		total += sample.tick
		ticks = append(ticks, float64(sample.tick))
		for i, d := range sample.phases {
			sums[i] += d
		}
	}
	slices.Sort(ticks)

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	s.MinTickDuration = time.Duration(ticks[0])
	s.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	s.P95TickDuration = time.Duration(Percentile(ticks, 0.95))

	for i, phase := range Phases {
		if sums[i] == 0 {
			continue
		}
		avg := sums[i] / n
		s.PhaseAvg[phase] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[phase] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

func (s PerfStats) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return attrs
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(s.attrs()...)
}

// LogStats logs the perf window using slog.
func (s PerfStats) LogStats() {
	slog.LogAttrs(context.Background(), slog.LevelInfo, "perf", s.attrs()...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd       int64   `csv:"window_end"`
	AvgTickUS       int64   `csv:"avg_tick_us"`
	MinTickUS       int64   `csv:"min_tick_us"`
	MaxTickUS       int64   `csv:"max_tick_us"`
	P95TickUS       int64   `csv:"p95_tick_us"`
	TicksPerSec     float64 `csv:"ticks_per_sec"`
	FPS             float64 `csv:"fps"`
	PreyPct         float64 `csv:"prey_pct"`
	PredatorsPct    float64 `csv:"predators_pct"`
	PlantsPct       float64 `csv:"plants_pct"`
	TallyPct        float64 `csv:"tally_pct"`
	CullPct         float64 `csv:"cull_pct"`
	ReproductionPct float64 `csv:"reproduction_pct"`
	TelemetryPct    float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		AvgTickUS:       s.AvgTickDuration.Microseconds(),
		MinTickUS:       s.MinTickDuration.Microseconds(),
		MaxTickUS:       s.MaxTickDuration.Microseconds(),
		P95TickUS:       s.P95TickDuration.Microseconds(),
		TicksPerSec:     s.TicksPerSecond,
		FPS:             s.FPS,
		PreyPct:         s.PhasePct[systems.PhasePrey],
		PredatorsPct:    s.PhasePct[systems.PhasePredators],
		PlantsPct:       s.PhasePct[systems.PhasePlants],
		TallyPct:        s.PhasePct[systems.PhaseTally],
		CullPct:         s.PhasePct[systems.PhaseCull],
		ReproductionPct: s.PhasePct[systems.PhaseReproduction],
		TelemetryPct:    s.PhasePct[PhaseTelemetry],
	}
}
