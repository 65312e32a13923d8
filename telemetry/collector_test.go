package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/ecosystem"
)

func TestEventsFromTick(t *testing.T) {
	events := EventsFromTick(ecosystem.TickStats{
		Tick:           7,
		PreyBirths:     2,
		PredatorDeaths: 1,
		Kills:          1,
	})

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %v", len(events), events)
	}
	for _, e := range events {
		if e.Tick != 7 {
			t.Errorf("event %s stamped tick %d", e.Type, e.Tick)
		}
	}
	if events[0].Type != EventBirth || events[0].Kind != components.KindPrey || events[0].Count != 2 {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Type != EventDeath || events[1].Kind != components.KindPredator {
		t.Errorf("second event = %+v", events[1])
	}
	if events[2].Type != EventPredation {
		t.Errorf("third event = %+v", events[2])
	}
}

func TestEventType_String(t *testing.T) {
	if EventPlantSpawn.String() != "plant_spawn" {
		t.Errorf("EventPlantSpawn = %q", EventPlantSpawn.String())
	}
	if EventType(200).String() != "unknown" {
		t.Error("out of range event type should be unknown")
	}
}

func TestCollector_ShouldFlushUsesSimTime(t *testing.T) {
	c := NewCollector(10)

	tests := []struct {
		simTime float64
		want    bool
	}{
		{0, false},
		{9.99, false},
		{10, true},
		{25, true},
	}
	for _, tt := range tests {
		if got := c.ShouldFlush(tt.simTime); got != tt.want {
			t.Errorf("ShouldFlush(%v) = %v, want %v", tt.simTime, got, tt.want)
		}
	}

	c.Flush(600, 10, Populations{})
	if c.ShouldFlush(15) {
		t.Error("window should restart at the flush time")
	}
	if !c.ShouldFlush(20) {
		t.Error("second window should end 10s after the first")
	}
}

func TestCollector_NonPositiveWindowDefaults(t *testing.T) {
	if got := NewCollector(0).WindowDurationSec(); got != 10 {
		t.Errorf("window = %v, want 10", got)
	}
}

func TestCollector_Flush(t *testing.T) {
	c := NewCollector(10)
	c.RecordTick(ecosystem.TickStats{Tick: 1, PreyBirths: 1, Grazes: 3, Flees: 2, Hunts: 3})
	c.RecordTick(ecosystem.TickStats{Tick: 2, PreyDeaths: 2, PredatorDeaths: 1, Kills: 1, PlantsSpawned: 1})

	stats := c.Flush(2, 10.5, Populations{
		Prey:           4,
		Predators:      1,
		Plants:         12,
		PlantsConsumed: 3,
		PreyEnergies:   []float64{20, 40, 60, 80},
		PredEnergies:   []float64{55},
	})

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 2 || stats.SimTimeSec != 10.5 {
		t.Errorf("window bounds = %d..%d @ %v", stats.WindowStartTick, stats.WindowEndTick, stats.SimTimeSec)
	}
	if stats.PreyCount != 4 || stats.PredCount != 1 || stats.PlantCount != 12 || stats.PlantsConsumed != 3 {
		t.Errorf("populations = %+v", stats)
	}
	if stats.PreyBirths != 1 || stats.PreyDeaths != 2 || stats.PredDeaths != 1 || stats.Kills != 1 {
		t.Errorf("events = %+v", stats)
	}
	// one prey starved plus one predator
	if stats.Starvations != 2 {
		t.Errorf("starvations = %d, want 2", stats.Starvations)
	}
	if stats.Grazes != 3 || stats.Flees != 2 || stats.Hunts != 3 || stats.PlantsSpawned != 1 {
		t.Errorf("behavior = %+v", stats)
	}
	if math.Abs(stats.KillRate-0.25) > 1e-9 {
		t.Errorf("kill rate = %v, want 0.25", stats.KillRate)
	}
	if math.Abs(stats.PreyEnergyMean-50) > 1e-9 || math.Abs(stats.PreyEnergyP50-50) > 1e-9 {
		t.Errorf("prey energy mean/p50 = %v/%v", stats.PreyEnergyMean, stats.PreyEnergyP50)
	}
	if stats.PredEnergyMean != 55 || stats.PredEnergyStd != 0 {
		t.Errorf("pred energy = %v ± %v", stats.PredEnergyMean, stats.PredEnergyStd)
	}

	next := c.Flush(3, 20.5, Populations{})
	if next.WindowStartTick != 2 {
		t.Errorf("next window starts at %d, want 2", next.WindowStartTick)
	}
	if next.PreyBirths != 0 || next.Kills != 0 || next.Grazes != 0 || next.KillRate != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestSamplePopulations(t *testing.T) {
	w, err := ecosystem.NewWorld(3, 2, 4, 400, 400, ecosystem.WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}

	p := SamplePopulations(w)
	if p.Prey != 3 || p.Predators != 2 || p.Plants != 4 || p.PlantsConsumed != 0 {
		t.Errorf("populations = %+v", p)
	}
	if len(p.PreyEnergies) != 3 || len(p.PredEnergies) != 2 {
		t.Errorf("energies = %d prey, %d predators", len(p.PreyEnergies), len(p.PredEnergies))
	}
	for _, e := range p.PreyEnergies {
		if e != float64(components.MaxEnergy) {
			t.Errorf("fresh prey energy = %v", e)
		}
	}
}
