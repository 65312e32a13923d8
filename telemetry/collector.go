package telemetry

import (
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/ecosystem"
)

// Collector accumulates events within windows of simulated time and produces WindowStats.
// Paused time (dt = 0) does not advance a window.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int64
	windowStartSec  float64

	// Event counters for current window
	preyBirths    int
	predBirths    int
	preyDeaths    int
	predDeaths    int
	kills         int
	grazes        int
	flees         int
	hunts         int
	plantsSpawned int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record adds an event to the current window.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventBirth:
		if e.Kind == components.KindPrey {
			c.preyBirths += e.Count
		} else {
			c.predBirths += e.Count
		}
	case EventDeath:
		if e.Kind == components.KindPrey {
			c.preyDeaths += e.Count
		} else {
			c.predDeaths += e.Count
		}
	case EventPredation:
		c.kills += e.Count
	case EventGraze:
		c.grazes += e.Count
	case EventFlee:
		c.flees += e.Count
	case EventHunt:
		c.hunts += e.Count
	case EventPlantSpawn:
		c.plantsSpawned += e.Count
	}
}

// RecordTick records every event of one ecosystem update.
func (c *Collector) RecordTick(s ecosystem.TickStats) {
	for _, e := range EventsFromTick(s) {
		c.Record(e)
	}
}

// ShouldFlush returns true once the window has covered its duration of simulated time.
func (c *Collector) ShouldFlush(simTimeSec float64) bool {
	return simTimeSec-c.windowStartSec >= c.windowDurationSec
}

// Populations is the state sampled at the end of a window.
type Populations struct {
	Prey           int
	Predators      int
	Plants         int // available
	PlantsConsumed int // cumulative
	PreyEnergies   []float64
	PredEnergies   []float64
}

// SamplePopulations reads window-end state from w.
func SamplePopulations(w *ecosystem.World) Populations {
	return Populations{
		Prey:           w.PreyCount(),
		Predators:      w.PredatorCount(),
		Plants:         w.PlantCount(),
		PlantsConsumed: w.PlantsConsumed(),
		PreyEnergies:   w.Energies(components.KindPrey),
		PredEnergies:   w.Energies(components.KindPredator),
	}
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, simTimeSec float64, pop Populations) WindowStats {
	// Hunt success: kills over every tick a predator spent chasing or striking
	var killRate float64
	if attempts := c.hunts + c.kills; attempts > 0 {
		killRate = float64(c.kills) / float64(attempts)
	}

	preyMean, preyStd, preyP10, preyP50, preyP90 := ComputeEnergyStats(pop.PreyEnergies)
	predMean, predStd, predP10, predP50, predP90 := ComputeEnergyStats(pop.PredEnergies)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTimeSec,

		PreyCount:      pop.Prey,
		PredCount:      pop.Predators,
		PlantCount:     pop.Plants,
		PlantsConsumed: pop.PlantsConsumed,

		PreyBirths:  c.preyBirths,
		PredBirths:  c.predBirths,
		PreyDeaths:  c.preyDeaths,
		PredDeaths:  c.predDeaths,
		Kills:       c.kills,
		Starvations: c.preyDeaths - c.kills + c.predDeaths,

		Grazes:        c.grazes,
		Flees:         c.flees,
		Hunts:         c.hunts,
		PlantsSpawned: c.plantsSpawned,
		KillRate:      killRate,

		PreyEnergyMean: preyMean,
		PreyEnergyStd:  preyStd,
		PreyEnergyP10:  preyP10,
		PreyEnergyP50:  preyP50,
		PreyEnergyP90:  preyP90,

		PredEnergyMean: predMean,
		PredEnergyStd:  predStd,
		PredEnergyP10:  predP10,
		PredEnergyP50:  predP50,
		PredEnergyP90:  predP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowStartSec = simTimeSec
	c.preyBirths = 0
	c.predBirths = 0
	c.preyDeaths = 0
	c.predDeaths = 0
	c.kills = 0
	c.grazes = 0
	c.flees = 0
	c.hunts = 0
	c.plantsSpawned = 0

	return stats
}

// WindowDurationSec returns the simulated seconds per window.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}
