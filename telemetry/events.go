// Package telemetry provides ecosystem health tracking, bookmarking and CSV output.
package telemetry

import (
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/ecosystem"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventPredation
	EventGraze
	EventFlee
	EventHunt
	EventPlantSpawn
)

var eventNames = [...]string{"birth", "death", "predation", "graze", "flee", "hunt", "plant_spawn"}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a batch of identical occurrences within one tick.
type Event struct {
	Type  EventType
	Tick  int64
	Kind  components.Kind // meaningful for births and deaths
	Count int
}

// EventsFromTick expands a tick's counters into events, skipping zero counts.
func EventsFromTick(s ecosystem.TickStats) []Event {
	all := [...]Event{
		{Type: EventBirth, Kind: components.KindPrey, Count: s.PreyBirths},
		{Type: EventBirth, Kind: components.KindPredator, Count: s.PredatorBirths},
		{Type: EventDeath, Kind: components.KindPrey, Count: s.PreyDeaths},
		{Type: EventDeath, Kind: components.KindPredator, Count: s.PredatorDeaths},
		{Type: EventPredation, Kind: components.KindPredator, Count: s.Kills},
		{Type: EventGraze, Kind: components.KindPrey, Count: s.Grazes},
		{Type: EventFlee, Kind: components.KindPrey, Count: s.Flees},
		{Type: EventHunt, Kind: components.KindPredator, Count: s.Hunts},
		{Type: EventPlantSpawn, Count: s.PlantsSpawned},
	}

	var out []Event
	for _, e := range all {
		if e.Count == 0 {
			continue
		}
		e.Tick = s.Tick
		out = append(out, e)
	}
	return out
}
