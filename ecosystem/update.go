package ecosystem

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/systems"
)

// TickStats counts what happened during one update.
type TickStats struct {
	Tick           int64
	PreyBirths     int
	PredatorBirths int
	PreyDeaths     int // culled, any cause
	PredatorDeaths int
	Kills          int // prey killed by predators
	Grazes         int // plants eaten
	Flees          int
	Hunts          int
	PlantsSpawned  int
}

// Starvations returns deaths not caused by predation.
func (s TickStats) Starvations() int {
	return s.PreyDeaths - s.Kills + s.PredatorDeaths
}

func (s *TickStats) record(a systems.Action) {
	switch a {
	case systems.ActionFlee:
		s.Flees++
	case systems.ActionHunt:
		s.Hunts++
	case systems.ActionGraze:
		s.Grazes++
	case systems.ActionKill:
		s.Kills++
	}
}

// Update advances the simulation by dt seconds. Negative or NaN dt is treated as zero.
//
// Order: prey act, predators act, a plant may regrow, newly eaten plants are tallied,
// dead predators then dead prey are removed, and finally predators then prey roll for
// offspring. Offspring join their collection at the end and first act next tick.
func (w *World) Update(dt float32) {
	if dt < 0 || math.IsNaN(float64(dt)) {
		dt = 0
	}
	w.last = TickStats{Tick: w.tick + 1}

	w.startPhase(systems.PhasePrey)
	w.stepAnimals(w.prey, w.preyList, dt)

	w.startPhase(systems.PhasePredators)
	w.stepAnimals(w.pred, w.predList, dt)

	w.startPhase(systems.PhasePlants)
	w.regrow(dt)

	w.startPhase(systems.PhaseTally)
	w.tally()

	w.startPhase(systems.PhaseCull)
	w.predList = w.cull(w.predList, &w.last.PredatorDeaths)
	w.preyList = w.cull(w.preyList, &w.last.PreyDeaths)

	w.startPhase(systems.PhaseReproduction)
	w.predList = w.reproduce(w.pred, w.predList, &w.last.PredatorBirths)
	w.preyList = w.reproduce(w.prey, w.preyList, &w.last.PreyBirths)

	w.tick++
	w.elapsed += float64(dt)
}

func (w *World) startPhase(phase string) {
	if w.timer != nil {
		w.timer.StartPhase(phase)
	}
}

// stepAnimals runs behave, move, metabolize and the reproduction clock for each animal in list.
func (w *World) stepAnimals(a systems.Animal, list []ecs.Entity, dt float32) {
	for _, e := range list {
		act := a.Behave(e, w.preyList, w.predList, w.plantList)
		if act == systems.ActionIdle {
			continue
		}
		w.last.record(act)
		a.Move(e, dt)
		a.Metabolize(e, dt)
		w.stores.Energy.Get(e).AdvanceReproductionTimer(dt)
	}
}

// regrow adds one plant each time the timer reaches the interval, while under the cap.
func (w *World) regrow(dt float32) {
	w.regrowTimer += dt
	if w.regrowTimer < w.rules.RegrowInterval {
		return
	}
	w.regrowTimer = 0
	if len(w.plantList) < w.rules.Max {
		x, y := w.randomPoint(w.rules.RegrowMargin)
		w.SpawnPlant(x, y)
		w.last.PlantsSpawned++
	}
}

// tally counts each eaten plant once.
func (w *World) tally() {
	for _, e := range w.plantList {
		p := w.stores.Plant.Get(e)
		if !p.Available && !p.Tallied {
			p.Tallied = true
			w.consumed++
		}
	}
}

// cull filters dead animals out of list in place and removes them from the ECS world.
func (w *World) cull(list []ecs.Entity, deaths *int) []ecs.Entity {
	w.dead = w.dead[:0]
	survivors := list[:0]
	for _, e := range list {
		if w.stores.Energy.Get(e).Alive {
			survivors = append(survivors, e)
		} else {
			w.dead = append(w.dead, e)
		}
	}

	// Removal after the scan; handles held elsewhere fail the generation check from now on.
	for _, e := range w.dead {
		w.ecs.RemoveEntity(e)
	}
	*deaths += len(w.dead)
	clear(list[len(survivors):])
	return survivors
}

// reproduce rolls a birth for every eligible animal and appends the offspring after the scan.
func (w *World) reproduce(a systems.Animal, list []ecs.Entity, births *int) []ecs.Entity {
	w.staged = w.staged[:0]
	for _, e := range list {
		if !a.CanReproduce(e) || w.rng.Intn(w.trial.Range) <= w.trial.RollAbove {
			continue
		}
		en := w.stores.Energy.Get(e)
		en.Lose(a.ReproductionThreshold())
		en.ResetReproductionTimer()
		w.staged = append(w.staged, *w.stores.Pos.Get(e))
	}

	for _, p := range w.staged {
		list = append(list, a.Spawn(p.X, p.Y))
	}
	*births += len(w.staged)
	return list
}
