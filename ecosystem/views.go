package ecosystem

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// AnimalView is a read-only copy of one animal's state.
type AnimalView struct {
	Entity ecs.Entity
	Kind   components.Kind
	X, Y   float32
	VX, VY float32
	Energy float32
	Alive  bool
	Age    float32
}

// FacingLeft reports whether the animal should be drawn mirrored.
func (v AnimalView) FacingLeft() bool {
	return v.VX < 0
}

// PlantView is a read-only copy of one plant's state.
type PlantView struct {
	Entity    ecs.Entity
	X, Y      float32
	Available bool
}

// Prey returns a snapshot of the prey collection in order.
func (w *World) Prey() []AnimalView {
	return w.animalViews(components.KindPrey, w.preyList)
}

// Predators returns a snapshot of the predator collection in order.
func (w *World) Predators() []AnimalView {
	return w.animalViews(components.KindPredator, w.predList)
}

func (w *World) animalViews(kind components.Kind, list []ecs.Entity) []AnimalView {
	out := make([]AnimalView, len(list))
	for i, e := range list {
		out[i] = w.view(kind, e)
	}
	return out
}

func (w *World) view(kind components.Kind, e ecs.Entity) AnimalView {
	pos := w.stores.Pos.Get(e)
	vel := w.stores.Vel.Get(e)
	en := w.stores.Energy.Get(e)
	return AnimalView{
		Entity: e,
		Kind:   kind,
		X:      pos.X,
		Y:      pos.Y,
		VX:     vel.X,
		VY:     vel.Y,
		Energy: en.Value,
		Alive:  en.Alive,
		Age:    en.Age,
	}
}

// Animal returns the current state of e. It reports false once e has been culled.
func (w *World) Animal(e ecs.Entity) (AnimalView, bool) {
	if e.IsZero() || !w.ecs.Alive(e) || !w.stores.Energy.Has(e) {
		return AnimalView{}, false
	}
	kind := components.KindPrey
	if w.stores.PredMind.Has(e) {
		kind = components.KindPredator
	}
	return w.view(kind, e), true
}

// Plants returns a snapshot of every plant, eaten or not, in creation order.
func (w *World) Plants() []PlantView {
	out := make([]PlantView, len(w.plantList))
	for i, e := range w.plantList {
		pos := w.stores.Pos.Get(e)
		out[i] = PlantView{
			Entity:    e,
			X:         pos.X,
			Y:         pos.Y,
			Available: w.stores.Plant.Get(e).IsAvailable(),
		}
	}
	return out
}

// PreyCount returns the number of living prey.
func (w *World) PreyCount() int {
	return w.countAlive(w.preyList)
}

// PredatorCount returns the number of living predators.
func (w *World) PredatorCount() int {
	return w.countAlive(w.predList)
}

func (w *World) countAlive(list []ecs.Entity) int {
	n := 0
	for _, e := range list {
		if w.stores.Energy.Get(e).Alive {
			n++
		}
	}
	return n
}

// PlantCount returns the number of available plants.
func (w *World) PlantCount() int {
	n := 0
	for _, e := range w.plantList {
		if w.stores.Plant.Get(e).IsAvailable() {
			n++
		}
	}
	return n
}

// TotalPlants returns the number of plants ever created, eaten ones included.
func (w *World) TotalPlants() int {
	return len(w.plantList)
}

// PlantsCreated returns the number of plants spawned since construction.
func (w *World) PlantsCreated() int {
	return w.created
}

// PlantsConsumed returns the number of distinct plants seen eaten. It never decreases.
func (w *World) PlantsConsumed() int {
	return w.consumed
}

// Energies returns the energy of every living animal of kind, for statistics.
func (w *World) Energies(kind components.Kind) []float64 {
	list := w.preyList
	if kind == components.KindPredator {
		list = w.predList
	}
	out := make([]float64, 0, len(list))
	for _, e := range list {
		if en := w.stores.Energy.Get(e); en.Alive {
			out = append(out, float64(en.Value))
		}
	}
	return out
}
