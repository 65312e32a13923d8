package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// Stores bundles the component mappers shared by every system of one world.
type Stores struct {
	World    *ecs.World
	Pos      *ecs.Map[components.Position]
	Vel      *ecs.Map[components.Velocity]
	Energy   *ecs.Map[components.Energy]
	Plant    *ecs.Map[components.Plant]
	PreyMind *ecs.Map[components.PreyMind]
	PredMind *ecs.Map[components.PredatorMind]
}

// NewStores creates mappers over w.
func NewStores(w *ecs.World) *Stores {
	return &Stores{
		World:    w,
		Pos:      ecs.NewMap[components.Position](w),
		Vel:      ecs.NewMap[components.Velocity](w),
		Energy:   ecs.NewMap[components.Energy](w),
		Plant:    ecs.NewMap[components.Plant](w),
		PreyMind: ecs.NewMap[components.PreyMind](w),
		PredMind: ecs.NewMap[components.PredatorMind](w),
	}
}

// AnimalAlive reports whether e still refers to a living animal.
// Removed entities fail the generation check, so stale handles are safe to pass.
func (s *Stores) AnimalAlive(e ecs.Entity) bool {
	if e.IsZero() || !s.World.Alive(e) || !s.Energy.Has(e) {
		return false
	}
	return s.Energy.Get(e).Alive
}

// PlantAvailable reports whether e still refers to an uneaten plant.
func (s *Stores) PlantAvailable(e ecs.Entity) bool {
	if e.IsZero() || !s.World.Alive(e) || !s.Plant.Has(e) {
		return false
	}
	return s.Plant.Get(e).IsAvailable()
}
