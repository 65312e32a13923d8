package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// graze eats the cached plant if it is within reach.
func (p *PreySystem) graze(e ecs.Entity, mind *components.PreyMind) bool {
	if !p.s.PlantAvailable(mind.Food) {
		mind.Food = ecs.Entity{}
		return false
	}
	if !p.withinReach(e, mind.Food) {
		return false
	}
	p.s.Plant.Get(mind.Food).Consume()
	p.s.Energy.Get(e).Gain(p.profile.EnergyGain)
	mind.Food = ecs.Entity{}
	return true
}

// strike kills the cached prey if it is within reach.
func (p *PredatorSystem) strike(e ecs.Entity, mind *components.PredatorMind) bool {
	if !p.s.AnimalAlive(mind.Target) {
		mind.Target = ecs.Entity{}
		return false
	}
	if !p.withinReach(e, mind.Target) {
		return false
	}
	p.s.Energy.Get(mind.Target).Lose(p.profile.KillDamage)
	p.s.Energy.Get(e).Gain(p.profile.EnergyGain)
	mind.Target = ecs.Entity{}
	return true
}
