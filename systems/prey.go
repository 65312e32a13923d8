package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// PreySystem runs prey behaviour: flee first, then eat, then wander.
type PreySystem struct {
	animal
	spawner *ecs.Map4[components.Position, components.Velocity, components.Energy, components.PreyMind]
}

// NewPreySystem creates the prey system for one world.
func NewPreySystem(s *Stores, profile Profile, bounds Bounds, rng *rand.Rand) *PreySystem {
	return &PreySystem{
		animal:  animal{profile: profile, bounds: bounds, rng: rng, s: s},
		spawner: ecs.NewMap4[components.Position, components.Velocity, components.Energy, components.PreyMind](s.World),
	}
}

// Spawn creates a prey at (x, y) with full energy and a random velocity.
func (p *PreySystem) Spawn(x, y float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := p.initialVelocity()
	energy := components.NewEnergy()
	mind := components.PreyMind{}
	return p.spawner.NewEntity(&pos, &vel, &energy, &mind)
}

// Behave picks exactly one branch per tick in strict priority order.
func (p *PreySystem) Behave(e ecs.Entity, prey, predators, plants []ecs.Entity) Action {
	if !p.s.AnimalAlive(e) {
		return ActionIdle
	}
	mind := p.s.PreyMind.Get(e)
	pos := *p.s.Pos.Get(e)

	mind.Threat = p.nearest(pos, p.profile.ThreatRadius, predators, p.s.AnimalAlive)
	if !mind.Threat.IsZero() {
		p.steer(e, *p.s.Pos.Get(mind.Threat), true)
		return ActionFlee
	}

	if !mind.Food.IsZero() {
		if p.s.PlantAvailable(mind.Food) {
			p.steer(e, *p.s.Pos.Get(mind.Food), false)
			if p.graze(e, mind) {
				return ActionGraze
			}
			return ActionSeek
		}
		// Eaten by someone else since we locked on.
		mind.Food = ecs.Entity{}
	}

	p.wander(e)
	mind.Food = p.nearest(pos, p.profile.DetectRadius, plants, p.s.PlantAvailable)
	return ActionWander
}
