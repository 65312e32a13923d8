package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// PredatorSystem runs predator behaviour: hunt the nearest prey, else wander.
type PredatorSystem struct {
	animal
	spawner *ecs.Map4[components.Position, components.Velocity, components.Energy, components.PredatorMind]
}

// NewPredatorSystem creates the predator system for one world.
func NewPredatorSystem(s *Stores, profile Profile, bounds Bounds, rng *rand.Rand) *PredatorSystem {
	return &PredatorSystem{
		animal:  animal{profile: profile, bounds: bounds, rng: rng, s: s},
		spawner: ecs.NewMap4[components.Position, components.Velocity, components.Energy, components.PredatorMind](s.World),
	}
}

// Spawn creates a predator at (x, y) with full energy and a random velocity.
func (p *PredatorSystem) Spawn(x, y float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := p.initialVelocity()
	energy := components.NewEnergy()
	mind := components.PredatorMind{}
	return p.spawner.NewEntity(&pos, &vel, &energy, &mind)
}

// Behave re-detects every tick, so the cached target never outlives one decision.
func (p *PredatorSystem) Behave(e ecs.Entity, prey, predators, plants []ecs.Entity) Action {
	if !p.s.AnimalAlive(e) {
		return ActionIdle
	}
	mind := p.s.PredMind.Get(e)
	pos := *p.s.Pos.Get(e)

	mind.Target = p.nearest(pos, p.profile.DetectRadius, prey, p.s.AnimalAlive)
	if mind.Target.IsZero() {
		p.wander(e)
		return ActionWander
	}

	p.steer(e, *p.s.Pos.Get(mind.Target), false)
	if p.strike(e, mind) {
		return ActionKill
	}
	return ActionHunt
}
