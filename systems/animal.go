// Package systems implements the per-species animal behaviour.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// Animal is the capability set the ecosystem drives for each species.
type Animal interface {
	Kind() components.Kind
	Profile() Profile
	Spawn(x, y float32) ecs.Entity
	// Behave runs one decision step for e and returns the action taken.
	Behave(e ecs.Entity, prey, predators, plants []ecs.Entity) Action
	Move(e ecs.Entity, dt float32)
	Metabolize(e ecs.Entity, dt float32)
	CanReproduce(e ecs.Entity) bool
	ReproductionThreshold() float32
}

// animal holds what both species share: coefficients, arena and mappers.
type animal struct {
	profile Profile
	bounds  Bounds
	rng     *rand.Rand
	s       *Stores
}

func (a *animal) Kind() components.Kind {
	return a.profile.Kind
}

func (a *animal) Profile() Profile {
	return a.profile
}

func (a *animal) ReproductionThreshold() float32 {
	return a.profile.ReproductionThreshold
}

// CanReproduce requires energy above the threshold and the cooldown elapsed, both strictly.
func (a *animal) CanReproduce(e ecs.Entity) bool {
	en := a.s.Energy.Get(e)
	return en.Alive &&
		en.Value > a.profile.ReproductionThreshold &&
		en.SinceReproduction > a.profile.ReproductionCooldown
}

// initialVelocity draws each axis from {-50, -49.5, ..., 49.5}.
func (a *animal) initialVelocity() components.Velocity {
	return components.Velocity{
		X: float32(a.rng.Intn(200)-100) * 0.5,
		Y: float32(a.rng.Intn(200)-100) * 0.5,
	}
}

var (
	_ Animal = (*PreySystem)(nil)
	_ Animal = (*PredatorSystem)(nil)
)
