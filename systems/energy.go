package systems

import "github.com/mlange-42/ark/ecs"

// Metabolize drains the base cost, then a cost proportional to current speed.
func (a *animal) Metabolize(e ecs.Entity, dt float32) {
	en := a.s.Energy.Get(e)
	vel := a.s.Vel.Get(e)

	en.Lose(a.profile.BaseDrain * dt)
	en.Lose(vel.Speed() * a.profile.MoveDrain * dt)
}
