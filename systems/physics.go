package systems

import "github.com/mlange-42/ark/ecs"

// Bounds represents the arena size.
type Bounds struct {
	Width, Height float32
}

// Move integrates position and reflects off the species margin.
func (a *animal) Move(e ecs.Entity, dt float32) {
	pos := a.s.Pos.Get(e)
	vel := a.s.Vel.Get(e)

	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	m := a.profile.Margin
	pos.X, vel.X = bounce(pos.X, vel.X, m, a.bounds.Width-m)
	pos.Y, vel.Y = bounce(pos.Y, vel.Y, m, a.bounds.Height-m)
}

// bounce reverses v and clamps p when p leaves [lo, hi].
func bounce(p, v, lo, hi float32) (float32, float32) {
	if p < lo || p > hi {
		return clampFloat(p, lo, hi), -v
	}
	return p, v
}
