package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// Action is the branch an animal took during Behave.
type Action uint8

const (
	ActionIdle   Action = iota // dead, skipped
	ActionWander               // random walk, possibly acquiring a target for next tick
	ActionFlee                 // prey running from a predator
	ActionSeek                 // prey heading to a cached plant
	ActionGraze                // prey ate a plant this tick
	ActionHunt                 // predator chasing prey
	ActionKill                 // predator caught its prey this tick
)

var actionNames = [...]string{"idle", "wander", "flee", "seek", "graze", "hunt", "kill"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// compass holds the eight wander directions as unit-free multipliers of speed.
// Diagonals are not normalized.
var compass = [8][2]float32{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {-1, -1}, {-1, 1}, {1, -1},
}

// wander occasionally snaps velocity to a random compass direction.
func (a *animal) wander(e ecs.Entity) {
	if a.rng.Intn(100) >= a.profile.WanderChance {
		return
	}
	d := compass[a.rng.Intn(len(compass))]
	vel := a.s.Vel.Get(e)
	vel.X = d[0] * a.profile.Speed
	vel.Y = d[1] * a.profile.Speed
}

// steer points velocity at target (or directly away) at full speed.
// Targets closer than 0.01 leave velocity unchanged.
func (a *animal) steer(e ecs.Entity, target components.Position, away bool) {
	pos := a.s.Pos.Get(e)
	dx := target.X - pos.X
	dy := target.Y - pos.Y
	dist := fastSqrt(dx*dx + dy*dy)
	if dist <= 0.01 {
		return
	}
	scale := a.profile.Speed / dist
	if away {
		scale = -scale
	}
	vel := a.s.Vel.Get(e)
	vel.X = dx * scale
	vel.Y = dy * scale
}
