package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// nearest returns the valid candidate strictly closest to from and strictly inside radius.
// Equal distances keep the earlier candidate. Returns the zero entity when none qualifies.
func (a *animal) nearest(from components.Position, radius float32, candidates []ecs.Entity, valid func(ecs.Entity) bool) ecs.Entity {
	var best ecs.Entity
	bestSq := radius * radius
	for _, c := range candidates {
		if !valid(c) {
			continue
		}
		d := from.DistSq(*a.s.Pos.Get(c))
		if d < bestSq {
			bestSq = d
			best = c
		}
	}
	return best
}

// withinReach reports whether target is at most the species reach away from e.
func (a *animal) withinReach(e, target ecs.Entity) bool {
	r := a.profile.ReachRadius
	return a.s.Pos.Get(e).DistSq(*a.s.Pos.Get(target)) <= r*r
}
