package game

import (
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/ecosystem"
)

// pickAnimal returns the index of the living animal closest to (x, y) whose sprite
// covers the point, or -1.
func pickAnimal(animals []ecosystem.AnimalView, x, y float32, radius func(components.Kind) float32) int {
	best := -1
	var bestSq float32
	for i, a := range animals {
		if !a.Alive {
			continue
		}
		r := radius(a.Kind)
		dx, dy := a.X-x, a.Y-y
		d := dx*dx + dy*dy
		if d > r*r {
			continue
		}
		if best < 0 || d < bestSq {
			best, bestSq = i, d
		}
	}
	return best
}

// spriteRadius returns the pick radius for an animal kind.
func spriteRadius(kind components.Kind) float32 {
	v := config.Cfg().Visual
	if kind == components.KindPredator {
		return v.PredatorSize / 2
	}
	return v.PreySize / 2
}

// handleClick selects the animal at world point (x, y), or clears the selection.
func (g *Game) handleClick(x, y float32) {
	animals := append(g.world.Prey(), g.world.Predators()...)
	i := pickAnimal(animals, x, y, spriteRadius)
	g.hasSelected = i >= 0
	if g.hasSelected {
		g.selected = animals[i].Entity
	}
}

// selection returns the selected animal while it is still alive.
func (g *Game) selection() (ecosystem.AnimalView, bool) {
	if !g.hasSelected {
		return ecosystem.AnimalView{}, false
	}
	v, ok := g.world.Animal(g.selected)
	if !ok || !v.Alive {
		g.hasSelected = false
		return ecosystem.AnimalView{}, false
	}
	return v, true
}
