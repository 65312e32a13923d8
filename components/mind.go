package components

import "github.com/mlange-42/ark/ecs"

// PreyMind caches the prey's current threat and food target.
// Handles are non-owning and must be re-validated before use; the zero entity means none.
type PreyMind struct {
	Threat ecs.Entity
	Food   ecs.Entity
}

// PredatorMind caches the predator's current quarry.
type PredatorMind struct {
	Target ecs.Entity
}
