// Package components defines ECS components for the simulation.
package components

// MaxEnergy is the energy ceiling shared by every animal.
const MaxEnergy = 100

// Kind distinguishes the two animal species.
type Kind uint8

const (
	KindPrey Kind = iota
	KindPredator
)

func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	}
	return "unknown"
}

// Energy tracks an animal's metabolic state.
// Value stays in [0, MaxEnergy]; Value == 0 implies !Alive.
type Energy struct {
	Value             float32
	Alive             bool
	Age               float32 // seconds alive
	SinceReproduction float32 // seconds since birth or last reproduction
}

// NewEnergy returns a full, living energy pool.
func NewEnergy() Energy {
	return Energy{Value: MaxEnergy, Alive: true}
}

// Lose subtracts amount. Reaching zero kills the animal.
func (e *Energy) Lose(amount float32) {
	e.Value -= amount
	if e.Value <= 0 {
		e.Value = 0
		e.Alive = false
	}
}

// Gain adds amount, capped at MaxEnergy.
func (e *Energy) Gain(amount float32) {
	e.Value += amount
	if e.Value > MaxEnergy {
		e.Value = MaxEnergy
	}
}

// AdvanceReproductionTimer ages the animal and its reproduction timer by dt.
func (e *Energy) AdvanceReproductionTimer(dt float32) {
	e.SinceReproduction += dt
	e.Age += dt
}

// ResetReproductionTimer restarts the cooldown after a birth.
func (e *Energy) ResetReproductionTimer() {
	e.SinceReproduction = 0
}
