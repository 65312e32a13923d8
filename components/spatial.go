package components

import "math"

// Position represents an entity's arena position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in px/s.
type Velocity struct {
	X, Y float32
}

// Speed returns the magnitude of the velocity.
func (v Velocity) Speed() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// DistSq returns the squared distance between two positions.
func (p Position) DistSq(o Position) float32 {
	dx := o.X - p.X
	dy := o.Y - p.Y
	return dx*dx + dy*dy
}
