package components

// Plant is a stationary food source. Once consumed it stays in place, unavailable.
type Plant struct {
	Available bool
	Tallied   bool // counted by the consumed-plant tally
}

// NewPlant returns an available plant.
func NewPlant() Plant {
	return Plant{Available: true}
}

// Consume marks the plant eaten. Repeated calls are no-ops.
func (p *Plant) Consume() {
	p.Available = false
}

// IsAvailable reports whether the plant can still be eaten.
func (p *Plant) IsAvailable() bool {
	return p.Available
}
