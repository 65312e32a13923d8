package systems

import (
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

// Profile holds one species' behaviour and energy coefficients.
type Profile struct {
	Kind                  components.Kind
	Speed                 float32
	Margin                float32
	ThreatRadius          float32
	DetectRadius          float32
	ReachRadius           float32
	EnergyGain            float32
	KillDamage            float32
	ReproductionThreshold float32
	ReproductionCooldown  float32
	WanderChance          int
	BaseDrain             float32
	MoveDrain             float32
}

// NewProfile converts a species config section.
func NewProfile(kind components.Kind, c config.SpeciesConfig) Profile {
	return Profile{
		Kind:                  kind,
		Speed:                 float32(c.Speed),
		Margin:                float32(c.Margin),
		ThreatRadius:          float32(c.ThreatRadius),
		DetectRadius:          float32(c.DetectRadius),
		ReachRadius:           float32(c.ReachRadius),
		EnergyGain:            float32(c.EnergyGain),
		KillDamage:            float32(c.KillDamage),
		ReproductionThreshold: float32(c.ReproductionThreshold),
		ReproductionCooldown:  float32(c.ReproductionCooldown),
		WanderChance:          c.WanderChance,
		BaseDrain:             float32(c.BaseDrain),
		MoveDrain:             float32(c.MoveDrain),
	}
}

// PreyProfile returns the prey profile from the global config.
func PreyProfile() Profile {
	return NewProfile(components.KindPrey, config.Cfg().Prey)
}

// PredatorProfile returns the predator profile from the global config.
func PredatorProfile() Profile {
	return NewProfile(components.KindPredator, config.Cfg().Predator)
}
