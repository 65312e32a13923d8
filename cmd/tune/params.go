package main

import (
	"math"

	"github.com/pthm-cable/ecosim/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound

	Integer bool // rounded before it is applied
	get     func(*config.Config) float64
	set     func(*config.Config, float64)
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Prey energy
			{Name: "prey_base_drain", Path: "prey.base_drain", Min: 0.02, Max: 0.5,
				get: func(c *config.Config) float64 { return c.Prey.BaseDrain },
				set: func(c *config.Config, v float64) { c.Prey.BaseDrain = v }},
			{Name: "prey_move_drain", Path: "prey.move_drain", Min: 0.002, Max: 0.05,
				get: func(c *config.Config) float64 { return c.Prey.MoveDrain },
				set: func(c *config.Config, v float64) { c.Prey.MoveDrain = v }},
			{Name: "prey_energy_gain", Path: "prey.energy_gain", Min: 2, Max: 20,
				get: func(c *config.Config) float64 { return c.Prey.EnergyGain },
				set: func(c *config.Config, v float64) { c.Prey.EnergyGain = v }},
			// Prey reproduction
			{Name: "prey_repro_threshold", Path: "prey.reproduction_threshold", Min: 40, Max: 95,
				get: func(c *config.Config) float64 { return c.Prey.ReproductionThreshold },
				set: func(c *config.Config, v float64) { c.Prey.ReproductionThreshold = v }},
			{Name: "prey_repro_cooldown", Path: "prey.reproduction_cooldown", Min: 5, Max: 60,
				get: func(c *config.Config) float64 { return c.Prey.ReproductionCooldown },
				set: func(c *config.Config, v float64) { c.Prey.ReproductionCooldown = v }},
			// Predator energy
			{Name: "pred_base_drain", Path: "predator.base_drain", Min: 0.05, Max: 1.0,
				get: func(c *config.Config) float64 { return c.Predator.BaseDrain },
				set: func(c *config.Config, v float64) { c.Predator.BaseDrain = v }},
			{Name: "pred_move_drain", Path: "predator.move_drain", Min: 0.01, Max: 0.1,
				get: func(c *config.Config) float64 { return c.Predator.MoveDrain },
				set: func(c *config.Config, v float64) { c.Predator.MoveDrain = v }},
			{Name: "pred_energy_gain", Path: "predator.energy_gain", Min: 10, Max: 60,
				get: func(c *config.Config) float64 { return c.Predator.EnergyGain },
				set: func(c *config.Config, v float64) { c.Predator.EnergyGain = v }},
			// Predator reproduction
			{Name: "pred_repro_threshold", Path: "predator.reproduction_threshold", Min: 20, Max: 90,
				get: func(c *config.Config) float64 { return c.Predator.ReproductionThreshold },
				set: func(c *config.Config, v float64) { c.Predator.ReproductionThreshold = v }},
			{Name: "pred_repro_cooldown", Path: "predator.reproduction_cooldown", Min: 5, Max: 60,
				get: func(c *config.Config) float64 { return c.Predator.ReproductionCooldown },
				set: func(c *config.Config, v float64) { c.Predator.ReproductionCooldown = v }},
			// Plants
			{Name: "plant_regrow_delay", Path: "launch.regrow_delay", Min: 0.5, Max: 10,
				get: func(c *config.Config) float64 { return c.Launch.RegrowDelay },
				set: func(c *config.Config, v float64) { c.Launch.RegrowDelay = v }},
			{Name: "plants_max", Path: "plants.max", Min: 20, Max: 200, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Plants.Max) },
				set: func(c *config.Config, v float64) { c.Plants.Max = int(v) }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds. Integer parameters are rounded.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
}

// ExtractFromConfig reads the current parameter values from cfg, clamped to bounds.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.get(cfg)
	}
	return pv.Clamp(raw)
}
