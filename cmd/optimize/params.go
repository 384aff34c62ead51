// Package main provides CMA-ES optimization for meadow ecosystem parameters.
package main

import (
	"math"

	"github.com/pthm-cable/meadow/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Producer production
			{Name: "chance_divisor", Path: "producer.chance_divisor", Min: 3, Max: 20, Default: 7},
			// Panic thresholds (crisis < shortfall < surplus)
			{Name: "crisis_energy", Path: "energy.crisis_energy", Min: 0.02, Max: 0.2, Default: 0.1},
			{Name: "shortfall_energy", Path: "energy.shortfall_energy", Min: 0.25, Max: 0.6, Default: 0.4},
			{Name: "surplus_energy", Path: "energy.surplus_energy", Min: 0.65, Max: 0.98, Default: 0.9},
			{Name: "surplus_damping", Path: "energy.surplus_damping", Min: 1, Max: 10, Default: 4},
			// Distributors
			{Name: "dist_lifespan_max", Path: "distributor.lifespan.max", Min: 0.15, Max: 0.6, Default: 0.25},
			{Name: "dist_speed_min", Path: "distributor.max_speed.min", Min: 0.1, Max: 0.9, Default: 0.5},
			{Name: "random_drop_divisor", Path: "distributor.random_drop_divisor", Min: 2, Max: 40, Default: 10},
			// Population
			{Name: "producers", Path: "population.producers", Min: 50, Max: 1500, Default: 400},
			{Name: "distributors", Path: "population.distributors", Min: 10, Max: 500, Default: 100},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
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

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0
	next := func() float64 {
		v := clamped[i]
		i++
		return v
	}

	cfg.Producer.ChanceDivisor = next()

	cfg.Energy.CrisisEnergy = next()
	cfg.Energy.ShortfallEnergy = next()
	cfg.Energy.SurplusEnergy = next()
	cfg.Energy.SurplusDamping = next()

	cfg.Distributor.Lifespan.Max = math.Max(next(), cfg.Distributor.Lifespan.Min)
	cfg.Distributor.MaxSpeed.Min = math.Min(next(), cfg.Distributor.MaxSpeed.Max)
	cfg.Distributor.RandomDropDivisor = next()

	cfg.Population.Producers = int(math.Round(next()))
	cfg.Population.Distributors = int(math.Round(next()))
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Producer.ChanceDivisor,
		cfg.Energy.CrisisEnergy,
		cfg.Energy.ShortfallEnergy,
		cfg.Energy.SurplusEnergy,
		cfg.Energy.SurplusDamping,
		cfg.Distributor.Lifespan.Max,
		cfg.Distributor.MaxSpeed.Min,
		cfg.Distributor.RandomDropDivisor,
		float64(cfg.Population.Producers),
		float64(cfg.Population.Distributors),
	}
}
