package main

import (
	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/genetics"
)

// reductionSpread is the half-width of the radius reduction range around the
// tuned midpoint.
const reductionSpread = 0.05

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable growth parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "fork_floor", Path: "gene.fork_floor", Min: 0, Max: 0.9, Default: 0.2},
			{Name: "min_radius", Path: "gene.min_radius", Min: 0.05, Max: 0.6, Default: 0.2},
			{Name: "radius_reduction", Path: "gene.radius_reduction", Min: 0.5, Max: 0.85, Default: 0.65},
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
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return out
}

// ApplyToConfig writes clamped values into cfg. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Gene.ForkFloor = c[0]
	cfg.Gene.MinRadius = c[1]
	cfg.Gene.RadiusReduction = genetics.Range{c[2] - reductionSpread, c[2] + reductionSpread}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	r := cfg.Gene.RadiusReduction
	return []float64{
		cfg.Gene.ForkFloor,
		cfg.Gene.MinRadius,
		(r.Min() + r.Max()) / 2,
	}
}
