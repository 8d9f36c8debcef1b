// Package environment describes the fluid domain a Body sits in: density,
// gravity, and water depth (spec.md §3, §6). Environment values are
// immutable inputs, constructed once per Pipeline and never derived from
// mesh or solve state.
package environment

import "github.com/LexxSaa28/wavecore/errs"

// Depth is the closed tagged variant for water depth (spec.md §3: "h≤0
// denotes infinite depth in the interface convention; internally
// represented as an enum {Infinite, Finite(h>0)}").
type Depth struct {
	infinite bool
	value    float64
}

// Infinite returns the deep-water Depth variant.
func Infinite() Depth { return Depth{infinite: true} }

// Finite returns the finite-depth Depth variant for h>0.
func Finite(h float64) (Depth, error) {
	if h <= 0 {
		return Depth{}, errs.New(errs.InvalidInput, "environment.Finite", "depth must be positive")
	}
	return Depth{infinite: false, value: h}, nil
}

// IsInfinite reports whether the depth is the deep-water variant.
func (d Depth) IsInfinite() bool { return d.infinite }

// Value returns h for the Finite variant; it panics on Infinite, matching
// the closed-enum contract that callers must branch on IsInfinite first.
func (d Depth) Value() float64 {
	if d.infinite {
		panic("environment: Value called on infinite depth")
	}
	return d.value
}

// FromInterfaceConvention maps the external convention (h<=0 means
// infinite depth) onto the internal Depth enum, per spec.md §3.
func FromInterfaceConvention(h float64) (Depth, error) {
	if h <= 0 {
		return Infinite(), nil
	}
	return Finite(h)
}

// Environment is an immutable fluid-domain description.
type Environment struct {
	Density float64 // ρ [kg/m^3]
	Gravity float64 // g [m/s^2]
	Depth   Depth
}

// New validates and constructs an Environment.
func New(density, gravity float64, depth Depth) (*Environment, error) {
	if density <= 0 {
		return nil, errs.New(errs.InvalidInput, "environment.New", "fluid density must be positive")
	}
	if gravity <= 0 {
		return nil, errs.New(errs.InvalidInput, "environment.New", "gravity must be positive")
	}
	return &Environment{Density: density, Gravity: gravity, Depth: depth}, nil
}

// StandardSeawater returns the conventional seawater/standard-gravity
// Environment (ρ=1025 kg/m^3, g=9.80665 m/s^2) used throughout the
// validation harness's built-in cases.
func StandardSeawater(depth Depth) *Environment {
	return &Environment{Density: 1025.0, Gravity: 9.80665, Depth: depth}
}
