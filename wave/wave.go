// Package wave derives the wavenumber k from the linear dispersion
// relation ω² = g·k·tanh(k·h) (finite depth) or ω² = g·k (infinite depth),
// per spec.md §3, §4.6 step 1.
package wave

import (
	"math"

	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/errs"
)

// maxNewtonIterations bounds the finite-depth dispersion solve; the
// relation is smooth and well-conditioned away from k=0, so convergence
// within a handful of iterations is expected for any physically
// reasonable (ω,h) pair.
const maxNewtonIterations = 100

// newtonTolerance is the relative residual at which Newton iteration on
// the dispersion relation is considered converged.
const newtonTolerance = 1e-12

// Wave is an incident plane wave described by its (fixed) frequency and
// direction, plus the wavenumber derived from the dispersion relation for
// a given Environment.
type Wave struct {
	Omega     float64 // ω [rad/s]
	Direction float64 // β ∈ [0, 2π)
	Wavenumber float64 // k [1/m]
}

// New builds a Wave, solving the dispersion relation for k given env's
// depth. omega must be positive; direction is taken modulo 2π.
func New(omega, direction float64, env *environment.Environment) (*Wave, error) {
	if omega <= 0 {
		return nil, errs.New(errs.InvalidInput, "wave.New", "omega must be positive")
	}
	k, err := Wavenumber(omega, env)
	if err != nil {
		return nil, err
	}
	return &Wave{Omega: omega, Direction: normalizeDirection(direction), Wavenumber: k}, nil
}

func normalizeDirection(beta float64) float64 {
	twoPi := 2 * math.Pi
	beta = math.Mod(beta, twoPi)
	if beta < 0 {
		beta += twoPi
	}
	return beta
}

// Wavenumber solves the dispersion relation for k at frequency omega in
// the given environment. For infinite depth k=ω²/g exactly; for finite
// depth h, Newton iteration on f(k) = g·k·tanh(k·h) − ω² is used, seeded
// at the infinite-depth guess ω²/g (spec.md §4.6 step 1).
func Wavenumber(omega float64, env *environment.Environment) (float64, error) {
	if omega <= 0 {
		return 0, errs.New(errs.InvalidInput, "wave.Wavenumber", "omega must be positive")
	}
	g := env.Gravity
	deepK := omega * omega / g

	if env.Depth.IsInfinite() {
		return deepK, nil
	}

	h := env.Depth.Value()
	k := deepK
	if k <= 0 {
		k = 1e-6
	}
	target := omega * omega

	for i := 0; i < maxNewtonIterations; i++ {
		th := math.Tanh(k * h)
		f := g*k*th - target
		if math.Abs(f) <= newtonTolerance*target {
			return k, nil
		}
		sech2 := 1 - th*th // sech^2(kh) = 1 - tanh^2(kh)
		df := g*th + g*k*h*sech2
		if df == 0 {
			break
		}
		next := k - f/df
		if next <= 0 {
			next = k / 2
		}
		k = next
	}

	th := math.Tanh(k * h)
	if math.Abs(g*k*th-target) > newtonTolerance*target*1e6 {
		return 0, errs.New(errs.NumericalFailure, "wave.Wavenumber", "dispersion relation did not converge")
	}
	return k, nil
}
