package pipeline

import (
	"math"
	"math/cmplx"

	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/mesh"
)

// generalizedNormal is n_i, the mode-i generalized normal spec.md §4.6
// uses both to build the radiation RHS (as the unit-motion normal
// velocity, since n·(e_{m-3}×r) = e_{m-3}·(r×n) for the rotational modes)
// and to project the surface pressure onto generalized force i during
// integration.
func generalizedNormal(mode int, centroid mesh.Point, centerOfGravity mesh.Point, normal mesh.Vector) float64 {
	r := centroid.Sub(centerOfGravity)
	switch mode {
	case 0:
		return normal.X
	case 1:
		return normal.Y
	case 2:
		return normal.Z
	case 3:
		return r.Y*normal.Z - r.Z*normal.Y
	case 4:
		return r.Z*normal.X - r.X*normal.Z
	case 5:
		return r.X*normal.Y - r.Y*normal.X
	default:
		return 0
	}
}

// incidentWave evaluates the unit-amplitude linear incident wave potential
// φ^I and its gradient at a point, for wavenumber k, frequency omega,
// direction beta, depth, and the caller's Environment gravity g (spec.md
// §4.6 step 5: "panel-normal velocity of the incident wave potential"),
// grounded on original_source/bem/src/solver.rs's setup_diffraction_rhs
// (horizontal phase k(x cosβ + y sinβ), unit amplitude) generalized to the
// standard finite-depth vertical profile cosh(k(z+h))/cosh(kh) in place of
// that source's infinite-depth-only exp(kz) simplification.
func incidentWave(p mesh.Point, k, omega, beta float64, depth environment.Depth, g float64) (phi complex128, grad [3]complex128) {
	amplitude := complex(0, -g/omega) // g/(iω) = -i g/ω

	phase := k * (p.X*math.Cos(beta) + p.Y*math.Sin(beta))
	horizontal := cmplx.Exp(complex(0, phase))

	var vertical, verticalDeriv complex128
	if depth.IsInfinite() {
		vertical = complex(math.Exp(k*p.Z), 0)
		verticalDeriv = complex(k*math.Exp(k*p.Z), 0)
	} else {
		h := depth.Value()
		coshKh := math.Cosh(k * h)
		vertical = complex(math.Cosh(k*(p.Z+h))/coshKh, 0)
		verticalDeriv = complex(k*math.Sinh(k*(p.Z+h))/coshKh, 0)
	}

	phi = amplitude * vertical * horizontal

	dPhiDx := amplitude * vertical * horizontal * complex(0, k*math.Cos(beta))
	dPhiDy := amplitude * vertical * horizontal * complex(0, k*math.Sin(beta))
	dPhiDz := amplitude * verticalDeriv * horizontal

	return phi, [3]complex128{dPhiDx, dPhiDy, dPhiDz}
}

func normalDerivativeReal(grad [3]complex128, n mesh.Vector) complex128 {
	return grad[0]*complex(n.X, 0) + grad[1]*complex(n.Y, 0) + grad[2]*complex(n.Z, 0)
}
