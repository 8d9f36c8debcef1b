// Package rao solves the frequency-domain rigid-body motion equation for
// the response amplitude operator H(ω,β), given the added mass, damping,
// and wave-exciting force a Pipeline computes per (ω,β) (spec.md §4.7).
package rao

import (
	"github.com/LexxSaa28/wavecore/body"
	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/internal/cmplx"
	"gonum.org/v1/gonum/mat"
)

// singularStiffnessTolerance is how close to zero a diagonal stiffness
// entry must be, at ω=0, to be treated as an unconstrained (free) mode
// rather than a restored one (spec.md §4.7: "singular-mode detection").
const singularStiffnessTolerance = 1e-9

// Result is the solved motion vector for one (ω,β) pair, plus which modes
// (if any) were flagged singular and forced to zero.
type Result struct {
	Motion   [6]complex128
	Singular [6]bool
}

// Solve assembles and solves
// [-ω²(M+A(ω)) - iωB(ω) + K^H]·H(ω,β) = F^X(ω,β)
// per spec.md §4.7. addedMass and damping are 6x6 real matrices for this
// frequency; restoring is the hydrostatic K^H (constant across
// frequency); excitation is the complex 6-vector wave-exciting force for
// this (ω,β). A mode with zero restoring stiffness at ω=0 is singular
// (rigid-body drift): its row/column is skipped and its RAO entry set to
// zero rather than solved.
func Solve(b *body.Body, omega float64, addedMass, damping, restoring *mat.Dense, excitation [6]complex128) (*Result, error) {
	mass := b.MassMatrix()

	result := &Result{}
	activeIdx := make([]int, 0, 6)

	for i := 0; i < 6; i++ {
		if omega == 0 && restoring.At(i, i) < singularStiffnessTolerance && restoring.At(i, i) > -singularStiffnessTolerance {
			result.Singular[i] = true
			continue
		}
		activeIdx = append(activeIdx, i)
	}

	if len(activeIdx) == 0 {
		return result, nil
	}

	n := len(activeIdx)
	reduced := cmplx.NewMatrix(n, n, nil)
	rhs := make([]complex128, n)

	omega2 := complex(-omega*omega, 0)
	iOmega := complex(0, -omega)

	for ri, i := range activeIdx {
		for ci, j := range activeIdx {
			m := mass.At(i, j) + addedMass.At(i, j)
			bij := damping.At(i, j)
			k := restoring.At(i, j)
			val := omega2*complex(m, 0) + iOmega*complex(bij, 0) + complex(k, 0)
			reduced.Set(ri, ci, val)
		}
		rhs[ri] = excitation[i]
	}

	sys, err := cmplx.Factorize(reduced)
	if err != nil {
		return nil, errs.Wrap(errs.SingularSystem, "rao.Solve", err)
	}
	x := sys.Solve(rhs)

	for ri, i := range activeIdx {
		result.Motion[i] = x[ri]
	}
	return result, nil
}
