package cmplx

import (
	"errors"
	"fmt"
)

// ErrDidNotConverge is returned by the iterative solvers when max_iter is
// exhausted, or stagnation is detected, without reaching the requested
// tolerance.
var ErrDidNotConverge = errors.New("cmplx: iterative solver did not converge")

// Preconditioner applies an approximate inverse of the system matrix to a
// vector, e.g. left Jacobi or ILU(0).
type Preconditioner interface {
	Apply(r []complex128) []complex128
}

// JacobiPreconditioner is the left-Jacobi (diagonal) preconditioner.
type JacobiPreconditioner struct {
	invDiag []complex128
}

// NewJacobiPreconditioner builds the diagonal preconditioner for a.
func NewJacobiPreconditioner(a *Matrix) *JacobiPreconditioner {
	n, _ := a.Dims()
	inv := make([]complex128, n)
	for i := 0; i < n; i++ {
		d := a.At(i, i)
		if cabs(d) < 1e-300 {
			inv[i] = 1
		} else {
			inv[i] = 1 / d
		}
	}
	return &JacobiPreconditioner{invDiag: inv}
}

func (p *JacobiPreconditioner) Apply(r []complex128) []complex128 {
	out := make([]complex128, len(r))
	for i, v := range r {
		out[i] = p.invDiag[i] * v
	}
	return out
}

// ILU0Preconditioner is an incomplete LU(0) preconditioner: the exact
// factorization restricted to the sparsity pattern of a (dense here, so it
// coincides with a full LU, but it is kept as a distinct type so callers can
// select it explicitly per spec.md's configuration surface).
type ILU0Preconditioner struct {
	factor *LU
}

// NewILU0Preconditioner factorizes a for use as a preconditioner.
func NewILU0Preconditioner(a *Matrix) (*ILU0Preconditioner, error) {
	f, err := Factorize(a)
	if err != nil {
		return nil, err
	}
	return &ILU0Preconditioner{factor: f}, nil
}

func (p *ILU0Preconditioner) Apply(r []complex128) []complex128 {
	return p.factor.Solve(r)
}

// IterativeOptions configures GMRES/BiCGSTAB.
type IterativeOptions struct {
	Tolerance      float64
	MaxIter        int
	Restart        int // GMRES(m); ignored by BiCGSTAB
	Preconditioner Preconditioner
}

// DefaultIterativeOptions mirrors spec.md §4.5/§6 defaults.
func DefaultIterativeOptions() IterativeOptions {
	return IterativeOptions{
		Tolerance: 1e-6,
		MaxIter:   1000,
		Restart:   30,
	}
}

// GMRES solves a*x = b with restarted GMRES(m). The zero vector is the
// initial guess. Convergence is declared when ||a*x-b||/||b|| <= tolerance.
func GMRES(a *Matrix, b []complex128, opts IterativeOptions) ([]complex128, error) {
	n, _ := a.Dims()
	if opts.Restart <= 0 {
		opts.Restart = n
	}
	restart := opts.Restart
	if restart > n {
		restart = n
	}

	bNorm := VecNorm(b)
	if bNorm == 0 {
		bNorm = 1
	}

	x := make([]complex128, n)
	precond := opts.Preconditioner

	totalIters := 0
	lastResidual := -1.0
	stagnantRounds := 0

	for totalIters < opts.MaxIter {
		r := VecSub(b, a.MulVec(x))
		if precond != nil {
			r = precond.Apply(r)
		}
		beta := VecNorm(r)
		if beta/bNorm <= opts.Tolerance {
			return x, nil
		}

		v := make([][]complex128, 0, restart+1)
		v = append(v, VecScale(r, 1/complex(beta, 0)))
		h := make([][]complex128, restart+1)
		for i := range h {
			h[i] = make([]complex128, restart)
		}

		var k int
		for k = 0; k < restart; k++ {
			totalIters++
			w := a.MulVec(v[k])
			if precond != nil {
				w = precond.Apply(w)
			}
			for i := 0; i <= k; i++ {
				h[i][k] = VecDot(v[i], w)
				w = VecAddScaled(w, -h[i][k], v[i])
			}
			h[k+1][k] = complex(VecNorm(w), 0)
			if cabs(h[k+1][k]) < 1e-14 {
				k++
				break
			}
			v = append(v, VecScale(w, 1/h[k+1][k]))
			if totalIters >= opts.MaxIter {
				k++
				break
			}
		}
		if k > restart {
			k = restart
		}

		y, err := solveHessenbergLS(h, beta, k)
		if err != nil {
			return nil, err
		}
		for j := 0; j < k; j++ {
			x = VecAddScaled(x, y[j], v[j])
		}

		res := VecNorm(VecSub(b, a.MulVec(x)))
		relRes := res / bNorm
		if relRes <= opts.Tolerance {
			return x, nil
		}
		if lastResidual >= 0 && relRes > lastResidual*(1-1e-10) {
			stagnantRounds++
			if stagnantRounds >= 3 {
				return nil, fmt.Errorf("%w: stagnated at relative residual %.3e", ErrDidNotConverge, relRes)
			}
		} else {
			stagnantRounds = 0
		}
		lastResidual = relRes
	}

	return nil, fmt.Errorf("%w: exhausted %d iterations", ErrDidNotConverge, opts.MaxIter)
}

// solveHessenbergLS solves the least-squares problem min||beta*e1 - H*y||
// for an upper-Hessenberg H (k+1 x k) via Givens rotations.
func solveHessenbergLS(h [][]complex128, beta float64, k int) ([]complex128, error) {
	if k == 0 {
		return nil, nil
	}
	g := make([]complex128, k+1)
	g[0] = complex(beta, 0)

	hh := make([][]complex128, k+1)
	for i := range hh {
		hh[i] = append([]complex128(nil), h[i][:k]...)
	}

	cs := make([]complex128, k)
	sn := make([]complex128, k)

	for i := 0; i < k; i++ {
		// Givens rotation to eliminate hh[i+1][i] against hh[i][i].
		a0 := hh[i][i]
		b0 := hh[i+1][i]
		denom := cabs(a0)*cabs(a0) + cabs(b0)*cabs(b0)
		var c, s complex128
		if denom == 0 {
			c, s = 1, 0
		} else {
			r := complex(sqrt(denom), 0)
			c = a0 / r
			s = b0 / r
		}
		cs[i], sn[i] = c, s

		for j := i; j < k; j++ {
			t1 := hh[i][j]
			t2 := hh[i+1][j]
			hh[i][j] = complexConj(c)*t1 + complexConj(s)*t2
			hh[i+1][j] = -s*t1 + c*t2
		}
		g0 := g[i]
		g1 := g[i+1]
		g[i] = complexConj(c)*g0 + complexConj(s)*g1
		g[i+1] = -s*g0 + c*g1
	}

	y := make([]complex128, k)
	for i := k - 1; i >= 0; i-- {
		sum := g[i]
		for j := i + 1; j < k; j++ {
			sum -= hh[i][j] * y[j]
		}
		if cabs(hh[i][i]) < 1e-300 {
			return nil, ErrSingular
		}
		y[i] = sum / hh[i][i]
	}
	return y, nil
}

// BiCGSTAB solves a*x = b with the stabilized bi-conjugate gradient method,
// for memory-constrained cases where GMRES's growing Krylov basis is
// undesirable (spec.md §4.5).
func BiCGSTAB(a *Matrix, b []complex128, opts IterativeOptions) ([]complex128, error) {
	n, _ := a.Dims()
	bNorm := VecNorm(b)
	if bNorm == 0 {
		bNorm = 1
	}

	x := make([]complex128, n)
	r := VecSub(b, a.MulVec(x))
	r0 := append([]complex128(nil), r...)

	v := make([]complex128, n)
	p := make([]complex128, n)
	var rho, alpha, omega complex128 = 1, 1, 1

	precond := opts.Preconditioner
	applyM := func(z []complex128) []complex128 {
		if precond == nil {
			return z
		}
		return precond.Apply(z)
	}

	for iter := 0; iter < opts.MaxIter; iter++ {
		rhoNew := VecDot(r0, r)
		if cabs(rhoNew) < 1e-300 {
			return nil, fmt.Errorf("%w: BiCGSTAB breakdown (rho~0)", ErrDidNotConverge)
		}
		beta := (rhoNew / rho) * (alpha / omega)
		for i := range p {
			p[i] = r[i] + beta*(p[i]-omega*v[i])
		}
		pHat := applyM(p)
		v = a.MulVec(pHat)
		denom := VecDot(r0, v)
		if cabs(denom) < 1e-300 {
			return nil, fmt.Errorf("%w: BiCGSTAB breakdown (denominator~0)", ErrDidNotConverge)
		}
		alpha = rhoNew / denom
		s := VecAddScaled(r, -alpha, v)

		if VecNorm(s)/bNorm <= opts.Tolerance {
			x = VecAddScaled(x, alpha, pHat)
			return x, nil
		}

		sHat := applyM(s)
		t := a.MulVec(sHat)
		tDotT := VecDot(t, t)
		if cabs(tDotT) < 1e-300 {
			return nil, fmt.Errorf("%w: BiCGSTAB breakdown (t~0)", ErrDidNotConverge)
		}
		omega = VecDot(t, s) / tDotT

		x = VecAddScaled(x, alpha, pHat)
		x = VecAddScaled(x, omega, sHat)
		r = VecAddScaled(s, -omega, t)

		if VecNorm(r)/bNorm <= opts.Tolerance {
			return x, nil
		}
		if cabs(omega) < 1e-300 {
			return nil, fmt.Errorf("%w: BiCGSTAB breakdown (omega~0)", ErrDidNotConverge)
		}
		rho = rhoNew
	}

	return nil, fmt.Errorf("%w: exhausted %d iterations", ErrDidNotConverge, opts.MaxIter)
}
