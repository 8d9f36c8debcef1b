// Package solver wraps internal/cmplx's dense linear algebra with the
// Direct/Iterative/Adaptive strategy spec.md §4.5 exposes to callers.
package solver

import (
	"errors"

	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/internal/cmplx"
)

// Method is the closed enum of linear-solve strategies (spec.md §4.5, §6).
type Method int

const (
	Direct Method = iota
	Iterative
	Adaptive
)

func (m Method) String() string {
	switch m {
	case Direct:
		return "Direct"
	case Iterative:
		return "Iterative"
	case Adaptive:
		return "Adaptive"
	default:
		return "unknown"
	}
}

// IterativeAlgorithm selects between GMRES(m) and BiCGSTAB when Method is
// Iterative or Adaptive falls through to the iterative branch.
type IterativeAlgorithm int

const (
	GMRES IterativeAlgorithm = iota
	BiCGSTAB
)

// PreconditionerKind selects the iterative preconditioner (spec.md §4.5).
type PreconditionerKind int

const (
	NoPreconditioner PreconditionerKind = iota
	Jacobi
	ILU0
)

// DirectThreshold is N_direct, the panel-count crossover for Adaptive
// (spec.md §4.6: default 2000, see DESIGN.md's Open Question decision).
const DirectThreshold = 2000

// Options configures a Solve call.
type Options struct {
	Method        Method
	Algorithm     IterativeAlgorithm
	Preconditioner PreconditionerKind
	Tolerance     float64 // default 1e-6
	MaxIter       int     // default 1000
	Restart       int     // GMRES(m) restart length, default 30
}

// DefaultOptions mirrors spec.md §6's stated defaults.
func DefaultOptions() Options {
	return Options{
		Method:        Adaptive,
		Algorithm:     GMRES,
		Preconditioner: Jacobi,
		Tolerance:     1e-6,
		MaxIter:       1000,
		Restart:       30,
	}
}

// System is a factorized (or ready-to-iterate) linear system for one
// frequency, reusable across every right-hand side that frequency needs:
// six radiation problems plus one diffraction problem per incident
// direction (spec.md §4.5's "factorize once, solve many").
type System struct {
	matrix  *cmplx.Matrix
	lu      *cmplx.LU // non-nil only when the direct path was chosen
	precond cmplx.Preconditioner
	opts    Options
}

// Prepare chooses Direct/Iterative per opts.Method (resolving Adaptive by
// panel count against DirectThreshold) and does whatever one-time work
// that choice implies: LU factorization for Direct, preconditioner
// construction for Iterative.
func Prepare(m *cmplx.Matrix, opts Options) (*System, error) {
	n, cols := m.Dims()
	if n != cols {
		return nil, errs.New(errs.InvalidInput, "solver.Prepare", "system matrix must be square")
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-6
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = 1000
	}
	if opts.Restart <= 0 {
		opts.Restart = 30
	}

	method := opts.Method
	if method == Adaptive {
		if n <= DirectThreshold {
			method = Direct
		} else {
			method = Iterative
		}
	}

	sys := &System{matrix: m, opts: opts}

	switch method {
	case Direct:
		lu, err := cmplx.Factorize(m)
		if err != nil {
			return nil, errs.Wrap(errs.SingularSystem, "solver.Prepare", err)
		}
		sys.lu = lu
		sys.opts.Method = Direct
	case Iterative:
		switch opts.Preconditioner {
		case Jacobi:
			sys.precond = cmplx.NewJacobiPreconditioner(m)
		case ILU0:
			p, err := cmplx.NewILU0Preconditioner(m)
			if err != nil {
				return nil, errs.Wrap(errs.SingularSystem, "solver.Prepare", err)
			}
			sys.precond = p
		}
		sys.opts.Method = Iterative
	default:
		return nil, errs.New(errs.InvalidInput, "solver.Prepare", "unrecognized solver method")
	}

	return sys, nil
}

// Solve solves matrix*x = b for one right-hand side using the strategy
// chosen at Prepare time, reporting SolverDidNotConverge if the iterative
// path stagnates or exhausts max_iter without reaching tolerance (spec.md
// §4.5: "‖Mφ+Sq‖/‖Sq‖ ≤ tol").
func (s *System) Solve(b []complex128) ([]complex128, error) {
	if s.lu != nil {
		return s.lu.Solve(b), nil
	}

	iterOpts := cmplx.IterativeOptions{
		Tolerance:      s.opts.Tolerance,
		MaxIter:        s.opts.MaxIter,
		Restart:        s.opts.Restart,
		Preconditioner: s.precond,
	}

	var x []complex128
	var err error
	switch s.opts.Algorithm {
	case BiCGSTAB:
		x, err = cmplx.BiCGSTAB(s.matrix, b, iterOpts)
	default:
		x, err = cmplx.GMRES(s.matrix, b, iterOpts)
	}
	if err != nil {
		if errors.Is(err, cmplx.ErrDidNotConverge) {
			return nil, errs.Wrap(errs.SolverDidNotConverge, "solver.System.Solve", err)
		}
		return nil, errs.Wrap(errs.NumericalFailure, "solver.System.Solve", err)
	}
	return x, nil
}

// Method reports the resolved strategy (Adaptive is never returned; it is
// always resolved to Direct or Iterative at Prepare time).
func (s *System) Method() Method { return s.opts.Method }
