// Package pipeline orchestrates, per (ω, β), the full BEM solve: dispersion
// relation, matrix assembly, factorization, six radiation solves, one
// diffraction solve per direction, pressure integration, and accumulation
// into the added-mass/damping/exciting-force tables (spec.md §4.6).
package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/LexxSaa28/wavecore/assembly"
	"github.com/LexxSaa28/wavecore/body"
	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/gpu"
	"github.com/LexxSaa28/wavecore/green"
	"github.com/LexxSaa28/wavecore/hydrostatics"
	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/LexxSaa28/wavecore/solver"
	"github.com/LexxSaa28/wavecore/wave"
	"gonum.org/v1/gonum/mat"
)

// Pipeline is constructed once per Configuration and reused across Run
// calls; it holds no per-run state of its own.
type Pipeline struct {
	cfg Configuration
}

// New constructs a Pipeline for the given Configuration.
func New(cfg Configuration) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Result is the full output of one Run: per-frequency added mass/damping,
// per-(ω,β) exciting force, and the hydrostatic properties computed once
// from the mesh (spec.md §4.6, §6).
type Result struct {
	AddedMass     []*mat.Dense       // indexed by frequency
	Damping       []*mat.Dense       // indexed by frequency
	ExcitingForce [][][6]complex128  // [frequency][direction]
	Hydrostatics  *hydrostatics.Properties
	Status        []FrequencyStatus // indexed by frequency
}

// Run iterates the (ω, β) product in input enumeration order, publishing
// a frequency's results only once assembly, solve, and integration all
// succeed for it (spec.md §4.6: "partial updates... are never
// published"). Frequencies may run concurrently when
// Configuration.Parallelism.FrequencyParallel is set; results are always
// reassembled into Result by index, not completion order.
func (p *Pipeline) Run(ctx context.Context, m *mesh.Mesh, b *body.Body, env *environment.Environment, frequencies, directions []float64, observer Observer) (*Result, error) {
	if observer == nil {
		observer = NoopObserver{}
	}

	hydro, err := hydrostatics.Compute(m, env.Density, env.Gravity, b.CenterOfGravity)
	if err != nil {
		return nil, err
	}

	evaluator, err := green.New(p.cfg.GreenMethod, p.cfg.GreenTolerance, p.cfg.GreenMaxSeriesTerms)
	if err != nil {
		return nil, err
	}

	var backend gpu.Backend
	var backendStatus gpu.FrequencyStatus
	if p.cfg.GPU.Enabled {
		backend, backendStatus = gpu.Select()
		defer backend.Free()
		if backendStatus.FellBack {
			observer.OnFallback(FrequencyStatus{GPUBackend: backendStatus.BackendUsed, GPUFellBack: true})
		}
	}

	n := len(frequencies)
	result := &Result{
		AddedMass:     make([]*mat.Dense, n),
		Damping:       make([]*mat.Dense, n),
		ExcitingForce: make([][][6]complex128, n),
		Hydrostatics:  hydro,
		Status:        make([]FrequencyStatus, n),
	}

	threads := p.cfg.Parallelism.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	process := func(idx int) error {
		omega := frequencies[idx]
		observer.OnFrequencyStart(omega)

		if err := ctx.Err(); err != nil {
			status := FrequencyStatus{Omega: omega, Err: errs.Wrap(errs.OperationCancelled, "pipeline.Run", err)}
			result.Status[idx] = status
			observer.OnFrequencyDone(status)
			return status.Err
		}

		added, damping, exciting, err := p.solveFrequency(m, b, env, evaluator, omega, directions, threads, backend)
		status := FrequencyStatus{Omega: omega, Err: err}
		if p.cfg.GPU.Enabled {
			status.GPUBackend = backendStatus.BackendUsed
			status.GPUFellBack = backendStatus.FellBack
		}
		if err != nil {
			result.Status[idx] = status
			observer.OnFrequencyDone(status)
			return err
		}

		result.AddedMass[idx] = added
		result.Damping[idx] = damping
		result.ExcitingForce[idx] = exciting
		result.Status[idx] = status
		observer.OnFrequencyDone(status)
		return nil
	}

	// Per spec.md §7, a frequency failure (including cancellation) is
	// recorded in Status and the sweep continues by default; Run only
	// aborts and discards the Result when Configuration.FailFast is set.
	if p.cfg.Parallelism.FrequencyParallel && n > 1 {
		sem := make(chan struct{}, threads)
		var wg sync.WaitGroup
		var mu sync.Mutex
		var firstErr error
		for i := 0; i < n; i++ {
			i := i
			if p.cfg.FailFast {
				mu.Lock()
				abort := firstErr != nil
				mu.Unlock()
				if abort {
					break
				}
			}
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				if err := process(i); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		if p.cfg.FailFast && firstErr != nil {
			return nil, firstErr
		}
	} else {
		for i := 0; i < n; i++ {
			if err := process(i); err != nil && p.cfg.FailFast {
				return nil, err
			}
		}
	}

	return result, nil
}

// solveFrequency performs steps 1-6 of spec.md §4.6 for a single ω.
func (p *Pipeline) solveFrequency(m *mesh.Mesh, b *body.Body, env *environment.Environment, evaluator green.Evaluator, omega float64, directions []float64, threads int, backend gpu.Backend) (*mat.Dense, *mat.Dense, [][6]complex128, error) {
	k, err := wave.Wavenumber(omega, env)
	if err != nil {
		return nil, nil, nil, err
	}

	assemblyOpts := assembly.Options{
		Alpha:          p.cfg.Alpha,
		Threads:        threads,
		Sparsify:       p.cfg.Sparsification.Enabled,
		SparsifyThresh: p.cfg.Sparsification.Threshold,
		Backend:        backend,
	}
	matrices, err := assembly.Build(m, evaluator, k, env.Depth, assemblyOpts)
	if err != nil {
		return nil, nil, nil, err
	}

	// spec.md §4.5's system matrix is M = α·I + D; assembly.Build leaves D
	// holding only the raw jump term, so α is folded in here, once, before
	// factorization/preconditioning rather than per assembled entry.
	alpha := complex(p.cfg.Alpha, 0)
	for i := 0; i < matrices.D.Rows(); i++ {
		matrices.D.Add(i, i, alpha)
	}

	sys, err := solver.Prepare(matrices.D, p.cfg.LinearSolver)
	if err != nil {
		return nil, nil, nil, err
	}

	panels := m.Panels()
	nPanels := len(panels)

	radiationPotentials := make([][]complex128, 6)
	for mode := 0; mode < 6; mode++ {
		if !b.DofEnabled(body.Mode(mode)) {
			radiationPotentials[mode] = make([]complex128, nPanels)
			continue
		}
		q := make([]complex128, nPanels)
		for i, panel := range panels {
			q[i] = complex(-generalizedNormal(mode, panel.Centroid, b.CenterOfGravity, panel.Normal), 0)
		}
		rhs := matrices.S.MulVec(q)
		phi, err := sys.Solve(rhs)
		if err != nil {
			return nil, nil, nil, err
		}
		radiationPotentials[mode] = phi
	}

	added := mat.NewDense(6, 6, nil)
	damping := mat.NewDense(6, 6, nil)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			var f complex128
			for idx, panel := range panels {
				ni := generalizedNormal(i, panel.Centroid, b.CenterOfGravity, panel.Normal)
				f += complex(0, omega) * radiationPotentials[j][idx] * complex(ni*panel.Area, 0)
			}
			f *= complex(env.Density, 0)
			added.Set(i, j, -real(f)/(omega*omega))
			damping.Set(i, j, -imag(f)/omega)
		}
	}

	exciting := make([][6]complex128, len(directions))
	for di, beta := range directions {
		q := make([]complex128, nPanels)
		incidentPhi := make([]complex128, nPanels)
		for i, panel := range panels {
			phi, grad := incidentWave(panel.Centroid, k, omega, beta, env.Depth, env.Gravity)
			incidentPhi[i] = phi
			q[i] = -normalDerivativeReal(grad, panel.Normal)
		}
		rhs := matrices.S.MulVec(q)
		phiD, err := sys.Solve(rhs)
		if err != nil {
			return nil, nil, nil, err
		}

		var forces [6]complex128
		for mode := 0; mode < 6; mode++ {
			var f complex128
			for idx, panel := range panels {
				ni := generalizedNormal(mode, panel.Centroid, b.CenterOfGravity, panel.Normal)
				f += complex(0, omega) * (incidentPhi[idx] + phiD[idx]) * complex(ni*panel.Area, 0)
			}
			forces[mode] = f * complex(env.Density, 0)
		}
		exciting[di] = forces
	}

	return added, damping, exciting, nil
}
