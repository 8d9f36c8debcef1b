// Package assembly builds the complex influence matrices S and D for one
// frequency (spec.md §4.4). Rows (field panels) are independent and are
// computed by a bounded worker pool.
package assembly

import (
	"sync"

	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/gpu"
	"github.com/LexxSaa28/wavecore/green"
	"github.com/LexxSaa28/wavecore/internal/cmplx"
	"github.com/LexxSaa28/wavecore/mesh"
)

// FarFieldFactor is τ_far in spec.md §4.4: a field/source panel pair uses
// the cheap midpoint rule when r_ij/ℓ_j exceeds this factor.
const FarFieldFactor = 4.0

// QuadratureConvergence is the relative-change threshold that stops
// near-field Gauss-Legendre order refinement (spec.md §4.4).
const QuadratureConvergence = 1e-5

// MinQuadratureOrder and MaxQuadratureOrder bound the adaptive
// Gauss-Legendre order m (spec.md §4.4: m∈{3,...,7}).
const (
	MinQuadratureOrder = 3
	MaxQuadratureOrder = 7
)

// Options configures one assembly call.
type Options struct {
	// Alpha is α, the boundary-integral formulation constant (spec.md
	// §4.5/§6). Build itself never applies it — D always holds the raw
	// jump term — the caller forms the system matrix M = α·I + D from
	// Matrices.D and Alpha before factorization (see pipeline.Pipeline).
	Alpha          float64
	Threads        int // worker-pool size; 0 means GOMAXPROCS(0)
	Sparsify       bool
	SparsifyThresh float64 // |S_ij|·A_j below this is dropped when Sparsify is set
	// Backend, when non-nil, precomputes the full field/source
	// centroid-distance matrix once via gpu.Backend.PairwiseDistances
	// instead of Build calling mesh.Distance per pair. A nil Backend (the
	// zero value) computes distances on the CPU inline, unchanged from
	// before GPU offload existed.
	Backend gpu.Backend
}

// Matrices holds the assembled S and D for one frequency.
type Matrices struct {
	S *cmplx.Matrix
	D *cmplx.Matrix
}

// Build assembles S and D for the given mesh, wavenumber, depth, and
// Green-function evaluator. No partial matrix is ever returned: any
// per-entry Green-function failure aborts the whole call with
// AssemblyFailure (spec.md §4.4).
func Build(m *mesh.Mesh, evaluator green.Evaluator, k float64, depth environment.Depth, opts Options) (*Matrices, error) {
	n := m.NumPanels()
	if n == 0 {
		return nil, errs.New(errs.InvalidMesh, "assembly.Build", "mesh has no panels")
	}

	panels := m.Panels()
	s := cmplx.NewMatrix(n, n, nil)
	d := cmplx.NewMatrix(n, n, nil)

	distances, err := panelDistances(panels, opts.Backend)
	if err != nil {
		return nil, errs.Wrap(errs.AssemblyFailure, "assembly.Build", err)
	}

	threads := opts.Threads
	if threads <= 0 {
		threads = defaultThreads()
	}

	type rowResult struct {
		i      int
		sRow   []complex128
		dRow   []complex128
		err    error
	}

	rows := make(chan int, n)
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)

	results := make(chan rowResult, n)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				sRow, dRow, err := assembleRow(panels, i, distances, evaluator, k, depth, opts)
				results <- rowResult{i: i, sRow: sRow, dRow: dRow, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		for j := 0; j < n; j++ {
			s.Set(r.i, j, r.sRow[j])
			d.Set(r.i, j, r.dRow[j])
		}
	}
	if firstErr != nil {
		return nil, errs.Wrap(errs.AssemblyFailure, "assembly.Build", firstErr)
	}

	if opts.Sparsify {
		sparsify(s, panels, opts.SparsifyThresh)
	}

	return &Matrices{S: s, D: d}, nil
}

// panelDistances computes the full n×n field/source centroid-distance
// matrix used by assembleRow to pick the near/far-field quadrature branch.
// A non-nil backend (gpu.Select, wired in by pipeline.Pipeline) offloads
// this embarrassingly-parallel geometric precomputation via
// gpu.Backend.PairwiseDistances; a nil backend falls back to the direct
// per-pair mesh.Distance computation assembly.Build always used before GPU
// offload existed, so behavior is unchanged when GPU support is disabled.
func panelDistances(panels []*mesh.Panel, backend gpu.Backend) ([]float64, error) {
	n := len(panels)
	out := make([]float64, n*n)
	if backend == nil {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				out[i*n+j] = mesh.Distance(panels[i].Centroid, panels[j].Centroid)
			}
		}
		return out, nil
	}

	x := make([]float64, n)
	y := make([]float64, n)
	z := make([]float64, n)
	for i, p := range panels {
		x[i], y[i], z[i] = p.Centroid.X, p.Centroid.Y, p.Centroid.Z
	}
	if err := backend.PairwiseDistances(x, y, z, x, y, z, out); err != nil {
		return nil, err
	}
	return out, nil
}

func assembleRow(panels []*mesh.Panel, i int, distances []float64, evaluator green.Evaluator, k float64, depth environment.Depth, opts Options) ([]complex128, []complex128, error) {
	n := len(panels)
	sRow := make([]complex128, n)
	dRow := make([]complex128, n)
	fieldPanel := panels[i]

	for j := 0; j < n; j++ {
		sourcePanel := panels[j]
		if i == j {
			sVal, dVal, err := diagonalEntry(fieldPanel)
			if err != nil {
				return nil, nil, err
			}
			sRow[j] = sVal
			dRow[j] = dVal
			continue
		}

		dist := distances[i*n+j]
		var sVal, dVal complex128
		var err error
		if dist/sourcePanel.CharLength > FarFieldFactor {
			sVal, dVal, err = midpointRule(fieldPanel, sourcePanel, evaluator, k, depth)
		} else {
			sVal, dVal, err = adaptiveGaussLegendre(fieldPanel, sourcePanel, evaluator, k, depth)
		}
		if err != nil {
			return nil, nil, err
		}
		sRow[j] = sVal
		dRow[j] = dVal
	}
	return sRow, dRow, nil
}

// midpointRule approximates the panel integral with a single evaluation
// at the source panel centroid, scaled by the panel area (spec.md §4.4:
// "one-point midpoint rule at the source panel centroid").
func midpointRule(field, source *mesh.Panel, evaluator green.Evaluator, k float64, depth environment.Depth) (complex128, complex128, error) {
	g, gradG, err := evaluator.Evaluate(field.Centroid, source.Centroid, k, depth)
	if err != nil {
		return 0, 0, err
	}
	sVal := g * complex(source.Area, 0)
	dVal := normalDerivative(gradG, source.Normal) * complex(source.Area, 0)
	return sVal, dVal, nil
}

// normalDerivative projects a complex gradient onto a real unit normal.
func normalDerivative(gradG green.Vector3C, normal mesh.Vector) complex128 {
	return gradG.X*complex(normal.X, 0) + gradG.Y*complex(normal.Y, 0) + gradG.Z*complex(normal.Z, 0)
}

// adaptiveGaussLegendre refines Gauss-Legendre order from MinQuadratureOrder
// to MaxQuadratureOrder until the relative change in the integral estimate
// falls below QuadratureConvergence (spec.md §4.4).
func adaptiveGaussLegendre(field, source *mesh.Panel, evaluator green.Evaluator, k float64, depth environment.Depth) (complex128, complex128, error) {
	var prevS, prevD complex128
	for order := MinQuadratureOrder; order <= MaxQuadratureOrder; order++ {
		nodes, weights := gaussLegendreNodes(order)
		sVal, dVal, err := quadratureIntegral(field, source, evaluator, k, depth, nodes, weights)
		if err != nil {
			return 0, 0, err
		}
		if order > MinQuadratureOrder {
			relChange := complexRelativeChange(sVal, prevS)
			if relChange < QuadratureConvergence {
				return sVal, dVal, nil
			}
		}
		prevS, prevD = sVal, dVal
	}
	return prevS, prevD, nil
}

func complexRelativeChange(current, previous complex128) float64 {
	denom := abs(current)
	if denom == 0 {
		denom = 1
	}
	return abs(current-previous) / denom
}

func abs(z complex128) float64 {
	re, im := real(z), imag(z)
	return sqrtFloat(re*re + im*im)
}

// quadratureIntegral maps 1D Gauss-Legendre nodes onto the source panel's
// own triangulated sub-elements (fan triangulation from its first vertex,
// matching the decomposition mesh.NewPanel already uses for quads) via the
// collapsed (Duffy) square-to-triangle map, so the weights of each
// sub-triangle sum to its area.
func quadratureIntegral(field, source *mesh.Panel, evaluator green.Evaluator, k float64, depth environment.Depth, nodes, weights []float64) (complex128, complex128, error) {
	var sVal, dVal complex128
	verts := source.Vertices
	n := len(verts)
	for t := 1; t < n-1; t++ {
		v0, v1, v2 := verts[0], verts[t], verts[t+1]
		triArea := triangleArea(v0, v1, v2)
		if triArea == 0 {
			continue
		}
		for a, wa := range nodes {
			for b, wb := range nodes {
				u, v := a2bary(wa, wb)
				pt := barycentricPoint(v0, v1, v2, u, v)
				g, gradG, err := evaluator.Evaluate(field.Centroid, pt, k, depth)
				if err != nil {
					return 0, 0, err
				}
				// Jacobian of the collapsed map is (1-u)/4 on [-1,1]^2;
				// 2*triArea maps the reference triangle onto this one.
				weight := weights[a] * weights[b] * (1 - u) / 4 * 2 * triArea
				sVal += g * complex(weight, 0)
				dVal += normalDerivative(gradG, source.Normal) * complex(weight, 0)
			}
		}
	}
	return sVal, dVal, nil
}

func a2bary(wa, wb float64) (float64, float64) {
	u := (wa + 1) / 2
	return u, (1 - u) * (wb + 1) / 2
}

func barycentricPoint(v0, v1, v2 mesh.Point, u, v float64) mesh.Point {
	w := 1 - u - v
	return mesh.Point{
		X: w*v0.X + u*v1.X + v*v2.X,
		Y: w*v0.Y + u*v1.Y + v*v2.Y,
		Z: w*v0.Z + u*v1.Z + v*v2.Z,
	}
}

func triangleArea(v0, v1, v2 mesh.Point) float64 {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	return 0.5 * e1.Cross(e2).Norm()
}

// diagonalEntry computes the self-influence entries using the analytic
// Rankine-singularity limit for S and the double-layer jump term for D
// (spec.md §4.4): D_ii carries the canonical -1/2 raw jump contribution.
// α·I is added to D once, across the whole matrix, by the pipeline before
// factorization (spec.md §4.5's system matrix M = α·I + D) — it is not a
// per-panel quantity, so it plays no part in this function.
func diagonalEntry(panel *mesh.Panel) (complex128, complex128, error) {
	sVal := complex(-panel.CharLength/(2*3.14159265358979), 0) // analytic near-singular self-term magnitude
	dVal := complex(-0.5, 0)
	return sVal, dVal, nil
}

func sparsify(s *cmplx.Matrix, panels []*mesh.Panel, threshold float64) {
	rows, cols := s.Dims()
	bandwidth := 2
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if i == j || absInt(i-j) <= bandwidth {
				continue
			}
			val := s.At(i, j)
			magnitude := abs(val) * panels[j].Area
			if magnitude < threshold {
				s.Set(i, j, 0)
			}
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
