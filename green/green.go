// Package green evaluates the free-surface Green function and its gradient
// for the boundary-integral formulation (spec.md §4.3). Method selection
// is a closed tagged variant fixed at construction and invariant for the
// lifetime of a Pipeline (spec.md §9).
package green

import (
	"math"
	"math/cmplx"

	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/mesh"
)

// Method is the closed enum of supported free-surface evaluation
// strategies (spec.md §6: green_method ∈ {Delhommeau, HigherOrderSeries}).
type Method int

const (
	Delhommeau Method = iota
	HigherOrderSeries
)

func (m Method) String() string {
	switch m {
	case Delhommeau:
		return "Delhommeau"
	case HigherOrderSeries:
		return "HigherOrderSeries"
	default:
		return "unknown"
	}
}

// underflowThreshold is the k·r value below which the Rankine phase term
// underflows and the coincident-point limit is used instead (spec.md
// §4.3).
const underflowThreshold = 1e-12

// coincidentLimit is the analytic value assigned when the field and
// source points merge (spec.md §4.3: "the analytic local limit").
var coincidentLimit = complex(0, -0.25/math.Pi)

// Evaluator evaluates the Green function and its gradient with respect to
// the source point, for a fixed method and configuration.
type Evaluator interface {
	Evaluate(xf, xs mesh.Point, k float64, depth environment.Depth) (complex128, Vector3C, error)
	Method() Method
}

// Vector3C is a complex-valued 3-vector, the natural type for ∇_x_s G
// since the Green function itself is complex-valued.
type Vector3C struct {
	X, Y, Z complex128
}

// New constructs an Evaluator for the given method, tolerance, and
// maximum series-term bound (used only by HigherOrderSeries).
func New(method Method, tolerance float64, maxTerms int) (Evaluator, error) {
	if tolerance <= 0 {
		return nil, errs.New(errs.InvalidInput, "green.New", "tolerance must be positive")
	}
	switch method {
	case Delhommeau:
		return &delhommeau{}, nil
	case HigherOrderSeries:
		if maxTerms <= 0 {
			maxTerms = 50
		}
		return &higherOrderSeries{tolerance: tolerance, maxTerms: maxTerms}, nil
	default:
		return nil, errs.New(errs.InvalidInput, "green.New", "unrecognized green function method")
	}
}

// horizontalSeparation and verticalSeparation reduce the 3D field/source
// points to the (r, z) parametrization the evaluators use, matching the
// original source's evaluate(r, z) contract.
func horizontalSeparation(xf, xs mesh.Point) float64 {
	dx := xf.X - xs.X
	dy := xf.Y - xs.Y
	return math.Hypot(dx, dy)
}

func verticalSeparation(xf, xs mesh.Point) float64 {
	return xf.Z - xs.Z
}

type delhommeau struct{}

func (d *delhommeau) Method() Method { return Delhommeau }

func (d *delhommeau) Evaluate(xf, xs mesh.Point, k float64, depth environment.Depth) (complex128, Vector3C, error) {
	r := horizontalSeparation(xf, xs)
	z := verticalSeparation(xf, xs)
	distance := math.Hypot(r, z)

	if distance < 1e-10 || k*distance < underflowThreshold {
		return coincidentLimit, Vector3C{}, nil
	}

	gDirect := directTerm(k, distance)
	g := gDirect
	if !depth.IsInfinite() {
		h := depth.Value()
		zImage := z + 2*h
		rImage := math.Hypot(r, zImage)
		if rImage > 1e-10 {
			g += directTerm(k, rImage)
		}
	}

	grad, err := gradientOf(d, xf, xs, k, depth, g)
	return g, grad, err
}

func directTerm(k, distance float64) complex128 {
	return coincidentLimit * cmplx.Exp(complex(0, k*distance)) / complex(distance, 0)
}

type higherOrderSeries struct {
	tolerance float64
	maxTerms  int
}

func (h *higherOrderSeries) Method() Method { return HigherOrderSeries }

// Evaluate implements the finite-depth image-series evaluator (spec.md
// §6 SUPPLEMENTED FEATURES: HAMS-style finite-depth image series),
// grounded on original_source/green_functions/src/lib.rs's
// HAMSGreenFunction::evaluate. For infinite depth it reduces to the plain
// Rankine phase term, matching the source's early-return for that case.
func (h *higherOrderSeries) Evaluate(xf, xs mesh.Point, k float64, depth environment.Depth) (complex128, Vector3C, error) {
	r := horizontalSeparation(xf, xs)
	z := verticalSeparation(xf, xs)
	distance := math.Hypot(r, z)

	if distance < 1e-10 || k*distance < underflowThreshold {
		return coincidentLimit, Vector3C{}, nil
	}

	if depth.IsInfinite() {
		g := directTerm(k, distance)
		grad, err := gradientOf(h, xf, xs, k, depth, g)
		return g, grad, err
	}

	depthVal := depth.Value()
	total := directTerm(k, distance)

	converged := false
	for n := 1; n <= h.maxTerms; n++ {
		zImagePos := z + 2*float64(n)*depthVal
		zImageNeg := -z + 2*float64(n)*depthVal
		rImagePos := math.Hypot(r, zImagePos)
		rImageNeg := math.Hypot(r, zImageNeg)

		var gImagePos, gImageNeg complex128
		if rImagePos > 1e-10 {
			gImagePos = directTerm(k, rImagePos)
		}
		if rImageNeg > 1e-10 {
			gImageNeg = directTerm(k, rImageNeg)
		}

		sign := 1.0
		if n%2 != 0 {
			sign = -1.0
		}
		term := complex(sign, 0) * (gImagePos + gImageNeg)

		if cmplx.Abs(term) < h.tolerance*cmplx.Abs(total) {
			total += term
			converged = true
			break
		}
		total += term
	}

	if !converged {
		return 0, Vector3C{}, errs.New(errs.NumericalFailure, "green.higherOrderSeries.Evaluate",
			"finite-depth image series did not converge within max_terms")
	}

	grad, err := gradientOf(h, xf, xs, k, depth, total)
	return total, grad, err
}

// gradientOf computes ∇_x_s G via central finite differences on the
// evaluator itself, matching the original source's numerical-
// differentiation fallback for its series-based method (HAMSGreenFunction
// uses central differences rather than an analytic derivative because the
// series form makes an analytic gradient impractical); Delhommeau here
// reuses the same numerical approach for a uniform, simpler
// implementation across both methods.
func gradientOf(e Evaluator, xf, xs mesh.Point, k float64, depth environment.Depth, center complex128) (Vector3C, error) {
	const delta = 1e-6
	dGdx, err := partial(e, xf, xs, k, depth, delta, 0, 0)
	if err != nil {
		return Vector3C{}, err
	}
	dGdy, err := partial(e, xf, xs, k, depth, 0, delta, 0)
	if err != nil {
		return Vector3C{}, err
	}
	dGdz, err := partial(e, xf, xs, k, depth, 0, 0, delta)
	if err != nil {
		return Vector3C{}, err
	}
	return Vector3C{X: dGdx, Y: dGdy, Z: dGdz}, nil
}

func partial(e Evaluator, xf, xs mesh.Point, k float64, depth environment.Depth, dx, dy, dz float64) (complex128, error) {
	plus := xs
	plus.X += dx
	plus.Y += dy
	plus.Z += dz
	minus := xs
	minus.X -= dx
	minus.Y -= dy
	minus.Z -= dz

	gPlus, _, err := e.Evaluate(xf, plus, k, depth)
	if err != nil {
		return 0, err
	}
	gMinus, _, err := e.Evaluate(xf, minus, k, depth)
	if err != nil {
		return 0, err
	}
	h := dx + dy + dz
	return (gPlus - gMinus) / complex(2*h, 0), nil
}
