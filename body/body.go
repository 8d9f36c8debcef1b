// Package body describes the floating structure's rigid-body mass
// properties and which of the six motion modes are active (spec.md §3,
// §6). Body values are immutable inputs constructed once per Pipeline.
package body

import (
	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/mesh"
	"gonum.org/v1/gonum/mat"
)

// Mode indexes the six rigid-body motions in the fixed order spec.md §3
// requires: surge, sway, heave, roll, pitch, yaw.
type Mode int

const (
	Surge Mode = iota
	Sway
	Heave
	Roll
	Pitch
	Yaw
)

func (m Mode) String() string {
	switch m {
	case Surge:
		return "surge"
	case Sway:
		return "sway"
	case Heave:
		return "heave"
	case Roll:
		return "roll"
	case Pitch:
		return "pitch"
	case Yaw:
		return "yaw"
	default:
		return "unknown"
	}
}

// Body is the rigid-body mass description: mass m, center of gravity r_G,
// inertia tensor I about r_G (symmetric positive definite), and which
// modes are active.
type Body struct {
	Mass            float64
	CenterOfGravity mesh.Point
	Inertia         *mat.SymDense // 3x3, about CenterOfGravity
	dofMask         [6]bool
}

// New validates and constructs a Body. inertia must be 3x3 and symmetric
// positive definite (checked via Cholesky, matching the teacher's use of
// gonum's decomposition types for validating matrix structure).
func New(mass float64, centerOfGravity mesh.Point, inertia *mat.SymDense, dofMask [6]bool) (*Body, error) {
	if mass <= 0 {
		return nil, errs.New(errs.InvalidInput, "body.New", "mass must be positive")
	}
	if inertia == nil || inertia.SymmetricDim() != 3 {
		return nil, errs.New(errs.InvalidInput, "body.New", "inertia tensor must be 3x3")
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(inertia); !ok {
		return nil, errs.New(errs.InvalidInput, "body.New", "inertia tensor must be symmetric positive definite")
	}
	return &Body{
		Mass:            mass,
		CenterOfGravity: centerOfGravity,
		Inertia:         inertia,
		dofMask:         dofMask,
	}, nil
}

// DofEnabled reports whether the given mode is active.
func (b *Body) DofEnabled(m Mode) bool { return b.dofMask[m] }

// DofMask returns a copy of the six-mode activation mask.
func (b *Body) DofMask() [6]bool { return b.dofMask }

// AllDofEnabled returns a Body constructor mask with every mode active,
// the common case for a fully free-floating validation case.
func AllDofEnabled() [6]bool {
	return [6]bool{true, true, true, true, true, true}
}

// MassMatrix builds the 6x6 generalized mass matrix M used in the motion
// equation of spec.md §4.7: translational mass on the diagonal for
// {surge,sway,heave}, the 3x3 inertia tensor in the {roll,pitch,yaw}
// block, and zero coupling (the rigid-body mass matrix is diagonal-block
// when expressed about the center of gravity).
func (b *Body) MassMatrix() *mat.Dense {
	m := mat.NewDense(6, 6, nil)
	for i := 0; i < 3; i++ {
		m.Set(i, i, b.Mass)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(3+i, 3+j, b.Inertia.At(i, j))
		}
	}
	return m
}
