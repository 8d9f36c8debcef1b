package solver

import (
	"testing"

	"github.com/LexxSaa28/wavecore/internal/cmplx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagDominant(n int) *cmplx.Matrix {
	m := cmplx.NewMatrix(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				m.Set(i, j, complex(float64(n)+1, 0.5))
			} else {
				m.Set(i, j, complex(0.1, 0.05))
			}
		}
	}
	return m
}

func TestPrepareDirectSolvesKnownSystem(t *testing.T) {
	n := 4
	a := diagDominant(n)
	xExpected := []complex128{1, 2, 3, 4}
	b := a.MulVec(xExpected)

	sys, err := Prepare(a, Options{Method: Direct})
	require.NoError(t, err)
	assert.Equal(t, Direct, sys.Method())

	x, err := sys.Solve(b)
	require.NoError(t, err)
	for i := range x {
		assert.InDelta(t, real(xExpected[i]), real(x[i]), 1e-6)
		assert.InDelta(t, imag(xExpected[i]), imag(x[i]), 1e-6)
	}
}

func TestPrepareIterativeSolvesKnownSystem(t *testing.T) {
	n := 20
	a := diagDominant(n)
	xExpected := make([]complex128, n)
	for i := range xExpected {
		xExpected[i] = complex(float64(i+1), 0)
	}
	b := a.MulVec(xExpected)

	opts := DefaultOptions()
	opts.Method = Iterative
	sys, err := Prepare(a, opts)
	require.NoError(t, err)
	assert.Equal(t, Iterative, sys.Method())

	x, err := sys.Solve(b)
	require.NoError(t, err)
	for i := range x {
		assert.InDelta(t, real(xExpected[i]), real(x[i]), 1e-4)
	}
}

func TestPrepareAdaptiveResolvesToDirectBelowThreshold(t *testing.T) {
	a := diagDominant(10)
	sys, err := Prepare(a, Options{Method: Adaptive})
	require.NoError(t, err)
	assert.Equal(t, Direct, sys.Method())
}

func TestPrepareRejectsNonSquareMatrix(t *testing.T) {
	m := cmplx.NewMatrix(2, 3, nil)
	_, err := Prepare(m, DefaultOptions())
	assert.Error(t, err)
}

func TestSystemReusesFactorizationAcrossRHS(t *testing.T) {
	n := 6
	a := diagDominant(n)
	sys, err := Prepare(a, Options{Method: Direct})
	require.NoError(t, err)

	for rhs := 0; rhs < 6; rhs++ {
		b := make([]complex128, n)
		b[rhs] = 1
		x, err := sys.Solve(b)
		require.NoError(t, err)
		assert.Len(t, x, n)
	}
}

func TestPrepareDirectRejectsSingularMatrix(t *testing.T) {
	n := 3
	m := cmplx.NewMatrix(n, n, nil)
	_, err := Prepare(m, Options{Method: Direct})
	assert.Error(t, err)
}
