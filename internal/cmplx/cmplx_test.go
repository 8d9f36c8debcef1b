package cmplx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagDominantMatrix(n int) *Matrix {
	m := NewMatrix(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				m.Set(i, j, complex(float64(n)+1, 0.5))
			} else {
				m.Set(i, j, complex(0.1/float64(n), 0.05/float64(n)))
			}
		}
	}
	return m
}

func residualNorm(a *Matrix, x, b []complex128) float64 {
	r := VecSub(b, a.MulVec(x))
	return VecNorm(r)
}

func TestLUSolveRecoversKnownSolution(t *testing.T) {
	n := 6
	a := diagDominantMatrix(n)
	xExpected := make([]complex128, n)
	for i := range xExpected {
		xExpected[i] = complex(float64(i+1), float64(-i))
	}
	b := a.MulVec(xExpected)

	lu, err := Factorize(a)
	require.NoError(t, err)
	x := lu.Solve(b)

	for i := range x {
		assert.InDelta(t, real(xExpected[i]), real(x[i]), 1e-8)
		assert.InDelta(t, imag(xExpected[i]), imag(x[i]), 1e-8)
	}
}

func TestLUFactorizeSingular(t *testing.T) {
	a := NewMatrix(2, 2, []complex128{1, 1, 1, 1})
	_, err := Factorize(a)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestGMRESConverges(t *testing.T) {
	n := 8
	a := diagDominantMatrix(n)
	b := make([]complex128, n)
	for i := range b {
		b[i] = complex(1, float64(i)*0.1)
	}

	opts := DefaultIterativeOptions()
	x, err := GMRES(a, b, opts)
	require.NoError(t, err)

	assert.Less(t, residualNorm(a, x, b)/VecNorm(b), opts.Tolerance*10)
}

func TestBiCGSTABConverges(t *testing.T) {
	n := 8
	a := diagDominantMatrix(n)
	b := make([]complex128, n)
	for i := range b {
		b[i] = complex(1, float64(i)*0.1)
	}

	opts := DefaultIterativeOptions()
	x, err := BiCGSTAB(a, b, opts)
	require.NoError(t, err)

	assert.Less(t, residualNorm(a, x, b)/VecNorm(b), opts.Tolerance*10)
}

func TestJacobiPreconditionerImprovesConvergence(t *testing.T) {
	n := 10
	a := diagDominantMatrix(n)
	b := make([]complex128, n)
	for i := range b {
		b[i] = complex(1, 0)
	}

	opts := DefaultIterativeOptions()
	opts.Preconditioner = NewJacobiPreconditioner(a)
	x, err := GMRES(a, b, opts)
	require.NoError(t, err)
	assert.Less(t, residualNorm(a, x, b)/VecNorm(b), opts.Tolerance*10)
}

func TestVecNorm(t *testing.T) {
	v := []complex128{complex(3, 4)}
	assert.InDelta(t, 5.0, VecNorm(v), 1e-12)
}

func TestMulVecDimensionMismatchPanics(t *testing.T) {
	m := NewMatrix(2, 3, nil)
	assert.Panics(t, func() {
		m.MulVec([]complex128{1, 2})
	})
}

func TestIdentity(t *testing.T) {
	id := Identity(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := complex(0.0, 0.0)
			if i == j {
				want = 1
			}
			assert.Equal(t, want, id.At(i, j))
		}
	}
}

func TestSqrtHelperMatchesMath(t *testing.T) {
	assert.InDelta(t, math.Sqrt(2), sqrt(2), 1e-15)
}
