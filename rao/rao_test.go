package rao

import (
	"testing"

	"github.com/LexxSaa28/wavecore/body"
	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testBody(t *testing.T) *body.Body {
	t.Helper()
	inertia := mat.NewSymDense(3, []float64{1e5, 0, 0, 0, 1e5, 0, 0, 0, 1e5})
	b, err := body.New(1e4, mesh.Point{Z: -1}, inertia, body.AllDofEnabled())
	require.NoError(t, err)
	return b
}

func TestSolveHeaveOnlyRestoring(t *testing.T) {
	b := testBody(t)
	added := mat.NewDense(6, 6, nil)
	damping := mat.NewDense(6, 6, nil)
	restoring := mat.NewDense(6, 6, nil)
	restoring.Set(2, 2, 1e5)

	var excitation [6]complex128
	excitation[2] = complex(1e4, 0)

	result, err := Solve(b, 0.5, added, damping, restoring, excitation)
	require.NoError(t, err)
	assert.False(t, result.Singular[2])
	assert.NotZero(t, result.Motion[2])
}

func TestSolveFlagsSingularModeAtZeroFrequency(t *testing.T) {
	b := testBody(t)
	added := mat.NewDense(6, 6, nil)
	damping := mat.NewDense(6, 6, nil)
	restoring := mat.NewDense(6, 6, nil)
	restoring.Set(2, 2, 1e5) // heave restored, surge (index 0) is not

	var excitation [6]complex128
	excitation[0] = complex(100, 0)
	excitation[2] = complex(100, 0)

	result, err := Solve(b, 0, added, damping, restoring, excitation)
	require.NoError(t, err)
	assert.True(t, result.Singular[0])
	assert.Equal(t, complex128(0), result.Motion[0])
	assert.False(t, result.Singular[2])
}

func TestSolveAllModesSingularReturnsZeroMotion(t *testing.T) {
	b := testBody(t)
	added := mat.NewDense(6, 6, nil)
	damping := mat.NewDense(6, 6, nil)
	restoring := mat.NewDense(6, 6, nil)

	result, err := Solve(b, 0, added, damping, restoring, [6]complex128{})
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		assert.True(t, result.Singular[i])
		assert.Equal(t, complex128(0), result.Motion[i])
	}
}
