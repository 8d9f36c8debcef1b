package body

import (
	"testing"

	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func diagonalInertia(ixx, iyy, izz float64) *mat.SymDense {
	return mat.NewSymDense(3, []float64{ixx, 0, 0, 0, iyy, 0, 0, 0, izz})
}

func TestNewRejectsNonPositiveMass(t *testing.T) {
	_, err := New(0, mesh.Point{}, diagonalInertia(1, 1, 1), AllDofEnabled())
	assert.Error(t, err)
}

func TestNewRejectsNonPositiveDefiniteInertia(t *testing.T) {
	notPD := mat.NewSymDense(3, []float64{1, 2, 0, 2, 1, 0, 0, 0, 1})
	_, err := New(1000, mesh.Point{}, notPD, AllDofEnabled())
	assert.Error(t, err)
}

func TestNewRejectsWrongSizedInertia(t *testing.T) {
	bad := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	_, err := New(1000, mesh.Point{}, bad, AllDofEnabled())
	assert.Error(t, err)
}

func TestMassMatrixLayout(t *testing.T) {
	b, err := New(1000, mesh.Point{Z: -1}, diagonalInertia(100, 200, 300), AllDofEnabled())
	require.NoError(t, err)

	m := b.MassMatrix()
	assert.InDelta(t, 1000, m.At(0, 0), 1e-9)
	assert.InDelta(t, 1000, m.At(1, 1), 1e-9)
	assert.InDelta(t, 1000, m.At(2, 2), 1e-9)
	assert.InDelta(t, 100, m.At(3, 3), 1e-9)
	assert.InDelta(t, 200, m.At(4, 4), 1e-9)
	assert.InDelta(t, 300, m.At(5, 5), 1e-9)
	assert.InDelta(t, 0, m.At(0, 3), 1e-9)
}

func TestDofMask(t *testing.T) {
	mask := [6]bool{true, false, true, false, true, false}
	b, err := New(1000, mesh.Point{}, diagonalInertia(1, 1, 1), mask)
	require.NoError(t, err)
	assert.True(t, b.DofEnabled(Surge))
	assert.False(t, b.DofEnabled(Sway))
	assert.True(t, b.DofEnabled(Heave))
	assert.Equal(t, mask, b.DofMask())
}
