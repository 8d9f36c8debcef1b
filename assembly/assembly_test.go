package assembly

import (
	"testing"

	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/green"
	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRejectsEmptyMesh(t *testing.T) {
	empty := &mesh.Mesh{}
	_, err := Build(empty, mustEvaluator(t), 1.0, environment.Infinite(), Options{Alpha: 1})
	assert.Error(t, err)
}

func TestBuildProducesSquareMatrices(t *testing.T) {
	m, err := mesh.Sphere(1.0, 8, 4)
	require.NoError(t, err)

	mat, err := Build(m, mustEvaluator(t), 0.5, environment.Infinite(), Options{Alpha: 1, Threads: 2})
	require.NoError(t, err)

	n := m.NumPanels()
	rows, cols := mat.S.Dims()
	assert.Equal(t, n, rows)
	assert.Equal(t, n, cols)
	dRows, dCols := mat.D.Dims()
	assert.Equal(t, n, dRows)
	assert.Equal(t, n, dCols)
}

func TestBuildDiagonalDHasJumpTerm(t *testing.T) {
	m, err := mesh.Sphere(1.0, 8, 4)
	require.NoError(t, err)

	mat, err := Build(m, mustEvaluator(t), 0.5, environment.Infinite(), Options{Alpha: 1, Threads: 1})
	require.NoError(t, err)

	assert.InDelta(t, -0.5, real(mat.D.At(0, 0)), 1e-12)
}

func TestBuildIsDeterministicAcrossThreadCounts(t *testing.T) {
	m, err := mesh.Sphere(1.0, 8, 4)
	require.NoError(t, err)

	single, err := Build(m, mustEvaluator(t), 0.5, environment.Infinite(), Options{Alpha: 1, Threads: 1})
	require.NoError(t, err)
	multi, err := Build(m, mustEvaluator(t), 0.5, environment.Infinite(), Options{Alpha: 1, Threads: 4})
	require.NoError(t, err)

	n := m.NumPanels()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.InDelta(t, real(single.S.At(i, j)), real(multi.S.At(i, j)), 1e-9)
			assert.InDelta(t, imag(single.S.At(i, j)), imag(multi.S.At(i, j)), 1e-9)
		}
	}
}

func mustEvaluator(t *testing.T) green.Evaluator {
	t.Helper()
	e, err := green.New(green.Delhommeau, 1e-6, 50)
	require.NoError(t, err)
	return e
}
