package pipeline

import (
	"context"
	"testing"

	"github.com/LexxSaa28/wavecore/body"
	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sphereBody(t *testing.T) (*mesh.Mesh, *body.Body) {
	t.Helper()
	m, err := mesh.Sphere(1.0, 10, 6)
	require.NoError(t, err)
	inertia := mat.NewSymDense(3, []float64{100, 0, 0, 0, 100, 0, 0, 0, 100})
	b, err := body.New(500, mesh.Point{}, inertia, body.AllDofEnabled())
	require.NoError(t, err)
	return m, b
}

func TestRunProducesResultsForEveryFrequency(t *testing.T) {
	m, b := sphereBody(t)
	env := environment.StandardSeawater(environment.Infinite())

	cfg := Default()
	cfg.Parallelism.FrequencyParallel = false
	p := New(cfg)

	frequencies := []float64{0.5, 1.0}
	directions := []float64{0}

	result, err := p.Run(context.Background(), m, b, env, frequencies, directions, nil)
	require.NoError(t, err)
	assert.Len(t, result.AddedMass, 2)
	assert.Len(t, result.Damping, 2)
	assert.Len(t, result.ExcitingForce, 2)
	for i := range frequencies {
		require.NotNil(t, result.AddedMass[i])
		rows, cols := result.AddedMass[i].Dims()
		assert.Equal(t, 6, rows)
		assert.Equal(t, 6, cols)
	}
	assert.NotNil(t, result.Hydrostatics)
}

func TestRunRespectsCancelledContext(t *testing.T) {
	m, b := sphereBody(t)
	env := environment.StandardSeawater(environment.Infinite())

	p := New(Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := p.Run(ctx, m, b, env, []float64{0.5}, []float64{0}, nil)
	require.NoError(t, err)
	require.Len(t, result.Status, 1)
	assert.Error(t, result.Status[0].Err)
	assert.Nil(t, result.AddedMass[0])
}

func TestRunFailFastAbortsOnFirstCancellation(t *testing.T) {
	m, b := sphereBody(t)
	env := environment.StandardSeawater(environment.Infinite())

	cfg := Default()
	cfg.FailFast = true
	p := New(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, m, b, env, []float64{0.5}, []float64{0}, nil)
	assert.Error(t, err)
}

func TestRunParallelFrequenciesMatchesSequential(t *testing.T) {
	m, b := sphereBody(t)
	env := environment.StandardSeawater(environment.Infinite())

	cfgSeq := Default()
	cfgSeq.Parallelism.FrequencyParallel = false
	cfgPar := Default()
	cfgPar.Parallelism.FrequencyParallel = true

	frequencies := []float64{0.6, 0.9, 1.3}
	directions := []float64{0, 1.57}

	seq, err := New(cfgSeq).Run(context.Background(), m, b, env, frequencies, directions, nil)
	require.NoError(t, err)
	par, err := New(cfgPar).Run(context.Background(), m, b, env, frequencies, directions, nil)
	require.NoError(t, err)

	for i := range frequencies {
		assert.InDelta(t, seq.AddedMass[i].At(2, 2), par.AddedMass[i].At(2, 2), 1e-6)
	}
}
