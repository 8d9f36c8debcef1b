package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAlwaysReturnsAUsableBackend(t *testing.T) {
	backend, status := Select()
	require.NotNil(t, backend)
	defer backend.Free()
	assert.NotEmpty(t, status.BackendUsed)
}

func TestCPUBackendPairwiseDistances(t *testing.T) {
	b := &cpuBackend{}
	fieldX := []float64{0, 3}
	fieldY := []float64{0, 0}
	fieldZ := []float64{0, 0}
	sourceX := []float64{0}
	sourceY := []float64{0}
	sourceZ := []float64{0}

	out := make([]float64, 2)
	err := b.PairwiseDistances(fieldX, fieldY, fieldZ, sourceX, sourceY, sourceZ, out)
	require.NoError(t, err)
	assert.InDelta(t, 0, out[0], 1e-12)
	assert.InDelta(t, 3, out[1], 1e-12)
}

func TestCPUBackendRejectsEmptyInput(t *testing.T) {
	b := &cpuBackend{}
	err := b.PairwiseDistances(nil, nil, nil, []float64{0}, []float64{0}, []float64{0}, nil)
	assert.Error(t, err)
}

func TestCPUBackendName(t *testing.T) {
	b := &cpuBackend{}
	assert.Equal(t, "cpu", b.Name())
}
