package wave

import (
	"math"
	"testing"

	"github.com/LexxSaa28/wavecore/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWavenumberInfiniteDepthClosedForm(t *testing.T) {
	env := environment.StandardSeawater(environment.Infinite())
	omega := 1.0
	k, err := Wavenumber(omega, env)
	require.NoError(t, err)
	assert.InDelta(t, omega*omega/env.Gravity, k, 1e-12)
}

func TestWavenumberFiniteDepthSatisfiesDispersionRelation(t *testing.T) {
	depth, err := environment.Finite(50)
	require.NoError(t, err)
	env := environment.StandardSeawater(depth)

	omega := 0.8
	k, err := Wavenumber(omega, env)
	require.NoError(t, err)

	residual := env.Gravity*k*math.Tanh(k*50) - omega*omega
	assert.InDelta(t, 0, residual, 1e-6)
}

func TestWavenumberFiniteDepthConvergesToDeepWaterLimit(t *testing.T) {
	depth, err := environment.Finite(10000)
	require.NoError(t, err)
	env := environment.StandardSeawater(depth)

	omega := 1.2
	k, err := Wavenumber(omega, env)
	require.NoError(t, err)

	deepK := omega * omega / env.Gravity
	assert.InDelta(t, deepK, k, deepK*1e-3)
}

func TestWavenumberRejectsNonPositiveOmega(t *testing.T) {
	env := environment.StandardSeawater(environment.Infinite())
	_, err := Wavenumber(0, env)
	assert.Error(t, err)
	_, err = Wavenumber(-1, env)
	assert.Error(t, err)
}

func TestNewNormalizesDirection(t *testing.T) {
	env := environment.StandardSeawater(environment.Infinite())
	w, err := New(1.0, -math.Pi/2, env)
	require.NoError(t, err)
	assert.InDelta(t, 3*math.Pi/2, w.Direction, 1e-9)
}
