package green

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownMethod(t *testing.T) {
	_, err := New(Method(99), 1e-6, 50)
	assert.Error(t, err)
}

func TestNewRejectsNonPositiveTolerance(t *testing.T) {
	_, err := New(Delhommeau, 0, 50)
	assert.Error(t, err)
}

func TestDelhommeauCoincidentPointReturnsAnalyticLimit(t *testing.T) {
	e, err := New(Delhommeau, 1e-6, 50)
	require.NoError(t, err)

	p := mesh.Point{X: 1, Y: 2, Z: -3}
	g, _, err := e.Evaluate(p, p, 1.0, environment.Infinite())
	require.NoError(t, err)
	assert.InDelta(t, real(coincidentLimit), real(g), 1e-12)
	assert.InDelta(t, imag(coincidentLimit), imag(g), 1e-12)
}

func TestDelhommeauInfiniteDepthMagnitudeDecaysWithDistance(t *testing.T) {
	e, err := New(Delhommeau, 1e-6, 50)
	require.NoError(t, err)

	near := mesh.Point{X: 1, Y: 0, Z: 0}
	far := mesh.Point{X: 10, Y: 0, Z: 0}
	origin := mesh.Point{X: 0, Y: 0, Z: 0}

	gNear, _, err := e.Evaluate(near, origin, 1.0, environment.Infinite())
	require.NoError(t, err)
	gFar, _, err := e.Evaluate(far, origin, 1.0, environment.Infinite())
	require.NoError(t, err)

	assert.Greater(t, cmplx.Abs(gNear), cmplx.Abs(gFar))
}

func TestDelhommeauInfiniteDepthIsSymmetricInFieldAndSource(t *testing.T) {
	e, err := New(Delhommeau, 1e-6, 50)
	require.NoError(t, err)

	a := mesh.Point{X: 1, Y: 2, Z: -1}
	b := mesh.Point{X: 4, Y: -1, Z: -2}

	gAB, _, err := e.Evaluate(a, b, 0.8, environment.Infinite())
	require.NoError(t, err)
	gBA, _, err := e.Evaluate(b, a, 0.8, environment.Infinite())
	require.NoError(t, err)

	assert.InDelta(t, real(gAB), real(gBA), 1e-9)
	assert.InDelta(t, imag(gAB), imag(gBA), 1e-9)
}

func TestDelhommeauFiniteDepthAddsImageTerm(t *testing.T) {
	e, err := New(Delhommeau, 1e-6, 50)
	require.NoError(t, err)

	depth, err := environment.Finite(20)
	require.NoError(t, err)

	xf := mesh.Point{X: 5, Y: 0, Z: -1}
	xs := mesh.Point{X: 0, Y: 0, Z: -2}

	gFinite, _, err := e.Evaluate(xf, xs, 0.5, depth)
	require.NoError(t, err)
	gInfinite, _, err := e.Evaluate(xf, xs, 0.5, environment.Infinite())
	require.NoError(t, err)

	assert.NotEqual(t, gFinite, gInfinite)
}

func TestHigherOrderSeriesInfiniteDepthMatchesDelhommeau(t *testing.T) {
	series, err := New(HigherOrderSeries, 1e-6, 50)
	require.NoError(t, err)
	delh, err := New(Delhommeau, 1e-6, 50)
	require.NoError(t, err)

	xf := mesh.Point{X: 3, Y: 1, Z: -0.5}
	xs := mesh.Point{X: 0, Y: 0, Z: -1}

	gSeries, _, err := series.Evaluate(xf, xs, 0.7, environment.Infinite())
	require.NoError(t, err)
	gDelh, _, err := delh.Evaluate(xf, xs, 0.7, environment.Infinite())
	require.NoError(t, err)

	assert.InDelta(t, real(gDelh), real(gSeries), 1e-12)
	assert.InDelta(t, imag(gDelh), imag(gSeries), 1e-12)
}

func TestHigherOrderSeriesFiniteDepthConverges(t *testing.T) {
	e, err := New(HigherOrderSeries, 1e-4, 100)
	require.NoError(t, err)

	depth, err := environment.Finite(15)
	require.NoError(t, err)

	xf := mesh.Point{X: 2, Y: 0, Z: -1}
	xs := mesh.Point{X: 0, Y: 0, Z: -1.5}

	g, grad, err := e.Evaluate(xf, xs, 0.4, depth)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(real(g)))
	assert.False(t, math.IsNaN(imag(g)))
	assert.False(t, math.IsNaN(real(grad.X)))
}

func TestEvaluateUnderflowUsesCoincidentLimit(t *testing.T) {
	e, err := New(Delhommeau, 1e-6, 50)
	require.NoError(t, err)

	xf := mesh.Point{X: 1e-14, Y: 0, Z: 0}
	xs := mesh.Point{X: 0, Y: 0, Z: 0}

	g, _, err := e.Evaluate(xf, xs, 1e-3, environment.Infinite())
	require.NoError(t, err)
	assert.Equal(t, coincidentLimit, g)
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "Delhommeau", Delhommeau.String())
	assert.Equal(t, "HigherOrderSeries", HigherOrderSeries.String())
}
