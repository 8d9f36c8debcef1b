package hydrostatics

import (
	"math"
	"testing"

	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rhoSeawater = 1025.0
	gStandard   = 9.80665
)

// TestHalfSubmergedBox exercises scenario 3 of the validation harness: a
// 4x2x1 m box floating with its waterline at half depth gives an exact
// displaced volume and waterplane area independent of panel density.
func TestHalfSubmergedBox(t *testing.T) {
	m, err := mesh.Box(4, 2, 1, -0.5)
	require.NoError(t, err)

	props, err := Compute(m, rhoSeawater, gStandard, mesh.Point{X: 0, Y: 0, Z: -0.25})
	require.NoError(t, err)

	assert.InDelta(t, 4.0, props.Volume, 1e-6)
	assert.InDelta(t, 8.0, props.WaterplaneArea, 1e-6)

	wantK33 := rhoSeawater * gStandard * 8.0
	assert.InDelta(t, wantK33, props.Restoring.At(2, 2), 1e-3)

	assert.InDelta(t, 0, props.Restoring.At(0, 0), 1e-12)
	assert.InDelta(t, 0, props.Restoring.At(1, 1), 1e-12)
	assert.InDelta(t, 0, props.Restoring.At(5, 5), 1e-12)
}

func TestComputeRejectsNonPositiveDensity(t *testing.T) {
	m, err := mesh.Box(4, 2, 1, -0.5)
	require.NoError(t, err)
	_, err = Compute(m, 0, gStandard, mesh.Point{})
	assert.Error(t, err)
}

func TestComputeRejectsNonPositiveGravity(t *testing.T) {
	m, err := mesh.Box(4, 2, 1, -0.5)
	require.NoError(t, err)
	_, err = Compute(m, rhoSeawater, 0, mesh.Point{})
	assert.Error(t, err)
}

func TestFullySubmergedSphereHasNoWaterplane(t *testing.T) {
	m, err := mesh.Sphere(1.0, 16, 8)
	require.NoError(t, err)
	translated, err := m.Transform(func(p mesh.Point) mesh.Point {
		return mesh.Point{X: p.X, Y: p.Y, Z: p.Z - 10}
	})
	require.NoError(t, err)

	props, err := Compute(translated, rhoSeawater, gStandard, mesh.Point{X: 0, Y: 0, Z: -10})
	require.NoError(t, err)

	wantVolume := 4.0 / 3.0 * math.Pi
	assert.InDelta(t, wantVolume, props.Volume, wantVolume*0.1)
	assert.InDelta(t, 0, props.WaterplaneArea, 1e-9)
	assert.InDelta(t, 0, props.Restoring.At(2, 2), 1e-9)
}

func TestCenterOfBuoyancyOfHalfSubmergedBoxIsAtMidDepth(t *testing.T) {
	m, err := mesh.Box(4, 2, 1, -0.5)
	require.NoError(t, err)
	props, err := Compute(m, rhoSeawater, gStandard, mesh.Point{X: 0, Y: 0, Z: -0.25})
	require.NoError(t, err)
	assert.InDelta(t, -0.25, props.CenterOfBuoyancy.Z, 1e-6)
	assert.InDelta(t, 0, props.CenterOfBuoyancy.X, 1e-9)
	assert.InDelta(t, 0, props.CenterOfBuoyancy.Y, 1e-9)
}
