package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsOutOfRangeIndex(t *testing.T) {
	verts := []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	faces := [][]int{{0, 1, 5}}
	_, err := New(verts, faces)
	require.Error(t, err)
}

func TestNewRejectsDegeneratePanel(t *testing.T) {
	verts := []Point{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	faces := [][]int{{0, 1, 2}}
	_, err := New(verts, faces)
	require.Error(t, err)
}

func TestSphereIsWatertightAndClosed(t *testing.T) {
	m, err := Sphere(1.0, 16, 8)
	require.NoError(t, err)
	assert.True(t, m.Watertight())

	flux := m.CheckClosedFluxBalance()
	tol := 1e-8 * m.TotalArea()
	assert.Less(t, math.Abs(flux.X), tol)
	assert.Less(t, math.Abs(flux.Y), tol)
	assert.Less(t, math.Abs(flux.Z), tol)
}

func TestBoxTotalAreaAndWaterline(t *testing.T) {
	m, err := Box(4, 2, 1, -0.5)
	require.NoError(t, err)
	assert.True(t, m.Watertight())
	assert.InDelta(t, 2*(4*2)+2*(4*1)+2*(2*1), m.TotalArea(), 1e-9)
}

func TestBoxHalfSubmergedImmersedPanels(t *testing.T) {
	m, err := Box(4, 2, 1, -0.5)
	require.NoError(t, err)
	immersed := m.ImmersedPanelIndices()
	assert.NotEmpty(t, immersed)
	for _, idx := range immersed {
		assert.LessOrEqual(t, m.Panels()[idx].Centroid.Z, WaterlineTolerance)
	}
}

func TestTransformPreservesTopology(t *testing.T) {
	m, err := Sphere(1.0, 8, 6)
	require.NoError(t, err)
	translated, err := m.Transform(func(p Point) Point {
		return Point{p.X, p.Y, p.Z - 5}
	})
	require.NoError(t, err)
	assert.Equal(t, m.NumPanels(), translated.NumPanels())
	assert.InDelta(t, m.TotalArea(), translated.TotalArea(), 1e-9)
}

func TestValidateReportsQualityAndWatertight(t *testing.T) {
	m, err := Sphere(1.0, 12, 8)
	require.NoError(t, err)
	report := m.Validate()
	assert.True(t, report.Watertight)
	assert.Equal(t, m.NumPanels(), report.NumPanels)
	assert.Greater(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, 1.0)
}

func TestQuadPanelAreaWeightedCentroid(t *testing.T) {
	verts := []Point{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	p, err := NewPanel([]int{0, 1, 2, 3}, verts, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.Area, 1e-12)
	assert.InDelta(t, 0.5, p.Centroid.X, 1e-12)
	assert.InDelta(t, 0.5, p.Centroid.Y, 1e-12)
	assert.InDelta(t, 1.0, p.Normal.Norm(), 1e-12)
}

func TestCylinderWatertight(t *testing.T) {
	m, err := Cylinder(1.0, 2.0, 12, 4, -1.0)
	require.NoError(t, err)
	assert.True(t, m.Watertight())
}
