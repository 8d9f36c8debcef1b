package resistance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containerShipHull() Hull {
	return Hull{
		LengthOverall:               300.0,
		LengthBetweenPerpendiculars: 280.0,
		LengthWaterline:             285.0,
		Beam:                        40.0,
		Draft:                       12.0,
		Displacement:                52000.0,
		BlockCoefficient:            0.65,
		MidshipCoefficient:          0.99,
		WaterplaneCoefficient:       0.85,
		PrismaticCoefficient:        0.66,
		LongitudinalCenterBuoyancy:  2.0,
		HalfAngleEntrance:           20.0,
		SternType:                   NormalStern,
		BulbousBow:                  &BulbousBow{Area: 25.0, CenterHeight: 4.0},
		TransomArea:                 0.0,
		Appendages: []Appendage{
			{Type: Rudder, Area: 80.0},
		},
	}
}

func TestCalculateResistanceProducesPositiveComponents(t *testing.T) {
	conditions := OperatingConditions{
		SpeedKnots:         18.0,
		Draft:              12.0,
		Displacement:       52000.0,
		WaterDensity:       1025.0,
		KinematicViscosity: 1.188e-6,
	}

	result, err := Calculate(containerShipHull(), conditions, DefaultConfig())
	require.NoError(t, err)
	assert.Greater(t, result.TotalResistance, 0.0)
	assert.Greater(t, result.FrictionalResistance, 0.0)
	assert.Greater(t, result.EffectivePower, 0.0)
	assert.Greater(t, result.Applicability, 0.5)
}

func TestCalculateRejectsInvalidHull(t *testing.T) {
	hull := containerShipHull()
	hull.LengthBetweenPerpendiculars = -10.0

	_, err := Calculate(hull, DefaultOperatingConditions(), DefaultConfig())
	assert.Error(t, err)
}

func TestCalculateRejectsBelowConfidenceThreshold(t *testing.T) {
	hull := containerShipHull()
	hull.BlockCoefficient = 0.2 // far outside the 0.4-0.85 validity range
	// CB=0.2 scores 0.5 on its own check, so the six-way average is about
	// 0.92; a threshold above that must reject the input.
	cfg := DefaultConfig()
	cfg.MinimumConfidence = 0.95

	_, err := Calculate(hull, DefaultOperatingConditions(), cfg)
	assert.Error(t, err)
}

func TestAssessApplicabilityScoresDefaultHullHighly(t *testing.T) {
	score := AssessApplicability(containerShipHull(), DefaultOperatingConditions())
	assert.Greater(t, score, 0.5)
}

func TestCalculateAddedResistanceFallsBackToEmpiricalWithoutRAOData(t *testing.T) {
	spectrum := WaveSpectrum{
		SignificantWaveHeight: 3.0,
		PeakPeriod:            8.0,
		WaveDirectionDeg:      45.0,
		Type:                  JONSWAP,
		Frequencies:           []float64{0.1, 0.5, 1.0, 1.5, 2.0},
		SpectralDensities:     []float64{0.5, 1.2, 0.8, 0.3, 0.1},
	}
	conditions := OperatingConditions{
		SpeedKnots:         18.0,
		Draft:              12.0,
		Displacement:       52000.0,
		WaterDensity:       1025.0,
		KinematicViscosity: 1.188e-6,
	}

	result, err := CalculateAddedResistance(containerShipHull(), conditions, spectrum, nil)
	require.NoError(t, err)
	assert.Equal(t, "Empirical (STAWAVE-2 simplified)", result.Method)
	assert.Greater(t, result.TotalResistance, 0.0)
	assert.InDelta(t, result.TotalResistance, result.MeanComponent+result.OscillatoryComponent, 1e-6)
}

func TestCalculateAddedResistanceIntegratesRAOSpectrum(t *testing.T) {
	spectrum := WaveSpectrum{
		SignificantWaveHeight: 3.0,
		PeakPeriod:            8.0,
		WaveDirectionDeg:      0.0,
		Type:                  JONSWAP,
		Frequencies:           []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.1},
		SpectralDensities:     []float64{0.2, 1.0, 1.5, 0.9, 0.4, 0.1},
	}
	raoPoints := []RAOPoint{
		{Omega: 0.2, Heave: complex(0.8, 0), Pitch: complex(0.01, 0)},
		{Omega: 0.4, Heave: complex(1.1, 0), Pitch: complex(0.02, 0)},
		{Omega: 0.6, Heave: complex(0.9, 0), Pitch: complex(0.015, -0.01)},
		{Omega: 0.8, Heave: complex(0.5, 0), Pitch: complex(0.008, 0)},
	}

	result, err := CalculateAddedResistance(containerShipHull(), DefaultOperatingConditions(), spectrum, raoPoints)
	require.NoError(t, err)
	assert.Equal(t, "RAO-spectrum integration", result.Method)
	assert.GreaterOrEqual(t, result.TotalResistance, 0.0)
}

func TestCalculateAddedResistanceRejectsMismatchedSpectrumArrays(t *testing.T) {
	spectrum := WaveSpectrum{
		Frequencies:       []float64{0.1, 0.2},
		SpectralDensities: []float64{0.1},
	}
	_, err := CalculateAddedResistance(containerShipHull(), DefaultOperatingConditions(), spectrum, nil)
	assert.Error(t, err)
}

func TestDirectionalFactorHeadSeasExceedsBeamSeas(t *testing.T) {
	hull := containerShipHull()
	conditions := DefaultOperatingConditions()

	head := WaveSpectrum{
		SignificantWaveHeight: 3.0, PeakPeriod: 8.0, WaveDirectionDeg: 0.0,
		Frequencies: []float64{0.1, 1.0}, SpectralDensities: []float64{1.0, 1.0},
	}
	beam := head
	beam.WaveDirectionDeg = 90.0

	headResult, err := CalculateAddedResistance(hull, conditions, head, nil)
	require.NoError(t, err)
	beamResult, err := CalculateAddedResistance(hull, conditions, beam, nil)
	require.NoError(t, err)

	assert.Greater(t, headResult.TotalResistance, beamResult.TotalResistance)
}

func TestRangeScoreDecaysOutsideBounds(t *testing.T) {
	assert.Equal(t, 1.0, rangeScore(5.0, 1.0, 10.0))
	assert.Less(t, rangeScore(0.5, 1.0, 10.0), 1.0)
	assert.Greater(t, rangeScore(0.5, 1.0, 10.0), 0.0)
	assert.Equal(t, 0.0, rangeScore(-100.0, 1.0, 10.0))
}
