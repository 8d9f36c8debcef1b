package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuiteRegistersAllBenchmarks(t *testing.T) {
	s := NewSuite(DefaultSuiteConfig())
	names := s.Names()
	assert.Contains(t, names, "sphere")
	assert.Contains(t, names, "wigley")
	assert.Contains(t, names, "dtmb5415")
	assert.Contains(t, names, "hydrostatic_box")
	assert.Contains(t, names, "cancellation")
}

func TestRunRejectsUnknownBenchmark(t *testing.T) {
	s := NewSuite(DefaultSuiteConfig())
	_, err := s.Run(context.Background(), "does-not-exist")
	assert.Error(t, err)
}

func TestHydrostaticBoxBenchmarkPasses(t *testing.T) {
	report, err := newHydrostaticBoxBenchmark().Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed, "errors: %v", report.Errors)
}

func TestCancellationBenchmarkPasses(t *testing.T) {
	report, err := newCancellationBenchmark(DefaultSuiteConfig()).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed, "errors: %v", report.Errors)
}

func TestSphereBenchmarkPasses(t *testing.T) {
	report, err := newSphereBenchmark(DefaultSuiteConfig()).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed, "errors: %v", report.Errors)
}

func TestHulmeTableIsMonotonicDecreasingInAddedMass(t *testing.T) {
	prev := HulmeAddedMassCoefficient(0.0)
	for _, ka := range []float64{0.5, 1.0, 2.0, 4.0, 8.0, 16.0} {
		cur := HulmeAddedMassCoefficient(ka)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestRunAllRecordsFailedExecutionWithoutAborting(t *testing.T) {
	s := NewSuite(DefaultSuiteConfig())
	reports := s.RunAll(context.Background())
	assert.Len(t, reports, len(s.Names()))
}
