package validation

import "github.com/LexxSaa28/wavecore/pipeline"

// SuiteConfig parameterizes the built-in benchmarks: the pipeline
// configuration they drive and the tolerances spec.md §4.8/§8 fix.
type SuiteConfig struct {
	Pipeline pipeline.Configuration

	// SphereRelativeErrorTolerance bounds the relative error of A_33/B_33
	// against the Hulme table (spec.md §4.8: "pass if relative error ≤ 5%").
	SphereRelativeErrorTolerance float64

	// ReferenceRMSTolerance and ReferenceCorrelationMin bound the
	// Wigley/DTMB-5415 comparisons (spec.md §4.8: "RMS relative error ≤ 5%
	// and correlation ≥ 0.95").
	ReferenceRMSTolerance   float64
	ReferenceCorrelationMin float64
}

// DefaultSuiteConfig returns the tolerances spec.md §4.8 fixes, driving a
// default pipeline.Configuration.
func DefaultSuiteConfig() SuiteConfig {
	return SuiteConfig{
		Pipeline:                     pipeline.Default(),
		SphereRelativeErrorTolerance: 0.05,
		ReferenceRMSTolerance:        0.05,
		ReferenceCorrelationMin:      0.95,
	}
}
