package validation

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// referencePoint is one bundled (ω, |H|, phase) reference RAO sample,
// matching the (frequency -> values) map
// original_source/validation/src/reference_data.rs's ReferenceData.data
// keeps, specialized here to the single series a benchmark needs instead
// of that source's generic HashMap<String, Vec<f64>>.
type referencePoint struct {
	Omega     float64
	Magnitude float64
	PhaseDeg  float64
}

// compareRAOSeries checks computed magnitude/phase against a bundled
// reference series using the same statistics
// original_source/validation/src/statistics.rs's StatisticalAnalysis names
// (RMS relative error, correlation), computed here with
// gonum.org/v1/gonum/stat rather than that source's always-1.0 stub.
func compareRAOSeries(computed, reference []referencePoint, rmsTolerance, correlationMin float64, report *Report, label string) {
	if len(computed) != len(reference) {
		report.fail("%s: computed series length %d does not match reference length %d", label, len(computed), len(reference))
		return
	}

	n := len(reference)
	computedMag := make([]float64, n)
	referenceMag := make([]float64, n)
	var sumSquaredRelError float64
	var maxPhaseDelta float64

	for i := range reference {
		computedMag[i] = computed[i].Magnitude
		referenceMag[i] = reference[i].Magnitude

		rel := relativeError(computed[i].Magnitude, reference[i].Magnitude)
		sumSquaredRelError += rel * rel

		phaseDelta := math.Abs(angularDifferenceDeg(computed[i].PhaseDeg, reference[i].PhaseDeg))
		if phaseDelta > maxPhaseDelta {
			maxPhaseDelta = phaseDelta
		}
	}

	rms := math.Sqrt(sumSquaredRelError / float64(n))
	correlation := stat.Correlation(computedMag, referenceMag, nil)

	report.Metrics[label+"_rms_relative_error"] = rms
	report.Metrics[label+"_correlation"] = correlation
	report.Metrics[label+"_max_phase_delta_deg"] = maxPhaseDelta

	if rms > rmsTolerance {
		report.fail("%s: RMS relative error %.4f exceeds %.4f", label, rms, rmsTolerance)
	}
	if correlation < correlationMin {
		report.fail("%s: correlation %.4f below minimum %.4f", label, correlation, correlationMin)
	}
}

func angularDifferenceDeg(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
