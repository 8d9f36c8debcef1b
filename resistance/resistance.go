package resistance

import (
	"github.com/LexxSaa28/wavecore/body"
	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/pipeline"
	"github.com/LexxSaa28/wavecore/rao"
)

// Breakdown is the full resistance picture for a hull/speed/sea-state
// point: calm water plus waves. There is no wind-resistance member —
// SPEC_FULL.md §4.9's Non-goal excludes windage (types.rs's
// ResistanceBreakdown also carries a WindResistance field; it is dropped
// here, see DESIGN.md).
type Breakdown struct {
	CalmWater *CalmWaterResult
	Waves     *AddedResistanceResult // nil when no wave spectrum was evaluated
	Total     float64                // N, CalmWater.TotalResistance + Waves.TotalResistance (0 if Waves is nil)
}

// CalculateTotal runs the calm-water Holtrop-Mennen calculation and, when a
// wave spectrum and RAO points are supplied, the added-resistance-in-waves
// step on top of it (SPEC_FULL.md §4.9: "wired as an optional
// post-processing step after RAOs are available").
func CalculateTotal(hull Hull, conditions OperatingConditions, cfg Config, spectrum *WaveSpectrum, raoPoints []RAOPoint) (*Breakdown, error) {
	calm, err := Calculate(hull, conditions, cfg)
	if err != nil {
		return nil, err
	}

	breakdown := &Breakdown{CalmWater: calm, Total: calm.TotalResistance}
	if spectrum == nil {
		return breakdown, nil
	}

	waves, err := CalculateAddedResistance(hull, conditions, *spectrum, raoPoints)
	if err != nil {
		return nil, err
	}
	breakdown.Waves = waves
	breakdown.Total += waves.TotalResistance
	return breakdown, nil
}

// RAOPointsFromPipeline solves the heave/pitch RAO at every frequency of an
// already-completed pipeline.Result and returns them as RAOPoints ready for
// CalculateAddedResistance. directionIndex selects which of the Result's
// wave directions to solve the exciting force for (added resistance is
// evaluated at one encounter heading at a time, matching
// WaveSpectrum.WaveDirectionDeg). Frequencies the pipeline could not
// complete (nil AddedMass, per spec.md §7's partial-sweep policy) are
// skipped rather than erroring, since CalculateAddedResistance only needs
// enough points to integrate against the spectrum.
func RAOPointsFromPipeline(result *pipeline.Result, hullBody *body.Body, frequencies []float64, directionIndex int) ([]RAOPoint, error) {
	if len(frequencies) != len(result.AddedMass) {
		return nil, errs.New(errs.InvalidInput, "resistance.RAOPointsFromPipeline", "frequencies must align 1:1 with the pipeline result")
	}

	points := make([]RAOPoint, 0, len(frequencies))
	for i, omega := range frequencies {
		if result.AddedMass[i] == nil || result.Damping[i] == nil {
			continue
		}
		if directionIndex >= len(result.ExcitingForce[i]) {
			continue
		}

		solved, err := rao.Solve(hullBody, omega, result.AddedMass[i], result.Damping[i], result.Hydrostatics.Restoring, result.ExcitingForce[i][directionIndex])
		if err != nil {
			return nil, err
		}

		points = append(points, RAOPoint{
			Omega: omega,
			Heave: solved.Motion[body.Heave],
			Pitch: solved.Motion[body.Pitch],
		})
	}
	return points, nil
}
