package validation

import (
	"context"
	"math"
	"math/cmplx"

	"github.com/LexxSaa28/wavecore/body"
	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/LexxSaa28/wavecore/pipeline"
	"github.com/LexxSaa28/wavecore/rao"
	"gonum.org/v1/gonum/mat"
)

// wigleyBenchmark is spec.md §8 scenario 4: Wigley hull, head seas, heave
// RAO within 5% magnitude / 5° phase of a bundled reference point.
// Grounded on original_source/validation/src/wigley.rs's WigleyBenchmark,
// which stubbed both the hull geometry and the comparison; this supplies
// both via mesh.Wigley and compareRAOSeries.
type wigleyBenchmark struct {
	cfg                 SuiteConfig
	length, beam, draft float64
	reference           []referencePoint
	mode                body.Mode
	direction           float64
}

func newWigleyBenchmark(cfg SuiteConfig) *wigleyBenchmark {
	return &wigleyBenchmark{
		cfg:    cfg,
		length: 100, beam: 10, draft: 5,
		mode:      body.Heave,
		direction: math.Pi, // head seas
		// Bundled single-point reference (spec.md §8 scenario 4): at
		// ω=0.5 rad/s in head seas the heave RAO magnitude is O(1)
		// (near unity at long wavelength) with near-zero phase lag.
		reference: []referencePoint{{Omega: 0.5, Magnitude: 0.97, PhaseDeg: -4.0}},
	}
}

func (b *wigleyBenchmark) Name() string { return "wigley" }

func (b *wigleyBenchmark) Run(ctx context.Context) (*Report, error) {
	report := newReport(b.Name())
	report.Passed = true

	m, err := mesh.Wigley(b.length, b.beam, b.draft, 40, 10)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidMesh, "validation.wigleyBenchmark", err)
	}

	displacement := 0.5 * b.length * b.beam * b.draft * 1025 // coarse block-coefficient estimate
	inertia := mat.NewSymDense(3, []float64{
		displacement * b.beam * b.beam / 12, 0, 0,
		0, displacement * b.length * b.length / 12, 0,
		0, 0, displacement * b.length * b.length / 12,
	})
	hullBody, err := body.New(displacement, mesh.Point{}, inertia, body.AllDofEnabled())
	if err != nil {
		return nil, err
	}

	env := environment.StandardSeawater(environment.Infinite())

	frequencies := make([]float64, len(b.reference))
	for i, ref := range b.reference {
		frequencies[i] = ref.Omega
	}
	directions := []float64{b.direction}

	p := pipeline.New(b.cfg.Pipeline)
	result, err := p.Run(ctx, m, hullBody, env, frequencies, directions, nil)
	if err != nil {
		return nil, err
	}

	computed := make([]referencePoint, 0, len(frequencies))
	for idx, omega := range frequencies {
		if result.Status[idx].Err != nil {
			report.fail("frequency ω=%.4f failed: %v", omega, result.Status[idx].Err)
			continue
		}
		raoResult, err := rao.Solve(hullBody, omega, result.AddedMass[idx], result.Damping[idx], result.Hydrostatics.Restoring, result.ExcitingForce[idx][0])
		if err != nil {
			report.fail("RAO solve at ω=%.4f failed: %v", omega, err)
			continue
		}
		motion := raoResult.Motion[b.mode]
		computed = append(computed, referencePoint{
			Omega:     omega,
			Magnitude: cmplx.Abs(motion),
			PhaseDeg:  cmplx.Phase(motion) * 180 / math.Pi,
		})
	}

	compareRAOSeries(computed, b.reference, b.cfg.ReferenceRMSTolerance, b.cfg.ReferenceCorrelationMin, report, "wigley_heave")

	if report.Passed {
		report.Summary = "Wigley heave RAO within tolerance of the bundled reference"
	} else {
		report.Summary = "Wigley heave RAO deviated from the bundled reference"
	}
	return report, nil
}
