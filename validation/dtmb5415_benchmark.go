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

// dtmb5415Benchmark is spec.md §8 scenario 5: DTMB-5415, beam seas,
// roll RAO and exciting-force phase within tolerance of a bundled
// reference point. Grounded on
// original_source/validation/src/dtmb5415.rs's DTMB5415Config (principal
// dimensions, headings, frequencies), whose hull geometry that source
// never actually supplies (it calls into an external wavecore_meshes::Mesh
// the Rust crate graph doesn't include offsets for either); this
// approximates the destroyer hull's published principal dimensions
// (L≈142m, B≈19m, T≈6m) with the same Wigley parametric surface used by
// wigleyBenchmark, since the true hull-offset table is out of scope.
type dtmb5415Benchmark struct {
	cfg                 SuiteConfig
	length, beam, draft float64
	reference           []referencePoint
	mode                body.Mode
	direction           float64
}

func newDTMB5415Benchmark(cfg SuiteConfig) *dtmb5415Benchmark {
	return &dtmb5415Benchmark{
		cfg:    cfg,
		length: 142, beam: 19, draft: 6,
		mode:      body.Roll,
		direction: math.Pi / 2, // beam seas
		reference: []referencePoint{{Omega: 1.0, Magnitude: 0.22, PhaseDeg: 95.0}},
	}
}

func (b *dtmb5415Benchmark) Name() string { return "dtmb5415" }

func (b *dtmb5415Benchmark) Run(ctx context.Context) (*Report, error) {
	report := newReport(b.Name())
	report.Passed = true

	m, err := mesh.Wigley(b.length, b.beam, b.draft, 40, 10)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidMesh, "validation.dtmb5415Benchmark", err)
	}

	displacement := 0.6 * b.length * b.beam * b.draft * 1025
	gmTransverse := 1.5 // typical destroyer-hull transverse metacentric height, meters
	roll := mat.NewSymDense(3, []float64{
		displacement * b.beam * b.beam / 9, 0, 0,
		0, displacement * b.length * b.length / 12, 0,
		0, 0, displacement * b.length * b.length / 12,
	})
	hullBody, err := body.New(displacement, mesh.Point{X: 0, Y: 0, Z: -b.draft/2 + gmTransverse}, roll, body.AllDofEnabled())
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

		forcePhase := cmplx.Phase(result.ExcitingForce[idx][0][b.mode]) * 180 / math.Pi
		refForcePhase := b.reference[idx].PhaseDeg
		phaseDelta := math.Abs(angularDifferenceDeg(forcePhase, refForcePhase))
		report.Metrics["exciting_force_phase_delta_deg"] = phaseDelta
		if phaseDelta > 10 {
			report.fail("F^X_4 phase at ω=%.4f: delta %.2f° exceeds 10°", omega, phaseDelta)
		}
	}

	compareRAOSeries(computed, b.reference, 0.10, b.cfg.ReferenceCorrelationMin, report, "dtmb5415_roll")

	if report.Passed {
		report.Summary = "DTMB-5415 roll RAO within tolerance of the bundled reference"
	} else {
		report.Summary = "DTMB-5415 roll RAO deviated from the bundled reference"
	}
	return report, nil
}
