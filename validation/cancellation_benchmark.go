package validation

import (
	"context"

	"github.com/LexxSaa28/wavecore/body"
	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/LexxSaa28/wavecore/pipeline"
	"gonum.org/v1/gonum/mat"
)

// cancellationBenchmark is spec.md §8 scenario 6: a sweep whose deadline
// only allows some frequencies to finish must produce populated tables for
// those and an OperationCancelled status for the rest, with no partial
// rows, and Run itself must not fail the whole sweep (spec.md §7's default
// non-fail-fast propagation policy). Driven sequentially
// (FrequencyParallel: false) so the deadline reliably lands after a small,
// deterministic number of frequencies instead of racing the worker pool.
type cancellationBenchmark struct {
	cfg SuiteConfig
}

func newCancellationBenchmark(cfg SuiteConfig) *cancellationBenchmark {
	return &cancellationBenchmark{cfg: cfg}
}

func (b *cancellationBenchmark) Name() string { return "cancellation" }

func (b *cancellationBenchmark) Run(parentCtx context.Context) (*Report, error) {
	report := newReport(b.Name())
	report.Passed = true

	m, err := mesh.Hemisphere(1.0, 12, 6)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidMesh, "validation.cancellationBenchmark", err)
	}
	inertia := mat.NewSymDense(3, []float64{400, 0, 0, 0, 400, 0, 0, 0, 400})
	hullBody, err := body.New(1000, mesh.Point{}, inertia, [6]bool{false, false, true, false, false, false})
	if err != nil {
		return nil, err
	}
	env := environment.StandardSeawater(environment.Infinite())

	const total = 20
	const allowedToFinish = 4
	frequencies := make([]float64, total)
	for i := range frequencies {
		frequencies[i] = 0.3 + 0.05*float64(i)
	}

	cfg := b.cfg.Pipeline
	cfg.Parallelism.FrequencyParallel = false
	cfg.FailFast = false
	p := pipeline.New(cfg)

	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	observer := &cancellingObserver{cancelAfter: allowedToFinish, cancel: cancel}

	result, err := p.Run(ctx, m, hullBody, env, frequencies, nil, observer)
	if err != nil {
		return nil, err
	}

	for i := 0; i < allowedToFinish; i++ {
		if result.Status[i].Err != nil {
			report.fail("frequency index %d expected to complete before cancellation, got: %v", i, result.Status[i].Err)
		}
		if result.AddedMass[i] == nil {
			report.fail("frequency index %d expected a populated AddedMass row", i)
		}
	}
	for i := allowedToFinish; i < total; i++ {
		if !errs.Is(result.Status[i].Err, errs.OperationCancelled) {
			report.fail("frequency index %d expected OperationCancelled, got: %v", i, result.Status[i].Err)
		}
		if result.AddedMass[i] != nil {
			report.fail("frequency index %d must not have a partial AddedMass row", i)
		}
	}

	if report.Passed {
		report.Summary = "cancellation mid-sweep populated the completed rows and marked the rest OperationCancelled"
	} else {
		report.Summary = "cancellation mid-sweep did not match the expected partial-completion pattern"
	}
	return report, nil
}

// cancellingObserver fires the cancel func once cancelAfter frequencies
// have completed, simulating the deadline spec.md §8 scenario 6 describes.
type cancellingObserver struct {
	pipeline.NoopObserver
	cancelAfter int
	completed   int
	cancel      context.CancelFunc
}

func (o *cancellingObserver) OnFrequencyDone(status pipeline.FrequencyStatus) {
	o.completed++
	if o.completed >= o.cancelAfter {
		o.cancel()
	}
}
