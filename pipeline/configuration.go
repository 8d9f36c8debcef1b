package pipeline

import (
	"runtime"

	"github.com/LexxSaa28/wavecore/green"
	"github.com/LexxSaa28/wavecore/solver"
)

// Parallelism configures the worker pools (spec.md §5, SPEC_FULL.md §5).
type Parallelism struct {
	Threads           int  // per-frequency row-assembly pool size; 0 means GOMAXPROCS(0)
	FrequencyParallel bool // schedule independent (ω) work units concurrently
}

// GPUConfig toggles optional device offload (SPEC_FULL.md Component 10).
type GPUConfig struct {
	Enabled bool
}

// Sparsification configures assembly's optional banded thresholding of S
// (spec.md §4.4).
type Sparsification struct {
	Enabled   bool
	Threshold float64
}

// Configuration is the immutable value handed to New, covering every
// option spec.md §6 enumerates plus the ambient parallelism/GPU/
// sparsification knobs SPEC_FULL.md §4.0 adds.
type Configuration struct {
	GreenMethod         green.Method
	GreenTolerance      float64
	GreenMaxSeriesTerms int
	Alpha               float64 // formulation constant, defaults to 1/2
	LinearSolver        solver.Options
	Parallelism         Parallelism
	GPU                 GPUConfig
	Sparsification      Sparsification

	// FailFast switches the default frequency-level propagation policy
	// (spec.md §7: "Frequency-level failures do not abort the entire sweep
	// by default... a configuration flag may switch to fail-fast") to
	// abort Run on the first frequency failure instead of recording its
	// status and continuing the sweep.
	FailFast bool
}

// Default mirrors the teacher's builder.Config default-filling pattern in
// builder.NewBuilder: every field a caller doesn't care about gets a
// sensible, spec-stated default.
func Default() Configuration {
	return Configuration{
		GreenMethod:         green.Delhommeau,
		GreenTolerance:      1e-6,
		GreenMaxSeriesTerms: 50,
		Alpha:               0.5,
		LinearSolver:        solver.DefaultOptions(),
		Parallelism: Parallelism{
			Threads:           runtime.GOMAXPROCS(0),
			FrequencyParallel: true,
		},
		GPU: GPUConfig{Enabled: false},
		Sparsification: Sparsification{
			Enabled:   false,
			Threshold: 0,
		},
	}
}
