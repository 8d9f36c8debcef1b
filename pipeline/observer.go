package pipeline

import "github.com/LexxSaa28/wavecore/solver"

// FrequencyStatus reports what happened while processing one ω work unit
// (SPEC_FULL.md §6: "Status []FrequencyStatus").
type FrequencyStatus struct {
	Omega        float64
	SolverMethod solver.Method
	GPUBackend   string
	GPUFellBack  bool
	Err          error // non-nil only when the frequency was discarded
}

// Observer receives progress/diagnostic callbacks in place of the source
// repository's global metrics singleton (SPEC_FULL.md Component 12). All
// methods are optional: NoopObserver implements them as no-ops.
type Observer interface {
	OnFrequencyStart(omega float64)
	OnFrequencyDone(status FrequencyStatus)
	OnFallback(status FrequencyStatus)
}

// NoopObserver is the zero-cost default when a caller supplies no Observer.
type NoopObserver struct{}

func (NoopObserver) OnFrequencyStart(float64)       {}
func (NoopObserver) OnFrequencyDone(FrequencyStatus) {}
func (NoopObserver) OnFallback(FrequencyStatus)      {}
