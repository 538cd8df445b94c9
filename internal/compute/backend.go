package compute

import "github.com/landxcape/nbody-sim-core/internal/vec2"

// Backend computes the direct-summation N-body force law, with the
// concurrency strategy left to the implementation. Only CPUBackend
// ships with this module; the interface stays narrow enough that a
// future backend (SIMD, a GPU kernel) could slot in behind
// GetBackend without the solver package changing.
type Backend interface {
	Name() string
	Available() bool
	NBodyForces(positions []vec2.Vec2, masses []float64, g, softening float64) []vec2.Vec2
	Cleanup()
}

var activeBackend Backend = NewCPUBackend()

// SetBackend replaces the active backend, cleaning up the previous one
// first. Exposed for tests that want a deterministic or instrumented
// stand-in.
func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

// GetBackend returns the backend the solver package's large, non-
// deterministic pairwise path delegates to.
func GetBackend() Backend {
	return activeBackend
}
