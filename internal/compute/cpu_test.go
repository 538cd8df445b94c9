package compute

import (
	"math"
	"testing"

	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("expected %v within %v of %v", got, tol, want)
	}
}

func TestCPUBackendNBodyForcesSerialPath(t *testing.T) {
	b := NewCPUBackend()
	positions := []vec2.Vec2{vec2.New(-1, 0), vec2.New(1, 0)}
	masses := []float64{10, 10}

	accel := b.NBodyForces(positions, masses, 1.0, 0)
	if len(accel) != 2 {
		t.Fatalf("expected length-2 output")
	}
	approxEqual(t, accel[0].X, 2.5, 1e-9)
	approxEqual(t, accel[1].X, -2.5, 1e-9)
	approxEqual(t, accel[0].Y, 0, 1e-9)
	approxEqual(t, accel[1].Y, 0, 1e-9)
}

func TestCPUBackendNBodyForcesParallelPathMatchesSerialShape(t *testing.T) {
	b := NewCPUBackend()
	n := 20
	positions := make([]vec2.Vec2, n)
	masses := make([]float64, n)
	for i := 0; i < n; i++ {
		positions[i] = vec2.New(float64(i), 0)
		masses[i] = 1
	}

	accel := b.NBodyForces(positions, masses, 1.0, 1e-3)
	if len(accel) != n {
		t.Fatalf("expected length-%d output", n)
	}
	// interior bodies pulled toward both neighbors; net force on the two
	// endpoints should point inward (toward positive x at index 0).
	if accel[0].X <= 0 {
		t.Errorf("expected leftmost body pulled rightward, got ax[0]=%v", accel[0].X)
	}
	if accel[n-1].X >= 0 {
		t.Errorf("expected rightmost body pulled leftward, got ax[n-1]=%v", accel[n-1].X)
	}
}

func TestSetBackendAndGetBackend(t *testing.T) {
	original := GetBackend()
	defer SetBackend(original)

	replacement := NewCPUBackend()
	SetBackend(replacement)
	if GetBackend() != replacement {
		t.Errorf("expected GetBackend to return the replacement")
	}
}
