package diagnostics

import (
	"math"
	"testing"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("expected %v within %v of %v, got diff %v", got, tol, want, math.Abs(got-want))
	}
}

func TestTotalMomentumIgnoresDeadBodies(t *testing.T) {
	bodies := []body.Body{
		body.New("a", 2, 1, vec2.Zero, vec2.New(1, 0)),
		body.New("b", 3, 1, vec2.Zero, vec2.New(0, 2)),
	}
	bodies[1].Alive = false

	p := TotalMomentum(bodies)
	if p.X != 2 || p.Y != 0 {
		t.Errorf("expected momentum (2,0) from live body only, got %v", p)
	}
}

func TestCenterOfMassWeightsByMass(t *testing.T) {
	bodies := []body.Body{
		body.New("a", 1, 1, vec2.New(0, 0), vec2.Zero),
		body.New("b", 3, 1, vec2.New(4, 0), vec2.Zero),
	}
	com := CenterOfMass(bodies)
	approxEqual(t, com.X, 3.0, 1e-9)
	approxEqual(t, com.Y, 0, 1e-9)
}

func TestCenterOfMassWithNoLiveBodiesIsZero(t *testing.T) {
	bodies := []body.Body{body.New("a", 1, 1, vec2.New(5, 5), vec2.Zero)}
	bodies[0].Alive = false
	com := CenterOfMass(bodies)
	if com != vec2.Zero {
		t.Errorf("expected zero, got %v", com)
	}
}

func TestTotalAngularMomentumOfCircularOrbitIsNonzero(t *testing.T) {
	bodies := []body.Body{
		body.New("orbiter", 1, 1, vec2.New(1, 0), vec2.New(0, 1)),
	}
	l := TotalAngularMomentum(bodies)
	approxEqual(t, l, 1.0, 1e-9)
}

func TestKineticEnergyMatchesHandComputation(t *testing.T) {
	bodies := []body.Body{
		body.New("a", 2, 1, vec2.Zero, vec2.New(3, 4)),
	}
	ke := KineticEnergy(bodies)
	approxEqual(t, ke, 0.5*2*25, 1e-9)
}

func TestPotentialEnergyIsNegativeForAttractingPair(t *testing.T) {
	bodies := []body.Body{
		body.New("a", 10, 1, vec2.New(-1, 0), vec2.Zero),
		body.New("b", 10, 1, vec2.New(1, 0), vec2.Zero),
	}
	pe := PotentialEnergy(bodies, 1.0)
	approxEqual(t, pe, -50.0, 1e-9)
}

func TestTotalEnergyConservedAcrossHandMotion(t *testing.T) {
	bodies := []body.Body{
		body.New("a", 1000, 2, vec2.New(0, 0), vec2.New(0, 0)),
		body.New("b", 1, 0.5, vec2.New(12, 0), vec2.New(0, 9.2)),
	}
	e0 := TotalEnergy(bodies, 1.0)

	moved := make([]body.Body, len(bodies))
	copy(moved, bodies)
	moved[1].Position = vec2.New(11.9, 0.05)

	e1 := TotalEnergy(moved, 1.0)
	if RelativeDrift(e1, e0) > 0.05 {
		t.Errorf("expected small relative drift for a tiny perturbation, got %v", RelativeDrift(e1, e0))
	}
}

func TestRelativeDriftHandlesZeroBaseline(t *testing.T) {
	if RelativeDrift(3, 0) != 3 {
		t.Errorf("expected absolute value fallback when baseline is zero")
	}
	if RelativeDrift(0, 0) != 0 {
		t.Errorf("expected zero drift when both are zero")
	}
}

func TestComputeReportAggregatesAllQuantities(t *testing.T) {
	bodies := []body.Body{
		body.New("a", 2, 1, vec2.New(-1, 0), vec2.New(0, 1)),
		body.New("b", 2, 1, vec2.New(1, 0), vec2.New(0, -1)),
	}
	report := Compute(bodies, 1.0)

	if report.LiveBodyCount != 2 {
		t.Errorf("expected 2 live bodies, got %d", report.LiveBodyCount)
	}
	if report.TotalMass != 4 {
		t.Errorf("expected total mass 4, got %v", report.TotalMass)
	}
	if report.Momentum != vec2.Zero {
		t.Errorf("expected zero net momentum for symmetric pair, got %v", report.Momentum)
	}
	approxEqual(t, report.TotalEnergy, report.KineticEnergy+report.PotentialEnergy, 1e-12)
}
