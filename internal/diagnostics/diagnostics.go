// Package diagnostics computes conserved-quantity readouts (momentum,
// energy, angular momentum, center of mass) over a body list, used for
// scenario health reporting and for the test suite's physical invariant
// checks.
package diagnostics

import (
	"math"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

// minSeparation floors the pairwise distance used in potential energy so
// a near-coincident pair does not blow the sum up to infinity, mirroring
// the softening intent already applied by the solver.
const minSeparation = 1e-9

// TotalMomentum sums m·v over live bodies.
func TotalMomentum(bodies []body.Body) vec2.Vec2 {
	total := vec2.Zero
	for _, b := range bodies {
		if !b.Alive {
			continue
		}
		total = total.Add(b.Velocity.Scale(b.Mass))
	}
	return total
}

// CenterOfMass returns the mass-weighted mean position of live bodies. It
// returns vec2.Zero if there is no live mass.
func CenterOfMass(bodies []body.Body) vec2.Vec2 {
	totalMass := 0.0
	weighted := vec2.Zero
	for _, b := range bodies {
		if !b.Alive {
			continue
		}
		totalMass += b.Mass
		weighted = weighted.Add(b.Position.Scale(b.Mass))
	}
	if totalMass == 0 {
		return vec2.Zero
	}
	return weighted.Div(totalMass)
}

// TotalAngularMomentum sums m·(p × v), the 2-D scalar angular momentum
// about the origin, over live bodies.
func TotalAngularMomentum(bodies []body.Body) float64 {
	total := 0.0
	for _, b := range bodies {
		if !b.Alive {
			continue
		}
		total += b.Mass * b.Position.Cross(b.Velocity)
	}
	return total
}

// KineticEnergy sums (1/2)·m·|v|² over live bodies.
func KineticEnergy(bodies []body.Body) float64 {
	total := 0.0
	for _, b := range bodies {
		if !b.Alive {
			continue
		}
		total += 0.5 * b.Mass * b.Velocity.NormSquared()
	}
	return total
}

// PotentialEnergy sums -G·m_i·m_j/r over every live pair, matching the
// pairwise solver's force law.
func PotentialEnergy(bodies []body.Body, gravityConstant float64) float64 {
	total := 0.0
	for i := range bodies {
		if !bodies[i].Alive {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if !bodies[j].Alive {
				continue
			}
			r := math.Max(bodies[j].Position.Sub(bodies[i].Position).Norm(), minSeparation)
			total -= gravityConstant * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return total
}

// TotalEnergy is KineticEnergy + PotentialEnergy, the conserved quantity
// a stable integrator should hold nearly constant over time absent
// collisions.
func TotalEnergy(bodies []body.Body, gravityConstant float64) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, gravityConstant)
}

// Report bundles every conserved quantity computed from one body list, for
// scenario health output (cmd/nbodysim's diagnostics readout, or a
// worker getState response augmented by a caller).
type Report struct {
	LiveBodyCount   int
	TotalMass       float64
	Momentum        vec2.Vec2
	AngularMomentum float64
	CenterOfMass    vec2.Vec2
	KineticEnergy   float64
	PotentialEnergy float64
	TotalEnergy     float64
}

// Compute builds a Report for bodies under the given gravitational
// constant.
func Compute(bodies []body.Body, gravityConstant float64) Report {
	liveCount := 0
	totalMass := 0.0
	for _, b := range bodies {
		if b.Alive {
			liveCount++
			totalMass += b.Mass
		}
	}

	kinetic := KineticEnergy(bodies)
	potential := PotentialEnergy(bodies, gravityConstant)

	return Report{
		LiveBodyCount:   liveCount,
		TotalMass:       totalMass,
		Momentum:        TotalMomentum(bodies),
		AngularMomentum: TotalAngularMomentum(bodies),
		CenterOfMass:    CenterOfMass(bodies),
		KineticEnergy:   kinetic,
		PotentialEnergy: potential,
		TotalEnergy:     kinetic + potential,
	}
}

// RelativeDrift returns |current - baseline| / |baseline|, or the raw
// absolute difference if baseline is zero. Used to express energy/
// momentum drift as the fraction spec §5's concrete scenarios assert
// against (e.g. "energy drift < 1%").
func RelativeDrift(current, baseline float64) float64 {
	if baseline == 0 {
		return math.Abs(current)
	}
	return math.Abs(current-baseline) / math.Abs(baseline)
}
