// Package integrator advances body positions and velocities by one
// timestep, dispatching to the configured scheme over the shared force
// solver.
package integrator

import (
	"math"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/simerr"
	"github.com/landxcape/nbody-sim-core/internal/solver"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

// StepStats reports what happened during one Step call: the actual dt
// used (after adaptive policy) and whether any force evaluation ran the
// Barnes-Hut solver.
type StepStats struct {
	UsedBarnesHut bool
	DtUsed        float64
}

// Step advances bodies in place by one substep using cfg's integrator,
// returning the dt actually used and whether Barnes-Hut ran for any of
// its force evaluations. It fails with simerr.ErrNumericalInstability if
// any live body's position or velocity becomes non-finite.
func Step(bodies []body.Body, cfg config.SimulationConfig) (StepStats, error) {
	dt := effectiveDt(bodies, cfg)

	var usedBarnesHut bool
	var err error

	switch cfg.Integrator {
	case config.SemiImplicitEuler:
		usedBarnesHut, err = semiImplicitEulerStep(bodies, cfg, dt)
	case config.RK4:
		usedBarnesHut, err = rk4Step(bodies, cfg, dt)
	default: // VelocityVerlet
		usedBarnesHut, err = velocityVerletStep(bodies, cfg, dt)
	}
	if err != nil {
		return StepStats{}, err
	}

	return StepStats{UsedBarnesHut: usedBarnesHut, DtUsed: dt}, nil
}

// effectiveDt implements the adaptive timestep policy from spec §4.3.
func effectiveDt(bodies []body.Body, cfg config.SimulationConfig) float64 {
	if cfg.DtPolicy != config.Adaptive {
		return cfg.Dt
	}

	maxSpeed := 0.0
	for _, b := range bodies {
		if !b.Alive {
			continue
		}
		maxSpeed = math.Max(maxSpeed, b.Velocity.Norm())
	}

	minDistance := math.Inf(1)
	for i := range bodies {
		if !bodies[i].Alive {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if !bodies[j].Alive {
				continue
			}
			d := bodies[j].Position.Sub(bodies[i].Position).Norm()
			if d > 0 {
				minDistance = math.Min(minDistance, d)
			}
		}
	}

	if math.IsInf(minDistance, 1) || !isFinite(minDistance) || maxSpeed == 0 {
		return cfg.Dt
	}

	suggested := 0.05 * minDistance / maxSpeed
	return clamp(suggested, cfg.Dt*0.05, cfg.Dt)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func semiImplicitEulerStep(bodies []body.Body, cfg config.SimulationConfig, dt float64) (bool, error) {
	accelerations, stats := solver.ComputeAccelerations(bodies, cfg)

	for i := range bodies {
		if !bodies[i].Alive {
			continue
		}
		bodies[i].Velocity = bodies[i].Velocity.Add(accelerations[i].Scale(dt))
		bodies[i].Position = bodies[i].Position.Add(bodies[i].Velocity.Scale(dt))
		if err := ensureFinite(bodies[i]); err != nil {
			return false, err
		}
	}

	return stats.Mode == solver.ModeBarnesHut, nil
}

func velocityVerletStep(bodies []body.Body, cfg config.SimulationConfig, dt float64) (bool, error) {
	originalPositions := positionsOf(bodies)
	accelerations0, stats0 := solver.ComputeAccelerationsAt(bodies, originalPositions, cfg)

	predictedPositions := make([]vec2.Vec2, len(bodies))
	copy(predictedPositions, originalPositions)
	for i, b := range bodies {
		if !b.Alive {
			continue
		}
		predictedPositions[i] = b.Position.Add(b.Velocity.Scale(dt)).Add(accelerations0[i].Scale(0.5 * dt * dt))
	}

	accelerations1, stats1 := solver.ComputeAccelerationsAt(bodies, predictedPositions, cfg)

	for i := range bodies {
		if !bodies[i].Alive {
			continue
		}
		bodies[i].Position = predictedPositions[i]
		bodies[i].Velocity = bodies[i].Velocity.Add(accelerations0[i].Add(accelerations1[i]).Scale(0.5 * dt))
		if err := ensureFinite(bodies[i]); err != nil {
			return false, err
		}
	}

	return stats0.Mode == solver.ModeBarnesHut || stats1.Mode == solver.ModeBarnesHut, nil
}

func rk4Step(bodies []body.Body, cfg config.SimulationConfig, dt float64) (bool, error) {
	count := len(bodies)
	p0 := positionsOf(bodies)
	v0 := velocitiesOf(bodies)

	a1, stats1 := solver.ComputeAccelerationsAt(bodies, p0, cfg)
	k1p := v0
	k1v := a1

	p2 := offsetAll(p0, k1p, 0.5*dt)
	v2 := offsetAll(v0, k1v, 0.5*dt)
	k2v, stats2 := solver.ComputeAccelerationsAt(bodies, p2, cfg)
	k2p := v2

	p3 := offsetAll(p0, k2p, 0.5*dt)
	v3 := offsetAll(v0, k2v, 0.5*dt)
	k3v, stats3 := solver.ComputeAccelerationsAt(bodies, p3, cfg)
	k3p := v3

	p4 := offsetAll(p0, k3p, dt)
	v4 := offsetAll(v0, k3v, dt)
	k4v, stats4 := solver.ComputeAccelerationsAt(bodies, p4, cfg)
	k4p := v4

	for i := 0; i < count; i++ {
		if !bodies[i].Alive {
			continue
		}
		dp := sumScaled(k1p[i], k2p[i], k3p[i], k4p[i]).Scale(dt / 6.0)
		dv := sumScaled(k1v[i], k2v[i], k3v[i], k4v[i]).Scale(dt / 6.0)
		bodies[i].Position = bodies[i].Position.Add(dp)
		bodies[i].Velocity = bodies[i].Velocity.Add(dv)
		if err := ensureFinite(bodies[i]); err != nil {
			return false, err
		}
	}

	usedBarnesHut := stats1.Mode == solver.ModeBarnesHut ||
		stats2.Mode == solver.ModeBarnesHut ||
		stats3.Mode == solver.ModeBarnesHut ||
		stats4.Mode == solver.ModeBarnesHut
	return usedBarnesHut, nil
}

// sumScaled implements the classical 1-2-2-1 RK4 combination weights.
func sumScaled(k1, k2, k3, k4 vec2.Vec2) vec2.Vec2 {
	return k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
}

func offsetAll(base, derivative []vec2.Vec2, scale float64) []vec2.Vec2 {
	out := make([]vec2.Vec2, len(base))
	for i := range base {
		out[i] = base[i].Add(derivative[i].Scale(scale))
	}
	return out
}

func positionsOf(bodies []body.Body) []vec2.Vec2 {
	out := make([]vec2.Vec2, len(bodies))
	for i, b := range bodies {
		out[i] = b.Position
	}
	return out
}

func velocitiesOf(bodies []body.Body) []vec2.Vec2 {
	out := make([]vec2.Vec2, len(bodies))
	for i, b := range bodies {
		out[i] = b.Velocity
	}
	return out
}

func ensureFinite(b body.Body) error {
	if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
		return simerr.Wrap(simerr.ErrNumericalInstability, "body '%s' produced non-finite state", b.ID)
	}
	return nil
}
