package engine

import (
	"time"

	"github.com/landxcape/nbody-sim-core/internal/collision"
	"github.com/landxcape/nbody-sim-core/internal/integrator"
)

// Step runs n substeps, each: decide dt via the adaptive policy, run the
// integrator, run the collision resolver, advance tick/simTime, and
// assert finiteness of all live bodies. n <= 0 returns a zero-work
// summary without touching engine state.
func (e *Engine) Step(ticks int) (StepSummary, error) {
	if err := e.requireActive(); err != nil {
		return StepSummary{}, err
	}

	summary := StepSummary{MaxBodyCount: len(e.bodies), LastSolverMode: "pairwise"}

	if ticks <= 0 {
		summary.FinalTick = e.tick
		summary.SimTime = e.simTime
		return summary, nil
	}

	wallStart := time.Now()

	for i := 0; i < ticks; i++ {
		integrationStats, err := integrator.Step(e.bodies, e.config)
		if err != nil {
			return StepSummary{}, err
		}

		resolved, collisionStats := collision.Resolve(e.bodies, e.config.CollisionMode)
		e.bodies = resolved

		summary.CollisionEvents += collisionStats.Collisions
		summary.MergedEvents += collisionStats.Merges
		summary.TicksApplied++
		if len(e.bodies) > summary.MaxBodyCount {
			summary.MaxBodyCount = len(e.bodies)
		}

		if integrationStats.UsedBarnesHut {
			summary.BarnesHutTicks++
			summary.LastSolverMode = "barnes_hut"
		} else {
			summary.PairwiseTicks++
			summary.LastSolverMode = "pairwise"
		}

		e.tick++
		e.simTime += integrationStats.DtUsed
	}

	summary.StepWallTimeMicros = uint64(time.Since(wallStart).Microseconds())
	if summary.TicksApplied > 0 {
		summary.AverageTickMicros = summary.StepWallTimeMicros / uint64(summary.TicksApplied)
	}

	summary.FinalTick = e.tick
	summary.SimTime = e.simTime
	return summary, nil
}
