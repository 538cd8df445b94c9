// Package solver computes per-body gravitational acceleration vectors,
// selecting between direct pairwise summation and a Barnes-Hut quadtree
// approximation per the configured GravitySolver mode.
package solver

import (
	"math"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/compute"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

// parallelBackendThreshold is the live-body count at or above which the
// pairwise path delegates to compute.GetBackend() instead of the serial
// loop below. Only taken when cfg.Deterministic is false: the backend's
// worker-chunked summation order differs from the serial one, which
// would break byte-for-byte replay (spec's determinism contract).
const parallelBackendThreshold = 64

// Mode records which solver actually ran for a tick.
type Mode string

const (
	ModePairwise  Mode = "pairwise"
	ModeBarnesHut Mode = "barnes_hut"
)

// Stats reports which solver mode was used for one acceleration
// evaluation, so the caller can tally per-solver tick counts.
type Stats struct {
	Mode Mode
}

// ComputeAccelerations evaluates accelerations for bodies' current
// positions.
func ComputeAccelerations(bodies []body.Body, cfg config.SimulationConfig) ([]vec2.Vec2, Stats) {
	positions := make([]vec2.Vec2, len(bodies))
	for i, b := range bodies {
		positions[i] = b.Position
	}
	return ComputeAccelerationsAt(bodies, positions, cfg)
}

// ComputeAccelerationsAt evaluates accelerations at a provisional
// position array supplied by an integrator stage; it need not match
// bodies' current stored positions.
func ComputeAccelerationsAt(bodies []body.Body, positions []vec2.Vec2, cfg config.SimulationConfig) ([]vec2.Vec2, Stats) {
	aliveCount := 0
	for _, b := range bodies {
		if b.Alive {
			aliveCount++
		}
	}

	mode := chooseMode(aliveCount, cfg)
	switch mode {
	case ModeBarnesHut:
		return barnesHutAccelerations(bodies, positions, cfg), Stats{Mode: ModeBarnesHut}
	default:
		if !cfg.Deterministic && aliveCount >= parallelBackendThreshold {
			return backendPairwiseAccelerations(bodies, positions, cfg.GravityConstant, cfg.SofteningEpsilon), Stats{Mode: ModePairwise}
		}
		return pairwiseAccelerations(bodies, positions, cfg.GravityConstant, cfg.SofteningEpsilon), Stats{Mode: ModePairwise}
	}
}

// backendPairwiseAccelerations delegates the direct-summation force law
// to compute.GetBackend(), which may split the work across goroutines.
// Dead bodies are excluded from the backend call entirely (rather than
// passed through with zero mass) so the backend never wastes work on
// them.
func backendPairwiseAccelerations(bodies []body.Body, positions []vec2.Vec2, gravityConstant, softeningEpsilon float64) []vec2.Vec2 {
	count := len(bodies)
	accelerations := make([]vec2.Vec2, count)

	aliveIndices := make([]int, 0, count)
	alivePositions := make([]vec2.Vec2, 0, count)
	masses := make([]float64, 0, count)
	for i, b := range bodies {
		if !b.Alive {
			continue
		}
		aliveIndices = append(aliveIndices, i)
		alivePositions = append(alivePositions, positions[i])
		masses = append(masses, b.Mass)
	}
	if len(aliveIndices) < 2 {
		return accelerations
	}

	result := compute.GetBackend().NBodyForces(alivePositions, masses, gravityConstant, softeningEpsilon)
	for k, bodyIndex := range aliveIndices {
		accelerations[bodyIndex] = result[k]
	}
	return accelerations
}

func chooseMode(aliveCount int, cfg config.SimulationConfig) Mode {
	switch cfg.GravitySolver {
	case config.Pairwise:
		return ModePairwise
	case config.BarnesHut:
		if aliveCount >= 2 {
			return ModeBarnesHut
		}
		return ModePairwise
	default: // Auto
		if aliveCount >= cfg.BarnesHutThreshold {
			return ModeBarnesHut
		}
		return ModePairwise
	}
}

func pairwiseAccelerations(bodies []body.Body, positions []vec2.Vec2, gravityConstant, softeningEpsilon float64) []vec2.Vec2 {
	count := len(bodies)
	accelerations := make([]vec2.Vec2, count)
	epsilon2 := softeningEpsilon * softeningEpsilon

	for i := 0; i < count; i++ {
		if !bodies[i].Alive {
			continue
		}
		for j := i + 1; j < count; j++ {
			if !bodies[j].Alive {
				continue
			}

			delta := positions[j].Sub(positions[i])
			distSq := delta.NormSquared() + epsilon2
			if distSq <= 0 {
				continue
			}

			invDist := 1 / math.Sqrt(distSq)
			invDist3 := invDist * invDist * invDist
			scale := gravityConstant * invDist3

			accelerations[i] = accelerations[i].Add(delta.Scale(scale * bodies[j].Mass))
			accelerations[j] = accelerations[j].Sub(delta.Scale(scale * bodies[i].Mass))
		}
	}

	return accelerations
}

func barnesHutAccelerations(bodies []body.Body, positions []vec2.Vec2, cfg config.SimulationConfig) []vec2.Vec2 {
	count := len(bodies)
	accelerations := make([]vec2.Vec2, count)

	aliveIndices := make([]int, 0, count)
	for i, b := range bodies {
		if b.Alive {
			aliveIndices = append(aliveIndices, i)
		}
	}
	if len(aliveIndices) < 2 {
		return accelerations
	}

	masses := make([]float64, count)
	for i, b := range bodies {
		masses[i] = b.Mass
	}

	root := buildQuadtree(positions, aliveIndices, masses)
	if root == nil {
		return accelerations
	}

	epsilon2 := cfg.SofteningEpsilon * cfg.SofteningEpsilon

	for _, index := range aliveIndices {
		var acceleration vec2.Vec2
		accumulateForceFromNode(root, index, positions[index], cfg.GravityConstant, epsilon2, cfg.BarnesHutTheta, &acceleration)
		accelerations[index] = acceleration
	}

	return accelerations
}

func accumulateForceFromNode(node *quadNode, bodyIndex int, bodyPosition vec2.Vec2, gravityConstant, epsilon2, theta float64, out *vec2.Vec2) {
	if node.count == 0 || node.mass <= 0 {
		return
	}
	if node.count == 1 && node.bodyIndex == bodyIndex {
		return
	}

	delta := node.com.Sub(bodyPosition)
	distSq := delta.NormSquared() + epsilon2
	if distSq <= 0 {
		return
	}

	distance := math.Sqrt(distSq)
	size := node.halfSize * 2.0

	if node.isLeaf() || (size/distance) < theta {
		invDist := 1 / distance
		invDist3 := invDist * invDist * invDist
		*out = out.Add(delta.Scale(gravityConstant * node.mass * invDist3))
		return
	}

	// Canonical corner order: children are visited 0,1,2,3 matching
	// childIndex's (x,y) quadrant bit layout.
	for _, child := range node.children {
		if child != nil {
			accumulateForceFromNode(child, bodyIndex, bodyPosition, gravityConstant, epsilon2, theta, out)
		}
	}
}
