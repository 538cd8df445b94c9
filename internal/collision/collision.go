// Package collision resolves overlapping live bodies after an
// integration substep, per the configured CollisionMode.
package collision

import (
	"math"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

// positionalCorrectionEpsilon is the elastic-collision separation slack
// from spec §4.4; left as a fixed constant rather than a config knob.
const positionalCorrectionEpsilon = 1e-9

// Stats counts collision events produced by one Resolve call.
type Stats struct {
	Collisions uint64
	Merges     uint64
}

// Resolve runs the collision pass in spec §4.4 over bodies in ascending
// (i, j) order, mutating bodies in place. When mode is InelasticMerge,
// dead bodies are compacted out of the returned slice; for other modes
// the input slice's length and order are preserved.
func Resolve(bodies []body.Body, mode config.CollisionMode) ([]body.Body, Stats) {
	if mode == config.Ignore {
		return bodies, Stats{}
	}

	var stats Stats
	count := len(bodies)

	for i := 0; i < count; i++ {
		if !bodies[i].Alive {
			continue
		}
		for j := i + 1; j < count; j++ {
			if !bodies[j].Alive {
				continue
			}

			delta := bodies[j].Position.Sub(bodies[i].Position)
			distance := delta.Norm()
			collisionDistance := bodies[i].Radius + bodies[j].Radius

			if distance > collisionDistance {
				continue
			}

			stats.Collisions++

			switch mode {
			case config.Elastic:
				applyElastic(&bodies[i], &bodies[j], delta, distance, collisionDistance)
			case config.InelasticMerge:
				applyMerge(&bodies[i], &bodies[j])
				stats.Merges++
			}
		}
	}

	if mode == config.InelasticMerge {
		bodies = compact(bodies)
	}

	return bodies, stats
}

func applyMerge(first, second *body.Body) {
	if !first.Alive || !second.Alive {
		return
	}

	totalMass := first.Mass + second.Mass
	if totalMass <= 0 {
		return
	}

	mergedPosition := first.Position.Scale(first.Mass).Add(second.Position.Scale(second.Mass)).Div(totalMass)
	mergedVelocity := first.Velocity.Scale(first.Mass).Add(second.Velocity.Scale(second.Mass)).Div(totalMass)
	mergedRadius := math.Sqrt(first.Radius*first.Radius + second.Radius*second.Radius)

	first.Mass = totalMass
	first.Position = mergedPosition
	first.Velocity = mergedVelocity
	first.Radius = mergedRadius

	second.Alive = false
}

func applyElastic(first, second *body.Body, delta vec2.Vec2, distance, collisionDistance float64) {
	if !first.Alive || !second.Alive {
		return
	}

	normal := vec2.New(1, 0)
	if distance > 0 {
		normal = delta.Div(distance)
	}

	relativeVelocity := second.Velocity.Sub(first.Velocity)
	velAlongNormal := relativeVelocity.Dot(normal)
	if velAlongNormal <= 0 {
		const restitution = 1.0
		inverseMassSum := (1.0 / first.Mass) + (1.0 / second.Mass)
		if inverseMassSum > 0 {
			impulseScalar := -((1.0 + restitution) * velAlongNormal) / inverseMassSum
			impulse := normal.Scale(impulseScalar)
			first.Velocity = first.Velocity.Sub(impulse.Div(first.Mass))
			second.Velocity = second.Velocity.Add(impulse.Div(second.Mass))
		}
	}

	overlap := math.Max(collisionDistance-distance, 0)
	if overlap > 0 {
		correction := normal.Scale(0.5*overlap + positionalCorrectionEpsilon)
		first.Position = first.Position.Sub(correction)
		second.Position = second.Position.Add(correction)
	}
}

func compact(bodies []body.Body) []body.Body {
	out := bodies[:0]
	for _, b := range bodies {
		if b.Alive {
			out = append(out, b)
		}
	}
	return out
}
