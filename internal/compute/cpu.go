package compute

import (
	"math"
	"runtime"
	"sync"

	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

// NBodyForces returns, for each position, the gravitational acceleration
// contributed by every other mass, softened per the epsilon-squared floor
// the solver package uses for its serial path.
func (c *CPUBackend) NBodyForces(positions []vec2.Vec2, masses []float64, g, softening float64) []vec2.Vec2 {
	n := len(masses)
	accel := make([]vec2.Vec2, n)

	if n < 16 {
		c.nbodySerial(positions, masses, g, softening, accel)
		return accel
	}

	c.nbodyParallel(positions, masses, g, softening, accel)
	return accel
}

func (c *CPUBackend) nbodySerial(pos []vec2.Vec2, masses []float64, g, eps float64, accel []vec2.Vec2) {
	n := len(masses)
	eps2 := eps * eps

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			delta := pos[j].Sub(pos[i])
			r2 := delta.X*delta.X + delta.Y*delta.Y + eps2
			r3Inv := 1.0 / (r2 * math.Sqrt(r2))

			accel[i] = accel[i].Add(delta.Scale(g * masses[j] * r3Inv))
			accel[j] = accel[j].Sub(delta.Scale(g * masses[i] * r3Inv))
		}
	}
}

func (c *CPUBackend) nbodyParallel(pos []vec2.Vec2, masses []float64, g, eps float64, accel []vec2.Vec2) {
	n := len(masses)
	eps2 := eps * eps

	local := make([][]vec2.Vec2, c.workers)
	for w := 0; w < c.workers; w++ {
		local[w] = make([]vec2.Vec2, n)
	}

	var wg sync.WaitGroup
	chunkSize := (n + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}

			lacc := local[worker]
			for i := start; i < end; i++ {
				for j := 0; j < n; j++ {
					if i == j {
						continue
					}

					delta := pos[j].Sub(pos[i])
					r2 := delta.X*delta.X + delta.Y*delta.Y + eps2
					r3Inv := 1.0 / (r2 * math.Sqrt(r2))

					lacc[i] = lacc[i].Add(delta.Scale(g * masses[j] * r3Inv))
				}
			}
		}(w)
	}

	wg.Wait()

	for w := 0; w < c.workers; w++ {
		for i := 0; i < n; i++ {
			accel[i] = accel[i].Add(local[w][i])
		}
	}
}
