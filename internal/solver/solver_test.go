package solver

import (
	"math"
	"testing"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

func twoBodyConfig() config.SimulationConfig {
	cfg := config.Default()
	cfg.GravityConstant = 1
	cfg.SofteningEpsilon = 0
	return cfg
}

func TestPairwiseAttractionIsEqualAndOpposite(t *testing.T) {
	cfg := twoBodyConfig()
	cfg.GravitySolver = config.Pairwise

	bodies := []body.Body{
		body.New("a", 1, 1, vec2.New(-1, 0), vec2.Zero),
		body.New("b", 1, 1, vec2.New(1, 0), vec2.Zero),
	}

	acc, stats := ComputeAccelerations(bodies, cfg)
	if stats.Mode != ModePairwise {
		t.Fatalf("expected pairwise mode, got %v", stats.Mode)
	}
	if acc[0].X <= 0 {
		t.Errorf("expected body a pulled toward b (positive x), got %v", acc[0].X)
	}
	if math.Abs(acc[0].X+acc[1].X) > 1e-12 {
		t.Errorf("expected equal and opposite accelerations, got %v and %v", acc[0], acc[1])
	}
}

func TestDeadBodiesContributeAndReceiveNoForce(t *testing.T) {
	cfg := twoBodyConfig()
	bodies := []body.Body{
		body.New("a", 1, 1, vec2.New(-1, 0), vec2.Zero),
		body.New("b", 1, 1, vec2.New(1, 0), vec2.Zero),
	}
	bodies[1].Alive = false

	acc, _ := ComputeAccelerations(bodies, cfg)
	if acc[0] != vec2.Zero {
		t.Errorf("expected no force from dead body, got %v", acc[0])
	}
	if acc[1] != vec2.Zero {
		t.Errorf("expected dead body to receive no force, got %v", acc[1])
	}
}

func TestAutoModeSelectsBarnesHutAboveThreshold(t *testing.T) {
	cfg := twoBodyConfig()
	cfg.GravitySolver = config.Auto
	cfg.BarnesHutThreshold = 2

	bodies := []body.Body{
		body.New("a", 1, 1, vec2.New(-1, 0), vec2.Zero),
		body.New("b", 1, 1, vec2.New(1, 0), vec2.Zero),
	}

	_, stats := ComputeAccelerations(bodies, cfg)
	if stats.Mode != ModeBarnesHut {
		t.Errorf("expected barnes_hut mode at/above threshold, got %v", stats.Mode)
	}
}

func TestAutoModeSelectsPairwiseBelowThreshold(t *testing.T) {
	cfg := twoBodyConfig()
	cfg.GravitySolver = config.Auto
	cfg.BarnesHutThreshold = 10

	bodies := []body.Body{
		body.New("a", 1, 1, vec2.New(-1, 0), vec2.Zero),
		body.New("b", 1, 1, vec2.New(1, 0), vec2.Zero),
	}

	_, stats := ComputeAccelerations(bodies, cfg)
	if stats.Mode != ModePairwise {
		t.Errorf("expected pairwise mode below threshold, got %v", stats.Mode)
	}
}

func TestBarnesHutApproximatesPairwise(t *testing.T) {
	cfg := twoBodyConfig()
	cfg.BarnesHutTheta = 0.1

	bodies := []body.Body{
		body.New("a", 10, 1, vec2.New(0, 0), vec2.Zero),
		body.New("b", 1, 1, vec2.New(5, 0), vec2.Zero),
		body.New("c", 1, 1, vec2.New(-5, 3), vec2.Zero),
		body.New("d", 1, 1, vec2.New(8, -2), vec2.Zero),
	}

	pairwiseCfg := cfg
	pairwiseCfg.GravitySolver = config.Pairwise
	pairwiseAcc, _ := ComputeAccelerations(bodies, pairwiseCfg)

	barnesHutCfg := cfg
	barnesHutCfg.GravitySolver = config.BarnesHut
	barnesHutAcc, stats := ComputeAccelerations(bodies, barnesHutCfg)
	if stats.Mode != ModeBarnesHut {
		t.Fatalf("expected barnes_hut mode, got %v", stats.Mode)
	}

	for i := range bodies {
		diff := pairwiseAcc[i].Sub(barnesHutAcc[i]).Norm()
		if diff > 1e-2 {
			t.Errorf("body %d: barnes-hut diverged from pairwise by %v", i, diff)
		}
	}
}

func TestEmptyUniverseProducesZeroAccelerations(t *testing.T) {
	cfg := twoBodyConfig()
	acc, _ := ComputeAccelerations(nil, cfg)
	if len(acc) != 0 {
		t.Errorf("expected no accelerations for empty universe, got %v", acc)
	}
}

func TestNonDeterministicLargeSystemMatchesSerialPairwise(t *testing.T) {
	cfg := twoBodyConfig()
	cfg.GravitySolver = config.Pairwise
	cfg.Deterministic = false
	cfg.SofteningEpsilon = 1e-3

	bodies := make([]body.Body, parallelBackendThreshold+1)
	for i := range bodies {
		angle := float64(i) * 0.37
		pos := vec2.New(10*math.Cos(angle), 10*math.Sin(angle))
		bodies[i] = body.New(string(rune('a'+i%26))+string(rune('0'+i/26)), 1, 0.1, pos, vec2.Zero)
	}

	serialAcc := pairwiseAccelerations(bodies, positionsFor(bodies), cfg.GravityConstant, cfg.SofteningEpsilon)
	backendAcc, stats := ComputeAccelerations(bodies, cfg)
	if stats.Mode != ModePairwise {
		t.Fatalf("expected pairwise mode, got %v", stats.Mode)
	}

	for i := range bodies {
		diff := serialAcc[i].Sub(backendAcc[i]).Norm()
		if diff > 1e-6 {
			t.Errorf("body %d: backend result diverged from serial by %v", i, diff)
		}
	}
}

func positionsFor(bodies []body.Body) []vec2.Vec2 {
	positions := make([]vec2.Vec2, len(bodies))
	for i, b := range bodies {
		positions[i] = b.Position
	}
	return positions
}
