// Package config defines SimulationConfig, the parameter block every
// engine instance carries for its lifetime: gravity law constants,
// integrator/solver/collision selection, and the Barnes-Hut tuning knobs.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/landxcape/nbody-sim-core/internal/simerr"
)

// IntegratorKind selects the time-stepping scheme.
type IntegratorKind string

const (
	SemiImplicitEuler IntegratorKind = "semiImplicitEuler"
	VelocityVerlet    IntegratorKind = "velocityVerlet"
	RK4               IntegratorKind = "rk4"
)

// CollisionMode selects how overlapping live bodies are resolved.
type CollisionMode string

const (
	Elastic        CollisionMode = "elastic"
	InelasticMerge CollisionMode = "inelasticMerge"
	Ignore         CollisionMode = "ignore"
)

// DtPolicy selects fixed vs. adaptive timestep sizing.
type DtPolicy string

const (
	Fixed    DtPolicy = "fixed"
	Adaptive DtPolicy = "adaptive"
)

// GravitySolver selects the force-evaluation strategy.
type GravitySolver string

const (
	Pairwise  GravitySolver = "pairwise"
	BarnesHut GravitySolver = "barnesHut"
	Auto      GravitySolver = "auto"
)

const (
	defaultBarnesHutTheta     = 0.6
	defaultBarnesHutThreshold = 256
)

// SimulationConfig is the parameter block in spec §3 ("SimulationConfig").
// It is a plain value type; callers that need a fresh copy should simply
// assign it (no reference fields).
type SimulationConfig struct {
	GravityConstant    float64
	SofteningEpsilon   float64
	Dt                 float64
	DtPolicy           DtPolicy
	Integrator         IntegratorKind
	CollisionMode      CollisionMode
	Deterministic      bool
	GravitySolver      GravitySolver
	BarnesHutTheta     float64
	BarnesHutThreshold int
}

// Default returns the engine's default configuration: velocity Verlet,
// inelastic merge, deterministic fixed-step, auto solver selection.
func Default() SimulationConfig {
	return SimulationConfig{
		GravityConstant:    6.67430e-11,
		SofteningEpsilon:   1e-3,
		Dt:                 1.0,
		DtPolicy:           Fixed,
		Integrator:         VelocityVerlet,
		CollisionMode:      InelasticMerge,
		Deterministic:      true,
		GravitySolver:      Auto,
		BarnesHutTheta:     defaultBarnesHutTheta,
		BarnesHutThreshold: defaultBarnesHutThreshold,
	}
}

// Validate checks every invariant spec §3 places on SimulationConfig.
func (c SimulationConfig) Validate() error {
	if !isFinite(c.GravityConstant) || c.GravityConstant <= 0 {
		return simerr.Wrap(simerr.ErrInvalidConfig, "gravityConstant must be finite and > 0")
	}
	if !isFinite(c.SofteningEpsilon) || c.SofteningEpsilon < 0 {
		return simerr.Wrap(simerr.ErrInvalidConfig, "softeningEpsilon must be finite and >= 0")
	}
	if !isFinite(c.Dt) || c.Dt <= 0 {
		return simerr.Wrap(simerr.ErrInvalidConfig, "dt must be finite and > 0")
	}
	switch c.DtPolicy {
	case Fixed, Adaptive:
	default:
		return simerr.Wrap(simerr.ErrInvalidConfig, "dtPolicy %q is not one of fixed|adaptive", c.DtPolicy)
	}
	switch c.Integrator {
	case SemiImplicitEuler, VelocityVerlet, RK4:
	default:
		return simerr.Wrap(simerr.ErrInvalidConfig, "integrator %q is not recognized", c.Integrator)
	}
	switch c.CollisionMode {
	case Elastic, InelasticMerge, Ignore:
	default:
		return simerr.Wrap(simerr.ErrInvalidConfig, "collisionMode %q is not recognized", c.CollisionMode)
	}
	switch c.GravitySolver {
	case Pairwise, BarnesHut, Auto:
	default:
		return simerr.Wrap(simerr.ErrInvalidConfig, "gravitySolver %q is not recognized", c.GravitySolver)
	}
	if c.Deterministic && c.DtPolicy == Adaptive {
		return simerr.Wrap(simerr.ErrInvalidConfig, "adaptive dt is not allowed when deterministic=true")
	}
	if !isFinite(c.BarnesHutTheta) || c.BarnesHutTheta <= 0 || c.BarnesHutTheta > 2 {
		return simerr.Wrap(simerr.ErrInvalidConfig, "barnesHutTheta must be finite and in (0, 2]")
	}
	if c.BarnesHutThreshold < 1 {
		return simerr.Wrap(simerr.ErrInvalidConfig, "barnesHutThreshold must be >= 1")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// StableHash renders the deterministic configHash used by snapshot
// documents: every field joined with '|', floats formatted as a
// 12-digit decimal-exponent string. Two configs that hash equal are
// guaranteed behaviorally identical within the integrator.
//
// This is a textual contract specified directly by the wire format, not
// a derivative of any in-memory hashing scheme: it must stay stable
// across process restarts and across implementations in other languages.
func (c SimulationConfig) StableHash() string {
	fields := []string{
		string(c.Integrator),
		string(c.CollisionMode),
		string(c.DtPolicy),
		fmt.Sprintf("%t", c.Deterministic),
		string(c.GravitySolver),
		fmt.Sprintf("%d", c.BarnesHutThreshold),
		formatFloat(c.GravityConstant),
		formatFloat(c.SofteningEpsilon),
		formatFloat(c.Dt),
		formatFloat(c.BarnesHutTheta),
	}
	return strings.Join(fields, "|")
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.12e", v)
}
