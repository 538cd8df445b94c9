// Package body defines the simulation's massive point-body type, its JSON
// wire codec, and the tagged BodyEdit variants used to mutate a running
// engine's body set.
package body

import (
	"fmt"
	"math"
	"strings"

	"github.com/landxcape/nbody-sim-core/internal/simerr"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

// Body is a massive point body tracked by the simulation. Bodies are value
// types: every edit replaces the stored record rather than mutating it in
// place.
type Body struct {
	ID         string
	Mass       float64
	Radius     float64
	Position   vec2.Vec2
	Velocity   vec2.Vec2
	ColorValue uint32
	Label      *string
	Kind       *string
	Alive      bool
}

// New constructs a Body with Alive defaulted to true, matching the spec's
// default-alive invariant for freshly created bodies.
func New(id string, mass, radius float64, position, velocity vec2.Vec2) Body {
	return Body{
		ID:       id,
		Mass:     mass,
		Radius:   radius,
		Position: position,
		Velocity: velocity,
		Alive:    true,
	}
}

// Clone returns an independent copy; Body has no reference fields requiring
// deep copy beyond the pointer metadata, which is copied by value here.
func (b Body) Clone() Body {
	clone := b
	if b.Label != nil {
		label := *b.Label
		clone.Label = &label
	}
	if b.Kind != nil {
		kind := *b.Kind
		clone.Kind = &kind
	}
	return clone
}

// Validate checks the invariants spec §3 places on a body: non-empty id,
// finite positive mass/radius, finite position/velocity.
func (b Body) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return simerr.Wrap(simerr.ErrInvalidBody, "id must not be empty")
	}
	if !isFinitePositive(b.Mass) {
		return simerr.Wrap(simerr.ErrInvalidBody, "body '%s' mass must be finite and > 0", b.ID)
	}
	if !isFinitePositive(b.Radius) {
		return simerr.Wrap(simerr.ErrInvalidBody, "body '%s' radius must be finite and > 0", b.ID)
	}
	if !b.Position.IsFinite() {
		return simerr.Wrap(simerr.ErrInvalidBody, "body '%s' position must be finite", b.ID)
	}
	if !b.Velocity.IsFinite() {
		return simerr.Wrap(simerr.ErrInvalidBody, "body '%s' velocity must be finite", b.ID)
	}
	return nil
}

func isFinitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ValidateUniqueIDs reports simerr.ErrDuplicateBodyID if any id repeats.
func ValidateUniqueIDs(bodies []Body) error {
	seen := make(map[string]struct{}, len(bodies))
	for _, b := range bodies {
		if _, exists := seen[b.ID]; exists {
			return simerr.Wrap(simerr.ErrDuplicateBodyID, "%s", b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// CloneAll returns a deep-cloned copy of bodies, used whenever the engine
// hands state to an external caller (getState, snapshot, saveScenario).
func CloneAll(bodies []Body) []Body {
	out := make([]Body, len(bodies))
	for i, b := range bodies {
		out[i] = b.Clone()
	}
	return out
}

func (b Body) String() string {
	return fmt.Sprintf("Body{%s m=%.4g r=%.4g pos=%v vel=%v alive=%v}",
		b.ID, b.Mass, b.Radius, b.Position, b.Velocity, b.Alive)
}
