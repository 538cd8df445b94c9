// Package scenario defines the persisted ScenarioModel and SnapshotModel
// documents, their JSON codecs, a schema validator, and a migrator that
// upgrades legacy (pre-1.0) documents.
package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/simerr"
)

const CurrentSchemaVersion = "1.0"

// Metadata describes a scenario document's provenance.
type Metadata struct {
	Name        string
	Description *string
	Author      *string
	CreatedAt   string
	Tags        []string
}

// Model is a portable document carrying a config and initial bodies used
// to seed new engine runs.
type Model struct {
	SchemaVersion string
	Metadata      Metadata
	EngineConfig  config.SimulationConfig
	Bodies        []body.Body
}

// Snapshot is a point-in-time capture of tick, time, and bodies intended
// for replay against a config identified by hash.
type Snapshot struct {
	SchemaVersion string
	CreatedAt     string
	Tick          uint64
	SimTime       float64
	ConfigHash    string
	Bodies        []body.Body
}

// HasSupportedSchemaPrefix reports whether version starts with the given
// major-version prefix, e.g. "1" accepts "1.0", "1.1", but not "0.9".
func HasSupportedSchemaPrefix(version, prefix string) bool {
	return strings.HasPrefix(version, prefix)
}

// ValidateBodies checks uniqueness and per-body invariants, as required
// by loadScenario/restoreSnapshot before any state is replaced.
func ValidateBodies(bodies []body.Body) error {
	if err := body.ValidateUniqueIDs(bodies); err != nil {
		return err
	}
	for _, b := range bodies {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks m against the loadScenario preconditions: supported
// schema prefix, a config that itself validates, and a non-empty,
// internally-valid body list.
func (m Model) Validate() error {
	if !HasSupportedSchemaPrefix(m.SchemaVersion, "1") {
		return simerr.Wrap(simerr.ErrSchemaInvalid, "only scenario schema v1.x is supported, got %q", m.SchemaVersion)
	}
	if err := m.EngineConfig.Validate(); err != nil {
		return err
	}
	return ValidateBodies(m.Bodies)
}

// Validate checks s against the restoreSnapshot preconditions.
func (s Snapshot) Validate() error {
	if !HasSupportedSchemaPrefix(s.SchemaVersion, "1") {
		return simerr.Wrap(simerr.ErrSchemaInvalid, "only snapshot schema v1.x is supported, got %q", s.SchemaVersion)
	}
	return ValidateBodies(s.Bodies)
}

// NewFromEngineState builds the document saveScenario emits: schema 1.0,
// name "Untitled" (callers may rewrite it), and the supplied config and
// bodies deep-cloned.
func NewFromEngineState(cfg config.SimulationConfig, bodies []body.Body, now func() time.Time) Model {
	return Model{
		SchemaVersion: CurrentSchemaVersion,
		Metadata: Metadata{
			Name:      "Untitled",
			CreatedAt: now().UTC().Format(time.RFC3339),
			Tags:      []string{},
		},
		EngineConfig: cfg,
		Bodies:       body.CloneAll(bodies),
	}
}

// NewSnapshotFromEngineState builds the document snapshot() emits.
func NewSnapshotFromEngineState(cfg config.SimulationConfig, tick uint64, simTime float64, bodies []body.Body, now func() time.Time) Snapshot {
	return Snapshot{
		SchemaVersion: CurrentSchemaVersion,
		CreatedAt:     now().UTC().Format(time.RFC3339),
		Tick:          tick,
		SimTime:       simTime,
		ConfigHash:    cfg.StableHash(),
		Bodies:        body.CloneAll(bodies),
	}
}

func (m Model) String() string {
	return fmt.Sprintf("Scenario{%s %q bodies=%d}", m.SchemaVersion, m.Metadata.Name, len(m.Bodies))
}
