// Package engine implements the simulation orchestrator: the state
// machine that owns a body list and config, applies edits, advances
// ticks, and serializes to/from scenario and snapshot documents.
package engine

import (
	"time"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/scenario"
	"github.com/landxcape/nbody-sim-core/internal/simerr"
)

// Phase is one of the engine's three lifecycle states.
type Phase int

const (
	Uninitialized Phase = iota
	Active
	Disposed
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// State is the value snapshot returned by GetState: a deep clone, never
// an alias into the engine's internal storage.
type State struct {
	Tick    uint64
	SimTime float64
	Config  config.SimulationConfig
	Bodies  []body.Body
}

// StepSummary aggregates what happened across ticksApplied substeps of
// one Step call.
type StepSummary struct {
	TicksApplied       uint32
	FinalTick          uint64
	SimTime            float64
	CollisionEvents    uint64
	MergedEvents       uint64
	Warnings           []string
	PairwiseTicks      uint32
	BarnesHutTicks     uint32
	StepWallTimeMicros uint64
	AverageTickMicros  uint64
	MaxBodyCount       int
	LastSolverMode     string
}

// Engine is the orchestrator described by spec §4.5. It is not safe for
// concurrent use: callers requiring asynchrony wrap it (see package
// worker).
type Engine struct {
	phase   Phase
	config  config.SimulationConfig
	bodies  []body.Body
	tick    uint64
	simTime float64
	now     func() time.Time
}

// New constructs an uninitialized engine. now defaults to time.Now and
// is only overridden in tests that need deterministic scenario/snapshot
// timestamps.
func New() *Engine {
	return &Engine{phase: Uninitialized, now: time.Now}
}

// WithClock overrides the engine's time source; used by tests that
// compare emitted documents byte-for-byte.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) requireActive() error {
	switch e.phase {
	case Uninitialized:
		return simerr.ErrUninitialized
	case Disposed:
		return simerr.ErrDisposed
	default:
		return nil
	}
}

func (e *Engine) requireNotDisposed() error {
	if e.phase == Disposed {
		return simerr.ErrDisposed
	}
	return nil
}

// Initialize validates cfg and bodies, then transitions the engine to
// Active with tick/simTime reset to zero.
func (e *Engine) Initialize(cfg config.SimulationConfig, bodies []body.Body) error {
	if err := e.requireNotDisposed(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := scenario.ValidateBodies(bodies); err != nil {
		return err
	}

	e.config = cfg
	e.bodies = body.CloneAll(bodies)
	e.tick = 0
	e.simTime = 0
	e.phase = Active
	return nil
}

// SetConfig validates and replaces the active config.
func (e *Engine) SetConfig(cfg config.SimulationConfig) error {
	if err := e.requireActive(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.config = cfg
	return nil
}

// ApplyEdit dispatches a BodyEdit per spec §4.5.
func (e *Engine) ApplyEdit(edit body.Edit) error {
	if err := e.requireActive(); err != nil {
		return err
	}

	switch v := edit.(type) {
	case body.CreateEdit:
		return e.createBody(v.Body)
	case body.UpdateEdit:
		return e.updateBody(v.Update)
	case body.DeleteEdit:
		return e.deleteBody(v.ID)
	default:
		return simerr.Wrap(simerr.ErrUnsupportedVariant, "unknown edit type %T", edit)
	}
}

func (e *Engine) createBody(b body.Body) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, existing := range e.bodies {
		if existing.ID == b.ID {
			return simerr.Wrap(simerr.ErrDuplicateBodyID, "%s", b.ID)
		}
	}
	e.bodies = append(e.bodies, b)
	return nil
}

func (e *Engine) updateBody(update body.Update) error {
	index := e.indexOf(update.ID)
	if index < 0 {
		return simerr.Wrap(simerr.ErrBodyNotFound, "%s", update.ID)
	}
	updated := update.Apply(e.bodies[index])
	if err := updated.Validate(); err != nil {
		return err
	}
	e.bodies[index] = updated
	return nil
}

func (e *Engine) deleteBody(id string) error {
	index := e.indexOf(id)
	if index < 0 {
		return simerr.Wrap(simerr.ErrBodyNotFound, "%s", id)
	}
	e.bodies = append(e.bodies[:index], e.bodies[index+1:]...)
	return nil
}

func (e *Engine) indexOf(id string) int {
	for i, b := range e.bodies {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// GetState returns a deep-cloned snapshot of the engine's current state.
func (e *Engine) GetState() (State, error) {
	if err := e.requireActive(); err != nil {
		return State{}, err
	}
	return State{
		Tick:    e.tick,
		SimTime: e.simTime,
		Config:  e.config,
		Bodies:  body.CloneAll(e.bodies),
	}, nil
}

// Dispose transitions the engine to Disposed. Idempotent.
func (e *Engine) Dispose() error {
	e.phase = Disposed
	return nil
}

// Phase reports the engine's current lifecycle state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// LoadScenario replaces config and bodies from a validated scenario
// document, resetting tick and simTime to zero.
func (e *Engine) LoadScenario(model scenario.Model) error {
	if err := e.requireNotDisposed(); err != nil {
		return err
	}
	if err := model.Validate(); err != nil {
		return err
	}

	e.config = model.EngineConfig
	e.bodies = body.CloneAll(model.Bodies)
	e.tick = 0
	e.simTime = 0
	e.phase = Active
	return nil
}

// SaveScenario emits the current config and a deep clone of active
// bodies as a new scenario document.
func (e *Engine) SaveScenario() (scenario.Model, error) {
	if err := e.requireActive(); err != nil {
		return scenario.Model{}, err
	}
	return scenario.NewFromEngineState(e.config, e.bodies, e.now), nil
}

// Snapshot emits the current tick, simTime, configHash, and a deep clone
// of active bodies.
func (e *Engine) Snapshot() (scenario.Snapshot, error) {
	if err := e.requireActive(); err != nil {
		return scenario.Snapshot{}, err
	}
	return scenario.NewSnapshotFromEngineState(e.config, e.tick, e.simTime, e.bodies, e.now), nil
}

// RestoreSnapshot overwrites tick, simTime, and the body list from a
// validated snapshot; the current config is left untouched. Like
// Initialize and LoadScenario, it transitions an Uninitialized engine to
// Active.
func (e *Engine) RestoreSnapshot(snap scenario.Snapshot) error {
	if err := e.requireNotDisposed(); err != nil {
		return err
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	e.tick = snap.Tick
	e.simTime = snap.SimTime
	e.bodies = body.CloneAll(snap.Bodies)
	e.phase = Active
	return nil
}
