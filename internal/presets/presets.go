// Package presets ships named, ready-to-load scenarios (binary orbits,
// small clusters, head-on collisions) the way the teacher's
// internal/config/presets.go shipped named model configurations, but
// as YAML documents (held in Go string constants, so they are compiled
// in) rather than Go map literals, validated through the same scenario
// document path external callers use.
package presets

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/scenario"
	"github.com/landxcape/nbody-sim-core/internal/simerr"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

type vec2YAML struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v vec2YAML) toVec2() vec2.Vec2 { return vec2.New(v.X, v.Y) }

type bodyYAML struct {
	ID       string   `yaml:"id"`
	Mass     float64  `yaml:"mass"`
	Radius   float64  `yaml:"radius"`
	Position vec2YAML `yaml:"position"`
	Velocity vec2YAML `yaml:"velocity"`
	Label    string   `yaml:"label,omitempty"`
	Kind     string   `yaml:"kind,omitempty"`
}

func (b bodyYAML) toBody() body.Body {
	out := body.New(b.ID, b.Mass, b.Radius, b.Position.toVec2(), b.Velocity.toVec2())
	if b.Label != "" {
		label := b.Label
		out.Label = &label
	}
	if b.Kind != "" {
		kind := b.Kind
		out.Kind = &kind
	}
	return out
}

type configYAML struct {
	GravityConstant    *float64 `yaml:"gravityConstant,omitempty"`
	SofteningEpsilon   *float64 `yaml:"softeningEpsilon,omitempty"`
	Dt                 *float64 `yaml:"dt,omitempty"`
	DtPolicy           string   `yaml:"dtPolicy,omitempty"`
	Integrator         string   `yaml:"integrator,omitempty"`
	CollisionMode      string   `yaml:"collisionMode,omitempty"`
	Deterministic      *bool    `yaml:"deterministic,omitempty"`
	GravitySolver      string   `yaml:"gravitySolver,omitempty"`
	BarnesHutTheta     *float64 `yaml:"barnesHutTheta,omitempty"`
	BarnesHutThreshold *int     `yaml:"barnesHutThreshold,omitempty"`
}

func (c configYAML) toConfig() config.SimulationConfig {
	cfg := config.Default()
	if c.GravityConstant != nil {
		cfg.GravityConstant = *c.GravityConstant
	}
	if c.SofteningEpsilon != nil {
		cfg.SofteningEpsilon = *c.SofteningEpsilon
	}
	if c.Dt != nil {
		cfg.Dt = *c.Dt
	}
	if c.DtPolicy != "" {
		cfg.DtPolicy = config.DtPolicy(c.DtPolicy)
	}
	if c.Integrator != "" {
		cfg.Integrator = config.IntegratorKind(c.Integrator)
	}
	if c.CollisionMode != "" {
		cfg.CollisionMode = config.CollisionMode(c.CollisionMode)
	}
	if c.Deterministic != nil {
		cfg.Deterministic = *c.Deterministic
	}
	if c.GravitySolver != "" {
		cfg.GravitySolver = config.GravitySolver(c.GravitySolver)
	}
	if c.BarnesHutTheta != nil {
		cfg.BarnesHutTheta = *c.BarnesHutTheta
	}
	if c.BarnesHutThreshold != nil {
		cfg.BarnesHutThreshold = *c.BarnesHutThreshold
	}
	return cfg
}

type documentYAML struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Config      configYAML `yaml:"config"`
	Bodies      []bodyYAML `yaml:"bodies"`
}

// Preset is a named, documented scenario shipped with the module.
type Preset struct {
	Name        string
	Description string
}

var registry = map[string]string{
	"two-body-stable-orbit":       twoBodyStableOrbitYAML,
	"head-on-inelastic-merge":     headOnInelasticMergeYAML,
	"elastic-symmetric-collision": elasticSymmetricCollisionYAML,
	"solar-system-lite":           solarSystemLiteYAML,
	"three-body-chaos":            threeBodyChaosYAML,
}

// List returns the names of every shipped preset in stable sorted order.
func List() []Preset {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	presets := make([]Preset, 0, len(names))
	for _, name := range names {
		doc, err := parse(name)
		if err != nil {
			continue
		}
		presets = append(presets, Preset{Name: name, Description: doc.Description})
	}
	return presets
}

// Load decodes the named preset into a scenario.Model, ready to pass to
// engine.LoadScenario. now stamps the document's createdAt; it defaults
// to time.Now when callers pass nil.
func Load(name string, now func() time.Time) (scenario.Model, error) {
	doc, err := parse(name)
	if err != nil {
		return scenario.Model{}, err
	}
	if now == nil {
		now = time.Now
	}

	bodies := make([]body.Body, len(doc.Bodies))
	for i, b := range doc.Bodies {
		bodies[i] = b.toBody()
	}

	model := scenario.NewFromEngineState(doc.Config.toConfig(), bodies, now)
	model.Metadata.Name = doc.Name
	if err := model.Validate(); err != nil {
		return scenario.Model{}, err
	}
	return model, nil
}

func parse(name string) (documentYAML, error) {
	raw, ok := registry[name]
	if !ok {
		return documentYAML{}, simerr.Wrap(simerr.ErrUnknownPreset, "%s", name)
	}
	var doc documentYAML
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return documentYAML{}, fmt.Errorf("presets: decoding %s: %w", name, err)
	}
	return doc, nil
}
