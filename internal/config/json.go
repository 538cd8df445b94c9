package config

import "encoding/json"

// configJSON mirrors the "engineConfig fields" wire shape from spec §6.
// Enum values serialize as their Go string representations directly,
// since the constants above already use the spec's camelCase names.
type configJSON struct {
	GravityConstant    float64        `json:"gravityConstant"`
	SofteningEpsilon   float64        `json:"softeningEpsilon"`
	Dt                 float64        `json:"dt"`
	DtPolicy           DtPolicy       `json:"dtPolicy"`
	Integrator         IntegratorKind `json:"integrator"`
	CollisionMode      CollisionMode  `json:"collisionMode"`
	GravitySolver      GravitySolver  `json:"gravitySolver"`
	Deterministic      bool           `json:"deterministic"`
	BarnesHutTheta     float64        `json:"barnesHutTheta"`
	BarnesHutThreshold int            `json:"barnesHutThreshold"`
}

// MarshalJSON emits all fields unconditionally per spec §6 ("all required
// on emit").
func (c SimulationConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(configJSON{
		GravityConstant:    c.GravityConstant,
		SofteningEpsilon:   c.SofteningEpsilon,
		Dt:                 c.Dt,
		DtPolicy:           c.DtPolicy,
		Integrator:         c.Integrator,
		CollisionMode:      c.CollisionMode,
		GravitySolver:      c.GravitySolver,
		Deterministic:      c.Deterministic,
		BarnesHutTheta:     c.BarnesHutTheta,
		BarnesHutThreshold: c.BarnesHutThreshold,
	})
}

// UnmarshalJSON decodes the engineConfig wire shape. Solver tuning fields
// fall back to their documented defaults when absent, matching the
// migrator's legacy-path defaulting behavior for forward compatibility
// with documents that predate the Barnes-Hut fields.
func (c *SimulationConfig) UnmarshalJSON(data []byte) error {
	aux := configJSON{
		GravitySolver:      Auto,
		BarnesHutTheta:     defaultBarnesHutTheta,
		BarnesHutThreshold: defaultBarnesHutThreshold,
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = SimulationConfig{
		GravityConstant:    aux.GravityConstant,
		SofteningEpsilon:   aux.SofteningEpsilon,
		Dt:                 aux.Dt,
		DtPolicy:           aux.DtPolicy,
		Integrator:         aux.Integrator,
		CollisionMode:      aux.CollisionMode,
		GravitySolver:      aux.GravitySolver,
		Deterministic:      aux.Deterministic,
		BarnesHutTheta:     aux.BarnesHutTheta,
		BarnesHutThreshold: aux.BarnesHutThreshold,
	}
	return nil
}
