package scenario

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/landxcape/nbody-sim-core/internal/config"
)

// Issue pinpoints one validation failure in a raw scenario document.
type Issue struct {
	Path    string
	Message string
}

func issue(path, message string) Issue {
	return Issue{Path: path, Message: message}
}

// ValidateDocument runs the scenario schema validator from spec §4.6
// against a raw decoded JSON object, returning every issue found (an
// empty slice means the document is accepted). Operating on the raw map
// rather than the strongly-typed Model lets the validator report partial
// documents precisely instead of failing at the first decode error.
func ValidateDocument(raw map[string]any) []Issue {
	var issues []Issue

	schemaVersion, ok := raw["schemaVersion"].(string)
	if !ok || schemaVersion == "" {
		issues = append(issues, issue("schemaVersion", "schemaVersion is required"))
	} else if !strings.HasPrefix(schemaVersion, "1.") {
		issues = append(issues, issue("schemaVersion", "schemaVersion must start with \"1.\""))
	}

	metadataRaw, ok := raw["metadata"].(map[string]any)
	if !ok {
		issues = append(issues, issue("metadata", "metadata is required"))
	} else {
		name, _ := metadataRaw["name"].(string)
		if strings.TrimSpace(name) == "" {
			issues = append(issues, issue("metadata.name", "name must not be empty"))
		}
		createdAt, _ := metadataRaw["createdAt"].(string)
		if strings.TrimSpace(createdAt) == "" {
			issues = append(issues, issue("metadata.createdAt", "createdAt must not be empty"))
		}
	}

	engineConfigRaw, ok := raw["engineConfig"].(map[string]any)
	if !ok {
		issues = append(issues, issue("engineConfig", "engineConfig is required"))
	} else {
		cfgData, err := json.Marshal(engineConfigRaw)
		if err != nil {
			issues = append(issues, issue("engineConfig", "engineConfig could not be encoded"))
		} else {
			var cfg simulationConfigDecoder
			if err := json.Unmarshal(cfgData, &cfg); err != nil {
				issues = append(issues, issue("engineConfig", "engineConfig could not be decoded: "+err.Error()))
			} else if err := cfg.asConfig().Validate(); err != nil {
				issues = append(issues, issue("engineConfig", err.Error()))
			}
		}
	}

	bodiesRaw, ok := raw["bodies"].([]any)
	if !ok || len(bodiesRaw) == 0 {
		issues = append(issues, issue("bodies", "bodies must be a non-empty array"))
	} else {
		seenIDs := make(map[string]struct{}, len(bodiesRaw))
		for i, entry := range bodiesRaw {
			path := bodyPath(i)
			bodyMap, ok := entry.(map[string]any)
			if !ok {
				issues = append(issues, issue(path, "body must be an object"))
				continue
			}
			issues = append(issues, validateBodyFields(path, bodyMap, seenIDs)...)
		}
	}

	return issues
}

func bodyPath(i int) string {
	return "bodies[" + strconv.Itoa(i) + "]"
}

func validateBodyFields(path string, bodyMap map[string]any, seenIDs map[string]struct{}) []Issue {
	var issues []Issue

	id, _ := bodyMap["id"].(string)
	if strings.TrimSpace(id) == "" {
		issues = append(issues, issue(path+".id", "id must not be empty"))
	} else if _, exists := seenIDs[id]; exists {
		issues = append(issues, issue(path+".id", "duplicate body id \""+id+"\""))
	} else {
		seenIDs[id] = struct{}{}
	}

	if mass, ok := numberField(bodyMap, "mass"); !ok || mass <= 0 {
		issues = append(issues, issue(path+".mass", "mass must be finite and > 0"))
	}
	if radius, ok := numberField(bodyMap, "radius"); !ok || radius <= 0 {
		issues = append(issues, issue(path+".radius", "radius must be finite and > 0"))
	}
	if _, ok := bodyMap["position"].(map[string]any); !ok {
		issues = append(issues, issue(path+".position", "position is required"))
	}
	if _, ok := bodyMap["velocity"].(map[string]any); !ok {
		issues = append(issues, issue(path+".velocity", "velocity is required"))
	}

	return issues
}

func numberField(m map[string]any, key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}

// simulationConfigDecoder mirrors SimulationConfig's JSON shape for
// validator use, avoiding a dependency on SimulationConfig's own
// UnmarshalJSON defaulting behavior so the validator sees exactly what
// was supplied.
type simulationConfigDecoder struct {
	GravityConstant    float64 `json:"gravityConstant"`
	SofteningEpsilon   float64 `json:"softeningEpsilon"`
	Dt                 float64 `json:"dt"`
	DtPolicy           string  `json:"dtPolicy"`
	Integrator         string  `json:"integrator"`
	CollisionMode      string  `json:"collisionMode"`
	GravitySolver      string  `json:"gravitySolver"`
	Deterministic      bool    `json:"deterministic"`
	BarnesHutTheta     float64 `json:"barnesHutTheta"`
	BarnesHutThreshold int     `json:"barnesHutThreshold"`
}

func (d simulationConfigDecoder) asConfig() config.SimulationConfig {
	return config.SimulationConfig{
		GravityConstant:    d.GravityConstant,
		SofteningEpsilon:   d.SofteningEpsilon,
		Dt:                 d.Dt,
		DtPolicy:           config.DtPolicy(d.DtPolicy),
		Integrator:         config.IntegratorKind(d.Integrator),
		CollisionMode:      config.CollisionMode(d.CollisionMode),
		GravitySolver:      config.GravitySolver(d.GravitySolver),
		Deterministic:      d.Deterministic,
		BarnesHutTheta:     d.BarnesHutTheta,
		BarnesHutThreshold: d.BarnesHutThreshold,
	}
}
