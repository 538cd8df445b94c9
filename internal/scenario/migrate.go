package scenario

import (
	"strings"
	"time"
)

// legacyConfigDefaults mirrors the defaults the migrator fills in for a
// pre-1.0 document per spec §4.6.
var legacyConfigDefaults = map[string]any{
	"dt":                 0.005,
	"dtPolicy":           "fixed",
	"integrator":         "velocityVerlet",
	"collisionMode":      "inelasticMerge",
	"deterministic":      true,
	"gravitySolver":      "auto",
	"barnesHutTheta":     0.6,
	"barnesHutThreshold": float64(256),
}

// legacyConfigAliases maps a legacy field name to its canonical name.
var legacyConfigAliases = map[string]string{
	"gravity": "gravityConstant",
	"epsilon": "softeningEpsilon",
}

// MigrateToLatest upgrades a raw decoded scenario document to schema
// 1.0 per spec §4.6's migrator rules, returning a new map (the input is
// left untouched).
func MigrateToLatest(raw map[string]any, now func() time.Time) map[string]any {
	schemaVersion, _ := raw["schemaVersion"].(string)

	switch {
	case schemaVersion == "" || strings.HasPrefix(schemaVersion, "0."):
		return migrateLegacy(raw, now)
	case strings.HasPrefix(schemaVersion, "1."):
		out := cloneMap(raw)
		out["schemaVersion"] = CurrentSchemaVersion
		return out
	default:
		return cloneMap(raw)
	}
}

func migrateLegacy(raw map[string]any, now func() time.Time) map[string]any {
	out := map[string]any{
		"schemaVersion": CurrentSchemaVersion,
		"metadata":      migrateMetadata(raw, now),
		"engineConfig":  migrateConfig(raw),
		"bodies":        raw["bodies"],
	}
	return out
}

func migrateMetadata(raw map[string]any, now func() time.Time) map[string]any {
	existing, _ := raw["metadata"].(map[string]any)

	name, _ := stringOrZero(existing, "name")
	if name == "" {
		name = "Imported Scenario"
	}
	createdAt, _ := stringOrZero(existing, "createdAt")
	if createdAt == "" {
		createdAt = now().UTC().Format(time.RFC3339)
	}

	var tags []any
	if existing != nil {
		if raw, ok := existing["tags"].([]any); ok {
			tags = raw
		}
	}
	if tags == nil {
		tags = []any{}
	}

	metadata := map[string]any{
		"name":      name,
		"createdAt": createdAt,
		"tags":      tags,
	}
	if existing != nil {
		if description, ok := existing["description"]; ok {
			metadata["description"] = description
		}
		if author, ok := existing["author"]; ok {
			metadata["author"] = author
		}
	}
	return metadata
}

func migrateConfig(raw map[string]any) map[string]any {
	existing, _ := raw["engineConfig"].(map[string]any)
	if existing == nil {
		existing = map[string]any{}
	}

	out := map[string]any{}
	for k, v := range legacyConfigDefaults {
		out[k] = v
	}

	for key, value := range existing {
		canonical, isAlias := legacyConfigAliases[key]
		if !isAlias {
			canonical = key
		}
		out[canonical] = value
	}

	return out
}

func stringOrZero(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key].(string)
	return v, ok
}

func cloneMap(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out
}
