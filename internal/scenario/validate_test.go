package scenario_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/landxcape/nbody-sim-core/internal/scenario"
)

func validDocument() map[string]any {
	var raw map[string]any
	doc := `{
		"schemaVersion": "1.0",
		"metadata": {"name": "Test", "createdAt": "2026-01-01T00:00:00Z", "tags": []},
		"engineConfig": {
			"gravityConstant": 1, "softeningEpsilon": 0, "dt": 0.01,
			"dtPolicy": "fixed", "integrator": "velocityVerlet",
			"collisionMode": "inelasticMerge", "gravitySolver": "auto",
			"deterministic": true, "barnesHutTheta": 0.6, "barnesHutThreshold": 256
		},
		"bodies": [
			{"id": "a", "mass": 1, "radius": 1,
			 "position": {"x": 0, "y": 0}, "velocity": {"x": 0, "y": 0}, "alive": true}
		]
	}`
	_ = json.Unmarshal([]byte(doc), &raw)
	return raw
}

var _ = Describe("ValidateDocument", func() {
	It("accepts a well-formed document", func() {
		issues := scenario.ValidateDocument(validDocument())
		Expect(issues).To(BeEmpty())
	})

	It("flags a missing schemaVersion", func() {
		doc := validDocument()
		delete(doc, "schemaVersion")
		issues := scenario.ValidateDocument(doc)
		Expect(issues).To(ContainElement(HaveField("Path", "schemaVersion")))
	})

	It("flags a pre-1.x schemaVersion", func() {
		doc := validDocument()
		doc["schemaVersion"] = "0.9"
		issues := scenario.ValidateDocument(doc)
		Expect(issues).To(ContainElement(HaveField("Path", "schemaVersion")))
	})

	It("flags missing metadata.name", func() {
		doc := validDocument()
		doc["metadata"].(map[string]any)["name"] = ""
		issues := scenario.ValidateDocument(doc)
		Expect(issues).To(ContainElement(HaveField("Path", "metadata.name")))
	})

	It("flags an engineConfig that fails validate()", func() {
		doc := validDocument()
		doc["engineConfig"].(map[string]any)["dt"] = -1.0
		issues := scenario.ValidateDocument(doc)
		Expect(issues).To(ContainElement(HaveField("Path", "engineConfig")))
	})

	It("flags an empty bodies array", func() {
		doc := validDocument()
		doc["bodies"] = []any{}
		issues := scenario.ValidateDocument(doc)
		Expect(issues).To(ContainElement(HaveField("Path", "bodies")))
	})

	It("flags duplicate body ids", func() {
		doc := validDocument()
		body := doc["bodies"].([]any)[0]
		doc["bodies"] = []any{body, body}
		issues := scenario.ValidateDocument(doc)
		found := false
		for _, iss := range issues {
			if iss.Path == "bodies[1].id" {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})

	It("flags a non-positive body mass", func() {
		doc := validDocument()
		doc["bodies"].([]any)[0].(map[string]any)["mass"] = 0.0
		issues := scenario.ValidateDocument(doc)
		Expect(issues).To(ContainElement(HaveField("Path", "bodies[0].mass")))
	})
})
