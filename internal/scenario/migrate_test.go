package scenario_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/landxcape/nbody-sim-core/internal/scenario"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("MigrateToLatest", func() {
	Context("legacy document with no schemaVersion", func() {
		raw := map[string]any{
			"engineConfig": map[string]any{
				"gravity": 9.8,
				"epsilon": 0.01,
			},
			"bodies": []any{map[string]any{"id": "a"}},
		}

		It("synthesizes metadata defaults", func() {
			migrated := scenario.MigrateToLatest(raw, fixedClock)
			metadata := migrated["metadata"].(map[string]any)
			Expect(metadata["name"]).To(Equal("Imported Scenario"))
			Expect(metadata["createdAt"]).To(Equal("2026-01-01T00:00:00Z"))
		})

		It("aliases legacy config keys to canonical names", func() {
			migrated := scenario.MigrateToLatest(raw, fixedClock)
			cfg := migrated["engineConfig"].(map[string]any)
			Expect(cfg["gravityConstant"]).To(Equal(9.8))
			Expect(cfg["softeningEpsilon"]).To(Equal(0.01))
		})

		It("fills solver and policy defaults", func() {
			migrated := scenario.MigrateToLatest(raw, fixedClock)
			cfg := migrated["engineConfig"].(map[string]any)
			Expect(cfg["dt"]).To(Equal(0.005))
			Expect(cfg["dtPolicy"]).To(Equal("fixed"))
			Expect(cfg["integrator"]).To(Equal("velocityVerlet"))
			Expect(cfg["collisionMode"]).To(Equal("inelasticMerge"))
			Expect(cfg["deterministic"]).To(Equal(true))
			Expect(cfg["gravitySolver"]).To(Equal("auto"))
			Expect(cfg["barnesHutThreshold"]).To(Equal(float64(256)))
		})

		It("sets schemaVersion to 1.0", func() {
			migrated := scenario.MigrateToLatest(raw, fixedClock)
			Expect(migrated["schemaVersion"]).To(Equal("1.0"))
		})

		It("carries bodies through unchanged", func() {
			migrated := scenario.MigrateToLatest(raw, fixedClock)
			Expect(migrated["bodies"]).To(Equal(raw["bodies"]))
		})
	})

	Context("1.x document", func() {
		It("passes through, coercing schemaVersion to 1.0", func() {
			raw := map[string]any{"schemaVersion": "1.2", "bodies": []any{}}
			migrated := scenario.MigrateToLatest(raw, fixedClock)
			Expect(migrated["schemaVersion"]).To(Equal("1.0"))
		})
	})

	Context("unrecognized schemaVersion prefix", func() {
		It("leaves the document unchanged", func() {
			raw := map[string]any{"schemaVersion": "2.0", "bodies": []any{}}
			migrated := scenario.MigrateToLatest(raw, fixedClock)
			Expect(migrated["schemaVersion"]).To(Equal("2.0"))
		})
	})
})
