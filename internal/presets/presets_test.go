package presets

import (
	"errors"
	"testing"
	"time"

	"github.com/landxcape/nbody-sim-core/internal/simerr"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestListReturnsAllShippedPresets(t *testing.T) {
	got := List()
	if len(got) != len(registry) {
		t.Fatalf("expected %d presets, got %d", len(registry), len(got))
	}
	for _, p := range got {
		if p.Name == "" || p.Description == "" {
			t.Errorf("preset missing name/description: %+v", p)
		}
	}
}

func TestListIsSortedByName(t *testing.T) {
	got := List()
	for i := 1; i < len(got); i++ {
		if got[i-1].Name > got[i].Name {
			t.Fatalf("expected sorted order, got %v before %v", got[i-1].Name, got[i].Name)
		}
	}
}

func TestLoadKnownPresetProducesValidScenario(t *testing.T) {
	for name := range registry {
		model, err := Load(name, fixedClock)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(model.Bodies) == 0 {
			t.Errorf("preset %s has no bodies", name)
		}
		if err := model.Validate(); err != nil {
			t.Errorf("preset %s failed validation: %v", name, err)
		}
	}
}

func TestLoadUsesPresetNameAsMetadataName(t *testing.T) {
	model, err := Load("two-body-stable-orbit", fixedClock)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if model.Metadata.Name != "Two-Body Stable Orbit" {
		t.Errorf("expected metadata name 'Two-Body Stable Orbit', got %q", model.Metadata.Name)
	}
}

func TestLoadUnknownPresetReturnsErrUnknownPreset(t *testing.T) {
	_, err := Load("does-not-exist", fixedClock)
	if !errors.Is(err, simerr.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestLoadWithNilClockDefaultsToNow(t *testing.T) {
	model, err := Load("head-on-inelastic-merge", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if model.Metadata.CreatedAt == "" {
		t.Errorf("expected a non-empty createdAt timestamp")
	}
}
