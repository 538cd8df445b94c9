// Package archive persists scenario and snapshot documents to a
// directory tree on disk, one subdirectory per saved run.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/landxcape/nbody-sim-core/internal/scenario"
)

// Store writes and reads scenario/snapshot runs under a base directory.
type Store struct {
	baseDir string
	now     func() time.Time
}

// New constructs a Store rooted at baseDir. The directory is created on
// first Init call, not by New, matching the teacher's explicit Init
// idiom.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

// WithClock overrides the run-id timestamp source for deterministic
// tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Init creates the store's base directory if absent.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

// SaveScenario writes model under a fresh run directory named from the
// scenario's metadata name and the current timestamp, returning the run
// id.
func (s *Store) SaveScenario(model scenario.Model) (string, error) {
	runID := fmt.Sprintf("scenario_%s_%d", sanitize(model.Metadata.Name), s.now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "scenario.json"), model); err != nil {
		return "", err
	}
	return runID, nil
}

// SaveSnapshot writes snap under a fresh run directory named from the
// current tick and timestamp, returning the run id.
func (s *Store) SaveSnapshot(snap scenario.Snapshot) (string, error) {
	runID := fmt.Sprintf("snapshot_tick%d_%d", snap.Tick, s.now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "snapshot.json"), snap); err != nil {
		return "", err
	}
	return runID, nil
}

// LoadScenario reads back a scenario document saved under runID.
func (s *Store) LoadScenario(runID string) (scenario.Model, error) {
	var model scenario.Model
	err := readJSON(filepath.Join(s.baseDir, runID, "scenario.json"), &model)
	return model, err
}

// LoadSnapshot reads back a snapshot document saved under runID.
func (s *Store) LoadSnapshot(runID string) (scenario.Snapshot, error) {
	var snap scenario.Snapshot
	err := readJSON(filepath.Join(s.baseDir, runID, "snapshot.json"), &snap)
	return snap, err
}

// List returns every run id currently archived, in lexical order of
// directory name (not necessarily the order the runs were saved in).
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			runs = append(runs, entry.Name())
		}
	}
	return runs, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "untitled"
	}
	return string(out)
}
