package scenario

import (
	"encoding/json"

	"github.com/landxcape/nbody-sim-core/internal/body"
	"github.com/landxcape/nbody-sim-core/internal/config"
)

type metadataJSON struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Author      *string  `json:"author,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	Tags        []string `json:"tags"`
}

type modelJSON struct {
	SchemaVersion string                  `json:"schemaVersion"`
	Metadata      metadataJSON            `json:"metadata"`
	EngineConfig  config.SimulationConfig `json:"engineConfig"`
	Bodies        []body.Body             `json:"bodies"`
}

func (m Model) MarshalJSON() ([]byte, error) {
	tags := m.Metadata.Tags
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(modelJSON{
		SchemaVersion: m.SchemaVersion,
		Metadata: metadataJSON{
			Name:        m.Metadata.Name,
			Description: m.Metadata.Description,
			Author:      m.Metadata.Author,
			CreatedAt:   m.Metadata.CreatedAt,
			Tags:        tags,
		},
		EngineConfig: m.EngineConfig,
		Bodies:       m.Bodies,
	})
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var wire modelJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*m = Model{
		SchemaVersion: wire.SchemaVersion,
		Metadata: Metadata{
			Name:        wire.Metadata.Name,
			Description: wire.Metadata.Description,
			Author:      wire.Metadata.Author,
			CreatedAt:   wire.Metadata.CreatedAt,
			Tags:        wire.Metadata.Tags,
		},
		EngineConfig: wire.EngineConfig,
		Bodies:       wire.Bodies,
	}
	return nil
}

type snapshotJSON struct {
	SchemaVersion string      `json:"schemaVersion"`
	CreatedAt     string      `json:"createdAt,omitempty"`
	Tick          uint64      `json:"tick"`
	SimTime       float64     `json:"simTime"`
	ConfigHash    string      `json:"configHash"`
	Bodies        []body.Body `json:"bodies"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		SchemaVersion: s.SchemaVersion,
		CreatedAt:     s.CreatedAt,
		Tick:          s.Tick,
		SimTime:       s.SimTime,
		ConfigHash:    s.ConfigHash,
		Bodies:        s.Bodies,
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var wire snapshotJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*s = Snapshot{
		SchemaVersion: wire.SchemaVersion,
		CreatedAt:     wire.CreatedAt,
		Tick:          wire.Tick,
		SimTime:       wire.SimTime,
		ConfigHash:    wire.ConfigHash,
		Bodies:        wire.Bodies,
	}
	return nil
}
