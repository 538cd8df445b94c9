package body

import (
	"encoding/json"
	"fmt"

	"github.com/landxcape/nbody-sim-core/internal/simerr"
	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

// Edit is the BodyEdit tagged variant from spec §3: exactly one of Create,
// Update, or Delete. Implemented as a sum type with explicit variants
// (spec §9 design note) rather than a class hierarchy.
type Edit interface {
	isEdit()
}

// CreateEdit appends a new body; the engine rejects a duplicate id.
type CreateEdit struct {
	Body Body
}

// UpdateEdit replaces the named fields of an existing body.
type UpdateEdit struct {
	Update Update
}

// DeleteEdit removes a body by id.
type DeleteEdit struct {
	ID string
}

func (CreateEdit) isEdit() {}
func (UpdateEdit) isEdit() {}
func (DeleteEdit) isEdit() {}

// Update carries the optional replacement fields for an UpdateEdit. A nil
// field is left unchanged on the existing body.
type Update struct {
	ID         string
	Mass       *float64
	Radius     *float64
	Position   *vec2.Vec2
	Velocity   *vec2.Vec2
	Alive      *bool
	Label      *string
	Kind       *string
	ColorValue *uint32
}

// Apply produces a new Body with the update's non-nil fields overriding b's.
func (u Update) Apply(b Body) Body {
	out := b
	if u.Mass != nil {
		out.Mass = *u.Mass
	}
	if u.Radius != nil {
		out.Radius = *u.Radius
	}
	if u.Position != nil {
		out.Position = *u.Position
	}
	if u.Velocity != nil {
		out.Velocity = *u.Velocity
	}
	if u.Alive != nil {
		out.Alive = *u.Alive
	}
	if u.Label != nil {
		label := *u.Label
		out.Label = &label
	}
	if u.Kind != nil {
		kind := *u.Kind
		out.Kind = &kind
	}
	if u.ColorValue != nil {
		out.ColorValue = *u.ColorValue
	}
	return out
}

// --- wire format ---

type updateMetadataJSON struct {
	Label *string `json:"label,omitempty"`
	Kind  *string `json:"kind,omitempty"`
	Color *string `json:"color,omitempty"`
}

type updateJSON struct {
	ID       string              `json:"id"`
	Mass     *float64            `json:"mass,omitempty"`
	Radius   *float64            `json:"radius,omitempty"`
	Position *vec2JSON           `json:"position,omitempty"`
	Velocity *vec2JSON           `json:"velocity,omitempty"`
	Alive    *bool               `json:"alive,omitempty"`
	Metadata *updateMetadataJSON `json:"metadata,omitempty"`
}

type deleteJSON struct {
	ID string `json:"id"`
}

type editEnvelope struct {
	Create *Body       `json:"create,omitempty"`
	Update *updateJSON `json:"update,omitempty"`
	Delete *deleteJSON `json:"delete,omitempty"`
}

// EncodeEdit renders an Edit in its wire form: exactly one of
// {"create":...}, {"update":...}, {"delete":...}.
func EncodeEdit(e Edit) ([]byte, error) {
	switch v := e.(type) {
	case CreateEdit:
		return json.Marshal(editEnvelope{Create: &v.Body})
	case UpdateEdit:
		return json.Marshal(editEnvelope{Update: updateToJSON(v.Update)})
	case DeleteEdit:
		return json.Marshal(editEnvelope{Delete: &deleteJSON{ID: v.ID}})
	default:
		return nil, simerr.Wrap(simerr.ErrUnsupportedVariant, "unknown edit type %T", e)
	}
}

// DecodeEdit parses the wire form produced by EncodeEdit, inspecting which
// top-level tag key is present.
func DecodeEdit(data []byte) (Edit, error) {
	var env editEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("edit: %w", err)
	}

	set := 0
	if env.Create != nil {
		set++
	}
	if env.Update != nil {
		set++
	}
	if env.Delete != nil {
		set++
	}
	if set != 1 {
		return nil, simerr.Wrap(simerr.ErrUnsupportedVariant, "edit must set exactly one of create/update/delete")
	}

	switch {
	case env.Create != nil:
		return CreateEdit{Body: *env.Create}, nil
	case env.Update != nil:
		return UpdateEdit{Update: updateFromJSON(env.Update)}, nil
	default:
		if env.Delete.ID == "" {
			return nil, simerr.Wrap(simerr.ErrUnsupportedVariant, "delete edit missing id")
		}
		return DeleteEdit{ID: env.Delete.ID}, nil
	}
}

func updateToJSON(u Update) *updateJSON {
	wire := &updateJSON{
		ID:     u.ID,
		Mass:   u.Mass,
		Radius: u.Radius,
		Alive:  u.Alive,
	}
	if u.Position != nil {
		v := toVec2JSON(*u.Position)
		wire.Position = &v
	}
	if u.Velocity != nil {
		v := toVec2JSON(*u.Velocity)
		wire.Velocity = &v
	}
	if u.Label != nil || u.Kind != nil || u.ColorValue != nil {
		meta := &updateMetadataJSON{Label: u.Label, Kind: u.Kind}
		if u.ColorValue != nil {
			c := FormatColor(*u.ColorValue)
			meta.Color = &c
		}
		wire.Metadata = meta
	}
	return wire
}

func updateFromJSON(wire *updateJSON) Update {
	u := Update{
		ID:     wire.ID,
		Mass:   wire.Mass,
		Radius: wire.Radius,
		Alive:  wire.Alive,
	}
	if wire.Position != nil {
		v := fromVec2JSON(*wire.Position)
		u.Position = &v
	}
	if wire.Velocity != nil {
		v := fromVec2JSON(*wire.Velocity)
		u.Velocity = &v
	}
	if wire.Metadata != nil {
		u.Label = wire.Metadata.Label
		u.Kind = wire.Metadata.Kind
		if wire.Metadata.Color != nil {
			if c, err := ParseColor(*wire.Metadata.Color); err == nil {
				u.ColorValue = &c
			}
		}
	}
	return u
}
