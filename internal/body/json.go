package body

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

// vec2JSON mirrors Vec2's two fields; vec2.Vec2 has no JSON tags of its own
// since package vec2 is pure math with no wire-format concerns.
type vec2JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toVec2JSON(v vec2.Vec2) vec2JSON   { return vec2JSON{X: v.X, Y: v.Y} }
func fromVec2JSON(v vec2JSON) vec2.Vec2 { return vec2.New(v.X, v.Y) }

type metadataJSON struct {
	Label *string `json:"label,omitempty"`
	Kind  *string `json:"kind,omitempty"`
	Color *string `json:"color,omitempty"`
}

type bodyJSON struct {
	ID       string        `json:"id"`
	Mass     float64       `json:"mass"`
	Radius   float64       `json:"radius"`
	Position vec2JSON      `json:"position"`
	Velocity vec2JSON      `json:"velocity"`
	Alive    bool          `json:"alive"`
	Metadata *metadataJSON `json:"metadata,omitempty"`
}

// MarshalJSON encodes Body per spec §6: label/kind/color nest under
// "metadata", with color rendered as an "#AARRGGBB" string.
func (b Body) MarshalJSON() ([]byte, error) {
	wire := bodyJSON{
		ID:       b.ID,
		Mass:     b.Mass,
		Radius:   b.Radius,
		Position: toVec2JSON(b.Position),
		Velocity: toVec2JSON(b.Velocity),
		Alive:    b.Alive,
	}

	hasColor := b.ColorValue != 0
	if b.Label != nil || b.Kind != nil || hasColor {
		meta := &metadataJSON{Label: b.Label, Kind: b.Kind}
		if hasColor {
			color := FormatColor(b.ColorValue)
			meta.Color = &color
		}
		wire.Metadata = meta
	}

	return json.Marshal(wire)
}

// UnmarshalJSON decodes Body per spec §6.
func (b *Body) UnmarshalJSON(data []byte) error {
	var wire bodyJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("body: %w", err)
	}

	*b = Body{
		ID:       wire.ID,
		Mass:     wire.Mass,
		Radius:   wire.Radius,
		Position: fromVec2JSON(wire.Position),
		Velocity: fromVec2JSON(wire.Velocity),
		Alive:    wire.Alive,
	}

	if wire.Metadata != nil {
		b.Label = wire.Metadata.Label
		b.Kind = wire.Metadata.Kind
		if wire.Metadata.Color != nil {
			color, err := ParseColor(*wire.Metadata.Color)
			if err != nil {
				return err
			}
			b.ColorValue = color
		}
	}

	return nil
}

// FormatColor renders a 32-bit ARGB value as "#AARRGGBB".
func FormatColor(c uint32) string {
	return fmt.Sprintf("#%08X", c)
}

// ParseColor parses an 8-hex-digit ARGB string, with or without a leading
// '#', into a 32-bit unsigned integer.
func ParseColor(s string) (uint32, error) {
	trimmed := strings.TrimPrefix(s, "#")
	if len(trimmed) != 8 {
		return 0, fmt.Errorf("body: color %q must be 8 hex digits", s)
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("body: invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
