package light

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/essentialkaos/ek/v12/color"

	"github.com/denwilliams/go-wakeuplight/internal/effect"
)

const (
	StateOn  = "ON"
	StateOff = "OFF"
)

// ErrNotObject is returned for payloads that are valid JSON but not an object.
var ErrNotObject = errors.New("command is not a JSON object")

// Command is a decoded set request. Every field is optional; nil means the
// field was absent.
type Command struct {
	State      *string  `json:"state,omitempty"`
	Color      *RGB     `json:"color,omitempty"`
	Brightness *float64 `json:"brightness,omitempty"`
	Effect     *string  `json:"effect,omitempty"`
	ColorTemp  *float64 `json:"color_temp,omitempty"` // mireds
	Transition *float64 `json:"transition,omitempty"` // seconds
}

func (c *Command) String() string {
	var parts []string
	if c.State != nil {
		parts = append(parts, "state:"+*c.State)
	}
	if c.Color != nil {
		parts = append(parts, fmt.Sprintf("color:%g,%g,%g", c.Color.R, c.Color.G, c.Color.B))
	}
	if c.Brightness != nil {
		parts = append(parts, fmt.Sprintf("brightness:%g", *c.Brightness))
	}
	if c.Effect != nil {
		parts = append(parts, "effect:"+*c.Effect)
	}
	if c.ColorTemp != nil {
		parts = append(parts, fmt.Sprintf("color_temp:%g", *c.ColorTemp))
	}
	if c.Transition != nil {
		parts = append(parts, fmt.Sprintf("transition:%g", *c.Transition))
	}
	return strings.Join(parts, " ")
}

// RGB is the wire form of a color. Channels are decoded as any JSON number
// so out of range or fractional input can be clamped instead of rejected.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

func FromColor(c effect.Color) RGB {
	return RGB{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func (c RGB) Color() effect.Color {
	return effect.Color{R: effect.Clamp8f(c.R), G: effect.Clamp8f(c.G), B: effect.Clamp8f(c.B)}
}

// UnmarshalJSON accepts {"r":..,"g":..,"b":..} as well as a hex string such
// as "#ffc58f".
func (c *RGB) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		hex, err := color.Parse(s)
		if err != nil {
			return fmt.Errorf("parse color %q: %w", s, err)
		}
		rgb := hex.ToRGB()
		*c = RGB{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
		return nil
	}

	type plain RGB
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = RGB(p)
	return nil
}

// ParseCommand decodes a command payload. Payloads that were JSON encoded
// twice (a JSON string holding the object) are unwrapped first.
func ParseCommand(data []byte) (*Command, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("decode command string: %w", err)
		}
		data = bytes.TrimSpace([]byte(inner))
	}
	if len(data) == 0 || data[0] != '{' {
		return nil, ErrNotObject
	}

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	return &cmd, nil
}

// State is the published summary of where the light is heading.
type State struct {
	State      string `json:"state"`
	Color      RGB    `json:"color"`
	Brightness int    `json:"brightness"`
}
