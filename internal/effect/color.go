package effect

import (
	"fmt"
	"math"
)

// Color is a 24 bit RGB value.
type Color struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black     = Color{}
	WarmWhite = Color{R: 255, G: 246, B: 237}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Level is a color shown at a brightness.
type Level struct {
	Color      Color
	Brightness uint8
}

func (l Level) String() string {
	return fmt.Sprintf("%s@%d", l.Color, l.Brightness)
}

// Clamp8 limits v to the 0-255 range of a channel.
func Clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Clamp8f truncates v into a channel value. NaN maps to 0.
func Clamp8f(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(clampf(v))
}

func clampf(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// scale8 scales i by scale/256, matching the usual LED library fixed point
// helper where 255 leaves the value untouched.
func scale8(i, scale uint8) uint8 {
	return uint8((uint16(i) * (1 + uint16(scale))) >> 8)
}
