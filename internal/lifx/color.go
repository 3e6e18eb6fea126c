package lifx

import (
	"image/color"

	"go.yhsif.com/lifxlan"

	"github.com/denwilliams/go-wakeuplight/internal/effect"
)

// mirrorKelvin only matters for unsaturated colors.
const mirrorKelvin = 3500

func isSameColor(a *lifxlan.Color, b *lifxlan.Color) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	return a.Hue == b.Hue &&
		a.Saturation == b.Saturation &&
		a.Brightness == b.Brightness &&
		a.Kelvin == b.Kelvin
}

func toLifxColor(c effect.Color) *lifxlan.Color {
	return lifxlan.FromColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, mirrorKelvin)
}
