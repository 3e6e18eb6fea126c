package effect

import "math"

const (
	MinKelvin = 1000.0
	MaxKelvin = 40000.0
)

// TemperatureToRGB approximates the color of a black body at the given
// temperature. Input is clamped to [MinKelvin, MaxKelvin].
//
// See http://www.tannerhelland.com/4435/convert-temperature-rgb-algorithm-code/
func TemperatureToRGB(kelvin float64) Color {
	if math.IsNaN(kelvin) {
		kelvin = MinKelvin
	}
	t := math.Min(math.Max(kelvin, MinKelvin), MaxKelvin) / 100

	var r, g, b float64

	if t <= 66 {
		r = 255
	} else {
		r = clampf(329.698727446 * math.Pow(t-60, -0.1332047592))
	}

	if t <= 66 {
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}
	g = clampf(g)

	switch {
	case t >= 66:
		b = 255
	case t <= 19:
		b = 0
	default:
		b = clampf(138.5177312231*math.Log(t-10) - 305.0447927307)
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// MiredsToKelvin converts a reciprocal color temperature to Kelvin.
// Non-positive values map to the hottest supported temperature.
func MiredsToKelvin(mireds float64) float64 {
	if mireds <= 0 {
		return MaxKelvin
	}
	return 1e6 / mireds
}
