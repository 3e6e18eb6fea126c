package effect

// heatPalette is a 16 entry gradient from black through red, orange and
// yellow to white.
var heatPalette = [16]Color{
	{0x00, 0x00, 0x00}, {0x33, 0x00, 0x00}, {0x66, 0x00, 0x00}, {0x99, 0x00, 0x00},
	{0xCC, 0x00, 0x00}, {0xFF, 0x00, 0x00}, {0xFF, 0x33, 0x00}, {0xFF, 0x66, 0x00},
	{0xFF, 0x99, 0x00}, {0xFF, 0xCC, 0x00}, {0xFF, 0xFF, 0x00}, {0xFF, 0xFF, 0x33},
	{0xFF, 0xFF, 0x66}, {0xFF, 0xFF, 0x99}, {0xFF, 0xFF, 0xCC}, {0xFF, 0xFF, 0xFF},
}

// SunriseMaxIndex is the last palette index a sunrise reaches.
const SunriseMaxIndex = 240

// HeatColor looks up index in the heat palette. The high nibble selects an
// entry and the low nibble blends linearly towards the next one.
func HeatColor(index uint8) Color {
	hi := index >> 4
	lo := index & 0x0F

	c := heatPalette[hi]
	if lo == 0 {
		return c
	}

	next := heatPalette[(hi+1)%16]
	f2 := lo << 4
	f1 := 255 - f2

	return Color{
		R: scale8(c.R, f1) + scale8(next.R, f2),
		G: scale8(c.G, f1) + scale8(next.G, f2),
		B: scale8(c.B, f1) + scale8(next.B, f2),
	}
}

// mapRange maps x from [inMin, inMax] onto [outMin, outMax] with integer
// arithmetic truncating towards zero.
func mapRange(x, inMin, inMax, outMin, outMax int64) int64 {
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}
