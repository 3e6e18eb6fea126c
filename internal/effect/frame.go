package effect

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	RainbowStartHue = 0
	RainbowDeltaHue = 5

	// rainbowSaturation is out of 255.
	rainbowSaturation = 240
)

// Frame is the pixel buffer handed to renderers. Brightness applies to the
// whole strip on output, pixels hold full-scale colors.
type Frame struct {
	Pixels     []Color
	Brightness uint8
}

func NewFrame(n int) *Frame {
	return &Frame{Pixels: make([]Color, n)}
}

// Fill paints every pixel with c.
func (f *Frame) Fill(c Color) {
	for i := range f.Pixels {
		f.Pixels[i] = c
	}
}

// FillRainbow paints a hue sweep starting at startHue and moving deltaHue
// per pixel, with 256 hue units per full turn.
func (f *Frame) FillRainbow(startHue, deltaHue uint8) {
	hue := startHue
	for i := range f.Pixels {
		f.Pixels[i] = hueColor(hue)
		hue += deltaHue
	}
}

func hueColor(hue uint8) Color {
	c := colorful.Hsv(float64(hue)*360/256, rainbowSaturation/255.0, 1).Clamped()
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}

// Scaled returns pixel i with the frame brightness applied.
func (f *Frame) Scaled(i int) Color {
	c := f.Pixels[i]
	return Color{
		R: scale8(c.R, f.Brightness),
		G: scale8(c.G, f.Brightness),
		B: scale8(c.B, f.Brightness),
	}
}

// Average returns the mean of all pixels with brightness applied.
func (f *Frame) Average() Color {
	if len(f.Pixels) == 0 {
		return Black
	}

	var r, g, b int
	for i := range f.Pixels {
		c := f.Scaled(i)
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(f.Pixels)
	return Color{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}
