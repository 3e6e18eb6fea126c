package effect

import (
	"fmt"
	"time"
)

type Kind uint8

const (
	Rainbow Kind = iota
	LinearTransition
	Sunrise
	BlackbodyTransition
	Warmwhite
)

func (k Kind) String() string {
	switch k {
	case Rainbow:
		return "rainbow"
	case LinearTransition:
		return "linear_transition"
	case Sunrise:
		return "sunrise"
	case BlackbodyTransition:
		return "blackbody_transition"
	case Warmwhite:
		return "warmwhite"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Effect computes the strip contents as a function of the time elapsed since
// it was created. An effect is Active until Advance first reports false, and
// Terminal afterwards; a Terminal effect never mutates anything again.
//
// The zero value is not usable, build effects with the New* constructors.
type Effect struct {
	kind  Kind
	start time.Time

	begin   Level
	current Level
	end     Level

	duration time.Duration
	kelvin   float64
	done     bool
}

func newEffect(kind Kind, begin Level, start time.Time) *Effect {
	return &Effect{
		kind:    kind,
		start:   start,
		begin:   begin,
		current: begin,
		end:     begin,
	}
}

// NewRainbow paints a rainbow once at the begin brightness.
func NewRainbow(begin Level, start time.Time) *Effect {
	return newEffect(Rainbow, begin, start)
}

// NewWarmwhite switches to WarmWhite at the begin brightness in one step.
func NewWarmwhite(begin Level, start time.Time) *Effect {
	e := newEffect(Warmwhite, begin, start)
	e.end.Color = WarmWhite
	return e
}

// NewLinearTransition fades from begin to end over d.
func NewLinearTransition(begin, end Level, d time.Duration, start time.Time) *Effect {
	e := newEffect(LinearTransition, begin, start)
	e.end = end
	e.duration = d
	return e
}

// NewSunrise walks the heat palette from black to near white while ramping
// brightness from the begin brightness to end.Brightness over d. end.Color is
// only reported, the palette decides what is shown.
func NewSunrise(begin, end Level, d time.Duration, start time.Time) *Effect {
	e := newEffect(Sunrise, begin, start)
	e.end = end
	e.duration = d
	return e
}

// NewBlackbodyTransition fades from begin to the color of a black body at
// kelvin, shown at brightness, over d.
func NewBlackbodyTransition(begin Level, kelvin float64, brightness uint8, d time.Duration, start time.Time) *Effect {
	e := newEffect(BlackbodyTransition, begin, start)
	e.end = Level{Color: TemperatureToRGB(kelvin), Brightness: brightness}
	e.duration = d
	e.kelvin = kelvin
	return e
}

func (e *Effect) Kind() Kind { return e.kind }
func (e *Effect) Started() time.Time { return e.start }
func (e *Effect) Duration() time.Duration { return e.duration }
func (e *Effect) Begin() Level { return e.begin }
func (e *Effect) Current() Level { return e.current }
func (e *Effect) End() Level { return e.end }
func (e *Effect) Done() bool { return e.done }

// Kelvin is the target temperature of a BlackbodyTransition, zero otherwise.
func (e *Effect) Kelvin() float64 { return e.kelvin }

func (e *Effect) String() string {
	return fmt.Sprintf("%s %s -> %s over %s", e.kind, e.begin, e.end, e.duration)
}

// Advance moves the effect to elapsed time since Started and paints f. It
// returns false once the effect is Terminal, in which case neither the
// effect nor f is touched.
func (e *Effect) Advance(elapsed time.Duration, f *Frame) bool {
	if e.done {
		return false
	}
	if elapsed < 0 {
		elapsed = 0
	}

	switch e.kind {
	case Rainbow:
		e.current.Brightness = e.end.Brightness
		f.Brightness = e.end.Brightness
		f.FillRainbow(RainbowStartHue, RainbowDeltaHue)
		e.done = true
		return true

	case Warmwhite:
		e.current = e.end
		e.paint(f)
		e.done = true
		return true

	case LinearTransition, BlackbodyTransition:
		t, d, ok := e.window(elapsed)
		if !ok {
			return false
		}
		frac := float32(t) / float32(d)
		e.current = Level{
			Color: Color{
				R: lerp(e.begin.Color.R, e.end.Color.R, frac),
				G: lerp(e.begin.Color.G, e.end.Color.G, frac),
				B: lerp(e.begin.Color.B, e.end.Color.B, frac),
			},
			Brightness: lerp(e.begin.Brightness, e.end.Brightness, frac),
		}
		e.paint(f)
		return true

	case Sunrise:
		t, d, ok := e.window(elapsed)
		if !ok {
			return false
		}
		e.current = Level{
			Color:      HeatColor(uint8(mapRange(t, 0, d, 0, SunriseMaxIndex))),
			Brightness: Clamp8(int(mapRange(t, 0, d, int64(e.begin.Brightness), int64(e.end.Brightness)))),
		}
		e.paint(f)
		return true
	}

	e.done = true
	return false
}

// window returns elapsed and the duration in milliseconds, or false when the
// effect has run out of time. A zero duration ends immediately.
func (e *Effect) window(elapsed time.Duration) (int64, int64, bool) {
	d := e.duration.Milliseconds()
	if d <= 0 || elapsed > e.duration {
		e.done = true
		return 0, 0, false
	}
	return elapsed.Milliseconds(), d, true
}

func (e *Effect) paint(f *Frame) {
	f.Brightness = e.current.Brightness
	f.Fill(e.current.Color)
}

// lerp truncates rather than rounds.
func lerp(a, b uint8, frac float32) uint8 {
	return uint8(float32(a) + float32(int(b)-int(a))*frac)
}
