package light

import (
	"math"
	"time"

	"github.com/denwilliams/go-wakeuplight/internal/effect"
)

const (
	EffectRainbow   = "rainbow"
	EffectWarmwhite = "warmwhite"
	EffectColdwhite = "coldwhite"
	EffectSunrise   = "sunrise"
)

// MaxTransition bounds the transition field so the duration cannot overflow.
const MaxTransition = 24 * time.Hour

// References holds the fixed colors and timings named commands resolve to.
type References struct {
	Tungsten40W       effect.Color
	Halogen           effect.Color
	DefaultTransition time.Duration
	SunriseDuration   time.Duration
}

func DefaultReferences() References {
	return References{
		Tungsten40W:       effect.Color{R: 255, G: 197, B: 143},
		Halogen:           effect.Color{R: 255, G: 241, B: 224},
		DefaultTransition: time.Second,
		SunriseDuration:   10 * time.Minute,
	}
}

// Interpret turns cmd into the effect that replaces prev. The new effect
// starts from prev's current level so nothing jumps when it takes over.
//
// Later fields win over earlier ones: state, then color, then brightness,
// then effect, then color_temp. color_temp replaces whatever effect was
// picked.
func Interpret(cmd *Command, prev *effect.Effect, now time.Time, refs References) *effect.Effect {
	last := prev.Current()
	target := last

	if cmd.State != nil {
		switch *cmd.State {
		case StateOff:
			target.Brightness = 0
		case StateOn:
			if last.Brightness == 0 {
				target.Brightness = 255
			}
		}
	}

	if cmd.Color != nil {
		target.Color = cmd.Color.Color()
	}

	if cmd.Brightness != nil && !math.IsNaN(*cmd.Brightness) {
		target.Brightness = effect.Clamp8f(*cmd.Brightness)
	}

	duration := refs.DefaultTransition
	if cmd.Transition != nil && *cmd.Transition > 0 {
		duration = MaxTransition
		if *cmd.Transition < MaxTransition.Seconds() {
			duration = time.Duration(*cmd.Transition*1000) * time.Millisecond
		}
	}

	var next *effect.Effect

	if cmd.Effect != nil {
		switch *cmd.Effect {
		case EffectRainbow:
			next = effect.NewRainbow(last, now)
		case EffectWarmwhite:
			next = effect.NewLinearTransition(last, effect.Level{Color: refs.Tungsten40W, Brightness: target.Brightness}, duration, now)
		case EffectColdwhite:
			next = effect.NewLinearTransition(last, effect.Level{Color: refs.Halogen, Brightness: target.Brightness}, duration, now)
		case EffectSunrise:
			next = effect.NewSunrise(
				effect.Level{Color: effect.Black, Brightness: 0},
				effect.Level{Color: refs.Tungsten40W, Brightness: 255},
				refs.SunriseDuration, now)
		default:
			next = effect.NewRainbow(last, now)
		}
	}

	if cmd.ColorTemp != nil {
		next = effect.NewBlackbodyTransition(last, effect.MiredsToKelvin(*cmd.ColorTemp), target.Brightness, duration, now)
	}

	if next == nil {
		next = effect.NewLinearTransition(last, target, duration, now)
	}

	return next
}
