package effect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC)

func TestLinearTransition(t *testing.T) {
	begin := Level{Color: Black, Brightness: 0}
	end := Level{Color: Color{255, 255, 255}, Brightness: 255}
	e := NewLinearTransition(begin, end, time.Second, t0)
	f := NewFrame(4)

	assert.Equal(t, begin, e.Current(), "current starts at begin")
	assert.Equal(t, end, e.End())

	require.True(t, e.Advance(0, f))
	assert.Equal(t, begin, e.Current())

	require.True(t, e.Advance(500*time.Millisecond, f))
	assert.Equal(t, Level{Color: Color{127, 127, 127}, Brightness: 127}, e.Current())
	assert.Equal(t, uint8(127), f.Brightness)
	for _, p := range f.Pixels {
		assert.Equal(t, Color{127, 127, 127}, p)
	}

	require.False(t, e.Advance(1500*time.Millisecond, f))
	assert.True(t, e.Done())
	assert.Equal(t, Level{Color: Color{127, 127, 127}, Brightness: 127}, e.Current(), "terminal keeps last computed value")

	require.False(t, e.Advance(700*time.Millisecond, f), "no re-entry into active")
	assert.Equal(t, uint8(127), e.Current().Brightness)
}

func TestLinearTransitionReachesEndAtDuration(t *testing.T) {
	begin := Level{Color: Color{10, 200, 30}, Brightness: 200}
	end := Level{Color: Color{250, 0, 30}, Brightness: 20}
	e := NewLinearTransition(begin, end, time.Second, t0)
	f := NewFrame(1)

	require.True(t, e.Advance(time.Second, f))
	assert.Equal(t, end, e.Current())

	require.True(t, NewLinearTransition(begin, end, time.Second, t0).Advance(250*time.Millisecond, f))
	assert.Equal(t, Color{70, 150, 30}, f.Pixels[0])
	assert.Equal(t, uint8(155), f.Brightness)
}

func TestZeroDurationIsImmediatelyTerminal(t *testing.T) {
	begin := Level{Color: Color{1, 2, 3}, Brightness: 4}
	end := Level{Color: Color{255, 255, 255}, Brightness: 255}
	f := NewFrame(2)

	for _, e := range []*Effect{
		NewLinearTransition(begin, end, 0, t0),
		NewSunrise(begin, end, 0, t0),
		NewBlackbodyTransition(begin, 2700, 255, 0, t0),
	} {
		assert.False(t, e.Advance(0, f), e.Kind().String())
		assert.True(t, e.Done())
		assert.Equal(t, begin, e.Current())
	}
	assert.Equal(t, []Color{Black, Black}, f.Pixels, "frame untouched")
}

func TestRainbowIsSingleShot(t *testing.T) {
	e := NewRainbow(Level{Color: Black, Brightness: 100}, t0)
	f := NewFrame(8)

	require.True(t, e.Advance(0, f))
	assert.True(t, e.Done())
	assert.Equal(t, uint8(100), f.Brightness)
	assert.Equal(t, uint8(100), e.Current().Brightness)
	assert.Equal(t, uint8(255), f.Pixels[0].R)
	assert.NotEqual(t, f.Pixels[0], f.Pixels[7])

	painted := append([]Color(nil), f.Pixels...)
	f.Brightness = 1
	assert.False(t, e.Advance(time.Hour, f))
	assert.Equal(t, painted, f.Pixels)
	assert.Equal(t, uint8(1), f.Brightness)
}

func TestWarmwhite(t *testing.T) {
	e := NewWarmwhite(Level{Color: Color{0, 0, 255}, Brightness: 80}, t0)
	f := NewFrame(3)

	assert.Equal(t, Level{Color: WarmWhite, Brightness: 80}, e.End())
	require.True(t, e.Advance(0, f))
	assert.Equal(t, Level{Color: WarmWhite, Brightness: 80}, e.Current())
	assert.Equal(t, WarmWhite, f.Pixels[2])

	f.Fill(Black)
	assert.False(t, e.Advance(time.Second, f))
	assert.Equal(t, Black, f.Pixels[0])
}

func TestSunrise(t *testing.T) {
	begin := Level{Color: Black, Brightness: 0}
	end := Level{Color: Color{255, 197, 143}, Brightness: 255}
	e := NewSunrise(begin, end, 10*time.Minute, t0)
	f := NewFrame(2)

	require.True(t, e.Advance(0, f))
	assert.Equal(t, begin, e.Current())

	require.True(t, e.Advance(5*time.Minute, f))
	assert.Equal(t, Level{Color: Color{255, 128, 0}, Brightness: 127}, e.Current())

	require.True(t, e.Advance(10*time.Minute, f))
	assert.Equal(t, Level{Color: Color{255, 255, 255}, Brightness: 255}, e.Current())

	assert.False(t, e.Advance(10*time.Minute+time.Second, f))
	assert.Equal(t, end, e.End())
}

func TestSunriseDimmingTruncatesTowardsZero(t *testing.T) {
	begin := Level{Color: Black, Brightness: 200}
	end := Level{Color: Color{255, 197, 143}, Brightness: 50}
	e := NewSunrise(begin, end, 10*time.Minute, t0)
	f := NewFrame(1)

	// 4001ms * -150 / 600000 is -1.0003, truncated to -1 rather than floored to -2.
	require.True(t, e.Advance(4001*time.Millisecond, f))
	assert.Equal(t, uint8(199), e.Current().Brightness)

	require.True(t, e.Advance(5*time.Minute, f))
	assert.Equal(t, uint8(125), e.Current().Brightness)
	assert.Equal(t, Color{255, 128, 0}, e.Current().Color)

	require.True(t, e.Advance(10*time.Minute, f))
	assert.Equal(t, uint8(50), e.Current().Brightness)
	assert.Equal(t, uint8(50), f.Brightness)
}

func TestBlackbodyTransition(t *testing.T) {
	e := NewBlackbodyTransition(Level{}, 6535.9, 200, time.Second, t0)
	f := NewFrame(1)

	assert.Equal(t, BlackbodyTransition, e.Kind())
	assert.Equal(t, Level{Color: TemperatureToRGB(6535.9), Brightness: 200}, e.End())
	assert.InDelta(t, 6535.9, e.Kelvin(), 0.001)

	require.True(t, e.Advance(time.Second, f))
	assert.Equal(t, e.End(), e.Current())
}

func TestNegativeElapsedIsTreatedAsZero(t *testing.T) {
	e := NewLinearTransition(Level{Brightness: 10}, Level{Brightness: 20}, time.Second, t0)
	f := NewFrame(1)

	require.True(t, e.Advance(-time.Second, f))
	assert.Equal(t, uint8(10), e.Current().Brightness)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "sunrise", Sunrise.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
