package light

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denwilliams/go-wakeuplight/internal/effect"
)

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{
		"state": "ON",
		"color": {"r": 255, "g": 10, "b": 0, "x": 0.1, "y": 0.2},
		"brightness": 128,
		"effect": "warmwhite",
		"color_temp": 370,
		"transition": 2
	}`))
	require.NoError(t, err)

	require.NotNil(t, cmd.State)
	assert.Equal(t, "ON", *cmd.State)
	require.NotNil(t, cmd.Color)
	assert.Equal(t, RGB{R: 255, G: 10, B: 0}, *cmd.Color)
	require.NotNil(t, cmd.Brightness)
	assert.Equal(t, 128.0, *cmd.Brightness)
	require.NotNil(t, cmd.Effect)
	assert.Equal(t, "warmwhite", *cmd.Effect)
	require.NotNil(t, cmd.ColorTemp)
	assert.Equal(t, 370.0, *cmd.ColorTemp)
	require.NotNil(t, cmd.Transition)
	assert.Equal(t, 2.0, *cmd.Transition)
}

func TestParseCommandAbsentFieldsStayNil(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"state":"OFF"}`))
	require.NoError(t, err)

	assert.Nil(t, cmd.Color)
	assert.Nil(t, cmd.Brightness)
	assert.Nil(t, cmd.Effect)
	assert.Nil(t, cmd.ColorTemp)
	assert.Nil(t, cmd.Transition)
	assert.Equal(t, "state:OFF", cmd.String())
}

func TestParseCommandDoubleEncoded(t *testing.T) {
	cmd, err := ParseCommand([]byte(`"{\"brightness\": 12}"`))
	require.NoError(t, err)
	require.NotNil(t, cmd.Brightness)
	assert.Equal(t, 12.0, *cmd.Brightness)
}

func TestParseCommandHexColor(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"color":"#ffc58f"}`))
	require.NoError(t, err)
	require.NotNil(t, cmd.Color)
	assert.Equal(t, effect.Color{R: 255, G: 197, B: 143}, cmd.Color.Color())
}

func TestParseCommandClampsNumbers(t *testing.T) {
	tests := []struct {
		payload    string
		brightness uint8
		color      effect.Color
	}{
		{`{"brightness": 1e3}`, 255, effect.Color{B: 200}},
		{`{"brightness": 127.0}`, 127, effect.Color{B: 200}},
		{`{"brightness": 99.9}`, 99, effect.Color{B: 200}},
		{`{"brightness": 99999999999999999999}`, 255, effect.Color{B: 200}},
		{`{"brightness": -5}`, 0, effect.Color{B: 200}},
		{`{"color": {"r": 300.5, "g": -1e9, "b": 12.7}}`, 40, effect.Color{R: 255, G: 0, B: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			cmd, err := ParseCommand([]byte(tt.payload))
			require.NoError(t, err)

			got := Interpret(cmd, showing(dimBlue), now, DefaultReferences())
			assert.Equal(t, effect.Level{Color: tt.color, Brightness: tt.brightness}, got.End())
		})
	}
}

func TestParseCommandRejects(t *testing.T) {
	for _, payload := range []string{
		``,
		`not json`,
		`null`,
		`42`,
		`"just a string"`,
		`{"brightness": "bright"}`,
		`{"color": "not-a-color"}`,
		`{"state": "ON"`,
	} {
		_, err := ParseCommand([]byte(payload))
		assert.Error(t, err, payload)
	}
}

func TestReport(t *testing.T) {
	start := time.Now()

	st := Report(effect.NewLinearTransition(dimBlue, effect.Level{Color: effect.Color{R: 9}, Brightness: 0}, time.Second, start))
	assert.Equal(t, State{State: StateOff, Color: RGB{R: 9}, Brightness: 0}, st)

	st = Report(effect.NewBlackbodyTransition(off, 1000, 77, time.Second, start))
	assert.Equal(t, State{State: StateOn, Color: RGB{R: 255, G: 67, B: 0}, Brightness: 77}, st)

	st = Report(effect.NewRainbow(effect.Level{Brightness: 100}, start))
	assert.Equal(t, StateOn, st.State)
	assert.Equal(t, 100, st.Brightness)
}

func TestReportReflectsEndNotCurrent(t *testing.T) {
	e := effect.NewLinearTransition(off, effect.Level{Color: effect.Color{G: 255}, Brightness: 255}, time.Minute, now)
	e.Advance(time.Second, effect.NewFrame(1))

	st := Report(e)
	assert.Equal(t, 255, st.Brightness)
	assert.Equal(t, RGB{G: 255}, st.Color)
}

func TestStateJSON(t *testing.T) {
	b, err := json.Marshal(State{State: StateOn, Color: RGB{R: 1, G: 2, B: 3}, Brightness: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"ON","color":{"r":1,"g":2,"b":3},"brightness":4}`, string(b))
}
