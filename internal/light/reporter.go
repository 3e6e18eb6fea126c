package light

import "github.com/denwilliams/go-wakeuplight/internal/effect"

// Report describes the level e is heading to, not the one it currently shows.
func Report(e *effect.Effect) State {
	end := e.End()

	state := StateOff
	if end.Brightness > 0 {
		state = StateOn
	}

	return State{
		State:      state,
		Color:      FromColor(end.Color),
		Brightness: int(end.Brightness),
	}
}
