package runner

import (
	"github.com/denwilliams/go-wakeuplight/internal/effect"
	"github.com/denwilliams/go-wakeuplight/internal/logging"
)

// LogRenderer logs the mean strip color whenever it changes. Useful as a
// stand-in when no strip is attached.
type LogRenderer struct {
	last    effect.Color
	started bool
}

func (l *LogRenderer) Render(f *effect.Frame) error {
	if !logging.DebugEnabled() {
		return nil
	}
	avg := f.Average()
	if l.started && avg == l.last {
		return nil
	}
	l.last, l.started = avg, true
	logging.Debug("Strip now %s (brightness %d, %d pixels)", avg, f.Brightness, len(f.Pixels))
	return nil
}
