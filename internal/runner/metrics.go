package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wakeuplight_commands_applied_total",
		Help: "The total number of commands applied, by resulting effect",
	}, []string{"effect"})

	commandsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wakeuplight_commands_dropped_total",
		Help: "The total number of commands rejected because the queue was full",
	})

	ticksAdvanced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wakeuplight_ticks_advanced_total",
		Help: "The total number of ticks that changed the frame, by effect",
	}, []string{"effect"})

	brightness = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wakeuplight_brightness",
		Help: "The brightness currently shown",
	})

	renderErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wakeuplight_render_errors_total",
		Help: "The total number of failed frame renders",
	})
)
