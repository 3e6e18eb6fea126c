package lifx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mirrorUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wakeuplight_lifx_mirror_updates_total",
		Help: "The total number of updates pushed to the LIFX mirror bulb",
	}, []string{"on_state"})
)
