package reprise

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	opensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reprise_opens_total",
			Help: "Files opened for playback, by source (picker or recent).",
		},
		[]string{"source"},
	)

	rememberFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reprise_remember_failures_total",
			Help: "Opened files for which no durable reference could be minted.",
		},
	)

	resolveFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reprise_resolve_failures_total",
			Help: "Recent entries whose reference no longer resolved when selected.",
		},
	)

	recentEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reprise_recent_entries",
			Help: "Current length of the recent list.",
		},
	)
)
