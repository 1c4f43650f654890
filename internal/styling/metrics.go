// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package styling

import "github.com/prometheus/client_golang/prometheus"

// Prometheus styling metrics.
var (
	resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_style_resolutions_total",
			Help: "Token sets resolved and projected, by trigger.",
		},
		[]string{"trigger"},
	)
	staleDropsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inkwell_stale_refreshes_total",
			Help: "Refresh results discarded because a newer refresh or context superseded them.",
		},
	)
	loadFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inkwell_theme_fallbacks_total",
			Help: "Record loads that fell back to the baseline theme.",
		},
	)
	feedEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_feed_events_total",
			Help: "Feed events received, by kind.",
		},
		[]string{"kind"},
	)
	loadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inkwell_record_load_duration_seconds",
			Help:    "Time spent loading blog and theme records.",
			Buckets: prometheus.DefBuckets,
		},
	)
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inkwell_sessions_active",
			Help: "Mounted styling sessions.",
		},
	)
)

func init() {
	prometheus.MustRegister(resolutionsTotal)
	prometheus.MustRegister(staleDropsTotal)
	prometheus.MustRegister(loadFallbacksTotal)
	prometheus.MustRegister(feedEventsTotal)
	prometheus.MustRegister(loadDuration)
	prometheus.MustRegister(sessionsActive)
}
