package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RouteGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_generation_total",
			Help: "Route generation requests by outcome",
		},
		[]string{"outcome"},
	)

	ArchetypeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_archetype_failures_total",
			Help: "Archetypes that failed to produce a route",
		},
		[]string{"archetype"},
	)

	NarrativeFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "narrative_fallback_total",
			Help: "Narrative enrichment calls answered with fallback text",
		},
		[]string{"kind"},
	)

	RouteGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "route_generation_duration_seconds",
			Help:    "Duration of a full route generation request",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern and status",
		},
		[]string{"route", "status"},
	)
)
