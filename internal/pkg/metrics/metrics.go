package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AssignmentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assignments_created_total",
			Help: "Total number of volunteer assignments created",
		},
	)

	NoticesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notices_published_total",
			Help: "Notices pushed onto the bus, by result",
		},
		[]string{"result"},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_duration_seconds",
			Help:    "Time spent scoring and ranking events for one volunteer",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		},
	)
)
