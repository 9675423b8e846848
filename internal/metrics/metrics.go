// Package metrics declares the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnostico_classifications_total",
			Help: "Total number of score sets classified",
		},
		[]string{"source"},
	)

	InvalidInputs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnostico_invalid_input_total",
			Help: "Total number of score sets rejected as invalid",
		},
		[]string{"source"},
	)

	OverallPercentage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "diagnostico_overall_percentage",
			Help: "Overall percentage of the score set currently on the dashboard",
		},
	)

	Actions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnostico_actions_total",
			Help: "Total number of call-to-action notifications shown",
		},
		[]string{"action"},
	)

	ScheduleRedirects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnostico_schedule_redirects_total",
			Help: "Total number of redirects to the scheduling link",
		},
		[]string{"indicator"},
	)

	Reloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnostico_scores_reloads_total",
			Help: "Total number of score file reloads",
		},
		[]string{"result"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diagnostico_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
