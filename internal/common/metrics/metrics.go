// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total number of generation backend calls",
		},
		[]string{"provider", "operation"},
	)

	GenerationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_failures_total",
			Help: "Total number of failed generation backend calls",
		},
		[]string{"provider", "error_code"},
	)

	PipelineFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_failures_total",
			Help: "Total number of aborted report pipeline runs",
		},
		[]string{"category"},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_stage_duration_seconds",
			Help: "Duration of each report pipeline stage in seconds",
		},
		[]string{"stage"},
	)

	AdsToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_tool_calls_total",
			Help: "Total number of ad platform tool invocations",
		},
		[]string{"tool", "status"},
	)
)
