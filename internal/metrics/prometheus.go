package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Workflow run metrics
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_runs_total",
			Help: "Total number of workflow runs",
		},
		[]string{"status"}, // status: success|degraded|error|cached
	)

	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blogsmith_run_duration_seconds",
			Help:    "Workflow run duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"status"},
	)

	// Tool metrics
	ToolInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_tool_invocations_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "status"}, // status: success|error
	)

	// Stage metrics
	StageOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_stage_outcomes_total",
			Help: "Pipeline stage outcomes per run",
		},
		[]string{"stage", "status"}, // status: succeeded|skipped|failed
	)

	// Hand-off metrics
	HandoffsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_handoffs_total",
			Help: "Hand-off decisions by source agent",
		},
		[]string{"source", "outcome"}, // outcome: accepted|rejected
	)

	// Token usage
	TokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_tokens_total",
			Help: "LLM tokens consumed",
		},
		[]string{"direction"}, // direction: input|output
	)
)

// Register registers all metrics with the default registry.
func Register() {
	prometheus.MustRegister(
		RunsTotal,
		RunDuration,
		ToolInvocations,
		StageOutcomes,
		HandoffsTotal,
		TokensUsed,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
