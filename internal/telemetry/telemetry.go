// Package telemetry provides the process-wide Prometheus metrics and the
// prefixed loggers used across the pipeline.
package telemetry

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

type Telemetry struct {
	Runs          *prometheus.CounterVec
	RunDuration   *prometheus.HistogramVec
	ProviderCalls *prometheus.CounterVec
}

// New builds the metric set and registers it with the given registerer
// (prometheus.DefaultRegisterer in production, a private registry in tests).
func New(reg prometheus.Registerer) *Telemetry {
	t := &Telemetry{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ferret",
			Name:      "runs_total",
			Help:      "Pipeline runs by mode and summarization outcome.",
		}, []string{"mode", "outcome"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ferret",
			Name:      "run_duration_seconds",
			Help:      "End-to-end pipeline run duration by mode.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ferret",
			Name:      "provider_calls_total",
			Help:      "External provider calls by provider and status.",
		}, []string{"provider", "status"}),
	}
	reg.MustRegister(t.Runs, t.RunDuration, t.ProviderCalls)
	return t
}

// NewLogger returns a stdlib logger with the conventional bracket prefix.
func NewLogger(prefix string) *log.Logger {
	return log.New(log.Writer(), "["+prefix+"] ", log.LstdFlags)
}
