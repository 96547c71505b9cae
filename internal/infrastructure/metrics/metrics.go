// Package metrics exports permission dialog outcomes to Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/build"
	"github.com/bnema/consent/internal/domain/entity"
)

// Metrics groups all Prometheus instruments used by the prompt queue.
type Metrics struct {
	registry *prometheus.Registry

	Outcomes        *prometheus.CounterVec
	OutcomeTypes    *prometheus.CounterVec
	DialogDuration  *prometheus.HistogramVec
	RecordFailures  prometheus.Counter
	EphemeralGrants prometheus.Counter
	BuildInfo       *prometheus.GaugeVec
}

var _ port.OutcomeRecorder = (*Metrics)(nil)

// NewMetrics registers the instruments on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dialog_outcomes_total",
			Help:      "Ended permission requests by decision, dismissal cause and prompt variant.",
		}, []string{"decision", "cause", "variant"}),
		OutcomeTypes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dialog_permission_types_total",
			Help:      "Ended permission requests by requested capability and decision.",
		}, []string{"type", "decision"}),
		DialogDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dialog_duration_ms",
			Help:      "Time between activation and end of a permission request in milliseconds.",
			Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		}, []string{"decision"}),
		RecordFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcome_record_failures_total",
			Help:      "Outcome recorders that returned an error.",
		}),
		EphemeralGrants: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ephemeral_grants_total",
			Help:      "Grants limited to the current session.",
		}),
		BuildInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Always 1, labelled with the running binary.",
		}, []string{"version", "commit", "go_version"}),
	}
}

// Registry returns the registry holding the instruments.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetBuildInfo publishes info on the build_info gauge.
func (m *Metrics) SetBuildInfo(info build.Info) {
	m.BuildInfo.Reset()
	m.BuildInfo.With(info.Labels()).Set(1)
}

// RecordOutcome implements port.OutcomeRecorder.
func (m *Metrics) RecordOutcome(_ context.Context, outcome entity.DialogOutcome) error {
	decision := string(outcome.Decision)

	m.Outcomes.WithLabelValues(decision, string(outcome.Cause), string(outcome.Variant)).Inc()
	for _, t := range outcome.Types {
		m.OutcomeTypes.WithLabelValues(string(t), decision).Inc()
	}
	m.ObserveDuration(outcome.Decision, time.Duration(outcome.DurationMillis())*time.Millisecond)
	if outcome.Ephemeral && outcome.Decision == entity.PermissionAllow {
		m.EphemeralGrants.Inc()
	}
	return nil
}

// ObserveDuration records how long a request stayed active.
func (m *Metrics) ObserveDuration(decision entity.PermissionDecision, d time.Duration) {
	m.DialogDuration.WithLabelValues(string(decision)).Observe(float64(d.Milliseconds()))
}
