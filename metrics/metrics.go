// Package metrics exposes Prometheus counters for the intake service and the
// HTTP server that publishes them.
package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Intake outcomes, used as the "outcome" label of IntakeRequests.
const (
	OutcomeCreated       = "created"
	OutcomeInvalid       = "invalid"
	OutcomeDuplicate     = "duplicate"
	OutcomeNotConfigured = "not_configured"
	OutcomeNotReady      = "not_ready"
	OutcomeUnreachable   = "unreachable"
	OutcomeFailed        = "failed"
)

var (
	IntakeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intake_requests_total",
		Help: "Registration submissions by outcome.",
	}, []string{"outcome"})

	AdminAuthDenied = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "admin_auth_denied_total",
		Help: "Requests to admin paths rejected by the basic auth gate.",
	})

	ExportedRows = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csv_exported_rows_total",
		Help: "Records written by the CSV export.",
	})
)

// RecordIntake counts one registration submission.
func RecordIntake(outcome string) {
	IntakeRequests.WithLabelValues(outcome).Inc()
}

type MetricsServer struct {
	*http.Server
	Registry *prometheus.Registry
}

// New creates a metrics server listening on addr. The service counters are
// registered under namespace (dashes become underscores).
func New(namespace, addr string) (*MetricsServer, error) {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWithPrefix(strings.ReplaceAll(namespace, "-", "_")+"_", registry)

	for _, c := range []prometheus.Collector{IntakeRequests, AdminAuthDenied, ExportedRows} {
		if err := wrapped.Register(c); err != nil {
			return nil, err
		}
	}
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return &MetricsServer{
		Server:   &http.Server{Addr: addr, Handler: mux},
		Registry: registry,
	}, nil
}
