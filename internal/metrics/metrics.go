// Package metrics provides Prometheus instrumentation for the MCP server:
// per-tool call counters and resource read counters, served over an
// optional HTTP endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for counters.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the server's Prometheus collectors on a private registry,
// so multiple instances (tests included) never collide.
type Metrics struct {
	registry *prometheus.Registry

	toolCalls     *prometheus.CounterVec
	resourceReads *prometheus.CounterVec
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	toolCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "localstore_tool_calls_total",
		Help: "Tool invocations by tool name and outcome.",
	}, []string{"tool", "status"})

	resourceReads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "localstore_resource_reads_total",
		Help: "Resource reads by outcome.",
	}, []string{"status"})

	registry.MustRegister(toolCalls, resourceReads)

	return &Metrics{
		registry:      registry,
		toolCalls:     toolCalls,
		resourceReads: resourceReads,
	}
}

// RecordToolCall counts one tool invocation. Nil-safe so callers need no
// guard when metrics are disabled.
func (m *Metrics) RecordToolCall(tool, status string) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, status).Inc()
}

// RecordResourceRead counts one resource read.
func (m *Metrics) RecordResourceRead(status string) {
	if m == nil {
		return
	}
	m.resourceReads.WithLabelValues(status).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
