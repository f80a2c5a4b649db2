// Package metric provides Prometheus metrics for kvmesh.
//
// It exposes connection, command and keyspace metrics in Prometheus
// format for monitoring request rates, latencies and store growth.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	reg *prometheus.Registry

	// Connection metrics
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	ProtocolErrors  prometheus.Counter
	CommandErrors   prometheus.Counter

	// Keyspace metrics
	ExpiredReads prometheus.Counter
}

// NewRegistry creates a metrics registry. keyCount, when non-nil, is
// sampled on scrape to report the number of physically stored keys.
func NewRegistry(keyCount func() float64) *Registry {
	reg := prometheus.NewRegistry()

	m := &Registry{
		reg: reg,
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kvmesh",
			Name:      "connections_active",
			Help:      "Number of currently open client connections.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kvmesh",
			Name:      "connections_total",
			Help:      "Total number of accepted client connections.",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kvmesh",
			Name:      "commands_total",
			Help:      "Total number of executed commands, by command name.",
		}, []string{"command"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kvmesh",
			Name:      "command_duration_seconds",
			Help:      "Command execution latency, by command name.",
			Buckets:   prometheus.ExponentialBuckets(0.000005, 4, 10),
		}, []string{"command"}),
		ProtocolErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kvmesh",
			Name:      "protocol_errors_total",
			Help:      "Total number of malformed frames received.",
		}),
		CommandErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kvmesh",
			Name:      "command_errors_total",
			Help:      "Total number of commands rejected during interpretation.",
		}),
		ExpiredReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kvmesh",
			Name:      "expired_reads_total",
			Help:      "Total number of reads that observed an expired key.",
		}),
	}

	reg.MustRegister(
		m.ConnectionsActive,
		m.ConnectionsTotal,
		m.CommandsTotal,
		m.CommandDuration,
		m.ProtocolErrors,
		m.CommandErrors,
		m.ExpiredReads,
	)

	if keyCount != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "kvmesh",
			Name:      "keys_stored",
			Help:      "Number of physically stored keys, expired entries included.",
		}, keyCount))
	}

	return m
}

// Handler returns an HTTP handler serving the /metrics endpoint.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
