// Package monitor exposes prometheus metrics for the game server.
package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor holds the server's metrics on a private registry, so multiple
// instances can coexist in tests.
type Monitor struct {
	registry *prometheus.Registry

	connectedPlayers prometheus.Gauge
	roundsEvaluated  prometheus.Counter
	oracleFailures   prometheus.Counter
	oracleLatency    prometheus.Histogram
}

// New creates a monitor with all metrics registered under the given namespace
func New(namespace string) *Monitor {
	m := &Monitor{
		registry: prometheus.NewRegistry(),
		connectedPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_players",
			Help:      "Number of players currently in the session",
		}),
		roundsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_evaluated_total",
			Help:      "Total number of rounds evaluated",
		}),
		oracleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_failures_total",
			Help:      "Total number of failed scoring oracle calls",
		}),
		oracleLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_latency_seconds",
			Help:      "Scoring oracle request latency",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
	}

	m.registry.MustRegister(
		m.connectedPlayers,
		m.roundsEvaluated,
		m.oracleFailures,
		m.oracleLatency,
	)

	return m
}

// Handler returns the HTTP handler serving this monitor's metrics
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncPlayers increments the connected players gauge
func (m *Monitor) IncPlayers() {
	m.connectedPlayers.Inc()
}

// DecPlayers decrements the connected players gauge
func (m *Monitor) DecPlayers() {
	m.connectedPlayers.Dec()
}

// IncRoundsEvaluated increments the evaluated rounds counter
func (m *Monitor) IncRoundsEvaluated() {
	m.roundsEvaluated.Inc()
}

// IncOracleFailures increments the oracle failure counter
func (m *Monitor) IncOracleFailures() {
	m.oracleFailures.Inc()
}

// ObserveOracleLatency records the duration of one oracle call
func (m *Monitor) ObserveOracleLatency(d time.Duration) {
	m.oracleLatency.Observe(d.Seconds())
}
