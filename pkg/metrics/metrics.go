// Package metrics exports connection manager activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asynccomm/asynccomm-go/pkg/connection"
)

// Attempt results.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

// Wait outcomes.
const (
	OutcomeConnected = "connected"
	OutcomeTimeout   = "timeout"
)

// Metrics holds the collectors for one process. It implements
// connection.Observer.
type Metrics struct {
	registry *prometheus.Registry
	server   *http.Server
	logger   *slog.Logger

	ConnectAttempts *prometheus.CounterVec
	Connected       *prometheus.GaugeVec
	Drops           *prometheus.CounterVec
	WaitDuration    *prometheus.HistogramVec
}

// New creates a Metrics with its own registry. The logger may be nil.
func New(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		logger:   logger,

		ConnectAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "asynccomm_connect_attempts_total",
			Help: "Total connect requests issued, by synchronous result",
		}, []string{"target", "result"}),

		Connected: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "asynccomm_connected",
			Help: "1 if the connection to the target is up",
		}, []string{"target"}),

		Drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "asynccomm_connection_drops_total",
			Help: "Total established connections that were lost",
		}, []string{"target"}),

		WaitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asynccomm_wait_for_connection_seconds",
			Help:    "Time callers spent waiting for the connection",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"target", "outcome"}),
	}

	registry.MustRegister(
		m.ConnectAttempts,
		m.Connected,
		m.Drops,
		m.WaitDuration,
	)
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Start serves /metrics on addr until ctx is done or Stop is called.
func (m *Metrics) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	m.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if m.logger != nil {
				m.logger.Error("metrics server failed", "addr", addr, "error", err)
			}
		}
	}()

	go func() {
		<-ctx.Done()
		m.Stop()
	}()

	return nil
}

// Stop shuts the metrics server down.
func (m *Metrics) Stop() {
	if m.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		m.server.Shutdown(ctx)
	}
}

// AttemptFinished counts a connect request by its synchronous result.
func (m *Metrics) AttemptFinished(target connection.Target, err error) {
	result := ResultAccepted
	if err != nil {
		result = ResultRejected
	}
	m.ConnectAttempts.WithLabelValues(target.Address, result).Inc()
}

// ConnectionUp sets the connected gauge.
func (m *Metrics) ConnectionUp(target connection.Target) {
	m.Connected.WithLabelValues(target.Address).Set(1)
}

// ConnectionDown clears the connected gauge and counts the drop.
func (m *Metrics) ConnectionDown(target connection.Target, _ error) {
	m.Connected.WithLabelValues(target.Address).Set(0)
	m.Drops.WithLabelValues(target.Address).Inc()
}

// WaitFinished records how long a caller waited and whether it got a
// connection.
func (m *Metrics) WaitFinished(target connection.Target, connected bool, waited time.Duration) {
	outcome := OutcomeTimeout
	if connected {
		outcome = OutcomeConnected
	}
	m.WaitDuration.WithLabelValues(target.Address, outcome).Observe(waited.Seconds())
}

// Compile-time interface satisfaction check.
var _ connection.Observer = (*Metrics)(nil)
