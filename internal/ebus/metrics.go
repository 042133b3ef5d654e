package ebus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Package-level collectors, registered once and labelled per bus instance by
// name so creating many buses (one per test, one per subsystem) never
// collides on a metric name -- the same shape as a Prometheus *Vec used
// across many logical shards in dittofs and bubblyui.
var (
	dispatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engine",
		Subsystem: "ebus",
		Name:      "dispatches_total",
		Help:      "Total number of Event/Broadcast dispatch calls per bus.",
	}, []string{"bus"})

	handlersConnectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engine",
		Subsystem: "ebus",
		Name:      "handlers_connected_total",
		Help:      "Total number of successful Connect calls per bus.",
	}, []string{"bus"})

	handlersDisconnectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engine",
		Subsystem: "ebus",
		Name:      "handlers_disconnected_total",
		Help:      "Total number of successful Disconnect calls per bus.",
	}, []string{"bus"})
)

func init() {
	prometheus.MustRegister(dispatchesTotal, handlersConnectedTotal, handlersDisconnectedTotal)
}

// busMetrics is the per-instance view over the package-level vectors.
type busMetrics struct {
	dispatches           prometheus.Counter
	handlersConnected    prometheus.Counter
	handlersDisconnected prometheus.Counter
}

func newBusMetrics(name string) *busMetrics {
	return &busMetrics{
		dispatches:           dispatchesTotal.WithLabelValues(name),
		handlersConnected:    handlersConnectedTotal.WithLabelValues(name),
		handlersDisconnected: handlersDisconnectedTotal.WithLabelValues(name),
	}
}
