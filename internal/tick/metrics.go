package tick

import "github.com/prometheus/client_golang/prometheus"

// tickDuration records wall-clock Tick durations so a collaborator can graph
// frame pacing. It is registered per package, like ebus's metrics, but is a
// histogram where ebus's dispatch metrics are counters.
var tickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Namespace: "engine",
	Subsystem: "tick",
	Name:      "duration_seconds",
	Help:      "Wall-clock duration of a single Dispatcher.Tick broadcast.",
	Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
})

func init() {
	prometheus.MustRegister(tickDuration)
}
