package world

import "github.com/prometheus/client_golang/prometheus"

// entitiesLive is a process-wide gauge of currently valid entities,
// mirroring ebus's per-instance Prometheus collectors (internal/ebus/
// metrics.go) but tracking population rather than dispatch activity -- the
// one world-level signal a collaborator (a renderer, an editor scene-view
// panel) would want to graph alongside tick duration.
var entitiesLive = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "engine",
	Subsystem: "world",
	Name:      "entities_live",
	Help:      "Number of currently valid entities across every World instance.",
})

func init() {
	prometheus.MustRegister(entitiesLive)
}
