package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// worldMetrics tracks ingestion and query activity for one world. Each
// world registers its collectors on its own registerer so that multiple
// worlds in one process do not collide.
type worldMetrics struct {
	triplesIngested   prometheus.Counter
	bundlesLoaded     prometheus.Counter
	pluginsDiscovered prometheus.Counter
	lazyLoads         prometheus.Counter
	ingestWarnings    prometheus.Counter
	queries           prometheus.Counter
}

// WithRegisterer sets the Prometheus registerer the world's metrics are
// registered on. Without it, metrics are collected on a private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(w *World) { w.metrics = newWorldMetrics(reg) }
}

func newWorldMetrics(reg prometheus.Registerer) *worldMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &worldMetrics{
		triplesIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "plughost_triples_ingested_total",
			Help: "Triples added to the metadata store.",
		}),
		bundlesLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "plughost_bundles_loaded_total",
			Help: "Bundles loaded, idempotent repeats excluded.",
		}),
		pluginsDiscovered: factory.NewCounter(prometheus.CounterOpts{
			Name: "plughost_plugins_discovered_total",
			Help: "Plugins registered during bundle discovery.",
		}),
		lazyLoads: factory.NewCounter(prometheus.CounterOpts{
			Name: "plughost_plugin_lazy_loads_total",
			Help: "One-time plugin data file materializations.",
		}),
		ingestWarnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "plughost_ingest_warnings_total",
			Help: "Non-fatal ingestion problems recorded.",
		}),
		queries: factory.NewCounter(prometheus.CounterOpts{
			Name: "plughost_value_queries_total",
			Help: "Value pattern queries issued against the store.",
		}),
	}
}
