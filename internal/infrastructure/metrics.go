package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the pipeline.
type Metrics struct {
	Registry *prometheus.Registry

	DatasetsLoaded  prometheus.Counter
	ParseFailures   prometheus.Counter
	FetchFailures   prometheus.Counter
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the pipeline metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		DatasetsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "reclamos_datasets_loaded_total",
			Help: "Workbooks successfully parsed into canonical record sets.",
		}),
		ParseFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "reclamos_parse_failures_total",
			Help: "Loads where both parsing strategies failed.",
		}),
		FetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "reclamos_fetch_failures_total",
			Help: "Remote source fetches that ended unavailable.",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "reclamos_dataset_cache_hits_total",
			Help: "Dashboard requests served from the canonical set cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "reclamos_dataset_cache_misses_total",
			Help: "Dashboard requests that had to re-parse the blob.",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reclamos_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
