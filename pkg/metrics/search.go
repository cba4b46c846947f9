package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the search HTTP handler
	SearchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_latency_seconds",
		Help:    "Latency of product search requests",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of search requests served
	SearchRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_requests_total",
		Help: "Total number of product search requests",
	})

	// Total number of recommendation requests, labeled by mode
	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendation requests",
	}, []string{"mode"})

	// Catalog reload outcomes
	CatalogReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_reloads_total",
		Help: "Total number of catalog reload attempts",
	}, []string{"result"})

	// Records skipped during the last catalog load
	CatalogSkippedRecords = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_skipped_records_total",
		Help: "Total number of malformed catalog records skipped",
	})

	// 1 when serving a stale snapshot after a failed reload
	CatalogDegraded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_degraded",
		Help: "Whether the catalog is serving a stale snapshot",
	})

	// Live conversation sessions
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "conversation_sessions_active",
		Help: "Number of live conversation sessions",
	})

	// Assistant calls that fell back to the canned phrase
	AssistantFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assistant_fallbacks_total",
		Help: "Total number of assistant responses served from the static fallback",
	})
)

func Init() {
	prometheus.MustRegister(
		SearchLatency,
		SearchRequests,
		RecommendRequests,
		CatalogReloads,
		CatalogSkippedRecords,
		CatalogDegraded,
		ActiveSessions,
		AssistantFallbacks,
	)
}
