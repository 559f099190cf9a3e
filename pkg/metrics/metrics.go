// Package metrics provides Prometheus metrics for the price consensus core.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// VendorFetchesTotal is a counter of upstream vendor fetch attempts.
	VendorFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_fetches_total",
			Help: "Total number of upstream vendor fetch attempts",
		},
		[]string{"source", "status"},
	)

	// CacheHitsTotal is a counter of fetches answered from the source cache.
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_cache_hits_total",
			Help: "Total number of fetches served from the per-source cache",
		},
		[]string{"source"},
	)

	// AggregationDuration is a histogram of consensus aggregation duration.
	AggregationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Duration of consensus fan-out and median computation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"instrument"},
	)

	// InsufficientDataTotal is a counter of low-confidence consensus results.
	InsufficientDataTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insufficient_data_total",
			Help: "Total number of consensus results flagged low-confidence",
		},
		[]string{"instrument"},
	)

	// CatalogPollsTotal is a counter of catalog snapshot poll attempts.
	CatalogPollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_polls_total",
			Help: "Total number of catalog snapshot polls",
		},
		[]string{"status"},
	)

	// CatalogProducts is a gauge of products in the newest snapshot.
	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products in the newest catalog snapshot",
		},
	)

	// CatalogHistoryDepth is a gauge of retained snapshots.
	CatalogHistoryDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_history_depth",
			Help: "Number of snapshots currently retained in the history window",
		},
	)
)

// Init initializes Prometheus metrics registry.
func Init() {
	prometheus.MustRegister(
		VendorFetchesTotal,
		CacheHitsTotal,
		AggregationDuration,
		InsufficientDataTotal,
		CatalogPollsTotal,
		CatalogProducts,
		CatalogHistoryDepth,
	)
}

// ServeHTTP serves Prometheus metrics on the specified address.
func ServeHTTP(addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

// RecordVendorFetch records an upstream fetch attempt.
func RecordVendorFetch(source string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	VendorFetchesTotal.WithLabelValues(source, status).Inc()
}

// RecordCacheHit records a fetch served from the per-source cache.
func RecordCacheHit(source string) {
	CacheHitsTotal.WithLabelValues(source).Inc()
}

// RecordAggregation records a consensus aggregation.
func RecordAggregation(instrument string, duration time.Duration, insufficient bool) {
	AggregationDuration.WithLabelValues(instrument).Observe(duration.Seconds())
	if insufficient {
		InsufficientDataTotal.WithLabelValues(instrument).Inc()
	}
}

// RecordCatalogPoll records a catalog poll attempt.
func RecordCatalogPoll(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CatalogPollsTotal.WithLabelValues(status).Inc()
}

// RecordCatalogState records the size of the newest snapshot and the
// current history depth.
func RecordCatalogState(products, depth int) {
	CatalogProducts.Set(float64(products))
	CatalogHistoryDepth.Set(float64(depth))
}
